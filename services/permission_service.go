package services

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"travel-authorization-api/config"
	"travel-authorization-api/models"

	"gorm.io/gorm"
)

// PermissionName is a closed set of capability names. Permissions are
// looked up by name in the catalog; modelling them as typed constants keeps
// typos from silently failing closed at every call site.
type PermissionName string

const (
	PermApplicationReadAll         PermissionName = "Application_read_all"
	PermApplicationReadOne         PermissionName = "Application_read_one"
	PermApplicationCreate          PermissionName = "Application_create"
	PermApplicationUpdate          PermissionName = "Application_update"
	PermApplicationChecking        PermissionName = "Application_checking"
	PermApplicationRecommending    PermissionName = "Application_recommending_notrecommending"
	PermApplicationApproving       PermissionName = "Application_approving_reject"
	PermApplicationRequireResubmit PermissionName = "Application_require_resubmit"
	PermApplicationPrint           PermissionName = "Application_print"
)

var (
	permissionCacheMu sync.RWMutex
	permissionCache   *permissionCacheEntry
	permissionTTL     = 5 * time.Minute
)

type permissionCacheEntry struct {
	byName    map[string]models.Permission
	fetchedAt time.Time
}

func loadPermissions(force bool) (*permissionCacheEntry, error) {
	permissionCacheMu.RLock()
	cached := permissionCache
	permissionCacheMu.RUnlock()

	if cached != nil && !force && time.Since(cached.fetchedAt) < permissionTTL {
		return cached, nil
	}

	permissionCacheMu.Lock()
	defer permissionCacheMu.Unlock()

	if permissionCache != nil && !force && time.Since(permissionCache.fetchedAt) < permissionTTL {
		return permissionCache, nil
	}

	var rows []models.Permission
	if err := config.DB.Where("delete_at IS NULL").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load permissions: %w", err)
	}

	byName := make(map[string]models.Permission, len(rows))
	for _, permission := range rows {
		if permission.PermissionName == "" {
			continue
		}
		byName[strings.TrimSpace(permission.PermissionName)] = permission
	}

	entry := &permissionCacheEntry{byName: byName, fetchedAt: time.Now()}
	permissionCache = entry
	return entry, nil
}

// ClearPermissionCache invalidates the in-memory permission cache.
func ClearPermissionCache() {
	permissionCacheMu.Lock()
	defer permissionCacheMu.Unlock()
	permissionCache = nil
}

// GetPermissionByName returns the catalog row matching the exact name.
func GetPermissionByName(name PermissionName) (*models.Permission, error) {
	trimmed := strings.TrimSpace(string(name))
	if trimmed == "" {
		return nil, fmt.Errorf("permission name is required")
	}

	entry, err := loadPermissions(false)
	if err != nil {
		return nil, err
	}

	if permission, ok := entry.byName[trimmed]; ok {
		return &permission, nil
	}

	// Force refresh cache once before giving up
	entry, err = loadPermissions(true)
	if err != nil {
		return nil, err
	}

	if permission, ok := entry.byName[trimmed]; ok {
		return &permission, nil
	}

	return nil, fmt.Errorf("permission '%s' not found", trimmed)
}

// HasPermission reports whether the role holds the named permission.
// Any lookup failure (unknown permission, missing role, query error)
// returns false rather than an error: authorization fails closed.
func HasPermission(roleID int, name PermissionName) bool {
	if roleID <= 0 {
		return false
	}

	permission, err := GetPermissionByName(name)
	if err != nil {
		return false
	}

	var count int64
	err = config.DB.Model(&models.PermissionRole{}).
		Where("role_id = ? AND permission_id = ?", roleID, permission.PermissionID).
		Count(&count).Error
	if err != nil {
		return false
	}

	return count > 0
}

// GrantPermission attaches a permission to a role if not already present.
func GrantPermission(db *gorm.DB, roleID int, name PermissionName) error {
	permission, err := GetPermissionByName(name)
	if err != nil {
		return err
	}

	var existing models.PermissionRole
	err = db.Where("role_id = ? AND permission_id = ?", roleID, permission.PermissionID).
		First(&existing).Error
	if err == nil {
		return nil
	}
	if err != gorm.ErrRecordNotFound {
		return err
	}

	return db.Create(&models.PermissionRole{
		RoleID:       roleID,
		PermissionID: permission.PermissionID,
	}).Error
}
