package services

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"travel-authorization-api/config"
	"travel-authorization-api/models"
)

// Canonical workflow status names (exact match with statuses.status_name).
// This is a closed vocabulary on the wire; anything else is a validation
// error before any permission check happens.
const (
	StatusPending          = "pending"
	StatusChecked          = "checked"
	StatusRecommended      = "recommended"
	StatusNotRecommended   = "not recommended"
	StatusApproved         = "approved"
	StatusRejected         = "rejected"
	StatusResubmitRequired = "resubmit required"
	StatusResubmitPending  = "resubmit pending"
)

// AllowedStatusNames lists every status the workflow accepts, in stage
// order.
var AllowedStatusNames = []string{
	StatusPending,
	StatusChecked,
	StatusRecommended,
	StatusNotRecommended,
	StatusApproved,
	StatusRejected,
	StatusResubmitRequired,
	StatusResubmitPending,
}

// legacyStatusAliases maps names older records may carry to their
// canonical form. Both spellings must be recognized when classifying the
// current status.
var legacyStatusAliases = map[string]string{
	"check":     StatusChecked,
	"recommend": StatusRecommended,
}

// NormalizeStatusName lowercases and trims a status name and resolves
// legacy aliases to the canonical spelling.
func NormalizeStatusName(name string) string {
	normalized := strings.ToLower(strings.TrimSpace(name))
	if canonical, ok := legacyStatusAliases[normalized]; ok {
		return canonical
	}
	return normalized
}

// IsAllowedStatusName reports whether name is in the closed status
// vocabulary. Matching is exact after trimming; legacy aliases are not
// accepted as transition targets.
func IsAllowedStatusName(name string) bool {
	trimmed := strings.TrimSpace(name)
	for _, allowed := range AllowedStatusNames {
		if trimmed == allowed {
			return true
		}
	}
	return false
}

var (
	statusCacheMu sync.RWMutex
	statusCache   *statusCacheEntry
	statusTTL     = 5 * time.Minute
)

type statusCacheEntry struct {
	statuses  []models.Status
	byName    map[string]models.Status
	byID      map[int]models.Status
	fetchedAt time.Time
}

func loadStatuses(force bool) (*statusCacheEntry, error) {
	statusCacheMu.RLock()
	cached := statusCache
	statusCacheMu.RUnlock()

	if cached != nil && !force && time.Since(cached.fetchedAt) < statusTTL {
		return cached, nil
	}

	statusCacheMu.Lock()
	defer statusCacheMu.Unlock()

	if statusCache != nil && !force && time.Since(statusCache.fetchedAt) < statusTTL {
		return statusCache, nil
	}

	var rows []models.Status
	if err := config.DB.Where("delete_at IS NULL").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load statuses: %w", err)
	}

	byName := make(map[string]models.Status, len(rows))
	byID := make(map[int]models.Status, len(rows))
	for _, status := range rows {
		if status.StatusName == "" {
			continue
		}
		byName[NormalizeStatusName(status.StatusName)] = status
		byID[status.StatusID] = status
	}

	entry := &statusCacheEntry{
		statuses:  rows,
		byName:    byName,
		byID:      byID,
		fetchedAt: time.Now(),
	}
	statusCache = entry
	return entry, nil
}

// ClearStatusCache invalidates the in-memory status cache.
func ClearStatusCache() {
	statusCacheMu.Lock()
	defer statusCacheMu.Unlock()
	statusCache = nil
}

// GetStatuses returns all catalog statuses with caching support.
func GetStatuses() ([]models.Status, error) {
	entry, err := loadStatuses(false)
	if err != nil {
		return nil, err
	}
	return entry.statuses, nil
}

// GetStatusByName returns the catalog row whose status_name matches name.
func GetStatusByName(name string) (*models.Status, error) {
	key := NormalizeStatusName(name)
	if key == "" {
		return nil, errors.New("status name is required")
	}

	entry, err := loadStatuses(false)
	if err != nil {
		return nil, err
	}

	if status, ok := entry.byName[key]; ok {
		return &status, nil
	}

	// Force refresh cache once before giving up
	entry, err = loadStatuses(true)
	if err != nil {
		return nil, err
	}

	if status, ok := entry.byName[key]; ok {
		return &status, nil
	}

	return nil, fmt.Errorf("status '%s' not found", strings.TrimSpace(name))
}

// GetStatusByID resolves a catalog status by primary key.
func GetStatusByID(id int) (*models.Status, error) {
	entry, err := loadStatuses(false)
	if err != nil {
		return nil, err
	}

	if status, ok := entry.byID[id]; ok {
		return &status, nil
	}

	entry, err = loadStatuses(true)
	if err != nil {
		return nil, err
	}

	if status, ok := entry.byID[id]; ok {
		return &status, nil
	}

	return nil, fmt.Errorf("status %d not found", id)
}

// EnsureStatusCatalog verifies a catalog row exists for every allowed
// status name and creates the missing ones. Run at startup, before any
// transition is exercised; the allowed-status vocabulary and the catalog
// must never drift apart.
func EnsureStatusCatalog() error {
	entry, err := loadStatuses(true)
	if err != nil {
		return err
	}

	now := time.Now()
	created := false
	for _, name := range AllowedStatusNames {
		if _, ok := entry.byName[name]; ok {
			continue
		}
		status := models.Status{
			StatusName: name,
			CreateAt:   &now,
			UpdateAt:   &now,
		}
		if err := config.DB.Create(&status).Error; err != nil {
			return fmt.Errorf("failed to seed status '%s': %w", name, err)
		}
		created = true
	}

	if created {
		ClearStatusCache()
	}
	return nil
}
