package services

import (
	"fmt"
	"log"
	"strings"
	"time"

	"travel-authorization-api/config"
	"travel-authorization-api/models"
	"travel-authorization-api/utils"

	"gorm.io/gorm"
)

// WorkflowService is the transition engine for travel applications. It
// decides whether a requested status change is structurally valid, which
// permission the acting role must hold given the current and the requested
// status, and appends the immutable history record on success.
//
// The engine enforces authorization, not sequencing: beyond the
// current-status branching for "resubmit required", nothing stops an
// application from being approved without ever having been checked,
// provided the actor holds the approval permission. That is the documented
// behavior of the workflow, not an oversight.
type WorkflowService struct {
	db    *gorm.DB
	locks *applicationLocks
}

// NewWorkflowService builds a transition engine over db.
func NewWorkflowService(db *gorm.DB) *WorkflowService {
	return &WorkflowService{db: db, locks: newApplicationLocks()}
}

// TransitionRequest carries one requested status change.
type TransitionRequest struct {
	ApplicationID int
	StatusName    string
	Remark        *string

	// Acting session context.
	ActingUserID int
	ActingRoleID int

	// SessionID optionally pins the session the change is attributed to.
	// When absent the engine falls back to the actor's current session,
	// then to the application's original submission session.
	SessionID *int
}

// latestStatusName derives the current status from the newest history row,
// ordered by created_at with history_id as tie-break. No history means the
// implicit default "pending". Every caller that needs a current status
// goes through here; the default is never re-derived elsewhere.
func latestStatusName(db *gorm.DB, historyTable, keyColumn string, id int) (string, error) {
	var row struct {
		StatusName string `gorm:"column:status_name"`
	}

	err := db.Table(historyTable+" AS h").
		Select("s.status_name").
		Joins("JOIN statuses AS s ON s.status_id = h.status_id").
		Where("h."+keyColumn+" = ?", id).
		Order("h.created_at DESC, h.history_id DESC").
		Limit(1).
		Scan(&row).Error
	if err != nil {
		return "", err
	}

	if row.StatusName == "" {
		return StatusPending, nil
	}
	return NormalizeStatusName(row.StatusName), nil
}

// CurrentStatus returns the application's derived current status,
// normalized to its canonical lowercase name.
func (s *WorkflowService) CurrentStatus(applicationID int) (string, error) {
	return latestStatusName(s.db, "application_status_history", "application_id", applicationID)
}

// Transition validates, authorizes and records one status change,
// returning the appended history entry and the resolved catalog status.
// Prior history entries are never touched; recording the same status twice
// is legal.
func (s *WorkflowService) Transition(req TransitionRequest) (*models.ApplicationStatusHistory, *models.Status, error) {
	requested := strings.TrimSpace(req.StatusName)
	if !IsAllowedStatusName(requested) {
		return nil, nil, utils.NewValidationError("status",
			fmt.Sprintf("unknown status '%s'", requested))
	}

	s.locks.Lock(req.ApplicationID)
	defer s.locks.Unlock(req.ApplicationID)

	var application models.Application
	err := s.db.Where("application_id = ? AND delete_at IS NULL", req.ApplicationID).
		First(&application).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil, fmt.Errorf("application %d: %w", req.ApplicationID, utils.ErrNotFound)
		}
		return nil, nil, utils.NewInternalError("failed to load application", err)
	}

	// Derived outside the transaction opened below. The per-application
	// lock serializes the derive-check-append window within this process;
	// a second process writing the same history table is not held off
	// here and would need row locks on the history table for the same
	// guarantee.
	currentStatus, err := s.CurrentStatus(req.ApplicationID)
	if err != nil {
		return nil, nil, utils.NewInternalError("failed to derive current status", err)
	}

	// The name passed the vocabulary check, so a missing rule means the
	// operation exists in no branch of the workflow. Denied for everyone.
	permission, denial, err := RequiredTransitionPermission(requested, currentStatus)
	if err != nil {
		return nil, nil, &utils.ForbiddenError{Message: err.Error()}
	}

	if !HasPermission(req.ActingRoleID, permission) {
		return nil, nil, &utils.ForbiddenError{
			Permission: string(permission),
			Message:    denial,
		}
	}

	status, err := GetStatusByName(requested)
	if err != nil {
		return nil, nil, utils.NewValidationError("status",
			fmt.Sprintf("status '%s' is missing from the catalog", requested))
	}

	sessionID, err := s.resolveAttributionSession(req, &application)
	if err != nil {
		return nil, nil, err
	}

	var remark *string
	if req.Remark != nil {
		if trimmed := strings.TrimSpace(*req.Remark); trimmed != "" {
			remark = &trimmed
		}
	}

	entry := models.ApplicationStatusHistory{
		ApplicationID: application.ApplicationID,
		StatusID:      status.StatusID,
		SessionID:     sessionID,
		Remark:        remark,
		CreatedAt:     time.Now(),
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Create(&entry).Error; err != nil {
		tx.Rollback()
		return nil, nil, utils.NewInternalError("failed to record status change", err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, nil, utils.NewInternalError("failed to commit status change", err)
	}

	go s.notifyStatusChange(&application, status, remark)

	return &entry, status, nil
}

// resolveAttributionSession picks the session id the change is recorded
// under. A transition must always be attributable; running out of
// fallbacks is an internal error, not a silent zero.
func (s *WorkflowService) resolveAttributionSession(req TransitionRequest, application *models.Application) (int, error) {
	if req.SessionID != nil && *req.SessionID > 0 {
		return *req.SessionID, nil
	}

	if req.ActingUserID > 0 {
		var session models.Session
		err := s.db.Where("user_id = ? AND revoked_at IS NULL", req.ActingUserID).
			Order("issued_at DESC").
			First(&session).Error
		if err == nil {
			return session.SessionID, nil
		}
		if err != gorm.ErrRecordNotFound {
			return 0, utils.NewInternalError("failed to resolve acting session", err)
		}
	}

	if application.SessionID != nil && *application.SessionID > 0 {
		return *application.SessionID, nil
	}

	return 0, utils.NewInternalError("no session to attribute the status change to", nil)
}

// notifyStatusChange emails the applicant after a committed transition.
// Best effort: failures are logged and never surface to the caller.
func (s *WorkflowService) notifyStatusChange(application *models.Application, status *models.Status, remark *string) {
	if application.SessionID == nil {
		return
	}

	var email string
	err := s.db.Table("sessions AS se").
		Select("u.email").
		Joins("JOIN users AS u ON u.user_id = se.user_id").
		Where("se.session_id = ?", *application.SessionID).
		Limit(1).
		Scan(&email).Error
	if err != nil || email == "" {
		return
	}

	subject := fmt.Sprintf("Travel application %s: %s", application.ReferenceCode, status.StatusName)
	body := fmt.Sprintf("<p>Your travel application <b>%s</b> has been moved to status <b>%s</b>.</p>",
		application.ReferenceCode, status.StatusName)
	if remark != nil {
		body += fmt.Sprintf("<p>Remark: %s</p>", *remark)
	}

	if err := config.SendMail([]string{email}, subject, body); err != nil {
		log.Printf("Warning: failed to send status notification for application %d: %v",
			application.ApplicationID, err)
	}
}

// StatusHistory returns the full ordered audit trail for one application.
func (s *WorkflowService) StatusHistory(applicationID int) ([]models.ApplicationStatusHistory, error) {
	var entries []models.ApplicationStatusHistory
	err := s.db.Preload("Status").
		Where("application_id = ?", applicationID).
		Order("created_at ASC, history_id ASC").
		Find(&entries).Error
	if err != nil {
		return nil, utils.NewInternalError("failed to load status history", err)
	}
	return entries, nil
}
