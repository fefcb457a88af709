package services

import (
	"fmt"
	"strings"
	"time"

	"travel-authorization-api/models"
	"travel-authorization-api/utils"

	"gorm.io/gorm"
)

// SystemAssignerID is the placeholder session the assignment is attributed
// to when no acting user is supplied. Real session-based attribution is
// threaded through where the caller provides it; the placeholder remains
// the fallback.
const SystemAssignerID = 1

// ComplaintService is the simpler workflow peer: complaints move through
// assignment, logging and status transitions without the permission
// branching of the application engine, but share the same append-only
// audit-trail pattern.
type ComplaintService struct {
	db *gorm.DB
}

// NewComplaintService builds a complaint service over db.
func NewComplaintService(db *gorm.DB) *ComplaintService {
	return &ComplaintService{db: db}
}

// ComplaintRequest is the create payload.
type ComplaintRequest struct {
	Subject          string `json:"subject"`
	Description      string `json:"description"`
	ComplainantName  string `json:"complainant_name"`
	ComplainantEmail string `json:"complainant_email"`
	OrgID            *int   `json:"org_id"`
}

// AssignmentRequest routes a complaint to a division or a user, never
// both.
type AssignmentRequest struct {
	DivisionID *int    `json:"division_id"`
	AssigneeID *int    `json:"assignee_id"`
	DueDate    string  `json:"due_date"`
	Remark     *string `json:"remark"`
}

func validateComplaint(req ComplaintRequest) error {
	if strings.TrimSpace(req.Subject) == "" {
		return utils.NewValidationError("subject", "is required")
	}
	if strings.TrimSpace(req.Description) == "" {
		return utils.NewValidationError("description", "is required")
	}
	if email := strings.TrimSpace(req.ComplainantEmail); email != "" && !utils.ValidateEmail(email) {
		return utils.NewValidationError("complainant_email", "must be a valid email address")
	}
	return nil
}

// validateAssignment enforces the division-XOR-user assignee rule.
func validateAssignment(req AssignmentRequest) error {
	hasDivision := req.DivisionID != nil && *req.DivisionID > 0
	hasAssignee := req.AssigneeID != nil && *req.AssigneeID > 0
	if hasDivision == hasAssignee {
		return utils.NewValidationError("assignee", "exactly one of division_id or assignee_id must be set")
	}
	return nil
}

// Create persists the complaint together with its initial "pending"
// history entry.
func (s *ComplaintService) Create(req ComplaintRequest, sessionID int) (*models.Complaint, error) {
	if err := validateComplaint(req); err != nil {
		return nil, err
	}

	pendingStatus, err := GetStatusByName(StatusPending)
	if err != nil {
		return nil, utils.NewValidationError("status", "status catalog is not initialized")
	}

	now := time.Now()
	complaint := models.Complaint{
		Subject:          utils.SanitizeInput(req.Subject),
		Description:      utils.SanitizeInput(req.Description),
		ComplainantName:  utils.SanitizeInput(req.ComplainantName),
		ComplainantEmail: strings.TrimSpace(req.ComplainantEmail),
		OrgID:            req.OrgID,
		SessionID:        &sessionID,
		CreateAt:         &now,
		UpdateAt:         &now,
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	var count int64
	if err := tx.Model(&models.Complaint{}).Count(&count).Error; err != nil {
		tx.Rollback()
		return nil, utils.NewInternalError("failed to generate reference code", err)
	}
	complaint.ReferenceCode = fmt.Sprintf("CM-%d-%04d", now.Year(), count+1)

	if err := tx.Create(&complaint).Error; err != nil {
		tx.Rollback()
		return nil, utils.NewInternalError("failed to create complaint", err)
	}

	history := models.ComplaintStatusHistory{
		ComplaintID: complaint.ComplaintID,
		StatusID:    pendingStatus.StatusID,
		SessionID:   sessionID,
		CreatedAt:   now,
	}
	if err := tx.Create(&history).Error; err != nil {
		tx.Rollback()
		return nil, utils.NewInternalError("failed to record initial status", err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, utils.NewInternalError("failed to commit complaint", err)
	}

	return s.Get(complaint.ComplaintID)
}

// Assign attaches an assignee and appends the matching log entry in one
// transaction.
func (s *ComplaintService) Assign(complaintID int, req AssignmentRequest, actorID int) (*models.ComplaintAssignment, error) {
	if err := validateAssignment(req); err != nil {
		return nil, err
	}

	dueDate, err := parseDate("due_date", req.DueDate)
	if err != nil {
		return nil, err
	}

	var complaint models.Complaint
	err = s.db.Where("complaint_id = ? AND delete_at IS NULL", complaintID).
		First(&complaint).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("complaint %d: %w", complaintID, utils.ErrNotFound)
		}
		return nil, utils.NewInternalError("failed to load complaint", err)
	}

	assignedBy := actorID
	if assignedBy <= 0 {
		assignedBy = SystemAssignerID
	}

	now := time.Now()
	assignment := models.ComplaintAssignment{
		ComplaintID: complaint.ComplaintID,
		DivisionID:  req.DivisionID,
		AssigneeID:  req.AssigneeID,
		DueDate:     dueDate,
		Remark:      req.Remark,
		AssignedBy:  assignedBy,
		CreatedAt:   now,
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Create(&assignment).Error; err != nil {
		tx.Rollback()
		return nil, utils.NewInternalError("failed to create assignment", err)
	}

	detail := "assigned to division"
	if req.AssigneeID != nil {
		detail = "assigned to user"
	}
	logEntry := models.ComplaintLog{
		ComplaintID: complaint.ComplaintID,
		Action:      "assign",
		Detail:      &detail,
		ActorID:     assignedBy,
		CreatedAt:   now,
	}
	if err := tx.Create(&logEntry).Error; err != nil {
		tx.Rollback()
		return nil, utils.NewInternalError("failed to log assignment", err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, utils.NewInternalError("failed to commit assignment", err)
	}

	return &assignment, nil
}

// CurrentStatus derives the complaint's current status from its latest
// history entry, "pending" when none exists.
func (s *ComplaintService) CurrentStatus(complaintID int) (string, error) {
	return latestStatusName(s.db, "complaint_status_history", "complaint_id", complaintID)
}

// Transition appends a status-history entry for the complaint. Unlike the
// application engine there is no per-branch permission table; callers gate
// access at the route level.
func (s *ComplaintService) Transition(complaintID int, statusName string, sessionID int, remark *string) (*models.ComplaintStatusHistory, error) {
	requested := strings.TrimSpace(statusName)
	if !IsAllowedStatusName(requested) {
		return nil, utils.NewValidationError("status",
			fmt.Sprintf("unknown status '%s'", requested))
	}

	var complaint models.Complaint
	err := s.db.Where("complaint_id = ? AND delete_at IS NULL", complaintID).
		First(&complaint).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("complaint %d: %w", complaintID, utils.ErrNotFound)
		}
		return nil, utils.NewInternalError("failed to load complaint", err)
	}

	status, err := GetStatusByName(requested)
	if err != nil {
		return nil, utils.NewValidationError("status",
			fmt.Sprintf("status '%s' is missing from the catalog", requested))
	}

	if sessionID <= 0 {
		if complaint.SessionID == nil || *complaint.SessionID <= 0 {
			return nil, utils.NewInternalError("no session to attribute the status change to", nil)
		}
		sessionID = *complaint.SessionID
	}

	var trimmedRemark *string
	if remark != nil {
		if trimmed := strings.TrimSpace(*remark); trimmed != "" {
			trimmedRemark = &trimmed
		}
	}

	entry := models.ComplaintStatusHistory{
		ComplaintID: complaint.ComplaintID,
		StatusID:    status.StatusID,
		SessionID:   sessionID,
		Remark:      trimmedRemark,
		CreatedAt:   time.Now(),
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Create(&entry).Error; err != nil {
		tx.Rollback()
		return nil, utils.NewInternalError("failed to record status change", err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, utils.NewInternalError("failed to commit status change", err)
	}

	return &entry, nil
}

// Get loads one complaint with assignments, logs and history.
func (s *ComplaintService) Get(complaintID int) (*models.Complaint, error) {
	var complaint models.Complaint
	err := s.db.Preload("Organization").
		Preload("Assignments.Division").
		Preload("Assignments.Assignee").
		Preload("StatusHistory.Status").
		Preload("Logs").
		Where("complaint_id = ? AND delete_at IS NULL", complaintID).
		First(&complaint).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("complaint %d: %w", complaintID, utils.ErrNotFound)
		}
		return nil, utils.NewInternalError("failed to load complaint", err)
	}
	return &complaint, nil
}

// List returns complaints, newest first.
func (s *ComplaintService) List() ([]models.Complaint, error) {
	var complaints []models.Complaint
	err := s.db.Preload("Organization").
		Where("delete_at IS NULL").
		Order("complaint_id DESC").
		Find(&complaints).Error
	if err != nil {
		return nil, utils.NewInternalError("failed to list complaints", err)
	}
	return complaints, nil
}

// Logs returns the append-only action log for one complaint.
func (s *ComplaintService) Logs(complaintID int) ([]models.ComplaintLog, error) {
	var logs []models.ComplaintLog
	err := s.db.Where("complaint_id = ?", complaintID).
		Order("created_at ASC, log_id ASC").
		Find(&logs).Error
	if err != nil {
		return nil, utils.NewInternalError("failed to load complaint logs", err)
	}
	return logs, nil
}
