package services

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"travel-authorization-api/models"
	"travel-authorization-api/utils"

	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

// ApplicationService owns the travel-application aggregate: the base row
// plus expense selections, fund allocations, travel histories and files,
// written as one unit inside a transaction.
type ApplicationService struct {
	db *gorm.DB
}

// NewApplicationService builds an aggregate service over db.
func NewApplicationService(db *gorm.DB) *ApplicationService {
	return &ApplicationService{db: db}
}

// ExpenseInput is one row of the expense checklist payload.
type ExpenseInput struct {
	ExpenseTypeID int  `json:"expense_type_id"`
	Checked       bool `json:"checked"`
}

// FundInput is one fund allocation row of the payload.
type FundInput struct {
	FundTypeID int      `json:"fund_type_id"`
	IsSelected bool     `json:"is_selected"`
	Amount     *float64 `json:"amount"`
}

// TravelHistoryInput is one user-entered past trip. A record must be fully
// populated or fully empty; empty records are skipped, partial ones are
// rejected.
type TravelHistoryInput struct {
	Year      string `json:"year"`
	Purpose   string `json:"purpose"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Country   string `json:"country"`
}

// ApplicationRequest is the create/update payload. On update, zero-valued
// scalar fields are left unchanged and nil slices leave the corresponding
// sub-entity set untouched; a non-nil TravellingHistories replaces every
// stored travel-history row.
type ApplicationRequest struct {
	ApplicationType     int                   `json:"application_type"`
	EmployeeID          *int                  `json:"employee_id"`
	ParliamentMemberID  *int                  `json:"parliament_member_id"`
	OrgID               *int                  `json:"org_id"`
	DepartureDate       string                `json:"departure_date"`
	ArrivalDate         string                `json:"arrival_date"`
	CommencementDate    string                `json:"commencement_date"`
	CompletionDate      string                `json:"completion_date"`
	Purpose             string                `json:"purpose"`
	CountriesVisited    string                `json:"countries_visited"`
	CoverupDuty         string                `json:"coverup_duty"`
	ExpensesMet         []ExpenseInput        `json:"expenses_met"`
	Funds               []FundInput           `json:"funds"`
	TravellingHistories *[]TravelHistoryInput `json:"travelling_histories"`
}

func parseDate(field, value string) (*time.Time, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil, nil
	}
	parsed, err := time.Parse(dateLayout, trimmed)
	if err != nil {
		return nil, utils.NewValidationError(field, "must be a date in YYYY-MM-DD format")
	}
	return &parsed, nil
}

// validateDateChain checks the travel date ordering as a whole:
// departure < commencement < completion < arrival, with the course dates
// optional but only ever present together. Callers re-run the full chain
// whenever any date field changes; the rules are meaningless checked one
// field at a time.
func validateDateChain(departure, arrival, commencement, completion *time.Time) error {
	if departure == nil {
		return utils.NewValidationError("departure_date", "is required")
	}
	if arrival == nil {
		return utils.NewValidationError("arrival_date", "is required")
	}
	if !arrival.After(*departure) {
		return utils.NewValidationError("arrival_date", "must fall after the departure date")
	}

	if commencement == nil && completion == nil {
		return nil
	}
	if commencement == nil {
		return utils.NewValidationError("commencement_date", "is required when a completion date is set")
	}
	if completion == nil {
		return utils.NewValidationError("completion_date", "is required when a commencement date is set")
	}
	if !commencement.After(*departure) {
		return utils.NewValidationError("commencement_date", "must fall after the departure date")
	}
	if !completion.After(*commencement) {
		return utils.NewValidationError("completion_date", "must fall after the commencement date")
	}
	if !arrival.After(*completion) {
		return utils.NewValidationError("completion_date", "must fall before the arrival date")
	}
	return nil
}

// validateExpenses runs the cross-record pass over the expense checklist:
// at least one row must be checked.
func validateExpenses(expenses []ExpenseInput) error {
	if len(expenses) == 0 {
		return utils.NewValidationError("expenses_met", "at least one expense type must be checked")
	}
	for i, expense := range expenses {
		if expense.ExpenseTypeID <= 0 {
			return utils.NewValidationError("expenses_met",
				fmt.Sprintf("row %d is missing an expense type", i+1))
		}
	}
	for _, expense := range expenses {
		if expense.Checked {
			return nil
		}
	}
	return utils.NewValidationError("expenses_met", "at least one expense type must be checked")
}

// validateFunds runs the cross-record pass over fund allocations: a
// selected row must carry an amount greater than zero.
func validateFunds(funds []FundInput) error {
	for i, fund := range funds {
		if fund.FundTypeID <= 0 {
			return utils.NewValidationError("funds",
				fmt.Sprintf("row %d is missing a fund type", i+1))
		}
		if fund.IsSelected && (fund.Amount == nil || *fund.Amount <= 0) {
			return utils.NewValidationError("funds",
				fmt.Sprintf("selected row %d must carry an amount greater than zero", i+1))
		}
	}
	return nil
}

func (t TravelHistoryInput) isEmpty() bool {
	return strings.TrimSpace(t.Year) == "" &&
		strings.TrimSpace(t.Purpose) == "" &&
		strings.TrimSpace(t.StartDate) == "" &&
		strings.TrimSpace(t.EndDate) == "" &&
		strings.TrimSpace(t.Country) == ""
}

func (t TravelHistoryInput) isComplete() bool {
	return strings.TrimSpace(t.Year) != "" &&
		strings.TrimSpace(t.Purpose) != "" &&
		strings.TrimSpace(t.StartDate) != "" &&
		strings.TrimSpace(t.EndDate) != "" &&
		strings.TrimSpace(t.Country) != ""
}

// normalizeTravelHistories drops fully empty records, rejects partial ones
// and parses the kept records into model rows.
func normalizeTravelHistories(inputs []TravelHistoryInput) ([]models.TravelHistory, error) {
	records := make([]models.TravelHistory, 0, len(inputs))
	for i, input := range inputs {
		if input.isEmpty() {
			continue
		}
		if !input.isComplete() {
			return nil, utils.NewValidationError("travelling_histories",
				fmt.Sprintf("record %d is partial; year, purpose, dates and country must all be present", i+1))
		}

		start, err := parseDate("travelling_histories", input.StartDate)
		if err != nil {
			return nil, err
		}
		end, err := parseDate("travelling_histories", input.EndDate)
		if err != nil {
			return nil, err
		}

		records = append(records, models.TravelHistory{
			Year:      strings.TrimSpace(input.Year),
			Purpose:   strings.TrimSpace(input.Purpose),
			StartDate: start,
			EndDate:   end,
			Country:   strings.TrimSpace(input.Country),
		})
	}
	return records, nil
}

// autoSavedTravelHistory derives the one auto-saved record from the
// application's own travel dates. Exactly one such row exists per
// application at all times; the 3-year travel-history lookup depends on it.
func autoSavedTravelHistory(application *models.Application) models.TravelHistory {
	year := ""
	if application.DepartureDate != nil {
		year = strconv.Itoa(application.DepartureDate.Year())
	}
	return models.TravelHistory{
		ApplicationID: application.ApplicationID,
		Year:          year,
		Purpose:       application.Purpose,
		StartDate:     application.DepartureDate,
		EndDate:       application.ArrivalDate,
		Country:       application.CountriesVisited,
		IsAutoSaved:   true,
	}
}

// validateRequester checks the type discriminator and the mutually
// exclusive requester reference.
func validateRequester(req ApplicationRequest) error {
	switch req.ApplicationType {
	case models.ApplicationTypeOfficer:
		if req.EmployeeID == nil || *req.EmployeeID <= 0 {
			return utils.NewValidationError("employee_id", "is required for an officer application")
		}
		if req.ParliamentMemberID != nil {
			return utils.NewValidationError("parliament_member_id", "must be empty for an officer application")
		}
	case models.ApplicationTypeParliamentMember:
		if req.ParliamentMemberID == nil || *req.ParliamentMemberID <= 0 {
			return utils.NewValidationError("parliament_member_id", "is required for a parliament member application")
		}
		if req.EmployeeID != nil {
			return utils.NewValidationError("employee_id", "must be empty for a parliament member application")
		}
	default:
		return utils.NewValidationError("application_type", "must be 1 (officer) or 2 (parliament member)")
	}
	return nil
}

func (s *ApplicationService) generateReferenceCode(tx *gorm.DB, applicationType int) (string, error) {
	prefix := "TA"
	if applicationType == models.ApplicationTypeParliamentMember {
		prefix = "TP"
	}

	var count int64
	if err := tx.Model(&models.Application{}).
		Where("application_type = ?", applicationType).
		Count(&count).Error; err != nil {
		return "", err
	}

	return fmt.Sprintf("%s-%d-%04d", prefix, time.Now().Year(), count+1), nil
}

// Create validates the payload and persists the application with all of
// its sub-entities and the initial "pending" history entry in one
// transaction.
func (s *ApplicationService) Create(req ApplicationRequest, sessionID int) (*models.Application, error) {
	if err := validateRequester(req); err != nil {
		return nil, err
	}

	departure, err := parseDate("departure_date", req.DepartureDate)
	if err != nil {
		return nil, err
	}
	arrival, err := parseDate("arrival_date", req.ArrivalDate)
	if err != nil {
		return nil, err
	}
	commencement, err := parseDate("commencement_date", req.CommencementDate)
	if err != nil {
		return nil, err
	}
	completion, err := parseDate("completion_date", req.CompletionDate)
	if err != nil {
		return nil, err
	}

	if err := validateDateChain(departure, arrival, commencement, completion); err != nil {
		return nil, err
	}
	if err := validateExpenses(req.ExpensesMet); err != nil {
		return nil, err
	}
	if err := validateFunds(req.Funds); err != nil {
		return nil, err
	}

	var manualHistories []models.TravelHistory
	if req.TravellingHistories != nil {
		manualHistories, err = normalizeTravelHistories(*req.TravellingHistories)
		if err != nil {
			return nil, err
		}
	}

	pendingStatus, err := GetStatusByName(StatusPending)
	if err != nil {
		return nil, utils.NewValidationError("status", "status catalog is not initialized")
	}

	now := time.Now()
	application := models.Application{
		ApplicationType:    req.ApplicationType,
		EmployeeID:         req.EmployeeID,
		ParliamentMemberID: req.ParliamentMemberID,
		OrgID:              req.OrgID,
		DepartureDate:      departure,
		ArrivalDate:        arrival,
		CommencementDate:   commencement,
		CompletionDate:     completion,
		Purpose:            strings.TrimSpace(req.Purpose),
		CountriesVisited:   strings.TrimSpace(req.CountriesVisited),
		CoverupDuty:        strings.TrimSpace(req.CoverupDuty),
		SessionID:          &sessionID,
		CreateAt:           &now,
		UpdateAt:           &now,
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	referenceCode, err := s.generateReferenceCode(tx, req.ApplicationType)
	if err != nil {
		tx.Rollback()
		return nil, utils.NewInternalError("failed to generate reference code", err)
	}
	application.ReferenceCode = referenceCode

	if err := tx.Create(&application).Error; err != nil {
		tx.Rollback()
		return nil, utils.NewInternalError("failed to create application", err)
	}

	for _, expense := range req.ExpensesMet {
		row := models.ApplicationExpense{
			ApplicationID: application.ApplicationID,
			ExpenseTypeID: expense.ExpenseTypeID,
			IsChecked:     expense.Checked,
		}
		if err := tx.Create(&row).Error; err != nil {
			tx.Rollback()
			return nil, utils.NewInternalError("failed to save expense selections", err)
		}
	}

	for _, fund := range req.Funds {
		row := models.ApplicationFund{
			ApplicationID: application.ApplicationID,
			FundTypeID:    fund.FundTypeID,
			IsSelected:    fund.IsSelected,
			Amount:        fund.Amount,
		}
		if err := tx.Create(&row).Error; err != nil {
			tx.Rollback()
			return nil, utils.NewInternalError("failed to save fund allocations", err)
		}
	}

	for _, record := range manualHistories {
		record.ApplicationID = application.ApplicationID
		if err := tx.Create(&record).Error; err != nil {
			tx.Rollback()
			return nil, utils.NewInternalError("failed to save travel histories", err)
		}
	}

	autoSaved := autoSavedTravelHistory(&application)
	if err := tx.Create(&autoSaved).Error; err != nil {
		tx.Rollback()
		return nil, utils.NewInternalError("failed to save derived travel history", err)
	}

	// The creation itself is the first audit event.
	history := models.ApplicationStatusHistory{
		ApplicationID: application.ApplicationID,
		StatusID:      pendingStatus.StatusID,
		SessionID:     sessionID,
		CreatedAt:     now,
	}
	if err := tx.Create(&history).Error; err != nil {
		tx.Rollback()
		return nil, utils.NewInternalError("failed to record initial status", err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, utils.NewInternalError("failed to commit application", err)
	}

	return s.Get(application.ApplicationID)
}

// Update merges the payload into the stored application. Date rules are
// re-validated over the merged values whenever any date field changes, and
// the auto-saved travel history either follows the new dates in place or
// is replaced together with every manual record when an explicit
// travelling_histories array is supplied.
func (s *ApplicationService) Update(applicationID int, req ApplicationRequest) (*models.Application, error) {
	var application models.Application
	err := s.db.Where("application_id = ? AND delete_at IS NULL", applicationID).
		First(&application).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("application %d: %w", applicationID, utils.ErrNotFound)
		}
		return nil, utils.NewInternalError("failed to load application", err)
	}

	merged := application
	datesChanged := false

	if req.DepartureDate != "" {
		departure, err := parseDate("departure_date", req.DepartureDate)
		if err != nil {
			return nil, err
		}
		merged.DepartureDate = departure
		datesChanged = true
	}
	if req.ArrivalDate != "" {
		arrival, err := parseDate("arrival_date", req.ArrivalDate)
		if err != nil {
			return nil, err
		}
		merged.ArrivalDate = arrival
		datesChanged = true
	}
	if req.CommencementDate != "" {
		commencement, err := parseDate("commencement_date", req.CommencementDate)
		if err != nil {
			return nil, err
		}
		merged.CommencementDate = commencement
		datesChanged = true
	}
	if req.CompletionDate != "" {
		completion, err := parseDate("completion_date", req.CompletionDate)
		if err != nil {
			return nil, err
		}
		merged.CompletionDate = completion
		datesChanged = true
	}

	if datesChanged {
		if err := validateDateChain(merged.DepartureDate, merged.ArrivalDate,
			merged.CommencementDate, merged.CompletionDate); err != nil {
			return nil, err
		}
	}

	if req.Purpose != "" {
		merged.Purpose = strings.TrimSpace(req.Purpose)
	}
	if req.CountriesVisited != "" {
		merged.CountriesVisited = strings.TrimSpace(req.CountriesVisited)
	}
	if req.CoverupDuty != "" {
		merged.CoverupDuty = strings.TrimSpace(req.CoverupDuty)
	}
	if req.OrgID != nil {
		merged.OrgID = req.OrgID
	}

	if req.ExpensesMet != nil {
		if err := validateExpenses(req.ExpensesMet); err != nil {
			return nil, err
		}
	}
	if req.Funds != nil {
		if err := validateFunds(req.Funds); err != nil {
			return nil, err
		}
	}

	var manualHistories []models.TravelHistory
	if req.TravellingHistories != nil {
		manualHistories, err = normalizeTravelHistories(*req.TravellingHistories)
		if err != nil {
			return nil, err
		}
	}

	now := time.Now()
	merged.UpdateAt = &now

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Save(&merged).Error; err != nil {
		tx.Rollback()
		return nil, utils.NewInternalError("failed to update application", err)
	}

	if req.ExpensesMet != nil {
		if err := tx.Where("application_id = ?", merged.ApplicationID).
			Delete(&models.ApplicationExpense{}).Error; err != nil {
			tx.Rollback()
			return nil, utils.NewInternalError("failed to replace expense selections", err)
		}
		for _, expense := range req.ExpensesMet {
			row := models.ApplicationExpense{
				ApplicationID: merged.ApplicationID,
				ExpenseTypeID: expense.ExpenseTypeID,
				IsChecked:     expense.Checked,
			}
			if err := tx.Create(&row).Error; err != nil {
				tx.Rollback()
				return nil, utils.NewInternalError("failed to replace expense selections", err)
			}
		}
	}

	if req.Funds != nil {
		if err := tx.Where("application_id = ?", merged.ApplicationID).
			Delete(&models.ApplicationFund{}).Error; err != nil {
			tx.Rollback()
			return nil, utils.NewInternalError("failed to replace fund allocations", err)
		}
		for _, fund := range req.Funds {
			row := models.ApplicationFund{
				ApplicationID: merged.ApplicationID,
				FundTypeID:    fund.FundTypeID,
				IsSelected:    fund.IsSelected,
				Amount:        fund.Amount,
			}
			if err := tx.Create(&row).Error; err != nil {
				tx.Rollback()
				return nil, utils.NewInternalError("failed to replace fund allocations", err)
			}
		}
	}

	if req.TravellingHistories != nil {
		// Explicit array: wholesale replacement, auto-saved row included.
		if err := tx.Where("application_id = ?", merged.ApplicationID).
			Delete(&models.TravelHistory{}).Error; err != nil {
			tx.Rollback()
			return nil, utils.NewInternalError("failed to replace travel histories", err)
		}
		for _, record := range manualHistories {
			record.ApplicationID = merged.ApplicationID
			if err := tx.Create(&record).Error; err != nil {
				tx.Rollback()
				return nil, utils.NewInternalError("failed to replace travel histories", err)
			}
		}
		autoSaved := autoSavedTravelHistory(&merged)
		if err := tx.Create(&autoSaved).Error; err != nil {
			tx.Rollback()
			return nil, utils.NewInternalError("failed to save derived travel history", err)
		}
	} else {
		// No explicit array: mirror the merged dates into the existing
		// auto-saved row without touching manual records.
		derived := autoSavedTravelHistory(&merged)
		var existing models.TravelHistory
		err := tx.Where("application_id = ? AND is_auto_saved = ?", merged.ApplicationID, true).
			First(&existing).Error
		switch err {
		case nil:
			updates := map[string]interface{}{
				"year":       derived.Year,
				"purpose":    derived.Purpose,
				"start_date": derived.StartDate,
				"end_date":   derived.EndDate,
				"country":    derived.Country,
			}
			if err := tx.Model(&models.TravelHistory{}).
				Where("travel_history_id = ?", existing.TravelHistoryID).
				Updates(updates).Error; err != nil {
				tx.Rollback()
				return nil, utils.NewInternalError("failed to update derived travel history", err)
			}
		case gorm.ErrRecordNotFound:
			if err := tx.Create(&derived).Error; err != nil {
				tx.Rollback()
				return nil, utils.NewInternalError("failed to restore derived travel history", err)
			}
		default:
			tx.Rollback()
			return nil, utils.NewInternalError("failed to load derived travel history", err)
		}
	}

	if err := tx.Commit().Error; err != nil {
		return nil, utils.NewInternalError("failed to commit application update", err)
	}

	return s.Get(merged.ApplicationID)
}

// Get loads one application with all sub-entities.
func (s *ApplicationService) Get(applicationID int) (*models.Application, error) {
	var application models.Application
	err := s.db.Preload("Organization").
		Preload("Expenses.ExpenseType").
		Preload("Funds.FundType").
		Preload("TravelHistories").
		Preload("Files", "delete_at IS NULL").
		Preload("StatusHistory.Status").
		Where("application_id = ? AND delete_at IS NULL", applicationID).
		First(&application).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("application %d: %w", applicationID, utils.ErrNotFound)
		}
		return nil, utils.NewInternalError("failed to load application", err)
	}
	return &application, nil
}

// ApplicationFilter narrows List results.
type ApplicationFilter struct {
	ApplicationType int
	OrgID           int
	SessionID       int
}

// List returns applications matching the filter, newest first.
func (s *ApplicationService) List(filter ApplicationFilter) ([]models.Application, error) {
	query := s.db.Preload("Organization").
		Where("delete_at IS NULL")

	if filter.ApplicationType > 0 {
		query = query.Where("application_type = ?", filter.ApplicationType)
	}
	if filter.OrgID > 0 {
		query = query.Where("org_id = ?", filter.OrgID)
	}
	if filter.SessionID > 0 {
		query = query.Where("session_id = ?", filter.SessionID)
	}

	var applications []models.Application
	if err := query.Order("application_id DESC").Find(&applications).Error; err != nil {
		return nil, utils.NewInternalError("failed to list applications", err)
	}
	return applications, nil
}

// Delete removes the application and every owned sub-entity as one unit.
// The base row is soft-deleted; sub-entity rows go with it.
func (s *ApplicationService) Delete(applicationID int) error {
	var application models.Application
	err := s.db.Where("application_id = ? AND delete_at IS NULL", applicationID).
		First(&application).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return fmt.Errorf("application %d: %w", applicationID, utils.ErrNotFound)
		}
		return utils.NewInternalError("failed to load application", err)
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	for _, model := range []interface{}{
		&models.ApplicationExpense{},
		&models.ApplicationFund{},
		&models.TravelHistory{},
		&models.ApplicationFile{},
		&models.ApplicationStatusHistory{},
	} {
		if err := tx.Where("application_id = ?", applicationID).Delete(model).Error; err != nil {
			tx.Rollback()
			return utils.NewInternalError("failed to delete application sub-entities", err)
		}
	}

	now := time.Now()
	if err := tx.Model(&models.Application{}).
		Where("application_id = ?", applicationID).
		Update("delete_at", now).Error; err != nil {
		tx.Rollback()
		return utils.NewInternalError("failed to delete application", err)
	}

	if err := tx.Commit().Error; err != nil {
		return utils.NewInternalError("failed to commit application delete", err)
	}
	return nil
}
