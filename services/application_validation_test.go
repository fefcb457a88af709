package services

import (
	"testing"
	"time"

	"travel-authorization-api/models"
	"travel-authorization-api/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func applicationFixture(departure, arrival *time.Time) models.Application {
	return models.Application{
		ApplicationID:    7,
		Purpose:          "Official visit",
		CountriesVisited: "Kenya, Uganda",
		DepartureDate:    departure,
		ArrivalDate:      arrival,
	}
}

func day(s string) *time.Time {
	parsed, err := time.Parse(dateLayout, s)
	if err != nil {
		panic(err)
	}
	return &parsed
}

func TestValidateDateChain(t *testing.T) {
	cases := []struct {
		name         string
		departure    *time.Time
		arrival      *time.Time
		commencement *time.Time
		completion   *time.Time
		wantField    string
	}{
		{
			name:      "travel dates only",
			departure: day("2026-03-01"), arrival: day("2026-03-20"),
		},
		{
			name:      "full valid chain",
			departure: day("2026-03-01"), arrival: day("2026-03-20"),
			commencement: day("2026-03-03"), completion: day("2026-03-15"),
		},
		{
			name:      "missing departure",
			arrival:   day("2026-03-20"),
			wantField: "departure_date",
		},
		{
			name:      "arrival before departure",
			departure: day("2026-03-20"), arrival: day("2026-03-01"),
			wantField: "arrival_date",
		},
		{
			name:      "commencement before departure",
			departure: day("2026-03-10"), arrival: day("2026-03-30"),
			commencement: day("2026-03-05"), completion: day("2026-03-20"),
			wantField: "commencement_date",
		},
		{
			name:      "completion before commencement",
			departure: day("2026-03-01"), arrival: day("2026-03-30"),
			commencement: day("2026-03-15"), completion: day("2026-03-10"),
			wantField: "completion_date",
		},
		{
			name:      "completion after arrival",
			departure: day("2026-03-01"), arrival: day("2026-03-10"),
			commencement: day("2026-03-03"), completion: day("2026-03-15"),
			wantField: "completion_date",
		},
		{
			name:      "commencement without completion",
			departure: day("2026-03-01"), arrival: day("2026-03-20"),
			commencement: day("2026-03-03"),
			wantField: "completion_date",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := validateDateChain(tc.departure, tc.arrival, tc.commencement, tc.completion)
			if tc.wantField == "" {
				assert.NoError(t, err)
				return
			}
			var validationErr *utils.ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tc.wantField, validationErr.Field)
		})
	}
}

func TestValidateExpensesRequiresOneChecked(t *testing.T) {
	err := validateExpenses([]ExpenseInput{
		{ExpenseTypeID: 1, Checked: false},
		{ExpenseTypeID: 2, Checked: false},
	})
	var validationErr *utils.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "expenses_met", validationErr.Field)

	assert.NoError(t, validateExpenses([]ExpenseInput{
		{ExpenseTypeID: 1, Checked: false},
		{ExpenseTypeID: 2, Checked: true},
	}))

	assert.Error(t, validateExpenses(nil))
}

func TestValidateFundsSelectedNeedsPositiveAmount(t *testing.T) {
	zero := 0.0
	amount := 150.00

	assert.Error(t, validateFunds([]FundInput{{FundTypeID: 1, IsSelected: true}}))
	assert.Error(t, validateFunds([]FundInput{{FundTypeID: 1, IsSelected: true, Amount: &zero}}))

	assert.NoError(t, validateFunds([]FundInput{{FundTypeID: 1, IsSelected: true, Amount: &amount}}))
	// Unselected rows carry no amount obligation.
	assert.NoError(t, validateFunds([]FundInput{{FundTypeID: 1, IsSelected: false}}))
}

func TestNormalizeTravelHistories(t *testing.T) {
	records, err := normalizeTravelHistories([]TravelHistoryInput{
		{Year: "2023", Purpose: "Conference", StartDate: "2023-05-01", EndDate: "2023-05-10", Country: "Japan"},
		{}, // fully empty rows are silently skipped
		{Year: " ", Purpose: "", StartDate: "", EndDate: "", Country: ""},
	})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Japan", records[0].Country)
	assert.False(t, records[0].IsAutoSaved)
}

func TestNormalizeTravelHistoriesRejectsPartialRecord(t *testing.T) {
	_, err := normalizeTravelHistories([]TravelHistoryInput{
		{Year: "2023"},
	})
	var validationErr *utils.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "travelling_histories", validationErr.Field)
}

func TestValidateRequesterTypeDiscrimination(t *testing.T) {
	employee := 10
	member := 20

	assert.NoError(t, validateRequester(ApplicationRequest{ApplicationType: 1, EmployeeID: &employee}))
	assert.NoError(t, validateRequester(ApplicationRequest{ApplicationType: 2, ParliamentMemberID: &member}))

	// Requester references are mutually exclusive by type.
	assert.Error(t, validateRequester(ApplicationRequest{ApplicationType: 1, ParliamentMemberID: &member}))
	assert.Error(t, validateRequester(ApplicationRequest{
		ApplicationType: 1, EmployeeID: &employee, ParliamentMemberID: &member,
	}))
	assert.Error(t, validateRequester(ApplicationRequest{ApplicationType: 2, EmployeeID: &employee}))
	assert.Error(t, validateRequester(ApplicationRequest{ApplicationType: 3, EmployeeID: &employee}))
}

func TestAutoSavedTravelHistoryMirrorsApplicationDates(t *testing.T) {
	departure := day("2026-04-05")
	arrival := day("2026-04-18")

	application := applicationFixture(departure, arrival)
	record := autoSavedTravelHistory(&application)

	assert.True(t, record.IsAutoSaved)
	assert.Equal(t, "2026", record.Year)
	assert.Equal(t, departure, record.StartDate)
	assert.Equal(t, arrival, record.EndDate)
	assert.Equal(t, "Official visit", record.Purpose)
	assert.Equal(t, "Kenya, Uganda", record.Country)
}
