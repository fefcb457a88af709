package services

import (
	"testing"

	"travel-authorization-api/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateAssignmentDivisionXorUser(t *testing.T) {
	division := 3
	user := 8

	assert.NoError(t, validateAssignment(AssignmentRequest{DivisionID: &division}))
	assert.NoError(t, validateAssignment(AssignmentRequest{AssigneeID: &user}))

	err := validateAssignment(AssignmentRequest{})
	var validationErr *utils.ValidationError
	require.ErrorAs(t, err, &validationErr)

	assert.Error(t, validateAssignment(AssignmentRequest{DivisionID: &division, AssigneeID: &user}))

	zero := 0
	assert.Error(t, validateAssignment(AssignmentRequest{DivisionID: &zero}))
}

func TestValidateComplaint(t *testing.T) {
	valid := ComplaintRequest{
		Subject:          "Road damage",
		Description:      "Large pothole on the main road",
		ComplainantEmail: "citizen@example.org",
	}
	assert.NoError(t, validateComplaint(valid))

	missingSubject := valid
	missingSubject.Subject = "  "
	assert.Error(t, validateComplaint(missingSubject))

	badEmail := valid
	badEmail.ComplainantEmail = "not-an-email"
	assert.Error(t, validateComplaint(badEmail))

	// Anonymous complaints are allowed; only a present email is checked.
	anonymous := valid
	anonymous.ComplainantEmail = ""
	assert.NoError(t, validateComplaint(anonymous))
}
