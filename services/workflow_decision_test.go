package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequiredTransitionPermissionByRequestedStatus(t *testing.T) {
	cases := []struct {
		requested string
		expected  PermissionName
	}{
		{StatusChecked, PermApplicationChecking},
		{StatusRecommended, PermApplicationRecommending},
		{StatusNotRecommended, PermApplicationRecommending},
		{StatusApproved, PermApplicationApproving},
		{StatusRejected, PermApplicationApproving},
		{StatusResubmitPending, PermApplicationUpdate},
	}

	for _, tc := range cases {
		t.Run(tc.requested, func(t *testing.T) {
			// The current status must not matter for these targets.
			for _, current := range []string{StatusPending, StatusChecked, StatusApproved} {
				permission, denial, err := RequiredTransitionPermission(tc.requested, current)
				require.NoError(t, err)
				assert.Equal(t, tc.expected, permission)
				assert.NotEmpty(t, denial)
			}
		})
	}
}

func TestRequiredTransitionPermissionForResubmitRequired(t *testing.T) {
	cases := []struct {
		name     string
		current  string
		expected PermissionName
	}{
		{"from checked", StatusChecked, PermApplicationRecommending},
		{"from legacy check alias", "check", PermApplicationRecommending},
		{"from checked with noise", "  Checked ", PermApplicationRecommending},
		{"from recommended", StatusRecommended, PermApplicationApproving},
		{"from legacy recommend alias", "recommend", PermApplicationApproving},
		{"from pending", StatusPending, PermApplicationRequireResubmit},
		{"from not recommended", StatusNotRecommended, PermApplicationRequireResubmit},
		{"from approved", StatusApproved, PermApplicationRequireResubmit},
		{"from resubmit pending", StatusResubmitPending, PermApplicationRequireResubmit},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			permission, denial, err := RequiredTransitionPermission(StatusResubmitRequired, tc.current)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, permission)
			assert.NotEmpty(t, denial)
		})
	}
}

func TestResubmitRequiredDenialMessagesAreBranchSpecific(t *testing.T) {
	_, fromChecked, err := RequiredTransitionPermission(StatusResubmitRequired, StatusChecked)
	require.NoError(t, err)
	_, fromRecommended, err := RequiredTransitionPermission(StatusResubmitRequired, StatusRecommended)
	require.NoError(t, err)
	_, fromElsewhere, err := RequiredTransitionPermission(StatusResubmitRequired, StatusPending)
	require.NoError(t, err)

	assert.NotEqual(t, fromChecked, fromRecommended)
	assert.NotEqual(t, fromChecked, fromElsewhere)
	assert.NotEqual(t, fromRecommended, fromElsewhere)
}

func TestRequiredTransitionPermissionUnknownStatus(t *testing.T) {
	_, _, err := RequiredTransitionPermission("archived", StatusPending)
	assert.Error(t, err)
}

func TestTransitionToPendingDeniedForEveryCurrentStatus(t *testing.T) {
	// No permission, update rights included, lets an actor append
	// "pending" over an application. An approved application in
	// particular must not be resettable this way.
	for _, current := range AllowedStatusNames {
		permission, _, err := RequiredTransitionPermission(StatusPending, current)
		assert.Error(t, err, "current=%s", current)
		assert.Empty(t, permission)
	}
}

func TestDecisionTableHandlesEveryAllowedStatus(t *testing.T) {
	for _, requested := range AllowedStatusNames {
		for _, current := range AllowedStatusNames {
			permission, denial, err := RequiredTransitionPermission(requested, current)
			if requested == StatusPending {
				assert.Error(t, err, "requested=%s current=%s", requested, current)
				continue
			}
			require.NoError(t, err, "requested=%s current=%s", requested, current)
			assert.NotEmpty(t, permission)
			assert.NotEmpty(t, denial)
		}
	}
}
