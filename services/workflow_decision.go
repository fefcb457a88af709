package services

import "fmt"

// transitionRule names the permission required to enact a requested status
// and the message returned when the acting role lacks it.
type transitionRule struct {
	Permission PermissionName
	Denial     string
}

// transitionRules keys the permission required for a transition on the
// requested status alone. "pending" has no row on purpose. The one rule
// that depends on the current status, "resubmit required", lives in
// resubmitRequiredRule.
var transitionRules = map[string]transitionRule{
	StatusChecked: {
		Permission: PermApplicationChecking,
		Denial:     "You are not authorized to check applications",
	},
	StatusRecommended: {
		Permission: PermApplicationRecommending,
		Denial:     "You are not authorized to recommend or not recommend applications",
	},
	StatusNotRecommended: {
		Permission: PermApplicationRecommending,
		Denial:     "You are not authorized to recommend or not recommend applications",
	},
	StatusApproved: {
		Permission: PermApplicationApproving,
		Denial:     "You are not authorized to approve or reject applications",
	},
	StatusRejected: {
		Permission: PermApplicationApproving,
		Denial:     "You are not authorized to approve or reject applications",
	},
	StatusResubmitPending: {
		Permission: PermApplicationUpdate,
		Denial:     "You are not authorized to resubmit this application",
	},
}

// resubmitRequiredRule resolves the permission for bouncing an application
// back, which depends on where it currently sits: the next stage's actor
// is the one allowed to send it back.
func resubmitRequiredRule(currentStatus string) transitionRule {
	switch NormalizeStatusName(currentStatus) {
	case StatusChecked:
		return transitionRule{
			Permission: PermApplicationRecommending,
			Denial:     "Only a recommending officer may require resubmission of a checked application",
		}
	case StatusRecommended:
		return transitionRule{
			Permission: PermApplicationApproving,
			Denial:     "Only an approving officer may require resubmission of a recommended application",
		}
	default:
		return transitionRule{
			Permission: PermApplicationRequireResubmit,
			Denial:     "You are not authorized to require resubmission of this application",
		}
	}
}

// RequiredTransitionPermission returns the permission gating a transition
// to requestedStatus given the application's current status, together with
// the branch-specific denial message. "pending" is the implicit initial
// state and no workflow operation re-enters it: requesting it is refused
// for every actor, regardless of current status or permissions held.
func RequiredTransitionPermission(requestedStatus, currentStatus string) (PermissionName, string, error) {
	if requestedStatus == StatusResubmitRequired {
		rule := resubmitRequiredRule(currentStatus)
		return rule.Permission, rule.Denial, nil
	}

	rule, ok := transitionRules[requestedStatus]
	if !ok {
		return "", "", fmt.Errorf("no workflow operation transitions an application to '%s'", requestedStatus)
	}
	return rule.Permission, rule.Denial, nil
}
