package domain

// Action identifies an operation subject to authorization.
type Action string

const (
	ActionViewComplaint     Action = "complaint:view"
	ActionSubmitFeedback    Action = "complaint:feedback"
	ActionListAllComplaints Action = "complaint:list_all"
	ActionUpdateStatus      Action = "complaint:update_status"
	ActionAttachEvidence    Action = "complaint:attach_evidence"
	ActionViewDashboard     Action = "dashboard:view"
)

// adminOnly actions require the admin role outright.
var adminOnly = map[Action]bool{
	ActionListAllComplaints: true,
	ActionUpdateStatus:      true,
	ActionAttachEvidence:    true,
	ActionViewDashboard:     true,
}

// ownerOnly actions require the admin role OR ownership of the target.
var ownerOnly = map[Action]bool{
	ActionViewComplaint:  true,
	ActionSubmitFeedback: true,
}

// Authorize decides whether a principal may perform an action against a
// complaint owned by ownerID. Actions that consult no resource pass zero.
// Rules are evaluated role gate first, then ownership gate.
func Authorize(p Principal, action Action, ownerID uint) error {
	if adminOnly[action] {
		if p.Role() != RoleAdmin {
			return ErrForbidden
		}
		return nil
	}

	if ownerOnly[action] {
		if p.Role() == RoleAdmin {
			return nil
		}
		if user, ok := p.(UserPrincipal); ok && user.ID == ownerID {
			return nil
		}
		return ErrForbidden
	}

	// Remaining actions are open or self-scoped by construction.
	return nil
}
