package booking

import "hotelreservation/internal/domain"

type Action string

const (
	ActionCreate   Action = "create"
	ActionView     Action = "view"
	ActionConfirm  Action = "confirm"
	ActionCancel   Action = "cancel"
	ActionCheckIn  Action = "check_in"
	ActionCheckOut Action = "check_out"
	ActionNoShow   Action = "no_show"
	ActionPay      Action = "pay"
	ActionSettle   Action = "settle"
	ActionRefund   Action = "refund"
	ActionReview   Action = "review"
	ActionListAll  Action = "list_all"
)

// Policy decides whether actor may perform action on b. b is nil for
// actions that do not target an existing booking.
type Policy interface {
	CanPerform(actor domain.Actor, action Action, b *domain.Booking) bool
}

// RolePolicy: staff and admins may do everything. Customers may create
// bookings and view, cancel, pay for, or review their own. Paying records a
// pending payment; only staff settle it, since settling confirms the stay.
type RolePolicy struct{}

var customerActions = map[Action]bool{
	ActionCreate: true,
	ActionView:   true,
	ActionCancel: true,
	ActionPay:    true,
	ActionReview: true,
}

func (RolePolicy) CanPerform(actor domain.Actor, action Action, b *domain.Booking) bool {
	if actor.Role.IsElevated() {
		return true
	}
	if actor.Role != domain.RoleCustomer || actor.UserID == 0 {
		return false
	}
	if !customerActions[action] {
		return false
	}
	if b == nil {
		return action == ActionCreate
	}
	return b.UserID == actor.UserID
}
