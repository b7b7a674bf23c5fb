package domain

import "errors"

// Errors shared by the availability engine and the booking lifecycle.
// Callers attach detail with fmt.Errorf("%w: ...") and match with errors.Is.
var (
	ErrInvalidRange      = errors.New("invalid_date_range")
	ErrStayTooShort      = errors.New("stay_too_short")
	ErrPastDate          = errors.New("past_check_in")
	ErrInvalidPartySize  = errors.New("invalid_party_size")
	ErrRoomUnavailable   = errors.New("room_unavailable")
	ErrPermission        = errors.New("permission_denied")
	ErrAlreadyPaid       = errors.New("already_paid")
	ErrNotFound          = errors.New("not_found")
	ErrInvalidTransition = errors.New("invalid_status_transition")
	ErrAmountMismatch    = errors.New("amount_mismatch")
)
