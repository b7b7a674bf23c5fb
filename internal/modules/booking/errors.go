package booking

import "errors"

var (
	// ErrRoomBusy means another request holds the room lock; the caller may retry.
	ErrRoomBusy = errors.New("room is being booked by another request")
)
