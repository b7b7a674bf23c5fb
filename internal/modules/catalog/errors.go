package catalog

import "errors"

var (
	ErrInvalidRoomType     = errors.New("invalid room type")
	ErrInvalidRoomStatus   = errors.New("invalid room status")
	ErrDuplicateRoomNumber = errors.New("room number already exists")
)
