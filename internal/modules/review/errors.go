package review

import "errors"

var (
	ErrInvalidRequest   = errors.New("invalid_request")
	ErrConflict         = errors.New("review already exists for this booking")
	ErrReviewNotAllowed = errors.New("reviews open after check-out")
)
