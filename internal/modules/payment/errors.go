package payment

import "errors"

var ErrInvalidAmount = errors.New("amount must be positive")
