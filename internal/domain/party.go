package domain

import "fmt"

const DefaultMaxPartySize = 10

// ValidateParty checks the guest counts of a stay and returns the total.
func ValidateParty(adults, children, maxParty int) (int, error) {
	if maxParty <= 0 {
		maxParty = DefaultMaxPartySize
	}
	if adults < 1 {
		return 0, fmt.Errorf("%w: at least one adult is required", ErrInvalidPartySize)
	}
	if children < 0 {
		return 0, fmt.Errorf("%w: children must not be negative", ErrInvalidPartySize)
	}
	total := adults + children
	if total > maxParty {
		return 0, fmt.Errorf("%w: %d guests exceeds the limit of %d", ErrInvalidPartySize, total, maxParty)
	}
	return total, nil
}
