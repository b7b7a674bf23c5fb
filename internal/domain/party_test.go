package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateParty(t *testing.T) {
	total, err := ValidateParty(2, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 3, total)

	total, err = ValidateParty(10, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 10, total)

	for _, tc := range []struct{ adults, children int }{{0, 2}, {1, -1}, {8, 3}} {
		_, err := ValidateParty(tc.adults, tc.children, 10)
		assert.ErrorIs(t, err, ErrInvalidPartySize)
	}
}
