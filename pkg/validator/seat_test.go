package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidSeatNumber(t *testing.T) {
	valid := []string{"A1", "A4", "E2", "J1", "J4"}
	for _, seat := range valid {
		assert.True(t, IsValidSeatNumber(seat), "seat %q should be valid", seat)
	}

	invalid := []string{"", "A", "1", "A0", "A5", "K1", "a1", "A11", " A1", "A1 "}
	for _, seat := range invalid {
		assert.False(t, IsValidSeatNumber(seat), "seat %q should be invalid", seat)
	}
}
