package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrors_AreDistinct(t *testing.T) {
	errs := []error{
		ErrMissingScreen,
		ErrMissingSnapshot,
		ErrMissingSlots,
		ErrInvalidPorts,
	}

	seen := make(map[string]bool)
	for _, err := range errs {
		msg := err.Error()
		assert.False(t, seen[msg], "duplicate error message: %s", msg)
		seen[msg] = true
	}
}

func TestErrors_Messages(t *testing.T) {
	assert.Contains(t, ErrMissingScreen.Error(), "screen")
	assert.Contains(t, ErrMissingSnapshot.Error(), "snapshot")
	assert.Contains(t, ErrMissingSlots.Error(), "slot")
	assert.Contains(t, ErrInvalidPorts.Error(), "invalid ports")
}
