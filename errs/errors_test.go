package errs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParityError(t *testing.T) {
	err := NewParityErrorf("right parity %d", 3)

	require.Equal(t, "right parity 3 format error", err.Error())
	require.ErrorIs(t, err, ErrParityMismatch)
	require.NotErrorIs(t, err, ErrOutOfRange)

	wrapped := fmt.Errorf("decode wiegand: %w", err)
	require.ErrorIs(t, wrapped, ErrParityMismatch)

	var pe *ParityError
	require.True(t, errors.As(wrapped, &pe))
	require.Equal(t, "right parity 3", pe.Check)
}

func TestNewParityError(t *testing.T) {
	err := NewParityError("left parity")
	require.Equal(t, "left parity format error", err.Error())
}
