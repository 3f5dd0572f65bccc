package collision

import (
	"testing"

	"github.com/arloliu/credfmt/errs"
	"github.com/arloliu/credfmt/internal/hash"
	"github.com/stretchr/testify/require"
)

func TestNewTracker(t *testing.T) {
	tracker := NewTracker()

	require.NotNil(t, tracker)
	require.Equal(t, 0, tracker.Count())
	require.False(t, tracker.HasCollision())
	require.Empty(t, tracker.Names())
}

func TestTracker_Track(t *testing.T) {
	tracker := NewTracker()

	id, err := tracker.Track("uid")
	require.NoError(t, err)
	require.Equal(t, hash.ID("uid"), id)

	_, err = tracker.Track("facility code")
	require.NoError(t, err)
	require.Equal(t, []string{"uid", "facility code"}, tracker.Names())
	require.True(t, tracker.Contains("uid"))
	require.False(t, tracker.Contains("company code"))
}

func TestTracker_EmptyName(t *testing.T) {
	tracker := NewTracker()

	_, err := tracker.Track("")
	require.ErrorIs(t, err, errs.ErrInvalidFieldName)
	require.Equal(t, 0, tracker.Count())
}

func TestTracker_Duplicate(t *testing.T) {
	tracker := NewTracker()

	_, err := tracker.Track("uid")
	require.NoError(t, err)

	_, err = tracker.Track("uid")
	require.ErrorIs(t, err, errs.ErrDuplicateField)
	require.False(t, tracker.HasCollision())
	require.Equal(t, 1, tracker.Count())
}

func TestTracker_Collision(t *testing.T) {
	tracker := NewTracker()

	require.NoError(t, tracker.TrackName("left parity", 0x1234567890abcdef))
	require.False(t, tracker.HasCollision())

	require.NoError(t, tracker.TrackName("right parity", 0x1234567890abcdef))
	require.True(t, tracker.HasCollision())
	require.Equal(t, 2, tracker.Count())

	require.ErrorIs(t, tracker.TrackName("right parity", 0x1234567890abcdef), errs.ErrDuplicateField)

	require.True(t, tracker.UntrackName("left parity", 0x1234567890abcdef))
	require.False(t, tracker.HasCollision())
	require.Equal(t, []string{"right parity"}, tracker.Names())

	require.False(t, tracker.UntrackName("left parity", 0x1234567890abcdef))
}

func TestTracker_Untrack(t *testing.T) {
	tracker := NewTracker()

	_, err := tracker.Track("uid")
	require.NoError(t, err)
	require.True(t, tracker.Untrack("uid"))
	require.False(t, tracker.Untrack("uid"))
	require.False(t, tracker.Contains("uid"))

	_, err = tracker.Track("uid")
	require.NoError(t, err, "a removed name can be tracked again")
}

func TestTracker_Reset(t *testing.T) {
	tracker := NewTracker()

	require.NoError(t, tracker.TrackName("a", 1))
	require.NoError(t, tracker.TrackName("b", 1))
	require.True(t, tracker.HasCollision())

	tracker.Reset()
	require.Equal(t, 0, tracker.Count())
	require.False(t, tracker.HasCollision())
	require.NoError(t, tracker.TrackName("a", 1))
}
