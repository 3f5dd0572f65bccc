package bitstream

import (
	"testing"

	"github.com/arloliu/credfmt/errs"
	"github.com/stretchr/testify/require"
)

func TestAppendBits(t *testing.T) {
	s := New()
	require.NoError(t, s.AppendBits(0x01, 7, 1))
	require.NoError(t, s.AppendBits(0x43, 0, 8))
	require.NoError(t, s.AppendBits(0xF0, 0, 3))

	require.Equal(t, 12, s.Len())
	require.Equal(t, 2, s.ByteLen())
	require.Equal(t, "101000011111", s.String())
	require.Equal(t, []byte{0xA1, 0xF0}, s.Bytes())
}

func TestAppendBits_InvalidWindow(t *testing.T) {
	s := New()
	err := s.AppendBits(0xFF, 6, 3)
	require.ErrorIs(t, err, errs.ErrOutOfRange)
	require.Equal(t, 0, s.Len())
}

func TestConcat(t *testing.T) {
	s := New()
	s.Concat([]byte{0xDE, 0xAD})
	require.Equal(t, 16, s.Len())
	require.Equal(t, []byte{0xDE, 0xAD}, s.Bytes())

	require.NoError(t, s.ConcatBits([]byte{0xBE, 0xEF}, 4, 8))
	require.Equal(t, 24, s.Len())
	require.Equal(t, []byte{0xDE, 0xAD, 0xEE}, s.Bytes())

	other, err := FromBytes([]byte{0xC0}, 2)
	require.NoError(t, err)
	s.ConcatStream(other)
	require.Equal(t, 26, s.Len())
	require.Equal(t, []byte{0xDE, 0xAD, 0xEE, 0xC0}, s.Bytes())
}

func TestFromBytes(t *testing.T) {
	s, err := FromBytes([]byte{0xFF, 0xFF}, 12)
	require.NoError(t, err)
	require.Equal(t, 12, s.Len())
	require.Equal(t, []byte{0xFF, 0xF0}, s.Bytes(), "bits past the length are cleared")

	_, err = FromBytes([]byte{0xFF}, 9)
	require.ErrorIs(t, err, errs.ErrOutOfRange)
}

func TestFromUint64(t *testing.T) {
	s, err := FromUint64(1000, 16)
	require.NoError(t, err)
	require.Equal(t, []byte{0x03, 0xE8}, s.Bytes())

	v, err := s.Uint64()
	require.NoError(t, err)
	require.Equal(t, uint64(1000), v)

	s, err = FromUint64(5, 3)
	require.NoError(t, err)
	require.Equal(t, "101", s.String())

	_, err = FromUint64(8, 3)
	require.ErrorIs(t, err, errs.ErrOutOfRange)

	_, err = FromUint64(1, 65)
	require.ErrorIs(t, err, errs.ErrOutOfRange)

	s, err = FromUint64(^uint64(0), 64)
	require.NoError(t, err)
	require.True(t, s.All())
}

func TestInsert(t *testing.T) {
	s, err := FromBytes([]byte{0xFF}, 8)
	require.NoError(t, err)

	// Splice a single zero bit taken from bit 7 of 0x00 at position 3.
	require.NoError(t, s.Insert(3, []byte{0x00}, 7, 1))
	require.Equal(t, 9, s.Len())
	require.Equal(t, "111011111", s.String())

	require.NoError(t, s.Insert(0, []byte{0x80}, 0, 1))
	require.Equal(t, "1111011111", s.String())

	require.NoError(t, s.Insert(s.Len(), []byte{0x00}, 0, 2))
	require.Equal(t, "111101111100", s.String())

	require.ErrorIs(t, s.Insert(13, []byte{0x00}, 0, 1), errs.ErrOutOfRange)
	require.ErrorIs(t, s.Insert(-1, []byte{0x00}, 0, 1), errs.ErrOutOfRange)
}

func TestInsertStream_Self(t *testing.T) {
	s, err := FromBytes([]byte{0xA0}, 4)
	require.NoError(t, err)

	require.NoError(t, s.InsertStream(2, s))
	require.Equal(t, "10101010", s.String())
}

func TestWriteAt(t *testing.T) {
	s := NewZero(26)

	// Write a single parity bit at position 25 without touching neighbours.
	require.NoError(t, s.Set(24, true))
	require.NoError(t, s.WriteAt(25, []byte{0x01}, 7, 1))
	require.Equal(t, []byte{0x00, 0x00, 0x00, 0xC0}, s.Bytes())

	require.NoError(t, s.WriteAt(1, []byte{0x43}, 0, 8))
	require.Equal(t, byte(0x21), s.Bytes()[0])
	require.Equal(t, byte(0x80), s.Bytes()[1])

	require.ErrorIs(t, s.WriteAt(20, []byte{0xFF}, 0, 8), errs.ErrOutOfRange)
	require.Equal(t, 26, s.Len(), "failed write must not grow the stream")
}

func TestWriteStreamAt(t *testing.T) {
	s := NewZero(16)
	v, err := FromUint64(0x3F, 6)
	require.NoError(t, err)

	require.NoError(t, s.WriteStreamAt(5, v))
	require.Equal(t, "0000011111100000", s.String())
}

func TestExtract(t *testing.T) {
	s, err := FromBytes([]byte{0xA1, 0x81, 0xF4, 0x40}, 26)
	require.NoError(t, err)

	fc, err := s.Extract(1, 8)
	require.NoError(t, err)
	v, err := fc.Uint64()
	require.NoError(t, err)
	require.Equal(t, uint64(67), v)

	uid, err := s.Extract(9, 16)
	require.NoError(t, err)
	v, err = uid.Uint64()
	require.NoError(t, err)
	require.Equal(t, uint64(1000), v)

	_, err = s.Extract(20, 7)
	require.ErrorIs(t, err, errs.ErrOutOfRange)

	empty, err := s.Extract(26, 0)
	require.NoError(t, err)
	require.Equal(t, 0, empty.Len())
}

func TestUint64_TooLong(t *testing.T) {
	s := NewZero(65)
	_, err := s.Uint64()
	require.ErrorIs(t, err, errs.ErrOutOfRange)
}

func TestTestAndSet(t *testing.T) {
	s := NewZero(10)
	require.NoError(t, s.Set(9, true))

	set, err := s.Test(9)
	require.NoError(t, err)
	require.True(t, set)

	set, err = s.Test(0)
	require.NoError(t, err)
	require.False(t, set)

	_, err = s.Test(10)
	require.ErrorIs(t, err, errs.ErrOutOfRange)
	require.ErrorIs(t, s.Set(10, true), errs.ErrOutOfRange)

	require.Equal(t, byte(1), s.Bit(9))
	require.Equal(t, byte(0), s.Bit(100))
}

func TestNoneAnyAll(t *testing.T) {
	s := NewZero(5)
	require.True(t, s.None())
	require.False(t, s.Any())
	require.False(t, s.All())

	for i := range 5 {
		require.NoError(t, s.Set(i, true))
	}
	require.False(t, s.None())
	require.True(t, s.Any())
	require.True(t, s.All())
	require.Equal(t, 5, s.Count())
}

func TestClear(t *testing.T) {
	s, err := FromBytes([]byte{0xFF, 0xFF}, 16)
	require.NoError(t, err)

	s.Clear()
	require.Equal(t, 0, s.Len())
	require.Empty(t, s.Bytes())

	s.Append(0x0F)
	require.Equal(t, []byte{0x0F}, s.Bytes())
}

func TestCloneAndEqual(t *testing.T) {
	s, err := FromBytes([]byte{0xAB}, 7)
	require.NoError(t, err)

	c := s.Clone()
	require.True(t, s.Equal(c))

	require.NoError(t, c.Set(0, false))
	require.False(t, s.Equal(c))
	require.False(t, s.Equal(nil))
}
