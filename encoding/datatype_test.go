package encoding

import (
	"testing"

	"github.com/arloliu/credfmt/bitstream"
	"github.com/arloliu/credfmt/errs"
	"github.com/arloliu/credfmt/parity"
	"github.com/stretchr/testify/require"
)

func TestBinaryDataType_Convert(t *testing.T) {
	var dt BinaryDataType

	s, err := dt.Convert(1000, 16)
	require.NoError(t, err)
	require.Equal(t, 16, s.Len())
	require.Equal(t, []byte{0x03, 0xE8}, s.Bytes())

	s, err = dt.Convert(5, 3)
	require.NoError(t, err)
	require.Equal(t, "101", s.String())

	_, err = dt.Convert(256, 8)
	require.ErrorIs(t, err, errs.ErrOutOfRange)

	s, err = dt.Convert(1, 72)
	require.NoError(t, err)
	require.Equal(t, 72, s.Len())
	require.Equal(t, byte(0x01), s.Bytes()[8])
}

func TestBinaryDataType_RoundTrip(t *testing.T) {
	var dt BinaryDataType

	for _, tc := range []struct {
		value uint64
		bits  int
	}{
		{0, 1}, {1, 1}, {67, 8}, {98765, 35}, {^uint64(0), 64}, {12345, 80},
	} {
		s, err := dt.Convert(tc.value, tc.bits)
		require.NoError(t, err)
		require.Equal(t, tc.bits, s.Len())

		got, err := dt.Revert(s, tc.bits)
		require.NoError(t, err)
		require.Equal(t, tc.value, got)
	}
}

func TestBinaryDataType_RevertOverflow(t *testing.T) {
	var dt BinaryDataType
	s := bitstream.NewZero(70)
	require.NoError(t, s.Set(0, true))

	_, err := dt.Revert(s, 70)
	require.ErrorIs(t, err, errs.ErrOutOfRange)

	_, err = dt.Revert(s, 71)
	require.ErrorIs(t, err, errs.ErrOutOfRange)
}

func TestBinaryDataType_Parity(t *testing.T) {
	_, err := NewBinary(WithLeftParity(parity.Even))
	require.ErrorIs(t, err, errs.ErrInvalidConfiguration)

	dt, err := NewBinary(WithLeftParity(parity.Even), WithRightParity(parity.Odd), WithBlockSize(4))
	require.NoError(t, err)
	require.Equal(t, 2, dt.Parity().Overhead())

	// 0xA5 -> blocks 1010 and 0101, each wrapped as E|block|O.
	s, err := dt.Convert(0xA5, 12)
	require.NoError(t, err)
	require.Equal(t, "010101"+"001011", s.String())

	got, err := dt.Revert(s, 12)
	require.NoError(t, err)
	require.Equal(t, uint64(0xA5), got)

	require.NoError(t, s.Set(5, false))
	_, err = dt.Revert(s, 12)
	require.ErrorIs(t, err, errs.ErrParityMismatch)
	require.EqualError(t, err, "block 0 right parity format error")
}

func TestBCDNibbleDataType(t *testing.T) {
	var dt BCDNibbleDataType

	s, err := dt.Convert(974641, 32)
	require.NoError(t, err)
	require.Equal(t, []byte{0x00, 0x97, 0x46, 0x41}, s.Bytes())

	got, err := dt.Revert(s, 32)
	require.NoError(t, err)
	require.Equal(t, uint64(974641), got)

	_, err = dt.Convert(123456789, 32)
	require.ErrorIs(t, err, errs.ErrOutOfRange)

	s, err = dt.Convert(0, 8)
	require.NoError(t, err)
	require.Equal(t, []byte{0x00}, s.Bytes())
}

func TestBCDNibbleDataType_SpareBits(t *testing.T) {
	var dt BCDNibbleDataType

	// 10 bits hold two digits; the two leading spare bits stay zero.
	s, err := dt.Convert(42, 10)
	require.NoError(t, err)
	require.Equal(t, "0001000010", s.String())

	got, err := dt.Revert(s, 10)
	require.NoError(t, err)
	require.Equal(t, uint64(42), got)
}

func TestBCDNibbleDataType_InvalidDigit(t *testing.T) {
	var dt BCDNibbleDataType
	s, err := bitstream.FromBytes([]byte{0x1A}, 8)
	require.NoError(t, err)

	_, err = dt.Revert(s, 8)
	require.ErrorIs(t, err, errs.ErrInvalidEncoding)
}

func TestBCDNibbleDataType_WithParity(t *testing.T) {
	dt, err := NewBCDNibble(WithRightParity(parity.Odd))
	require.NoError(t, err)

	s, err := dt.Convert(42, 10)
	require.NoError(t, err)
	require.Equal(t, "01000"+"00100", s.String())

	got, err := dt.Revert(s, 10)
	require.NoError(t, err)
	require.Equal(t, uint64(42), got)
}

func TestBCDByteDataType(t *testing.T) {
	var dt BCDByteDataType

	s, err := dt.Convert(1234, 32)
	require.NoError(t, err)
	require.Equal(t, []byte{0x01, 0x02, 0x03, 0x04}, s.Bytes())

	got, err := dt.Revert(s, 32)
	require.NoError(t, err)
	require.Equal(t, uint64(1234), got)

	bad, err := bitstream.FromBytes([]byte{0x01, 0x0A}, 16)
	require.NoError(t, err)
	_, err = dt.Revert(bad, 16)
	require.ErrorIs(t, err, errs.ErrInvalidEncoding)

	_, err = dt.Convert(100, 16)
	require.ErrorIs(t, err, errs.ErrOutOfRange)
}

func TestNewDataType(t *testing.T) {
	for _, kind := range []Kind{KindBinary, KindBCDByte, KindBCDNibble} {
		dt, err := NewDataType(kind)
		require.NoError(t, err)
		require.Equal(t, kind, dt.Kind())
		require.Equal(t, kind.String(), dt.Name())
	}

	_, err := NewDataType(KindLittleEndian)
	require.ErrorIs(t, err, errs.ErrInvalidConfiguration)

	_, err = NewDataType(KindBinary, WithBlockSize(0))
	require.ErrorIs(t, err, errs.ErrInvalidConfiguration)
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind("bcdnibble")
	require.NoError(t, err)
	require.Equal(t, KindBCDNibble, k)
	require.True(t, k.IsDataType())
	require.False(t, k.IsRepresentation())

	k, err = ParseKind("LittleEndian")
	require.NoError(t, err)
	require.True(t, k.IsRepresentation())

	_, err = ParseKind("ebcdic")
	require.Error(t, err)
	require.Equal(t, "Unknown", Kind(0xEE).String())
}
