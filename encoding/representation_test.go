package encoding

import (
	"testing"

	"github.com/arloliu/credfmt/bitstream"
	"github.com/arloliu/credfmt/errs"
	"github.com/arloliu/credfmt/parity"
	"github.com/stretchr/testify/require"
)

func stream(t *testing.T, data []byte, bits int) *bitstream.Stream {
	t.Helper()
	s, err := bitstream.FromBytes(data, bits)
	require.NoError(t, err)

	return s
}

func TestLittleEndian_WholeBytes(t *testing.T) {
	var rep LittleEndianRepresentation

	out, err := rep.ConvertNumeric(stream(t, []byte{0x12, 0x34, 0x56}, 24))
	require.NoError(t, err)
	require.Equal(t, []byte{0x56, 0x34, 0x12}, out.Bytes())

	back, err := rep.RevertNumeric(out)
	require.NoError(t, err)
	require.Equal(t, []byte{0x12, 0x34, 0x56}, back.Bytes())
}

func TestLittleEndian_PartialByte(t *testing.T) {
	var rep LittleEndianRepresentation

	// 0xABC in 12 bits pads to 0x0A 0xBC, swaps to 0xBC 0x0A and trims the pad: 0xBCA.
	in := stream(t, []byte{0xAB, 0xC0}, 12)
	out, err := rep.ConvertBinary(in)
	require.NoError(t, err)
	require.Equal(t, 12, out.Len())
	require.Equal(t, []byte{0xBC, 0xA0}, out.Bytes())

	back, err := rep.RevertBinary(out)
	require.NoError(t, err)
	require.True(t, in.Equal(back))
}

func TestLittleEndian_RoundTripLengths(t *testing.T) {
	var rep LittleEndianRepresentation
	src := []byte{0xDE, 0xAD, 0xBE, 0xEF, 0x01}

	for bits := 0; bits <= 40; bits++ {
		in := stream(t, src, bits)
		out, err := rep.ConvertNumeric(in)
		require.NoError(t, err)
		require.Equal(t, bits, out.Len())
		require.Equal(t, bits, rep.ConvertLength(bits))

		back, err := rep.RevertNumeric(out)
		require.NoError(t, err)
		require.True(t, in.Equal(back), "bits=%d", bits)
	}
}

func TestPassThroughRepresentations(t *testing.T) {
	in := stream(t, []byte{0x12, 0x34}, 13)

	for _, rep := range []DataRepresentation{BigEndianRepresentation{}, NoRepresentation{}} {
		out, err := rep.ConvertNumeric(in)
		require.NoError(t, err)
		require.True(t, in.Equal(out))

		out, err = rep.RevertBinary(in)
		require.NoError(t, err)
		require.True(t, in.Equal(out))

		require.Equal(t, 13, rep.ConvertLength(13))

		_, err = rep.ConvertBinary(nil)
		require.ErrorIs(t, err, errs.ErrOutOfRange)
	}
}

func TestNewDataRepresentation(t *testing.T) {
	for _, kind := range []Kind{KindBigEndian, KindLittleEndian, KindNoEncoding} {
		rep, err := NewDataRepresentation(kind)
		require.NoError(t, err)
		require.Equal(t, kind, rep.Kind())
		require.Equal(t, kind.String(), rep.Name())
	}

	_, err := NewDataRepresentation(KindBinary)
	require.ErrorIs(t, err, errs.ErrInvalidConfiguration)
}

func TestAddRemoveParity(t *testing.T) {
	in := stream(t, []byte{0xF1}, 8)

	out, err := AddParity(parity.Odd, parity.None, 4, in)
	require.NoError(t, err)
	// 1111 has even weight -> odd bit 1; 0001 has odd weight -> odd bit 0.
	require.Equal(t, "11111"+"00001", out.String())

	back, err := RemoveParity(parity.Odd, parity.None, 4, out)
	require.NoError(t, err)
	require.True(t, in.Equal(back))

	require.NoError(t, out.Set(5, true))
	_, err = RemoveParity(parity.Odd, parity.None, 4, out)
	require.EqualError(t, err, "block 1 left parity format error")

	_, err = AddParity(parity.Even, parity.Even, 3, in)
	require.ErrorIs(t, err, errs.ErrOutOfRange)

	_, err = RemoveParity(parity.Even, parity.Even, 4, in)
	require.ErrorIs(t, err, errs.ErrOutOfRange)

	_, err = AddParity(parity.Even, parity.None, 0, in)
	require.ErrorIs(t, err, errs.ErrInvalidConfiguration)
}

func TestAddParity_NoParity(t *testing.T) {
	in := stream(t, []byte{0xF1}, 8)

	out, err := AddParity(parity.None, parity.None, 4, in)
	require.NoError(t, err)
	require.True(t, in.Equal(out))
}

func TestInvertBitSex(t *testing.T) {
	require.Equal(t, byte(0x0D), InvertBitSex(0x0B, 4))
	require.Equal(t, byte(0x0D), InvertBitSex(0x1B, 4), "bits above length are dropped")
	require.Equal(t, byte(0x80), InvertBitSex(0x01, 8))
	require.Equal(t, byte(0xFF), InvertBitSex(0xFF, 12))
	require.Equal(t, byte(0x00), InvertBitSex(0xFF, 0))
	require.Equal(t, byte(0x01), InvertBitSex(0x01, 1))
}
