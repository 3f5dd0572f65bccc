package format

import (
	"testing"

	"github.com/arloliu/credfmt/errs"
	"github.com/stretchr/testify/require"
)

func TestASCII(t *testing.T) {
	f, err := NewASCII(WithLength(4))
	require.NoError(t, err)
	require.Equal(t, 32, f.DataLength())

	f.SetValue("AB")
	data, err := f.LinearData()
	require.NoError(t, err)
	require.Equal(t, []byte("AB  "), data)

	decoded, err := NewASCII(WithLength(4))
	require.NoError(t, err)
	require.NoError(t, decoded.SetLinearData([]byte("CD  trailing")))
	require.Equal(t, "CD", decoded.Value())

	require.ErrorIs(t, decoded.SetLinearData([]byte("ab")), errs.ErrDataTooShort)
	require.ErrorIs(t, decoded.SetLinearData([]byte{'a', 0x80, 'b', 'c'}), errs.ErrInvalidEncoding)
	require.Equal(t, "CD", decoded.Value())

	f.SetValue("ABCDE")
	_, err = f.LinearData()
	require.ErrorIs(t, err, errs.ErrOutOfRange)

	f.SetValue("é")
	_, err = f.LinearData()
	require.ErrorIs(t, err, errs.ErrInvalidEncoding)
}

func TestASCII_Padding(t *testing.T) {
	f, err := NewASCII(WithLength(4), WithPadding('*'))
	require.NoError(t, err)
	require.Equal(t, byte('*'), f.Padding())

	f.SetValue("12")
	data, err := f.LinearData()
	require.NoError(t, err)
	require.Equal(t, []byte("12**"), data)

	decoded := f.Clone().(*ASCII)
	decoded.SetValue("")
	require.NoError(t, decoded.SetLinearData(data))
	require.Equal(t, "12", decoded.Value())
}

func TestASCII_HighPadding(t *testing.T) {
	f, err := NewASCII(WithLength(4), WithPadding(0xFF))
	require.NoError(t, err)

	require.NoError(t, f.SetLinearData([]byte{'A', 'B', 0xFF, 0xFF}))
	require.Equal(t, "AB", f.Value())

	require.ErrorIs(t, f.SetLinearData([]byte{'A', 0xE9, 0xFF, 0xFF}), errs.ErrInvalidEncoding)
	require.ErrorIs(t, f.SetLinearData([]byte{'A', 0x80, 0xFE, 0xFF}), errs.ErrInvalidEncoding)
	require.Equal(t, "AB", f.Value())
}

func TestASCII_Skeleton(t *testing.T) {
	sk, err := NewASCII(WithLength(0))
	require.NoError(t, err)
	require.Equal(t, 0, sk.Length())

	decoded := sk.Clone().(*ASCII)
	require.NoError(t, decoded.SetLinearData([]byte("HELLO")))
	require.Equal(t, 5, decoded.Length())
	require.Equal(t, "HELLO", decoded.Value())

	require.True(t, sk.CheckSkeleton(decoded))

	fixed, err := NewASCII(WithLength(4))
	require.NoError(t, err)
	require.False(t, fixed.CheckSkeleton(decoded))
	require.False(t, sk.CheckSkeleton(NewRaw([]byte("HELLO"))))

	require.ErrorIs(t, fixed.SetLength(-1), errs.ErrInvalidConfiguration)
	_, err = NewASCII(WithLength(-1))
	require.ErrorIs(t, err, errs.ErrInvalidConfiguration)
}

func TestRaw(t *testing.T) {
	f := NewRaw([]byte{1, 2, 3})
	require.Equal(t, 24, f.DataLength())

	data, err := f.LinearData()
	require.NoError(t, err)
	require.Equal(t, []byte{1, 2, 3}, data)

	data[0] = 0xFF
	require.Equal(t, []byte{1, 2, 3}, f.RawData())

	require.ErrorIs(t, f.SetLinearData([]byte{9, 8}), errs.ErrDataTooShort)
	require.NoError(t, f.SetLinearData([]byte{9, 8, 7, 6}))
	require.Equal(t, []byte{9, 8, 7}, f.RawData())

	empty := NewRaw(nil)
	require.NoError(t, empty.SetLinearData([]byte{1, 2, 3, 4, 5}))
	require.Equal(t, 40, empty.DataLength())

	require.True(t, NewRaw(nil).CheckSkeleton(f))
	require.True(t, NewRaw([]byte{0, 0, 0}).CheckSkeleton(f))
	require.False(t, NewRaw([]byte{0}).CheckSkeleton(f))

	c := f.Clone().(*Raw)
	c.SetRawData([]byte{1})
	require.Equal(t, 24, f.DataLength())
}
