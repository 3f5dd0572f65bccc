package format

import (
	"testing"

	"github.com/arloliu/credfmt/errs"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	for _, typ := range Types() {
		t.Run(typ.String(), func(t *testing.T) {
			f, err := New(typ)
			require.NoError(t, err)
			require.Equal(t, typ, f.Type())

			data, err := f.LinearData()
			require.NoError(t, err)
			require.Len(t, data, (f.DataLength()+7)/8)
		})
	}

	_, err := New(TypeUnknown)
	require.ErrorIs(t, err, errs.ErrUnknownFormat)
	_, err = New(Type(0x40))
	require.ErrorIs(t, err, errs.ErrUnknownFormat)
}

func TestParseType(t *testing.T) {
	for _, typ := range Types() {
		got, err := ParseType(typ.String())
		require.NoError(t, err)
		require.Equal(t, typ, got)
	}

	got, err := ParseType("wiegand26")
	require.NoError(t, err)
	require.Equal(t, TypeWiegand26, got)

	_, err = ParseType("wiegand99")
	require.ErrorIs(t, err, errs.ErrUnknownFormat)
	require.Equal(t, "Unknown", Type(0x40).String())
}

func TestIdentify(t *testing.T) {
	data := mustHex(t, "A1 81 F4 40")

	getronik, err := NewGetronik40()
	require.NoError(t, err)
	wrongFacility, err := NewWiegand26(WithFacilityCode(99))
	require.NoError(t, err)
	rightFacility, err := NewWiegand26(WithFacilityCode(67))
	require.NoError(t, err)

	got, err := Identify(data, nil, getronik, wrongFacility, rightFacility)
	require.NoError(t, err)
	require.Equal(t, TypeWiegand26, got.Type())
	require.Equal(t, uint64(1000), got.(StaticFormat).UID())
	require.NotSame(t, rightFacility, got)
	require.Equal(t, uint64(0), rightFacility.UID())

	_, err = Identify(data, getronik, wrongFacility)
	require.ErrorIs(t, err, errs.ErrNoMatchingFormat)

	_, err = Identify(data)
	require.ErrorIs(t, err, errs.ErrNoMatchingFormat)
}

func TestIdentify_FirstMatchWins(t *testing.T) {
	data := mustHex(t, "2E 16 27 58 9F")

	raw := NewRaw(nil)
	getronik, err := NewGetronik40()
	require.NoError(t, err)

	got, err := Identify(data, getronik, raw)
	require.NoError(t, err)
	require.Equal(t, TypeGetronik40Bit, got.Type())

	got, err = Identify(data, raw, getronik)
	require.NoError(t, err)
	require.Equal(t, TypeRaw, got.Type())
	require.Equal(t, data, got.(*Raw).RawData())
}
