package credfmt

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/credfmt/compress"
	"github.com/arloliu/credfmt/errs"
	"github.com/arloliu/credfmt/format"
	"github.com/arloliu/credfmt/journal"
)

func TestNewFormat(t *testing.T) {
	f, err := NewFormat("corporate1000", format.WithCompanyCode(1234), format.WithUID(7))
	require.NoError(t, err)
	require.Equal(t, format.TypeCorporate1000, f.Type())
	require.Equal(t, uint64(1234), f.(*format.Corporate1000).CompanyCode())

	_, err = NewFormat("Wiegand99")
	require.ErrorIs(t, err, errs.ErrUnknownFormat)
}

func TestEncodeDecode(t *testing.T) {
	f, err := NewFormat("Wiegand26", format.WithFacilityCode(67), format.WithUID(1000))
	require.NoError(t, err)

	data, err := Encode(f)
	require.NoError(t, err)
	require.Equal(t, []byte{0xA1, 0x81, 0xF4, 0x40}, data)

	decoded, err := Decode(format.TypeWiegand26, data)
	require.NoError(t, err)
	require.Equal(t, uint64(1000), decoded.(format.StaticFormat).UID())
	require.Equal(t, uint64(67), decoded.(format.FacilityCoder).FacilityCode())

	data[3] ^= 0x40
	_, err = Decode(format.TypeWiegand26, data)
	require.ErrorIs(t, err, errs.ErrParityMismatch)

	_, err = Encode(nil)
	require.ErrorIs(t, err, errs.ErrInvalidConfiguration)
}

func TestIdentify(t *testing.T) {
	corp, err := format.NewCorporate1000(format.WithCompanyCode(1234))
	require.NoError(t, err)
	site, err := format.NewWiegand26(format.WithFacilityCode(67))
	require.NoError(t, err)

	f, err := Identify([]byte{0xA1, 0x81, 0xF4, 0x40}, corp, site)
	require.NoError(t, err)
	require.Equal(t, format.TypeWiegand26, f.Type())

	_, err = Identify([]byte{0xA1, 0x81, 0xF4, 0x40}, corp)
	require.ErrorIs(t, err, errs.ErrNoMatchingFormat)
}

func TestJournal(t *testing.T) {
	enc, err := NewJournalEncoder(journal.WithCompression(compress.TypeS2))
	require.NoError(t, err)

	f, err := NewFormat("Wiegand26", format.WithFacilityCode(67), format.WithUID(1000))
	require.NoError(t, err)
	require.NoError(t, enc.AddFormat(f))

	blob, err := enc.Finish()
	require.NoError(t, err)

	records, err := DecodeJournal(blob)
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, format.TypeWiegand26, records[0].Type)
	require.Equal(t, 26, records[0].BitLength)
}

func TestFieldID(t *testing.T) {
	require.Equal(t, FieldID("UID"), FieldID("UID"))
	require.NotEqual(t, FieldID("UID"), FieldID("FC"))
}

func TestParseHex(t *testing.T) {
	for _, in := range []string{"A1 81 F4 40", "a1:81:f4:40", "0xA181F440", " a1-81-f4-40 "} {
		data, err := ParseHex(in)
		require.NoError(t, err, in)
		require.Equal(t, []byte{0xA1, 0x81, 0xF4, 0x40}, data, in)
	}

	_, err := ParseHex("A1 8")
	require.ErrorIs(t, err, errs.ErrInvalidEncoding)
	_, err = ParseHex("zz")
	require.ErrorIs(t, err, errs.ErrInvalidEncoding)

	require.Equal(t, "A1 81 F4 40", FormatHex([]byte{0xA1, 0x81, 0xF4, 0x40}))
	require.Equal(t, "", FormatHex(nil))
}
