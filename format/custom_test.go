package format

import (
	"testing"

	"github.com/arloliu/credfmt/encoding"
	"github.com/arloliu/credfmt/errs"
	"github.com/arloliu/credfmt/field"
	"github.com/arloliu/credfmt/parity"
	"github.com/stretchr/testify/require"
)

func mustNumber(t *testing.T, name string, pos, length int, v uint64, opts ...field.ValueOption) *field.NumberDataField {
	t.Helper()
	f, err := field.NewNumberDataField(name, pos, length, v, opts...)
	require.NoError(t, err)

	return f
}

func mustParity(t *testing.T, name string, pos int, typ parity.Type, positions []int) *field.ParityDataField {
	t.Helper()
	f, err := field.NewParityDataField(name, pos, typ, positions)
	require.NoError(t, err)

	return f
}

// newCustom26 builds the Wiegand 26 layout as a custom format, adding fields out of order.
func newCustom26(t *testing.T, fc, uid uint64) *CustomFormat {
	t.Helper()

	c, err := NewCustomFormat(
		WithName("custom 26"),
		WithFields(
			mustParity(t, "P25", 25, parity.Odd, parity.Range(13, 12)),
			mustNumber(t, "UID", 9, 16, uid, field.WithIdentifier()),
			mustParity(t, "P0", 0, parity.Even, parity.Range(1, 12)),
			mustNumber(t, "FC", 1, 8, fc, field.WithFixed(), field.WithIdentifier()),
		),
	)
	require.NoError(t, err)

	return c
}

func fieldNames(fields []field.DataField) []string {
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name()
	}

	return names
}

func TestCustomFormat_Wiegand26Layout(t *testing.T) {
	c := newCustom26(t, 67, 1000)
	require.Equal(t, "custom 26", c.Name())
	require.Equal(t, 26, c.DataLength())
	require.True(t, c.NeedUserConfiguration())

	data, err := c.LinearData()
	require.NoError(t, err)
	require.Equal(t, mustHex(t, "A1 81 F4 40"), data)

	decoded := newCustom26(t, 0, 0)
	require.NoError(t, decoded.SetLinearData(data))

	uid, err := decoded.FieldByName("UID")
	require.NoError(t, err)
	require.Equal(t, uint64(1000), uid.(*field.NumberDataField).Value())
	fc, err := decoded.FieldByName("FC")
	require.NoError(t, err)
	require.Equal(t, uint64(67), fc.(*field.NumberDataField).Value())

	require.Equal(t, []string{"P25", "UID", "P0", "FC"}, fieldNames(decoded.Fields()))
}

func TestCustomFormat_ScheduleOrder(t *testing.T) {
	c := newCustom26(t, 0, 0)

	order, err := schedule(c.Fields())
	require.NoError(t, err)
	require.Equal(t, []string{"FC", "UID", "P0", "P25"}, fieldNames(order))

	// A parity bit that covers another parity bit is computed after it.
	chained, err := NewCustomFormat(WithFields(
		mustParity(t, "outer", 9, parity.Odd, parity.Range(0, 9)),
		mustNumber(t, "d", 0, 8, 0x01),
		mustParity(t, "inner", 8, parity.Even, parity.Range(0, 8)),
	))
	require.NoError(t, err)

	order, err = schedule(chained.Fields())
	require.NoError(t, err)
	require.Equal(t, []string{"d", "inner", "outer"}, fieldNames(order))

	data, err := chained.LinearData()
	require.NoError(t, err)
	require.Equal(t, []byte{0x01, 0xC0}, data)

	decoded := chained.Clone().(*CustomFormat)
	require.NoError(t, decoded.SetLinearData(data))

	data[1] ^= 0x40
	err = decoded.SetLinearData(data)
	require.ErrorIs(t, err, errs.ErrParityMismatch)
	require.EqualError(t, err, "outer format error")
}

func TestCustomFormat_ParityFailure(t *testing.T) {
	c := newCustom26(t, 0, 0)

	data := mustHex(t, "A1 81 F4 40")
	data[0] ^= 0x80
	err := c.SetLinearData(data)
	require.ErrorIs(t, err, errs.ErrParityMismatch)
	require.EqualError(t, err, "P0 format error")

	// the failed decode left the fields untouched
	uid, err := c.FieldByName("UID")
	require.NoError(t, err)
	require.Equal(t, uint64(0), uid.(*field.NumberDataField).Value())

	require.ErrorIs(t, c.SetLinearData([]byte{0xA1, 0x81, 0xF4}), errs.ErrDataTooShort)
}

func TestCustomFormat_MixedFields(t *testing.T) {
	bin, err := field.NewBinaryDataField("bin", 48, 16, []byte{0xAB, 0xCD})
	require.NoError(t, err)
	str, err := field.NewStringDataField("tag", 32, 16, "OK")
	require.NoError(t, err)

	c, err := NewCustomFormat(WithFields(
		mustNumber(t, "be", 0, 16, 0x1234),
		mustNumber(t, "le", 16, 16, 0x1234, field.WithRepresentation(encoding.LittleEndianRepresentation{})),
		str,
		bin,
	))
	require.NoError(t, err)

	data, err := c.LinearData()
	require.NoError(t, err)
	require.Equal(t, []byte{0x12, 0x34, 0x34, 0x12, 'O', 'K', 0xAB, 0xCD}, data)

	decoded := c.Clone().(*CustomFormat)
	for _, f := range decoded.Fields() {
		switch v := f.(type) {
		case *field.NumberDataField:
			v.SetValue(0)
		case *field.StringDataField:
			v.SetValue("")
		case *field.BinaryDataField:
			v.SetValue(nil)
		}
	}
	require.NoError(t, decoded.SetLinearData(data))

	le, err := decoded.FieldByName("le")
	require.NoError(t, err)
	require.Equal(t, uint64(0x1234), le.(*field.NumberDataField).Value())
	tag, err := decoded.FieldByName("tag")
	require.NoError(t, err)
	require.Equal(t, "OK", tag.(*field.StringDataField).Value())
	b, err := decoded.FieldByName("bin")
	require.NoError(t, err)
	require.Equal(t, []byte{0xAB, 0xCD}, b.(*field.BinaryDataField).Value())
}

func TestCustomFormat_Validation(t *testing.T) {
	t.Run("cycle", func(t *testing.T) {
		c, err := NewCustomFormat(WithFields(
			mustParity(t, "A", 0, parity.Even, []int{1}),
			mustParity(t, "B", 1, parity.Even, []int{0}),
		))
		require.NoError(t, err)
		require.ErrorIs(t, c.Validate(), errs.ErrFieldDependencyCycle)
		_, err = c.LinearData()
		require.ErrorIs(t, err, errs.ErrFieldDependencyCycle)
	})

	t.Run("overlap", func(t *testing.T) {
		c, err := NewCustomFormat(WithFields(
			mustNumber(t, "a", 0, 8, 0),
			mustNumber(t, "b", 4, 8, 0),
		))
		require.NoError(t, err)
		require.ErrorIs(t, c.Validate(), errs.ErrInvalidConfiguration)
	})

	t.Run("covers own bit", func(t *testing.T) {
		c, err := NewCustomFormat(WithFields(
			mustNumber(t, "a", 0, 8, 0),
			mustParity(t, "p", 8, parity.Even, parity.Range(0, 9)),
		))
		require.NoError(t, err)
		require.ErrorIs(t, c.Validate(), errs.ErrInvalidConfiguration)
	})

	t.Run("beyond data length", func(t *testing.T) {
		c, err := NewCustomFormat(
			WithDataLength(8),
			WithFields(mustNumber(t, "a", 4, 8, 0)),
		)
		require.NoError(t, err)
		require.ErrorIs(t, c.Validate(), errs.ErrOutOfRange)

		c, err = NewCustomFormat(
			WithDataLength(8),
			WithFields(mustParity(t, "p", 0, parity.Even, []int{12})),
		)
		require.NoError(t, err)
		require.ErrorIs(t, c.Validate(), errs.ErrOutOfRange)
	})

	t.Run("value too wide", func(t *testing.T) {
		c, err := NewCustomFormat(WithFields(mustNumber(t, "a", 0, 4, 16)))
		require.NoError(t, err)
		_, err = c.LinearData()
		require.ErrorIs(t, err, errs.ErrOutOfRange)
	})

	t.Run("names", func(t *testing.T) {
		_, err := NewCustomFormat(WithFields(
			mustNumber(t, "a", 0, 8, 0),
			mustNumber(t, "a", 8, 8, 0),
		))
		require.ErrorIs(t, err, errs.ErrDuplicateField)

		_, err = NewCustomFormat(WithFields(mustNumber(t, "", 0, 8, 0)))
		require.ErrorIs(t, err, errs.ErrInvalidFieldName)

		_, err = NewCustomFormat(WithDataLength(-1))
		require.ErrorIs(t, err, errs.ErrInvalidConfiguration)

		c, err := NewCustomFormat()
		require.NoError(t, err)
		require.ErrorIs(t, c.AddField(nil), errs.ErrInvalidConfiguration)
	})
}

func TestCustomFormat_FieldLookup(t *testing.T) {
	c := newCustom26(t, 67, 1000)

	f, err := c.FieldForPosition(10)
	require.NoError(t, err)
	require.Equal(t, "UID", f.Name())

	f, err = c.FieldForPosition(0)
	require.NoError(t, err)
	require.Equal(t, "P0", f.Name())

	_, err = c.FieldForPosition(30)
	require.ErrorIs(t, err, errs.ErrFieldNotFound)

	require.NoError(t, c.RemoveField("P25"))
	require.ErrorIs(t, c.RemoveField("P25"), errs.ErrFieldNotFound)
	_, err = c.FieldByName("P25")
	require.ErrorIs(t, err, errs.ErrFieldNotFound)
	require.Equal(t, 25, c.DataLength())

	require.NoError(t, c.AddField(mustParity(t, "P25", 25, parity.Odd, parity.Range(13, 12))))
	data, err := c.LinearData()
	require.NoError(t, err)
	require.Equal(t, mustHex(t, "A1 81 F4 40"), data)
}

func TestCustomFormat_DataLength(t *testing.T) {
	c, err := NewCustomFormat(WithDataLength(40), WithFields(mustNumber(t, "a", 0, 8, 0xFF)))
	require.NoError(t, err)
	require.Equal(t, 40, c.DataLength())

	data, err := c.LinearData()
	require.NoError(t, err)
	require.Equal(t, []byte{0xFF, 0, 0, 0, 0}, data)
}

func TestCustomFormat_Identifier(t *testing.T) {
	c := newCustom26(t, 67, 1000)

	id, err := c.Identifier()
	require.NoError(t, err)
	require.Equal(t, []byte{0x43, 0x03, 0xE8}, id)
}

func TestCustomFormat_Skeleton(t *testing.T) {
	decoded := newCustom26(t, 0, 0)
	require.NoError(t, decoded.SetLinearData(mustHex(t, "A1 81 F4 40")))

	require.True(t, newCustom26(t, 67, 0).CheckSkeleton(decoded))
	require.False(t, newCustom26(t, 68, 0).CheckSkeleton(decoded))

	shorter := newCustom26(t, 67, 0)
	require.NoError(t, shorter.RemoveField("P25"))
	require.False(t, shorter.CheckSkeleton(decoded))

	w26, err := NewWiegand26()
	require.NoError(t, err)
	require.False(t, decoded.CheckSkeleton(w26))

	got, err := Identify(mustHex(t, "A1 81 F4 40"), newCustom26(t, 68, 0), newCustom26(t, 67, 0))
	require.NoError(t, err)
	uid, err := got.(*CustomFormat).FieldByName("UID")
	require.NoError(t, err)
	require.Equal(t, uint64(1000), uid.(*field.NumberDataField).Value())
}

func TestCustomFormat_Clone(t *testing.T) {
	c := newCustom26(t, 67, 1000)
	clone := c.Clone().(*CustomFormat)

	uid, err := clone.FieldByName("UID")
	require.NoError(t, err)
	uid.(*field.NumberDataField).SetValue(1)

	orig, err := c.FieldByName("UID")
	require.NoError(t, err)
	require.Equal(t, uint64(1000), orig.(*field.NumberDataField).Value())

	require.ErrorIs(t, clone.AddField(mustNumber(t, "UID", 30, 2, 0)), errs.ErrDuplicateField)
}
