// Package field implements the data fields a CustomFormat is assembled from.
//
// Every field sits at an absolute bit position with a bit length inside the linear data of
// its format:
//   - NumberDataField holds an unsigned integer encoded through a DataType and a
//     DataRepresentation
//   - BinaryDataField holds raw bytes, right padded with a pad byte
//   - StringDataField holds text in a named charset, right padded with a pad byte
//   - ParityDataField holds a single parity bit computed over an explicit list of absolute
//     bit positions, which may belong to other fields
//
// Value fields (Number, Binary, String) each carry their own DataType and DataRepresentation,
// so one format can mix, for example, big-endian and little-endian fields.
package field

import (
	"fmt"

	"github.com/arloliu/credfmt/bitstream"
	"github.com/arloliu/credfmt/encoding"
	"github.com/arloliu/credfmt/errs"
	"github.com/arloliu/credfmt/internal/options"
)

// Kind tags a concrete DataField.
type Kind uint8

const (
	KindNumber Kind = 0x1
	KindBinary Kind = 0x2
	KindString Kind = 0x3
	KindParity Kind = 0x4
)

func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "Number"
	case KindBinary:
		return "Binary"
	case KindString:
		return "String"
	case KindParity:
		return "Parity"
	default:
		return "Unknown"
	}
}

// DataField is a positioned piece of a format's linear data.
type DataField interface {
	Name() string
	SetName(name string)
	// Position returns the absolute bit offset of the field.
	Position() int
	SetPosition(pos int)
	// Length returns the field width in bits.
	Length() int
	Kind() Kind

	// Write places the field's bits into data, which must already be long enough.
	Write(data *bitstream.Stream) error
	// Read loads the field from data. Parity fields verify their bit instead.
	Read(data *bitstream.Stream) error

	// CheckFieldDependency reports whether this field reads bits owned by other.
	CheckFieldDependency(other DataField) bool

	// Contains reports whether bit lies in [Position(), Position()+Length()).
	Contains(bit int) bool

	Clone() DataField
}

// ValueDataField is a DataField that holds a value rather than a parity bit.
type ValueDataField interface {
	DataField

	Config() ValueConfig
	// IsFixed reports whether the value acts as a skeleton filter.
	IsFixed() bool
	// IsIdentifier reports whether the field is part of the credential identifier.
	IsIdentifier() bool
	// Encode returns the field's bits as they appear in linear data.
	Encode() (*bitstream.Stream, error)
	// EqualValue reports whether other is the same kind of field holding the same value.
	EqualValue(other DataField) bool
}

// ValueConfig holds the encoding configuration of a value field.
type ValueConfig struct {
	DataType       encoding.DataType
	Representation encoding.DataRepresentation
	// Fixed marks the value as a skeleton filter.
	Fixed bool
	// Identifier marks the field as part of the credential identifier.
	Identifier bool
	// Padding fills unused bytes of binary and string fields.
	Padding byte
	// Charset is the IANA charset name of string fields; empty means 7-bit ASCII.
	Charset string
}

// ValueOption configures a value field.
type ValueOption = options.Option[*ValueConfig]

// WithDataType overrides the default Binary data type.
func WithDataType(dt encoding.DataType) ValueOption {
	return options.New(func(c *ValueConfig) error {
		if dt == nil {
			return fmt.Errorf("%w: nil data type", errs.ErrInvalidConfiguration)
		}
		c.DataType = dt

		return nil
	})
}

// WithRepresentation overrides the default big-endian representation.
func WithRepresentation(rep encoding.DataRepresentation) ValueOption {
	return options.New(func(c *ValueConfig) error {
		if rep == nil {
			return fmt.Errorf("%w: nil data representation", errs.ErrInvalidConfiguration)
		}
		c.Representation = rep

		return nil
	})
}

// WithFixed marks the field value as a skeleton filter.
func WithFixed() ValueOption {
	return options.NoError(func(c *ValueConfig) {
		c.Fixed = true
	})
}

// WithIdentifier marks the field as part of the credential identifier.
func WithIdentifier() ValueOption {
	return options.NoError(func(c *ValueConfig) {
		c.Identifier = true
	})
}

// WithPadding sets the pad byte of binary and string fields.
func WithPadding(pad byte) ValueOption {
	return options.NoError(func(c *ValueConfig) {
		c.Padding = pad
	})
}

// WithCharset sets the IANA charset of string fields.
func WithCharset(name string) ValueOption {
	return options.New(func(c *ValueConfig) error {
		if _, err := lookupCharset(name); err != nil {
			return err
		}
		c.Charset = name

		return nil
	})
}

func newValueConfig(opts []ValueOption) (ValueConfig, error) {
	cfg := ValueConfig{
		DataType:       encoding.BinaryDataType{},
		Representation: encoding.BigEndianRepresentation{},
	}
	if err := options.Apply(&cfg, opts...); err != nil {
		return ValueConfig{}, err
	}

	return cfg, nil
}

// TrimPadding returns b without its trailing pad bytes. Only bytes equal to pad are
// removed, so values ending in any other byte survive for every pad value.
func TrimPadding(b []byte, pad byte) []byte {
	for len(b) > 0 && b[len(b)-1] == pad {
		b = b[:len(b)-1]
	}

	return b
}

// base holds the placement shared by all fields.
type base struct {
	name     string
	position int
	length   int
}

func newBase(name string, position, length int) (base, error) {
	if position < 0 {
		return base{}, fmt.Errorf("%w: field %q at negative position %d", errs.ErrInvalidConfiguration, name, position)
	}
	if length <= 0 {
		return base{}, fmt.Errorf("%w: field %q with length %d", errs.ErrInvalidConfiguration, name, length)
	}

	return base{name: name, position: position, length: length}, nil
}

func (b *base) Name() string        { return b.name }
func (b *base) SetName(name string) { b.name = name }
func (b *base) Position() int       { return b.position }
func (b *base) SetPosition(pos int) { b.position = pos }
func (b *base) Length() int         { return b.length }

func (b *base) Contains(bit int) bool {
	return bit >= b.position && bit < b.position+b.length
}

func (b *base) extract(data *bitstream.Stream) (*bitstream.Stream, error) {
	s, err := data.Extract(b.position, b.length)
	if err != nil {
		return nil, fmt.Errorf("field %q: %w", b.name, err)
	}

	return s, nil
}

func (b *base) place(data *bitstream.Stream, bits *bitstream.Stream) error {
	if bits.Len() != b.length {
		return fmt.Errorf("%w: field %q encodes %d bits, expected %d", errs.ErrOutOfRange, b.name, bits.Len(), b.length)
	}
	if err := data.WriteStreamAt(b.position, bits); err != nil {
		return fmt.Errorf("field %q: %w", b.name, err)
	}

	return nil
}

// valueBase adds the encoding configuration of value fields.
type valueBase struct {
	base
	cfg ValueConfig
}

func (v *valueBase) Config() ValueConfig { return v.cfg }
func (v *valueBase) IsFixed() bool       { return v.cfg.Fixed }
func (v *valueBase) IsIdentifier() bool  { return v.cfg.Identifier }

// DataType returns the field's data type.
func (v *valueBase) DataType() encoding.DataType { return v.cfg.DataType }

// SetDataType replaces the field's data type.
func (v *valueBase) SetDataType(dt encoding.DataType) { v.cfg.DataType = dt }

// Representation returns the field's data representation.
func (v *valueBase) Representation() encoding.DataRepresentation { return v.cfg.Representation }

// SetRepresentation replaces the field's data representation.
func (v *valueBase) SetRepresentation(rep encoding.DataRepresentation) { v.cfg.Representation = rep }

// CheckFieldDependency is always false: value fields read no other field.
func (v *valueBase) CheckFieldDependency(DataField) bool { return false }
