package field

import (
	"fmt"

	"github.com/arloliu/credfmt/bitstream"
)

// NumberDataField holds an unsigned integer.
type NumberDataField struct {
	valueBase
	value uint64
}

var _ ValueDataField = (*NumberDataField)(nil)

// NewNumberDataField returns a number field at position spanning length bits.
func NewNumberDataField(name string, position, length int, value uint64, opts ...ValueOption) (*NumberDataField, error) {
	b, err := newBase(name, position, length)
	if err != nil {
		return nil, err
	}
	cfg, err := newValueConfig(opts)
	if err != nil {
		return nil, err
	}

	return &NumberDataField{valueBase: valueBase{base: b, cfg: cfg}, value: value}, nil
}

func (f *NumberDataField) Kind() Kind { return KindNumber }

// SetLength changes the field width in bits.
func (f *NumberDataField) SetLength(bits int) { f.length = bits }

// Value returns the number.
func (f *NumberDataField) Value() uint64 { return f.value }

// SetValue replaces the number.
func (f *NumberDataField) SetValue(v uint64) { f.value = v }

// Encode converts the value through the data type and representation.
func (f *NumberDataField) Encode() (*bitstream.Stream, error) {
	enc, err := f.cfg.DataType.Convert(f.value, f.length)
	if err != nil {
		return nil, fmt.Errorf("field %q: %w", f.name, err)
	}

	return f.cfg.Representation.ConvertNumeric(enc)
}

func (f *NumberDataField) Write(data *bitstream.Stream) error {
	bits, err := f.Encode()
	if err != nil {
		return err
	}

	return f.place(data, bits)
}

func (f *NumberDataField) Read(data *bitstream.Stream) error {
	raw, err := f.extract(data)
	if err != nil {
		return err
	}
	rev, err := f.cfg.Representation.RevertNumeric(raw)
	if err != nil {
		return fmt.Errorf("field %q: %w", f.name, err)
	}
	v, err := f.cfg.DataType.Revert(rev, f.length)
	if err != nil {
		return fmt.Errorf("field %q: %w", f.name, err)
	}
	f.value = v

	return nil
}

func (f *NumberDataField) EqualValue(other DataField) bool {
	o, ok := other.(*NumberDataField)
	return ok && o.value == f.value
}

func (f *NumberDataField) Clone() DataField {
	c := *f
	return &c
}
