package field

import (
	"bytes"
	"fmt"

	"github.com/arloliu/credfmt/bitstream"
	"github.com/arloliu/credfmt/errs"
)

// BinaryDataField holds raw bytes. Bytes the value does not fill are set to the pad byte.
type BinaryDataField struct {
	valueBase
	value []byte
}

var _ ValueDataField = (*BinaryDataField)(nil)

// NewBinaryDataField returns a binary field at position spanning length bits.
func NewBinaryDataField(name string, position, length int, value []byte, opts ...ValueOption) (*BinaryDataField, error) {
	b, err := newBase(name, position, length)
	if err != nil {
		return nil, err
	}
	cfg, err := newValueConfig(opts)
	if err != nil {
		return nil, err
	}

	return &BinaryDataField{valueBase: valueBase{base: b, cfg: cfg}, value: bytes.Clone(value)}, nil
}

func (f *BinaryDataField) Kind() Kind { return KindBinary }

// SetLength changes the field width in bits.
func (f *BinaryDataField) SetLength(bits int) { f.length = bits }

// Value returns a copy of the bytes, without trailing padding once the field has been read.
func (f *BinaryDataField) Value() []byte { return bytes.Clone(f.value) }

func (f *BinaryDataField) SetValue(v []byte) { f.value = bytes.Clone(v) }

// Padding returns the pad byte.
func (f *BinaryDataField) Padding() byte { return f.cfg.Padding }

func (f *BinaryDataField) SetPadding(pad byte) { f.cfg.Padding = pad }

func (f *BinaryDataField) Encode() (*bitstream.Stream, error) {
	raw, err := padBits(f.name, f.value, f.length, f.cfg.Padding)
	if err != nil {
		return nil, err
	}

	return f.cfg.Representation.ConvertBinary(raw)
}

func (f *BinaryDataField) Write(data *bitstream.Stream) error {
	bits, err := f.Encode()
	if err != nil {
		return err
	}

	return f.place(data, bits)
}

func (f *BinaryDataField) Read(data *bitstream.Stream) error {
	raw, err := f.extract(data)
	if err != nil {
		return err
	}
	rev, err := f.cfg.Representation.RevertBinary(raw)
	if err != nil {
		return fmt.Errorf("field %q: %w", f.name, err)
	}
	f.value = bytes.Clone(TrimPadding(rev.Bytes(), f.cfg.Padding))

	return nil
}

// EqualValue compares the padded forms, so a trailing pad byte never makes two values differ.
func (f *BinaryDataField) EqualValue(other DataField) bool {
	o, ok := other.(*BinaryDataField)
	if !ok {
		return false
	}
	a, errA := padBits(f.name, f.value, f.length, f.cfg.Padding)
	b, errB := padBits(o.name, o.value, o.length, o.cfg.Padding)

	return errA == nil && errB == nil && a.Equal(b)
}

func (f *BinaryDataField) Clone() DataField {
	c := *f
	c.value = bytes.Clone(f.value)

	return &c
}

// padBits right-pads value to the byte width of bits and returns its first bits bits.
func padBits(name string, value []byte, bits int, pad byte) (*bitstream.Stream, error) {
	width := (bits + 7) / 8
	if len(value) > width {
		return nil, fmt.Errorf("%w: field %q holds %d bytes, room for %d", errs.ErrOutOfRange, name, len(value), width)
	}
	if rem := bits % 8; rem != 0 && len(value) == width {
		if value[width-1]&(0xFF>>rem) != 0 {
			return nil, fmt.Errorf("%w: field %q value exceeds %d bits", errs.ErrOutOfRange, name, bits)
		}
	}

	buf := make([]byte, width)
	copy(buf, value)
	for i := len(value); i < width; i++ {
		buf[i] = pad
	}

	return bitstream.FromBytes(buf, bits)
}
