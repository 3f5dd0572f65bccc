package format

import (
	"bytes"
	"fmt"

	"github.com/arloliu/credfmt/errs"
	"github.com/arloliu/credfmt/field"
)

const defaultASCIILength = 16

// ASCII carries 7-bit text, right padded with a pad character to a fixed character count.
//
// A zero length makes a skeleton: SetLinearData then adopts the length of its input, and
// CheckSkeleton accepts any length.
type ASCII struct {
	length  int
	padding byte
	value   string
}

var _ Format = (*ASCII)(nil)

func NewASCII(opts ...Option) (*ASCII, error) {
	cfg, err := newConfig(Config{Length: defaultASCIILength, Padding: ' '}, opts)
	if err != nil {
		return nil, err
	}

	return &ASCII{length: cfg.Length, padding: cfg.Padding}, nil
}

func (f *ASCII) Type() Type                  { return TypeASCII }
func (f *ASCII) Name() string                { return "ASCII" }
func (f *ASCII) DataLength() int             { return f.length * 8 }
func (f *ASCII) NeedUserConfiguration() bool { return true }

// Length returns the character count.
func (f *ASCII) Length() int { return f.length }

func (f *ASCII) SetLength(chars int) error {
	if chars < 0 {
		return fmt.Errorf("%w: negative length %d", errs.ErrInvalidConfiguration, chars)
	}
	f.length = chars

	return nil
}

func (f *ASCII) Padding() byte       { return f.padding }
func (f *ASCII) SetPadding(pad byte) { f.padding = pad }

func (f *ASCII) Value() string { return f.value }

func (f *ASCII) SetValue(v string) { f.value = v }

func (f *ASCII) LinearData() ([]byte, error) {
	if len(f.value) > f.length {
		return nil, fmt.Errorf("%w: %d characters, room for %d", errs.ErrOutOfRange, len(f.value), f.length)
	}
	if err := checkASCII([]byte(f.value)); err != nil {
		return nil, err
	}

	out := bytes.Repeat([]byte{f.padding}, f.length)
	copy(out, f.value)

	return out, nil
}

func (f *ASCII) SetLinearData(data []byte) error {
	length := f.length
	if length == 0 {
		length = len(data)
	}
	if len(data) < length {
		return fmt.Errorf("%w: %d bytes, need %d", errs.ErrDataTooShort, len(data), length)
	}
	text := field.TrimPadding(data[:length], f.padding)
	if err := checkASCII(text); err != nil {
		return err
	}

	f.length = length
	f.value = string(text)

	return nil
}

func (f *ASCII) CheckSkeleton(other Format) bool {
	o, ok := other.(*ASCII)
	if !ok {
		return false
	}

	return f.length == 0 || f.length == o.length
}

func (f *ASCII) Clone() Format {
	c := *f
	return &c
}

func checkASCII(b []byte) error {
	for i, c := range b {
		if c >= 0x80 {
			return fmt.Errorf("%w: non-ASCII byte 0x%02X at %d", errs.ErrInvalidEncoding, c, i)
		}
	}

	return nil
}
