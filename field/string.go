package field

import (
	"fmt"
	"strings"

	xencoding "golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"

	"github.com/arloliu/credfmt/bitstream"
	"github.com/arloliu/credfmt/errs"
)

// StringDataField holds text stored in a named charset and right padded with the pad byte.
type StringDataField struct {
	valueBase
	value string
}

var _ ValueDataField = (*StringDataField)(nil)

// NewStringDataField returns a string field at position spanning length bits.
func NewStringDataField(name string, position, length int, value string, opts ...ValueOption) (*StringDataField, error) {
	b, err := newBase(name, position, length)
	if err != nil {
		return nil, err
	}
	cfg, err := newValueConfig(opts)
	if err != nil {
		return nil, err
	}

	return &StringDataField{valueBase: valueBase{base: b, cfg: cfg}, value: value}, nil
}

func (f *StringDataField) Kind() Kind { return KindString }

// SetLength changes the field width in bits.
func (f *StringDataField) SetLength(bits int) { f.length = bits }

func (f *StringDataField) Value() string { return f.value }

func (f *StringDataField) SetValue(v string) { f.value = v }

func (f *StringDataField) Padding() byte { return f.cfg.Padding }

func (f *StringDataField) SetPadding(pad byte) { f.cfg.Padding = pad }

// Charset returns the IANA charset name; empty means 7-bit ASCII.
func (f *StringDataField) Charset() string { return f.cfg.Charset }

// SetCharset changes the charset. Unknown or unsupported names are rejected.
func (f *StringDataField) SetCharset(name string) error {
	if _, err := lookupCharset(name); err != nil {
		return err
	}
	f.cfg.Charset = name

	return nil
}

func (f *StringDataField) Encode() (*bitstream.Stream, error) {
	raw, err := encodeText(f.value, f.cfg.Charset)
	if err != nil {
		return nil, fmt.Errorf("field %q: %w", f.name, err)
	}
	bits, err := padBits(f.name, raw, f.length, f.cfg.Padding)
	if err != nil {
		return nil, err
	}

	return f.cfg.Representation.ConvertBinary(bits)
}

func (f *StringDataField) Write(data *bitstream.Stream) error {
	bits, err := f.Encode()
	if err != nil {
		return err
	}

	return f.place(data, bits)
}

func (f *StringDataField) Read(data *bitstream.Stream) error {
	raw, err := f.extract(data)
	if err != nil {
		return err
	}
	rev, err := f.cfg.Representation.RevertBinary(raw)
	if err != nil {
		return fmt.Errorf("field %q: %w", f.name, err)
	}
	v, err := decodeText(TrimPadding(rev.Bytes(), f.cfg.Padding), f.cfg.Charset)
	if err != nil {
		return fmt.Errorf("field %q: %w", f.name, err)
	}
	f.value = v

	return nil
}

func (f *StringDataField) EqualValue(other DataField) bool {
	o, ok := other.(*StringDataField)
	return ok && o.value == f.value
}

func (f *StringDataField) Clone() DataField {
	c := *f
	return &c
}

func isASCIICharset(name string) bool {
	return name == "" || strings.EqualFold(name, "ascii") || strings.EqualFold(name, "us-ascii")
}

// lookupCharset returns nil for 7-bit ASCII, which is handled without a codec.
func lookupCharset(name string) (xencoding.Encoding, error) {
	if isASCIICharset(name) {
		return nil, nil
	}
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil {
		return nil, fmt.Errorf("%w: charset %q: %v", errs.ErrInvalidConfiguration, name, err)
	}
	if enc == nil {
		return nil, fmt.Errorf("%w: charset %q is not supported", errs.ErrInvalidConfiguration, name)
	}

	return enc, nil
}

func encodeText(s, charset string) ([]byte, error) {
	enc, err := lookupCharset(charset)
	if err != nil {
		return nil, err
	}
	if enc == nil {
		for i := 0; i < len(s); i++ {
			if s[i] >= 0x80 {
				return nil, fmt.Errorf("%w: non-ASCII byte 0x%02X at %d", errs.ErrInvalidEncoding, s[i], i)
			}
		}

		return []byte(s), nil
	}

	out, err := enc.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrInvalidEncoding, err)
	}

	return out, nil
}

func decodeText(b []byte, charset string) (string, error) {
	enc, err := lookupCharset(charset)
	if err != nil {
		return "", err
	}
	if enc == nil {
		for i, c := range b {
			if c >= 0x80 {
				return "", fmt.Errorf("%w: non-ASCII byte 0x%02X at %d", errs.ErrInvalidEncoding, c, i)
			}
		}

		return string(b), nil
	}

	out, err := enc.NewDecoder().Bytes(b)
	if err != nil {
		return "", fmt.Errorf("%w: %v", errs.ErrInvalidEncoding, err)
	}

	return string(out), nil
}
