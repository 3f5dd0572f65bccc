package format

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/arloliu/credfmt/bitstream"
	"github.com/arloliu/credfmt/errs"
	"github.com/arloliu/credfmt/field"
	"github.com/arloliu/credfmt/internal/collision"
	"github.com/arloliu/credfmt/internal/options"
)

// CustomFormat is a user defined layout built from data fields.
//
// Fields are kept in insertion order; LinearData and SetLinearData process them in the
// order computed by the field scheduler. Field names are unique.
type CustomFormat struct {
	name       string
	fields     []field.DataField
	names      *collision.Tracker
	dataLength int
}

var _ Format = (*CustomFormat)(nil)

// CustomOption configures a CustomFormat.
type CustomOption = options.Option[*CustomFormat]

// WithName sets the format name.
func WithName(name string) CustomOption {
	return options.NoError(func(c *CustomFormat) { c.name = name })
}

// WithDataLength fixes the data length instead of deriving it from the fields.
func WithDataLength(bits int) CustomOption {
	return options.New(func(c *CustomFormat) error {
		if bits < 0 {
			return fmt.Errorf("%w: negative data length %d", errs.ErrInvalidConfiguration, bits)
		}
		c.dataLength = bits

		return nil
	})
}

// WithFields adds fields in order.
func WithFields(fields ...field.DataField) CustomOption {
	return options.New(func(c *CustomFormat) error {
		for _, f := range fields {
			if err := c.AddField(f); err != nil {
				return err
			}
		}

		return nil
	})
}

func NewCustomFormat(opts ...CustomOption) (*CustomFormat, error) {
	c := &CustomFormat{name: "Custom", names: collision.NewTracker()}
	if err := options.Apply(c, opts...); err != nil {
		return nil, err
	}

	return c, nil
}

func (c *CustomFormat) Type() Type                  { return TypeCustom }
func (c *CustomFormat) Name() string                { return c.name }
func (c *CustomFormat) NeedUserConfiguration() bool { return true }

// DataLength returns the fixed data length, or the largest field end when none is set.
func (c *CustomFormat) DataLength() int {
	if c.dataLength > 0 {
		return c.dataLength
	}

	n := 0
	for _, f := range c.fields {
		n = max(n, f.Position()+f.Length())
	}

	return n
}

// AddField appends f. Names must be non-empty and unique.
func (c *CustomFormat) AddField(f field.DataField) error {
	if f == nil {
		return fmt.Errorf("%w: nil field", errs.ErrInvalidConfiguration)
	}
	if _, err := c.names.Track(f.Name()); err != nil {
		return err
	}
	c.fields = append(c.fields, f)

	return nil
}

// RemoveField removes the field called name.
func (c *CustomFormat) RemoveField(name string) error {
	i := slices.IndexFunc(c.fields, func(f field.DataField) bool { return f.Name() == name })
	if i < 0 {
		return fmt.Errorf("%w: %q", errs.ErrFieldNotFound, name)
	}
	c.names.Untrack(name)
	c.fields = slices.Delete(c.fields, i, i+1)

	return nil
}

// Fields returns the fields in insertion order. The fields themselves are not copied.
func (c *CustomFormat) Fields() []field.DataField {
	return slices.Clone(c.fields)
}

func (c *CustomFormat) FieldByName(name string) (field.DataField, error) {
	for _, f := range c.fields {
		if f.Name() == name {
			return f, nil
		}
	}

	return nil, fmt.Errorf("%w: %q", errs.ErrFieldNotFound, name)
}

// FieldForPosition returns the field whose bit range contains bit.
func (c *CustomFormat) FieldForPosition(bit int) (field.DataField, error) {
	for _, f := range c.fields {
		if f.Contains(bit) {
			return f, nil
		}
	}

	return nil, fmt.Errorf("%w: no field at bit %d", errs.ErrFieldNotFound, bit)
}

// Validate checks that fields fit the data length, do not overlap, and that parity fields
// cover existing bits without reading themselves or forming a cycle.
func (c *CustomFormat) Validate() error {
	_, err := c.plan(c.fields)
	return err
}

func (c *CustomFormat) plan(fields []field.DataField) ([]field.DataField, error) {
	length := c.DataLength()

	byPos := slices.Clone(fields)
	slices.SortStableFunc(byPos, func(a, b field.DataField) int {
		return cmp.Compare(a.Position(), b.Position())
	})
	end := 0
	for i, f := range byPos {
		if f.Position()+f.Length() > length {
			return nil, fmt.Errorf("%w: field %q ends at bit %d of %d", errs.ErrOutOfRange, f.Name(), f.Position()+f.Length(), length)
		}
		if i > 0 && f.Position() < end {
			return nil, fmt.Errorf("%w: field %q overlaps field %q", errs.ErrInvalidConfiguration, f.Name(), byPos[i-1].Name())
		}
		end = max(end, f.Position()+f.Length())

		p, ok := f.(*field.ParityDataField)
		if !ok {
			continue
		}
		for _, pos := range p.BitsUsePositions() {
			if pos >= length {
				return nil, fmt.Errorf("%w: parity field %q covers bit %d of %d", errs.ErrOutOfRange, p.Name(), pos, length)
			}
			if pos == p.Position() {
				return nil, fmt.Errorf("%w: parity field %q covers its own bit", errs.ErrInvalidConfiguration, p.Name())
			}
		}
	}

	return schedule(fields)
}

func (c *CustomFormat) LinearData() ([]byte, error) {
	order, err := c.plan(c.fields)
	if err != nil {
		return nil, err
	}

	data := bitstream.NewZero(c.DataLength())
	for _, f := range order {
		if err := f.Write(data); err != nil {
			return nil, err
		}
	}

	return data.Bytes(), nil
}

// SetLinearData decodes into copies of the fields and only swaps them in on success.
func (c *CustomFormat) SetLinearData(raw []byte) error {
	work := make([]field.DataField, len(c.fields))
	for i, f := range c.fields {
		work[i] = f.Clone()
	}
	order, err := c.plan(work)
	if err != nil {
		return err
	}
	data, err := load(raw, c.DataLength())
	if err != nil {
		return err
	}

	for _, f := range order {
		if err := f.Read(data); err != nil {
			return err
		}
	}
	c.fields = work

	return nil
}

// CheckSkeleton reports whether other is a custom format with the same data length and
// field layout whose values match every fixed field of c.
func (c *CustomFormat) CheckSkeleton(other Format) bool {
	o, ok := other.(*CustomFormat)
	if !ok || o.DataLength() != c.DataLength() || len(o.fields) != len(c.fields) {
		return false
	}

	for _, f := range c.fields {
		of, err := o.FieldByName(f.Name())
		if err != nil || of.Kind() != f.Kind() || of.Position() != f.Position() || of.Length() != f.Length() {
			return false
		}
		if vf, ok := f.(field.ValueDataField); ok && vf.IsFixed() && !vf.EqualValue(of) {
			return false
		}
	}

	return true
}

// Identifier concatenates the encoded bits of every identifier field in position order.
func (c *CustomFormat) Identifier() ([]byte, error) {
	byPos := slices.Clone(c.fields)
	slices.SortStableFunc(byPos, func(a, b field.DataField) int {
		return cmp.Compare(a.Position(), b.Position())
	})

	id := bitstream.New()
	for _, f := range byPos {
		vf, ok := f.(field.ValueDataField)
		if !ok || !vf.IsIdentifier() {
			continue
		}
		bits, err := vf.Encode()
		if err != nil {
			return nil, err
		}
		id.ConcatStream(bits)
	}

	return id.Bytes(), nil
}

func (c *CustomFormat) Clone() Format {
	out := &CustomFormat{
		name:       c.name,
		fields:     make([]field.DataField, 0, len(c.fields)),
		names:      collision.NewTracker(),
		dataLength: c.dataLength,
	}
	for _, f := range c.fields {
		// names were unique in c, so tracking cannot fail
		_, _ = out.names.Track(f.Name())
		out.fields = append(out.fields, f.Clone())
	}

	return out
}
