package format

import (
	"fmt"
	"slices"

	"github.com/arloliu/credfmt/bitstream"
	"github.com/arloliu/credfmt/encoding"
	"github.com/arloliu/credfmt/errs"
	"github.com/arloliu/credfmt/parity"
)

// scalar names a value a static format stores.
type scalar uint8

const (
	scalarUID scalar = iota
	scalarFacilityCode
	scalarCompanyCode
	scalarField
)

// slot places a scalar at a fixed bit range.
type slot struct {
	name   string
	pos    int
	bits   int
	scalar scalar
}

// marker is a constant bit pattern, written as plain binary.
type marker struct {
	name  string
	pos   int
	bits  int
	value uint64
}

// side tells which Wiegand parity override a parity bit follows.
type side uint8

const (
	sideFixed side = iota
	sideLeft
	sideRight
)

// parityBit is a parity bit at pos computed over positions.
type parityBit struct {
	check     string
	pos       int
	typ       parity.Type
	positions []int
	side      side
}

// parityPlan lists parity bits in computation order: a bit that covers another parity
// bit comes after it.
type parityPlan []parityBit

func (p parityPlan) apply(data *bitstream.Stream) error {
	for _, b := range p {
		bit := parity.Calculate(data, b.typ, b.positions)
		if err := data.Set(b.pos, bit == 1); err != nil {
			return fmt.Errorf("%s: %w", b.check, err)
		}
	}

	return nil
}

// verify recomputes every bit in plan order and names the first check that fails.
func (p parityPlan) verify(data *bitstream.Stream) error {
	for _, b := range p {
		want := parity.Calculate(data, b.typ, b.positions)
		if data.Bit(b.pos) != want {
			return errs.NewParityError(b.check)
		}
	}

	return nil
}

// withSides returns a copy of p with Wiegand side overrides applied.
func (p parityPlan) withSides(left, right parity.Type) parityPlan {
	out := slices.Clone(p)
	for i := range out {
		switch out[i].side {
		case sideLeft:
			out[i].typ = left
		case sideRight:
			out[i].typ = right
		}
	}

	return out
}

// layout describes a static format. Layouts are package-level and never mutated.
type layout struct {
	typ     Type
	name    string
	length  int
	slots   []slot
	markers []marker
	plan    parityPlan
	// payload is the parity-free window of Wiegand formats; zero for the others.
	payloadPos  int
	payloadBits int
}

// static implements Format for a layout. Concrete formats embed it and add Clone and
// their scalar accessors.
type static struct {
	layout   *layout
	plan     parityPlan
	dataType encoding.DataType
	rep      encoding.DataRepresentation

	uid          uint64
	facilityCode uint64
	companyCode  uint64
	field        uint64
}

func newStatic(l *layout, cfg *Config) static {
	return static{
		layout:       l,
		plan:         l.plan,
		dataType:     cfg.DataType,
		rep:          cfg.Representation,
		uid:          cfg.UID,
		facilityCode: cfg.FacilityCode,
		companyCode:  cfg.CompanyCode,
		field:        cfg.Field,
	}
}

func (s *static) Type() Type      { return s.layout.typ }
func (s *static) Name() string    { return s.layout.name }
func (s *static) DataLength() int { return s.layout.length }

func (s *static) UID() uint64       { return s.uid }
func (s *static) SetUID(uid uint64) { s.uid = uid }

func (s *static) DataType() encoding.DataType                     { return s.dataType }
func (s *static) DataRepresentation() encoding.DataRepresentation { return s.rep }

func (s *static) NeedUserConfiguration() bool { return false }

func (s *static) ref(sc scalar) *uint64 {
	switch sc {
	case scalarFacilityCode:
		return &s.facilityCode
	case scalarCompanyCode:
		return &s.companyCode
	case scalarField:
		return &s.field
	default:
		return &s.uid
	}
}

func (s *static) LinearData() ([]byte, error) {
	data, err := s.encode(s.layout.length, 0, true)
	if err != nil {
		return nil, err
	}

	return data.Bytes(), nil
}

func (s *static) SetLinearData(data []byte) error {
	return s.decode(data, s.layout.length, 0, true)
}

// encode builds a frame of length bits with every slot shifted by -offset. Markers and
// parity bits are only written for the full frame.
func (s *static) encode(length, offset int, full bool) (*bitstream.Stream, error) {
	data := bitstream.NewZero(length)
	if full {
		for _, m := range s.layout.markers {
			if err := writeMarker(data, m); err != nil {
				return nil, err
			}
		}
	}
	for _, sl := range s.layout.slots {
		if err := s.writeSlot(data, sl, sl.pos-offset); err != nil {
			return nil, err
		}
	}
	if full {
		if err := s.plan.apply(data); err != nil {
			return nil, err
		}
	}

	return data, nil
}

// decode is the mirror of encode. Scalars are only committed once every check passed.
func (s *static) decode(raw []byte, length, offset int, full bool) error {
	data, err := load(raw, length)
	if err != nil {
		return err
	}
	if full {
		for _, m := range s.layout.markers {
			if err := checkMarker(data, m); err != nil {
				return err
			}
		}
	}

	values := make([]uint64, len(s.layout.slots))
	for i, sl := range s.layout.slots {
		if values[i], err = s.readSlot(data, sl, sl.pos-offset); err != nil {
			return err
		}
	}
	if full {
		if err := s.plan.verify(data); err != nil {
			return err
		}
	}

	for i, sl := range s.layout.slots {
		*s.ref(sl.scalar) = values[i]
	}

	return nil
}

func (s *static) writeSlot(data *bitstream.Stream, sl slot, pos int) error {
	enc, err := s.dataType.Convert(*s.ref(sl.scalar), sl.bits)
	if err != nil {
		return fmt.Errorf("%s: %w", sl.name, err)
	}
	conv, err := s.rep.ConvertNumeric(enc)
	if err != nil {
		return fmt.Errorf("%s: %w", sl.name, err)
	}
	if err := data.WriteStreamAt(pos, conv); err != nil {
		return fmt.Errorf("%s: %w", sl.name, err)
	}

	return nil
}

func (s *static) readSlot(data *bitstream.Stream, sl slot, pos int) (uint64, error) {
	raw, err := data.Extract(pos, sl.bits)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", sl.name, err)
	}
	rev, err := s.rep.RevertNumeric(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", sl.name, err)
	}
	v, err := s.dataType.Revert(rev, sl.bits)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", sl.name, err)
	}

	return v, nil
}

// CheckSkeleton matches other against every non-zero skeleton scalar. UID is never a
// skeleton scalar.
func (s *static) CheckSkeleton(other Format) bool {
	o, ok := other.(interface{ base() *static })
	if !ok {
		return false
	}
	ob := o.base()
	if ob.layout.typ != s.layout.typ {
		return false
	}
	for _, sl := range s.layout.slots {
		if sl.scalar == scalarUID {
			continue
		}
		if v := *s.ref(sl.scalar); v != 0 && v != *ob.ref(sl.scalar) {
			return false
		}
	}

	return true
}

func (s *static) base() *static { return s }

func (s *static) clone() static {
	return *s
}

// load checks data holds at least length bits and wraps them.
func load(data []byte, length int) (*bitstream.Stream, error) {
	need := (length + 7) / 8
	if len(data) < need {
		return nil, fmt.Errorf("%w: %d bytes, need %d", errs.ErrDataTooShort, len(data), need)
	}

	return bitstream.FromBytes(data[:need], length)
}

func writeMarker(data *bitstream.Stream, m marker) error {
	bits, err := bitstream.FromUint64(m.value, m.bits)
	if err != nil {
		return fmt.Errorf("%s: %w", m.name, err)
	}

	return data.WriteStreamAt(m.pos, bits)
}

func checkMarker(data *bitstream.Stream, m marker) error {
	bits, err := data.Extract(m.pos, m.bits)
	if err != nil {
		return fmt.Errorf("%s: %w", m.name, err)
	}
	v, err := bits.Uint64()
	if err != nil {
		return fmt.Errorf("%s: %w", m.name, err)
	}
	if v != m.value {
		return fmt.Errorf("%w: %s is 0x%X, expected 0x%X", errs.ErrFormatMismatch, m.name, v, m.value)
	}

	return nil
}
