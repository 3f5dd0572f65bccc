package field

import (
	"fmt"
	"slices"

	"github.com/arloliu/credfmt/bitstream"
	"github.com/arloliu/credfmt/errs"
	"github.com/arloliu/credfmt/parity"
)

// ParityDataField is a single parity bit computed over absolute bit positions of the
// linear data. The positions may cover other fields, including other parity fields.
type ParityDataField struct {
	base
	parityType parity.Type
	positions  []int
}

var _ DataField = (*ParityDataField)(nil)

// NewParityDataField returns a parity field at position covering positions.
func NewParityDataField(name string, position int, t parity.Type, positions []int) (*ParityDataField, error) {
	b, err := newBase(name, position, 1)
	if err != nil {
		return nil, err
	}
	for _, p := range positions {
		if p < 0 {
			return nil, fmt.Errorf("%w: parity field %q covers negative position %d", errs.ErrInvalidConfiguration, name, p)
		}
	}

	return &ParityDataField{base: b, parityType: t, positions: slices.Clone(positions)}, nil
}

func (f *ParityDataField) Kind() Kind { return KindParity }

func (f *ParityDataField) ParityType() parity.Type { return f.parityType }

func (f *ParityDataField) SetParityType(t parity.Type) { f.parityType = t }

// BitsUsePositions returns a copy of the covered positions.
func (f *ParityDataField) BitsUsePositions() []int { return slices.Clone(f.positions) }

func (f *ParityDataField) SetBitsUsePositions(positions []int) { f.positions = slices.Clone(positions) }

// Compute returns the parity bit for data.
func (f *ParityDataField) Compute(data *bitstream.Stream) (byte, error) {
	for _, p := range f.positions {
		if p >= data.Len() {
			return 0, fmt.Errorf("%w: parity field %q covers bit %d of %d", errs.ErrOutOfRange, f.name, p, data.Len())
		}
	}

	return parity.Calculate(data, f.parityType, f.positions), nil
}

func (f *ParityDataField) Write(data *bitstream.Stream) error {
	bit, err := f.Compute(data)
	if err != nil {
		return err
	}

	return data.Set(f.position, bit == 1)
}

// Read verifies the stored bit against the one computed from data.
func (f *ParityDataField) Read(data *bitstream.Stream) error {
	bit, err := f.Compute(data)
	if err != nil {
		return err
	}
	stored, err := data.Test(f.position)
	if err != nil {
		return fmt.Errorf("parity field %q: %w", f.name, err)
	}
	if stored != (bit == 1) {
		if f.name == "" {
			return errs.NewParityErrorf("parity bit %d", f.position)
		}

		return errs.NewParityError(f.name)
	}

	return nil
}

// CheckFieldDependency reports whether any covered position falls inside other.
func (f *ParityDataField) CheckFieldDependency(other DataField) bool {
	if other == nil {
		return false
	}
	for _, p := range f.positions {
		if other.Contains(p) {
			return true
		}
	}

	return false
}

func (f *ParityDataField) Clone() DataField {
	c := *f
	c.positions = slices.Clone(f.positions)

	return &c
}
