package journal

import (
	"fmt"
	"math"

	"github.com/arloliu/credfmt/errs"
	"github.com/arloliu/credfmt/format"
)

// recordHeaderSize is the type byte plus the u16 bit length.
const recordHeaderSize = 3

// Record is one raw credential read.
type Record struct {
	Type format.Type
	// BitLength is the number of meaningful bits in Data.
	BitLength int
	// Data holds exactly ceil(BitLength/8) bytes.
	Data []byte
}

// NewRecord encodes f into a record.
func NewRecord(f format.Format) (Record, error) {
	data, err := f.LinearData()
	if err != nil {
		return Record{}, err
	}

	r := Record{Type: f.Type(), BitLength: f.DataLength(), Data: data}
	if err := r.validate(); err != nil {
		return Record{}, err
	}

	return r, nil
}

func (r Record) validate() error {
	if r.BitLength < 0 || r.BitLength > math.MaxUint16 {
		return fmt.Errorf("%w: record of %d bits", errs.ErrOutOfRange, r.BitLength)
	}
	if want := (r.BitLength + 7) / 8; len(r.Data) != want {
		return fmt.Errorf("%w: %d bits need %d bytes, record holds %d", errs.ErrInvalidConfiguration, r.BitLength, want, len(r.Data))
	}

	return nil
}

// Decode decodes the record into a format.
//
// Skeletons of the record's type are tried in order with format.Identify. Without any,
// a fresh format of the record's type is used; ASCII and Raw records adopt the record
// length. Custom records need a skeleton.
func (r Record) Decode(skeletons ...format.Format) (format.Format, error) {
	var candidates []format.Format
	for _, sk := range skeletons {
		if sk != nil && sk.Type() == r.Type {
			candidates = append(candidates, sk)
		}
	}
	if len(candidates) > 0 {
		return format.Identify(r.Data, candidates...)
	}
	if len(skeletons) > 0 {
		return nil, fmt.Errorf("%w: no skeleton of type %s", errs.ErrNoMatchingFormat, r.Type)
	}

	f, err := r.freshFormat()
	if err != nil {
		return nil, err
	}
	if f.DataLength() != r.BitLength {
		return nil, fmt.Errorf("%w: %s holds %d bits, record has %d", errs.ErrFormatMismatch, r.Type, f.DataLength(), r.BitLength)
	}

	return f, nil
}

func (r Record) freshFormat() (format.Format, error) {
	var f format.Format
	switch r.Type {
	case format.TypeCustom:
		return nil, fmt.Errorf("%w: custom records need a skeleton", errs.ErrNoMatchingFormat)
	case format.TypeASCII:
		a, err := format.NewASCII(format.WithLength(0))
		if err != nil {
			return nil, err
		}
		f = a
	case format.TypeRaw:
		f = format.NewRaw(nil)
	default:
		var err error
		if f, err = format.New(r.Type); err != nil {
			return nil, err
		}
	}
	if err := f.SetLinearData(r.Data); err != nil {
		return nil, err
	}

	return f, nil
}
