package format

import (
	"fmt"

	"github.com/arloliu/credfmt/errs"
)

// New returns a fresh format for t configured with opts. Raw and Custom formats take no
// options and ignore them.
func New(t Type, opts ...Option) (Format, error) {
	var (
		f   Format
		err error
	)
	switch t {
	case TypeWiegand26:
		f, err = NewWiegand26(opts...)
	case TypeWiegand34:
		f, err = NewWiegand34(opts...)
	case TypeWiegand34Facility:
		f, err = NewWiegand34Facility(opts...)
	case TypeWiegand37:
		f, err = NewWiegand37(opts...)
	case TypeWiegand37Facility:
		f, err = NewWiegand37Facility(opts...)
	case TypeWiegand37FacilityRightParity2:
		f, err = NewWiegand37FacilityRightParity2(opts...)
	case TypeCorporate1000:
		f, err = NewCorporate1000(opts...)
	case TypeDataClock:
		f, err = NewDataClock(opts...)
	case TypeFASCN200Bit:
		f, err = NewFASCN200Bit(opts...)
	case TypeHIDHoneywell:
		f, err = NewHIDHoneywell(opts...)
	case TypeGetronik40Bit:
		f, err = NewGetronik40(opts...)
	case TypeBariumFerritePCSC:
		f, err = NewBariumFerritePCSC(opts...)
	case TypeASCII:
		f, err = NewASCII(opts...)
	case TypeRaw:
		f = NewRaw(nil)
	case TypeCustom:
		f, err = NewCustomFormat()
	default:
		return nil, fmt.Errorf("%w: 0x%02X", errs.ErrUnknownFormat, uint8(t))
	}
	if err != nil {
		return nil, err
	}

	return f, nil
}

// Identify decodes data with a clone of each skeleton in order and returns the first
// decoded format the skeleton matches. Skeletons are not modified.
func Identify(data []byte, skeletons ...Format) (Format, error) {
	for _, sk := range skeletons {
		if sk == nil {
			continue
		}
		candidate := sk.Clone()
		if err := candidate.SetLinearData(data); err != nil {
			continue
		}
		if sk.CheckSkeleton(candidate) {
			return candidate, nil
		}
	}

	return nil, fmt.Errorf("%w: tried %d skeletons", errs.ErrNoMatchingFormat, len(skeletons))
}
