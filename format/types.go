package format

import (
	"fmt"
	"strings"

	"github.com/arloliu/credfmt/errs"
)

// Type tags a concrete credential format.
type Type uint8

const (
	TypeUnknown                       Type = 0x00 // TypeUnknown is the zero tag; New rejects it.
	TypeWiegand26                     Type = 0x01 // TypeWiegand26 is the 26-bit H10301 format.
	TypeWiegand34                     Type = 0x02 // TypeWiegand34 is the 34-bit format with a 32-bit UID.
	TypeWiegand34Facility             Type = 0x03 // TypeWiegand34Facility is the 34-bit format with a facility code.
	TypeWiegand37                     Type = 0x04 // TypeWiegand37 is the 37-bit H10302 format.
	TypeWiegand37Facility             Type = 0x05 // TypeWiegand37Facility is the 37-bit H10304 format.
	TypeCorporate1000                 Type = 0x06 // TypeCorporate1000 is the 35-bit HID Corporate 1000 format.
	TypeDataClock                     Type = 0x07 // TypeDataClock is the 36-bit BCD data/clock format.
	TypeFASCN200Bit                   Type = 0x08 // TypeFASCN200Bit is the 200-bit FASC-N format.
	TypeHIDHoneywell                  Type = 0x09 // TypeHIDHoneywell is the 40-bit HID Honeywell format.
	TypeGetronik40Bit                 Type = 0x0A // TypeGetronik40Bit is the 40-bit Getronik format.
	TypeBariumFerritePCSC             Type = 0x0B // TypeBariumFerritePCSC is the 32-bit Barium Ferrite format.
	TypeRaw                           Type = 0x0C // TypeRaw carries user supplied bytes.
	TypeASCII                         Type = 0x0D // TypeASCII carries user supplied ASCII text.
	TypeWiegand37FacilityRightParity2 Type = 0x0E // TypeWiegand37FacilityRightParity2 is Wiegand 37 with facility and two right parity bits.
	TypeCustom                        Type = 0xFF // TypeCustom is a field-based user layout.
)

var typeNames = map[Type]string{
	TypeWiegand26:                     "Wiegand26",
	TypeWiegand34:                     "Wiegand34",
	TypeWiegand34Facility:             "Wiegand34Facility",
	TypeWiegand37:                     "Wiegand37",
	TypeWiegand37Facility:             "Wiegand37Facility",
	TypeWiegand37FacilityRightParity2: "Wiegand37FacilityRightParity2",
	TypeCorporate1000:                 "Corporate1000",
	TypeDataClock:                     "DataClock",
	TypeFASCN200Bit:                   "FASCN200Bit",
	TypeHIDHoneywell:                  "HIDHoneywell",
	TypeGetronik40Bit:                 "Getronik40Bit",
	TypeBariumFerritePCSC:             "BariumFerritePCSC",
	TypeRaw:                           "Raw",
	TypeASCII:                         "ASCII",
	TypeCustom:                        "Custom",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}

	return "Unknown"
}

// Types returns every tag New accepts, in tag order.
func Types() []Type {
	return []Type{
		TypeWiegand26,
		TypeWiegand34,
		TypeWiegand34Facility,
		TypeWiegand37,
		TypeWiegand37Facility,
		TypeCorporate1000,
		TypeDataClock,
		TypeFASCN200Bit,
		TypeHIDHoneywell,
		TypeGetronik40Bit,
		TypeBariumFerritePCSC,
		TypeRaw,
		TypeASCII,
		TypeWiegand37FacilityRightParity2,
		TypeCustom,
	}
}

// ParseType maps a tag name, case-insensitively, to its Type.
func ParseType(name string) (Type, error) {
	for t, n := range typeNames {
		if strings.EqualFold(n, name) {
			return t, nil
		}
	}

	return TypeUnknown, fmt.Errorf("%w: %q", errs.ErrUnknownFormat, name)
}
