package encoding

import (
	"fmt"
	"strings"
)

// Kind tags a concrete DataType or DataRepresentation.
type Kind uint8

const (
	KindBinary    Kind = 0x01 // KindBinary is the identity data type.
	KindBCDByte   Kind = 0x02 // KindBCDByte encodes one decimal digit per byte.
	KindBCDNibble Kind = 0x03 // KindBCDNibble encodes one decimal digit per nibble.

	KindBigEndian    Kind = 0x10 // KindBigEndian is the pass-through representation.
	KindLittleEndian Kind = 0x11 // KindLittleEndian byte-swaps the buffer.
	KindNoEncoding   Kind = 0x12 // KindNoEncoding leaves the buffer untouched.
)

// Encoding is the capability shared by DataType and DataRepresentation.
type Encoding interface {
	// Name returns a human readable name, e.g. "BCDNibble".
	Name() string
	// Kind returns the variant tag.
	Kind() Kind
}

func (k Kind) String() string {
	switch k {
	case KindBinary:
		return "Binary"
	case KindBCDByte:
		return "BCDByte"
	case KindBCDNibble:
		return "BCDNibble"
	case KindBigEndian:
		return "BigEndian"
	case KindLittleEndian:
		return "LittleEndian"
	case KindNoEncoding:
		return "NoEncoding"
	default:
		return "Unknown"
	}
}

// IsDataType reports whether k tags a DataType.
func (k Kind) IsDataType() bool {
	return k == KindBinary || k == KindBCDByte || k == KindBCDNibble
}

// IsRepresentation reports whether k tags a DataRepresentation.
func (k Kind) IsRepresentation() bool {
	return k == KindBigEndian || k == KindLittleEndian || k == KindNoEncoding
}

// ParseKind maps a kind name (case-insensitive) to its Kind.
func ParseKind(name string) (Kind, error) {
	for _, k := range []Kind{KindBinary, KindBCDByte, KindBCDNibble, KindBigEndian, KindLittleEndian, KindNoEncoding} {
		if strings.EqualFold(k.String(), name) {
			return k, nil
		}
	}

	return 0, fmt.Errorf("unknown encoding kind %q", name)
}
