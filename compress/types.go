package compress

import (
	"fmt"
	"strings"
)

// Type tags a compression algorithm. The tag is stored in journal headers.
type Type uint8

const (
	TypeNone Type = 0x1 // TypeNone represents no compression.
	TypeZstd Type = 0x2 // TypeZstd represents Zstandard compression.
	TypeS2   Type = 0x3 // TypeS2 represents S2 compression.
	TypeLZ4  Type = 0x4 // TypeLZ4 represents LZ4 compression.
)

func (t Type) String() string {
	switch t {
	case TypeNone:
		return "None"
	case TypeZstd:
		return "Zstd"
	case TypeS2:
		return "S2"
	case TypeLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// ParseType maps an algorithm name, case-insensitively, to its Type.
func ParseType(name string) (Type, error) {
	for _, t := range []Type{TypeNone, TypeZstd, TypeS2, TypeLZ4} {
		if strings.EqualFold(t.String(), name) {
			return t, nil
		}
	}

	return 0, fmt.Errorf("unknown compression type %q", name)
}
