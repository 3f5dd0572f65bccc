// Package format implements credential formats: fixed-layout static formats, a field-based
// CustomFormat, a registry and skeleton identification.
//
// A Format encodes its values into linear data with LinearData and decodes linear data with
// SetLinearData. Linear data is always ceil(DataLength()/8) bytes, MSB-first, and every
// position in this package is an absolute bit offset from the start of it.
//
// # Basic Usage
//
//	f, _ := format.NewWiegand26(format.WithFacilityCode(67), format.WithUID(1000))
//	data, _ := f.LinearData() // A1 81 F4 40
//
//	decoded, _ := format.NewWiegand26()
//	if err := decoded.SetLinearData(data); err != nil {
//		// errors.Is(err, errs.ErrParityMismatch), errs.ErrDataTooShort, ...
//	}
//
// # Skeletons
//
// A skeleton is a partially configured format used as a pattern. CheckSkeleton reports
// whether another format has the skeleton's type and matches every non-zero skeleton scalar
// (facility code, company code, Getronik field, ASCII or Raw length); zero is a wildcard.
// Identify decodes a buffer with each skeleton in turn and returns the first match.
//
// # Thread Safety
//
// Formats are not safe for concurrent mutation. Encoding from a format nobody mutates is
// safe from multiple goroutines.
package format

import (
	"fmt"

	"github.com/arloliu/credfmt/encoding"
	"github.com/arloliu/credfmt/errs"
	"github.com/arloliu/credfmt/internal/options"
	"github.com/arloliu/credfmt/parity"
)

// Format is the encode/decode contract shared by static and custom formats.
type Format interface {
	Type() Type
	Name() string
	// DataLength returns the number of bits of linear data.
	DataLength() int
	// LinearData encodes the format into exactly ceil(DataLength()/8) bytes.
	LinearData() ([]byte, error)
	// SetLinearData decodes data into the format. On error the format is left unchanged.
	SetLinearData(data []byte) error
	// CheckSkeleton reports whether other matches this format used as a skeleton.
	CheckSkeleton(other Format) bool
	// NeedUserConfiguration reports whether the caller must supply more than a UID
	// before encoding is meaningful.
	NeedUserConfiguration() bool
	Clone() Format
}

// StaticFormat is a fixed-layout format identified by a numeric UID.
type StaticFormat interface {
	Format
	UID() uint64
	SetUID(uid uint64)
	DataType() encoding.DataType
	DataRepresentation() encoding.DataRepresentation
}

// FacilityCoder is implemented by formats that carry a facility code.
type FacilityCoder interface {
	FacilityCode() uint64
	SetFacilityCode(code uint64)
}

// Config holds construction settings of a format. Settings a format has no use for are
// ignored.
type Config struct {
	DataType       encoding.DataType
	Representation encoding.DataRepresentation
	UID            uint64
	FacilityCode   uint64
	CompanyCode    uint64
	// Field is the Getronik field value.
	Field uint64
	// LeftParity and RightParity override the parity types of Wiegand formats.
	LeftParity  parity.Type
	RightParity parity.Type
	// Length is the character count of ASCII formats.
	Length int
	// Padding is the pad character of ASCII formats.
	Padding byte
}

// Option configures a format constructor.
type Option = options.Option[*Config]

// WithDataType overrides the DataType used for every numeric sub-field.
func WithDataType(dt encoding.DataType) Option {
	return options.New(func(c *Config) error {
		if dt == nil {
			return fmt.Errorf("%w: nil data type", errs.ErrInvalidConfiguration)
		}
		c.DataType = dt

		return nil
	})
}

// WithRepresentation overrides the DataRepresentation used for every numeric sub-field.
func WithRepresentation(rep encoding.DataRepresentation) Option {
	return options.New(func(c *Config) error {
		if rep == nil {
			return fmt.Errorf("%w: nil data representation", errs.ErrInvalidConfiguration)
		}
		c.Representation = rep

		return nil
	})
}

func WithUID(uid uint64) Option {
	return options.NoError(func(c *Config) { c.UID = uid })
}

func WithFacilityCode(code uint64) Option {
	return options.NoError(func(c *Config) { c.FacilityCode = code })
}

func WithCompanyCode(code uint64) Option {
	return options.NoError(func(c *Config) { c.CompanyCode = code })
}

// WithField sets the Getronik field value.
func WithField(v uint64) Option {
	return options.NoError(func(c *Config) { c.Field = v })
}

// WithLeftParity overrides the left parity type of a Wiegand format.
func WithLeftParity(t parity.Type) Option {
	return options.NoError(func(c *Config) { c.LeftParity = t })
}

// WithRightParity overrides the right parity type of a Wiegand format.
func WithRightParity(t parity.Type) Option {
	return options.NoError(func(c *Config) { c.RightParity = t })
}

// WithLength sets the character count of an ASCII format. Zero makes a skeleton that
// adopts the length of the data it decodes.
func WithLength(chars int) Option {
	return options.New(func(c *Config) error {
		if chars < 0 {
			return fmt.Errorf("%w: negative length %d", errs.ErrInvalidConfiguration, chars)
		}
		c.Length = chars

		return nil
	})
}

// WithPadding sets the pad character of an ASCII format.
func WithPadding(pad byte) Option {
	return options.NoError(func(c *Config) { c.Padding = pad })
}

// newConfig applies opts over defaults.
func newConfig(defaults Config, opts []Option) (*Config, error) {
	cfg := defaults
	if cfg.DataType == nil {
		cfg.DataType = encoding.BinaryDataType{}
	}
	if cfg.Representation == nil {
		cfg.Representation = encoding.BigEndianRepresentation{}
	}
	if err := options.Apply(&cfg, opts...); err != nil {
		return nil, err
	}

	return &cfg, nil
}
