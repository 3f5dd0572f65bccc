// Package profile loads YAML skeleton profiles used by the credfmt CLI to identify raw reads.
//
// A profile lists skeletons in match order:
//
//	skeletons:
//	  - format: Wiegand26
//	    facility_code: 67
//	  - format: Corporate1000
//	    company_code: 1234
//	  - format: Custom
//	    name: site-badge
//	    fields:
//	      - {name: FC, kind: number, position: 1, length: 8, fixed: true, value: 67}
//	      - {name: UID, kind: number, position: 9, length: 16, identifier: true}
//	      - {name: P0, kind: parity, position: 0, parity: even, range: [1, 12]}
//	      - {name: P25, kind: parity, position: 25, parity: odd, range: [13, 12]}
package profile

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/arloliu/credfmt/encoding"
	"github.com/arloliu/credfmt/errs"
	"github.com/arloliu/credfmt/field"
	"github.com/arloliu/credfmt/format"
	"github.com/arloliu/credfmt/parity"
)

// Profile is an ordered list of skeleton definitions.
type Profile struct {
	Name      string     `yaml:"name,omitempty"`
	Skeletons []Skeleton `yaml:"skeletons,omitempty"`
}

// Skeleton describes one format used as a pattern. Zero scalars are wildcards.
type Skeleton struct {
	Format       string  `yaml:"format,omitempty"`
	Name         string  `yaml:"name,omitempty"`
	FacilityCode uint64  `yaml:"facility_code,omitempty"`
	CompanyCode  uint64  `yaml:"company_code,omitempty"`
	SystemCode   uint64  `yaml:"system_code,omitempty"`
	Field        uint64  `yaml:"field,omitempty"`
	Length       int     `yaml:"length,omitempty"`
	DataLength   int     `yaml:"data_length,omitempty"`
	LeftParity   string  `yaml:"left_parity,omitempty"`
	RightParity  string  `yaml:"right_parity,omitempty"`
	Fields       []Field `yaml:"fields,omitempty"`
}

// Field describes one field of a custom skeleton.
type Field struct {
	Name           string `yaml:"name,omitempty"`
	Kind           string `yaml:"kind,omitempty"`
	Position       int    `yaml:"position,omitempty"`
	Length         int    `yaml:"length,omitempty"`
	Value          string `yaml:"value,omitempty"`
	Fixed          bool   `yaml:"fixed,omitempty"`
	Identifier     bool   `yaml:"identifier,omitempty"`
	DataType       string `yaml:"data_type,omitempty"`
	Representation string `yaml:"representation,omitempty"`
	Charset        string `yaml:"charset,omitempty"`
	Padding        byte   `yaml:"padding,omitempty"`
	Parity         string `yaml:"parity,omitempty"`
	Positions      []int  `yaml:"positions,omitempty"`
	// Range is a [start, length] pair appended to Positions.
	Range []int `yaml:"range,omitempty"`
}

// Load reads and parses the profile at path.
func Load(path string) (*Profile, error) {
	if !filepath.IsAbs(path) {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return nil, fmt.Errorf("invalid profile path: %w", err)
		}
		path = absPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile: %w", err)
	}

	return Parse(data)
}

// Parse decodes a YAML profile. Unknown keys are rejected.
func Parse(data []byte) (*Profile, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var p Profile
	if err := dec.Decode(&p); err != nil {
		return nil, fmt.Errorf("%w: failed to parse profile: %v", errs.ErrInvalidConfiguration, err)
	}

	return &p, nil
}

// Marshal encodes the profile as YAML.
func (p *Profile) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal profile: %w", err)
	}

	return data, nil
}

// Formats builds the skeletons in profile order.
func (p *Profile) Formats() ([]format.Format, error) {
	out := make([]format.Format, 0, len(p.Skeletons))
	for i, sk := range p.Skeletons {
		f, err := sk.Build()
		if err != nil {
			return nil, fmt.Errorf("skeleton %d: %w", i, err)
		}
		out = append(out, f)
	}

	return out, nil
}

// Build constructs the format skeleton described by s.
func (s Skeleton) Build() (format.Format, error) {
	t, err := format.ParseType(s.Format)
	if err != nil {
		return nil, err
	}

	switch t {
	case format.TypeCustom:
		return s.buildCustom()
	case format.TypeRaw:
		if s.Length == 0 {
			return format.NewRaw(nil), nil
		}

		return format.NewRaw(make([]byte, s.Length)), nil
	}

	opts := []format.Option{
		format.WithFacilityCode(s.FacilityCode),
		format.WithCompanyCode(s.CompanyCode),
		format.WithField(s.Field),
		format.WithLength(s.Length),
	}
	if s.LeftParity != "" {
		pt, err := parity.ParseType(s.LeftParity)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", errs.ErrInvalidConfiguration, err)
		}
		opts = append(opts, format.WithLeftParity(pt))
	}
	if s.RightParity != "" {
		pt, err := parity.ParseType(s.RightParity)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", errs.ErrInvalidConfiguration, err)
		}
		opts = append(opts, format.WithRightParity(pt))
	}

	f, err := format.New(t, opts...)
	if err != nil {
		return nil, err
	}
	if fascn, ok := f.(*format.FASCN200Bit); ok {
		fascn.SetSystemCode(s.SystemCode)
	}

	return f, nil
}

func (s Skeleton) buildCustom() (format.Format, error) {
	fields := make([]field.DataField, 0, len(s.Fields))
	for _, fd := range s.Fields {
		f, err := fd.Build()
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", fd.Name, err)
		}
		fields = append(fields, f)
	}

	opts := []format.CustomOption{format.WithFields(fields...)}
	if s.Name != "" {
		opts = append(opts, format.WithName(s.Name))
	}
	if s.DataLength > 0 {
		opts = append(opts, format.WithDataLength(s.DataLength))
	}

	c, err := format.NewCustomFormat(opts...)
	if err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}

	return c, nil
}

// Build constructs the data field described by f.
func (f Field) Build() (field.DataField, error) {
	kind := strings.ToLower(f.Kind)
	if kind == "parity" {
		return f.buildParity()
	}

	opts, err := f.valueOptions()
	if err != nil {
		return nil, err
	}

	switch kind {
	case "number", "":
		var v uint64
		if f.Value != "" {
			v, err = strconv.ParseUint(f.Value, 0, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: number value %q", errs.ErrInvalidConfiguration, f.Value)
			}
		}

		return field.NewNumberDataField(f.Name, f.Position, f.Length, v, opts...)
	case "string":
		return field.NewStringDataField(f.Name, f.Position, f.Length, f.Value, opts...)
	case "binary":
		v, err := hex.DecodeString(strings.ReplaceAll(f.Value, " ", ""))
		if err != nil {
			return nil, fmt.Errorf("%w: binary value %q", errs.ErrInvalidConfiguration, f.Value)
		}

		return field.NewBinaryDataField(f.Name, f.Position, f.Length, v, opts...)
	default:
		return nil, fmt.Errorf("%w: unknown field kind %q", errs.ErrInvalidConfiguration, f.Kind)
	}
}

func (f Field) buildParity() (field.DataField, error) {
	pt, err := parity.ParseType(f.Parity)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrInvalidConfiguration, err)
	}

	positions := append([]int(nil), f.Positions...)
	switch len(f.Range) {
	case 0:
	case 2:
		positions = append(positions, parity.Range(f.Range[0], f.Range[1])...)
	default:
		return nil, fmt.Errorf("%w: range needs [start, length], got %v", errs.ErrInvalidConfiguration, f.Range)
	}

	return field.NewParityDataField(f.Name, f.Position, pt, positions)
}

func (f Field) valueOptions() ([]field.ValueOption, error) {
	var opts []field.ValueOption
	if f.Fixed {
		opts = append(opts, field.WithFixed())
	}
	if f.Identifier {
		opts = append(opts, field.WithIdentifier())
	}
	if f.Padding != 0 {
		opts = append(opts, field.WithPadding(f.Padding))
	}
	if f.Charset != "" {
		opts = append(opts, field.WithCharset(f.Charset))
	}
	if f.DataType != "" {
		kind, err := encoding.ParseKind(f.DataType)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", errs.ErrInvalidConfiguration, err)
		}
		dt, err := encoding.NewDataType(kind)
		if err != nil {
			return nil, err
		}
		opts = append(opts, field.WithDataType(dt))
	}
	if f.Representation != "" {
		kind, err := encoding.ParseKind(f.Representation)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", errs.ErrInvalidConfiguration, err)
		}
		rep, err := encoding.NewDataRepresentation(kind)
		if err != nil {
			return nil, err
		}
		opts = append(opts, field.WithRepresentation(rep))
	}

	return opts, nil
}
