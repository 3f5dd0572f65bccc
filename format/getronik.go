package format

import (
	"github.com/arloliu/credfmt/parity"
)

var getronik40Layout = &layout{
	typ:    TypeGetronik40Bit,
	name:   "Getronik 40",
	length: 40,
	slots: []slot{
		{name: "uid", pos: 8, bits: 16, scalar: scalarUID},
		{name: "field", pos: 24, bits: 14, scalar: scalarField},
	},
	markers: []marker{
		{name: "start marker", pos: 0, bits: 8, value: 0x2E},
		{name: "stop bit", pos: 39, bits: 1, value: 1},
	},
	plan: parityPlan{
		{check: "right parity", pos: 38, typ: parity.Odd, positions: parity.Range(8, 30)},
	},
}

// Getronik40 is the 40-bit Getronik format: a 0x2E marker byte, a 16-bit UID, a 14-bit
// field, an odd parity bit and a stop bit.
type Getronik40 struct {
	static
}

var _ StaticFormat = (*Getronik40)(nil)

func NewGetronik40(opts ...Option) (*Getronik40, error) {
	cfg, err := newConfig(Config{}, opts)
	if err != nil {
		return nil, err
	}

	return &Getronik40{static: newStatic(getronik40Layout, cfg)}, nil
}

// Field returns the 14-bit field value. A non-zero field filters skeleton matches.
func (f *Getronik40) Field() uint64     { return f.field }
func (f *Getronik40) SetField(v uint64) { f.field = v }

func (f *Getronik40) Clone() Format {
	return &Getronik40{static: f.clone()}
}
