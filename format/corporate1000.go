package format

import (
	"github.com/arloliu/credfmt/parity"
)

// The two interleaved Corporate 1000 parity tables are kept literal.
var (
	corporate1000LeftParity2 = []int{
		2, 3, 5, 6, 8, 9, 11, 12, 14, 15, 17, 18, 20, 21, 23, 24, 26, 27, 29, 30, 32, 33,
	}
	corporate1000RightParity = []int{
		1, 2, 4, 5, 7, 8, 10, 11, 13, 14, 16, 17, 19, 20, 22, 23, 25, 26, 28, 29, 31, 32,
	}
)

var corporate1000Layout = &layout{
	typ:    TypeCorporate1000,
	name:   "Corporate 1000",
	length: 35,
	slots: []slot{
		{name: "company code", pos: 2, bits: 12, scalar: scalarCompanyCode},
		{name: "uid", pos: 14, bits: 20, scalar: scalarUID},
	},
	// Left parity 1 covers bits 1..34, so it is computed last.
	plan: parityPlan{
		{check: "left parity 2", pos: 1, typ: parity.Even, positions: corporate1000LeftParity2},
		{check: "right parity", pos: 34, typ: parity.Odd, positions: corporate1000RightParity},
		{check: "left parity 1", pos: 0, typ: parity.Odd, positions: parity.Range(1, 34)},
	},
}

// Corporate1000 is the 35-bit HID Corporate 1000 format: 12-bit company code, 20-bit UID.
type Corporate1000 struct {
	static
}

var _ StaticFormat = (*Corporate1000)(nil)

func NewCorporate1000(opts ...Option) (*Corporate1000, error) {
	cfg, err := newConfig(Config{}, opts)
	if err != nil {
		return nil, err
	}

	return &Corporate1000{static: newStatic(corporate1000Layout, cfg)}, nil
}

func (f *Corporate1000) CompanyCode() uint64        { return f.companyCode }
func (f *Corporate1000) SetCompanyCode(code uint64) { f.companyCode = code }

func (f *Corporate1000) Clone() Format {
	return &Corporate1000{static: f.clone()}
}
