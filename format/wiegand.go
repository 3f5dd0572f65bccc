package format

import (
	"github.com/arloliu/credfmt/parity"
)

// wiegand adds the parity-free payload view shared by the Wiegand family. The payload
// starts right after the left parity bit.
type wiegand struct {
	static
}

func newWiegand(l *layout, opts []Option) (wiegand, error) {
	cfg, err := newConfig(Config{LeftParity: parity.Even, RightParity: parity.Odd}, opts)
	if err != nil {
		return wiegand{}, err
	}
	w := wiegand{static: newStatic(l, cfg)}
	w.plan = l.plan.withSides(cfg.LeftParity, cfg.RightParity)

	return w, nil
}

// LinearDataWithoutParity encodes the UID and facility payload only.
func (w *wiegand) LinearDataWithoutParity() ([]byte, error) {
	data, err := w.encode(w.layout.payloadBits, w.layout.payloadPos, false)
	if err != nil {
		return nil, err
	}

	return data.Bytes(), nil
}

// SetLinearDataWithoutParity decodes a payload produced by LinearDataWithoutParity.
func (w *wiegand) SetLinearDataWithoutParity(data []byte) error {
	return w.decode(data, w.layout.payloadBits, w.layout.payloadPos, false)
}

// LeftParity returns the parity type of the left parity bit.
func (w *wiegand) LeftParity() parity.Type { return w.sideType(sideLeft) }

// RightParity returns the parity type of the right parity bits.
func (w *wiegand) RightParity() parity.Type { return w.sideType(sideRight) }

func (w *wiegand) sideType(sd side) parity.Type {
	for _, b := range w.plan {
		if b.side == sd {
			return b.typ
		}
	}

	return parity.None
}

var wiegand26Layout = &layout{
	typ:    TypeWiegand26,
	name:   "Wiegand 26",
	length: 26,
	slots: []slot{
		{name: "facility code", pos: 1, bits: 8, scalar: scalarFacilityCode},
		{name: "uid", pos: 9, bits: 16, scalar: scalarUID},
	},
	plan: parityPlan{
		{check: "left parity", pos: 0, positions: parity.Range(1, 12), side: sideLeft},
		{check: "right parity", pos: 25, positions: parity.Range(13, 12), side: sideRight},
	},
	payloadPos:  1,
	payloadBits: 24,
}

// Wiegand26 is the 26-bit H10301 format: 8-bit facility code, 16-bit UID.
type Wiegand26 struct {
	wiegand
}

var _ StaticFormat = (*Wiegand26)(nil)

func NewWiegand26(opts ...Option) (*Wiegand26, error) {
	w, err := newWiegand(wiegand26Layout, opts)
	if err != nil {
		return nil, err
	}

	return &Wiegand26{wiegand: w}, nil
}

func (f *Wiegand26) FacilityCode() uint64        { return f.facilityCode }
func (f *Wiegand26) SetFacilityCode(code uint64) { f.facilityCode = code }

func (f *Wiegand26) Clone() Format {
	return &Wiegand26{wiegand: wiegand{static: f.clone()}}
}

var wiegand34Layout = &layout{
	typ:    TypeWiegand34,
	name:   "Wiegand 34",
	length: 34,
	slots: []slot{
		{name: "uid", pos: 1, bits: 32, scalar: scalarUID},
	},
	plan: parityPlan{
		{check: "left parity", pos: 0, positions: parity.Range(1, 16), side: sideLeft},
		{check: "right parity", pos: 33, positions: parity.Range(17, 16), side: sideRight},
	},
	payloadPos:  1,
	payloadBits: 32,
}

// Wiegand34 is the 34-bit format with a 32-bit UID.
type Wiegand34 struct {
	wiegand
}

var _ StaticFormat = (*Wiegand34)(nil)

func NewWiegand34(opts ...Option) (*Wiegand34, error) {
	w, err := newWiegand(wiegand34Layout, opts)
	if err != nil {
		return nil, err
	}

	return &Wiegand34{wiegand: w}, nil
}

func (f *Wiegand34) Clone() Format {
	return &Wiegand34{wiegand: wiegand{static: f.clone()}}
}

var wiegand34FacilityLayout = &layout{
	typ:    TypeWiegand34Facility,
	name:   "Wiegand 34 with facility",
	length: 34,
	slots: []slot{
		{name: "facility code", pos: 1, bits: 16, scalar: scalarFacilityCode},
		{name: "uid", pos: 17, bits: 16, scalar: scalarUID},
	},
	plan: parityPlan{
		{check: "left parity", pos: 0, positions: parity.Range(1, 16), side: sideLeft},
		{check: "right parity", pos: 33, positions: parity.Range(17, 16), side: sideRight},
	},
	payloadPos:  1,
	payloadBits: 32,
}

// Wiegand34Facility is the 34-bit format with a 16-bit facility code and a 16-bit UID.
type Wiegand34Facility struct {
	wiegand
}

var _ StaticFormat = (*Wiegand34Facility)(nil)

func NewWiegand34Facility(opts ...Option) (*Wiegand34Facility, error) {
	w, err := newWiegand(wiegand34FacilityLayout, opts)
	if err != nil {
		return nil, err
	}

	return &Wiegand34Facility{wiegand: w}, nil
}

func (f *Wiegand34Facility) FacilityCode() uint64        { return f.facilityCode }
func (f *Wiegand34Facility) SetFacilityCode(code uint64) { f.facilityCode = code }

func (f *Wiegand34Facility) Clone() Format {
	return &Wiegand34Facility{wiegand: wiegand{static: f.clone()}}
}

var wiegand37Layout = &layout{
	typ:    TypeWiegand37,
	name:   "Wiegand 37",
	length: 37,
	slots: []slot{
		{name: "uid", pos: 1, bits: 35, scalar: scalarUID},
	},
	// Both parity bits cover bit 18.
	plan: parityPlan{
		{check: "left parity", pos: 0, positions: parity.Range(1, 18), side: sideLeft},
		{check: "right parity", pos: 36, positions: parity.Range(18, 18), side: sideRight},
	},
	payloadPos:  1,
	payloadBits: 35,
}

// Wiegand37 is the 37-bit H10302 format with a 35-bit UID.
type Wiegand37 struct {
	wiegand
}

var _ StaticFormat = (*Wiegand37)(nil)

func NewWiegand37(opts ...Option) (*Wiegand37, error) {
	w, err := newWiegand(wiegand37Layout, opts)
	if err != nil {
		return nil, err
	}

	return &Wiegand37{wiegand: w}, nil
}

func (f *Wiegand37) Clone() Format {
	return &Wiegand37{wiegand: wiegand{static: f.clone()}}
}

var wiegand37FacilityLayout = &layout{
	typ:    TypeWiegand37Facility,
	name:   "Wiegand 37 with facility",
	length: 37,
	slots: []slot{
		{name: "facility code", pos: 1, bits: 16, scalar: scalarFacilityCode},
		{name: "uid", pos: 17, bits: 19, scalar: scalarUID},
	},
	plan: parityPlan{
		{check: "left parity", pos: 0, positions: parity.Range(1, 18), side: sideLeft},
		{check: "right parity", pos: 36, positions: parity.Range(18, 18), side: sideRight},
	},
	payloadPos:  1,
	payloadBits: 35,
}

// Wiegand37Facility is the 37-bit H10304 format: 16-bit facility code, 19-bit UID.
type Wiegand37Facility struct {
	wiegand
}

var _ StaticFormat = (*Wiegand37Facility)(nil)

func NewWiegand37Facility(opts ...Option) (*Wiegand37Facility, error) {
	w, err := newWiegand(wiegand37FacilityLayout, opts)
	if err != nil {
		return nil, err
	}

	return &Wiegand37Facility{wiegand: w}, nil
}

func (f *Wiegand37Facility) FacilityCode() uint64        { return f.facilityCode }
func (f *Wiegand37Facility) SetFacilityCode(code uint64) { f.facilityCode = code }

func (f *Wiegand37Facility) Clone() Format {
	return &Wiegand37Facility{wiegand: wiegand{static: f.clone()}}
}

var wiegand37FacilityRP2Layout = &layout{
	typ:    TypeWiegand37FacilityRightParity2,
	name:   "Wiegand 37 with facility and two right parity bits",
	length: 37,
	slots: []slot{
		{name: "facility code", pos: 1, bits: 16, scalar: scalarFacilityCode},
		{name: "uid", pos: 17, bits: 18, scalar: scalarUID},
	},
	// The second right parity bit covers the first one.
	plan: parityPlan{
		{check: "left parity", pos: 0, positions: parity.Range(1, 18), side: sideLeft},
		{check: "right parity 1", pos: 35, positions: parity.Range(18, 17), side: sideRight},
		{check: "right parity 2", pos: 36, positions: parity.Range(1, 35), side: sideRight},
	},
	payloadPos:  1,
	payloadBits: 34,
}

// Wiegand37FacilityRightParity2 is the 37-bit format with a 16-bit facility code, an 18-bit
// UID and two right parity bits.
type Wiegand37FacilityRightParity2 struct {
	wiegand
}

var _ StaticFormat = (*Wiegand37FacilityRightParity2)(nil)

func NewWiegand37FacilityRightParity2(opts ...Option) (*Wiegand37FacilityRightParity2, error) {
	w, err := newWiegand(wiegand37FacilityRP2Layout, opts)
	if err != nil {
		return nil, err
	}

	return &Wiegand37FacilityRightParity2{wiegand: w}, nil
}

func (f *Wiegand37FacilityRightParity2) FacilityCode() uint64        { return f.facilityCode }
func (f *Wiegand37FacilityRightParity2) SetFacilityCode(code uint64) { f.facilityCode = code }

func (f *Wiegand37FacilityRightParity2) Clone() Format {
	return &Wiegand37FacilityRightParity2{wiegand: wiegand{static: f.clone()}}
}
