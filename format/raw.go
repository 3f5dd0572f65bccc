package format

import (
	"bytes"
	"fmt"

	"github.com/arloliu/credfmt/errs"
)

// Raw carries caller supplied bytes unchanged.
//
// An empty Raw is a skeleton: SetLinearData then adopts the whole input, and
// CheckSkeleton accepts any length.
type Raw struct {
	data []byte
}

var _ Format = (*Raw)(nil)

// NewRaw returns a Raw format holding a copy of data.
func NewRaw(data []byte) *Raw {
	return &Raw{data: bytes.Clone(data)}
}

func (f *Raw) Type() Type                  { return TypeRaw }
func (f *Raw) Name() string                { return "Raw" }
func (f *Raw) DataLength() int             { return len(f.data) * 8 }
func (f *Raw) NeedUserConfiguration() bool { return true }

// RawData returns a copy of the bytes.
func (f *Raw) RawData() []byte { return bytes.Clone(f.data) }

func (f *Raw) SetRawData(data []byte) { f.data = bytes.Clone(data) }

func (f *Raw) LinearData() ([]byte, error) {
	return bytes.Clone(f.data), nil
}

// SetLinearData takes the first DataLength()/8 bytes of data, or all of it when the format
// is empty.
func (f *Raw) SetLinearData(data []byte) error {
	n := len(f.data)
	if n == 0 {
		n = len(data)
	}
	if len(data) < n {
		return fmt.Errorf("%w: %d bytes, need %d", errs.ErrDataTooShort, len(data), n)
	}
	f.data = bytes.Clone(data[:n])

	return nil
}

func (f *Raw) CheckSkeleton(other Format) bool {
	o, ok := other.(*Raw)
	if !ok {
		return false
	}

	return len(f.data) == 0 || len(f.data) == len(o.data)
}

func (f *Raw) Clone() Format {
	return &Raw{data: bytes.Clone(f.data)}
}
