package format

import (
	"fmt"

	"github.com/arloliu/credfmt/encoding"
	"github.com/arloliu/credfmt/parity"
)

var dataClockLayout = &layout{
	typ:    TypeDataClock,
	name:   "Data Clock",
	length: 36,
	slots: []slot{
		{name: "uid", pos: 0, bits: 32, scalar: scalarUID},
	},
	plan: dataClockParity(),
}

// dataClockParity builds the four right parity bits. Bit k covers nibble column k of the
// UID and every right parity bit before it.
func dataClockParity() parityPlan {
	plan := make(parityPlan, 0, 4)
	for k := 0; k < 4; k++ {
		positions := make([]int, 0, 8+k)
		for i := k; i < 32; i += 4 {
			positions = append(positions, i)
		}
		positions = append(positions, parity.Range(32, k)...)

		plan = append(plan, parityBit{
			check:     fmt.Sprintf("right parity %d", k+1),
			pos:       32 + k,
			typ:       parity.Even,
			positions: positions,
		})
	}

	return plan
}

// DataClock is the 36-bit format carrying an 8-digit BCD nibble UID and four column
// parity bits.
type DataClock struct {
	static
}

var _ StaticFormat = (*DataClock)(nil)

func NewDataClock(opts ...Option) (*DataClock, error) {
	cfg, err := newConfig(Config{DataType: encoding.BCDNibbleDataType{}}, opts)
	if err != nil {
		return nil, err
	}

	return &DataClock{static: newStatic(dataClockLayout, cfg)}, nil
}

func (f *DataClock) Clone() Format {
	return &DataClock{static: f.clone()}
}
