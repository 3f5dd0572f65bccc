// Package parity computes single parity bits over bit streams.
//
// Formats use different parity geometries: column parity across repeated blocks, interleaved
// position sets, or single contiguous ranges. The engine therefore accepts an arbitrary list of
// bit positions; CalculateRange is the contiguous convenience form.
package parity

import (
	"fmt"
	"strings"

	"github.com/arloliu/credfmt/bitstream"
)

// Type selects how the XOR of the selected bits becomes a parity bit.
type Type uint8

const (
	None Type = 0x0 // None always yields 0.
	Even Type = 0x1 // Even yields the XOR of the selected bits.
	Odd  Type = 0x2 // Odd yields the complement of the XOR.
)

func (t Type) String() string {
	switch t {
	case None:
		return "None"
	case Even:
		return "Even"
	case Odd:
		return "Odd"
	default:
		return "Unknown"
	}
}

// ParseType maps "none", "even" or "odd" (case-insensitive) to a Type.
func ParseType(s string) (Type, error) {
	switch strings.ToLower(s) {
	case "", "none":
		return None, nil
	case "even":
		return Even, nil
	case "odd":
		return Odd, nil
	default:
		return None, fmt.Errorf("invalid parity type %q", s)
	}
}

// Calculate returns the parity bit (0 or 1) over the bits of data at positions.
// Positions outside the stream are ignored.
func Calculate(data *bitstream.Stream, t Type, positions []int) byte {
	if t == None {
		return 0
	}

	var x byte
	for _, p := range positions {
		x ^= data.Bit(p)
	}

	return apply(x, t)
}

// CalculateRange returns the parity bit over bits [start, start+length) of data.
// Bits past the end of the stream are ignored.
func CalculateRange(data *bitstream.Stream, t Type, start, length int) byte {
	if t == None {
		return 0
	}

	var x byte
	for i := start; i < start+length; i++ {
		x ^= data.Bit(i)
	}

	return apply(x, t)
}

// Range returns the positions [start, start+length) as a slice.
func Range(start, length int) []int {
	positions := make([]int, length)
	for i := range positions {
		positions[i] = start + i
	}

	return positions
}

func apply(x byte, t Type) byte {
	if t == Odd {
		return x ^ 1
	}

	return x
}
