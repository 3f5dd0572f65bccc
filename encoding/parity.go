package encoding

import (
	"fmt"
	"math/bits"

	"github.com/arloliu/credfmt/bitstream"
	"github.com/arloliu/credfmt/errs"
	"github.com/arloliu/credfmt/parity"
)

// AddParity splits buf into blocks of blockLen bits and inserts one parity bit before
// (left) and/or after (right) every block. A side set to parity.None adds no bit.
//
// buf.Len() must be a multiple of blockLen.
func AddParity(left, right parity.Type, blockLen int, buf *bitstream.Stream) (*bitstream.Stream, error) {
	if blockLen <= 0 {
		return nil, fmt.Errorf("%w: parity block size %d", errs.ErrInvalidConfiguration, blockLen)
	}
	if buf.Len()%blockLen != 0 {
		return nil, fmt.Errorf("%w: %d bits is not a multiple of block size %d", errs.ErrOutOfRange, buf.Len(), blockLen)
	}

	out := bitstream.New()
	for start := 0; start < buf.Len(); start += blockLen {
		block, err := buf.Extract(start, blockLen)
		if err != nil {
			return nil, err
		}
		if left != parity.None {
			_ = out.AppendBits(parity.CalculateRange(block, left, 0, blockLen), 7, 1)
		}
		out.ConcatStream(block)
		if right != parity.None {
			_ = out.AppendBits(parity.CalculateRange(block, right, 0, blockLen), 7, 1)
		}
	}

	return out, nil
}

// RemoveParity is the inverse of AddParity. It fails with a *errs.ParityError naming the
// block and side when a stripped bit does not match its recomputed value.
func RemoveParity(left, right parity.Type, blockLen int, buf *bitstream.Stream) (*bitstream.Stream, error) {
	if blockLen <= 0 {
		return nil, fmt.Errorf("%w: parity block size %d", errs.ErrInvalidConfiguration, blockLen)
	}

	stride := blockLen
	if left != parity.None {
		stride++
	}
	if right != parity.None {
		stride++
	}
	if buf.Len()%stride != 0 {
		return nil, fmt.Errorf("%w: %d bits is not a multiple of parity block size %d", errs.ErrOutOfRange, buf.Len(), stride)
	}

	out := bitstream.New()
	for i, pos := 0, 0; pos < buf.Len(); i, pos = i+1, pos+stride {
		offset := pos
		var leftBit byte
		if left != parity.None {
			leftBit = buf.Bit(offset)
			offset++
		}
		block, err := buf.Extract(offset, blockLen)
		if err != nil {
			return nil, err
		}
		offset += blockLen

		if left != parity.None && parity.CalculateRange(block, left, 0, blockLen) != leftBit {
			return nil, errs.NewParityErrorf("block %d left parity", i)
		}
		if right != parity.None && parity.CalculateRange(block, right, 0, blockLen) != buf.Bit(offset) {
			return nil, errs.NewParityErrorf("block %d right parity", i)
		}
		out.ConcatStream(block)
	}

	return out, nil
}

// InvertBitSex reverses the order of the low length bits of b (LSB <-> MSB).
// Bits above length are dropped. Some physical encodings transmit the least significant
// bit first.
func InvertBitSex(b byte, length int) byte {
	if length <= 0 {
		return 0
	}
	if length > 8 {
		length = 8
	}

	return bits.Reverse8(b) >> uint(8-length)
}
