package encoding

import (
	"fmt"

	"github.com/arloliu/credfmt/bitstream"
	"github.com/arloliu/credfmt/errs"
)

// DataRepresentation applies a buffer-wide transform after a DataType has encoded a value.
//
// Numeric and binary entry points are separate so a representation may treat encoded
// numbers differently from opaque byte strings; the current variants treat them alike.
type DataRepresentation interface {
	Encoding

	ConvertNumeric(data *bitstream.Stream) (*bitstream.Stream, error)
	RevertNumeric(data *bitstream.Stream) (*bitstream.Stream, error)
	ConvertBinary(data *bitstream.Stream) (*bitstream.Stream, error)
	RevertBinary(data *bitstream.Stream) (*bitstream.Stream, error)

	// ConvertLength returns the number of bits a buffer of bits bits occupies once converted.
	ConvertLength(bits int) int
}

// NewDataRepresentation returns the DataRepresentation tagged by kind.
func NewDataRepresentation(kind Kind) (DataRepresentation, error) {
	switch kind {
	case KindBigEndian:
		return BigEndianRepresentation{}, nil
	case KindLittleEndian:
		return LittleEndianRepresentation{}, nil
	case KindNoEncoding:
		return NoRepresentation{}, nil
	default:
		return nil, fmt.Errorf("%w: %s is not a data representation", errs.ErrInvalidConfiguration, kind)
	}
}

// BigEndianRepresentation keeps the most significant byte first, which is how DataTypes
// already produce their output.
type BigEndianRepresentation struct{}

var _ DataRepresentation = BigEndianRepresentation{}

func (BigEndianRepresentation) Name() string { return KindBigEndian.String() }

func (BigEndianRepresentation) Kind() Kind { return KindBigEndian }

func (BigEndianRepresentation) ConvertNumeric(data *bitstream.Stream) (*bitstream.Stream, error) {
	return passThrough(data)
}

func (BigEndianRepresentation) RevertNumeric(data *bitstream.Stream) (*bitstream.Stream, error) {
	return passThrough(data)
}

func (BigEndianRepresentation) ConvertBinary(data *bitstream.Stream) (*bitstream.Stream, error) {
	return passThrough(data)
}

func (BigEndianRepresentation) RevertBinary(data *bitstream.Stream) (*bitstream.Stream, error) {
	return passThrough(data)
}

func (BigEndianRepresentation) ConvertLength(bits int) int { return bits }

// NoRepresentation leaves buffers untouched.
type NoRepresentation struct{}

var _ DataRepresentation = NoRepresentation{}

func (NoRepresentation) Name() string { return KindNoEncoding.String() }

func (NoRepresentation) Kind() Kind { return KindNoEncoding }

func (NoRepresentation) ConvertNumeric(data *bitstream.Stream) (*bitstream.Stream, error) {
	return passThrough(data)
}

func (NoRepresentation) RevertNumeric(data *bitstream.Stream) (*bitstream.Stream, error) {
	return passThrough(data)
}

func (NoRepresentation) ConvertBinary(data *bitstream.Stream) (*bitstream.Stream, error) {
	return passThrough(data)
}

func (NoRepresentation) RevertBinary(data *bitstream.Stream) (*bitstream.Stream, error) {
	return passThrough(data)
}

func (NoRepresentation) ConvertLength(bits int) int { return bits }

// LittleEndianRepresentation reverses byte order. Bit order inside each byte is unchanged.
//
// A buffer whose length is not a whole number of bytes is left-padded with zero bits to a
// byte boundary, byte-reversed, and the pad bits are then trimmed from the byte that carries
// them (now the last one), so the transform maps n bits to n bits and is exactly invertible.
type LittleEndianRepresentation struct{}

var _ DataRepresentation = LittleEndianRepresentation{}

func (LittleEndianRepresentation) Name() string { return KindLittleEndian.String() }

func (LittleEndianRepresentation) Kind() Kind { return KindLittleEndian }

func (LittleEndianRepresentation) ConvertNumeric(data *bitstream.Stream) (*bitstream.Stream, error) {
	return swapBytes(data)
}

func (LittleEndianRepresentation) RevertNumeric(data *bitstream.Stream) (*bitstream.Stream, error) {
	return unswapBytes(data)
}

func (LittleEndianRepresentation) ConvertBinary(data *bitstream.Stream) (*bitstream.Stream, error) {
	return swapBytes(data)
}

func (LittleEndianRepresentation) RevertBinary(data *bitstream.Stream) (*bitstream.Stream, error) {
	return unswapBytes(data)
}

func (LittleEndianRepresentation) ConvertLength(bits int) int { return bits }

func passThrough(data *bitstream.Stream) (*bitstream.Stream, error) {
	if data == nil {
		return nil, fmt.Errorf("%w: nil stream", errs.ErrOutOfRange)
	}

	return data.Clone(), nil
}

func swapBytes(data *bitstream.Stream) (*bitstream.Stream, error) {
	if data == nil {
		return nil, fmt.Errorf("%w: nil stream", errs.ErrOutOfRange)
	}
	n := data.Len()
	if n == 0 {
		return bitstream.New(), nil
	}

	pad := (8 - n%8) % 8
	padded := bitstream.NewZero(pad)
	padded.ConcatStream(data)

	raw := padded.Bytes()
	reverse(raw)

	last := len(raw) - 1
	out := bitstream.New()
	out.Concat(raw[:last])
	if err := out.ConcatBits(raw[last:], pad, 8-pad); err != nil {
		return nil, err
	}

	return out, nil
}

func unswapBytes(data *bitstream.Stream) (*bitstream.Stream, error) {
	if data == nil {
		return nil, fmt.Errorf("%w: nil stream", errs.ErrOutOfRange)
	}
	n := data.Len()
	if n == 0 {
		return bitstream.New(), nil
	}

	pad := (8 - n%8) % 8
	full := (n + pad) - 8 // bits held by the whole bytes ahead of the trimmed one

	rebuilt := bitstream.New()
	body, err := data.Extract(0, full)
	if err != nil {
		return nil, err
	}
	rebuilt.ConcatStream(body)
	if err := rebuilt.ConcatBits([]byte{0x00}, 0, pad); err != nil {
		return nil, err
	}
	tail, err := data.Extract(full, n-full)
	if err != nil {
		return nil, err
	}
	rebuilt.ConcatStream(tail)

	raw := rebuilt.Bytes()
	reverse(raw)

	swapped, err := bitstream.FromBytes(raw, len(raw)*8)
	if err != nil {
		return nil, err
	}

	return swapped.Extract(pad, n)
}

func reverse(b []byte) {
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
}
