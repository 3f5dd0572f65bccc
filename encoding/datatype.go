package encoding

import (
	"fmt"
	"strconv"

	"github.com/arloliu/credfmt/bitstream"
	"github.com/arloliu/credfmt/errs"
	"github.com/arloliu/credfmt/internal/options"
	"github.com/arloliu/credfmt/parity"
)

// DataType converts an unsigned integer into an encoded bit pattern of a declared width
// and back.
type DataType interface {
	Encoding

	// Convert encodes value into exactly lengthBits bits.
	// It fails with errs.ErrOutOfRange when value does not fit.
	Convert(value uint64, lengthBits int) (*bitstream.Stream, error)

	// Revert decodes the first lengthBits bits of data.
	// It fails with errs.ErrInvalidEncoding for bit patterns the type cannot produce and with
	// errs.ErrParityMismatch when a configured parity bit is wrong.
	Revert(data *bitstream.Stream, lengthBits int) (uint64, error)

	// Parity returns the parity configuration of the data type.
	Parity() ParitySettings
}

// ParitySettings configures per-block parity bits of a DataType.
type ParitySettings struct {
	// Left is inserted before every block.
	Left parity.Type
	// Right is inserted after every block.
	Right parity.Type
	// BlockSize is the block width in bits for BinaryDataType. BCD types use their digit width.
	BlockSize int
}

// Enabled reports whether any parity side is configured.
func (p ParitySettings) Enabled() bool {
	return p.Left != parity.None || p.Right != parity.None
}

// Overhead returns the number of parity bits added per block.
func (p ParitySettings) Overhead() int {
	n := 0
	if p.Left != parity.None {
		n++
	}
	if p.Right != parity.None {
		n++
	}

	return n
}

// DataTypeOption configures the parity settings of a DataType.
type DataTypeOption = options.Option[*ParitySettings]

// WithLeftParity inserts a parity bit of type t before every block.
func WithLeftParity(t parity.Type) DataTypeOption {
	return options.NoError(func(p *ParitySettings) {
		p.Left = t
	})
}

// WithRightParity inserts a parity bit of type t after every block.
func WithRightParity(t parity.Type) DataTypeOption {
	return options.NoError(func(p *ParitySettings) {
		p.Right = t
	})
}

// WithBlockSize sets the parity block width used by BinaryDataType.
func WithBlockSize(bits int) DataTypeOption {
	return options.New(func(p *ParitySettings) error {
		if bits <= 0 {
			return fmt.Errorf("%w: parity block size %d", errs.ErrInvalidConfiguration, bits)
		}
		p.BlockSize = bits

		return nil
	})
}

// NewDataType returns the DataType tagged by kind.
func NewDataType(kind Kind, opts ...DataTypeOption) (DataType, error) {
	switch kind {
	case KindBinary:
		return NewBinary(opts...)
	case KindBCDByte:
		return NewBCDByte(opts...)
	case KindBCDNibble:
		return NewBCDNibble(opts...)
	default:
		return nil, fmt.Errorf("%w: %s is not a data type", errs.ErrInvalidConfiguration, kind)
	}
}

// BinaryDataType packs value bits MSB-first. The zero value has no parity.
type BinaryDataType struct {
	settings ParitySettings
}

var _ DataType = BinaryDataType{}

// NewBinary returns a BinaryDataType. Parity requires WithBlockSize.
func NewBinary(opts ...DataTypeOption) (BinaryDataType, error) {
	var p ParitySettings
	if err := options.Apply(&p, opts...); err != nil {
		return BinaryDataType{}, err
	}
	if p.Enabled() && p.BlockSize <= 0 {
		return BinaryDataType{}, fmt.Errorf("%w: binary parity needs a block size", errs.ErrInvalidConfiguration)
	}

	return BinaryDataType{settings: p}, nil
}

func (BinaryDataType) Name() string { return KindBinary.String() }

func (BinaryDataType) Kind() Kind { return KindBinary }

// Parity returns the parity configuration.
func (d BinaryDataType) Parity() ParitySettings { return d.settings }

// Convert encodes value into lengthBits bits.
func (d BinaryDataType) Convert(value uint64, lengthBits int) (*bitstream.Stream, error) {
	if lengthBits < 0 {
		return nil, fmt.Errorf("%w: negative length %d", errs.ErrOutOfRange, lengthBits)
	}
	if !d.settings.Enabled() {
		return uintStream(value, lengthBits)
	}

	blocks, spare := d.layout(lengthBits)
	raw, err := uintStream(value, blocks*d.settings.BlockSize)
	if err != nil {
		return nil, err
	}
	withParity, err := AddParity(d.settings.Left, d.settings.Right, d.settings.BlockSize, raw)
	if err != nil {
		return nil, err
	}

	out := bitstream.NewZero(spare)
	out.ConcatStream(withParity)

	return out, nil
}

// Revert decodes the first lengthBits bits of data.
func (d BinaryDataType) Revert(data *bitstream.Stream, lengthBits int) (uint64, error) {
	s, err := head(data, lengthBits)
	if err != nil {
		return 0, err
	}
	if !d.settings.Enabled() {
		return streamUint(s)
	}

	blocks, spare := d.layout(lengthBits)
	body, err := s.Extract(spare, lengthBits-spare)
	if err != nil {
		return 0, err
	}
	raw, err := RemoveParity(d.settings.Left, d.settings.Right, d.settings.BlockSize, body)
	if err != nil {
		return 0, err
	}
	if raw.Len() != blocks*d.settings.BlockSize {
		return 0, fmt.Errorf("%w: unexpected payload of %d bits", errs.ErrInvalidEncoding, raw.Len())
	}

	return streamUint(raw)
}

func (d BinaryDataType) layout(lengthBits int) (blocks, spare int) {
	total := d.settings.BlockSize + d.settings.Overhead()
	blocks = lengthBits / total

	return blocks, lengthBits - blocks*total
}

// BCDByteDataType encodes every decimal digit in its own byte. The zero value has no parity.
type BCDByteDataType struct {
	settings ParitySettings
}

var _ DataType = BCDByteDataType{}

// NewBCDByte returns a BCDByteDataType.
func NewBCDByte(opts ...DataTypeOption) (BCDByteDataType, error) {
	var p ParitySettings
	if err := options.Apply(&p, opts...); err != nil {
		return BCDByteDataType{}, err
	}
	p.BlockSize = 8

	return BCDByteDataType{settings: p}, nil
}

func (BCDByteDataType) Name() string { return KindBCDByte.String() }

func (BCDByteDataType) Kind() Kind { return KindBCDByte }

// Parity returns the parity configuration.
func (d BCDByteDataType) Parity() ParitySettings { return d.settings }

// Convert encodes the decimal digits of value, one per byte, right aligned in lengthBits bits.
func (d BCDByteDataType) Convert(value uint64, lengthBits int) (*bitstream.Stream, error) {
	return bcdConvert(value, lengthBits, 8, d.settings)
}

// Revert decodes BCD bytes from the first lengthBits bits of data.
func (d BCDByteDataType) Revert(data *bitstream.Stream, lengthBits int) (uint64, error) {
	return bcdRevert(data, lengthBits, 8, d.settings)
}

// BCDNibbleDataType packs two decimal digits per byte. The zero value has no parity.
type BCDNibbleDataType struct {
	settings ParitySettings
}

var _ DataType = BCDNibbleDataType{}

// NewBCDNibble returns a BCDNibbleDataType.
func NewBCDNibble(opts ...DataTypeOption) (BCDNibbleDataType, error) {
	var p ParitySettings
	if err := options.Apply(&p, opts...); err != nil {
		return BCDNibbleDataType{}, err
	}
	p.BlockSize = 4

	return BCDNibbleDataType{settings: p}, nil
}

func (BCDNibbleDataType) Name() string { return KindBCDNibble.String() }

func (BCDNibbleDataType) Kind() Kind { return KindBCDNibble }

// Parity returns the parity configuration.
func (d BCDNibbleDataType) Parity() ParitySettings { return d.settings }

// Convert encodes the decimal digits of value, one per nibble, right aligned in lengthBits bits.
func (d BCDNibbleDataType) Convert(value uint64, lengthBits int) (*bitstream.Stream, error) {
	return bcdConvert(value, lengthBits, 4, d.settings)
}

// Revert decodes BCD nibbles from the first lengthBits bits of data.
func (d BCDNibbleDataType) Revert(data *bitstream.Stream, lengthBits int) (uint64, error) {
	return bcdRevert(data, lengthBits, 4, d.settings)
}

// bcdConvert lays out digits right aligned; leading spare bits that cannot hold a whole
// digit block stay zero.
func bcdConvert(value uint64, lengthBits, digitBits int, p ParitySettings) (*bitstream.Stream, error) {
	if lengthBits < 0 {
		return nil, fmt.Errorf("%w: negative length %d", errs.ErrOutOfRange, lengthBits)
	}

	total := digitBits + p.Overhead()
	digits := lengthBits / total
	spare := lengthBits - digits*total

	dec := strconv.FormatUint(value, 10)
	if value == 0 {
		dec = ""
	}
	if len(dec) > digits {
		return nil, fmt.Errorf("%w: value %d needs %d digits, %d bits hold %d", errs.ErrOutOfRange, value, len(dec), lengthBits, digits)
	}

	raw := bitstream.New()
	for i := 0; i < digits; i++ {
		var digit byte
		if j := i - (digits - len(dec)); j >= 0 {
			digit = dec[j] - '0'
		}
		if err := raw.AppendBits(digit, 8-digitBits, digitBits); err != nil {
			return nil, err
		}
	}

	if p.Enabled() {
		var err error
		raw, err = AddParity(p.Left, p.Right, digitBits, raw)
		if err != nil {
			return nil, err
		}
	}

	out := bitstream.NewZero(spare)
	out.ConcatStream(raw)

	return out, nil
}

func bcdRevert(data *bitstream.Stream, lengthBits, digitBits int, p ParitySettings) (uint64, error) {
	s, err := head(data, lengthBits)
	if err != nil {
		return 0, err
	}

	total := digitBits + p.Overhead()
	digits := lengthBits / total
	spare := lengthBits - digits*total

	raw, err := s.Extract(spare, lengthBits-spare)
	if err != nil {
		return 0, err
	}
	if p.Enabled() {
		raw, err = RemoveParity(p.Left, p.Right, digitBits, raw)
		if err != nil {
			return 0, err
		}
	}

	var value uint64
	for i := 0; i < digits; i++ {
		ds, err := raw.Extract(i*digitBits, digitBits)
		if err != nil {
			return 0, err
		}
		digit, err := ds.Uint64()
		if err != nil {
			return 0, err
		}
		if digit > 9 {
			return 0, fmt.Errorf("%w: BCD digit %d holds 0x%X", errs.ErrInvalidEncoding, i, digit)
		}
		if value > (^uint64(0)-digit)/10 {
			return 0, fmt.Errorf("%w: BCD value overflows uint64", errs.ErrOutOfRange)
		}
		value = value*10 + digit
	}

	return value, nil
}

// uintStream encodes value MSB-first in bits bits, zero padding widths beyond 64 bits.
func uintStream(value uint64, bits int) (*bitstream.Stream, error) {
	if bits <= 64 {
		return bitstream.FromUint64(value, bits)
	}

	out := bitstream.NewZero(bits - 64)
	low, err := bitstream.FromUint64(value, 64)
	if err != nil {
		return nil, err
	}
	out.ConcatStream(low)

	return out, nil
}

// streamUint decodes s MSB-first; bits beyond the low 64 must be zero.
func streamUint(s *bitstream.Stream) (uint64, error) {
	if s.Len() <= 64 {
		return s.Uint64()
	}

	extra := s.Len() - 64
	for i := 0; i < extra; i++ {
		if s.Bit(i) != 0 {
			return 0, fmt.Errorf("%w: %d bit value overflows uint64", errs.ErrOutOfRange, s.Len())
		}
	}
	low, err := s.Extract(extra, 64)
	if err != nil {
		return 0, err
	}

	return low.Uint64()
}

func head(data *bitstream.Stream, lengthBits int) (*bitstream.Stream, error) {
	if data == nil {
		return nil, fmt.Errorf("%w: nil stream", errs.ErrOutOfRange)
	}

	return data.Extract(0, lengthBits)
}
