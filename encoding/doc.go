// Package encoding provides the two value-encoding layers used by credential formats.
//
// A DataType turns an unsigned integer of a declared bit width into a bit pattern and back:
//   - BinaryDataType: identity, value bits packed MSB-first
//   - BCDByteDataType: one decimal digit per byte (0x00-0x09)
//   - BCDNibbleDataType: one decimal digit per nibble
//
// A DataRepresentation then applies a buffer-wide transform that does not depend on the
// value's meaning:
//   - BigEndianRepresentation: pass-through
//   - LittleEndianRepresentation: byte swap
//   - NoRepresentation: pass-through
//
// Any DataType may be paired with any DataRepresentation. Both implement Encoding, which
// exposes a display name and a Kind tag.
//
// # Parity Blocks
//
// DataTypes may carry left and/or right parity. When configured, the encoded value is
// split into blocks (one digit for BCD types, BlockSize bits for Binary) and a parity
// bit is inserted before and/or after every block:
//
//	dt, _ := encoding.NewBCDNibble(encoding.WithRightParity(parity.Odd))
//	s, _ := dt.Convert(42, 10) // 0100 0 0010 0
//
// AddParity and RemoveParity expose the same block transform directly.
//
// # Thread Safety
//
// DataTypes and DataRepresentations are immutable values and are safe for concurrent use.
package encoding
