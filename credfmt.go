// Package credfmt encodes and decodes access control credential formats.
//
// A credential read by a card reader is a short bit string, for example the 26 bits of a
// Wiegand H10301 card. credfmt turns such bit strings into structured values (facility
// code, card number, company code) and back, checking every parity bit on the way in.
//
// # Core Features
//
//   - Static formats: Wiegand 26/34/37, HID Corporate 1000, Data/Clock, FASC-N 200 bit,
//     HID Honeywell, Getronik 40 bit, Barium Ferrite, ASCII and Raw
//   - Custom formats assembled from number, string, binary and parity fields
//   - Skeleton identification of raw reads whose format is unknown
//   - Journals that batch raw reads into one checksummed, optionally compressed blob
//
// # Basic Usage
//
// Encoding a Wiegand 26 credential:
//
//	import "github.com/arloliu/credfmt"
//
//	f, _ := credfmt.NewFormat("Wiegand26", format.WithFacilityCode(67), format.WithUID(1000))
//	data, _ := credfmt.Encode(f)
//	fmt.Println(credfmt.FormatHex(data)) // A1 81 F4 40
//
// Identifying a raw read:
//
//	site, _ := format.NewWiegand26(format.WithFacilityCode(67))
//	corp, _ := format.NewCorporate1000(format.WithCompanyCode(1234))
//	f, err := credfmt.Identify(data, corp, site)
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the format and journal
// packages. For custom layouts and fine-grained control use those packages directly.
package credfmt

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/arloliu/credfmt/errs"
	"github.com/arloliu/credfmt/format"
	"github.com/arloliu/credfmt/internal/hash"
	"github.com/arloliu/credfmt/journal"
)

// NewFormat creates a format by its type name, e.g. "Wiegand26" or "corporate1000".
//
// Names are matched case-insensitively against format.Type names. The options are the
// format package constructor options:
//   - format.WithUID(uid)
//   - format.WithFacilityCode(code) / format.WithCompanyCode(code)
//   - format.WithField(v) for Getronik
//   - format.WithLeftParity(t) / format.WithRightParity(t) for Wiegand formats
//   - format.WithLength(chars) / format.WithPadding(pad) for ASCII
//
// Returns errs.ErrUnknownFormat for an unknown name.
func NewFormat(name string, opts ...format.Option) (format.Format, error) {
	t, err := format.ParseType(name)
	if err != nil {
		return nil, err
	}

	return format.New(t, opts...)
}

// Encode returns the linear data of f.
//
// The result is exactly ceil(f.DataLength()/8) bytes with unused trailing bits zero.
func Encode(f format.Format) ([]byte, error) {
	if f == nil {
		return nil, fmt.Errorf("%w: nil format", errs.ErrInvalidConfiguration)
	}

	return f.LinearData()
}

// Decode decodes data as a format of type t configured with opts.
//
// Example:
//
//	f, err := credfmt.Decode(format.TypeWiegand26, []byte{0xA1, 0x81, 0xF4, 0x40})
//	if errors.Is(err, errs.ErrParityMismatch) {
//	    // damaged read
//	}
func Decode(t format.Type, data []byte, opts ...format.Option) (format.Format, error) {
	f, err := format.New(t, opts...)
	if err != nil {
		return nil, err
	}
	if err := f.SetLinearData(data); err != nil {
		return nil, err
	}

	return f, nil
}

// Identify decodes data with each skeleton in order and returns the first match.
//
// A skeleton is a format whose non-zero scalars (facility code, company code, Getronik
// field, ASCII or Raw length) act as filters; zero means any value. Skeletons are never
// modified. Returns errs.ErrNoMatchingFormat when nothing matches.
func Identify(data []byte, skeletons ...format.Format) (format.Format, error) {
	return format.Identify(data, skeletons...)
}

// NewJournalEncoder creates an encoder that batches reads into a journal blob.
//
// Available options:
//   - journal.WithCompression(compress.TypeNone|TypeZstd|TypeS2|TypeLZ4)
//   - journal.WithBigEndian()
func NewJournalEncoder(opts ...journal.EncoderOption) (*journal.Encoder, error) {
	return journal.NewEncoder(opts...)
}

// DecodeJournal decodes a journal blob into its records.
func DecodeJournal(blob []byte) ([]journal.Record, error) {
	return journal.Decode(blob)
}

// FieldID returns the 64-bit identifier of a custom format field name.
//
// Custom formats track field names by this identifier, so two names with the same ID are
// reported as a collision by the format.
func FieldID(name string) uint64 {
	return hash.ID(name)
}

// ParseHex parses hexadecimal credential data. Spaces, colons, dashes and a leading "0x"
// are ignored, so "A1 81 F4 40", "a1:81:f4:40" and "0xA181F440" are all accepted.
func ParseHex(s string) ([]byte, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(strings.TrimSpace(s), "0x"), "0X")
	s = strings.NewReplacer(" ", "", ":", "", "-", "", "\t", "").Replace(s)

	data, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrInvalidEncoding, err)
	}

	return data, nil
}

// FormatHex renders data as space separated upper case hex bytes.
func FormatHex(data []byte) string {
	var sb strings.Builder
	for i, b := range data {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%02X", b)
	}

	return sb.String()
}
