package format

import (
	"errors"
	"fmt"

	"github.com/arloliu/credfmt/bitstream"
	"github.com/arloliu/credfmt/encoding"
	"github.com/arloliu/credfmt/errs"
	"github.com/arloliu/credfmt/parity"
)

const (
	fascnChars    = 40
	fascnCharBits = 5

	fascnStartSentinel = 0xB
	fascnSeparator     = 0xD
	fascnEndSentinel   = 0xF
)

// FASC-N field indexes.
const (
	fascnAgency = iota
	fascnSystem
	fascnCredential
	fascnSeries
	fascnIssue
	fascnPerson
	fascnOrgCategory
	fascnOrgIdentifier
	fascnAssociation
	fascnFieldCount
)

// fascnSegment is either a run of digits of one field or a single sentinel character.
type fascnSegment struct {
	name   string
	field  int
	digits int
	marker byte
}

var fascnLayout = []fascnSegment{
	{name: "start sentinel", marker: fascnStartSentinel},
	{name: "agency code", field: fascnAgency, digits: 4},
	{name: "field separator", marker: fascnSeparator},
	{name: "system code", field: fascnSystem, digits: 4},
	{name: "field separator", marker: fascnSeparator},
	{name: "credential number", field: fascnCredential, digits: 6},
	{name: "field separator", marker: fascnSeparator},
	{name: "credential series", field: fascnSeries, digits: 1},
	{name: "field separator", marker: fascnSeparator},
	{name: "individual credential issue", field: fascnIssue, digits: 1},
	{name: "field separator", marker: fascnSeparator},
	{name: "person identifier", field: fascnPerson, digits: 10},
	{name: "organizational category", field: fascnOrgCategory, digits: 1},
	{name: "organizational identifier", field: fascnOrgIdentifier, digits: 4},
	{name: "person/organization association", field: fascnAssociation, digits: 1},
	{name: "end sentinel", marker: fascnEndSentinel},
}

// FASCN200Bit is the 200-bit Federal Agency Smart Credential Number. It is 40 five-bit
// characters: four data bits sent least significant bit first and an odd parity bit. The
// last character is a longitudinal redundancy check over the other 39.
//
// UID is the credential number. A non-zero agency or system code filters skeleton matches.
// The character encoding is fixed, so WithDataType and WithRepresentation are ignored.
type FASCN200Bit struct {
	values   [fascnFieldCount]uint64
	dataType encoding.DataType
}

var _ StaticFormat = (*FASCN200Bit)(nil)

func NewFASCN200Bit(opts ...Option) (*FASCN200Bit, error) {
	cfg, err := newConfig(Config{}, opts)
	if err != nil {
		return nil, err
	}
	dt, err := encoding.NewBCDNibble(encoding.WithRightParity(parity.Odd))
	if err != nil {
		return nil, err
	}

	f := &FASCN200Bit{dataType: dt}
	f.values[fascnCredential] = cfg.UID
	f.values[fascnAgency] = cfg.FacilityCode

	return f, nil
}

func (f *FASCN200Bit) Type() Type                  { return TypeFASCN200Bit }
func (f *FASCN200Bit) Name() string                { return "FASC-N 200 bit" }
func (f *FASCN200Bit) DataLength() int             { return fascnChars * fascnCharBits }
func (f *FASCN200Bit) NeedUserConfiguration() bool { return false }

// DataType describes the characters: BCD nibbles with an odd right parity bit. It is
// informational. The codec writes the nibbles least significant bit first itself.
func (f *FASCN200Bit) DataType() encoding.DataType { return f.dataType }

func (f *FASCN200Bit) DataRepresentation() encoding.DataRepresentation {
	return encoding.NoRepresentation{}
}

func (f *FASCN200Bit) UID() uint64       { return f.values[fascnCredential] }
func (f *FASCN200Bit) SetUID(uid uint64) { f.values[fascnCredential] = uid }

func (f *FASCN200Bit) AgencyCode() uint64     { return f.values[fascnAgency] }
func (f *FASCN200Bit) SetAgencyCode(v uint64) { f.values[fascnAgency] = v }

func (f *FASCN200Bit) SystemCode() uint64     { return f.values[fascnSystem] }
func (f *FASCN200Bit) SetSystemCode(v uint64) { f.values[fascnSystem] = v }

func (f *FASCN200Bit) CredentialSeries() uint64     { return f.values[fascnSeries] }
func (f *FASCN200Bit) SetCredentialSeries(v uint64) { f.values[fascnSeries] = v }

func (f *FASCN200Bit) IndividualCredentialIssue() uint64     { return f.values[fascnIssue] }
func (f *FASCN200Bit) SetIndividualCredentialIssue(v uint64) { f.values[fascnIssue] = v }

func (f *FASCN200Bit) PersonIdentifier() uint64     { return f.values[fascnPerson] }
func (f *FASCN200Bit) SetPersonIdentifier(v uint64) { f.values[fascnPerson] = v }

func (f *FASCN200Bit) OrganizationalCategory() uint64     { return f.values[fascnOrgCategory] }
func (f *FASCN200Bit) SetOrganizationalCategory(v uint64) { f.values[fascnOrgCategory] = v }

func (f *FASCN200Bit) OrganizationalIdentifier() uint64     { return f.values[fascnOrgIdentifier] }
func (f *FASCN200Bit) SetOrganizationalIdentifier(v uint64) { f.values[fascnOrgIdentifier] = v }

func (f *FASCN200Bit) PersonAssociation() uint64     { return f.values[fascnAssociation] }
func (f *FASCN200Bit) SetPersonAssociation(v uint64) { f.values[fascnAssociation] = v }

// FacilityCode is the agency code.
func (f *FASCN200Bit) FacilityCode() uint64        { return f.AgencyCode() }
func (f *FASCN200Bit) SetFacilityCode(code uint64) { f.SetAgencyCode(code) }

func (f *FASCN200Bit) LinearData() ([]byte, error) {
	chars := make([]byte, 0, fascnChars)
	for _, seg := range fascnLayout {
		if seg.digits == 0 {
			chars = append(chars, seg.marker)
			continue
		}
		digits, err := decimalDigits(f.values[seg.field], seg.digits)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", seg.name, err)
		}
		chars = append(chars, digits...)
	}

	var lrc byte
	for _, c := range chars {
		lrc ^= c
	}
	chars = append(chars, lrc)

	data := bitstream.New()
	for _, c := range chars {
		s, err := fascnChar(c)
		if err != nil {
			return nil, err
		}
		data.ConcatStream(s)
	}

	return data.Bytes(), nil
}

func (f *FASCN200Bit) SetLinearData(raw []byte) error {
	data, err := load(raw, f.DataLength())
	if err != nil {
		return err
	}

	chars := make([]byte, fascnChars)
	for i := range chars {
		if chars[i], err = readFascnChar(data, i); err != nil {
			return err
		}
	}

	var lrc byte
	for _, c := range chars[:fascnChars-1] {
		lrc ^= c
	}
	if lrc != chars[fascnChars-1] {
		return errs.NewParityError("longitudinal redundancy check")
	}

	var values [fascnFieldCount]uint64
	i := 0
	for _, seg := range fascnLayout {
		if seg.digits == 0 {
			if chars[i] != seg.marker {
				return fmt.Errorf("%w: %s at character %d is 0x%X", errs.ErrFormatMismatch, seg.name, i, chars[i])
			}
			i++
			continue
		}
		var v uint64
		for _, d := range chars[i : i+seg.digits] {
			if d > 9 {
				return fmt.Errorf("%w: %s digit 0x%X", errs.ErrInvalidEncoding, seg.name, d)
			}
			v = v*10 + uint64(d)
		}
		values[seg.field] = v
		i += seg.digits
	}
	f.values = values

	return nil
}

func (f *FASCN200Bit) CheckSkeleton(other Format) bool {
	o, ok := other.(*FASCN200Bit)
	if !ok {
		return false
	}
	for _, idx := range []int{fascnAgency, fascnSystem} {
		if v := f.values[idx]; v != 0 && v != o.values[idx] {
			return false
		}
	}

	return true
}

func (f *FASCN200Bit) Clone() Format {
	c := *f
	return &c
}

// fascnChar encodes a 4-bit character value LSB first with an odd parity bit.
func fascnChar(c byte) (*bitstream.Stream, error) {
	s, err := bitstream.FromUint64(uint64(encoding.InvertBitSex(c, 4)), 4)
	if err != nil {
		return nil, err
	}

	return encoding.AddParity(parity.None, parity.Odd, 4, s)
}

func readFascnChar(data *bitstream.Stream, i int) (byte, error) {
	s, err := data.Extract(i*fascnCharBits, fascnCharBits)
	if err != nil {
		return 0, err
	}
	nibble, err := encoding.RemoveParity(parity.None, parity.Odd, 4, s)
	if errors.Is(err, errs.ErrParityMismatch) {
		return 0, errs.NewParityErrorf("character %d parity", i+1)
	}
	if err != nil {
		return 0, err
	}
	v, err := nibble.Uint64()
	if err != nil {
		return 0, err
	}

	return encoding.InvertBitSex(byte(v), 4), nil
}

// decimalDigits returns the n decimal digits of v, most significant first.
func decimalDigits(v uint64, n int) ([]byte, error) {
	digits := make([]byte, n)
	for i := n - 1; i >= 0; i-- {
		digits[i] = byte(v % 10)
		v /= 10
	}
	if v != 0 {
		return nil, fmt.Errorf("%w: value has more than %d digits", errs.ErrOutOfRange, n)
	}

	return digits, nil
}
