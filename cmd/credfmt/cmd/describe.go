package cmd

import (
	"fmt"
	"io"

	"github.com/arloliu/credfmt"
	"github.com/arloliu/credfmt/field"
	"github.com/arloliu/credfmt/format"
)

type companyCoder interface {
	CompanyCode() uint64
}

// describe prints the decoded values of f, one "key: value" per line.
func describe(w io.Writer, f format.Format) {
	fmt.Fprintf(w, "format: %s\n", f.Type())
	fmt.Fprintf(w, "name: %s\n", f.Name())
	fmt.Fprintf(w, "bits: %d\n", f.DataLength())

	if fc, ok := f.(format.FacilityCoder); ok {
		fmt.Fprintf(w, "facility code: %d\n", fc.FacilityCode())
	}
	if cc, ok := f.(companyCoder); ok {
		fmt.Fprintf(w, "company code: %d\n", cc.CompanyCode())
	}
	if sf, ok := f.(format.StaticFormat); ok {
		fmt.Fprintf(w, "uid: %d\n", sf.UID())
	}

	switch v := f.(type) {
	case *format.Getronik40:
		fmt.Fprintf(w, "field: %d\n", v.Field())
	case *format.FASCN200Bit:
		fmt.Fprintf(w, "system code: %d\n", v.SystemCode())
		fmt.Fprintf(w, "credential series: %d\n", v.CredentialSeries())
		fmt.Fprintf(w, "individual credential issue: %d\n", v.IndividualCredentialIssue())
		fmt.Fprintf(w, "person identifier: %d\n", v.PersonIdentifier())
		fmt.Fprintf(w, "organizational category: %d\n", v.OrganizationalCategory())
		fmt.Fprintf(w, "organizational identifier: %d\n", v.OrganizationalIdentifier())
		fmt.Fprintf(w, "person association: %d\n", v.PersonAssociation())
	case *format.ASCII:
		fmt.Fprintf(w, "value: %q\n", v.Value())
	case *format.Raw:
		fmt.Fprintf(w, "data: %s\n", credfmt.FormatHex(v.RawData()))
	case *format.CustomFormat:
		for _, fd := range v.Fields() {
			fmt.Fprintf(w, "%s: %s\n", fd.Name(), fieldValue(fd))
		}
	}
}

func fieldValue(f field.DataField) string {
	switch v := f.(type) {
	case *field.NumberDataField:
		return fmt.Sprint(v.Value())
	case *field.StringDataField:
		return fmt.Sprintf("%q", v.Value())
	case *field.BinaryDataField:
		return credfmt.FormatHex(v.Value())
	case *field.ParityDataField:
		return fmt.Sprintf("%s parity", v.ParityType())
	default:
		return f.Kind().String()
	}
}
