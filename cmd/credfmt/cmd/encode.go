package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arloliu/credfmt"
	"github.com/arloliu/credfmt/format"
)

func newEncodeCmd() *cobra.Command {
	var (
		formatName    string
		uid           uint64
		facilityCode  uint64
		companyCode   uint64
		getronikField uint64
		text          string
	)

	encodeCmd := &cobra.Command{
		Use:   "encode",
		Short: "Encode credential values into linear data",
		Long: `Encode credential values into linear data printed as hex bytes.

Example:
  credfmt encode --format Wiegand26 --facility-code 67 --uid 1000
  credfmt encode --format ASCII --text BADGE01`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFrom(cmd)

			opts := []format.Option{
				format.WithUID(uid),
				format.WithFacilityCode(facilityCode),
				format.WithCompanyCode(companyCode),
				format.WithField(getronikField),
			}
			if text != "" {
				opts = append(opts, format.WithLength(len(text)))
			}

			f, err := credfmt.NewFormat(formatName, opts...)
			if err != nil {
				return err
			}
			switch v := f.(type) {
			case *format.ASCII:
				v.SetValue(text)
			case *format.Raw:
				v.SetRawData([]byte(text))
			case *format.CustomFormat:
				return fmt.Errorf("%s needs a field layout, use a profile and the library API", f.Name())
			}

			data, err := credfmt.Encode(f)
			if err != nil {
				return err
			}
			logger.Debug("encoded credential", "format", f.Name(), "bits", f.DataLength())

			fmt.Fprintln(cmd.OutOrStdout(), credfmt.FormatHex(data))

			return nil
		},
	}

	encodeCmd.Flags().StringVarP(&formatName, "format", "f", "", "Format type name, see 'credfmt formats'")
	encodeCmd.Flags().Uint64Var(&uid, "uid", 0, "Card number")
	encodeCmd.Flags().Uint64Var(&facilityCode, "facility-code", 0, "Facility code")
	encodeCmd.Flags().Uint64Var(&companyCode, "company-code", 0, "Company code (Corporate 1000)")
	encodeCmd.Flags().Uint64Var(&getronikField, "field", 0, "Field value (Getronik)")
	encodeCmd.Flags().StringVar(&text, "text", "", "Text value (ASCII and Raw)")
	_ = encodeCmd.MarkFlagRequired("format")

	return encodeCmd
}

// readArgs joins hex arguments so "A1 81 F4 40" works quoted or unquoted.
func readArgs(args []string) ([]byte, error) {
	return credfmt.ParseHex(strings.Join(args, ""))
}
