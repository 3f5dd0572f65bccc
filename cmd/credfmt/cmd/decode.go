package cmd

import (
	"github.com/spf13/cobra"

	"github.com/arloliu/credfmt"
	"github.com/arloliu/credfmt/format"
)

func newDecodeCmd() *cobra.Command {
	var formatName string

	decodeCmd := &cobra.Command{
		Use:   "decode --format <type> <hex>",
		Short: "Decode linear data with a known format",
		Long: `Decode linear data with a known format and print its values.

Example:
  credfmt decode --format Wiegand26 A1 81 F4 40`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readArgs(args)
			if err != nil {
				return err
			}
			t, err := format.ParseType(formatName)
			if err != nil {
				return err
			}

			opts := []format.Option(nil)
			if t == format.TypeASCII {
				opts = append(opts, format.WithLength(0))
			}
			f, err := credfmt.Decode(t, data, opts...)
			if err != nil {
				return err
			}
			loggerFrom(cmd).Debug("decoded credential", "format", f.Name(), "bytes", len(data))

			describe(cmd.OutOrStdout(), f)

			return nil
		},
	}

	decodeCmd.Flags().StringVarP(&formatName, "format", "f", "", "Format type name, see 'credfmt formats'")
	_ = decodeCmd.MarkFlagRequired("format")

	return decodeCmd
}
