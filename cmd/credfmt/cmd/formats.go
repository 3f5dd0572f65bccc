package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/arloliu/credfmt/format"
)

func newFormatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List the supported credential formats",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "TAG\tTYPE\tNAME\tBITS")
			for _, t := range format.Types() {
				f, err := format.New(t)
				if err != nil {
					return err
				}
				bits := fmt.Sprint(f.DataLength())
				if f.NeedUserConfiguration() {
					bits = "user"
				}
				fmt.Fprintf(w, "0x%02X\t%s\t%s\t%s\n", uint8(t), t, f.Name(), bits)
			}

			return w.Flush()
		},
	}
}
