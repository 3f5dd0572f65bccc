package cmd

import (
	"github.com/spf13/cobra"

	"github.com/arloliu/credfmt"
	"github.com/arloliu/credfmt/format"
	"github.com/arloliu/credfmt/internal/profile"
)

func newIdentifyCmd() *cobra.Command {
	var profilePath string

	identifyCmd := &cobra.Command{
		Use:   "identify --profile <file> <hex>",
		Short: "Identify a raw read against the skeletons of a profile",
		Long: `Identify a raw read against the skeletons of a YAML profile. Skeletons are
tried in profile order and the first match is printed.

Example:
  credfmt identify --profile site.yaml A1 81 F4 40`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readArgs(args)
			if err != nil {
				return err
			}
			skeletons, err := loadSkeletons(cmd, profilePath)
			if err != nil {
				return err
			}

			f, err := credfmt.Identify(data, skeletons...)
			if err != nil {
				return err
			}
			describe(cmd.OutOrStdout(), f)

			return nil
		},
	}

	identifyCmd.Flags().StringVarP(&profilePath, "profile", "p", "", "YAML skeleton profile")
	_ = identifyCmd.MarkFlagRequired("profile")

	return identifyCmd
}

func loadSkeletons(cmd *cobra.Command, path string) ([]format.Format, error) {
	p, err := profile.Load(path)
	if err != nil {
		return nil, err
	}
	skeletons, err := p.Formats()
	if err != nil {
		return nil, err
	}
	loggerFrom(cmd).Debug("loaded profile", "path", path, "name", p.Name, "skeletons", len(skeletons))

	return skeletons, nil
}
