// Package cmd implements the credfmt command line tool.
package cmd

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

type loggerKey struct{}

// NewRootCmd builds the credfmt command tree.
func NewRootCmd() *cobra.Command {
	var verbose bool

	rootCmd := &cobra.Command{
		Use:   "credfmt",
		Short: "credfmt - access control credential format tool",
		Long: `credfmt encodes, decodes and identifies access control credential reads
(Wiegand, Corporate 1000, Data/Clock, FASC-N, ...) and packs raw reads into journals.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
				Level: level,
			}))

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			cmd.SetContext(context.WithValue(ctx, loggerKey{}, logger))

			return nil
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(
		newFormatsCmd(),
		newEncodeCmd(),
		newDecodeCmd(),
		newIdentifyCmd(),
		newJournalCmd(),
	)

	return rootCmd
}

// Execute runs the root command. It is called by main.main().
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// loggerFrom returns the logger installed by the root command.
func loggerFrom(cmd *cobra.Command) *slog.Logger {
	if ctx := cmd.Context(); ctx != nil {
		if logger, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
			return logger
		}
	}

	return slog.Default()
}
