package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/arloliu/credfmt"
	"github.com/arloliu/credfmt/compress"
	"github.com/arloliu/credfmt/format"
	"github.com/arloliu/credfmt/journal"
)

func newJournalCmd() *cobra.Command {
	journalCmd := &cobra.Command{
		Use:   "journal",
		Short: "Pack and inspect journals of raw reads",
	}
	journalCmd.AddCommand(newJournalPackCmd(), newJournalDumpCmd())

	return journalCmd
}

func newJournalPackCmd() *cobra.Command {
	var (
		formatName  string
		compression string
		bigEndian   bool
		out         string
	)

	packCmd := &cobra.Command{
		Use:   "pack --format <type> --out <file> <hex>...",
		Short: "Pack raw reads of one format into a journal",
		Long: `Pack raw reads into a journal file. Every argument is one read; each read is
decoded with the given format first, so damaged reads are rejected.

Example:
  credfmt journal pack --format Wiegand26 --compression zstd --out reads.journal A181F440 A181F642`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFrom(cmd)

			t, err := format.ParseType(formatName)
			if err != nil {
				return err
			}
			ct, err := compress.ParseType(compression)
			if err != nil {
				return err
			}

			opts := []journal.EncoderOption{journal.WithCompression(ct)}
			if bigEndian {
				opts = append(opts, journal.WithBigEndian())
			}
			enc, err := credfmt.NewJournalEncoder(opts...)
			if err != nil {
				return err
			}

			for i, arg := range args {
				data, err := credfmt.ParseHex(arg)
				if err != nil {
					return fmt.Errorf("read %d: %w", i, err)
				}
				f, err := credfmt.Decode(t, data)
				if err != nil {
					return fmt.Errorf("read %d: %w", i, err)
				}
				if err := enc.AddFormat(f); err != nil {
					return fmt.Errorf("read %d: %w", i, err)
				}
			}

			blob, err := enc.Finish()
			if err != nil {
				return err
			}
			if err := os.WriteFile(out, blob, 0o644); err != nil {
				return fmt.Errorf("failed to write journal: %w", err)
			}
			logger.Info("journal written", "path", out, "records", len(args), "bytes", len(blob), "compression", ct)

			return nil
		},
	}

	packCmd.Flags().StringVarP(&formatName, "format", "f", "", "Format type name of every read")
	packCmd.Flags().StringVarP(&compression, "compression", "c", compress.TypeNone.String(), "Payload compression: none, zstd, s2 or lz4")
	packCmd.Flags().BoolVar(&bigEndian, "big-endian", false, "Write big-endian integers")
	packCmd.Flags().StringVarP(&out, "out", "o", "", "Output journal file")
	_ = packCmd.MarkFlagRequired("format")
	_ = packCmd.MarkFlagRequired("out")

	return packCmd
}

func newJournalDumpCmd() *cobra.Command {
	var (
		profilePath string
		decode      bool
	)

	dumpCmd := &cobra.Command{
		Use:   "dump <file>",
		Short: "Print the header and records of a journal",
		Long: `Print the header and records of a journal. With --decode every record is decoded
with its recorded format, or identified against the skeletons of --profile.

Example:
  credfmt journal dump reads.journal
  credfmt journal dump --decode --profile site.yaml reads.journal`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			blob, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read journal: %w", err)
			}
			h, records, err := journal.DecodeWithHeader(blob)
			if err != nil {
				return err
			}

			var skeletons []format.Format
			if profilePath != "" {
				decode = true
				if skeletons, err = loadSkeletons(cmd, profilePath); err != nil {
					return err
				}
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "version: %d\n", h.Version)
			fmt.Fprintf(w, "big endian: %t\n", h.Flags&journal.FlagBigEndian != 0)
			fmt.Fprintf(w, "compression: %s\n", h.Compression)
			fmt.Fprintf(w, "records: %d\n", h.Count)
			fmt.Fprintf(w, "payload: %d bytes\n", h.PayloadLength)
			fmt.Fprintf(w, "checksum: %016x\n", h.Checksum)

			for i, r := range records {
				fmt.Fprintf(w, "#%d %s %d bits: %s\n", i, r.Type, r.BitLength, credfmt.FormatHex(r.Data))
				if !decode {
					continue
				}
				f, err := r.Decode(skeletons...)
				if err != nil {
					fmt.Fprintf(w, "  error: %v\n", err)
					continue
				}
				fmt.Fprintf(w, "  %s", f.Name())
				if sf, ok := f.(format.StaticFormat); ok {
					fmt.Fprintf(w, " uid=%d", sf.UID())
				}
				if fc, ok := f.(format.FacilityCoder); ok {
					fmt.Fprintf(w, " facility=%d", fc.FacilityCode())
				}
				fmt.Fprintln(w)
			}

			return nil
		},
	}

	dumpCmd.Flags().StringVarP(&profilePath, "profile", "p", "", "YAML skeleton profile used to identify records")
	dumpCmd.Flags().BoolVarP(&decode, "decode", "d", false, "Decode every record")

	return dumpCmd
}
