// Package gencli implements profgen, the deterministic synthetic protein
// FASTA generator. It writes the same sequences the search tool falls back
// to when no FASTA input is readable, so benchmark inputs can be
// materialized and inspected.
package gencli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"profsearch-core/seq"

	"profsearch/internal/output"
	"profsearch/internal/version"
)

const lineWidth = 60

func newRootCmd(stdout io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "profgen",
		Short:         "Emit deterministic synthetic protein FASTA",
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			count, _ := cmd.Flags().GetInt("count")
			offset, _ := cmd.Flags().GetInt("offset")
			if count < 0 {
				return errors.New("--count must be >= 0")
			}
			if offset < 0 {
				return errors.New("--offset must be >= 0")
			}

			w := bufio.NewWriter(stdout)
			for i := offset; i < offset+count; i++ {
				if err := writeRecord(w, seq.SyntheticAt(i)); err != nil {
					return err
				}
			}
			if err := w.Flush(); err != nil && !output.IsBrokenPipe(err) {
				return err
			}
			return nil
		},
	}
	cmd.Flags().Int("count", 10, "number of sequences")
	cmd.Flags().Int("offset", 0, "index of the first sequence")
	return cmd
}

func writeRecord(w io.Writer, s seq.Sequence) error {
	if _, err := fmt.Fprintf(w, ">%s\n", s.Name); err != nil {
		return err
	}
	for off := 0; off < len(s.Residues); off += lineWidth {
		end := off + lineWidth
		if end > len(s.Residues) {
			end = len(s.Residues)
		}
		if _, err := fmt.Fprintf(w, "%s\n", s.Residues[off:end]); err != nil {
			return err
		}
	}
	return nil
}

// Execute runs profgen and maps outcomes to exit codes.
func Execute(ctx context.Context, argv []string, stdout, stderr io.Writer) int {
	root := newRootCmd(stdout)
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetArgs(argv)

	if err := root.ExecuteContext(ctx); err != nil {
		_, _ = fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	return 0
}
