// Package cli defines the cobra front end for the profsearch binary.
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"profsearch/internal/version"
)

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:   "profsearch",
		Short: "Profile HMM protein sequence search",
		Long: `profsearch ranks protein sequences against a profile hidden Markov model
using Viterbi best-path scoring. Input is FASTA ('-' for stdin, gzip
auto-detected); without readable input a deterministic synthetic batch is
scored instead.`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.PersistentFlags().String("config", "", "config file (default ./settings.yaml)")
	root.PersistentFlags().Bool("quiet", false, "suppress log output")
	root.AddCommand(newSearchCmd(stdout, stderr))
	return root
}

// Execute runs the CLI and maps outcomes to exit codes: 0 success, 1 failure.
func Execute(ctx context.Context, argv []string, stdout, stderr io.Writer) int {
	root := newRootCmd(stdout, stderr)
	root.SetArgs(argv)

	if err := root.ExecuteContext(ctx); err != nil {
		_, _ = fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	return 0
}
