package cli

import (
	"errors"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"profsearch/config"
	"profsearch/internal/app"
)

func newSearchCmd(stdout, stderr io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search",
		Short: "Rank sequences against a profile model",
		Long: `Score every input sequence with Viterbi best-path alignment and print a
table ranked by descending log-odds score. The e_value column is the
placeholder exp(-score) transform, not a calibrated E-value.`,
		Example: `  profsearch search --sequences proteins.fasta --model-length 80
  profsearch search --synthetic 1000 --output json --top 0
  cat proteins.fasta | profsearch search --sequences -`,
		RunE: func(cmd *cobra.Command, args []string) error {
			v := viper.New()
			config.SetDefaults(v)

			cfgFile, _ := cmd.Flags().GetString("config")
			if cfgFile != "" {
				v.SetConfigFile(cfgFile)
				if err := v.ReadInConfig(); err != nil {
					return err
				}
			} else {
				v.SetConfigName("settings")
				v.AddConfigPath(".")
				if err := v.ReadInConfig(); err != nil {
					var notFound viper.ConfigFileNotFoundError
					if !errors.As(err, &notFound) {
						return err
					}
				}
			}

			for key, flag := range map[string]string{
				"search.model-length":  "model-length",
				"search.max-sequences": "max-sequences",
				"search.threads":       "threads",
				"search.output":        "output",
				"search.top":           "top",
				"search.strict":        "strict",
			} {
				if err := v.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
					return err
				}
			}

			cfg, err := config.New(v)
			if err != nil {
				return err
			}

			seqFiles, _ := cmd.Flags().GetStringSlice("sequences")
			synthetic, _ := cmd.Flags().GetInt("synthetic")
			outPath, _ := cmd.Flags().GetString("out")
			noHeader, _ := cmd.Flags().GetBool("no-header")
			quiet, _ := cmd.Flags().GetBool("quiet")

			opts := app.Options{
				ModelLength:  cfg.Search.ModelLength,
				SeqFiles:     seqFiles,
				MaxSequences: cfg.Search.MaxSequences,
				Synthetic:    synthetic,
				Threads:      cfg.Search.Threads,
				Output:       cfg.Search.Output,
				OutPath:      outPath,
				Top:          cfg.Search.Top,
				Strict:       cfg.Search.Strict,
				Header:       !noHeader,
			}
			return app.Run(cmd.Context(), opts, stdout, newLogger(stderr, quiet))
		},
	}

	cmd.Flags().Int("model-length", 50, "profile model length (columns)")
	cmd.Flags().StringSlice("sequences", nil, "FASTA file(s), repeatable, '-' for stdin")
	cmd.Flags().Int("max-sequences", 1000, "max records read (0 = unlimited)")
	cmd.Flags().Int("synthetic", 0, "score N synthetic sequences instead of reading input")
	cmd.Flags().Int("threads", 0, "worker threads (0 = all CPUs)")
	cmd.Flags().String("output", "text", "stdout format: text | tsv | json")
	cmd.Flags().String("out", "", "also persist the full ranking as TSV")
	cmd.Flags().Int("top", 10, "ranked rows printed to stdout (0 = all)")
	cmd.Flags().Bool("strict", false, "reject residues outside the amino-acid alphabet")
	cmd.Flags().Bool("no-header", false, "suppress the header row")
	return cmd
}

func newLogger(w io.Writer, quiet bool) *slog.Logger {
	level := slog.LevelInfo
	if quiet {
		level = slog.LevelError
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
