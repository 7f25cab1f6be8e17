// Package app wires one search run: model construction, sequence input with
// the documented synthetic fallback, the parallel pipeline, and the writers.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"profsearch-core/alphabet"
	"profsearch-core/fasta"
	"profsearch-core/hmm"
	"profsearch-core/search"
	"profsearch-core/seq"

	"profsearch/internal/output"
	"profsearch/internal/pipeline"
	"profsearch/internal/runutil"
)

// Options collects everything a search run needs.
type Options struct {
	ModelLength  int
	SeqFiles     []string
	MaxSequences int // cap on records read; 0 = unlimited
	Synthetic    int // >0 skips input and scores N synthetic sequences
	Threads      int // 0 = all CPUs
	Output       string
	OutPath      string // optional: persist the full ranking as TSV
	Top          int    // rows printed to stdout; 0 = all
	Strict       bool
	Header       bool
}

// Run executes a search and writes the ranked table to stdout. A broken pipe
// on stdout is not an error.
func Run(ctx context.Context, opts Options, stdout io.Writer, logger *slog.Logger) error {
	write, err := output.ForFormat(opts.Output)
	if err != nil {
		return err
	}

	model, err := hmm.New(opts.ModelLength)
	if err != nil {
		return fmt.Errorf("build model: %w", err)
	}

	seqs, err := loadSequences(ctx, opts, logger)
	if err != nil {
		return err
	}
	if opts.Strict {
		if err := validateResidues(seqs); err != nil {
			return err
		}
	}

	logger.Info("searching",
		"model_length", opts.ModelLength,
		"sequences", len(seqs),
		"threads", runutil.EffectiveThreads(opts.Threads))

	start := time.Now()
	results, err := pipeline.Run(ctx, pipeline.Config{Threads: runutil.EffectiveThreads(opts.Threads)}, model, seqs)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	residues := 0
	for _, s := range seqs {
		residues += s.Len()
	}
	logger.Info("search complete",
		"sequences", len(results),
		"elapsed", elapsed,
		"residues", residues,
		"residues_per_sec", rate(residues, elapsed))

	shown := results
	if opts.Top > 0 && opts.Top < len(shown) {
		shown = shown[:opts.Top]
	}
	if err := write(stdout, shown, opts.Header); err != nil {
		if output.IsBrokenPipe(err) {
			return nil
		}
		return err
	}

	if opts.OutPath != "" {
		if err := persist(opts.OutPath, results, opts.Header); err != nil {
			return err
		}
		logger.Info("results written", "path", opts.OutPath, "rows", len(results))
	}
	return nil
}

// loadSequences reads FASTA input, falling back to the deterministic
// synthetic generator when no readable records exist. The fallback is logged,
// never silent.
func loadSequences(ctx context.Context, opts Options, logger *slog.Logger) ([]seq.Sequence, error) {
	if opts.Synthetic > 0 {
		logger.Info("generating synthetic sequences", "count", opts.Synthetic)
		return seq.Synthetic(opts.Synthetic), nil
	}

	var seqs []seq.Sequence
	for _, path := range opts.SeqFiles {
		remaining := 0
		if opts.MaxSequences > 0 {
			remaining = opts.MaxSequences - len(seqs)
			if remaining <= 0 {
				break
			}
		}
		recs, err := fasta.ReadAllCtx(ctx, path, remaining)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			logger.Warn("skipping unreadable sequence file", "path", path, "err", err)
			continue
		}
		for _, r := range recs {
			seqs = append(seqs, r.Sequence())
		}
	}

	if len(seqs) == 0 {
		n := opts.MaxSequences
		if n <= 0 {
			n = 1000
		}
		logger.Warn("no readable FASTA records, falling back to synthetic sequences", "count", n)
		return seq.Synthetic(n), nil
	}
	return seqs, nil
}

// validateResidues enforces strict-mode input: every residue must be in the
// amino-acid alphabet.
func validateResidues(seqs []seq.Sequence) error {
	for _, s := range seqs {
		for pos, r := range s.Residues {
			if _, err := alphabet.IndexStrict(r); err != nil {
				return fmt.Errorf("sequence %q position %d: %w", s.Name, pos, err)
			}
		}
	}
	return nil
}

// persist writes the complete ranking as TSV, regardless of the stdout
// format or --top trimming.
func persist(path string, results []search.Result, header bool) error {
	fh, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("persist results: %w", err)
	}
	if err := output.WriteTSV(fh, results, header); err != nil {
		_ = fh.Close()
		return fmt.Errorf("persist results: %w", err)
	}
	return fh.Close()
}

func rate(residues int, d time.Duration) float64 {
	if d <= 0 {
		return 0
	}
	return float64(residues) / d.Seconds()
}
