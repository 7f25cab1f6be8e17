// Package pipeline fans alignments out across a worker pool and ranks the
// results. Each alignment is a pure computation over a shared read-only
// model, so the per-sequence loop parallelizes without synchronization;
// results land in per-input slots and are ranked afterwards, which keeps the
// ordering bit-identical to the sequential search core.
package pipeline

import (
	"context"
	"fmt"
	"math"
	"time"

	"golang.org/x/sync/errgroup"

	"profsearch-core/hmm"
	"profsearch-core/search"
	"profsearch-core/seq"

	"profsearch/internal/telemetry"
)

// Scorer is the minimal capability the pipeline needs from an aligner. Fakes
// can satisfy it in tests.
type Scorer interface {
	Align(residues []byte) hmm.Alignment
}

// Config controls the parallel search.
type Config struct {
	Threads int // worker goroutines; values below 1 mean 1
}

// Run scores every sequence against m concurrently and returns one result
// per input, ranked by descending score with ties in presentation order. The
// whole batch fails on a structurally malformed model.
func Run(ctx context.Context, cfg Config, m *hmm.Model, seqs []seq.Sequence) ([]search.Result, error) {
	if err := m.ValidateShape(); err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}
	return RunScorer(ctx, cfg, hmm.NewAligner(m, hmm.Config{}), seqs)
}

// RunScorer is Run for a pre-built aligner (or a fake).
func RunScorer(ctx context.Context, cfg Config, sc Scorer, seqs []seq.Sequence) ([]search.Result, error) {
	threads := cfg.Threads
	if threads < 1 {
		threads = 1
	}

	results := make([]search.Result, len(seqs))
	jobs := make(chan int)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(jobs)
		for i := range seqs {
			select {
			case jobs <- i:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})
	for w := 0; w < threads; w++ {
		g.Go(func() error {
			for i := range jobs {
				select {
				case <-ctx.Done():
					return ctx.Err()
				default:
				}
				s := seqs[i]
				start := time.Now()
				al := sc.Align(s.Residues)
				telemetry.AlignDuration.Observe(time.Since(start).Seconds())
				telemetry.SequencesSearched.Inc()
				telemetry.ResiduesProcessed.Add(float64(s.Len()))

				results[i] = search.Result{
					Name:   s.Name,
					Score:  al.Score,
					EValue: math.Exp(-al.Score),
					Start:  0,
					End:    s.Len(),
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	search.Rank(results)
	return results, nil
}
