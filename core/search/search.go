// Package search ranks sequences against a profile HMM.
package search

import (
	"fmt"
	"math"
	"sort"

	"profsearch-core/hmm"
	"profsearch-core/seq"
)

// Result is one ranked hit. EValue is the placeholder exp(-score) transform,
// not a calibrated statistical E-value; Start/End always span the full
// sequence extent.
type Result struct {
	Name   string
	Score  float64
	EValue float64
	Start  int
	End    int
}

// Search scores every sequence against m and returns one result per input,
// ranked by descending score with ties kept in presentation order. The whole
// batch fails on a structurally malformed model; a -Inf score is an ordinary
// low-ranked result, never a failure.
func Search(m *hmm.Model, seqs []seq.Sequence) ([]Result, error) {
	if err := m.ValidateShape(); err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	results := make([]Result, 0, len(seqs))
	for _, s := range seqs {
		results = append(results, Score(m, s))
	}
	Rank(results)
	return results, nil
}

// Score aligns a single sequence and derives its significance fields.
func Score(m *hmm.Model, s seq.Sequence) Result {
	sc := m.Score(s.Residues)
	return Result{
		Name:   s.Name,
		Score:  sc,
		EValue: math.Exp(-sc),
		Start:  0,
		End:    s.Len(),
	}
}

// Rank orders results by descending score; equal scores keep their relative
// input order.
func Rank(results []Result) {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
}
