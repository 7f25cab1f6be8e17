package search

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"profsearch-core/hmm"
	"profsearch-core/seq"
)

func TestSearchRanksByDescendingScore(t *testing.T) {
	m, err := hmm.New(50)
	require.NoError(t, err)

	seqs := []seq.Sequence{
		{Name: "short", Residues: seq.SyntheticAt(0).Residues[:5]},
		{Name: "medium", Residues: seq.SyntheticAt(0).Residues},
		{Name: "long", Residues: seq.SyntheticAt(150).Residues}, // 200 residues
	}
	results, err := Search(m, seqs)
	require.NoError(t, err)
	require.Len(t, results, len(seqs))

	for i := 1; i < len(results); i++ {
		assert.GreaterOrEqual(t, results[i-1].Score, results[i].Score)
	}
	for _, r := range results {
		assert.False(t, math.IsInf(r.Score, -1), "sequence %s", r.Name)
	}
}

func TestSearchEValueMonotone(t *testing.T) {
	m, err := hmm.New(10)
	require.NoError(t, err)

	results, err := Search(m, seq.Synthetic(6))
	require.NoError(t, err)

	for i := 1; i < len(results); i++ {
		if results[i-1].Score > results[i].Score {
			assert.Less(t, results[i-1].EValue, results[i].EValue)
		}
	}
}

func TestSearchSpanCoversFullSequence(t *testing.T) {
	m, err := hmm.New(10)
	require.NoError(t, err)

	seqs := []seq.Sequence{
		{Name: "empty"},
		{Name: "ten", Residues: []byte("ACDEFGHIKL")},
	}
	results, err := Search(m, seqs)
	require.NoError(t, err)

	for _, r := range results {
		assert.Equal(t, 0, r.Start)
		switch r.Name {
		case "empty":
			assert.Equal(t, 0, r.End)
			assert.Equal(t, 0.0, r.Score)
		case "ten":
			assert.Equal(t, 10, r.End)
		}
	}
}

func TestSearchStableOnTies(t *testing.T) {
	m, err := hmm.New(10)
	require.NoError(t, err)

	// Identical residues give identical scores; input order must survive.
	same := seq.SyntheticAt(2).Residues
	seqs := []seq.Sequence{
		{Name: "first", Residues: same},
		{Name: "second", Residues: same},
		{Name: "third", Residues: same},
	}
	results, err := Search(m, seqs)
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, "first", results[0].Name)
	assert.Equal(t, "second", results[1].Name)
	assert.Equal(t, "third", results[2].Name)
}

func TestSearchFailsWholeBatchOnMalformedModel(t *testing.T) {
	results, err := Search(&hmm.Model{}, seq.Synthetic(2))
	require.ErrorIs(t, err, hmm.ErrInvalidModelLength)
	assert.Nil(t, results)
}

func TestSearchBatchOfVaryingLengths(t *testing.T) {
	m, err := hmm.New(50)
	require.NoError(t, err)

	mk := func(name string, n int) seq.Sequence {
		residues := make([]byte, n)
		for j := range residues {
			residues[j] = "ACDEFGHIKLMNPQRSTVWY"[(j*31)%20]
		}
		return seq.Sequence{Name: name, Residues: residues}
	}
	seqs := []seq.Sequence{mk("len5", 5), mk("len50", 50), mk("len500", 500)}

	results, err := Search(m, seqs)
	require.NoError(t, err)
	require.Len(t, results, 3)
	for _, r := range results {
		assert.False(t, math.IsInf(r.Score, -1), r.Name)
	}
}
