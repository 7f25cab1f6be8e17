package hmm

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"profsearch-core/alphabet"
	"profsearch-core/seq"
)

func TestEmptySequenceScoresStartState(t *testing.T) {
	for _, length := range []int{1, 2, 10, 50} {
		m, err := New(length)
		require.NoError(t, err)

		al := NewAligner(m, Config{Traceback: true}).Align(nil)
		assert.Equal(t, 0.0, al.Score, "length %d", length)
		assert.Empty(t, al.Path, "length %d", length)
		assert.Equal(t, 0.0, m.Score(nil), "length %d", length)
	}
}

func TestAlignDeterministic(t *testing.T) {
	m, err := New(20)
	require.NoError(t, err)

	s := seq.SyntheticAt(7).Residues
	first := m.Score(s)
	for i := 0; i < 3; i++ {
		assert.Equal(t, math.Float64bits(first), math.Float64bits(m.Score(s)))
	}
}

func TestMemoryStrategiesAgree(t *testing.T) {
	lengths := []int{1, 2, 3, 10, 50}
	inputs := [][]byte{
		nil,
		[]byte("A"),
		[]byte("ACDEFGHIKL"),
		[]byte("acdefghikl"),              // lower case folds
		[]byte("XXXZ*"), // out-of-alphabet fallback
		[]byte(alphabet.Residues + alphabet.Residues), // every alphabet index
		seq.SyntheticAt(0).Residues,                   // 50 residues
	}
	for _, length := range lengths {
		m, err := New(length)
		require.NoError(t, err)

		full := NewAligner(m, Config{Traceback: true})
		rolling := NewAligner(m, Config{})
		for k, in := range inputs {
			a, b := full.Align(in).Score, rolling.Align(in).Score
			if math.IsInf(a, -1) {
				assert.True(t, math.IsInf(b, -1), "length %d input %d", length, k)
				continue
			}
			assert.Equal(t, math.Float64bits(a), math.Float64bits(b),
				"length %d input %d: full %v rolling %v", length, k, a, b)
		}
	}
}

// A length-1 model has no enterable match column past row 0, so any
// non-empty sequence has no viable path ending in a match state.
func TestNoViablePathIsNegInfNotError(t *testing.T) {
	m, err := New(1)
	require.NoError(t, err)

	al := NewAligner(m, Config{Traceback: true}).Align([]byte("ACD"))
	assert.True(t, math.IsInf(al.Score, -1))
	assert.Nil(t, al.Path)
	assert.True(t, math.IsInf(m.Score([]byte("ACD")), -1))
}

func TestDegenerateEmissionDegradesToNegInf(t *testing.T) {
	tr, em := uniformParams(3, 0.5, 0.05)
	for i := range em.Match {
		for j := 0; j < alphabet.Size; j++ {
			em.Match[i][j] = 0 // log of zero must become -Inf, not a panic
		}
	}
	m, err := NewFromParams(3, tr, em)
	require.NoError(t, err)

	score := m.Score([]byte("ACD"))
	assert.True(t, math.IsInf(score, -1))
}

func TestLeadingDeleteChainReachesDeepColumns(t *testing.T) {
	m, err := New(4)
	require.NoError(t, err)

	// One residue can still end in a match state deep in the model by
	// deleting the leading columns on row 0.
	al := NewAligner(m, Config{Traceback: true}).Align([]byte("A"))
	require.False(t, math.IsInf(al.Score, -1))
	require.NotEmpty(t, al.Path)
	assert.Equal(t, Match, al.Path[len(al.Path)-1].State)
}

// Engineered exact tie: with every transition 0.5 and flat 0.05 emissions,
// the match cell at row 3, column 2 sees bit-identical Match and Insert
// predecessor scores. The fixed precedence must resolve it toward the Match
// predecessor, which is the path passing through Insert(1,0), Match(2,1).
func TestTieBreakPrefersMatchPredecessor(t *testing.T) {
	tr, em := uniformParams(3, 0.5, 0.05)
	for j := 0; j < alphabet.Size; j++ {
		em.Match[2][j] = 0.06 // steer the final argmax onto column 2
	}
	m, err := NewFromParams(3, tr, em)
	require.NoError(t, err)

	al := NewAligner(m, Config{Traceback: true}).Align([]byte("AAA"))
	require.False(t, math.IsInf(al.Score, -1))
	require.Len(t, al.Path, 3)

	want := []Step{
		{State: Insert, Row: 1, Col: 0},
		{State: Match, Row: 2, Col: 1},
		{State: Match, Row: 3, Col: 2},
	}
	assert.Equal(t, want, al.Path)

	// Identical tie-break holds across repeated runs and both strategies
	// agree on the score.
	again := NewAligner(m, Config{Traceback: true}).Align([]byte("AAA"))
	assert.Equal(t, al.Path, again.Path)
	assert.Equal(t, math.Float64bits(al.Score), math.Float64bits(m.Score([]byte("AAA"))))
}

func TestFixedModelTenResidues(t *testing.T) {
	m, err := New(10)
	require.NoError(t, err)

	s := []byte("ACDEFGHIKL")
	score := m.Score(s)
	require.False(t, math.IsInf(score, -1))
	assert.Less(t, score, 0.0)
	assert.Greater(t, score, -100.0)

	// Reproducible to the bit.
	assert.Equal(t, math.Float64bits(score), math.Float64bits(m.Score(s)))
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "M", Match.String())
	assert.Equal(t, "I", Insert.String())
	assert.Equal(t, "D", Delete.String())
	assert.Equal(t, "?", State(9).String())
}
