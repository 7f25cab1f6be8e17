// Package hmm implements an immutable profile hidden Markov model and a
// Viterbi decoder over it.
package hmm

import (
	"errors"
	"fmt"

	"profsearch-core/alphabet"
)

var (
	// ErrInvalidModelLength is returned when a model is built with zero columns.
	ErrInvalidModelLength = errors.New("hmm: model length must be >= 1")

	// ErrMalformedModel wraps shape and parameter errors on hand-built models.
	ErrMalformedModel = errors.New("hmm: malformed model parameters")
)

// Placeholder transition statistics used by New. These are not trained
// per-family values; a production model supplies its own via NewFromParams.
const (
	defaultMatchToMatch   = 0.8
	defaultMatchToInsert  = 0.1
	defaultMatchToDelete  = 0.1
	defaultInsertToMatch  = 0.5
	defaultInsertToInsert = 0.5
	defaultDeleteToMatch  = 0.5
	defaultDeleteToDelete = 0.5

	uniformInsertEmission = 0.05
)

// Transitions holds the seven per-position transition probability arrays.
// Every array must have exactly one entry per model column, and every value
// must be in (0,1]: the aligner takes logarithms, so a zero probability is a
// representational error, not an "impossible transition".
type Transitions struct {
	MatchToMatch   []float64
	MatchToInsert  []float64
	MatchToDelete  []float64
	InsertToMatch  []float64
	InsertToInsert []float64
	DeleteToMatch  []float64
	DeleteToDelete []float64
}

// Emissions holds per-column emission distributions over the alphabet for the
// match and insert states.
type Emissions struct {
	Match  [][alphabet.Size]float64
	Insert [][alphabet.Size]float64
}

// Model is a profile HMM: length match/insert/delete column triples with
// their transition and emission parameters. A Model never mutates after
// construction and may be shared by reference across concurrent alignments.
type Model struct {
	length int
	tr     Transitions
	em     Emissions
}

// Length returns the number of model columns.
func (m *Model) Length() int { return m.length }

// New builds a model of the given length from fixed placeholder statistics:
// match emissions are the background frequencies linearly biased by column
// index, insert emissions are uniform. It exists so the engine is runnable
// without external training data and fails only for length 0.
func New(length int) (*Model, error) {
	if length < 1 {
		return nil, ErrInvalidModelLength
	}

	tr := Transitions{
		MatchToMatch:   fill(length, defaultMatchToMatch),
		MatchToInsert:  fill(length, defaultMatchToInsert),
		MatchToDelete:  fill(length, defaultMatchToDelete),
		InsertToMatch:  fill(length, defaultInsertToMatch),
		InsertToInsert: fill(length, defaultInsertToInsert),
		DeleteToMatch:  fill(length, defaultDeleteToMatch),
		DeleteToDelete: fill(length, defaultDeleteToDelete),
	}

	em := Emissions{
		Match:  make([][alphabet.Size]float64, length),
		Insert: make([][alphabet.Size]float64, length),
	}
	for i := 0; i < length; i++ {
		bias := 1.0 + 0.2*float64(i)/float64(length)
		for j := 0; j < alphabet.Size; j++ {
			em.Match[i][j] = alphabet.Background[j] * bias
			em.Insert[i][j] = uniformInsertEmission
		}
	}

	return &Model{length: length, tr: tr, em: em}, nil
}

// NewFromParams builds a model from externally trained parameters. Array
// shapes are always checked; probability positivity is not, so degenerate
// values degrade to -Inf path contributions during alignment. Callers that
// want hard rejection of non-positive parameters should call Validate.
func NewFromParams(length int, tr Transitions, em Emissions) (*Model, error) {
	if length < 1 {
		return nil, ErrInvalidModelLength
	}
	m := &Model{length: length, tr: tr, em: em}
	if err := m.ValidateShape(); err != nil {
		return nil, err
	}
	return m, nil
}

// ValidateShape verifies that every parameter array has exactly one row per
// model column. This is the structural check search pipelines gate whole
// batches on: a model that fails it cannot be scored at all, whereas
// non-positive probabilities merely degrade to -Inf results.
func (m *Model) ValidateShape() error {
	if m.length < 1 {
		return ErrInvalidModelLength
	}
	rows := map[string]int{
		"match-to-match":   len(m.tr.MatchToMatch),
		"match-to-insert":  len(m.tr.MatchToInsert),
		"match-to-delete":  len(m.tr.MatchToDelete),
		"insert-to-match":  len(m.tr.InsertToMatch),
		"insert-to-insert": len(m.tr.InsertToInsert),
		"delete-to-match":  len(m.tr.DeleteToMatch),
		"delete-to-delete": len(m.tr.DeleteToDelete),
		"match emissions":  len(m.em.Match),
		"insert emissions": len(m.em.Insert),
	}
	for name, n := range rows {
		if n != m.length {
			return fmt.Errorf("%w: %s has %d rows, want %d", ErrMalformedModel, name, n, m.length)
		}
	}
	return nil
}

// Validate checks array shapes and that every probability feeding a logarithm
// is positive. It is the opt-in strict check for callers that must reject
// degenerate parameters outright.
func (m *Model) Validate() error {
	if err := m.ValidateShape(); err != nil {
		return err
	}
	for name, arr := range map[string][]float64{
		"match-to-match":   m.tr.MatchToMatch,
		"match-to-insert":  m.tr.MatchToInsert,
		"match-to-delete":  m.tr.MatchToDelete,
		"insert-to-match":  m.tr.InsertToMatch,
		"insert-to-insert": m.tr.InsertToInsert,
		"delete-to-match":  m.tr.DeleteToMatch,
		"delete-to-delete": m.tr.DeleteToDelete,
	} {
		for i, p := range arr {
			if p <= 0 || p > 1 {
				return fmt.Errorf("%w: %s[%d] = %v outside (0,1]", ErrMalformedModel, name, i, p)
			}
		}
	}
	for i := range m.em.Match {
		for j := 0; j < alphabet.Size; j++ {
			if m.em.Match[i][j] <= 0 {
				return fmt.Errorf("%w: match emission [%d][%d] = %v not positive", ErrMalformedModel, i, j, m.em.Match[i][j])
			}
			if m.em.Insert[i][j] <= 0 {
				return fmt.Errorf("%w: insert emission [%d][%d] = %v not positive", ErrMalformedModel, i, j, m.em.Insert[i][j])
			}
		}
	}
	return nil
}

func fill(n int, v float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}
