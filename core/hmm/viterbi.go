package hmm

import (
	"math"

	"profsearch-core/alphabet"
)

// State identifies one of the three alignment states of a model column.
type State uint8

const (
	Match State = iota
	Insert
	Delete
)

func (s State) String() string {
	switch s {
	case Match:
		return "M"
	case Insert:
		return "I"
	case Delete:
		return "D"
	}
	return "?"
}

// Step is one traceback entry: the state occupied at a lattice cell. Row is
// the number of residues consumed (1-based over the sequence, 0 for leading
// deletes), Col the 0-based model column.
type Step struct {
	State State
	Row   int
	Col   int
}

// Config selects the aligner's memory strategy.
type Config struct {
	// Traceback retains the full DP table and recovers the best state path.
	// When false a rolling two-row table is used and only the score is kept.
	// Both strategies implement identical recurrences and tie-breaks.
	Traceback bool
}

// Alignment is the outcome of aligning one sequence against a model. A -Inf
// score means no viable path, which can only arise from degenerate model
// parameters; it is a legitimate result, not an error.
type Alignment struct {
	Score float64
	Path  []Step // nil unless Config.Traceback
}

// Aligner runs Viterbi alignments against a fixed model. It holds no mutable
// state and is safe for concurrent use.
type Aligner struct {
	m   *Model
	cfg Config
}

// NewAligner returns an aligner for m.
func NewAligner(m *Model, cfg Config) *Aligner { return &Aligner{m: m, cfg: cfg} }

// Align computes the best-path log-odds score of residues against the model,
// and the state path when tracebacks are enabled. It never fails: an empty
// sequence scores 0 (the start state) and unmapped residues fold to alphabet
// index 0.
func (a *Aligner) Align(residues []byte) Alignment {
	if a.cfg.Traceback {
		score, path := viterbiFull(a.m, residues)
		return Alignment{Score: score, Path: path}
	}
	return Alignment{Score: viterbiRolling(a.m, residues)}
}

// Score is shorthand for a score-only, minimal-memory alignment against m.
func (m *Model) Score(residues []byte) float64 { return viterbiRolling(m, residues) }

var negInf = math.Inf(-1)

// logProb treats the logarithm of a non-positive probability as an impossible
// (-Inf) contribution rather than a NaN.
func logProb(p float64) float64 {
	if p <= 0 {
		return negInf
	}
	return math.Log(p)
}

// bestPred picks the highest-scoring predecessor with the fixed precedence
// Match, then Insert, then Delete on exact ties. The precedence only affects
// tracebacks, never the numeric score.
func bestPred(match, insert, del float64) (float64, State) {
	if match >= insert && match >= del {
		return match, Match
	}
	if insert >= del {
		return insert, Insert
	}
	return del, Delete
}

// viterbiFull fills the complete (seqLen+1) x 3*modelLen lattice and traces
// the best path back from the highest-scoring final match state.
func viterbiFull(m *Model, residues []byte) (float64, []Step) {
	seqLen := len(residues)
	cols := m.length * 3

	dp := make([][]float64, seqLen+1)
	pred := make([][]State, seqLen+1)
	for i := range dp {
		dp[i] = make([]float64, cols)
		pred[i] = make([]State, cols)
		for k := range dp[i] {
			dp[i][k] = negInf
		}
	}

	// Row 0: log-probability 1 in the start match state, plus the delete
	// chain that consumes leading model columns without emitting.
	dp[0][0] = 0
	for j := 1; j < m.length; j++ {
		fromMatch := dp[0][(j-1)*3] + logProb(m.tr.MatchToDelete[j-1])
		fromDelete := dp[0][(j-1)*3+2] + logProb(m.tr.DeleteToDelete[j-1])
		if fromMatch >= fromDelete {
			dp[0][j*3+2] = fromMatch
			pred[0][j*3+2] = Match
		} else {
			dp[0][j*3+2] = fromDelete
			pred[0][j*3+2] = Delete
		}
	}

	for i := 1; i <= seqLen; i++ {
		aa := alphabet.Index(residues[i-1])
		row, prev := dp[i], dp[i-1]
		for j := 0; j < m.length; j++ {
			mIdx, iIdx, dIdx := j*3, j*3+1, j*3+2

			// Match: enters from the previous row and column. Column 0 has
			// no predecessor column and stays -Inf past row 0.
			if j > 0 {
				best, from := bestPred(
					prev[(j-1)*3]+logProb(m.tr.MatchToMatch[j-1]),
					prev[(j-1)*3+1]+logProb(m.tr.InsertToMatch[j-1]),
					prev[(j-1)*3+2]+logProb(m.tr.DeleteToMatch[j-1]),
				)
				row[mIdx] = logProb(m.em.Match[j][aa]) + best
				pred[i][mIdx] = from
			}

			// Insert: loops in the same column.
			fromMatch := prev[mIdx] + logProb(m.tr.MatchToInsert[j])
			fromInsert := prev[iIdx] + logProb(m.tr.InsertToInsert[j])
			if fromMatch >= fromInsert {
				row[iIdx] = logProb(m.em.Insert[j][aa]) + fromMatch
				pred[i][iIdx] = Match
			} else {
				row[iIdx] = logProb(m.em.Insert[j][aa]) + fromInsert
				pred[i][iIdx] = Insert
			}

			// Delete consumes no residue: it reads this row's already-final
			// Match value, so it must run after the Match update for j-1.
			if j > 0 {
				fromMatch := row[(j-1)*3] + logProb(m.tr.MatchToDelete[j-1])
				fromDelete := row[(j-1)*3+2] + logProb(m.tr.DeleteToDelete[j-1])
				if fromMatch >= fromDelete {
					row[dIdx] = fromMatch
					pred[i][dIdx] = Match
				} else {
					row[dIdx] = fromDelete
					pred[i][dIdx] = Delete
				}
			}
		}
	}

	// Best final score over match states only.
	bestScore := negInf
	bestCol := 0
	for j := 0; j < m.length; j++ {
		if dp[seqLen][j*3] > bestScore {
			bestScore = dp[seqLen][j*3]
			bestCol = j
		}
	}
	if math.IsInf(bestScore, -1) {
		return bestScore, nil
	}
	return bestScore, traceback(pred, seqLen, bestCol)
}

// viterbiRolling keeps only two lattice rows; scores are bit-identical to
// viterbiFull.
func viterbiRolling(m *Model, residues []byte) float64 {
	cols := m.length * 3
	prev := make([]float64, cols)
	cur := make([]float64, cols)

	for k := range prev {
		prev[k] = negInf
	}
	prev[0] = 0
	for j := 1; j < m.length; j++ {
		best, _ := bestPred(
			prev[(j-1)*3]+logProb(m.tr.MatchToDelete[j-1]),
			negInf,
			prev[(j-1)*3+2]+logProb(m.tr.DeleteToDelete[j-1]),
		)
		prev[j*3+2] = best
	}

	for i := 1; i <= len(residues); i++ {
		aa := alphabet.Index(residues[i-1])
		for k := range cur {
			cur[k] = negInf
		}
		for j := 0; j < m.length; j++ {
			mIdx, iIdx, dIdx := j*3, j*3+1, j*3+2

			if j > 0 {
				best, _ := bestPred(
					prev[(j-1)*3]+logProb(m.tr.MatchToMatch[j-1]),
					prev[(j-1)*3+1]+logProb(m.tr.InsertToMatch[j-1]),
					prev[(j-1)*3+2]+logProb(m.tr.DeleteToMatch[j-1]),
				)
				cur[mIdx] = logProb(m.em.Match[j][aa]) + best
			}

			fromMatch := prev[mIdx] + logProb(m.tr.MatchToInsert[j])
			fromInsert := prev[iIdx] + logProb(m.tr.InsertToInsert[j])
			if fromMatch >= fromInsert {
				cur[iIdx] = logProb(m.em.Insert[j][aa]) + fromMatch
			} else {
				cur[iIdx] = logProb(m.em.Insert[j][aa]) + fromInsert
			}

			if j > 0 {
				best, _ := bestPred(
					cur[(j-1)*3]+logProb(m.tr.MatchToDelete[j-1]),
					negInf,
					cur[(j-1)*3+2]+logProb(m.tr.DeleteToDelete[j-1]),
				)
				cur[dIdx] = best
			}
		}
		prev, cur = cur, prev
	}

	best := negInf
	for j := 0; j < m.length; j++ {
		if prev[j*3] > best {
			best = prev[j*3]
		}
	}
	return best
}

// traceback walks predecessor states from the final match cell back to the
// start state, returning steps in forward order.
func traceback(pred [][]State, row, col int) []Step {
	var rev []Step
	i, j, s := row, col, Match
	for !(i == 0 && j == 0 && s == Match) {
		rev = append(rev, Step{State: s, Row: i, Col: j})
		p := pred[i][j*3+int(s)]
		switch s {
		case Match:
			i, j = i-1, j-1
		case Insert:
			i--
		case Delete:
			j--
		}
		s = p
	}
	for l, r := 0, len(rev)-1; l < r; l, r = l+1, r-1 {
		rev[l], rev[r] = rev[r], rev[l]
	}
	return rev
}
