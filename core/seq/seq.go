// Package seq defines protein sequences and a deterministic synthetic
// generator used when no FASTA input is available.
package seq

import (
	"fmt"

	"profsearch-core/alphabet"
)

// Sequence is a named ordered run of residue bytes. A zero-length sequence is
// a valid input to the aligner.
type Sequence struct {
	Name     string
	Residues []byte
}

// Len returns the number of residues.
func (s Sequence) Len() int { return len(s.Residues) }

// SyntheticAt returns the i-th deterministic pseudo-random sequence. Lengths
// cycle through 50..249 and residues are drawn from the alphabet at
// (i*17 + j*31) mod Size, so any index reproduces the same record on every
// machine.
func SyntheticAt(i int) Sequence {
	n := 50 + i%200
	residues := make([]byte, n)
	for j := 0; j < n; j++ {
		residues[j] = alphabet.Residues[(i*17+j*31)%alphabet.Size]
	}
	return Sequence{
		Name:     fmt.Sprintf("synthetic_seq_%d", i),
		Residues: residues,
	}
}

// Synthetic returns n synthetic sequences starting at index 0.
func Synthetic(n int) []Sequence {
	out := make([]Sequence, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, SyntheticAt(i))
	}
	return out
}
