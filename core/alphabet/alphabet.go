// Package alphabet defines the fixed 20-symbol amino-acid alphabet shared by
// the model, the aligner and the synthetic sequence generator.
package alphabet

import (
	"errors"
	"fmt"
)

// Residues is the ordered amino-acid alphabet. A residue's position in this
// string is its index everywhere in the engine.
const Residues = "ACDEFGHIKLMNPQRSTVWY"

// Size is the number of symbols in the alphabet.
const Size = 20

// ErrUnknownResidue is returned by IndexStrict for bytes outside the alphabet.
var ErrUnknownResidue = errors.New("alphabet: unknown residue")

// Background holds amino-acid background frequencies, indexed by alphabet
// position. Read-only.
var Background = [Size]float64{
	0.074, 0.025, 0.054, 0.062, 0.042, 0.073, 0.023, 0.052, 0.024, 0.058,
	0.099, 0.045, 0.039, 0.057, 0.073, 0.073, 0.052, 0.013, 0.034, 0.068,
}

var lookup [256]int8

func init() {
	for i := range lookup {
		lookup[i] = -1
	}
	for i := 0; i < Size; i++ {
		upper := Residues[i]
		lookup[upper] = int8(i)
		lookup[upper+'a'-'A'] = int8(i)
	}
}

// Index maps a residue byte to its alphabet index in [0,Size). Case is
// folded; bytes outside the alphabet map to index 0.
func Index(b byte) int {
	if i := lookup[b]; i >= 0 {
		return int(i)
	}
	return 0
}

// IndexStrict is Index for callers that require validated biological input:
// unrecognized bytes return ErrUnknownResidue instead of the index-0 fallback.
func IndexStrict(b byte) (int, error) {
	if i := lookup[b]; i >= 0 {
		return int(i), nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownResidue, b)
}
