// Package api defines the stable wire schema for machine-readable output.
// Fields are versioned: additive changes only within a version.
package api

// ResultV1 is the v1 JSON schema for one ranked search hit.
type ResultV1 struct {
	Name   string  `json:"name"`
	Score  float64 `json:"score"`
	EValue float64 `json:"e_value"`
	Start  int     `json:"start"`
	End    int     `json:"end"`
}
