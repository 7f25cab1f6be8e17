// Package output renders ranked search results in the supported formats.
package output

import (
	"fmt"
	"io"

	"profsearch-core/search"

	"profsearch/internal/jsonutil"
	"profsearch/pkg/api"
)

// WriteFunc renders a ranked result list to w. header controls the column
// header for tabular formats and is ignored by JSON.
type WriteFunc func(w io.Writer, results []search.Result, header bool) error

// ForFormat returns the writer registered for a format name.
func ForFormat(format string) (WriteFunc, error) {
	switch format {
	case "text":
		return WriteText, nil
	case "tsv":
		return WriteTSV, nil
	case "json":
		return WriteJSON, nil
	default:
		return nil, fmt.Errorf("output: unknown format %q", format)
	}
}

// WriteText prints a fixed-width ranked table, one row per hit.
func WriteText(w io.Writer, results []search.Result, header bool) error {
	if header {
		if _, err := fmt.Fprintf(w, "%-30s %-12s %-12s %-8s %-8s\n",
			"sequence", "score", "e_value", "start", "end"); err != nil {
			return err
		}
	}
	for _, r := range results {
		name := r.Name
		if len(name) > 30 {
			name = name[:27] + "..."
		}
		if _, err := fmt.Fprintf(w, "%-30s %-12.2f %-12.2e %-8d %-8d\n",
			name, r.Score, r.EValue, r.Start, r.End); err != nil {
			return err
		}
	}
	return nil
}

// WriteTSV prints one tab-separated row per hit.
func WriteTSV(w io.Writer, results []search.Result, header bool) error {
	if header {
		if _, err := fmt.Fprintln(w, "sequence\tscore\te_value\tstart\tend"); err != nil {
			return err
		}
	}
	for _, r := range results {
		if _, err := fmt.Fprintf(w, "%s\t%.2f\t%.2e\t%d\t%d\n",
			r.Name, r.Score, r.EValue, r.Start, r.End); err != nil {
			return err
		}
	}
	return nil
}

// WriteJSON writes a single pretty-printed JSON array of v1 results.
func WriteJSON(w io.Writer, results []search.Result, _ bool) error {
	return jsonutil.EncodePretty(w, toAPIResults(results))
}

func toAPIResults(results []search.Result) []api.ResultV1 {
	out := make([]api.ResultV1, 0, len(results))
	for _, r := range results {
		out = append(out, api.ResultV1{
			Name:   r.Name,
			Score:  r.Score,
			EValue: r.EValue,
			Start:  r.Start,
			End:    r.End,
		})
	}
	return out
}
