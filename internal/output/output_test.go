package output

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"profsearch-core/search"

	"profsearch/pkg/api"
)

var sampleResults = []search.Result{
	{Name: "seq_a", Score: -12.34, EValue: 2.29e5, Start: 0, End: 42},
	{Name: "a_rather_long_sequence_identifier_indeed", Score: -56.78, EValue: 4.5e24, Start: 0, End: 7},
}

func TestForFormat(t *testing.T) {
	for _, format := range []string{"text", "tsv", "json"} {
		fn, err := ForFormat(format)
		require.NoError(t, err, format)
		require.NotNil(t, fn, format)
	}
	_, err := ForFormat("xml")
	require.Error(t, err)
}

func TestWriteTextHeaderAndTruncation(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, sampleResults, true))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "sequence")
	assert.Contains(t, lines[1], "seq_a")
	assert.Contains(t, lines[2], "...") // long name truncated

	buf.Reset()
	require.NoError(t, WriteText(&buf, sampleResults, false))
	assert.NotContains(t, buf.String(), "e_value")
}

func TestWriteTSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTSV(&buf, sampleResults, true))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "sequence\tscore\te_value\tstart\tend", lines[0])
	fields := strings.Split(lines[1], "\t")
	require.Len(t, fields, 5)
	assert.Equal(t, "seq_a", fields[0])
	assert.Equal(t, "-12.34", fields[1])
}

func TestWriteJSONRoundTrips(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, sampleResults, false))

	var decoded []api.ResultV1
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, "seq_a", decoded[0].Name)
	assert.Equal(t, -12.34, decoded[0].Score)
	assert.Equal(t, 42, decoded[0].End)
}

func TestIsBrokenPipe(t *testing.T) {
	assert.True(t, IsBrokenPipe(io.ErrClosedPipe))
	assert.False(t, IsBrokenPipe(nil))
	assert.False(t, IsBrokenPipe(io.EOF))
}
