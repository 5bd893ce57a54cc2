package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRunCmd_TableOutput(t *testing.T) {
	out, err := executeCommand(t, "run",
		"--rounds", "1", "--candidates", "10", "--top-k", "2", "--seed", "7")
	require.NoError(t, err)

	assert.Contains(t, out, "1 rounds")
	assert.Contains(t, out, "RANK")
	assert.Contains(t, out, "STRUCTURE")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.GreaterOrEqual(t, len(lines), 3)
}

func TestRunCmd_JSONOutput(t *testing.T) {
	out, err := executeCommand(t, "run",
		"--rounds", "2", "--candidates", "10", "--top-k", "3", "--seed", "42",
		"--output", "json")
	require.NoError(t, err)

	var doc struct {
		RunID           string            `json:"run_id"`
		RoundsRun       int               `json:"rounds_run"`
		TotalCandidates int               `json:"total_candidates"`
		TopCandidates   []json.RawMessage `json:"top_candidates"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.NotEmpty(t, doc.RunID)
	assert.Equal(t, 2, doc.RoundsRun)
	assert.LessOrEqual(t, len(doc.TopCandidates), 3)
}

func TestRunCmd_InvalidPlanRejected(t *testing.T) {
	_, err := executeCommand(t, "run", "--rounds", "0")
	assert.Error(t, err)
}

func TestRunCmd_DeterministicWithSeed(t *testing.T) {
	first, err := executeCommand(t, "run",
		"--rounds", "1", "--candidates", "10", "--top-k", "2", "--seed", "99", "--output", "json")
	require.NoError(t, err)
	second, err := executeCommand(t, "run",
		"--rounds", "1", "--candidates", "10", "--top-k", "2", "--seed", "99", "--output", "json")
	require.NoError(t, err)

	var a, b map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(first), &a))
	require.NoError(t, json.Unmarshal([]byte(second), &b))
	assert.Equal(t, a["top_candidates"], b["top_candidates"])
	assert.Equal(t, a["total_candidates"], b["total_candidates"])
}

func TestRunCmd_TraceOutput(t *testing.T) {
	out, err := executeCommand(t, "run",
		"--rounds", "1", "--candidates", "10", "--top-k", "2", "--seed", "7", "--trace")
	require.NoError(t, err)

	assert.Contains(t, out, "[engine]")
	assert.Contains(t, out, "run started")
	assert.Contains(t, out, "run completed")
}

func TestVersionCmd(t *testing.T) {
	out, err := executeCommand(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "leadscout")
	assert.Contains(t, out, "go version")
}

//Personal.AI order the ending
