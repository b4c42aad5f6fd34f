package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestRunText(t *testing.T) {
	out, _, err := execute(t, "run", "testdata/page.yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "> scroll 500")
	assert.Contains(t, out, "hero opacity=0.5")
	assert.Contains(t, out, "hero top=20px")
	assert.Contains(t, out, "= hero complete=true progress=1.5 style={} class=complete")
}

func TestRunJSON(t *testing.T) {
	out, _, err := execute(t, "--format", "json", "run", "testdata/page.yaml")
	require.NoError(t, err)

	var doc struct {
		Events []struct {
			Target string `json:"target"`
			Op     string `json:"op"`
			Name   string `json:"name"`
			Value  string `json:"value"`
		} `json:"events"`
		Idle bool `json:"idle"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.True(t, doc.Idle)
	require.NotEmpty(t, doc.Events)
	assert.Equal(t, "step", doc.Events[0].Op)
	assert.Equal(t, "scroll 500", doc.Events[0].Name)
	assert.Equal(t, "0.5", doc.Events[1].Value)
}

func TestRunVerboseLogsToStderr(t *testing.T) {
	out, errOut, err := execute(t, "-v", "run", "testdata/page.yaml")
	require.NoError(t, err)
	assert.Contains(t, errOut, "page loaded")
	assert.Contains(t, errOut, "asset 1: registered")
	assert.NotContains(t, out, "[parallax]")
}

func TestRunMissingFile(t *testing.T) {
	out, _, err := execute(t, "run", "testdata/missing.yaml")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "Error [E002]")
}

func TestRunInvalidPage(t *testing.T) {
	out, _, err := execute(t, "--format", "json", "run", "testdata/bad_page.yaml")
	require.Error(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeInvalid, resp.Error.Code)
	assert.Contains(t, resp.Error.Message, "sideways")
}
