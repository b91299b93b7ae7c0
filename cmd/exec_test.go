package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mj1618/desktop-mcp/internal/output"
)

const loginFixture = "../internal/platform/virtual/testdata/desktop.yaml"

// execute runs the root command against the login fixture with short
// timeouts and returns the decoded JSON result.
func execute(t *testing.T, stdin string, args ...string) (map[string]interface{}, error) {
	t.Helper()

	cfgPath := filepath.Join(t.TempDir(), "desktop-mcp.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`
logger:
  level: error
automation:
  window_timeout: 200ms
  element_timeout: 200ms
  wait_timeout: 200ms
  poll_interval: 10ms
  select_settle: 0s
`), 0o644))

	var buf bytes.Buffer
	prev := output.Writer
	output.Writer = &buf
	t.Cleanup(func() { output.Writer = prev })

	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(append([]string{"--config", cfgPath, "--fixture", loginFixture, "--format", "json"}, args...))
	err := rootCmd.Execute()

	var res map[string]interface{}
	if buf.Len() > 0 {
		require.NoError(t, json.Unmarshal(buf.Bytes(), &res), buf.String())
	}
	return res, err
}

func TestExecute_List(t *testing.T) {
	res, err := execute(t, "", "list")
	require.NoError(t, err)
	assert.Equal(t, true, res["ok"])

	windows, ok := res["windows"].([]interface{})
	require.True(t, ok)
	require.NotEmpty(t, windows)
	first := windows[0].(map[string]interface{})
	assert.Equal(t, "Login - Acme", first["name"])
	assert.Equal(t, "acme", first["process"])
}

func TestExecute_Click(t *testing.T) {
	res, err := execute(t, "", "click", "-w", "Login - Acme", "-e", "Submit")
	require.NoError(t, err)
	assert.Equal(t, true, res["ok"])
	assert.Equal(t, "invoke", res["strategy"])
}

func TestExecute_FailedOperation(t *testing.T) {
	res, err := execute(t, "", "read", "-w", "Login - Acme", "-e", "No Such Thing")
	assert.ErrorIs(t, err, errFailed)
	assert.Equal(t, false, res["ok"])
	assert.Equal(t, "element_not_found", res["kind"])
}

func TestExecute_Do(t *testing.T) {
	steps := `
- write: {element: Email, text: admin@example.com}
- check: {element: Remember me}
- read: {element: emailBox}
`
	res, err := execute(t, steps, "do", "-w", "Login - Acme")
	require.NoError(t, err)
	assert.Equal(t, true, res["ok"])
	assert.Equal(t, "3 of 3 steps completed", res["message"])

	results := res["steps"].([]interface{})
	require.Len(t, results, 3)
	assert.Equal(t, "admin@example.com", results[2].(map[string]interface{})["text"])
}

func TestExecute_BadFormat(t *testing.T) {
	_, err := execute(t, "", "--format", "xml", "list")
	assert.Error(t, err)
}
