package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs a fresh root command and returns its exit code and output.
func execute(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	cmd := newRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--color", "off"}, args...))
	code := run(context.Background(), cmd)
	return code, stdout.String(), stderr.String()
}

func TestFibCommand(t *testing.T) {
	code, out, errOut := execute(t, "fib", "12")
	require.Equal(t, 0, code, errOut)
	assert.Equal(t, "144\n", out)
	assert.Contains(t, errOut, "F(12) has 3 digits")

	code, out, _ = execute(t, "--quiet", "fib", "12", "--width", "6", "--pad", "_")
	require.Equal(t, 0, code)
	assert.Equal(t, "___144\n", out)

	code, _, errOut = execute(t, "fib", "twelve")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "invalid index")
}

func TestFibCommand_ConfigFormat(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "largenum.toml")
	require.NoError(t, os.WriteFile(cfg, []byte("[format]\nwidth = 5\npad = \"0\"\n"), 0o644))

	code, out, errOut := execute(t, "--quiet", "--config", cfg, "fib", "7")
	require.Equal(t, 0, code, errOut)
	assert.Equal(t, "00013\n", out)
}

func TestSearchCommand(t *testing.T) {
	code, out, errOut := execute(t, "search", "--digits", "10", "--ui", "off")
	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, "Final Index: 45 - 10 digits\n")
	assert.Contains(t, out, "Duration: ")
}

func TestSearchCommand_JSONAndCache(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	cmdRun := func(args ...string) (int, string) {
		cmd := newRootCmd()
		var stdout, stderr bytes.Buffer
		cmd.SetOut(&stdout)
		cmd.SetErr(&stderr)
		cmd.SetArgs(append([]string{"--color", "off"}, args...))
		return run(context.Background(), cmd), stdout.String()
	}

	code, out := cmdRun("search", "--digits", "20", "--format", "json", "--print-value")
	require.Equal(t, 0, code)
	var first map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &first))
	assert.EqualValues(t, 93, first["index"])
	assert.Equal(t, false, first["cached"])
	assert.Equal(t, "12200160415121876738", first["value"])

	code, out = cmdRun("search", "--digits", "20", "--format", "json", "--mode", "brute", "--jobs", "2")
	require.Equal(t, 0, code)
	var second map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &second))
	assert.EqualValues(t, 93, second["index"])
	assert.Equal(t, true, second["cached"])
	assert.NotContains(t, second, "value")

	code, _ = cmdRun("cache", "clear")
	require.Equal(t, 0, code)
	code, out = cmdRun("search", "--digits", "20", "--format", "json")
	require.Equal(t, 0, code)
	assert.Contains(t, out, `"cached": false`)
}

func TestSearchCommand_InvalidFlags(t *testing.T) {
	for _, args := range [][]string{
		{"search", "--digits", "0"},
		{"search", "--mode", "quantum"},
		{"search", "--ui", "maybe"},
		{"search", "--format", "xml"},
	} {
		code, _, errOut := execute(t, args...)
		assert.Equal(t, 1, code, strings.Join(args, " "))
		assert.Contains(t, errOut, "error:")
	}
}

func TestCalcCommand(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"1234567890", "+", "-1234567890"}, "0"},
		{[]string{"9876543210", "-", "-9876543210"}, "19753086420"},
		{[]string{"--", "-87654", "/", "780"}, "-112"},
		{[]string{"--", "-87654", "%", "780"}, "-294"},
		{[]string{"1,000,000", "*", "1_000_000"}, "1000000000000"},
		{[]string{"１２３", "x", "2"}, "246"},
		{[]string{"--", "-7", "cmp", "-5"}, "-1"},
	}
	for _, tt := range tests {
		code, out, errOut := execute(t, append([]string{"calc"}, tt.args...)...)
		require.Equal(t, 0, code, "%v: %s", tt.args, errOut)
		assert.Equal(t, tt.want+"\n", out, "%v", tt.args)
	}
}

func TestCalcCommand_Errors(t *testing.T) {
	code, _, errOut := execute(t, "calc", "1", "/", "0")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "division by zero")

	code, _, errOut = execute(t, "calc", "1", "^", "2")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "unknown operator")

	code, _, errOut = execute(t, "calc", "12a", "+", "2")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "invalid digit")
}

func TestSelftestCommand(t *testing.T) {
	code, out, errOut := execute(t, "selftest")
	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, "PASS")
	assert.NotContains(t, out, "FAIL")
	assert.Contains(t, out, "checks passed")
}

func TestVersionCommand(t *testing.T) {
	code, out, _ := execute(t, "version", "--format", "json", "--full")
	require.Equal(t, 0, code)
	var payload versionPayload
	require.NoError(t, json.Unmarshal([]byte(out), &payload))
	assert.Equal(t, "largenum", payload.Tool)
	assert.Equal(t, "unknown", payload.GitCommit)

	code, _, _ = execute(t, "version", "--format", "yaml")
	assert.Equal(t, 1, code)
}

func TestTraceFlags(t *testing.T) {
	traceFile := filepath.Join(t.TempDir(), "trace.ndjson")
	code, _, errOut := execute(t, "--trace", traceFile, "--trace-level", "detail", "search", "--digits", "5", "--mode", "brute", "--jobs", "3", "--ui", "off", "--no-cache")
	require.Equal(t, 0, code, errOut)

	data, err := os.ReadFile(traceFile)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.NotEmpty(t, lines)
	scopes := map[string]bool{}
	for _, line := range lines {
		var ev map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &ev), line)
		scopes[ev["scope"].(string)] = true
	}
	assert.True(t, scopes["command"])
	assert.True(t, scopes["search"])
	assert.True(t, scopes["batch"])
	assert.False(t, scopes["term"])
}

func TestTraceDumpOnError(t *testing.T) {
	code, _, errOut := execute(t, "--trace-level", "error", "calc", "1", "%", "0")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "trace (most recent events):")
	assert.Contains(t, errOut, "→ largenum calc")
}
