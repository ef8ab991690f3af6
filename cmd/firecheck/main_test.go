package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	dir    string
	config string
}

func newFixture(t *testing.T, config string) fixture {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, ".firecheck.yaml")
	require.NoError(t, os.WriteFile(path, []byte(config), 0o644))
	return fixture{dir: dir, config: path}
}

func (f fixture) write(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(f.dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func runCLI(args []string, stdin string) (int, string, string) {
	var stdout, stderr bytes.Buffer
	root := newRootCmd()
	root.SetArgs(args)
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	code := execute(root)
	return code, stdout.String(), stderr.String()
}

func TestValidateCommand(t *testing.T) {
	f := newFixture(t, "log:\n  level: error\n")
	valid := f.write(t, "firebase.json", `{"hosting": {"public": "dist"}}`)
	invalid := f.write(t, "bad.json", `{"hosting": {"public": "dist", "typo": true}}`)
	broken := f.write(t, "broken.json", `{"hosting": `)
	yamlDoc := f.write(t, "firebase.yaml", "database:\n  rules: db.rules.json\n")

	tests := []struct {
		name       string
		args       []string
		stdin      string
		wantCode   int
		wantOut    string
		wantStderr string
	}{
		{name: "valid", args: []string{valid}, wantCode: exitValid, wantOut: "firebase.json: ok"},
		{name: "yaml", args: []string{yamlDoc}, wantCode: exitValid},
		{name: "invalid", args: []string{valid, invalid}, wantCode: exitInvalid, wantOut: "unexpected_field"},
		{name: "decode error", args: []string{broken, invalid}, wantCode: exitError, wantStderr: "json syntax error"},
		{name: "missing file", args: []string{filepath.Join(f.dir, "nope.json")}, wantCode: exitError, wantStderr: "nope.json"},
		{name: "stdin", args: []string{"-"}, stdin: `{"storage": {"rules": "s.rules"}}`, wantCode: exitValid, wantOut: "<stdin>: ok"},
		{name: "forced format", args: []string{"--format", "yaml", "-"}, stdin: "storage:\n  rules: s\n", wantCode: exitValid},
		{name: "bad format flag", args: []string{"-f", "toml", valid}, wantCode: exitError},
		{name: "bad output flag", args: []string{"--output", "html", valid}, wantCode: exitError, wantStderr: "invalid configuration"},
		{name: "no warnings", args: []string{"--no-warnings", valid}, wantCode: exitValid},
		{name: "unknown flag", args: []string{"--frobnicate", valid}, wantCode: exitError, wantStderr: "unknown flag"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"validate", "--config", f.config}, tt.args...)
			code, out, errOut := runCLI(args, tt.stdin)
			assert.Equal(t, tt.wantCode, code, "stdout: %s\nstderr: %s", out, errOut)
			if tt.wantOut != "" {
				assert.Contains(t, out, tt.wantOut)
			}
			if tt.wantStderr != "" {
				assert.Contains(t, errOut, tt.wantStderr)
			}
		})
	}
}

func TestValidateJSONOutput(t *testing.T) {
	f := newFixture(t, "output: json\nlog:\n  level: error\n")
	doc := f.write(t, "firebase.json", `{"database": {}}`)

	code, out, _ := runCLI([]string{"validate", "--config", f.config, doc}, "")
	assert.Equal(t, exitInvalid, code)

	var reports []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &reports))
	require.Len(t, reports, 1)
	assert.Equal(t, false, reports[0]["valid"])
}

func TestValidateCustomChecks(t *testing.T) {
	f := newFixture(t, `
log:
  level: error
checks:
  - name: functions-source
    expr: "!has(config.functions) || has(config.functions.source)"
    message: set functions.source explicitly
`)
	doc := f.write(t, "firebase.json", `{"functions": {"runtime": "nodejs16"}}`)

	code, out, _ := runCLI([]string{"validate", "--config", f.config, doc}, "")
	assert.Equal(t, exitInvalid, code)
	assert.Contains(t, out, "check_failed")
	assert.Contains(t, out, "set functions.source explicitly")
}

func TestValidateInvalidConfig(t *testing.T) {
	f := newFixture(t, "outptu: json\n")
	code, _, errOut := runCLI([]string{"validate", "--config", f.config}, "")
	assert.Equal(t, exitError, code)
	assert.Contains(t, errOut, "$.outptu")
}

func TestSchemaCommand(t *testing.T) {
	code, out, _ := runCLI([]string{"schema"}, "")
	require.Equal(t, exitValid, code)
	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "firebase.json", doc["title"])

	code, out, _ = runCLI([]string{"schema", "--section", "emulators"}, "")
	require.Equal(t, exitValid, code)
	assert.Contains(t, out, `"title": "firebase.json emulators"`)

	code, _, errOut := runCLI([]string{"schema", "-s", "nope"}, "")
	assert.Equal(t, exitError, code)
	assert.Contains(t, errOut, "hosting")
}

func TestServeInvalidConfig(t *testing.T) {
	f := newFixture(t, "serve:\n  cache:\n    backend: memcached\n")
	code, _, errOut := runCLI([]string{"serve", "--config", f.config}, "")
	assert.Equal(t, exitError, code)
	assert.Contains(t, errOut, "firecheck: ")

	code, _, errOut = runCLI([]string{"serve", "extra"}, "")
	assert.Equal(t, exitError, code)
	assert.Contains(t, errOut, "unknown command")
}

func TestMiscCommands(t *testing.T) {
	code, out, _ := runCLI([]string{"version"}, "")
	assert.Equal(t, exitValid, code)
	assert.Equal(t, "firecheck dev\n", out)

	code, out, _ = runCLI([]string{"help"}, "")
	assert.Equal(t, exitValid, code)
	assert.Contains(t, out, "Available Commands:")
	assert.Contains(t, out, "validate")

	code, out, _ = runCLI([]string{"validate", "--help"}, "")
	assert.Equal(t, exitValid, code)
	assert.Contains(t, out, "--no-warnings")

	code, _, errOut := runCLI([]string{"frobnicate"}, "")
	assert.Equal(t, exitError, code)
	assert.Contains(t, errOut, `unknown command "frobnicate"`)

	code, out, _ = runCLI(nil, "")
	assert.Equal(t, exitError, code)
	assert.Contains(t, out, "Usage:")
}

func TestExitCodeError(t *testing.T) {
	inner := errors.New("boom")
	err := &exitCodeError{Code: exitInvalid, Err: inner}
	assert.ErrorIs(t, err, inner)
	assert.Equal(t, "boom", err.Error())
	assert.Equal(t, "exit status 2", (&exitCodeError{Code: exitError}).Error())
}
