package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCmd(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()

	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestTextMode(t *testing.T) {
	stdout, stderr, err := runCmd(t, "--mode", "text")
	require.NoError(t, err)

	assert.Contains(t, stdout, "Trace: [\"trace message\"]")
	assert.Contains(t, stdout, "Info: [\"info message\"]")
	assert.Contains(t, stderr, "Warn: [\"warn message\"]")
	assert.Contains(t, stderr, "Fatal: [\"fatal message\"]")
	assert.Contains(t, stderr, "Error: [\"worker1 error\"]")
	assert.NotContains(t, stdout, "worker1 info is filtered")
	assert.Contains(t, stderr, "unknown log level")
}

func TestLevelFlag(t *testing.T) {
	stdout, stderr, err := runCmd(t, "--mode", "text", "--level", "error")
	require.NoError(t, err)

	assert.NotContains(t, stdout, "info message")
	assert.NotContains(t, stderr, "warn message")
	assert.Contains(t, stderr, "Error: [\"error message\"]")
	assert.Contains(t, stderr, "Fatal: [\"fatal message\"]")
}

func TestOtherModes(t *testing.T) {
	for _, mode := range []string{"json", "obj", "hclog"} {
		t.Run(mode, func(t *testing.T) {
			stdout, _, err := runCmd(t, "--mode", mode)
			require.NoError(t, err)
			assert.Contains(t, stdout, "info message")
			assert.Contains(t, stdout, "worker1 error")
			assert.NotContains(t, stdout, "worker1 info is filtered")
		})
	}
}

func TestConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output: discard\nlevel: warn\n"), 0o600))

	_, _, err := runCmd(t, "--config", path)
	require.NoError(t, err)
}

func TestInvalidFlags(t *testing.T) {
	_, _, err := runCmd(t, "--mode", "xml")
	require.Error(t, err)
	assert.EqualError(t, err, "unknown mode: xml")

	_, _, err = runCmd(t, "--level", "loud")
	require.Error(t, err)
	assert.EqualError(t, err, "unknown level: loud")

	_, _, err = runCmd(t, "--context", "")
	require.NoError(t, err)
}
