package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/runoshun/logtree/internal/app"
	"github.com/runoshun/logtree/internal/domain"
	"github.com/runoshun/logtree/internal/infra/logging"
	"github.com/runoshun/logtree/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

type runResult struct {
	err    error
	stdout string
	stderr string
}

func buildLog() *testutil.MockLogSource {
	src := testutil.NewMockLogSource()
	src.AddLines("build.log",
		"Task Added: setup",
		"installing deps",
		"Finished: setup",
		"✨ Starting task: compile",
		"Executing: gcc foo.c",
		"Finished: gcc foo.c",
		"Finished: compile",
	)
	return src
}

func mockFactory(src domain.LogSource, cfg *domain.Config) ContainerFactory {
	return func(app.Options) (*app.Container, error) {
		return app.NewWithDeps(src, &testutil.MockConfigLoader{Config: cfg, ConfigPath: "/cfg/config.toml"}, logging.Discard())
	}
}

func runRoot(factory ContainerFactory, args ...string) runResult {
	var stdout, stderr bytes.Buffer
	root := NewRootCommand(factory, "test-version")
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	err := Execute(context.Background(), root, args)
	return runResult{err: err, stdout: stdout.String(), stderr: stderr.String()}
}

func TestRoot_TooFewArgumentsPrintsUsage(t *testing.T) {
	tests := [][]string{
		{},
		{"--input=build.log"},
		{"--input=build.log", "--include_flags=added"},
		{"--input", "build.log"},
	}

	for _, args := range tests {
		res := runRoot(mockFactory(buildLog(), nil), args...)
		assert.NoError(t, res.err)
		assert.Empty(t, res.stdout)
		assert.Equal(t, usageLine+"\n", res.stderr)
	}
}

func TestRoot_ArgumentMinimumCountsRawTokens(t *testing.T) {
	tests := [][]string{
		{"--input", "build.log", "--include_flags", "added"},
		{"--input=build.log", "--input=build.log", "--include_flags=added"},
	}

	for _, args := range tests {
		res := runRoot(mockFactory(buildLog(), nil), args...)
		require.NoError(t, res.err)
		assert.Empty(t, res.stderr)
		assert.Equal(t, "Task: setup\nOutput:\ninstalling deps\n\n", res.stdout)
	}
}

func TestRoot_EmptyInputPrintsUsage(t *testing.T) {
	res := runRoot(mockFactory(buildLog(), nil), "--input=", "--include_flags=added", "--require_output")

	assert.NoError(t, res.err)
	assert.Empty(t, res.stdout)
	assert.Contains(t, res.stderr, "Missing input file path.")
	assert.Contains(t, res.stderr, usageLine)
}

func TestRoot_TextOutput(t *testing.T) {
	res := runRoot(mockFactory(buildLog(), nil),
		"--input=build.log", "--include_flags=added,starting", "--require_output", "--color=never")

	require.NoError(t, res.err)
	assert.Equal(t,
		"Task: setup\nOutput:\ninstalling deps\n\n\n"+
			"Task: compile\nOutput:\nExecuting: gcc foo.c\n\n",
		res.stdout)
	assert.Empty(t, res.stderr)
}

func TestRoot_TextOutputWithoutRequireOutput(t *testing.T) {
	res := runRoot(mockFactory(buildLog(), nil),
		"--input=build.log", "--include_flags=executing", "--color=never")

	require.NoError(t, res.err)
	assert.Equal(t, "Task: gcc foo.c\nOutput:\n\n\n", res.stdout)
}

func TestRoot_ColorAlways(t *testing.T) {
	res := runRoot(mockFactory(buildLog(), nil),
		"--input=build.log", "--include_flags=added", "--color=always")

	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "\x1b[")
	assert.Contains(t, res.stdout, "setup")
}

func TestRoot_ExecutingWithRequireOutputIsEmpty(t *testing.T) {
	src := testutil.NewMockLogSource()
	src.AddLines("run.log", "✨ Starting task: compile", "Executing: gcc foo.c", "Finished: compile")

	res := runRoot(mockFactory(src, nil), "--input=run.log", "--include_flags=executing", "--require_output")

	require.NoError(t, res.err)
	assert.Empty(t, res.stdout)
}

func TestRoot_EmptyIncludeFlagsMatchesNothing(t *testing.T) {
	res := runRoot(mockFactory(buildLog(), nil), "--input=build.log", "--include_flags=", "--color=never")

	require.NoError(t, res.err)
	assert.Empty(t, res.stdout)
}

func TestRoot_JSONOutput(t *testing.T) {
	res := runRoot(mockFactory(buildLog(), nil),
		"--input=build.log", "--include_flags=starting,executing", "--format=json")
	require.NoError(t, res.err)

	var views []nodeView
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &views))
	require.Len(t, views, 2)
	assert.Equal(t, 1, views[0].Index)
	assert.Equal(t, "compile", views[0].Task)
	assert.Nil(t, views[0].Parent)
	assert.Equal(t, []int{2}, views[0].Children)
	assert.Equal(t, []int{}, views[1].Children)
	require.NotNil(t, views[1].Parent)
	assert.Equal(t, 1, *views[1].Parent)
	assert.Equal(t, []domain.Flag{domain.FlagExecuting}, views[1].Flags)
}

func TestRoot_YAMLOutputFromConfigFormat(t *testing.T) {
	cfg := domain.NewDefaultConfig()
	cfg.Output.Format = "yaml"

	res := runRoot(mockFactory(buildLog(), cfg), "--input=build.log", "--include_flags=added", "--require_output")
	require.NoError(t, res.err)

	var views []nodeView
	require.NoError(t, yaml.Unmarshal([]byte(res.stdout), &views))
	require.Len(t, views, 1)
	assert.Equal(t, "setup", views[0].Task)
	assert.Equal(t, "installing deps\n", views[0].Output)
}

func TestRoot_ConfigQueryDefaults(t *testing.T) {
	cfg := domain.NewDefaultConfig()
	cfg.Query.IncludeFlags = []string{"starting"}
	cfg.Output.Color = "never"

	res := runRoot(mockFactory(buildLog(), cfg), "--input=build.log", "--log-level=error", "--format=text")

	require.NoError(t, res.err)
	assert.Equal(t, "Task: compile\nOutput:\nExecuting: gcc foo.c\n\n", res.stdout)
}

func TestRoot_ConfigWarningsPrinted(t *testing.T) {
	cfg := domain.NewDefaultConfig()
	cfg.Warnings = []string{"unknown config key: foo"}

	res := runRoot(mockFactory(buildLog(), cfg), "--input=build.log", "--include_flags=added", "--color=never")

	require.NoError(t, res.err)
	assert.Equal(t, "Warning: unknown config key: foo\n", res.stderr)
}

func TestRoot_ParseErrorReturned(t *testing.T) {
	res := runRoot(mockFactory(testutil.NewMockLogSource(), nil),
		"--input=missing.log", "--include_flags=added", "--require_output")

	require.Error(t, res.err)
	assert.ErrorIs(t, res.err, domain.ErrParseLog)
	assert.Contains(t, res.err.Error(), "Error parsing log file")
	assert.Empty(t, res.stdout)
}

func TestRoot_InvalidFormat(t *testing.T) {
	res := runRoot(mockFactory(buildLog(), nil), "--input=build.log", "--include_flags=added", "--format=xml")

	assert.ErrorIs(t, res.err, domain.ErrInvalidFormat)
}

func TestRoot_ContainerError(t *testing.T) {
	factoryErr := errors.New("bad config")
	factory := func(app.Options) (*app.Container, error) { return nil, factoryErr }

	res := runRoot(factory, "--input=build.log", "--include_flags=added", "--require_output")

	assert.ErrorIs(t, res.err, factoryErr)
}

func TestRoot_RealFileWithTilde(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	require.NoError(t, os.WriteFile(filepath.Join(home, "run.log"), []byte("Task Added: build\nhello\nFinished: build\n"), 0o644))

	res := runRoot(app.New, "--input=~/run.log", "--include_flags=added", "--require_output", "--color=never")

	require.NoError(t, res.err)
	assert.Equal(t, "Task: build\nOutput:\nhello\n\n\n", res.stdout)
}

func TestRoot_Version(t *testing.T) {
	res := runRoot(mockFactory(buildLog(), nil), "--version")

	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "test-version")
}

func TestRoot_HelpListsFlagNames(t *testing.T) {
	res := runRoot(mockFactory(buildLog(), nil), "--help")

	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Comma-separated flags to keep: added, starting, executing")
}
