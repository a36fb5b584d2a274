package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/samuelfneumann/gowalker/environment/envconfig"
	"github.com/samuelfneumann/gowalker/experiment/tracker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	if _, ok := os.LookupEnv("GOWALKER_LOG_LEVEL"); !ok {
		t.Setenv("GOWALKER_LOG_LEVEL", "error")
	}
	root := newRootCmd()

	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func TestConfigCmd(t *testing.T) {
	out, err := execute(t, "config")
	require.NoError(t, err)
	assert.Contains(t, out, "environment: Humanoid")
	assert.Contains(t, out, "thighL:")

	path := filepath.Join(t.TempDir(), "env.json")
	_, err = execute(t, "config", path)
	require.NoError(t, err)

	c, err := envconfig.Load(path)
	require.NoError(t, err)
	assert.Equal(t, envconfig.Default(), c)
}

func TestSpecCmd(t *testing.T) {
	out, err := execute(t, "spec")
	require.NoError(t, err)

	assert.Contains(t, out, "observation: 189 values")
	assert.Contains(t, out, "control: 27 values")
	assert.Contains(t, out, "thighL.y")
	assert.Contains(t, out, "forearmR.strength")
}

func TestRunCmd(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, "env.yaml")
	c := envconfig.Default()
	c.Walk.EpisodeCutoff = 5
	require.NoError(t, c.Save(envPath))

	out, err := execute(t, "--env-config", envPath, "run",
		"--steps", "12", "--out", dir, "--render-every", "5", "--seed", "3")
	require.NoError(t, err)

	runDir := strings.TrimSpace(out)
	require.DirExists(t, runDir)

	returns, err := tracker.LoadData[float64](filepath.Join(runDir,
		"return.bin"))
	require.NoError(t, err)
	assert.NotEmpty(t, returns)

	for _, name := range []string{"environment.yaml", "length.bin",
		"end.bin", "return.png"} {
		assert.FileExists(t, filepath.Join(runDir, name))
	}

	frames, err := os.ReadDir(filepath.Join(runDir, "frames"))
	require.NoError(t, err)
	assert.NotEmpty(t, frames)

	saved, err := envconfig.Load(filepath.Join(runDir, "environment.yaml"))
	require.NoError(t, err)
	assert.Equal(t, uint64(3), saved.Seed)
}

func TestRunCmdParallel(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	out, err := execute(t, "run", "--steps", "6", "--runs", "3",
		"--seed", "10", "--out", dir)
	require.NoError(t, err)

	dirs := strings.Fields(out)
	require.Len(t, dirs, 3)

	seeds := make(map[uint64]bool)
	for _, d := range dirs {
		c, err := envconfig.Load(filepath.Join(d, "environment.yaml"))
		require.NoError(t, err)
		seeds[c.Seed] = true
	}
	assert.Equal(t, map[uint64]bool{10: true, 11: true, 12: true}, seeds)

	_, err = execute(t, "run", "--runs", "0", "--out", dir)
	assert.Error(t, err)
}

func TestRunCmdRejectsAgent(t *testing.T) {
	_, err := execute(t, "run", "--agent", "Greedy", "--out", t.TempDir())
	assert.Error(t, err)
}

func TestEnvironmentSettings(t *testing.T) {
	t.Setenv("GOWALKER_LOG_LEVEL", "loud")
	_, err := execute(t, "spec")
	assert.Error(t, err)

	_, err = execute(t, "--log-level", "warn", "spec")
	assert.NoError(t, err)
}

func TestSettingsFile(t *testing.T) {
	dir := t.TempDir()
	settings := filepath.Join(dir, "settings.yaml")
	data := "steps: 4\nout: " + dir + "\nagent: Gaussian-Random\nstd: 0.1\n"
	require.NoError(t, os.WriteFile(settings, []byte(data), 0o644))

	out, err := execute(t, "--settings", settings, "run")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(strings.TrimSpace(out), dir))
}
