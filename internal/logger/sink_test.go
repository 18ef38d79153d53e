package logger

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xbox11/internal/config"
)

func testConfig(t *testing.T) config.Log {
	t.Helper()
	cfg := config.Default().Log
	cfg.Dir = filepath.Join(t.TempDir(), "logs")
	return cfg
}

func readLog(t *testing.T, cfg config.Log) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(cfg.Dir, cfg.Basename+"."+cfg.Suffix))
	require.NoError(t, err)
	return string(data)
}

func TestNew_WritesFileAndConsole(t *testing.T) {
	cfg := testConfig(t)
	var console bytes.Buffer

	log, err := New(cfg, &console)
	require.NoError(t, err)
	t.Cleanup(func() { _ = log.Close() })

	log.Info("Bootstrap", "logger ready", map[string]interface{}{"attempt": 1})
	log.Debug("Bootstrap", "too chatty", nil)
	log.Error("Bootstrap", errors.New("boom"), nil)

	file := readLog(t, cfg)
	assert.Contains(t, file, `"component":"Bootstrap"`)
	assert.Contains(t, file, `"message":"logger ready"`)
	assert.Contains(t, file, `"error":"boom"`)
	assert.NotContains(t, file, "too chatty")

	assert.Contains(t, console.String(), "logger ready")
	assert.NotContains(t, console.String(), "too chatty")
}

func TestNew_ConsoleThreshold(t *testing.T) {
	cfg := testConfig(t)
	cfg.ConsoleLevel = "warn"
	var console bytes.Buffer

	log, err := New(cfg, &console)
	require.NoError(t, err)
	t.Cleanup(func() { _ = log.Close() })

	log.Info("Bootstrap", "file only", nil)
	log.Warning("Bootstrap", "both sinks", nil)

	assert.Contains(t, readLog(t, cfg), "file only")
	assert.NotContains(t, console.String(), "file only")
	assert.Contains(t, console.String(), "both sinks")
}

func TestNew_AppendsToExistingFile(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, os.MkdirAll(cfg.Dir, 0o755))
	path := filepath.Join(cfg.Dir, "xbox11.log")
	require.NoError(t, os.WriteFile(path, []byte("previous run\n"), 0o644))

	log, err := New(cfg, &bytes.Buffer{})
	require.NoError(t, err)
	log.Info("Bootstrap", "second run", nil)
	require.NoError(t, log.Close())

	content := readLog(t, cfg)
	assert.Contains(t, content, "previous run")
	assert.Contains(t, content, "second run")
}

func TestNew_Failures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(t *testing.T, cfg *config.Log)
	}{
		{
			name:   "UnknownLevel_ShouldFail",
			mutate: func(_ *testing.T, cfg *config.Log) { cfg.Level = "loud" },
		},
		{
			name:   "EmptyConsoleLevel_ShouldFail",
			mutate: func(_ *testing.T, cfg *config.Log) { cfg.ConsoleLevel = "" },
		},
		{
			name: "DirIsAFile_ShouldFail",
			mutate: func(t *testing.T, cfg *config.Log) {
				blocker := filepath.Join(t.TempDir(), "blocker")
				require.NoError(t, os.WriteFile(blocker, nil, 0o644))
				cfg.Dir = filepath.Join(blocker, "logs")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(t)
			tt.mutate(t, &cfg)

			log, err := New(cfg, &bytes.Buffer{})
			assert.Nil(t, log)
			assert.ErrorIs(t, err, ErrInit)
		})
	}
}

func TestInit_OnlyOnce(t *testing.T) {
	cfg := testConfig(t)

	bad := cfg
	bad.Level = "loud"
	for i := 0; i < 2; i++ {
		failed, err := Init(bad)
		assert.Nil(t, failed)
		require.ErrorIs(t, err, ErrInit)
		assert.NotErrorIs(t, err, ErrAlreadyInitialized, "a failed init keeps its own cause")
	}

	log, err := Init(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = log.Close() })

	again, err := Init(cfg)
	assert.Nil(t, again)
	assert.ErrorIs(t, err, ErrAlreadyInitialized)
	assert.ErrorIs(t, err, ErrInit)
}

func TestWith_AddsFields(t *testing.T) {
	var buf bytes.Buffer
	log := NewZerolog(&buf, zerolog.DebugLevel).With(map[string]interface{}{"session": "s-1"})

	log.Info("Host", "hello", nil)
	assert.Contains(t, buf.String(), `"session":"s-1"`)
}

func TestNop_Discards(t *testing.T) {
	log := Nop()
	log.Info("Host", "nothing", nil)
	assert.NoError(t, log.Close())
}
