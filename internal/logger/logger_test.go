package logger

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/dbsmedya/oidtree/internal/config"
)

// captureStd redirects os.Stdout and os.Stderr to temp files until the test
// ends and returns readers for both.
func captureStd(t *testing.T) (stdout, stderr func() string) {
	t.Helper()
	dir := t.TempDir()

	outFile, err := os.Create(filepath.Join(dir, "stdout"))
	require.NoError(t, err)
	errFile, err := os.Create(filepath.Join(dir, "stderr"))
	require.NoError(t, err)

	origOut, origErr := os.Stdout, os.Stderr
	os.Stdout, os.Stderr = outFile, errFile
	t.Cleanup(func() {
		os.Stdout, os.Stderr = origOut, origErr
		_ = outFile.Close()
		_ = errFile.Close()
	})

	read := func(f *os.File) func() string {
		return func() string {
			data, err := os.ReadFile(f.Name())
			require.NoError(t, err)
			return string(data)
		}
	}
	return read(outFile), read(errFile)
}

func TestParseLevel(t *testing.T) {
	tests := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"info":    zapcore.InfoLevel,
		"warn":    zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"":        zapcore.InfoLevel,
		"verbose": zapcore.InfoLevel,
	}
	for in, want := range tests {
		assert.Equal(t, want, parseLevel(in), "parseLevel(%q)", in)
	}
}

func TestNew_DefaultOutputKeepsStdoutClean(t *testing.T) {
	stdout, stderr := captureStd(t)

	for _, output := range []string{"", "stderr"} {
		log, err := New(&config.LoggingConfig{Level: "info", Format: "json", Output: output})
		require.NoError(t, err)
		log.Infow("tree written", "nodes", 3)
		_ = log.Sync()
	}

	assert.Empty(t, stdout())
	assert.Equal(t, 2, strings.Count(stderr(), `"msg":"tree written"`))
}

func TestNewDefault_WritesTextToStderr(t *testing.T) {
	stdout, stderr := captureStd(t)

	log := NewDefault()
	log.Debug("hidden at info level")
	log.Warn("records not reached from any root")
	_ = log.Sync()

	assert.Empty(t, stdout())
	assert.Contains(t, stderr(), "records not reached from any root")
	assert.NotContains(t, stderr(), "hidden at info level")
}

func TestNew_StdoutWhenAsked(t *testing.T) {
	stdout, stderr := captureStd(t)

	log, err := New(&config.LoggingConfig{Level: "info", Format: "text", Output: "stdout"})
	require.NoError(t, err)
	log.Info("to stdout")
	_ = log.Sync()

	assert.Contains(t, stdout(), "to stdout")
	assert.Empty(t, stderr())
}

func TestNew_FileOutputTeesToStderr(t *testing.T) {
	stdout, stderr := captureStd(t)
	path := filepath.Join(t.TempDir(), "oidtree.log")

	log, err := New(&config.LoggingConfig{Level: "debug", Format: "json", Output: path})
	require.NoError(t, err)
	log.WithSource("IF-MIB.json").Debugw("loaded records", "count", 12)
	_ = log.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(string(data))), &entry))
	assert.Equal(t, "debug", entry["level"])
	assert.Equal(t, "loaded records", entry["msg"])
	assert.Equal(t, "IF-MIB.json", entry["source"])
	assert.Equal(t, float64(12), entry["count"])

	assert.Contains(t, stderr(), "loaded records")
	assert.Empty(t, stdout())
}

func TestNewNop(t *testing.T) {
	stdout, stderr := captureStd(t)

	log := NewNop()
	log.Error("discarded")
	log.WithRoot("ifMIB").Warn("discarded")

	assert.False(t, log.Desugar().Core().Enabled(zapcore.ErrorLevel))
	assert.NoError(t, log.Sync())
	assert.Empty(t, stdout())
	assert.Empty(t, stderr())
}

func TestOrNop(t *testing.T) {
	nop := OrNop(nil)
	require.NotNil(t, nop)
	assert.NotPanics(t, func() { nop.WithQuery("x").Debug("ignored") })

	core, _ := observer.New(zapcore.DebugLevel)
	log := NewWithCore(core)
	assert.Same(t, log, OrNop(log))
}

func TestContextHelpers(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := NewWithCore(core)

	log.WithRoot("ifMIB").Debug("tree built")
	log.WithQuery("octets").Debug("search complete")
	log.WithSource("sqlite:records").Info("loaded records")

	entries := logs.All()
	require.Len(t, entries, 3)
	assert.Equal(t, map[string]any{"root": "ifMIB"}, entries[0].ContextMap())
	assert.Equal(t, map[string]any{"query": "octets"}, entries[1].ContextMap())
	assert.Equal(t, map[string]any{"source": "sqlite:records"}, entries[2].ContextMap())
	assert.Equal(t, zapcore.InfoLevel, entries[2].Level)
}

func TestContextHelpersChain(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := NewWithCore(core)

	log.WithSource("IF-MIB.json").
		WithRoot("interfaces").
		WithFields(map[string]interface{}{"nodes": 22}).
		Debugw("tree built", "placed_total", 22)

	require.Equal(t, 1, logs.Len())
	ctx := logs.All()[0].ContextMap()
	assert.Equal(t, "IF-MIB.json", ctx["source"])
	assert.Equal(t, "interfaces", ctx["root"])
	assert.EqualValues(t, 22, ctx["nodes"])
	assert.EqualValues(t, 22, ctx["placed_total"])

	// The parent logger stays free of the derived fields.
	log.Debug("plain")
	assert.Empty(t, logs.All()[1].ContextMap())
}

func TestNewWithCoreRespectsLevel(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	log := NewWithCore(core)

	log.Debug("dropped")
	log.Info("dropped")
	log.Warn("kept")

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "kept", logs.All()[0].Message)
}
