package dscheck

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolveOptions_Defaults(t *testing.T) {
	cfg, err := resolveOptions(nil)
	require.NoError(t, err)
	require.Equal(t, NewNoOpLogger(), cfg.logger)
	require.False(t, cfg.recordTraces)
	require.Empty(t, cfg.traceFile)
	require.Zero(t, cfg.maxInterleavings)
}

func TestResolveOptions_WithTraceFile_ImpliesRecordTraces(t *testing.T) {
	cfg, err := resolveOptions([]Option{WithTraceFile("/tmp/out.trace")})
	require.NoError(t, err)
	require.Equal(t, "/tmp/out.trace", cfg.traceFile)
	require.True(t, cfg.recordTraces)
}

func TestResolveOptions_EnvVarImpliesRecordTraces(t *testing.T) {
	t.Setenv(traceFileEnv, "/tmp/env.trace")
	cfg, err := resolveOptions(nil)
	require.NoError(t, err)
	require.Equal(t, "/tmp/env.trace", cfg.traceFile)
	require.True(t, cfg.recordTraces)
}

func TestResolveOptions_ExplicitOverridesEnvVar(t *testing.T) {
	t.Setenv(traceFileEnv, "/tmp/env.trace")
	cfg, err := resolveOptions([]Option{WithTraceFile("/tmp/explicit.trace")})
	require.NoError(t, err)
	require.Equal(t, "/tmp/explicit.trace", cfg.traceFile)
}

func TestResolveOptions_WithLoggerNilFallsBackToNoOp(t *testing.T) {
	cfg, err := resolveOptions([]Option{WithLogger(nil)})
	require.NoError(t, err)
	require.Equal(t, NewNoOpLogger(), cfg.logger)
}

func TestResolveOptions_WithTraceWriterAndMaxInterleavings(t *testing.T) {
	var buf bytes.Buffer
	cfg, err := resolveOptions([]Option{
		WithTraceWriter(&buf),
		WithMaxInterleavings(3),
	})
	require.NoError(t, err)
	require.Same(t, &buf, cfg.traceWriter)
	require.Equal(t, 3, cfg.maxInterleavings)
}

func TestNew_AppliesOptions(t *testing.T) {
	ex, err := New(WithMaxInterleavings(1))
	require.NoError(t, err)
	require.Equal(t, 1, ex.opts.maxInterleavings)
}

func TestDefaultLogger_IsEnabled(t *testing.T) {
	l := NewDefaultLogger(LevelWarn)
	require.False(t, l.IsEnabled(LevelDebug))
	require.False(t, l.IsEnabled(LevelInfo))
	require.True(t, l.IsEnabled(LevelWarn))
	require.True(t, l.IsEnabled(LevelError))
}

func TestDefaultLogger_LogWritesToNonTerminalWriterAsJSON(t *testing.T) {
	var buf bytes.Buffer
	l := NewDefaultLogger(LevelDebug)
	l.Out = &buf
	l.Log(LogEntry{Level: LevelInfo, Category: "driver", Message: "hello"})
	require.Contains(t, buf.String(), `"category":"driver"`)
	require.Contains(t, buf.String(), `"message":"hello"`)
}

func TestIsTerminal_RegularFileIsFalse(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "dscheck")
	require.NoError(t, err)
	defer f.Close()
	require.False(t, isTerminal(f))
}
