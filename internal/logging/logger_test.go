package logging

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBufferLogger(level slog.Level) (*Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return NewLogger(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: level})), &buf
}

func TestLogDispatch(t *testing.T) {
	l, buf := newBufferLogger(slog.LevelDebug)
	l.LogDispatch(context.Background(), Dispatch{
		Op:      "matmul",
		Mode:    "ParallelSIMD",
		Kernel:  "lanes",
		Shape:   "4x4",
		DType:   "float32",
		Workers: 2,
	})

	out := buf.String()
	require.Contains(t, out, "msg=dispatch")
	assert.Contains(t, out, "op=matmul")
	assert.Contains(t, out, "kernel=lanes")
	assert.Contains(t, out, "workers=2")
}

func TestLogDispatch_BelowLevel(t *testing.T) {
	l, buf := newBufferLogger(slog.LevelInfo)
	l.LogDispatch(context.Background(), Dispatch{Op: "add"})
	assert.Empty(t, buf.String())
}

func TestLogAbort(t *testing.T) {
	l, buf := newBufferLogger(slog.LevelDebug)
	l.WithMode("Parallel").LogAbort(context.Background(), "div", 4, errors.New("boom"))

	out := buf.String()
	assert.Contains(t, out, "parallel run aborted")
	assert.Contains(t, out, "mode=Parallel")
	assert.Contains(t, out, "error=boom")
}

func TestWithOp(t *testing.T) {
	l, buf := newBufferLogger(slog.LevelInfo)
	l.WithOp("transpose").Info("done")
	assert.Contains(t, buf.String(), "op=transpose")
}

func TestNoopLogger(t *testing.T) {
	l := NoopLogger()
	assert.False(t, l.Enabled(context.Background(), slog.LevelError))
	assert.NotPanics(t, func() {
		l.LogDispatch(context.Background(), Dispatch{Op: "add"})
	})
}

func TestNewLogger_NilHandler(t *testing.T) {
	l := NewLogger(nil)
	assert.True(t, l.Enabled(context.Background(), slog.LevelInfo))
	assert.False(t, l.Enabled(context.Background(), slog.LevelDebug))
}

func TestNewJSONLogger(t *testing.T) {
	var buf bytes.Buffer
	l := NewJSONLogger(&buf, slog.LevelDebug)
	l.LogDispatch(context.Background(), Dispatch{Op: "sum", Kernel: "scalar", Workers: 1})

	out := buf.String()
	assert.Contains(t, out, `"msg":"dispatch"`)
	assert.Contains(t, out, `"op":"sum"`)
	assert.Contains(t, out, `"workers":1`)
}

func TestNewTextLogger_Level(t *testing.T) {
	var buf bytes.Buffer
	l := NewTextLogger(&buf, slog.LevelInfo)
	l.LogDispatch(context.Background(), Dispatch{Op: "sum"})
	assert.Empty(t, buf.String())

	l.Info("ready")
	assert.Contains(t, buf.String(), "msg=ready")
}
