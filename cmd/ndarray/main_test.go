package main

import (
	"bytes"
	"testing"

	"github.com/born-ml/ndarray/backend/cpu"
	"github.com/stretchr/testify/assert"
)

func TestRun_Version(t *testing.T) {
	var buf bytes.Buffer
	assert.Equal(t, 0, run([]string{"version"}, &buf))
	assert.Equal(t, "ndarray "+version+"\n", buf.String())
}

func TestRun_Usage(t *testing.T) {
	var buf bytes.Buffer
	assert.Equal(t, 0, run(nil, &buf))
	assert.Contains(t, buf.String(), "Commands:")

	buf.Reset()
	assert.Equal(t, 2, run([]string{"train"}, &buf))
	assert.Contains(t, buf.String(), `unknown command "train"`)
}

func TestInfo(t *testing.T) {
	var buf bytes.Buffer
	info(&buf, cpu.New(cpu.WithWorkers(3), cpu.WithMinChunkSize(8), cpu.WithSIMD(false)))

	out := buf.String()
	assert.Contains(t, out, "isa:        generic")
	assert.Contains(t, out, "lanes:      float32=1 float64=1")
	assert.Contains(t, out, "workers:    3")
	assert.Contains(t, out, "min chunk:  8")
	assert.Contains(t, out, "parallel:   true")
}

func TestRun_InfoVerboseLogsDispatch(t *testing.T) {
	var buf bytes.Buffer
	assert.Equal(t, 0, run([]string{"info", "-v"}, &buf))

	out := buf.String()
	assert.Contains(t, out, "workers:")
	assert.Contains(t, out, "msg=dispatch")
	assert.Contains(t, out, "op=matmul")
	assert.Contains(t, out, "mode=ParallelSIMD")
	assert.Contains(t, out, "dtype=int32")
	assert.Contains(t, out, "kernel=scalar")
}

func TestRun_InfoJSONLogs(t *testing.T) {
	var buf bytes.Buffer
	assert.Equal(t, 0, run([]string{"info", "-v", "-log-format", "json"}, &buf))
	assert.Contains(t, buf.String(), `"msg":"dispatch"`)
	assert.Contains(t, buf.String(), `"mode":"SIMD"`)
}

func TestRun_InfoBadFlags(t *testing.T) {
	var buf bytes.Buffer
	assert.Equal(t, 2, run([]string{"info", "-v", "-log-format", "xml"}, &buf))
	assert.Contains(t, buf.String(), `unknown log format "xml"`)

	buf.Reset()
	assert.Equal(t, 2, run([]string{"info", "-bogus"}, &buf))
}
