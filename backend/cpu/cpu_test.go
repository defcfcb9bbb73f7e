// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package cpu_test

import (
	"testing"

	"github.com/born-ml/ndarray/backend/cpu"
	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	b := cpu.New(cpu.WithWorkers(2), cpu.WithMinChunkSize(16), cpu.WithSIMD(false))
	assert.Equal(t, "CPU", b.Name())
	assert.Equal(t, 2, b.Config().NumWorkers)
	assert.Equal(t, 16, b.Config().MinChunkSize)
	assert.Equal(t, "generic", b.ISA().String())
}

func TestDefault(t *testing.T) {
	assert.Same(t, cpu.Default(), cpu.Default())
	assert.Equal(t, cpu.DetectedISA(), cpu.Default().ISA())
}
