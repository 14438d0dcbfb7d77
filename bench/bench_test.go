// Copyright 2025 tilemul Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package bench

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tilemul/tilemul/sme"
)

func TestRunAllStrategiesVerify(t *testing.T) {
	results, err := Run(Config{M: 33, K: 17, N: 50, Iters: 2, Seed: 7})
	require.NoError(t, err)
	require.Len(t, results, len(Strategies()))

	for i, r := range results {
		assert.Equal(t, Strategies()[i], r.Strategy)
		assert.Truef(t, r.Verified, "strategy %s diverged: max rel err %g", r.Strategy, r.MaxRelErr)
		assert.Positive(t, r.Elapsed, "strategy %s has no timing", r.Strategy)
		assert.Positive(t, r.GFLOPS)
		assert.Positive(t, r.Speedup)
		assert.Equal(t, uint64(2*33*17*50), r.Flops)
	}

	assert.Equal(t, 1.0, results[0].Speedup, "baseline speedup is 1x by definition")
}

func TestRunTileUtilization(t *testing.T) {
	results, err := Run(Config{M: 16, K: 16, N: 64, Iters: 1, Seed: 1})
	require.NoError(t, err)

	assert.Equal(t, 0, results[0].TilesUsed)
	assert.Equal(t, 1, results[1].TilesUsed)
	assert.Equal(t, 1, results[2].TilesUsed)
	assert.Equal(t, sme.NumTiles, results[3].TilesUsed)
	assert.Equal(t, 1.0, results[3].Utilization, "multi-tile must report full utilization")
	assert.Equal(t, 0.25, results[1].Utilization)
}

func TestRunRejectsBadConfig(t *testing.T) {
	_, err := Run(Config{M: 0, K: 16, N: 16, Iters: 1})
	assert.Error(t, err)
	_, err = Run(Config{M: 16, K: 16, N: 16, Iters: 0})
	assert.Error(t, err)
	_, err = Run(Config{M: 16, K: -1, N: 16, Iters: 1})
	assert.Error(t, err)
}

func TestRunEngineGate(t *testing.T) {
	t.Setenv("TILEMUL_NO_SME", "1")
	_, err := Run(Config{M: 16, K: 16, N: 16, Iters: 1})
	assert.Error(t, err)
}

func TestRunDeterministicWithSeed(t *testing.T) {
	a, err := Run(Config{M: 17, K: 17, N: 17, Iters: 1, Seed: 99})
	require.NoError(t, err)
	b, err := Run(Config{M: 17, K: 17, N: 17, Iters: 1, Seed: 99})
	require.NoError(t, err)
	for i := range a {
		assert.Equal(t, a[i].MaxRelErr, b[i].MaxRelErr, "same seed must give identical numerics")
	}
}

func TestTable(t *testing.T) {
	results, err := Run(Config{M: 16, K: 16, N: 16, Iters: 1, Seed: 3})
	require.NoError(t, err)

	out := Table(16, 16, 16, results)
	for _, s := range Strategies() {
		assert.Contains(t, out, s.String())
	}
	assert.Contains(t, out, "GFLOPS")
	assert.Contains(t, out, "4/4")
	assert.Empty(t, Table(16, 16, 16, nil))
}

func TestWritePlots(t *testing.T) {
	results, err := Run(Config{M: 16, K: 16, N: 16, Iters: 1, Seed: 5})
	require.NoError(t, err)
	sweeps := []Sweep{{Size: 16, Results: results}}

	var buf bytes.Buffer
	require.NoError(t, WriteSpeedupPlot(&buf, sweeps))
	assert.True(t, strings.Contains(buf.String(), "<svg"), "expected SVG output")

	buf.Reset()
	require.NoError(t, WriteThroughputPlot(&buf, sweeps))
	assert.Contains(t, buf.String(), "<svg")

	assert.Error(t, WriteSpeedupPlot(&buf, nil))
}
