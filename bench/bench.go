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

// Package bench times the four multiply strategies against each other
// and verifies every accelerated result against the scalar reference.
//
// The four strategies mirror the classic progression: CPU triple loop,
// scalar-packed single-tile, tile-packed single-tile, and tile-packed
// four-tile parallel. Timing covers the whole per-call pipeline
// (packing included where a strategy packs), since the layout
// transform is part of what the faster strategies buy back.
package bench

import (
	"math/rand"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/schollz/progressbar/v3"
	"k8s.io/klog/v2"

	"github.com/tilemul/tilemul/sgemm"
	"github.com/tilemul/tilemul/sme"
)

// Strategy identifies one execution strategy of the benchmark.
type Strategy int

const (
	// StrategyCPU is the naive triple-loop baseline.
	StrategyCPU Strategy = iota

	// StrategySingleTileCPUPack packs A with the scalar path, then
	// multiplies with one accumulator tile.
	StrategySingleTileCPUPack

	// StrategySingleTileSMEPack packs A through tile slice writes and
	// reads, then multiplies with one accumulator tile.
	StrategySingleTileSMEPack

	// StrategyMultiTile packs A through tiles and multiplies with all
	// four accumulator tiles in parallel.
	StrategyMultiTile

	numStrategies
)

// Strategies lists every strategy in benchmark order.
func Strategies() []Strategy {
	return []Strategy{StrategyCPU, StrategySingleTileCPUPack, StrategySingleTileSMEPack, StrategyMultiTile}
}

// String returns the short name used in tables and plot legends.
func (s Strategy) String() string {
	switch s {
	case StrategyCPU:
		return "cpu"
	case StrategySingleTileCPUPack:
		return "cpu-pack+1tile"
	case StrategySingleTileSMEPack:
		return "sme-pack+1tile"
	case StrategyMultiTile:
		return "sme-pack+4tiles"
	default:
		return "unknown"
	}
}

// TilesUsed returns how many accumulator tiles the strategy keeps busy
// per inner-loop pass.
func (s Strategy) TilesUsed() int {
	switch s {
	case StrategySingleTileCPUPack, StrategySingleTileSMEPack:
		return 1
	case StrategyMultiTile:
		return sme.NumTiles
	default:
		return 0
	}
}

// Config describes one benchmark run.
type Config struct {
	// M, K, N are the multiply dimensions: A is MxK, B is KxN.
	M, K, N int

	// Iters is the number of timed iterations per strategy.
	Iters int

	// Seed drives the deterministic random fill of A and B.
	Seed int64

	// RTol and ATol are the verification tolerances; zero values take
	// the sgemm defaults.
	RTol, ATol float64

	// Progress draws a per-strategy progress bar on stderr.
	Progress bool
}

func (cfg *Config) validate() error {
	if cfg.M <= 0 || cfg.K <= 0 || cfg.N <= 0 {
		return errors.Errorf("bench: dimensions must be positive, got m=%d k=%d n=%d", cfg.M, cfg.K, cfg.N)
	}
	if cfg.Iters <= 0 {
		return errors.Errorf("bench: iteration count must be positive, got %d", cfg.Iters)
	}
	if cfg.RTol == 0 {
		cfg.RTol = sgemm.DefaultRTol
	}
	if cfg.ATol == 0 {
		cfg.ATol = sgemm.DefaultATol
	}
	return nil
}

// Result holds the measured and derived figures for one strategy.
type Result struct {
	Strategy Strategy

	// Elapsed is the mean wall-clock time per iteration.
	Elapsed time.Duration

	// GFLOPS is 2*M*K*N / Elapsed, in units of 1e9 ops/s.
	GFLOPS float64

	// Speedup is the CPU baseline's Elapsed divided by this one's.
	Speedup float64

	// TilesUsed of sme.NumTiles available; Utilization is the ratio.
	TilesUsed   int
	Utilization float64

	// Flops is the operation count of one multiply.
	Flops uint64

	// Verified reports whether the output matched the reference within
	// tolerance; MaxRelErr is the worst element (relative to
	// max(|want|, 1)).
	Verified  bool
	MaxRelErr float64
}

// Run executes every strategy for cfg and returns one Result per
// strategy, in Strategies() order. A strategy failing verification
// does not abort the run; it is reported via Result.Verified so the
// caller decides.
func Run(cfg Config) ([]Result, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if err := sme.Require(); err != nil {
		return nil, err
	}
	m, n, k := cfg.M, cfg.N, cfg.K

	rng := rand.New(rand.NewSource(cfg.Seed))
	a := sme.NewAlignedFloat32(m * k)
	b := sme.NewAlignedFloat32(k * n)
	for i := range a {
		a[i] = rng.Float32()*2 - 1
	}
	for i := range b {
		b[i] = rng.Float32()*2 - 1
	}
	c := sme.NewAlignedFloat32(m * n)
	ap := sme.NewAlignedFloat32(sgemm.PackedLen(m, k))

	want := make([]float32, m*n)
	sgemm.Reference(a, b, want, m, n, k)

	flops := sgemm.FlopCount(m, n, k)
	klog.V(1).Infof("bench: %dx%dx%d, %d iterations, %d flops/iter, native SME: %v",
		m, k, n, cfg.Iters, flops, sme.HasNativeSME())

	results := make([]Result, 0, numStrategies)
	var cpuElapsed time.Duration
	for _, s := range Strategies() {
		run, err := runner(s, a, b, c, ap, m, n, k)
		if err != nil {
			return nil, err
		}

		var bar *progressbar.ProgressBar
		if cfg.Progress {
			bar = progressbar.NewOptions(cfg.Iters,
				progressbar.OptionSetDescription(s.String()),
				progressbar.OptionSetWriter(os.Stderr),
				progressbar.OptionShowIts(),
				progressbar.OptionSetTheme(progressbar.ThemeASCII),
				progressbar.OptionClearOnFinish(),
			)
		}

		var total time.Duration
		for range cfg.Iters {
			start := time.Now()
			if err := run(); err != nil {
				return nil, errors.Wrapf(err, "bench: strategy %s failed", s)
			}
			total += time.Since(start)
			if bar != nil {
				_ = bar.Add(1)
			}
		}
		if bar != nil {
			_ = bar.Finish()
		}

		res := Result{
			Strategy:    s,
			Elapsed:     total / time.Duration(cfg.Iters),
			TilesUsed:   s.TilesUsed(),
			Utilization: float64(s.TilesUsed()) / sme.NumTiles,
			Flops:       flops,
			MaxRelErr:   sgemm.MaxRelError(c, want),
			Verified:    sgemm.WithinTolerance(c, want, cfg.RTol, cfg.ATol),
		}
		if secs := res.Elapsed.Seconds(); secs > 0 {
			res.GFLOPS = float64(flops) / secs / 1e9
		}
		if s == StrategyCPU {
			cpuElapsed = res.Elapsed
		}
		if res.Elapsed > 0 {
			res.Speedup = float64(cpuElapsed) / float64(res.Elapsed)
		}
		if !res.Verified {
			klog.Warningf("bench: strategy %s diverged from reference, max relative error %g", s, res.MaxRelErr)
		}
		klog.V(1).Infof("bench: %-16s %12v/op  %8.2f GFLOPS  %6.2fx", s, res.Elapsed, res.GFLOPS, res.Speedup)
		results = append(results, res)
	}
	return results, nil
}

// runner binds a strategy to the run buffers. The returned closure is
// the timed unit: packing is inside it for the strategies that pack.
func runner(s Strategy, a, b, c, ap []float32, m, n, k int) (func() error, error) {
	switch s {
	case StrategyCPU:
		return func() error {
			sgemm.Reference(a, b, c, m, n, k)
			return nil
		}, nil
	case StrategySingleTileCPUPack:
		return func() error {
			if err := sgemm.PackScalar(a, m, k, ap); err != nil {
				return err
			}
			return sgemm.MulSingleTile(ap, b, c, m, n, k)
		}, nil
	case StrategySingleTileSMEPack:
		return func() error {
			if err := sgemm.PackTiles(a, m, k, ap); err != nil {
				return err
			}
			return sgemm.MulSingleTile(ap, b, c, m, n, k)
		}, nil
	case StrategyMultiTile:
		return func() error {
			if err := sgemm.PackTiles(a, m, k, ap); err != nil {
				return err
			}
			return sgemm.MulMultiTile(ap, b, c, m, n, k)
		}, nil
	default:
		return nil, errors.Errorf("bench: unknown strategy %d", s)
	}
}
