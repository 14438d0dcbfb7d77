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

// Command tilebench benchmarks the four SGEMM execution strategies
// (CPU triple loop, scalar-packed single tile, tile-packed single
// tile, tile-packed four-tile parallel) and prints a result table per
// matrix size. Every accelerated result is verified against the
// scalar reference before it is reported.
//
// Usage:
//
//	tilebench --sizes 64,128,256 --iters 20
//	tilebench --m 100 --k 33 --n 17 --iters 50
//	tilebench --sizes 64,128,256 --plot speedup.svg
//
// --plot also writes a throughput chart next to the speedup chart
// (speedup-gflops.svg in the example above).
package main

import (
	goflag "flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/janpfeifer/must"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"k8s.io/klog/v2"

	"github.com/tilemul/tilemul/bench"
	"github.com/tilemul/tilemul/sme"
)

var flags struct {
	sizes      []int
	m, k, n    int
	iters      int
	seed       int64
	rtol       float64
	plot       string
	noProgress bool
}

func main() {
	rootCmd := &cobra.Command{
		Use:           "tilebench",
		Short:         "Benchmark tile-accelerated single-precision matrix multiply",
		RunE:          run,
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	fs := rootCmd.Flags()
	fs.IntSliceVar(&flags.sizes, "sizes", []int{64, 128, 256}, "square matrix sizes to sweep (M=K=N)")
	fs.IntVar(&flags.m, "m", 0, "rows of A and C (overrides --sizes together with --k and --n)")
	fs.IntVar(&flags.k, "k", 0, "columns of A, rows of B")
	fs.IntVar(&flags.n, "n", 0, "columns of B and C")
	fs.IntVar(&flags.iters, "iters", 20, "timed iterations per strategy")
	fs.Int64Var(&flags.seed, "seed", 42, "seed for the deterministic matrix fill")
	fs.Float64Var(&flags.rtol, "rtol", 0, "relative verification tolerance (0 = default)")
	fs.StringVar(&flags.plot, "plot", "", "write an SVG speedup chart to this path, plus a -gflops sibling")
	fs.BoolVar(&flags.noProgress, "no-progress", false, "disable the per-strategy progress bar")

	klog.InitFlags(nil)
	fs.AddGoFlagSet(goflag.CommandLine)
	// klog registers underscore-separated flags; fold them into the
	// dash-separated convention so --log-file and --log_file both work.
	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	configs, err := buildConfigs()
	if err != nil {
		return err
	}

	klog.Infof("tile engine: VL=%d float32 lanes, %d tiles, native SME: %v",
		sme.VL, sme.NumTiles, sme.HasNativeSME())

	var sweeps []bench.Sweep
	failed := false
	for _, cfg := range configs {
		results, err := bench.Run(cfg)
		if err != nil {
			return err
		}
		fmt.Println(bench.Table(cfg.M, cfg.K, cfg.N, results))
		fmt.Println()
		for _, r := range results {
			if !r.Verified {
				failed = true
			}
		}
		if cfg.M == cfg.K && cfg.K == cfg.N {
			sweeps = append(sweeps, bench.Sweep{Size: cfg.M, Results: results})
		}
	}

	if flags.plot != "" {
		if len(sweeps) == 0 {
			return errors.New("--plot needs at least one square size from --sizes")
		}
		f := must.M1(os.Create(flags.plot))
		must.M(bench.WriteSpeedupPlot(f, sweeps))
		must.M(f.Close())
		klog.Infof("wrote %s", flags.plot)

		gflops := gflopsPlotPath(flags.plot)
		f = must.M1(os.Create(gflops))
		must.M(bench.WriteThroughputPlot(f, sweeps))
		must.M(f.Close())
		klog.Infof("wrote %s", gflops)
	}

	if failed {
		return errors.New("one or more strategies failed verification")
	}
	return nil
}

// gflopsPlotPath derives the throughput chart's path from the speedup
// chart's: speedup.svg -> speedup-gflops.svg.
func gflopsPlotPath(path string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + "-gflops" + ext
}

func buildConfigs() ([]bench.Config, error) {
	base := bench.Config{
		Iters:    flags.iters,
		Seed:     flags.seed,
		RTol:     flags.rtol,
		Progress: !flags.noProgress,
	}

	explicit := flags.m != 0 || flags.k != 0 || flags.n != 0
	if explicit {
		if flags.m <= 0 || flags.k <= 0 || flags.n <= 0 {
			return nil, errors.Errorf("all of --m, --k, --n must be positive, got %d/%d/%d", flags.m, flags.k, flags.n)
		}
		cfg := base
		cfg.M, cfg.K, cfg.N = flags.m, flags.k, flags.n
		return []bench.Config{cfg}, nil
	}

	if len(flags.sizes) == 0 {
		return nil, errors.New("no sizes given")
	}
	configs := make([]bench.Config, 0, len(flags.sizes))
	for _, s := range flags.sizes {
		if s <= 0 {
			return nil, errors.Errorf("sizes must be positive, got %d", s)
		}
		cfg := base
		cfg.M, cfg.K, cfg.N = s, s, s
		configs = append(configs, cfg)
	}
	return configs, nil
}
