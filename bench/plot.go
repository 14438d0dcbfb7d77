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
	"io"

	mg "github.com/erkkah/margaid"
	"github.com/pkg/errors"
)

// Sweep is the result set of one matrix size, for plotting a size
// series across multiple Run calls.
type Sweep struct {
	// Size is the square dimension (M = K = N) of the sweep point.
	Size    int
	Results []Result
}

// WriteSpeedupPlot renders an SVG line chart of speedup-over-CPU per
// strategy across the swept sizes.
func WriteSpeedupPlot(w io.Writer, sweeps []Sweep) error {
	return writePlot(w, sweeps, "Speedup over CPU baseline", func(r Result) float64 { return r.Speedup })
}

// WriteThroughputPlot renders an SVG line chart of GFLOPS per strategy
// across the swept sizes.
func WriteThroughputPlot(w io.Writer, sweeps []Sweep) error {
	return writePlot(w, sweeps, "Throughput (GFLOPS)", func(r Result) float64 { return r.GFLOPS })
}

func writePlot(w io.Writer, sweeps []Sweep, title string, metric func(Result) float64) error {
	if len(sweeps) == 0 {
		return errors.New("bench: nothing to plot")
	}

	series := make(map[Strategy]*mg.Series, numStrategies)
	all := mg.NewSeries()
	for _, s := range Strategies() {
		series[s] = mg.NewSeries(mg.Titled(s.String()))
	}
	for _, sweep := range sweeps {
		for _, r := range sweep.Results {
			v := mg.MakeValue(float64(sweep.Size), metric(r))
			series[r.Strategy].Add(v)
			all.Add(v)
		}
	}

	allSeries := make([]*mg.Series, 0, numStrategies)
	for _, s := range Strategies() {
		allSeries = append(allSeries, series[s])
	}

	diagram := mg.New(900, 420,
		mg.WithAutorange(mg.XAxis, allSeries...),
		mg.WithAutorange(mg.YAxis, allSeries...),
		mg.WithInset(70),
		mg.WithPadding(2),
		mg.WithColorScheme(90),
	)
	for _, s := range allSeries {
		diagram.Line(s, mg.UsingAxes(mg.XAxis, mg.YAxis), mg.UsingMarker("square"), mg.UsingStrokeWidth(2))
	}
	diagram.Axis(all, mg.XAxis, diagram.ValueTicker('f', 0, 10), false, "Matrix size (M=K=N)")
	diagram.Axis(all, mg.YAxis, diagram.ValueTicker('f', 1, 10), true, title)
	diagram.Frame()
	diagram.Title(title)
	diagram.Legend(mg.BottomLeft)

	if err := diagram.Render(w); err != nil {
		return errors.Wrap(err, "bench: failed to render plot")
	}
	return nil
}
