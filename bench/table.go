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
	"fmt"

	"github.com/charmbracelet/lipgloss"
	lgtable "github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"

	"github.com/tilemul/tilemul/sme"
)

var (
	headerStyle       = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle         = lipgloss.NewStyle().Padding(0, 1)
	rightAlignedStyle = lipgloss.NewStyle().Align(lipgloss.Right).Padding(0, 1)
)

// Table renders results as a bordered terminal table.
func Table(m, k, n int, results []Result) string {
	if len(results) == 0 {
		return ""
	}
	tbl := lgtable.New().
		Border(lipgloss.RoundedBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == lgtable.HeaderRow {
				return headerStyle
			}
			if col > 0 {
				return rightAlignedStyle
			}
			return cellStyle
		}).
		Headers("Strategy", "Time/op", "GFLOPS", "Speedup", "Tiles", "Max rel err", "OK")

	for _, r := range results {
		ok := "yes"
		if !r.Verified {
			ok = "FAIL"
		}
		tbl.Row(
			r.Strategy.String(),
			r.Elapsed.String(),
			humanize.CommafWithDigits(r.GFLOPS, 2),
			fmt.Sprintf("%.2fx", r.Speedup),
			fmt.Sprintf("%d/%d", r.TilesUsed, sme.NumTiles),
			fmt.Sprintf("%.2e", r.MaxRelErr),
			ok,
		)
	}

	title := fmt.Sprintf("SGEMM %dx%dx%d (%s flops/op)",
		m, k, n, humanize.Comma(int64(results[0].Flops)))
	return title + "\n" + tbl.Render()
}
