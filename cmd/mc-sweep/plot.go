package main

import (
	"fmt"

	plt "github.com/phil-mansfield/pyplot"
)

// plotHistories draws the population history of every scenario on one
// log-scaled figure and saves it to fname.
func plotHistories(results []result, fname string) {
	plt.Reset()
	plt.Figure(plt.FigSize(10, 6))
	for _, r := range results {
		if len(r.history) == 0 {
			continue
		}
		xs := make([]float64, len(r.history))
		ys := make([]float64, len(r.history))
		for i, n := range r.history {
			xs[i] = float64(i * r.historyRes)
			// log axis: keep extinct runs visible at the floor
			ys[i] = float64(max(n, 1))
		}
		plt.Plot(xs, ys, plt.LW(1))
	}
	plt.Title(fmt.Sprintf("population history, %d scenarios", len(results)))
	plt.XLabel("step", plt.FontSize(14))
	plt.YLabel("particles", plt.FontSize(14))
	plt.YScale("log")
	plt.Grid(plt.Axis("y"))
	plt.SaveFig(fname)
	plt.Execute()
}
