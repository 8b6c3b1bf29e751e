package report

import (
	"errors"
	"io"
	"sort"
	"strconv"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/pable/go-tf2-metrics/internal/aggregator"
	"github.com/pable/go-tf2-metrics/internal/model"
)

// ErrNoChartData is returned when there is nothing to plot.
var ErrNoChartData = errors.New("no data to plot")

const (
	chartWidth  = 1024
	chartHeight = 512
)

// RenderRatingChart writes a PNG line chart of the rating history of players,
// one line each, x being the player's n-th rated kill or death. All players in
// history are drawn when players is empty.
func RenderRatingChart(w io.Writer, history map[model.PlayerName][]float64, players []model.PlayerName) error {
	if len(players) == 0 {
		for name := range history {
			players = append(players, name)
		}
		sort.Slice(players, func(i, j int) bool { return players[i] < players[j] })
	}

	var series []chart.Series
	for _, name := range players {
		ys := history[name]
		if len(ys) < 2 {
			continue
		}
		xs := make([]float64, len(ys))
		for i := range xs {
			xs[i] = float64(i)
		}
		series = append(series, chart.ContinuousSeries{
			Name:    string(name),
			XValues: xs,
			YValues: ys,
			Style:   chart.Style{StrokeWidth: 2},
		})
	}
	if len(series) == 0 {
		return ErrNoChartData
	}

	graph := chart.Chart{
		Title:  "Rating",
		Width:  chartWidth,
		Height: chartHeight,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Right: 160},
		},
		XAxis:  chart.XAxis{Name: "Event"},
		YAxis:  chart.YAxis{Name: "Rating"},
		Series: series,
	}
	graph.Elements = []chart.Renderable{chart.LegendLeft(&graph)}
	return graph.Render(chart.PNG, w)
}

// RenderStreakChart writes a PNG bar chart of one player's kill runs.
func RenderStreakChart(w io.Writer, player model.PlayerName, runs []int) error {
	best := aggregator.BestStreak(runs)
	if best == 0 {
		return ErrNoChartData
	}
	bars := make([]chart.Value, len(runs))
	for i, r := range runs {
		bars[i] = chart.Value{Value: float64(r), Label: strconv.Itoa(i + 1)}
	}
	barWidth := max(1, min(60, chartWidth/(2*len(runs)+1)))
	graph := chart.BarChart{
		Title:      "Kill streaks: " + string(player),
		Width:      chartWidth,
		Height:     chartHeight,
		BarWidth:   barWidth,
		BarSpacing: barWidth,
		Background: chart.Style{
			Padding: chart.Box{Top: 40},
		},
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: float64(best + 1)},
		},
		Bars: bars,
	}
	return graph.Render(chart.PNG, w)
}
