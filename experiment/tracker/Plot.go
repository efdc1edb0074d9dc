package tracker

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"gonum.org/v1/gonum/stat"
)

// DefaultWindow is the default number of episodes averaged over by
// RollingMean in reward plots
const DefaultWindow = 100

// RollingMean returns the mean of each window of consecutive values in
// data. If data is shorter than window, the window shrinks to the
// length of data.
func RollingMean(data []float64, window int) []float64 {
	if window <= 0 {
		panic("rollingMean: window must be positive")
	}
	if len(data) == 0 {
		return nil
	}
	if window > len(data) {
		window = len(data)
	}

	means := make([]float64, len(data)-window+1)
	for i := range means {
		means[i] = stat.Mean(data[i:i+window], nil)
	}
	return means
}

// Plot renders an HTML line chart of episodic returns and their
// rolling mean to w
func Plot(w io.Writer, title string, returns []float64, window int) error {
	means := RollingMean(returns, window)
	if window > len(returns) {
		window = len(returns)
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithInitializationOpts(opts.Initialization{Theme: "shine"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Episode"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Return"}),
	)

	episodes := make([]string, len(returns))
	for i := range episodes {
		episodes[i] = fmt.Sprintf("%d", i+1)
	}
	line.SetXAxis(episodes)

	returnItems := make([]opts.LineData, len(returns))
	for i, r := range returns {
		returnItems[i] = opts.LineData{Value: r}
	}
	line.AddSeries("Return", returnItems)

	// The mean of a window is plotted at the window's last episode
	meanItems := make([]opts.LineData, len(returns))
	for i := range meanItems {
		meanItems[i] = opts.LineData{Value: "-"}
	}
	for i, m := range means {
		meanItems[i+window-1] = opts.LineData{Value: m}
	}
	line.AddSeries(fmt.Sprintf("Rolling mean (%d)", window), meanItems)

	page := components.NewPage()
	page.AddCharts(line)
	if err := page.Render(w); err != nil {
		return fmt.Errorf("plot: %v", err)
	}
	return nil
}

// PlotFile renders the plot of returns to the HTML file filename,
// creating its directory if needed
func PlotFile(filename, title string, returns []float64, window int) error {
	if dir := filepath.Dir(filename); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("plotFile: %w", err)
		}
	}

	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("plotFile: %w", err)
	}
	defer f.Close()

	if err := Plot(f, title, returns, window); err != nil {
		return fmt.Errorf("plotFile: %w", err)
	}
	return f.Close()
}
