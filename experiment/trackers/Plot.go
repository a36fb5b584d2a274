package trackers

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// PlotReturns draws the return of each episode along with its moving
// average over window episodes and saves the figure to filename. The
// format of the figure is given by the extension of filename.
func PlotReturns(returns []float64, window int, filename string) error {
	if len(returns) == 0 {
		return fmt.Errorf("plotReturns: no returns to plot")
	}
	if window < 1 {
		return fmt.Errorf("plotReturns: window must be positive "+
			"\n\thave(%v)", window)
	}

	p := plot.New()
	p.Title.Text = "Episodic Return"
	p.X.Label.Text = "Episode"
	p.Y.Label.Text = "Return"
	p.Add(plotter.NewGrid())

	pts := make(plotter.XYs, len(returns))
	for i, r := range returns {
		pts[i].X = float64(i + 1)
		pts[i].Y = r
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return fmt.Errorf("plotReturns: %v", err)
	}
	line.LineStyle.Width = vg.Points(1)
	line.LineStyle.Color = color.Gray{Y: 128}

	avg, err := plotter.NewLine(movingAverage(pts, window))
	if err != nil {
		return fmt.Errorf("plotReturns: %v", err)
	}
	avg.LineStyle.Width = vg.Points(2)
	avg.LineStyle.Color = color.RGBA{R: 204, G: 51, B: 51, A: 255}

	p.Add(line, avg)
	p.Legend.Add("return", line)
	p.Legend.Add(fmt.Sprintf("mean of %v", window), avg)
	p.Legend.Top = true

	if err := p.Save(8*vg.Inch, 5*vg.Inch, filename); err != nil {
		return fmt.Errorf("plotReturns: %w", err)
	}
	return nil
}

// movingAverage returns the trailing mean of pts over at most window
// points
func movingAverage(pts plotter.XYs, window int) plotter.XYs {
	avg := make(plotter.XYs, len(pts))
	sum := 0.0
	for i := range pts {
		sum += pts[i].Y
		if i >= window {
			sum -= pts[i-window].Y
		}
		n := window
		if i+1 < window {
			n = i + 1
		}
		avg[i].X = pts[i].X
		avg[i].Y = sum / float64(n)
	}
	return avg
}
