package summary

import (
	"bytes"
	"context"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/jcallahan/pocketledger/internal/models"
)

// RenderSpendChart renders a PNG bar chart of total monthly spend for the
// last `months` calendar months. Returns raw PNG bytes.
func (s *Service) RenderSpendChart(ctx context.Context, months int) ([]byte, error) {
	if months < 2 {
		return nil, fmt.Errorf("need at least 2 months, got %d", months)
	}
	if months > 24 {
		months = 24
	}

	points, err := s.monthlySpendSeries(ctx, months)
	if err != nil {
		return nil, fmt.Errorf("failed to render spend chart: %w", err)
	}

	return renderSpendBars(points)
}

func renderSpendBars(points []models.MonthSpendPoint) ([]byte, error) {
	bars := make([]chart.Value, len(points))
	for i, p := range points {
		bars[i] = chart.Value{
			Label: p.Month.Format("Jan 06"),
			Value: p.Spent.InexactFloat64(),
			Style: chart.Style{
				FillColor:   drawing.ColorFromHex("2563eb"), // blue-600
				StrokeColor: drawing.ColorFromHex("2563eb"),
			},
		}
	}

	graph := chart.BarChart{
		Title:    "Monthly Spend",
		Width:    900,
		Height:   400,
		BarWidth: 40,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 20, Bottom: 10},
		},
		YAxis: chart.YAxis{
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("%.0f", f)
				}
				return ""
			},
		},
		Bars: bars,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("chart render failed: %w", err)
	}

	return buf.Bytes(), nil
}
