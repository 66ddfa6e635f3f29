package output

import (
	"fmt"
	"html"
	"math"
	"strings"

	"github.com/vsinha/ptconfig/pkg/application/services/performance"
)

// AccuracyChart renders an accuracy curve as an SVG line chart with turndown
// ratio on the x axis and accuracy in percent of span on the y axis
type AccuracyChart struct {
	Width        int
	Height       int
	MarginLeft   int
	MarginTop    int
	MarginRight  int
	MarginBottom int
	MaxRatio     float64
	MaxAccuracy  float64
}

// NewAccuracyChart sizes a chart for points
func NewAccuracyChart(points []performance.Point) *AccuracyChart {
	ac := &AccuracyChart{
		Width:        800,
		Height:       400,
		MarginLeft:   70,
		MarginTop:    50,
		MarginRight:  30,
		MarginBottom: 50,
		MaxRatio:     1,
		MaxAccuracy:  0.1,
	}

	for _, p := range points {
		ac.MaxRatio = math.Max(ac.MaxRatio, p.Ratio)
		ac.MaxAccuracy = math.Max(ac.MaxAccuracy, p.Accuracy)
	}
	// headroom above the highest point
	ac.MaxAccuracy *= 1.1
	return ac
}

// GenerateSVG creates the SVG document
func (ac *AccuracyChart) GenerateSVG(title string, points []performance.Point) string {
	var svg strings.Builder

	svg.WriteString(fmt.Sprintf(`<svg width="%d" height="%d" xmlns="http://www.w3.org/2000/svg">`, ac.Width, ac.Height))
	svg.WriteString(`<defs><style>`)
	svg.WriteString(`.axis-label { font-family: Arial, sans-serif; font-size: 10px; fill: #666; }`)
	svg.WriteString(`.title { font-family: Arial, sans-serif; font-size: 16px; font-weight: bold; fill: #333; }`)
	svg.WriteString(`.grid-line { stroke: #e0e0e0; stroke-width: 1; }`)
	svg.WriteString(`.curve { fill: none; stroke: #1f77b4; stroke-width: 2; }`)
	svg.WriteString(`</style></defs>`)

	svg.WriteString(fmt.Sprintf(`<rect width="%d" height="%d" fill="white"/>`, ac.Width, ac.Height))
	svg.WriteString(fmt.Sprintf(`<text x="%d" y="30" class="title" text-anchor="middle">%s</text>`,
		ac.Width/2, html.EscapeString(title)))

	if len(points) == 0 {
		svg.WriteString(fmt.Sprintf(`<text x="%d" y="%d" class="axis-label" text-anchor="middle">No data</text>`,
			ac.Width/2, ac.Height/2))
		svg.WriteString(`</svg>`)
		return svg.String()
	}

	ac.drawGrid(&svg)
	ac.drawCurve(&svg, points)

	svg.WriteString(`</svg>`)
	return svg.String()
}

func (ac *AccuracyChart) x(ratio float64) float64 {
	width := float64(ac.Width - ac.MarginLeft - ac.MarginRight)
	span := ac.MaxRatio - 1
	if span <= 0 {
		return float64(ac.MarginLeft)
	}
	return float64(ac.MarginLeft) + (ratio-1)/span*width
}

func (ac *AccuracyChart) y(accuracy float64) float64 {
	height := float64(ac.Height - ac.MarginTop - ac.MarginBottom)
	return float64(ac.Height-ac.MarginBottom) - accuracy/ac.MaxAccuracy*height
}

func (ac *AccuracyChart) drawGrid(svg *strings.Builder) {
	const ticks = 5
	for i := 0; i <= ticks; i++ {
		ratio := 1 + (ac.MaxRatio-1)*float64(i)/ticks
		x := ac.x(ratio)
		svg.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%d" x2="%.1f" y2="%d" class="grid-line"/>`,
			x, ac.MarginTop, x, ac.Height-ac.MarginBottom))
		svg.WriteString(fmt.Sprintf(`<text x="%.1f" y="%d" class="axis-label" text-anchor="middle">%.0f:1</text>`,
			x, ac.Height-ac.MarginBottom+15, ratio))

		accuracy := ac.MaxAccuracy * float64(i) / ticks
		y := ac.y(accuracy)
		svg.WriteString(fmt.Sprintf(`<line x1="%d" y1="%.1f" x2="%d" y2="%.1f" class="grid-line"/>`,
			ac.MarginLeft, y, ac.Width-ac.MarginRight, y))
		svg.WriteString(fmt.Sprintf(`<text x="%d" y="%.1f" class="axis-label" text-anchor="end">%.3f%%</text>`,
			ac.MarginLeft-5, y+3, accuracy))
	}
}

func (ac *AccuracyChart) drawCurve(svg *strings.Builder, points []performance.Point) {
	coords := make([]string, 0, len(points))
	for _, p := range points {
		coords = append(coords, fmt.Sprintf("%.1f,%.1f", ac.x(p.Ratio), ac.y(p.Accuracy)))
	}
	svg.WriteString(fmt.Sprintf(`<polyline points="%s" class="curve"/>`, strings.Join(coords, " ")))
}
