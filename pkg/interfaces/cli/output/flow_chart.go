package output

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/vsinha/ejector/pkg/application/dto"
)

// FlowChart renders the flow vs velocity and throat diameter line chart
type FlowChart struct {
	Width        int
	Height       int
	MarginLeft   int
	MarginTop    int
	MarginRight  int
	MarginBottom int
	Ticks        int
}

// ChartSeries is one plotted line of the flow chart
type ChartSeries struct {
	Label  string
	Color  string
	Marker string // "circle" or "square"
	Values []float64
}

// NewFlowChart creates a flow chart with default dimensions
func NewFlowChart() *FlowChart {
	return &FlowChart{
		Width:        800,
		Height:       500,
		MarginLeft:   80,
		MarginTop:    60,
		MarginRight:  40,
		MarginBottom: 70,
		Ticks:        5,
	}
}

// Series splits the chart points of a result into the velocity and throat diameter lines
func (fc *FlowChart) Series(result *dto.SizingResult) []ChartSeries {
	velocity := ChartSeries{Label: "Velocity (ft/s)", Color: "#1f77b4", Marker: "circle"}
	diameter := ChartSeries{Label: "Throat Diameter (in)", Color: "#ff7f0e", Marker: "square"}
	for _, p := range result.ChartSeries {
		velocity.Values = append(velocity.Values, p.Velocity)
		diameter.Values = append(diameter.Values, p.ThroatDiameter)
	}
	return []ChartSeries{velocity, diameter}
}

// GenerateSVG creates an SVG representation of the flow chart. Points are
// joined in declaration order.
func (fc *FlowChart) GenerateSVG(result *dto.SizingResult) string {
	if len(result.ChartSeries) == 0 || !result.GeometryDefined() {
		return fc.generateEmptyChart()
	}

	flows := make([]float64, len(result.ChartSeries))
	for i, p := range result.ChartSeries {
		flows[i] = p.Flow
	}
	series := fc.Series(result)

	xMin, xMax := bounds(flows)
	yMin, yMax := 0.0, 0.0
	for _, s := range series {
		_, hi := bounds(s.Values)
		yMax = math.Max(yMax, hi)
	}
	xMin, xMax = pad(xMin, xMax)
	yMax *= 1.1
	if yMax == 0 {
		yMax = 1
	}

	var svg strings.Builder

	svg.WriteString(fmt.Sprintf(`<svg width="%d" height="%d" xmlns="http://www.w3.org/2000/svg">`, fc.Width, fc.Height))
	svg.WriteString(`<defs>`)
	svg.WriteString(`<style>`)
	svg.WriteString(`.axis-label { font-family: Arial, sans-serif; font-size: 12px; fill: #333; }`)
	svg.WriteString(`.tick-label { font-family: Arial, sans-serif; font-size: 10px; fill: #666; }`)
	svg.WriteString(`.title { font-family: Arial, sans-serif; font-size: 16px; font-weight: bold; fill: #333; }`)
	svg.WriteString(`.grid-line { stroke: #e0e0e0; stroke-width: 1; }`)
	svg.WriteString(`.axis-line { stroke: #333; stroke-width: 1; }`)
	svg.WriteString(`</style>`)
	svg.WriteString(`</defs>`)

	svg.WriteString(fmt.Sprintf(`<rect width="%d" height="%d" fill="white"/>`, fc.Width, fc.Height))
	svg.WriteString(fmt.Sprintf(`<text x="%d" y="30" class="title" text-anchor="middle">Flow vs Velocity &amp; Diameter</text>`, fc.Width/2))

	fc.drawAxes(&svg, xMin, xMax, yMin, yMax)

	for _, s := range series {
		fc.drawSeries(&svg, flows, s, xMin, xMax, yMin, yMax)
	}

	fc.drawLegend(&svg, series)

	svg.WriteString(`</svg>`)
	return svg.String()
}

func (fc *FlowChart) plotWidth() float64 {
	return float64(fc.Width - fc.MarginLeft - fc.MarginRight)
}

func (fc *FlowChart) plotHeight() float64 {
	return float64(fc.Height - fc.MarginTop - fc.MarginBottom)
}

func (fc *FlowChart) x(v, lo, hi float64) float64 {
	return float64(fc.MarginLeft) + (v-lo)/(hi-lo)*fc.plotWidth()
}

func (fc *FlowChart) y(v, lo, hi float64) float64 {
	return float64(fc.Height-fc.MarginBottom) - (v-lo)/(hi-lo)*fc.plotHeight()
}

// drawAxes draws the grid, tick labels and axis titles
func (fc *FlowChart) drawAxes(svg *strings.Builder, xMin, xMax, yMin, yMax float64) {
	left := float64(fc.MarginLeft)
	right := float64(fc.Width - fc.MarginRight)
	top := float64(fc.MarginTop)
	bottom := float64(fc.Height - fc.MarginBottom)

	for i := 0; i <= fc.Ticks; i++ {
		frac := float64(i) / float64(fc.Ticks)

		xv := xMin + frac*(xMax-xMin)
		xp := fc.x(xv, xMin, xMax)
		svg.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" class="grid-line"/>`, xp, top, xp, bottom))
		svg.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" class="tick-label" text-anchor="middle">%s</text>`,
			xp, bottom+15, tickLabel(xv)))

		yv := yMin + frac*(yMax-yMin)
		yp := fc.y(yv, yMin, yMax)
		svg.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" class="grid-line"/>`, left, yp, right, yp))
		svg.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" class="tick-label" text-anchor="end">%s</text>`,
			left-8, yp+3, tickLabel(yv)))
	}

	svg.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" class="axis-line"/>`, left, bottom, right, bottom))
	svg.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" class="axis-line"/>`, left, top, left, bottom))

	svg.WriteString(fmt.Sprintf(`<text x="%.1f" y="%d" class="axis-label" text-anchor="middle">Flow</text>`,
		left+fc.plotWidth()/2, fc.Height-25))
	svg.WriteString(fmt.Sprintf(`<text x="20" y="%.1f" class="axis-label" text-anchor="middle" transform="rotate(-90 20 %.1f)">Value</text>`,
		top+fc.plotHeight()/2, top+fc.plotHeight()/2))
}

// drawSeries draws one line with its point markers
func (fc *FlowChart) drawSeries(svg *strings.Builder, flows []float64, s ChartSeries, xMin, xMax, yMin, yMax float64) {
	points := make([]string, len(flows))
	for i := range flows {
		points[i] = fmt.Sprintf("%.1f,%.1f", fc.x(flows[i], xMin, xMax), fc.y(s.Values[i], yMin, yMax))
	}
	svg.WriteString(fmt.Sprintf(`<polyline points="%s" fill="none" stroke="%s" stroke-width="2"/>`,
		strings.Join(points, " "), s.Color))

	for i := range flows {
		px := fc.x(flows[i], xMin, xMax)
		py := fc.y(s.Values[i], yMin, yMax)
		fc.drawMarker(svg, s, px, py)
		svg.WriteString(fmt.Sprintf(`<title>Flow: %s, %s: %s</title>`, tickLabel(flows[i]), s.Label, tickLabel(s.Values[i])))
	}
}

func (fc *FlowChart) drawMarker(svg *strings.Builder, s ChartSeries, px, py float64) {
	switch s.Marker {
	case "square":
		svg.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="8" height="8" fill="%s" class="marker-square"/>`,
			px-4, py-4, s.Color))
	default:
		svg.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="4" fill="%s" class="marker-circle"/>`,
			px, py, s.Color))
	}
}

// drawLegend draws a legend naming each series
func (fc *FlowChart) drawLegend(svg *strings.Builder, series []ChartSeries) {
	legendX := fc.Width - fc.MarginRight - 190
	legendY := fc.MarginTop + 10

	svg.WriteString(fmt.Sprintf(`<rect x="%d" y="%d" width="180" height="%d" fill="white" stroke="#ccc" stroke-width="1"/>`,
		legendX, legendY, 15+len(series)*18))

	for i, s := range series {
		itemY := legendY + 15 + i*18
		svg.WriteString(fmt.Sprintf(`<line x1="%d" y1="%d" x2="%d" y2="%d" stroke="%s" stroke-width="2"/>`,
			legendX+10, itemY, legendX+34, itemY, s.Color))
		fc.drawMarker(svg, s, float64(legendX+22), float64(itemY))
		svg.WriteString(fmt.Sprintf(`<text x="%d" y="%d" class="tick-label">%s</text>`,
			legendX+42, itemY+4, s.Label))
	}
}

// generateEmptyChart creates an empty chart when there is nothing finite to plot
func (fc *FlowChart) generateEmptyChart() string {
	return fmt.Sprintf(`<svg width="%d" height="%d" xmlns="http://www.w3.org/2000/svg">
		<rect width="%d" height="%d" fill="white"/>
		<text x="%d" y="%d" class="title" text-anchor="middle">No Streams To Plot</text>
		<style>
			.title { font-family: Arial, sans-serif; font-size: 16px; fill: #666; }
		</style>
	</svg>`, fc.Width, fc.Height, fc.Width, fc.Height, fc.Width/2, fc.Height/2)
}

func bounds(values []float64) (float64, float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return lo, hi
}

// pad widens a range by 5% on each side, or by one unit when it is degenerate
func pad(lo, hi float64) (float64, float64) {
	span := hi - lo
	if span == 0 {
		return lo - 1, hi + 1
	}
	return lo - span*0.05, hi + span*0.05
}

func tickLabel(v float64) string {
	return strconv.FormatFloat(v, 'g', 4, 64)
}
