package output

import (
	"strings"
	"testing"

	"github.com/vsinha/ejector/pkg/application/dto"
)

func TestFlowChart_GenerateSVG(t *testing.T) {
	svg := NewFlowChart().GenerateSVG(sampleResult())

	if !strings.HasPrefix(svg, "<svg") || !strings.HasSuffix(svg, "</svg>") {
		t.Fatal("Expected a complete SVG document")
	}

	checks := map[string]int{
		"Flow vs Velocity &amp; Diameter": 1,
		"<polyline":                       2,
		`class="marker-circle"`:           3, // two points plus legend
		`class="marker-square"`:           3,
		"Velocity (ft/s)":                 3,
		"Throat Diameter (in)":            3,
	}
	for fragment, want := range checks {
		if got := strings.Count(svg, fragment); got != want {
			t.Errorf("Expected %d occurrences of %q, got %d", want, fragment, got)
		}
	}
}

func TestFlowChart_Series(t *testing.T) {
	series := NewFlowChart().Series(sampleResult())

	if len(series) != 2 {
		t.Fatalf("Expected 2 series, got %d", len(series))
	}
	if series[0].Marker != "circle" || series[1].Marker != "square" {
		t.Errorf("Unexpected markers: %s, %s", series[0].Marker, series[1].Marker)
	}
	for _, v := range series[0].Values {
		if v != 125 {
			t.Errorf("Expected flat velocity series at 125, got %v", v)
		}
	}
}

func TestFlowChart_SinglePoint(t *testing.T) {
	result := &dto.SizingResult{
		ChartSeries: []dto.ChartPoint{{Flow: 10, Velocity: 125, ThroatDiameter: 0.1}},
	}
	svg := NewFlowChart().GenerateSVG(result)

	if strings.Contains(svg, "NaN") || strings.Contains(svg, "Inf") {
		t.Error("Degenerate flow range produced invalid coordinates")
	}
}

func TestFlowChart_Empty(t *testing.T) {
	svg := NewFlowChart().GenerateSVG(&dto.SizingResult{})
	if !strings.Contains(svg, "No Streams To Plot") {
		t.Error("Expected empty chart placeholder")
	}
}

func TestFlowChart_InfiniteThroat(t *testing.T) {
	svg := NewFlowChart().GenerateSVG(zeroPressureResult())
	if !strings.Contains(svg, "No Streams To Plot") {
		t.Error("Expected placeholder for an infinite throat")
	}
	if strings.Contains(svg, "NaN") || strings.Contains(svg, "Inf") {
		t.Error("Infinite throat leaked into coordinates")
	}
}
