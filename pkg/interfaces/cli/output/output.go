package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vsinha/ejector/pkg/application/dto"
)

// InsufficientInputMessage is shown instead of results when nothing could be sized
const InsufficientInputMessage = "Please enter valid flow and pressure values."

// UndefinedGeometryMessage is shown when the streams average to a density the
// throat cannot be sized from
const UndefinedGeometryMessage = "Cannot size the throat: the streams average to a non-positive density. Check the gas stream pressures."

// Config holds configuration for output generation
type Config struct {
	Format     string
	OutputDir  string
	Verbose    bool
	SizingTime time.Duration
	InputFiles map[string]string
	Out        io.Writer // defaults to stdout
}

func (c Config) out() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

// Metric is one headline figure of a sizing result. Value is null when the
// figure is infinite or NaN.
type Metric struct {
	Label string              `json:"label"`
	Value decimal.NullDecimal `json:"value"`
	Unit  string              `json:"unit"`
}

// Text renders the value at two decimals, or "n/a"
func (m Metric) Text() string {
	if !m.Value.Valid {
		return "n/a"
	}
	return m.Value.Decimal.StringFixed(2)
}

// Display renders the metric value at two decimals with its unit
func (m Metric) Display() string {
	return fmt.Sprintf("%s %s", m.Text(), m.Unit)
}

// Metrics returns the five headline figures rounded to two decimals
func Metrics(result *dto.SizingResult) []Metric {
	return []Metric{
		{Label: "Total Mass Flow", Value: metricValue(result.TotalMassFlow), Unit: "lbm/day"},
		{Label: "Average Density", Value: metricValue(result.AverageDensity), Unit: "lb/ft³"},
		{Label: "Nozzle Throat Diameter", Value: metricValue(result.ThroatDiameter), Unit: "in"},
		{Label: "Mixing Chamber Diameter", Value: metricValue(result.MixingChamberDiameter), Unit: "in"},
		{Label: "Discharge Pressure", Value: metricValue(result.DischargePressure), Unit: "psi"},
	}
}

// metricValue rounds v to two decimals. decimal cannot hold Inf or NaN.
func metricValue(v float64) decimal.NullDecimal {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: round2(v), Valid: true}
}

func round2(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(2)
}

// Generate creates output in the specified format. A result without a finite
// geometry is reported with WarnUndefinedGeometry and nothing is written.
func Generate(result *dto.SizingResult, config Config) error {
	var generate func(*dto.SizingResult, Config) error
	switch config.Format {
	case "text":
		generate = generateTextOutput
	case "json":
		generate = generateJSONOutput
	case "csv":
		generate = generateCSVOutput
	case "svg":
		generate = generateSVGOutput
	case "html":
		generate = generateHTMLOutput
	default:
		return fmt.Errorf("unsupported output format: %s", config.Format)
	}

	if !result.GeometryDefined() {
		WarnUndefinedGeometry(result, config)
		return nil
	}
	return generate(result, config)
}

// Warn reports that the input could not be sized
func Warn(config Config) {
	fmt.Fprintf(config.out(), "⚠️  %s\n", InsufficientInputMessage)
}

// WarnUndefinedGeometry reports a sizing whose throat came out infinite or NaN
func WarnUndefinedGeometry(result *dto.SizingResult, config Config) {
	fmt.Fprintf(config.out(), "⚠️  %s\n", UndefinedGeometryMessage)
	fmt.Fprintf(config.out(), "   Average density: %g lb/ft³ over %d streams\n", result.AverageDensity, result.IncludedCount())
}

// generateTextOutput creates human-readable text output
func generateTextOutput(result *dto.SizingResult, config Config) error {
	w := config.out()

	fmt.Fprintf(w, "✅ Calculation Complete!\n")
	fmt.Fprintf(w, "========================\n\n")

	for _, m := range Metrics(result) {
		fmt.Fprintf(w, "%-25s %s\n", m.Label+":", m.Display())
	}
	fmt.Fprintln(w)

	if config.Verbose {
		fmt.Fprintf(w, "Assumed Velocity: %s ft/s\n", round2(result.AssumedVelocity).StringFixed(2))
		fmt.Fprintf(w, "Throat Area: %s ft²\n", decimal.NewFromFloat(result.ThroatArea).Round(6).StringFixed(6))
		fmt.Fprintf(w, "Sizing Time: %v\n\n", config.SizingTime)
	}

	if len(result.Streams) > 0 {
		fmt.Fprintf(w, "🌊 Stream Contributions:\n")
		fmt.Fprintf(w, "%-15s %-8s %-6s %12s %-7s %12s %16s\n",
			"Stream", "Role", "Fluid", "Flow", "Unit", "Density", "Mass Flow")
		fmt.Fprintf(w, "%-15s %-8s %-6s %12s %-7s %12s %16s\n",
			"---------------", "--------", "------", "------------", "-------", "------------", "----------------")

		for _, s := range result.Streams {
			fmt.Fprintf(w, "%-15s %-8s %-6s %12s %-7s %12s %16s\n",
				s.Name,
				s.Role.String(),
				s.Kind.String(),
				round2(s.Flow).StringFixed(2),
				s.FlowUnit,
				decimal.NewFromFloat(s.Density).Round(4).StringFixed(4),
				round2(s.MassFlow).StringFixed(2))
		}
		fmt.Fprintln(w)
	}

	if len(result.ExcludedStreams) > 0 {
		fmt.Fprintf(w, "⏭️  Ignored streams without positive flow: %v\n\n", result.ExcludedStreams)
	}

	return nil
}

// jsonReport pairs the rounded headline figures with the full-precision result
type jsonReport struct {
	Metrics []Metric          `json:"metrics"`
	Result  *dto.SizingResult `json:"result"`
}

// generateJSONOutput creates JSON output
func generateJSONOutput(result *dto.SizingResult, config Config) error {
	jsonData, err := json.MarshalIndent(jsonReport{Metrics: Metrics(result), Result: result}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if config.OutputDir == "" {
		fmt.Fprintln(config.out(), string(jsonData))
		return nil
	}

	if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	filename := filepath.Join(config.OutputDir, "sizing_result.json")
	if err := os.WriteFile(filename, jsonData, 0644); err != nil {
		return fmt.Errorf("failed to write JSON file: %w", err)
	}

	if config.Verbose {
		fmt.Fprintf(config.out(), "💾 JSON results saved to: %s\n", filename)
	}

	return nil
}

// generateCSVOutput creates CSV output
func generateCSVOutput(result *dto.SizingResult, config Config) error {
	if config.OutputDir == "" {
		return fmt.Errorf("output directory required for CSV format")
	}

	if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	summaryFile := filepath.Join(config.OutputDir, "summary.csv")
	if err := writeSummaryCSV(result, summaryFile); err != nil {
		return fmt.Errorf("failed to write summary CSV: %w", err)
	}

	streamsFile := filepath.Join(config.OutputDir, "stream_contributions.csv")
	if err := writeStreamsCSV(result.Streams, streamsFile); err != nil {
		return fmt.Errorf("failed to write stream contributions CSV: %w", err)
	}

	chartFile := filepath.Join(config.OutputDir, "chart_series.csv")
	if err := writeChartCSV(result.ChartSeries, chartFile); err != nil {
		return fmt.Errorf("failed to write chart series CSV: %w", err)
	}

	if config.Verbose {
		fmt.Fprintf(config.out(), "💾 CSV results saved to:\n")
		fmt.Fprintf(config.out(), "  Summary: %s\n", summaryFile)
		fmt.Fprintf(config.out(), "  Stream Contributions: %s\n", streamsFile)
		fmt.Fprintf(config.out(), "  Chart Series: %s\n", chartFile)
	}

	return nil
}

func writeSummaryCSV(result *dto.SizingResult, filename string) error {
	rows := [][]string{{"metric", "value", "unit"}}
	for _, m := range Metrics(result) {
		rows = append(rows, []string{m.Label, m.Text(), m.Unit})
	}
	return writeCSV(filename, rows)
}

func writeStreamsCSV(streams []dto.StreamContribution, filename string) error {
	rows := [][]string{{"name", "role", "fluid", "flow", "flow_unit", "density", "mass_flow"}}
	for _, s := range streams {
		rows = append(rows, []string{
			s.Name,
			s.Role.String(),
			s.Kind.String(),
			formatFloat(s.Flow),
			s.FlowUnit,
			formatFloat(s.Density),
			formatFloat(s.MassFlow),
		})
	}
	return writeCSV(filename, rows)
}

func writeChartCSV(points []dto.ChartPoint, filename string) error {
	rows := [][]string{{"flow", "velocity", "throat_diameter"}}
	for _, p := range points {
		rows = append(rows, []string{formatFloat(p.Flow), formatFloat(p.Velocity), formatFloat(p.ThroatDiameter)})
	}
	return writeCSV(filename, rows)
}

func writeCSV(filename string, rows [][]string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.WriteAll(rows); err != nil {
		return err
	}
	return file.Close()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// generateSVGOutput writes the flow chart to the output directory, or stdout
func generateSVGOutput(result *dto.SizingResult, config Config) error {
	svg := NewFlowChart().GenerateSVG(result)

	if config.OutputDir == "" {
		fmt.Fprintln(config.out(), svg)
		return nil
	}

	if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	filename := filepath.Join(config.OutputDir, "flow_chart.svg")
	if err := os.WriteFile(filename, []byte(svg), 0644); err != nil {
		return fmt.Errorf("failed to write SVG file: %w", err)
	}

	if config.Verbose {
		fmt.Fprintf(config.out(), "📈 Flow chart saved to: %s\n", filename)
	}

	return nil
}
