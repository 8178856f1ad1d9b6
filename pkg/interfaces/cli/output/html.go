package output

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vsinha/ejector/pkg/application/dto"
)

//go:embed templates/*.html
var templateFS embed.FS

// HTMLReport renders a standalone page with the headline figures, the stream
// table and the inline flow chart
type HTMLReport struct {
	Chart *FlowChart
}

// StreamRow is a display-ready stream contribution
type StreamRow struct {
	Name     string
	Role     string
	Fluid    string
	Flow     string
	Density  string
	MassFlow string
}

// TemplateData contains all data needed for the HTML template
type TemplateData struct {
	Metrics     []Metric
	Streams     []StreamRow
	Excluded    []string
	Chart       template.HTML
	SizingTime  string
	GeneratedAt string
}

// NewHTMLReport creates an HTML report with the default chart layout
func NewHTMLReport() *HTMLReport {
	return &HTMLReport{Chart: NewFlowChart()}
}

// GenerateHTML renders the report page
func (hr *HTMLReport) GenerateHTML(result *dto.SizingResult, config Config) (string, error) {
	data := &TemplateData{
		Metrics:     Metrics(result),
		Excluded:    result.ExcludedStreams,
		Chart:       template.HTML(hr.Chart.GenerateSVG(result)),
		SizingTime:  formatDuration(config.SizingTime),
		GeneratedAt: time.Now().Format("2006-01-02 15:04:05"),
	}
	for _, s := range result.Streams {
		data.Streams = append(data.Streams, StreamRow{
			Name:     s.Name,
			Role:     s.Role.String(),
			Fluid:    s.Kind.String(),
			Flow:     fmt.Sprintf("%s %s", round2(s.Flow).StringFixed(2), s.FlowUnit),
			Density:  decimal.NewFromFloat(s.Density).Round(4).StringFixed(4),
			MassFlow: round2(s.MassFlow).StringFixed(2),
		})
	}

	tmpl, err := template.New("report.html").
		Funcs(template.FuncMap{"join": strings.Join}).
		ParseFS(templateFS, "templates/report.html")
	if err != nil {
		return "", fmt.Errorf("failed to parse template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	return buf.String(), nil
}

// formatDuration formats a time duration into human-readable format
func formatDuration(d time.Duration) string {
	if d < time.Millisecond {
		return "< 1ms"
	}
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return fmt.Sprintf("%.1fs", d.Seconds())
}

// generateHTMLOutput writes report.html to the output directory, or stdout
func generateHTMLOutput(result *dto.SizingResult, config Config) error {
	html, err := NewHTMLReport().GenerateHTML(result, config)
	if err != nil {
		return fmt.Errorf("failed to generate HTML report: %w", err)
	}

	if config.OutputDir == "" {
		fmt.Fprintln(config.out(), html)
		return nil
	}

	if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	filename := filepath.Join(config.OutputDir, "report.html")
	if err := os.WriteFile(filename, []byte(html), 0644); err != nil {
		return fmt.Errorf("failed to write HTML file: %w", err)
	}

	if config.Verbose {
		fmt.Fprintf(config.out(), "🌐 HTML report saved to: %s\n", filename)
	}

	return nil
}
