package csv

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/vsinha/ejector/pkg/domain/entities"
)

var streamHeader = []string{"name", "role", "fluid", "flow", "pressure", "api_gravity"}

// Loader handles loading stream declarations from CSV files
type Loader struct{}

// NewLoader creates a new CSV loader
func NewLoader() *Loader {
	return &Loader{}
}

// LoadStreams loads stream records from a CSV file
func (l *Loader) LoadStreams(filename string) ([]*entities.StreamRecord, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open streams file %s: %w", filename, err)
	}
	defer file.Close()

	return l.ReadStreams(file)
}

// ReadStreams parses stream records from CSV data
func (l *Loader) ReadStreams(r io.Reader) ([]*entities.StreamRecord, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read streams CSV: %w", err)
	}

	if len(records) < 2 {
		return nil, fmt.Errorf("streams CSV must have header and at least one data row")
	}

	header := records[0]
	if !validateHeader(header, streamHeader) {
		return nil, fmt.Errorf("streams CSV header mismatch. Expected: %v, Got: %v", streamHeader, header)
	}

	var streams []*entities.StreamRecord
	for i, record := range records[1:] {
		if len(record) != len(streamHeader) {
			return nil, fmt.Errorf("streams CSV row %d: expected %d columns, got %d", i+2, len(streamHeader), len(record))
		}

		stream, err := parseStream(record)
		if err != nil {
			return nil, fmt.Errorf("streams CSV row %d: %w", i+2, err)
		}

		streams = append(streams, stream)
	}

	return streams, nil
}

// WriteStreams writes stream records to a CSV file with the loader's header
func WriteStreams(filename string, streams []entities.StreamRecord) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create streams file %s: %w", filename, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(streamHeader); err != nil {
		return fmt.Errorf("failed to write streams header: %w", err)
	}

	for _, s := range streams {
		api := ""
		if s.APIGravity != nil {
			api = strconv.FormatFloat(*s.APIGravity, 'f', -1, 64)
		}
		record := []string{
			s.Name,
			s.Role.String(),
			s.Kind.String(),
			strconv.FormatFloat(s.Flow, 'f', -1, 64),
			strconv.FormatFloat(s.Pressure, 'f', -1, 64),
			api,
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write stream %s: %w", s.Name, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// Helper functions for parsing CSV records

func validateHeader(actual, expected []string) bool {
	if len(actual) != len(expected) {
		return false
	}

	for i, col := range expected {
		if strings.ToLower(strings.TrimSpace(actual[i])) != col {
			return false
		}
	}

	return true
}

func parseStream(record []string) (*entities.StreamRecord, error) {
	name := strings.TrimSpace(record[0])

	role, err := entities.ParseStreamRole(record[1])
	if err != nil {
		return nil, err
	}

	kind, err := entities.ParseFluidKind(record[2])
	if err != nil {
		return nil, err
	}

	flow, err := strconv.ParseFloat(strings.TrimSpace(record[3]), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid flow: %s", record[3])
	}

	pressure, err := parsePressure(record[4])
	if err != nil {
		return nil, err
	}

	var apiGravity *float64
	if apiStr := strings.TrimSpace(record[5]); apiStr != "" {
		api, err := strconv.ParseFloat(apiStr, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid api_gravity: %s", record[5])
		}
		apiGravity = &api
	}

	return entities.NewStreamRecord(name, role, kind, flow, pressure, apiGravity)
}

// An empty pressure is an untouched form field and reads as zero
func parsePressure(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	pressure, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid pressure: %s", s)
	}
	return pressure, nil
}
