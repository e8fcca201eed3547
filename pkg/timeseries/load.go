package timeseries

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/marketmood/marketmood/pkg/constants"
)

// Load reads a series of points from a file, dispatching on the extension
// (.json or .csv).
func Load(path string) ([]Point, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return LoadJSON(path)
	case ".csv":
		return LoadCSV(path)
	default:
		return nil, fmt.Errorf("unsupported series file extension on %s; expected .json or .csv", path)
	}
}

// LoadJSON reads a series from a JSON file containing an array of point
// objects. Field order within each object is preserved.
func LoadJSON(path string) ([]Point, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read series file %s: %w", path, err)
	}
	var points []Point
	if err := json.Unmarshal(data, &points); err != nil {
		return nil, fmt.Errorf("failed to parse series file %s: %w", path, err)
	}
	return points, nil
}

// LoadCSV reads a series from a CSV file. The header row names the fields;
// a column named "timestamp" keeps its cell as a string, every other cell
// that parses as a number becomes a numeric field, and anything else stays a
// string. Column order becomes field order.
func LoadCSV(path string) ([]Point, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open series file %s: %w", path, err)
	}
	defer func() {
		_ = file.Close()
	}()

	points, err := LoadCSVFromReader(file)
	if err != nil {
		return nil, fmt.Errorf("failed to parse series file %s: %w", path, err)
	}
	return points, nil
}

// LoadCSVFromReader reads CSV-formatted points from an io.Reader.
func LoadCSVFromReader(r io.Reader) ([]Point, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, err
	}
	for i, h := range header {
		header[i] = strings.TrimSpace(h)
	}

	var points []Point
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		fields := make([]Field, 0, len(record))
		for i, cell := range record {
			if i >= len(header) {
				break
			}
			fields = append(fields, Field{Name: header[i], Value: parseCell(header[i], cell)})
		}
		points = append(points, Point{Fields: fields})
	}
	return points, nil
}

// parseCell converts a CSV cell into a typed field value. The timestamp
// column is never numeric even when it contains digits.
func parseCell(name, cell string) interface{} {
	cell = strings.TrimSpace(cell)
	if name == constants.TimestampField {
		return cell
	}
	if v, err := strconv.ParseFloat(cell, 64); err == nil {
		return v
	}
	return cell
}
