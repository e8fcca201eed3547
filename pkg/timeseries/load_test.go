package timeseries

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}
	return path
}

func TestLoadJSON(t *testing.T) {
	path := writeTempFile(t, "series.json", `[
		{"timestamp": "2025-01-01", "price": 0.42},
		{"timestamp": "2025-01-02", "price": 0.55},
		{"timestamp": "2025-01-03"}
	]`)

	points, err := LoadJSON(path)
	if err != nil {
		t.Fatalf("LoadJSON() error = %v", err)
	}
	if len(points) != 3 {
		t.Fatalf("LoadJSON() returned %d points, expected 3", len(points))
	}

	values := Values(points)
	expected := []float64{0.42, 0.55, 0}
	for i := range expected {
		if values[i] != expected[i] {
			t.Errorf("value %d = %v, expected %v", i, values[i], expected[i])
		}
	}
}

func TestLoadJSONMissingFile(t *testing.T) {
	_, err := LoadJSON(filepath.Join(t.TempDir(), "absent.json"))
	if err == nil {
		t.Errorf("expected error for missing file")
	}
}

func TestLoadCSV(t *testing.T) {
	path := writeTempFile(t, "series.csv", strings.Join([]string{
		"timestamp,label,price",
		"2025-01-01,up,0.42",
		"2025-01-02,down,0.38",
		"2025-01-03,flat,not-a-number",
	}, "\n"))

	points, err := LoadCSV(path)
	if err != nil {
		t.Fatalf("LoadCSV() error = %v", err)
	}
	if len(points) != 3 {
		t.Fatalf("LoadCSV() returned %d points, expected 3", len(points))
	}

	values := Values(points)
	expected := []float64{0.42, 0.38, 0}
	for i := range expected {
		if values[i] != expected[i] {
			t.Errorf("value %d = %v, expected %v", i, values[i], expected[i])
		}
	}

	if ts, ok := points[0].Timestamp().(string); !ok || ts != "2025-01-01" {
		t.Errorf("Timestamp() = %v, expected 2025-01-01", points[0].Timestamp())
	}
}

func TestLoadCSVNumericTimestampStaysString(t *testing.T) {
	path := writeTempFile(t, "series.csv", strings.Join([]string{
		"timestamp,price",
		"1700000000,2.5",
	}, "\n"))

	points, err := LoadCSV(path)
	if err != nil {
		t.Fatalf("LoadCSV() error = %v", err)
	}
	// The timestamp column never becomes the series value even when numeric.
	if got := points[0].Value(); got != 2.5 {
		t.Errorf("Value() = %v, expected 2.5", got)
	}
}

func TestLoadCSVEmptyFile(t *testing.T) {
	path := writeTempFile(t, "empty.csv", "")
	points, err := LoadCSV(path)
	if err != nil {
		t.Fatalf("LoadCSV() error = %v", err)
	}
	if len(points) != 0 {
		t.Errorf("LoadCSV() returned %d points, expected 0", len(points))
	}
}

func TestLoadDispatchesOnExtension(t *testing.T) {
	jsonPath := writeTempFile(t, "series.json", `[{"value": 1}]`)
	if _, err := Load(jsonPath); err != nil {
		t.Errorf("Load(json) error = %v", err)
	}

	csvPath := writeTempFile(t, "series.csv", "timestamp,value\nt1,1\n")
	if _, err := Load(csvPath); err != nil {
		t.Errorf("Load(csv) error = %v", err)
	}

	txtPath := writeTempFile(t, "series.txt", "1 2 3")
	if _, err := Load(txtPath); err == nil {
		t.Errorf("expected error for unsupported extension")
	}
}
