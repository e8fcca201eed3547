package integration

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/marketmood/marketmood/internal/config"
	"github.com/marketmood/marketmood/internal/correlation"
	"github.com/marketmood/marketmood/pkg/output"
	"github.com/marketmood/marketmood/pkg/testutil"
	"github.com/marketmood/marketmood/pkg/timeseries"
)

// writeSeriesFiles builds a market price series (JSON) and a sentiment series
// (CSV) where sentiment trails price by two samples, mirroring the dashboard's
// typical inputs.
func writeSeriesFiles(t *testing.T, dir string) (string, string) {
	t.Helper()

	pulse := []float64{0, 0, 0, 0, 1, 2, 1, 0, 0, 0, 0, 0}
	delayed := []float64{0, 0, 0, 0, 0, 0, 1, 2, 1, 0, 0, 0}

	var jsonRows []string
	for i, v := range pulse {
		jsonRows = append(jsonRows, fmt.Sprintf(`{"timestamp": "2025-01-%02d", "price": %g}`, i+1, v))
	}
	pricePath := filepath.Join(dir, "price.json")
	if err := os.WriteFile(pricePath, []byte("["+strings.Join(jsonRows, ",\n")+"]"), 0644); err != nil {
		t.Fatalf("failed to write price series: %v", err)
	}

	csvRows := []string{"timestamp,mentions"}
	for i, v := range delayed {
		csvRows = append(csvRows, fmt.Sprintf("2025-01-%02d,%g", i+1, v))
	}
	sentimentPath := filepath.Join(dir, "sentiment.csv")
	if err := os.WriteFile(sentimentPath, []byte(strings.Join(csvRows, "\n")), 0644); err != nil {
		t.Fatalf("failed to write sentiment series: %v", err)
	}

	return pricePath, sentimentPath
}

// TestEndToEndPairAnalysis exercises the full pipeline exactly as the CLI
// does: configuration file, series loading from both supported formats, and
// the correlation sweep.
func TestEndToEndPairAnalysis(t *testing.T) {
	dir := t.TempDir()
	pricePath, sentimentPath := writeSeriesFiles(t, dir)

	configPath := filepath.Join(dir, "config.yaml")
	configContent := fmt.Sprintf(`
pairs:
  - name: price-vs-sentiment
    seriesA: %s
    seriesB: %s
analysis:
  maxLag: 5
`, pricePath, sentimentPath)
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	conf, err := config.LoadConfiguration(configPath)
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	if warnings := conf.ValidateConfiguration(); len(warnings) != 0 {
		t.Fatalf("unexpected configuration warnings: %v", warnings)
	}

	results := make([]output.PairResult, 0, len(conf.Pairs))
	for _, pair := range conf.Pairs {
		seriesA, err := timeseries.Load(pair.SeriesA)
		if err != nil {
			t.Fatalf("Load(%s) error = %v", pair.SeriesA, err)
		}
		seriesB, err := timeseries.Load(pair.SeriesB)
		if err != nil {
			t.Fatalf("Load(%s) error = %v", pair.SeriesB, err)
		}
		sweep := correlation.Analyze(seriesA, seriesB, conf.EffectiveMaxLag(pair))
		results = append(results, output.PairResult{
			Name:    pair.Name,
			Score:   sweep.Score(),
			BestLag: sweep.BestLag,
			Samples: sweep.Samples,
		})
	}

	result := testutil.FindPair(results, "price-vs-sentiment")
	if result == nil {
		t.Fatalf("missing result for price-vs-sentiment, got %v", results)
	}
	if result.BestLag != 2 {
		t.Errorf("BestLag = %d, expected 2", result.BestLag)
	}
	if result.Score <= 90 || result.Score >= 100 {
		t.Errorf("Score = %v, expected a value in (90, 100)", result.Score)
	}
	if result.Samples != 12 {
		t.Errorf("Samples = %d, expected 12", result.Samples)
	}
}

// TestEndToEndMatchesDirectEngineCall confirms the file-loading path and the
// in-process path produce identical scores.
func TestEndToEndMatchesDirectEngineCall(t *testing.T) {
	dir := t.TempDir()
	pricePath, sentimentPath := writeSeriesFiles(t, dir)

	seriesA, err := timeseries.Load(pricePath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	seriesB, err := timeseries.Load(sentimentPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	fromFiles := correlation.Score(seriesA, seriesB, 5)

	direct := correlation.Score(
		testutil.PointsFromValues([]float64{0, 0, 0, 0, 1, 2, 1, 0, 0, 0, 0, 0}),
		testutil.PointsFromValues([]float64{0, 0, 0, 0, 0, 0, 1, 2, 1, 0, 0, 0}),
		5,
	)

	if math.Abs(fromFiles-direct) > 1e-9 {
		t.Errorf("file path score %v differs from direct score %v", fromFiles, direct)
	}
}
