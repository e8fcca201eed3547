// Package output provides utilities for formatting and displaying
// correlation results.
package output

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// PairResult is one scored series pair, ready for display.
type PairResult struct {
	Name    string
	Score   float64 // percentage in [0, 100]
	BestLag int
	Samples int
}

// PrettyFormat outputs a human-readable rather than machine-readable table.
func PrettyFormat(results []PairResult) {
	p := message.NewPrinter(language.English)
	fmt.Printf("Pair                           | Score   | Best Lag | Samples\n")
	fmt.Printf("____                           | _____   | ________ | _______\n")
	for _, result := range results {
		_, _ = p.Printf("%-30s | %6.2f%% | %8d | %7d\n", result.Name, result.Score, result.BestLag, result.Samples)
	}
}

// CsvFormat outputs in comma-separated value format.
func CsvFormat(results []PairResult) {
	fmt.Printf("\"pair\",\"score\",\"bestLag\",\"samples\"\n")
	for _, result := range results {
		fmt.Printf("\"%s\",\"%.2f\",\"%d\",\"%d\"\n", result.Name, result.Score, result.BestLag, result.Samples)
	}
}
