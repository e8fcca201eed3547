// Package validation provides common validation utilities.
package validation

import (
	"fmt"

	"github.com/marketmood/marketmood/pkg/constants"
)

// ValidateOutputFormat checks if the output format is one of the supported formats.
func ValidateOutputFormat(format string) error {
	if format != constants.OutputFormatPretty && format != constants.OutputFormatCSV {
		return fmt.Errorf("expected output format of %s or %s, got %s",
			constants.OutputFormatPretty, constants.OutputFormatCSV, format)
	}
	return nil
}

// ValidateMaxLag checks that a lag bound is usable by the sweep.
func ValidateMaxLag(maxLag int) error {
	if maxLag < 0 {
		return fmt.Errorf("maxLag must be a non-negative integer, got %d", maxLag)
	}
	return nil
}
