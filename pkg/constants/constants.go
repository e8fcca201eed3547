// Package constants provides shared constants for the marketmood application.
package constants

// Point record field names
const (
	// TimestampField is the conventional name of the timestamp field in point
	// records; it is never treated as a series value.
	TimestampField = "timestamp"

	// ValueField is the preferred name of the numeric value field in point records
	ValueField = "value"
)

// Analysis constants
const (
	// DefaultMaxLag is the symmetric lag bound used when the caller does not
	// supply one.
	DefaultMaxLag = 10

	// MinSamples is the smallest aligned series length for which correlation
	// is defined; shorter inputs score 0.
	MinSamples = 2

	// PercentageMultiplier scales a correlation magnitude to a percentage
	PercentageMultiplier = 100.0

	// ScorePrecision is the precision for score rounding (2 decimal places)
	ScorePrecision = 100
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the API
	DefaultServerAddress = ":8080"

	// DefaultMaxBodySizeBytes is the default limit on correlate request bodies
	DefaultMaxBodySizeBytes = 4 << 20
)
