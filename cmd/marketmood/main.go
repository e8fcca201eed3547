package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/marketmood/marketmood/internal/config"
	"github.com/marketmood/marketmood/internal/correlation"
	"github.com/marketmood/marketmood/internal/server"
	"github.com/marketmood/marketmood/pkg/constants"
	"github.com/marketmood/marketmood/pkg/mathutil"
	"github.com/marketmood/marketmood/pkg/output"
	"github.com/marketmood/marketmood/pkg/timeseries"
	"github.com/marketmood/marketmood/pkg/validation"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// version is stamped at build time via -ldflags.
var version = "dev"

// initializeLogger creates a zap logger based on configuration and CLI override
func initializeLogger(loggingConfig config.LoggingConfig, logLevelOverride string) (*zap.Logger, error) {
	// Determine log level (CLI override takes precedence)
	level := loggingConfig.Level
	if logLevelOverride != "" {
		level = logLevelOverride
	}
	if level == "" {
		level = "info" // Default to info level
	}

	// Parse log level
	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn", "warning":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		return nil, fmt.Errorf("invalid log level: %s", level)
	}

	// Determine output format
	format := loggingConfig.Format
	if format == "" {
		format = "json" // Default to JSON for production
	}

	// Configure encoder
	var zapConfig zap.Config
	switch format {
	case "console":
		zapConfig = zap.NewDevelopmentConfig()
		zapConfig.Level = zap.NewAtomicLevelAt(zapLevel)
	case "json":
		zapConfig = zap.NewProductionConfig()
		zapConfig.Level = zap.NewAtomicLevelAt(zapLevel)
	default:
		return nil, fmt.Errorf("invalid log format: %s", format)
	}

	// Configure output file if specified
	if loggingConfig.OutputFile != "" {
		// Ensure the directory exists
		if dir := filepath.Dir(loggingConfig.OutputFile); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create log directory %s: %v", dir, err)
			}
		}

		// Test if we can create/write to the file
		if file, err := os.OpenFile(loggingConfig.OutputFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644); err != nil {
			return nil, fmt.Errorf("failed to open log file %s: %v", loggingConfig.OutputFile, err)
		} else {
			_ = file.Close()
		}

		zapConfig.OutputPaths = []string{loggingConfig.OutputFile}
		zapConfig.ErrorOutputPaths = []string{loggingConfig.OutputFile}
	}

	return zapConfig.Build()
}

func main() {
	configLocation := flag.String("config", constants.DefaultConfigFile, "path to configuration file")
	outputFormatFlag := flag.String("output-format", "", "type of output override: pretty, csv")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	maxLagFlag := flag.Int("max-lag", -1, "lag bound override for all pairs (non-negative)")
	seriesAFlag := flag.String("series-a", "", "path to the first series file for a one-off analysis")
	seriesBFlag := flag.String("series-b", "", "path to the second series file for a one-off analysis")
	serve := flag.Bool("serve", false, "run the HTTP API server instead of a batch analysis")
	serverConfigLocation := flag.String("server-config", constants.DefaultServerConfigFile, "path to server configuration file")
	flag.Parse()

	if *serve {
		runServer(*serverConfigLocation, *logLevel)
		return
	}

	conf, err := resolveConfiguration(*configLocation, *seriesAFlag, *seriesBFlag)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		return
	}

	// Initialize logging based on config and CLI override
	logger, err := initializeLogger(conf.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		return
	}
	defer func() {
		_ = logger.Sync()
	}()

	// Determine output format (CLI override takes precedence over config)
	outputFormat := conf.Output.Format
	if *outputFormatFlag != "" {
		outputFormat = *outputFormatFlag
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty // Default to pretty format
	}

	err = validation.ValidateOutputFormat(outputFormat)
	if err != nil {
		logger.Fatal(err.Error(),
			zap.String("op", "main"),
		)
	}

	if *maxLagFlag >= 0 {
		if err := validation.ValidateMaxLag(*maxLagFlag); err != nil {
			logger.Fatal(err.Error(),
				zap.String("op", "main"),
			)
		}
	}

	// Validate configuration and display any warnings
	warnings := conf.ValidateConfiguration()
	for _, warning := range warnings {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}

	results, err := analyzePairs(logger, conf, *maxLagFlag)
	if err != nil {
		logger.Fatal("failed to analyze series pairs",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	// Handle output.
	switch outputFormat {
	case constants.OutputFormatPretty:
		output.PrettyFormat(results)
	case constants.OutputFormatCSV:
		output.CsvFormat(results)
	}
}

// resolveConfiguration builds the effective configuration: an ad-hoc pair
// from the series flags when both are given, otherwise the config file.
func resolveConfiguration(configLocation, seriesA, seriesB string) (*config.Configuration, error) {
	if seriesA != "" || seriesB != "" {
		if seriesA == "" || seriesB == "" {
			return nil, fmt.Errorf("both -series-a and -series-b are required for a one-off analysis")
		}
		return &config.Configuration{
			Pairs: []config.Pair{
				{
					Name:    fmt.Sprintf("%s vs %s", filepath.Base(seriesA), filepath.Base(seriesB)),
					SeriesA: seriesA,
					SeriesB: seriesB,
				},
			},
		}, nil
	}
	return config.LoadConfiguration(configLocation)
}

// analyzePairs scores every configured pair and collects the display rows.
func analyzePairs(logger *zap.Logger, conf *config.Configuration, maxLagOverride int) ([]output.PairResult, error) {
	results := make([]output.PairResult, 0, len(conf.Pairs))
	for _, pair := range conf.Pairs {
		seriesA, err := timeseries.Load(pair.SeriesA)
		if err != nil {
			return nil, err
		}
		seriesB, err := timeseries.Load(pair.SeriesB)
		if err != nil {
			return nil, err
		}

		maxLag := conf.EffectiveMaxLag(pair)
		if maxLagOverride >= 0 {
			maxLag = maxLagOverride
		}

		sweep := correlation.Analyze(seriesA, seriesB, maxLag)
		logger.Debug("scored series pair",
			zap.String("op", "main.analyzePairs"),
			zap.String("pair", pair.Name),
			zap.Int("maxLag", maxLag),
			zap.Int("bestLag", sweep.BestLag),
			zap.Float64("score", sweep.Score()),
		)

		results = append(results, output.PairResult{
			Name:    pair.Name,
			Score:   mathutil.RoundScore(sweep.Score()),
			BestLag: sweep.BestLag,
			Samples: sweep.Samples,
		})
	}
	return results, nil
}

// runServer starts the HTTP API with its own configuration file.
func runServer(configLocation, logLevelOverride string) {
	serverConf, err := server.LoadConfig(configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load server configuration at %s\", \"error\": \"%v\"}\n", configLocation, err)
		return
	}

	logger, err := initializeLogger(serverConf.Logging, logLevelOverride)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		return
	}
	defer func() {
		_ = logger.Sync()
	}()

	handler := server.NewHandler(logger, serverConf.BodySizeBytes(), version)
	logger.Info("starting correlation API server",
		zap.String("op", "main.runServer"),
		zap.String("address", serverConf.Address),
		zap.String("version", version),
	)
	if err := http.ListenAndServe(serverConf.Address, handler); err != nil {
		logger.Fatal("server exited",
			zap.String("op", "main.runServer"),
			zap.Error(err),
		)
	}
}
