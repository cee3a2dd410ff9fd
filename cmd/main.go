package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand/v2"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/joho/godotenv"

	"github.com/sbilibin2017/gw-transaction-generator/internal/logger"
	"github.com/sbilibin2017/gw-transaction-generator/internal/models"
	"github.com/sbilibin2017/gw-transaction-generator/internal/repositories"
	"github.com/sbilibin2017/gw-transaction-generator/internal/services"
)

// Build info variables, set via ldflags at build time.
var (
	buildVersion = "N/A" // Version of the tool
	buildDate    = "N/A" // Build date
	buildCommit  = "N/A" // Git commit hash
)

// cliFlags holds command-line overrides. Zero values mean "not set".
type cliFlags struct {
	configPath string
	count      int
	output     string
	json       bool
}

// appConfig is the full runtime configuration.
type appConfig struct {
	LogLevel      string
	LogFormat     string
	Count         int
	Seed          uint64
	OutputPath    string
	ProgressEvery int
	WindowEnd     time.Time // zero means wall clock
	JSON          bool
	Generator     models.GeneratorConfig
}

func main() {
	printBuildInfo()
	flags := parseFlags()

	cfg, err := parseConfig(flags.configPath)
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	flags.apply(&cfg)

	if err := run(context.Background(), cfg, os.Stdout); err != nil {
		log.Fatalf("generation failed: %v", err)
	}
}

// printBuildInfo prints the build version, commit hash, and build date.
func printBuildInfo() {
	fmt.Printf("Starting transaction generator version %s, commit %s, build %s\n", buildVersion, buildCommit, buildDate)
}

// parseFlags parses command-line flags.
func parseFlags() cliFlags {
	c := flag.String("c", "config.env", "Path to configuration file")
	n := flag.Int("n", 0, "Number of transactions to generate (overrides TXN_COUNT)")
	o := flag.String("o", "", "Output CSV path, .gz to compress (overrides TXN_OUTPUT_PATH)")
	j := flag.Bool("json", false, "Print the summary as JSON")
	flag.Parse()
	return cliFlags{configPath: *c, count: *n, output: *o, json: *j}
}

func (f cliFlags) apply(cfg *appConfig) {
	if f.count > 0 {
		cfg.Count = f.count
	}
	if f.output != "" {
		cfg.OutputPath = f.output
	}
	if f.json {
		cfg.JSON = true
	}
}

// parseConfig loads environment variables from a file and returns
// logging, dataset and generator configuration.
func parseConfig(path string) (appConfig, error) {
	_ = godotenv.Load(path)

	getEnv := func(key, defaultValue string) string {
		if val, ok := os.LookupEnv(key); ok && val != "" {
			return val
		}
		return defaultValue
	}

	cfg := appConfig{Generator: models.DefaultGeneratorConfig()}
	var err error

	// Logging config
	cfg.LogLevel = getEnv("APP_LOG_LEVEL", "info")
	cfg.LogFormat = getEnv("APP_LOG_FORMAT", logger.FormatJSON)

	// Dataset config
	cfg.OutputPath = getEnv("TXN_OUTPUT_PATH", "data/transactions_stream.csv")
	if cfg.Count, err = strconv.Atoi(getEnv("TXN_COUNT", "10000")); err != nil {
		return appConfig{}, fmt.Errorf("TXN_COUNT: %w", err)
	}
	if cfg.Seed, err = strconv.ParseUint(getEnv("TXN_SEED", "42"), 10, 64); err != nil {
		return appConfig{}, fmt.Errorf("TXN_SEED: %w", err)
	}
	if cfg.ProgressEvery, err = strconv.Atoi(getEnv("TXN_PROGRESS_EVERY", strconv.Itoa(services.DefaultProgressEvery))); err != nil {
		return appConfig{}, fmt.Errorf("TXN_PROGRESS_EVERY: %w", err)
	}
	if v := getEnv("TXN_WINDOW_END", ""); v != "" {
		if cfg.WindowEnd, err = time.Parse(time.RFC3339, v); err != nil {
			return appConfig{}, fmt.Errorf("TXN_WINDOW_END: %w", err)
		}
	}

	// Generator config
	gen := &cfg.Generator
	if gen.LookbackDays, err = strconv.Atoi(getEnv("TXN_LOOKBACK_DAYS", strconv.Itoa(gen.LookbackDays))); err != nil {
		return appConfig{}, fmt.Errorf("TXN_LOOKBACK_DAYS: %w", err)
	}
	if gen.AmountSigma, err = strconv.ParseFloat(getEnv("TXN_AMOUNT_SIGMA", strconv.FormatFloat(gen.AmountSigma, 'f', -1, 64)), 64); err != nil {
		return appConfig{}, fmt.Errorf("TXN_AMOUNT_SIGMA: %w", err)
	}
	if gen.UniqueIDs, err = strconv.ParseBool(getEnv("TXN_UNIQUE_IDS", "false")); err != nil {
		return appConfig{}, fmt.Errorf("TXN_UNIQUE_IDS: %w", err)
	}
	gen.IDScheme = models.IDScheme(getEnv("TXN_ID_SCHEME", string(gen.IDScheme)))
	if v := getEnv("TXN_CITIES", ""); v != "" {
		gen.Cities = splitList(v)
	}
	if v := getEnv("TXN_OPERATORS", ""); v != "" {
		gen.Operators = splitList(v)
	}
	if v := getEnv("TXN_USER_PREFIXES", ""); v != "" {
		gen.UserPrefixes = splitList(v)
	}
	if v := getEnv("TXN_TYPE_WEIGHTS", ""); v != "" {
		if gen.Types, err = applyTypeWeights(gen.Types, v); err != nil {
			return appConfig{}, fmt.Errorf("TXN_TYPE_WEIGHTS: %w", err)
		}
	}
	if v := getEnv("TXN_AMOUNT_RANGES", ""); v != "" {
		if gen.Types, err = applyAmountRanges(gen.Types, v); err != nil {
			return appConfig{}, fmt.Errorf("TXN_AMOUNT_RANGES: %w", err)
		}
	}

	return cfg, nil
}

// splitList splits a comma separated list, dropping surrounding spaces.
func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		out = append(out, strings.TrimSpace(p))
	}
	return out
}

// applyTypeWeights parses "type:weight,..." and returns the listed types in that order.
// Amount bounds are carried over from profiles for types that already exist.
func applyTypeWeights(profiles []models.TypeProfile, spec string) ([]models.TypeProfile, error) {
	known := make(map[models.TransactionType]models.TypeProfile, len(profiles))
	for _, p := range profiles {
		known[p.Type] = p
	}

	var out []models.TypeProfile
	for _, pair := range splitList(spec) {
		name, value, ok := strings.Cut(pair, ":")
		if !ok {
			return nil, fmt.Errorf("expected type:weight, got %q", pair)
		}
		weight, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return nil, fmt.Errorf("weight for %s: %w", name, err)
		}
		typ := models.TransactionType(strings.TrimSpace(name))
		p := known[typ]
		p.Type = typ
		p.Weight = weight
		out = append(out, p)
	}
	return out, nil
}

// applyAmountRanges parses "type:min-max,..." and updates the bounds of configured types.
func applyAmountRanges(profiles []models.TypeProfile, spec string) ([]models.TypeProfile, error) {
	out := make([]models.TypeProfile, len(profiles))
	copy(out, profiles)

	for _, pair := range splitList(spec) {
		name, bounds, ok := strings.Cut(pair, ":")
		if !ok {
			return nil, fmt.Errorf("expected type:min-max, got %q", pair)
		}
		lo, hi, ok := strings.Cut(bounds, "-")
		if !ok {
			return nil, fmt.Errorf("expected min-max for %s, got %q", name, bounds)
		}
		minAmount, err := strconv.ParseInt(strings.TrimSpace(lo), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("min for %s: %w", name, err)
		}
		maxAmount, err := strconv.ParseInt(strings.TrimSpace(hi), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("max for %s: %w", name, err)
		}

		typ := models.TransactionType(strings.TrimSpace(name))
		found := false
		for i := range out {
			if out[i].Type == typ {
				out[i].MinAmount, out[i].MaxAmount = minAmount, maxAmount
				found = true
			}
		}
		if !found {
			return nil, fmt.Errorf("amount range for unconfigured type %q", typ)
		}
	}
	return out, nil
}

// steppingClock returns a clock frozen at start that advances one millisecond per call,
// so transaction ids stay distinct and runs stay reproducible.
func steppingClock(start time.Time) func() time.Time {
	next := start
	return func() time.Time {
		now := next
		next = next.Add(time.Millisecond)
		return now
	}
}

// datasetLocation is the zone timestamps are written in, and must be read back in.
func datasetLocation(cfg appConfig) *time.Location {
	if cfg.WindowEnd.IsZero() {
		return time.Local
	}
	return cfg.WindowEnd.Location()
}

// run initializes the logger, generates the dataset, writes it and prints the summary to out.
func run(ctx context.Context, cfg appConfig, out io.Writer) error {
	if err := logger.Initialize(cfg.LogLevel, cfg.LogFormat); err != nil {
		fmt.Println("failed to initialize logger:", err)
		return err
	}
	defer logger.Log.Sync()
	logger.Log.Infow("Logger initialized", "level", cfg.LogLevel, "format", cfg.LogFormat)

	clock := time.Now
	if !cfg.WindowEnd.IsZero() {
		clock = steppingClock(cfg.WindowEnd)
	}

	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed))
	gen, err := services.NewGenerator(cfg.Generator, rng, services.WithClock(clock))
	if err != nil {
		logger.Log.Errorw("invalid generator config", "error", err)
		return err
	}

	assembler := services.NewBatchAssembler(gen,
		services.WithProgressEvery(cfg.ProgressEvery),
		services.WithProgress(func(done, total int) {
			logger.Log.Infow("transactions generated", "done", done, "total", total)
		}),
	)
	svc := services.NewDatasetService(assembler, repositories.NewCSVRepository(datasetLocation(cfg)))

	logger.Log.Infow("Generating transactions", "count", cfg.Count, "seed", cfg.Seed, "output", cfg.OutputPath)
	summary, size, err := svc.Generate(ctx, cfg.Count, cfg.OutputPath)
	if err != nil {
		return err
	}

	if cfg.JSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(summary); err != nil {
			return fmt.Errorf("encode summary: %w", err)
		}
	} else {
		fmt.Fprint(out, services.HumanSummary(summary))
	}
	fmt.Fprintf(out, "\nDataset saved: %s (%s)\n", cfg.OutputPath, humanize.Bytes(uint64(size)))
	return nil
}
