package config

import (
	"currency-converter/domain"
	"currency-converter/rates"
	"flag"
	"fmt"
	"github.com/go-kit/log/level"
	"io"
	"os"
	"strings"
)

// Config settings for the converter, from flags with environment variables as fallback
type Config struct {
	// Base currency amounts are entered in
	Base domain.Currency

	// RatesFile optional JSON file of rates against Base. The built-in table is used when empty.
	RatesFile string

	// LogLevel one of debug, info, warn, error or none
	LogLevel string

	// Allow the go-kit level filter matching LogLevel
	Allow level.Option
}

// Parse reads settings from args, falling back to getenv then defaults.
// Asking for help with -h returns flag.ErrHelp after usage is written to output.
func Parse(args []string, getenv func(string) string, output io.Writer) (Config, error) {
	fs := flag.NewFlagSet("converter", flag.ContinueOnError)
	fs.SetOutput(output)

	var cfg Config
	var base string
	fs.StringVar(&base, "base", envOr(getenv, "CONVERTER_BASE", "USD"), "base currency amounts are entered in")
	fs.StringVar(&cfg.RatesFile, "rates", envOr(getenv, "CONVERTER_RATES", ""), "JSON file of exchange rates, defaults to the built-in table")
	fs.StringVar(&cfg.LogLevel, "log-level", envOr(getenv, "CONVERTER_LOG_LEVEL", "none"), "debug, info, warn, error or none")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	cfg.Base = rates.Normalize(domain.Currency(base))
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)

	if cfg.Base == "" {
		return Config{}, fmt.Errorf("empty base currency")
	}
	allow, err := levelOption(cfg.LogLevel)
	if err != nil {
		return Config{}, err
	}
	cfg.Allow = allow
	return cfg, nil
}

func levelOption(logLevel string) (level.Option, error) {
	switch logLevel {
	case "debug":
		return level.AllowDebug(), nil
	case "info":
		return level.AllowInfo(), nil
	case "warn":
		return level.AllowWarn(), nil
	case "error":
		return level.AllowError(), nil
	case "none", "":
		return level.AllowNone(), nil
	default:
		return nil, fmt.Errorf("unknown log level: %v", logLevel)
	}
}

// Table loads RatesFile, or the built-in table when none is set
func (c Config) Table() (*rates.Table, error) {
	if c.RatesFile == "" {
		table := rates.Default()
		if table.Base() != c.Base {
			return nil, fmt.Errorf("built-in rates are quoted against %v, set a rates file for base [%v]", table.Base(), c.Base)
		}
		return table, nil
	}

	f, err := os.Open(c.RatesFile)
	if err != nil {
		return nil, fmt.Errorf("opening rates file: %w", err)
	}
	defer f.Close()

	table, err := rates.Load(f, c.Base)
	if err != nil {
		return nil, fmt.Errorf("loading rates file [%v]: %w", c.RatesFile, err)
	}
	return table, nil
}

func envOr(getenv func(string) string, key, fallback string) string {
	if v := getenv(key); v != "" {
		return v
	}
	return fallback
}
