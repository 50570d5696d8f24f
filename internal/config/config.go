package config

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix is the prefix of every tunable environment variable.
const EnvPrefix = "MONTEPI"

var (
	// ErrMissingArgument is returned when fewer than three positional arguments are given.
	ErrMissingArgument = errors.New("missing argument")
	// ErrInvalidArgument is returned when an argument does not parse as its numeric type.
	ErrInvalidArgument = errors.New("invalid argument")
)

// Config holds the three positional arguments of a run.
// Values are taken as parsed; nothing beyond parse success is checked.
type Config struct {
	Samples   uint32
	Workers   uint8
	Threshold float32
}

// Tunables are optional settings read from MONTEPI_* environment variables.
// None of them changes what the program prints on stdout.
type Tunables struct {
	LogLevel   string  `envconfig:"LOG_LEVEL" default:"warn"`
	LogDev     bool    `envconfig:"LOG_DEV" default:"false"`
	PinWorkers bool    `envconfig:"PIN_WORKERS" default:"false"`
	Seed       uint64  `envconfig:"SEED" default:"0"`
	RateLimit  float64 `envconfig:"RATE_LIMIT" default:"0"`
	RateBurst  int     `envconfig:"RATE_BURST" default:"1"`
	Progress   bool    `envconfig:"PROGRESS" default:"false"`
	Report     bool    `envconfig:"REPORT" default:"false"`
}

// Usage returns the one-line invocation help for program.
func Usage(program string) string {
	return fmt.Sprintf("usage: %s <num_samples> <num_threads> <threshold>", program)
}

// Parse converts the positional arguments (without the program name) into a
// Config. Extra arguments are ignored.
func Parse(args []string) (Config, error) {
	if len(args) < 3 {
		return Config{}, fmt.Errorf("%w: expected 3 arguments, got %d", ErrMissingArgument, len(args))
	}

	samples, err := strconv.ParseUint(args[0], 10, 32)
	if err != nil {
		return Config{}, fmt.Errorf("%w: num_samples %q: %w", ErrInvalidArgument, args[0], err)
	}

	workers, err := strconv.ParseUint(args[1], 10, 8)
	if err != nil {
		return Config{}, fmt.Errorf("%w: num_threads %q: %w", ErrInvalidArgument, args[1], err)
	}

	// Out-of-range thresholds saturate to ±Inf instead of failing.
	threshold, err := strconv.ParseFloat(args[2], 32)
	if err != nil && !(errors.Is(err, strconv.ErrRange) && math.IsInf(threshold, 0)) {
		return Config{}, fmt.Errorf("%w: threshold %q: %w", ErrInvalidArgument, args[2], err)
	}

	return Config{
		Samples:   uint32(samples),
		Workers:   uint8(workers),
		Threshold: float32(threshold),
	}, nil
}

// LoadTunables reads the MONTEPI_* environment variables.
func LoadTunables() (Tunables, error) {
	var t Tunables
	if err := envconfig.Process(EnvPrefix, &t); err != nil {
		return Tunables{}, fmt.Errorf("failed to load tunables: %w", err)
	}
	return t, nil
}
