// Package config loads run configuration.
//
// Precedence: defaults → YAML file → VOCAB_* environment variables. Command-line
// flags are applied by the caller on top of the loaded value.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/teatak/vocab/corpus"
	"github.com/teatak/vocab/vocab"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid")

// Config is the full configuration of a run.
type Config struct {
	Vocab   VocabConfig   `yaml:"vocab"`
	Log     LogConfig     `yaml:"log" env:"LOG"`
	Metrics MetricsConfig `yaml:"metrics" env:"METRICS"`
	Server  ServerConfig  `yaml:"server" env:"SERVER"`
}

// VocabConfig controls counting and ranking.
type VocabConfig struct {
	// Verbose is 0, 1 or 2 and only affects diagnostics.
	Verbose int `yaml:"verbose" env:"VERBOSE"`
	// MaxVocab caps the vocabulary size, 0 means unlimited.
	MaxVocab int64 `yaml:"max_vocab" env:"MAX_VOCAB"`
	// MinCount drops words seen fewer times.
	MinCount       int64  `yaml:"min_count" env:"MIN_COUNT"`
	MaxTokenLength int    `yaml:"max_token_length" env:"MAX_TOKEN_LENGTH"`
	Buckets        int    `yaml:"buckets" env:"BUCKETS"`
	Hash           string `yaml:"hash" env:"HASH"`
	// InitialCapacity and GrowthIncrement size the ranking array.
	InitialCapacity int `yaml:"initial_capacity" env:"INITIAL_CAPACITY"`
	GrowthIncrement int `yaml:"growth_increment" env:"GROWTH_INCREMENT"`
}

// LogConfig configures the zap logger.
type LogConfig struct {
	// debug, info, warn, error
	Level string `yaml:"level" env:"LEVEL"`
	// json, console
	Format      string   `yaml:"format" env:"FORMAT"`
	OutputPaths []string `yaml:"output_paths" env:"OUTPUT_PATHS"`
}

// MetricsConfig controls run statistics export.
type MetricsConfig struct {
	// Textfile is a node-exporter textfile path. Empty disables it.
	Textfile string `yaml:"textfile" env:"TEXTFILE"`
}

// ServerConfig configures vocab_server.
type ServerConfig struct {
	Addr            string        `yaml:"addr" env:"ADDR"`
	VocabFile       string        `yaml:"vocab_file" env:"VOCAB_FILE"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SHUTDOWN_TIMEOUT"`
}

// DefaultConfig returns the defaults of the GloVe vocab_count tool.
func DefaultConfig() *Config {
	return &Config{
		Vocab: VocabConfig{
			Verbose:         2,
			MaxVocab:        0,
			MinCount:        1,
			MaxTokenLength:  corpus.DefaultMaxTokenLength,
			Buckets:         vocab.DefaultBuckets,
			Hash:            vocab.HashBitwise,
			InitialCapacity: vocab.DefaultInitialCapacity,
			GrowthIncrement: vocab.DefaultGrowthIncrement,
		},
		Log: LogConfig{
			Level:       "info",
			Format:      "console",
			OutputPaths: []string{"stderr"},
		},
		Server: ServerConfig{
			Addr:            ":8080",
			VocabFile:       "vocab.txt",
			ShutdownTimeout: 10 * time.Second,
		},
	}
}

// Validate checks the configuration before a run starts.
func (c *Config) Validate() error {
	var errs []string

	v := c.Vocab
	if v.Verbose < 0 || v.Verbose > 2 {
		errs = append(errs, "verbose must be 0, 1 or 2")
	}
	if v.MaxVocab < 0 {
		errs = append(errs, "max_vocab must not be negative")
	}
	if v.MinCount < 0 {
		errs = append(errs, "min_count must not be negative")
	}
	if v.MaxTokenLength <= 0 {
		errs = append(errs, "max_token_length must be positive")
	}
	if v.Buckets <= 0 || int64(v.Buckets) > 1<<31 {
		errs = append(errs, "buckets must be in (0, 2^31]")
	}
	if v.InitialCapacity <= 0 {
		errs = append(errs, "initial_capacity must be positive")
	}
	if v.GrowthIncrement <= 0 {
		errs = append(errs, "growth_increment must be positive")
	}
	if _, err := vocab.HashByName(v.Hash); err != nil {
		errs = append(errs, err.Error())
	}

	srv := c.Server
	if srv.Addr == "" {
		errs = append(errs, "server addr must not be empty")
	}
	if srv.VocabFile == "" {
		errs = append(errs, "server vocab_file must not be empty")
	}
	if srv.ShutdownTimeout <= 0 {
		errs = append(errs, "server shutdown_timeout must be positive")
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Sprintf("unknown log level %q", c.Log.Level))
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		errs = append(errs, fmt.Sprintf("unknown log format %q", c.Log.Format))
	}
	if len(c.Log.OutputPaths) == 0 {
		errs = append(errs, "log output_paths must not be empty")
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(errs, "; "))
	}
	return nil
}
