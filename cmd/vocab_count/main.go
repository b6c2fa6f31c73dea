// vocab_count builds a ranked unigram vocabulary from a whitespace-tokenized corpus.
//
// Usage:
//
//	vocab_count --min-count 5 --max-vocab 400000 < corpus.txt > vocab.txt
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/teatak/vocab/config"
	"github.com/teatak/vocab/corpus"
	"github.com/teatak/vocab/logging"
	"github.com/teatak/vocab/metrics"
	"github.com/teatak/vocab/pipeline"
	"github.com/teatak/vocab/vocab"
)

var Version = "dev"

type options struct {
	configPath      string
	input           string
	output          string
	verbose         int
	maxVocab        int64
	minCount        int64
	hash            string
	logFile         string
	metricsTextfile string
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "vocab_count",
		Short: "Count unigrams in a corpus",
		Long: `Reads whitespace-separated tokens and writes "word count" lines,
most frequent first, ties in byte order.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Invalid config: %v\n", err)
				return err
			}
			return run(cmd, cfg, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.configPath, "config", "", "Path to a YAML config file")
	f.StringVarP(&opts.input, "input", "i", corpus.Stdin, "Corpus file, gzip and zstd are detected (- for stdin)")
	f.StringVarP(&opts.output, "output", "o", "-", "Vocabulary file (- for stdout)")
	f.IntVarP(&opts.verbose, "verbose", "v", 2, "Diagnostics: 0, 1 or 2")
	f.Int64Var(&opts.maxVocab, "max-vocab", 0, "Upper bound on vocabulary size, 0 for no limit")
	f.Int64Var(&opts.minCount, "min-count", 1, "Lower limit such that words which occur fewer times are discarded")
	f.StringVar(&opts.hash, "hash", vocab.HashBitwise, "Bucket hash: bitwise or xxhash")
	f.StringVar(&opts.logFile, "log-file", "", "Write diagnostics to this file instead of stderr")
	f.StringVar(&opts.metricsTextfile, "metrics-textfile", "", "Write run metrics in node-exporter textfile format")

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "vocab_count %s\n", Version)
		},
	})
	return cmd
}

// loadConfig overlays explicitly set flags on the file and environment config.
func loadConfig(cmd *cobra.Command, opts *options) (*config.Config, error) {
	cfg, err := config.NewLoader().WithConfigPath(opts.configPath).Load()
	if err != nil {
		return nil, err
	}

	f := cmd.Flags()
	if f.Changed("verbose") {
		cfg.Vocab.Verbose = opts.verbose
	}
	if f.Changed("max-vocab") {
		cfg.Vocab.MaxVocab = opts.maxVocab
	}
	if f.Changed("min-count") {
		cfg.Vocab.MinCount = opts.minCount
	}
	if f.Changed("hash") {
		cfg.Vocab.Hash = opts.hash
	}
	if f.Changed("log-file") {
		cfg.Log.OutputPaths = []string{opts.logFile}
	}
	if f.Changed("metrics-textfile") {
		cfg.Metrics.Textfile = opts.metricsTextfile
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func run(cmd *cobra.Command, cfg *config.Config, opts *options) error {
	logger, err := logging.New(cfg.Log)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error opening log file: %v\n", err)
		return err
	}
	defer logger.Sync()

	in, err := openInput(cmd, opts.input)
	if err != nil {
		logFailure(logger, err)
		return err
	}
	defer in.Close()

	out, closeOut, err := openOutput(cmd, opts.output)
	if err != nil {
		logFailure(logger, err)
		return err
	}

	var rec *metrics.Recorder
	if cfg.Metrics.Textfile != "" {
		rec = metrics.NewRecorder()
	}

	_, err = pipeline.New(cfg.Vocab, logger, rec).Run(in, out)
	if cerr := closeOut(); err == nil && cerr != nil {
		err = fmt.Errorf("%w: close output: %v", vocab.ErrIOUnavailable, cerr)
	}
	if err != nil {
		logFailure(logger, err)
		return err
	}

	if rec != nil {
		if err := rec.WriteTextfile(cfg.Metrics.Textfile); err != nil {
			logger.Warn("metrics not written", zap.Error(err))
		}
	}
	return nil
}

func openInput(cmd *cobra.Command, path string) (io.ReadCloser, error) {
	if path == "" || path == corpus.Stdin {
		return corpus.Decode(io.NopCloser(cmd.InOrStdin()))
	}
	return corpus.Open(path)
}

func openOutput(cmd *cobra.Command, path string) (io.Writer, func() error, error) {
	if path == "" || path == "-" {
		return cmd.OutOrStdout(), func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: create output: %v", vocab.ErrIOUnavailable, err)
	}
	return f, f.Close, nil
}

// logFailure logs err with its failure class.
func logFailure(logger *zap.Logger, err error) {
	class := "unknown"
	switch {
	case errors.Is(err, config.ErrInvalid):
		class = "config"
	case errors.Is(err, vocab.ErrIOUnavailable):
		class = "io"
	case errors.Is(err, vocab.ErrResourceExhausted):
		class = "resource"
	}
	logger.Error("vocabulary build failed", zap.String("class", class), zap.Error(err))
}
