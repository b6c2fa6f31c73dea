// Package pipeline builds a ranked vocabulary from a corpus stream.
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/teatak/vocab/config"
	"github.com/teatak/vocab/corpus"
	"github.com/teatak/vocab/dictionary"
	"github.com/teatak/vocab/metrics"
	"github.com/teatak/vocab/vocab"
)

// progressEvery is the token interval between progress lines at verbosity 2.
const progressEvery = 100000

// Stats summarises a run.
type Stats struct {
	RunID          string
	Tokens         int64
	Unique         int
	Emitted        int
	SizeTruncated  bool
	CountTruncated bool
	Duration       time.Duration
}

// Pipeline runs Token Source → Table → Array → Ranker → Emitter for one configuration.
type Pipeline struct {
	cfg      config.VocabConfig
	logger   *zap.Logger
	recorder *metrics.Recorder
}

// New creates a pipeline. cfg must already be validated. logger and recorder may be nil.
func New(cfg config.VocabConfig, logger *zap.Logger, recorder *metrics.Recorder) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{
		cfg:      cfg,
		logger:   logger.With(zap.String("component", "vocab_count")),
		recorder: recorder,
	}
}

// count reads every token of in into a new table.
func (p *Pipeline) count(in io.Reader, log *zap.Logger) (*vocab.Table, error) {
	hash, err := vocab.HashByName(p.cfg.Hash)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", config.ErrInvalid, err)
	}
	table := vocab.NewTable(p.cfg.Buckets, hash)

	scanner := corpus.NewScanner(in, p.cfg.MaxTokenLength)
	for scanner.Scan() {
		if err := table.Observe(scanner.Bytes()); err != nil {
			return nil, fmt.Errorf("observe token %d: %w", table.Tokens()+1, err)
		}
		if p.cfg.Verbose > 1 && table.Tokens()%progressEvery == 0 {
			log.Info("processed tokens", zap.Int64("tokens", table.Tokens()))
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return table, nil
}

// Run counts in and writes the ranked vocabulary to out.
// Nothing is written to out unless the whole input was read.
func (p *Pipeline) Run(in io.Reader, out io.Writer) (Stats, error) {
	start := time.Now()
	stats := Stats{RunID: uuid.NewString()}
	log := p.logger.With(zap.String("run_id", stats.RunID))

	log.Info("building vocabulary")
	table, err := p.count(in, log)
	if err != nil {
		return stats, err
	}
	stats.Tokens = table.Tokens()
	if p.cfg.Verbose > 1 {
		log.Info("processed tokens", zap.Int64("tokens", stats.Tokens))
	}

	entries := vocab.NewBuilder(p.cfg.InitialCapacity, p.cfg.GrowthIncrement).Build(table)
	stats.Unique = len(entries)
	if p.cfg.Verbose > 1 {
		log.Info("counted unique words", zap.Int("unique", stats.Unique))
	}

	res := vocab.Rank(entries, p.cfg.MaxVocab, p.cfg.MinCount)
	stats.SizeTruncated = res.SizeTruncated
	stats.CountTruncated = res.CountTruncated

	if p.cfg.Verbose > 0 {
		if res.CountTruncated {
			log.Info("truncating vocabulary at min count", zap.Int64("min_count", p.cfg.MinCount))
		}
		if res.SizeTruncated {
			log.Info("truncating vocabulary at size", zap.Int64("max_vocab", p.cfg.MaxVocab))
		}
	}

	n, err := dictionary.NewWriter(out).Write(res.Entries)
	stats.Emitted = n
	if err != nil {
		return stats, err
	}

	stats.Duration = time.Since(start)
	log.Info("using vocabulary",
		zap.Int("size", stats.Emitted),
		zap.Duration("elapsed", stats.Duration),
	)

	p.record(stats)
	return stats, nil
}

func (p *Pipeline) record(stats Stats) {
	if p.recorder == nil {
		return
	}
	p.recorder.AddTokens(stats.Tokens)
	p.recorder.SetUnique(stats.Unique)
	p.recorder.SetEmitted(stats.Emitted)
	if stats.SizeTruncated {
		p.recorder.Truncated(metrics.ReasonSize)
	}
	if stats.CountTruncated {
		p.recorder.Truncated(metrics.ReasonMinCount)
	}
	p.recorder.SetDuration(stats.Duration)
}
