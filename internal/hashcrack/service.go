package hashcrack

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/ykhdr/md5check/internal/console"
	"github.com/ykhdr/md5check/internal/hashcrack/digest"
	"github.com/ykhdr/md5check/internal/hashcrack/strategy"
	"github.com/ykhdr/md5check/internal/hashfile"
	"github.com/ykhdr/md5check/internal/store/resultstore"
)

var ErrTestNeedsSingle = errors.New("single mode should also be used while running test mode")

// Options describe one pass over an input file.
type Options struct {
	InFile  string
	OutFile string
	// Single means every input line is a lone hash rather than name:hash.
	Single bool
	// Test overwrites InFile with fixture hashes and empties OutFile first.
	Test bool
}

type Summary struct {
	Total int
	Found int
}

type Option func(*Service)

func WithResultStore(store resultstore.ResultStore) Option {
	return func(s *Service) {
		s.store = store
	}
}

func WithDigest(fn digest.Function) Option {
	return func(s *Service) {
		s.fn = fn
	}
}

// Service feeds input hashes to a strategy one at a time and records what it recovers.
type Service struct {
	l        zerolog.Logger
	strategy strategy.Strategy
	reporter *console.Reporter
	store    resultstore.ResultStore
	fn       digest.Function
}

func NewService(crackStrategy strategy.Strategy, reporter *console.Reporter, opts ...Option) *Service {
	s := &Service{
		strategy: crackStrategy,
		reporter: reporter,
		fn:       digest.MD5(),
		l: log.With().
			Str("domain", "hashcrack").
			Str("strategy", crackStrategy.Name()).
			Logger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) Run(ctx context.Context, opts Options) (Summary, error) {
	var summary Summary
	if opts.Test {
		if !opts.Single {
			return summary, ErrTestNeedsSingle
		}
		s.reporter.Info("Creating test files", opts.InFile+" and "+opts.OutFile)
		if err := hashfile.WriteFixtures(opts.InFile, opts.OutFile, s.fn); err != nil {
			return summary, errors.Wrap(err, "prepare test files")
		}
	}

	lines, err := hashfile.ReadLines(opts.InFile)
	if err != nil {
		return summary, err
	}
	s.reporter.Separator()
	s.reporter.Info("Beginning operation", "")

	for _, line := range lines {
		if err = ctx.Err(); err != nil {
			return summary, err
		}
		entry, err := hashfile.ParseEntry(line, opts.Single)
		if err != nil {
			s.l.Warn().Err(err).Msg("skipping entry")
			continue
		}
		summary.Total++
		res, err := s.strategy.Crack(ctx, entry.Hash)
		if err != nil {
			return summary, errors.Wrapf(err, "crack %s", entry.Hash)
		}
		if !res.Found() {
			s.l.Debug().Str("hash", entry.Hash).Msg("hash not recovered")
			continue
		}
		if err = s.record(ctx, opts.OutFile, entry, res.Plaintext()); err != nil {
			return summary, err
		}
		summary.Found++
	}

	s.reporter.Summary(summary.Found, opts.OutFile)
	s.l.Info().Int("total", summary.Total).Int("found", summary.Found).Msg("run finished")
	return summary, nil
}

func (s *Service) record(ctx context.Context, outFile string, entry hashfile.Entry, plaintext string) error {
	line := entry.Format(plaintext)
	if err := hashfile.AppendLine(outFile, line); err != nil {
		return err
	}
	s.reporter.Found(line)
	if s.store == nil {
		return nil
	}
	err := s.store.Save(ctx, &resultstore.Record{
		Hash:      entry.Hash,
		Plaintext: plaintext,
		Strategy:  s.strategy.Name(),
		FoundAt:   time.Now().UTC(),
	})
	if err != nil {
		s.l.Warn().Err(err).Str("hash", entry.Hash).Msg("failed to store result")
	}
	return nil
}
