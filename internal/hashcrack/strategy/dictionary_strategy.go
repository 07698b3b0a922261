package strategy

import (
	"bufio"
	"context"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/ykhdr/md5check/internal/hashcrack/digest"
)

type dictionaryStrategy struct {
	l    zerolog.Logger
	fn   digest.Function
	path string
}

func newDictionaryStrategy(l zerolog.Logger, fn digest.Function, path string) *dictionaryStrategy {
	return &dictionaryStrategy{
		fn:   fn,
		path: path,
		l: l.With().
			Str("domain", "hashcrack").
			Str("type", "strategy").
			Str("strategy", dictionaryName).
			Str("dictionary", path).
			Logger(),
	}
}

func (s *dictionaryStrategy) Name() string {
	return dictionaryName
}

// Crack scans the dictionary from the top for every hash.
func (s *dictionaryStrategy) Crack(ctx context.Context, hash string) (CrackResult, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, errors.Wrapf(err, "open dictionary %s", s.path)
	}
	defer func() { _ = f.Close() }()

	sc := bufio.NewScanner(f)
	var lines int
	for sc.Scan() {
		if err = ctx.Err(); err != nil {
			return nil, err
		}
		lines++
		word := strings.TrimRight(sc.Text(), " \t\r")
		if digest.Equal(s.fn.Sum(word), hash) {
			s.l.Debug().Str("hash", hash).Int("line", lines).Msgf("found word: %s", word)
			return found(word), nil
		}
	}
	if err = sc.Err(); err != nil {
		return nil, errors.Wrapf(err, "scan dictionary %s", s.path)
	}
	s.l.Debug().Str("hash", hash).Int("lines", lines).Msg("dictionary exhausted")
	return notFound(), nil
}
