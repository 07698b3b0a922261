package strategy

import (
	"context"

	"github.com/rs/zerolog"
)

type emptyStrategy struct {
	l zerolog.Logger
}

func newEmptyStrategy(l zerolog.Logger) *emptyStrategy {
	return &emptyStrategy{
		l: l.With().
			Str("domain", "hashcrack").
			Str("type", "strategy").
			Str("strategy", emptyName).
			Logger(),
	}
}

func (s *emptyStrategy) Name() string {
	return emptyName
}

func (s *emptyStrategy) Crack(_ context.Context, hash string) (CrackResult, error) {
	s.l.Debug().Str("hash", hash).Msg("empty strategy never cracks anything")
	return notFound(), nil
}
