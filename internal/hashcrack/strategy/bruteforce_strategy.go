package strategy

import (
	"context"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/ykhdr/md5check/internal/hashcrack/bruteforce"
	"github.com/ykhdr/md5check/internal/hashcrack/enumerator"
)

// ErrStopped is returned when a search was interrupted before it could
// either find the preimage or exhaust the search space.
var ErrStopped = errors.New("search stopped before completion")

type bruteforceStrategy struct {
	l          zerolog.Logger
	controller *bruteforce.Controller
	alphabet   enumerator.Alphabet
	maxLength  int
}

func newBruteforceStrategy(
	l zerolog.Logger,
	controller *bruteforce.Controller,
	alphabet enumerator.Alphabet,
	maxLength int,
) *bruteforceStrategy {
	return &bruteforceStrategy{
		controller: controller,
		alphabet:   alphabet,
		maxLength:  maxLength,
		l: l.With().
			Str("domain", "hashcrack").
			Str("type", "strategy").
			Str("strategy", bruteforceName).
			Logger(),
	}
}

func (s *bruteforceStrategy) Name() string {
	return bruteforceName
}

// Crack ignores ctx: the search is stopped only through the controller's stop channel.
func (s *bruteforceStrategy) Crack(_ context.Context, hash string) (CrackResult, error) {
	return s.crack(hash, s.maxLength, s.alphabet)
}

// CrackWith runs a search with per-request bounds. A zero maxLength or an
// empty alphabet falls back to the configured value.
func (s *bruteforceStrategy) CrackWith(hash string, maxLength int, alphabet enumerator.Alphabet) (CrackResult, error) {
	if maxLength == 0 {
		maxLength = s.maxLength
	}
	if alphabet.Len() == 0 {
		alphabet = s.alphabet
	}
	return s.crack(hash, maxLength, alphabet)
}

func (s *bruteforceStrategy) crack(hash string, maxLength int, alphabet enumerator.Alphabet) (CrackResult, error) {
	event := s.l.Debug().
		Str("hash", hash).
		Int("max-length", maxLength).
		Str("alphabet", alphabet.String())
	if total, err := enumerator.Total(alphabet, maxLength); err == nil {
		event = event.Uint64("space", total)
	}
	event.Msg("cracking hash")
	res := s.controller.Run(bruteforce.Request{
		Digest:    hash,
		MaxLength: maxLength,
		Alphabet:  alphabet,
	})
	if res.Stopped {
		return nil, errors.Wrapf(ErrStopped, "after %d candidates", res.Checked)
	}
	if !res.Found {
		return notFound(), nil
	}
	s.l.Debug().Str("hash", hash).Uint64("checked", res.Checked).Msgf("found word: %s", res.Plaintext)
	return found(res.Plaintext), nil
}

// Bounded is implemented by strategies whose search space can be set per request.
type Bounded interface {
	CrackWith(hash string, maxLength int, alphabet enumerator.Alphabet) (CrackResult, error)
}
