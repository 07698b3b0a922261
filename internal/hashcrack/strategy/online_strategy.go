package strategy

import (
	"context"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

const (
	codeQueryLimit = 3
	codeInvalidKey = 4
	codeFound      = 6

	userAgent = "Mozilla/5.0 (Windows NT 6.1) AppleWebKit/537.36 (KHTML, like Gecko) " +
		"Chrome/41.0.2228.0 Safari/537.36"
)

var (
	ErrQueryLimit    = errors.New("query limit of the lookup server is exhausted")
	ErrInvalidAPIKey = errors.New("invalid api key")
)

type lookupResponse struct {
	Code   int    `json:"code"`
	Phrase string `json:"phrase"`
}

type onlineStrategy struct {
	l       zerolog.Logger
	client  *http.Client
	servers []Server
	delay   time.Duration
	last    time.Time
}

func newOnlineStrategy(l zerolog.Logger, client *http.Client, servers []Server, delay time.Duration) *onlineStrategy {
	return &onlineStrategy{
		client:  client,
		servers: servers,
		delay:   delay,
		l: l.With().
			Str("domain", "hashcrack").
			Str("type", "strategy").
			Str("strategy", onlineName).
			Logger(),
	}
}

func (s *onlineStrategy) Name() string {
	return onlineName
}

// Crack asks each server in turn and stops at the first that knows the hash.
// Consecutive calls are spaced by the configured delay.
func (s *onlineStrategy) Crack(ctx context.Context, hash string) (CrackResult, error) {
	if err := s.throttle(ctx); err != nil {
		return nil, err
	}
	defer func() { s.last = time.Now() }()

	for _, srv := range s.servers {
		resp, err := lookup(ctx, s.client, srv.QueryURL(hash))
		if err != nil {
			return nil, errors.Wrapf(err, "lookup %s", hash)
		}
		s.l.Debug().Str("hash", hash).Int("code", resp.Code).Str("server", srv.URL).Msg("lookup answered")
		switch resp.Code {
		case codeFound:
			return found(resp.Phrase), nil
		case codeQueryLimit:
			return nil, ErrQueryLimit
		case codeInvalidKey:
			return nil, ErrInvalidAPIKey
		}
	}
	return notFound(), nil
}

func (s *onlineStrategy) throttle(ctx context.Context) error {
	if s.last.IsZero() || s.delay <= 0 {
		return nil
	}
	wait := s.delay - time.Since(s.last)
	if wait <= 0 {
		return nil
	}
	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func lookup(ctx context.Context, client *http.Client, url string) (*lookupResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(err, "build request")
	}
	req.Header.Set("User-Agent", userAgent)
	resp, err := client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "send request")
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("server responded with status %s", resp.Status)
	}
	var out lookupResponse
	if err = json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, errors.Wrap(err, "decode response")
	}
	return &out, nil
}
