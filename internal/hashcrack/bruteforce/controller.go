package bruteforce

import (
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/ykhdr/md5check/internal/hashcrack/digest"
	"golang.org/x/sync/singleflight"
)

type Option func(*Controller)

func WithLogger(l zerolog.Logger) Option {
	return func(c *Controller) {
		c.l = l
	}
}

// WithStop links searches to a process-wide stop request. Once ch is closed
// a running search halts at its next candidate and reports Stopped.
func WithStop(ch <-chan struct{}) Option {
	return func(c *Controller) {
		c.stop = ch
	}
}

// Controller runs brute-force searches on a background goroutine and
// blocks the caller until the outcome is known.
type Controller struct {
	l     zerolog.Logger
	fn    digest.Function
	stop  <-chan struct{}
	group singleflight.Group
	m     sync.Mutex
}

func NewController(fn digest.Function, opts ...Option) *Controller {
	if fn == nil {
		fn = digest.MD5()
	}
	c := &Controller{
		fn: fn,
		l:  log.Logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.l = c.l.With().
		Str("domain", "hashcrack").
		Str("type", "controller").
		Str("digest", fn.Name()).
		Logger()
	return c
}

// Run searches for a preimage of req.Digest. Concurrent calls with the same
// request share a single search.
func (c *Controller) Run(req Request) Result {
	if req.MaxLength < 1 || req.Alphabet.Len() == 0 {
		c.l.Debug().
			Str("hash", req.Digest).
			Int("max-length", req.MaxLength).
			Int("alphabet-size", req.Alphabet.Len()).
			Msg("nothing to search")
		return Result{}
	}
	v, _, _ := c.group.Do(req.key(), func() (any, error) {
		c.m.Lock()
		defer c.m.Unlock()
		return c.execute(req), nil
	})
	return v.(Result)
}

func (c *Controller) execute(req Request) Result {
	c.l.Debug().
		Str("hash", req.Digest).
		Int("max-length", req.MaxLength).
		Int("alphabet-size", req.Alphabet.Len()).
		Msg("starting search")

	tok := &token{}
	t := newTask(req, c.fn, tok, c.stop)
	done := make(chan Result, 1)
	go func() {
		done <- t.run()
	}()
	res := <-done

	c.l.Debug().
		Str("hash", req.Digest).
		Bool("found", res.Found).
		Uint64("checked", res.Checked).
		Bool("stopped", res.Stopped).
		Bool("cancelled", tok.isCancelled()).
		Msg("search finished")
	return res
}
