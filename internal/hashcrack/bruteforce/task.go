package bruteforce

import (
	"sync/atomic"

	"github.com/ykhdr/md5check/internal/hashcrack/digest"
	"github.com/ykhdr/md5check/internal/hashcrack/enumerator"
)

// token flips from unset to cancelled once and never back.
type token struct {
	cancelled atomic.Bool
}

func (t *token) cancel() {
	t.cancelled.Store(true)
}

func (t *token) isCancelled() bool {
	return t.cancelled.Load()
}

type task struct {
	req     Request
	fn      digest.Function
	token   *token
	stop    <-chan struct{}
	checked uint64
}

func newTask(req Request, fn digest.Function, tok *token, stop <-chan struct{}) *task {
	return &task{
		req:   req,
		fn:    fn,
		token: tok,
		stop:  stop,
	}
}

// run checks lengths 1..MaxLength in ascending order and returns on the
// first match, on exhaustion, or once cancellation is observed.
func (t *task) run() Result {
	for length := 1; length <= t.req.MaxLength; length++ {
		for candidate := range enumerator.Enumerate(t.req.Alphabet, length) {
			if t.halted() {
				return Result{Checked: t.checked, Stopped: t.stopRequested()}
			}
			t.checked++
			if digest.Equal(t.fn.Sum(candidate), t.req.Digest) {
				t.token.cancel()
				return Result{Found: true, Plaintext: candidate, Checked: t.checked}
			}
		}
	}
	return Result{Checked: t.checked}
}

func (t *task) halted() bool {
	return t.token.isCancelled() || t.stopRequested()
}

func (t *task) stopRequested() bool {
	select {
	case <-t.stop:
		return true
	default:
		return false
	}
}
