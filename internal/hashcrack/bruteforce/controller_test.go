package bruteforce

import (
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ykhdr/md5check/internal/hashcrack/digest"
	"github.com/ykhdr/md5check/internal/hashcrack/enumerator"
)

const catMD5 = "d077f244def8a70e5ea758bd8352fcd8"

func TestRunFindsCat(t *testing.T) {
	c := NewController(digest.MD5())
	res := c.Run(Request{
		Digest:    catMD5,
		MaxLength: 4,
		Alphabet:  enumerator.LowercaseAlphabet(),
	})
	require.True(t, res.Found)
	assert.Equal(t, "cat", res.Plaintext)
	// 26 + 676 candidates of length 1-2, then "cat" is index 1371 among length 3
	assert.Equal(t, uint64(26+676+1372), res.Checked)
}

func TestRunUppercaseTarget(t *testing.T) {
	c := NewController(digest.MD5())
	res := c.Run(Request{
		Digest:    strings.ToUpper(catMD5),
		MaxLength: 3,
		Alphabet:  enumerator.LowercaseAlphabet(),
	})
	require.True(t, res.Found)
	assert.Equal(t, "cat", res.Plaintext)
}

func TestRunExhaustsWithoutMatch(t *testing.T) {
	c := NewController(digest.MD5())
	res := c.Run(Request{
		Digest:    catMD5,
		MaxLength: 2,
		Alphabet:  enumerator.LowercaseAlphabet(),
	})
	assert.False(t, res.Found)
	assert.Empty(t, res.Plaintext)
	assert.Equal(t, uint64(702), res.Checked)
}

func TestRunStopsBeforeLongerLengths(t *testing.T) {
	fn := digest.MD5()
	c := NewController(fn)
	res := c.Run(Request{
		Digest:    fn.Sum("ab"),
		MaxLength: 3,
		Alphabet:  enumerator.MustAlphabet("ab"),
	})
	require.True(t, res.Found)
	assert.Equal(t, "ab", res.Plaintext)
	// a, b, aa, ab
	assert.Equal(t, uint64(4), res.Checked)
}

func TestRunBoundaries(t *testing.T) {
	c := NewController(digest.MD5())
	tests := []struct {
		name string
		req  Request
	}{
		{"zero-length", Request{Digest: catMD5, MaxLength: 0, Alphabet: enumerator.LowercaseAlphabet()}},
		{"negative-length", Request{Digest: catMD5, MaxLength: -3, Alphabet: enumerator.LowercaseAlphabet()}},
		{"empty-alphabet", Request{Digest: catMD5, MaxLength: 4}},
		{"empty-string-digest", Request{Digest: digest.MD5().Sum(""), MaxLength: 0, Alphabet: enumerator.LowercaseAlphabet()}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := c.Run(tt.req)
			assert.Equal(t, Result{}, res)
		})
	}
}

func TestRunIdempotent(t *testing.T) {
	c := NewController(digest.MD5())
	req := Request{Digest: catMD5, MaxLength: 3, Alphabet: enumerator.LowercaseAlphabet()}
	first := c.Run(req)
	second := c.Run(req)
	assert.Equal(t, first, second)
}

// pickFunction maps every candidate accepted by match to "hit".
type pickFunction struct {
	match func(string) bool
}

func (pickFunction) Name() string { return "pick" }

func (f pickFunction) Sum(text string) string {
	if f.match(text) {
		return "hit"
	}
	return "miss"
}

func TestRunReturnsFirstInOrder(t *testing.T) {
	fn := pickFunction{match: func(s string) bool {
		// "ba", "bb", "aab", ... all hit; "ba" is first in length-then-odometer order
		return strings.HasPrefix(s, "b") && len(s) >= 2 || strings.HasSuffix(s, "ab") && len(s) == 3
	}}
	c := NewController(fn)
	res := c.Run(Request{Digest: "hit", MaxLength: 3, Alphabet: enumerator.MustAlphabet("ab")})
	require.True(t, res.Found)
	assert.Equal(t, "ba", res.Plaintext)
}

func TestRunHonoursStop(t *testing.T) {
	stop := make(chan struct{})
	close(stop)
	c := NewController(digest.MD5(), WithStop(stop))
	res := c.Run(Request{Digest: catMD5, MaxLength: 4, Alphabet: enumerator.LowercaseAlphabet()})
	assert.False(t, res.Found)
	assert.True(t, res.Stopped)
	assert.Zero(t, res.Checked)
}

func TestRunExhaustedIsNotStopped(t *testing.T) {
	stop := make(chan struct{})
	c := NewController(digest.MD5(), WithStop(stop))
	res := c.Run(Request{Digest: catMD5, MaxLength: 2, Alphabet: enumerator.LowercaseAlphabet()})
	assert.False(t, res.Found)
	assert.False(t, res.Stopped)
	assert.Equal(t, uint64(702), res.Checked)
}

type concurrencyProbe struct {
	active atomic.Int32
	peak   atomic.Int32
}

func (*concurrencyProbe) Name() string { return "probe" }

func (p *concurrencyProbe) Sum(text string) string {
	n := p.active.Add(1)
	for {
		peak := p.peak.Load()
		if n <= peak || p.peak.CompareAndSwap(peak, n) {
			break
		}
	}
	p.active.Add(-1)
	return text
}

func TestRunNeverOverlapsSearches(t *testing.T) {
	probe := &concurrencyProbe{}
	c := NewController(probe)
	targets := []string{"zzz", "zzy", "zzx", "zzw", "zzv", "zzz"}

	var wg sync.WaitGroup
	results := make([]Result, len(targets))
	for i, target := range targets {
		wg.Add(1)
		go func(i int, target string) {
			defer wg.Done()
			results[i] = c.Run(Request{Digest: target, MaxLength: 3, Alphabet: enumerator.LowercaseAlphabet()})
		}(i, target)
	}
	wg.Wait()

	assert.Equal(t, int32(1), probe.peak.Load())
	for i, res := range results {
		require.True(t, res.Found)
		assert.Equal(t, targets[i], res.Plaintext)
	}
}
