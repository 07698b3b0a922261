package enumerator

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect(a Alphabet, length int) []string {
	var out []string
	for c := range Enumerate(a, length) {
		out = append(out, c)
	}
	return out
}

func TestEnumerateOrder(t *testing.T) {
	got := collect(MustAlphabet("ab"), 3)
	assert.Equal(t, []string{"aaa", "aab", "aba", "abb", "baa", "bab", "bba", "bbb"}, got)
}

func TestEnumerateRespectsAlphabetOrder(t *testing.T) {
	got := collect(MustAlphabet("zyx"), 2)
	assert.Equal(t, []string{"zz", "zy", "zx", "yz", "yy", "yx", "xz", "xy", "xx"}, got)
}

func TestEnumerateCountAndDistinct(t *testing.T) {
	tests := []struct {
		name     string
		alphabet string
		length   int
	}{
		{"binary-4", "01", 4},
		{"lower-2", lowercase, 2},
		{"mixed-3", "aZ9", 3},
		{"single-5", "q", 5},
		{"lower-3", lowercase, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := MustAlphabet(tt.alphabet)
			want, err := Count(a, tt.length)
			require.NoError(t, err)

			seen := make(map[string]struct{})
			for c := range Enumerate(a, tt.length) {
				assert.Len(t, []rune(c), tt.length)
				_, dup := seen[c]
				require.False(t, dup, "duplicate candidate %q", c)
				seen[c] = struct{}{}
			}
			assert.Equal(t, want, uint64(len(seen)))
		})
	}
}

func TestEnumerateZeroLength(t *testing.T) {
	assert.Equal(t, []string{""}, collect(MustAlphabet("abc"), 0))
}

func TestEnumerateSingleSymbol(t *testing.T) {
	for l := 1; l <= 4; l++ {
		got := collect(MustAlphabet("x"), l)
		require.Len(t, got, 1)
		assert.Len(t, got[0], l)
	}
}

func TestEnumerateEmptyAlphabet(t *testing.T) {
	assert.Empty(t, collect(Alphabet{}, 2))
}

func TestEnumerateEarlyStop(t *testing.T) {
	a := LowercaseAlphabet()
	var got []string
	for c := range Enumerate(a, 4) {
		got = append(got, c)
		if len(got) == 3 {
			break
		}
	}
	assert.Equal(t, []string{"aaaa", "aaab", "aaac"}, got)

	// a fresh sequence starts from the beginning again
	for c := range Enumerate(a, 4) {
		assert.Equal(t, "aaaa", c)
		break
	}
}

func TestOdometerPosition(t *testing.T) {
	o := NewOdometer(MustAlphabet("abc"), 2)
	require.True(t, o.Next())
	assert.Equal(t, []int{0, 0}, o.Position())
	for i := 0; i < 4; i++ {
		require.True(t, o.Next())
	}
	assert.Equal(t, "bb", o.Candidate())
	assert.Equal(t, []int{1, 1}, o.Position())
}

func TestOdometerExhausts(t *testing.T) {
	o := NewOdometer(MustAlphabet("ab"), 1)
	assert.True(t, o.Next())
	assert.True(t, o.Next())
	assert.False(t, o.Next())
	assert.False(t, o.Next())
}

func TestCountAndTotal(t *testing.T) {
	a := LowercaseAlphabet()
	c, err := Count(a, 2)
	require.NoError(t, err)
	assert.Equal(t, uint64(676), c)

	total, err := Total(a, 2)
	require.NoError(t, err)
	assert.Equal(t, uint64(702), total)

	total, err = Total(a, 0)
	require.NoError(t, err)
	assert.Zero(t, total)

	_, err = Count(DefaultAlphabet(), 20)
	assert.True(t, errors.Is(err, ErrOverflow))
}

func TestNewAlphabet(t *testing.T) {
	_, err := NewAlphabet("")
	assert.True(t, errors.Is(err, ErrEmptyAlphabet))

	_, err = NewAlphabet("abca")
	assert.True(t, errors.Is(err, ErrDuplicateSymbol))

	a, err := NewAlphabet("xyz")
	require.NoError(t, err)
	assert.Equal(t, 3, a.Len())
	assert.Equal(t, []string{"x", "y", "z"}, a.Symbols())
}

func TestDefaultAlphabet(t *testing.T) {
	a := DefaultAlphabet()
	assert.Equal(t, 52, a.Len())
	assert.Equal(t, 'a', a.Symbol(0))
	assert.Equal(t, 'z', a.Symbol(25))
	assert.Equal(t, 'A', a.Symbol(26))
	assert.Equal(t, 'Z', a.Symbol(51))
}
