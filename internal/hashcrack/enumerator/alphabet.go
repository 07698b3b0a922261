package enumerator

import (
	"github.com/pkg/errors"
)

const (
	lowercase = "abcdefghijklmnopqrstuvwxyz"
	uppercase = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

var (
	ErrEmptyAlphabet   = errors.New("alphabet is empty")
	ErrDuplicateSymbol = errors.New("alphabet contains duplicate symbol")
)

// Alphabet is an ordered set of symbols. The order defines enumeration order.
type Alphabet struct {
	symbols []rune
}

func NewAlphabet(s string) (Alphabet, error) {
	symbols := []rune(s)
	if len(symbols) == 0 {
		return Alphabet{}, ErrEmptyAlphabet
	}
	seen := make(map[rune]struct{}, len(symbols))
	for _, r := range symbols {
		if _, ok := seen[r]; ok {
			return Alphabet{}, errors.Wrapf(ErrDuplicateSymbol, "symbol %q", r)
		}
		seen[r] = struct{}{}
	}
	return Alphabet{symbols: symbols}, nil
}

func MustAlphabet(s string) Alphabet {
	a, err := NewAlphabet(s)
	if err != nil {
		panic(err)
	}
	return a
}

// DefaultAlphabet is the 52 ASCII letters, lowercase first.
func DefaultAlphabet() Alphabet {
	return MustAlphabet(lowercase + uppercase)
}

func LowercaseAlphabet() Alphabet {
	return MustAlphabet(lowercase)
}

func (a Alphabet) Len() int {
	return len(a.symbols)
}

func (a Alphabet) Symbol(i int) rune {
	return a.symbols[i]
}

func (a Alphabet) String() string {
	return string(a.symbols)
}

// Symbols returns each symbol as its own string, the form used on the wire.
func (a Alphabet) Symbols() []string {
	out := make([]string, len(a.symbols))
	for i, r := range a.symbols {
		out[i] = string(r)
	}
	return out
}
