package enumerator

import (
	"iter"
	"math/bits"

	"github.com/pkg/errors"
)

var ErrOverflow = errors.New("candidate space overflows uint64")

// Odometer walks all strings of a fixed length over an alphabet in mixed-radix
// order: the last position turns fastest.
type Odometer struct {
	alphabet Alphabet
	pos      []int
	buf      []rune
	started  bool
	done     bool
}

func NewOdometer(alphabet Alphabet, length int) *Odometer {
	if length < 0 {
		length = 0
	}
	o := &Odometer{
		alphabet: alphabet,
		pos:      make([]int, length),
		buf:      make([]rune, length),
	}
	if alphabet.Len() == 0 && length > 0 {
		o.done = true
	}
	return o
}

// Next advances to the next candidate and reports whether one is available.
func (o *Odometer) Next() bool {
	if o.done {
		return false
	}
	if !o.started {
		o.started = true
		for i := range o.buf {
			o.buf[i] = o.alphabet.Symbol(0)
		}
		return true
	}
	base := o.alphabet.Len()
	for i := len(o.pos) - 1; i >= 0; i-- {
		o.pos[i]++
		if o.pos[i] < base {
			o.buf[i] = o.alphabet.Symbol(o.pos[i])
			return true
		}
		o.pos[i] = 0
		o.buf[i] = o.alphabet.Symbol(0)
	}
	o.done = true
	return false
}

func (o *Odometer) Candidate() string {
	return string(o.buf)
}

// Position returns a copy of the current digit vector.
func (o *Odometer) Position() []int {
	out := make([]int, len(o.pos))
	copy(out, o.pos)
	return out
}

// Enumerate yields every string of exactly length symbols over alphabet.
// Each call returns an independent sequence; stopping early is always safe.
func Enumerate(alphabet Alphabet, length int) iter.Seq[string] {
	return func(yield func(string) bool) {
		o := NewOdometer(alphabet, length)
		for o.Next() {
			if !yield(o.Candidate()) {
				return
			}
		}
	}
}

// Count returns |alphabet|^length.
func Count(alphabet Alphabet, length int) (uint64, error) {
	base := uint64(alphabet.Len())
	total := uint64(1)
	for i := 0; i < length; i++ {
		hi, lo := bits.Mul64(total, base)
		if hi != 0 {
			return 0, ErrOverflow
		}
		total = lo
	}
	return total, nil
}

// Total returns the number of candidates of every length from 1 to maxLength.
func Total(alphabet Alphabet, maxLength int) (uint64, error) {
	var total uint64
	for l := 1; l <= maxLength; l++ {
		c, err := Count(alphabet, l)
		if err != nil {
			return 0, err
		}
		sum, carry := bits.Add64(total, c, 0)
		if carry != 0 {
			return 0, ErrOverflow
		}
		total = sum
	}
	return total, nil
}
