package bruteforce

import (
	"strconv"
	"strings"

	"github.com/ykhdr/md5check/internal/hashcrack/enumerator"
)

// Request describes one brute-force search. It is never mutated after creation.
type Request struct {
	Digest    string
	MaxLength int
	Alphabet  enumerator.Alphabet
}

func (r Request) key() string {
	var sb strings.Builder
	sb.WriteString(strings.ToLower(r.Digest))
	sb.WriteByte('|')
	sb.WriteString(strconv.Itoa(r.MaxLength))
	sb.WriteByte('|')
	sb.WriteString(r.Alphabet.String())
	return sb.String()
}

// Result is produced once per Request. Plaintext is set only when Found is true.
type Result struct {
	Found     bool
	Plaintext string
	// Checked is the number of candidates whose digest was compared.
	Checked uint64
	// Stopped is set when a stop request ended the search before the space
	// was exhausted. A stopped result says nothing about the digest.
	Stopped bool
}
