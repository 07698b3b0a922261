package strategy

import "context"

type CrackResult interface {
	Found() bool
	Plaintext() string
}

type crackResult struct {
	found     bool
	plaintext string
}

func (r *crackResult) Found() bool {
	return r.found
}

func (r *crackResult) Plaintext() string {
	return r.plaintext
}

func notFound() CrackResult {
	return &crackResult{}
}

func found(plaintext string) CrackResult {
	return &crackResult{found: true, plaintext: plaintext}
}

// Strategy attempts to recover the plaintext behind a single hex digest.
type Strategy interface {
	Name() string
	Crack(ctx context.Context, hash string) (CrackResult, error)
}
