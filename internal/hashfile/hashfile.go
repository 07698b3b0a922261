package hashfile

import (
	"bufio"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/ykhdr/md5check/internal/hashcrack/digest"
)

var ErrMalformedEntry = errors.New("malformed entry, expected name:hash")

// FixtureWords are hashed into the input file of a self-test run.
var FixtureWords = []string{"dog", "cat", "bird", "fish", "bear", "shark"}

// Entry is one line of an input file. Name is empty in single mode.
type Entry struct {
	Name string
	Hash string
}

// Label is the left side of the output line for a recovered entry.
func (e Entry) Label() string {
	if e.Name != "" {
		return e.Name
	}
	return e.Hash
}

func (e Entry) Format(plaintext string) string {
	return e.Label() + ":" + plaintext
}

func ParseEntry(line string, single bool) (Entry, error) {
	if single {
		return Entry{Hash: strings.TrimSpace(line)}, nil
	}
	name, hash, ok := strings.Cut(line, ":")
	if !ok {
		return Entry{}, errors.Wrapf(ErrMalformedEntry, "line %q", line)
	}
	return Entry{Name: strings.TrimSpace(name), Hash: strings.TrimSpace(hash)}, nil
}

// ReadLines returns the trimmed, non-blank lines of path.
func ReadLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "file %s cannot be read from", path)
	}
	defer func() { _ = f.Close() }()

	var lines []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	if err = sc.Err(); err != nil {
		return nil, errors.Wrapf(err, "scan %s", path)
	}
	return lines, nil
}

func AppendLine(path, line string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return errors.Wrapf(err, "file %s cannot be written to", path)
	}
	if _, err = f.WriteString(line + "\n"); err != nil {
		_ = f.Close()
		return errors.Wrapf(err, "file %s cannot be written to", path)
	}
	return errors.Wrapf(f.Close(), "close %s", path)
}

// WriteFixtures empties outPath and fills inPath with one digest per FixtureWords entry.
func WriteFixtures(inPath, outPath string, fn digest.Function) error {
	if err := os.WriteFile(outPath, nil, 0o644); err != nil {
		return errors.Wrapf(err, "file %s cannot be written to", outPath)
	}
	var sb strings.Builder
	for _, w := range FixtureWords {
		sb.WriteString(fn.Sum(w))
		sb.WriteByte('\n')
	}
	if err := os.WriteFile(inPath, []byte(sb.String()), 0o644); err != nil {
		return errors.Wrapf(err, "file %s cannot be written to", inPath)
	}
	return nil
}
