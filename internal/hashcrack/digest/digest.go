package digest

import (
	"crypto/md5"
	"encoding/hex"
	"sort"
	"strings"
	"sync"

	"github.com/pkg/errors"
)

const MD5Name = "md5"

var ErrUnknownAlgorithm = errors.New("unknown digest algorithm")

// Function is a one-way hash used to compare candidates against a target.
// Sum must be pure and return lowercase hex.
type Function interface {
	Name() string
	Sum(text string) string
}

type md5Function struct{}

func MD5() Function {
	return md5Function{}
}

func (md5Function) Name() string {
	return MD5Name
}

func (md5Function) Sum(text string) string {
	h := md5.Sum([]byte(text))
	return hex.EncodeToString(h[:])
}

// Equal compares two hex digests ignoring case.
func Equal(a, b string) bool {
	return strings.EqualFold(a, b)
}

var (
	m        sync.RWMutex
	registry = map[string]Function{
		MD5Name: md5Function{},
	}
)

// Register adds fn under its lowercased name, replacing any earlier entry.
func Register(fn Function) {
	m.Lock()
	defer m.Unlock()
	registry[strings.ToLower(fn.Name())] = fn
}

func Get(name string) (Function, error) {
	m.RLock()
	defer m.RUnlock()
	if fn, ok := registry[strings.ToLower(name)]; ok {
		return fn, nil
	}
	return nil, errors.Wrapf(ErrUnknownAlgorithm, "algorithm %q", name)
}

func List() []string {
	m.RLock()
	defer m.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
