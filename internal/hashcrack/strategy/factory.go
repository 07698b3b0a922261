package strategy

import (
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/ykhdr/md5check/internal/hashcrack/bruteforce"
	"github.com/ykhdr/md5check/internal/hashcrack/digest"
	"github.com/ykhdr/md5check/internal/hashcrack/enumerator"
)

type Type int

const (
	EmptyType Type = iota
	BruteforceType
	DictionaryType
	OnlineType
)

const (
	emptyName      = "empty"
	bruteforceName = "bruteforce"
	dictionaryName = "dictionary"
	onlineName     = "online"
)

var ErrMissingDependency = errors.New("strategy dependency is missing")

// Deps carries everything any strategy may need; each strategy reads only its part.
type Deps struct {
	Logger zerolog.Logger
	Digest digest.Function

	Controller *bruteforce.Controller
	Alphabet   enumerator.Alphabet
	MaxLength  int

	DictionaryFile string

	Servers []Server
	Client  *http.Client
	Delay   time.Duration
}

func New(t Type, deps Deps) (Strategy, error) {
	if deps.Digest == nil {
		deps.Digest = digest.MD5()
	}
	switch t {
	case BruteforceType:
		if deps.Alphabet.Len() == 0 {
			deps.Alphabet = enumerator.DefaultAlphabet()
		}
		if deps.Controller == nil {
			deps.Controller = bruteforce.NewController(deps.Digest, bruteforce.WithLogger(deps.Logger))
		}
		return newBruteforceStrategy(deps.Logger, deps.Controller, deps.Alphabet, deps.MaxLength), nil
	case DictionaryType:
		if deps.DictionaryFile == "" {
			return nil, errors.Wrap(ErrMissingDependency, "dictionary file")
		}
		return newDictionaryStrategy(deps.Logger, deps.Digest, deps.DictionaryFile), nil
	case OnlineType:
		if len(deps.Servers) == 0 {
			return nil, errors.Wrap(ErrMissingDependency, "online servers")
		}
		if deps.Client == nil {
			deps.Client = http.DefaultClient
		}
		return newOnlineStrategy(deps.Logger, deps.Client, deps.Servers, deps.Delay), nil
	default:
		return newEmptyStrategy(deps.Logger), nil
	}
}

func ParseType(name string) Type {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case bruteforceName, "brute-force":
		return BruteforceType
	case dictionaryName:
		return DictionaryType
	case onlineName:
		return OnlineType
	default:
		return EmptyType
	}
}

func (t Type) String() string {
	switch t {
	case BruteforceType:
		return bruteforceName
	case DictionaryType:
		return dictionaryName
	case OnlineType:
		return onlineName
	default:
		return emptyName
	}
}

func DefaultName() string {
	return bruteforceName
}
