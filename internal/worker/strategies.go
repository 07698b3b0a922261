package worker

import (
	"github.com/ykhdr/md5check/internal/hashcrack/strategy"
)

// Strategies builds the strategies a worker serves, preferred first.
// Dictionary is offered only when deps names a file, and empty always closes
// the list so requests naming an unknown strategy still get an answer.
// Online lookups need an interactive key bootstrap and are left to the CLI.
func Strategies(deps strategy.Deps, preferred string) ([]strategy.Strategy, error) {
	types := []strategy.Type{strategy.BruteforceType}
	if deps.DictionaryFile != "" {
		types = append(types, strategy.DictionaryType)
		if strategy.ParseType(preferred) == strategy.DictionaryType {
			types[0], types[1] = types[1], types[0]
		}
	}
	types = append(types, strategy.EmptyType)

	out := make([]strategy.Strategy, 0, len(types))
	for _, t := range types {
		s, err := strategy.New(t, deps)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}
