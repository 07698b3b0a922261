package config

import (
	"os"

	"github.com/pkg/errors"
	"github.com/ykhdr/md5check/internal/kdl"
)

const DefaultPath = "./config/config.kdl"

// Initialize loads the KDL config at path over defaults and configures the
// global logger from it. An empty path means DefaultPath, which may be absent.
func Initialize[T any](path string, defaults T) (*T, error) {
	optional := false
	if path == "" {
		path = DefaultPath
		optional = true
	}
	cfg, err := kdl.Unmarshal[T](path, defaults)
	if err != nil {
		if !optional || !errors.Is(err, os.ErrNotExist) {
			return nil, errors.Wrap(err, "load config")
		}
		cfg = defaults
	}
	setupLogger(&cfg)
	return &cfg, nil
}
