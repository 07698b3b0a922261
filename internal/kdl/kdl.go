package kdl

import (
	"os"

	"github.com/pkg/errors"
	"github.com/sblinch/kdl-go"
)

// Unmarshal decodes the KDL document at path on top of defaults.
func Unmarshal[T any](path string, defaults T) (T, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return defaults, errors.Wrapf(err, "read %s", path)
	}
	return UnmarshalBytes(data, defaults)
}

func UnmarshalBytes[T any](data []byte, defaults T) (T, error) {
	if err := kdl.Unmarshal(data, &defaults); err != nil {
		var zero T
		return zero, errors.Wrap(err, "decode kdl")
	}
	return defaults, nil
}
