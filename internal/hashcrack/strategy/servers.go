package strategy

import (
	"context"
	"net/http"
	"os"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

const (
	DefaultServerURL = "http://api.md5crack.com/crack/{}/{}"

	// probeHash is md5("dog"); looking it up validates a fresh api key.
	probeHash = "06d80eb0c50b49a509b49f2424e8c805"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Server is a lookup endpoint. URL holds two {} placeholders: api key, then hash.
type Server struct {
	URL    string `json:"url"`
	APIKey string `json:"api_key"`
}

func (s Server) QueryURL(hash string) string {
	u := strings.Replace(s.URL, "{}", s.APIKey, 1)
	return strings.Replace(u, "{}", hash, 1)
}

func LoadServers(path string) ([]Server, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read servers file %s", path)
	}
	var servers []Server
	if err = json.Unmarshal(data, &servers); err != nil {
		return nil, errors.Wrapf(err, "decode servers file %s", path)
	}
	if len(servers) == 0 {
		return nil, errors.Errorf("servers file %s lists no servers", path)
	}
	return servers, nil
}

// CreateServers writes a servers file holding the default server, after
// checking that apiKey is accepted by it.
func CreateServers(ctx context.Context, path, apiKey string, client *http.Client) ([]Server, error) {
	servers := []Server{{URL: DefaultServerURL, APIKey: apiKey}}
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := lookup(ctx, client, servers[0].QueryURL(probeHash))
	if err != nil {
		return nil, errors.Wrap(err, "validate api key")
	}
	if resp.Code == codeInvalidKey {
		return nil, ErrInvalidAPIKey
	}
	data, err := json.Marshal(servers)
	if err != nil {
		return nil, errors.Wrap(err, "encode servers")
	}
	if err = os.WriteFile(path, data, 0o600); err != nil {
		return nil, errors.Wrapf(err, "write servers file %s", path)
	}
	return servers, nil
}

// EnsureServers loads the servers file, creating it first with a key obtained
// from prompt when it does not exist yet.
func EnsureServers(
	ctx context.Context,
	path string,
	client *http.Client,
	prompt func() (string, error),
) ([]Server, error) {
	if _, err := os.Stat(path); err == nil {
		return LoadServers(path)
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, errors.Wrapf(err, "stat servers file %s", path)
	}
	apiKey, err := prompt()
	if err != nil {
		return nil, errors.Wrap(err, "read api key")
	}
	return CreateServers(ctx, path, strings.TrimSpace(apiKey), client)
}
