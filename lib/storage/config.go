package storage

import (
	"net/url"
	"path/filepath"

	"boscoin.io/tally/lib/errors"
)

// Config is parsed from the storage uri.
//   - `file:///var/lib/tally/db`: leveldb on the given directory
//   - `memory://`: in-memory leveldb, mostly for testing
type Config struct {
	Scheme string
	Path   string
}

func NewConfigFromString(s string) (*Config, error) {
	parsed, err := url.Parse(s)
	if err != nil {
		return nil, errors.InvalidStorageConfig.Clone().SetData("uri", s)
	}

	config := &Config{Scheme: parsed.Scheme}
	switch parsed.Scheme {
	case "file":
		if len(parsed.Path) < 1 {
			return nil, errors.InvalidStorageConfig.Clone().SetData("uri", s).SetData("reason", "empty path")
		}
		config.Path = filepath.Clean(parsed.Path)
	case "memory":
	default:
		return nil, errors.InvalidStorageConfig.Clone().SetData("uri", s).SetData("reason", "unknown scheme")
	}

	return config, nil
}

func (c *Config) String() string {
	if c.Scheme == "memory" {
		return "memory://"
	}

	return (&url.URL{Scheme: c.Scheme, Path: c.Path}).String()
}
