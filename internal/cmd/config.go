package cmd

import (
	"fmt"
	"os"

	"github.com/AdguardTeam/golibs/errors"
	"gopkg.in/yaml.v2"
)

// configuration represents the on-disk configuration of the filtering
// service.
type configuration struct {
	// FilterLists are the filter-list files to load on startup, in order.
	FilterLists []*filterListConfig `yaml:"filter_lists"`

	// Cache configures the engine's decision caches.
	Cache *cacheConfig `yaml:"cache"`

	// LoadDefaultLists enables the small built-in filter list.
	LoadDefaultLists bool `yaml:"load_default_lists"`
}

// filterListConfig is one filter-list entry of the configuration.
type filterListConfig struct {
	// Name is the identifier of the list in logs and metrics.
	Name string `yaml:"name"`

	// Path is the filesystem path of the list text.
	Path string `yaml:"path"`
}

// cacheConfig configures the engine's decision caches.
type cacheConfig struct {
	// URLSize and DomainSize are the entry limits of the request-decision
	// and cosmetic-decision caches.  Zero means the default limit.
	URLSize    int `yaml:"url_size"`
	DomainSize int `yaml:"domain_size"`
}

// parseConfig reads the configuration file.
func parseConfig(confPath string) (c *configuration, err error) {
	defer func() { err = errors.Annotate(err, "reading config from %q: %w", confPath) }()

	b, err := os.ReadFile(confPath)
	if err != nil {
		return nil, err
	}

	c = &configuration{}
	err = yaml.Unmarshal(b, c)
	if err != nil {
		return nil, err
	}

	return c, nil
}

// Validate returns an error if the configuration is invalid.
func (c *configuration) Validate() (err error) {
	for i, fl := range c.FilterLists {
		switch {
		case fl == nil:
			return fmt.Errorf("filter_lists: at index %d: no value", i)
		case fl.Name == "":
			return fmt.Errorf("filter_lists: at index %d: no name", i)
		case fl.Path == "":
			return fmt.Errorf("filter_lists: at index %d: no path", i)
		}
	}

	if c.Cache != nil && (c.Cache.URLSize < 0 || c.Cache.DomainSize < 0) {
		return errors.Error("cache: sizes must not be negative")
	}

	return nil
}
