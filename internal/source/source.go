// Package source loads the external source descriptor list. The file is an
// opaque input to the pipeline: a YAML list of feed/HTML origins with their
// extraction rules. A missing or malformed file is a fatal startup condition.
package source

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	KindFeed = "feed"
	KindHTML = "html"

	defaultMaxItems = 20
)

// Config describes one configured origin. Immutable per aggregation pass.
type Config struct {
	Name                 string   `yaml:"name"`
	URL                  string   `yaml:"url"`
	Kind                 string   `yaml:"kind"`
	Enabled              bool     `yaml:"enabled"`
	MaxItems             int      `yaml:"maxItems"`
	IncludePatterns      []string `yaml:"includePatterns"`
	ExcludePatterns      []string `yaml:"excludePatterns"`
	TitleExcludeKeywords []string `yaml:"titleExcludeKeywords"`
}

// Load reads and validates the descriptor file.
func Load(path string) ([]Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read sources file %s: %w", path, err)
	}

	var list []Config
	if err := yaml.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("parse sources file %s: %w", path, err)
	}
	if len(list) == 0 {
		return nil, fmt.Errorf("sources file %s: no sources defined", path)
	}

	for i := range list {
		if list[i].Kind == "" {
			list[i].Kind = KindFeed
		}
		if list[i].Kind != KindFeed && list[i].Kind != KindHTML {
			return nil, fmt.Errorf("sources file %s: source %q has unknown kind %q", path, list[i].Name, list[i].Kind)
		}
		if list[i].MaxItems <= 0 {
			list[i].MaxItems = defaultMaxItems
		}
	}
	return list, nil
}

// Active filters to the sources that participate in a pass: enabled with a
// non-empty URL.
func Active(list []Config) []Config {
	out := make([]Config, 0, len(list))
	for _, s := range list {
		if s.Enabled && s.URL != "" {
			out = append(out, s)
		}
	}
	return out
}
