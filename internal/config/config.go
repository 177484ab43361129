// Package config resolves fsmgraph settings from defaults, a settings file,
// FSMGRAPH_* environment variables and command-line flags, in that order.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/fsmgraph/internal/extract"
	"github.com/aretw0/fsmgraph/internal/presentation/graph"
)

// DefaultFile is read when no settings file is given and it exists.
const DefaultFile = ".fsmgraph.yaml"

// EnvPrefix prefixes every environment override.
const EnvPrefix = "FSMGRAPH_"

// Config holds the resolved settings.
type Config struct {
	Tag           string `mapstructure:"tag" yaml:"tag" json:"tag"`
	OutDir        string `mapstructure:"out_dir" yaml:"out_dir" json:"out_dir"`
	Format        string `mapstructure:"format" yaml:"format" json:"format"`
	Legend        bool   `mapstructure:"legend" yaml:"legend" json:"legend"`
	GridThreshold int    `mapstructure:"grid_threshold" yaml:"grid_threshold" json:"grid_threshold"`
	Debug         bool   `mapstructure:"debug" yaml:"debug" json:"debug"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Tag:           extract.DefaultTag,
		OutDir:        ".",
		Format:        string(graph.FormatDOT),
		Legend:        true,
		GridThreshold: graph.DefaultGridThreshold,
	}
}

// Load resolves defaults, then the settings file, then the environment.
// An empty path means DefaultFile, which may be absent; an explicit path must exist.
func Load(path string) (Config, error) {
	cfg := Default()

	required := path != ""
	if !required {
		path = DefaultFile
	}
	if err := cfg.MergeFile(path, required); err != nil {
		return Config{}, err
	}
	if err := cfg.MergeEnv(os.Environ()); err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

// MergeFile overlays the keys present in a YAML or JSON settings file.
func (c *Config) MergeFile(path string, required bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !required {
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}

	raw := map[string]any{}
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		if err := json.Unmarshal(data, &raw); err != nil {
			return fmt.Errorf("failed to parse %s: %w", path, err)
		}
	} else {
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}

	if err := c.decode(raw); err != nil {
		return fmt.Errorf("invalid config %s: %w", path, err)
	}
	return nil
}

// MergeEnv overlays FSMGRAPH_* entries from environ ("KEY=value" pairs).
// FSMGRAPH_OUT_DIR maps to out_dir, and so on.
func (c *Config) MergeEnv(environ []string) error {
	raw := map[string]any{}
	for _, kv := range environ {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(key, EnvPrefix) {
			continue
		}
		raw[strings.ToLower(strings.TrimPrefix(key, EnvPrefix))] = value
	}
	if len(raw) == 0 {
		return nil
	}
	if err := c.decode(raw); err != nil {
		return fmt.Errorf("invalid %s environment: %w", EnvPrefix, err)
	}
	return nil
}

// decode overlays raw onto c. Unknown keys are rejected; strings are
// converted to the field types so env values and quoted YAML both work.
func (c *Config) decode(raw map[string]any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           c,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(raw)
}

// Validate checks the resolved settings.
func (c Config) Validate() error {
	if c.Tag == "" {
		return errors.New("tag must not be empty")
	}
	if c.GridThreshold < 1 {
		return fmt.Errorf("grid_threshold must be at least 1, got %d", c.GridThreshold)
	}
	if _, err := graph.ParseFormat(c.Format); err != nil {
		return err
	}
	return nil
}
