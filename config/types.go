package config

import (
	"fmt"
	"time"

	"github.com/mitchellh/mapstructure"
)

// Config is the root of the fswatch.yml configuration.
type Config struct {
	Version string      `yaml:"version" json:"version" toml:"version" jsonschema:"description=Config file format version"`
	Watch   WatchConfig `yaml:"watch" json:"watch" toml:"watch" jsonschema:"description=Watch set definition"`
	Poll    PollConfig  `yaml:"poll,omitempty" json:"poll,omitempty" toml:"poll,omitempty" jsonschema:"description=Polling behavior"`
	State   StateConfig `yaml:"state,omitempty" json:"state,omitempty" toml:"state,omitempty" jsonschema:"description=Snapshot persistence"`

	// Extensions holds sections owned by other packages (e.g. "logging"),
	// decoded on demand via UnmarshalExtension.
	Extensions map[string]interface{} `yaml:",inline" json:"-" toml:"-" jsonschema:"-"`
}

// WatchConfig defines how the watch set is populated.
type WatchConfig struct {
	Roots   []string `yaml:"roots,omitempty" json:"roots,omitempty" toml:"roots,omitempty" jsonschema:"description=Directories expanded recursively into the watch set"`
	Include []string `yaml:"include,omitempty" json:"include,omitempty" toml:"include,omitempty" jsonschema:"description=Glob patterns files under roots must match"`
	Ignore  []string `yaml:"ignore,omitempty" json:"ignore,omitempty" toml:"ignore,omitempty" jsonschema:"description=Glob patterns excluding files and directories"`
	Paths   []string `yaml:"paths,omitempty" json:"paths,omitempty" toml:"paths,omitempty" jsonschema:"description=Explicit file paths watched verbatim"`
}

// PollConfig defines polling behavior for the watch command.
type PollConfig struct {
	Interval string `yaml:"interval,omitempty" json:"interval,omitempty" toml:"interval,omitempty" jsonschema:"description=Delay between poll passes (Go duration string)"`
}

// StateConfig defines snapshot persistence between runs.
type StateConfig struct {
	Path string `yaml:"path,omitempty" json:"path,omitempty" toml:"path,omitempty" jsonschema:"description=Path of the snapshot state file"`
}

// IntervalDuration parses the configured poll interval, defaulting to 500ms.
func (p PollConfig) IntervalDuration() (time.Duration, error) {
	if p.Interval == "" {
		return 500 * time.Millisecond, nil
	}
	d, err := time.ParseDuration(p.Interval)
	if err != nil {
		return 0, fmt.Errorf("invalid poll interval %q: %w", p.Interval, err)
	}
	return d, nil
}

// UnmarshalExtension decodes an extension section (e.g. "logging") into out.
// Missing sections are a no-op so every extension has workable defaults.
func (c *Config) UnmarshalExtension(key string, out interface{}) error {
	raw, ok := c.Extensions[key]
	if !ok {
		return nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  out,
		TagName: "yaml",
	})
	if err != nil {
		return err
	}
	return decoder.Decode(raw)
}
