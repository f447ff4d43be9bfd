package config

import (
	"os"
	"path/filepath"
	"regexp"

	"github.com/pelletier/go-toml/v2"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/grovetools/fswatch/errors"
)

// ConfigFileName is the project configuration file searched for by LoadDefault.
const ConfigFileName = "fswatch.yml"

// OverrideFileName is an optional TOML file merged on top of the project
// config, for machine-local settings kept out of version control.
const OverrideFileName = "fswatch.override.toml"

var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

// Load reads and parses a configuration file, applying the local override
// file from the same directory if one exists.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.ConfigNotFound(path)
		}
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to read config file").
			WithDetail("path", path)
	}

	cfg, err := parse(data, path)
	if err != nil {
		return nil, err
	}

	overridePath := filepath.Join(filepath.Dir(path), OverrideFileName)
	if _, err := os.Stat(overridePath); err == nil {
		if err := applyOverride(cfg, overridePath); err != nil {
			return nil, err
		}
	}

	applyDefaults(cfg)

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadDefault finds fswatch.yml by walking up from the current directory and
// loads it.
func LoadDefault() (*Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to get current directory")
	}
	return LoadFrom(cwd)
}

// LoadFrom finds and loads the configuration starting from the given directory.
func LoadFrom(startDir string) (*Config, error) {
	path, err := FindConfigFile(startDir)
	if err != nil {
		return nil, err
	}

	logrus.WithField("path", path).Debug("Loading configuration")
	return Load(path)
}

// FindConfigFile walks up from startDir looking for fswatch.yml.
func FindConfigFile(startDir string) (string, error) {
	dir := startDir
	for {
		candidate := filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.ConfigNotFound(ConfigFileName).
				WithDetail("searched_from", startDir)
		}
		dir = parent
	}
}

func parse(data []byte, path string) (*Config, error) {
	expanded := expandEnvVars(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to parse config").
			WithDetail("path", path)
	}
	return &cfg, nil
}

func applyOverride(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to read override file").
			WithDetail("path", path)
	}

	var override Config
	if err := toml.Unmarshal([]byte(expandEnvVars(string(data))), &override); err != nil {
		return errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to parse override file").
			WithDetail("path", path)
	}

	merge(cfg, &override)
	return nil
}

// merge overlays non-empty override values onto cfg. Lists replace rather
// than append, matching how the override file is meant to be used.
func merge(cfg, override *Config) {
	if override.Version != "" {
		cfg.Version = override.Version
	}
	if len(override.Watch.Roots) > 0 {
		cfg.Watch.Roots = override.Watch.Roots
	}
	if len(override.Watch.Include) > 0 {
		cfg.Watch.Include = override.Watch.Include
	}
	if len(override.Watch.Ignore) > 0 {
		cfg.Watch.Ignore = override.Watch.Ignore
	}
	if len(override.Watch.Paths) > 0 {
		cfg.Watch.Paths = override.Watch.Paths
	}
	if override.Poll.Interval != "" {
		cfg.Poll.Interval = override.Poll.Interval
	}
	if override.State.Path != "" {
		cfg.State.Path = override.State.Path
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Version == "" {
		cfg.Version = "1"
	}
	if cfg.Poll.Interval == "" {
		cfg.Poll.Interval = "500ms"
	}
	if cfg.State.Path == "" {
		cfg.State.Path = filepath.Join(".fswatch", "state.yml")
	}
}

// expandEnvVars replaces ${VAR} references with environment values before
// parsing. Unset variables expand to the empty string.
func expandEnvVars(content string) string {
	return envVarRegex.ReplaceAllStringFunc(content, func(match string) string {
		name := envVarRegex.FindStringSubmatch(match)[1]
		return os.Getenv(name)
	})
}
