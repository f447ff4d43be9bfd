package config

import (
	"bytes"
	"encoding/json"
	"strings"
	"sync"

	"github.com/invopop/jsonschema"
	schemavalidator "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/grovetools/fswatch/errors"
)

var (
	compiledSchema *schemavalidator.Schema
	schemaOnce     sync.Once
	schemaErr      error
)

// configSchema reflects the JSON Schema from the Config struct and compiles
// it once. Extension sections are stripped before validation, so additional
// properties stay disallowed at the top level.
func configSchema() (*schemavalidator.Schema, error) {
	schemaOnce.Do(func() {
		reflector := jsonschema.Reflector{DoNotReference: true}
		generated := reflector.Reflect(&Config{})

		data, err := json.Marshal(generated)
		if err != nil {
			schemaErr = errors.Wrap(err, errors.ErrCodeInternal, "failed to marshal config schema")
			return
		}

		compiler := schemavalidator.NewCompiler()
		if err := compiler.AddResource("fswatch.json", bytes.NewReader(data)); err != nil {
			schemaErr = errors.Wrap(err, errors.ErrCodeInternal, "failed to add config schema resource")
			return
		}

		compiledSchema, schemaErr = compiler.Compile("fswatch.json")
	})
	return compiledSchema, schemaErr
}

// Validate checks a loaded configuration against the generated JSON Schema
// and the semantic rules the schema cannot express.
func Validate(cfg *Config) error {
	schema, err := configSchema()
	if err != nil {
		return err
	}

	jsonData, err := json.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeConfigValidation, "failed to marshal config for validation")
	}

	var dataToValidate interface{}
	if err := json.Unmarshal(jsonData, &dataToValidate); err != nil {
		return errors.Wrap(err, errors.ErrCodeConfigValidation, "failed to unmarshal config for validation")
	}

	if err := schema.Validate(dataToValidate); err != nil {
		if validationErr, ok := err.(*schemavalidator.ValidationError); ok {
			var messages []string
			collectErrors(validationErr, &messages)
			return errors.New(errors.ErrCodeConfigValidation,
				"schema validation failed:\n"+strings.Join(messages, "\n"))
		}
		return errors.Wrap(err, errors.ErrCodeConfigValidation, "schema validation failed")
	}

	if cfg.Version != "1" {
		return errors.ConfigInvalid("unsupported config version: " + cfg.Version)
	}

	if _, err := cfg.Poll.IntervalDuration(); err != nil {
		return errors.Wrap(err, errors.ErrCodeConfigValidation, "invalid poll interval")
	}

	if len(cfg.Watch.Roots) == 0 && len(cfg.Watch.Paths) == 0 {
		return errors.ConfigInvalid("watch.roots or watch.paths must name at least one entry")
	}

	return nil
}

func collectErrors(err *schemavalidator.ValidationError, messages *[]string) {
	if len(err.Causes) == 0 {
		location := err.InstanceLocation
		if location == "" {
			location = "/"
		}
		*messages = append(*messages, "  - "+location+": "+err.Message)
		return
	}
	for _, cause := range err.Causes {
		collectErrors(cause, messages)
	}
}
