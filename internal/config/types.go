package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"gopkg.in/yaml.v3"
)

// Filename is the name of the configuration document inside a workspace
// root (and of the user-level template).
const Filename = "troupe.yaml"

// Default values for Config.
const (
	DefaultActorsFolderName = "Actors"
	DefaultLogsFolderName   = "Logs"
	DefaultMaxIterations    = 10
	DefaultLogBucketMinutes = 10
)

// Config represents the troupe.yaml configuration document.
type Config struct {
	// ActorsFolderName is the workspace subfolder holding one directory
	// per actor.
	ActorsFolderName string `koanf:"actors_folder_name" yaml:"actors_folder_name"`

	// LogsFolderName is the workspace subfolder holding session logs.
	LogsFolderName string `koanf:"logs_folder_name" yaml:"logs_folder_name"`

	// DefaultModel is the model used when a call does not select one.
	// Empty means the responder picks.
	DefaultModel string `koanf:"default_model" yaml:"default_model,omitempty"`

	// Models is the reference list of allowed model identifiers.
	Models []string `koanf:"models" yaml:"models,omitempty"`

	// MaxIterations is the iteration ceiling for iterative runs.
	MaxIterations int `koanf:"max_iterations" yaml:"max_iterations"`

	// LogBucketMinutes is the session log rotation window in minutes.
	// Zero disables rotation.
	LogBucketMinutes int `koanf:"log_bucket_minutes" yaml:"log_bucket_minutes"`
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() Config {
	return Config{
		ActorsFolderName: DefaultActorsFolderName,
		LogsFolderName:   DefaultLogsFolderName,
		MaxIterations:    DefaultMaxIterations,
		LogBucketMinutes: DefaultLogBucketMinutes,
	}
}

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
}

// Validate checks that all config values are valid.
func (c *Config) Validate() error {
	if c.ActorsFolderName == "" {
		return ValidationError{Field: "actors_folder_name", Message: "required field is empty"}
	}
	if c.LogsFolderName == "" {
		return ValidationError{Field: "logs_folder_name", Message: "required field is empty"}
	}
	if c.MaxIterations <= 0 {
		return ValidationError{Field: "max_iterations", Message: "must be positive"}
	}
	if c.LogBucketMinutes < 0 {
		return ValidationError{Field: "log_bucket_minutes", Message: "must not be negative"}
	}
	if c.DefaultModel != "" && len(c.Models) > 0 && !slices.Contains(c.Models, c.DefaultModel) {
		return ValidationError{Field: "default_model", Message: fmt.Sprintf("%q is not in the models list", c.DefaultModel)}
	}
	return nil
}

// SetMaxIterations overrides the iteration ceiling at runtime.
func (c *Config) SetMaxIterations(n int) error {
	if n <= 0 {
		return ValidationError{Field: "max_iterations", Message: "must be positive"}
	}
	c.MaxIterations = n
	return nil
}

// SetDefaultModel overrides the default model at runtime. When a models
// reference list is configured, the model must appear in it.
func (c *Config) SetDefaultModel(model string) error {
	if model != "" && len(c.Models) > 0 && !slices.Contains(c.Models, model) {
		return ValidationError{Field: "default_model", Message: fmt.Sprintf("%q is not in the models list", model)}
	}
	c.DefaultModel = model
	return nil
}

// Save writes the config document into the given workspace root.
func (c *Config) Save(root string) error {
	if err := c.Validate(); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	path := filepath.Join(root, Filename)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
