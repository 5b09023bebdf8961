package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	kyaml "github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// ConfigurationError reports an unreadable or malformed config document at
// a specific tier. It is fatal for the resolve call: an existing file that
// fails to parse is never silently skipped.
type ConfigurationError struct {
	Path string
	Err  error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s: %v", e.Path, e.Err)
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// IsConfigurationError checks if an error is a ConfigurationError.
func IsConfigurationError(err error) bool {
	var ce *ConfigurationError
	return errors.As(err, &ce)
}

// Resolver resolves an effective Config via ordered fallback tiers:
// the workspace-local document, then the user-level template, then the
// hard-coded defaults. Resolution always yields a usable Config unless a
// tier file exists but cannot be parsed.
type Resolver struct {
	// TemplateDir overrides the location of the user-level template
	// document. Empty means <xdg config home>/troupe.
	TemplateDir string
}

// TemplatePath returns the path of the user-level template document.
func (r *Resolver) TemplatePath() string {
	dir := r.TemplateDir
	if dir == "" {
		dir = filepath.Join(xdg.ConfigHome, "troupe")
	}
	return filepath.Join(dir, Filename)
}

// Resolve returns the effective Config for a workspace root. Tiers are
// consulted in strict precedence order; a missing file falls through to
// the next tier, a malformed file does not.
func (r *Resolver) Resolve(root string) (Config, error) {
	candidates := []string{
		filepath.Join(root, Filename),
		r.TemplatePath(),
	}

	for _, path := range candidates {
		cfg, err := loadTier(path)
		if err != nil {
			return Config{}, err
		}
		if cfg != nil {
			return *cfg, nil
		}
	}

	return DefaultConfig(), nil
}

// loadTier loads one tier file. Returns (nil, nil) when the file does not
// exist, so the caller can fall through to the next tier.
func loadTier(path string) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, &ConfigurationError{Path: path, Err: err}
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), kyaml.Parser()); err != nil {
		return nil, &ConfigurationError{Path: path, Err: err}
	}

	// Absent keys keep their defaults; only keys present in the document
	// are overwritten.
	cfg := DefaultConfig()
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, &ConfigurationError{Path: path, Err: err}
	}

	if err := cfg.Validate(); err != nil {
		return nil, &ConfigurationError{Path: path, Err: err}
	}

	return &cfg, nil
}
