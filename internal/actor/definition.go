package actor

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DescriptorFilename is the single descriptor file inside an actor
// directory.
const DescriptorFilename = "actor.yaml"

// Field is one RBA field: a name, a free-text prompt body, and an
// optional tier label. The tier is informational only.
type Field struct {
	Name   string `yaml:"name,omitempty"`
	Prompt string `yaml:"prompt,omitempty"`
	Tier   string `yaml:"tier,omitempty"`
}

// Definition is the persistent identity of an actor: its name and the
// three RBA fields that give it a persona, a success bar, and a goal.
type Definition struct {
	Name     string `yaml:"name"`
	Role     Field  `yaml:"role,omitempty"`
	Criteria Field  `yaml:"acceptance_criteria,omitempty"`
	Intent   Field  `yaml:"intent,omitempty"`

	// Autopilot marks the actor variant that applies changes directly
	// instead of responding with text.
	Autopilot bool `yaml:"autopilot,omitempty"`

	// Dir is the actor's directory on disk. Not persisted; the
	// directory is where the descriptor lives.
	Dir string `yaml:"-"`
}

// LoadDefinition reads an actor directory's descriptor. A directory with
// no descriptor, or a descriptor missing one or more RBA fields, yields a
// definition with empty prompt text for the missing pieces, never an
// error; partially configured actors still load.
func LoadDefinition(dir string) (Definition, error) {
	def := Definition{Name: filepath.Base(dir), Dir: dir}

	data, err := os.ReadFile(filepath.Join(dir, DescriptorFilename))
	if err != nil {
		if os.IsNotExist(err) {
			return def, nil
		}
		return Definition{}, fmt.Errorf("failed to read actor descriptor: %w", err)
	}

	if err := yaml.Unmarshal(data, &def); err != nil {
		return Definition{}, fmt.Errorf("failed to parse actor descriptor in %s: %w", dir, err)
	}

	if def.Name == "" {
		def.Name = filepath.Base(dir)
	}
	def.Dir = dir

	return def, nil
}

// Save writes the definition's descriptor back into its directory.
func (d Definition) Save() error {
	if d.Dir == "" {
		return fmt.Errorf("actor definition has no directory")
	}

	if err := os.MkdirAll(d.Dir, 0o755); err != nil {
		return fmt.Errorf("failed to create actor directory: %w", err)
	}

	data, err := yaml.Marshal(d)
	if err != nil {
		return fmt.Errorf("failed to marshal actor descriptor: %w", err)
	}

	path := filepath.Join(d.Dir, DescriptorFilename)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write actor descriptor: %w", err)
	}

	return nil
}
