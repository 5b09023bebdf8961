// Package workspace binds an on-disk root to a Config and the collection
// of actors discovered from it.
package workspace

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/troupe-cli/troupe/internal/actor"
	"github.com/troupe-cli/troupe/internal/config"
	"github.com/troupe-cli/troupe/internal/responder"
	"github.com/troupe-cli/troupe/internal/sessionlog"
)

var (
	// ErrNotLoaded guards workspace-scoped operations attempted before
	// Load. It is always surfaced, never silently swallowed.
	ErrNotLoaded = errors.New("workspace not loaded")

	// ErrActorNotFound is returned as a value on lookup misses so batch
	// runs can continue.
	ErrActorNotFound = errors.New("actor not found")
)

// Options holds the collaborators a Workspace hands to its actors.
type Options struct {
	// Resolver resolves the workspace config. Nil means a default
	// resolver.
	Resolver *config.Resolver

	// Responder is the external text-generation boundary given to every
	// actor.
	Responder responder.Responder

	// Log is the session logger given to every actor. May be nil.
	Log *sessionlog.Logger
}

// Workspace is the loaded registry: one root path, one Config, an ordered
// actor collection, and two reference lists. It is mutated only by the
// single control thread and carries no locking of its own.
type Workspace struct {
	root     string
	cfg      config.Config
	resolver *config.Resolver
	rsp      responder.Responder
	log      *sessionlog.Logger

	actors     []*actor.Actor
	folderRefs []string
	fileRefs   []string
	loaded     bool
}

// New creates an unloaded workspace.
func New(opts Options) *Workspace {
	resolver := opts.Resolver
	if resolver == nil {
		resolver = &config.Resolver{}
	}
	return &Workspace{
		resolver: resolver,
		rsp:      opts.Responder,
		log:      opts.Log,
	}
}

// Load resolves the config for path, creates the configured folders when
// missing, and materializes one actor per subdirectory of the actors
// folder. Directory creation is idempotent.
func (w *Workspace) Load(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve workspace path: %w", err)
	}

	cfg, err := w.resolver.Resolve(abs)
	if err != nil {
		return err
	}

	w.root = abs
	w.cfg = cfg

	if err := os.MkdirAll(w.ActorsDir(), 0o755); err != nil {
		return fmt.Errorf("failed to create actors directory: %w", err)
	}
	if err := os.MkdirAll(w.LogsDir(), 0o755); err != nil {
		return fmt.Errorf("failed to create logs directory: %w", err)
	}

	actors, err := w.scanActors()
	if err != nil {
		return err
	}

	w.actors = actors
	w.loaded = true

	log.Debug().Str("root", abs).Int("actors", len(actors)).Msg("workspace loaded")
	return nil
}

// Reload re-scans the actors folder and atomically replaces the in-memory
// actor collection. Holders of old actor references are not notified;
// their instances become stale.
func (w *Workspace) Reload() error {
	if !w.loaded {
		return ErrNotLoaded
	}

	actors, err := w.scanActors()
	if err != nil {
		return err
	}

	w.actors = actors
	return nil
}

// Save writes the config and every actor's RBA data back to disk as a
// full round-trip.
func (w *Workspace) Save() error {
	if !w.loaded {
		return ErrNotLoaded
	}

	if err := w.cfg.Save(w.root); err != nil {
		return err
	}

	for _, a := range w.actors {
		if err := a.Definition().Save(); err != nil {
			return err
		}
	}

	return nil
}

// Root returns the workspace root path.
func (w *Workspace) Root() string { return w.root }

// DefaultModel returns the configured default model.
func (w *Workspace) DefaultModel() string { return w.cfg.DefaultModel }

// Loaded reports whether Load has succeeded.
func (w *Workspace) Loaded() bool { return w.loaded }

// Config returns the mutable workspace config. Changes are persisted on
// the next Save.
func (w *Workspace) Config() *config.Config { return &w.cfg }

// ActorsDir returns the path of the configured actors folder.
func (w *Workspace) ActorsDir() string {
	return filepath.Join(w.root, w.cfg.ActorsFolderName)
}

// LogsDir returns the path of the configured logs folder.
func (w *Workspace) LogsDir() string {
	return filepath.Join(w.root, w.cfg.LogsFolderName)
}

// Actors returns the actor collection in discovery order.
func (w *Workspace) Actors() []*actor.Actor {
	return w.actors
}

// GetByName looks an actor up case-insensitively by its folder name, or,
// for backward compatibility, by its role name. A miss is returned as an
// ErrActorNotFound value, not a fault.
func (w *Workspace) GetByName(name string) (*actor.Actor, error) {
	if !w.loaded {
		return nil, ErrNotLoaded
	}

	// Folder and definition names are the primary key; role names are
	// consulted only when no actor matches on them, so a role-name match
	// can never shadow another actor's folder name.
	for _, a := range w.actors {
		def := a.Definition()
		if strings.EqualFold(filepath.Base(def.Dir), name) || strings.EqualFold(def.Name, name) {
			return a, nil
		}
	}
	for _, a := range w.actors {
		if strings.EqualFold(a.Definition().Role.Name, name) {
			return a, nil
		}
	}

	return nil, fmt.Errorf("%w: %s", ErrActorNotFound, name)
}

// CreateActor scaffolds a new actor directory with an empty descriptor
// and adds it to the collection. Names are unique case-insensitively
// within the workspace.
func (w *Workspace) CreateActor(name string) (*actor.Actor, error) {
	if !w.loaded {
		return nil, ErrNotLoaded
	}
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("actor name must not be empty")
	}

	for _, a := range w.actors {
		if strings.EqualFold(a.Name(), name) {
			return nil, fmt.Errorf("actor already exists: %s", name)
		}
	}

	def := actor.Definition{
		Name: name,
		Dir:  filepath.Join(w.ActorsDir(), name),
	}
	if err := def.Save(); err != nil {
		return nil, err
	}

	a := w.buildActor(def)
	w.actors = append(w.actors, a)
	return a, nil
}

// scanActors enumerates the actors folder and builds one actor per
// subdirectory, in filesystem enumeration order. That order is not
// guaranteed stable across platforms.
func (w *Workspace) scanActors() ([]*actor.Actor, error) {
	entries, err := os.ReadDir(w.ActorsDir())
	if err != nil {
		return nil, fmt.Errorf("failed to read actors directory: %w", err)
	}

	var actors []*actor.Actor
	seen := make(map[string]string)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		// Names are unique case-insensitively within one workspace.
		lower := strings.ToLower(entry.Name())
		if other, ok := seen[lower]; ok {
			return nil, fmt.Errorf("actor name collision: %s and %s", other, entry.Name())
		}
		seen[lower] = entry.Name()

		def, err := actor.LoadDefinition(filepath.Join(w.ActorsDir(), entry.Name()))
		if err != nil {
			return nil, err
		}

		actors = append(actors, w.buildActor(def))
	}

	return actors, nil
}

func (w *Workspace) buildActor(def actor.Definition) *actor.Actor {
	behavior := actor.TextResponder()
	if def.Autopilot {
		behavior = actor.Autopilot()
	}
	return actor.New(def, behavior, w.rsp, w, w.log)
}
