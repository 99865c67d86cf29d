package preset

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/leapstack-labs/lintpreset/pkg/document"
)

var (
	// ErrUnknownPreset is returned when an extends entry names no registered preset.
	ErrUnknownPreset = errors.New("unknown preset")

	// ErrDuplicatePreset is returned when a preset name is registered twice.
	ErrDuplicatePreset = errors.New("duplicate preset")

	// ErrExtendsCycle is returned when presets extend each other in a loop.
	ErrExtendsCycle = errors.New("extends cycle")
)

// Info summarizes a registered preset.
type Info struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Source      string   `json:"source"`
	Extends     []string `json:"extends,omitempty"`
	Rules       int      `json:"rules"`
	Overrides   int      `json:"overrides"`
}

type entry struct {
	doc    *document.Document
	source string
}

// Registry stores named presets.
type Registry struct {
	mu      sync.RWMutex
	presets map[string]entry
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{presets: make(map[string]entry)}
}

// Register adds a preset under its document name.
// Source records where the preset came from, e.g. a file path.
func (r *Registry) Register(doc *document.Document, source string) error {
	if doc == nil || doc.Name == "" {
		return fmt.Errorf("preset from %s has no name", source)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.presets[doc.Name]; ok {
		return fmt.Errorf("%w: %q from %s already registered from %s",
			ErrDuplicatePreset, doc.Name, source, existing.source)
	}
	r.presets[doc.Name] = entry{doc: doc, source: source}
	return nil
}

// Get returns the preset registered under name.
func (r *Registry) Get(name string) (*document.Document, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.presets[name]
	return e.doc, ok
}

// Names returns the registered preset names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.presets))
	for name := range r.presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered presets.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.presets)
}

// List returns a summary of every preset, sorted by name.
func (r *Registry) List() []Info {
	r.mu.RLock()
	defer r.mu.RUnlock()

	infos := make([]Info, 0, len(r.presets))
	for name, e := range r.presets {
		infos = append(infos, Info{
			Name:        name,
			Description: e.doc.Description,
			Source:      e.source,
			Extends:     e.doc.Extends,
			Rules:       e.doc.RuleCount(),
			Overrides:   len(e.doc.Overrides),
		})
	}
	sort.Slice(infos, func(i, j int) bool {
		return infos[i].Name < infos[j].Name
	})
	return infos
}
