package media

import (
	_ "embed"
	"fmt"

	"github.com/pelletier/go-toml/v2"
)

//go:embed viewers.toml
var viewersTOML []byte

// ViewerDefinition describes one known image viewer.
type ViewerDefinition struct {
	Description string   `toml:"description"`
	Platforms   []string `toml:"platforms"`
	Flags       []string `toml:"flags"`
}

type viewersFile struct {
	Viewers map[string]ViewerDefinition `toml:"viewers"`
}

// ViewerRegistry holds the embedded viewer definitions.
type ViewerRegistry struct {
	viewers map[string]ViewerDefinition
}

func NewViewerRegistry() (*ViewerRegistry, error) {
	var parsed viewersFile
	if err := toml.Unmarshal(viewersTOML, &parsed); err != nil {
		return nil, fmt.Errorf("parsing viewer definitions: %w", err)
	}
	return &ViewerRegistry{viewers: parsed.Viewers}, nil
}

// Lookup returns the definition for a viewer command, if known.
func (r *ViewerRegistry) Lookup(name string) (ViewerDefinition, bool) {
	def, ok := r.viewers[name]
	return def, ok
}

// Flags returns extra arguments for a viewer command, empty for unknown
// viewers.
func (r *ViewerRegistry) Flags(name string) []string {
	if def, ok := r.viewers[name]; ok {
		return def.Flags
	}
	return nil
}
