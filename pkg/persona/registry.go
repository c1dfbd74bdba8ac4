package persona

import (
	"fmt"
	"os"
	"strings"

	"ai-brain-be/internal/constant"
	"ai-brain-be/internal/entity"

	"gopkg.in/yaml.v3"
)

// Registry is the immutable persona catalog. Lookup is total: unknown or empty
// ids resolve to the default persona.
type Registry struct {
	order     []string
	personas  map[string]entity.Persona
	defaultId string
}

// Builtin returns the catalog shipped with the application.
func Builtin() []entity.Persona {
	return []entity.Persona{
		{Id: constant.DefaultPersonaId, DisplayName: "My AI Brain", SystemPrompt: constant.PersonaPromptDefault},
		{Id: "therapist", DisplayName: "Therapist Brain", SystemPrompt: constant.PersonaPromptTherapist},
		{Id: "business", DisplayName: "Business Brain", SystemPrompt: constant.PersonaPromptBusiness},
		{Id: "relationship", DisplayName: "Relationship Brain", SystemPrompt: constant.PersonaPromptRelationship},
	}
}

// NewRegistry builds a registry from personas in the given order. Later entries
// with the same id replace earlier ones but keep the original position. The
// default id must be present.
func NewRegistry(defaultId string, personas ...entity.Persona) (*Registry, error) {
	r := &Registry{
		personas:  make(map[string]entity.Persona, len(personas)),
		defaultId: defaultId,
	}
	for _, p := range personas {
		id := strings.TrimSpace(p.Id)
		if id == "" {
			return nil, fmt.Errorf("persona with empty id")
		}
		p.Id = id
		if p.DisplayName == "" {
			p.DisplayName = id
		}
		if _, exists := r.personas[id]; !exists {
			r.order = append(r.order, id)
		}
		r.personas[id] = p
	}
	if _, ok := r.personas[defaultId]; !ok {
		return nil, fmt.Errorf("default persona %q not in catalog", defaultId)
	}
	return r, nil
}

// NewDefaultRegistry returns the built-in catalog.
func NewDefaultRegistry() *Registry {
	r, err := NewRegistry(constant.DefaultPersonaId, Builtin()...)
	if err != nil {
		panic(err)
	}
	return r
}

type catalogFile struct {
	Personas []entity.Persona `yaml:"personas"`
}

// LoadFile builds a registry from the built-in catalog overlaid with the
// personas declared in a YAML file:
//
//	personas:
//	  - id: coach
//	    display_name: Coach Brain
//	    system_prompt: You are a running coach.
func LoadFile(path string) (*Registry, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read persona file: %w", err)
	}
	var file catalogFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse persona file: %w", err)
	}
	all := append(Builtin(), file.Personas...)
	return NewRegistry(constant.DefaultPersonaId, all...)
}

func (r *Registry) Lookup(id string) entity.Persona {
	if p, ok := r.personas[strings.TrimSpace(id)]; ok {
		return p
	}
	return r.personas[r.defaultId]
}

// Has reports whether id names a catalog entry (no fallback).
func (r *Registry) Has(id string) bool {
	_, ok := r.personas[id]
	return ok
}

func (r *Registry) Default() entity.Persona {
	return r.personas[r.defaultId]
}

func (r *Registry) List() []entity.Persona {
	out := make([]entity.Persona, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.personas[id])
	}
	return out
}
