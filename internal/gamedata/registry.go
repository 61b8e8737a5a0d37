package gamedata

import (
	"errors"
	"fmt"
)

// Intner is the slice of a random source the registry needs.
// *math/rand.Rand satisfies it.
type Intner interface {
	Intn(n int) int
}

// ArchetypeRegistry holds loaded archetype definitions and provides spawning utilities.
type ArchetypeRegistry struct {
	archetypes  []ArchetypeDef
	totalWeight int
}

// NewArchetypeRegistry creates a registry from loaded archetype definitions.
func NewArchetypeRegistry(archetypes []ArchetypeDef) *ArchetypeRegistry {
	totalWeight := 0
	for _, a := range archetypes {
		if a.SpawnWeight > 0 {
			totalWeight += a.SpawnWeight
		}
	}
	return &ArchetypeRegistry{
		archetypes:  archetypes,
		totalWeight: totalWeight,
	}
}

// LoadArchetypeRegistry loads and creates a registry from the embedded archetypes.json.
func LoadArchetypeRegistry() (*ArchetypeRegistry, error) {
	archetypes, err := LoadArchetypes()
	if err != nil {
		return nil, err
	}
	if len(archetypes) == 0 {
		return nil, errors.New("no archetypes loaded from archetypes.json")
	}
	registry := NewArchetypeRegistry(archetypes)
	if registry.GetByID(PlayerID) == nil {
		return nil, fmt.Errorf("archetypes.json has no %q entry", PlayerID)
	}
	return registry, nil
}

// MustLoadArchetypeRegistry loads a registry, panicking on error.
func MustLoadArchetypeRegistry() *ArchetypeRegistry {
	registry, err := LoadArchetypeRegistry()
	if err != nil {
		panic(err)
	}
	return registry
}

// SpawnRandom selects a random archetype using weighted probability.
// Archetypes with a zero spawnWeight (the player) are never selected.
// Returns nil if nothing is spawnable.
func (r *ArchetypeRegistry) SpawnRandom(rng Intner) *ArchetypeDef {
	if r.totalWeight <= 0 {
		return nil
	}

	roll := rng.Intn(r.totalWeight)

	cumulative := 0
	for i := range r.archetypes {
		if r.archetypes[i].SpawnWeight <= 0 {
			continue
		}
		cumulative += r.archetypes[i].SpawnWeight
		if roll < cumulative {
			return &r.archetypes[i]
		}
	}

	// unreachable while totalWeight matches the positive weights
	return nil
}

// GetByID returns the archetype with the given ID, or nil if not found.
func (r *ArchetypeRegistry) GetByID(id string) *ArchetypeDef {
	for i := range r.archetypes {
		if r.archetypes[i].ID == id {
			return &r.archetypes[i]
		}
	}
	return nil
}

// Player returns the player archetype.
func (r *ArchetypeRegistry) Player() *ArchetypeDef {
	return r.GetByID(PlayerID)
}

// All returns all archetype definitions.
func (r *ArchetypeRegistry) All() []ArchetypeDef {
	return r.archetypes
}

// Count returns the number of archetypes in the registry.
func (r *ArchetypeRegistry) Count() int {
	return len(r.archetypes)
}
