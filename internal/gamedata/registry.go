package gamedata

import (
	"errors"
	"fmt"

	"github.com/samdwyer/delve/internal/entity"
)

// ErrUnknownTier is returned when a tier has nothing to draw from.
var ErrUnknownTier = errors.New("unknown tier")

// Def is a catalog entry that can be drawn at random.
type Def interface {
	DefID() string
	// DefTier is the lowest tier the entry appears in.
	DefTier() int
	DefWeight() int
}

// Registry holds definitions in file order and draws weighted random picks.
type Registry[T Def] struct {
	defs []T
	byID map[string]int
}

// NewRegistry indexes defs by ID. Later duplicates win.
func NewRegistry[T Def](defs []T) *Registry[T] {
	r := &Registry[T]{defs: defs, byID: make(map[string]int, len(defs))}
	for i, d := range defs {
		r.byID[d.DefID()] = i
	}
	return r
}

// Get returns the definition with id.
func (r *Registry[T]) Get(id string) (T, bool) {
	i, ok := r.byID[id]
	if !ok {
		var zero T
		return zero, false
	}
	return r.defs[i], true
}

// All returns every definition in file order.
func (r *Registry[T]) All() []T {
	return r.defs
}

// Count returns the number of definitions.
func (r *Registry[T]) Count() int {
	return len(r.defs)
}

// SpawnRandom picks a definition available at tier, weighted by DefWeight.
func (r *Registry[T]) SpawnRandom(rng entity.Roller, tier int) (T, error) {
	var zero T
	total := 0
	for _, d := range r.defs {
		if d.DefTier() <= tier && d.DefWeight() > 0 {
			total += d.DefWeight()
		}
	}
	if tier < 0 || total == 0 {
		return zero, fmt.Errorf("%w: %d", ErrUnknownTier, tier)
	}

	roll := rng.Intn(total)
	cumulative := 0
	for _, d := range r.defs {
		if d.DefTier() > tier || d.DefWeight() <= 0 {
			continue
		}
		cumulative += d.DefWeight()
		if roll < cumulative {
			return d, nil
		}
	}
	return zero, fmt.Errorf("%w: %d", ErrUnknownTier, tier)
}
