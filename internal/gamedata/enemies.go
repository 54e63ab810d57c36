package gamedata

import (
	"fmt"

	"github.com/samdwyer/delve/internal/entity"
	"github.com/samdwyer/delve/internal/stats"
)

// EnemyDef is one enemy type from enemies.json.
type EnemyDef struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Glyph       string             `json:"glyph"`
	Color       string             `json:"color"`
	Flavour     string             `json:"flavour"`
	MinTier     int                `json:"minTier"`
	SpawnWeight int                `json:"spawnWeight"`
	Attributes  stats.Attributes   `json:"attributes"`
	LevelUp     map[string]float64 `json:"levelUp"` // per-level growth by attribute key
}

func (d EnemyDef) DefID() string  { return d.ID }
func (d EnemyDef) DefTier() int   { return d.MinTier }
func (d EnemyDef) DefWeight() int { return d.SpawnWeight }

// GlyphRune returns the glyph as a rune for rendering.
func (d EnemyDef) GlyphRune() rune {
	if d.Glyph == "" {
		return '?'
	}
	return []rune(d.Glyph)[0]
}

// Build creates a fresh enemy at level.
func (d EnemyDef) Build(level int) (*entity.Enemy, error) {
	growth := make(map[stats.Attr]float64, len(d.LevelUp))
	for key, rate := range d.LevelUp {
		attr, err := stats.ParseAttr(key)
		if err != nil {
			return nil, fmt.Errorf("enemy %s: %w", d.ID, err)
		}
		growth[attr] = rate
	}
	e := entity.NewEnemy(d.ID, d.Name, d.Attributes, growth)
	e.FlavourText = d.Flavour
	e.SetLevel(level)
	return e, nil
}

type enemiesFile struct {
	Enemies []EnemyDef `json:"enemies"`
}
