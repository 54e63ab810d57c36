package game

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/samdwyer/delve/internal/entity"
	"github.com/samdwyer/delve/internal/gamedata"
	"github.com/samdwyer/delve/internal/world"
)

// Defaults for a new run.
const (
	DefaultProfession = "warrior"
	DefaultPlayerName = "Adventurer"
	DefaultStartTier  = 1
)

// Config holds engine settings.
type Config struct {
	// Seed for random number generation. A seed of 0 means a time-based seed.
	Seed int64
	// RNG overrides Seed. Tests inject scripted rollers here.
	RNG entity.Roller

	Logger   *log.Logger
	Renderer Renderer

	// Catalog supplies game content. Nil loads the embedded catalog.
	Catalog    *gamedata.Catalog
	Profession string
	PlayerName string
	StartTier  int

	// Player resumes a saved character instead of creating a new one.
	Player *entity.Player
	// Start replaces the catalog's starting template.
	Start world.Template
}

func (c Config) withDefaults() Config {
	if c.Logger == nil {
		c.Logger = log.New(io.Discard)
	}
	if c.Profession == "" {
		c.Profession = DefaultProfession
	}
	if c.PlayerName == "" {
		c.PlayerName = DefaultPlayerName
	}
	if c.StartTier <= 0 {
		c.StartTier = DefaultStartTier
	}
	return c
}
