package game

import (
	"github.com/samdwyer/delve/internal/entity"
	"github.com/samdwyer/delve/internal/grid"
	"github.com/samdwyer/delve/internal/stats"
)

// Renderer draws the game. The engine only calls it; it never reads
// anything back.
type Renderer interface {
	RenderBoard(view BoardView)
	RenderConsole(lines []string)
	RenderPlayerPanel(snap PlayerSnapshot)
	// RenderFocusWindow receives nil when nothing interesting is focused.
	RenderFocusWindow(info *TileInfo)
}

// BoardView is what the board section shows.
type BoardView struct {
	Rows []string
	Tier int
	// Targets are highlighted while targeting.
	Targets []grid.Pos
	// Enemies maps enemy positions to catalog keys, for glyphs.
	Enemies map[grid.Pos]string
}

// AbilitySnapshot is one learned ability as shown on the panel.
type AbilitySnapshot struct {
	ID        string
	Name      string
	Level     int
	MPCost    int
	TurnsLeft int
}

// PlayerSnapshot is a read-only copy of the player for the side panel.
type PlayerSnapshot struct {
	Name            string
	Profession      string
	Level           int
	HP              stats.Pool
	MP              stats.Pool
	Experience      stats.Pool
	Attributes      stats.Attributes
	AttributePoints int
	SkillPoints     int
	OffRating       int
	DefRating       int
	Conditions      map[entity.Condition]entity.ConditionMeter
	Statuses        []string
	Inventory       []string
	Equipment       map[entity.Slot]string
	Abilities       []AbilitySnapshot
}

// TileKind says what a focused tile holds.
type TileKind string

const (
	FocusEnemy TileKind = "enemy"
	FocusChest TileKind = "chest"
	FocusTrap  TileKind = "trap"
	FocusDoor  TileKind = "door"
)

// TileInfo describes the focused tile.
type TileInfo struct {
	Pos         grid.Pos
	Kind        TileKind
	Name        string
	Description string
	Level       int
	HP          stats.Pool
}

// Dirty marks the sections that need redrawing.
type Dirty struct {
	Board   bool
	Console bool
	Panel   bool
	Focus   bool
}

// Any reports whether any section is dirty.
func (d Dirty) Any() bool {
	return d.Board || d.Console || d.Panel || d.Focus
}

func allDirty() Dirty {
	return Dirty{Board: true, Console: true, Panel: true, Focus: true}
}
