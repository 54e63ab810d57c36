// Package world holds the playable boards: entity registries indexed by
// position, the derived tile grid, and door-linked board generation.
package world

// Tile is a single template or grid character.
type Tile rune

const (
	TileWall   Tile = 'X'
	TileOpen   Tile = 'O'
	TileDoor   Tile = 'D'
	TileChest  Tile = 'T'
	TileTrap   Tile = 'R'
	TileEnemy  Tile = 'E'
	TilePlayer Tile = 'P'
)

// Valid reports whether t is a known tile code.
func (t Tile) Valid() bool {
	switch t {
	case TileWall, TileOpen, TileDoor, TileChest, TileTrap, TileEnemy, TilePlayer:
		return true
	}
	return false
}

// Walkable reports whether a character could ever stand on t. Only walls
// are excluded; doors count as walkable for facing detection.
func (t Tile) Walkable() bool {
	return t.Valid() && t != TileWall
}

// Rune returns the tile's display character.
func (t Tile) Rune() rune {
	return rune(t)
}

// Name is a human-readable label for the focus window.
func (t Tile) Name() string {
	switch t {
	case TileWall:
		return "Wall"
	case TileOpen:
		return "Floor"
	case TileDoor:
		return "Door"
	case TileChest:
		return "Chest"
	case TileTrap:
		return "Trap"
	case TileEnemy:
		return "Enemy"
	case TilePlayer:
		return "You"
	}
	return "Unknown"
}
