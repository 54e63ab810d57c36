package world

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/samdwyer/delve/internal/entity"
	"github.com/samdwyer/delve/internal/grid"
	"github.com/samdwyer/delve/internal/telemetry"
)

// Generation limits. Exhausting them means the template pool has no door
// that can face the required way.
const (
	MaxTemplateDraws = 32
	rotations        = 4
)

// ErrNoMatchingEntrance is returned when no template draw and rotation
// exposes a door facing back toward the source board.
var ErrNoMatchingEntrance = errors.New("no template exposes a matching entrance")

// NewStartingBoard builds the first board of a run. The template must place
// the player.
func NewStartingBoard(ctx context.Context, tmpl Template, tier int, spawner Spawner, rng entity.Roller) (*Board, error) {
	b, err := FromTemplate(ctx, tmpl, tier, spawner, rng)
	if err != nil {
		return nil, err
	}
	if !b.hasPlayer {
		return nil, fmt.Errorf("%w: starting board has no player start", ErrInvalidTemplate)
	}
	return b, nil
}

// GenerateAdjacentBoards creates a linked board behind every unresolved
// door. The new board's matching door leads back here, and each link
// carries the entry tile just inside the destination door.
func (b *Board) GenerateAdjacentBoards(ctx context.Context, spawner Spawner) error {
	ctx, span := telemetry.Tracer("world").Start(ctx, "board.generate_adjacent")
	defer span.End()

	var pending []grid.Pos
	for p, link := range b.doors {
		if link == nil {
			pending = append(pending, p)
		}
	}
	grid.SortPositions(pending)

	for _, door := range pending {
		if err := b.linkDoor(ctx, door, spawner); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return err
		}
	}
	span.SetAttributes(
		attribute.Int("board.tier", b.Tier),
		attribute.Int("board.generated", len(pending)),
	)
	return nil
}

func (b *Board) linkDoor(ctx context.Context, door grid.Pos, spawner Spawner) error {
	want := b.facing[door].Opposite()

	for draw := 0; draw < MaxTemplateDraws; draw++ {
		tmpl, err := spawner.Template(b.rng, b.Tier)
		if err != nil {
			return fmt.Errorf("draw template for door %v: %w", door, err)
		}
		tmpl = tmpl.WithoutPlayer()
		for r := 0; r < rotations; r++ {
			if matches := tmpl.doorsFacing(want); len(matches) > 0 {
				return b.attach(ctx, door, tmpl, matches[0], spawner)
			}
			tmpl = tmpl.Rotate()
		}
	}
	return fmt.Errorf("door %v facing %v: %w", door, b.facing[door], ErrNoMatchingEntrance)
}

func (b *Board) attach(ctx context.Context, door grid.Pos, tmpl Template, match grid.Pos, spawner Spawner) error {
	next, err := FromTemplate(ctx, tmpl, b.Tier, spawner, b.rng)
	if err != nil {
		return err
	}
	nextEntry := next.entry(match)
	next.clearTile(nextEntry)
	next.Rebuild()

	next.doors[match] = &DoorLink{Board: b, Entry: b.entry(door)}
	b.doors[door] = &DoorLink{Board: next, Entry: nextEntry}
	return nil
}
