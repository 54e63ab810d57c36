package ui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/delve/internal/entity"
	"github.com/samdwyer/delve/internal/game"
	"github.com/samdwyer/delve/internal/grid"
	"github.com/samdwyer/delve/internal/stats"
)

// Prefix keys. The key after a prefix picks the entry.
const (
	prefixUse      = 'u' // u<letter> uses an inventory item
	prefixDrop     = 'x' // x<letter> drops an inventory item
	prefixUnequip  = 'r' // r<1-5> unequips a slot
	prefixAllocate = '+' // +<s|d|i|e|v|w> spends an attribute point
	prefixLearn    = 'L' // L<letter> learns from the skill tree
)

var moveKeys = map[tcell.Key]grid.Direction{
	tcell.KeyUp:    grid.Up,
	tcell.KeyRight: grid.Right,
	tcell.KeyDown:  grid.Down,
	tcell.KeyLeft:  grid.Left,
}

var moveRunes = map[rune]grid.Direction{
	'k': grid.Up,
	'l': grid.Right,
	'j': grid.Down,
	'h': grid.Left,
}

// Input maps terminal keys and mouse events to intents.
type Input struct {
	learn    []string
	boardPos func(x, y int) (grid.Pos, bool)

	prefix   rune
	hover    grid.Pos
	hovering bool
}

// NewInput maps mouse cells through the renderer's layout and learn keys
// through its skill tree order.
func NewInput(r *Renderer) *Input {
	return &Input{learn: r.LearnIDs(), boardPos: r.BoardPos}
}

// Key maps a key press. quit is true for q and Ctrl-C. A nil intent means
// the key did nothing on its own.
func (in *Input) Key(key tcell.Key, ch rune) (intent game.Intent, quit bool) {
	switch key {
	case tcell.KeyCtrlC:
		return nil, true
	case tcell.KeyEscape:
		if in.prefix != 0 {
			in.prefix = 0
			return nil, false
		}
		return game.Cancel{}, false
	case tcell.KeyRune:
	default:
		if d, ok := moveKeys[key]; ok {
			in.prefix = 0
			return game.Move{Dir: d}, false
		}
		return nil, false
	}

	if in.prefix != 0 {
		p := in.prefix
		in.prefix = 0
		return in.prefixed(p, ch), false
	}
	if d, ok := moveRunes[ch]; ok {
		return game.Move{Dir: d}, false
	}
	switch {
	case ch == 'q':
		return nil, true
	case ch == '.' || ch == ' ':
		return game.Wait{}, false
	case ch >= '1' && ch <= '9':
		return game.UseAbility{Index: int(ch - '1')}, false
	case ch == prefixUse, ch == prefixDrop, ch == prefixUnequip, ch == prefixAllocate, ch == prefixLearn:
		in.prefix = ch
	}
	return nil, false
}

func (in *Input) prefixed(prefix, ch rune) game.Intent {
	switch prefix {
	case prefixUse:
		if i, ok := letterIndex(ch); ok {
			return game.UseItem{Index: i}
		}
	case prefixDrop:
		if i, ok := letterIndex(ch); ok {
			return game.Drop{Index: i}
		}
	case prefixUnequip:
		if i := int(ch - '1'); i >= 0 && i < len(entity.Slots) {
			return game.Unequip{Slot: entity.Slots[i]}
		}
	case prefixAllocate:
		for _, a := range stats.AllAttrs {
			if rune(a.String()[0]) == ch {
				return game.AllocatePoint{Attr: a}
			}
		}
	case prefixLearn:
		if i, ok := letterIndex(ch); ok && i < len(in.learn) {
			return game.Learn{ID: in.learn[i]}
		}
	}
	return nil
}

// Mouse maps a mouse event at a screen cell. The primary button picks a
// tile; plain motion moves the focus, once per tile.
func (in *Input) Mouse(x, y int, buttons tcell.ButtonMask) game.Intent {
	p, ok := in.boardPos(x, y)
	if !ok {
		return nil
	}
	if buttons&tcell.Button1 != 0 {
		in.hover, in.hovering = p, true
		return game.ClickTile{Pos: p}
	}
	if buttons != tcell.ButtonNone || (in.hovering && in.hover == p) {
		return nil
	}
	in.hover, in.hovering = p, true
	return game.Hover{Pos: p}
}

func letterIndex(ch rune) (int, bool) {
	if ch < 'a' || ch > 'z' {
		return 0, false
	}
	return int(ch - 'a'), true
}
