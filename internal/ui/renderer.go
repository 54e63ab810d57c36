package ui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/delve/internal/entity"
	"github.com/samdwyer/delve/internal/game"
	"github.com/samdwyer/delve/internal/gamedata"
	"github.com/samdwyer/delve/internal/grid"
	"github.com/samdwyer/delve/internal/world"
)

// Canvas is where the renderer draws. *Screen implements it.
type Canvas interface {
	SetContent(x, y int, r rune, style tcell.Style)
	Show()
}

// Layout. The board sits under a one-line header at the top left, the
// console and focus window below it, and the player panel to its right.
const (
	boardTop      = 1
	minBoardWidth = 40
	panelWidth    = 36
	panelHeight   = 48
	focusHeight   = 3
)

// Display characters for the tile codes.
var tileGlyphs = map[world.Tile]rune{
	world.TileWall:   '#',
	world.TileOpen:   '.',
	world.TileDoor:   '+',
	world.TileChest:  '=',
	world.TileTrap:   '^',
	world.TileEnemy:  'e',
	world.TilePlayer: '@',
}

// Renderer implements game.Renderer on a Canvas.
type Renderer struct {
	canvas  Canvas
	catalog *gamedata.Catalog
	palette gamedata.Palette
	learn   []learnable

	boardW, boardH int

	// The last thing each section drew, for redrawing after the board
	// changes size.
	lines []string
	snap  *game.PlayerSnapshot
	focus *game.TileInfo
}

type learnable struct {
	id, name string
}

// NewRenderer draws on c with the catalog's palette and glyphs. tree lists
// what the player can learn, in the order the panel shows it.
func NewRenderer(c Canvas, catalog *gamedata.Catalog, tree gamedata.SkillTree) *Renderer {
	r := &Renderer{canvas: c, catalog: catalog, palette: catalog.Palette()}
	for _, a := range tree.Actives {
		r.learn = append(r.learn, learnable{id: a.ID, name: a.Name})
	}
	for _, p := range tree.Passives {
		r.learn = append(r.learn, learnable{id: p.ID, name: p.Name})
	}
	return r
}

// LearnIDs returns the learnable ability IDs in panel order.
func (r *Renderer) LearnIDs() []string {
	ids := make([]string, len(r.learn))
	for i, l := range r.learn {
		ids[i] = l.id
	}
	return ids
}

// BoardPos converts a screen cell to a board position.
func (r *Renderer) BoardPos(x, y int) (grid.Pos, bool) {
	p := grid.Pos{X: x, Y: y - boardTop}
	return p, grid.InBounds(p, r.boardW, r.boardH)
}

func (r *Renderer) boardWidth() int { return max(r.boardW, minBoardWidth) }
func (r *Renderer) consoleTop() int { return boardTop + r.boardH + 1 }
func (r *Renderer) focusTop() int   { return r.consoleTop() + game.ConsoleLines + 1 }
func (r *Renderer) panelLeft() int  { return r.boardWidth() + 2 }

// RenderBoard draws the tile grid, highlighting targets.
func (r *Renderer) RenderBoard(view game.BoardView) {
	h := len(view.Rows)
	w := 0
	if h > 0 {
		w = len(view.Rows[0])
	}
	if w != r.boardW || h != r.boardH {
		r.clear(0, 0, r.boardWidth()+2+panelWidth, r.focusTop()+focusHeight)
		r.boardW, r.boardH = w, h
		r.redrawCached()
	}

	header := tcell.StyleDefault.Foreground(r.color(r.palette.Panel)).Bold(true)
	r.text(0, 0, r.boardWidth(), fmt.Sprintf("Depth %d", view.Tier), header)

	highlight := r.color(r.palette.Highlight)
	for y, row := range view.Rows {
		for x, code := range row {
			p := grid.Pos{X: x, Y: y}
			ch, style := r.cell(world.Tile(code), p, view)
			if slices.Contains(view.Targets, p) {
				style = style.Background(highlight)
			}
			r.canvas.SetContent(x, boardTop+y, ch, style)
		}
	}
	r.canvas.Show()
}

func (r *Renderer) cell(t world.Tile, p grid.Pos, view game.BoardView) (rune, tcell.Style) {
	style := tcell.StyleDefault.Foreground(r.palette.Tile(rune(t)))
	if t == world.TileEnemy {
		if def, ok := r.catalog.EnemyDef(view.Enemies[p]); ok {
			if c, err := gamedata.ParseHexColor(def.Color); err == nil {
				style = style.Foreground(c)
			}
			return def.GlyphRune(), style.Bold(true)
		}
	}
	if t == world.TilePlayer {
		style = style.Bold(true)
	}
	ch, ok := tileGlyphs[t]
	if !ok {
		ch = rune(t)
	}
	return ch, style
}

// RenderConsole draws the message log under the board.
func (r *Renderer) RenderConsole(lines []string) {
	r.lines = slices.Clone(lines)
	r.drawConsole()
	r.canvas.Show()
}

func (r *Renderer) drawConsole() {
	style := tcell.StyleDefault.Foreground(r.color(r.palette.Console))
	top := r.consoleTop()
	for i := range game.ConsoleLines {
		line := ""
		if i < len(r.lines) {
			line = r.lines[i]
		}
		r.text(0, top+i, r.boardWidth(), line, style)
	}
}

// RenderPlayerPanel draws the character sheet to the right of the board.
func (r *Renderer) RenderPlayerPanel(snap game.PlayerSnapshot) {
	r.snap = &snap
	r.drawPanel()
	r.canvas.Show()
}

func (r *Renderer) drawPanel() {
	if r.snap == nil {
		return
	}
	style := tcell.StyleDefault.Foreground(r.color(r.palette.Panel))
	lines := panelLines(*r.snap, r.learn)
	left := r.panelLeft()
	for y := range panelHeight {
		line := ""
		if y < len(lines) {
			line = lines[y]
		}
		r.text(left, y, panelWidth, line, style)
	}
}

// panelLines lays out the character sheet. Inventory entries are lettered
// and abilities numbered to match the keys that use them.
func panelLines(s game.PlayerSnapshot, learn []learnable) []string {
	a := s.Attributes
	lines := []string{
		fmt.Sprintf("%s the %s", s.Name, s.Profession),
		fmt.Sprintf("Level %d  XP %d/%d", s.Level, s.Experience.Cur, s.Experience.Max),
		fmt.Sprintf("HP %d/%d  MP %d/%d", s.HP.Cur, s.HP.Max, s.MP.Cur, s.MP.Max),
		fmt.Sprintf("Off %d  Def %d", s.OffRating, s.DefRating),
		fmt.Sprintf("STR %2d  DEX %2d  INT %2d", a.Str, a.Dex, a.Int),
		fmt.Sprintf("END %2d  VIT %2d  WIS %2d", a.End, a.Vit, a.Wis),
		fmt.Sprintf("Points: %d attribute, %d skill", s.AttributePoints, s.SkillPoints),
		"",
	}
	for _, c := range entity.Conditions {
		m := s.Conditions[c]
		lines = append(lines, fmt.Sprintf("%-8s %d/%d", c, m.Cur, m.Max))
	}
	if len(s.Statuses) > 0 {
		lines = append(lines, "Status: "+strings.Join(s.Statuses, ", "))
	}

	lines = append(lines, "", "Equipment")
	for i, slot := range entity.Slots {
		name := s.Equipment[slot]
		if name == "" {
			name = "-"
		}
		lines = append(lines, fmt.Sprintf(" %d %-6s %s", i+1, slot, name))
	}

	lines = append(lines, "", "Inventory")
	for i, name := range s.Inventory {
		lines = append(lines, fmt.Sprintf(" %c %s", letter(i), name))
	}

	lines = append(lines, "", "Abilities")
	for i, ab := range s.Abilities {
		line := fmt.Sprintf(" %d %s L%d %dmp", i+1, ab.Name, ab.Level, ab.MPCost)
		if ab.TurnsLeft > 0 {
			line += fmt.Sprintf(" (%d)", ab.TurnsLeft)
		}
		lines = append(lines, line)
	}

	if s.SkillPoints > 0 && len(learn) > 0 {
		lines = append(lines, "", "Learn")
		for i, l := range learn {
			lines = append(lines, fmt.Sprintf(" %c %s", letter(i), l.name))
		}
	}
	return lines
}

// RenderFocusWindow describes the tile under the cursor, or clears the
// window when info is nil.
func (r *Renderer) RenderFocusWindow(info *game.TileInfo) {
	r.focus = info
	r.drawFocus()
	r.canvas.Show()
}

func (r *Renderer) drawFocus() {
	style := tcell.StyleDefault.Foreground(r.color(r.palette.Panel))
	top, w := r.focusTop(), r.boardWidth()
	lines := make([]string, focusHeight)
	if info := r.focus; info != nil {
		lines[0] = info.Name
		if info.Kind == game.FocusEnemy {
			lines[0] = fmt.Sprintf("%s (level %d)  HP %d/%d", info.Name, info.Level, info.HP.Cur, info.HP.Max)
		}
		lines[1] = info.Description
	}
	for i, line := range lines {
		r.text(0, top+i, w, line, style)
	}
}

func (r *Renderer) redrawCached() {
	r.drawConsole()
	r.drawPanel()
	r.drawFocus()
}

// text writes s at (x, y) and pads it with spaces to width.
func (r *Renderer) text(x, y, width int, s string, style tcell.Style) {
	col := 0
	for _, ch := range s {
		if col >= width {
			break
		}
		r.canvas.SetContent(x+col, y, ch, style)
		col++
	}
	for ; col < width; col++ {
		r.canvas.SetContent(x+col, y, ' ', style)
	}
}

func (r *Renderer) clear(x, y, w, h int) {
	for row := y; row < y+h; row++ {
		r.text(x, row, w, "", tcell.StyleDefault)
	}
}

func (r *Renderer) color(hex string) tcell.Color {
	c, err := gamedata.ParseHexColor(hex)
	if err != nil {
		return tcell.ColorDefault
	}
	return c
}

// letter labels list entries a, b, c and so on.
func letter(i int) rune {
	return rune('a' + i)
}

var _ game.Renderer = (*Renderer)(nil)
