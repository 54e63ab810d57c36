// Package ui draws the engine's sections on a tcell terminal and turns
// terminal events into game intents.
package ui

import "github.com/gdamore/tcell/v2"

var baseStyle = tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite)

// Screen is the terminal the game runs in. It satisfies Canvas.
type Screen struct {
	term tcell.Screen
}

// NewScreen opens the controlling terminal with mouse reporting on.
func NewScreen() (*Screen, error) {
	term, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return newScreen(term)
}

func newScreen(term tcell.Screen) (*Screen, error) {
	if err := term.Init(); err != nil {
		return nil, err
	}
	term.SetStyle(baseStyle)
	term.EnableMouse(tcell.MouseButtonEvents, tcell.MouseMotionEvents)
	term.HideCursor()
	term.Clear()
	return &Screen{term: term}, nil
}

// Close restores the terminal. PollEvent returns nil afterwards.
func (s *Screen) Close() {
	s.term.Fini()
}

func (s *Screen) PollEvent() tcell.Event {
	return s.term.PollEvent()
}

// Interrupt wakes a blocked PollEvent with an *tcell.EventInterrupt.
func (s *Screen) Interrupt() {
	_ = s.term.PostEvent(tcell.NewEventInterrupt(nil))
}

func (s *Screen) Show() {
	s.term.Show()
}

func (s *Screen) SetContent(x, y int, r rune, style tcell.Style) {
	s.term.SetContent(x, y, r, nil, style)
}

// Sync repaints every cell, which a resized terminal needs.
func (s *Screen) Sync() {
	s.term.Sync()
}

var _ Canvas = (*Screen)(nil)
