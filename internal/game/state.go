// Package game is the turn controller. It turns player intents into board,
// combat and ability resolution, runs the enemy phase and end-of-turn
// effects, and tells a Renderer which parts of the screen changed.
package game

// Phase is the turn controller state.
type Phase int

const (
	// PhaseAwaitingInput waits for the next player intent.
	PhaseAwaitingInput Phase = iota
	PhaseResolvingPlayerAction
	// PhaseTargeting waits for a tile click or a cancel for the pending
	// ability or thrown item.
	PhaseTargeting
	PhaseResolvingEnemyTurn
	PhaseApplyingEndOfTurn
	// PhaseGameOver is terminal; the player is dead.
	PhaseGameOver
)

// String returns a human-readable phase name.
func (p Phase) String() string {
	switch p {
	case PhaseAwaitingInput:
		return "awaiting_input"
	case PhaseResolvingPlayerAction:
		return "resolving_player_action"
	case PhaseTargeting:
		return "targeting"
	case PhaseResolvingEnemyTurn:
		return "resolving_enemy_turn"
	case PhaseApplyingEndOfTurn:
		return "applying_end_of_turn"
	case PhaseGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}
