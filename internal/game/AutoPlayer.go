package game

import (
	"context"

	"github.com/charmbracelet/log"
)

// AutoPlayer drives a Session with a Strategy. It moves through the same
// Session.Move entry point as keyboard input, so the event loop that owns the
// session stays its only writer.
type AutoPlayer struct {
	Session  *Session
	Strategy Strategy
}

func NewAutoPlayer(session *Session, strategy Strategy) *AutoPlayer {
	if strategy == nil {
		strategy = &DefaultStrategy{}
	}
	return &AutoPlayer{Session: session, Strategy: strategy}
}

// Step plays one move. When the strategy fails or picks a direction that
// changes nothing, the first direction that moves is played instead.
func (ap *AutoPlayer) Step(ctx context.Context) (Direction, MoveResult, error) {
	if ap.Session.State() == StateGameOver {
		return 0, MoveResult{GameOver: true}, ErrNoMoves
	}

	board := ap.Session.Board()
	dir, err := ap.Strategy.NextDirection(ctx, board, ap.Session.Score())
	if err != nil {
		log.Warn("Strategy failed, falling back", "error", err)
	} else if _, moved, _ := board.Move(dir); !moved {
		log.Debug("Strategy picked a blocked direction, falling back", "direction", dir)
		err = ErrNoMoves
	}

	if err != nil {
		fallback, ok := firstMovingDirection(board)
		if !ok {
			return 0, MoveResult{}, ErrNoMoves
		}
		dir = fallback
	}

	return dir, ap.Session.Move(dir), nil
}

func firstMovingDirection(board Board) (Direction, bool) {
	for _, dir := range Directions {
		if _, moved, _ := board.Move(dir); moved {
			return dir, true
		}
	}
	return 0, false
}
