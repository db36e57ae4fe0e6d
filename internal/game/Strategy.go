package game

import (
	"context"
	"errors"
)

var ErrNoMoves = errors.New("no direction changes the board")

// Strategy picks the next direction for an autoplayed session from the
// current board and score. Implementations hold no per-session state, so one
// Strategy can serve many sessions at once.
type Strategy interface {
	NextDirection(ctx context.Context, board Board, score int) (Direction, error)
}

// ResolveStrategy maps a strategy flag value to a Strategy: "" or "default"
// selects DefaultStrategy, "lua" the built-in DefaultLuaScript, and anything
// else is read as a path to a Lua script.
func ResolveStrategy(name string) (Strategy, error) {
	var (
		strategy *LuaStrategy
		err      error
	)
	switch name {
	case "", "default":
		return &DefaultStrategy{}, nil
	case "lua":
		strategy, err = NewLuaStrategy("builtin", DefaultLuaScript)
	default:
		strategy, err = LoadLuaStrategy(name)
	}
	if err != nil {
		return nil, err
	}
	return strategy, nil
}

// DefaultStrategy implements the Strategy interface with a one-ply greedy
// search over the four directions.
type DefaultStrategy struct{}

const (
	emptyCellWeight     = 12
	cornerBonus         = 64
	monotonicityWeight  = 2
	mergeGainMultiplier = 1
)

// NextDirection scores every direction that changes the board and returns the
// best one. Ties keep the earlier direction in Directions.
func (s *DefaultStrategy) NextDirection(ctx context.Context, board Board, _ int) (Direction, error) {
	bestDirection := Left
	bestScore := 0
	found := false

	for _, dir := range Directions {
		if err := ctx.Err(); err != nil {
			return 0, err
		}

		next, moved, gain := board.Move(dir)
		if !moved {
			continue
		}

		score := evaluateBoard(next) + gain*mergeGainMultiplier
		if !found || score > bestScore {
			bestDirection, bestScore, found = dir, score, true
		}
	}

	if !found {
		return 0, ErrNoMoves
	}
	return bestDirection, nil
}

func evaluateBoard(board Board) int {
	score := len(board.EmptyCells()) * emptyCellWeight

	maxTile := board.MaxTile()
	for _, corner := range [][2]int{{0, 0}, {0, BoardSize - 1}, {BoardSize - 1, 0}, {BoardSize - 1, BoardSize - 1}} {
		if board.Get(corner[0], corner[1]) == maxTile {
			score += cornerBonus
			break
		}
	}

	return score + monotonicity(board)*monotonicityWeight
}

// monotonicity counts neighbouring pairs along rows and columns that never
// increase, rewarding boards that keep large tiles to one side.
func monotonicity(board Board) int {
	ordered := 0
	for row := 0; row < BoardSize; row++ {
		for col := 0; col+1 < BoardSize; col++ {
			if board.Get(row, col) >= board.Get(row, col+1) {
				ordered++
			}
			if board.Get(col, row) >= board.Get(col+1, row) {
				ordered++
			}
		}
	}
	return ordered
}
