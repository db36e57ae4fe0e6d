package game

import (
	"errors"
	"fmt"
	"strings"
)

// Direction is one of the four swipe directions. Every direction reduces to a
// left collapse on rows through its forward transform and is restored by its
// inverse transform.
type Direction int

const (
	Left Direction = iota
	Right
	Up
	Down
)

var ErrInvalidDirection = errors.New("invalid direction")

// Directions lists every valid direction in a fixed order.
var Directions = []Direction{Left, Right, Up, Down}

type cellsTransform func(cells [BoardSize][BoardSize]int) [BoardSize][BoardSize]int

type transformPair struct {
	forward cellsTransform
	inverse cellsTransform
}

var directionNames = [...]string{
	Left:  "left",
	Right: "right",
	Up:    "up",
	Down:  "down",
}

var directionTransforms = [...]transformPair{
	Left:  {forward: identity, inverse: identity},
	Right: {forward: reverseRows, inverse: reverseRows},
	Up:    {forward: transpose, inverse: transpose},
	Down: {
		forward: func(cells [BoardSize][BoardSize]int) [BoardSize][BoardSize]int {
			return reverseRows(transpose(cells))
		},
		inverse: func(cells [BoardSize][BoardSize]int) [BoardSize][BoardSize]int {
			return transpose(reverseRows(cells))
		},
	},
}

func (d Direction) Valid() bool {
	return d >= Left && d <= Down
}

func (d Direction) String() string {
	if !d.Valid() {
		return fmt.Sprintf("Direction(%d)", int(d))
	}
	return directionNames[d]
}

// transforms panics on an out-of-range direction; callers holding untrusted
// input go through ParseDirection first.
func (d Direction) transforms() transformPair {
	if !d.Valid() {
		panic(fmt.Sprintf("game: %v: %d", ErrInvalidDirection, int(d)))
	}
	return directionTransforms[d]
}

// ParseDirection maps a direction name such as "left" or "UP" to a Direction.
func ParseDirection(name string) (Direction, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	for dir, dirName := range directionNames {
		if dirName == normalized {
			return Direction(dir), nil
		}
	}
	return 0, fmt.Errorf("parse %q: %w", name, ErrInvalidDirection)
}

func identity(cells [BoardSize][BoardSize]int) [BoardSize][BoardSize]int {
	return cells
}

func reverseRows(cells [BoardSize][BoardSize]int) [BoardSize][BoardSize]int {
	var result [BoardSize][BoardSize]int
	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			result[row][col] = cells[row][BoardSize-1-col]
		}
	}
	return result
}

func transpose(cells [BoardSize][BoardSize]int) [BoardSize][BoardSize]int {
	var result [BoardSize][BoardSize]int
	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			result[row][col] = cells[col][row]
		}
	}
	return result
}
