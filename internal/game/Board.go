package game

import (
	"fmt"
	"strings"
)

// Line is a single row of the board, or a column after a direction transform.
type Line [BoardSize]int

// RandomSource is the randomness the engine draws from when spawning tiles.
// *math/rand.Rand satisfies it.
type RandomSource interface {
	Intn(n int) int
	Float64() float64
}

// Board is an immutable BoardSize x BoardSize grid. A zero cell is empty, any
// other cell holds a power of two.
type Board struct {
	cells [BoardSize][BoardSize]int
}

func NewBoard() Board {
	return Board{}
}

func NewBoardFromCells(cells [BoardSize][BoardSize]int) Board {
	return Board{cells: cells}
}

// Cells returns a copy of the grid.
func (b Board) Cells() [BoardSize][BoardSize]int {
	return b.cells
}

func (b Board) Get(row, col int) int {
	return b.cells[row][col]
}

// Set returns a new Board with the cell at (row, col) replaced.
func (b Board) Set(row, col, value int) Board {
	b.cells[row][col] = value
	return b
}

func (b Board) Equal(other Board) bool {
	return b.cells == other.cells
}

// EmptyCells returns the (row, col) of every empty cell in row-major order.
func (b Board) EmptyCells() [][2]int {
	var empty [][2]int
	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			if b.cells[row][col] == 0 {
				empty = append(empty, [2]int{row, col})
			}
		}
	}
	return empty
}

// Sum is the total value of all tiles on the board.
func (b Board) Sum() int {
	total := 0
	for _, row := range b.cells {
		for _, value := range row {
			total += value
		}
	}
	return total
}

func (b Board) MaxTile() int {
	maxValue := 0
	for _, row := range b.cells {
		for _, value := range row {
			maxValue = max(maxValue, value)
		}
	}
	return maxValue
}

// Spawn places a 2 (or a 4 with SpawnFourProbability) on a uniformly chosen
// empty cell. It reports false and returns the board unchanged when the board
// is full.
func (b Board) Spawn(rng RandomSource) (Board, bool) {
	empty := b.EmptyCells()
	if len(empty) == 0 {
		return b, false
	}

	pos := empty[rng.Intn(len(empty))]
	value := 2
	if rng.Float64() < SpawnFourProbability {
		value = 4
	}
	return b.Set(pos[0], pos[1], value), true
}

// CollapseLine slides a line toward its start and merges equal neighbours in a
// single left-to-right pass. A freshly merged tile never merges again in the
// same pass, so [2,2,2,0] becomes [4,2,0,0].
func CollapseLine(line Line) (Line, bool, int) {
	var result Line
	gain := 0
	next := 0
	pending := 0

	for _, value := range line {
		if value == 0 {
			continue
		}
		if pending == 0 {
			pending = value
			continue
		}
		if pending == value {
			result[next] = value * 2
			gain += value * 2
			pending = 0
		} else {
			result[next] = pending
			pending = value
		}
		next++
	}
	if pending != 0 {
		result[next] = pending
	}

	return result, result != line, gain
}

// Move swipes the board in dir. It reports whether any tile changed position
// or value and the score gained from merges. Move panics if dir is not one of
// the four declared directions.
func (b Board) Move(dir Direction) (Board, bool, int) {
	transforms := dir.transforms()
	cells := transforms.forward(b.cells)

	moved := false
	scoreDelta := 0
	for row := 0; row < BoardSize; row++ {
		collapsed, rowMoved, gain := CollapseLine(cells[row])
		cells[row] = collapsed
		moved = moved || rowMoved
		scoreDelta += gain
	}

	return Board{cells: transforms.inverse(cells)}, moved, scoreDelta
}

// HasMovesRemaining reports whether any move can change the board. Checking
// the right and bottom neighbour of each cell covers every adjacency once.
func (b Board) HasMovesRemaining() bool {
	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			value := b.cells[row][col]
			if value == 0 {
				return true
			}
			if col+1 < BoardSize && b.cells[row][col+1] == value {
				return true
			}
			if row+1 < BoardSize && b.cells[row+1][col] == value {
				return true
			}
		}
	}
	return false
}

func (b Board) String() string {
	line := "+" + strings.Repeat("------+", BoardSize)
	var sb strings.Builder
	sb.WriteString(line + "\n")
	for row := 0; row < BoardSize; row++ {
		sb.WriteString("|")
		for col := 0; col < BoardSize; col++ {
			if b.cells[row][col] == 0 {
				sb.WriteString("      |")
			} else {
				sb.WriteString(fmt.Sprintf("%5d |", b.cells[row][col]))
			}
		}
		sb.WriteString("\n" + line + "\n")
	}
	return sb.String()
}
