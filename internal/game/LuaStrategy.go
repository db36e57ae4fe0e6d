package game

import (
	"context"
	"errors"
	"fmt"
	"os"

	lua "github.com/yuin/gopher-lua"
)

const luaEntryPoint = "nextDirection"

// DefaultLuaScript prefers left, then up, then right, then down, taking the
// first one that changes the board.
const DefaultLuaScript = `
local order = {"left", "up", "right", "down"}

local function canSlide(board, direction)
	local size = #board
	for row = 1, size do
		for col = 1, size do
			local value = board[row][col]
			if value ~= 0 then
				local nextRow, nextCol = row, col
				if direction == "left" then nextCol = col - 1
				elseif direction == "right" then nextCol = col + 1
				elseif direction == "up" then nextRow = row - 1
				else nextRow = row + 1 end
				if nextRow >= 1 and nextRow <= size and nextCol >= 1 and nextCol <= size then
					local neighbour = board[nextRow][nextCol]
					if neighbour == 0 or neighbour == value then
						return true
					end
				end
			end
		end
	end
	return false
end

function nextDirection(board, score)
	for _, direction in ipairs(order) do
		if canSlide(board, direction) then
			return direction
		end
	end
	return "left"
end
`

var ErrLuaStrategy = errors.New("lua strategy failed")

// LuaStrategy runs a Lua script that defines nextDirection(board, score).
// board is a 1-indexed table of rows; the function returns a direction name.
type LuaStrategy struct {
	StrategyName       string
	StrategyDefinition string
}

// NewLuaStrategy compiles definition once to reject scripts that do not load
// or do not define nextDirection.
func NewLuaStrategy(name, definition string) (*LuaStrategy, error) {
	luaState := lua.NewState()
	defer luaState.Close()

	if err := luaState.DoString(definition); err != nil {
		return nil, fmt.Errorf("%w: could not parse %s: %v", ErrLuaStrategy, name, err)
	}
	if luaState.GetGlobal(luaEntryPoint).Type() != lua.LTFunction {
		return nil, fmt.Errorf("%w: %s does not define %s", ErrLuaStrategy, name, luaEntryPoint)
	}

	return &LuaStrategy{StrategyName: name, StrategyDefinition: definition}, nil
}

// LoadLuaStrategy reads a strategy script from path.
func LoadLuaStrategy(path string) (*LuaStrategy, error) {
	definition, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read lua strategy %s: %w", path, err)
	}
	return NewLuaStrategy(path, string(definition))
}

func (s *LuaStrategy) NextDirection(ctx context.Context, board Board, score int) (Direction, error) {
	ctx, cancel := context.WithTimeout(ctx, MaxStrategyCalculationTime)
	defer cancel()

	luaState := lua.NewState()
	defer luaState.Close()
	luaState.SetContext(ctx)

	if err := luaState.DoString(s.StrategyDefinition); err != nil {
		return 0, fmt.Errorf("%w: could not load %s: %v", ErrLuaStrategy, s.StrategyName, err)
	}

	callErr := luaState.CallByParam(lua.P{
		Fn:      luaState.GetGlobal(luaEntryPoint),
		NRet:    1,
		Protect: true,
	}, boardToLuaTable(luaState, board), lua.LNumber(score))
	if callErr != nil {
		return 0, fmt.Errorf("%w: could not execute %s: %v", ErrLuaStrategy, s.StrategyName, callErr)
	}

	luaReturn := luaState.Get(-1)
	luaState.Pop(1)

	if luaReturn.Type() != lua.LTString {
		return 0, fmt.Errorf("%w: %s returned %s, expected string", ErrLuaStrategy, s.StrategyName, luaReturn.Type().String())
	}

	return ParseDirection(lua.LVAsString(luaReturn))
}

func boardToLuaTable(luaState *lua.LState, board Board) *lua.LTable {
	rows := luaState.NewTable()
	for row := 0; row < BoardSize; row++ {
		luaRow := luaState.NewTable()
		for col := 0; col < BoardSize; col++ {
			luaRow.RawSetInt(col+1, lua.LNumber(board.Get(row, col)))
		}
		rows.RawSetInt(row+1, luaRow)
	}
	return rows
}
