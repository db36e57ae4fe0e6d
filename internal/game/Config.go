package game

import "time"

const (
	BoardSize                  = 4
	InitialTileCount           = 2
	SpawnFourProbability       = 0.1
	WinTileValue               = 2048
	AutoPlayTickDuration       = 150 * time.Millisecond
	MaxStrategyCalculationTime = 50 * time.Millisecond
)

// TileColors maps tile values to 256-color palette codes used by the board view.
var TileColors = map[int]string{
	0:    "236",
	2:    "230",
	4:    "223",
	8:    "215",
	16:   "209",
	32:   "203",
	64:   "196",
	128:  "228",
	256:  "227",
	512:  "226",
	1024: "220",
	2048: "214",
}

// SuperTileColor is used for every tile above WinTileValue.
const SuperTileColor = "93"
