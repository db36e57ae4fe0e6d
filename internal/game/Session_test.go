package game

import (
	"math/rand"
	"testing"
)

func newTestSession(cells [BoardSize][BoardSize]int, seed int64) *Session {
	return &Session{
		board: NewBoardFromCells(cells),
		state: StatePlaying,
		rng:   rand.New(rand.NewSource(seed)),
	}
}

func TestNewSessionSeedsTwoTiles(t *testing.T) {
	session := NewSession(rand.New(rand.NewSource(42)))

	if session.Score() != 0 {
		t.Errorf("initial score should be 0, got %d", session.Score())
	}
	if session.State() != StatePlaying {
		t.Errorf("initial state should be playing, got %v", session.State())
	}
	if empty := len(session.Board().EmptyCells()); empty != BoardSize*BoardSize-InitialTileCount {
		t.Errorf("expected %d tiles, got %d", InitialTileCount, BoardSize*BoardSize-empty)
	}
}

func TestSessionScoreIncreases(t *testing.T) {
	session := newTestSession([BoardSize][BoardSize]int{
		{2, 2, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	}, 1)

	result := session.Move(Left)
	if !result.Moved || !result.Spawned {
		t.Fatalf("expected move and spawn, got %+v", result)
	}
	if session.Score() != 4 || result.ScoreDelta != 4 {
		t.Errorf("expected score 4, got %d (delta %d)", session.Score(), result.ScoreDelta)
	}
	if session.Moves() != 1 {
		t.Errorf("expected 1 move, got %d", session.Moves())
	}
	if len(session.Board().EmptyCells()) != BoardSize*BoardSize-2 {
		t.Errorf("expected the merged tile plus one spawned tile, got\n%s", session.Board())
	}
}

func TestSessionIgnoresNoOpMove(t *testing.T) {
	session := newTestSession([BoardSize][BoardSize]int{
		{4, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	}, 1)
	before := session.Board()

	result := session.Move(Left)
	if result.Moved || result.Spawned || result.ScoreDelta != 0 {
		t.Errorf("no-op move reported %+v", result)
	}
	if !session.Board().Equal(before) || session.Score() != 0 || session.Moves() != 0 {
		t.Error("no-op move must not change the session")
	}
}

func TestSessionGameOverAndRestart(t *testing.T) {
	// Sliding left leaves one empty cell; the spawn fills it and no pair remains.
	session := newTestSession([BoardSize][BoardSize]int{
		{8, 16, 8, 16},
		{16, 8, 16, 8},
		{8, 16, 8, 16},
		{0, 32, 64, 128},
	}, 1)

	result := session.Move(Left)
	if !result.Moved || !result.Spawned {
		t.Fatalf("expected the move to succeed, got %+v", result)
	}
	if !result.GameOver || session.State() != StateGameOver {
		t.Fatalf("expected game over, board:\n%s", session.Board())
	}

	frozen := session.Board()
	if again := session.Move(Right); again.Moved || !session.Board().Equal(frozen) {
		t.Error("moves must be ignored after game over")
	}

	session.Restart()
	if session.State() != StatePlaying || session.Score() != 0 || session.Moves() != 0 {
		t.Error("restart must reset state, score and moves")
	}
	if len(session.Board().EmptyCells()) != BoardSize*BoardSize-InitialTileCount {
		t.Errorf("restart must seed %d tiles", InitialTileCount)
	}
}

func TestSessionWin(t *testing.T) {
	session := newTestSession([BoardSize][BoardSize]int{
		{1024, 1024, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	}, 1)

	result := session.Move(Left)
	if !result.JustWon || !session.Won() {
		t.Fatalf("expected a win, got %+v", result)
	}
	if session.State() != StatePlaying {
		t.Error("play continues after reaching the win tile")
	}

	if next := session.Move(Right); next.JustWon {
		t.Error("JustWon is reported only once")
	}
}

func TestSessionBestScoreSurvivesRestart(t *testing.T) {
	session := newTestSession([BoardSize][BoardSize]int{
		{16, 16, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	}, 3)

	session.Move(Left)
	session.Restart()
	if session.BestScore() != 32 {
		t.Errorf("expected best score 32, got %d", session.BestScore())
	}
	if session.Score() != 0 {
		t.Errorf("expected score reset, got %d", session.Score())
	}
}

func TestSessionScoreNeverDecreases(t *testing.T) {
	session := NewSession(rand.New(rand.NewSource(99)))
	previous := 0
	for i := 0; i < 500 && session.State() == StatePlaying; i++ {
		session.Move(Directions[i%len(Directions)])
		if session.Score() < previous {
			t.Fatalf("score went from %d to %d", previous, session.Score())
		}
		previous = session.Score()
	}
}
