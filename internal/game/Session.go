package game

type GameState int

const (
	StatePlaying GameState = iota
	StateGameOver
)

func (s GameState) String() string {
	switch s {
	case StatePlaying:
		return "playing"
	case StateGameOver:
		return "game over"
	default:
		return "unknown"
	}
}

// MoveResult describes what a single Session.Move did.
type MoveResult struct {
	Moved      bool
	ScoreDelta int
	Spawned    bool
	GameOver   bool
	// JustWon is set on the move that first produced a WinTileValue tile.
	JustWon bool
}

// Session is one game of 2048: the current board, the score and whether any
// move is left. It is not safe for concurrent use; a single event loop owns it.
type Session struct {
	board     Board
	score     int
	bestScore int
	moves     int
	won       bool
	state     GameState
	rng       RandomSource
}

func NewSession(rng RandomSource) *Session {
	session := &Session{rng: rng}
	session.Restart()
	return session
}

// Restart discards the current game and seeds a fresh board with
// InitialTileCount tiles. The best score survives.
func (s *Session) Restart() {
	board := NewBoard()
	for i := 0; i < InitialTileCount; i++ {
		board, _ = board.Spawn(s.rng)
	}
	s.board = board
	s.score = 0
	s.moves = 0
	s.won = false
	s.state = StatePlaying
}

// Move applies dir. A move that changes nothing is ignored: no tile is spawned
// and the score stays put. Moves are ignored once the game is over.
func (s *Session) Move(dir Direction) MoveResult {
	if s.state == StateGameOver {
		return MoveResult{GameOver: true}
	}

	next, moved, scoreDelta := s.board.Move(dir)
	if !moved {
		return MoveResult{}
	}

	result := MoveResult{Moved: true, ScoreDelta: scoreDelta}
	s.score += scoreDelta
	s.bestScore = max(s.bestScore, s.score)
	s.moves++

	next, result.Spawned = next.Spawn(s.rng)
	s.board = next

	if !s.won && next.MaxTile() >= WinTileValue {
		s.won = true
		result.JustWon = true
	}

	if !next.HasMovesRemaining() {
		s.state = StateGameOver
		result.GameOver = true
	}

	return result
}

func (s *Session) Board() Board {
	return s.board
}

func (s *Session) Score() int {
	return s.score
}

// BestScore is the highest score reached since the session was created.
func (s *Session) BestScore() int {
	return s.bestScore
}

func (s *Session) Moves() int {
	return s.moves
}

func (s *Session) Won() bool {
	return s.won
}

func (s *Session) State() GameState {
	return s.state
}
