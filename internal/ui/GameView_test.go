package ui

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/Mshel/ssh2048/internal/game"
	tea "github.com/charmbracelet/bubbletea"
)

func keyPress(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func newTestGameModel(seed int64) GameViewModel {
	session := game.NewSession(rand.New(rand.NewSource(seed)))
	return NewGameModel(session, nil, false, 80, 24)
}

// playUntilOver drives the model with keys until the session ends.
func playUntilOver(t *testing.T, m GameViewModel) GameViewModel {
	t.Helper()
	keys := []string{"w", "a", "s", "d"}
	for i := 0; i < 100000 && m.session.State() == game.StatePlaying; i++ {
		model, _ := m.Update(keyPress(keys[i%len(keys)]))
		m = model.(GameViewModel)
	}
	if m.session.State() != game.StateGameOver {
		t.Fatal("game did not end")
	}
	return m
}

func TestGameViewMovesOnKeys(t *testing.T) {
	m := newTestGameModel(1)
	before := m.session.Board()

	moved := false
	for _, k := range []string{"a", "d", "w", "s"} {
		model, _ := m.Update(keyPress(k))
		m = model.(GameViewModel)
		if !m.session.Board().Equal(before) {
			moved = true
			break
		}
	}
	if !moved {
		t.Fatal("no direction key changed the board")
	}
	if m.session.Moves() != 1 {
		t.Errorf("expected 1 move, got %d", m.session.Moves())
	}
	if m.lastDirection == "" {
		t.Error("expected the last direction to be recorded")
	}
}

func TestDirectionKeysIgnoreCase(t *testing.T) {
	keys := newKeyMap()
	tests := []struct {
		key  string
		want game.Direction
	}{
		{"w", game.Up}, {"W", game.Up},
		{"a", game.Left}, {"A", game.Left},
		{"s", game.Down}, {"S", game.Down},
		{"d", game.Right}, {"D", game.Right},
	}
	for _, tt := range tests {
		got, ok := keys.direction(keyPress(tt.key))
		if !ok || got != tt.want {
			t.Errorf("direction(%q) = %v, %v; want %v", tt.key, got, ok, tt.want)
		}
	}
}

func TestGameViewMovesOnUpperCaseKeys(t *testing.T) {
	m := newTestGameModel(1)
	before := m.session.Board()

	for _, k := range []string{"A", "D", "W", "S"} {
		model, _ := m.Update(keyPress(k))
		m = model.(GameViewModel)
		if !m.session.Board().Equal(before) {
			return
		}
	}
	t.Fatal("no upper-case direction key changed the board")
}

func TestGameViewIgnoresUnknownKeys(t *testing.T) {
	m := newTestGameModel(1)
	before := m.session.Board()

	model, cmd := m.Update(keyPress("x"))
	m = model.(GameViewModel)
	if cmd != nil || !m.session.Board().Equal(before) {
		t.Error("unknown keys must be ignored")
	}
}

func TestGameViewQuit(t *testing.T) {
	m := newTestGameModel(1)
	if _, cmd := m.Update(keyPress("q")); !isQuit(cmd) {
		t.Error("q must quit")
	}
}

func TestGameViewGameOverRestart(t *testing.T) {
	m := playUntilOver(t, newTestGameModel(3))

	if !strings.Contains(m.View(), "G A M E   O V E R") {
		t.Error("expected the game over screen")
	}
	if m.gameOverState.FinalScore != m.session.Score() {
		t.Errorf("final score %d, want %d", m.gameOverState.FinalScore, m.session.Score())
	}

	model, _ := m.Update(keyPress("r"))
	m = model.(GameViewModel)
	if m.session.State() != game.StatePlaying || m.session.Score() != 0 {
		t.Error("r must restart the game")
	}
}

func TestGameViewGameOverButtons(t *testing.T) {
	m := playUntilOver(t, newTestGameModel(5))

	model, _ := m.Update(keyPress("right"))
	m = model.(GameViewModel)
	if m.gameOverState.SelectedButton != exitButton {
		t.Fatalf("expected the exit button, got %d", m.gameOverState.SelectedButton)
	}
	if _, cmd := m.Update(keyPress("enter")); !isQuit(cmd) {
		t.Error("enter on exit must quit")
	}

	model, _ = m.Update(keyPress("left"))
	m = model.(GameViewModel)
	model, _ = m.Update(keyPress("enter"))
	m = model.(GameViewModel)
	if m.session.State() != game.StatePlaying {
		t.Error("enter on restart must start a new game")
	}
}

func TestGameViewAutoplay(t *testing.T) {
	m := newTestGameModel(9)

	model, cmd := m.Update(keyPress("p"))
	m = model.(GameViewModel)
	if !m.autoplay || cmd == nil {
		t.Fatal("p must enable autoplay and schedule a tick")
	}

	model, _ = m.Update(autoPlayTickMsg{generation: m.autoplayGeneration})
	m = model.(GameViewModel)
	if m.session.Moves() != 1 {
		t.Errorf("expected the bot to play one move, got %d", m.session.Moves())
	}

	model, _ = m.Update(autoPlayTickMsg{generation: m.autoplayGeneration - 1})
	m = model.(GameViewModel)
	if m.session.Moves() != 1 {
		t.Error("stale ticks must be ignored")
	}

	model, _ = m.Update(keyPress("p"))
	m = model.(GameViewModel)
	model, _ = m.Update(autoPlayTickMsg{generation: m.autoplayGeneration})
	m = model.(GameViewModel)
	if m.autoplay || m.session.Moves() != 1 {
		t.Error("ticks must not move the board once autoplay is off")
	}
}

func TestGameViewRendersScore(t *testing.T) {
	m := newTestGameModel(1)
	view := m.View()
	if !strings.Contains(view, "Score: 0") {
		t.Errorf("expected the score in the status panel, got:\n%s", view)
	}
}

func TestControllerStartsGame(t *testing.T) {
	controller := NewControllerModel(ControllerOptions{
		Random:       rand.New(rand.NewSource(1)),
		ScreenWidth:  80,
		ScreenHeight: 24,
	})

	model, cmd := controller.Update(keyPress("enter"))
	controller = model.(ControllerModel)
	if cmd == nil {
		t.Fatal("enter on the intro must submit the selected option")
	}

	model, _ = controller.Update(cmd())
	controller = model.(ControllerModel)
	if controller.CurrentScreen != GameScreen || controller.GameModel == nil {
		t.Fatal("expected the game screen")
	}
	if controller.GameModel.(GameViewModel).autoplay {
		t.Error("play option must start without the bot")
	}
}

func TestControllerAutoplayStart(t *testing.T) {
	controller := NewControllerModel(ControllerOptions{
		Random:   rand.New(rand.NewSource(1)),
		Autoplay: true,
	})

	msg := controller.Init()()
	if msg != WatchBotOption {
		t.Fatalf("expected the watch bot option, got %v", msg)
	}

	model, cmd := controller.Update(msg)
	controller = model.(ControllerModel)
	if !controller.GameModel.(GameViewModel).autoplay || cmd == nil {
		t.Error("expected autoplay to be running")
	}
}

func TestControllerQuit(t *testing.T) {
	controller := NewControllerModel(ControllerOptions{Random: rand.New(rand.NewSource(1))})
	if _, cmd := controller.Update(keyPress("ctrl+c")); !isQuit(cmd) {
		t.Error("ctrl+c must quit")
	}
	if _, cmd := controller.Update(keyPress("q")); !isQuit(cmd) {
		t.Error("q on the intro must quit")
	}
}
