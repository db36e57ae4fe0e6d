package ui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Mshel/ssh2048/internal/game"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

const (
	tileWidth  = 8
	tileHeight = 3
)

var (
	boardViewStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("240"))

	statusPanelStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("8")).
				Padding(1, 2).
				Width(34)

	tileStyle = lipgloss.NewStyle().
			Width(tileWidth).
			Height(tileHeight).
			Align(lipgloss.Center, lipgloss.Center).
			Bold(true)

	wonBannerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
	headingStyle   = lipgloss.NewStyle().Bold(true)
	faintStyle     = lipgloss.NewStyle().Faint(true)
)

// autoPlayTickMsg advances the bot by one move. Ticks from an older autoplay
// run carry a stale generation and are dropped.
type autoPlayTickMsg struct {
	generation int
}

// GameViewModel renders one Session and is its only writer.
type GameViewModel struct {
	ScreenWidth  int
	ScreenHeight int

	session    *game.Session
	autoPlayer *game.AutoPlayer
	keys       keyMap
	help       help.Model

	autoplay           bool
	autoplayGeneration int
	lastDirection      string

	gameOverState GameOverState
}

func NewGameModel(session *game.Session, strategy game.Strategy, autoplay bool, screenWidth int, screenHeight int) GameViewModel {
	return GameViewModel{
		ScreenWidth:  screenWidth,
		ScreenHeight: screenHeight,
		session:      session,
		autoPlayer:   game.NewAutoPlayer(session, strategy),
		keys:         newKeyMap(),
		help:         help.New(),
		autoplay:     autoplay,
		gameOverState: GameOverState{
			ScreenWidth:  screenWidth,
			ScreenHeight: screenHeight,
		},
	}
}

func (m GameViewModel) Init() tea.Cmd {
	if m.autoplay {
		return m.scheduleAutoPlay()
	}
	return nil
}

func (m GameViewModel) scheduleAutoPlay() tea.Cmd {
	generation := m.autoplayGeneration
	return tea.Tick(game.AutoPlayTickDuration, func(time.Time) tea.Msg {
		return autoPlayTickMsg{generation: generation}
	})
}

func (m GameViewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ScreenWidth = msg.Width
		m.ScreenHeight = msg.Height
		m.gameOverState.ScreenWidth = msg.Width
		m.gameOverState.ScreenHeight = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case autoPlayTickMsg:
		if !m.autoplay || msg.generation != m.autoplayGeneration {
			return m, nil
		}
		dir, result, err := m.autoPlayer.Step(context.Background())
		if err != nil {
			m.autoplay = false
			return m, nil
		}
		m = m.afterMove(dir, result)
		if m.session.State() == game.StateGameOver {
			m.autoplay = false
			return m, nil
		}
		return m, m.scheduleAutoPlay()

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			log.Info("Player quit", "score", m.session.Score(), "moves", m.session.Moves())
			return m, tea.Quit
		}

		if m.session.State() == game.StateGameOver {
			return m.updateGameOver(msg)
		}

		switch {
		case key.Matches(msg, m.keys.Restart):
			m = m.restart()
			return m, nil
		case key.Matches(msg, m.keys.Autoplay):
			m.autoplay = !m.autoplay
			m.autoplayGeneration++
			log.Debug("Autoplay toggled", "enabled", m.autoplay)
			if m.autoplay {
				return m, m.scheduleAutoPlay()
			}
			return m, nil
		}

		dir, ok := m.keys.direction(msg)
		if !ok {
			return m, nil
		}
		m = m.afterMove(dir, m.session.Move(dir))
		return m, nil
	}

	return m, nil
}

func (m GameViewModel) updateGameOver(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Restart):
		m = m.restart()
	case key.Matches(msg, m.keys.Left):
		m.gameOverState.selectPrevious()
	case key.Matches(msg, m.keys.Right):
		m.gameOverState.selectNext()
	case key.Matches(msg, m.keys.Select):
		if m.gameOverState.SelectedButton == exitButton {
			return m, tea.Quit
		}
		m = m.restart()
	}
	return m, nil
}

func (m GameViewModel) afterMove(dir game.Direction, result game.MoveResult) GameViewModel {
	if !result.Moved {
		return m
	}

	m.lastDirection = dir.String()
	log.Debug("Move", "direction", dir, "delta", result.ScoreDelta, "score", m.session.Score())

	if result.JustWon {
		log.Info("Win tile reached", "score", m.session.Score(), "moves", m.session.Moves())
	}

	if result.GameOver {
		log.Info("Game over", "score", m.session.Score(), "moves", m.session.Moves(),
			"max_tile", m.session.Board().MaxTile())
		m.gameOverState.FinalScore = m.session.Score()
		m.gameOverState.BestScore = m.session.BestScore()
		m.gameOverState.MaxTile = m.session.Board().MaxTile()
		m.gameOverState.Moves = m.session.Moves()
		m.gameOverState.Won = m.session.Won()
		m.gameOverState.SelectedButton = restartButton
	}
	return m
}

func (m GameViewModel) restart() GameViewModel {
	log.Info("Game restarted", "previous_score", m.session.Score())
	m.session.Restart()
	m.lastDirection = ""
	m.autoplayGeneration++
	m.autoplay = false
	return m
}

func (m GameViewModel) View() string {
	renderedBoard := m.renderBoard()

	if m.session.State() == game.StateGameOver {
		return m.gameOverState.RenderGameOverScreen(renderedBoard)
	}

	content := lipgloss.JoinHorizontal(lipgloss.Top,
		renderedBoard,
		statusPanelStyle.Render(m.renderStatusPanel()),
	)

	return lipgloss.Place(m.ScreenWidth, m.ScreenHeight, lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, content, m.help.View(m.keys)))
}

func (m GameViewModel) renderBoard() string {
	board := m.session.Board()
	rows := make([]string, 0, game.BoardSize)

	for row := 0; row < game.BoardSize; row++ {
		tiles := make([]string, 0, game.BoardSize)
		for col := 0; col < game.BoardSize; col++ {
			tiles = append(tiles, renderTile(board.Get(row, col)))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, tiles...))
	}

	return boardViewStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func renderTile(value int) string {
	background, ok := game.TileColors[value]
	if !ok {
		background = game.SuperTileColor
	}

	style := tileStyle.Background(lipgloss.Color(background))
	if value <= 4 {
		style = style.Foreground(lipgloss.Color("238"))
	} else {
		style = style.Foreground(lipgloss.Color("231"))
	}

	label := ""
	if value != 0 {
		label = strconv.Itoa(value)
	}
	return style.Render(label)
}

func (m GameViewModel) renderStatusPanel() string {
	var statusContent strings.Builder

	statusContent.WriteString(headingStyle.Render("--- 2048 ---") + "\n")
	statusContent.WriteString(fmt.Sprintf("Score: %d\n", m.session.Score()))
	statusContent.WriteString(fmt.Sprintf("Best: %d\n", m.session.BestScore()))
	statusContent.WriteString(fmt.Sprintf("Moves: %d\n", m.session.Moves()))
	statusContent.WriteString(fmt.Sprintf("Largest tile: %d\n", m.session.Board().MaxTile()))

	mode := "manual"
	if m.autoplay {
		mode = "bot"
	}
	statusContent.WriteString(fmt.Sprintf("Mode: %s\n", mode))
	if m.lastDirection != "" {
		statusContent.WriteString(fmt.Sprintf("Last move: %s\n", m.lastDirection))
	}

	if m.session.Won() {
		statusContent.WriteString("\n" + wonBannerStyle.Render("2048 reached! Keep going.") + "\n")
	}

	statusContent.WriteString("\n" + faintStyle.Render("ssh2048 v0.1"))
	return statusContent.String()
}
