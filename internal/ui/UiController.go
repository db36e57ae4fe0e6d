package ui

import (
	"github.com/Mshel/ssh2048/internal/game"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
)

type Screen int

const (
	IntroScreen Screen = iota
	GameScreen
)

// IntroSubmitMsg carries the menu option picked on the intro screen.
type IntroSubmitMsg int

// ControllerOptions configures a ControllerModel for one player.
type ControllerOptions struct {
	Random       game.RandomSource
	Strategy     game.Strategy
	ScreenWidth  int
	ScreenHeight int
	// Autoplay skips the intro and starts a game with the bot playing.
	Autoplay bool
}

type ControllerModel struct {
	CurrentScreen Screen

	IntroModel tea.Model
	GameModel  tea.Model

	random       game.RandomSource
	strategy     game.Strategy
	autoplay     bool
	ScreenWidth  int
	ScreenHeight int
}

func NewControllerModel(options ControllerOptions) ControllerModel {
	return ControllerModel{
		CurrentScreen: IntroScreen,
		IntroModel:    NewIntroModel(options.ScreenWidth, options.ScreenHeight),

		random:       options.Random,
		strategy:     options.Strategy,
		autoplay:     options.Autoplay,
		ScreenWidth:  options.ScreenWidth,
		ScreenHeight: options.ScreenHeight,
	}
}

func (m ControllerModel) Init() tea.Cmd {
	if m.autoplay {
		return func() tea.Msg { return WatchBotOption }
	}
	return m.IntroModel.Init()
}

func (m ControllerModel) View() string {
	switch m.CurrentScreen {
	case IntroScreen:
		return m.IntroModel.View()
	case GameScreen:
		if m.GameModel != nil {
			return m.GameModel.View()
		}
		return "Game Loading..."
	default:
		return "Unknown Screen"
	}
}

func (m ControllerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "ctrl+c" || (m.CurrentScreen == IntroScreen && msg.String() == "q") {
			return m, tea.Quit
		}
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ScreenWidth = msg.Width
		m.ScreenHeight = msg.Height
		m.IntroModel, _ = m.IntroModel.Update(msg)
		if m.GameModel != nil {
			m.GameModel, cmd = m.GameModel.Update(msg)
		}
		return m, cmd

	case IntroSubmitMsg:
		autoplay := msg == WatchBotOption
		log.Info("Starting game", "autoplay", autoplay)

		m.CurrentScreen = GameScreen
		m.GameModel = NewGameModel(game.NewSession(m.random), m.strategy, autoplay, m.ScreenWidth, m.ScreenHeight)
		return m, m.GameModel.Init()

	default:
		switch m.CurrentScreen {
		case IntroScreen:
			m.IntroModel, cmd = m.IntroModel.Update(msg)
		case GameScreen:
			if m.GameModel != nil {
				m.GameModel, cmd = m.GameModel.Update(msg)
			}
		}
	}

	return m, cmd
}
