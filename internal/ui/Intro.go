package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	PlayOption IntroSubmitMsg = iota
	WatchBotOption
)

// IntroModel holds the state for the main menu.
type IntroModel struct {
	selected IntroSubmitMsg
	width    int
	height   int
}

func NewIntroModel(w, h int) IntroModel {
	return IntroModel{selected: PlayOption, width: w, height: h}
}

func (m IntroModel) Init() tea.Cmd { return nil }

func (m IntroModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case tea.KeyMsg:
		switch msg.String() {
		case "left", "h", "a", "right", "l", "d", "tab":
			if m.selected == PlayOption {
				m.selected = WatchBotOption
			} else {
				m.selected = PlayOption
			}
		case "enter":
			selected := m.selected
			return m, func() tea.Msg { return selected }
		}
	}
	return m, nil
}

var twentyFortyEightAscii = `
 ██████╗  ██████╗ ██╗  ██╗ █████╗
 ╚════██╗██╔═████╗██║  ██║██╔══██╗
  █████╔╝██║██╔██║███████║╚█████╔╝
 ██╔═══╝ ████╔╝██║╚════██║██╔══██╗
 ███████╗╚██████╔╝     ██║╚█████╔╝
 ╚══════╝ ╚═════╝      ╚═╝ ╚════╝
`

var (
	asciiStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	introButtonStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("250")).
				Padding(0, 3).
				Margin(1, 2).
				Border(lipgloss.RoundedBorder())

	introSelectedButtonStyle = introButtonStyle.
					Background(lipgloss.Color("214")).
					Foreground(lipgloss.Color("0"))

	introHelpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

func (m IntroModel) View() string {
	var sb strings.Builder
	sb.WriteString("\n")
	sb.WriteString(asciiStyle.Render(twentyFortyEightAscii))
	sb.WriteString("\n")

	play := introButtonStyle.Render("Play")
	watch := introButtonStyle.Render("Watch Bot")

	if m.selected == PlayOption {
		play = introSelectedButtonStyle.Render("Play")
	} else {
		watch = introSelectedButtonStyle.Render("Watch Bot")
	}

	buttons := lipgloss.JoinHorizontal(lipgloss.Center, play, watch)
	help := introHelpStyle.Render("(left/right to choose, enter to confirm, q to quit)")

	content := lipgloss.JoinVertical(lipgloss.Center, sb.String(), buttons, help)

	return lipgloss.Place(m.width, m.height,
		lipgloss.Center, lipgloss.Center,
		content,
	)
}
