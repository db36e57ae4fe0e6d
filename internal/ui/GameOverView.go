package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

const (
	restartButton = iota
	exitButton
)

// GameOverState holds the data and local state for rendering the game over screen.
type GameOverState struct {
	FinalScore     int
	BestScore      int
	MaxTile        int
	Moves          int
	Won            bool
	SelectedButton int
	ScreenWidth    int
	ScreenHeight   int
}

var (
	gameOverButtonStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("250")).
				Padding(0, 3).
				Margin(1, 1).
				Bold(true)

	selectedButtonStyle = gameOverButtonStyle.
				Background(lipgloss.Color("4")).
				Foreground(lipgloss.Color("15"))

	gameOverTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("9")).
				Padding(1, 5).
				Align(lipgloss.Center)

	wonTitleStyle = gameOverTitleStyle.Foreground(lipgloss.Color("214"))
)

func (g *GameOverState) selectPrevious() {
	g.SelectedButton = max(restartButton, g.SelectedButton-1)
}

func (g *GameOverState) selectNext() {
	g.SelectedButton = min(exitButton, g.SelectedButton+1)
}

// RenderGameOverScreen draws the final board next to the stats and buttons.
func (g *GameOverState) RenderGameOverScreen(renderedBoard string) string {
	title := gameOverTitleStyle.Render("G A M E   O V E R")
	if g.Won {
		title = wonTitleStyle.Render("G A M E   O V E R  ·  2048 reached")
	}

	stats := fmt.Sprintf("\nFinal score: %d\nBest score: %d\nLargest tile: %d\nMoves: %d\n",
		g.FinalScore, g.BestScore, g.MaxTile, g.Moves)

	restart := gameOverButtonStyle.Render("RESTART (r)")
	exit := gameOverButtonStyle.Render("EXIT (q)")
	if g.SelectedButton == restartButton {
		restart = selectedButtonStyle.Render("RESTART (r)")
	} else {
		exit = selectedButtonStyle.Render("EXIT (q)")
	}

	buttons := lipgloss.JoinHorizontal(lipgloss.Center, restart, exit)
	panel := lipgloss.JoinVertical(lipgloss.Center, title, stats, buttons)
	content := lipgloss.JoinHorizontal(lipgloss.Center, renderedBoard, panel)

	return lipgloss.Place(g.ScreenWidth, g.ScreenHeight,
		lipgloss.Center, lipgloss.Center,
		lipgloss.NewStyle().Border(lipgloss.ThickBorder()).Render(content),
	)
}
