package main

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"os"
	"time"

	"github.com/Mshel/ssh2048/internal/game"
	"github.com/Mshel/ssh2048/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"
)

func main() {
	_ = godotenv.Load()
	os.Exit(execute(context.Background(), newCommand(), os.Args, os.Stderr))
}

func newCommand() *cli.Command {
	return &cli.Command{
		Name:  "ssh2048",
		Usage: "play 2048 in the terminal",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "seed",
				Usage:   "random seed for tile spawns (0 picks one from the clock)",
				Sources: cli.EnvVars("SSH2048_SEED"),
			},
			&cli.BoolFlag{
				Name:    "autoplay",
				Usage:   "skip the menu and let the bot play",
				Sources: cli.EnvVars("SSH2048_AUTOPLAY"),
			},
			&cli.StringFlag{
				Name:    "strategy",
				Usage:   `bot strategy: "default", "lua" or a path to a Lua script`,
				Value:   "default",
				Sources: cli.EnvVars("SSH2048_STRATEGY"),
			},
			&cli.StringFlag{
				Name:    "log-file",
				Usage:   "write logs to this file instead of discarding them",
				Sources: cli.EnvVars("SSH2048_LOG_FILE"),
			},
			&cli.BoolFlag{
				Name:    "debug",
				Usage:   "enable debug logging",
				Sources: cli.EnvVars("SSH2048_DEBUG"),
			},
		},
		Action: run,
	}
}

// execute runs cmd and reports a failure on stderr, returning the exit code.
func execute(ctx context.Context, cmd *cli.Command, args []string, stderr io.Writer) int {
	if err := cmd.Run(ctx, args); err != nil {
		fmt.Fprintf(stderr, "error %v\n", err)
		return 1
	}
	return 0
}

func run(ctx context.Context, cmd *cli.Command) error {
	closeLog, err := setupLogging(cmd.String("log-file"), cmd.Bool("debug"))
	if err != nil {
		return err
	}
	defer closeLog()

	strategy, err := game.ResolveStrategy(cmd.String("strategy"))
	if err != nil {
		return fmt.Errorf("failed to load strategy: %w", err)
	}

	seed := cmd.Int("seed")
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	log.Info("Starting local game", "seed", seed, "strategy", cmd.String("strategy"))

	controller := ui.NewControllerModel(ui.ControllerOptions{
		Random:   rand.New(rand.NewSource(seed)),
		Strategy: strategy,
		Autoplay: cmd.Bool("autoplay"),
	})

	p := tea.NewProgram(controller, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run game: %w", err)
	}
	return nil
}

// setupLogging sends logs to path, or discards them when path is empty since
// the game owns the terminal.
func setupLogging(path string, debug bool) (func(), error) {
	if debug {
		log.SetLevel(log.DebugLevel)
	}

	if path == "" {
		log.SetOutput(io.Discard)
		return func() {}, nil
	}

	logFile, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %s: %w", path, err)
	}
	log.SetOutput(logFile)
	return func() { logFile.Close() }, nil
}
