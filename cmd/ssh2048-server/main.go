package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/Mshel/ssh2048/internal/game"
	"github.com/Mshel/ssh2048/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/bubbletea"
	"github.com/charmbracelet/wish/logging"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"
)

const shutdownTimeout = 30 * time.Second

func main() {
	_ = godotenv.Load()

	cmd := &cli.Command{
		Name:  "ssh2048-server",
		Usage: "serve 2048 over SSH",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "host",
				Value:   "0.0.0.0",
				Sources: cli.EnvVars("SSH2048_HOST"),
			},
			&cli.IntFlag{
				Name:    "port",
				Value:   6996,
				Sources: cli.EnvVars("SSH2048_PORT"),
			},
			&cli.StringFlag{
				Name:    "host-key",
				Usage:   "path to the SSH host private key (generated when missing)",
				Value:   ".ssh/id_ed25519",
				Sources: cli.EnvVars("SSH2048_PRIVATE_KEY_PATH"),
			},
			&cli.IntFlag{
				Name:    "max-connections-per-ip",
				Value:   2,
				Sources: cli.EnvVars("SSH2048_MAX_CONNECTIONS_PER_IP"),
			},
			&cli.StringFlag{
				Name:    "strategy",
				Usage:   `bot strategy: "default", "lua" or a path to a Lua script`,
				Value:   "default",
				Sources: cli.EnvVars("SSH2048_STRATEGY"),
			},
			&cli.BoolFlag{
				Name:    "debug",
				Sources: cli.EnvVars("SSH2048_DEBUG"),
			},
		},
		Action: serve,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Error("Server exited", "error", err)
		os.Exit(1)
	}
}

func serve(ctx context.Context, cmd *cli.Command) error {
	if cmd.Bool("debug") {
		log.SetLevel(log.DebugLevel)
	}

	strategy, err := game.ResolveStrategy(cmd.String("strategy"))
	if err != nil {
		return fmt.Errorf("failed to load strategy: %w", err)
	}

	host := cmd.String("host")
	port := strconv.Itoa(int(cmd.Int("port")))
	limiter := newConnectionLimiter(int(cmd.Int("max-connections-per-ip")))

	sshServer, err := wish.NewServer(
		wish.WithAddress(net.JoinHostPort(host, port)),
		wish.WithHostKeyPath(cmd.String("host-key")),
		wish.WithMiddleware(
			bubbletea.Middleware(newViewHandler(strategy)),
			logging.Middleware(),
			activeterm.Middleware(),
			limiter.Middleware,
		),
	)
	if err != nil {
		return fmt.Errorf("failed to create ssh server: %w", err)
	}

	serverDoneChannel := make(chan os.Signal, 1)
	signal.Notify(serverDoneChannel, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	serveErr := make(chan error, 1)
	log.Info("Starting SSH server", "host", host, "port", port)
	go func() {
		if err := sshServer.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			serveErr <- err
		}
	}()

	select {
	case <-serverDoneChannel:
	case <-ctx.Done():
	case err := <-serveErr:
		return fmt.Errorf("could not start server: %w", err)
	}

	log.Info("Stopping SSH server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := sshServer.Shutdown(shutdownCtx); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
		return fmt.Errorf("could not stop server: %w", err)
	}
	return nil
}

// newViewHandler gives every SSH session its own Session and random source.
func newViewHandler(strategy game.Strategy) bubbletea.Handler {
	return func(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
		pty, _, _ := sshSession.Pty()
		log.Debug("New game session", "user", sshSession.User(), "width", pty.Window.Width, "height", pty.Window.Height)

		controllerModel := ui.NewControllerModel(ui.ControllerOptions{
			Random:       rand.New(rand.NewSource(time.Now().UnixNano())),
			Strategy:     strategy,
			ScreenWidth:  pty.Window.Width,
			ScreenHeight: pty.Window.Height,
		})

		return controllerModel, []tea.ProgramOption{tea.WithAltScreen()}
	}
}
