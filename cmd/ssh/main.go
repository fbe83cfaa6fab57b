package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tomz197/spacepirate/internal/audio"
	"github.com/tomz197/spacepirate/internal/config"
	"github.com/tomz197/spacepirate/internal/draw"
	"github.com/tomz197/spacepirate/internal/loop"
)

const (
	defaultHost        = "::"
	defaultPort        = "2222"
	defaultHostKeyPath = "/app/keys/host_key"
	gameDrainTimeout   = 15 * time.Second
)

// arcade hosts one independent game per SSH session.
type arcade struct {
	rules  config.Rules
	log    *zap.Logger
	ctx    context.Context // Canceled on shutdown to end every running game
	active sync.WaitGroup

	mu      sync.Mutex
	closing bool // Set once shutdown waits on active; no new games start
}

func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	logger, err := config.NewLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	host := config.GetEnv("SSH_HOST", defaultHost)
	port := config.GetEnv("SSH_PORT", defaultPort)
	hostKeyPath := config.GetEnv("SSH_HOST_KEY", defaultHostKeyPath)
	workingDir, workErr := os.Getwd()
	if workErr != nil {
		logger.Warn("failed to get working directory", zap.Error(workErr))
	}
	logger.Info("ssh config",
		zap.String("host", host),
		zap.String("port", port),
		zap.String("host_key", hostKeyPath),
		zap.String("working_dir", workingDir))

	gamesCtx, endGames := context.WithCancel(context.Background())
	defer endGames()
	a := &arcade{rules: cfg.Rules, log: logger, ctx: gamesCtx}

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(host, port)),
		wish.WithMiddleware(
			a.gameMiddleware,
			activeterm.Middleware(),
			logging.Middleware(),
		),
		// Set TCP_NODELAY to reduce latency for game input
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}
	if hostKeyPath != "" {
		opts = append(opts, wish.WithHostKeyPath(hostKeyPath))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		logger.Fatal("failed to create server", zap.Error(err))
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("starting ssh server", zap.String("addr", net.JoinHostPort(host, port)))
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	<-done
	logger.Info("shutting down server")

	// End running games so their sessions restore the terminal and close.
	endGames()
	a.wait(gameDrainTimeout)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", zap.Error(err))
	}
}

// enter registers a new game. It reports false once shutdown has begun.
func (a *arcade) enter() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closing {
		return false
	}
	a.active.Add(1)
	return true
}

// wait stops new games, then blocks until every running game has returned
// or the timeout passes.
func (a *arcade) wait(timeout time.Duration) {
	a.mu.Lock()
	a.closing = true
	a.mu.Unlock()

	finished := make(chan struct{})
	go func() {
		a.active.Wait()
		close(finished)
	}()
	select {
	case <-finished:
		a.log.Info("all games stopped")
	case <-time.After(timeout):
		a.log.Warn("games still running at shutdown", zap.Duration("waited", timeout))
	}
}

// gameMiddleware runs a game on the session's PTY.
func (a *arcade) gameMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		pty, winCh, ok := sess.Pty()
		if !ok {
			fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
			return
		}

		log := a.log.With(
			zap.String("session", uuid.NewString()),
			zap.String("user", sess.User()))
		log.Info("new game session",
			zap.String("terminal", pty.Term),
			zap.Int("width", pty.Window.Width),
			zap.Int("height", pty.Window.Height))

		// Create a terminal size tracker that updates on window changes
		sizeTracker := newSizeTracker(pty.Window.Width, pty.Window.Height)
		go func() {
			for win := range winCh {
				sizeTracker.update(win.Width, win.Height)
			}
		}()

		ctx, cancel := context.WithCancel(sess.Context())
		defer cancel()
		stop := context.AfterFunc(a.ctx, cancel)
		defer stop()

		if !a.enter() {
			fmt.Fprintln(sess, "Server is shutting down. Please try again later.")
			return
		}
		err := loop.Run(ctx, bufio.NewReader(sess), sess, loop.Options{
			Rules:    a.rules,
			Logger:   log,
			Audio:    audio.NewBell(sess),
			TermSize: sizeTracker.getSize,
		})
		a.active.Done()
		if err != nil {
			log.Error("game error", zap.Error(err))
		}

		log.Info("session ended")
		next(sess)
	}
}

// sizeTracker tracks terminal size from SSH window change events.
type sizeTracker struct {
	mu     sync.RWMutex
	width  int
	height int
}

func newSizeTracker(width, height int) *sizeTracker {
	return &sizeTracker{width: width, height: height}
}

func (s *sizeTracker) update(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
}

func (s *sizeTracker) getSize() (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height, nil
}

// Ensure sizeTracker.getSize satisfies draw.TermSizeFunc
var _ draw.TermSizeFunc = (*sizeTracker)(nil).getSize
