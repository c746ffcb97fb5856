package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/bubbletea"
	"github.com/charmbracelet/wish/logging"
	"github.com/tomz197/spacecleanup/internal/assets"
	"github.com/tomz197/spacecleanup/internal/audio"
	"github.com/tomz197/spacecleanup/internal/config"
	"github.com/tomz197/spacecleanup/internal/draw"
	"github.com/tomz197/spacecleanup/internal/loop"
	"github.com/tomz197/spacecleanup/internal/object"
	"github.com/tomz197/spacecleanup/internal/save"
	"github.com/tomz197/spacecleanup/internal/session"
)

const (
	defaultHost        = "::"
	defaultPort        = "2222"
	defaultHostKeyPath = "/app/keys/host_key"
	defaultDBPath      = "data/spacecleanup.db"
	defaultMaxSessions = 64

	shutdownNoticeTimeout = 15 * time.Second
)

// server bundles what every session shares.
type server struct {
	hub     *session.Hub
	db      *save.DB
	sprites object.SpriteSet
	logger  *log.Logger
}

func main() {
	logger := config.NewLogger(os.Stderr, "ssh")

	host := config.GetEnv("SSH_HOST", defaultHost)
	port := config.GetEnv("SSH_PORT", defaultPort)
	hostKeyPath := config.GetEnv("SSH_HOST_KEY", defaultHostKeyPath)
	dbPath := config.GetEnv("SSH_DB_PATH", defaultDBPath)
	maxSessions := config.GetEnvInt("SSH_MAX_SESSIONS", defaultMaxSessions)
	logger.Info("SSH config", "host", host, "port", port, "hostKeyPath", hostKeyPath, "db", dbPath, "maxSessions", maxSessions)

	sprites, err := assets.LoadLibrary()
	if err != nil {
		logger.Fatal("failed to load sprites", "err", err)
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		logger.Fatal("failed to create db dir", "err", err)
	}
	db, err := save.OpenDB(dbPath)
	if err != nil {
		logger.Fatal("failed to open save db", "err", err)
	}
	defer db.Close()

	srv := &server{
		hub:     session.NewHub(maxSessions),
		db:      db,
		sprites: sprites,
		logger:  logger,
	}

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(host, port)),
		wish.WithMiddleware(
			srv.gameMiddleware,
			activeterm.Middleware(),
			logging.StructuredMiddlewareWithLogger(logger, log.InfoLevel),
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
		logger.Fatal("failed to create server", "err", err)
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("Starting SSH server", "host", host, "port", port)
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			logger.Error("server error", "err", err)
			done <- syscall.SIGTERM
		}
	}()

	<-done
	logger.Info("Shutting down server...")

	// Notify players, give their games time to save and disconnect
	logger.Info("Notifying connected players about shutdown...", "sessions", srv.hub.Count(), "players", srv.hub.Usernames())
	srv.hub.Shutdown(shutdownNoticeTimeout)
	if left := srv.hub.Usernames(); len(left) > 0 {
		logger.Warn("sessions still open after shutdown notice", "players", left)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "err", err)
	}
}

// gameMiddleware runs one game per SSH session.
func (srv *server) gameMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		pty, winCh, ok := sess.Pty()
		if !ok {
			fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
			return
		}

		user := sess.User()
		handle, err := srv.hub.Register(user)
		if err != nil {
			if errors.Is(err, session.ErrFull) {
				fmt.Fprintln(sess, "The server is full right now. Please try again later.")
			}
			srv.logger.Warn("session rejected", "user", user, "err", err)
			return
		}
		defer srv.hub.Unregister(handle.ID)

		logger := srv.logger.With("user", user, "session", handle.ID)
		logger.Info("New game session", "terminal", pty.Term, "width", pty.Window.Width, "height", pty.Window.Height)

		// Create a terminal size tracker that updates on window changes
		sizeTracker := newSizeTracker(pty.Window.Width, pty.Window.Height)

		// Listen for window size changes in a goroutine
		go func() {
			for win := range winCh {
				sizeTracker.update(win.Width, win.Height)
			}
		}()

		err = loop.Run(sess.Context(), sess, sess, loop.Options{
			Store:        srv.db.ForUser(user),
			Audio:        audio.Bell{W: sess},
			Logger:       logger,
			Sprites:      srv.sprites,
			Renderer:     bubbletea.MakeRenderer(sess),
			TermSizeFunc: sizeTracker.getSize,
			Events:       handle.Events,
			Idle:         true,
		})
		if err != nil {
			logger.Error("Game error", "err", err)
		}

		logger.Info("Session ended")
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
