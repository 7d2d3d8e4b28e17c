package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"
	gossh "golang.org/x/crypto/ssh"

	"github.com/iamasit07/vier-gewinnt/internal/service/game"
	"github.com/iamasit07/vier-gewinnt/pkg/uid"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key is generated at ~/.vier-gewinnt/host_key.
	HostKeyPath string

	IdleTimeout time.Duration
}

// SSHServer serves the game screen to SSH clients. Players are recognised
// by their public key and share the session store with the web front end.
type SSHServer struct {
	config   SSHServerConfig
	server   *ssh.Server
	sessions *game.SessionManager
	history  game.HistoryRepository
	logger   *log.Logger
}

func NewSSHServer(cfg SSHServerConfig, sessions *game.SessionManager, history game.HistoryRepository) (*SSHServer, error) {
	if cfg.IdleTimeout == 0 {
		cfg.IdleTimeout = 30 * time.Minute
	}

	srv := &SSHServer{
		config:   cfg,
		sessions: sessions,
		history:  history,
		logger:   log.WithPrefix("SSH"),
	}

	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", err)
		}
		hostKeyPath = filepath.Join(home, ".vier-gewinnt", "host_key")
	}
	if err := os.MkdirAll(filepath.Dir(hostKeyPath), 0o700); err != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", err)
	}

	server, err := wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithPublicKeyAuth(func(ssh.Context, ssh.PublicKey) bool { return true }),
		wish.WithKeyboardInteractiveAuth(func(ssh.Context, gossh.KeyboardInteractiveChallenge) bool { return true }),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	)
	if err != nil {
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// identity names the player behind an SSH session: the key fingerprint when
// a key was offered, the user name otherwise.
func identity(sshSession ssh.Session) string {
	if key := sshSession.PublicKey(); key != nil {
		return gossh.FingerprintSHA256(key)
	}
	return "user:" + sshSession.User()
}

func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	if _, _, ok := sshSession.Pty(); !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		wish.Fatalln(sshSession, "a terminal is required: ssh -t")
		return nil, nil
	}

	sessionID := uid.SessionIDFor(identity(sshSession))
	session, err := s.sessions.Get(sshSession.Context(), sessionID)
	if err != nil {
		s.logger.Error("opening game session", "err", err)
		wish.Fatalln(sshSession, "could not open game session")
		return nil, nil
	}

	model := NewModel(session, s.history)
	go func() {
		<-sshSession.Context().Done()
		model.Close()
	}()

	return model, []tea.ProgramOption{tea.WithAltScreen()}
}

func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
	}
}

// Run serves until ctx is done, then shuts the server down.
func (s *SSHServer) Run(ctx context.Context) error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	errCh := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.server.Shutdown(shutdownCtx)
}

func (s *SSHServer) Addr() string {
	return s.config.Address
}
