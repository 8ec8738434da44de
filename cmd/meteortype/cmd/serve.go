package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tomz197/meteortype/internal/config"
	"github.com/tomz197/meteortype/internal/draw"
	"github.com/tomz197/meteortype/internal/game"
	"github.com/tomz197/meteortype/internal/loop"
	"github.com/tomz197/meteortype/internal/narrate"
	"github.com/tomz197/meteortype/internal/store"
	"github.com/tomz197/meteortype/internal/vocab"
)

// shutdownGrace is how long players get to see the shutdown notice.
const shutdownGrace = 15 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Host games over SSH",
	Long: `Start an SSH server. Every connection plays its own game; scores,
statistics and missed words go to the shared database.

Connect with: ssh -t -p 2222 player@host`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("host", "::", "address to listen on")
	serveCmd.Flags().Int("port", 2222, "port to listen on")
	serveCmd.Flags().String("host-key", "", "SSH host key path (default is <config>/host_key)")

	viper.BindPFlag("ssh.host", serveCmd.Flags().Lookup("host"))
	viper.BindPFlag("ssh.port", serveCmd.Flags().Lookup("port"))
	viper.BindPFlag("ssh.host_key", serveCmd.Flags().Lookup("host-key"))
}

// gameServer holds what SSH sessions share.
type gameServer struct {
	cfg      config.Config
	store    *store.Store
	narrator narrate.Narrator
	logger   *log.Logger
	words    *wordHub
	shutdown chan struct{}
	sessions sync.WaitGroup

	mu   sync.RWMutex
	pool *vocab.Pool
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(os.Stderr, cfg)

	// Sessions are not the process's stdout; force colors for the remote terminals.
	lipgloss.SetColorProfile(termenv.ANSI256)

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	pool, err := loadPool(ctx, cfg, st)
	if err != nil {
		return fmt.Errorf("loading words: %w", err)
	}

	narrator, closeNarrator := openNarrator(cfg, logger)
	defer closeNarrator()

	gs := &gameServer{
		cfg:      cfg,
		store:    st,
		narrator: narrator,
		logger:   logger,
		words:    newWordHub(),
		shutdown: make(chan struct{}),
		pool:     pool,
	}
	if cfg.Words != "" {
		words, err := watchWords(ctx, cfg.Words, cfg.Tag, logger)
		if err != nil {
			logger.Warn("word list will not be reloaded", "err", err)
		} else {
			go gs.forwardWords(words)
		}
	}

	addr := net.JoinHostPort(cfg.SSH.Host, strconv.Itoa(cfg.SSH.Port))
	opts := []ssh.Option{
		wish.WithAddress(addr),
		wish.WithMiddleware(
			gs.middleware,
			activeterm.Middleware(),
			logging.MiddlewareWithLogger(logger),
		),
		// Set TCP_NODELAY to reduce latency for game input
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}
	if cfg.SSH.HostKey != "" {
		opts = append(opts, wish.WithHostKeyPath(cfg.SSH.HostKey))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	serveErr := make(chan error, 1)

	logger.Info("starting SSH server", "addr", addr, "words", pool.Len())
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			serveErr <- err
		}
	}()

	select {
	case <-done:
	case err := <-serveErr:
		return fmt.Errorf("server error: %w", err)
	}
	logger.Info("shutting down server")

	// Notify connected players and give them time to leave
	gs.Shutdown(shutdownGrace)
	cancel()

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := s.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown error: %w", err)
	}
	return nil
}

// middleware handles SSH sessions and runs one game per session.
func (gs *gameServer) middleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		pty, winCh, ok := sess.Pty()
		if !ok {
			fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
			return
		}
		gs.sessions.Add(1)
		defer gs.sessions.Done()

		logger := gs.logger.With("user", sess.User())
		logger.Info("new game session", "term", pty.Term, "width", pty.Window.Width, "height", pty.Window.Height)

		// Create a terminal size tracker that updates on window changes
		sizeTracker := newSizeTracker(pty.Window.Width, pty.Window.Height)
		go func() {
			for win := range winCh {
				sizeTracker.update(win.Width, win.Height)
			}
		}()

		ctx := sess.Context()
		highScore, err := gs.store.HighScore(ctx)
		if err != nil {
			logger.Warn("reading high score", "err", err)
		}
		g := game.New(game.OptionsFromConfig(gs.cfg), gs.currentPool(), highScore)
		host := loop.NewHost(ctx, gs.store, gs.narrator, nil, logger)

		words := gs.words.subscribe()
		defer gs.words.unsubscribe(words)

		c := loop.NewClient(g, host, gs.cfg, bufio.NewReader(sess), sess, loop.ClientOptions{
			TermSizeFunc: sizeTracker.getSize,
			Username:     sess.User(),
			Words:        words,
			Shutdown:     gs.shutdown,
			Logger:       logger,
		})
		if err := c.Run(ctx); err != nil {
			logger.Error("game error", "err", err)
		}

		logger.Info("session ended", "score", g.State().Score)
		next(sess)
	}
}

// Shutdown tells every session to show the shutdown notice and waits up to
// grace for them to disconnect.
func (gs *gameServer) Shutdown(grace time.Duration) {
	close(gs.shutdown)

	waited := make(chan struct{})
	go func() {
		gs.sessions.Wait()
		close(waited)
	}()
	select {
	case <-waited:
		gs.logger.Info("all players disconnected")
	case <-time.After(grace):
		gs.logger.Warn("players still connected after grace period")
	}
}

func (gs *gameServer) currentPool() *vocab.Pool {
	gs.mu.RLock()
	defer gs.mu.RUnlock()
	return gs.pool
}

// forwardWords keeps the pool for new sessions current and pushes reloaded
// lists to running ones.
func (gs *gameServer) forwardWords(words <-chan []vocab.Entry) {
	for entries := range words {
		pool, err := vocab.NewPool(entries)
		if err != nil {
			continue
		}
		gs.mu.Lock()
		gs.pool = pool
		gs.mu.Unlock()
		gs.words.publish(entries)
	}
}

// wordHub fans reloaded word lists out to sessions. Slow sessions only get
// the latest list.
type wordHub struct {
	mu   sync.Mutex
	subs map[chan []vocab.Entry]struct{}
}

func newWordHub() *wordHub {
	return &wordHub{subs: make(map[chan []vocab.Entry]struct{})}
}

func (h *wordHub) subscribe() chan []vocab.Entry {
	ch := make(chan []vocab.Entry, 1)
	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()
	return ch
}

func (h *wordHub) unsubscribe(ch chan []vocab.Entry) {
	h.mu.Lock()
	delete(h.subs, ch)
	h.mu.Unlock()
}

func (h *wordHub) publish(entries []vocab.Entry) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs {
		// Drop a list the session has not picked up yet
		select {
		case <-ch:
		default:
		}
		ch <- entries
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
