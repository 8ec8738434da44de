package cmd

import (
	"bufio"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/tomz197/meteortype/internal/audio"
	"github.com/tomz197/meteortype/internal/game"
	"github.com/tomz197/meteortype/internal/loop"
	"github.com/tomz197/meteortype/internal/sfx"
)

// runPlay runs a game in the current terminal.
func runPlay(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// The game owns the terminal, so logs go to a file.
	logFile, err := openLogFile(cfg)
	if err != nil {
		return err
	}
	defer logFile.Close()
	logger := newLogger(logFile, cfg)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	pool, err := loadPool(ctx, cfg, st)
	if err != nil {
		return fmt.Errorf("loading words: %w", err)
	}
	highScore, err := st.HighScore(ctx)
	if err != nil {
		logger.Warn("reading high score", "err", err)
	}
	g := game.New(game.OptionsFromConfig(cfg), pool, highScore)

	var sound sfx.Player
	if cfg.Sound {
		player := audio.NewPlayer()
		if err := player.Initialize(); err != nil {
			logger.Warn("sound disabled", "err", err)
		} else {
			defer player.Close()
			sound = player
		}
	}

	narrator, closeNarrator := openNarrator(cfg, logger)
	defer closeNarrator()
	host := loop.NewHost(ctx, st, narrator, sound, logger)

	opts := loop.ClientOptions{Logger: logger}
	if cfg.Words != "" {
		words, err := watchWords(ctx, cfg.Words, cfg.Tag, logger)
		if err != nil {
			logger.Warn("word list will not be reloaded", "err", err)
		} else {
			opts.Words = words
		}
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("enabling raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	logger.Info("game started", "words", pool.Len(), "mode", cfg.Mode, "tag", cfg.Tag)
	c := loop.NewClient(g, host, cfg, bufio.NewReader(os.Stdin), os.Stdout, opts)
	if err := c.Run(ctx); err != nil {
		return fmt.Errorf("game error: %w", err)
	}
	return nil
}
