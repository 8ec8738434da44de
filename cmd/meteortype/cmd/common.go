package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/tomz197/meteortype/internal/config"
	"github.com/tomz197/meteortype/internal/narrate"
	"github.com/tomz197/meteortype/internal/store"
	"github.com/tomz197/meteortype/internal/vocab"
	"github.com/tomz197/meteortype/internal/watch"
)

// newLogger creates a structured logger writing to w.
func newLogger(w io.Writer, cfg config.Config) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "meteortype",
	})
	if cfg.Verbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// openLogFile opens the log file used while the game owns the terminal.
func openLogFile(cfg config.Config) (*os.File, error) {
	path := filepath.Join(cfg.ConfigDir, "meteortype.log")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	return f, nil
}

// openStore opens the sqlite database named by the config.
func openStore(cfg config.Config) (*store.Store, error) {
	kv, err := store.OpenSQLite(cfg.DB)
	if err != nil {
		return nil, err
	}
	return store.New(kv), nil
}

// openNarrator builds the configured narrator. The returned func stops any
// phrase still being spoken and waits for the speech program to exit.
func openNarrator(cfg config.Config, logger *log.Logger) (narrate.Narrator, func()) {
	n := narrate.New(cfg.Narrator, logger)
	if c, ok := n.(*narrate.Command); ok {
		return n, c.Close
	}
	return n, func() {}
}

// loadPool picks the word pool: the --words file, then the imported custom
// list, then the built-in vocabulary. A configured tag narrows it down.
func loadPool(ctx context.Context, cfg config.Config, st *store.Store) (*vocab.Pool, error) {
	entries, err := poolEntries(ctx, cfg, st)
	if err != nil {
		return nil, err
	}
	if cfg.Tag != "" {
		if entries = vocab.WithTag(entries, cfg.Tag); len(entries) == 0 {
			return nil, fmt.Errorf("no words tagged %q", cfg.Tag)
		}
	}
	return vocab.NewPool(entries)
}

func poolEntries(ctx context.Context, cfg config.Config, st *store.Store) ([]vocab.Entry, error) {
	if cfg.Words != "" {
		return vocab.LoadFile(cfg.Words)
	}

	entries, err := st.Words(ctx)
	if errors.Is(err, store.ErrNotFound) {
		return vocab.Default(), nil
	}
	return entries, err
}

// watchWords re-reads path whenever it changes and sends the parsed list,
// narrowed to tag, on the returned channel. Unparsable versions are logged
// and skipped. The channel is closed after ctx is done.
func watchWords(ctx context.Context, path, tag string, logger *log.Logger) (<-chan []vocab.Entry, error) {
	w, err := watch.NewFile(path, watch.DefaultDebounce)
	if err != nil {
		return nil, err
	}

	out := make(chan []vocab.Entry, 1)
	go func() {
		defer close(out)
		defer w.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				logger.Warn("watching word list", "err", err)
			case changed, ok := <-w.Events:
				if !ok {
					return
				}
				entries, err := vocab.LoadFile(changed)
				if err != nil {
					logger.Warn("word list changed but could not be loaded", "path", changed, "err", err)
					continue
				}
				if entries = vocab.WithTag(entries, tag); len(entries) == 0 {
					logger.Warn("word list changed but has no words with the tag", "path", changed, "tag", tag)
					continue
				}
				logger.Info("word list reloaded", "path", changed, "entries", len(entries))
				select {
				case out <- entries:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}
