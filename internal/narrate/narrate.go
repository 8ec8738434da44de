// Package narrate speaks short phrases through an external collaborator.
// Every call is fire-and-forget: Say never blocks on speech and never fails.
package narrate

import (
	"context"
	"os/exec"
	"slices"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
)

// GameOverPhrase is spoken when the ground has taken its last hit.
const GameOverPhrase = "Game Over! Earth has been hit."

// Narrator speaks text.
type Narrator interface {
	Say(text string)
}

// Nop discards everything.
type Nop struct{}

func (Nop) Say(string) {}

// Logger writes phrases to a logger instead of speaking them.
type Logger struct {
	Log *log.Logger
}

func (l Logger) Say(text string) {
	if l.Log != nil {
		l.Log.Info("narrate", "text", text)
	}
}

// Command runs an external text-to-speech program (espeak, say, ...) with
// the phrase as its last argument. A new phrase interrupts the one in progress.
type Command struct {
	name string
	args []string
	log  *log.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewCommand creates a Command narrator from a command line such as "espeak -s 140".
func NewCommand(cmdline string, logger *log.Logger) *Command {
	fields := strings.Fields(cmdline)
	c := &Command{log: logger}
	if len(fields) > 0 {
		c.name = fields[0]
		c.args = fields[1:]
	}
	return c
}

// Say starts the speech program and returns immediately.
func (c *Command) Say(text string) {
	if c.name == "" || strings.TrimSpace(text) == "" {
		return
	}

	c.mu.Lock()
	if c.cancel != nil {
		c.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel
	c.mu.Unlock()

	args := append(slices.Clip(c.args), text)
	cmd := exec.CommandContext(ctx, c.name, args...)
	if err := cmd.Start(); err != nil {
		cancel()
		if c.log != nil {
			c.log.Warn("narrator unavailable", "cmd", c.name, "err", err)
		}
		return
	}

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		defer cancel()
		// Killed processes report an error too; nothing to do with it.
		_ = cmd.Wait()
	}()
}

// Close stops any phrase in progress and waits for the process to exit.
func (c *Command) Close() {
	c.mu.Lock()
	if c.cancel != nil {
		c.cancel()
	}
	c.mu.Unlock()
	c.wg.Wait()
}

// New picks a narrator: "" is silent, "log" logs phrases, anything else is a command line.
func New(setting string, logger *log.Logger) Narrator {
	switch strings.TrimSpace(setting) {
	case "":
		return Nop{}
	case "log":
		return Logger{Log: logger}
	default:
		return NewCommand(setting, logger)
	}
}
