package loop

import (
	"bufio"
	"context"
	"errors"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/meteortype/internal/config"
	"github.com/tomz197/meteortype/internal/draw"
	"github.com/tomz197/meteortype/internal/game"
	"github.com/tomz197/meteortype/internal/input"
	"github.com/tomz197/meteortype/internal/object"
	"github.com/tomz197/meteortype/internal/vocab"
)

// maxLine bounds the typed buffer; no answer is anywhere near this long.
const maxLine = 64

// Client runs one game in one terminal.
type Client struct {
	game         *game.Game
	host         *Host
	cfg          config.Config
	state        frameState
	canvas       *draw.Canvas
	chunkWriter  *draw.ChunkWriter // Accumulates the frame for chunked output
	text         draw.TextLayer    // Labels and HUD drawn over the canvas
	writer       io.Writer
	inputStream  *input.Stream
	line         input.Line
	timers       Timers
	lastInput    time.Time
	termSizeFunc draw.TermSizeFunc
	words        <-chan []vocab.Entry
	shutdown     <-chan struct{}
	logger       *log.Logger
	err          error
}

// ClientOptions configures the client.
type ClientOptions struct {
	TermSizeFunc draw.TermSizeFunc
	Username     string
	Words        <-chan []vocab.Entry // Lists re-imported from a watched file
	Shutdown     <-chan struct{}      // Closed when the server is going down
	Logger       *log.Logger
}

// NewClient creates a client driving g. The host receives g's events.
func NewClient(g *game.Game, host *Host, cfg config.Config, r *bufio.Reader, w io.Writer, opts ClientOptions) *Client {
	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.DefaultTermSizeFunc
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	if opts.Username != "" {
		logger = logger.With("user", opts.Username)
	}
	if host != nil {
		g.AddListener(host)
	}

	// Create canvas with clamped dimensions for max render resolution
	termWidth, termHeight, _ := termSizeFunc()
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)
	view := g.Options().View
	canvas := draw.NewScaledCanvas(renderWidth, renderHeight, float64(view.Width), float64(view.Height))
	canvas.SetOffset(offsetCol, offsetRow)

	return &Client{
		game:         g,
		host:         host,
		cfg:          cfg,
		state:        newFrameState(),
		canvas:       canvas,
		chunkWriter:  draw.NewChunkWriter(w, offsetCol, offsetRow),
		writer:       w,
		inputStream:  input.StartStream(r),
		line:         input.Line{Max: maxLine},
		lastInput:    time.Now(),
		termSizeFunc: termSizeFunc,
		words:        opts.Words,
		shutdown:     opts.Shutdown,
		logger:       logger,
	}
}

// Run starts the client loop. It blocks until the player quits, the input
// ends, the shutdown countdown expires or ctx is cancelled.
func (c *Client) Run(ctx context.Context) error {
	draw.HideCursor(c.writer)
	defer draw.ShowCursor(c.writer)
	draw.ClearScreen(c.writer)

	err := NewScheduler(c.cfg.FrameTime()).Run(ctx, c.frame)
	c.timers.CancelAll()
	draw.ClearScreen(c.writer)

	if c.err != nil {
		return c.err
	}
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// frame is the StepFunc handed to the scheduler.
func (c *Client) frame(now time.Duration) bool {
	c.state.delta = now - c.state.now
	c.state.now = now
	c.state.frame++

	c.timers.Fire(now)
	c.processInput()
	c.processEvents()
	c.updateScreen()

	if c.state.stepping {
		c.state.stepping = c.game.Step(now)
	}
	if c.state.shuttingDown {
		c.state.shutdownTimer -= c.state.delta.Seconds()
		if c.state.shutdownTimer <= 0 {
			c.state.running = false
		}
	}

	if err := c.drawFrame(); err != nil {
		c.err = err
		return false
	}
	return c.state.running
}

// processInput applies every key typed since the last frame.
func (c *Client) processInput() {
	keys := input.ReadKeys(c.inputStream)

	if len(keys) > 0 {
		c.lastInput = time.Now()
		c.state.isInactive = false
	} else if time.Since(c.lastInput).Seconds() > config.InactivityDisconnectUser {
		c.logger.Info("disconnecting inactive player")
		c.state.running = false
	} else if time.Since(c.lastInput).Seconds() > config.InactivityWarnUser {
		c.state.isInactive = true
	}

	for _, k := range keys {
		if !c.state.running {
			return
		}
		c.handleKey(k)
	}
}

func (c *Client) handleKey(k input.Key) {
	current := stateFor(c.game.State().Phase, c.state.shuttingDown)

	switch k.Type {
	case input.KeyEOF, input.KeyCtrlC:
		c.state.running = false
		return
	case input.KeyEscape:
		if current == statePlaying || current == stateGameOver {
			c.abandonRound()
		} else {
			c.state.running = false
		}
		return
	case input.KeyTab:
		mode := c.game.ToggleMode()
		c.logger.Debug("mode toggled", "mode", mode)
		return
	case input.KeyEnter:
		if current == stateStart || current == stateGameOver {
			c.startGame()
		}
		return
	}

	switch current {
	case statePlaying:
		if c.line.Apply(k) {
			c.typed()
		}
	case stateGameOver:
		if k.Type == input.KeyRune && k.Rune >= '1' && k.Rune <= '9' {
			c.narrateMissed(int(k.Rune - '1'))
		}
	}
}

// typed runs the matcher on the current buffer.
func (c *Client) typed() {
	buf := c.line.String()
	if c.game.Type(buf) {
		c.line.Clear()
		c.clearMismatch()
		return
	}
	if !c.game.HasPrefixMatch(buf) {
		c.flagMismatch()
	} else {
		c.clearMismatch()
	}
}

// flagMismatch turns the input line red for a short while and buzzes.
func (c *Client) flagMismatch() {
	if c.host != nil {
		c.host.Mismatch()
	}
	c.timers.Cancel(c.state.mismatchTimer)
	c.state.mismatch = true
	c.state.mismatchTimer = c.timers.After(c.state.now+config.MismatchFlash, func() {
		c.state.mismatch = false
	})
}

func (c *Client) clearMismatch() {
	c.timers.Cancel(c.state.mismatchTimer)
	c.state.mismatch = false
}

func (c *Client) narrateMissed(i int) {
	missed := c.game.State().Missed
	if i < len(missed) && c.host != nil {
		c.host.Say(missed[i].Answer)
	}
}

// startGame starts or restarts a round.
func (c *Client) startGame() {
	c.line.Clear()
	c.clearMismatch()
	c.game.Start()
	c.state.stepping = true
	if c.host != nil {
		c.host.Started()
	}
}

// abandonRound drops the current round and goes back to the title screen.
func (c *Client) abandonRound() {
	c.line.Clear()
	c.clearMismatch()
	c.game.Reset()
	c.state.stepping = true
}

// processEvents handles re-imported word lists and server shutdown.
func (c *Client) processEvents() {
	for {
		select {
		case entries, ok := <-c.words:
			if !ok {
				c.words = nil
				continue
			}
			if err := c.game.ImportEntries(entries); err != nil {
				c.logger.Warn("ignoring word list", "err", err)
				continue
			}
			c.line.Clear()
			c.clearMismatch()
			c.state.stepping = true
		case <-c.shutdown:
			c.shutdown = nil
			c.state.shuttingDown = true
			c.state.shutdownTimer = config.ShutdownDisplaySeconds
		default:
			return
		}
	}
}

// updateScreen handles terminal resize, clamping to max render resolution.
// On actual size changes, clears the terminal to remove residual pixels
// outside the new canvas area (e.g. old borders or offset content).
func (c *Client) updateScreen() {
	termWidth, termHeight, err := c.termSizeFunc()
	if err != nil {
		return
	}
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)

	if renderWidth != c.canvas.TerminalWidth() || renderHeight != c.canvas.TerminalHeight() ||
		offsetCol != c.canvas.OffsetCol() || offsetRow != c.canvas.OffsetRow() {
		c.chunkWriter.WriteString("\033[H\033[2J")
		c.canvas.ForceRedraw()
	}

	c.canvas.Resize(renderWidth, renderHeight)
	c.canvas.SetOffset(offsetCol, offsetRow)
	c.chunkWriter.SetOffset(offsetCol, offsetRow)
}

// clampTermSize clamps terminal dimensions to the max render resolution and computes
// the centering offset for the render area.
func clampTermSize(termWidth, termHeight int) (renderWidth, renderHeight, offsetCol, offsetRow int) {
	renderWidth = min(max(termWidth, 1), config.MaxTermWidth)
	renderHeight = min(max(termHeight, 1), config.MaxTermHeight)
	offsetCol = max((termWidth-renderWidth)/2, 0)
	offsetRow = max((termHeight-renderHeight)/2, 0)
	return
}

func (c *Client) drawContext() object.DrawContext {
	return object.DrawContext{
		Canvas: c.canvas,
		Text:   &c.text,
		View:   c.game.Options().View,
		Frame:  c.state.frame,
		FPS:    float64(c.cfg.FPS),
	}
}
