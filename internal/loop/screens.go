package loop

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/tomz197/meteortype/internal/config"
	"github.com/tomz197/meteortype/internal/draw"
	"github.com/tomz197/meteortype/internal/object"
)

const (
	promptBlinkRate = 1.6 // Toggles per second of the "press enter" prompts
	healthBarWidth  = 20
	maxReviewItems  = 9 // One per digit key
)

var titleArt = []string{
	` __  __ ___ _____ ___ ___  ___   _______   _____ ___ `,
	`|  \/  | __|_   _| __/ _ \| _ \ |_   _\ \ / / _ \ __|`,
	`| |\/| | _|  | | | _| (_) |   /   | |  \ V /|  _/ _| `,
	`|_|  |_|___| |_| |___\___/|_|_\   |_|   |_| |_| |___|`,
}

var gameOverArt = []string{
	`   ___   _   __  __ ___    _____   _____ ___  `,
	`  / __| /_\ |  \/  | __|  / _ \ \ / / __| _ \ `,
	` | (_ |/ _ \| |\/| | _|  | (_) \ V /| _||   / `,
	`  \___/_/ \_\_|  |_|___|  \___/ \_/ |___|_|_\ `,
}

// drawFrame draws the current frame.
func (c *Client) drawFrame() error {
	current := stateFor(c.game.State().Phase, c.state.shuttingDown)

	// On state or inactivity transitions, do a full terminal clear
	// so UI elements from the previous state don't persist on screen.
	if current != c.state.prevState || c.state.isInactive != c.state.wasInactive {
		c.chunkWriter.WriteString("\033[H\033[2J")
		c.canvas.ForceRedraw()
		c.state.prevState = current
		c.state.wasInactive = c.state.isInactive
	}

	c.canvas.Clear()
	if err := c.game.Draw(c.drawContext()); err != nil {
		c.logger.Debug("drawing world", "err", err)
	}

	c.canvas.Render(c.chunkWriter)
	c.canvas.RenderBorder(c.chunkWriter)

	c.drawUI(current)
	c.text.Flush(c.chunkWriter, c.canvas)

	return c.chunkWriter.Flush()
}

// drawUI queues the overlay for the current screen.
func (c *Client) drawUI(current clientState) {
	width := c.canvas.TerminalWidth()
	height := c.canvas.TerminalHeight()
	centerY := height / 2

	if current == stateShutdown {
		c.drawShutdownScreen(width, centerY)
		return
	}
	if c.state.isInactive {
		c.drawInactivityScreen(width, centerY)
		return
	}

	switch current {
	case stateStart:
		c.drawStartScreen(width, centerY)
	case statePlaying:
		c.drawPlayingHUD(width, height)
	case stateGameOver:
		c.drawGameOverScreen(width, centerY)
	}
}

func (c *Client) blinkOn() bool {
	return object.ShouldRenderBlink(c.state.frame, float64(c.cfg.FPS), promptBlinkRate)
}

func (c *Client) writeArt(width, top int, art []string) {
	for i, line := range art {
		c.text.WriteCentered(width, top+i, draw.TitleStyle.Render(line))
	}
}

// drawStartScreen draws the title screen.
func (c *Client) drawStartScreen(width, centerY int) {
	st := c.game.State()
	top := centerY - 8
	c.writeArt(width, top, titleArt)

	row := top + len(titleArt) + 1
	c.text.WriteCentered(width, row, "~ Type the words before they hit the Earth ~")

	info := fmt.Sprintf("Best: %d   Words: %d   Labels: %s", st.HighScore, st.Pool.Len(), c.game.Mode())
	c.text.WriteCentered(width, row+2, draw.ScoreStyle.Render(info))

	controls := []string{
		"type . . . . . destroy a meteor",
		"Backspace  . . . .  fix a typo",
		"Tab  . . . . .  toggle labels",
		"Esc  . . .  leave round / quit",
	}
	for i, line := range controls {
		c.text.WriteCentered(width, row+4+i, draw.HintStyle.Render(line))
	}

	if c.blinkOn() {
		c.text.WriteCentered(width, row+5+len(controls), ">>  Press ENTER to Start  <<")
	}
}

// drawPlayingHUD draws score, level, health and the input line.
func (c *Client) drawPlayingHUD(width, height int) {
	st := c.game.State()

	score := fmt.Sprintf("Score: %d  Best: %d", st.Score, st.HighScore)
	c.text.WriteAt(2, 1, draw.ScoreStyle.Render(score))

	health := draw.HealthBar(st.Health, st.Rules().MaxHealth, healthBarWidth)
	level := fmt.Sprintf("Level %d ", st.Level)
	right := level + health
	c.text.WriteAt(max(width-lipgloss.Width(right), 1), 1, right)

	c.text.WriteAt(2, height, c.inputLine())

	mode := draw.HintStyle.Render("[Tab] " + c.game.Mode())
	c.text.WriteAt(max(width-lipgloss.Width(mode), 1), height, mode)
}

// inputLine renders the typed buffer: red after a mismatch, highlighted
// while it is the start of some meteor's answer.
func (c *Client) inputLine() string {
	buf := c.line.String()
	style := draw.InputStyle
	switch {
	case c.state.mismatch:
		style = draw.ErrorStyle
	case buf != "" && c.game.HasPrefixMatch(buf):
		style = draw.MatchStyle
	}
	return "> " + style.Render(buf+"_")
}

// drawGameOverScreen shows the final score and the words that got through.
func (c *Client) drawGameOverScreen(width, centerY int) {
	st := c.game.State()
	missed := st.Missed
	shown := min(len(missed), maxReviewItems)

	top := max(centerY-(len(gameOverArt)+shown+8)/2, 1)
	c.writeArt(width, top, gameOverArt)

	row := top + len(gameOverArt) + 1
	c.text.WriteCentered(width, row, draw.ScoreStyle.Render(fmt.Sprintf("Score: %d   Best: %d   Level: %d", st.Score, st.HighScore, st.Level)))
	row += 2

	if shown > 0 {
		c.text.WriteCentered(width, row, "Missed words")
		row++
		for i, e := range missed[:shown] {
			c.text.WriteCentered(width, row, reviewLine(i, e.Glyph, e.Prompt, e.Answer))
			row++
		}
		if len(missed) > shown {
			c.text.WriteCentered(width, row, draw.HintStyle.Render(fmt.Sprintf("... and %d more", len(missed)-shown)))
			row++
		}
		c.text.WriteCentered(width, row, draw.HintStyle.Render(fmt.Sprintf("Press 1-%d to hear a word", shown)))
		row++
	}

	if c.blinkOn() {
		c.text.WriteCentered(width, row+1, ">>  Press ENTER to Restart  <<")
	}
	c.text.WriteCentered(width, row+3, draw.HintStyle.Render("Esc: back to the title screen"))
}

func reviewLine(i int, glyph, prompt, answer string) string {
	if prompt == answer {
		return fmt.Sprintf("%d. %s %s", i+1, glyph, answer)
	}
	return fmt.Sprintf("%d. %s %s (%s)", i+1, glyph, answer, prompt)
}

// drawInactivityScreen draws the inactivity warning screen.
func (c *Client) drawInactivityScreen(width, centerY int) {
	c.text.WriteCentered(width, centerY-2, draw.DangerStyle.Render("INACTIVITY WARNING"))

	left := int(config.InactivityDisconnectUser - time.Since(c.lastInput).Seconds())
	msg := fmt.Sprintf("You have been inactive for too long. You will be disconnected in %d seconds.", max(left, 0))
	c.text.WriteCentered(width, centerY, msg)

	c.text.WriteCentered(width, centerY+2, draw.HintStyle.Render("Press any key to continue"))
}

// drawShutdownScreen draws the server shutdown notification screen.
func (c *Client) drawShutdownScreen(width, centerY int) {
	c.text.WriteCentered(width, centerY-3, draw.DangerStyle.Render("SERVER SHUTTING DOWN"))
	c.text.WriteCentered(width, centerY-1, "The server is restarting for maintenance.")
	c.text.WriteCentered(width, centerY, "Please reconnect in a moment.")

	remaining := int(c.state.shutdownTimer) + 1
	c.text.WriteCentered(width, centerY+2, fmt.Sprintf("Disconnecting in %d seconds...", remaining))
	c.text.WriteCentered(width, centerY+4, draw.HintStyle.Render("Press Esc to disconnect now"))
}
