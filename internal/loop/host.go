package loop

import (
	"context"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/tomz197/meteortype/internal/narrate"
	"github.com/tomz197/meteortype/internal/session"
	"github.com/tomz197/meteortype/internal/sfx"
	"github.com/tomz197/meteortype/internal/store"
	"github.com/tomz197/meteortype/internal/vocab"
)

// Host reacts to session events on behalf of the outside world: it persists
// scores and missed words, narrates game over and plays sounds. A nil Store
// disables persistence.
type Host struct {
	ctx      context.Context
	store    *store.Store
	narrator narrate.Narrator
	sound    sfx.Player
	logger   *log.Logger

	total  int           // Running score total for this host
	missed []vocab.Entry // Missed words of the current round
}

// NewHost wires the collaborators. Nil narrator, sound or logger fall back to
// silent implementations.
func NewHost(ctx context.Context, st *store.Store, n narrate.Narrator, s sfx.Player, logger *log.Logger) *Host {
	if n == nil {
		n = narrate.Nop{}
	}
	if s == nil {
		s = sfx.Silent{}
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Host{ctx: ctx, store: st, narrator: n, sound: s, logger: logger}
}

// HandleEvent implements game.Listener.
func (h *Host) HandleEvent(e session.Event) {
	switch e.Kind {
	case session.EventHit:
		h.sound.Play(sfx.Hit)
	case session.EventScore:
		h.total += e.Points
		if h.store != nil {
			if _, err := h.store.RaiseBestTotal(h.ctx, h.total); err != nil {
				h.logger.Warn("saving best total", "err", err)
			}
		}
	case session.EventHighScore:
		if h.store != nil {
			if _, err := h.store.RaiseHighScore(h.ctx, e.Value); err != nil {
				h.logger.Warn("saving high score", "err", err)
			}
		}
	case session.EventMissed:
		h.missed = append(h.missed, e.Word)
		h.sound.Play(sfx.Impact)
	case session.EventGameOver:
		h.logger.Info("game over", "score", e.Value, "missed", len(h.missed))
		h.sound.Play(sfx.GameOver)
		h.narrator.Say(narrate.GameOverPhrase)
		h.saveRound()
	case session.EventReset:
		h.missed = nil
	case session.EventImported:
		h.logger.Info("word list imported", "entries", e.Value)
	}
}

// Started records a new round in the play statistics.
func (h *Host) Started() {
	if h.store == nil {
		return
	}
	if err := h.store.RecordPlayed(h.ctx, store.ModeTyping); err != nil {
		h.logger.Warn("recording played", "err", err)
	}
}

// Mismatch plays the buzz for input no meteor can complete.
func (h *Host) Mismatch() {
	h.sound.Play(sfx.Mismatch)
}

// Say narrates text, e.g. a word picked from the review list.
func (h *Host) Say(text string) {
	h.narrator.Say(text)
}

// Total returns the running score total.
func (h *Host) Total() int {
	return h.total
}

func (h *Host) saveRound() {
	if h.store == nil {
		return
	}
	if err := h.store.SaveMissed(h.ctx, slices.Clone(h.missed)); err != nil {
		h.logger.Warn("saving missed words", "err", err)
	}
	if err := h.store.RecordCompleted(h.ctx, store.ModeTyping); err != nil {
		h.logger.Warn("recording completed", "err", err)
	}
}
