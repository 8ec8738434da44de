// Package audio plays the game's sound effects. A Player that was never
// initialized, or whose device failed to open, is silent.
package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/tomz197/meteortype/internal/sfx"
)

const sampleRate = beep.SampleRate(44100)

// Effect names a sound effect.
type Effect = sfx.Effect

const (
	EffectHit      = sfx.Hit
	EffectMismatch = sfx.Mismatch
	EffectImpact   = sfx.Impact
	EffectGameOver = sfx.GameOver
)

// Player mixes sound effects onto the speaker. It implements sfx.Player.
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
}

// NewPlayer creates a silent player; call Initialize to open the device.
func NewPlayer() *Player {
	return &Player{mixer: &beep.Mixer{}}
}

// Initialize opens the audio device.
func (p *Player) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("opening audio device: %w", err)
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Enabled reports whether sounds reach the device.
func (p *Player) Enabled() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.initialized
}

var _ sfx.Player = (*Player)(nil)

// Play queues effect. It is a no-op on a silent player.
func (p *Player) Play(effect Effect) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	if s := Streamer(effect); s != nil {
		speaker.Lock()
		p.mixer.Add(s)
		speaker.Unlock()
	}
}

// Close stops all sounds. The player is silent afterwards.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	p.initialized = false
}

// Streamer builds the sound for effect, or nil for an unknown effect.
func Streamer(effect Effect) beep.Streamer {
	switch effect {
	case EffectHit:
		return HitSound(sampleRate)
	case EffectMismatch:
		return MismatchSound(sampleRate)
	case EffectImpact:
		return ImpactSound(sampleRate)
	case EffectGameOver:
		return GameOverSound(sampleRate)
	default:
		return nil
	}
}
