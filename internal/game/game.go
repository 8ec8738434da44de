// Package game runs the meteor typing game: it spawns meteors on a level
// dependent schedule, advances every entity once per Step, matches typed
// words against falling meteors and feeds the outcomes to the session.
//
// A Game is not safe for concurrent use. The host drives Step, Type and Draw
// from a single goroutine.
package game

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/tomz197/meteortype/internal/config"
	"github.com/tomz197/meteortype/internal/object"
	"github.com/tomz197/meteortype/internal/session"
	"github.com/tomz197/meteortype/internal/vocab"
)

// Listener receives every session event in order.
type Listener interface {
	HandleEvent(session.Event)
}

// ListenerFunc adapts a function to Listener.
type ListenerFunc func(session.Event)

func (f ListenerFunc) HandleEvent(e session.Event) { f(e) }

// Game is one player's meteor typing game.
type Game struct {
	opts      Options
	state     session.State
	world     *World
	rng       *rand.Rand
	listeners []Listener

	mode       string
	lastSpawn  time.Duration
	hasSpawned bool // False until the first meteor of a round; the first spawn is immediate
	starsReady bool
}

// New creates a Ready game drawing words from pool. A nil pool uses the
// built-in vocabulary.
func New(opts Options, pool *vocab.Pool, highScore int) *Game {
	if pool == nil {
		pool = vocab.DefaultPool()
	}
	if opts.Mode == "" {
		opts.Mode = config.ModeOriginal
	}
	return &Game{
		opts:  opts,
		state: session.New(opts.Rules, highScore, pool),
		world: &World{Screen: opts.View},
		rng:   rand.New(rand.NewSource(opts.Seed)),
		mode:  opts.Mode,
	}
}

// AddListener registers l for all future events.
func (g *Game) AddListener(l Listener) {
	g.listeners = append(g.listeners, l)
}

// State returns a snapshot of the session.
func (g *Game) State() session.State {
	return g.state
}

// World exposes the entity collections for rendering and inspection.
func (g *Game) World() *World {
	return g.world
}

// Options returns the tuning the game was created with.
func (g *Game) Options() Options {
	return g.opts
}

// Mode returns the current display mode.
func (g *Game) Mode() string {
	return g.mode
}

// ToggleMode flips between showing prompts and showing answers. Meteors
// already falling keep their label.
func (g *Game) ToggleMode() string {
	if g.mode == config.ModeTranslation {
		g.mode = config.ModeOriginal
	} else {
		g.mode = config.ModeTranslation
	}
	return g.mode
}

// Start begins a fresh round from any phase.
func (g *Game) Start() {
	g.clearRound()
	g.apply(g.state.Start())
}

// Reset abandons the round and returns to Ready.
func (g *Game) Reset() {
	g.clearRound()
	g.apply(g.state.Reset())
}

// Import replaces the word pool with a JSON list of {"q","a","emoji"} objects
// and resets to Ready. On error nothing changes.
func (g *Game) Import(blob []byte) error {
	entries, err := vocab.ParseJSON(blob)
	if err != nil {
		return err
	}
	return g.ImportEntries(entries)
}

// ImportEntries replaces the word pool with already decoded entries, which
// are validated first. On error nothing changes.
func (g *Game) ImportEntries(entries []vocab.Entry) error {
	valid, err := vocab.Validate(entries)
	if err != nil {
		return err
	}
	pool, err := vocab.NewPool(valid)
	if err != nil {
		return fmt.Errorf("building word pool: %w", err)
	}
	g.clearRound()
	g.apply(g.state.Import(pool))
	return nil
}

// Step advances the simulation to the monotonic time now. It returns false
// once the session is over; no state changes after that until Start.
func (g *Game) Step(now time.Duration) bool {
	if g.state.Over() {
		return false
	}
	ctx := g.updateContext()

	if !g.starsReady {
		g.populateStars()
	}
	for _, s := range g.world.stars {
		s.Update(ctx)
	}

	if g.state.Phase == session.Playing {
		if !g.hasSpawned || now-g.lastSpawn > g.opts.SpawnInterval(g.state.Level) {
			g.spawnMeteor()
			g.lastSpawn = now
			g.hasSpawned = true
		}
	}

	g.stepParticles(ctx)

	if g.state.Phase == session.Playing {
		g.stepMeteors(ctx)
	}
	return !g.state.Over()
}

// Draw renders stars, particles and meteors in that order.
func (g *Game) Draw(ctx object.DrawContext) error {
	var errs []error
	for _, s := range g.world.stars {
		errs = append(errs, s.Draw(ctx))
	}
	for _, p := range g.world.particles {
		errs = append(errs, p.Draw(ctx))
	}
	for _, m := range g.world.meteors {
		errs = append(errs, m.Draw(ctx))
	}
	return errors.Join(errs...)
}

func (g *Game) updateContext() object.UpdateContext {
	return object.UpdateContext{
		Screen:  g.world.Screen,
		Rand:    g.rng,
		Spawner: g.world,
	}
}

func (g *Game) populateStars() {
	g.starsReady = true
	g.world.stars = make([]*object.Star, 0, g.opts.StarCount)
	for i := 0; i < g.opts.StarCount; i++ {
		g.world.stars = append(g.world.stars, object.NewStar(g.rng, g.world.Screen, g.opts.StarSpeedScale()))
	}
}

// spawnMeteor adds one meteor for a random pool entry. Entries with an empty
// answer are dropped; an empty pool spawns nothing.
func (g *Game) spawnMeteor() {
	entry, ok := g.state.Pool.Sample(g.rng)
	if !ok {
		return
	}
	accept := g.opts.Romanizer.Accepted(entry)
	if accept[0] == "" {
		return
	}

	label := entry.Prompt
	if g.mode == config.ModeTranslation {
		label = entry.Answer
	}
	if label == "" {
		label = entry.Answer
	}

	screen := g.world.Screen
	x := screen.ClampX(g.rng.Float64()*float64(screen.Width), g.opts.SpawnMargin)
	speed := g.opts.FallSpeed(g.state.Level, g.rng.Float64())

	g.world.nextID++
	m := object.NewMeteor(g.world.nextID, x, -g.opts.SpawnHeight, speed, entry, label, accept, g.rng)
	g.world.meteors = append(g.world.meteors, m)
}

func (g *Game) stepParticles(ctx object.UpdateContext) {
	g.world.FlushSpawned()
	kept := g.world.particles[:0]
	for _, p := range g.world.particles {
		if remove, _ := p.Update(ctx); remove {
			object.ReleaseObject(p)
			continue
		}
		kept = append(kept, p)
	}
	clear(g.world.particles[len(kept):])
	g.world.particles = kept
}

// stepMeteors advances every meteor and handles ground arrivals. Arrivals
// after the session ends are still removed but cause no further damage.
func (g *Game) stepMeteors(ctx object.UpdateContext) {
	height := float64(g.world.Screen.Height)
	meteors := g.world.meteors
	kept := make([]*object.Meteor, 0, len(meteors))
	for _, m := range meteors {
		if remove, _ := m.Update(ctx); remove {
			continue
		}
		if m.Y > height {
			m.MarkDestroyed()
			g.apply(g.state.BoundaryArrival(m.Entry))
			continue
		}
		kept = append(kept, m)
	}
	g.world.meteors = kept
}

func (g *Game) clearRound() {
	g.world.clearEntities()
	g.hasSpawned = false
	g.lastSpawn = 0
}

func (g *Game) apply(next session.State, events []session.Event) {
	g.state = next
	for _, e := range events {
		for _, l := range g.listeners {
			l.HandleEvent(e)
		}
	}
}
