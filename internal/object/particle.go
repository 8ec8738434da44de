package object

import (
	"math"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/tomz197/meteortype/internal/draw"
)

// particlePool is a sync.Pool for reusing Particle objects to reduce allocations.
var particlePool = sync.Pool{
	New: func() any {
		return &Particle{}
	},
}

// BurstColors are the colors a hit burst picks from.
var BurstColors = []lipgloss.Color{"#fbbf24", "#f97316", "#facc15", "#fde68a"}

// Particle is a short-lived visual effect.
type Particle struct {
	X, Y   float64 // Position
	VX, VY float64 // Velocity per tick
	Life   float64 // 1 when spawned, removed at <= 0
	Decay  float64 // Life lost per tick
	Color  lipgloss.Color
}

// NewParticle creates a single particle from the pool with full life.
func NewParticle(x, y, vx, vy, decay float64, color lipgloss.Color) *Particle {
	p := particlePool.Get().(*Particle)
	p.X = x
	p.Y = y
	p.VX = vx
	p.VY = vy
	p.Life = 1
	p.Decay = decay
	p.Color = color
	return p
}

// Release returns the particle to the pool for reuse.
// Should be called when the particle is removed from the game.
func (p *Particle) Release() {
	particlePool.Put(p)
}

// BurstConfig shapes a particle burst.
type BurstConfig struct {
	Count    int
	MaxSpeed float64 // Per-tick speed is drawn from [0, MaxSpeed)
	Decay    float64
}

// SpawnBurst creates particles flying in random directions from (x, y).
func SpawnBurst(ctx UpdateContext, x, y float64, cfg BurstConfig) {
	if ctx.Spawner == nil || ctx.Rand == nil {
		return
	}
	for i := 0; i < cfg.Count; i++ {
		angle := ctx.Rand.Float64() * 2 * math.Pi
		spd := ctx.Rand.Float64() * cfg.MaxSpeed
		color := BurstColors[ctx.Rand.Intn(len(BurstColors))]
		ctx.Spawner.Spawn(NewParticle(x, y, math.Cos(angle)*spd, math.Sin(angle)*spd, cfg.Decay, color))
	}
}

// Update moves the particle and decays its life.
func (p *Particle) Update(_ UpdateContext) (bool, error) {
	p.X += p.VX
	p.Y += p.VY
	p.Life -= p.Decay
	return p.Life <= 0, nil
}

// Draw renders the particle as a tinted shade glyph that thins out as it fades.
func (p *Particle) Draw(ctx DrawContext) error {
	if p.Life <= 0 || ctx.Canvas == nil || ctx.Text == nil {
		return nil
	}
	col, row := ctx.Canvas.LogicalToTerminal(p.X, p.Y)
	if !inBounds(ctx.Canvas, col, row) {
		return nil
	}
	glyph := string(draw.ShadeLevel(p.Life))
	ctx.Text.WriteAt(col, row, lipgloss.NewStyle().Foreground(p.Color).Render(glyph))
	return nil
}

func inBounds(c *draw.Canvas, col, row int) bool {
	return col >= 1 && row >= 1 && col <= c.TerminalWidth() && row <= c.TerminalHeight()
}
