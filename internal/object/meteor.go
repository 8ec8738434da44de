package object

import (
	"math"
	"math/rand"

	"github.com/mattn/go-runewidth"
	"github.com/tomz197/meteortype/internal/draw"
	"github.com/tomz197/meteortype/internal/vocab"
)

// MeteorRadius is the draw radius of a meteor rock in logical units.
const MeteorRadius = 2.5

// Meteor is a falling rock carrying a word the player has to type.
type Meteor struct {
	ID        int
	X, Y      float64
	FallSpeed float64 // Logical units per tick
	Entry     vocab.Entry
	Label     string   // Text shown under the rock
	Accept    []string // Normalized typed forms that destroy the meteor

	Vertices  []float64 // Vertex distances from center (irregular outline)
	Spin      float64   // Radians per frame, visual only
	destroyed bool
}

// NewMeteor creates a meteor for entry. The outline is randomized with r.
func NewMeteor(id int, x, y, fallSpeed float64, entry vocab.Entry, label string, accept []string, r *rand.Rand) *Meteor {
	numVerts := 7 + r.Intn(4)
	vertices := make([]float64, numVerts)
	for i := range vertices {
		vertices[i] = MeteorRadius * (0.7 + r.Float64()*0.4)
	}
	return &Meteor{
		ID:        id,
		X:         x,
		Y:         y,
		FallSpeed: fallSpeed,
		Entry:     entry,
		Label:     label,
		Accept:    accept,
		Vertices:  vertices,
		Spin:      (r.Float64() - 0.5) * 0.04,
	}
}

// Answer returns the normalized answer the meteor expects.
func (m *Meteor) Answer() string {
	if len(m.Accept) == 0 {
		return ""
	}
	return m.Accept[0]
}

// Update moves the meteor down by its fall speed. A destroyed meteor reports removal.
func (m *Meteor) Update(_ UpdateContext) (bool, error) {
	if m.destroyed {
		return true, nil
	}
	m.Y += m.FallSpeed
	return false, nil
}

// Draw renders the rock outline on the canvas and the glyph and label as text.
// Meteors close to the ground blink their label.
func (m *Meteor) Draw(ctx DrawContext) error {
	if ctx.Canvas == nil {
		return nil
	}

	numVerts := len(m.Vertices)
	points := ctx.Canvas.BorrowPoints(numVerts)
	angle := float64(ctx.Frame) * m.Spin
	for i, dist := range m.Vertices {
		vertAngle := angle + float64(i)*2*math.Pi/float64(numVerts)
		points[i] = draw.Point{
			X: m.X + math.Cos(vertAngle)*dist,
			Y: m.Y + math.Sin(vertAngle)*dist,
		}
	}
	ctx.Canvas.DrawPolygon(points, false)

	if ctx.Text == nil {
		return nil
	}
	col, row := ctx.Canvas.LogicalToTerminal(m.X, m.Y)
	if inBounds(ctx.Canvas, col, row) {
		ctx.Text.WriteAt(col-runewidth.StringWidth(m.Entry.Glyph)/2, row, m.Entry.Glyph)
	}

	danger := ctx.View.Height > 0 && m.Y > float64(ctx.View.Height)*0.85
	if danger && !ShouldRenderBlink(ctx.Frame, ctx.FPS, 4) {
		return nil
	}
	_, labelRow := ctx.Canvas.LogicalToTerminal(m.X, m.Y+MeteorRadius+1)
	labelCol := col - runewidth.StringWidth(m.Label)/2
	if labelRow >= 1 && labelRow <= ctx.Canvas.TerminalHeight() {
		style := draw.LabelStyle
		if danger {
			style = draw.DangerStyle
		}
		ctx.Text.WriteAt(max(labelCol, 1), labelRow, style.Render(m.Label))
	}
	return nil
}

// MarkDestroyed marks the meteor for removal (implements Destructible).
func (m *Meteor) MarkDestroyed() {
	m.destroyed = true
}

// IsDestroyed returns true if the meteor has been matched (implements Destructible).
func (m *Meteor) IsDestroyed() bool {
	return m.destroyed
}
