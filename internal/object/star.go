package object

import "math/rand"

// Star is background decoration drifting down the screen.
type Star struct {
	X, Y  float64
	Size  float64 // 1 or 2 sub-pixels
	Speed float64 // Logical units per tick
}

// NewStar places a star at a random position in the viewport.
func NewStar(r *rand.Rand, screen Screen, speedScale float64) *Star {
	s := &Star{
		X:     r.Float64() * float64(screen.Width),
		Y:     r.Float64() * float64(screen.Height),
		Size:  1,
		Speed: (r.Float64()*0.5 + 0.1) * speedScale,
	}
	if r.Float64() < 0.2 {
		s.Size = 2
	}
	return s
}

// Update moves the star down and wraps it to a new column at the top once it
// leaves the bottom edge. Stars are never removed.
func (s *Star) Update(ctx UpdateContext) (bool, error) {
	s.Y += s.Speed
	if s.Y > float64(ctx.Screen.Height) {
		s.Y = -1
		if ctx.Rand != nil {
			s.X = ctx.Rand.Float64() * float64(ctx.Screen.Width)
		}
	}
	return false, nil
}

// Draw plots the star on the canvas.
func (s *Star) Draw(ctx DrawContext) error {
	if ctx.Canvas == nil {
		return nil
	}
	ctx.Canvas.SetFloat(s.X, s.Y)
	if s.Size > 1 {
		ctx.Canvas.SetFloat(s.X+1, s.Y)
	}
	return nil
}
