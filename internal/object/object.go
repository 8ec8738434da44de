package object

import (
	"math/rand"

	"github.com/tomz197/meteortype/internal/draw"
)

// Spawner allows objects to spawn new objects during update.
type Spawner interface {
	Spawn(obj Object)
}

// UpdateContext provides all the information an object needs during update.
type UpdateContext struct {
	Screen  Screen
	Rand    *rand.Rand // Owned by the world; never shared across goroutines
	Spawner Spawner
}

// DrawContext provides drawing resources for objects.
type DrawContext struct {
	Canvas *draw.Canvas    // High-resolution canvas (2x vertical)
	Text   *draw.TextLayer // Text overlay (labels, particles), flushed after the canvas
	View   Screen          // Logical viewport
	Frame  int             // Monotonic frame counter, drives blinking
	FPS    float64
}

// Screen is the logical viewport in canvas units.
type Screen struct {
	Width   int
	Height  int
	CenterX int
	CenterY int
}

// NewScreen builds a Screen with its center precomputed.
func NewScreen(width, height int) Screen {
	return Screen{Width: width, Height: height, CenterX: width / 2, CenterY: height / 2}
}

// ClampX keeps x at least margin away from both side edges. A viewport too
// narrow for the margin yields its center.
func (s Screen) ClampX(x, margin float64) float64 {
	w := float64(s.Width)
	if w <= 2*margin {
		return w / 2
	}
	return min(max(x, margin), w-margin)
}

// Object is a drawable and updatable game entity.
type Object interface {
	// Update advances the object by one tick. Returns true if the object should be removed.
	Update(ctx UpdateContext) (remove bool, err error)

	// Draw draws the object. Use ctx.Canvas for shapes, ctx.Text for text.
	Draw(ctx DrawContext) error
}

// Destructible is implemented by objects that can be destroyed/marked for removal.
type Destructible interface {
	// MarkDestroyed marks the object for removal on next update cycle.
	MarkDestroyed()
	// IsDestroyed returns true if the object is marked for destruction.
	IsDestroyed() bool
}

// Releasable is implemented by pooled objects that can be returned to a pool.
type Releasable interface {
	// Release returns the object to its pool for reuse.
	Release()
}

// ReleaseObject releases an object back to its pool if it implements Releasable.
func ReleaseObject(obj Object) {
	if r, ok := obj.(Releasable); ok {
		r.Release()
	}
}

// ShouldRenderBlink reports whether something blinking at the given rate
// (toggles per second at the frame rate fps) is visible on this frame.
// A non-positive rate never blinks.
func ShouldRenderBlink(frame int, fps, rate float64) bool {
	if rate <= 0 || fps <= 0 {
		return true
	}
	phase := int(float64(frame) / fps * rate)
	return phase%2 == 0
}
