package game

import (
	"github.com/tomz197/meteortype/internal/object"
)

// World owns the entity collections of one game.
type World struct {
	Screen    object.Screen
	meteors   []*object.Meteor // Spawn order
	particles []*object.Particle
	stars     []*object.Star
	toSpawn   []object.Object // Objects to add after the current update cycle
	nextID    int
}

// Spawn queues an object to be added after the current update cycle.
// Implements object.Spawner.
func (w *World) Spawn(obj object.Object) {
	w.toSpawn = append(w.toSpawn, obj)
}

// FlushSpawned adds all queued objects to their collections and clears the queue.
func (w *World) FlushSpawned() {
	for _, obj := range w.toSpawn {
		switch o := obj.(type) {
		case *object.Particle:
			w.particles = append(w.particles, o)
		case *object.Meteor:
			w.meteors = append(w.meteors, o)
		case *object.Star:
			w.stars = append(w.stars, o)
		}
	}
	clear(w.toSpawn)
	w.toSpawn = w.toSpawn[:0]
}

// Meteors returns the active meteors in spawn order. The slice must not be modified.
func (w *World) Meteors() []*object.Meteor {
	return w.meteors
}

// Particles returns the live particles.
func (w *World) Particles() []*object.Particle {
	return w.particles
}

// Stars returns the background stars.
func (w *World) Stars() []*object.Star {
	return w.stars
}

// removeMeteor drops the meteor with id. A fresh slice is built so a
// traversal holding the old one is unaffected.
func (w *World) removeMeteor(id int) (*object.Meteor, bool) {
	for i, m := range w.meteors {
		if m.ID != id {
			continue
		}
		kept := make([]*object.Meteor, 0, len(w.meteors)-1)
		kept = append(kept, w.meteors[:i]...)
		kept = append(kept, w.meteors[i+1:]...)
		w.meteors = kept
		m.MarkDestroyed()
		return m, true
	}
	return nil, false
}

// clearEntities drops meteors and particles. Stars stay.
func (w *World) clearEntities() {
	for _, p := range w.particles {
		object.ReleaseObject(p)
	}
	for _, obj := range w.toSpawn {
		object.ReleaseObject(obj)
	}
	w.meteors = nil
	w.particles = nil
	clear(w.toSpawn)
	w.toSpawn = w.toSpawn[:0]
}
