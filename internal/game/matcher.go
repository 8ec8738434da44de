package game

import (
	"slices"
	"strings"

	"github.com/tomz197/meteortype/internal/object"
	"github.com/tomz197/meteortype/internal/session"
	"github.com/tomz197/meteortype/internal/vocab"
)

// Type checks the whole input buffer against the falling meteors. The first
// meteor in spawn order whose answer equals the normalized buffer is
// destroyed and credited; the caller should then clear its buffer.
// Returns false and changes nothing when no meteor matches.
func (g *Game) Type(buffer string) bool {
	if g.state.Phase != session.Playing {
		return false
	}
	typed := vocab.Normalize(buffer)
	if typed == "" {
		return false
	}

	var target *object.Meteor
	for _, m := range g.world.meteors {
		if slices.Contains(m.Accept, typed) {
			target = m
			break
		}
	}
	if target == nil {
		return false
	}
	if _, ok := g.world.removeMeteor(target.ID); !ok {
		return false
	}

	object.SpawnBurst(g.updateContext(), target.X, target.Y, g.opts.Burst)
	g.apply(g.state.Hit(target.X, target.Y, target.Entry))
	return true
}

// HasPrefixMatch reports whether some falling meteor's answer starts with the
// normalized buffer. An empty buffer always matches. It never changes state.
func (g *Game) HasPrefixMatch(buffer string) bool {
	typed := vocab.Normalize(buffer)
	if typed == "" {
		return true
	}
	for _, m := range g.world.meteors {
		for _, form := range m.Accept {
			if strings.HasPrefix(form, typed) {
				return true
			}
		}
	}
	return false
}
