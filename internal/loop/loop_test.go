package loop

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"go/parser"
	"go/token"
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/meteortype/internal/config"
	"github.com/tomz197/meteortype/internal/draw"
	"github.com/tomz197/meteortype/internal/game"
	"github.com/tomz197/meteortype/internal/input"
	"github.com/tomz197/meteortype/internal/narrate"
	"github.com/tomz197/meteortype/internal/session"
	"github.com/tomz197/meteortype/internal/sfx"
	"github.com/tomz197/meteortype/internal/store"
	"github.com/tomz197/meteortype/internal/vocab"
)

type recSound struct {
	played []sfx.Effect
}

func (r *recSound) Play(e sfx.Effect) { r.played = append(r.played, e) }

func (r *recSound) count(e sfx.Effect) int {
	n := 0
	for _, p := range r.played {
		if p == e {
			n++
		}
	}
	return n
}

type recNarrator struct {
	said []string
}

func (r *recNarrator) Say(text string) { r.said = append(r.said, text) }

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

func TestSchedulerStopsWhenStepDeclines(t *testing.T) {
	var times []time.Duration
	err := NewScheduler(time.Millisecond).Run(context.Background(), func(now time.Duration) bool {
		times = append(times, now)
		return len(times) < 3
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(times) != 3 {
		t.Fatalf("step ran %d times, want 3", len(times))
	}
	for i := 1; i < len(times); i++ {
		if times[i] < times[i-1] {
			t.Errorf("time went backwards: %v", times)
		}
	}
}

func TestSchedulerCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	err := NewScheduler(time.Millisecond).Run(ctx, func(time.Duration) bool {
		calls++
		if calls == 2 {
			cancel()
		}
		return true
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Run err = %v, want context.Canceled", err)
	}
	if calls != 2 {
		t.Errorf("step ran %d times after cancel, want 2", calls)
	}
}

func TestTimers(t *testing.T) {
	var tm Timers
	var fired []string
	tm.After(10*time.Millisecond, func() { fired = append(fired, "a") })
	id := tm.After(20*time.Millisecond, func() { fired = append(fired, "b") })
	tm.After(30*time.Millisecond, func() { fired = append(fired, "c") })

	tm.Fire(5 * time.Millisecond)
	if len(fired) != 0 {
		t.Fatalf("fired early: %v", fired)
	}
	tm.Cancel(id)
	tm.Fire(25 * time.Millisecond)
	if strings.Join(fired, "") != "a" {
		t.Fatalf("fired %v, want [a]", fired)
	}
	if tm.Len() != 1 {
		t.Fatalf("Len = %d, want 1", tm.Len())
	}
	tm.CancelAll()
	tm.Fire(time.Second)
	if strings.Join(fired, "") != "a" || tm.Len() != 0 {
		t.Errorf("cancelled timer fired: %v", fired)
	}
}

func TestClampTermSize(t *testing.T) {
	tests := []struct {
		name                   string
		w, h                   int
		rw, rh, offCol, offRow int
	}{
		{"small", 80, 24, 80, 24, 0, 0},
		{"wide", config.MaxTermWidth + 40, 24, config.MaxTermWidth, 24, 20, 0},
		{"tall", 80, config.MaxTermHeight + 11, 80, config.MaxTermHeight, 0, 5},
		{"zero", 0, 0, 1, 1, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rw, rh, oc, or := clampTermSize(tt.w, tt.h)
			if rw != tt.rw || rh != tt.rh || oc != tt.offCol || or != tt.offRow {
				t.Errorf("clampTermSize(%d, %d) = %d, %d, %d, %d", tt.w, tt.h, rw, rh, oc, or)
			}
		})
	}
}

func TestHostPersistsRound(t *testing.T) {
	ctx := context.Background()
	st := store.New(store.NewMemory())
	snd := &recSound{}
	nar := &recNarrator{}
	h := NewHost(ctx, st, nar, snd, quietLogger())

	word := vocab.Entry{Prompt: "Cat", Answer: "cat"}
	h.Started()
	for _, e := range []session.Event{
		{Kind: session.EventHit, Points: 10},
		{Kind: session.EventScore, Points: 10, Value: 10},
		{Kind: session.EventHighScore, Value: 10},
		{Kind: session.EventMissed, Word: word},
		{Kind: session.EventGameOver, Value: 10},
	} {
		h.HandleEvent(e)
	}

	if hs, _ := st.HighScore(ctx); hs != 10 {
		t.Errorf("high score = %d, want 10", hs)
	}
	if best, _ := st.BestTotal(ctx); best != 10 {
		t.Errorf("best total = %d, want 10", best)
	}
	missed, err := st.Missed(ctx)
	if err != nil || len(missed) != 1 || missed[0].Answer != "cat" {
		t.Errorf("missed = %v, %v", missed, err)
	}
	stats, err := st.Stats(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if got := stats[store.ModeTyping]; got.Played != 1 || got.Completed != 1 {
		t.Errorf("typing stats = %+v, want 1 played 1 completed", got)
	}
	if len(nar.said) != 1 || nar.said[0] != narrate.GameOverPhrase {
		t.Errorf("narrated %v", nar.said)
	}
	if snd.count(sfx.Hit) != 1 || snd.count(sfx.Impact) != 1 || snd.count(sfx.GameOver) != 1 {
		t.Errorf("sounds = %v", snd.played)
	}

	// A second session keeps adding to the running total.
	h.HandleEvent(session.Event{Kind: session.EventReset})
	h.HandleEvent(session.Event{Kind: session.EventScore, Points: 10, Value: 10})
	if h.Total() != 20 {
		t.Errorf("total = %d, want 20", h.Total())
	}
	if best, _ := st.BestTotal(ctx); best != 20 {
		t.Errorf("best total = %d, want 20", best)
	}
}

func TestHostWithoutStore(t *testing.T) {
	h := NewHost(context.Background(), nil, nil, nil, quietLogger())
	h.Started()
	h.HandleEvent(session.Event{Kind: session.EventHighScore, Value: 5})
	h.HandleEvent(session.Event{Kind: session.EventGameOver})
	h.Mismatch()
	h.Say("hello")
}

func newTestClient(t *testing.T, entries ...vocab.Entry) (*Client, *recSound, *recNarrator, *bytes.Buffer) {
	t.Helper()
	pool, err := vocab.NewPool(entries)
	if err != nil {
		t.Fatal(err)
	}
	opts := game.DefaultOptions()
	opts.Seed = 7
	opts.StarCount = 3
	g := game.New(opts, pool, 0)

	snd := &recSound{}
	nar := &recNarrator{}
	h := NewHost(context.Background(), store.New(store.NewMemory()), nar, snd, quietLogger())

	cfg := config.Config{FPS: 60}
	out := &bytes.Buffer{}
	c := NewClient(g, h, cfg, bufio.NewReader(strings.NewReader("")), out, ClientOptions{
		TermSizeFunc: draw.FixedSize(80, 24),
		Logger:       quietLogger(),
	})
	return c, snd, nar, out
}

func runeKeys(s string) []input.Key {
	var keys []input.Key
	for _, r := range s {
		keys = append(keys, input.Key{Type: input.KeyRune, Rune: r})
	}
	return keys
}

func TestClientTypesMeteor(t *testing.T) {
	c, snd, _, _ := newTestClient(t, vocab.Entry{Prompt: "Hello", Answer: "hi", Glyph: "👋"})

	for _, k := range runeKeys("hi") {
		c.handleKey(k) // Ignored on the start screen
	}
	if c.line.Len() != 0 {
		t.Fatalf("typing before start should be ignored, line = %q", c.line.String())
	}

	c.handleKey(input.Key{Type: input.KeyEnter})
	if c.game.State().Phase != session.Playing {
		t.Fatalf("phase = %v, want playing", c.game.State().Phase)
	}
	c.game.Step(0)
	if n := len(c.game.World().Meteors()); n != 1 {
		t.Fatalf("%d meteors after first step, want 1", n)
	}

	c.handleKey(input.Key{Type: input.KeyRune, Rune: 'h'})
	if c.state.mismatch {
		t.Error("prefix of an answer flagged as mismatch")
	}
	c.handleKey(input.Key{Type: input.KeyRune, Rune: 'i'})

	if got := c.game.State().Score; got != 10 {
		t.Errorf("score = %d, want 10", got)
	}
	if c.line.Len() != 0 {
		t.Errorf("line not cleared after a hit: %q", c.line.String())
	}
	if snd.count(sfx.Hit) != 1 {
		t.Errorf("hit sound played %d times", snd.count(sfx.Hit))
	}
}

func TestClientMismatchFlash(t *testing.T) {
	c, snd, _, _ := newTestClient(t, vocab.Entry{Prompt: "Hello", Answer: "hi"})
	c.handleKey(input.Key{Type: input.KeyEnter})
	c.game.Step(0)

	c.handleKey(input.Key{Type: input.KeyRune, Rune: 'x'})
	if !c.state.mismatch {
		t.Fatal("expected mismatch after typing x")
	}
	if snd.count(sfx.Mismatch) != 1 {
		t.Errorf("mismatch sound played %d times", snd.count(sfx.Mismatch))
	}
	if c.timers.Len() != 1 {
		t.Fatalf("%d pending timers, want 1", c.timers.Len())
	}

	c.timers.Fire(config.MismatchFlash - time.Millisecond)
	if !c.state.mismatch {
		t.Error("flash cleared too early")
	}
	c.timers.Fire(config.MismatchFlash)
	if c.state.mismatch {
		t.Error("flash not cleared after its timer")
	}

	// Fixing the typo clears the flag straight away.
	c.handleKey(input.Key{Type: input.KeyRune, Rune: 'y'})
	c.handleKey(input.Key{Type: input.KeyBackspace})
	c.handleKey(input.Key{Type: input.KeyBackspace})
	c.handleKey(input.Key{Type: input.KeyRune, Rune: 'h'})
	if c.state.mismatch || c.timers.Len() != 0 {
		t.Errorf("mismatch = %v with %d timers after correcting", c.state.mismatch, c.timers.Len())
	}
}

func TestClientReviewNarration(t *testing.T) {
	c, _, nar, _ := newTestClient(t, vocab.Entry{Prompt: "Hello", Answer: "hi"})
	c.handleKey(input.Key{Type: input.KeyEnter})

	// Let meteors fall until the ground has taken every hit.
	now := time.Duration(0)
	for i := 0; i < 1_000_000 && c.game.Step(now); i++ {
		now += 16 * time.Millisecond
	}
	st := c.game.State()
	if st.Phase != session.GameOver || len(st.Missed) != 1 {
		t.Fatalf("phase %v with %d missed, want game over with 1", st.Phase, len(st.Missed))
	}

	c.handleKey(input.Key{Type: input.KeyRune, Rune: '1'})
	c.handleKey(input.Key{Type: input.KeyRune, Rune: '2'}) // No second word
	want := []string{narrate.GameOverPhrase, "hi"}
	if strings.Join(nar.said, "|") != strings.Join(want, "|") {
		t.Errorf("narrated %q, want %q", nar.said, want)
	}

	c.handleKey(input.Key{Type: input.KeyEnter})
	if c.game.State().Phase != session.Playing || !c.state.stepping {
		t.Error("enter on game over should start a new round")
	}
}

func TestClientTabTogglesMode(t *testing.T) {
	c, _, _, _ := newTestClient(t, vocab.Entry{Prompt: "Hello", Answer: "hi"})
	before := c.game.Mode()
	c.handleKey(input.Key{Type: input.KeyTab})
	if c.game.Mode() == before {
		t.Errorf("mode still %q after tab", before)
	}
}

func TestClientImportsWatchedWords(t *testing.T) {
	c, _, _, _ := newTestClient(t, vocab.Entry{Prompt: "Hello", Answer: "hi"})
	words := make(chan []vocab.Entry, 2)
	c.words = words
	c.handleKey(input.Key{Type: input.KeyEnter})

	words <- []vocab.Entry{{Prompt: "", Answer: "bad"}}
	words <- []vocab.Entry{{Prompt: "Cat", Answer: "cat"}, {Prompt: "Dog", Answer: "dog"}}
	close(words)
	c.processEvents()

	st := c.game.State()
	if st.Pool.Len() != 2 {
		t.Errorf("pool has %d entries, want 2", st.Pool.Len())
	}
	if st.Phase != session.Ready {
		t.Errorf("phase = %v, want ready after import", st.Phase)
	}
	if c.words != nil {
		t.Error("closed words channel should be dropped")
	}
}

func TestClientShutdownCountdown(t *testing.T) {
	c, _, _, _ := newTestClient(t, vocab.Entry{Prompt: "Hello", Answer: "hi"})
	shutdown := make(chan struct{})
	c.shutdown = shutdown
	close(shutdown)
	c.processEvents()
	if !c.state.shuttingDown || c.state.shutdownTimer != config.ShutdownDisplaySeconds {
		t.Fatalf("shutdown state = %+v", c.state)
	}
}

func TestClientRunEndsOnEOF(t *testing.T) {
	c, _, _, out := newTestClient(t, vocab.Entry{Prompt: "Hello", Answer: "hi"})
	done := make(chan error, 1)
	go func() { done <- c.Run(context.Background()) }()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after input ended")
	}
	if !strings.HasPrefix(out.String(), "\033[?25l") || !strings.HasSuffix(out.String(), "\033[?25h") {
		t.Errorf("cursor not hidden for the session and restored after it")
	}
	if !strings.Contains(out.String(), "Press ENTER") && !strings.Contains(out.String(), "Type the words") {
		t.Error("start screen was not drawn")
	}
}

func TestClientRunCancelsPendingFlash(t *testing.T) {
	c, _, _, _ := newTestClient(t, vocab.Entry{Prompt: "Hello", Answer: "hi"})
	c.handleKey(input.Key{Type: input.KeyEnter})
	c.game.Step(0)
	c.handleKey(input.Key{Type: input.KeyRune, Rune: 'x'})
	if !c.state.mismatch || c.timers.Len() != 1 {
		t.Fatalf("setup: mismatch = %v with %d timers", c.state.mismatch, c.timers.Len())
	}
	fired := false
	c.timers.After(time.Hour, func() { fired = true })

	done := make(chan error, 1)
	go func() { done <- c.Run(context.Background()) }()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after input ended")
	}

	if n := c.timers.Len(); n != 0 {
		t.Errorf("%d timers still pending after teardown", n)
	}
	c.timers.Fire(2 * time.Hour)
	if fired {
		t.Error("cancelled timer ran after teardown")
	}
}

func TestClientRunCancelledByContext(t *testing.T) {
	c, _, _, _ := newTestClient(t, vocab.Entry{Prompt: "Hello", Answer: "hi"})
	pr, pw := io.Pipe()
	t.Cleanup(func() { pw.Close() })
	c.inputStream = input.StartStream(bufio.NewReader(pr))

	c.handleKey(input.Key{Type: input.KeyEnter})
	c.game.Step(0)
	c.handleKey(input.Key{Type: input.KeyRune, Rune: 'x'})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- c.Run(ctx) }()
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
	if n := c.timers.Len(); n != 0 {
		t.Errorf("%d timers still pending after teardown", n)
	}
}

func TestClientEscapeLeavesRound(t *testing.T) {
	c, _, _, _ := newTestClient(t, vocab.Entry{Prompt: "Hello", Answer: "hi"})
	c.handleKey(input.Key{Type: input.KeyEnter})
	c.game.Step(0)
	c.handleKey(input.Key{Type: input.KeyRune, Rune: 'h'})
	c.handleKey(input.Key{Type: input.KeyRune, Rune: 'x'})

	c.handleKey(input.Key{Type: input.KeyEscape})
	st := c.game.State()
	if st.Phase != session.Ready || !c.state.running {
		t.Fatalf("phase = %v running = %v, want ready and still running", st.Phase, c.state.running)
	}
	if len(c.game.World().Meteors()) != 0 || st.Health != st.Rules().MaxHealth {
		t.Errorf("round not reset: %d meteors, health %d", len(c.game.World().Meteors()), st.Health)
	}
	if c.line.Len() != 0 || c.state.mismatch || c.timers.Len() != 0 {
		t.Errorf("input not cleared: line %q mismatch %v timers %d", c.line.String(), c.state.mismatch, c.timers.Len())
	}
	if !c.state.stepping {
		t.Error("title screen stars should keep moving")
	}

	// From the title screen Escape quits.
	c.handleKey(input.Key{Type: input.KeyEscape})
	if c.state.running {
		t.Error("escape on the title screen should quit")
	}
}

func TestLoopLinksNoAudioBackend(t *testing.T) {
	files, err := filepath.Glob("*.go")
	if err != nil {
		t.Fatal(err)
	}
	fset := token.NewFileSet()
	for _, name := range files {
		if strings.HasSuffix(name, "_test.go") {
			continue
		}
		f, err := parser.ParseFile(fset, name, nil, parser.ImportsOnly)
		if err != nil {
			t.Fatal(err)
		}
		for _, imp := range f.Imports {
			path := strings.Trim(imp.Path.Value, `"`)
			if strings.HasSuffix(path, "/internal/audio") || strings.Contains(path, "gopxl/beep") {
				t.Errorf("%s imports %s", name, path)
			}
		}
	}
}
