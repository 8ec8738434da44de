package session

import (
	"testing"

	"github.com/tomz197/meteortype/internal/vocab"
)

func newPlaying(t *testing.T) State {
	t.Helper()
	pool, err := vocab.NewPool([]vocab.Entry{{Prompt: "Cat", Answer: "cat"}})
	if err != nil {
		t.Fatal(err)
	}
	s, _ := New(DefaultRules(), 0, pool).Start()
	return s
}

func hasKind(events []Event, kind EventKind) bool {
	for _, e := range events {
		if e.Kind == kind {
			return true
		}
	}
	return false
}

func TestStartResetsCounters(t *testing.T) {
	s := newPlaying(t)
	s, _ = s.Hit(0, 0, vocab.Entry{Answer: "cat"})
	s, _ = s.BoundaryArrival(vocab.Entry{Answer: "dog"})

	s, events := s.Start()
	if s.Phase != Playing || s.Health != 100 || s.Score != 0 || s.Level != 1 || len(s.Missed) != 0 {
		t.Fatalf("Start left %+v", s)
	}
	if s.HighScore != 10 {
		t.Errorf("HighScore = %d, want 10 to survive a restart", s.HighScore)
	}
	if !hasKind(events, EventReset) {
		t.Error("Start should emit a reset event")
	}
}

func TestHitScoresAndLevels(t *testing.T) {
	s := newPlaying(t)
	word := vocab.Entry{Answer: "cat"}

	for i := 0; i < 9; i++ {
		s, _ = s.Hit(0, 0, word)
	}
	if s.Score != 90 || s.Level != 1 {
		t.Fatalf("score %d level %d, want 90 and 1", s.Score, s.Level)
	}

	var events []Event
	s, _ = s.Hit(0, 0, word)
	if s.Level != 2 {
		t.Fatalf("level at 100 = %d, want 2", s.Level)
	}
	for i := 0; i < 9; i++ {
		s, events = s.Hit(0, 0, word)
		if hasKind(events, EventLevel) {
			t.Fatalf("unexpected level change at score %d", s.Score)
		}
	}
	s, events = s.Hit(3, 4, word)
	if s.Score != 200 || s.Level != 3 {
		t.Fatalf("score %d level %d, want 200 and 3", s.Score, s.Level)
	}
	if !hasKind(events, EventLevel) || !hasKind(events, EventHighScore) {
		t.Errorf("events = %v, want level and highscore", events)
	}
	if events[0].Kind != EventHit || events[0].X != 3 || events[0].Y != 4 || events[0].Points != 10 {
		t.Errorf("hit event = %+v", events[0])
	}
}

func TestHighScoreOnlyRises(t *testing.T) {
	pool, _ := vocab.NewPool(vocab.Default())
	s, _ := New(DefaultRules(), 50, pool).Start()

	s, events := s.Hit(0, 0, vocab.Entry{Answer: "a"})
	if s.HighScore != 50 || hasKind(events, EventHighScore) {
		t.Fatalf("HighScore = %d, events %v", s.HighScore, events)
	}
	for s.Score <= 50 {
		s, _ = s.Hit(0, 0, vocab.Entry{Answer: "a"})
	}
	if s.HighScore != s.Score {
		t.Errorf("HighScore = %d, want %d", s.HighScore, s.Score)
	}
}

func TestBoundaryArrivalDamagesUntilOver(t *testing.T) {
	s := newPlaying(t)
	word := vocab.Entry{Prompt: "Cat", Answer: "Cat "}

	for i := 1; i <= 10; i++ {
		var events []Event
		s, events = s.BoundaryArrival(word)
		if s.Health != 100-10*i {
			t.Fatalf("after %d arrivals health = %d", i, s.Health)
		}
		if i < 10 && s.Over() {
			t.Fatalf("over after %d arrivals", i)
		}
		if i == 10 && !hasKind(events, EventGameOver) {
			t.Fatal("missing game over event")
		}
	}
	if !s.Over() {
		t.Fatal("session should be over at zero health")
	}
	if len(s.Missed) != 1 {
		t.Errorf("Missed = %v, want one entry for repeated answer", s.Missed)
	}

	after, events := s.BoundaryArrival(word)
	if after.Health != 0 || events != nil {
		t.Errorf("arrival after game over changed state: %+v %v", after, events)
	}
	if after, _ := s.Hit(0, 0, word); after.Score != s.Score {
		t.Error("hit after game over changed score")
	}
}

func TestMissedDedupIsCaseInsensitive(t *testing.T) {
	s := newPlaying(t)
	s, _ = s.BoundaryArrival(vocab.Entry{Answer: "Dog"})
	s, events := s.BoundaryArrival(vocab.Entry{Answer: " dog"})
	if len(s.Missed) != 1 || hasKind(events, EventMissed) {
		t.Errorf("Missed = %v", s.Missed)
	}
	s, _ = s.BoundaryArrival(vocab.Entry{Answer: "cat"})
	if len(s.Missed) != 2 {
		t.Errorf("Missed = %v, want 2", s.Missed)
	}
}

func TestSnapshotsAreIndependent(t *testing.T) {
	s := newPlaying(t)
	s1, _ := s.BoundaryArrival(vocab.Entry{Answer: "one"})
	s2, _ := s1.BoundaryArrival(vocab.Entry{Answer: "two"})
	s3, _ := s1.BoundaryArrival(vocab.Entry{Answer: "three"})

	if len(s1.Missed) != 1 {
		t.Errorf("s1 mutated: %v", s1.Missed)
	}
	if s2.Missed[1].Answer != "two" || s3.Missed[1].Answer != "three" {
		t.Errorf("branches share storage: %v %v", s2.Missed, s3.Missed)
	}
}

func TestImportResetsToReady(t *testing.T) {
	s := newPlaying(t)
	s, _ = s.Hit(0, 0, vocab.Entry{Answer: "cat"})
	s, _ = s.BoundaryArrival(vocab.Entry{Answer: "cat"})

	pool, _ := vocab.NewPool([]vocab.Entry{{Prompt: "Hello", Answer: "Hi"}})
	s, events := s.Import(pool)
	if s.Phase != Ready || s.Score != 0 || s.Health != 100 || s.Pool != pool {
		t.Fatalf("Import left %+v", s)
	}
	if events[0].Kind != EventImported || events[0].Value != 1 {
		t.Errorf("first event = %+v", events[0])
	}
}

func TestEventKindString(t *testing.T) {
	if EventGameOver.String() != "gameover" || EventKind(99).String() != "unknown" {
		t.Error("unexpected event names")
	}
	if GameOver.String() != "game over" {
		t.Error("unexpected phase name")
	}
}
