package audio

import (
	"testing"
	"time"

	"github.com/gopxl/beep"
)

func drain(t *testing.T, s beep.Streamer) int {
	t.Helper()
	buf := make([][2]float64, 512)
	total := 0
	for {
		n, ok := s.Stream(buf)
		for i := 0; i < n; i++ {
			if buf[i][0] < -1 || buf[i][0] > 1 {
				t.Fatalf("sample %d out of range: %f", total+i, buf[i][0])
			}
		}
		total += n
		if !ok || n == 0 {
			return total
		}
		if total > int(sampleRate)*5 {
			t.Fatal("stream never ends")
		}
	}
}

func TestOscillatorLength(t *testing.T) {
	rate := beep.SampleRate(8000)
	for _, wave := range []Wave{WaveSine, WaveSquare, WaveSaw} {
		got := drain(t, NewOscillator(440, 100*time.Millisecond, wave, rate))
		if want := rate.N(100 * time.Millisecond); got != want {
			t.Errorf("wave %d streamed %d samples, want %d", wave, got, want)
		}
	}
}

func TestEnvelopeStartsSilent(t *testing.T) {
	rate := beep.SampleRate(8000)
	s := NewEnvelope(NewOscillator(440, 50*time.Millisecond, WaveSquare, rate), 50*time.Millisecond, 10*time.Millisecond, 10*time.Millisecond, rate)
	buf := make([][2]float64, 1)
	s.Stream(buf)
	if buf[0][0] != 0 {
		t.Errorf("first sample = %f, want 0 during attack", buf[0][0])
	}
}

func TestEffectsFinish(t *testing.T) {
	for _, e := range []Effect{EffectHit, EffectMismatch, EffectImpact, EffectGameOver} {
		s := Streamer(e)
		if s == nil {
			t.Fatalf("effect %d has no streamer", e)
		}
		if n := drain(t, s); n == 0 {
			t.Errorf("effect %d produced no samples", e)
		}
	}
	if Streamer(Effect(42)) != nil {
		t.Error("unknown effect should be nil")
	}
}

func TestUninitializedPlayerIsSilent(t *testing.T) {
	p := NewPlayer()
	if p.Enabled() {
		t.Fatal("new player should be disabled")
	}
	p.Play(EffectHit)
	p.Close()
}
