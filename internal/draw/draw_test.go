package draw

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestShadeLevel(t *testing.T) {
	tests := []struct {
		intensity float64
		want      rune
	}{
		{0, ' '},
		{-1, ' '},
		{0.01, '·'},
		{0.5, '░'},
		{0.7, '▒'},
		{1, '█'},
		{2, '█'},
	}
	for _, tt := range tests {
		if got := ShadeLevel(tt.intensity); got != tt.want {
			t.Errorf("ShadeLevel(%v) = %q, want %q", tt.intensity, got, tt.want)
		}
	}
}

func TestRenderOnlyWritesChanges(t *testing.T) {
	c := NewScaledCanvas(10, 5, 10, 10)
	var out bytes.Buffer

	c.SetFloat(2, 2)
	c.Render(&out)
	if got := strings.Count(out.String(), string(BlockUpperHalf)); got != 1 {
		t.Fatalf("first render: %d upper half blocks, want 1", got)
	}
	if got := strings.Count(out.String(), " "); got != 10*5-1 {
		t.Errorf("first render: %d blank cells, want %d", got, 10*5-1)
	}

	out.Reset()
	c.Render(&out)
	if out.Len() != 0 {
		t.Errorf("unchanged canvas rendered %q", out.String())
	}

	out.Reset()
	c.Clear()
	c.Render(&out)
	if out.String() != "\033[2;3H " {
		t.Errorf("cleared pixel rendered %q", out.String())
	}
}

func TestRenderRepaintsUnderText(t *testing.T) {
	c := NewScaledCanvas(10, 5, 10, 10)
	c.Render(&bytes.Buffer{})

	c.MarkTextDirty(4, 3, 2)
	var out bytes.Buffer
	c.Render(&out)
	if out.String() != "\033[3;4H  " {
		t.Errorf("dirty text cells rendered %q", out.String())
	}

	// Out of range marks are ignored.
	c.MarkTextDirty(0, 0, 5)
	c.MarkTextDirty(9, 5, 10)
	out.Reset()
	c.Render(&out)
	if out.String() != "\033[5;9H  " {
		t.Errorf("clamped dirty cells rendered %q", out.String())
	}
}

func TestRenderAppliesOffset(t *testing.T) {
	c := NewScaledCanvas(4, 2, 4, 4)
	c.SetOffset(3, 1)
	c.Render(&bytes.Buffer{})
	c.SetFloat(0, 0)
	var out bytes.Buffer
	c.Render(&out)
	if out.String() != "\033[2;4H"+string(BlockUpperHalf) {
		t.Errorf("offset render = %q", out.String())
	}
}

func TestResizeForcesRedraw(t *testing.T) {
	c := NewScaledCanvas(4, 2, 4, 4)
	c.Render(&bytes.Buffer{})
	c.Resize(6, 3)
	var out bytes.Buffer
	c.Render(&out)
	if got := strings.Count(out.String(), " "); got != 6*3 {
		t.Errorf("after resize %d cells rendered, want %d", got, 6*3)
	}
	if c.TerminalWidth() != 6 || c.TerminalHeight() != 3 {
		t.Errorf("size = %dx%d", c.TerminalWidth(), c.TerminalHeight())
	}
}

func TestLogicalToTerminal(t *testing.T) {
	c := NewScaledCanvas(60, 20, 120, 80)
	col, row := c.LogicalToTerminal(60, 40)
	if col != 31 || row != 11 {
		t.Errorf("LogicalToTerminal(60, 40) = (%d, %d), want (31, 11)", col, row)
	}
}

func TestTextLayerFlush(t *testing.T) {
	var out bytes.Buffer
	cw := NewChunkWriter(&out, 2, 1)
	c := NewScaledCanvas(10, 5, 10, 10)
	c.Render(&bytes.Buffer{})

	var layer TextLayer
	layer.WriteAt(1, 1, "hi")
	layer.WriteAt(5, 5, "")
	layer.WriteCentered(10, 2, "abcd")
	if layer.Len() != 2 {
		t.Fatalf("Len = %d, want 2", layer.Len())
	}

	layer.Flush(cw, c)
	if err := cw.Flush(); err != nil {
		t.Fatal(err)
	}
	if want := "\033[2;3Hhi\033[3;6Habcd"; out.String() != want {
		t.Errorf("flushed %q, want %q", out.String(), want)
	}
	if layer.Len() != 0 {
		t.Error("layer should be empty after Flush")
	}

	var repaint bytes.Buffer
	c.Render(&repaint)
	if got := strings.Count(repaint.String(), " "); got != 6 {
		t.Errorf("repainted %d cells under text, want 6", got)
	}
}

func TestChunkWriterSplitsLargeFrames(t *testing.T) {
	var out bytes.Buffer
	cw := NewChunkWriter(&out, 0, 0)
	cw.WriteString(strings.Repeat("x", maxChunkSize*3+7))
	if cw.Len() != maxChunkSize*3+7 {
		t.Fatalf("Len = %d", cw.Len())
	}
	if err := cw.Flush(); err != nil {
		t.Fatal(err)
	}
	if out.Len() != maxChunkSize*3+7 || cw.Len() != 0 {
		t.Errorf("wrote %d bytes, %d left buffered", out.Len(), cw.Len())
	}
}

func TestHealthBar(t *testing.T) {
	tests := []struct {
		health, max, width int
		filled             int
	}{
		{100, 100, 10, 10},
		{50, 100, 10, 5},
		{0, 100, 10, 0},
		{-10, 100, 10, 0},
		{150, 100, 10, 10},
	}
	for _, tt := range tests {
		bar := HealthBar(tt.health, tt.max, tt.width)
		if got := strings.Count(bar, string(BlockFull)); got != tt.filled {
			t.Errorf("HealthBar(%d/%d) filled %d, want %d", tt.health, tt.max, got, tt.filled)
		}
		if w := lipgloss.Width(bar); w != tt.width {
			t.Errorf("HealthBar(%d/%d) width %d, want %d", tt.health, tt.max, w, tt.width)
		}
	}
	if HealthBar(10, 0, 10) != "" {
		t.Error("zero max health should render nothing")
	}
}

func TestFixedSize(t *testing.T) {
	w, h, err := FixedSize(80, 24)()
	if err != nil || w != 80 || h != 24 {
		t.Errorf("FixedSize() = %d, %d, %v", w, h, err)
	}
}
