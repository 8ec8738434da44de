package draw

import "github.com/charmbracelet/lipgloss"

type textItem struct {
	col, row int
	s        string
}

// TextLayer collects styled text drawn over the canvas during a frame.
// Flush must run after Canvas.Render so the text is not painted over.
type TextLayer struct {
	items []textItem
}

// WriteAt queues s at the 1-based canvas position (col, row).
func (t *TextLayer) WriteAt(col, row int, s string) {
	if s == "" {
		return
	}
	t.items = append(t.items, textItem{col: col, row: row, s: s})
}

// WriteCentered queues s centered horizontally on a canvas width columns wide.
func (t *TextLayer) WriteCentered(width, row int, s string) {
	col := (width-lipgloss.Width(s))/2 + 1
	t.WriteAt(max(col, 1), row, s)
}

// Len returns the number of queued items.
func (t *TextLayer) Len() int {
	return len(t.items)
}

// Flush writes the queued text to cw and marks the covered cells on c so the
// next Render erases them. The layer is empty afterwards.
func (t *TextLayer) Flush(cw *ChunkWriter, c *Canvas) {
	for _, it := range t.items {
		cw.WriteAt(it.col, it.row, it.s)
		if c != nil {
			c.MarkTextDirty(it.col, it.row, lipgloss.Width(it.s))
		}
	}
	t.items = t.items[:0]
}
