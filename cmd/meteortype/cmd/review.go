package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/tomz197/meteortype/internal/narrate"
	"github.com/tomz197/meteortype/internal/vocab"
)

var (
	reviewTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#FF6B6B")).
				Background(lipgloss.Color("#1a1a2e")).
				Padding(0, 1)

	reviewSelectedStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#ffe66d"))

	reviewPromptStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#4ecdc4"))

	reviewHelpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

// reviewPageSize caps how many rows the list shows at once.
const reviewPageSize = 15

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Browse and listen to the words missed in the last game",
	Long: `Open a list of the words that reached the ground in the last finished
game. Type to filter, use the arrow keys to select and press Enter to hear the
selected word through the configured narrator.`,
	Args: cobra.NoArgs,
	RunE: runReview,
}

func init() {
	rootCmd.AddCommand(reviewCmd)
}

func runReview(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logFile, err := openLogFile(cfg)
	if err != nil {
		return err
	}
	defer logFile.Close()
	logger := newLogger(logFile, cfg)

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	missed, err := st.Missed(cmd.Context())
	if err != nil {
		return fmt.Errorf("reading missed words: %w", err)
	}
	if len(missed) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render("No missed words. Nice typing!"))
		return nil
	}

	narrator, closeNarrator := openNarrator(cfg, logger)
	defer closeNarrator()
	if _, silent := narrator.(narrate.Nop); silent {
		narrator = nil
	}

	p := tea.NewProgram(newReviewModel(missed, narrator), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running review: %w", err)
	}
	return nil
}

// reviewModel lists missed words with a filter box.
type reviewModel struct {
	input    textinput.Model
	entries  []vocab.Entry
	visible  []vocab.Entry
	selected int
	narrator narrate.Narrator
	status   string
	height   int
}

func newReviewModel(entries []vocab.Entry, narrator narrate.Narrator) reviewModel {
	ti := textinput.New()
	ti.Placeholder = "filter..."
	ti.Focus()
	ti.CharLimit = 40
	ti.Width = 30
	ti.PromptStyle = reviewPromptStyle
	ti.TextStyle = reviewSelectedStyle

	m := reviewModel{
		input:    ti,
		entries:  entries,
		narrator: narrator,
	}
	m.applyFilter()
	return m
}

func (m reviewModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m reviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "ctrl+p":
			if len(m.visible) > 0 {
				m.selected--
				if m.selected < 0 {
					m.selected = len(m.visible) - 1
				}
			}
			return m, nil
		case "down", "ctrl+n":
			if len(m.visible) > 0 {
				m.selected++
				if m.selected >= len(m.visible) {
					m.selected = 0
				}
			}
			return m, nil
		case "enter":
			m.speak()
			return m, nil
		}
	}

	var cmd tea.Cmd
	before := m.input.Value()
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		m.applyFilter()
	}
	return m, cmd
}

func (m *reviewModel) speak() {
	if len(m.visible) == 0 {
		return
	}
	e := m.visible[m.selected]
	if m.narrator == nil {
		m.status = "No narrator configured (set narrator in config.yaml or pass --narrator)."
		return
	}
	m.narrator.Say(e.Answer)
	m.status = "Speaking: " + e.Answer
}

// applyFilter keeps the entries whose prompt or answer contains the filter text.
func (m *reviewModel) applyFilter() {
	query := vocab.Normalize(m.input.Value())
	m.visible = nil
	for _, e := range m.entries {
		if query == "" ||
			strings.Contains(vocab.Normalize(e.Answer), query) ||
			strings.Contains(vocab.Normalize(e.Prompt), query) {
			m.visible = append(m.visible, e)
		}
	}
	if m.selected >= len(m.visible) {
		m.selected = max(len(m.visible)-1, 0)
	}
}

func (m reviewModel) View() string {
	var b strings.Builder

	b.WriteString(reviewTitleStyle.Render(fmt.Sprintf("Missed words (%d)", len(m.entries))))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	if len(m.visible) == 0 {
		b.WriteString(reviewHelpStyle.Render("No words match."))
		b.WriteString("\n")
	}

	page := reviewPageSize
	if m.height > 10 && m.height-8 < page {
		page = m.height - 8
	}
	start := 0
	if m.selected >= page {
		start = m.selected - page + 1
	}
	end := min(start+page, len(m.visible))
	for i := start; i < end; i++ {
		e := m.visible[i]
		line := e.Prompt
		if e.Answer != e.Prompt {
			line = fmt.Sprintf("%s  %s", e.Prompt, reviewPromptStyle.Render(e.Answer))
		}
		if i == m.selected {
			b.WriteString(reviewSelectedStyle.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}

	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(successStyle.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(reviewHelpStyle.Render("↑/↓: select • enter: listen • esc: quit"))
	return b.String()
}
