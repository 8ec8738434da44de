package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/tomz197/meteortype/internal/store"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ffe66d"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#a8dadc")).
			Width(14)

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f1faee"))

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#a8e6cf")).
			Bold(true)
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show high scores and games played",
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	ctx := cmd.Context()
	highScore, err := st.HighScore(ctx)
	if err != nil {
		return fmt.Errorf("reading high score: %w", err)
	}
	bestTotal, err := st.BestTotal(ctx)
	if err != nil {
		return fmt.Errorf("reading best total: %w", err)
	}
	stats, err := st.Stats(ctx)
	if err != nil {
		return fmt.Errorf("reading stats: %w", err)
	}
	missed, err := st.Missed(ctx)
	if err != nil {
		return fmt.Errorf("reading missed words: %w", err)
	}

	writeStats(cmd.OutOrStdout(), highScore, bestTotal, stats, len(missed))
	return nil
}

func writeStats(w io.Writer, highScore, bestTotal int, stats store.Stats, missed int) {
	row := func(label string, value any) string {
		return labelStyle.Render(label) + valueStyle.Render(fmt.Sprint(value))
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render("Scores"))
	b.WriteString("\n")
	b.WriteString(row("High score", highScore))
	b.WriteString("\n")
	b.WriteString(row("Best total", bestTotal))
	b.WriteString("\n")
	b.WriteString(row("Missed words", missed))
	b.WriteString("\n\n")

	b.WriteString(headerStyle.Render("Games"))
	b.WriteString("\n")
	b.WriteString(labelStyle.Render("mode"))
	b.WriteString(mutedStyle.Render(fmt.Sprintf("%8s %10s", "played", "completed")))
	b.WriteString("\n")
	for _, mode := range store.Modes {
		s := stats[mode]
		line := fmt.Sprintf("%8d %10d", s.Played, s.Completed)
		if s.Played == 0 {
			b.WriteString(labelStyle.Render(mode) + mutedStyle.Render(line))
		} else {
			b.WriteString(labelStyle.Render(mode) + valueStyle.Render(line))
		}
		b.WriteString("\n")
	}

	fmt.Fprint(w, b.String())
}
