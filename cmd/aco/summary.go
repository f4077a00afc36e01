package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/pthm-cable/aco/game"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("11")).
			Padding(0, 1)
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Width(20)
	valueStyle = lipgloss.NewStyle().Bold(true)
	boxStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("11")).
			Padding(0, 1)
	okStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	badStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
)

// summaryRows lists the label/value pairs shown for a headless run.
func summaryRows(s game.Summary, outputDir string) [][2]string {
	rows := [][2]string{
		{"Elapsed", s.Elapsed.Round(time.Millisecond).String()},
		{"Ants", fmt.Sprintf("%d (%d returning)", s.Ants, s.Returning)},
		{"Pheromones", fmt.Sprintf("%d (%d active)", s.Pheromones, s.ActivePheromones)},
		{"Arrivals", fmt.Sprint(s.TotalArrivals)},
		{"Returns", fmt.Sprint(s.TotalReturns)},
		{"Windows", fmt.Sprint(s.Windows)},
		{"Bookmarks", fmt.Sprint(len(s.Bookmarks))},
	}
	if outputDir != "" {
		rows = append(rows, [2]string{"Output", outputDir})
	}
	return rows
}

// renderSummary formats a run summary as a bordered table.
func renderSummary(s game.Summary, outputDir string) string {
	var b strings.Builder
	for i, row := range summaryRows(s, outputDir) {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render(row[0]), valueStyle.Render(row[1])))
	}
	for _, bm := range s.Bookmarks {
		fmt.Fprintf(&b, "\n%s", labelStyle.Render(fmt.Sprintf("  %.1fs", bm.TimeSec)))
		b.WriteString(string(bm.Type) + ": " + bm.Description)
	}
	return lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render("colony run"), boxStyle.Render(b.String()))
}

func renderValidation(r validation) string {
	if r.Valid {
		detail := ""
		if r.Kind == "layout" {
			detail = fmt.Sprintf(" (%d obstacles)", r.Obstacles)
		}
		return okStyle.Render("ok  ") + r.Path + detail
	}
	return badStyle.Render("bad ") + r.Path + ": " + r.Error
}
