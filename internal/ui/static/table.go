// Package static provides non-interactive terminal output components.
package static

import (
	"fmt"
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/raphi011/newrepo/internal/ui/styles"
)

// RenderTable creates a borderless table with aligned columns.
// Returns an empty string when there are no rows.
func RenderTable(headers []string, rows [][]string) string {
	if len(rows) == 0 {
		return ""
	}

	var output strings.Builder

	t := table.New().
		Headers(headers...).
		Rows(rows...).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderHeader(false).
		BorderColumn(false).
		BorderRow(false).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styles.Bold.PaddingRight(2)
			}
			return lipgloss.NewStyle().PaddingRight(2)
		})

	output.WriteString(t.String())
	output.WriteString("\n")

	return output.String()
}

// RenderSummary renders label/value pairs as a two-column table without
// headers. Pairs with an empty value are skipped.
func RenderSummary(pairs [][2]string) string {
	rows := make([][]string, 0, len(pairs))
	for _, p := range pairs {
		if p[1] == "" {
			continue
		}
		rows = append(rows, []string{styles.MutedStyle.Render(p[0]), p[1]})
	}
	if len(rows) == 0 {
		return ""
	}

	t := table.New().
		Rows(rows...).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderHeader(false).
		BorderColumn(false).
		BorderRow(false).
		StyleFunc(func(row, col int) lipgloss.Style {
			return lipgloss.NewStyle().PaddingRight(2)
		})
	return t.String() + "\n"
}

// RenderPlan renders step names as a numbered list.
func RenderPlan(steps []string) string {
	width := len(strconv.Itoa(len(steps)))
	var b strings.Builder
	for i, s := range steps {
		b.WriteString(styles.MutedStyle.Render(fmt.Sprintf("%*d.", width, i+1)))
		b.WriteString(" ")
		b.WriteString(s)
		b.WriteString("\n")
	}
	return b.String()
}
