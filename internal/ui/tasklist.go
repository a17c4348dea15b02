package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tinytask-cli/tinytask/models"
)

// RenderTaskList renders tasks as a table, one row per task.
func RenderTaskList(tasks []models.Task) string {
	table := Table{
		Headers: []string{"ID", "St", "Priority", "Title", "Due", "Tags"},
		// Leave room for the other columns before the title gets truncated.
		MaxWidth: TerminalWidth() / 2,
	}

	for _, t := range tasks {
		title := t.Title
		if t.Done {
			title = StyleDone.Render(title)
		}
		prio := PriorityStyle(t.Priority).Render(PrioritySymbol(t.Priority) + " " + string(t.Priority))
		due := t.DueDate
		if due == "" {
			due = "—"
		}
		table.Rows = append(table.Rows, []string{
			strconv.Itoa(t.ID),
			StatusSymbol(t.Done),
			prio,
			title,
			due,
			formatTags(t.Tags),
		})
	}

	return table.Render()
}

// RenderTask renders a single task as a bordered panel.
func RenderTask(t models.Task) string {
	status := StyleWarning.Render("○ Pending")
	if t.Done {
		status = StyleSuccess.Render("✓ Done")
	}

	lines := []string{
		StyleTitle.Render("ID: ") + strconv.Itoa(t.ID),
		StyleTitle.Render("Title: ") + t.Title,
		StyleTitle.Render("Status: ") + status,
		StyleTitle.Render("Priority: ") + PriorityStyle(t.Priority).Render(PrioritySymbol(t.Priority)+" "+string(t.Priority)),
		StyleTitle.Render("Tags: ") + formatTags(t.Tags),
	}
	if t.DueDate != "" {
		lines = append(lines, StyleTitle.Render("Due: ")+t.DueDate)
	}
	if t.Note != "" {
		lines = append(lines, StyleTitle.Render("Note: ")+t.Note)
	}
	lines = append(lines, StyleTitle.Render("Created: ")+t.CreatedAt.Format("2006-01-02"))

	return StylePanel.Render(strings.Join(lines, "\n"))
}

// Stats summarizes a task collection for the stats panel.
type Stats struct {
	Total             int
	Done              int
	PendingByPriority map[models.Priority]int
	Tags              []string
}

// RenderStats renders the statistics panel.
func RenderStats(s Stats) string {
	pending := s.Total - s.Done
	percent := 0
	if s.Total > 0 {
		percent = s.Done * 100 / s.Total
	}

	var sb strings.Builder
	sb.WriteString(StyleHeader.Render("Task Statistics") + "\n\n")
	sb.WriteString(fmt.Sprintf("%s %d\n", StyleTitle.Render("Total:"), s.Total))
	sb.WriteString(fmt.Sprintf("%s %d (%d%%)\n", StyleSuccess.Render("✓ Completed:"), s.Done, percent))
	sb.WriteString(fmt.Sprintf("%s %d\n\n", StyleWarning.Render("○ Pending:"), pending))

	sb.WriteString(StyleTitle.Render("Pending by priority:") + "\n")
	for _, p := range []models.Priority{models.PriorityHigh, models.PriorityMedium, models.PriorityLow} {
		style := PriorityStyle(p)
		sb.WriteString(fmt.Sprintf("  %s %d\n", style.Render(PrioritySymbol(p)+" "+string(p)+":"), s.PendingByPriority[p]))
	}

	sb.WriteString("\n" + StyleTitle.Render(fmt.Sprintf("Tags: %d", len(s.Tags))) + "\n")
	if len(s.Tags) > 0 {
		sb.WriteString("  " + formatTags(s.Tags) + "\n")
	}

	return StylePanel.Render(strings.TrimRight(sb.String(), "\n"))
}

func formatTags(tags []string) string {
	if len(tags) == 0 {
		return StyleSubtle.Render("—")
	}
	parts := make([]string, 0, len(tags))
	for _, tag := range tags {
		parts = append(parts, "#"+tag)
	}
	return strings.Join(parts, ", ")
}
