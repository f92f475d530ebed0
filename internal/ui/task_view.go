package ui

import (
	"fmt"
	"strings"

	"github.com/josephgoksu/planwing/models"
)

// RenderTaskList prints a plan's tasks with the resolved metadata header.
// The plan/platform pair is always shown; callers pass the "unknown"
// literal when metadata could not be resolved.
func RenderTaskList(planName, platform string, tasks []models.Task) string {
	var sb strings.Builder

	header := fmt.Sprintf("Plan: %s  Platform: %s", planName, platform)
	sb.WriteString(StyleTitle.Render(header) + "\n\n")

	if len(tasks) == 0 {
		sb.WriteString(StyleSubtle.Render("No tasks yet.") + "\n")
		return sb.String()
	}

	table := Table{
		Headers:  []string{"ID", "NAME", "LEVEL", "COMPONENT", "EFFORT", "READY", "DONE", "DEPS"},
		MaxWidth: 40,
	}
	for _, t := range tasks {
		table.Rows = append(table.Rows, []string{
			t.ID,
			t.Name,
			string(t.Level),
			t.Component,
			string(t.Effort),
			yesNo(t.Ready),
			yesNo(t.Done),
			strings.Join(t.Dependencies, ","),
		})
	}
	sb.WriteString(table.Render())
	sb.WriteString(StyleSubtle.Render(fmt.Sprintf("\n%d task(s)", len(tasks))) + "\n")
	return sb.String()
}

// RenderTaskDetail prints one task, one field per line.
func RenderTaskDetail(t models.Task) string {
	var sb strings.Builder
	line := func(label, value string) {
		sb.WriteString(StyleSubtle.Render(padRight(label+":", 14)) + StyleText.Render(value) + "\n")
	}

	sb.WriteString(StyleTitle.Render(t.ID+"  "+t.Name) + "\n")
	line("Level", string(t.Level))
	line("Component", t.Component)
	if t.Effort != "" {
		line("Effort", string(t.Effort))
	}
	line("Ready", yesNo(t.Ready))
	line("Done", yesNo(t.Done))
	if len(t.Dependencies) > 0 {
		line("Depends on", strings.Join(t.Dependencies, ", "))
	}
	if !t.CreatedAt.IsZero() {
		line("Created", t.CreatedAt.Format("2006-01-02 15:04"))
	}
	if !t.UpdatedAt.IsZero() {
		line("Updated", t.UpdatedAt.Format("2006-01-02 15:04"))
	}
	return sb.String()
}

// RenderIssues prints validation issues with severity coloring.
func RenderIssues(issues []models.ValidationIssue) string {
	var sb strings.Builder
	for _, issue := range issues {
		tag := StyleWarning.Render("[warning]")
		if issue.Severity == models.SeverityError {
			tag = StyleError.Render("[error]")
		}
		if issue.TaskID != "" {
			sb.WriteString(fmt.Sprintf("%s %s: %s\n", tag, issue.TaskID, issue.Message))
		} else {
			sb.WriteString(fmt.Sprintf("%s %s\n", tag, issue.Message))
		}
	}
	return sb.String()
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
