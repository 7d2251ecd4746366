package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/felixgeelhaar/plancraft/pkg/domain/planning"
	"github.com/felixgeelhaar/plancraft/pkg/domain/project"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)
	sectionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	hintStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Italic(true)

	priorityStyles = map[planning.TaskPriority]lipgloss.Style{
		planning.PriorityHigh:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		planning.PriorityMedium: lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
		planning.PriorityLow:    lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
	}
	statusStyles = map[project.TaskStatus]lipgloss.Style{
		project.TaskToDo:       lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		project.TaskInProgress: lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
		project.TaskDone:       lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
	}
)

func priorityBadge(p planning.TaskPriority) string {
	style, ok := priorityStyles[p]
	if !ok {
		return string(p)
	}
	return style.Render(fmt.Sprintf("%-6s", p))
}

func statusBadge(s project.TaskStatus) string {
	style, ok := statusStyles[s]
	if !ok {
		return string(s)
	}
	return style.Render(fmt.Sprintf("%-11s", s))
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func renderPlan(w io.Writer, title string, plan *planning.ProjectPlan, source project.PlanSource) {
	fmt.Fprintln(w, titleStyle.Render(title))
	if source == project.PlanSourceFallback {
		fmt.Fprintln(w, warnStyle.Render("AI backend unavailable: showing the standard fallback plan"))
	}
	fmt.Fprintf(w, "\n%s %s\n", sectionStyle.Render("Estimated time:"), plan.EstimatedTime)
	fmt.Fprintf(w, "\n%s\n%s\n", sectionStyle.Render("Approach"), plan.Breakdown)

	fmt.Fprintf(w, "\n%s\n", sectionStyle.Render("Tasks"))
	for i, t := range plan.Tasks {
		fmt.Fprintf(w, "%2d. %s %s %s\n", i+1, priorityBadge(t.Priority), t.Name, mutedStyle.Render("("+t.EstimatedDuration+")"))
		if t.Description != "" {
			fmt.Fprintf(w, "    %s\n", t.Description)
		}
	}

	fmt.Fprintf(w, "\n%s %s\n", sectionStyle.Render("Recommended tech:"), strings.Join(plan.TechRecommendations, ", "))

	if len(plan.Resources) > 0 {
		fmt.Fprintf(w, "\n%s\n", sectionStyle.Render("Resources"))
		for _, r := range plan.Resources {
			fmt.Fprintf(w, "  - %s %s\n", r.Title, mutedStyle.Render(r.URL))
		}
	}
}

func renderProjectList(w io.Writer, projects []project.Project) {
	if len(projects) == 0 {
		fmt.Fprintln(w, mutedStyle.Render("No projects yet. Create one with 'plancraft project create'."))
		return
	}
	for _, p := range projects {
		fmt.Fprintf(w, "%s  %s  %s  %s\n",
			mutedStyle.Render(p.ID),
			p.Name,
			mutedStyle.Render(fmt.Sprintf("[%s, %s]", p.ProjectType, p.Status)),
			mutedStyle.Render(p.CreatedAt.Format("2006-01-02")),
		)
	}
}

func renderProjectDetails(w io.Writer, d *project.Details) {
	p := d.Project
	fmt.Fprintln(w, titleStyle.Render(p.Name))
	fmt.Fprintf(w, "%s\n\n", mutedStyle.Render(p.ID))
	fmt.Fprintf(w, "%s %s\n", sectionStyle.Render("Status:"), p.Status)
	fmt.Fprintf(w, "%s %s (%s)\n", sectionStyle.Render("Type:"), p.ProjectType, p.ExperienceLevel)
	fmt.Fprintf(w, "%s %s\n", sectionStyle.Render("Tech stack:"), strings.Join(p.TechStack, ", "))
	if p.ClientName != "" {
		fmt.Fprintf(w, "%s %s\n", sectionStyle.Render("Client:"), p.ClientName)
	}
	if p.DueDate != nil {
		fmt.Fprintf(w, "%s %s\n", sectionStyle.Render("Due:"), p.DueDate.Format("2006-01-02"))
	}
	fmt.Fprintf(w, "%s %s\n", sectionStyle.Render("Estimated time:"), p.EstimatedTime)
	if p.PlanSource == project.PlanSourceFallback {
		fmt.Fprintln(w, warnStyle.Render("Plan source: fallback"))
	}
	if p.AIBreakdown != "" {
		fmt.Fprintf(w, "\n%s\n", p.AIBreakdown)
	}

	fmt.Fprintf(w, "\n%s\n", sectionStyle.Render("Tasks"))
	if len(d.Tasks) == 0 {
		fmt.Fprintln(w, mutedStyle.Render("  none"))
	}
	for _, t := range d.TasksByPriority() {
		fmt.Fprintf(w, "  %s %s %s %s\n", statusBadge(t.Status), priorityBadge(t.Priority), t.Name, mutedStyle.Render(t.ID))
	}

	if len(d.Resources) > 0 {
		fmt.Fprintf(w, "\n%s\n", sectionStyle.Render("Resources"))
		for _, r := range d.Resources {
			fmt.Fprintf(w, "  - %s %s\n", r.Title, mutedStyle.Render(r.URL))
		}
	}
}
