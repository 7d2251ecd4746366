package application

import (
	"fmt"
	"strings"

	"github.com/felixgeelhaar/plancraft/pkg/domain/planning"
)

const planSystemPrompt = "You are an experienced software project manager. You return a single JSON object describing a project plan and nothing else."

// BuildPlanPrompt renders the instruction text sent to the backend for an intake.
// Every intake field is embedded, including empty optional ones.
func BuildPlanPrompt(in planning.ProjectIntake) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Generate a detailed project plan for a %s project named %q.\n\n", in.ProjectType, in.Name)
	fmt.Fprintf(&b, "Project Description: %s\n", in.Description)
	fmt.Fprintf(&b, "Primary Technology: %s\n", in.TechStack)
	fmt.Fprintf(&b, "Developer Experience Level: %s\n", in.ExperienceLevel)
	fmt.Fprintf(&b, "Project Goals: %s\n", in.ProjectGoals)
	fmt.Fprintf(&b, "Target Audience: %s\n", in.TargetAudience)
	fmt.Fprintf(&b, "Budget Range: %s\n\n", in.Budget)

	b.WriteString("Please provide:\n")
	b.WriteString("1. A list of 5-8 tasks with name, description, priority (Low, Medium, High), and estimated duration\n")
	b.WriteString("2. Overall estimated time to complete the project\n")
	b.WriteString("3. A brief breakdown of the project approach\n")
	fmt.Fprintf(&b, "4. 3-5 technology recommendations that would complement %s\n", in.TechStack)
	b.WriteString("5. 3 learning resources (tutorials, documentation, courses) relevant to this project\n\n")

	b.WriteString("Format the response as a JSON object with the following structure:\n")
	b.WriteString(planPromptShape)

	return b.String()
}

const planPromptShape = `{
  "tasks": [
    {
      "name": "Task name",
      "description": "Task description",
      "priority": "High/Medium/Low",
      "estimatedDuration": "X days/hours"
    }
  ],
  "estimatedTime": "Total estimated time",
  "breakdown": "Project approach breakdown",
  "techRecommendations": ["Tech 1", "Tech 2", "Tech 3"],
  "resources": [
    {
      "title": "Resource title",
      "url": "Resource URL",
      "description": "Brief description"
    }
  ]
}
`
