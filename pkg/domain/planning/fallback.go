package planning

import (
	"fmt"
	"strings"
)

// FallbackEstimatedTime is the overall estimate of every fallback plan.
const FallbackEstimatedTime = "3-4 weeks"

// FallbackPlan returns the fixed plan used when generation fails.
// It is a pure function of the intake; resource URLs are placeholders.
func FallbackPlan(in ProjectIntake) *ProjectPlan {
	slug := strings.ToLower(in.TechStack)

	return &ProjectPlan{
		Tasks: []PlanTask{
			{
				Name:              "Project Setup",
				Description:       "Initialize repository and set up development environment",
				Priority:          PriorityHigh,
				EstimatedDuration: "1-2 days",
			},
			{
				Name:              "Design System",
				Description:       "Create design system and component library",
				Priority:          PriorityHigh,
				EstimatedDuration: "3-5 days",
			},
			{
				Name:              "Core Functionality",
				Description:       "Implement core features and functionality",
				Priority:          PriorityHigh,
				EstimatedDuration: "1-2 weeks",
			},
			{
				Name:              "Testing",
				Description:       "Perform unit and integration testing",
				Priority:          PriorityMedium,
				EstimatedDuration: "3-5 days",
			},
			{
				Name:              "Deployment",
				Description:       "Set up CI/CD pipeline and deploy to production",
				Priority:          PriorityMedium,
				EstimatedDuration: "1-2 days",
			},
		},
		EstimatedTime: FallbackEstimatedTime,
		Breakdown: fmt.Sprintf(
			"This %s project will be built using %s. Based on your %s experience level, we estimate it will take approximately %s to complete.",
			in.ProjectType, in.TechStack, in.ExperienceLevel, FallbackEstimatedTime,
		),
		TechRecommendations: []string{"TypeScript", "Tailwind CSS", "Jest"},
		Resources: []Resource{
			{
				Title:       "Official Documentation",
				URL:         "https://example.com/" + slug + "/docs",
				Description: fmt.Sprintf("The official %s documentation", in.TechStack),
			},
			{
				Title:       "Getting Started Tutorial",
				URL:         "https://example.com/tutorials/" + slug,
				Description: fmt.Sprintf("A comprehensive tutorial for %s", in.TechStack),
			},
			{
				Title:       "Best Practices Guide",
				URL:         "https://example.com/best-practices/" + slug,
				Description: fmt.Sprintf("Best practices for %s development", in.TechStack),
			},
		},
	}
}
