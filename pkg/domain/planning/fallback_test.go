package planning

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFallbackPlan_ShopExample(t *testing.T) {
	plan := FallbackPlan(validIntake())

	require.True(t, plan.IsComplete())
	assert.Equal(t, "Project Setup", plan.Tasks[0].Name)
	assert.Equal(t, "3-4 weeks", plan.EstimatedTime)
	assert.Len(t, plan.Resources, 3)
	assert.Len(t, plan.Tasks, 5)
}

func TestFallbackPlan_TaskTemplate(t *testing.T) {
	plan := FallbackPlan(validIntake())

	want := []struct {
		name     string
		priority TaskPriority
		duration string
	}{
		{"Project Setup", PriorityHigh, "1-2 days"},
		{"Design System", PriorityHigh, "3-5 days"},
		{"Core Functionality", PriorityHigh, "1-2 weeks"},
		{"Testing", PriorityMedium, "3-5 days"},
		{"Deployment", PriorityMedium, "1-2 days"},
	}
	for i, w := range want {
		assert.Equal(t, w.name, plan.Tasks[i].Name)
		assert.Equal(t, w.priority, plan.Tasks[i].Priority)
		assert.Equal(t, w.duration, plan.Tasks[i].EstimatedDuration)
	}
}

func TestFallbackPlan_BreakdownInterpolatesIntake(t *testing.T) {
	in := ProjectIntake{ProjectType: "dashboard", TechStack: "Vue", ExperienceLevel: LevelExpert}
	plan := FallbackPlan(in)

	assert.Contains(t, plan.Breakdown, "dashboard")
	assert.Contains(t, plan.Breakdown, "Vue")
	assert.Contains(t, plan.Breakdown, "expert")
}

func TestFallbackPlan_ResourceURLs(t *testing.T) {
	plan := FallbackPlan(ProjectIntake{TechStack: "Next.js"})

	urls := []string{plan.Resources[0].URL, plan.Resources[1].URL, plan.Resources[2].URL}
	assert.Equal(t, []string{
		"https://example.com/next.js/docs",
		"https://example.com/tutorials/next.js",
		"https://example.com/best-practices/next.js",
	}, urls)
	assert.Equal(t, []string{"TypeScript", "Tailwind CSS", "Jest"}, plan.TechRecommendations)
}

func TestFallbackPlan_Deterministic(t *testing.T) {
	in := ProjectIntake{Name: "a", Description: "b", ProjectType: TypeWebApp, TechStack: "React", ExperienceLevel: LevelIntermediate}

	if diff := cmp.Diff(FallbackPlan(in), FallbackPlan(in)); diff != "" {
		t.Errorf("fallback plans differ (-first +second):\n%s", diff)
	}
}

func TestFallbackPlan_FreshPerCall(t *testing.T) {
	in := validIntake()
	a := FallbackPlan(in)
	a.Tasks[0].Name = "mutated"
	a.TechRecommendations[0] = "mutated"

	b := FallbackPlan(in)
	assert.Equal(t, "Project Setup", b.Tasks[0].Name)
	assert.Equal(t, "TypeScript", b.TechRecommendations[0])
}
