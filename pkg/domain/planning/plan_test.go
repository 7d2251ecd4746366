package planning

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProjectPlan_IsComplete(t *testing.T) {
	complete := func() *ProjectPlan {
		return &ProjectPlan{
			Tasks:               []PlanTask{{Name: "Setup", Priority: PriorityHigh}},
			EstimatedTime:       "2 weeks",
			Breakdown:           "approach",
			TechRecommendations: []string{"Go"},
			Resources:           []Resource{},
		}
	}

	assert.True(t, complete().IsComplete())

	var nilPlan *ProjectPlan
	assert.False(t, nilPlan.IsComplete())

	tests := []struct {
		name   string
		mutate func(*ProjectPlan)
	}{
		{"no tasks", func(p *ProjectPlan) { p.Tasks = nil }},
		{"no recommendations", func(p *ProjectPlan) { p.TechRecommendations = []string{} }},
		{"no estimate", func(p *ProjectPlan) { p.EstimatedTime = "" }},
		{"no breakdown", func(p *ProjectPlan) { p.Breakdown = "" }},
		{"nil resources", func(p *ProjectPlan) { p.Resources = nil }},
		{"unnamed task", func(p *ProjectPlan) { p.Tasks[0].Name = "" }},
		{"bad priority", func(p *ProjectPlan) { p.Tasks[0].Priority = "urgent" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := complete()
			tt.mutate(p)
			assert.False(t, p.IsComplete())
		})
	}
}
