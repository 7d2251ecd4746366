package planning

// ProjectPlan is the structured plan produced for an intake.
// It carries no identity and is never partially populated.
type ProjectPlan struct {
	Tasks               []PlanTask `json:"tasks"`
	EstimatedTime       string     `json:"estimatedTime"`
	Breakdown           string     `json:"breakdown"`
	TechRecommendations []string   `json:"techRecommendations"`
	Resources           []Resource `json:"resources"`
}

// PlanTask is one suggested unit of work.
type PlanTask struct {
	Name              string       `json:"name"`
	Description       string       `json:"description"`
	Priority          TaskPriority `json:"priority"`
	EstimatedDuration string       `json:"estimatedDuration"`
}

// Resource is a learning resource attached to a plan.
type Resource struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description"`
}

// IsComplete reports whether every required part of the plan is present.
func (p *ProjectPlan) IsComplete() bool {
	if p == nil {
		return false
	}
	if len(p.Tasks) == 0 || len(p.TechRecommendations) == 0 {
		return false
	}
	if p.EstimatedTime == "" || p.Breakdown == "" || p.Resources == nil {
		return false
	}
	for _, t := range p.Tasks {
		if t.Name == "" || !t.Priority.IsValid() {
			return false
		}
	}
	return true
}
