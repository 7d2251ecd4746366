package planning

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidIntake indicates a project intake is missing required data.
var ErrInvalidIntake = errors.New("invalid project intake")

// ExperienceLevel is the developer's self-assessed experience.
type ExperienceLevel string

const (
	LevelBeginner     ExperienceLevel = "beginner"
	LevelIntermediate ExperienceLevel = "intermediate"
	LevelExpert       ExperienceLevel = "expert"
)

// IsValid returns true if the level is one of the known levels.
func (l ExperienceLevel) IsValid() bool {
	switch l {
	case LevelBeginner, LevelIntermediate, LevelExpert:
		return true
	default:
		return false
	}
}

func (l ExperienceLevel) String() string {
	return string(l)
}

// ParseExperienceLevel parses a level, defaulting an empty value to intermediate.
func ParseExperienceLevel(s string) (ExperienceLevel, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return LevelIntermediate, nil
	}
	level := ExperienceLevel(s)
	if !level.IsValid() {
		return "", fmt.Errorf("%w: unknown experience level %q", ErrInvalidIntake, s)
	}
	return level, nil
}

// Well-known project type tags offered by the onboarding questionnaire.
// Other tags are accepted verbatim.
const (
	TypeWebApp           = "web-app"
	TypeMobileApp        = "mobile-app"
	TypeECommerce        = "e-commerce"
	TypePortfolio        = "portfolio"
	TypeBlog             = "blog"
	TypeDashboard        = "dashboard"
	TypeBlockchain       = "blockchain"
	TypeDigitalMarketing = "digital-marketing"
	TypeAIML             = "ai-ml"
)

// KnownProjectTypes returns the questionnaire's project type tags.
func KnownProjectTypes() []string {
	return []string{
		TypeWebApp, TypeMobileApp, TypeECommerce, TypePortfolio, TypeBlog,
		TypeDashboard, TypeBlockchain, TypeDigitalMarketing, TypeAIML,
	}
}

// ProjectIntake is the structured description of a project to be planned.
type ProjectIntake struct {
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	ProjectType     string          `json:"projectType"`
	TechStack       string          `json:"techStack"`
	ExperienceLevel ExperienceLevel `json:"experienceLevel"`
	ProjectGoals    string          `json:"projectGoals,omitempty"`
	TargetAudience  string          `json:"targetAudience,omitempty"`
	Budget          string          `json:"budget,omitempty"`
}

// Validate reports every missing required field in one error.
func (in ProjectIntake) Validate() error {
	var missing []string
	if strings.TrimSpace(in.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(in.Description) == "" {
		missing = append(missing, "description")
	}
	if strings.TrimSpace(in.ProjectType) == "" {
		missing = append(missing, "projectType")
	}
	if strings.TrimSpace(in.TechStack) == "" {
		missing = append(missing, "techStack")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing required fields: %s", ErrInvalidIntake, strings.Join(missing, ", "))
	}
	if !in.ExperienceLevel.IsValid() {
		return fmt.Errorf("%w: unknown experience level %q", ErrInvalidIntake, in.ExperienceLevel)
	}
	return nil
}
