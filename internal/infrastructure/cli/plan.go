package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/plancraft/internal/infrastructure/wiring"
	"github.com/felixgeelhaar/plancraft/pkg/application"
	"github.com/felixgeelhaar/plancraft/pkg/domain/ai"
	"github.com/felixgeelhaar/plancraft/pkg/domain/planning"
)

// intakeFlags are the questionnaire fields shared by plan and project commands.
type intakeFlags struct {
	name        string
	description string
	projectType string
	techStack   string
	level       string
	goals       string
	audience    string
	budget      string
}

func (f *intakeFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "Project name")
	cmd.Flags().StringVar(&f.description, "description", "", "What the project is about")
	cmd.Flags().StringVar(&f.projectType, "type", "", "Project type ("+strings.Join(planning.KnownProjectTypes(), ", ")+" or any other tag)")
	cmd.Flags().StringVar(&f.techStack, "stack", "", "Primary technology (e.g. React)")
	cmd.Flags().StringVar(&f.level, "level", "", "Experience level: beginner, intermediate or expert (default intermediate)")
	cmd.Flags().StringVar(&f.goals, "goals", "", "Project goals")
	cmd.Flags().StringVar(&f.audience, "audience", "", "Target audience")
	cmd.Flags().StringVar(&f.budget, "budget", "", "Budget range")
}

func (f *intakeFlags) intake() (planning.ProjectIntake, error) {
	level, err := planning.ParseExperienceLevel(f.level)
	if err != nil {
		return planning.ProjectIntake{}, err
	}
	in := planning.ProjectIntake{
		Name:            f.name,
		Description:     f.description,
		ProjectType:     f.projectType,
		TechStack:       f.techStack,
		ExperienceLevel: level,
		ProjectGoals:    f.goals,
		TargetAudience:  f.audience,
		Budget:          f.budget,
	}
	if err := in.Validate(); err != nil {
		return planning.ProjectIntake{}, err
	}
	return in, nil
}

func newPlanCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Generate project plans without saving them",
	}
	cmd.AddCommand(newPlanGenerateCmd(opts))
	return cmd
}

func newPlanGenerateCmd(opts *rootOptions) *cobra.Command {
	var (
		flags      intakeFlags
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a plan for a project idea and print it",
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := flags.intake()
			if err != nil {
				return MapError(err)
			}

			root, err := opts.projectRoot()
			if err != nil {
				return fmt.Errorf("resolve project path: %w", err)
			}

			var provider ai.Provider
			if p, err := wiring.LoadAIProvider(root); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Warning: AI provider unavailable: %v\n", err)
			} else {
				provider = p
			}

			gen := application.NewPlanGenerator(provider, application.WithLogger(opts.logger.Named("planner")))
			res := gen.GenerateDetailed(cmd.Context(), in)

			out := cmd.OutOrStdout()
			if jsonOutput {
				return writeJSON(out, res.Plan)
			}
			renderPlan(out, in.Name, res.Plan, res.Source)
			return nil
		},
	}

	flags.bind(cmd)
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the plan as JSON")
	return cmd
}
