package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/plancraft/pkg/application"
)

func newProjectCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Create and inspect planned projects",
	}
	cmd.AddCommand(
		newProjectCreateCmd(opts),
		newProjectListCmd(opts),
		newProjectShowCmd(opts),
	)
	return cmd
}

func newProjectCreateCmd(opts *rootOptions) *cobra.Command {
	var (
		flags      intakeFlags
		client     string
		due        string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Generate a plan and save it as a new project",
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := opts.actingUser()
			if err != nil {
				return MapError(err)
			}
			in, err := flags.intake()
			if err != nil {
				return MapError(err)
			}

			input := application.CreateProjectInput{Intake: in, ClientName: client}
			if due != "" {
				d, err := time.Parse("2006-01-02", due)
				if err != nil {
					return NewCLIError("invalid due date", "Use the YYYY-MM-DD format", err)
				}
				input.DueDate = &d
			}

			services, err := opts.loadServices()
			if err != nil {
				return err
			}
			defer func() { _ = services.Close() }()

			p, err := services.Projects.CreateProject(cmd.Context(), user, input)
			if err != nil {
				return MapError(fmt.Errorf("failed to create project: %w", err))
			}

			details, err := services.Projects.GetProject(cmd.Context(), p.ID)
			if err != nil {
				return MapError(err)
			}

			out := cmd.OutOrStdout()
			if jsonOutput {
				return writeJSON(out, details)
			}
			renderProjectDetails(out, details)
			return nil
		},
	}

	flags.bind(cmd)
	cmd.Flags().StringVar(&client, "client", "", "Client name")
	cmd.Flags().StringVar(&due, "due", "", "Due date (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the project as JSON")
	return cmd
}

func newProjectListCmd(opts *rootOptions) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List your projects, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := opts.actingUser()
			if err != nil {
				return MapError(err)
			}
			services, err := opts.loadServices()
			if err != nil {
				return err
			}
			defer func() { _ = services.Close() }()

			projects, err := services.Projects.ListProjects(cmd.Context(), user)
			if err != nil {
				return MapError(err)
			}

			out := cmd.OutOrStdout()
			if jsonOutput {
				return writeJSON(out, projects)
			}
			renderProjectList(out, projects)
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print projects as JSON")
	return cmd
}

func newProjectShowCmd(opts *rootOptions) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a project with its tasks and resources",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			services, err := opts.loadServices()
			if err != nil {
				return err
			}
			defer func() { _ = services.Close() }()

			details, err := services.Projects.GetProject(cmd.Context(), args[0])
			if err != nil {
				return MapError(err)
			}

			out := cmd.OutOrStdout()
			if jsonOutput {
				return writeJSON(out, details)
			}
			renderProjectDetails(out, details)
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the project as JSON")
	return cmd
}
