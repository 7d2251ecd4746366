package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/plancraft/pkg/domain/planning"
	"github.com/felixgeelhaar/plancraft/pkg/domain/project"
)

func newTaskCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage individual tasks",
	}
	cmd.AddCommand(
		newTaskAddCmd(opts),
		newTaskStatusCmd(opts),
	)
	return cmd
}

func newTaskAddCmd(opts *rootOptions) *cobra.Command {
	var name, description, priority string

	cmd := &cobra.Command{
		Use:   "add <project-id>",
		Short: "Add a task to a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := opts.actingUser()
			if err != nil {
				return MapError(err)
			}

			var p planning.TaskPriority
			if priority != "" {
				if p, err = planning.ParseTaskPriority(priority); err != nil {
					return NewCLIError("invalid priority", "Use Low, Medium or High", err)
				}
			}

			services, err := opts.loadServices()
			if err != nil {
				return err
			}
			defer func() { _ = services.Close() }()

			task, err := services.Tasks.CreateTask(cmd.Context(), user, args[0], name, description, p)
			if err != nil {
				return MapError(fmt.Errorf("failed to add task: %w", err))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Task %s added (%s, %s).\n", task.ID, task.Priority, task.Status)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Task name")
	cmd.Flags().StringVar(&description, "description", "", "Task description")
	cmd.Flags().StringVar(&priority, "priority", "", "Priority: Low, Medium or High (default Medium)")
	return cmd
}

func newTaskStatusCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status <task-id> <status>",
		Short: "Move a task to To Do, In Progress or Done",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := project.ParseTaskStatus(args[1])
			if err != nil {
				return NewCLIError("invalid status", "Use todo, in-progress or done", err)
			}

			services, err := opts.loadServices()
			if err != nil {
				return err
			}
			defer func() { _ = services.Close() }()

			task, err := services.Tasks.UpdateTaskStatus(cmd.Context(), args[0], status)
			if err != nil {
				return MapError(fmt.Errorf("failed to update task: %w", err))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Task %s is now %s.\n", task.ID, task.Status)
			return nil
		},
	}
}
