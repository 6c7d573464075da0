package cmd

import (
	"github.com/spf13/cobra"

	"github.com/nibzard/taskcli/internal/tasks"
)

func newInitCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the task file if it does not exist",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.service(a.stdout).Init()
		},
	}
}

func newAddCommand(a *app) *cobra.Command {
	var in tasks.AddInput
	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a task",
		Example: `  taskcli add "Buy milk"
  taskcli add "Pay rent" --priority alto --due 2025-11-01 --tags casa,contas`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in.Title = args[0]
			_, err := a.service(a.stdout).Add(in)
			return err
		},
	}
	cmd.Flags().StringVar(&in.Description, "desc", "", "Description")
	cmd.Flags().StringVar(&in.Priority, "priority", "", "Priority (alto, médio, baixo; default médio)")
	cmd.Flags().StringVar(&in.Due, "due", "", "Due date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&in.Tags, "tags", "", "Comma-separated tags")
	return cmd
}

func newListCommand(a *app) *cobra.Command {
	var f tasks.ListFilter
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tasks",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := a.service(a.stdout).List(f)
			return err
		},
	}
	cmd.Flags().BoolVarP(&f.All, "all", "a", false, "Include finished tasks")
	cmd.Flags().StringVar(&f.Priority, "priority", "", "Only tasks with this priority")
	cmd.Flags().StringVar(&f.Tag, "tag", "", "Only tasks with this tag")
	return cmd
}

func newDoneCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "done <id>",
		Short: "Mark a task as done",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			_, err = a.service(a.stdout).Done(id)
			return err
		},
	}
}

func newRemoveCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <id>",
		Aliases: []string{"rm"},
		Short:   "Remove a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return a.service(a.stdout).Remove(id)
		},
	}
}

func newUpdateCommand(a *app) *cobra.Command {
	var in tasks.UpdateInput
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change a task's title, priority, or due date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			_, err = a.service(a.stdout).Update(id, in)
			return err
		},
	}
	cmd.Flags().StringVar(&in.Title, "title", "", "New title")
	cmd.Flags().StringVar(&in.Priority, "priority", "", "New priority (alto, médio, baixo)")
	cmd.Flags().StringVar(&in.Due, "due", "", "New due date (YYYY-MM-DD)")
	return cmd
}
