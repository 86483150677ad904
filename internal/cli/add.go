package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jacobusmeintjes/todo/internal/service"
	"github.com/jacobusmeintjes/todo/internal/tasks"
)

func addCmd(a *app) *cobra.Command {
	var (
		description string
		due         string
		priority    string
		tags        []string
	)

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a task",
		Long: `Add a task. Words after the command form the title.

Examples:
  todo add Buy milk
  todo add "Write report" --due tomorrow -p high -t work
  todo add Renew passport --due 2026-03-01 -d "Bring old passport"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service(cmd)
			if err != nil {
				return err
			}

			req := service.AddRequest{
				Title:       strings.Join(args, " "),
				Description: description,
				Tags:        tags,
			}
			if priority != "" {
				p, err := tasks.ParsePriority(priority)
				if err != nil {
					return err
				}
				req.Priority = p
			}
			if due != "" {
				d, err := parseDue(due, svc.Today())
				if err != nil {
					return err
				}
				req.DueDate = d
			}

			t, err := svc.Add(req)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added task %s: %s\n", t.ShortID(), t.Title)
			return nil
		},
	}

	cmd.Flags().StringVarP(&description, "description", "d", "", "Longer description")
	cmd.Flags().StringVar(&due, "due", "", "Due date (YYYY-MM-DD, today, tomorrow or +Nd)")
	cmd.Flags().StringVarP(&priority, "priority", "p", "", "Priority (low, medium, high)")
	cmd.Flags().StringSliceVarP(&tags, "tag", "t", nil, "Tag (repeatable or comma-separated)")

	return cmd
}
