package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jacobusmeintjes/todo/internal/service"
	"github.com/jacobusmeintjes/todo/internal/tasks"
)

func updateCmd(a *app) *cobra.Command {
	var (
		title       string
		description string
		due         string
		priority    string
		addTags     []string
		removeTags  []string
	)

	cmd := &cobra.Command{
		Use:     "update <id>",
		Aliases: []string{"edit"},
		Short:   "Change fields of a task",
		Long: `Change fields of a task. Only the flags given are applied.

Examples:
  todo update 3f2a --title "Buy oat milk"
  todo update 3f2a --due none
  todo update 3f2a --add-tag urgent --remove-tag someday
  todo update 3f2a --description ""`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service(cmd)
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			var ch service.Changes
			if flags.Changed("title") {
				ch.Title = service.Some(title)
			}
			if flags.Changed("description") {
				ch.Description = service.Some(description)
			}
			if flags.Changed("due") {
				d, err := parseDue(due, svc.Today())
				if err != nil {
					return err
				}
				ch.DueDate = service.Some(d)
			}
			if flags.Changed("priority") {
				p, err := tasks.ParsePriority(priority)
				if err != nil {
					return err
				}
				ch.Priority = service.Some(p)
			}
			ch.AddTags = addTags
			ch.RemoveTags = removeTags

			if ch.Empty() {
				return errors.New("nothing to update: pass at least one of --title, --description, --due, --priority, --add-tag, --remove-tag")
			}

			t, err := svc.Update(args[0], ch)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated task %s: %s\n", t.ShortID(), t.Title)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVarP(&description, "description", "d", "", "New description (empty clears it)")
	cmd.Flags().StringVar(&due, "due", "", "New due date (YYYY-MM-DD, today, tomorrow, +Nd or none)")
	cmd.Flags().StringVarP(&priority, "priority", "p", "", "New priority (low, medium, high)")
	cmd.Flags().StringSliceVar(&addTags, "add-tag", nil, "Tag to add (repeatable)")
	cmd.Flags().StringSliceVar(&removeTags, "remove-tag", nil, "Tag to remove (repeatable)")

	return cmd
}
