package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jacobusmeintjes/todo/internal/service"
)

func completeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "complete <id>",
		Aliases: []string{"done"},
		Short:   "Mark a task complete",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service(cmd)
			if err != nil {
				return err
			}
			t, err := svc.Complete(args[0])
			if errors.Is(err, service.ErrAlreadyComplete) {
				return fmt.Errorf("task %s %q: %w", t.ShortID(), t.Title, err)
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Completed task %s: %s (took %s)\n", t.ShortID(), t.Title, humanDuration(t.Elapsed()))
			return nil
		},
	}
}
