package cli

import (
	"github.com/spf13/cobra"

	"github.com/jacobusmeintjes/todo/internal/query"
	"github.com/jacobusmeintjes/todo/internal/tasks"
)

func listCmd(a *app) *cobra.Command {
	var (
		status         string
		sortKey        string
		priority       string
		tags           []string
		due            string
		includeUndated bool
		output         string
	)

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tasks",
		Long: `List tasks matching every given filter.

Examples:
  todo list
  todo list --status incomplete --sort due
  todo list --due overdue --tag work --tag home
  todo list --due within:3 --include-undated -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validOutput(output); err != nil {
				return err
			}
			if !cmd.Flags().Changed("status") {
				status = a.cfg.List.Status
			}
			if !cmd.Flags().Changed("sort") {
				sortKey = a.cfg.List.Sort
			}

			var f query.Filter
			var err error
			if f.Status, err = query.ParseStatus(status); err != nil {
				return err
			}
			key, err := query.ParseSortKey(sortKey)
			if err != nil {
				return err
			}
			if priority != "" {
				if f.Priority, err = tasks.ParsePriority(priority); err != nil {
					return err
				}
			}
			if f.Due, err = query.ParseDueBucket(due); err != nil {
				return err
			}
			f.Due.IncludeUndated = includeUndated
			if f.Tags, err = tasks.NormalizeTags(tags); err != nil {
				return err
			}

			svc, err := a.service(cmd)
			if err != nil {
				return err
			}
			list, err := svc.List(f, key)
			if err != nil {
				return err
			}

			if output != outputTable {
				if list == nil {
					list = []tasks.Task{}
				}
				return writeData(cmd.OutOrStdout(), output, list)
			}
			r := renderer{w: cmd.OutOrStdout(), dateFormat: a.cfg.Display.DateFormat, today: svc.Today()}
			return r.table(list)
		},
	}

	cmd.Flags().StringVarP(&status, "status", "s", "", "Filter by status (all, complete, incomplete)")
	cmd.Flags().StringVar(&sortKey, "sort", "", "Sort by created, due or priority")
	cmd.Flags().StringVarP(&priority, "priority", "p", "", "Filter by priority")
	cmd.Flags().StringSliceVarP(&tags, "tag", "t", nil, "Filter by tag (any of)")
	cmd.Flags().StringVar(&due, "due", "any", "Filter by due date (any, overdue, today, week, none, within:N)")
	cmd.Flags().BoolVar(&includeUndated, "include-undated", false, "Keep tasks without a due date when filtering by due date")
	cmd.Flags().StringVarP(&output, "output", "o", outputTable, "Output format (table, json, yaml)")

	return cmd
}
