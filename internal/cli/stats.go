package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func statsCmd(a *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Summarize tasks by status and due date",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validOutput(output); err != nil {
				return err
			}
			svc, err := a.service(cmd)
			if err != nil {
				return err
			}
			st, err := svc.Stats()
			if err != nil {
				return err
			}
			if output != outputTable {
				return writeData(cmd.OutOrStdout(), output, st)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintf(tw, "Total:\t%d\n", st.Total)
			fmt.Fprintf(tw, "Completed:\t%d\n", st.Completed)
			fmt.Fprintf(tw, "Incomplete:\t%d\n", st.Incomplete)
			fmt.Fprintf(tw, "Overdue:\t%d\n", st.Overdue)
			fmt.Fprintf(tw, "Due today:\t%d\n", st.DueToday)
			return tw.Flush()
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", outputTable, "Output format (table, json, yaml)")

	return cmd
}
