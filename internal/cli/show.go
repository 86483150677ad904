package cli

import (
	"github.com/spf13/cobra"
)

func showCmd(a *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one task in full",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validOutput(output); err != nil {
				return err
			}
			svc, err := a.service(cmd)
			if err != nil {
				return err
			}
			t, err := svc.Get(args[0])
			if err != nil {
				return err
			}
			if output != outputTable {
				return writeData(cmd.OutOrStdout(), output, t)
			}
			r := renderer{w: cmd.OutOrStdout(), dateFormat: a.cfg.Display.DateFormat, today: svc.Today()}
			return r.detail(t)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", outputTable, "Output format (table, json, yaml)")

	return cmd
}
