package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// options are the process-level dependencies of the command tree.
type options struct {
	fs  afero.Fs
	now func() time.Time
}

// Execute runs the root command
func Execute(version string) error {
	root := newRootCmd(version, options{fs: afero.NewOsFs(), now: time.Now})
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", userMessage(err))
		if verbose, _ := root.PersistentFlags().GetBool("verbose"); verbose {
			fmt.Fprintln(os.Stderr, "Detail:", err)
		}
		return err
	}
	return nil
}

func newRootCmd(version string, opts options) *cobra.Command {
	a := &app{opts: opts}

	rootCmd := &cobra.Command{
		Use:   "todo",
		Short: "todo - a local task manager",
		Long: `todo keeps a personal task list in a single JSON file.

Tasks are referenced by their id or any unique prefix of at least 4 characters.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
	}

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&a.file, "file", "f", "", "Task file (overrides storage.path)")

	rootCmd.AddCommand(addCmd(a))
	rootCmd.AddCommand(listCmd(a))
	rootCmd.AddCommand(showCmd(a))
	rootCmd.AddCommand(completeCmd(a))
	rootCmd.AddCommand(updateCmd(a))
	rootCmd.AddCommand(deleteCmd(a))
	rootCmd.AddCommand(statsCmd(a))
	rootCmd.AddCommand(configCmd(a))
	rootCmd.AddCommand(serveCmd(a))

	return rootCmd
}
