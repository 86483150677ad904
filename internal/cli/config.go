package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/jacobusmeintjes/todo/internal/config"
)

func configCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage todo configuration",
	}

	cmd.AddCommand(configShowCmd(a))
	cmd.AddCommand(configPathCmd(a))
	cmd.AddCommand(configInitCmd(a))

	return cmd
}

func configShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show merged configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := yaml.Marshal(a.cfg)
			if err != nil {
				return fmt.Errorf("failed to marshal config: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), "# Merged configuration (defaults + global + project + environment)")
			fmt.Fprint(cmd.OutOrStdout(), string(data))
			return nil
		},
	}
}

func configPathCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Show configuration and task file paths",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Global config:  %s\n", config.GlobalConfigPath())
			fmt.Fprintf(out, "Project config: %s\n", config.ProjectConfigPath())
			fmt.Fprintf(out, "Task file:      %s\n", a.cfg.Storage.Path)
		},
	}
}

func configInitCmd(a *app) *cobra.Command {
	var (
		project bool
		force   bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default configuration file",
		Long: `Write a default configuration file.

Without flags the global file is written. With --project, .todo/config.yaml
is written in the current directory.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.GlobalConfigPath()
			if project {
				path = config.ProjectConfigPath()
			}

			exists, err := afero.Exists(a.opts.fs, path)
			if err != nil {
				return err
			}
			if exists && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}

			if err := a.opts.fs.MkdirAll(filepath.Dir(path), 0o700); err != nil {
				return fmt.Errorf("failed to create %s: %w", filepath.Dir(path), err)
			}
			if err := config.WriteDefault(a.opts.fs, path); err != nil {
				return fmt.Errorf("failed to write %s: %w", path, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&project, "project", false, "Write .todo/config.yaml in the current directory")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")

	return cmd
}
