package main

import (
	"fmt"
	"os"

	"github.com/JUVOJustin/opencode-ddev-plugin/internal/tui"
	"github.com/spf13/cobra"
)

func statusCmd() *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show whether the DDEV environment is available and running",
		RunE: func(cmd *cobra.Command, _ []string) error {
			projectDir, err := os.Getwd()
			if err != nil {
				return err
			}
			rt, err := newRuntime(projectDir)
			if err != nil {
				return err
			}

			if watch {
				return tui.Run(rt.cache, projectDir)
			}

			status := rt.cache.Refresh(cmd.Context(), projectDir)
			switch {
			case status.Running:
				fmt.Fprintln(cmd.OutOrStdout(), "running")
				fmt.Fprintf(cmd.OutOrStdout(), "  project root:  %s\n", rt.cache.ProjectRoot())
				fmt.Fprintf(cmd.OutOrStdout(), "  container dir: %s\n", rt.cache.ContainerDir())
			case status.Available:
				fmt.Fprintln(cmd.OutOrStdout(), "stopped (run `ddev start`)")
			default:
				fmt.Fprintln(cmd.OutOrStdout(), "no ddev project detected")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&watch, "watch", false, "Poll the environment and render a live dashboard")
	return cmd
}
