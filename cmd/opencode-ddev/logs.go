package main

import (
	"fmt"

	"github.com/JUVOJustin/opencode-ddev-plugin/internal/ddev"
	"github.com/spf13/cobra"
)

func logsCmd() *cobra.Command {
	var opts ddev.LogsOptions

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Retrieve logs from a DDEV service container",
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := ddev.Logs(cmd.Context(), ddev.Run, opts)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.Service, "service", "s", ddev.DefaultLogService, "Service to read logs from")
	cmd.Flags().BoolVarP(&opts.Follow, "follow", "f", false, "Follow the log output")
	cmd.Flags().IntVar(&opts.Tail, "tail", ddev.DefaultLogTail, "Number of trailing lines (ignored with --follow)")
	cmd.Flags().BoolVarP(&opts.Timestamps, "timestamps", "t", false, "Annotate each line with its timestamp")
	return cmd
}
