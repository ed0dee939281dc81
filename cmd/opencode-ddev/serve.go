package main

import (
	"context"
	"os"

	"github.com/JUVOJustin/opencode-ddev-plugin/internal/ddev"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP server exposing DDEV tools over stdio",
		RunE: func(cmd *cobra.Command, _ []string) error {
			projectDir, err := os.Getwd()
			if err != nil {
				return err
			}
			rt, err := newRuntime(projectDir)
			if err != nil {
				return err
			}

			// One probe at startup gates which capabilities get exposed.
			status := rt.cache.Refresh(cmd.Context(), projectDir)

			s := server.NewMCPServer(
				"opencode-ddev",
				version,
				server.WithToolCapabilities(false),
			)

			for _, c := range capabilities() {
				if c.enabled(status) {
					s.AddTool(c.tool, c.handler)
				}
			}

			rt.log.Info().
				Bool("available", status.Available).
				Bool("running", status.Running).
				Msg("mcp server starting")

			return server.ServeStdio(s)
		},
	}
}

// capability pairs a tool with the startup condition gating its
// registration. The full set is always built; only the gated subset is
// registered.
type capability struct {
	tool    mcp.Tool
	handler server.ToolHandlerFunc
	enabled func(ddev.Status) bool
}

func capabilities() []capability {
	logsTool := mcp.NewTool("ddev_logs",
		mcp.WithDescription("Retrieve logs from a DDEV service container."),
		mcp.WithString("service",
			mcp.Description("Service to read logs from (default: web)"),
		),
		mcp.WithBoolean("follow",
			mcp.Description("Follow the log output instead of returning a snapshot"),
		),
		mcp.WithNumber("tail",
			mcp.Description("Number of trailing lines to return (default: 50, ignored with follow)"),
		),
		mcp.WithBoolean("timestamps",
			mcp.Description("Annotate each line with its timestamp"),
		),
	)

	return []capability{
		{
			tool:    logsTool,
			handler: ddevLogsHandler,
			// Registered whenever a project exists here, running or
			// stopped.
			enabled: func(st ddev.Status) bool { return st.Available },
		},
	}
}

func ddevLogsHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	opts := ddev.LogsOptions{
		Service:    request.GetString("service", ddev.DefaultLogService),
		Follow:     request.GetBool("follow", false),
		Tail:       request.GetInt("tail", ddev.DefaultLogTail),
		Timestamps: request.GetBool("timestamps", false),
	}

	out, err := ddev.Logs(ctx, ddev.Run, opts)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(out), nil
}
