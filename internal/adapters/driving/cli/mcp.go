package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/whereabouts/internal/adapters/driving/mcp"
	"github.com/custodia-labs/whereabouts/internal/logger"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Run the dashboard headless and expose its slots over the Model Context
Protocol.

Tools:
  current_readings    - latest value and state of every slot
  recent_diagnostics  - recent pipeline failures

Resources:
  whereabouts://slots, whereabouts://slots/{slot}, whereabouts://settings

By default, the server communicates over stdio using JSON-RPC. Use --port
to start an HTTP server instead.

Examples:
  # Stdio mode (default)
  whereabouts mcp serve

  # HTTP mode (for MCP Inspector, remote access)
  whereabouts mcp serve --port 8080`,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}

	rt, err := requireRuntime()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	s, err := openSession(ctx, rt)
	if err != nil {
		return err
	}
	defer s.close()

	server, err := mcp.NewServer(&mcp.Ports{
		Snapshot:    s.snapshot,
		Screen:      s.screen,
		Slots:       rt.Slots,
		Diagnostics: rt.Diagnostics,
		Settings:    rt.Settings,
	})
	if err != nil {
		return err
	}

	if err := s.screen.OnStart(ctx); err != nil {
		return fmt.Errorf("starting dashboard: %w", err)
	}
	watchConfig(ctx, rt, func() {
		if err := s.screen.Restart(ctx); err != nil {
			logger.Error("restarting dashboard: %v", err)
		}
	})

	if port > 0 {
		addr := fmt.Sprintf(":%d", port)
		fmt.Fprintf(cmd.OutOrStdout(), "MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(ctx, addr)
	}

	return server.Run(ctx)
}
