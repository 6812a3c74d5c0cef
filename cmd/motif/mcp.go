package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	mcpAdapter "github.com/openmotif/motif/pkg/adapters/mcp"
	"github.com/openmotif/motif/pkg/observability"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the bridge as an MCP server",
	Long:  `Exposes every bridge method as an MCP tool so AI agents can drive the component trees. Serves on stdio by default, or over SSE with --sse-port.`,
	Run: func(cmd *cobra.Command, args []string) {
		ssePort, _ := cmd.Flags().GetInt("sse-port")

		b, logger, err := buildBridge(cmd)
		if err != nil {
			fmt.Printf("Error initializing bridge: %v\n", err)
			os.Exit(1)
		}

		observability.RegisterMetrics()
		srv := mcpAdapter.NewServer(observability.Middleware(b))

		if ssePort > 0 {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			if err := srv.ServeSSE(ctx, ssePort); err != nil {
				fmt.Printf("MCP server error: %v\n", err)
				os.Exit(1)
			}
			return
		}

		logger.Info("Serving MCP on stdio")
		if err := srv.ServeStdio(); err != nil {
			fmt.Printf("MCP server error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
	mcpCmd.Flags().Int("sse-port", 0, "Serve MCP over SSE on this port instead of stdio")
	mcpCmd.Flags().String("redis", "", "Redis address for the event publisher (optional)")
}
