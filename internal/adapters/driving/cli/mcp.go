package cli

import (
	"fmt"
	"net"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/personarank/internal/adapters/driving/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server so AI assistants can rank
documents for a persona through the rank_documents tool.

By default the server communicates over stdio. Use --port to serve HTTP
instead, for example to test with MCP Inspector.

Examples:
  # Stdio mode (default)
  personarank mcp serve

  # HTTP mode
  personarank mcp serve --port 8080

Client configuration:
  {
    "mcpServers": {
      "personarank": {
        "command": "/path/to/personarank",
        "args": ["mcp", "serve"]
      }
    }
  }`,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	mcpServeCmd.Flags().StringP("input-dir", "i", "", "directory holding the documents folder")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}
	inputDir, err := cmd.Flags().GetString("input-dir")
	if err != nil {
		return fmt.Errorf("getting input-dir flag: %w", err)
	}

	settings, err := loadSettings()
	if err != nil {
		return err
	}
	if inputDir == "" {
		inputDir = settings.Paths.InputDir
	}

	pipeline, closeFn, err := buildPipeline(cmd.Context(), settings)
	if err != nil {
		return err
	}
	defer closeFn()

	ports := &mcp.Ports{
		Pipeline: pipeline,
		Settings: settingsService,
	}

	server, err := mcp.NewServer(ports, documentDir(settings, inputDir))
	if err != nil {
		return err
	}

	if port > 0 {
		free, err := findAvailablePort(port, port+portSearchSpan)
		if err != nil {
			return err
		}
		if free != port {
			fmt.Fprintf(cmd.ErrOrStderr(), "Port %d is in use, using %d\n", port, free)
		}
		addr := fmt.Sprintf(":%d", free)
		fmt.Fprintf(cmd.OutOrStdout(), "MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(cmd.Context(), addr)
	}

	return server.Run(cmd.Context())
}

// portSearchSpan is how many ports above the requested one are tried.
const portSearchSpan = 10

// findAvailablePort returns the first port in [startPort, endPort] that
// can be bound.
func findAvailablePort(startPort, endPort int) (int, error) {
	for port := startPort; port <= endPort; port++ {
		listener, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
		if err == nil {
			listener.Close()
			return port, nil
		}
	}
	return 0, fmt.Errorf("no available port in range %d-%d", startPort, endPort)
}
