package cli

import (
	"fmt"
	"net"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/pdfseek/internal/adapters/driving/mcp"
)

var (
	mcpPort int
	mcpHost string
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Model Context Protocol integration",
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve PDF search and history to MCP clients",
	Long: `Serve PDF search and history to AI assistants over the Model Context Protocol.

Tools:
  search_pdfs       find PDFs under a directory containing a keyword
  suggest_searches  complete a keyword from search history

Resources:
  pdfseek://history/searches
  pdfseek://history/recent
  pdfseek://history/favorites

Searches made through MCP are only added to history when the client sets
record_history. Without --port the server speaks JSON-RPC on stdio.

Examples:
  pdfseek mcp serve
  pdfseek mcp serve --port 8080
  pdfseek mcp serve --host 0.0.0.0 --port 8080

Client configuration:
  {
    "mcpServers": {
      "pdfseek": {"command": "/path/to/pdfseek", "args": ["mcp", "serve"]}
    }
  }`,
	Args: cobra.NoArgs,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntVarP(&mcpPort, "port", "p", 0, "serve streamable HTTP on this port instead of stdio")
	mcpServeCmd.Flags().StringVar(&mcpHost, "host", "localhost", "interface to bind with --port")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	if searchService == nil {
		return errSearchNotConfigured
	}
	if mcpPort < 0 || mcpPort > 65535 {
		return fmt.Errorf("invalid port %d", mcpPort)
	}

	server, err := mcp.NewServer(
		&mcp.Ports{Search: searchService, History: historyService},
		mcp.Options{Version: version},
	)
	if err != nil {
		return err
	}

	if mcpPort == 0 {
		return server.Run(cmd.Context())
	}

	ln, err := net.Listen("tcp", net.JoinHostPort(mcpHost, strconv.Itoa(mcpPort)))
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	cmd.Printf("MCP server listening on http://%s\n", ln.Addr())
	return server.RunHTTP(cmd.Context(), ln)
}
