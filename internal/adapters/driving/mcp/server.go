package mcp

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/pdfseek/internal/logger"
)

const instructions = `pdfseek searches PDF files on this machine.
Call search_pdfs with a directory and a keyword; each match names the file,
the first page containing the keyword and the surrounding sentence.
Searches are not added to the user's history unless record_history is set.
Use suggest_searches and the pdfseek://history resources to see what the
user searched for and opened before.`

// Options tune the server. The zero value is usable.
type Options struct {
	// Version is reported to clients. Defaults to "dev".
	Version string

	// ShutdownTimeout bounds how long RunHTTP waits for open requests
	// once its context is done. Defaults to five seconds.
	ShutdownTimeout time.Duration
}

// Server exposes pdfseek search and history over MCP.
type Server struct {
	ports  *Ports
	opts   Options
	server *mcp.Server
}

// NewServer registers pdfseek's tools and resources on a new MCP server.
func NewServer(ports *Ports, opts Options) (*Server, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("validating ports: %w", err)
	}
	if opts.Version == "" {
		opts.Version = "dev"
	}
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = 5 * time.Second
	}

	s := &Server{
		ports: ports,
		opts:  opts,
		server: mcp.NewServer(
			&mcp.Implementation{Name: "pdfseek", Version: opts.Version},
			&mcp.ServerOptions{Instructions: instructions},
		),
	}
	s.registerTools()
	s.registerResources()

	return s, nil
}

// Run serves a single client over stdin/stdout until ctx is done or the
// client disconnects.
func (s *Server) Run(ctx context.Context) error {
	logger.Debug("MCP server %s serving on stdio", s.opts.Version)
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// RunHTTP serves the streamable HTTP transport on ln until ctx is done.
// A clean shutdown returns nil.
func (s *Server) RunHTTP(ctx context.Context, ln net.Listener) error {
	handler := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return s.server
	}, nil)
	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.opts.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("MCP HTTP shutdown: %v", err)
		}
	}()

	logger.Debug("MCP server %s listening on %s", s.opts.Version, ln.Addr())
	err := srv.Serve(ln)
	if errors.Is(err, http.ErrServerClosed) {
		<-stopped
		return nil
	}
	return err
}
