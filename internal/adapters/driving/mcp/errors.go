// Package mcp provides an MCP (Model Context Protocol) server adapter for pdfseek.
// It lets AI assistants search local PDFs and read search history.
package mcp

import "errors"

// ErrMissingSearchService is returned when the search service is not provided.
var ErrMissingSearchService = errors.New("mcp: search service is required")

// ErrHistoryUnavailable is returned by history tools when no history service is configured.
var ErrHistoryUnavailable = errors.New("mcp: history is not available")
