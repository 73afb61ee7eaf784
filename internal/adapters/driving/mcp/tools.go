package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/pdfseek/internal/core/domain"
)

// SearchInput is the input schema for the search_pdfs tool.
type SearchInput struct {
	Root          string `json:"root" jsonschema:"directory to search recursively for PDF files"`
	Keyword       string `json:"keyword" jsonschema:"word to find, matched case-insensitively"`
	Workers       int    `json:"workers,omitempty" jsonschema:"documents searched concurrently (default: configured value)"`
	RecordHistory bool   `json:"record_history,omitempty" jsonschema:"add the keyword to the user's search history"`
}

// SearchOutput is the output schema for the search_pdfs tool.
type SearchOutput struct {
	Keyword string          `json:"keyword"`
	Root    string          `json:"root"`
	Matches []MatchOutput   `json:"matches"`
	Count   int             `json:"count"`
	Scanned int             `json:"scanned"`
	Skipped []SkippedOutput `json:"skipped,omitempty"`
}

// MatchOutput is one matching document.
type MatchOutput struct {
	FileName string `json:"file_name"`
	FilePath string `json:"file_path"`
	Page     int    `json:"page"`
	Snippet  string `json:"snippet"`
}

// SkippedOutput is a document that could not be searched.
type SkippedOutput struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

// SuggestInput is the input schema for the suggest_searches tool.
type SuggestInput struct {
	Prefix string `json:"prefix" jsonschema:"start of a keyword; matched case-insensitively against past searches"`
}

// SuggestOutput is the output schema for the suggest_searches tool.
type SuggestOutput struct {
	Suggestions []string `json:"suggestions"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_pdfs",
		Description: "Find PDF files under a directory that contain a keyword, with the words around the first match",
	}, s.handleSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "suggest_searches",
		Description: "Suggest keywords from the user's search history that start with a prefix",
	}, s.handleSuggest)
}

// handleSearch handles the search_pdfs tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	opts := domain.SearchOptions{
		Workers:     input.Workers,
		SkipHistory: !input.RecordHistory,
	}

	report, err := s.ports.Search.Search(ctx, input.Root, input.Keyword, opts)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	output := SearchOutput{
		Keyword: report.Keyword,
		Root:    report.Root,
		Matches: make([]MatchOutput, len(report.Matches)),
		Count:   len(report.Matches),
		Scanned: report.Scanned,
	}
	for i, m := range report.Matches {
		output.Matches[i] = MatchOutput{
			FileName: m.FileName,
			FilePath: m.FilePath,
			Page:     m.Page,
			Snippet:  m.Snippet(),
		}
	}
	for _, sk := range report.Skipped {
		output.Skipped = append(output.Skipped, SkippedOutput(sk))
	}

	return nil, output, nil
}

// handleSuggest handles the suggest_searches tool invocation.
func (s *Server) handleSuggest(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input SuggestInput,
) (*mcp.CallToolResult, SuggestOutput, error) {
	if s.ports.History == nil {
		return nil, SuggestOutput{}, ErrHistoryUnavailable
	}

	suggestions := s.ports.History.Suggest(input.Prefix)
	if suggestions == nil {
		suggestions = []string{}
	}
	return nil, SuggestOutput{Suggestions: suggestions}, nil
}
