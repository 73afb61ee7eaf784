package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/pdfseek/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for pdfseek resources.
	uriScheme = "pdfseek://"

	historyPrefix = uriScheme + "history/"
)

// historyResources describes one resource per history store.
var historyResources = []struct {
	name        string
	store       domain.StoreName
	description string
}{
	{"searches", domain.StoreSearch, "Past search keywords, most recent first"},
	{"recent", domain.StoreRecent, "Recently opened PDF files, most recent first"},
	{"favorites", domain.StoreFavorites, "PDF files the user marked as favorites"},
}

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	for _, r := range historyResources {
		s.server.AddResource(&mcp.Resource{
			URI:         historyPrefix + r.name,
			Name:        "history-" + r.name,
			Description: r.description,
			MIMEType:    "application/json",
		}, s.handleHistoryResource)
	}
}

// favoriteInfo is the JSON shape of one favorite.
type favoriteInfo struct {
	Path    string `json:"path"`
	Page    int    `json:"page,omitempty"`
	Snippet string `json:"snippet,omitempty"`
}

// handleHistoryResource returns the contents of one history store as JSON.
func (s *Server) handleHistoryResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	store, ok := storeFromURI(req.Params.URI)
	if !ok {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	var payload any = []string{}
	if s.ports.History != nil {
		switch store {
		case domain.StoreSearch:
			payload = s.ports.History.Searches()
		case domain.StoreRecent:
			payload = s.ports.History.Recent()
		case domain.StoreFavorites:
			favorites := s.ports.History.Favorites()
			infos := make([]favoriteInfo, len(favorites))
			for i, f := range favorites {
				infos[i] = favoriteInfo{Path: f.Path}
				if f.Match != nil {
					infos[i].Page = f.Match.Page
					infos[i].Snippet = f.Match.Snippet()
				}
			}
			payload = infos
		}
	}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s history: %w", store, err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// storeFromURI maps pdfseek://history/{name} to its store.
func storeFromURI(uri string) (domain.StoreName, bool) {
	name, ok := strings.CutPrefix(uri, historyPrefix)
	if !ok {
		return "", false
	}
	for _, r := range historyResources {
		if r.name == name {
			return r.store, true
		}
	}
	return "", false
}
