package mcp

import (
	"context"

	"github.com/custodia-labs/pdfseek/internal/core/domain"
)

// mockSearchService is a mock implementation of driving.SearchService.
type mockSearchService struct {
	report *domain.SearchReport
	err    error

	gotRoot    string
	gotKeyword string
	gotOpts    domain.SearchOptions
}

func (m *mockSearchService) Search(
	_ context.Context,
	root, keyword string,
	opts domain.SearchOptions,
) (*domain.SearchReport, error) {
	m.gotRoot, m.gotKeyword, m.gotOpts = root, keyword, opts
	if m.err != nil {
		return nil, m.err
	}
	if m.report == nil {
		return &domain.SearchReport{Keyword: keyword, Root: root, Matches: []domain.MatchRecord{}}, nil
	}
	return m.report, nil
}

func (m *mockSearchService) Watch(context.Context, string) (<-chan domain.TreeChange, error) {
	return nil, domain.ErrInvalidDirectory
}
