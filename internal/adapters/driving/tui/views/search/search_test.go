package search

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/pdfseek/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/pdfseek/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/pdfseek/internal/core/domain"
	"github.com/custodia-labs/pdfseek/internal/core/services"
)

// MockSearchService implements driving.SearchService for testing.
type MockSearchService struct {
	SearchFunc func(ctx context.Context, root, keyword string, opts domain.SearchOptions) (*domain.SearchReport, error)
}

func (m *MockSearchService) Search(
	ctx context.Context, root, keyword string, opts domain.SearchOptions,
) (*domain.SearchReport, error) {
	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, root, keyword, opts)
	}
	return &domain.SearchReport{Keyword: keyword, Matches: []domain.MatchRecord{}}, nil
}

func (m *MockSearchService) Watch(context.Context, string) (<-chan domain.TreeChange, error) {
	return nil, errors.New("not supported")
}

// MockResultActionService implements driving.ResultActionService for testing.
type MockResultActionService struct {
	OpenErr  error
	Opened   []string
	Toggled  []string
	Favorite bool
}

func (m *MockResultActionService) OpenFile(_ context.Context, path string) error {
	if m.OpenErr != nil {
		return m.OpenErr
	}
	m.Opened = append(m.Opened, path)
	return nil
}

func (m *MockResultActionService) OpenMatch(ctx context.Context, match domain.MatchRecord) error {
	return m.OpenFile(ctx, match.FilePath)
}

func (m *MockResultActionService) ToggleFavorite(_ context.Context, match domain.MatchRecord) (bool, error) {
	m.Toggled = append(m.Toggled, match.FilePath)
	m.Favorite = !m.Favorite
	return m.Favorite, nil
}

func testReport(keyword string) *domain.SearchReport {
	window := domain.ContextWindow{Before: []string{"The"}, After: []string{"sat"}}
	return &domain.SearchReport{
		Keyword: keyword,
		Matches: []domain.MatchRecord{
			domain.NewMatchRecord("/docs/a.pdf", keyword, 1, window),
			domain.NewMatchRecord("/docs/b.pdf", keyword, 3, window),
		},
		Skipped: []domain.SkippedDocument{{Path: "/docs/c.pdf", Reason: "encrypted"}},
		Scanned: 3,
	}
}

type fixture struct {
	view    *View
	search  *MockSearchService
	actions *MockResultActionService
	history *services.HistoryService
	calls   []string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		actions: &MockResultActionService{},
		history: services.NewHistoryService(memory.NewHistoryGateway()),
	}
	f.search = &MockSearchService{
		SearchFunc: func(ctx context.Context, root, keyword string, _ domain.SearchOptions) (*domain.SearchReport, error) {
			f.calls = append(f.calls, root+":"+keyword)
			if err := f.history.RecordSearch(ctx, keyword); err != nil {
				return nil, err
			}
			return testReport(keyword), nil
		},
	}
	f.view = NewView(nil, nil, "/docs", f.search, f.actions, f.history)
	f.view.SetDimensions(100, 30)
	return f
}

// run feeds msg to the view and then drives the resulting command chain.
func (f *fixture) run(msg tea.Msg) {
	_, cmd := f.view.Update(msg)
	for cmd != nil {
		next := cmd()
		if next == nil {
			return
		}
		if _, ok := next.(messages.ViewChanged); ok {
			return
		}
		_, cmd = f.view.Update(next)
	}
}

func (f *fixture) typeText(text string) {
	for _, r := range text {
		f.view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func TestNewView(t *testing.T) {
	view := NewView(nil, nil, ".", nil, nil, nil)

	require.NotNil(t, view)
	assert.True(t, view.InputFocused())
	assert.False(t, view.Ready())
	assert.Equal(t, "Initialising...", view.View())
	assert.NotNil(t, view.Init())
}

func TestView_SubmitSearch(t *testing.T) {
	f := newFixture(t)

	f.typeText("cat")
	f.run(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, []string{"/docs:cat"}, f.calls)
	assert.False(t, f.view.InputFocused())
	require.Len(t, f.view.Results(), 2)
	assert.Equal(t, "cat", f.view.Report().Keyword)
	out := f.view.View()
	assert.Contains(t, out, "a.pdf")
	assert.Contains(t, out, "page 3")
	assert.Contains(t, out, "1 skipped")
}

func TestView_EmptyKeywordDoesNothing(t *testing.T) {
	f := newFixture(t)

	_, cmd := f.view.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.True(t, f.view.InputFocused())
}

func TestView_SearchErrorReturnsToInput(t *testing.T) {
	f := newFixture(t)
	f.search.SearchFunc = func(context.Context, string, string, domain.SearchOptions) (*domain.SearchReport, error) {
		return nil, domain.ErrInvalidDirectory
	}

	f.typeText("cat")
	f.run(tea.KeyMsg{Type: tea.KeyEnter})

	assert.ErrorIs(t, f.view.Err(), domain.ErrInvalidDirectory)
	assert.True(t, f.view.InputFocused())
	assert.Contains(t, f.view.View(), "invalid directory")
}

func TestView_CancelledSearchIsIgnored(t *testing.T) {
	f := newFixture(t)

	f.view.Update(messages.SearchCompleted{Err: context.Canceled})

	assert.NoError(t, f.view.Err())
	assert.Nil(t, f.view.Report())
}

func TestView_StaleCompletionIsIgnored(t *testing.T) {
	f := newFixture(t)

	first := f.view.startSearch("alpha")
	require.NotNil(t, first)
	alphaDone := first()

	second := f.view.startSearch("beta")
	require.NotNil(t, second)

	f.view.Update(alphaDone)
	assert.Nil(t, f.view.Report(), "an older search must not replace the running one")

	betaDone := second()
	completed, ok := betaDone.(messages.SearchCompleted)
	require.True(t, ok)
	require.NoError(t, completed.Err)

	f.view.Update(betaDone)
	require.NotNil(t, f.view.Report())
	assert.Equal(t, "beta", f.view.Report().Keyword)
	assert.Equal(t, []string{"/docs:alpha", "/docs:beta"}, f.calls)
	assert.Contains(t, f.history.Searches(), "beta")
}

func TestView_CompletionAfterResetIsIgnored(t *testing.T) {
	f := newFixture(t)

	cmd := f.view.startSearch("alpha")
	require.NotNil(t, cmd)
	done := cmd()
	f.view.Reset()

	f.view.Update(done)

	assert.Nil(t, f.view.Report())
	assert.Empty(t, f.view.Results())
	assert.True(t, f.view.InputFocused())
}

func TestView_NoSearchService(t *testing.T) {
	view := NewView(nil, nil, ".", nil, nil, nil)
	view.SetDimensions(80, 24)
	view.input.SetValue("cat")

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	view.Update(cmd())

	assert.ErrorIs(t, view.Err(), ErrNoSearchService)
}

func TestView_HistorySuggestions(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.history.RecordSearch(context.Background(), "invoice"))

	f.typeText("inv")
	assert.Contains(t, f.view.View(), "invoice")

	f.view.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, "invoice", f.view.Query())
}

func TestView_SuggestionsRefreshOnHistoryChange(t *testing.T) {
	f := newFixture(t)
	f.typeText("re")
	assert.NotContains(t, f.view.View(), "report")

	require.NoError(t, f.history.RecordSearch(context.Background(), "report"))
	f.view.Update(messages.HistoryChanged{Store: domain.StoreSearch})

	assert.Contains(t, f.view.View(), "report")
}

func TestView_NavigateAndOpen(t *testing.T) {
	f := newFixture(t)
	f.typeText("cat")
	f.run(tea.KeyMsg{Type: tea.KeyEnter})

	f.view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	assert.Equal(t, 1, f.view.SelectedIndex())
	f.run(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, []string{"/docs/b.pdf"}, f.actions.Opened)
	assert.Equal(t, "Opened b.pdf", f.view.StatusMessage())

	f.view.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, f.view.SelectedIndex())
}

func TestView_OpenFailure(t *testing.T) {
	f := newFixture(t)
	f.actions.OpenErr = domain.ErrFileOpen
	f.typeText("cat")
	f.run(tea.KeyMsg{Type: tea.KeyEnter})

	f.run(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'o'}})

	assert.Contains(t, f.view.StatusMessage(), "Open failed")
}

func TestView_OpenWithUnsavedHistory(t *testing.T) {
	f := newFixture(t)

	f.view.Update(messages.FileOpened{Path: "/docs/a.pdf", Err: domain.ErrPersistenceSave})

	assert.Equal(t, "Opened a.pdf (history not saved)", f.view.StatusMessage())
}

func TestView_ToggleFavorite(t *testing.T) {
	f := newFixture(t)
	f.typeText("cat")
	f.run(tea.KeyMsg{Type: tea.KeyEnter})

	f.run(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'f'}})
	assert.Equal(t, "Added a.pdf to favorites", f.view.StatusMessage())

	f.run(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'f'}})
	assert.Equal(t, "Removed a.pdf from favorites", f.view.StatusMessage())
	assert.Equal(t, []string{"/docs/a.pdf", "/docs/a.pdf"}, f.actions.Toggled)
}

func TestView_ActionsUnavailable(t *testing.T) {
	f := newFixture(t)
	f.view.actionService = nil
	f.typeText("cat")
	f.run(tea.KeyMsg{Type: tea.KeyEnter})

	f.run(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'o'}})

	assert.ErrorIs(t, f.view.Err(), ErrNoActionService)
}

func TestView_NewSearch(t *testing.T) {
	f := newFixture(t)
	f.typeText("cat")
	f.run(tea.KeyMsg{Type: tea.KeyEnter})

	f.view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'n'}})

	assert.True(t, f.view.InputFocused())
	assert.Equal(t, "", f.view.Query())
}

func TestView_SearchRequested(t *testing.T) {
	f := newFixture(t)

	f.run(messages.SearchRequested{Keyword: "dog"})

	assert.Equal(t, "dog", f.view.Query())
	assert.Equal(t, []string{"/docs:dog"}, f.calls)
}

func TestView_EscGoesToMenu(t *testing.T) {
	f := newFixture(t)

	_, cmd := f.view.Update(tea.KeyMsg{Type: tea.KeyEsc})

	require.NotNil(t, cmd)
	assert.Equal(t, messages.ViewChanged{View: messages.ViewMenu}, cmd())
}

func TestView_Reset(t *testing.T) {
	f := newFixture(t)
	f.typeText("cat")
	f.run(tea.KeyMsg{Type: tea.KeyEnter})

	f.view.Reset()

	assert.True(t, f.view.InputFocused())
	assert.Empty(t, f.view.Results())
	assert.Nil(t, f.view.Report())
	assert.Empty(t, f.view.StatusMessage())
}

func TestView_WithOptions(t *testing.T) {
	f := newFixture(t)
	var got domain.SearchOptions
	f.search.SearchFunc = func(_ context.Context, _, keyword string, opts domain.SearchOptions) (*domain.SearchReport, error) {
		got = opts
		return testReport(keyword), nil
	}
	f.view.WithOptions(domain.SearchOptions{SkipHidden: true, Workers: 2})

	f.run(messages.SearchRequested{Keyword: "cat"})

	assert.True(t, got.SkipHidden)
	assert.Equal(t, 2, got.Workers)
}
