package picker

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iconclip/iconclip/internal/catalog"
	"github.com/iconclip/iconclip/internal/clipboard"
)

// --- Mocks ---

type searchCall struct {
	query   string
	page    int
	perPage int
}

type mockCatalog struct {
	searches    []searchCall
	searchResp  *catalog.SearchResponse
	searchErr   error
	downloads   []string
	markup      string
	downloadErr error
}

func (c *mockCatalog) Search(ctx context.Context, query string, page, perPage int) (*catalog.SearchResponse, error) {
	c.searches = append(c.searches, searchCall{query: query, page: page, perPage: perPage})
	if c.searchErr != nil {
		return nil, c.searchErr
	}
	return c.searchResp, nil
}

func (c *mockCatalog) Download(ctx context.Context, hash string) (string, error) {
	c.downloads = append(c.downloads, hash)
	if c.downloadErr != nil {
		return "", c.downloadErr
	}
	return c.markup, nil
}

func (c *mockCatalog) Family() string { return "flat-color" }

type mockCopier struct {
	markups []string
	outcome clipboard.Outcome
	err     error
}

func (c *mockCopier) Copy(ctx context.Context, markup string) (clipboard.Outcome, error) {
	c.markups = append(c.markups, markup)
	if c.err != nil {
		return 0, c.err
	}
	return c.outcome, nil
}

type mockArchive struct {
	cache    map[string]string
	saved    map[string]string
	searches []string
}

func newMockArchive() *mockArchive {
	return &mockArchive{cache: map[string]string{}, saved: map[string]string{}}
}

func (a *mockArchive) CachedMarkup(ctx context.Context, hash string) (string, bool) {
	m, ok := a.cache[hash]
	return m, ok
}

func (a *mockArchive) SaveMarkup(ctx context.Context, hash, name, markup string) {
	a.saved[hash] = markup
}

func (a *mockArchive) SaveSearch(ctx context.Context, query string, resultCount int) {
	a.searches = append(a.searches, query)
}

// --- Helpers ---

func arrowResponse() *catalog.SearchResponse {
	return &catalog.SearchResponse{
		Query: "arrow",
		Results: []catalog.IconRecord{
			{Hash: "abc123", Name: "Arrow Right", FamilyName: "Flat Color", CategoryName: "Arrows", FamilySlug: "flat-color", CategorySlug: "arrows"},
			{Hash: "def456", Name: "Arrow Left", FamilyName: "Flat Color", CategoryName: "Arrows"},
		},
		Pagination: catalog.Pagination{Total: 2, HasMore: false, Offset: 0},
	}
}

func newTestModel(svc Catalog, clip Copier, archive Archive) Model {
	m := New(svc, clip, archive, Options{Debounce: 500 * time.Millisecond})
	m.width = 80
	m.height = 24
	return m
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

// step runs a cmd synchronously and feeds its message back into the model.
func step(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	require.NotNil(t, cmd)
	m, _ = update(t, m, cmd())
	return m
}

func typeText(t *testing.T, m Model, text string) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, r := range text {
		m, cmd = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m, cmd
}

// fireDebounce delivers the currently pending debounce timer.
func fireDebounce(t *testing.T, m Model) (Model, tea.Cmd) {
	t.Helper()
	return update(t, m, debounceMsg{id: m.debounceID})
}

func loadedModel(t *testing.T, svc *mockCatalog, clip Copier, archive Archive) Model {
	t.Helper()
	m := newTestModel(svc, clip, archive)
	m, _ = typeText(t, m, "arrow")
	m, cmd := fireDebounce(t, m)
	m = step(t, m, cmd)
	require.Equal(t, stateLoaded, m.state)
	return m
}

// --- Debounce and dispatch ---

func TestDebounceCoalescesToOneSearch(t *testing.T) {
	svc := &mockCatalog{searchResp: arrowResponse()}
	m := newTestModel(svc, &mockCopier{}, nil)

	m, _ = typeText(t, m, "ar")
	staleID := m.debounceID
	m, _ = typeText(t, m, "row")

	// The superseded timer fires and must be ignored.
	m, cmd := update(t, m, debounceMsg{id: staleID})
	assert.Nil(t, cmd)
	assert.Empty(t, svc.searches)

	// The current timer fires and issues exactly one search for the final
	// text with page 1.
	m, cmd = fireDebounce(t, m)
	m = step(t, m, cmd)

	require.Len(t, svc.searches, 1)
	assert.Equal(t, searchCall{query: "arrow", page: 1, perPage: 100}, svc.searches[0])
	assert.Equal(t, stateLoaded, m.state)
	assert.Len(t, m.icons, 2)
}

func TestEnterDispatchesImmediatelyAndCancelsTimer(t *testing.T) {
	svc := &mockCatalog{searchResp: arrowResponse()}
	m := newTestModel(svc, &mockCopier{}, nil)

	m, _ = typeText(t, m, "arr")
	pendingID := m.debounceID

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = step(t, m, cmd)

	require.Len(t, svc.searches, 1)
	assert.Equal(t, "arr", svc.searches[0].query)

	// The pending timer was invalidated by Enter.
	_, cmd = update(t, m, debounceMsg{id: pendingID})
	assert.Nil(t, cmd)
	assert.Len(t, svc.searches, 1)
}

func TestSingleFlightDropsTriggersWhileLoading(t *testing.T) {
	svc := &mockCatalog{searchResp: arrowResponse()}
	m := newTestModel(svc, &mockCopier{}, nil)

	m, _ = typeText(t, m, "arrow")
	m, cmd := fireDebounce(t, m)
	require.NotNil(t, cmd)
	searchMsg := cmd() // In flight; not yet settled.
	require.Len(t, svc.searches, 1)

	// Triggers while loading are dropped, not queued.
	m, cmd2 := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd2)
	m, cmd2 = fireDebounce(t, m)
	assert.Nil(t, cmd2)
	assert.Len(t, svc.searches, 1)

	// After settlement the next cycle can search again.
	m, _ = update(t, m, searchMsg)
	assert.False(t, m.loading)
	m, cmd2 = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = step(t, m, cmd2)
	assert.Len(t, svc.searches, 2)
}

func TestLoadingClearsOnFailureToo(t *testing.T) {
	svc := &mockCatalog{searchErr: errors.New("boom")}
	m := newTestModel(svc, &mockCopier{}, nil)

	m, _ = typeText(t, m, "arrow")
	m, cmd := fireDebounce(t, m)
	m = step(t, m, cmd)

	assert.False(t, m.loading)
	assert.Equal(t, stateError, m.state)
}

func TestBlankQueryIssuesNoRequest(t *testing.T) {
	svc := &mockCatalog{searchResp: arrowResponse()}
	m := newTestModel(svc, &mockCopier{}, nil)

	// Enter on an empty box.
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.Equal(t, stateIdle, m.state)

	// Whitespace-only text debounces into a no-op as well.
	m, _ = typeText(t, m, "   ")
	m, cmd = fireDebounce(t, m)
	assert.Nil(t, cmd)
	assert.Equal(t, stateIdle, m.state)
	assert.Empty(t, svc.searches)
}

func TestClearingQueryReturnsToIdlePrompt(t *testing.T) {
	svc := &mockCatalog{searchResp: arrowResponse()}
	m := loadedModel(t, svc, &mockCopier{}, nil)

	for range "arrow" {
		m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyBackspace})
	}
	m, cmd := fireDebounce(t, m)
	assert.Nil(t, cmd)
	assert.Equal(t, stateIdle, m.state)
	assert.Empty(t, m.icons)
}

func TestInitialQueryDispatchesOnStartup(t *testing.T) {
	svc := &mockCatalog{searchResp: arrowResponse()}
	m := New(svc, &mockCopier{}, nil, Options{InitialQuery: "arrow"})

	next, cmd := m.Update(initMsg{})
	m = next.(Model)
	m = step(t, m, cmd)

	require.Len(t, svc.searches, 1)
	assert.Equal(t, "arrow", svc.searches[0].query)
	assert.Equal(t, stateLoaded, m.state)
}

// --- Error panel ---

func TestAuthErrorRendersErrorPanel(t *testing.T) {
	svc := &mockCatalog{searchErr: &catalog.AuthError{}}
	m := newTestModel(svc, &mockCopier{}, nil)

	m, _ = typeText(t, m, "arrow")
	m, cmd := fireDebounce(t, m)
	m = step(t, m, cmd)

	assert.Equal(t, stateError, m.state)
	assert.Contains(t, m.View(), "Invalid API key")
}

func TestErrorPanelMessages(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"rate limit", &catalog.RateLimitError{}, "Rate limit"},
		{"generic http", &catalog.HTTPError{StatusCode: 503, Status: "503 Service Unavailable"}, "503"},
		{"network", &catalog.NetworkError{URL: "http://127.0.0.1:8787/api/icons/search/family/flat-color", Err: errors.New("connection refused")}, "http://127.0.0.1:8787"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockCatalog{searchErr: tt.err}
			m := newTestModel(svc, &mockCopier{}, nil)
			m, _ = typeText(t, m, "arrow")
			m, cmd := fireDebounce(t, m)
			m = step(t, m, cmd)
			assert.Contains(t, m.View(), tt.want)
		})
	}
}

// --- Copy flow ---

func TestGrabCopiesAndToastsSuccess(t *testing.T) {
	svc := &mockCatalog{searchResp: arrowResponse(), markup: "<svg>arrow</svg>"}
	clip := &mockCopier{outcome: clipboard.OutcomeMultiFormat}
	m := loadedModel(t, svc, clip, nil)

	// Move into the grid and activate the first tile (hash abc123).
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	require.Equal(t, 0, m.selection)
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = step(t, m, cmd)

	assert.Equal(t, []string{"abc123"}, svc.downloads)
	assert.Equal(t, []string{"<svg>arrow</svg>"}, clip.markups)
	assert.Equal(t, toastSuccess, m.toast.kind)
	assert.Equal(t, "Arrow Right SVG icon copied to clipboard! Press Ctrl+V to paste in PowerPoint.", m.toast.message)
}

func TestGrabFallbackMessageIsDistinct(t *testing.T) {
	svc := &mockCatalog{searchResp: arrowResponse(), markup: "<svg>arrow</svg>"}
	clip := &mockCopier{outcome: clipboard.OutcomeTextOnly}
	m := loadedModel(t, svc, clip, nil)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = step(t, m, cmd)

	assert.Equal(t, "Arrow Right SVG copied as text to clipboard! Press Ctrl+V to paste.", m.toast.message)
}

func TestGrabDownloadFailureToastsError(t *testing.T) {
	svc := &mockCatalog{searchResp: arrowResponse(), downloadErr: &catalog.HTTPError{Message: "Failed to download SVG: 404"}}
	clip := &mockCopier{}
	m := loadedModel(t, svc, clip, nil)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = step(t, m, cmd)

	assert.Empty(t, clip.markups)
	assert.Equal(t, toastError, m.toast.kind)
	assert.Equal(t, "Failed to download SVG: 404", m.toast.message)
}

func TestGrabClipboardFailureToastsError(t *testing.T) {
	svc := &mockCatalog{searchResp: arrowResponse(), markup: "<svg/>"}
	clip := &mockCopier{err: &clipboard.Error{TextErr: errors.New("no display")}}
	m := loadedModel(t, svc, clip, nil)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = step(t, m, cmd)

	assert.Equal(t, toastError, m.toast.kind)
	assert.Contains(t, m.toast.message, "no display")
}

// --- Archive ---

func TestGrabUsesCachedMarkup(t *testing.T) {
	svc := &mockCatalog{searchResp: arrowResponse(), markup: "<svg>fresh</svg>"}
	clip := &mockCopier{outcome: clipboard.OutcomeMultiFormat}
	archive := newMockArchive()
	archive.cache["abc123"] = "<svg>cached</svg>"
	m := loadedModel(t, svc, clip, archive)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	step(t, m, cmd)

	assert.Empty(t, svc.downloads, "cache hit must skip the download")
	assert.Equal(t, []string{"<svg>cached</svg>"}, clip.markups)
}

func TestGrabSavesDownloadedMarkup(t *testing.T) {
	svc := &mockCatalog{searchResp: arrowResponse(), markup: "<svg>fresh</svg>"}
	clip := &mockCopier{outcome: clipboard.OutcomeMultiFormat}
	archive := newMockArchive()
	m := loadedModel(t, svc, clip, archive)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	step(t, m, cmd)

	assert.Equal(t, []string{"abc123"}, svc.downloads)
	assert.Equal(t, "<svg>fresh</svg>", archive.saved["abc123"])
}

func TestSearchRecordedInArchive(t *testing.T) {
	svc := &mockCatalog{searchResp: arrowResponse()}
	archive := newMockArchive()
	loadedModel(t, svc, &mockCopier{}, archive)

	assert.Equal(t, []string{"arrow"}, archive.searches)
}

// --- Toasts ---

func TestToastExpiry(t *testing.T) {
	svc := &mockCatalog{searchResp: arrowResponse(), markup: "<svg/>"}
	clip := &mockCopier{outcome: clipboard.OutcomeMultiFormat}
	m := loadedModel(t, svc, clip, nil)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = step(t, m, cmd)
	require.Equal(t, toastSuccess, m.toast.kind)

	// A stale expiry (from an overwritten toast) changes nothing.
	m, _ = update(t, m, toastExpireMsg{id: m.toastSeq - 1})
	assert.Equal(t, toastSuccess, m.toast.kind)

	// The current expiry clears it.
	m, _ = update(t, m, toastExpireMsg{id: m.toastSeq})
	assert.Equal(t, toastNone, m.toast.kind)
}

func TestNewestToastWins(t *testing.T) {
	svc := &mockCatalog{searchResp: arrowResponse(), markup: "<svg/>"}
	clip := &mockCopier{outcome: clipboard.OutcomeMultiFormat}
	m := loadedModel(t, svc, clip, nil)

	m, _ = update(t, m, toastExpireMsg{}) // no-op on empty toast
	m, _ = m.showToast(toastSuccess, "first")
	firstSeq := m.toastSeq
	m, _ = m.showToast(toastError, "second")

	assert.Equal(t, "second", m.toast.message)

	// The first toast's timer firing later must not clear the second.
	m, _ = update(t, m, toastExpireMsg{id: firstSeq})
	assert.Equal(t, "second", m.toast.message)
}

// --- Grid navigation ---

func TestGridNavigation(t *testing.T) {
	svc := &mockCatalog{searchResp: arrowResponse()}
	m := loadedModel(t, svc, &mockCopier{}, nil)
	m.opts.Columns = 2

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 0, m.selection)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, 1, m.selection)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, 1, m.selection, "selection clamps at the last tile")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, -1, m.selection, "up from the first row focuses the query box")

	// Typing while in the grid returns focus to the query box.
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, _ = typeText(t, m, "x")
	assert.Equal(t, -1, m.selection)
}
