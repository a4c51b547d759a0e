// Package picker implements the interactive icon search TUI: a debounced
// query box, a paginated result grid, and copy-to-clipboard on selection.
package picker

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iconclip/iconclip/internal/catalog"
	"github.com/iconclip/iconclip/internal/clipboard"
)

// Catalog is the slice of the catalog client the picker needs.
type Catalog interface {
	Search(ctx context.Context, query string, page, perPage int) (*catalog.SearchResponse, error)
	Download(ctx context.Context, hash string) (string, error)
	Family() string
}

// Copier writes SVG markup to the system clipboard.
type Copier interface {
	Copy(ctx context.Context, markup string) (clipboard.Outcome, error)
}

// Archive is the optional local store consulted before downloading and fed
// after. Implementations must be best-effort: a failing archive must never
// fail the copy flow, so the methods expose no errors.
type Archive interface {
	CachedMarkup(ctx context.Context, hash string) (markup string, ok bool)
	SaveMarkup(ctx context.Context, hash, name, markup string)
	SaveSearch(ctx context.Context, query string, resultCount int)
}

// panelState is the state of the results panel.
type panelState int

const (
	stateIdle    panelState = iota // No query dispatched yet
	stateLoading                   // Search in flight
	stateLoaded                    // Results on screen
	stateEmpty                     // Search succeeded with zero results
	stateError                     // Search failed
)

// debounceMsg fires when the input quiet period elapses. Only a message
// whose id matches the current timer triggers a dispatch; scheduling a new
// timer invalidates all earlier ones.
type debounceMsg struct {
	id uint64
}

// searchDoneMsg is sent when an async search settles, either way.
type searchDoneMsg struct {
	query string
	resp  *catalog.SearchResponse
	err   error
}

// copyDoneMsg is sent when a download-then-copy chain settles.
type copyDoneMsg struct {
	name    string
	outcome clipboard.Outcome
	err     error
}

// Options configures a picker Model.
type Options struct {
	Debounce     time.Duration // Quiet period before a keystroke searches
	PerPage      int           // Search page size
	Columns      int           // Grid columns; 0 derives from terminal width
	InitialQuery string        // Dispatched immediately on startup when set
}

// Model is the Bubble Tea model for the icon picker.
type Model struct {
	input textinput.Model
	opts  Options

	state     panelState
	loading   bool // Single-flight gate; at most one search in flight
	icons     []catalog.Icon
	page      int
	total     int
	offset    int
	paged     bool // Pagination block seen for the current results
	searchErr error

	// selection indexes into icons; -1 means the query box has focus.
	selection int

	debounceID uint64
	toast      toast
	toastSeq   uint64

	svc     Catalog
	clip    Copier
	archive Archive // may be nil

	width  int
	height int
}

// New creates a picker Model. archive may be nil to disable the local
// cache.
func New(svc Catalog, clip Copier, archive Archive, opts Options) Model {
	if opts.Debounce <= 0 {
		opts.Debounce = 500 * time.Millisecond
	}
	if opts.PerPage <= 0 {
		opts.PerPage = catalog.DefaultPerPage
	}

	input := textinput.New()
	input.Placeholder = "Search icons"
	input.Prompt = "> "
	input.SetValue(opts.InitialQuery)
	input.Focus()

	return Model{
		input:     input,
		opts:      opts,
		state:     stateIdle,
		selection: -1,
		svc:       svc,
		clip:      clip,
		archive:   archive,
	}
}

// initMsg triggers the startup dispatch through Update, where state
// mutations are visible to the Bubble Tea runtime.
type initMsg struct{}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, func() tea.Msg { return initMsg{} })
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case initMsg:
		if m.opts.InitialQuery != "" {
			return m.dispatch(m.opts.InitialQuery)
		}
		return m, nil

	case debounceMsg:
		if msg.id != m.debounceID {
			return m, nil // Superseded timer
		}
		return m.dispatch(m.input.Value())

	case searchDoneMsg:
		return m.handleSearchDone(msg)

	case copyDoneMsg:
		return m.handleCopyDone(msg)

	case toastExpireMsg:
		if msg.id == m.toastSeq {
			m.toast = toast{}
		}
		return m, nil
	}

	return m, nil
}

// handleKey routes keyboard input between the query box and the grid.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit

	case tea.KeyEsc:
		if m.selection >= 0 {
			m.selection = -1
			return m, nil
		}
		return m, tea.Quit

	case tea.KeyEnter:
		if m.selection >= 0 && m.selection < len(m.icons) {
			return m, m.grabCmd(m.icons[m.selection])
		}
		// Cancel any pending debounce timer and search now.
		m.debounceID++
		return m.dispatch(m.input.Value())

	case tea.KeyUp, tea.KeyDown:
		return m.moveSelection(msg.Type), nil

	case tea.KeyLeft, tea.KeyRight:
		if m.selection >= 0 {
			return m.moveSelection(msg.Type), nil
		}
		// Cursor movement inside the query box.
		return m.updateInput(msg)

	case tea.KeyTab, tea.KeyShiftTab:
		return m.moveSelection(msg.Type), nil

	default:
		// Any other key returns focus to the query box.
		m.selection = -1
		return m.updateInput(msg)
	}
}

// updateInput forwards a key to the text input and schedules a debounced
// search when the text changed.
func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() == before {
		return m, cmd
	}

	m.debounceID++
	id := m.debounceID
	tick := tea.Tick(m.opts.Debounce, func(time.Time) tea.Msg {
		return debounceMsg{id: id}
	})
	return m, tea.Batch(cmd, tick)
}

// dispatch issues a search for query. Blank queries reset to the idle
// prompt without a request. While a search is in flight the call is
// dropped, not queued; the next debounce cycle after settlement issues the
// next request.
func (m Model) dispatch(query string) (Model, tea.Cmd) {
	if strings.TrimSpace(query) == "" {
		m.state = stateIdle
		m.icons = nil
		m.selection = -1
		m.searchErr = nil
		return m, nil
	}
	if m.loading {
		return m, nil
	}

	m.loading = true
	m.state = stateLoading
	m.page = 1

	svc := m.svc
	archive := m.archive
	perPage := m.opts.PerPage
	return m, func() tea.Msg {
		resp, err := svc.Search(context.Background(), query, 1, perPage)
		if err == nil && archive != nil {
			archive.SaveSearch(context.Background(), query, len(resp.Results))
		}
		return searchDoneMsg{query: query, resp: resp, err: err}
	}
}

// handleSearchDone settles a search. The loading gate clears on every
// settlement, success or failure.
func (m Model) handleSearchDone(msg searchDoneMsg) (tea.Model, tea.Cmd) {
	m.loading = false

	if msg.err != nil {
		m.state = stateError
		m.searchErr = msg.err
		m.icons = nil
		m.selection = -1
		return m, nil
	}

	m.searchErr = nil
	m.icons = msg.resp.Icons()
	m.total = msg.resp.Pagination.Total
	m.offset = msg.resp.Pagination.Offset
	m.paged = true
	m.selection = -1

	if len(m.icons) == 0 {
		m.state = stateEmpty
	} else {
		m.state = stateLoaded
	}
	return m, nil
}

// grabCmd runs the download-then-copy chain for one icon. Concurrent grabs
// of different icons may interleave; each settles independently.
func (m *Model) grabCmd(ic catalog.Icon) tea.Cmd {
	svc := m.svc
	clip := m.clip
	archive := m.archive
	return func() tea.Msg {
		ctx := context.Background()

		var markup string
		var cached bool
		if archive != nil {
			markup, cached = archive.CachedMarkup(ctx, ic.Hash)
		}
		if !cached {
			var err error
			markup, err = svc.Download(ctx, ic.Hash)
			if err != nil {
				return copyDoneMsg{name: ic.Name, err: err}
			}
			if archive != nil {
				archive.SaveMarkup(ctx, ic.Hash, ic.Name, markup)
			}
		}

		outcome, err := clip.Copy(ctx, markup)
		if err != nil {
			return copyDoneMsg{name: ic.Name, err: err}
		}
		return copyDoneMsg{name: ic.Name, outcome: outcome}
	}
}

// handleCopyDone turns a settled copy chain into a toast.
func (m Model) handleCopyDone(msg copyDoneMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		return m.showToast(toastError, msg.err.Error())
	}
	return m.showToast(toastSuccess, msg.outcome.Message(msg.name))
}

// moveSelection moves grid focus; moving up from the first row returns
// focus to the query box.
func (m Model) moveSelection(key tea.KeyType) Model {
	if m.state != stateLoaded || len(m.icons) == 0 {
		return m
	}
	cols := m.columns()

	switch key {
	case tea.KeyDown:
		switch {
		case m.selection < 0:
			m.selection = 0
		case m.selection+cols < len(m.icons):
			m.selection += cols
		}
	case tea.KeyUp:
		switch {
		case m.selection < 0:
			// Already in the query box.
		case m.selection < cols:
			m.selection = -1
		default:
			m.selection -= cols
		}
	case tea.KeyRight, tea.KeyTab:
		if m.selection < len(m.icons)-1 {
			m.selection++
		}
	case tea.KeyLeft, tea.KeyShiftTab:
		if m.selection > 0 {
			m.selection--
		}
	}
	return m
}
