package picker

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Toast lifetimes. Errors linger a little longer.
const (
	successToastTTL = 3 * time.Second
	errorToastTTL   = 4 * time.Second
)

type toastKind int

const (
	toastNone toastKind = iota
	toastSuccess
	toastError
)

// toast is the transient message bar at the bottom of the picker. Only one
// toast is shown at a time; a newer toast replaces the current one and
// invalidates its expiry timer.
type toast struct {
	kind    toastKind
	message string
}

// toastExpireMsg clears the toast whose id is still current.
type toastExpireMsg struct {
	id uint64
}

// showToast replaces the visible toast and schedules its expiry. The
// sequence number makes a stale timer from an overwritten toast harmless.
func (m Model) showToast(kind toastKind, message string) (Model, tea.Cmd) {
	m.toastSeq++
	m.toast = toast{kind: kind, message: message}

	ttl := successToastTTL
	if kind == toastError {
		ttl = errorToastTTL
	}

	id := m.toastSeq
	return m, tea.Tick(ttl, func(time.Time) tea.Msg {
		return toastExpireMsg{id: id}
	})
}
