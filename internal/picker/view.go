package picker

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/iconclip/iconclip/internal/catalog"
)

// tileWidth is the column width of one grid tile, marker included.
const tileWidth = 24

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
	familyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	countStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	tileStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("62"))
	detailStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	successStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("42"))
	warnStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("160"))
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("iconclip"))
	b.WriteString(familyStyle.Render("  " + m.svc.Family()))
	b.WriteString("\n\n")

	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	b.WriteString(m.viewContent())
	b.WriteString("\n")

	if m.toast.kind != toastNone {
		b.WriteString(m.viewToast())
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render("enter search · ↑↓←→ select · enter copy · esc quit"))
	return b.String()
}

// viewContent renders the results panel for the current state.
func (m Model) viewContent() string {
	switch m.state {
	case stateIdle:
		return dimStyle.Render("Type to search icons.")

	case stateLoading:
		return dimStyle.Render("Searching…")

	case stateEmpty:
		return countStyle.Render(resultsLabel(m.total, m.offset, m.paged))

	case stateError:
		msg := "Search failed"
		if m.searchErr != nil {
			msg = fmt.Sprintf("Search failed: %s", m.searchErr)
		}
		return errorStyle.Render(msg)

	case stateLoaded:
		var b strings.Builder
		b.WriteString(countStyle.Render(resultsLabel(m.total, m.offset, m.paged)))
		b.WriteString("\n\n")
		b.WriteString(m.viewGrid())
		if m.selection >= 0 && m.selection < len(m.icons) {
			b.WriteString("\n")
			b.WriteString(m.viewDetail(m.icons[m.selection]))
		}
		return b.String()

	default:
		return ""
	}
}

// viewGrid renders the icon tiles in rows.
func (m Model) viewGrid() string {
	cols := m.columns()
	rows := m.visibleRows()

	var b strings.Builder
	for i, ic := range m.icons {
		if i >= cols*rows {
			b.WriteString(dimStyle.Render(fmt.Sprintf("… and %d more on this page", len(m.icons)-i)))
			break
		}

		label := " " + MiddleTruncate(StripANSI(ic.Name), tileWidth-3) + " "
		if i == m.selection {
			b.WriteString(selectedStyle.Render(label))
		} else {
			b.WriteString(tileStyle.Render(label))
		}
		b.WriteString(strings.Repeat(" ", max(0, tileWidth-lipgloss.Width(label))))

		if (i+1)%cols == 0 {
			b.WriteString("\n")
		}
	}
	out := b.String()
	if !strings.HasSuffix(out, "\n") {
		out += "\n"
	}
	return out
}

// viewDetail renders one line about the selected icon.
func (m Model) viewDetail(ic catalog.Icon) string {
	parts := []string{ic.Name}
	if ic.Family != "" {
		parts = append(parts, ic.Family)
	}
	if ic.Category != "" {
		parts = append(parts, ic.Category)
	}
	line := strings.Join(parts, " · ")
	if len(ic.Tags) > 0 {
		line += dimStyle.Render("  #" + strings.Join(ic.Tags, " #"))
	}
	return detailStyle.Render(line)
}

// viewToast renders the transient outcome bar.
func (m Model) viewToast() string {
	if m.toast.kind == toastError {
		return warnStyle.Render(" " + m.toast.message + " ")
	}
	return successStyle.Render(" " + m.toast.message + " ")
}

// columns returns the grid column count, derived from the terminal width
// unless configured explicitly.
func (m Model) columns() int {
	if m.opts.Columns > 0 {
		return m.opts.Columns
	}
	if m.width <= 0 {
		return 3
	}
	cols := m.width / tileWidth
	if cols < 1 {
		cols = 1
	}
	return cols
}

// visibleRows returns how many grid rows fit under the chrome.
func (m Model) visibleRows() int {
	// Title, blank, input, blank, count label, blank, detail, toast, help.
	const chrome = 9
	rows := m.height - chrome
	if rows < 1 {
		rows = 8 // Before the first WindowSizeMsg
	}
	return rows
}

// resultsLabel renders the results-count line. The page math uses the
// catalog's fixed window size, matching the offsets the API reports.
func resultsLabel(total, offset int, paged bool) string {
	switch total {
	case 0:
		return "No icons found"
	case 1:
		return "1 icon found"
	}

	label := fmt.Sprintf("%d icons found", total)
	if paged {
		page := offset/catalog.DefaultPerPage + 1
		pages := (total + catalog.DefaultPerPage - 1) / catalog.DefaultPerPage
		label += fmt.Sprintf(" (Page %d of %d)", page, pages)
	}
	return label
}
