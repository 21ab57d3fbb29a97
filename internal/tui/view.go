package tui

import (
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/rshade/vtable/internal/cell"
	"github.com/rshade/vtable/internal/layout"
	"github.com/rshade/vtable/internal/render"
)

// detailLabelWidth is the minimum width of the field column in the detail view.
const detailLabelWidth = 12

// View renders the current view (Bubble Tea interface).
func (m Model) View() string {
	switch m.state {
	case ViewStateQuitting:
		return ""
	case ViewStateDetail:
		return m.renderDetailView()
	case ViewStateList, ViewStateFilter:
		return m.renderListView()
	default:
		return ""
	}
}

// renderListView renders the table with the status line or filter prompt
// and the key help below it.
func (m Model) renderListView() string {
	opts := render.DefaultOptions()
	opts.Selected = m.selected
	canvas := render.Paint(m.table.Frame(), opts)

	sections := []string{canvas.Render(m.theme)}
	if m.state == ViewStateFilter {
		sections = append(sections, ansi.Truncate(m.textInput.View(), m.width, ""))
	} else {
		sections = append(sections, m.renderStatusBar())
	}
	sections = append(sections, m.help.View(m.keys))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderStatusBar shows the selected row, the filter and any configuration
// warnings.
func (m Model) renderStatusBar() string {
	p := message.NewPrinter(language.English)

	var b strings.Builder
	if m.title != "" {
		b.WriteString(m.title)
		b.WriteString(" | ")
	}
	if m.table.Len() == 0 {
		b.WriteString("no rows")
	} else {
		b.WriteString(p.Sprintf("row %d of %d", m.selected+1, m.table.Len()))
	}
	if m.query != "" {
		b.WriteString(p.Sprintf(" | filter %q: %d of %d", m.query, len(m.rows), len(m.all)))
	}
	if n := len(m.table.Warnings()); n > 0 {
		b.WriteString(p.Sprintf(" | %d warning(s): %s", n, m.table.Warnings()[0].Message))
	}

	text := ansi.Truncate(b.String(), m.width, "…")
	return m.theme.Style(render.StyleStatus).Render(text)
}

// renderDetailView lists every field of the selected row: table columns
// first, as rendered, then the remaining fields by name.
func (m Model) renderDetailView() string {
	row := m.table.Row(m.selected)
	if row == nil {
		return ""
	}

	type field struct{ label, value string }
	var fields []field
	shown := make(map[string]bool)
	for i, col := range m.table.Model().Columns {
		fields = append(fields, field{col.Header(), m.table.Resolver().Resolve(row, m.selected, i, col)})
		shown[col.Key] = true
	}
	var rest []string
	for k := range row {
		if !shown[k] {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	for _, k := range rest {
		fields = append(fields, field{k, cell.Format(layout.Field(row, k))})
	}

	labelWidth := detailLabelWidth
	for _, f := range fields {
		labelWidth = max(labelWidth, ansi.StringWidth(f.label)+1)
	}

	label := m.theme.Style(render.StyleHeader)
	subtle := m.theme.Style(render.StyleStatus)

	var content strings.Builder
	content.WriteString(label.Render("ROW DETAIL  " + m.selectedKey))
	content.WriteString("\n\n")
	for _, f := range fields {
		content.WriteString(label.Render(f.label + strings.Repeat(" ", labelWidth-ansi.StringWidth(f.label))))
		content.WriteString(ansi.Truncate(f.value, max(m.width-labelWidth, 1), "…"))
		content.WriteString("\n")
	}
	content.WriteString(subtle.Render("\nPress ESC to return"))
	return content.String()
}
