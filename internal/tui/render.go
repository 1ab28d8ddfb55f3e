package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/muurk/propsheet/internal/editors"
	"github.com/muurk/propsheet/internal/inspector"
)

// sheetRenderer draws the visible rows of a surface.
type sheetRenderer struct {
	surface    *inspector.Surface
	bindings   map[*inspector.Row]binding
	selected   *inspector.Row
	titleWidth int

	// editing replaces the value column of the selected row
	editing string
}

func newSheetRenderer(s *inspector.Surface, bindings map[*inspector.Row]binding) *sheetRenderer {
	r := &sheetRenderer{surface: s, bindings: bindings}
	r.titleWidth = r.measureTitles()
	return r
}

func (r *sheetRenderer) measureTitles() int {
	width := 0
	for _, row := range r.surface.Container().Rows() {
		if row.Kind == inspector.RowGroup {
			continue
		}
		w := runewidth.StringWidth(indent(row.Level)+row.Title) + 4
		if w > width {
			width = w
		}
	}
	if width > MaxTitleWidth {
		width = MaxTitleWidth
	}
	return width
}

func (r *sheetRenderer) render() string {
	var lines []string
	for _, row := range r.surface.Container().Visible() {
		lines = append(lines, r.renderRow(row))
	}
	if len(lines) == 0 {
		return StatusStyle.Render("No properties")
	}
	return strings.Join(lines, "\n")
}

func (r *sheetRenderer) renderRow(row *inspector.Row) string {
	cursor := "  "
	if r.selected != nil && row == r.selected {
		cursor = MarkerCursor
	}

	marker := " "
	if row.Kind != inspector.RowProperty && row.GroupID != "" {
		if r.surface.Groups().IsGroupExpanded(row.GroupID) {
			marker = MarkerExpanded
		} else {
			marker = MarkerCollapsed
		}
	}

	if row.Kind == inspector.RowGroup {
		line := indent(row.Level-1) + marker + " " + row.Title
		style := GroupTitleStyle
		if row == r.selected {
			style = SelectedStyle
		}
		return cursor + style.Render(line) + r.flags(row)
	}

	title := padTitle(indent(row.Level-1)+marker+" "+row.Title, r.titleWidth)
	titleStyle := TitleStyle
	if row == r.selected {
		titleStyle = SelectedStyle
	}

	return cursor + titleStyle.Render(title) + r.value(row) + r.flags(row)
}

func (r *sheetRenderer) value(row *inspector.Row) string {
	if row == r.selected && r.editing != "" {
		return EditingStyle.Render(r.editing)
	}

	if b, ok := r.bindings[row]; ok && b.external != nil && b.external.IsEditorVisible() {
		text := MarkerExternal + " "
		if expr, ok := b.external.(*editors.ExpressionEditor); ok {
			text += expr.Expression()
		}
		return ExternalStyle.Render(text)
	}

	if row.FullWidth && row.Content == "" {
		return ""
	}
	return ValueStyle.Render(row.Content)
}

func (r *sheetRenderer) flags(row *inspector.Row) string {
	var out []string
	if row.Changed {
		out = append(out, ChangedStyle.Render(MarkerChanged))
	}
	if row.Invalid {
		out = append(out, InvalidStyle.Render(MarkerInvalid))
	}
	if len(out) == 0 {
		return ""
	}
	return " " + strings.Join(out, " ")
}

// renderContent builds the body of the interactive screen.
func (m Model) renderContent() string {
	r := newSheetRenderer(m.surface, m.bindings)
	r.selected = m.selected

	var choices string
	switch m.mode {
	case ModeText, ModeExpression:
		r.editing = m.input.View()
	case ModeChoice:
		choices = m.renderChoices()
	}

	sections := []string{r.render()}
	if choices != "" {
		sections = append(sections, "", choices)
	}

	if m.selected != nil && m.selected.Description != "" && m.mode == ModeBrowse {
		sections = append(sections, "", DescriptionStyle.Render(m.selected.Description))
	}

	if m.status != "" {
		style := StatusStyle
		if m.statusErr {
			style = ErrorStatusStyle
		}
		sections = append(sections, "", style.Render(m.status))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderChoices() string {
	chooser, ok := m.bindings[m.selected].editor.(editors.Chooser)
	if !ok {
		return ""
	}

	var b strings.Builder
	for i, opt := range chooser.Choices() {
		label := opt.Label
		if label == "" {
			label = editors.FormatValue(opt.Value)
		}
		if i == m.choice {
			b.WriteString(SelectedOptionStyle.Render(MarkerCursor + label))
		} else {
			b.WriteString(OptionStyle.Render(label))
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// Render draws a surface as static text, without cursor or key help. Width
// zero leaves out the surrounding frame.
func Render(s *inspector.Surface, width int) string {
	r := newSheetRenderer(s, collectBindings(s))
	return RenderApplicationContainer(BuildHeaderContent(s.InstanceID()), r.render(), "", width, 0)
}
