package tui

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/muurk/propsheet/internal/editors"
	"github.com/muurk/propsheet/internal/inspector"
	"github.com/muurk/propsheet/internal/logging"
	"go.uber.org/zap"
)

// Mode is what the keyboard currently drives.
type Mode int

const (
	ModeBrowse Mode = iota
	ModeText
	ModeChoice
	ModeExpression
)

// binding ties a row to the editors that own it.
type binding struct {
	surface  *inspector.Surface
	editor   inspector.Editor
	external inspector.ExternalParameterEditor
}

func (b binding) expression() *editors.ExpressionEditor {
	e, _ := b.external.(*editors.ExpressionEditor)
	return e
}

// Config configures a Model.
type Config struct {
	Surface   *inspector.Surface
	Scheduler *Scheduler

	// OnSave receives the resolved values when the user saves a valid sheet.
	OnSave func(values map[string]any) error
}

// Model is the interactive property sheet editor.
type Model struct {
	surface  *inspector.Surface
	sched    *Scheduler
	onSave   func(map[string]any) error
	bindings map[*inspector.Row]binding

	selected *inspector.Row
	mode     Mode
	input    textinput.Model
	choice   int

	keys     keyMap
	editKeys editKeyMap
	help     help.Model
	viewport viewport.Model

	status      string
	statusErr   bool
	confirmQuit bool

	// Saved is set once values were written by OnSave.
	Saved bool
	// savedValues is what the last successful save wrote.
	savedValues map[string]any

	Width  int
	Height int
}

// NewModel creates the editor for a built surface.
func NewModel(cfg Config) Model {
	sched := cfg.Scheduler
	if sched == nil {
		sched = NewScheduler()
	}

	m := Model{
		surface:  cfg.Surface,
		sched:    sched,
		onSave:   cfg.OnSave,
		bindings: collectBindings(cfg.Surface),
		keys:     defaultKeyMap(),
		editKeys: defaultEditKeyMap(),
		help:     help.New(),
		input:    textinput.New(),
		viewport: viewport.New(0, 0),
	}
	if rows := m.surface.Container().Visible(); len(rows) > 0 {
		m.selected = rows[0]
	}
	return m
}

// collectBindings maps every property row, including nested ones, to its
// editors.
func collectBindings(s *inspector.Surface) map[*inspector.Row]binding {
	out := make(map[*inspector.Row]binding)
	var walk func(*inspector.Surface)
	walk = func(s *inspector.Surface) {
		for _, editor := range s.Editors() {
			name := editor.PropertyName()
			if row := s.Row(name); row != nil {
				out[row] = binding{surface: s, editor: editor, external: s.ExternalEditor(name)}
			}
		}
		for _, child := range s.Children() {
			walk(child)
		}
	}
	walk(s)
	return out
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return nil
}

// Mode returns the current input mode.
func (m Model) Mode() Mode {
	return m.mode
}

// Selected returns the row under the cursor.
func (m Model) Selected() *inspector.Row {
	return m.selected
}

// Status returns the status line text.
func (m Model) Status() string {
	return m.status
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.help.Width = msg.Width

	case animationStepMsg:
		msg.fn()
		m.ensureSelection()

	case tea.KeyMsg:
		switch m.mode {
		case ModeText, ModeExpression:
			m, cmd = m.updateInput(msg)
		case ModeChoice:
			m, cmd = m.updateChoice(msg)
		default:
			m, cmd = m.updateBrowse(msg)
		}
		m.ensureSelection()
	}

	m.syncViewport()
	return m, tea.Batch(cmd, m.sched.Cmd())
}

func (m Model) updateBrowse(msg tea.KeyMsg) (Model, tea.Cmd) {
	if !key.Matches(msg, m.keys.Quit) {
		m.confirmQuit = false
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		if m.unsaved() && !m.confirmQuit {
			m.confirmQuit = true
			m.setStatus("Unsaved changes, press q again to quit")
			return m, nil
		}
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		m.move(-1)

	case key.Matches(msg, m.keys.Down):
		m.move(1)

	case key.Matches(msg, m.keys.Toggle):
		m.toggleSelected()

	case key.Matches(msg, m.keys.Edit):
		return m.startEditing()

	case key.Matches(msg, m.keys.External):
		return m.toggleExpression()

	case key.Matches(msg, m.keys.Validate):
		if m.validate() {
			m.setStatus("All values are valid")
		}

	case key.Matches(msg, m.keys.Save):
		m.save()

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}

	return m, nil
}

func (m *Model) toggleSelected() {
	row := m.selected
	if row == nil || row.GroupID == "" {
		return
	}
	if err := m.surface.ToggleGroup(row.GroupID, false); err != nil {
		m.setError(err)
	}
}

func (m Model) startEditing() (Model, tea.Cmd) {
	row := m.selected
	if row == nil {
		return m, nil
	}
	if row.Kind != inspector.RowProperty {
		m.toggleSelected()
		return m, nil
	}

	b, ok := m.bindings[row]
	if !ok {
		return m, nil
	}

	if expr := b.expression(); expr != nil && expr.IsEditorVisible() {
		return m.beginInput(ModeExpression, expr.Expression())
	}

	switch e := b.editor.(type) {
	case editors.Toggler:
		if err := e.Toggle(); err != nil {
			m.setError(err)
		}
		return m, nil

	case editors.Chooser:
		e.Open()
		m.choice = e.Selected()
		if m.choice < 0 {
			m.choice = 0
		}
		m.mode = ModeChoice
		return m, nil

	case editors.TextEditor:
		return m.beginInput(ModeText, e.Text())
	}

	return m, nil
}

func (m Model) toggleExpression() (Model, tea.Cmd) {
	b, ok := m.bindings[m.selected]
	if !ok || b.expression() == nil {
		m.setStatus("No expression available for this property")
		return m, nil
	}

	expr := b.expression()
	if expr.IsEditorVisible() {
		if err := expr.Hide(); err != nil {
			m.setError(err)
		}
		return m, nil
	}
	return m.beginInput(ModeExpression, expr.Expression())
}

func (m Model) beginInput(mode Mode, value string) (Model, tea.Cmd) {
	m.mode = mode
	m.input.SetValue(value)
	m.input.CursorEnd()
	m.input.Prompt = ""
	if mode == ModeExpression {
		m.input.Placeholder = "expression"
	} else {
		m.input.Placeholder = ""
	}
	return m, m.input.Focus()
}

func (m Model) updateInput(msg tea.KeyMsg) (Model, tea.Cmd) {
	b := m.bindings[m.selected]

	switch {
	case key.Matches(msg, m.editKeys.Cancel):
		m.endInput()
		return m, nil

	case key.Matches(msg, m.editKeys.Confirm):
		value := m.input.Value()

		if m.mode == ModeExpression {
			if err := editors.ValidateExpression(value); err != nil {
				m.setError(err)
				return m, nil
			}
			if err := b.expression().SetExpression(value); err != nil {
				m.setError(err)
			}
			m.endInput()
			return m, nil
		}

		if te, ok := b.editor.(editors.TextEditor); ok {
			if err := te.SetText(value); err != nil {
				m.setError(err)
				return m, nil
			}
		}
		m.endInput()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) endInput() {
	m.mode = ModeBrowse
	m.input.Blur()
}

func (m Model) updateChoice(msg tea.KeyMsg) (Model, tea.Cmd) {
	chooser, ok := m.bindings[m.selected].editor.(editors.Chooser)
	if !ok {
		m.mode = ModeBrowse
		return m, nil
	}
	n := len(chooser.Choices())

	switch {
	case key.Matches(msg, m.editKeys.Up):
		if m.choice > 0 {
			m.choice--
		}
	case key.Matches(msg, m.editKeys.Down):
		if m.choice < n-1 {
			m.choice++
		}
	case key.Matches(msg, m.editKeys.Confirm):
		if err := chooser.Choose(m.choice); err != nil {
			m.setError(err)
		}
		m.mode = ModeBrowse
	case key.Matches(msg, m.editKeys.Cancel):
		chooser.Close()
		m.mode = ModeBrowse
	}
	return m, nil
}

// validate runs validation and moves the cursor to the failing property.
func (m *Model) validate() bool {
	if m.surface.Validate() {
		return true
	}

	for row, b := range m.bindings {
		focused := false
		if f, ok := b.external.(editors.Focuser); ok && f.TakeFocus() {
			focused = true
		}
		if f, ok := b.editor.(editors.Focuser); ok && f.TakeFocus() {
			focused = true
		}
		if focused && !row.Hidden {
			m.selected = row
		}
	}

	if m.selected != nil {
		m.setError(fmt.Errorf("%s is invalid", m.selected.Title))
	} else {
		m.setError(errors.New("validation failed"))
	}
	return false
}

func (m *Model) save() {
	if !m.validate() {
		return
	}
	if m.onSave == nil {
		m.setStatus("Nothing to save to")
		return
	}
	values := m.surface.Values()
	if err := m.onSave(values); err != nil {
		logging.Error("Failed to save values", zap.Error(err))
		m.setError(err)
		return
	}
	m.Saved = true
	m.savedValues = values
	m.setStatus("Saved")
}

// unsaved reports whether the sheet holds values the last save did not write.
func (m Model) unsaved() bool {
	if m.savedValues == nil {
		return m.surface.HasChanges()
	}
	return !inspector.SameValue(m.surface.Values(), m.savedValues)
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusErr = false
}

func (m *Model) setError(err error) {
	m.status = err.Error()
	m.statusErr = true
}

// move shifts the cursor by delta visible rows.
func (m *Model) move(delta int) {
	rows := m.surface.Container().Visible()
	if len(rows) == 0 {
		return
	}
	idx := indexOf(rows, m.selected) + delta
	if idx < 0 {
		idx = 0
	}
	if idx >= len(rows) {
		idx = len(rows) - 1
	}
	m.selected = rows[idx]
}

// ensureSelection moves the cursor off a row that became hidden, to the
// closest visible row above it.
func (m *Model) ensureSelection() {
	if m.selected != nil && !m.selected.Hidden && m.surface.Container().IndexOf(m.selected) >= 0 {
		return
	}

	all := m.surface.Container().Rows()
	pos := m.surface.Container().IndexOf(m.selected)
	for i := pos; i >= 0; i-- {
		if !all[i].Hidden {
			m.selected = all[i]
			return
		}
	}
	if visible := m.surface.Container().Visible(); len(visible) > 0 {
		m.selected = visible[0]
		return
	}
	m.selected = nil
}

// chromeHeight is the number of lines taken by the frame, header and footer.
const chromeHeight = 8

// syncViewport refreshes the scroll area and keeps the cursor row in view.
func (m *Model) syncViewport() {
	if m.Height <= 0 {
		return
	}
	height := m.Height - chromeHeight
	if height < 3 {
		height = 3
	}
	m.viewport.Width = m.Width - 4
	m.viewport.Height = height
	m.viewport.SetContent(m.renderContent())

	line := indexOf(m.surface.Container().Visible(), m.selected)
	switch {
	case line < m.viewport.YOffset:
		m.viewport.SetYOffset(line)
	case line >= m.viewport.YOffset+height:
		m.viewport.SetYOffset(line - height + 1)
	}
}

func indexOf(rows []*inspector.Row, row *inspector.Row) int {
	for i, r := range rows {
		if r == row {
			return i
		}
	}
	return 0
}

// View renders the editor
func (m Model) View() string {
	var footer string
	if m.mode == ModeBrowse {
		footer = m.help.View(m.keys)
	} else {
		footer = m.help.View(m.editKeys)
	}

	content := m.renderContent()
	if m.Height > 0 {
		content = m.viewport.View()
	}

	return RenderApplicationContainer(
		BuildHeaderContent(m.surface.InstanceID()),
		content,
		footer,
		m.Width,
		m.Height,
	)
}
