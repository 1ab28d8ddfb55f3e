package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/muurk/propsheet/internal/editors"
	"github.com/muurk/propsheet/internal/inspector"
	"github.com/muurk/propsheet/internal/schema"
)

var (
	keyUp    = tea.KeyMsg{Type: tea.KeyUp}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
	keySpace = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func panelSchema() []schema.Property {
	return []schema.Property{
		{ItemType: schema.ItemGroup, GroupIndex: "1", Title: "Appearance"},
		{Property: "title", Type: "string", Description: "Shown above the panel"},
		{Property: "width", Type: "number", ShowExternalParam: true},
		{ItemType: schema.ItemGroup, GroupIndex: "2", Title: "Behavior"},
		{Property: "enabled", Type: "boolean"},
		{Property: "mode", Type: "select", Options: []schema.Option{
			{Label: "Fast", Value: "fast"},
			{Label: "Safe", Value: "safe"},
		}},
	}
}

func newTestSurface(t *testing.T, defs []schema.Property, values map[string]any, opts inspector.Options) *inspector.Surface {
	t.Helper()
	opts.Registry = editors.NewRegistry()
	opts.EnableExternalParameterEditor = true
	s, err := inspector.New(nil, defs, values, "panel", opts)
	if err != nil {
		t.Fatalf("inspector.New() error = %v", err)
	}
	t.Cleanup(s.Dispose)
	return s
}

func newTestModel(t *testing.T, values map[string]any) Model {
	t.Helper()
	return NewModel(Config{Surface: newTestSurface(t, panelSchema(), values, inspector.Options{})})
}

// press feeds keys to the model and returns the final state and command.
func press(m Model, keys ...tea.KeyMsg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	for _, k := range keys {
		var next tea.Model
		next, cmd = m.Update(k)
		m = next.(Model)
	}
	return m, cmd
}

// collect runs a command and flattens batches into their messages.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

func isQuit(cmd tea.Cmd) bool {
	for _, msg := range collect(cmd) {
		if _, ok := msg.(tea.QuitMsg); ok {
			return true
		}
	}
	return false
}

// TestNavigation tests cursor movement over visible rows
func TestNavigation(t *testing.T) {
	m := newTestModel(t, nil)

	if got := m.Selected().Title; got != "Appearance" {
		t.Fatalf("initial selection = %q, want Appearance", got)
	}

	tests := []struct {
		name string
		keys []tea.KeyMsg
		want string
	}{
		{name: "down", keys: []tea.KeyMsg{keyDown}, want: "title"},
		{name: "vim down", keys: []tea.KeyMsg{runes("j"), runes("j")}, want: "width"},
		{name: "up at top", keys: []tea.KeyMsg{keyUp, keyUp}, want: "Appearance"},
		{name: "past end", keys: []tea.KeyMsg{keyDown, keyDown, keyDown, keyDown, keyDown, keyDown, keyDown}, want: "mode"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := press(m, tt.keys...)
			if got.Selected().Title != tt.want {
				t.Errorf("selection = %q, want %q", got.Selected().Title, tt.want)
			}
		})
	}
}

// TestToggleGroup tests collapsing a group from its header row
func TestToggleGroup(t *testing.T) {
	m := newTestModel(t, nil)

	m, _ = press(m, keySpace)
	if !m.surface.Row("title").Hidden || !m.surface.Row("width").Hidden {
		t.Fatal("group rows still visible after collapse")
	}

	m, _ = press(m, keyDown)
	if got := m.Selected().Title; got != "Behavior" {
		t.Errorf("selection after collapse = %q, want Behavior", got)
	}

	// Enter on a header toggles too.
	m, _ = press(m, keyUp, keyEnter)
	if m.surface.Row("title").Hidden {
		t.Error("group rows hidden after expand")
	}
}

// TestAnimatedToggle tests that expand/collapse steps arrive as messages
func TestAnimatedToggle(t *testing.T) {
	sched := NewScheduler()
	s := newTestSurface(t, panelSchema(), nil, inspector.Options{
		Scheduler:       sched,
		AnimationBudget: 20 * time.Millisecond,
	})
	m := NewModel(Config{Surface: s, Scheduler: sched})

	m, cmd := press(m, keySpace)
	if cmd == nil {
		t.Fatal("collapse returned no command")
	}
	if s.Row("title").Hidden {
		t.Fatal("row hidden before the first step ran")
	}

	steps := 0
	for cmd != nil {
		next := collect(cmd)
		cmd = nil
		for _, msg := range next {
			if _, ok := msg.(animationStepMsg); !ok {
				continue
			}
			steps++
			var updated tea.Model
			updated, cmd = m.Update(msg)
			m = updated.(Model)
		}
	}

	if steps != 2 {
		t.Errorf("steps = %d, want 2", steps)
	}
	if !s.Row("title").Hidden || !s.Row("width").Hidden {
		t.Error("rows visible after animation finished")
	}
	if s.Groups().IsGroupExpanded(m.Selected().GroupID) {
		t.Error("group state not committed after animation")
	}
}

// TestEditText tests the inline text editor
func TestEditText(t *testing.T) {
	m := newTestModel(t, nil)

	m, _ = press(m, keyDown, keyEnter)
	if m.Mode() != ModeText {
		t.Fatalf("mode = %v, want ModeText", m.Mode())
	}

	m, _ = press(m, runes("Dash"), keyEnter)
	if m.Mode() != ModeBrowse {
		t.Errorf("mode after confirm = %v, want ModeBrowse", m.Mode())
	}
	if got := m.surface.Values()["title"]; got != "Dash" {
		t.Errorf("title = %v, want Dash", got)
	}
	if !m.surface.Row("title").Changed {
		t.Error("row not marked changed")
	}

	// Escape discards the edit.
	m, _ = press(m, keyEnter, runes("board"), keyEsc)
	if got := m.surface.Values()["title"]; got != "Dash" {
		t.Errorf("title after cancel = %v, want Dash", got)
	}
}

// TestEditNumberRejectsText tests that a bad number keeps the editor open
func TestEditNumberRejectsText(t *testing.T) {
	m := newTestModel(t, nil)

	m, _ = press(m, keyDown, keyDown, keyEnter, runes("wide"), keyEnter)
	if m.Mode() != ModeText {
		t.Errorf("mode = %v, want ModeText after parse error", m.Mode())
	}
	if m.Status() == "" {
		t.Error("no status message for parse error")
	}
	if !m.statusErr {
		t.Error("status not flagged as an error")
	}
}

// TestToggleBoolean tests enter on a boolean property
func TestToggleBoolean(t *testing.T) {
	m := newTestModel(t, nil)

	m, _ = press(m, keyDown, keyDown, keyDown, keyDown, keyEnter)
	if got := m.surface.Values()["enabled"]; got != true {
		t.Errorf("enabled = %v, want true", got)
	}
}

// TestChooseOption tests the select list
func TestChooseOption(t *testing.T) {
	m := newTestModel(t, nil)

	m, _ = press(m, keyDown, keyDown, keyDown, keyDown, keyDown, keyEnter)
	if m.Mode() != ModeChoice {
		t.Fatalf("mode = %v, want ModeChoice", m.Mode())
	}
	if m.surface.OpenPopups() != 1 {
		t.Errorf("OpenPopups() = %d, want 1", m.surface.OpenPopups())
	}
	if !strings.Contains(m.View(), "Safe") {
		t.Error("options not rendered")
	}

	m, _ = press(m, keyDown, keyEnter)
	if got := m.surface.Values()["mode"]; got != "safe" {
		t.Errorf("mode = %v, want safe", got)
	}
	if m.surface.OpenPopups() != 0 {
		t.Errorf("OpenPopups() = %d after choose, want 0", m.surface.OpenPopups())
	}

	m, _ = press(m, keyEnter, keyEsc)
	if m.Mode() != ModeBrowse || m.surface.OpenPopups() != 0 {
		t.Error("escape did not close the list")
	}
}

// TestExpression tests switching a property to an expression and back
func TestExpression(t *testing.T) {
	m := newTestModel(t, map[string]any{"width": 10})

	m, _ = press(m, keyDown, keyDown, runes("x"))
	if m.Mode() != ModeExpression {
		t.Fatalf("mode = %v, want ModeExpression", m.Mode())
	}

	m, _ = press(m, runes("var.width * 2"), keyEnter)
	want := inspector.ExternalValue("var.width * 2")
	if got := m.surface.Values()["width"]; got != want {
		t.Errorf("width = %v, want %v", got, want)
	}
	if !strings.Contains(m.View(), MarkerExternal) {
		t.Error("expression marker not rendered")
	}

	// Hiding clears the expression, so the property falls back to its default.
	m, _ = press(m, runes("x"))
	if got, ok := m.surface.Values()["width"]; ok {
		t.Errorf("width after hiding expression = %v, want unset", got)
	}
}

// TestExpressionRejectsBadSyntax tests that a malformed expression is not stored
func TestExpressionRejectsBadSyntax(t *testing.T) {
	m := newTestModel(t, nil)

	m, _ = press(m, keyDown, keyDown, runes("x"), runes("1 +"), keyEnter)
	if m.Mode() != ModeExpression {
		t.Errorf("mode = %v, want ModeExpression", m.Mode())
	}
	if _, ok := inspector.ParseExternalValue(m.surface.Values()["width"]); ok {
		t.Error("malformed expression was stored")
	}
}

// TestValidateFocusesInvalidRow tests that validation moves the cursor
func TestValidateFocusesInvalidRow(t *testing.T) {
	defs := panelSchema()
	defs[1].Required = true
	s := newTestSurface(t, defs, nil, inspector.Options{})
	m := NewModel(Config{Surface: s})

	// Collapse the group so validation has to reveal it.
	m, _ = press(m, keySpace, keyDown, keyDown, runes("v"))
	if got := m.Selected().Property; got != "title" {
		t.Errorf("selection = %q, want title", got)
	}
	if s.Row("title").Hidden {
		t.Error("invalid row still hidden")
	}
	if !m.statusErr {
		t.Error("status not flagged as an error")
	}
}

// TestSave tests saving through the callback
func TestSave(t *testing.T) {
	tests := []struct {
		name      string
		saveErr   error
		wantSaved bool
	}{
		{name: "success", wantSaved: true},
		{name: "write fails", saveErr: errors.New("disk full")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var saved map[string]any
			s := newTestSurface(t, panelSchema(), map[string]any{"title": "Old"}, inspector.Options{})
			m := NewModel(Config{Surface: s, OnSave: func(v map[string]any) error {
				saved = v
				return tt.saveErr
			}})

			m, _ = press(m, keyDown, keyEnter, runes("!"), keyEnter, runes("s"))
			if m.Saved != tt.wantSaved {
				t.Errorf("Saved = %v, want %v", m.Saved, tt.wantSaved)
			}
			if saved["title"] != "Old!" {
				t.Errorf("saved title = %v, want Old!", saved["title"])
			}
			if tt.saveErr != nil && m.Status() != tt.saveErr.Error() {
				t.Errorf("status = %q, want %q", m.Status(), tt.saveErr.Error())
			}
		})
	}
}

// TestQuitConfirmsUnsavedChanges tests the second-press quit
func TestQuitConfirmsUnsavedChanges(t *testing.T) {
	m := newTestModel(t, nil)

	if _, cmd := press(m, runes("q")); !isQuit(cmd) {
		t.Fatal("q without changes did not quit")
	}

	m, _ = press(m, keyDown, keyDown, keyDown, keyDown, keyEnter)
	m, cmd := press(m, runes("q"))
	if isQuit(cmd) {
		t.Fatal("q with unsaved changes quit immediately")
	}

	// Any other key resets the confirmation.
	m, _ = press(m, keyUp)
	if _, cmd = press(m, runes("q")); isQuit(cmd) {
		t.Error("q after another key quit immediately")
	}

	if _, cmd = press(m, runes("q"), runes("q")); !isQuit(cmd) {
		t.Error("second q did not quit")
	}
}

// TestQuitAfterSave tests that only edits made since the last save ask for
// confirmation
func TestQuitAfterSave(t *testing.T) {
	s := newTestSurface(t, panelSchema(), map[string]any{"title": "Old"}, inspector.Options{})
	m := NewModel(Config{Surface: s, OnSave: func(map[string]any) error { return nil }})

	m, _ = press(m, keyDown, keyEnter, runes("!"), keyEnter, runes("s"))
	if !m.Saved {
		t.Fatalf("Saved = false, status %q", m.Status())
	}
	if _, cmd := press(m, runes("q")); !isQuit(cmd) {
		t.Error("q right after saving did not quit")
	}

	m, _ = press(m, keyEnter, runes("?"), keyEnter)
	if got := s.Values()["title"]; got != "Old!?" {
		t.Fatalf("title = %v, want Old!?", got)
	}
	if _, cmd := press(m, runes("q")); isQuit(cmd) {
		t.Error("q quit with edits made after the save")
	}

	m, _ = press(m, runes("s"))
	if _, cmd := press(m, runes("q")); !isQuit(cmd) {
		t.Error("q after saving again did not quit")
	}
}

// TestView tests the rendered screen
func TestView(t *testing.T) {
	m := newTestModel(t, map[string]any{"title": "Dash"})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 30})
	m = next.(Model)

	view := m.View()
	for _, want := range []string{AppName, "panel", "Appearance", MarkerExpanded, "Dash", MarkerCursor, "quit"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}

	m, _ = press(m, keyDown)
	if !strings.Contains(m.View(), "Shown above the panel") {
		t.Error("description of the selected row not rendered")
	}
}

// TestRender tests the static rendering used by the show command
func TestRender(t *testing.T) {
	s := newTestSurface(t, panelSchema(), map[string]any{"enabled": true, "mode": "fast"}, inspector.Options{})
	if err := s.ToggleGroup(s.Row("enabled").ParentGroupID, false); err != nil {
		t.Fatalf("ToggleGroup() error = %v", err)
	}

	out := Render(s, 0)
	for _, want := range []string{"Appearance", "Behavior", MarkerCollapsed, "title"} {
		if !strings.Contains(out, want) {
			t.Errorf("Render() missing %q", want)
		}
	}
	if strings.Contains(out, "enabled") {
		t.Error("Render() shows rows of a collapsed group")
	}
	if strings.Contains(out, MarkerCursor) {
		t.Error("Render() draws a cursor")
	}
}

// TestSchedulerDrains tests that queued steps are handed over once
func TestSchedulerDrains(t *testing.T) {
	s := NewScheduler()
	if s.Cmd() != nil {
		t.Error("empty scheduler returned a command")
	}

	ran := 0
	s.After(0, func() { ran++ })
	if s.Pending() != 1 {
		t.Fatalf("Pending() = %d, want 1", s.Pending())
	}

	msgs := collect(s.Cmd())
	if s.Pending() != 0 {
		t.Errorf("Pending() = %d after Cmd, want 0", s.Pending())
	}
	if len(msgs) != 1 {
		t.Fatalf("got %d messages, want 1", len(msgs))
	}
	msgs[0].(animationStepMsg).fn()
	if ran != 1 {
		t.Errorf("ran = %d, want 1", ran)
	}
}
