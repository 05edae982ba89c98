// Package ui provides the full-screen task browser.
package ui

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nibzard/todolist/internal/theme"
	"github.com/nibzard/todolist/internal/todo"
)

// Lines used by everything except the task rows.
const chromeLines = 10

// RunTUI starts the browser over store. It requires stdout to be a terminal.
func RunTUI(ctx context.Context, store *todo.Store, th *theme.Theme) error {
	if !theme.IsTTY(os.Stdout) {
		return fmt.Errorf("tui requires a TTY")
	}
	return runProgram(ctx, newTUIModel(store, th))
}

func runProgram(ctx context.Context, model *tuiModel) error {
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	finalModel, err := program.Run()
	if m, ok := finalModel.(*tuiModel); ok {
		if ferr := m.store.Flush(); ferr != nil && err == nil {
			err = ferr
		}
	}
	return err
}

type tuiModel struct {
	store    *todo.Store
	theme    *theme.Theme
	keys     keyMap
	help     help.Model
	rows     []row
	cursor   int
	offset   int
	height   int
	filter   todo.Status // Filter by status
	showHelp bool        // Show help screen
	message  string
}

// row is a visible task with the number the menu would show for it.
type row struct {
	number int
	entry  todo.Entry
}

func newTUIModel(store *todo.Store, th *theme.Theme) *tuiModel {
	if th == nil {
		th = theme.Plain()
	}
	m := &tuiModel{store: store, theme: th, keys: defaultKeyMap(), help: help.New()}
	m.refresh()
	return m
}

func (m *tuiModel) Init() tea.Cmd {
	return nil
}

func (m *tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = msg.Height
		m.help.Width = msg.Width
		m.clampCursor()
		return m, nil
	case tea.KeyMsg:
		m.message = ""
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			m.cursor--
			m.clampCursor()
		case key.Matches(msg, m.keys.Down):
			m.cursor++
			m.clampCursor()
		case key.Matches(msg, m.keys.Top):
			m.cursor = 0
			m.clampCursor()
		case key.Matches(msg, m.keys.Bottom):
			m.cursor = len(m.rows) - 1
			m.clampCursor()
		case key.Matches(msg, m.keys.Done):
			m.markDone()
		case key.Matches(msg, m.keys.Importance):
			m.cycleImportance()
		case key.Matches(msg, m.keys.Purge):
			n := m.store.PurgeDone()
			m.message = fmt.Sprintf("Removed %d done tasks.", n)
			m.refresh()
		case key.Matches(msg, m.keys.Reload):
			m.store.Reload()
			m.message = "Reloaded " + m.store.Path()
			m.refresh()
		case key.Matches(msg, m.keys.Help):
			m.showHelp = !m.showHelp
		case key.Matches(msg, m.keys.Pending):
			m.filter = todo.StatusPending
			m.refresh()
		case key.Matches(msg, m.keys.DoneOnly):
			m.filter = todo.StatusDone
			m.refresh()
		case key.Matches(msg, m.keys.AllTasks):
			m.filter = ""
			m.refresh()
		}
	}
	return m, nil
}

func (m *tuiModel) markDone() {
	r, ok := m.selected()
	if !ok {
		return
	}
	task, err := m.store.MarkDone(r.entry.Position)
	if err != nil {
		m.message = err.Error()
		return
	}
	m.message = fmt.Sprintf("Task '%s' marked as Done.", task.Description)
	m.refresh()
}

func (m *tuiModel) cycleImportance() {
	r, ok := m.selected()
	if !ok {
		return
	}
	task, err := m.store.SetImportance(r.entry.Position, r.entry.Task.Importance.Next())
	if err != nil {
		m.message = err.Error()
		return
	}
	m.message = fmt.Sprintf("Task '%s' importance changed to %s.", task.Description, task.Importance)
	m.refresh()
	m.follow(r.entry.Position)
}

func (m *tuiModel) selected() (row, bool) {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return row{}, false
	}
	return m.rows[m.cursor], true
}

// follow moves the cursor to the row holding store position pos.
func (m *tuiModel) follow(pos int) {
	for i, r := range m.rows {
		if r.entry.Position == pos {
			m.cursor = i
			break
		}
	}
	m.clampCursor()
}

// refresh rebuilds the visible rows from the store.
func (m *tuiModel) refresh() {
	m.rows = m.rows[:0]
	for i, e := range m.store.Sorted() {
		if m.filter != "" && e.Task.Status != m.filter {
			continue
		}
		m.rows = append(m.rows, row{number: i + 1, entry: e})
	}
	m.clampCursor()
}

func (m *tuiModel) clampCursor() {
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	visible := m.visibleRows()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+visible {
		m.offset = m.cursor - visible + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

func (m *tuiModel) visibleRows() int {
	if m.height <= 0 {
		return len(m.rows) + 1
	}
	if n := m.height - chromeLines; n > 0 {
		return n
	}
	return 1
}

func (m *tuiModel) View() string {
	var b strings.Builder
	writeTitle(&b, m.theme)

	// Show help screen if enabled
	if m.showHelp {
		b.WriteString("Keyboard Shortcuts\n\n")
		b.WriteString(m.help.FullHelpView(m.keys.FullHelp()) + "\n\n")
		b.WriteString(m.help.ShortHelpView(m.keys.ShortHelp()) + "\n")
		return b.String()
	}

	writeOverview(&b, m.theme, m.store)

	// Show filter indicator
	if m.filter != "" {
		b.WriteString(fmt.Sprintf("Filter: %s (0 to clear)\n\n", m.filter))
	}

	m.writeRows(&b)

	if m.message != "" {
		b.WriteString(m.theme.Success.Render(m.message) + "\n\n")
	}
	b.WriteString(m.help.ShortHelpView(m.keys.ShortHelp()) + "\n")
	return b.String()
}

func (m *tuiModel) writeRows(b *strings.Builder) {
	if len(m.rows) == 0 {
		if m.filter != "" {
			b.WriteString("  No matching tasks.\n\n")
		} else {
			b.WriteString("  " + m.theme.Warning.Render("Nothing to do yet. Tell me what you need to get done...") + "\n\n")
		}
		return
	}

	end := m.offset + m.visibleRows()
	if end > len(m.rows) {
		end = len(m.rows)
	}
	for i := m.offset; i < end; i++ {
		r := m.rows[i]
		line := fmt.Sprintf("%d. %s", r.number, m.theme.Task(r.entry.Task))
		if i == m.cursor {
			b.WriteString(m.theme.Cursor.Render(">") + " " + line + "\n")
			continue
		}
		b.WriteString("  " + line + "\n")
	}
	if hidden := len(m.rows) - (end - m.offset); hidden > 0 {
		b.WriteString(m.theme.Muted.Render(fmt.Sprintf("  (%d more)", hidden)) + "\n")
	}
	b.WriteString("\n")
}

func writeTitle(b *strings.Builder, th *theme.Theme) {
	title := "To-Do List"
	b.WriteString(th.Title.Render(title) + "\n")
	b.WriteString(strings.Repeat("=", len(title)) + "\n\n")
}

func writeOverview(b *strings.Builder, th *theme.Theme, store *todo.Store) {
	counts := todo.Counts(store.Tasks())
	b.WriteString(fmt.Sprintf("  %s: %d  %s: %d\n",
		th.Status(todo.StatusPending), counts[todo.StatusPending],
		th.Status(todo.StatusDone), counts[todo.StatusDone],
	))
	if n := len(store.Malformed()); n > 0 {
		b.WriteString(th.Warning.Render(fmt.Sprintf("  Skipped %d invalid lines in %s", n, store.Path())) + "\n")
	}
	b.WriteString("\n")
}
