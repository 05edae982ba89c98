// Package menu implements the interactive numbered menu over a task store.
//
// The menu reads one line per prompt from its input. End of input or a
// cancelled context ends the session after the store has been flushed.
package menu

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/nibzard/todolist/internal/logging"
	"github.com/nibzard/todolist/internal/theme"
	"github.com/nibzard/todolist/internal/todo"
)

// Menu choices.
const (
	ChoiceAdd = iota + 1
	ChoiceView
	ChoiceDelete
	ChoiceMarkDone
	ChoiceChangeImportance
	ChoicePurgeDone
	ChoiceQuit
)

var menuItems = []string{
	"Add Task",
	"View Tasks",
	"Delete Task",
	"Mark Task as Done",
	"Change Task Importance",
	"Remove All Done Tasks",
	"Quit",
}

// Menu is one interactive session.
type Menu struct {
	in     io.Reader
	out    io.Writer
	store  *todo.Store
	theme  *theme.Theme
	logger *log.Logger

	lines <-chan line
	done  chan struct{}
}

// Option configures a Menu.
type Option func(*Menu)

// WithTheme sets the styles used for output.
func WithTheme(t *theme.Theme) Option {
	return func(m *Menu) {
		if t != nil {
			m.theme = t
		}
	}
}

// WithLogger sets the logger for session diagnostics.
func WithLogger(logger *log.Logger) Option {
	return func(m *Menu) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// New creates a menu reading from in and writing to out.
func New(in io.Reader, out io.Writer, store *todo.Store, opts ...Option) *Menu {
	m := &Menu{
		in:     in,
		out:    out,
		store:  store,
		theme:  theme.Plain(),
		logger: logging.Discard(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Run shows the task list, then loops over the menu until the user quits,
// input ends or ctx is cancelled. It returns ctx.Err() when cancelled and
// nil otherwise. Storage and input failures are reported through the
// logger only.
func (m *Menu) Run(ctx context.Context) error {
	m.done = make(chan struct{})
	m.lines = readLines(m.in, m.done)
	defer close(m.done)

	m.logger.Debug("Session started", "path", m.store.Path(), "tasks", m.store.Len())
	m.viewTasks()

	err := m.loop(ctx)
	if ferr := m.store.Flush(); ferr != nil {
		m.logger.Error("Error saving tasks", "path", m.store.Path(), "err", ferr)
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if err != nil && !errors.Is(err, io.EOF) {
		m.logger.Error("Error reading input", "err", err)
	}
	m.println(m.theme.Goodbye.Render("Goodbye!"))
	return nil
}

func (m *Menu) loop(ctx context.Context) error {
	for {
		m.displayMenu()
		text, err := m.prompt(ctx, "Choose an option (1-7): ")
		if err != nil {
			return err
		}

		choice, err := strconv.Atoi(strings.TrimSpace(text))
		if err != nil {
			m.println(m.theme.Error.Render("Invalid input. Please enter a number between 1 and 7."))
			continue
		}

		switch choice {
		case ChoiceAdd:
			err = m.addTask(ctx)
		case ChoiceView:
			m.viewTasks()
		case ChoiceDelete:
			err = m.deleteTask(ctx)
		case ChoiceMarkDone:
			err = m.markDone(ctx)
		case ChoiceChangeImportance:
			err = m.changeImportance(ctx)
		case ChoicePurgeDone:
			m.removeDoneTasks()
		case ChoiceQuit:
			return nil
		default:
			m.println(m.theme.Error.Render("Invalid choice. Please select a valid option."))
		}
		if err != nil {
			return err
		}
	}
}

func (m *Menu) displayMenu() {
	m.println("\nWelcome to the To-Do List Application!")
	for i, item := range menuItems {
		m.println(fmt.Sprintf("%d. %s", i+1, item))
	}
}

// prompt writes text and waits for the next input line.
func (m *Menu) prompt(ctx context.Context, text string) (string, error) {
	fmt.Fprint(m.out, text)
	if err := ctx.Err(); err != nil {
		return "", err
	}
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case l, ok := <-m.lines:
		if !ok {
			return "", io.EOF
		}
		if l.err != nil {
			return "", l.err
		}
		return l.text, nil
	}
}

func (m *Menu) println(s string) {
	fmt.Fprintln(m.out, s)
}

type line struct {
	text string
	err  error
}

// readLines feeds input lines to the returned channel until the input ends
// or done is closed. A read error is delivered as the last item.
func readLines(r io.Reader, done <-chan struct{}) <-chan line {
	ch := make(chan line)
	go func() {
		defer close(ch)
		scanner := bufio.NewScanner(r)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for scanner.Scan() {
			select {
			case ch <- line{text: scanner.Text()}:
			case <-done:
				return
			}
		}
		if err := scanner.Err(); err != nil {
			select {
			case ch <- line{err: err}:
			case <-done:
			}
		}
	}()
	return ch
}
