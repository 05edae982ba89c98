package todo

import (
	"github.com/charmbracelet/log"

	"github.com/nibzard/todolist/internal/logging"
)

// Store owns the task list for a session and keeps the task file in sync
// with it. Every mutating method rewrites the file. Save failures are logged
// and leave the store dirty, so the next save or Flush retries.
type Store struct {
	path      string
	opts      SaveOptions
	logger    *log.Logger
	list      List
	malformed []*LineError
	dirty     bool
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithLogger sets the logger used for load and save diagnostics.
func WithLogger(logger *log.Logger) StoreOption {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithFsync enables or disables fsync before the task file is replaced.
func WithFsync(enabled bool) StoreOption {
	return func(s *Store) {
		s.opts.Fsync = enabled
	}
}

// Open loads the task file at path into a new store. Load failures never
// surface here: the store starts empty and the problem is logged.
func Open(path string, opts ...StoreOption) *Store {
	s := &Store{
		path:   path,
		opts:   SaveOptions{Fsync: true},
		logger: logging.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Reload()
	return s
}

// Reload discards the in-memory list and reads the task file again.
func (s *Store) Reload() {
	tasks, malformed, err := Load(s.path)
	s.malformed = malformed
	for _, le := range malformed {
		s.logger.Warn("Skipping invalid task entry", "path", s.path, "line", le.Line, "entry", le.Text, "err", le.Err)
	}
	if err != nil {
		s.logger.Error("Error loading tasks", "path", s.path, "err", err)
		tasks = nil
	}
	s.list = List{Tasks: tasks}
	s.dirty = false
}

// Path returns the task file path.
func (s *Store) Path() string {
	return s.path
}

// Malformed returns the lines skipped by the most recent load.
func (s *Store) Malformed() []*LineError {
	return s.malformed
}

// Len returns the number of tasks.
func (s *Store) Len() int {
	return s.list.Len()
}

// Tasks returns a copy of the tasks in insertion order.
func (s *Store) Tasks() []Task {
	out := make([]Task, len(s.list.Tasks))
	copy(out, s.list.Tasks)
	return out
}

// Sorted returns the tasks in display order.
func (s *Store) Sorted() []Entry {
	return Sorted(s.list.Tasks)
}

// Get returns the task at 1-based position n.
func (s *Store) Get(n int) (Task, error) {
	return s.list.Get(n)
}

// Add validates description and appends a pending task.
func (s *Store) Add(description string, importance Importance) (Task, error) {
	task, err := NewTask(description, importance)
	if err != nil {
		return Task{}, err
	}
	s.list.AddTask(task)
	s.persist()
	return task, nil
}

// Delete removes the task at position n.
func (s *Store) Delete(n int) (Task, error) {
	task, err := s.list.DeleteTask(n)
	if err != nil {
		return Task{}, err
	}
	s.persist()
	return task, nil
}

// DeleteAll removes every task and returns how many were removed.
func (s *Store) DeleteAll() int {
	n := s.list.Clear()
	s.persist()
	return n
}

// MarkDone sets the task at position n to done.
func (s *Store) MarkDone(n int) (Task, error) {
	task, err := s.list.SetTaskStatus(n, StatusDone)
	if err != nil {
		return Task{}, err
	}
	s.persist()
	return task, nil
}

// SetImportance changes the importance of the task at position n.
func (s *Store) SetImportance(n int, importance Importance) (Task, error) {
	task, err := s.list.SetTaskImportance(n, importance)
	if err != nil {
		return Task{}, err
	}
	s.persist()
	return task, nil
}

// PurgeDone removes every done task and returns how many were removed.
// The file is only rewritten when something was removed.
func (s *Store) PurgeDone() int {
	n := s.list.PurgeDone()
	if n > 0 {
		s.persist()
	}
	return n
}

// Dirty reports whether the in-memory list has changes that failed to save.
func (s *Store) Dirty() bool {
	return s.dirty
}

// Save writes the full list to the task file.
func (s *Store) Save() error {
	if err := Save(s.path, s.list.Tasks, s.opts); err != nil {
		s.dirty = true
		return err
	}
	s.dirty = false
	return nil
}

// Flush saves the list if an earlier save failed.
func (s *Store) Flush() error {
	if !s.dirty {
		return nil
	}
	return s.Save()
}

func (s *Store) persist() {
	if err := s.Save(); err != nil {
		s.logger.Error("Error saving tasks", "path", s.path, "err", err)
	}
}
