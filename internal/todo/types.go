package todo

import (
	"fmt"
	"sort"
	"strings"
)

// Status represents a task status.
type Status string

const (
	StatusPending Status = "Pending"
	StatusDone    Status = "Done"
)

// ParseStatus parses a persisted status value.
func ParseStatus(s string) (Status, error) {
	switch Status(strings.TrimSpace(s)) {
	case StatusPending:
		return StatusPending, nil
	case StatusDone:
		return StatusDone, nil
	default:
		return "", fmt.Errorf("invalid status %q, must be one of: Pending, Done", s)
	}
}

// Importance represents the priority tier of a task.
type Importance string

const (
	ImportanceHigh   Importance = "High"
	ImportanceMedium Importance = "Medium"
	ImportanceLow    Importance = "Low"
)

// Importances lists the importance levels in menu order (choice 1, 2, 3).
var Importances = []Importance{ImportanceHigh, ImportanceMedium, ImportanceLow}

// ParseImportance parses a persisted importance value.
func ParseImportance(s string) (Importance, error) {
	switch Importance(strings.TrimSpace(s)) {
	case ImportanceHigh:
		return ImportanceHigh, nil
	case ImportanceMedium:
		return ImportanceMedium, nil
	case ImportanceLow:
		return ImportanceLow, nil
	default:
		return "", fmt.Errorf("invalid importance %q, must be one of: High, Medium, Low", s)
	}
}

// ImportanceFromChoice maps a menu choice ("1", "2" or "3") to an importance.
func ImportanceFromChoice(choice string) (Importance, bool) {
	switch strings.TrimSpace(choice) {
	case "1":
		return ImportanceHigh, true
	case "2":
		return ImportanceMedium, true
	case "3":
		return ImportanceLow, true
	}
	return "", false
}

// Rank orders importances for display. Higher ranks are shown first.
func (i Importance) Rank() int {
	switch i {
	case ImportanceHigh:
		return 3
	case ImportanceMedium:
		return 2
	case ImportanceLow:
		return 1
	}
	return 0
}

// Next returns the following importance in High, Medium, Low order, wrapping
// around after Low.
func (i Importance) Next() Importance {
	switch i {
	case ImportanceHigh:
		return ImportanceMedium
	case ImportanceMedium:
		return ImportanceLow
	default:
		return ImportanceHigh
	}
}

// Task represents a single task in the todo list.
type Task struct {
	Description string
	Status      Status
	Importance  Importance
}

// NewTask returns a pending task after validating its description.
func NewTask(description string, importance Importance) (Task, error) {
	if err := ValidateDescription(description); err != nil {
		return Task{}, err
	}
	if importance.Rank() == 0 {
		return Task{}, fmt.Errorf("invalid importance %q", importance)
	}
	return Task{
		Description: description,
		Status:      StatusPending,
		Importance:  importance,
	}, nil
}

// IsDone reports whether the task is complete.
func (t Task) IsDone() bool {
	return t.Status == StatusDone
}

// Entry is a task paired with its 1-based position in insertion order.
type Entry struct {
	Position int
	Task     Task
}

// Sorted returns the tasks in display order: importance descending, ties
// kept in insertion order. The input slice is not modified.
func Sorted(tasks []Task) []Entry {
	entries := make([]Entry, len(tasks))
	for i, t := range tasks {
		entries[i] = Entry{Position: i + 1, Task: t}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Task.Importance.Rank() > entries[j].Task.Importance.Rank()
	})
	return entries
}

// Counts tallies tasks by status.
func Counts(tasks []Task) map[Status]int {
	counts := map[Status]int{
		StatusPending: 0,
		StatusDone:    0,
	}
	for _, t := range tasks {
		counts[t.Status]++
	}
	return counts
}
