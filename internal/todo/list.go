package todo

import "fmt"

// List is the ordered task sequence. Positions are 1-based and follow
// insertion order.
type List struct {
	Tasks []Task
}

// Len returns the number of tasks.
func (l *List) Len() int {
	return len(l.Tasks)
}

// Get returns the task at position n.
func (l *List) Get(n int) (Task, error) {
	if err := l.checkPosition(n); err != nil {
		return Task{}, err
	}
	return l.Tasks[n-1], nil
}

// AddTask appends a task to the end of the list.
func (l *List) AddTask(task Task) {
	l.Tasks = append(l.Tasks, task)
}

// DeleteTask removes the task at position n and returns it.
func (l *List) DeleteTask(n int) (Task, error) {
	if err := l.checkPosition(n); err != nil {
		return Task{}, err
	}
	removed := l.Tasks[n-1]
	l.Tasks = append(l.Tasks[:n-1], l.Tasks[n:]...)
	return removed, nil
}

// Clear removes every task and returns how many were removed.
func (l *List) Clear() int {
	n := len(l.Tasks)
	l.Tasks = nil
	return n
}

// SetTaskStatus updates the status of the task at position n.
func (l *List) SetTaskStatus(n int, status Status) (Task, error) {
	return l.UpdateTask(n, func(t *Task) {
		t.Status = status
	})
}

// SetTaskImportance updates the importance of the task at position n.
func (l *List) SetTaskImportance(n int, importance Importance) (Task, error) {
	if importance.Rank() == 0 {
		return Task{}, fmt.Errorf("invalid importance %q", importance)
	}
	return l.UpdateTask(n, func(t *Task) {
		t.Importance = importance
	})
}

// UpdateTask applies updater to the task at position n and returns the
// updated task.
func (l *List) UpdateTask(n int, updater func(*Task)) (Task, error) {
	if err := l.checkPosition(n); err != nil {
		return Task{}, err
	}
	updater(&l.Tasks[n-1])
	return l.Tasks[n-1], nil
}

// PurgeDone removes every done task, keeping the order of the rest, and
// returns how many were removed.
func (l *List) PurgeDone() int {
	kept := l.Tasks[:0]
	for _, t := range l.Tasks {
		if !t.IsDone() {
			kept = append(kept, t)
		}
	}
	removed := len(l.Tasks) - len(kept)
	// Zero the tail so dropped tasks are not retained by the backing array.
	for i := len(kept); i < len(l.Tasks); i++ {
		l.Tasks[i] = Task{}
	}
	l.Tasks = kept
	return removed
}

func (l *List) checkPosition(n int) error {
	if n < 1 || n > len(l.Tasks) {
		return fmt.Errorf("%w: %d (have %d tasks)", ErrOutOfRange, n, len(l.Tasks))
	}
	return nil
}
