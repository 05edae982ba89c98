package menu

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/nibzard/todolist/internal/todo"
)

const emptyMessage = "Nothing to do yet. Tell me what you need to get done..."

func (m *Menu) addTask(ctx context.Context) error {
	description, err := m.prompt(ctx, "Enter the task to add: ")
	if err != nil {
		return err
	}
	if err := todo.ValidateDescription(description); err != nil {
		m.logger.Debug("Rejected task description", "description", description, "err", err)
		m.println(m.theme.Error.Render("Invalid task name. Please use only valid characters."))
		return nil
	}

	importance, err := m.chooseImportance(ctx, "\nChoose the importance level:")
	if err != nil {
		return err
	}

	task, err := m.store.Add(description, importance)
	if err != nil {
		m.println(m.theme.Error.Render("Invalid task name. Please use only valid characters."))
		return nil
	}
	m.println(m.theme.Success.Render(fmt.Sprintf("Task '%s' added successfully!", task.Description)))
	return nil
}

func (m *Menu) viewTasks() {
	entries := m.store.Sorted()
	if len(entries) == 0 {
		m.println(m.theme.Warning.Render(emptyMessage))
		return
	}
	m.println("\nYour Tasks:")
	for i, e := range entries {
		m.println(fmt.Sprintf("%d. %s", i+1, m.theme.Task(e.Task)))
	}
}

func (m *Menu) deleteTask(ctx context.Context) error {
	answer, err := m.prompt(ctx, "Enter the task number to delete or type 'ALL' to delete all tasks: ")
	if err != nil {
		return err
	}

	if answer == "ALL" {
		confirm, err := m.prompt(ctx, "Are you sure you want to delete all tasks? This action cannot be undone (yes/no): ")
		if err != nil {
			return err
		}
		if strings.ToLower(confirm) != "yes" {
			m.println(m.theme.Warning.Render("Action cancelled. No tasks were deleted."))
			return nil
		}
		n := m.store.DeleteAll()
		m.logger.Debug("Deleted all tasks", "count", n)
		m.println(m.theme.Error.Render("All tasks have been deleted."))
		return nil
	}

	number, err := strconv.Atoi(strings.TrimSpace(answer))
	if err != nil {
		m.println(m.theme.Error.Render("Invalid input. Please enter a valid task number or 'ALL' to delete all tasks."))
		return nil
	}
	pos, ok := m.position(number)
	if !ok {
		m.println(m.theme.Error.Render("No task exists with that number."))
		return nil
	}
	task, err := m.store.Delete(pos)
	if err != nil {
		m.println(m.theme.Error.Render("No task exists with that number."))
		return nil
	}
	m.println(m.theme.Error.Render(fmt.Sprintf("Task '%s' deleted successfully!", task.Description)))
	return nil
}

func (m *Menu) markDone(ctx context.Context) error {
	if m.store.Len() == 0 {
		m.println(m.theme.Warning.Render(emptyMessage))
		return nil
	}
	pos, err := m.chooseTask(ctx)
	if err != nil {
		return err
	}
	task, err := m.store.MarkDone(pos)
	if err != nil {
		return nil
	}
	m.println(m.theme.Success.Render(fmt.Sprintf("Task '%s' marked as Done.", task.Description)))
	return nil
}

func (m *Menu) changeImportance(ctx context.Context) error {
	if m.store.Len() == 0 {
		m.println(m.theme.Warning.Render(emptyMessage))
		return nil
	}
	pos, err := m.chooseTask(ctx)
	if err != nil {
		return err
	}
	importance, err := m.chooseImportance(ctx, "\nChoose the new importance level:")
	if err != nil {
		return err
	}
	task, err := m.store.SetImportance(pos, importance)
	if err != nil {
		return nil
	}
	m.println(m.theme.Success.Render(fmt.Sprintf("Task '%s' importance changed to %s.", task.Description, task.Importance)))
	return nil
}

func (m *Menu) removeDoneTasks() {
	n := m.store.PurgeDone()
	m.logger.Debug("Removed done tasks", "count", n)
	m.println(m.theme.Success.Render("All done tasks have been removed."))
}

// chooseTask prompts until the user enters a number shown by the task view
// and returns the matching store position.
func (m *Menu) chooseTask(ctx context.Context) (int, error) {
	for {
		text, err := m.prompt(ctx, "Enter the task number: ")
		if err != nil {
			return 0, err
		}
		number, err := strconv.Atoi(strings.TrimSpace(text))
		if err != nil {
			m.println(m.theme.Error.Render("Invalid input. Please enter a valid number."))
			continue
		}
		if pos, ok := m.position(number); ok {
			return pos, nil
		}
		m.println(m.theme.Error.Render("Task number out of range. Please enter a valid number."))
	}
}

// chooseImportance shows the importance levels and prompts until one of
// them is picked.
func (m *Menu) chooseImportance(ctx context.Context, header string) (todo.Importance, error) {
	m.println(header)
	for i, imp := range todo.Importances {
		m.println(fmt.Sprintf("%d. %s", i+1, imp))
	}
	text, err := m.prompt(ctx, "Enter the number corresponding to importance: ")
	for {
		if err != nil {
			return "", err
		}
		if importance, ok := todo.ImportanceFromChoice(text); ok {
			return importance, nil
		}
		text, err = m.prompt(ctx, "Please enter a valid number (1 for High, 2 for Medium, 3 for Low): ")
	}
}

// position maps a display number to a store position.
func (m *Menu) position(number int) (int, bool) {
	entries := m.store.Sorted()
	if number < 1 || number > len(entries) {
		return 0, false
	}
	return entries[number-1].Position, true
}
