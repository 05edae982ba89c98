package cmd

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nibzard/todolist/internal/config"
	"github.com/nibzard/todolist/internal/theme"
	"github.com/nibzard/todolist/internal/todo"
)

// taskPath returns the task file to use: the single positional argument if
// given, the configured file otherwise.
func taskPath(cfg *config.Config, args []string) (string, error) {
	if len(args) > 1 {
		return "", fmt.Errorf("unexpected arguments: %v", args[1:])
	}
	path := cfg.TaskFile
	if len(args) == 1 {
		path = args[0]
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(cfg.WorkDir, path)
	}
	return path, nil
}

// listCommand prints the tasks once, in display order.
func (a *app) listCommand(args []string) error {
	fs := flag.NewFlagSet("todolist list", flag.ContinueOnError)
	fs.SetOutput(a.stdio.Err)
	statusFilter := fs.String("status", "", "Only show tasks with this status (pending|done)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var filter todo.Status
	if *statusFilter != "" {
		s, err := parseStatusFilter(*statusFilter)
		if err != nil {
			return err
		}
		filter = s
	}

	path, err := taskPath(a.cfg, fs.Args())
	if err != nil {
		return err
	}
	tasks, err := a.readTasks(path)
	if err != nil {
		return err
	}
	th := theme.New(a.stdio.Out, a.cfg.Color)

	entries := todo.Sorted(tasks)
	if len(entries) == 0 {
		fmt.Fprintln(a.stdio.Out, th.Warning.Render("Nothing to do yet. Tell me what you need to get done..."))
		return nil
	}

	// Numbers stay those of the unfiltered view, so they match the menu.
	var lines []string
	for i, e := range entries {
		if filter != "" && e.Task.Status != filter {
			continue
		}
		lines = append(lines, fmt.Sprintf("%d. %s", i+1, th.Task(e.Task)))
	}
	if len(lines) == 0 {
		fmt.Fprintln(a.stdio.Out, th.Muted.Render("No matching tasks."))
		return nil
	}
	fmt.Fprintln(a.stdio.Out, "Your Tasks:")
	for _, line := range lines {
		fmt.Fprintln(a.stdio.Out, line)
	}
	return nil
}

// readTasks reads the task file without creating it. A missing file reads
// as an empty list; malformed lines are logged and skipped.
func (a *app) readTasks(path string) ([]todo.Task, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening task file: %w", err)
	}
	defer f.Close()

	tasks, malformed, err := todo.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("reading task file: %w", err)
	}
	for _, le := range malformed {
		a.logger.Warn("Skipping invalid task entry", "path", path, "line", le.Line, "entry", le.Text, "err", le.Err)
	}
	return tasks, nil
}

func parseStatusFilter(s string) (todo.Status, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pending":
		return todo.StatusPending, nil
	case "done":
		return todo.StatusDone, nil
	}
	return "", fmt.Errorf("invalid status %q, must be one of: pending, done", s)
}

// checkCommand validates the task file without modifying it.
func (a *app) checkCommand(args []string) error {
	fs := flag.NewFlagSet("todolist check", flag.ContinueOnError)
	fs.SetOutput(a.stdio.Err)
	if err := fs.Parse(args); err != nil {
		return err
	}
	path, err := taskPath(a.cfg, fs.Args())
	if err != nil {
		return err
	}
	out := a.stdio.Out
	th := theme.New(out, a.cfg.Color)

	fmt.Fprintf(out, "Task file: %s\n", path)
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			fmt.Fprintln(out, th.Warning.Render("  Not found (created on first run)"))
			return nil
		}
		return fmt.Errorf("opening task file: %w", err)
	}
	defer f.Close()

	tasks, malformed, err := todo.Decode(f)
	if err != nil {
		return fmt.Errorf("reading task file: %w", err)
	}

	counts := todo.Counts(tasks)
	fmt.Fprintf(out, "  Tasks: %d (%s: %d, %s: %d)\n", len(tasks),
		th.Status(todo.StatusPending), counts[todo.StatusPending],
		th.Status(todo.StatusDone), counts[todo.StatusDone])

	byImportance := make(map[todo.Importance]int)
	for _, t := range tasks {
		byImportance[t.Importance]++
	}
	parts := make([]string, 0, len(todo.Importances))
	for _, imp := range todo.Importances {
		parts = append(parts, fmt.Sprintf("%s: %d", th.Importance.Render(string(imp)), byImportance[imp]))
	}
	fmt.Fprintf(out, "  Importance: %s\n", strings.Join(parts, ", "))

	if len(malformed) == 0 {
		fmt.Fprintln(out, th.Success.Render("  OK"))
		return nil
	}
	for _, le := range malformed {
		fmt.Fprintln(out, th.Error.Render(fmt.Sprintf("  line %d: %q: %v", le.Line, le.Text, le.Err)))
	}
	return fmt.Errorf("%d invalid lines in %s", len(malformed), path)
}

// configCommand prints the effective configuration and where each value
// came from.
func configCommand(cws *config.ConfigWithSources, stdio IO, args []string) error {
	fs := flag.NewFlagSet("todolist config", flag.ContinueOnError)
	fs.SetOutput(stdio.Err)
	example := fs.Bool("example", false, "Print an example config file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	out := stdio.Out
	if *example {
		fmt.Fprint(out, config.ExampleConfig())
		return nil
	}

	fmt.Fprintln(out, "Config files:")
	if len(cws.Files) == 0 {
		fmt.Fprintln(out, "  (none)")
	}
	for _, f := range cws.Files {
		fmt.Fprintf(out, "  %s\n", f)
	}
	fmt.Fprintln(out)

	fmt.Fprintln(out, "Settings:")
	for _, kv := range cws.Config.Fields() {
		fmt.Fprintf(out, "  %-15s %-40q (%s)\n", kv[0], kv[1], cws.Sources[kv[0]])
	}
	return nil
}
