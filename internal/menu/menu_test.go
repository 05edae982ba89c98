package menu

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/nibzard/todolist/internal/todo"
)

const menuText = "\nWelcome to the To-Do List Application!\n" +
	"1. Add Task\n" +
	"2. View Tasks\n" +
	"3. Delete Task\n" +
	"4. Mark Task as Done\n" +
	"5. Change Task Importance\n" +
	"6. Remove All Done Tasks\n" +
	"7. Quit\n" +
	"Choose an option (1-7): "

func taskFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tasks.txt")
	if content != "" {
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return path
}

func runMenu(t *testing.T, path, input string) string {
	t.Helper()
	store := todo.Open(path)
	var out bytes.Buffer
	if err := New(strings.NewReader(input), &out, store).Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	return out.String()
}

func readTasks(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read task file: %v", err)
	}
	return string(data)
}

func TestQuitTranscript(t *testing.T) {
	path := taskFile(t, "")
	got := runMenu(t, path, "7\n")
	want := "Nothing to do yet. Tell me what you need to get done...\n" + menuText + "Goodbye!\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("transcript mismatch (-want +got):\n%s", diff)
	}
}

func TestStartupView(t *testing.T) {
	path := taskFile(t, "Low one|Pending|Low\nHigh one|Done|High\nMid one|Pending|Medium\n")
	got := runMenu(t, path, "7\n")
	want := "\nYour Tasks:\n" +
		"1. High one [Done] - Importance: High\n" +
		"2. Mid one [Pending] - Importance: Medium\n" +
		"3. Low one [Pending] - Importance: Low\n" +
		menuText + "Goodbye!\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("transcript mismatch (-want +got):\n%s", diff)
	}
}

func TestExampleScenario(t *testing.T) {
	path := taskFile(t, "")
	input := strings.Join([]string{
		"1", "Buy milk", "1",
		"1", "Clean desk", "3",
		"2",
		"4", "1",
		"6",
		"2",
		"7",
	}, "\n") + "\n"

	out := runMenu(t, path, input)

	for _, want := range []string{
		"Task 'Buy milk' added successfully!",
		"Task 'Clean desk' added successfully!",
		"\nYour Tasks:\n1. Buy milk [Pending] - Importance: High\n2. Clean desk [Pending] - Importance: Low\n",
		"Task 'Buy milk' marked as Done.",
		"All done tasks have been removed.",
		"\nYour Tasks:\n1. Clean desk [Pending] - Importance: Low\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q\n--- output ---\n%s", want, out)
		}
	}
	if got := readTasks(t, path); got != "Clean desk|Pending|Low\n" {
		t.Errorf("task file: got %q", got)
	}
}

func TestAddPromptsForImportance(t *testing.T) {
	path := taskFile(t, "")
	out := runMenu(t, path, "1\nCall mom\n0\nhigh\n2\n7\n")

	want := "Enter the task to add: " +
		"\nChoose the importance level:\n1. High\n2. Medium\n3. Low\n" +
		"Enter the number corresponding to importance: " +
		"Please enter a valid number (1 for High, 2 for Medium, 3 for Low): " +
		"Please enter a valid number (1 for High, 2 for Medium, 3 for Low): " +
		"Task 'Call mom' added successfully!\n"
	if !strings.Contains(out, want) {
		t.Errorf("output missing add dialogue\n--- output ---\n%s", out)
	}
	if got := readTasks(t, path); got != "Call mom|Pending|Medium\n" {
		t.Errorf("task file: got %q", got)
	}
}

func TestAddRejectsInvalidDescription(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"delimiter", "Buy milk|now"},
		{"colon", "Note: later"},
		{"empty", ""},
		{"whitespace", "   "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := taskFile(t, "")
			out := runMenu(t, path, "1\n"+tt.input+"\n7\n")
			if !strings.Contains(out, "Invalid task name. Please use only valid characters.\n") {
				t.Errorf("missing rejection\n--- output ---\n%s", out)
			}
			if strings.Contains(out, "Choose the importance level") {
				t.Error("importance asked after a rejected description")
			}
			if got := readTasks(t, path); got != "" {
				t.Errorf("task file: got %q, want empty", got)
			}
		})
	}
}

func TestMenuChoiceErrors(t *testing.T) {
	path := taskFile(t, "")
	out := runMenu(t, path, "abc\n9\n0\n\n7\n")

	if got := strings.Count(out, "Invalid input. Please enter a number between 1 and 7.\n"); got != 2 {
		t.Errorf("non-numeric messages: got %d, want 2", got)
	}
	if got := strings.Count(out, "Invalid choice. Please select a valid option.\n"); got != 2 {
		t.Errorf("out-of-range messages: got %d, want 2", got)
	}
	if got := strings.Count(out, "Welcome to the To-Do List Application!"); got != 5 {
		t.Errorf("menu shown %d times, want 5", got)
	}
}

func TestNumbersFollowDisplayOrder(t *testing.T) {
	path := taskFile(t, "Later|Pending|Low\nNow|Pending|High\n")
	out := runMenu(t, path, "4\n1\n7\n")

	if !strings.Contains(out, "Task 'Now' marked as Done.") {
		t.Errorf("display number 1 should be the High task\n--- output ---\n%s", out)
	}
	if got := readTasks(t, path); got != "Later|Pending|Low\nNow|Done|High\n" {
		t.Errorf("task file: got %q", got)
	}
}

func TestMarkDoneReprompts(t *testing.T) {
	path := taskFile(t, "Only|Pending|Low\n")
	out := runMenu(t, path, "4\nx\n5\n0\n1\n7\n")

	if got := strings.Count(out, "Invalid input. Please enter a valid number.\n"); got != 1 {
		t.Errorf("non-numeric messages: got %d, want 1", got)
	}
	if got := strings.Count(out, "Task number out of range. Please enter a valid number.\n"); got != 2 {
		t.Errorf("out-of-range messages: got %d, want 2", got)
	}
	if got := strings.Count(out, "Enter the task number: "); got != 4 {
		t.Errorf("task number prompts: got %d, want 4", got)
	}
	if !strings.Contains(out, "Task 'Only' marked as Done.") {
		t.Errorf("missing confirmation\n--- output ---\n%s", out)
	}
}

func TestEmptyListShortCircuits(t *testing.T) {
	path := taskFile(t, "")
	out := runMenu(t, path, "4\n5\n7\n")

	if got := strings.Count(out, "Nothing to do yet. Tell me what you need to get done...\n"); got != 3 {
		t.Errorf("empty messages: got %d, want 3 (startup, mark done, change importance)", got)
	}
	if strings.Contains(out, "Enter the task number: ") {
		t.Error("task number prompted on an empty list")
	}
}

func TestChangeImportance(t *testing.T) {
	path := taskFile(t, "First|Pending|Low\nSecond|Done|Medium\n")
	out := runMenu(t, path, "5\n2\n1\n7\n")

	for _, want := range []string{
		"\nChoose the new importance level:\n1. High\n2. Medium\n3. Low\n",
		"Task 'First' importance changed to High.\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q\n--- output ---\n%s", want, out)
		}
	}
	if got := readTasks(t, path); got != "First|Pending|High\nSecond|Done|Medium\n" {
		t.Errorf("task file: got %q", got)
	}
}

func TestDelete(t *testing.T) {
	const content = "A|Pending|Low\nB|Pending|High\nC|Done|Medium\n"
	tests := []struct {
		name     string
		input    string
		wantOut  string
		wantFile string
	}{
		{
			name:     "by display number",
			input:    "3\n1\n7\n",
			wantOut:  "Task 'B' deleted successfully!\n",
			wantFile: "A|Pending|Low\nC|Done|Medium\n",
		},
		{
			name:     "last display number",
			input:    "3\n3\n7\n",
			wantOut:  "Task 'A' deleted successfully!\n",
			wantFile: "B|Pending|High\nC|Done|Medium\n",
		},
		{
			name:     "out of range",
			input:    "3\n4\n7\n",
			wantOut:  "No task exists with that number.\n",
			wantFile: content,
		},
		{
			name:     "zero",
			input:    "3\n0\n7\n",
			wantOut:  "No task exists with that number.\n",
			wantFile: content,
		},
		{
			name:     "not a number",
			input:    "3\nsecond\n7\n",
			wantOut:  "Invalid input. Please enter a valid task number or 'ALL' to delete all tasks.\n",
			wantFile: content,
		},
		{
			name:     "lowercase all is not a keyword",
			input:    "3\nall\n7\n",
			wantOut:  "Invalid input. Please enter a valid task number or 'ALL' to delete all tasks.\n",
			wantFile: content,
		},
		{
			name:     "all confirmed",
			input:    "3\nALL\nYes\n7\n",
			wantOut:  "All tasks have been deleted.\n",
			wantFile: "",
		},
		{
			name:     "all cancelled",
			input:    "3\nALL\nno\n7\n",
			wantOut:  "Action cancelled. No tasks were deleted.\n",
			wantFile: content,
		},
		{
			name:     "all needs exact yes",
			input:    "3\nALL\ny\n7\n",
			wantOut:  "Action cancelled. No tasks were deleted.\n",
			wantFile: content,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := taskFile(t, content)
			out := runMenu(t, path, tt.input)
			if !strings.Contains(out, tt.wantOut) {
				t.Errorf("output missing %q\n--- output ---\n%s", tt.wantOut, out)
			}
			if got := readTasks(t, path); got != tt.wantFile {
				t.Errorf("task file: got %q, want %q", got, tt.wantFile)
			}
		})
	}
}

func TestPurgeWithNothingDone(t *testing.T) {
	path := taskFile(t, "A|Pending|Low\n")
	out := runMenu(t, path, "6\n7\n")
	if !strings.Contains(out, "All done tasks have been removed.\n") {
		t.Errorf("missing purge message\n--- output ---\n%s", out)
	}
	if got := readTasks(t, path); got != "A|Pending|Low\n" {
		t.Errorf("task file: got %q", got)
	}
}

func TestEndOfInput(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"at menu", ""},
		{"during add", "1\nHalf done"},
		{"during importance reprompt", "1\nHalf done\n9\n"},
		{"during task number", "4\nabc\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := taskFile(t, "Keep|Pending|High\n")
			out := runMenu(t, path, tt.input)
			if !strings.HasSuffix(out, "Goodbye!\n") {
				t.Errorf("session did not end cleanly\n--- output ---\n%s", out)
			}
			if got := readTasks(t, path); got != "Keep|Pending|High\n" {
				t.Errorf("task file: got %q", got)
			}
		})
	}
}

func TestCancelledContext(t *testing.T) {
	path := taskFile(t, "")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	err := New(strings.NewReader("1\nNever added\n1\n"), &out, todo.Open(path)).Run(ctx)
	if err != context.Canceled {
		t.Errorf("Run: got %v, want context.Canceled", err)
	}
	if strings.Contains(out.String(), "Goodbye!") {
		t.Error("Goodbye printed on cancellation")
	}
	if got := readTasks(t, path); got != "" {
		t.Errorf("task file: got %q, want empty", got)
	}
}

func TestFlushOnQuit(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tasks.txt")
	store := todo.Open(path)

	// Saves fail while the directory is read-only.
	if err := os.Chmod(dir, 0555); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chmod(dir, 0755) })
	if _, err := store.Add("Retry me", todo.ImportanceLow); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if !store.Dirty() {
		t.Skip("directory permissions not enforced (running as root?)")
	}
	if err := os.Chmod(dir, 0755); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	if err := New(strings.NewReader("7\n"), &out, store).Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if store.Dirty() {
		t.Error("store still dirty after quit")
	}
	if got := readTasks(t, path); got != "Retry me|Pending|Low\n" {
		t.Errorf("task file: got %q", got)
	}
}
