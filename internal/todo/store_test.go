package todo

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/go-cmp/cmp"
)

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

func TestOpenCreatesMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.txt")

	s := Open(path)
	if s.Len() != 0 {
		t.Errorf("Len: got %d, want 0", s.Len())
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("task file not created: %v", err)
	}
}

func TestStoreAddPersistsAndReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.txt")
	s := Open(path, WithFsync(false))

	if _, err := s.Add("Buy milk", ImportanceHigh); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if _, err := s.Add("Clean desk", ImportanceLow); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	if got := readFile(t, path); got != "Buy milk|Pending|High\nClean desk|Pending|Low\n" {
		t.Errorf("file contents: got %q", got)
	}

	reloaded := Open(path)
	want := []Task{
		{Description: "Buy milk", Status: StatusPending, Importance: ImportanceHigh},
		{Description: "Clean desk", Status: StatusPending, Importance: ImportanceLow},
	}
	if diff := cmp.Diff(want, reloaded.Tasks()); diff != "" {
		t.Errorf("reloaded tasks mismatch (-want +got):\n%s", diff)
	}
}

func TestStoreAddRejectsInvalidDescription(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.txt")
	s := Open(path)

	if _, err := s.Add("rm -rf /", ImportanceHigh); !errors.Is(err, ErrInvalidDescription) {
		t.Errorf("Add: got %v, want ErrInvalidDescription", err)
	}
	if s.Len() != 0 {
		t.Errorf("Len: got %d, want 0", s.Len())
	}
	if got := readFile(t, path); got != "" {
		t.Errorf("file should be untouched, got %q", got)
	}
}

func TestStoreScenario(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.txt")
	s := Open(path)

	s.Add("Buy milk", ImportanceHigh)
	s.Add("Clean desk", ImportanceLow)

	sorted := s.Sorted()
	if sorted[0].Task.Description != "Buy milk" || sorted[1].Task.Description != "Clean desk" {
		t.Fatalf("unexpected display order: %+v", sorted)
	}

	if _, err := s.MarkDone(sorted[0].Position); err != nil {
		t.Fatalf("MarkDone failed: %v", err)
	}
	if n := s.PurgeDone(); n != 1 {
		t.Errorf("PurgeDone: got %d, want 1", n)
	}

	if diff := cmp.Diff([]string{"Clean desk"}, descriptions(s.Tasks())); diff != "" {
		t.Errorf("remaining tasks mismatch (-want +got):\n%s", diff)
	}
	if got := readFile(t, path); got != "Clean desk|Pending|Low\n" {
		t.Errorf("file contents: got %q", got)
	}
}

func TestStoreDeleteAndImportance(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.txt")
	s := Open(path)
	s.Add("one", ImportanceLow)
	s.Add("two", ImportanceLow)
	s.Add("three", ImportanceLow)

	if _, err := s.Delete(4); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("Delete(4): got %v, want ErrOutOfRange", err)
	}
	removed, err := s.Delete(2)
	if err != nil {
		t.Fatalf("Delete(2) failed: %v", err)
	}
	if removed.Description != "two" {
		t.Errorf("Delete(2) removed %q", removed.Description)
	}

	if _, err := s.SetImportance(2, ImportanceHigh); err != nil {
		t.Fatalf("SetImportance failed: %v", err)
	}
	if got := readFile(t, path); got != "one|Pending|Low\nthree|Pending|High\n" {
		t.Errorf("file contents: got %q", got)
	}

	if n := s.DeleteAll(); n != 2 {
		t.Errorf("DeleteAll: got %d, want 2", n)
	}
	if got := readFile(t, path); got != "" {
		t.Errorf("file should be empty, got %q", got)
	}
}

func TestStoreSkipsMalformedLinesWithWarning(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.txt")
	content := "good|Pending|High\nbroken line\nalso good|Done|Low\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	var logs bytes.Buffer
	s := Open(path, WithLogger(log.New(&logs)))

	if diff := cmp.Diff([]string{"good", "also good"}, descriptions(s.Tasks())); diff != "" {
		t.Errorf("loaded tasks mismatch (-want +got):\n%s", diff)
	}
	if len(s.Malformed()) != 1 || s.Malformed()[0].Line != 2 {
		t.Errorf("Malformed: got %v", s.Malformed())
	}
	if !strings.Contains(logs.String(), "Skipping invalid task entry") {
		t.Errorf("expected warning in logs, got %q", logs.String())
	}
}

func TestStoreKeepsTasksAroundOverlongLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.txt")
	content := "Keep one|Pending|High\n" +
		strings.Repeat("a", 2*maxLineSize) + "|Pending|Low\n" +
		"Keep two|Done|Low\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	var logs bytes.Buffer
	s := Open(path, WithLogger(log.New(&logs)), WithFsync(false))
	if s.Len() != 2 || len(s.Malformed()) != 1 {
		t.Fatalf("loaded %d tasks, %d malformed; want 2, 1", s.Len(), len(s.Malformed()))
	}
	if strings.Contains(logs.String(), "Error loading tasks") {
		t.Errorf("overlong line should not fail the load: %q", logs.String())
	}

	if _, err := s.Add("New", ImportanceLow); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	want := "Keep one|Pending|High\nKeep two|Done|Low\nNew|Pending|Low\n"
	if got := readFile(t, path); got != want {
		t.Errorf("file after Add: got %q, want %q", got, want)
	}
}

func TestStoreSaveFailureKeepsDirty(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "missing")
	path := filepath.Join(dir, "tasks.txt")

	var logs bytes.Buffer
	s := Open(path, WithLogger(log.New(&logs)))
	if s.Len() != 0 {
		t.Fatalf("Len: got %d, want 0", s.Len())
	}
	if !strings.Contains(logs.String(), "Error loading tasks") {
		t.Errorf("expected load error in logs, got %q", logs.String())
	}

	if _, err := s.Add("Buy milk", ImportanceHigh); err != nil {
		t.Fatalf("Add should succeed in memory: %v", err)
	}
	if !s.Dirty() {
		t.Error("store should be dirty after a failed save")
	}
	if !strings.Contains(logs.String(), "Error saving tasks") {
		t.Errorf("expected save error in logs, got %q", logs.String())
	}

	if err := os.Mkdir(dir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := s.Flush(); err != nil {
		t.Fatalf("Flush failed: %v", err)
	}
	if s.Dirty() {
		t.Error("store should be clean after Flush")
	}
	if got := readFile(t, path); got != "Buy milk|Pending|High\n" {
		t.Errorf("file contents: got %q", got)
	}
}

func TestSaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tasks.txt")
	tasks := []Task{{Description: "a", Status: StatusPending, Importance: ImportanceHigh}}

	if err := Save(path, tasks, SaveOptions{Fsync: true}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := Save(path, append(tasks, Task{Description: "b|c", Status: StatusPending, Importance: ImportanceLow}), SaveOptions{}); err == nil {
		t.Fatal("Save with delimiter should fail")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		var names []string
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("expected only tasks.txt, got %v", names)
	}
	if got := readFile(t, path); got != "a|Pending|High\n" {
		t.Errorf("failed save must keep previous contents, got %q", got)
	}
}
