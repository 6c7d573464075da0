package store

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/nibzard/taskcli/internal/logging"
	"github.com/nibzard/taskcli/internal/todo"
)

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nested", ".taskcli", "tasks.json")
	return New(path), path
}

func TestEnsureExists(t *testing.T) {
	t.Run("creates directory and empty array", func(t *testing.T) {
		s, path := newTestStore(t)

		if err := s.EnsureExists(); err != nil {
			t.Fatalf("EnsureExists failed: %v", err)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("read failed: %v", err)
		}
		if string(data) != "[]" {
			t.Errorf("contents: got %q, want %q", data, "[]")
		}
	})

	t.Run("is idempotent and keeps existing contents", func(t *testing.T) {
		s, path := newTestStore(t)
		if err := s.Save([]todo.Task{todo.New(1, "Keep me", "2025-01-01")}); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
		before, _ := os.ReadFile(path)

		for i := 0; i < 3; i++ {
			if err := s.EnsureExists(); err != nil {
				t.Fatalf("EnsureExists #%d failed: %v", i, err)
			}
		}

		after, _ := os.ReadFile(path)
		if !bytes.Equal(before, after) {
			t.Errorf("file changed:\nbefore: %s\nafter:  %s", before, after)
		}
	})

	t.Run("reports io failure", func(t *testing.T) {
		if runtime.GOOS == "windows" || os.Geteuid() == 0 {
			t.Skip("permission checks not reliable here")
		}
		dir := t.TempDir()
		if err := os.Chmod(dir, 0o500); err != nil {
			t.Fatal(err)
		}
		t.Cleanup(func() { os.Chmod(dir, 0o700) })

		s := New(filepath.Join(dir, "sub", "tasks.json"))
		err := s.EnsureExists()
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		if !errors.Is(err, todo.ErrIO) {
			t.Errorf("expected ErrIO, got %v", err)
		}
	})
}

func TestLoadEmpty(t *testing.T) {
	s, _ := newTestStore(t)

	tasks, err := s.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(tasks) != 0 {
		t.Errorf("expected empty collection, got %d tasks", len(tasks))
	}
}

func TestSaveAndLoad(t *testing.T) {
	s, _ := newTestStore(t)

	first := todo.New(1, "Comprar pão", "2025-10-04")
	first.Tags = append(first.Tags, "casa", "mercado")
	first.Due = "2025-10-10"
	second := todo.New(2, "Ligar <mãe> & pai", "2025-10-04")
	second.Priority = todo.PriorityHigh
	second.MarkDone()

	if err := s.Save([]todo.Task{first, second}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := s.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(loaded) != 2 {
		t.Fatalf("Tasks count: got %d, want 2", len(loaded))
	}
	if !loaded[0].Equal(first) {
		t.Errorf("task 1: got %+v, want %+v", loaded[0], first)
	}
	if !loaded[1].Equal(second) {
		t.Errorf("task 2: got %+v, want %+v", loaded[1], second)
	}
}

func TestSaveFormatting(t *testing.T) {
	s, path := newTestStore(t)

	task := todo.New(1, "Revisão <urgente>", "2025-10-04")
	if err := s.Save([]todo.Task{task}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	out := string(data)

	for _, want := range []string{
		`"title": "Revisão <urgente>"`,
		`"priority": "médio"`,
		`"due": null`,
		`"tags": []`,
		"\n        \"id\": 1,",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, out)
		}
	}
	if strings.Contains(out, `\u`) {
		t.Errorf("expected no unicode escapes, got:\n%s", out)
	}
	if !strings.HasSuffix(out, "]\n") {
		t.Errorf("expected trailing newline after array, got %q", out[len(out)-3:])
	}
}

func TestSaveKeyOrder(t *testing.T) {
	s, path := newTestStore(t)

	task := todo.New(7, "a", "2025-10-04")
	task.Due = "2025-11-01"
	task.Tags = []string{"x"}
	if err := s.Save([]todo.Task{task}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	out := string(data)

	last := -1
	for _, key := range []string{"id", "title", "created_at", "status", "priority", "description", "due", "tags"} {
		i := strings.Index(out, `"`+key+`":`)
		if i < 0 {
			t.Fatalf("missing key %q in:\n%s", key, out)
		}
		if i < last {
			t.Errorf("key %q out of order in:\n%s", key, out)
		}
		last = i
	}
}

func TestLoadAcceptsTrailingWhitespace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.json")
	content := "[{\"id\": 1, \"title\": \"a\", \"created_at\": \"2025-01-01\"}]\n\n  \t\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	tasks, err := New(path).Load()
	if err != nil {
		t.Fatal(err)
	}
	if len(tasks) != 1 {
		t.Errorf("expected 1 task, got %d", len(tasks))
	}
}

func TestSaveReplacesContents(t *testing.T) {
	s, _ := newTestStore(t)

	if err := s.Save([]todo.Task{todo.New(1, "a", "2025-01-01"), todo.New(2, "b", "2025-01-01")}); err != nil {
		t.Fatal(err)
	}
	if err := s.Save([]todo.Task{todo.New(3, "c", "2025-01-01")}); err != nil {
		t.Fatal(err)
	}

	loaded, err := s.Load()
	if err != nil {
		t.Fatal(err)
	}
	if len(loaded) != 1 || loaded[0].ID != 3 {
		t.Errorf("expected only task 3, got %+v", loaded)
	}

	entries, err := os.ReadDir(filepath.Dir(s.Path()))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("expected no leftover temp files, got %d entries", len(entries))
	}
}

func TestLoadDiscardsBadContents(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"invalid json", `[{"id": 1, "title": `},
		{"plain text", "not json at all"},
		{"trailing data", `[{"id": 1, "title": "a", "created_at": "2025-01-01"}] this is not json`},
		{"second array", `[] []`},
		{"top-level object", `{"id": 1}`},
		{"missing title", `[{"id": 1, "created_at": "2025-01-01"}]`},
		{"string id", `[{"id": "1", "title": "x", "created_at": "2025-01-01"}]`},
		{"fractional id", `[{"id": 1.5, "title": "x", "created_at": "2025-01-01"}]`},
		{"unknown priority", `[{"id": 1, "title": "x", "created_at": "2025-01-01", "priority": "urgent"}]`},
		{"one bad record among good", `[
			{"id": 1, "title": "ok", "created_at": "2025-01-01"},
			{"id": 2, "created_at": "2025-01-01"}
		]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var logs bytes.Buffer
			path := filepath.Join(t.TempDir(), "tasks.json")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatal(err)
			}
			s := New(path, WithLogger(logging.New(&logs, logging.DefaultOptions())))

			tasks, err := s.Load()
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if len(tasks) != 0 {
				t.Errorf("expected empty collection, got %d tasks", len(tasks))
			}
			if !strings.Contains(logs.String(), "ignoring unreadable task file") {
				t.Errorf("expected warning to be logged, got %q", logs.String())
			}
		})
	}
}

func TestLoadNullTags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.json")
	content := `[
		{"id": 1, "title": "a", "created_at": "2025-01-01", "tags": null},
		{"id": 2, "title": "b", "created_at": "2025-01-01"}
	]`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	tasks, err := New(path).Load()
	if err != nil {
		t.Fatal(err)
	}
	if len(tasks) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(tasks))
	}
	for _, task := range tasks {
		if task.Tags == nil || len(task.Tags) != 0 {
			t.Errorf("task %d: expected empty non-nil tags, got %#v", task.ID, task.Tags)
		}
	}
}

func TestNextID(t *testing.T) {
	tests := []struct {
		name string
		ids  []int
		want int
	}{
		{"empty", nil, 1},
		{"single", []int{1}, 2},
		{"unordered with gaps", []int{1, 5, 3}, 6},
		{"consecutive", []int{1, 2}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var tasks []todo.Task
			for _, id := range tt.ids {
				tasks = append(tasks, todo.New(id, "t", "2025-01-01"))
			}
			if got := NextID(tasks); got != tt.want {
				t.Errorf("NextID(%v): got %d, want %d", tt.ids, got, tt.want)
			}
		})
	}
}
