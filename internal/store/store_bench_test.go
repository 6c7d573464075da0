package store

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nibzard/taskcli/internal/todo"
)

// BenchmarkLoad benchmarks task file loading and decoding.
func BenchmarkLoad(b *testing.B) {
	content := `[
    {"id": 1, "title": "Task 1", "created_at": "2025-01-01", "priority": "alto", "status": "aberto", "tags": ["a"]},
    {"id": 2, "title": "Task 2", "created_at": "2025-01-01", "priority": "médio", "status": "feito", "tags": null},
    {"id": 3, "title": "Task 3", "created_at": "2025-01-01", "priority": "baixo", "status": "aberto"}
]`
	path := filepath.Join(b.TempDir(), "tasks.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		b.Fatalf("Failed to create test file: %v", err)
	}
	s := New(path)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tasks, err := s.Load()
		if err != nil || len(tasks) != 3 {
			b.Fatalf("Load failed: %v (%d tasks)", err, len(tasks))
		}
	}
}

// BenchmarkLoadLarge benchmarks loading a file with 1000 tasks.
func BenchmarkLoadLarge(b *testing.B) {
	priorities := []string{"alto", "médio", "baixo"}
	records := make([]string, 0, 1000)
	for i := 1; i <= 1000; i++ {
		status := "aberto"
		if i%3 == 0 {
			status = "feito"
		}
		records = append(records, fmt.Sprintf(
			`{"id": %d, "title": "Task %d", "created_at": "2025-01-01", "priority": "%s", "status": "%s", "tags": ["t%d"]}`,
			i, i, priorities[i%3], status, i%7))
	}
	path := filepath.Join(b.TempDir(), "tasks.json")
	if err := os.WriteFile(path, []byte("["+strings.Join(records, ",")+"]"), 0o644); err != nil {
		b.Fatalf("Failed to create test file: %v", err)
	}
	s := New(path)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := s.Load(); err != nil {
			b.Fatalf("Load failed: %v", err)
		}
	}
}

// BenchmarkSave benchmarks rewriting a file with 100 tasks.
func BenchmarkSave(b *testing.B) {
	tasks := make([]todo.Task, 0, 100)
	for i := 1; i <= 100; i++ {
		task := todo.New(i, fmt.Sprintf("Tarefa %d", i), "2025-01-01")
		task.Tags = append(task.Tags, "bench")
		tasks = append(tasks, task)
	}
	s := New(filepath.Join(b.TempDir(), "tasks.json"))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := s.Save(tasks); err != nil {
			b.Fatalf("Save failed: %v", err)
		}
	}
}
