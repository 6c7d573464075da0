// Package tasks implements the user-level task operations.
//
// Each operation is one load-mutate-save cycle against a store.Store:
//
//	svc := tasks.NewService(store.New(path))
//	svc.Add(tasks.AddInput{Title: "Buy milk", Tags: "home, errands"})
//	svc.List(tasks.ListFilter{Tag: "home"})
//	svc.Done(1)
//
// Results are printed to the configured output (stdout by default).
// Failures are returned as errors wrapping the sentinels in package todo,
// so callers can branch with errors.Is:
//
//	if errors.Is(err, todo.ErrNotFound) { ... }
//
// Validation happens before anything is written: an invalid due date on Add
// aborts the add. Update is the exception; an invalid due date there is
// reported and skipped while the remaining fields are still applied.
package tasks
