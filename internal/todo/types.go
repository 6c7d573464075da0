// Package todo defines the task record, its storage encoding, and validation.
package todo

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Priority represents a task priority.
type Priority string

const (
	PriorityHigh   Priority = "alto"
	PriorityMedium Priority = "médio"
	PriorityLow    Priority = "baixo"
)

// DefaultPriority is assigned when no priority is given.
const DefaultPriority = PriorityMedium

// Priorities returns the accepted priority values in display order.
func Priorities() []Priority {
	return []Priority{PriorityHigh, PriorityMedium, PriorityLow}
}

// Valid reports whether p is one of the known priorities.
func (p Priority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// ParsePriority parses user or stored input into a Priority.
// Input is NFC-normalized and lower-cased, so "MÉDIO" and a decomposed
// "médio" both resolve to PriorityMedium.
func ParsePriority(s string) (Priority, error) {
	p := Priority(strings.ToLower(norm.NFC.String(strings.TrimSpace(s))))
	if !p.Valid() {
		return "", fmt.Errorf("%w %q, must be one of: alto, médio, baixo", ErrInvalidPriority, s)
	}
	return p, nil
}

// Status represents a task status.
type Status string

const (
	StatusOpen Status = "aberto"
	StatusDone Status = "feito"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	return s == StatusOpen || s == StatusDone
}

// ParseStatus parses a stored status value.
func ParseStatus(s string) (Status, error) {
	st := Status(strings.ToLower(norm.NFC.String(strings.TrimSpace(s))))
	if !st.Valid() {
		return "", fmt.Errorf("invalid status %q, must be one of: aberto, feito", s)
	}
	return st, nil
}

// Task is a single to-do record.
type Task struct {
	ID          int
	Title       string
	Description string
	Due         string // empty when unset
	Priority    Priority
	Tags        []string
	Status      Status

	createdAt string
}

// New returns a task with default priority, status, and an empty tag list
// owned by this task alone.
func New(id int, title, createdAt string) Task {
	return Task{
		ID:        id,
		Title:     title,
		Priority:  DefaultPriority,
		Tags:      make([]string, 0),
		Status:    StatusOpen,
		createdAt: createdAt,
	}
}

// CreatedAt returns the creation date. It is fixed at construction.
func (t *Task) CreatedAt() string {
	return t.createdAt
}

// HasTag reports whether tag is one of the task's tags.
func (t *Task) HasTag(tag string) bool {
	return slices.Contains(t.Tags, tag)
}

// MarkDone moves the task to StatusDone. There is no way back.
func (t *Task) MarkDone() {
	t.Status = StatusDone
}

// Clone returns a deep copy of the task.
func (t Task) Clone() Task {
	c := t
	c.Tags = append(make([]string, 0, len(t.Tags)), t.Tags...)
	return c
}

// Equal reports whether two tasks hold the same values.
func (t Task) Equal(o Task) bool {
	return t.ID == o.ID &&
		t.Title == o.Title &&
		t.Description == o.Description &&
		t.Due == o.Due &&
		t.Priority == o.Priority &&
		t.Status == o.Status &&
		t.createdAt == o.createdAt &&
		slices.Equal(t.Tags, o.Tags)
}

// FindByID returns a pointer to the first task with the given id, or nil.
func FindByID(tasks []Task, id int) *Task {
	for i := range tasks {
		if tasks[i].ID == id {
			return &tasks[i]
		}
	}
	return nil
}
