package tasks

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/nibzard/taskcli/internal/logging"
	"github.com/nibzard/taskcli/internal/store"
	"github.com/nibzard/taskcli/internal/todo"
	"github.com/nibzard/taskcli/internal/utils"
)

// Service runs one task operation per call: load, mutate, save, report.
type Service struct {
	store  *store.Store
	out    io.Writer
	logger *log.Logger
	now    func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithOutput sets where user-facing results are printed.
func WithOutput(w io.Writer) Option {
	return func(s *Service) {
		if w != nil {
			s.out = w
		}
	}
}

// WithLogger sets the diagnostic logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock overrides the clock used for created_at.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService returns a Service backed by st.
func NewService(st *store.Store, opts ...Option) *Service {
	s := &Service{
		store:  st,
		out:    os.Stdout,
		logger: logging.Discard(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AddInput holds the user-supplied fields for a new task.
// Empty strings mean "not given".
type AddInput struct {
	Title       string
	Description string
	Priority    string
	Due         string
	Tags        string // comma separated
}

// ListFilter selects which tasks List shows. Filters combine with AND.
type ListFilter struct {
	All      bool   // include finished tasks
	Priority string // exact priority match
	Tag      string // tag membership
}

// UpdateInput holds the fields to overwrite. Empty strings are left alone.
type UpdateInput struct {
	Title    string
	Priority string
	Due      string
}

// Init creates the data file if needed and prints its location.
func (s *Service) Init() error {
	fmt.Fprintln(s.out, "Initializing taskcli...")
	if err := s.store.EnsureExists(); err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Ready! Tasks are stored in: %s\n", s.store.Path())
	return nil
}

// Add validates in, appends a new task, and saves. Nothing is written when
// validation fails.
func (s *Service) Add(in AddInput) (todo.Task, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return todo.Task{}, todo.ErrEmptyTitle
	}

	priority := todo.DefaultPriority
	if in.Priority != "" {
		p, err := todo.ParsePriority(in.Priority)
		if err != nil {
			return todo.Task{}, err
		}
		priority = p
	}

	if in.Due != "" && !todo.IsValidDate(in.Due) {
		return todo.Task{}, fmt.Errorf("%w %q, use the YYYY-MM-DD format", todo.ErrInvalidDate, in.Due)
	}

	tasks, err := s.store.Load()
	if err != nil {
		return todo.Task{}, err
	}

	task := todo.New(store.NextID(tasks), in.Title, todo.Today(s.now()))
	task.Description = in.Description
	task.Due = in.Due
	task.Priority = priority
	if in.Tags != "" {
		task.Tags = utils.SplitTrim(in.Tags, ",")
	}

	tasks = append(tasks, task)
	if err := s.store.Save(tasks); err != nil {
		return todo.Task{}, err
	}

	s.logger.Debug("added task", "id", task.ID)
	fmt.Fprintf(s.out, "✅ Task %d created: '%s'\n", task.ID, task.Title)
	return task, nil
}

// List prints the tasks matching f and returns them. An empty collection
// prints a notice instead of a table.
func (s *Service) List(f ListFilter) ([]todo.Task, error) {
	tasks, err := s.store.Load()
	if err != nil {
		return nil, err
	}
	if len(tasks) == 0 {
		fmt.Fprintln(s.out, "No tasks found.")
		return tasks, nil
	}

	filtered := Filter(tasks, f)
	if err := RenderTable(s.out, filtered); err != nil {
		return nil, err
	}
	return filtered, nil
}

// Filter returns the tasks matching f in stored order.
func Filter(tasks []todo.Task, f ListFilter) []todo.Task {
	priority := todo.Priority(f.Priority)
	if p, err := todo.ParsePriority(f.Priority); err == nil {
		priority = p
	}

	out := make([]todo.Task, 0, len(tasks))
	for _, t := range tasks {
		if !f.All && t.Status != todo.StatusOpen {
			continue
		}
		if f.Priority != "" && t.Priority != priority {
			continue
		}
		if f.Tag != "" && !t.HasTag(f.Tag) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// Done marks the first task with id as finished.
func (s *Service) Done(id int) (todo.Task, error) {
	tasks, err := s.store.Load()
	if err != nil {
		return todo.Task{}, err
	}

	task := todo.FindByID(tasks, id)
	if task == nil {
		return todo.Task{}, notFound(id)
	}
	task.MarkDone()

	if err := s.store.Save(tasks); err != nil {
		return todo.Task{}, err
	}
	fmt.Fprintf(s.out, "✅ Task %d marked as done.\n", id)
	return *task, nil
}

// Remove deletes every task with id.
func (s *Service) Remove(id int) error {
	tasks, err := s.store.Load()
	if err != nil {
		return err
	}

	kept := make([]todo.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	if len(kept) == len(tasks) {
		return notFound(id)
	}

	if err := s.store.Save(kept); err != nil {
		return err
	}
	fmt.Fprintf(s.out, "🗑️ Task %d removed.\n", id)
	return nil
}

// Update overwrites the non-empty fields of in. An invalid due date is
// reported and skipped; the other fields still apply and the task is saved.
func (s *Service) Update(id int, in UpdateInput) (todo.Task, error) {
	var priority todo.Priority
	if in.Priority != "" {
		p, err := todo.ParsePriority(in.Priority)
		if err != nil {
			return todo.Task{}, err
		}
		priority = p
	}

	tasks, err := s.store.Load()
	if err != nil {
		return todo.Task{}, err
	}

	task := todo.FindByID(tasks, id)
	if task == nil {
		return todo.Task{}, notFound(id)
	}

	if in.Title != "" {
		task.Title = in.Title
	}
	if priority != "" {
		task.Priority = priority
	}
	if in.Due != "" {
		if todo.IsValidDate(in.Due) {
			task.Due = in.Due
		} else {
			s.logger.Warn("skipping invalid due date", "id", id, "due", in.Due)
			fmt.Fprintf(s.out, "Invalid date ignored: %s\n", in.Due)
		}
	}

	if err := s.store.Save(tasks); err != nil {
		return todo.Task{}, err
	}
	fmt.Fprintf(s.out, "✅ Task %d updated.\n", id)
	return *task, nil
}

// Snapshot loads the collection without printing anything.
func (s *Service) Snapshot() ([]todo.Task, error) {
	return s.store.Load()
}

// Check reads the raw data file and reports every problem found, unlike
// Load which discards unreadable contents.
func (s *Service) Check(schema bool) (*todo.ValidationResult, error) {
	if err := s.store.EnsureExists(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.store.Path())
	if err != nil {
		return nil, &todo.IOError{Op: "read data file", Path: s.store.Path(), Err: err}
	}
	return todo.ValidateCollection(data, schema), nil
}

func notFound(id int) error {
	return fmt.Errorf("task %d: %w", id, todo.ErrNotFound)
}
