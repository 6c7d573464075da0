// Package ui provides optional terminal interfaces.
package ui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nibzard/taskcli/internal/tasks"
	"github.com/nibzard/taskcli/internal/todo"
	"github.com/nibzard/taskcli/internal/utils"
)

// ErrNoTTY is returned when the viewer is started without a terminal.
var ErrNoTTY = errors.New("tui requires a TTY")

// DefaultRefreshInterval is how often the viewer re-reads the task file.
const DefaultRefreshInterval = 2 * time.Second

// TaskService is the subset of tasks.Service the viewer needs.
type TaskService interface {
	Snapshot() ([]todo.Task, error)
	Done(id int) (todo.Task, error)
	Remove(id int) error
}

// TUIOption configures the TUI behavior.
type TUIOption func(*tuiConfig)

type tuiConfig struct {
	refresh time.Duration
	title   string
}

// WithRefreshInterval sets how often the task file is re-read.
func WithRefreshInterval(d time.Duration) TUIOption {
	return func(c *tuiConfig) {
		if d > 0 {
			c.refresh = d
		}
	}
}

// WithTitle sets the heading shown above the task list.
func WithTitle(title string) TUIOption {
	return func(c *tuiConfig) {
		if title != "" {
			c.title = title
		}
	}
}

// RunTUI starts the interactive viewer and blocks until the user quits or
// ctx is cancelled.
func RunTUI(ctx context.Context, svc TaskService, opts ...TUIOption) error {
	if !utils.IsTTY(os.Stdout) {
		return ErrNoTTY
	}

	model := newTUIModel(svc, opts...)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}

// statusFilter narrows the list by status. The zero value shows open tasks.
type statusFilter int

const (
	filterOpen statusFilter = iota
	filterAll
	filterDone
)

func (f statusFilter) String() string {
	switch f {
	case filterAll:
		return "all"
	case filterDone:
		return string(todo.StatusDone)
	}
	return string(todo.StatusOpen)
}

type tuiModel struct {
	svc          TaskService
	title        string
	tickInterval time.Duration

	all      []todo.Task
	visible  []todo.Task
	loadErr  error
	loaded   bool
	cursor   int
	status   statusFilter
	priority todo.Priority // empty means any
	showHelp bool
	notice   string
	width    int
}

type tickMsg time.Time

type loadedMsg struct {
	tasks []todo.Task
	err   error
}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	headerStyle   = lipgloss.NewStyle().Bold(true)
	selectedStyle = lipgloss.NewStyle().Reverse(true)
	doneStyle     = lipgloss.NewStyle().Faint(true).Strikethrough(true)
	highStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	lowStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	noticeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("160"))
	footerStyle   = lipgloss.NewStyle().Faint(true)
)

func newTUIModel(svc TaskService, opts ...TUIOption) *tuiModel {
	c := &tuiConfig{
		refresh: DefaultRefreshInterval,
		title:   "taskcli",
	}
	for _, opt := range opts {
		opt(c)
	}
	return &tuiModel{
		svc:          svc,
		title:        c.title,
		tickInterval: c.refresh,
	}
}

func (m *tuiModel) Init() tea.Cmd {
	return tea.Batch(loadCmd(m.svc), tickCmd(m.tickInterval))
}

func (m *tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case tickMsg:
		return m, tea.Batch(loadCmd(m.svc), tickCmd(m.tickInterval))
	case loadedMsg:
		m.setTasks(msg.tasks, msg.err)
	}
	return m, nil
}

func (m *tuiModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q", "esc":
		return m, tea.Quit
	case "r", "f5":
		m.notice = ""
		return m, loadCmd(m.svc)
	case "h", "?":
		m.showHelp = !m.showHelp
	case "0":
		m.status = filterAll
		m.applyFilter()
	case "1":
		m.status = filterOpen
		m.applyFilter()
	case "2":
		m.status = filterDone
		m.applyFilter()
	case "p":
		m.priority = nextPriority(m.priority)
		m.applyFilter()
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.visible)-1 {
			m.cursor++
		}
	case "x", "enter":
		if t := m.selected(); t != nil {
			id := t.ID
			_, err := m.svc.Done(id)
			m.afterMutation(err, fmt.Sprintf("Task %d marked as done.", id))
		}
	case "delete", "D":
		if t := m.selected(); t != nil {
			id := t.ID
			err := m.svc.Remove(id)
			m.afterMutation(err, fmt.Sprintf("Task %d removed.", id))
		}
	}
	return m, nil
}

// afterMutation reports the outcome and reloads synchronously so the list
// reflects the change before the next render.
func (m *tuiModel) afterMutation(err error, success string) {
	if err != nil {
		m.notice = "Error: " + err.Error()
	} else {
		m.notice = success
	}
	m.setTasks(m.svc.Snapshot())
}

func (m *tuiModel) setTasks(list []todo.Task, err error) {
	m.loaded = true
	if err != nil {
		m.loadErr = err
		m.all = nil
		m.visible = nil
		return
	}
	m.loadErr = nil
	m.all = list
	m.applyFilter()
}

func (m *tuiModel) applyFilter() {
	f := tasks.ListFilter{
		All:      m.status != filterOpen,
		Priority: string(m.priority),
	}
	filtered := tasks.Filter(m.all, f)
	if m.status == filterDone {
		done := filtered[:0]
		for _, t := range filtered {
			if t.Status == todo.StatusDone {
				done = append(done, t)
			}
		}
		filtered = done
	}
	m.visible = filtered

	if m.cursor >= len(m.visible) {
		m.cursor = len(m.visible) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *tuiModel) selected() *todo.Task {
	if m.cursor < 0 || m.cursor >= len(m.visible) {
		return nil
	}
	return &m.visible[m.cursor]
}

func nextPriority(p todo.Priority) todo.Priority {
	order := append([]todo.Priority{""}, todo.Priorities()...)
	for i, candidate := range order {
		if candidate == p {
			return order[(i+1)%len(order)]
		}
	}
	return ""
}

func (m *tuiModel) View() string {
	var b strings.Builder
	writeTitle(&b, m.title)

	if m.showHelp {
		writeHelp(&b)
		writeFooter(&b, m.tickInterval)
		return b.String()
	}

	writeFilters(&b, m.status, m.priority)

	switch {
	case m.loadErr != nil:
		b.WriteString(errorStyle.Render("Error loading task file:") + "\n")
		b.WriteString("  " + m.loadErr.Error() + "\n\n")
	case !m.loaded:
		b.WriteString("Loading...\n\n")
	default:
		writeOverview(&b, m.all)
		m.writeList(&b)
	}

	if m.notice != "" {
		style := noticeStyle
		if strings.HasPrefix(m.notice, "Error:") {
			style = errorStyle
		}
		b.WriteString(style.Render(m.notice) + "\n\n")
	}
	writeFooter(&b, m.tickInterval)
	return b.String()
}

func (m *tuiModel) writeList(b *strings.Builder) {
	if len(m.all) == 0 {
		b.WriteString("  No tasks found.\n\n")
		return
	}

	b.WriteString("  " + headerStyle.Render(tasks.HeaderLine()) + "\n")
	if len(m.visible) == 0 {
		b.WriteString("  No tasks match the current filter.\n\n")
		return
	}
	for i, t := range m.visible {
		line := tasks.RowLine(t)
		if m.width > 4 {
			line = truncate(line, m.width-4)
		}
		marker := "  "
		if i == m.cursor {
			marker = "> "
			line = selectedStyle.Render(line)
		} else {
			line = rowStyle(t).Render(line)
		}
		b.WriteString(marker + line + "\n")
	}
	b.WriteString("\n")
}

func rowStyle(t todo.Task) lipgloss.Style {
	if t.Status == todo.StatusDone {
		return doneStyle
	}
	switch t.Priority {
	case todo.PriorityHigh:
		return highStyle
	case todo.PriorityLow:
		return lowStyle
	}
	return lipgloss.NewStyle()
}

func loadCmd(svc TaskService) tea.Cmd {
	return func() tea.Msg {
		list, err := svc.Snapshot()
		return loadedMsg{tasks: list, err: err}
	}
}

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func writeTitle(b *strings.Builder, title string) {
	b.WriteString(titleStyle.Render(title) + "\n")
	b.WriteString(strings.Repeat("=", lipgloss.Width(title)) + "\n\n")
}

func writeFilters(b *strings.Builder, status statusFilter, priority todo.Priority) {
	p := "any"
	if priority != "" {
		p = string(priority)
	}
	b.WriteString(fmt.Sprintf("Showing: %s | Priority: %s\n\n", status, p))
}

func writeOverview(b *strings.Builder, list []todo.Task) {
	var open, done int
	for _, t := range list {
		if t.Status == todo.StatusDone {
			done++
		} else {
			open++
		}
	}
	b.WriteString(fmt.Sprintf("  Open: %d  Done: %d  Total: %d\n\n", open, done, len(list)))
}

func writeHelp(b *strings.Builder) {
	b.WriteString("Keyboard Shortcuts\n\n")
	b.WriteString("  q, esc       Quit\n")
	b.WriteString("  r, F5        Refresh data\n")
	b.WriteString("  h, ?         Toggle this help screen\n")
	b.WriteString("  up/k down/j  Move selection\n")
	b.WriteString("  x, enter     Mark selected task as done\n")
	b.WriteString("  D, delete    Remove selected task\n")
	b.WriteString("  1            Show open tasks\n")
	b.WriteString("  2            Show done tasks\n")
	b.WriteString("  0            Show all tasks\n")
	b.WriteString("  p            Cycle priority filter\n\n")
}

func writeFooter(b *strings.Builder, interval time.Duration) {
	b.WriteString(footerStyle.Render(fmt.Sprintf("Press h for help | q to quit | Refreshing every %s", interval)) + "\n")
}

func truncate(s string, width int) string {
	if lipgloss.Width(s) <= width {
		return s
	}
	return lipgloss.NewStyle().MaxWidth(width).Render(s)
}
