package tasks

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/nibzard/taskcli/internal/todo"
)

// Column widths for the fixed-width list table. Title is unpadded.
const (
	idWidth       = 4
	statusWidth   = 8
	priorityWidth = 10
	dueWidth      = 10
	ruleWidth     = 60
)

// RenderTable writes the header, a rule, and one row per task.
func RenderTable(w io.Writer, tasks []todo.Task) error {
	bw := bufio.NewWriter(w)
	bw.WriteString(HeaderLine())
	bw.WriteByte('\n')
	bw.WriteString(strings.Repeat("-", ruleWidth))
	bw.WriteByte('\n')
	for _, t := range tasks {
		bw.WriteString(RowLine(t))
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// HeaderLine returns the table header without a trailing newline.
func HeaderLine() string {
	return joinCells("ID", "Status", "Priority", "Due", "Title")
}

// RowLine returns the table row for t without a trailing newline.
func RowLine(t todo.Task) string {
	return joinCells(strconv.Itoa(t.ID), string(t.Status), string(t.Priority), t.Due, t.Title)
}

func joinCells(id, status, priority, due, title string) string {
	return strings.Join([]string{
		runewidth.FillRight(id, idWidth),
		runewidth.FillRight(status, statusWidth),
		runewidth.FillRight(priority, priorityWidth),
		runewidth.FillRight(due, dueWidth),
		title,
	}, " | ")
}
