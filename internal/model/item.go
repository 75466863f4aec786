package model

import "fmt"

const (
	doneMarker   = "X"
	undoneMarker = " "
)

// Todo is a single todo entry: a title and a completion flag.
// The title is fixed at construction; the flag only changes through
// MarkDone and MarkUndone.
type Todo struct {
	title string
	done  bool
}

// New returns an undone Todo. Any title is accepted, including "".
func New(title string) *Todo {
	return &Todo{title: title}
}

func (t *Todo) Title() string { return t.title }
func (t *Todo) IsDone() bool  { return t.done }

func (t *Todo) MarkDone()   { t.done = true }
func (t *Todo) MarkUndone() { t.done = false }

// String renders "[X] title" or "[ ] title".
func (t *Todo) String() string {
	marker := undoneMarker
	if t.done {
		marker = doneMarker
	}
	return fmt.Sprintf("[%s] %s", marker, t.title)
}
