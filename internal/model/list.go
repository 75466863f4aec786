// Package model holds the in-memory todo list: items and the ordered
// collection that owns them.
package model

import (
	"slices"
	"strings"
)

// TodoList is an ordered, titled collection of *Todo.
// Insertion order is preserved by every operation except removal.
//
// A TodoList is not safe for concurrent use.
type TodoList struct {
	title string
	todos []*Todo
}

// NewList returns an empty list.
func NewList(title string) *TodoList {
	return &TodoList{title: title, todos: []*Todo{}}
}

func (l *TodoList) Title() string { return l.title }

// Add appends todo to the end of the list.
func (l *TodoList) Add(todo *Todo) error {
	if todo == nil {
		return ErrNotTodo
	}
	l.todos = append(l.todos, todo)
	return nil
}

func (l *TodoList) Size() int { return len(l.todos) }

// First returns the first item without removing it; ok is false when the
// list is empty.
func (l *TodoList) First() (todo *Todo, ok bool) {
	if len(l.todos) == 0 {
		return nil, false
	}
	return l.todos[0], true
}

// Last returns the last item without removing it; ok is false when the
// list is empty.
func (l *TodoList) Last() (todo *Todo, ok bool) {
	if len(l.todos) == 0 {
		return nil, false
	}
	return l.todos[len(l.todos)-1], true
}

// ItemAt returns the item at index or an *IndexError.
func (l *TodoList) ItemAt(index int) (*Todo, error) {
	if err := l.validateIndex(index); err != nil {
		return nil, err
	}
	return l.todos[index], nil
}

func (l *TodoList) MarkDoneAt(index int) error {
	todo, err := l.ItemAt(index)
	if err != nil {
		return err
	}
	todo.MarkDone()
	return nil
}

func (l *TodoList) MarkUndoneAt(index int) error {
	todo, err := l.ItemAt(index)
	if err != nil {
		return err
	}
	todo.MarkUndone()
	return nil
}

// IsDone reports whether every item is done. An empty list is done.
func (l *TodoList) IsDone() bool {
	for _, todo := range l.todos {
		if !todo.IsDone() {
			return false
		}
	}
	return true
}

// Shift removes and returns the first item; ok is false when the list is
// empty.
func (l *TodoList) Shift() (todo *Todo, ok bool) {
	if len(l.todos) == 0 {
		return nil, false
	}
	todo = l.todos[0]
	l.todos[0] = nil
	l.todos = l.todos[1:]
	return todo, true
}

// Pop removes and returns the last item; ok is false when the list is empty.
func (l *TodoList) Pop() (todo *Todo, ok bool) {
	n := len(l.todos)
	if n == 0 {
		return nil, false
	}
	todo = l.todos[n-1]
	l.todos[n-1] = nil
	l.todos = l.todos[:n-1]
	return todo, true
}

// RemoveAt removes and returns the item at index. Later items move down by
// one position.
func (l *TodoList) RemoveAt(index int) (*Todo, error) {
	if err := l.validateIndex(index); err != nil {
		return nil, err
	}
	todo := l.todos[index]
	l.todos = slices.Delete(l.todos, index, index+1)
	return todo, nil
}

// String renders a "---- title ----" header line followed by one line per
// item.
func (l *TodoList) String() string {
	lines := make([]string, 0, len(l.todos))
	for _, todo := range l.todos {
		lines = append(lines, todo.String())
	}
	return "---- " + l.title + " ----\n" + strings.Join(lines, "\n")
}

func (l *TodoList) ForEach(fn func(*Todo)) {
	for _, todo := range l.todos {
		fn(todo)
	}
}

// Filter returns a new list with the same title holding the items for which
// keep returns true, in their original order. The items are shared with l,
// not copied: marking one through either list is visible in both.
func (l *TodoList) Filter(keep func(*Todo) bool) *TodoList {
	out := NewList(l.title)
	l.ForEach(func(todo *Todo) {
		if keep(todo) {
			out.todos = append(out.todos, todo)
		}
	})
	return out
}

// FindByTitle returns the first item whose title equals title, ignoring case.
func (l *TodoList) FindByTitle(title string) (*Todo, bool) {
	return l.Filter(func(todo *Todo) bool {
		return strings.EqualFold(todo.Title(), title)
	}).First()
}

func (l *TodoList) AllDone() *TodoList {
	return l.Filter((*Todo).IsDone)
}

func (l *TodoList) AllNotDone() *TodoList {
	return l.Filter(func(todo *Todo) bool { return !todo.IsDone() })
}

// MarkDone marks the item found by FindByTitle. It is a no-op when nothing
// matches; the result only reports whether an item was found.
func (l *TodoList) MarkDone(title string) bool {
	todo, ok := l.FindByTitle(title)
	if ok {
		todo.MarkDone()
	}
	return ok
}

func (l *TodoList) MarkAllDone() {
	l.ForEach((*Todo).MarkDone)
}

func (l *TodoList) MarkAllUndone() {
	l.ForEach((*Todo).MarkUndone)
}

// ToArray returns a copy of the item sequence. Changing the returned slice
// does not change the list.
func (l *TodoList) ToArray() []*Todo {
	return slices.Clone(l.todos)
}

func (l *TodoList) validateIndex(index int) error {
	if index < 0 || index >= len(l.todos) {
		return &IndexError{Index: index}
	}
	return nil
}
