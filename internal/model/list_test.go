package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestList(t *testing.T, titles ...string) (*TodoList, []*Todo) {
	t.Helper()
	l := NewList("T")
	todos := make([]*Todo, 0, len(titles))
	for _, title := range titles {
		todo := New(title)
		require.NoError(t, l.Add(todo))
		todos = append(todos, todo)
	}
	return l, todos
}

func TestNewList(t *testing.T) {
	l := NewList("Today's Todos")
	assert.Equal(t, "Today's Todos", l.Title())
	assert.Equal(t, 0, l.Size())
}

func TestTodoList_Add(t *testing.T) {
	l, todos := newTestList(t, "a", "b")
	assert.Equal(t, 2, l.Size())
	assert.Equal(t, todos, l.ToArray())

	err := l.Add(nil)
	assert.ErrorIs(t, err, ErrNotTodo)
	assert.Equal(t, 2, l.Size())
}

func TestTodoList_FirstLast(t *testing.T) {
	empty := NewList("T")
	first, ok := empty.First()
	assert.False(t, ok)
	assert.Nil(t, first)
	last, ok := empty.Last()
	assert.False(t, ok)
	assert.Nil(t, last)

	l, todos := newTestList(t, "a", "b", "c")
	first, ok = l.First()
	assert.True(t, ok)
	assert.Same(t, todos[0], first)
	last, ok = l.Last()
	assert.True(t, ok)
	assert.Same(t, todos[2], last)
	assert.Equal(t, 3, l.Size())
}

func TestTodoList_ItemAt(t *testing.T) {
	l, todos := newTestList(t, "a", "b", "c")

	for i, want := range todos {
		got, err := l.ItemAt(i)
		require.NoError(t, err)
		assert.Same(t, want, got)
	}

	for _, index := range []int{-1, 3, 100} {
		_, err := l.ItemAt(index)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidIndex)

		var ie *IndexError
		require.True(t, errors.As(err, &ie))
		assert.Equal(t, index, ie.Index)
	}
}

func TestTodoList_ItemAtEmpty(t *testing.T) {
	_, err := NewList("T").ItemAt(0)
	assert.EqualError(t, err, "invalid index: 0")
}

func TestTodoList_ItemAtAfterRemoval(t *testing.T) {
	l, todos := newTestList(t, "a", "b", "c")
	_, err := l.RemoveAt(0)
	require.NoError(t, err)

	got, err := l.ItemAt(0)
	require.NoError(t, err)
	assert.Same(t, todos[1], got)

	_, err = l.ItemAt(2)
	assert.ErrorIs(t, err, ErrInvalidIndex)
}

func TestTodoList_MarkAt(t *testing.T) {
	l, todos := newTestList(t, "a", "b")

	require.NoError(t, l.MarkDoneAt(1))
	assert.False(t, todos[0].IsDone())
	assert.True(t, todos[1].IsDone())

	require.NoError(t, l.MarkUndoneAt(1))
	assert.False(t, todos[1].IsDone())

	assert.ErrorIs(t, l.MarkDoneAt(2), ErrInvalidIndex)
	assert.ErrorIs(t, l.MarkUndoneAt(-1), ErrInvalidIndex)
}

func TestTodoList_IsDone(t *testing.T) {
	l := NewList("T")
	assert.True(t, l.IsDone())

	l, todos := newTestList(t, "a", "b")
	assert.False(t, l.IsDone())
	todos[0].MarkDone()
	assert.False(t, l.IsDone())
	l.MarkAllDone()
	assert.True(t, l.IsDone())
	l.MarkAllUndone()
	for _, todo := range todos {
		assert.False(t, todo.IsDone())
	}
}

func TestTodoList_ShiftPop(t *testing.T) {
	l, todos := newTestList(t, "a", "b", "c", "d")

	got, ok := l.Shift()
	assert.True(t, ok)
	assert.Same(t, todos[0], got)
	got, ok = l.Pop()
	assert.True(t, ok)
	assert.Same(t, todos[3], got)
	got, ok = l.Shift()
	assert.True(t, ok)
	assert.Same(t, todos[1], got)
	got, ok = l.Pop()
	assert.True(t, ok)
	assert.Same(t, todos[2], got)

	assert.Equal(t, 0, l.Size())
	got, ok = l.Shift()
	assert.False(t, ok)
	assert.Nil(t, got)
	got, ok = l.Pop()
	assert.False(t, ok)
	assert.Nil(t, got)
}

func TestTodoList_RemoveAt(t *testing.T) {
	l, todos := newTestList(t, "a", "b", "c")

	got, err := l.RemoveAt(1)
	require.NoError(t, err)
	assert.Same(t, todos[1], got)
	assert.Equal(t, []*Todo{todos[0], todos[2]}, l.ToArray())

	_, err = l.RemoveAt(2)
	assert.ErrorIs(t, err, ErrInvalidIndex)
	assert.Equal(t, 2, l.Size())
}

func TestTodoList_SizeTracksAddsAndRemovals(t *testing.T) {
	l := NewList("T")
	for i := 0; i < 5; i++ {
		require.NoError(t, l.Add(New("x")))
	}
	l.Shift()
	l.Pop()
	_, err := l.RemoveAt(0)
	require.NoError(t, err)
	_, err = l.RemoveAt(9)
	require.Error(t, err)
	assert.Equal(t, 2, l.Size())
}

func TestTodoList_ForEach(t *testing.T) {
	l, todos := newTestList(t, "a", "b", "c")
	var seen []*Todo
	l.ForEach(func(todo *Todo) { seen = append(seen, todo) })
	assert.Equal(t, todos, seen)
}

func TestTodoList_Filter(t *testing.T) {
	l, todos := newTestList(t, "a", "bb", "c", "dd")

	long := l.Filter(func(todo *Todo) bool { return len(todo.Title()) == 2 })
	assert.Equal(t, "T", long.Title())
	assert.Equal(t, []*Todo{todos[1], todos[3]}, long.ToArray())
	assert.Equal(t, 4, l.Size())

	// filtered lists share items with their source
	first, ok := long.First()
	require.True(t, ok)
	first.MarkDone()
	assert.True(t, todos[1].IsDone())

	none := l.Filter(func(*Todo) bool { return false })
	assert.Equal(t, 0, none.Size())
}

func TestTodoList_FindByTitle(t *testing.T) {
	l, todos := newTestList(t, "Buy milk", "Clean room", "buy MILK")

	got, ok := l.FindByTitle("BUY milk")
	assert.True(t, ok)
	assert.Same(t, todos[0], got)

	got, ok = l.FindByTitle("buy mil")
	assert.False(t, ok)
	assert.Nil(t, got)
}

func TestTodoList_MarkDoneByTitle(t *testing.T) {
	l, todos := newTestList(t, "Buy milk", "Clean room")

	assert.True(t, l.MarkDone("Buy Milk"))
	assert.True(t, todos[0].IsDone())
	assert.False(t, todos[1].IsDone())

	assert.False(t, l.MarkDone("nope"))
	assert.False(t, todos[1].IsDone())
}

func TestTodoList_AllDoneAllNotDone(t *testing.T) {
	l, todos := newTestList(t, "a", "b", "c")
	todos[1].MarkDone()

	assert.Equal(t, []*Todo{todos[1]}, l.AllDone().ToArray())
	assert.Equal(t, []*Todo{todos[0], todos[2]}, l.AllNotDone().ToArray())
	assert.Equal(t, "T", l.AllDone().Title())
}

func TestTodoList_ToArray(t *testing.T) {
	l, todos := newTestList(t, "a", "b")
	arr := l.ToArray()
	arr = arr[:1]
	arr[0] = New("other")

	assert.Len(t, arr, 1)
	assert.Equal(t, 2, l.Size())
	got, err := l.ItemAt(0)
	require.NoError(t, err)
	assert.Same(t, todos[0], got)
}

func TestTodoList_String(t *testing.T) {
	assert.Equal(t, "---- T ----\n", NewList("T").String())

	l, _ := newTestList(t, "Buy milk", "Clean room")
	l.MarkDone("buy milk")
	assert.Equal(t, "---- T ----\n[X] Buy milk\n[ ] Clean room", l.String())
}
