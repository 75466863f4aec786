package model

import (
	"errors"
	"strconv"
)

var (
	// ErrNotTodo is returned by Add when given something that is not a Todo
	// (a nil *Todo is the only such value the type system lets through).
	ErrNotTodo = errors.New("can only add Todo objects")

	// ErrInvalidIndex is matched by every *IndexError.
	ErrInvalidIndex = errors.New("invalid index")
)

// IndexError reports an index outside [0, size-1].
// Raw holds the caller's original text when the index came from user input
// that could not be parsed as an integer.
type IndexError struct {
	Index int
	Raw   string
}

func (e *IndexError) Error() string {
	if e.Raw != "" {
		return "invalid index: " + e.Raw
	}
	return "invalid index: " + strconv.Itoa(e.Index)
}

func (e *IndexError) Is(target error) bool { return target == ErrInvalidIndex }
