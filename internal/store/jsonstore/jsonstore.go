// Package jsonstore persists a todo list as a single human-readable JSON
// file. No locking; fine for a local single-user CLI.
package jsonstore

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Makepad-fr/todolist/internal/model"
)

// DefaultFileName is the default store file, relative to the working directory.
const DefaultFileName = "todos.json"

// ErrInvalidFile is wrapped by Load when the file does not match the schema.
var ErrInvalidFile = errors.New("invalid todo file")

type record struct {
	Title string `json:"title"`
	Done  bool   `json:"done"`
}

type document struct {
	Title string   `json:"title"`
	Todos []record `json:"todos"`
}

// Load reads the list stored at path. A missing file is an empty list titled
// defaultTitle. Files holding a bare array of items also take defaultTitle.
func Load(path, defaultTitle string) (*model.TodoList, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return model.NewList(defaultTitle), nil
		}
		return nil, fmt.Errorf("read file: %w", err)
	}

	var raw any
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}
	if err := validate(raw); err != nil {
		return nil, err
	}

	doc := document{Title: defaultTitle}
	if trimmed := bytes.TrimSpace(b); len(trimmed) > 0 && trimmed[0] == '[' {
		err = json.Unmarshal(b, &doc.Todos)
	} else {
		err = json.Unmarshal(b, &doc)
	}
	if err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}
	return doc.list()
}

// Save writes list to path, creating parent directories as needed.
func Save(path string, list *model.TodoList) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir: %w", err)
		}
	}
	b, err := json.MarshalIndent(newDocument(list), "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	b = append(b, '\n')
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}

func newDocument(list *model.TodoList) document {
	doc := document{Title: list.Title(), Todos: make([]record, 0, list.Size())}
	list.ForEach(func(todo *model.Todo) {
		doc.Todos = append(doc.Todos, record{Title: todo.Title(), Done: todo.IsDone()})
	})
	return doc
}

func (d document) list() (*model.TodoList, error) {
	list := model.NewList(d.Title)
	for _, r := range d.Todos {
		todo := model.New(r.Title)
		if r.Done {
			todo.MarkDone()
		}
		if err := list.Add(todo); err != nil {
			return nil, err
		}
	}
	return list, nil
}
