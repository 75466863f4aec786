// Package tui is the interactive Bubble Tea view over a todo list.
package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/Makepad-fr/todolist/internal/logging"
	"github.com/Makepad-fr/todolist/internal/model"
	"github.com/Makepad-fr/todolist/internal/ui"
)

// Options tune the interactive view.
type Options struct {
	Group  bool // open on the pending view
	Logger *log.Logger
}

type view int

const (
	viewAll view = iota
	viewPending
	viewDone
)

func (v view) String() string {
	switch v {
	case viewPending:
		return "pending"
	case viewDone:
		return "done"
	default:
		return "all"
	}
}

// listItem adapts a *model.Todo to bubbles/list.Item. It holds the list's own
// instance, so marking through it changes the list.
type listItem struct{ todo *model.Todo }

func (i listItem) FilterValue() string { return i.todo.Title() }

// Custom delegate to control how items render (single line)
type itemDelegate struct{}

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(listItem)
	if !ok {
		return
	}
	t := ui.Current()
	box := t.Muted.Render(t.Box(false))
	text := it.todo.Title()
	if it.todo.IsDone() {
		box = t.Success.Render(t.Box(true))
		text = t.Done.Render(text)
	}
	prefix := "  "
	if index == m.Index() {
		prefix = t.Selected.Render("> ")
	}
	fmt.Fprintln(w, prefix+box+" "+text)
}

var (
	keyToggle  = key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle"))
	keyAdd     = key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add"))
	keyRemove  = key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "remove"))
	keyAllDone = key.NewBinding(key.WithKeys("A"), key.WithHelp("A", "all done"))
	keyAllOpen = key.NewBinding(key.WithKeys("U"), key.WithHelp("U", "all undone"))
	keyView    = key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "view"))
)

// Model is the Bubble Tea model for the interactive list.
type Model struct {
	todos   *model.TodoList
	list    list.Model
	view    view
	changed bool
	logger  *log.Logger

	// Inline add
	adding bool            // true when inline add is active
	ti     textinput.Model // text input for the new title
	addErr string          // last add validation error
}

// New builds the model for todos.
func New(todos *model.TodoList, opt Options) Model {
	l := list.New(nil, itemDelegate{}, 76, 18)
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(false)
	l.Styles.Title = ui.Current().Title
	l.Styles.HelpStyle = ui.Current().Help
	l.Styles.PaginationStyle = ui.Current().Help
	l.SetStatusBarItemName("item", "items")

	bindings := func() []key.Binding {
		return []key.Binding{keyToggle, keyAdd, keyRemove, keyAllDone, keyAllOpen, keyView}
	}
	l.AdditionalShortHelpKeys = bindings
	l.AdditionalFullHelpKeys = bindings

	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "New item title..."
	ti.CharLimit = 200

	logger := opt.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	m := Model{todos: todos, list: l, ti: ti, logger: logger}
	if opt.Group {
		m.view = viewPending
	}
	m.refresh()
	return m
}

// Changed reports whether the list was modified.
func (m Model) Changed() bool { return m.changed }

// Run starts the Bubble Tea program and reports whether the list changed.
func Run(todos *model.TodoList, opt Options) (bool, error) {
	p := tea.NewProgram(New(todos, opt), tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}
	fm, ok := finalModel.(Model)
	if !ok {
		return false, nil
	}
	return fm.changed, nil
}

// visible returns the part of the list shown in the current view.
func (m Model) visible() *model.TodoList {
	switch m.view {
	case viewPending:
		return m.todos.AllNotDone()
	case viewDone:
		return m.todos.AllDone()
	default:
		return m.todos
	}
}

// refresh rebuilds the list items and header from the todo list.
func (m *Model) refresh() {
	vis := m.visible()
	items := make([]list.Item, 0, vis.Size())
	vis.ForEach(func(todo *model.Todo) {
		items = append(items, listItem{todo: todo})
	})
	m.list.SetItems(items)
	if n := len(items); n > 0 && m.list.Index() >= n {
		m.list.Select(n - 1)
	}

	t := ui.Current()
	done := m.todos.AllDone().Size()
	m.list.Title = fmt.Sprintf("%s   %s %d  %s %d  %s %d  %s",
		m.todos.Title(),
		t.Success.Render(t.SymDone), done,
		t.Pending.Render(t.SymPending), m.todos.Size()-done,
		t.Accent.Render("Total"), m.todos.Size(),
		t.Muted.Render("["+m.view.String()+"]"),
	)
}

// selected returns the position in the full list of the highlighted item.
func (m Model) selected() (int, bool) {
	it, ok := m.list.SelectedItem().(listItem)
	if !ok {
		return 0, false
	}
	for i, todo := range m.todos.ToArray() {
		if todo == it.todo {
			return i, true
		}
	}
	return 0, false
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.adding {
		return m.updateAdding(msg)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width-4, msg.Height-4)
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case " ":
			if i, ok := m.selected(); ok {
				todo, _ := m.todos.ItemAt(i)
				var err error
				if todo.IsDone() {
					err = m.todos.MarkUndoneAt(i)
				} else {
					err = m.todos.MarkDoneAt(i)
				}
				if err != nil {
					m.logger.Error("toggle", "index", i, "err", err)
					return m, nil
				}
				m.logger.Debug("toggled", "index", i, "done", todo.IsDone())
				m.changed = true
				m.refresh()
			}
			return m, nil
		case "d":
			if i, ok := m.selected(); ok {
				todo, err := m.todos.RemoveAt(i)
				if err != nil {
					m.logger.Error("remove", "index", i, "err", err)
					return m, nil
				}
				m.logger.Debug("removed", "index", i, "title", todo.Title())
				m.changed = true
				m.refresh()
			}
			return m, nil
		case "A":
			if m.todos.Size() > 0 {
				m.todos.MarkAllDone()
				m.changed = true
				m.refresh()
			}
			return m, nil
		case "U":
			if m.todos.Size() > 0 {
				m.todos.MarkAllUndone()
				m.changed = true
				m.refresh()
			}
			return m, nil
		case "v":
			m.view = (m.view + 1) % 3
			m.refresh()
			return m, nil
		case "a":
			m.adding = true
			m.addErr = ""
			m.ti.SetValue("")
			cmd := m.ti.Focus()
			return m, cmd
		}
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) updateAdding(msg tea.Msg) (tea.Model, tea.Cmd) {
	if x, ok := msg.(tea.KeyMsg); ok {
		switch x.String() {
		case "enter":
			title := strings.TrimSpace(m.ti.Value())
			if title == "" {
				m.addErr = "Title cannot be empty"
				return m, nil
			}
			if err := m.todos.Add(model.New(title)); err != nil {
				m.addErr = err.Error()
				return m, nil
			}
			m.logger.Debug("added", "title", title, "size", m.todos.Size())
			m.changed = true
			m.stopAdding()
			m.refresh()
			return m, nil
		case "esc":
			m.stopAdding()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.ti, cmd = m.ti.Update(msg)
	return m, cmd
}

func (m *Model) stopAdding() {
	m.adding = false
	m.addErr = ""
	m.ti.SetValue("")
	m.ti.Blur()
}

func (m Model) View() string {
	content := m.list.View()
	if m.adding {
		t := ui.Current()
		bar := lipgloss.NewStyle().Border(t.Border).BorderForeground(t.BorderColor).Padding(0, 1)
		title := "Add new item"
		if m.addErr != "" {
			title += " - " + t.Error.Render(m.addErr)
		}
		content += "\n" + bar.Render(title+"\n"+m.ti.View())
	}
	return ui.PanelString(content)
}
