// Package cli dispatches todo subcommands against the JSON-backed list.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/x/ansi"

	"github.com/Makepad-fr/todolist/internal/config"
	"github.com/Makepad-fr/todolist/internal/logging"
	"github.com/Makepad-fr/todolist/internal/model"
	"github.com/Makepad-fr/todolist/internal/store/jsonstore"
	"github.com/Makepad-fr/todolist/internal/tui"
	"github.com/Makepad-fr/todolist/internal/ui"
)

// Exit codes returned by Run.
const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

// Options carry the loaded configuration and I/O for a run.
type Options struct {
	Config      *config.Config
	Logger      *log.Logger
	Stdout      io.Writer
	Stderr      io.Writer
	Interactive bool // stdout is a terminal; `ls` opens the TUI
}

type runner struct {
	cfg         *config.Config
	log         *log.Logger
	out, errOut io.Writer
	interactive bool
}

// Run dispatches subcommands and returns an exit code (0 ok, 1 error, 2 usage).
func Run(args []string, opt Options) int {
	r := newRunner(opt)
	if len(args) == 0 {
		PrintHelp(r.out)
		return ExitUsage
	}
	cmd, a := args[0], args[1:]
	r.log.Debug("command", "name", cmd, "args", a, "file", r.cfg.File)

	switch cmd {
	case "help", "-h", "--help":
		PrintHelp(r.out)
		return ExitOK

	case "ls":
		return r.doList()

	case "print":
		return r.doPrint()

	case "status":
		return r.doStatus()

	case "add":
		if len(a) == 0 {
			return r.usage("todo add <title...>")
		}
		return r.doAdd(strings.Join(a, " "))

	case "show", "undone", "toggle", "rm":
		if len(a) != 1 {
			return r.usage("todo " + cmd + " <index>")
		}
		return r.doIndexed(cmd, a[0])

	case "done":
		if len(a) == 0 {
			return r.usage("todo done <index|title...>")
		}
		if len(a) == 1 && isNumber(a[0]) {
			return r.doIndexed(cmd, a[0])
		}
		return r.doDoneByTitle(strings.Join(a, " "))

	case "done-all", "undone-all":
		return r.doMarkAll(cmd == "done-all")

	case "shift", "pop":
		return r.doTake(cmd)

	case "first", "last":
		return r.doPeek(cmd)

	case "find":
		if len(a) == 0 {
			return r.usage("todo find <title...>")
		}
		return r.doFind(strings.Join(a, " "))
	}

	r.fail("unknown subcommand: " + cmd)
	fmt.Fprintln(r.errOut)
	PrintHelp(r.errOut)
	return ExitUsage
}

// PrintHelp writes the usage text to w.
func PrintHelp(w io.Writer) {
	fmt.Fprint(w, `todo - a tiny CLI

Usage:
  todo [flags] <subcommand> [args]

Subcommands:
  add <title...>          Add a new item (title can be multiple words)
  ls                      List items (interactive on a terminal, see -plain)
  print                   Print the list as plain text
  show <index>            Show the item at 1-based index
  done <index|title...>   Mark an item done by index or by title (case-insensitive)
  undone <index>          Mark the item at 1-based index not done
  toggle <index>          Toggle done for the item at 1-based index
  done-all / undone-all   Mark every item done / not done
  rm <index>              Remove the item at 1-based index
  shift / pop             Remove the first / last item
  first / last            Show the first / last item
  find <title...>         Find an item by title (case-insensitive)
  status                  Report whether every item is done

Flags:
  -file <path>  -title <text>  -theme classic|neon|mono  -group  -plain
  -log-level debug|info|warn|error  -log-format text|json|logfmt  -log-time

Examples:
  todo add "Buy milk"
  todo ls
  todo done buy milk
  todo rm 3
`)
}

// IsTerminal reports whether f is a character device.
func IsTerminal(f *os.File) bool {
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}

func newRunner(opt Options) *runner {
	r := &runner{
		cfg:         opt.Config,
		log:         opt.Logger,
		out:         opt.Stdout,
		errOut:      opt.Stderr,
		interactive: opt.Interactive,
	}
	if r.cfg == nil {
		r.cfg = &config.Config{File: config.DefaultFile, Title: config.DefaultTitle}
	}
	if r.log == nil {
		r.log = logging.Discard()
	}
	if r.out == nil {
		r.out = os.Stdout
	}
	if r.errOut == nil {
		r.errOut = os.Stderr
	}
	return r
}

func (r *runner) ok(msg string)   { ui.OK(r.out, msg) }
func (r *runner) fail(msg string) { ui.Fail(r.errOut, msg) }

func (r *runner) usage(msg string) int {
	r.fail("usage: " + msg)
	return ExitUsage
}

func (r *runner) load() (*model.TodoList, error) {
	list, err := jsonstore.Load(r.cfg.File, r.cfg.Title)
	if err != nil {
		r.fail("load: " + err.Error())
		return nil, err
	}
	r.log.Debug("loaded", "file", r.cfg.File, "size", list.Size())
	return list, nil
}

func (r *runner) save(list *model.TodoList) int {
	if err := jsonstore.Save(r.cfg.File, list); err != nil {
		r.fail("save: " + err.Error())
		return ExitError
	}
	r.log.Debug("saved", "file", r.cfg.File, "size", list.Size())
	return ExitOK
}

// -------------- subcommand impls ----------------

func (r *runner) doList() int {
	list, err := r.load()
	if err != nil {
		return ExitError
	}
	if r.interactive && !r.cfg.Plain {
		changed, err := tui.Run(list, tui.Options{Group: r.cfg.Group, Logger: r.log})
		if err != nil {
			r.fail("tui: " + err.Error())
			return ExitError
		}
		if !changed {
			return ExitOK
		}
		if code := r.save(list); code != ExitOK {
			return code
		}
		r.ok("saved")
		return ExitOK
	}

	t := ui.Current()
	d := list.AllDone().Size()
	header := fmt.Sprintf("%s  %s %d  %s %d  %s %d",
		t.Title.Render(list.Title()),
		t.Success.Render(t.SymDone), d,
		t.Pending.Render(t.SymPending), list.Size()-d,
		t.Accent.Render("Total"), list.Size(),
	)

	lines := []string{header, ui.Muted(ui.ProgressBar(d, list.Size(), 28)), ""}
	if r.cfg.Group {
		lines = append(lines, groupLines(list)...)
	} else {
		lines = append(lines, flatLines(list, list)...)
	}
	lines = append(lines, "", ui.Muted("Tip: add with `todo add \"Buy milk\"`"))
	ui.Panel(r.out, lines)
	return ExitOK
}

func (r *runner) doPrint() int {
	list, err := r.load()
	if err != nil {
		return ExitError
	}
	fmt.Fprintln(r.out, list.String())
	return ExitOK
}

func (r *runner) doStatus() int {
	list, err := r.load()
	if err != nil {
		return ExitError
	}
	done := list.AllDone().Size()
	fmt.Fprintf(r.out, "%s: %d/%d done\n", list.Title(), done, list.Size())
	if list.IsDone() {
		r.ok("all done")
	} else {
		fmt.Fprintln(r.out, ui.Muted(fmt.Sprintf("%d pending", list.Size()-done)))
	}
	return ExitOK
}

func (r *runner) doAdd(title string) int {
	title = strings.TrimSpace(title)
	if title == "" {
		r.fail("add: empty title")
		return ExitUsage
	}
	list, err := r.load()
	if err != nil {
		return ExitError
	}
	if err := list.Add(model.New(title)); err != nil {
		r.fail("add: " + err.Error())
		return ExitError
	}
	if code := r.save(list); code != ExitOK {
		return code
	}
	r.ok("added")
	return ExitOK
}

// doIndexed runs the subcommands that address one item by 1-based index.
func (r *runner) doIndexed(cmd, arg string) int {
	list, err := r.load()
	if err != nil {
		return ExitError
	}
	idx, err := parseIndex(arg)
	if err == nil {
		err = r.applyIndexed(list, cmd, idx)
	}
	if err != nil {
		var ie *model.IndexError
		if errors.As(err, &ie) && ie.Raw != "" {
			r.fail(cmd + ": " + err.Error())
			return ExitUsage
		}
		if errors.Is(err, model.ErrInvalidIndex) {
			r.fail(fmt.Sprintf("%s: index out of range: have %d, got %s", cmd, list.Size(), arg))
			fmt.Fprintln(r.errOut, ui.Muted("Hint: run `todo ls` to see valid indexes"))
			return ExitUsage
		}
		r.fail(cmd + ": " + err.Error())
		return ExitError
	}
	if cmd == "show" {
		return ExitOK
	}
	return r.save(list)
}

func (r *runner) applyIndexed(list *model.TodoList, cmd string, idx int) error {
	switch cmd {
	case "show":
		todo, err := list.ItemAt(idx)
		if err != nil {
			return err
		}
		fmt.Fprintln(r.out, todo)
	case "done":
		if err := list.MarkDoneAt(idx); err != nil {
			return err
		}
		r.ok("done")
	case "undone":
		if err := list.MarkUndoneAt(idx); err != nil {
			return err
		}
		r.ok("undone")
	case "toggle":
		todo, err := list.ItemAt(idx)
		if err != nil {
			return err
		}
		if todo.IsDone() {
			err = list.MarkUndoneAt(idx)
		} else {
			err = list.MarkDoneAt(idx)
		}
		if err != nil {
			return err
		}
		r.ok("toggled")
	case "rm":
		todo, err := list.RemoveAt(idx)
		if err != nil {
			return err
		}
		r.ok("removed " + todo.String())
	default:
		return fmt.Errorf("unknown indexed command %q", cmd)
	}
	r.log.Debug(cmd, "index", idx)
	return nil
}

func (r *runner) doDoneByTitle(title string) int {
	list, err := r.load()
	if err != nil {
		return ExitError
	}
	if !list.MarkDone(title) {
		fmt.Fprintln(r.out, ui.Muted(fmt.Sprintf("no item titled %q", title)))
		return ExitOK
	}
	if code := r.save(list); code != ExitOK {
		return code
	}
	r.ok("done")
	return ExitOK
}

func (r *runner) doMarkAll(done bool) int {
	list, err := r.load()
	if err != nil {
		return ExitError
	}
	msg := "all undone"
	if done {
		list.MarkAllDone()
		msg = "all done"
	} else {
		list.MarkAllUndone()
	}
	if code := r.save(list); code != ExitOK {
		return code
	}
	r.ok(msg)
	return ExitOK
}

func (r *runner) doTake(cmd string) int {
	list, err := r.load()
	if err != nil {
		return ExitError
	}
	take := list.Shift
	if cmd == "pop" {
		take = list.Pop
	}
	todo, ok := take()
	if !ok {
		fmt.Fprintln(r.out, ui.Muted("list is empty"))
		return ExitOK
	}
	if code := r.save(list); code != ExitOK {
		return code
	}
	r.ok("removed " + todo.String())
	return ExitOK
}

func (r *runner) doPeek(cmd string) int {
	list, err := r.load()
	if err != nil {
		return ExitError
	}
	peek := list.First
	if cmd == "last" {
		peek = list.Last
	}
	todo, ok := peek()
	if !ok {
		fmt.Fprintln(r.out, ui.Muted("list is empty"))
		return ExitOK
	}
	fmt.Fprintln(r.out, todo)
	return ExitOK
}

func (r *runner) doFind(title string) int {
	list, err := r.load()
	if err != nil {
		return ExitError
	}
	todo, ok := list.FindByTitle(title)
	if !ok {
		r.fail(fmt.Sprintf("find: no item titled %q", title))
		return ExitError
	}
	fmt.Fprintln(r.out, todo)
	return ExitOK
}

// -------------- helpers --------------

func isNumber(s string) bool {
	_, err := strconv.Atoi(s)
	return err == nil
}

// maxTitleWidth is the display width at which listed titles are cut.
const maxTitleWidth = 80

// parseIndex converts a 1-based user index to a 0-based list index.
// Input that is not an integer is reported as an invalid index.
func parseIndex(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, &model.IndexError{Raw: s}
	}
	return n - 1, nil
}

// flatLines renders the items of part, numbered by their 1-based position in
// list so the numbers can be passed back to done/undone/toggle/rm.
func flatLines(list, part *model.TodoList) []string {
	t := ui.Current()
	if part.Size() == 0 {
		return []string{t.Muted.Render("no items")}
	}
	pos := make(map[*model.Todo]int, list.Size())
	for i, todo := range list.ToArray() {
		pos[todo] = i + 1
	}
	out := make([]string, 0, part.Size())
	part.ForEach(func(todo *model.Todo) {
		title := ansi.Truncate(todo.Title(), maxTitleWidth, "...")
		box := t.Muted.Render(t.Box(false))
		if todo.IsDone() {
			box, title = t.Success.Render(t.Box(true)), t.Done.Render(title)
		}
		out = append(out, fmt.Sprintf("%2d. %s %s", pos[todo], box, title))
	})
	return out
}

func groupLines(list *model.TodoList) []string {
	t := ui.Current()
	section := func(name string, part *model.TodoList) []string {
		lines := []string{t.Accent.Render(name)}
		if part.Size() == 0 {
			return append(lines, t.Muted.Render("(none)"))
		}
		return append(lines, flatLines(list, part)...)
	}
	lines := section("Pending", list.AllNotDone())
	lines = append(lines, "")
	return append(lines, section("Done", list.AllDone())...)
}
