package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/Makepad-fr/tada/internal/config"
	"github.com/Makepad-fr/tada/internal/logging"
	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/store"
	"github.com/Makepad-fr/tada/internal/store/jsonstore"
	"github.com/Makepad-fr/tada/internal/store/sqlitestore"
	"github.com/Makepad-fr/tada/internal/tasks"
	"github.com/Makepad-fr/tada/internal/ui"
	"github.com/Makepad-fr/tada/internal/ui/tui"
)

// Run dispatches subcommands and returns an exit code (0 ok, 1 error, 2 usage).
// With no subcommand it starts the interactive list.
func Run(args []string, cfg *config.Config) int {
	ui.SetTheme(cfg.Theme)

	if len(args) == 0 {
		return doInteractive(cfg)
	}
	cmd, a := args[0], args[1:]

	switch cmd {
	case "help", "-h", "--help":
		PrintHelp()
		return 0

	case "ui":
		return doInteractive(cfg)

	case "ls":
		return doList(cfg)

	case "add":
		if len(a) == 0 {
			ui.Fail("usage: todo add <title...>")
			return 2
		}
		return doAdd(cfg, strings.Join(a, " "))

	case "done":
		n, code := indexArg("done", a)
		if code != 0 {
			return code
		}
		return doToggle(cfg, n)

	case "rm":
		n, code := indexArg("rm", a)
		if code != 0 {
			return code
		}
		return doRemove(cfg, n)

	case "clear":
		return doClear(cfg)
	}

	ui.Fail("unknown subcommand: " + cmd)
	fmt.Fprintln(ui.Stderr)
	PrintHelp()
	return 2
}

func indexArg(cmd string, a []string) (int, int) {
	if len(a) != 1 {
		ui.Fail(fmt.Sprintf("usage: todo %s <index>", cmd))
		return 0, 2
	}
	n, err := strconv.Atoi(a[0])
	if err != nil {
		ui.Fail(cmd + ": not a number: " + a[0])
		return 0, 2
	}
	return n, 0
}

func PrintHelp() {
	fmt.Fprint(ui.Stdout, `todo - a tiny keyboard-driven task list

Usage:
  todo [flags] [subcommand] [args]

Subcommands:
  ui                 Edit the list interactively (default)
  ls                 Print the list
  add <title...>     Add a new item (title can be multiple words)
  done <index>       Toggle done for item at 1-based index
  rm <index>         Remove item at 1-based index
  clear              Remove every item marked done

Flags:
  -config <file>     TOML config file
  -store <backend>   json (default), sqlite or memory
  -data <dir>        directory holding tasks.json
  -db <file>         sqlite database file
  -theme <name>      classic, neon or mono
  -group             group ls output by pending/done
  -log-level <lvl>   debug, info, warn or error
  -log-file <file>   append logs to a file

Examples:
  todo add "Buy milk"
  todo ls
  todo done 2
  todo rm 3
`)
}

// -------------- sessions ----------------

// session is one load → mutate → save cycle over a store.
type session struct {
	ctl    *tasks.Controller
	st     store.Store
	logger *log.Logger
	closer io.Closer
}

func openStore(cfg *config.Config) (store.Store, error) {
	switch cfg.Store {
	case config.StoreSQLite:
		return sqlitestore.Open(cfg.DBPath)
	case config.StoreMemory:
		return store.NewMemory(), nil
	default:
		return jsonstore.New(cfg.DataDir)
	}
}

// openSession loads the list. Interactive sessions own the terminal, so
// their logs go to the log file or nowhere.
func openSession(cfg *config.Config, interactive bool) (*session, error) {
	s := &session{}
	switch {
	case cfg.LogFile != "":
		logger, closer, err := logging.OpenFile(cfg.LogFile, cfg.LogLevel)
		if err != nil {
			return nil, err
		}
		s.logger, s.closer = logger, closer
	case interactive:
		s.logger = logging.Discard()
	default:
		s.logger = logging.New(ui.Stderr, cfg.LogLevel)
	}

	st, err := openStore(cfg)
	if err != nil {
		s.close()
		return nil, fmt.Errorf("open %s store: %w", cfg.Store, err)
	}
	s.st = st

	s.ctl = tasks.New(st, tasks.WithLogger(s.logger))
	if err := s.ctl.Hydrate(); err != nil {
		s.close()
		return nil, err
	}
	return s, nil
}

func (s *session) close() {
	if s.st != nil {
		if err := s.st.Close(); err != nil {
			s.logger.Warn("close store", "err", err)
		}
	}
	if s.closer != nil {
		s.closer.Close()
	}
}

// -------------- subcommand impls ----------------

func doInteractive(cfg *config.Config) int {
	s, err := openSession(cfg, true)
	if err != nil {
		ui.Fail("load: " + err.Error())
		return 1
	}
	defer s.close()

	if err := tui.Run(s.ctl, s.logger); err != nil {
		ui.Fail("tui: " + err.Error())
		return 1
	}
	ui.OK("saved")
	return 0
}

func doList(cfg *config.Config) int {
	s, err := openSession(cfg, false)
	if err != nil {
		ui.Fail("load: " + err.Error())
		return 1
	}
	defer s.close()

	items := s.ctl.GetData()
	c := s.ctl.Counts()
	t := ui.Current()

	var lines []string
	lines = append(lines, ui.Header(c.Done, c.Total))
	lines = append(lines, t.Muted.Render(ui.ProgressBar(c.Done, c.Total, 28)))
	lines = append(lines, "")

	if cfg.Group {
		lines = append(lines, groupLines(items)...)
	} else {
		lines = append(lines, flatLines(items)...)
	}
	lines = append(lines, "")
	lines = append(lines, t.Muted.Render("Tip: add with `todo add \"Buy milk\"`"))
	ui.Panel(lines)
	return 0
}

func doAdd(cfg *config.Config, title string) int {
	title = strings.TrimSpace(title)
	if title == "" {
		ui.Fail("add: empty title")
		return 2
	}
	return mutate(cfg, func(ctl *tasks.Controller) (string, int) {
		// an untouched starter row would be saved as a blank task
		if ctl.Seeded() && ctl.Len() == 1 && ctl.Row(0).Task() == model.DefaultTask() {
			ctl.Row(0).Delete().Click()
		}
		ctl.AddItem(&model.Task{Title: title})
		return "added", 0
	})
}

func doToggle(cfg *config.Config, userIndex int) int {
	return mutate(cfg, func(ctl *tasks.Controller) (string, int) {
		r := rowAt(ctl, userIndex)
		if r == nil {
			return "", 2
		}
		r.Done().Toggle()
		return "toggled", 0
	})
}

func doRemove(cfg *config.Config, userIndex int) int {
	return mutate(cfg, func(ctl *tasks.Controller) (string, int) {
		r := rowAt(ctl, userIndex)
		if r == nil {
			return "", 2
		}
		r.Delete().Click()
		return "removed", 0
	})
}

func doClear(cfg *config.Config) int {
	return mutate(cfg, func(ctl *tasks.Controller) (string, int) {
		n := ctl.Counts().Done
		ctl.ClearCompleted()
		return fmt.Sprintf("cleared %d", n), 0
	})
}

// mutate runs fn inside a session and saves the result when fn succeeds.
func mutate(cfg *config.Config, fn func(*tasks.Controller) (string, int)) int {
	s, err := openSession(cfg, false)
	if err != nil {
		ui.Fail("load: " + err.Error())
		return 1
	}
	defer s.close()

	msg, code := fn(s.ctl)
	if code != 0 {
		return code
	}
	if err := s.ctl.Persist(); err != nil {
		ui.Fail("save: " + err.Error())
		return 1
	}
	ui.OK(msg)
	return 0
}

func rowAt(ctl *tasks.Controller, userIndex int) *tasks.Row {
	if userIndex < 1 || userIndex > ctl.Len() {
		ui.Fail(fmt.Sprintf("index out of range: have %d, got %d", ctl.Len(), userIndex))
		ui.Hint("Hint: run `todo ls` to see valid indexes")
		return nil
	}
	return ctl.Row(userIndex - 1)
}

// -------------- rendering helpers --------------

func flatLines(items []model.Task) []string {
	t := ui.Current()
	if len(items) == 0 {
		return []string{t.Muted.Render("no items")}
	}
	out := make([]string, 0, len(items))
	for i, it := range items {
		idx := fmt.Sprintf("%2d.", i+1)
		box := t.Muted.Render(t.Box(false))
		if it.Done {
			box = t.Success.Render(t.Box(true))
		}
		title := it.Title
		if r := []rune(title); len(r) > 80 {
			title = string(r[:77]) + "..."
		}
		if title == "" {
			title = t.Muted.Render("(untitled)")
		}
		out = append(out, fmt.Sprintf("%s %s %s", t.Muted.Render(idx), box, title))
	}
	return out
}

func groupLines(items []model.Task) []string {
	var pend, done []model.Task
	for _, it := range items {
		if it.Done {
			done = append(done, it)
		} else {
			pend = append(pend, it)
		}
	}
	t := ui.Current()
	var lines []string
	lines = append(lines, t.Accent.Render("Pending"))
	if len(pend) == 0 {
		lines = append(lines, t.Muted.Render("(none)"))
	} else {
		lines = append(lines, flatLines(pend)...)
	}
	lines = append(lines, "")
	lines = append(lines, t.Accent.Render("Done"))
	if len(done) == 0 {
		lines = append(lines, t.Muted.Render("(none)"))
	} else {
		lines = append(lines, flatLines(done)...)
	}
	return lines
}
