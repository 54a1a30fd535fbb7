package dashboard

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"
	"unicode/utf8"

	"github.com/portfolio/backend/internal/model"
)

const (
	consolePrompt  = "> "
	confirmPrompt  = "Are you sure you want to delete this message? [y/N] "
	messagePreview = 60
)

const consoleHelp = `Commands:
  login <password>   unlock the dashboard
  logout             lock the dashboard
  list               show messages matching the current filters
  search <text>      filter by name, email or message (case-insensitive)
  from <YYYY-MM-DD>  only messages on or after this date ("from" alone clears)
  to <YYYY-MM-DD>    only messages on or before this date ("to" alone clears)
  clear              remove all filters
  delete <id>        delete one message after confirmation
  export <file>      write the filtered messages to an .xlsx file
  help               show this help
  quit               exit`

// Console drives a Gate and a Board from line-oriented input.
type Console struct {
	gate  *Gate
	board *Board
	loc   *time.Location

	in  *bufio.Scanner
	out io.Writer

	// CreateFile opens export targets; os.Create by default.
	CreateFile func(path string) (io.WriteCloser, error)
}

func NewConsole(gate *Gate, board *Board, in io.Reader, out io.Writer, loc *time.Location) *Console {
	if loc == nil {
		loc = time.Local
	}
	return &Console{
		gate:  gate,
		board: board,
		loc:   loc,
		in:    bufio.NewScanner(in),
		out:   out,
		CreateFile: func(path string) (io.WriteCloser, error) {
			return os.Create(path)
		},
	}
}

// Run mounts the gate, loads the list when already authed and then serves
// commands until quit or end of input.
func (c *Console) Run(ctx context.Context) error {
	if c.gate.Mount() == Authed {
		c.enterAuthed(ctx)
	} else {
		c.println("Dashboard locked. Type \"login <password>\".")
	}

	for {
		fmt.Fprint(c.out, consolePrompt)
		if !c.in.Scan() {
			c.println("")
			return c.in.Err()
		}
		if quit := c.exec(ctx, c.in.Text()); quit {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
	}
}

func (c *Console) println(a ...any) {
	fmt.Fprintln(c.out, a...)
}

func (c *Console) enterAuthed(ctx context.Context) {
	if err := c.board.Load(ctx); err != nil {
		c.println(c.board.Err())
		return
	}
	c.list()
}

// exec runs one command line and reports whether the console should exit.
func (c *Console) exec(ctx context.Context, line string) bool {
	cmd, arg, _ := strings.Cut(strings.TrimLeft(line, " \t"), " ")
	cmd = strings.ToLower(cmd)

	switch cmd {
	case "":
		return false
	case "quit", "exit":
		return true
	case "help":
		c.println(consoleHelp)
		return false
	case "login":
		c.login(ctx, arg)
		return false
	}

	if c.gate.State() != Authed {
		c.println("Log in first.")
		return false
	}

	switch cmd {
	case "logout":
		if err := c.gate.Logout(); err != nil {
			c.println("Could not clear the saved session:", err)
		}
		c.board.Reset()
		c.println("Logged out.")
	case "list":
		c.list()
	case "search":
		c.board.SetSearch(arg)
		c.list()
	case "from":
		c.setDate(c.board.SetFromDate, arg)
	case "to":
		c.setDate(c.board.SetToDate, arg)
	case "clear":
		c.board.ClearFilters()
		c.list()
	case "delete":
		c.delete(ctx, strings.TrimSpace(arg))
	case "export":
		c.export(strings.TrimSpace(arg))
	default:
		c.println("Unknown command. Type \"help\".")
	}
	return false
}

func (c *Console) login(ctx context.Context, password string) {
	if c.gate.State() == Authed {
		c.println("Already logged in.")
		return
	}
	if err := c.gate.Login(password); err != nil {
		c.println(LoginMessage(err))
		return
	}
	c.println("Logged in.")
	c.enterAuthed(ctx)
}

func (c *Console) setDate(set func(string) error, arg string) {
	if err := set(strings.TrimSpace(arg)); err != nil {
		c.println("Invalid date, use YYYY-MM-DD.")
		return
	}
	c.list()
}

func (c *Console) list() {
	if msg := c.board.Err(); msg != "" {
		c.println(msg)
	}
	all := c.board.Messages()
	visible := c.board.Visible()
	switch {
	case len(all) == 0:
		c.println("No messages.")
		return
	case len(visible) == 0:
		c.println("No messages match the current filters.")
		return
	}

	tw := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tEMAIL\tDATE\tMESSAGE")
	for _, m := range visible {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", m.ID, m.Name, m.Email, FormatDateTime(m.CreatedAt, c.loc), preview(m.Message))
	}
	_ = tw.Flush()
	footer := fmt.Sprintf("%d of %d messages", len(visible), len(all))
	if c.board.Filter().Active() {
		footer += " (filtered, \"clear\" to reset)"
	}
	c.println(footer)
}

func (c *Console) confirm(m *model.ContactMessage) bool {
	fmt.Fprintf(c.out, "%s <%s>: %s\n", m.Name, m.Email, preview(m.Message))
	fmt.Fprint(c.out, confirmPrompt)
	if !c.in.Scan() {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(c.in.Text()))
	return answer == "y" || answer == "yes"
}

func (c *Console) delete(ctx context.Context, id string) {
	if id == "" {
		c.println("Usage: delete <id>")
		return
	}
	deleted, err := c.board.Delete(ctx, id, c.confirm)
	switch {
	case errors.Is(err, ErrNotListed):
		c.println("No message with id " + id + ".")
	case errors.Is(err, ErrDeleteInFlight):
		c.println("That message is already being deleted.")
	case err != nil:
		c.println(c.board.Err())
	case deleted:
		c.println("Deleted.")
	default:
		c.println("Cancelled.")
	}
}

func (c *Console) export(path string) {
	if path == "" {
		c.println("Usage: export <file.xlsx>")
		return
	}
	visible := c.board.Visible()
	f, err := c.CreateFile(path)
	if err != nil {
		c.println("Export failed:", err)
		return
	}
	if err := ExportXLSX(f, visible, c.loc); err != nil {
		_ = f.Close()
		c.println("Export failed:", err)
		return
	}
	if err := f.Close(); err != nil {
		c.println("Export failed:", err)
		return
	}
	c.println(fmt.Sprintf("Exported %d messages to %s.", len(visible), path))
}

// preview flattens a message to one line of at most messagePreview runes.
func preview(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if utf8.RuneCountInString(s) <= messagePreview {
		return s
	}
	r := []rune(s)
	return string(r[:messagePreview-3]) + "..."
}
