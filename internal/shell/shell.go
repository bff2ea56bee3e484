// Package shell implements the interactive command loop over a schedule.
package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/kilianp07/tower/core/scenario"
	"github.com/kilianp07/tower/core/scheduler"
)

// Backend is the schedule the shell drives.
type Backend interface {
	scenario.Target
	Flights(filter scheduler.Filter) []scheduler.FlightView
	Aircraft() []scheduler.AircraftView
	Stats() scheduler.StatsSnapshot
	LastReport() (scheduler.Report, bool)
}

// LineReader supplies input lines. Readline returns io.EOF when input ends.
type LineReader interface {
	Readline() (string, error)
}

type command struct {
	name  string
	usage string
	help  string
	run   func(sh *Shell, ctx context.Context, args []string) error
}

var commands []command

func init() {
	commands = []command{
		{"ls", "ls [day] [status]", "List flights; status is s, d, u or an unscheduled reason", (*Shell).ls},
		{"delay", "delay <flight> <minutes>", "Delay a flight by <minutes>", (*Shell).delay},
		{"curfew", "curfew <airport> <from> <to>", "Close an airport between two times", (*Shell).curfew},
		{"maintenance", "maintenance <aircraft> <from> <to> [airport]", "Ground an aircraft, optionally only at one airport", (*Shell).maintenance},
		{"explain", "explain [full]", "Explain the most recent disruption", (*Shell).explain},
		{"recover", "recover", "Try to place unscheduled flights back on an aircraft", (*Shell).recover},
		{"stats", "stats", "Display summary statistics", (*Shell).stats},
		{"aircraft", "aircraft", "Show every rotation and where it ends", (*Shell).aircraft},
		{"help", "help / ?", "Show this help menu", (*Shell).help},
		{"exit", "exit / quit", "Leave the shell", nil},
	}
}

// Commands lists the command names, for completion.
func Commands() []string {
	out := make([]string, 0, len(commands)+2)
	for _, c := range commands {
		out = append(out, c.name)
	}
	return append(out, "quit", "?")
}

// Shell reads commands and prints their outcome.
type Shell struct {
	b     Backend
	in    LineReader
	out   io.Writer
	tty   bool
	pal   palette
	pager string
}

// Option configures a Shell.
type Option func(*Shell)

// WithTerminal overrides terminal detection on the output, which controls
// colors and paging.
func WithTerminal(on bool) Option { return func(sh *Shell) { sh.tty = on } }

// WithPager sets the pager command used for long listings.
func WithPager(cmd string) Option { return func(sh *Shell) { sh.pager = cmd } }

func New(b Backend, in LineReader, out io.Writer, opts ...Option) *Shell {
	sh := &Shell{b: b, in: in, out: out, tty: IsTerminal(out), pager: os.Getenv("PAGER")}
	for _, o := range opts {
		o(sh)
	}
	if sh.pager == "" {
		sh.pager = "less -R"
	}
	sh.pal = newPalette(sh.tty)
	return sh
}

// IsTerminal reports whether w is a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Run processes lines until exit, end of input or ctx cancellation. Command
// errors are printed and do not stop the loop.
func (sh *Shell) Run(ctx context.Context) error {
	for ctx.Err() == nil {
		line, err := sh.in.Readline()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		quit, err := sh.Execute(ctx, line)
		if err != nil {
			sh.pal.bad.Fprintf(sh.out, "%v\n", err)
		}
		if quit {
			return nil
		}
	}
	return nil
}

// Execute runs a single command line. It reports whether the shell should exit.
func (sh *Shell) Execute(ctx context.Context, line string) (bool, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}
	name, args := strings.ToLower(fields[0]), fields[1:]
	switch name {
	case "exit", "quit":
		return true, nil
	case "?":
		name = "help"
	}
	for _, c := range commands {
		if c.name == name && c.run != nil {
			return false, c.run(sh, ctx, args)
		}
	}
	return false, fmt.Errorf("unknown command: %s (try help)", fields[0])
}

func usage(name string) error {
	for _, c := range commands {
		if c.name == name {
			return fmt.Errorf("usage: %s", c.usage)
		}
	}
	return fmt.Errorf("usage: %s", name)
}
