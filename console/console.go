// Package console turns typed commands into clicks on the headless engine.
//
//	click deck | click table | click held | click hand N
//	deal
//	status
//	quit
package console

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"golf-client/engine"
	"golf-client/golf"
	"golf-client/view"
)

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrNotPlayable    = errors.New("nothing to click there")
	errQuit           = errors.New("quit")
)

// Runner runs fn on the goroutine that owns the view.
type Runner interface {
	Do(ctx context.Context, fn func(v *view.View)) error
}

// Pointer simulates presses on engine objects.
type Pointer interface {
	Click(h engine.CardHandle) bool
	ClickButton() bool
}

// Command is one parsed console line.
type Command struct {
	Verb string
	Zone golf.Zone
}

// Parse reads a console line.
func Parse(line string) (Command, error) {
	f := strings.Fields(strings.ToLower(line))
	if len(f) == 0 {
		return Command{}, nil
	}
	switch f[0] {
	case "deal", "status", "quit", "help":
		if len(f) != 1 {
			return Command{}, fmt.Errorf("%w: %q takes no arguments", ErrUnknownCommand, f[0])
		}
		return Command{Verb: f[0]}, nil
	case "click":
	default:
		return Command{}, fmt.Errorf("%w: %q", ErrUnknownCommand, f[0])
	}

	if len(f) < 2 {
		return Command{}, fmt.Errorf("%w: click what?", ErrUnknownCommand)
	}
	switch z := golf.Zone(f[1]); z {
	case golf.ZoneDeck, golf.ZoneTable, golf.ZoneHeld:
		if len(f) != 2 {
			break
		}
		return Command{Verb: "click", Zone: z}, nil
	case "hand":
		if len(f) != 3 {
			break
		}
		i, err := strconv.Atoi(f[2])
		if err != nil || i < 0 {
			return Command{}, fmt.Errorf("%w: bad hand index %q", ErrUnknownCommand, f[2])
		}
		return Command{Verb: "click", Zone: golf.HandZone(i)}, nil
	}
	return Command{}, fmt.Errorf("%w: %q", ErrUnknownCommand, line)
}

// Console executes commands against a running session.
type Console struct {
	run Runner
	ptr Pointer
	out io.Writer
}

// New returns a console writing replies to out.
func New(run Runner, ptr Pointer, out io.Writer) *Console {
	return &Console{run: run, ptr: ptr, out: out}
}

// Run reads commands from in until EOF, "quit" or ctx is done. Bad
// commands are reported to out and do not stop the loop.
func (c *Console) Run(ctx context.Context, in io.Reader) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	lines := make(chan string)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			err := c.Exec(ctx, line)
			switch {
			case errors.Is(err, errQuit):
				return nil
			case errors.Is(err, ErrUnknownCommand), errors.Is(err, ErrNotPlayable):
				fmt.Fprintln(c.out, err)
			case err != nil:
				return err
			}
		}
	}
}

// Exec runs one command line.
func (c *Console) Exec(ctx context.Context, line string) error {
	cmd, err := Parse(line)
	if err != nil {
		return err
	}
	switch cmd.Verb {
	case "":
		return nil
	case "quit":
		return errQuit
	case "help":
		fmt.Fprintln(c.out, "commands: click deck|table|held|hand N, deal, status, quit")
		return nil
	case "status":
		return c.status(ctx)
	case "deal":
		return c.press(ctx, "deal button", func(*view.View) bool { return c.ptr.ClickButton() })
	}
	return c.press(ctx, string(cmd.Zone), func(v *view.View) bool {
		h, ok := v.Handle(cmd.Zone)
		return ok && c.ptr.Click(h)
	})
}

func (c *Console) press(ctx context.Context, what string, click func(v *view.View) bool) error {
	var pressed bool
	if err := c.run.Do(ctx, func(v *view.View) { pressed = click(v) }); err != nil {
		return err
	}
	if !pressed {
		return fmt.Errorf("%w: %s", ErrNotPlayable, what)
	}
	slog.Debug("pressed", "tag", "console", "target", what)
	return nil
}

func (c *Console) status(ctx context.Context) error {
	var s view.Summary
	if err := c.run.Do(ctx, func(v *view.View) { s = v.Summary() }); err != nil {
		return err
	}
	enc := json.NewEncoder(c.out)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}
