// Package script parses and runs line-oriented drawing scripts against a
// paintcanvas.Canvas. It drives the headless renderer and the tests.
//
// One command per line; blank lines and text after '#' are ignored:
//
//	color #ff0000
//	size 4
//	down 10 10
//	move 40 40
//	up 80 40
//	undo
package script

import (
	"bufio"
	"errors"
	"fmt"
	"image/color"
	"io"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/ha1tch/paintcanvas"
)

var (
	// ErrUnknownCommand is returned for an unrecognised command word.
	ErrUnknownCommand = errors.New("unknown command")
	// ErrArgs is returned when a command has the wrong number or kind of
	// arguments.
	ErrArgs = errors.New("bad arguments")
)

// Op is a script command.
type Op uint8

const (
	OpDown Op = iota + 1
	OpMove
	OpUp
	OpUndo
	OpRedo
	OpReplay
	OpReset
	OpColor
	OpSize
	OpBackground
	OpResize
)

var opNames = map[string]Op{
	"down":       OpDown,
	"move":       OpMove,
	"up":         OpUp,
	"undo":       OpUndo,
	"redo":       OpRedo,
	"replay":     OpReplay,
	"reset":      OpReset,
	"color":      OpColor,
	"size":       OpSize,
	"background": OpBackground,
	"resize":     OpResize,
}

func (o Op) String() string {
	for name, op := range opNames {
		if op == o {
			return name
		}
	}
	return fmt.Sprintf("Op(%d)", uint8(o))
}

// Command is one parsed script line. Only the fields used by Op are set.
type Command struct {
	Line     int
	Op       Op
	X, Y     float64
	Contacts int
	N        int
	W, H     int
	Size     float64
	Color    color.Color
}

// Error reports a failure at a script line.
type Error struct {
	Line int
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("script: line %d: %v", e.Line, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Parse reads a whole script. It stops at the first malformed line.
func Parse(r io.Reader) ([]Command, error) {
	var cmds []Command
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := scanner.Text()
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = text[:i]
		}
		fields := strings.Fields(text)
		if len(fields) == 0 {
			continue
		}
		cmd, err := parseCommand(fields)
		if err != nil {
			return nil, &Error{Line: line, Err: err}
		}
		cmd.Line = line
		cmds = append(cmds, cmd)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("script: reading: %w", err)
	}
	return cmds, nil
}

func parseCommand(fields []string) (Command, error) {
	op, ok := opNames[strings.ToLower(fields[0])]
	if !ok {
		return Command{}, fmt.Errorf("%w %q", ErrUnknownCommand, fields[0])
	}
	cmd := Command{Op: op}
	args := fields[1:]
	switch op {
	case OpDown, OpMove, OpUp:
		if len(args) != 2 && len(args) != 3 {
			return cmd, fmt.Errorf("%w: %s wants X Y [CONTACTS], got %d values", ErrArgs, op, len(args))
		}
		var err error
		if cmd.X, err = parseFloat(args[0]); err != nil {
			return cmd, err
		}
		if cmd.Y, err = parseFloat(args[1]); err != nil {
			return cmd, err
		}
		cmd.Contacts = 1
		if len(args) == 3 {
			if cmd.Contacts, err = parseInt(args[2]); err != nil {
				return cmd, err
			}
		}
	case OpUndo, OpRedo, OpReset:
		if len(args) != 0 {
			return cmd, fmt.Errorf("%w: %s takes no values", ErrArgs, op)
		}
	case OpReplay:
		if len(args) != 1 {
			return cmd, fmt.Errorf("%w: replay wants N", ErrArgs)
		}
		var err error
		if cmd.N, err = parseInt(args[0]); err != nil {
			return cmd, err
		}
	case OpColor, OpBackground:
		if len(args) != 1 {
			return cmd, fmt.Errorf("%w: %s wants a hex color", ErrArgs, op)
		}
		c, err := paintcanvas.ParseColor(args[0])
		if err != nil {
			return cmd, err
		}
		cmd.Color = c
	case OpSize:
		if len(args) != 1 {
			return cmd, fmt.Errorf("%w: size wants N", ErrArgs)
		}
		var err error
		if cmd.Size, err = parseFloat(args[0]); err != nil {
			return cmd, err
		}
	case OpResize:
		if len(args) != 2 {
			return cmd, fmt.Errorf("%w: resize wants W H", ErrArgs)
		}
		var err error
		if cmd.W, err = parseInt(args[0]); err != nil {
			return cmd, err
		}
		if cmd.H, err = parseInt(args[1]); err != nil {
			return cmd, err
		}
	}
	return cmd, nil
}

func parseFloat(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %q is not a finite number", ErrArgs, s)
	}
	return v, nil
}

func parseInt(s string) (int, error) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not an integer", ErrArgs, s)
	}
	return v, nil
}

// Stats summarises a run.
type Stats struct {
	Commands int
	// Refused counts undo, redo and replay commands that changed nothing.
	Refused int
}

// Run executes cmds in order. Configuration errors abort the run with the
// offending line; refused history moves are counted, not treated as errors.
func Run(c *paintcanvas.Canvas, cmds []Command) (Stats, error) {
	var st Stats
	for _, cmd := range cmds {
		if err := apply(c, cmd, &st); err != nil {
			return st, &Error{Line: cmd.Line, Err: err}
		}
		st.Commands++
	}
	return st, nil
}

// Exec parses r and runs it against c.
func Exec(c *paintcanvas.Canvas, r io.Reader) (Stats, error) {
	cmds, err := Parse(r)
	if err != nil {
		return Stats{}, err
	}
	return Run(c, cmds)
}

func apply(c *paintcanvas.Canvas, cmd Command, st *Stats) error {
	switch cmd.Op {
	case OpDown:
		c.Handle(paintcanvas.Event{Kind: paintcanvas.GestureStart, X: cmd.X, Y: cmd.Y, Contacts: cmd.Contacts})
	case OpMove:
		c.Handle(paintcanvas.Event{Kind: paintcanvas.GestureMove, X: cmd.X, Y: cmd.Y, Contacts: cmd.Contacts})
	case OpUp:
		c.Handle(paintcanvas.Event{Kind: paintcanvas.GestureEnd, X: cmd.X, Y: cmd.Y, Contacts: cmd.Contacts})
	case OpUndo:
		refused(c.Undo(), cmd, st)
	case OpRedo:
		refused(c.Redo(), cmd, st)
	case OpReplay:
		refused(c.ReplayTo(cmd.N), cmd, st)
	case OpReset:
		c.Reset()
	case OpColor:
		return c.SetColor(cmd.Color)
	case OpSize:
		return c.SetBrushSize(cmd.Size)
	case OpBackground:
		return c.SetBackground(cmd.Color)
	case OpResize:
		return c.SetSize(cmd.W, cmd.H)
	default:
		return fmt.Errorf("%w %s", ErrUnknownCommand, cmd.Op)
	}
	return nil
}

func refused(moved bool, cmd Command, st *Stats) {
	if moved {
		return
	}
	st.Refused++
	paintcanvas.Logger().Debug("script: history unchanged",
		slog.Int("line", cmd.Line),
		slog.String("op", cmd.Op.String()))
}
