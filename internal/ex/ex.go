// Package ex implements the command-line mode: collecting a typed ex
// command and executing it. Only the commands touching the key-mapping
// core plus a handful of navigation commands are implemented.
package ex

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jubalh/vimb/internal/event"
	"github.com/jubalh/vimb/internal/keycode"
	"github.com/jubalh/vimb/internal/keymap"
	"github.com/jubalh/vimb/internal/logger"
	"github.com/jubalh/vimb/internal/mode"
)

// API is what ex commands may do to the surrounding application.
type API interface {
	OpenUri(uri string)
	Quit()
	SetMapTimeout(d time.Duration)
}

// argument flags, deciding how the text after the command name is split
const (
	flagNone = 0
	flagLHS  = 1 << iota // single word after the command name
	flagRHS              // remainder of the line, may contain spaces
)

// command describes one ex command.
type command struct {
	name    string
	flags   int
	mapMode mode.ID // for the map/unmap family
	fn      func(h *Handler, c *command, lhs, rhs string) (string, error)
}

var commands = []command{
	{name: "cmap", flags: flagLHS | flagRHS, mapMode: mode.CommandLine, fn: cmdMap},
	{name: "cunmap", flags: flagLHS, mapMode: mode.CommandLine, fn: cmdUnmap},
	{name: "imap", flags: flagLHS | flagRHS, mapMode: mode.Insert, fn: cmdMap},
	{name: "iunmap", flags: flagLHS, mapMode: mode.Insert, fn: cmdUnmap},
	{name: "nmap", flags: flagLHS | flagRHS, mapMode: mode.Normal, fn: cmdMap},
	{name: "nunmap", flags: flagLHS, mapMode: mode.Normal, fn: cmdUnmap},
	{name: "open", flags: flagRHS, fn: cmdOpen},
	{name: "o", flags: flagRHS, fn: cmdOpen},
	{name: "quit", flags: flagNone, fn: cmdQuit},
	{name: "q", flags: flagNone, fn: cmdQuit},
	{name: "set", flags: flagRHS, fn: cmdSet},
}

// Handler is the command-line mode dispatcher. Resolved keys arrive one at
// a time; printable bytes build up the command line, CR executes it.
type Handler struct {
	table  *keymap.Table
	modes  *mode.Manager
	events *event.Manager
	api    API
	line   []byte
}

// New creates the command-line mode handler.
func New(table *keymap.Table, modes *mode.Manager, events *event.Manager, api API) *Handler {
	return &Handler{
		table:  table,
		modes:  modes,
		events: events,
		api:    api,
	}
}

// ID returns the mode this handler serves.
func (h *Handler) ID() mode.ID { return mode.CommandLine }

// Enter resets the command line.
func (h *Handler) Enter() {
	h.line = h.line[:0]
	h.publishLine()
}

// Leave clears the command line display.
func (h *Handler) Leave() {
	h.line = h.line[:0]
}

// KeyPress collects one resolved key into the command line.
func (h *Handler) KeyPress(key int) mode.Result {
	switch key {
	case int(keycode.KeyCR):
		input := string(h.line)
		h.leaveToNormal()
		h.run(input)
		return mode.ResultComplete

	case int(keycode.KeyEsc):
		h.leaveToNormal()
		return mode.ResultComplete

	case int(keycode.KeyBS):
		if len(h.line) == 0 {
			h.leaveToNormal()
			return mode.ResultComplete
		}
		h.line = h.line[:len(h.line)-1]
		h.publishLine()
		return mode.ResultMore

	default:
		// special keys have no meaning on the plain command line
		if key > 0xff {
			return mode.ResultMore
		}
		h.line = append(h.line, byte(key))
		h.publishLine()
		return mode.ResultMore
	}
}

// Execute parses and runs one ex command line. The returned message is
// informational; an unknown command or a failing command returns an error.
func (h *Handler) Execute(input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", nil
	}

	name := input
	rest := ""
	if i := strings.IndexByte(input, ' '); i >= 0 {
		name = input[:i]
		rest = strings.TrimSpace(input[i+1:])
	}

	for i := range commands {
		cmd := &commands[i]
		if cmd.name != name {
			continue
		}
		lhs, rhs := splitArgs(cmd.flags, rest)
		if cmd.flags&flagLHS != 0 && lhs == "" {
			return "", fmt.Errorf("%s: argument required", cmd.name)
		}
		return cmd.fn(h, cmd, lhs, rhs)
	}
	return "", fmt.Errorf("unknown command: %s", name)
}

// splitArgs splits the text after the command name according to the
// command's argument flags.
func splitArgs(flags int, rest string) (lhs, rhs string) {
	if flags&flagLHS == 0 {
		return "", rest
	}
	if i := strings.IndexByte(rest, ' '); i >= 0 {
		return rest[:i], strings.TrimSpace(rest[i+1:])
	}
	return rest, ""
}

func (h *Handler) run(input string) {
	msg, err := h.Execute(input)
	if err != nil {
		logger.DebugTagf("ex", "command %q failed: %v", input, err)
	}
	if h.events != nil {
		h.events.Dispatch(event.TypeCommandExecuted, event.CommandExecutedData{
			Command: input,
			Message: msg,
			Err:     err,
		})
	}
}

func (h *Handler) leaveToNormal() {
	if err := h.modes.Enter(mode.Normal); err != nil {
		logger.Errorf("ex: cannot leave command line: %v", err)
	}
}

func (h *Handler) publishLine() {
	if h.events != nil {
		h.events.Dispatch(event.TypeCommandLineChanged, event.CommandLineData{
			Text: string(h.line),
		})
	}
}

// --- command implementations ---

func cmdMap(h *Handler, c *command, lhs, rhs string) (string, error) {
	if rhs == "" {
		return "", fmt.Errorf("%s: right hand side required", c.name)
	}
	h.table.Insert(lhs, rhs, c.mapMode)
	return "", nil
}

func cmdUnmap(h *Handler, c *command, lhs, _ string) (string, error) {
	if !h.table.Remove(lhs, c.mapMode) {
		return "", fmt.Errorf("%s: no mapping for %s", c.name, lhs)
	}
	return "", nil
}

func cmdOpen(h *Handler, _ *command, _, rhs string) (string, error) {
	if rhs == "" {
		return "", fmt.Errorf("open: uri required")
	}
	h.api.OpenUri(rhs)
	return "", nil
}

func cmdQuit(h *Handler, _ *command, _, _ string) (string, error) {
	h.api.Quit()
	return "", nil
}

func cmdSet(h *Handler, _ *command, _, rhs string) (string, error) {
	name, value, found := strings.Cut(rhs, "=")
	if !found {
		return "", fmt.Errorf("set: expected var=value, got %q", rhs)
	}
	switch name {
	case "timeoutlen":
		ms, err := strconv.Atoi(value)
		if err != nil || ms < 0 {
			return "", fmt.Errorf("set: invalid timeoutlen %q", value)
		}
		h.api.SetMapTimeout(time.Duration(ms) * time.Millisecond)
		return fmt.Sprintf("timeoutlen=%d", ms), nil
	}
	return "", fmt.Errorf("set: unknown variable %q", name)
}
