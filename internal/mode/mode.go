// Package mode manages the editing modes (normal, insert, command-line) and
// the contract between the key resolver and the per-mode key dispatchers.
package mode

// ID identifies an editing mode. The values double as the mode letters used
// by the map commands (nmap/imap/cmap).
type ID byte

const (
	// Normal is the default mode for navigation commands.
	Normal ID = 'n'
	// Insert is active while an input element has focus.
	Insert ID = 'i'
	// CommandLine is active while an ex command is being typed.
	CommandLine ID = 'c'
)

// String returns the mode letter as a readable name.
func (id ID) String() string {
	switch id {
	case Normal:
		return "normal"
	case Insert:
		return "insert"
	case CommandLine:
		return "command"
	}
	return "unknown"
}

// Result is returned by a mode's key dispatcher for each resolved key.
type Result int

const (
	// ResultComplete means the key finished a command.
	ResultComplete Result = iota
	// ResultMore means the dispatcher needs more keys for a multi-key command.
	ResultMore
	// ResultError means the key did not start any known command.
	ResultError
)

// Flags hold transient per-mode state, reset when a mode is entered.
type Flags uint

const (
	// FlagNoMap suppresses the mapping table for the next resolved key.
	FlagNoMap Flags = 1 << iota
)

// Handler dispatches resolved keys while its mode is active.
//
// KeyPress receives one combined key identifier per call: a single byte for
// simple keys, or a two-byte termcap pair packed into an int for special
// keys (see keycode.TermcapToKey).
type Handler interface {
	ID() ID
	Enter()
	Leave()
	KeyPress(key int) Result
}
