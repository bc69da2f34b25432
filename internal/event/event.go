// internal/event/event.go
package event

import (
	"github.com/gdamore/tcell/v2"
)

// Type identifies the kind of event.
type Type int

// Define specific event types.
const (
	TypeUnknown Type = iota

	// Input events
	TypeKeyPressed         // Raw key press forwarded before mapping
	TypePendingKeysChanged // Queued-but-unresolved keys changed (showcmd)
	TypeCommandLineChanged // Text of the command line input changed

	// Mode / navigation events
	TypeModeChanged     // Editing mode switched (normal/insert/command-line)
	TypeUriChanged      // The current URI changed
	TypeCommandExecuted // An ex command finished

	// Application lifecycle events
	TypeAppReady // Fired when the application is fully initialized
	TypeAppQuit  // Fired just before application termination begins
)

// Event is the structure passed through the event bus.
type Event struct {
	Type Type        // The kind of event
	Data interface{} // Payload carrying event-specific data
}

// --- Specific Event Data Structures ---

// KeyPressedData contains the raw tcell key event.
type KeyPressedData struct {
	KeyEvent *tcell.EventKey
}

// PendingKeysData carries the display form of the trailing queued keys.
// Empty Keys means the pending display should be cleared.
type PendingKeysData struct {
	Keys string
}

// CommandLineData carries the current command line content (without prompt).
type CommandLineData struct {
	Text string
}

// ModeChangedData contains the id of the newly entered mode.
type ModeChangedData struct {
	Mode byte
}

// UriChangedData contains the new current URI.
type UriChangedData struct {
	Uri string
}

// CommandExecutedData describes a finished ex command.
type CommandExecutedData struct {
	Command string
	Message string
	Err     error
}

// AppQuitData could contain exit code or reason later.
type AppQuitData struct{}

// AppReadyData could contain initial config or state later.
type AppReadyData struct{}
