// internal/statusbar/statusbar.go
package statusbar

import (
	"fmt"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Config defines the appearance and behavior of the status bar.
type Config struct {
	StyleDefault tcell.Style // default background/foreground
	StyleMessage tcell.Style // style for temporary messages
	StyleInput   tcell.Style // style for command line input
	StyleError   tcell.Style // style for error messages

	MessageTimeout time.Duration
}

// DefaultConfig provides sensible defaults.
func DefaultConfig() Config {
	return Config{
		StyleDefault:   tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorDarkBlue),
		StyleMessage:   tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorDarkBlue).Bold(true),
		StyleInput:     tcell.StyleDefault.Foreground(tcell.ColorGreen).Background(tcell.ColorDarkBlue).Bold(true),
		StyleError:     tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorDarkRed).Bold(true),
		MessageTimeout: 4 * time.Second,
	}
}

// StatusBar renders the single status line: URI and mode on the left, the
// pending (not yet resolved) keys right-aligned, or the active command
// line / a temporary message instead.
type StatusBar struct {
	config Config
	mu     sync.RWMutex

	uri         string
	modeName    string
	pendingKeys string

	commandActive bool
	commandLine   string

	tempMessage     string
	tempMessageTime time.Time
	tempIsError     bool
}

// New creates a StatusBar with the given configuration.
func New(config Config) *StatusBar {
	return &StatusBar{config: config}
}

// SetUri updates the displayed URI.
func (sb *StatusBar) SetUri(uri string) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.uri = uri
}

// SetMode updates the displayed mode name.
func (sb *StatusBar) SetMode(name string) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.modeName = name
}

// SetPendingKeys updates the showcmd area. Empty clears it.
func (sb *StatusBar) SetPendingKeys(keys string) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.pendingKeys = keys
}

// SetCommandLine shows the command line input with its prompt.
func (sb *StatusBar) SetCommandLine(text string) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.commandActive = true
	sb.commandLine = text
}

// ClearCommandLine hides the command line input.
func (sb *StatusBar) ClearCommandLine() {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.commandActive = false
	sb.commandLine = ""
}

// SetTemporaryMessage displays a message for the configured duration.
func (sb *StatusBar) SetTemporaryMessage(format string, args ...interface{}) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.tempMessage = fmt.Sprintf(format, args...)
	sb.tempMessageTime = time.Now()
	sb.tempIsError = false
}

// SetErrorMessage displays an error message for the configured duration.
func (sb *StatusBar) SetErrorMessage(format string, args ...interface{}) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.tempMessage = fmt.Sprintf(format, args...)
	sb.tempMessageTime = time.Now()
	sb.tempIsError = true
}

// Draw renders the status bar on the last screen line.
func (sb *StatusBar) Draw(screen tcell.Screen, width, height int) {
	if height <= 0 || width <= 0 {
		return
	}
	y := height - 1

	sb.mu.Lock()
	tempActive := !sb.tempMessageTime.IsZero() && time.Since(sb.tempMessageTime) <= sb.config.MessageTimeout
	if !sb.tempMessageTime.IsZero() && !tempActive {
		sb.tempMessage = ""
		sb.tempMessageTime = time.Time{}
	}

	var style tcell.Style
	var left string
	switch {
	case sb.commandActive:
		left = ":" + sb.commandLine
		style = sb.config.StyleInput
	case tempActive:
		left = sb.tempMessage
		if sb.tempIsError {
			style = sb.config.StyleError
		} else {
			style = sb.config.StyleMessage
		}
	default:
		left = sb.uri
		if sb.modeName != "" {
			left = fmt.Sprintf("%s -- %s --", sb.uri, sb.modeName)
		}
		style = sb.config.StyleDefault
	}
	right := sb.pendingKeys
	sb.mu.Unlock()

	for x := 0; x < width; x++ {
		screen.SetContent(x, y, ' ', nil, style)
	}

	drawText(screen, 0, y, width, left, style)

	// pending keys sit right-aligned, on top of the left text if need be
	if right != "" {
		x := width - runewidth.StringWidth(right)
		if x < 0 {
			x = 0
		}
		drawText(screen, x, y, width-x, right, style)
	}
}

// drawText writes text grapheme cluster by grapheme cluster, stopping at
// the given width.
func drawText(screen tcell.Screen, x, y, maxWidth int, text string, style tcell.Style) {
	gr := uniseg.NewGraphemes(text)
	currentX := 0
	for gr.Next() {
		clusterWidth := gr.Width()
		if currentX+clusterWidth > maxWidth {
			break
		}
		runes := gr.Runes()
		if len(runes) > 0 {
			var combining []rune
			if len(runes) > 1 {
				combining = runes[1:]
			}
			screen.SetContent(x+currentX, y, runes[0], combining, style)
		}
		currentX += clusterWidth
	}
}
