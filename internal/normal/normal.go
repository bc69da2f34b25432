// Package normal implements the normal-mode command dispatcher: the
// downstream consumer of resolved keys, recognizing multi-key commands with
// an optional count prefix.
package normal

import (
	"github.com/atotto/clipboard"
	"github.com/jubalh/vimb/internal/event"
	"github.com/jubalh/vimb/internal/keycode"
	"github.com/jubalh/vimb/internal/logger"
	"github.com/jubalh/vimb/internal/mode"
)

// API is what normal-mode commands may do to the surrounding application.
type API interface {
	Scroll(lines int)
	ScrollTop()
	ScrollBottom()
	Uri() string
	Quit()
}

// Handler is the normal-mode dispatcher. A command is at most a count
// prefix, one prefix key ('g' or 'Z') and one command key; while a command
// is incomplete KeyPress returns ResultMore.
type Handler struct {
	modes  *mode.Manager
	events *event.Manager
	api    API

	count   int
	pending byte
}

// New creates the normal-mode handler.
func New(modes *mode.Manager, events *event.Manager, api API) *Handler {
	return &Handler{
		modes:  modes,
		events: events,
		api:    api,
	}
}

// ID returns the mode this handler serves.
func (h *Handler) ID() mode.ID { return mode.Normal }

// Enter aborts any partially typed command.
func (h *Handler) Enter() {
	h.reset()
}

// Leave resets the pending command state.
func (h *Handler) Leave() {
	h.reset()
}

func (h *Handler) reset() {
	h.count = 0
	h.pending = 0
}

func (h *Handler) countOr(def int) int {
	if h.count > 0 {
		return h.count
	}
	return def
}

// KeyPress dispatches one resolved key.
func (h *Handler) KeyPress(key int) mode.Result {
	if h.pending != 0 {
		return h.finishPending(key)
	}

	switch key {
	case int(keycode.KeyEsc):
		h.reset()
		return mode.ResultComplete

	case ':':
		h.reset()
		if err := h.modes.Enter(mode.CommandLine); err != nil {
			logger.Errorf("normal: %v", err)
			return mode.ResultError
		}
		return mode.ResultComplete

	case 'i':
		h.reset()
		if err := h.modes.Enter(mode.Insert); err != nil {
			logger.Errorf("normal: %v", err)
			return mode.ResultError
		}
		return mode.ResultComplete

	case 'j', keycode.KeyDown:
		h.api.Scroll(h.countOr(1))
	case 'k', keycode.KeyUp:
		h.api.Scroll(-h.countOr(1))
	case 'G':
		h.api.ScrollBottom()

	case 'y':
		h.yankUri()

	case 'g', 'Z':
		h.pending = byte(key)
		return mode.ResultMore

	case '1', '2', '3', '4', '5', '6', '7', '8', '9':
		h.count = h.count*10 + key - '0'
		return mode.ResultMore
	case '0':
		if h.count > 0 {
			h.count *= 10
			return mode.ResultMore
		}
		return mode.ResultError

	default:
		h.reset()
		return mode.ResultError
	}

	h.reset()
	return mode.ResultComplete
}

// finishPending completes a two-key command started by 'g' or 'Z'.
func (h *Handler) finishPending(key int) mode.Result {
	prefix := h.pending
	h.reset()

	switch {
	case prefix == 'g' && key == 'g':
		h.api.ScrollTop()
	case prefix == 'Z' && key == 'Z':
		h.api.Quit()
	default:
		return mode.ResultError
	}
	return mode.ResultComplete
}

// yankUri copies the current URI into the system clipboard.
func (h *Handler) yankUri() {
	uri := h.api.Uri()
	if err := clipboard.WriteAll(uri); err != nil {
		logger.Warnf("normal: yank failed: %v", err)
		return
	}
	if h.events != nil {
		h.events.Dispatch(event.TypeCommandExecuted, event.CommandExecutedData{
			Command: "yank",
			Message: "Yanked " + uri,
		})
	}
}
