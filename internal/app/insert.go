// internal/app/insert.go
package app

import (
	"github.com/jubalh/vimb/internal/keycode"
	"github.com/jubalh/vimb/internal/logger"
	"github.com/jubalh/vimb/internal/mode"
)

// insertMode is active while a page input element has focus. Keys pass
// through to the page; escape returns to normal mode.
type insertMode struct {
	modes *mode.Manager
}

func newInsertMode(modes *mode.Manager) *insertMode {
	return &insertMode{modes: modes}
}

func (i *insertMode) ID() mode.ID { return mode.Insert }

func (i *insertMode) Enter() {}

func (i *insertMode) Leave() {}

func (i *insertMode) KeyPress(key int) mode.Result {
	if key == int(keycode.KeyEsc) {
		if err := i.modes.Enter(mode.Normal); err != nil {
			logger.Errorf("insert: %v", err)
			return mode.ResultError
		}
	}
	// everything else belongs to the focused input element
	return mode.ResultComplete
}
