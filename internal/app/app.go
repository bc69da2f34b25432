// internal/app/app.go
package app

import (
	"fmt"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/jubalh/vimb/internal/config"
	"github.com/jubalh/vimb/internal/event"
	"github.com/jubalh/vimb/internal/ex"
	"github.com/jubalh/vimb/internal/keycode"
	"github.com/jubalh/vimb/internal/keymap"
	"github.com/jubalh/vimb/internal/logger"
	"github.com/jubalh/vimb/internal/mapper"
	"github.com/jubalh/vimb/internal/mode"
	"github.com/jubalh/vimb/internal/normal"
	"github.com/jubalh/vimb/internal/statusbar"
	"github.com/jubalh/vimb/internal/tui"
)

// App wires the key-mapping engine into the terminal shell and owns the
// single event loop every input source is serialized onto.
type App struct {
	tuiManager *tui.TUI
	statusBar  *statusbar.StatusBar
	events     *event.Manager
	modes      *mode.Manager
	table      *keymap.Table
	keyMapper  *mapper.Mapper
	cfg        *config.Config

	uri    string
	scroll int

	// Channels feeding the main loop. Key events and the mapping timeout
	// both funnel through it so the mapper is never entered concurrently.
	quit          chan struct{}
	quitOnce      sync.Once
	redrawRequest chan struct{}
	tuiEvents     chan tcell.Event
	mapTimeout    chan struct{}
}

// NewApp creates and initializes a new application instance.
func NewApp(cfg *config.Config, startUri string) (*App, error) {
	tuiManager, err := tui.New()
	if err != nil {
		return nil, fmt.Errorf("TUI initialization failed: %w", err)
	}

	a := &App{
		tuiManager:    tuiManager,
		statusBar:     statusbar.New(statusbar.DefaultConfig()),
		events:        event.NewManager(),
		table:         keymap.NewTable(),
		cfg:           cfg,
		uri:           startUri,
		quit:          make(chan struct{}),
		redrawRequest: make(chan struct{}, 1),
		tuiEvents:     make(chan tcell.Event),
		mapTimeout:    make(chan struct{}, 1),
	}
	if a.uri == "" {
		a.uri = cfg.General.HomePage
	}

	a.modes = mode.NewManager(a.events)

	timer := mapper.NewAfterFuncTimer(a.signalMapTimeout)
	timeout := time.Duration(cfg.Map.TimeoutLen) * time.Millisecond
	a.keyMapper = mapper.New(a.table, a.modes, a.events, timer, timeout)

	// register the mode dispatchers
	for _, h := range []mode.Handler{
		normal.New(a.modes, a.events, a),
		ex.New(a.table, a.modes, a.events, a),
		newInsertMode(a.modes),
	} {
		if err := a.modes.Register(h); err != nil {
			tuiManager.Close()
			return nil, err
		}
	}
	if err := a.modes.Enter(mode.Normal); err != nil {
		tuiManager.Close()
		return nil, err
	}

	a.insertDefaultMappings()
	a.subscribeEvents()

	a.statusBar.SetUri(a.uri)
	a.statusBar.SetMode(mode.Normal.String())

	return a, nil
}

// insertDefaultMappings installs the built-in mappings.
func (a *App) insertDefaultMappings() {
	a.table.Insert("gh", ":open "+a.cfg.General.HomePage+"<CR>", mode.Normal)
	a.table.Insert("<C-Q>", ":quit<CR>", mode.Normal)
}

// subscribeEvents connects engine side effects to the status bar.
func (a *App) subscribeEvents() {
	a.events.Subscribe(event.TypePendingKeysChanged, func(e event.Event) bool {
		if data, ok := e.Data.(event.PendingKeysData); ok {
			a.statusBar.SetPendingKeys(data.Keys)
			a.requestRedraw()
		}
		return false
	})
	a.events.Subscribe(event.TypeCommandLineChanged, func(e event.Event) bool {
		if data, ok := e.Data.(event.CommandLineData); ok {
			a.statusBar.SetCommandLine(data.Text)
			a.requestRedraw()
		}
		return false
	})
	a.events.Subscribe(event.TypeModeChanged, func(e event.Event) bool {
		if data, ok := e.Data.(event.ModeChangedData); ok {
			a.statusBar.SetMode(mode.ID(data.Mode).String())
			if mode.ID(data.Mode) != mode.CommandLine {
				a.statusBar.ClearCommandLine()
			}
			a.requestRedraw()
		}
		return false
	})
	a.events.Subscribe(event.TypeUriChanged, func(e event.Event) bool {
		if data, ok := e.Data.(event.UriChangedData); ok {
			a.statusBar.SetUri(data.Uri)
			a.requestRedraw()
		}
		return false
	})
	a.events.Subscribe(event.TypeCommandExecuted, func(e event.Event) bool {
		data, ok := e.Data.(event.CommandExecutedData)
		if !ok {
			return false
		}
		if data.Err != nil {
			a.statusBar.SetErrorMessage("%v", data.Err)
		} else if data.Message != "" {
			a.statusBar.SetTemporaryMessage("%s", data.Message)
		}
		a.requestRedraw()
		return false
	})
}

// Run starts the application's event loop. It blocks until quit.
func (a *App) Run() error {
	defer a.tuiManager.Close()

	go a.pollLoop()

	a.events.Dispatch(event.TypeAppReady, event.AppReadyData{})
	a.draw()

	for {
		select {
		case <-a.quit:
			a.events.Dispatch(event.TypeAppQuit, event.AppQuitData{})
			logger.Infof("exiting application")
			return nil

		case ev := <-a.tuiEvents:
			a.handleTuiEvent(ev)

		case <-a.mapTimeout:
			// the ambiguity timer fired with no new input
			a.keyMapper.Feed(nil, true)
			a.requestRedraw()

		case <-a.redrawRequest:
			a.draw()
		}
	}
}

// pollLoop forwards tcell events onto the serialized main loop.
func (a *App) pollLoop() {
	for {
		ev := a.tuiManager.PollEvent()
		if ev == nil {
			return
		}
		select {
		case a.tuiEvents <- ev:
		case <-a.quit:
			return
		}
	}
}

// signalMapTimeout is the timer callback; it runs on a background
// goroutine and only pokes the main loop.
func (a *App) signalMapTimeout() {
	select {
	case a.mapTimeout <- struct{}{}:
	default:
	}
}

func (a *App) handleTuiEvent(ev tcell.Event) {
	switch tev := ev.(type) {
	case *tcell.EventResize:
		a.tuiManager.GetScreen().Sync()
		a.requestRedraw()

	case *tcell.EventKey:
		a.events.Dispatch(event.TypeKeyPressed, event.KeyPressedData{KeyEvent: tev})

		keys, ok := keycode.EventToKeys(tev)
		if !ok {
			logger.DebugTagf("input", "unhandled key event %v", tev.Key())
			return
		}
		a.keyMapper.Feed(keys, true)
		a.requestRedraw()
	}
}

// --- Drawing ---

func (a *App) draw() {
	screen := a.tuiManager.GetScreen()
	width, height := a.tuiManager.Size()

	a.tuiManager.Clear()
	a.statusBar.Draw(screen, width, height)
	a.tuiManager.Show()
}

// requestRedraw sends a redraw signal non-blockingly.
func (a *App) requestRedraw() {
	select {
	case a.redrawRequest <- struct{}{}:
	default:
	}
}

// --- normal.API / ex.API ---

// Scroll moves the toy page position by the given number of lines.
func (a *App) Scroll(lines int) {
	a.scroll += lines
	if a.scroll < 0 {
		a.scroll = 0
	}
	a.requestRedraw()
}

// ScrollTop jumps to the top of the page.
func (a *App) ScrollTop() {
	a.scroll = 0
	a.requestRedraw()
}

// ScrollBottom jumps to the bottom of the page.
func (a *App) ScrollBottom() {
	_, height := a.tuiManager.Size()
	a.scroll = height
	a.requestRedraw()
}

// Uri returns the current URI.
func (a *App) Uri() string {
	return a.uri
}

// OpenUri navigates to the given URI.
func (a *App) OpenUri(uri string) {
	a.uri = uri
	a.scroll = 0
	a.events.Dispatch(event.TypeUriChanged, event.UriChangedData{Uri: uri})
	logger.Infof("open %s", uri)
}

// Quit signals the main loop to terminate.
func (a *App) Quit() {
	a.quitOnce.Do(func() {
		close(a.quit)
	})
}

// SetMapTimeout changes the mapping ambiguity timeout.
func (a *App) SetMapTimeout(d time.Duration) {
	a.keyMapper.SetTimeout(d)
}
