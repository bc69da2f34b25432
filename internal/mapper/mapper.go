// Package mapper implements the key resolution engine: typed keys are
// buffered in a bounded queue, matched against the mapping table for the
// active mode, rewritten in place when a mapping applies and emitted one
// resolved key at a time to the active mode's dispatcher.
package mapper

import (
	"time"

	"github.com/jubalh/vimb/internal/event"
	"github.com/jubalh/vimb/internal/keycode"
	"github.com/jubalh/vimb/internal/keymap"
	"github.com/jubalh/vimb/internal/logger"
	"github.com/jubalh/vimb/internal/mode"
)

const (
	// queueSize bounds the key queue; bytes beyond it are dropped silently.
	queueSize = 50
	// showcmdLen bounds the pending-keys display to the trailing bytes.
	showcmdLen = 10
)

// Result describes the outcome of one Feed call.
type Result int

const (
	// Done means the queue drained and at least one mapping applied.
	Done Result = iota
	// NoMatch means the queue drained without any mapping applying.
	NoMatch
	// Ambiguous means queued keys prefix a longer mapping; resolution is
	// suspended until more keys arrive or the timeout fires.
	Ambiguous
)

// Mapper is the key queue state machine. It is owned by the input-handling
// task: Feed must never be invoked concurrently, and the timer callback has
// to be serialized onto the same task (a fired timer is reported by calling
// Feed with no bytes).
type Mapper struct {
	table   *keymap.Table
	modes   *mode.Manager
	events  *event.Manager
	timer   Timer
	timeout time.Duration

	queue    [queueSize]byte
	qlen     int
	resolved int
}

// New creates a mapper. The timer may be nil when no ambiguity timeout is
// wanted (tests mostly run without one).
func New(table *keymap.Table, modes *mode.Manager, events *event.Manager, timer Timer, timeout time.Duration) *Mapper {
	return &Mapper{
		table:   table,
		modes:   modes,
		events:  events,
		timer:   timer,
		timeout: timeout,
	}
}

// SetTimeout changes the ambiguity timeout used when arming the timer.
func (m *Mapper) SetTimeout(d time.Duration) {
	m.timeout = d
}

// FeedString converts a key sequence from human notation and feeds it.
func (m *Mapper) FeedString(s string, useMap bool) Result {
	return m.Feed(keycode.FromNotation(s), useMap)
}

// Feed appends the given raw keys to the queue and resolves as much of it
// as possible. Feeding no bytes signals that the ambiguity timeout fired.
func (m *Mapper) Feed(keys []byte, useMap bool) Result {
	timeout := len(keys) == 0

	// every real key press restarts the ambiguity timeout
	if !timeout && m.timer != nil {
		m.timer.Start(m.timeout)
	}

	// copy the keys onto the end of the queue, dropping overflow
	for m.qlen < queueSize && len(keys) > 0 {
		m.queue[m.qlen] = keys[0]
		m.qlen++
		keys = keys[1:]
	}
	if len(keys) > 0 {
		logger.Warnf("mapper: key queue full, dropped %d byte(s)", len(keys))
	}

	mapped := false
	for {
		// emit phase: hand every resolved key to the mode's dispatcher
		for m.resolved > 0 {
			var key int

			// a complete special form is decoded as one unit; a lone CSI
			// byte passes through so partial sequences are not mangled
			if m.queue[0] == keycode.CSI && m.qlen >= 3 {
				key = keycode.TermcapToKey(m.queue[1], m.queue[2])
				m.resolved -= 3
				m.qlen -= 3
				copy(m.queue[:], m.queue[3:3+m.qlen])
			} else {
				key = int(m.queue[0])
				m.resolved--
				m.qlen--
				copy(m.queue[:], m.queue[1:1+m.qlen])
			}

			// suppression only ever lasts for one resolved key
			m.modes.ClearFlag(mode.FlagNoMap)

			if m.modes.HandleKey(key) != mode.ResultMore {
				m.showPending(nil)
			}
		}

		if m.qlen == 0 {
			m.resolved = 0
			if mapped {
				return Done
			}
			return NoMatch
		}

		// match phase
		var match *keymap.Mapping
		ambiguous := false
		if useMap && !m.modes.HasFlag(mode.FlagNoMap) {
			match, ambiguous = m.table.FindMatches(m.queue[:m.qlen], m.modes.Current(), !timeout)
		}

		// wait for more keys or the timeout before accepting a shorter match
		if ambiguous {
			start := 0
			if m.qlen > showcmdLen {
				start = m.qlen - showcmdLen
			}
			m.showPending(m.queue[start:m.qlen])
			return Ambiguous
		}

		if match != nil {
			mapped = true
			m.showPending(nil)
			m.splice(match)
		} else {
			// first queued byte is not mapped but resolved
			m.resolved = 1
		}
	}
}

// splice replaces the matched input prefix of the queue with the mapping's
// output, growing or shrinking in place bounded by the queue capacity, and
// marks min(len(in), len(out)) leading bytes resolved. Marking only that
// bounded prefix lets freshly spliced-in keys be re-scanned for chained
// mappings without the mapping ever re-triggering on its own output.
func (m *Mapper) splice(match *keymap.Mapping) {
	inlen, outlen := len(match.In), len(match.Out)

	if inlen < outlen {
		// make room within the queue, dropping bytes shifted past capacity
		grow := outlen - inlen
		for i, j := m.qlen+grow, m.qlen; j > inlen; {
			i--
			j--
			if i < queueSize {
				m.queue[i] = m.queue[j]
			}
		}
	} else if inlen > outlen {
		// delete keys
		copy(m.queue[outlen:], m.queue[inlen:m.qlen])
	}

	copy(m.queue[:], match.Out)
	m.qlen += outlen - inlen
	if m.qlen > queueSize {
		m.qlen = queueSize
	}
	if inlen <= outlen {
		m.resolved = inlen
	} else {
		m.resolved = outlen
	}
}

// showPending publishes the pending-keys display; nil clears it.
func (m *Mapper) showPending(keys []byte) {
	if m.events == nil {
		return
	}
	m.events.Dispatch(event.TypePendingKeysChanged, event.PendingKeysData{
		Keys: keycode.ToString(keys),
	})
}
