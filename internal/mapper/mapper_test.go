package mapper

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/jubalh/vimb/internal/event"
	"github.com/jubalh/vimb/internal/keycode"
	"github.com/jubalh/vimb/internal/keymap"
	"github.com/jubalh/vimb/internal/mode"
)

// recordHandler collects every key the resolver hands to the mode.
type recordHandler struct {
	id   mode.ID
	keys []int
	more map[int]bool
}

func (h *recordHandler) ID() mode.ID { return h.id }
func (h *recordHandler) Enter()      {}
func (h *recordHandler) Leave()      {}

func (h *recordHandler) KeyPress(key int) mode.Result {
	h.keys = append(h.keys, key)
	if h.more[key] {
		return mode.ResultMore
	}
	return mode.ResultComplete
}

type fakeTimer struct {
	starts int
	stops  int
}

func (f *fakeTimer) Start(time.Duration) { f.starts++ }
func (f *fakeTimer) Stop()               { f.stops++ }

func newTestMapper(t *testing.T, events *event.Manager) (*Mapper, *keymap.Table, *recordHandler, *mode.Manager, *fakeTimer) {
	t.Helper()

	tbl := keymap.NewTable()
	modes := mode.NewManager(events)
	handler := &recordHandler{id: mode.Normal, more: map[int]bool{}}
	if err := modes.Register(handler); err != nil {
		t.Fatal(err)
	}
	if err := modes.Enter(mode.Normal); err != nil {
		t.Fatal(err)
	}
	timer := &fakeTimer{}
	return New(tbl, modes, events, timer, time.Second), tbl, handler, modes, timer
}

func TestFeedUnmappedKeys(t *testing.T) {
	m, _, handler, _, _ := newTestMapper(t, nil)

	if got := m.FeedString("xy", true); got != NoMatch {
		t.Errorf("Feed(xy) = %v, want NoMatch", got)
	}
	if want := []int{'x', 'y'}; !reflect.DeepEqual(handler.keys, want) {
		t.Errorf("dispatched keys = %v, want %v", handler.keys, want)
	}
}

func TestFeedSimpleMapping(t *testing.T) {
	m, tbl, handler, _, _ := newTestMapper(t, nil)
	tbl.Insert("a", "b", mode.Normal)

	if got := m.FeedString("a", true); got != Done {
		t.Errorf("Feed(a) = %v, want Done", got)
	}
	if want := []int{'b'}; !reflect.DeepEqual(handler.keys, want) {
		t.Errorf("dispatched keys = %v, want %v", handler.keys, want)
	}
}

func TestFeedLongestMappingWins(t *testing.T) {
	m, tbl, handler, _, _ := newTestMapper(t, nil)
	tbl.Insert("a", "x", mode.Normal)
	tbl.Insert("ab", "yz", mode.Normal)

	if got := m.FeedString("ab", true); got != Done {
		t.Errorf("Feed(ab) = %v, want Done", got)
	}
	if want := []int{'y', 'z'}; !reflect.DeepEqual(handler.keys, want) {
		t.Errorf("dispatched keys = %v, want %v", handler.keys, want)
	}
}

func TestFeedMostRecentMappingWins(t *testing.T) {
	m, tbl, handler, _, _ := newTestMapper(t, nil)
	tbl.Insert("ab", "1", mode.Normal)
	tbl.Insert("ab", "2", mode.Normal)

	if got := m.FeedString("ab", true); got != Done {
		t.Errorf("Feed(ab) = %v, want Done", got)
	}
	if want := []int{'2'}; !reflect.DeepEqual(handler.keys, want) {
		t.Errorf("dispatched keys = %v, want %v", handler.keys, want)
	}
}

func TestFeedAmbiguityAndTimeout(t *testing.T) {
	m, tbl, handler, _, _ := newTestMapper(t, nil)
	tbl.Insert("ab", "1", mode.Normal)
	tbl.Insert("abc", "2", mode.Normal)

	// "ab" matches but "abc" is still reachable, so nothing resolves yet
	if got := m.FeedString("ab", true); got != Ambiguous {
		t.Errorf("Feed(ab) = %v, want Ambiguous", got)
	}
	if len(handler.keys) != 0 {
		t.Errorf("dispatched keys = %v, want none while ambiguous", handler.keys)
	}

	// the timeout resolves the shorter match
	if got := m.Feed(nil, true); got != Done {
		t.Errorf("Feed(timeout) = %v, want Done", got)
	}
	if want := []int{'1'}; !reflect.DeepEqual(handler.keys, want) {
		t.Errorf("dispatched keys = %v, want %v", handler.keys, want)
	}
}

func TestFeedAmbiguityResolvedByMoreKeys(t *testing.T) {
	m, tbl, handler, _, _ := newTestMapper(t, nil)
	tbl.Insert("ab", "1", mode.Normal)
	tbl.Insert("abc", "2", mode.Normal)

	if got := m.FeedString("ab", true); got != Ambiguous {
		t.Errorf("Feed(ab) = %v, want Ambiguous", got)
	}
	if got := m.FeedString("c", true); got != Done {
		t.Errorf("Feed(c) = %v, want Done", got)
	}
	if want := []int{'2'}; !reflect.DeepEqual(handler.keys, want) {
		t.Errorf("dispatched keys = %v, want %v", handler.keys, want)
	}
}

func TestFeedChainedMappings(t *testing.T) {
	m, tbl, handler, _, _ := newTestMapper(t, nil)
	tbl.Insert("a", "bc", mode.Normal)
	tbl.Insert("c", "x", mode.Normal)

	// the unresolved tail of a mapping's output is scanned again
	if got := m.FeedString("a", true); got != Done {
		t.Errorf("Feed(a) = %v, want Done", got)
	}
	if want := []int{'b', 'x'}; !reflect.DeepEqual(handler.keys, want) {
		t.Errorf("dispatched keys = %v, want %v", handler.keys, want)
	}
}

func TestFeedSelfPrefixedMappingTerminates(t *testing.T) {
	m, tbl, handler, _, _ := newTestMapper(t, nil)
	tbl.Insert("a", "ab", mode.Normal)

	// marking len(in) bytes resolved keeps the mapping from re-triggering
	// on its own output
	if got := m.FeedString("a", true); got != Done {
		t.Errorf("Feed(a) = %v, want Done", got)
	}
	if want := []int{'a', 'b'}; !reflect.DeepEqual(handler.keys, want) {
		t.Errorf("dispatched keys = %v, want %v", handler.keys, want)
	}
}

func TestFeedQueueOverflowDropsKeys(t *testing.T) {
	m, _, handler, _, _ := newTestMapper(t, nil)

	if got := m.Feed([]byte(strings.Repeat("x", queueSize+10)), true); got != NoMatch {
		t.Errorf("Feed(overflow) = %v, want NoMatch", got)
	}
	if len(handler.keys) != queueSize {
		t.Errorf("dispatched %d keys, want %d", len(handler.keys), queueSize)
	}
}

func TestFeedNoMapFlagSuppressesOneKey(t *testing.T) {
	m, tbl, handler, modes, _ := newTestMapper(t, nil)
	tbl.Insert("a", "b", mode.Normal)

	modes.SetFlag(mode.FlagNoMap)
	if got := m.FeedString("aa", true); got != Done {
		t.Errorf("Feed(aa) = %v, want Done", got)
	}
	// the first key bypasses the table, the second is mapped again
	if want := []int{'a', 'b'}; !reflect.DeepEqual(handler.keys, want) {
		t.Errorf("dispatched keys = %v, want %v", handler.keys, want)
	}
}

func TestFeedUseMapDisabled(t *testing.T) {
	m, tbl, handler, _, _ := newTestMapper(t, nil)
	tbl.Insert("a", "b", mode.Normal)

	if got := m.FeedString("a", false); got != NoMatch {
		t.Errorf("Feed(a, useMap=false) = %v, want NoMatch", got)
	}
	if want := []int{'a'}; !reflect.DeepEqual(handler.keys, want) {
		t.Errorf("dispatched keys = %v, want %v", handler.keys, want)
	}
}

func TestFeedModeScoped(t *testing.T) {
	m, tbl, handler, _, _ := newTestMapper(t, nil)
	tbl.Insert("a", "b", mode.Insert)

	if got := m.FeedString("a", true); got != NoMatch {
		t.Errorf("Feed(a) = %v, want NoMatch", got)
	}
	if want := []int{'a'}; !reflect.DeepEqual(handler.keys, want) {
		t.Errorf("dispatched keys = %v, want %v", handler.keys, want)
	}
}

func TestFeedSpecialFormDecodedAsUnit(t *testing.T) {
	m, tbl, handler, _, _ := newTestMapper(t, nil)
	tbl.Insert("a", "<Up>", mode.Normal)

	if got := m.FeedString("a", true); got != Done {
		t.Errorf("Feed(a) = %v, want Done", got)
	}
	if want := []int{keycode.KeyUp}; !reflect.DeepEqual(handler.keys, want) {
		t.Errorf("dispatched keys = %v, want %v", handler.keys, want)
	}
}

func TestFeedRawSpecialForm(t *testing.T) {
	m, _, handler, _, _ := newTestMapper(t, nil)

	if got := m.Feed([]byte{keycode.CSI, 'k', 'u'}, false); got != NoMatch {
		t.Errorf("Feed(csi) = %v, want NoMatch", got)
	}
	if want := []int{keycode.KeyUp}; !reflect.DeepEqual(handler.keys, want) {
		t.Errorf("dispatched keys = %v, want %v", handler.keys, want)
	}
}

func TestFeedTimerArming(t *testing.T) {
	m, tbl, _, _, timer := newTestMapper(t, nil)
	tbl.Insert("ab", "1", mode.Normal)
	tbl.Insert("abc", "2", mode.Normal)

	m.FeedString("a", true)
	m.FeedString("b", true)
	if timer.starts != 2 {
		t.Errorf("timer armed %d times, want 2", timer.starts)
	}

	// reporting the timeout must not re-arm the timer
	m.Feed(nil, true)
	if timer.starts != 2 {
		t.Errorf("timer armed %d times after timeout, want 2", timer.starts)
	}
}

func TestFeedPendingKeysEvents(t *testing.T) {
	events := event.NewManager()
	var pending []string
	events.Subscribe(event.TypePendingKeysChanged, func(e event.Event) bool {
		pending = append(pending, e.Data.(event.PendingKeysData).Keys)
		return false
	})

	m, tbl, _, _, _ := newTestMapper(t, events)
	tbl.Insert("abc", "x", mode.Normal)

	if got := m.FeedString("ab", true); got != Ambiguous {
		t.Fatalf("Feed(ab) = %v, want Ambiguous", got)
	}
	if want := []string{"ab"}; !reflect.DeepEqual(pending, want) {
		t.Errorf("pending events = %v, want %v", pending, want)
	}

	if got := m.FeedString("c", true); got != Done {
		t.Fatalf("Feed(c) = %v, want Done", got)
	}
	if len(pending) == 0 || pending[len(pending)-1] != "" {
		t.Errorf("pending events = %v, want trailing clear", pending)
	}
}

func TestFeedPendingKeysTrimmed(t *testing.T) {
	events := event.NewManager()
	var last string
	events.Subscribe(event.TypePendingKeysChanged, func(e event.Event) bool {
		last = e.Data.(event.PendingKeysData).Keys
		return false
	})

	m, tbl, _, _, _ := newTestMapper(t, events)
	tbl.Insert(strings.Repeat("a", showcmdLen+3), "x", mode.Normal)

	if got := m.Feed([]byte(strings.Repeat("a", showcmdLen+2)), true); got != Ambiguous {
		t.Fatalf("Feed = %v, want Ambiguous", got)
	}
	if want := strings.Repeat("a", showcmdLen); last != want {
		t.Errorf("pending display = %q, want %q", last, want)
	}
}

func TestFeedMultiKeyCommandKeepsPendingDisplay(t *testing.T) {
	events := event.NewManager()
	var pending []string
	events.Subscribe(event.TypePendingKeysChanged, func(e event.Event) bool {
		pending = append(pending, e.Data.(event.PendingKeysData).Keys)
		return false
	})

	m, _, handler, _, _ := newTestMapper(t, events)
	handler.more['g'] = true

	// a dispatcher waiting for more keys must not clear the display
	m.FeedString("g", true)
	if len(pending) != 0 {
		t.Errorf("pending events = %v, want none", pending)
	}

	m.FeedString("h", true)
	if want := []string{""}; !reflect.DeepEqual(pending, want) {
		t.Errorf("pending events = %v, want %v", pending, want)
	}
}
