package keymap

import (
	"bytes"
	"testing"

	"github.com/jubalh/vimb/internal/mode"
)

func TestInsertRemove(t *testing.T) {
	tbl := NewTable()

	tbl.Insert("gh", ":open<CR>", mode.Normal)
	tbl.Insert("<C-G>", "G", mode.Normal)
	if tbl.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", tbl.Len())
	}

	// notation is normalized on both insert and remove
	if !tbl.Remove("<C-g>", mode.Normal) {
		t.Errorf("Remove(<C-g>) = false, want true")
	}
	if tbl.Len() != 1 {
		t.Errorf("Len() = %d, want 1", tbl.Len())
	}
	if tbl.Remove("<C-g>", mode.Normal) {
		t.Errorf("Remove(<C-g>) second call = true, want false")
	}

	// removal is mode scoped
	if tbl.Remove("gh", mode.Insert) {
		t.Errorf("Remove(gh, insert) = true, want false")
	}
	if !tbl.Remove("gh", mode.Normal) {
		t.Errorf("Remove(gh, normal) = false, want true")
	}
}

func TestFindMatchesLongestWins(t *testing.T) {
	tbl := NewTable()
	tbl.Insert("a", "1", mode.Normal)
	tbl.Insert("ab", "2", mode.Normal)

	match, ambiguous := tbl.FindMatches([]byte("ab"), mode.Normal, true)
	if match == nil || !bytes.Equal(match.Out, []byte("2")) {
		t.Errorf("FindMatches(ab) = %v, want mapping to %q", match, "2")
	}
	if ambiguous {
		t.Errorf("FindMatches(ab) ambiguous = true, want false")
	}
}

func TestFindMatchesMostRecentTie(t *testing.T) {
	tbl := NewTable()
	tbl.Insert("ab", "1", mode.Normal)
	tbl.Insert("ab", "2", mode.Normal)

	match, _ := tbl.FindMatches([]byte("ab"), mode.Normal, true)
	if match == nil || !bytes.Equal(match.Out, []byte("2")) {
		t.Errorf("FindMatches(ab) = %v, want most recent mapping to %q", match, "2")
	}
}

func TestFindMatchesAmbiguity(t *testing.T) {
	tbl := NewTable()
	tbl.Insert("ab", "1", mode.Normal)
	tbl.Insert("abc", "2", mode.Normal)

	// a longer mapping still reachable from the queue suspends resolution
	match, ambiguous := tbl.FindMatches([]byte("ab"), mode.Normal, true)
	if !ambiguous {
		t.Errorf("FindMatches(ab, allowPartial) ambiguous = false, want true")
	}
	if match == nil || !bytes.Equal(match.In, []byte("ab")) {
		t.Errorf("FindMatches(ab, allowPartial) match = %v, want ab mapping", match)
	}

	// after the timeout partial matches no longer count
	match, ambiguous = tbl.FindMatches([]byte("ab"), mode.Normal, false)
	if ambiguous {
		t.Errorf("FindMatches(ab, timeout) ambiguous = true, want false")
	}
	if match == nil || !bytes.Equal(match.Out, []byte("1")) {
		t.Errorf("FindMatches(ab, timeout) = %v, want mapping to %q", match, "1")
	}

	// a pure prefix with no complete match yields ambiguity only
	match, ambiguous = tbl.FindMatches([]byte("a"), mode.Normal, true)
	if match != nil {
		// "a" prefixes both mappings but completes neither
		t.Errorf("FindMatches(a) match = %v, want nil", match)
	}
	if !ambiguous {
		t.Errorf("FindMatches(a) ambiguous = false, want true")
	}
}

func TestFindMatchesModeScoped(t *testing.T) {
	tbl := NewTable()
	tbl.Insert("x", "y", mode.Insert)

	match, ambiguous := tbl.FindMatches([]byte("x"), mode.Normal, true)
	if match != nil || ambiguous {
		t.Errorf("FindMatches(x, normal) = (%v, %v), want no result", match, ambiguous)
	}

	match, _ = tbl.FindMatches([]byte("x"), mode.Insert, true)
	if match == nil || !bytes.Equal(match.Out, []byte("y")) {
		t.Errorf("FindMatches(x, insert) = %v, want mapping to %q", match, "y")
	}
}
