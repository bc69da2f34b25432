// Package keymap stores the user-defined key remappings, scoped by editing
// mode, and answers the prefix queries of the key resolver.
package keymap

import (
	"bytes"

	"github.com/jubalh/vimb/internal/keycode"
	"github.com/jubalh/vimb/internal/logger"
	"github.com/jubalh/vimb/internal/mode"
)

// Mapping is one rewrite rule: while Mode is active, the key sequence In is
// replaced by Out. Both sides are raw key codes.
type Mapping struct {
	In   []byte
	Out  []byte
	Mode mode.ID
}

// Table holds all mappings, most recently inserted first. Mappings for
// different modes never interact. The table is not safe for concurrent
// use; insert, remove and lookup must run on the input-handling task.
type Table struct {
	mappings []*Mapping
}

// NewTable creates an empty mapping table.
func NewTable() *Table {
	return &Table{}
}

// Insert adds a mapping given in human notation. Duplicates are allowed;
// on equal input length the most recently inserted mapping wins lookup.
func (t *Table) Insert(in, out string, id mode.ID) {
	m := &Mapping{
		In:   keycode.FromNotation(in),
		Out:  keycode.FromNotation(out),
		Mode: id,
	}
	t.mappings = append([]*Mapping{m}, t.mappings...)
	logger.DebugTagf("keymap", "mapped %q -> %q for mode %s", in, out, id)
}

// Remove deletes the first mapping whose mode and input exactly match the
// given notation. It reports whether a mapping was removed.
func (t *Table) Remove(in string, id mode.ID) bool {
	lhs := keycode.FromNotation(in)
	for i, m := range t.mappings {
		if m.Mode == id && bytes.Equal(m.In, lhs) {
			t.mappings = append(t.mappings[:i], t.mappings[i+1:]...)
			return true
		}
	}
	return false
}

// Len returns the number of stored mappings across all modes.
func (t *Table) Len() int {
	return len(t.mappings)
}

// FindMatches scans the mappings of the given mode against the queued keys.
//
// A mapping whose input is strictly longer than the queue while the queue is
// one of its prefixes makes the result ambiguous, but only while
// allowPartial is true (no timeout yet). Among the mappings whose whole
// input is a prefix of the queue the longest input wins; on equal length the
// first found wins, which by insertion order is the most recent one.
func (t *Table) FindMatches(queue []byte, id mode.ID, allowPartial bool) (match *Mapping, ambiguous bool) {
	for _, m := range t.mappings {
		if m.Mode != id {
			continue
		}
		if allowPartial && len(m.In) > len(queue) && bytes.HasPrefix(m.In, queue) {
			ambiguous = true
		}
		if len(m.In) <= len(queue) && bytes.Equal(m.In, queue[:len(m.In)]) &&
			(match == nil || len(match.In) < len(m.In)) {
			match = m
		}
	}
	return match, ambiguous
}
