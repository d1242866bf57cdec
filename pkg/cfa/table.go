package cfa

import (
	"sort"
	"strings"
)

// Table counts occurrences of states, remembering the order in which
// states were first seen.
type Table struct {
	order   []string
	counts  map[string]int
	offsets map[string]map[string]struct{}
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{
		counts:  map[string]int{},
		offsets: map[string]map[string]struct{}{},
	}
}

// Add counts one occurrence of state.
func (t *Table) Add(state string) {
	if _, ok := t.counts[state]; !ok {
		t.order = append(t.order, state)
	}
	t.counts[state]++
}

// AddOffset records offset as one of the stack pointer offsets folded
// into state.
func (t *Table) AddOffset(state, offset string) {
	set, ok := t.offsets[state]
	if !ok {
		set = map[string]struct{}{}
		t.offsets[state] = set
	}
	set[offset] = struct{}{}
}

// Len returns the number of distinct states.
func (t *Table) Len() int {
	return len(t.order)
}

// Count returns how many times state was added.
func (t *Table) Count(state string) int {
	return t.counts[state]
}

// Offsets returns the distinct offsets recorded for state in ascending
// numeric order, nil if there are none.
func (t *Table) Offsets(state string) []string {
	set, ok := t.offsets[state]
	if !ok {
		return nil
	}
	offsets := make([]string, 0, len(set))
	for o := range set {
		offsets = append(offsets, o)
	}
	sort.Slice(offsets, func(i, j int) bool {
		return lessNumeric(offsets[i], offsets[j])
	})
	return offsets
}

// Ranked returns the table entries sorted by descending count. Entries with
// the same count keep their first-seen order.
func (t *Table) Ranked() Entries {
	entries := make(Entries, 0, len(t.order))
	for _, state := range t.order {
		entries = append(entries, Entry{
			State:   state,
			Count:   t.Count(state),
			Offsets: t.Offsets(state),
		})
	}
	sort.Stable(entries)
	return entries
}

// Entry is one row of the frequency report.
type Entry struct {
	State   string
	Count   int
	Offsets []string // only set for normalized RSP states
}

// Entries sorts by descending count.
type Entries []Entry

func (e Entries) Len() int {
	return len(e)
}

func (e Entries) Less(i, j int) bool {
	return e[i].Count > e[j].Count
}

func (e Entries) Swap(i, j int) {
	e[i], e[j] = e[j], e[i]
}

// lessNumeric compares two decimal digit strings by value, without limiting
// them to a machine integer. Equal values ("8", "08") fall back to string
// order.
func lessNumeric(a, b string) bool {
	ta, tb := strings.TrimLeft(a, "0"), strings.TrimLeft(b, "0")
	if len(ta) != len(tb) {
		return len(ta) < len(tb)
	}
	if ta != tb {
		return ta < tb
	}
	return a < b
}
