package cfa

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/hitzhangjie/cfastates/pkg/logflags"
)

// bannerWidth is the width of the `=` separator lines.
const bannerWidth = 80

var banner = strings.Repeat("=", bannerWidth)

// Report is the frequency analysis of one run.
type Report struct {
	// Total is the number of extracted states.
	Total int
	// Entries are the distinct states, most frequent first.
	Entries Entries
	// NormalizeRSP reports whether RSP offsets were collapsed.
	NormalizeRSP bool
}

// Tally counts states and ranks them. With normalizeRSP set, states are
// first passed through NormalizeRSPOffset and the offsets that were
// removed are kept per normalized state.
func Tally(states []string, normalizeRSP bool) *Report {
	table := NewTable()
	for _, state := range states {
		if !normalizeRSP {
			table.Add(state)
			continue
		}
		normalized, offset, ok := NormalizeRSPOffset(state)
		table.Add(normalized)
		if ok {
			table.AddOffset(normalized, offset)
		}
	}

	if logflags.Report() {
		logflags.ReportLogger().Debugf("tallied %d rows into %d states (normalize-rsp=%v)", len(states), table.Len(), normalizeRSP)
	}
	return &Report{
		Total:        len(states),
		Entries:      table.Ranked(),
		NormalizeRSP: normalizeRSP,
	}
}

// Unique returns the number of distinct states.
func (r *Report) Unique() int {
	return len(r.Entries)
}

// Duplicates returns the number of rows repeating an already seen state.
func (r *Report) Duplicates() int {
	return r.Total - r.Unique()
}

// Redundancy returns the percentage of duplicate rows, 0 if there are no
// rows at all.
func (r *Report) Redundancy() float64 {
	if r.Total == 0 {
		return 0
	}
	return float64(r.Duplicates()) / float64(r.Total) * 100
}

// Render writes the report in its text form.
func (r *Report) Render(w io.Writer) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "Total CFA state rows: %d\n\n", r.Total)
	fmt.Fprintf(bw, "%s: %d\n\n", r.uniqueLabel(), r.Unique())

	fmt.Fprintln(bw, banner)
	if r.NormalizeRSP {
		fmt.Fprintln(bw, "CFA States sorted by frequency (RSP+N means various offsets):")
	} else {
		fmt.Fprintln(bw, "CFA States sorted by frequency:")
	}
	fmt.Fprintln(bw, banner)

	for _, e := range r.Entries {
		r.writeEntry(bw, e)
	}

	if r.Total > 0 {
		fmt.Fprintf(bw, "\n%s\n", banner)
		r.writeSummary(bw)
	}
	return bw.Flush()
}

// RenderTop writes at most n entries, without headers.
func (r *Report) RenderTop(w io.Writer, n int) error {
	bw := bufio.NewWriter(w)
	for i, e := range r.Entries {
		if i == n {
			break
		}
		r.writeEntry(bw, e)
	}
	return bw.Flush()
}

// RenderSummary writes the row counts and the redundancy line.
func (r *Report) RenderSummary(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "Total CFA state rows: %d\n", r.Total)
	fmt.Fprintf(bw, "%s: %d\n", r.uniqueLabel(), r.Unique())
	if r.Total > 0 {
		r.writeSummary(bw)
	}
	return bw.Flush()
}

func (r *Report) uniqueLabel() string {
	if r.NormalizeRSP {
		return "Unique CFA states (with RSP offsets normalized)"
	}
	return "Unique CFA states"
}

func (r *Report) writeEntry(w io.Writer, e Entry) {
	if r.NormalizeRSP && len(e.Offsets) != 0 {
		fmt.Fprintf(w, "%6dx  %s [offsets: %s]\n", e.Count, e.State, strings.Join(e.Offsets, ", "))
		return
	}
	fmt.Fprintf(w, "%6dx  %s\n", e.Count, e.State)
}

func (r *Report) writeSummary(w io.Writer) {
	fmt.Fprintf(w, "Redundancy: %.2f%% (%d out of %d rows are duplicates)\n", r.Redundancy(), r.Duplicates(), r.Total)
}
