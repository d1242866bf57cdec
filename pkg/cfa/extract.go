// Package cfa contains data structures and related functions for
// extracting, normalizing and counting the CFA state rows printed by
// `llvm-dwarfdump --eh-frame`.
package cfa

import (
	"regexp"
	"strings"

	"github.com/hitzhangjie/cfastates/pkg/logflags"
)

// StatePrefix is the token every extracted state begins with.
const StatePrefix = "CFA="

// rowPattern matches a row of the unwind table, like:
//
//	0x0000000000001004: CFA=RSP+16: RIP=[CFA-8]
//
// Whitespace covers \v and the Unicode spaces as well, RE2's \s alone is
// ASCII only.
var rowPattern = regexp.MustCompile(`^` + space + `*0x[0-9a-fA-F]+:` + space + `+CFA=`)

const space = `[\s\v\x{1c}-\x{1f}\x{85}\p{Z}]`

// Extract scans lines and returns the CFA state of every unwind table row,
// in input order. The state is the text from the `CFA=` token to the end
// of the line.
func Extract(lines []string) []string {
	states := []string{}
	for _, line := range lines {
		if state, ok := ExtractLine(line); ok {
			states = append(states, state)
		}
	}
	if logflags.Extract() {
		logflags.ExtractLogger().Debugf("extracted %d states from %d lines", len(states), len(lines))
	}
	return states
}

// ExtractLine returns the CFA state of a single line, ok is false if the
// line is not an unwind table row.
func ExtractLine(line string) (state string, ok bool) {
	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")

	loc := rowPattern.FindStringIndex(line)
	if loc == nil {
		return "", false
	}
	// the match ends right after the first `CFA=` of the row
	return line[loc[1]-len(StatePrefix):], true
}
