package cfa

import "regexp"

// RSPPlaceholder replaces the numeric offset of a normalized RSP rule.
const RSPPlaceholder = "N"

// rspOffsetPattern matches `CFA=RSP+<digits>` optionally followed by a tail
// which must start with ':' right after the digits.
var rspOffsetPattern = regexp.MustCompile(`^CFA=RSP\+([0-9]+)((?::.*)?)$`)

// NormalizeRSPOffset collapses a `CFA=RSP+<offset>` state into
// `CFA=RSP+N`, so that rows which only differ in the stack pointer offset
// are counted together.
//
// The removed offset is returned verbatim. States of any other shape are
// returned unchanged with ok set to false.
func NormalizeRSPOffset(state string) (normalized, offset string, ok bool) {
	m := rspOffsetPattern.FindStringSubmatch(state)
	if m == nil {
		return state, "", false
	}
	return "CFA=RSP+" + RSPPlaceholder + m[2], m[1], true
}
