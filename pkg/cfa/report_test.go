package cfa

import (
	"bytes"
	"errors"
	"io/ioutil"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadStates(t *testing.T) []string {
	t.Helper()
	data, err := ioutil.ReadFile("testdata/eh_frame.txt")
	require.NoError(t, err)
	return Extract(strings.Split(string(data), "\n"))
}

func TestRenderGolden(t *testing.T) {
	tests := []struct {
		golden       string
		normalizeRSP bool
	}{
		{"testdata/report.golden", false},
		{"testdata/report_normalized.golden", true},
	}
	states := loadStates(t)
	require.Len(t, states, 11)

	for _, tt := range tests {
		t.Run(tt.golden, func(t *testing.T) {
			want, err := ioutil.ReadFile(tt.golden)
			require.NoError(t, err)

			var out bytes.Buffer
			require.NoError(t, Tally(states, tt.normalizeRSP).Render(&out))
			assert.Equal(t, string(want), out.String())
		})
	}
}

func TestTallyNormalizeGroupsOffsets(t *testing.T) {
	states := Extract([]string{"0x10: CFA=RSP+8: rbx", "0x20: CFA=RSP+24: rbx"})

	r := Tally(states, true)
	require.Len(t, r.Entries, 1)
	assert.Equal(t, Entry{State: "CFA=RSP+N: rbx", Count: 2, Offsets: []string{"8", "24"}}, r.Entries[0])

	var out bytes.Buffer
	require.NoError(t, r.Render(&out))
	assert.Contains(t, out.String(), "     2x  CFA=RSP+N: rbx [offsets: 8, 24]\n")
	assert.Contains(t, out.String(), "Redundancy: 50.00% (1 out of 2 rows are duplicates)\n")
}

func TestTallyRawHasNoOffsets(t *testing.T) {
	r := Tally([]string{"CFA=RSP+8: rbx", "CFA=RSP+8: rbx"}, false)
	require.Len(t, r.Entries, 1)
	assert.Nil(t, r.Entries[0].Offsets)

	var out bytes.Buffer
	require.NoError(t, r.Render(&out))
	assert.NotContains(t, out.String(), "offsets")
}

func TestTallyCountsSumToTotal(t *testing.T) {
	states := loadStates(t)
	for _, normalize := range []bool{false, true} {
		r := Tally(states, normalize)
		sum := 0
		for _, e := range r.Entries {
			sum += e.Count
		}
		assert.Equal(t, r.Total, sum)
		assert.Equal(t, len(states), r.Total)
	}
}

func TestRenderEmpty(t *testing.T) {
	var out bytes.Buffer
	r := Tally(Extract(nil), false)
	require.NoError(t, r.Render(&out))

	want := "Total CFA state rows: 0\n\n" +
		"Unique CFA states: 0\n\n" +
		banner + "\n" +
		"CFA States sorted by frequency:\n" +
		banner + "\n"
	assert.Equal(t, want, out.String())
	assert.Equal(t, float64(0), r.Redundancy())
}

func TestRedundancy(t *testing.T) {
	tests := []struct {
		name   string
		states []string
		want   float64
	}{
		{"all distinct", []string{"CFA=a", "CFA=b", "CFA=c"}, 0},
		{"all identical", []string{"CFA=a", "CFA=a", "CFA=a", "CFA=a"}, 75},
		{"single", []string{"CFA=a"}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Tally(tt.states, false)
			assert.InDelta(t, tt.want, r.Redundancy(), 1e-9)
			assert.True(t, r.Redundancy() >= 0 && r.Redundancy() < 100)
		})
	}

	r := Tally([]string{"CFA=a", "CFA=a", "CFA=a"}, false)
	assert.Equal(t, 1, r.Unique())
	assert.InDelta(t, float64(2)/3*100, r.Redundancy(), 1e-9)
}

func TestRenderTopAndSummary(t *testing.T) {
	r := Tally(loadStates(t), true)

	var top bytes.Buffer
	require.NoError(t, r.RenderTop(&top, 2))
	assert.Equal(t,
		"     5x  CFA=RSP+N: RIP=[CFA-8] [offsets: 8, 16, 24]\n"+
			"     3x  CFA=RSP+N: RBP=[CFA-16], RIP=[CFA-8] [offsets: 8, 16]\n",
		top.String())

	var summary bytes.Buffer
	require.NoError(t, r.RenderSummary(&summary))
	assert.Equal(t,
		"Total CFA state rows: 11\n"+
			"Unique CFA states (with RSP offsets normalized): 4\n"+
			"Redundancy: 63.64% (7 out of 11 rows are duplicates)\n",
		summary.String())
}

func TestRenderSummaryRaw(t *testing.T) {
	var summary bytes.Buffer
	require.NoError(t, Tally(loadStates(t), false).RenderSummary(&summary))
	assert.Equal(t,
		"Total CFA state rows: 11\n"+
			"Unique CFA states: 7\n"+
			"Redundancy: 36.36% (4 out of 11 rows are duplicates)\n",
		summary.String())
}

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestRenderWriteError(t *testing.T) {
	r := Tally([]string{"CFA=a"}, false)
	assert.EqualError(t, r.Render(failingWriter{}), "disk full")
}
