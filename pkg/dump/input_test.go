package dump

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadLines(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"empty", "", []string{}},
		{"no trailing newline", "a\nb", []string{"a", "b"}},
		{"trailing newline", "a\nb\n", []string{"a", "b"}},
		{"crlf", "a\r\nb\r\n", []string{"a", "b"}},
		{"blank lines kept", "a\n\nb\n", []string{"a", "", "b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadLines(strings.NewReader(tt.in))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReadLinesLongLine(t *testing.T) {
	long := "  0x10: CFA=" + strings.Repeat("x", 1<<20)
	got, err := ReadLines(strings.NewReader(long + "\n"))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, long, got[0])
}

func TestLoad(t *testing.T) {
	lines, err := Load("testdata/eh_frame.txt", nil)
	require.NoError(t, err)
	assert.NotEmpty(t, lines)
	assert.Contains(t, lines, "  0x1004: CFA=RSP+16: RIP=[CFA-8]")
}

func TestLoadStdin(t *testing.T) {
	for _, path := range []string{"", Stdin} {
		lines, err := Load(path, strings.NewReader("  0x10: CFA=RSP+8: RIP=[CFA-8]\n"))
		require.NoError(t, err)
		assert.Equal(t, []string{"  0x10: CFA=RSP+8: RIP=[CFA-8]"}, lines)
	}
}

func TestLoadMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.txt")

	_, err := Load(path, nil)
	require.Error(t, err)

	var ierr *InputError
	require.True(t, errors.As(err, &ierr))
	assert.Equal(t, path, ierr.Path)
	assert.True(t, errors.Is(err, os.ErrNotExist))
	assert.Contains(t, err.Error(), path)
}
