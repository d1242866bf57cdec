package logflags

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetup(t *testing.T) {
	defer Setup(false, "")

	tests := []struct {
		name    string
		logFlag bool
		logstr  string
		wantErr bool
		want    [4]bool // input, extract, report, shell
	}{
		{"disabled", false, "", false, [4]bool{}},
		{"output without log", false, "input", true, [4]bool{}},
		{"all by default", true, "", false, [4]bool{true, true, true, true}},
		{"selected", true, "extract, report", false, [4]bool{false, true, true, false}},
		{"unknown ignored", true, "nope,shell", false, [4]bool{false, false, false, true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Setup(tt.logFlag, tt.logstr)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, [4]bool{Input(), Extract(), Report(), Shell()})
		})
	}
}

func TestMakeLogger(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(nil)

	off := makeLogger(false, logrus.Fields{"layer": "x"})
	assert.Equal(t, logrus.PanicLevel, off.Logger.Level)
	off.Debug("hidden")
	assert.Empty(t, buf.String())

	on := makeLogger(true, logrus.Fields{"layer": "x"})
	assert.Equal(t, logrus.DebugLevel, on.Logger.Level)
	on.Debug("shown")
	assert.Contains(t, buf.String(), "shown")
	assert.Contains(t, buf.String(), "layer=x")
}
