package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Chdir(t.TempDir())
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--memory"}, args...))
	err := root.Execute()
	return out.String(), err
}

func TestParseSwitch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    bool
		wantErr bool
	}{
		{"on", true, false},
		{"OFF", false, false},
		{"true", true, false},
		{"0", false, false},
		{"maybe", false, true},
	}
	for _, tt := range tests {
		got, err := parseSwitch(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestSettingsSetCmd(t *testing.T) {
	out, err := execute(t, "settings", "set", "--work", "50m", "--interval", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "work: 50m0s\n")
	assert.Contains(t, out, "short_break: 5m0s\n")
	assert.Contains(t, out, "long_break_interval: 2\n")
}

func TestSettingsSetCmd_Invalid(t *testing.T) {
	_, err := execute(t, "settings", "set", "--work", "0s")
	assert.Error(t, err)
}

func TestTaskAddCmd(t *testing.T) {
	out, err := execute(t, "task", "add", "write", "report", "-e", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "added ")

	_, err = execute(t, "task", "add", " ", "-e", "1")
	assert.Error(t, err)
}

func TestPrefsCmd(t *testing.T) {
	out, err := execute(t, "prefs")
	require.NoError(t, err)
	assert.Equal(t, "sound: true\ndark mode: true\n", out)

	_, err = execute(t, "prefs", "sound", "sometimes")
	assert.Error(t, err)
}
