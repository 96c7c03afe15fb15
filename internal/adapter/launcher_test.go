package adapter

import (
	"errors"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLauncher_ConfiguredCommand(t *testing.T) {
	args := []string{"--new-tab"}
	l := NewLauncher(" firefox ", args, nil)

	var gotName string
	var gotArgs []string
	l.start = func(name string, a ...string) error {
		gotName, gotArgs = name, a
		return nil
	}

	require.NoError(t, l.Launch("http://example.org/"))
	assert.Equal(t, "firefox", gotName)
	assert.Equal(t, []string{"--new-tab", "http://example.org/"}, gotArgs)
	assert.Equal(t, []string{"--new-tab"}, args, "configured args untouched")
}

func TestLauncher_SystemDefault(t *testing.T) {
	l := NewLauncher("", nil, nil)
	name, args := l.commandFor("http://example.org/")

	switch runtime.GOOS {
	case "darwin":
		assert.Equal(t, "open", name)
	case "windows":
		assert.Equal(t, "cmd", name)
	default:
		assert.Equal(t, "xdg-open", name)
	}
	assert.Equal(t, "http://example.org/", args[len(args)-1])
}

func TestLauncher_Errors(t *testing.T) {
	l := NewLauncher("browser", nil, nil)
	l.start = func(string, ...string) error { return errors.New("not found") }

	assert.Error(t, l.Launch(""))
	err := l.Launch("http://example.org/")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}
