package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRenderDoctor_Plain(t *testing.T) {
	out := renderDoctor([]doctorRow{
		{"binary", "/opt/lightpanda", true},
		{"listening", "false", false},
	}, false)

	require.Contains(t, out, "/opt/lightpanda")
	require.Contains(t, out, "OK")
	require.Contains(t, out, "FAIL")
	require.NotContains(t, out, "\x1b[")
}

func TestRenderDoctor_StyledUsesRoundedBox(t *testing.T) {
	out := renderDoctor([]doctorRow{{"listening", "true", true}}, true)
	require.Contains(t, out, "╭")
	require.Contains(t, out, "OK")
}

func TestIsTerminal_BufferIsNot(t *testing.T) {
	require.False(t, isTerminal(&bytes.Buffer{}))
}

func TestRootCmd_ListsCommands(t *testing.T) {
	root := newRootCmd()
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetArgs([]string{"--help"})
	require.NoError(t, root.Execute())

	help := buf.String()
	for _, name := range []string{"provision", "browser", "doctor", "once"} {
		require.True(t, strings.Contains(help, name), "missing %s in help", name)
	}
}

func TestOnceCmd_RequiresURL(t *testing.T) {
	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetArgs([]string{"once"})
	err := root.Execute()
	require.Error(t, err)
	require.Contains(t, err.Error(), "--url")
}
