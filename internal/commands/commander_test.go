package commands

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestExecuteEmptyInput(t *testing.T) {
	c := NewCommander()
	_, err, _ := c.Execute("   ")
	require.Error(t, err)
}

func TestExecuteUnknownCommand(t *testing.T) {
	c := NewCommander()
	_, err, _ := c.Execute("frobnicate")
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown command")
}

func TestExecuteHelp(t *testing.T) {
	c := NewCommander()
	out, err, _ := c.Execute("help")
	require.NoError(t, err)
	require.Contains(t, out, "load")
	require.Contains(t, out, "endpoint")
}

func TestExecuteColonPrefix(t *testing.T) {
	c := NewCommander()
	out, err, _ := c.Execute(":help")
	require.NoError(t, err)
	require.NotEmpty(t, out)
}

func TestEndpointShowAndSet(t *testing.T) {
	c := NewCommander()

	out, err, _ := c.Execute("endpoint")
	require.NoError(t, err)
	require.Contains(t, out, c.GetAPIClient().Endpoint())

	_, err, _ = c.Execute("endpoint http://localhost:9000/classify")
	require.NoError(t, err)
	require.Equal(t, "http://localhost:9000/classify", c.GetAPIClient().Endpoint())
}

func TestTrackCommandsRequireTrackMode(t *testing.T) {
	c := NewCommander()
	require.False(t, c.IsInTrackMode())

	// classify is a track-mode command; in normal mode it is unknown.
	_, err, _ := c.Execute("classify")
	require.Error(t, err)
}

func TestQuitReturnsCmd(t *testing.T) {
	c := NewCommander()
	out, err, cmd := c.Execute("quit")
	require.NoError(t, err)
	require.Equal(t, "Goodbye!", out)
	require.NotNil(t, cmd)
}

func TestFormatDuration(t *testing.T) {
	require.Equal(t, "00:00", FormatDuration(0))
	require.Equal(t, "00:59", FormatDuration(59*time.Second))
	require.Equal(t, "02:05", FormatDuration(125*time.Second))
	require.Equal(t, "61:00", FormatDuration(61*time.Minute))
}
