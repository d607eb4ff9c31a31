package socket

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// shortDir keeps socket paths below the Unix socket path limit
func shortDir(t *testing.T) string {
	t.Helper()
	dir, err := os.MkdirTemp("", "tv")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(dir) })
	return dir
}

func startServer(t *testing.T, dir string) *Server {
	t.Helper()
	server, err := NewServer(dir, os.Getpid())
	require.NoError(t, err)
	t.Cleanup(server.Stop)
	server.Start()
	return server
}

func TestRunIsQueued(t *testing.T) {
	server := startServer(t, shortDir(t))

	client, err := NewClient(server.SocketPath())
	require.NoError(t, err)

	response, err := client.Run("filter alpha")
	require.NoError(t, err)
	assert.True(t, response.Success, response.Message)
	assert.Equal(t, "Command queued", response.Message)

	select {
	case msg := <-server.Messages():
		assert.Equal(t, CommandRun, msg.Command)
		assert.Equal(t, "filter alpha", msg.Text)
		assert.Nil(t, msg.ResponseChan)
	case <-time.After(time.Second):
		t.Fatal("Timeout waiting for message")
	}
}

func TestVisibleWaitsForResponse(t *testing.T) {
	server := startServer(t, shortDir(t))

	go func() {
		msg := <-server.Messages()
		msg.ResponseChan <- &Response{Success: true, Message: "2 rows", Lines: []string{"a", "b"}}
	}()

	client, err := NewClient(server.SocketPath())
	require.NoError(t, err)

	response, err := client.Visible()
	require.NoError(t, err)
	assert.True(t, response.Success)
	assert.Equal(t, []string{"a", "b"}, response.Lines)
}

func TestMissingCommand(t *testing.T) {
	server := startServer(t, shortDir(t))

	client, err := NewClient(server.SocketPath())
	require.NoError(t, err)

	response, err := client.Send(Message{Text: "orphan"})
	require.NoError(t, err)
	assert.False(t, response.Success)
	assert.Equal(t, "Missing command field", response.Message)
}

func TestFindRunningInstance(t *testing.T) {
	dir := shortDir(t)

	_, _, err := FindRunningInstance(dir)
	assert.ErrorIs(t, err, ErrNoInstance)

	server := startServer(t, dir)

	socketPath, pid, err := FindRunningInstance(dir)
	require.NoError(t, err)
	assert.Equal(t, server.SocketPath(), socketPath)
	assert.Equal(t, os.Getpid(), pid)
}

func TestStopRemovesSocket(t *testing.T) {
	dir := shortDir(t)
	server, err := NewServer(dir, 42)
	require.NoError(t, err)
	server.Start()

	assert.Equal(t, filepath.Join(dir, "tree-42.sock"), server.SocketPath())
	server.Stop()

	_, err = os.Stat(server.SocketPath())
	assert.True(t, os.IsNotExist(err))
}

func TestNewClientMissingSocket(t *testing.T) {
	_, err := NewClient(filepath.Join(shortDir(t), "tree-1.sock"))
	assert.Error(t, err)
}
