package socket

import (
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// ErrNoInstance is returned when no viewer socket exists
var ErrNoInstance = errors.New("no running instance found")

// Client sends commands to a running viewer
type Client struct {
	socketPath string
}

// FindRunningInstance returns the newest socket in dir and the PID encoded
// in its name (0 when the name has none)
func FindRunningInstance(dir string) (string, int, error) {
	sockets, err := filepath.Glob(filepath.Join(dir, socketPrefix+"*.sock"))
	if err != nil {
		return "", 0, fmt.Errorf("error scanning socket directory: %w", err)
	}

	var socketPath string
	var newestTime time.Time
	for _, sock := range sockets {
		info, err := os.Stat(sock)
		if err != nil {
			continue
		}
		if socketPath == "" || info.ModTime().After(newestTime) {
			newestTime = info.ModTime()
			socketPath = sock
		}
	}
	if socketPath == "" {
		return "", 0, ErrNoInstance
	}

	pidStr := strings.TrimSuffix(strings.TrimPrefix(filepath.Base(socketPath), socketPrefix), ".sock")
	pid, err := strconv.Atoi(pidStr)
	if err != nil {
		pid = 0
	}

	return socketPath, pid, nil
}

// NewClient creates a client for the socket at socketPath
func NewClient(socketPath string) (*Client, error) {
	if _, err := os.Stat(socketPath); err != nil {
		return nil, fmt.Errorf("socket not found: %w", err)
	}

	return &Client{socketPath: socketPath}, nil
}

// Send sends a message to the server and returns the response
func (c *Client) Send(msg Message) (*Response, error) {
	conn, err := net.Dial("unix", c.socketPath)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to socket: %w", err)
	}
	defer conn.Close()

	conn.SetDeadline(time.Now().Add(15 * time.Second))

	if err := json.NewEncoder(conn).Encode(msg); err != nil {
		return nil, fmt.Errorf("failed to send message: %w", err)
	}

	var response Response
	if err := json.NewDecoder(conn).Decode(&response); err != nil {
		return nil, fmt.Errorf("failed to receive response: %w", err)
	}

	return &response, nil
}

// Run asks the viewer to run a ":" command line
func (c *Client) Run(commandLine string) (*Response, error) {
	return c.Send(Message{Command: CommandRun, Text: commandLine})
}

// Visible asks the viewer for its visible rows
func (c *Client) Visible() (*Response, error) {
	return c.Send(Message{Command: CommandVisible})
}
