package app

import (
	"fmt"
	"log"
	"strings"

	"github.com/pstuifzand/tui-treeview/internal/socket"
)

// ListenSocket accepts remote commands on a socket in dir until Close
func (a *App) ListenSocket(dir string, pid int) error {
	server, err := socket.NewServer(dir, pid)
	if err != nil {
		return err
	}
	server.Start()
	a.socketServer = server
	return nil
}

// socketMessages returns nil when no server runs, which blocks forever in
// a select
func (a *App) socketMessages() <-chan socket.Message {
	if a.socketServer == nil {
		return nil
	}
	return a.socketServer.Messages()
}

// handleSocketMessage processes messages received from the Unix socket
func (a *App) handleSocketMessage(msg socket.Message) {
	log.Printf("Received socket message: command=%s, text=%s", msg.Command, msg.Text)

	switch msg.Command {
	case socket.CommandRun:
		if strings.TrimSpace(msg.Text) == "" {
			log.Printf("Run command missing text")
			return
		}
		a.commandPrompt.History().Add(msg.Text)
		a.handleCommand(msg.Text)
	case socket.CommandVisible:
		lines := a.visibleLines()
		respond(msg, &socket.Response{
			Success: true,
			Message: fmt.Sprintf("%d rows", len(lines)),
			Lines:   lines,
		})
	default:
		log.Printf("Unknown socket command: %s", msg.Command)
		respond(msg, &socket.Response{Success: false, Message: "Unknown command: " + msg.Command})
	}
}

func respond(msg socket.Message, response *socket.Response) {
	if msg.ResponseChan != nil {
		msg.ResponseChan <- response
	}
}

// visibleLines formats the visible rows as "label description"
func (a *App) visibleLines() []string {
	var lines []string
	for _, item := range a.view.VisibleItems() {
		line := item.Label.Text
		if item.Description != "" {
			line += " " + item.Description
		}
		lines = append(lines, line)
	}
	return lines
}
