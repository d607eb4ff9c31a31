package ui

import (
	"sync"
	"time"

	"github.com/ncruces/go-strftime"
)

// Message represents a status message with timestamp
type Message struct {
	Text      string
	Timestamp time.Time
}

// String formats the message with its time of day
func (m *Message) String() string {
	return strftime.Format("%H:%M:%S", m.Timestamp) + " " + m.Text
}

// MessageLogger tracks the last N status messages
type MessageLogger struct {
	messages []*Message
	maxSize  int
	mu       sync.Mutex
	now      func() time.Time
}

// NewMessageLogger creates a new message logger with the specified max size
func NewMessageLogger(maxSize int) *MessageLogger {
	return &MessageLogger{
		messages: make([]*Message, 0, maxSize),
		maxSize:  maxSize,
		now:      time.Now,
	}
}

// AddMessage adds a new status message to the history
func (ml *MessageLogger) AddMessage(text string) {
	ml.mu.Lock()
	defer ml.mu.Unlock()

	if text == "" {
		return
	}

	ml.messages = append(ml.messages, &Message{
		Text:      text,
		Timestamp: ml.now(),
	})

	// Keep only the last maxSize messages
	if len(ml.messages) > ml.maxSize {
		ml.messages = ml.messages[len(ml.messages)-ml.maxSize:]
	}
}

// Latest returns the newest message, or nil
func (ml *MessageLogger) Latest() *Message {
	ml.mu.Lock()
	defer ml.mu.Unlock()

	if len(ml.messages) == 0 {
		return nil
	}
	return ml.messages[len(ml.messages)-1]
}

// GetMessagesReverse returns a copy of all messages, newest first
func (ml *MessageLogger) GetMessagesReverse() []*Message {
	ml.mu.Lock()
	defer ml.mu.Unlock()

	result := make([]*Message, len(ml.messages))
	for i, msg := range ml.messages {
		result[len(ml.messages)-1-i] = msg
	}
	return result
}

// Clear clears all messages
func (ml *MessageLogger) Clear() {
	ml.mu.Lock()
	defer ml.mu.Unlock()
	ml.messages = ml.messages[:0]
}

// Count returns the number of messages in the logger
func (ml *MessageLogger) Count() int {
	ml.mu.Lock()
	defer ml.mu.Unlock()
	return len(ml.messages)
}
