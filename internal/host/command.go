package host

import (
	"errors"
	"fmt"
	"sort"
)

var (
	// ErrCommandExists is returned when registering an id twice
	ErrCommandExists = errors.New("command already registered")
	// ErrUnknownCommand is returned when executing an unregistered id
	ErrUnknownCommand = errors.New("unknown command")
)

// CommandHandler handles an executed command
type CommandHandler func(args ...any) error

// Commands is a registry of named commands
type Commands struct {
	handlers map[string]CommandHandler
}

// NewCommands creates an empty registry
func NewCommands() *Commands {
	return &Commands{
		handlers: make(map[string]CommandHandler),
	}
}

// Register adds a handler; dispose the result to unregister it
func (c *Commands) Register(id string, handler CommandHandler) (Disposable, error) {
	if _, ok := c.handlers[id]; ok {
		return nil, fmt.Errorf("%w: %s", ErrCommandExists, id)
	}
	c.handlers[id] = handler
	return DisposableFunc(func() {
		delete(c.handlers, id)
	}), nil
}

// Execute runs the handler registered for id
func (c *Commands) Execute(id string, args ...any) error {
	handler, ok := c.handlers[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCommand, id)
	}
	return handler(args...)
}

// Has reports whether id is registered
func (c *Commands) Has(id string) bool {
	_, ok := c.handlers[id]
	return ok
}

// IDs returns the registered command ids in sorted order
func (c *Commands) IDs() []string {
	ids := make([]string, 0, len(c.handlers))
	for id := range c.handlers {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
