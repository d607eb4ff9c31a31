package socket

// Message is a request sent to a running viewer
type Message struct {
	Command string `json:"command"`
	Text    string `json:"text,omitempty"`

	// Set by the server for commands that wait for a reply
	ResponseChan chan *Response `json:"-"`
}

// Response is the reply of the server
type Response struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Lines   []string `json:"lines,omitempty"`
}

// Command types
const (
	// CommandRun runs Text as a ":" command line
	CommandRun = "run"
	// CommandVisible replies with the visible rows of the tree
	CommandVisible = "visible"
)

// IsSynchronous reports whether the client waits for the command's result
func IsSynchronous(command string) bool {
	return command == CommandVisible
}
