package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/pstuifzand/tui-treeview/internal/app"
	"github.com/pstuifzand/tui-treeview/internal/socket"
)

func main() {
	logFile, err := os.Create("tree.log")
	if err != nil {
		log.Fatal(err)
	}
	defer logFile.Close()
	log.SetOutput(logFile)
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	debug := flag.Bool("debug", false, "Enable debug mode (shows key events in status)")
	configPath := flag.String("config", "", "Path to the config file")
	treeID := flag.String("id", app.DefaultTreeID, "Id of the tree view")
	send := flag.String("send", "", "Run a command line in a running instance")
	visible := flag.Bool("visible", false, "Print the visible rows of a running instance")
	flag.Parse()

	if *send != "" || *visible {
		if err := remote(*send, *visible); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	args := flag.Args()
	if len(args) == 0 {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] <outline file>\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(2)
	}

	application, err := app.NewApp(args[0], *configPath, *treeID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *debug {
		application.SetDebugMode(true)
	}

	if err := application.ListenSocket(socket.DefaultDir(), os.Getpid()); err != nil {
		log.Printf("remote commands disabled: %v", err)
	}

	if err := application.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Runtime error: %v\n", err)
		os.Exit(1)
	}
}

// remote sends a command line, or a request for the visible rows, to the
// newest running instance
func remote(commandLine string, visible bool) error {
	socketPath, pid, err := socket.FindRunningInstance(socket.DefaultDir())
	if err != nil {
		return err
	}
	log.Printf("Found running instance at PID %d: %s", pid, socketPath)

	client, err := socket.NewClient(socketPath)
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}

	if commandLine = strings.TrimSpace(commandLine); commandLine != "" {
		response, err := client.Run(commandLine)
		if err != nil {
			return fmt.Errorf("failed to send command: %w", err)
		}
		if !response.Success {
			return fmt.Errorf("server error: %s", response.Message)
		}
	}

	if visible {
		response, err := client.Visible()
		if err != nil {
			return fmt.Errorf("failed to request rows: %w", err)
		}
		if !response.Success {
			return fmt.Errorf("server error: %s", response.Message)
		}
		for _, line := range response.Lines {
			fmt.Println(line)
		}
	}
	return nil
}
