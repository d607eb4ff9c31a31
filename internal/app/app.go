package app

import (
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/pstuifzand/tui-treeview/internal/config"
	"github.com/pstuifzand/tui-treeview/internal/history"
	"github.com/pstuifzand/tui-treeview/internal/host"
	import_parser "github.com/pstuifzand/tui-treeview/internal/import"
	"github.com/pstuifzand/tui-treeview/internal/model"
	"github.com/pstuifzand/tui-treeview/internal/socket"
	"github.com/pstuifzand/tui-treeview/internal/theme"
	"github.com/pstuifzand/tui-treeview/internal/tree"
	"github.com/pstuifzand/tui-treeview/internal/treeitem"
	"github.com/pstuifzand/tui-treeview/internal/ui"
)

// DefaultTreeID is the view id used when none is given
const DefaultTreeID = "outline"

const statusTimeout = 3 * time.Second

// App is the main application controller
type App struct {
	screen   *ui.Screen
	cfg      *config.Config
	path     string
	treeID   string
	commands *host.Commands
	terminal *ui.Terminal[*treeitem.Node]
	result   *tree.Result
	view     *ui.TreeView[*treeitem.Node]

	elements      []*model.Element
	filter        string
	filterPrompt  *ui.Prompt
	commandPrompt *ui.Prompt
	messages      *ui.MessageLogger
	help          *ui.HelpScreen
	statusTime    time.Time
	showMessages  bool
	quit          bool
	debugMode     bool

	socketServer *socket.Server
}

// NewApp creates an App on the terminal for the outline file at filePath.
// An empty configPath loads the config from the standard location.
func NewApp(filePath, configPath, treeID string) (*App, error) {
	var cfg *config.Config
	var err error
	if configPath != "" {
		cfg, err = config.LoadFromFile(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	screen, err := ui.NewScreen(theme.LoadThemeOrDefault(cfg.Theme))
	if err != nil {
		return nil, fmt.Errorf("failed to create screen: %w", err)
	}

	app, err := New(screen, cfg, filePath, treeID)
	if err != nil {
		screen.Close()
		return nil, err
	}

	if manager, err := history.NewManager(); err != nil {
		log.Printf("prompt history disabled: %v", err)
	} else {
		app.UseHistory(manager)
	}
	return app, nil
}

// New creates an App drawing on screen
func New(screen *ui.Screen, cfg *config.Config, filePath, treeID string) (*App, error) {
	if filePath == "" {
		return nil, errors.New("no outline file given")
	}
	if treeID == "" {
		treeID = DefaultTreeID
	}
	if cfg == nil {
		cfg = &config.Config{}
	}

	elements, err := import_parser.ImportPath(filePath, import_parser.FormatAuto)
	if err != nil {
		return nil, fmt.Errorf("failed to load outline: %w", err)
	}

	commands := host.NewCommands()
	a := &App{
		screen:   screen,
		cfg:      cfg,
		path:     filePath,
		treeID:   treeID,
		commands: commands,
		terminal: ui.NewTerminal[*treeitem.Node](commands),
		elements: elements,
		messages: ui.NewMessageLogger(50),
		help:     ui.NewHelpScreen(),

		filterPrompt:  ui.NewPrompt("/", nil),
		commandPrompt: ui.NewPrompt(":", nil),
	}

	bindings := a.InitializeKeybindings()
	infos := make([]ui.KeyBindingInfo, len(bindings))
	for i := range bindings {
		infos[i] = &bindings[i]
	}
	a.help.SetKeybindings(infos)

	// Config options win over the defaults
	options := host.TreeViewOptions{
		ShowCollapseAll: host.Bool(true),
		Title:           host.String(filepath.Base(filePath)),
	}.Merge(cfg.TreeOptions())

	result, err := tree.GetTree(a.terminal, commands, treeID, a.rootElement(), options)
	if err != nil {
		return nil, err
	}
	a.result = result
	a.view = a.terminal.View(treeID)
	a.SetStatus("Loaded " + filePath)

	return a, nil
}

// UseHistory persists the filter and command prompt history in store
func (a *App) UseHistory(store ui.HistoryStore) {
	filterHistory, err := ui.LoadHistory(50, store, "filter.toml")
	if err != nil {
		log.Printf("failed to load filter history: %v", err)
	}
	commandHistory, err := ui.LoadHistory(50, store, "command.toml")
	if err != nil {
		log.Printf("failed to load command history: %v", err)
	}
	a.filterPrompt = ui.NewPrompt("/", filterHistory)
	a.commandPrompt = ui.NewPrompt(":", commandHistory)
}

// Run starts the main event loop
func (a *App) Run() error {
	defer a.Close()

	// Create a channel for events
	eventChan := make(chan tcell.Event)

	// Start event polling goroutine
	go func() {
		for {
			event := a.screen.PollEvent()
			eventChan <- event
			if event == nil {
				break
			}
		}
	}()

	ticker := time.NewTicker(50 * time.Millisecond) // ~20 FPS
	defer ticker.Stop()

	for !a.quit {
		select {
		case ev := <-eventChan:
			if ev == nil {
				return nil
			}
			a.handleRawEvent(ev)
		case msg := <-a.socketMessages():
			a.handleSocketMessage(msg)
		case <-ticker.C:
			a.render()
		}
	}

	return nil
}

// Close stops the socket server, releases the tree view and closes the
// screen
func (a *App) Close() error {
	if a.socketServer != nil {
		a.socketServer.Stop()
		a.socketServer = nil
	}
	if a.result != nil {
		a.result.Disposable.Dispose()
		a.result = nil
	}
	if a.screen != nil {
		screen := a.screen
		a.screen = nil
		return screen.Close()
	}
	return nil
}

// rootElement builds the descriptor tree: one item for the file with the
// filtered outline below it
func (a *App) rootElement() *model.Element {
	children := a.decorate(FilterElements(a.elements, a.filter))

	count := 0
	for _, el := range children {
		model.Walk(el, func(*model.Element, int) { count++ })
	}

	props := model.Props{
		Key:               "file",
		Label:             model.PlainLabel(filepath.Base(a.path)),
		Description:       fmt.Sprintf("%d items", count),
		Tooltip:           a.path,
		InitiallyExpanded: true,
	}
	if a.filter != "" {
		props.Description = fmt.Sprintf("%d matching /%s", count, a.filter)
	}
	if a.cfg.Get("icons") != "off" {
		if abs, err := filepath.Abs(a.path); err == nil {
			props.Icon = model.IconPath(abs)
		}
	}
	a.attachCallbacks(&props)

	return model.TreeItem(props, children...)
}

// decorate copies elements with status-reporting callbacks attached
func (a *App) decorate(elements []*model.Element) []*model.Element {
	result := make([]*model.Element, 0, len(elements))
	for _, el := range elements {
		props := el.Props
		a.attachCallbacks(&props)
		result = append(result, &model.Element{
			Kind:     el.Kind,
			Props:    props,
			Children: a.decorate(el.Children),
		})
	}
	return result
}

func (a *App) attachCallbacks(props *model.Props) {
	label := props.Label.Text
	props.OnClick = func() {
		a.SetStatus("Activated " + label)
	}
	props.OnSelected = func() {
		a.SetStatus("Selected " + label)
	}
	props.OnExpandState = func(expanded bool) {
		if expanded {
			a.SetStatus("Expanded " + label)
		} else {
			a.SetStatus("Collapsed " + label)
		}
	}
}

// Reload reads the file again and re-renders, keeping node identity for
// unchanged paths
func (a *App) Reload() error {
	elements, err := import_parser.ImportPath(a.path, import_parser.FormatAuto)
	if err != nil {
		return err
	}
	a.elements = elements
	return a.result.Update(a.rootElement())
}

// Rebuild reads the file again and renders every node from scratch
func (a *App) Rebuild() error {
	elements, err := import_parser.ImportPath(a.path, import_parser.FormatAuto)
	if err != nil {
		return err
	}
	a.elements = elements
	return a.result.Rebuild(a.rootElement())
}

// SetFilter re-renders the outline with only the entries matching query
func (a *App) SetFilter(query string) error {
	if query == a.filter {
		return nil
	}
	a.filter = query
	if err := a.result.Update(a.rootElement()); err != nil {
		return err
	}
	a.view.ResetExpansion()
	return nil
}

// Filter returns the active filter query
func (a *App) Filter() string {
	return a.filter
}

// View returns the tree view widget
func (a *App) View() *ui.TreeView[*treeitem.Node] {
	return a.view
}

// Result returns the mounted tree
func (a *App) Result() *tree.Result {
	return a.result
}

// Messages returns the status message history
func (a *App) Messages() *ui.MessageLogger {
	return a.messages
}

// SetStatus sets the status message
func (a *App) SetStatus(msg string) {
	a.messages.AddMessage(msg)
	a.statusTime = time.Now()
	if a.debugMode {
		log.Printf("status: %s", msg)
	}
}

// Quit signals the app to quit
func (a *App) Quit() {
	a.quit = true
}

// SetDebugMode enables or disables debug mode
func (a *App) SetDebugMode(debug bool) {
	a.debugMode = debug
}

// DumpTree writes the current display items to the log
func (a *App) DumpTree() {
	tree.DumpTree(log.Writer(), a.result.Provider)
}

func (a *App) reportError(action string, err error) {
	if err == nil {
		return
	}
	log.Printf("%s: %v", action, err)
	a.SetStatus(fmt.Sprintf("%s: %v", action, err))
}
