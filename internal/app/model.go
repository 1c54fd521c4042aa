package app

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/treykane/splitview/internal/config"
)

// Model holds the Bubble Tea state for the entire UI.
type Model struct {
	cfg        config.Config
	layoutPath string
	fromFile   bool

	// Pane tree
	root       *pane
	nextPaneID int

	// Handle interaction. drag is the split whose engine holds the mouse
	// selection.
	focus      handleRef
	hover      handleRef
	drag       *pane
	dragEvents int

	// Keybindings
	keyForAction map[string][]string
	keyToAction  map[string]string
	keys         keyMap
	help         help.Model
	showHelp     bool

	// UI state
	spinner spinner.Model
	status  string
	width   int
	height  int

	renderCache map[renderKey]renderCacheEntry
	watcher     *fileWatcher
}

// New loads the layout document named by cfg and prepares the UI model. When
// the document does not exist the built-in demo layout is shown.
func New(cfg config.Config) (*Model, error) {
	root, fromFile, err := config.LoadLayoutOrDefault(cfg.LayoutFile)
	if err != nil {
		return nil, err
	}
	m := newModel(cfg, root)
	m.fromFile = fromFile
	if !fromFile {
		m.status = "No layout file at " + cfg.LayoutFile + "; showing the demo layout"
	}

	if cfg.Watching() {
		w, err := newFileWatcher(m.watchedPaths(), FileWatchDebounce)
		if err != nil {
			appLog.Warn("start layout watcher", "error", err)
		} else {
			m.watcher = w
		}
	}
	return m, nil
}

// newModel builds a model for an already parsed layout.
func newModel(cfg config.Config, root config.Node) *Model {
	spin := spinner.New()
	spin.Spinner = spinner.Line

	m := &Model{
		cfg:         cfg,
		layoutPath:  cfg.LayoutFile,
		help:        help.New(),
		spinner:     spin,
		status:      "Ready",
		renderCache: map[renderKey]renderCacheEntry{},
	}
	m.loadKeybindings(cfg)
	m.root = m.buildPane(root)
	return m
}

// Init starts the spinner and the file watcher.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spinner.Tick}
	if m.watcher != nil {
		cmds = append(cmds, m.watcher.wait())
	}
	return tea.Batch(cmds...)
}

// Close releases the file watcher.
func (m *Model) Close() error {
	if m.watcher == nil {
		return nil
	}
	return m.watcher.Close()
}

// Update is the Bubble Tea update loop: handle events and emit commands.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		for _, leaf := range m.root.leaves() {
			if leaf.rendering && leaf.renderedWidth == 0 {
				leaf.viewport.SetContent(m.spinner.View() + " Rendering...")
			}
		}
		return m, cmd
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, m.applyLayout(m.calculateLayout())
	case renderRequestMsg:
		return m, m.handleRenderRequest(msg)
	case renderResultMsg:
		m.handleRenderResult(msg)
		return m, nil
	case filesChangedMsg:
		return m, m.handleFilesChanged(msg)
	case watchErrorMsg:
		if msg.err == errWatcherClosed {
			return m, nil
		}
		appLog.Warn("layout watcher", "error", msg.err)
		if m.watcher != nil {
			return m, m.watcher.wait()
		}
		return m, nil
	case tea.MouseMsg:
		return m.handleMouse(msg)
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

// handleKey dispatches a key press through the action map.
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.actionForKey(msg.String())
	if m.showHelp {
		switch action {
		case actionQuit:
			return m, tea.Quit
		case actionHelp, actionHandleBlur:
			m.showHelp = false
		}
		if msg.String() == "esc" {
			m.showHelp = false
		}
		return m, nil
	}

	var cmd tea.Cmd
	switch action {
	case actionQuit:
		return m, tea.Quit
	case actionHelp:
		m.showHelp = true
		return m, nil
	case actionHandleNext:
		m.cycleFocus(1)
	case actionHandlePrev:
		m.cycleFocus(-1)
	case actionHandleBlur:
		m.focus = handleRef{}
		m.status = "Ready"
	case actionNudgeBack:
		m.nudgeFocused(-NudgeStep)
		cmd = m.refreshFocused()
	case actionNudgeForward:
		m.nudgeFocused(NudgeStep)
		cmd = m.refreshFocused()
	case actionNudgeBackLarge:
		m.nudgeFocused(-NudgeStepLarge)
		cmd = m.refreshFocused()
	case actionNudgeForwardLarge:
		m.nudgeFocused(NudgeStepLarge)
		cmd = m.refreshFocused()
	case actionReload:
		cmd = m.reloadLayout()
	case actionReset:
		m.resetSplits()
		cmd = m.refreshPanes(m.root)
	}
	m.keys.setNudgeEnabled(m.focus.valid())
	return m, cmd
}

func (m *Model) refreshFocused() tea.Cmd {
	if !m.focus.valid() {
		return nil
	}
	return m.refreshPanes(m.focus.pane)
}

// reloadLayout re-reads the layout document and re-seeds the pane tree. A
// broken document leaves the current layout in place.
func (m *Model) reloadLayout() tea.Cmd {
	root, fromFile, err := config.LoadLayoutOrDefault(m.layoutPath)
	if err != nil {
		m.setStatusError("Layout reload failed", err, "path", m.layoutPath)
		return nil
	}
	m.fromFile = fromFile
	m.drag = nil
	m.hover = handleRef{}
	m.focus = handleRef{}
	m.keys.setNudgeEnabled(false)
	m.renderCache = map[renderKey]renderCacheEntry{}
	m.root = m.reseedPane(m.root, root)
	if m.watcher != nil {
		if err := m.watcher.setTargets(m.watchedPaths()); err != nil {
			appLog.Warn("watch layout files", "error", err)
		}
	}
	m.status = "Layout reloaded"
	appLog.Info("reloaded layout", "path", m.layoutPath, "from_file", fromFile)
	if m.width == 0 || m.height == 0 {
		return nil
	}
	return m.applyLayout(m.calculateLayout())
}
