package ui

import (
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/mytec0l/ToDoListParser/internal/config"
	"github.com/mytec0l/ToDoListParser/internal/render"
	"github.com/mytec0l/ToDoListParser/internal/todo"
	"github.com/mytec0l/ToDoListParser/internal/watch"
)

type ViewMode int

const (
	ViewList ViewMode = iota
	ViewHelp
	ViewFilter
)

const messageTimeout = 3 * time.Second

type Model struct {
	// Core components
	config  *config.Config
	path    string
	logger  *log.Logger
	watcher *watch.FileWatcher
	changes chan string

	// View state
	mode     ViewMode
	sortMode todo.SortMode
	tasks    []todo.Task // file order
	visible  []todo.Task // filtered and sorted
	tag      string
	loadErr  error
	loaded   bool
	selected int
	top      int

	// UI state
	width   int
	height  int
	message string
	msgID   int
	filter  textinput.Model

	// Styles
	styles render.Styles
}

// NewModel returns a browser for the task file at path. Call Watch to
// reload the file when it changes on disk.
func NewModel(cfg *config.Config, path string, logger *log.Logger) *Model {
	if logger == nil {
		logger = log.New(os.Stderr)
	}

	filter := textinput.New()
	filter.Prompt = "tag: +"
	filter.Placeholder = "work"
	filter.CharLimit = 64
	filter.ShowSuggestions = true

	m := &Model{
		config:   cfg,
		path:     path,
		logger:   logger,
		changes:  make(chan string, 1),
		mode:     ViewList,
		sortMode: cfg.SortMode(),
		filter:   filter,
		styles:   render.NewStyles(render.NewRenderer(os.Stdout, cfg.NoColor), cfg.Colors),
	}
	return m
}

// Watch starts reporting changes to the task file as reloads.
func (m *Model) Watch() error {
	watcher, err := watch.NewFileWatcher(m.config.RefreshRate, m.logger, func(string) {
		select {
		case m.changes <- m.path:
		default:
		}
	})
	if err != nil {
		return err
	}
	if err := watcher.AddFile(m.path); err != nil {
		watcher.Close()
		return err
	}
	m.watcher = watcher
	return nil
}

// Close stops the file watcher, if any.
func (m *Model) Close() error {
	if m.watcher == nil {
		return nil
	}
	return m.watcher.Close()
}

func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.loadCmd()}
	if m.watcher != nil {
		cmds = append(cmds, m.waitForChange())
	}
	return tea.Batch(cmds...)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.filter.Width = msg.Width - 10
		m.clampSelection()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tasksLoadedMsg:
		return m, m.applyLoad(msg)

	case fileChangedMsg:
		m.logger.Debug("reloading", "path", msg.path)
		return m, tea.Batch(m.loadCmd(), m.waitForChange())

	case editorFinishedMsg:
		if msg.err != nil {
			return m, m.showMessage(fmt.Sprintf("Editor failed: %v", msg.err))
		}
		return m, m.loadCmd()

	case messageTimeoutMsg:
		if msg.id == m.msgID {
			m.message = ""
		}
		return m, nil
	}

	if m.mode == ViewFilter {
		var cmd tea.Cmd
		m.filter, cmd = m.filter.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	switch m.mode {
	case ViewHelp:
		return m.viewHelp()
	default:
		return m.viewList()
	}
}

func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	switch m.mode {
	case ViewFilter:
		return m.handleFilterKeys(msg)
	case ViewHelp:
		if m.config.Action(msg.String()) == "quit" {
			return m, tea.Quit
		}
		m.mode = ViewList
		return m, nil
	}

	key := msg.String()
	switch msg.Type {
	case tea.KeyDown:
		key = "j"
	case tea.KeyUp:
		key = "k"
	case tea.KeyEsc:
		if m.tag != "" {
			m.tag = ""
			m.refreshView()
			return m, m.showMessage("Filter cleared")
		}
		return m, nil
	}

	return m.handleAction(m.config.Action(key))
}

func (m *Model) handleAction(action string) (tea.Model, tea.Cmd) {
	switch action {
	case "quit":
		return m, tea.Quit

	case "help":
		m.mode = ViewHelp

	case "refresh":
		return m, tea.Batch(m.loadCmd(), m.showMessage("Reloaded "+m.path))

	case "edit":
		return m, m.editCmd()

	case "filter":
		m.mode = ViewFilter
		m.filter.SetValue(m.tag)
		m.filter.CursorEnd()
		m.filter.SetSuggestions(knownTags(m.tasks))
		return m, m.filter.Focus()

	case "down":
		m.selected++
		m.clampSelection()

	case "up":
		m.selected--
		m.clampSelection()

	case "top":
		m.selected = 0
		m.clampSelection()

	case "bottom":
		m.selected = len(m.visible) - 1
		m.clampSelection()

	case "sort_none":
		m.setSort(todo.SortNone)
	case "sort_priority":
		m.setSort(todo.SortPriority)
	case "sort_status":
		m.setSort(todo.SortStatus)
	case "sort_start":
		m.setSort(todo.SortStart)
	case "sort_due":
		m.setSort(todo.SortDue)
	}

	return m, nil
}

func (m *Model) handleFilterKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEscape:
		m.mode = ViewList
		m.filter.Blur()
		return m, nil

	case tea.KeyEnter:
		m.mode = ViewList
		m.filter.Blur()
		m.tag = trimTag(m.filter.Value())
		m.selected = 0
		m.refreshView()
		if m.tag == "" {
			return m, m.showMessage("Filter cleared")
		}
		return m, m.showMessage(fmt.Sprintf("%d tasks tagged +%s", len(m.visible), m.tag))
	}

	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	return m, cmd
}

func (m *Model) setSort(mode todo.SortMode) {
	m.sortMode = mode
	m.refreshView()
}

// refreshView recomputes the visible tasks from the loaded ones.
func (m *Model) refreshView() {
	visible := m.tasks
	if m.tag != "" {
		visible = todo.FilterByTag(visible, m.tag)
	}
	m.visible = append([]todo.Task(nil), visible...)
	todo.SortTasks(m.visible, m.sortMode)
	m.clampSelection()
}

func (m *Model) applyLoad(msg tasksLoadedMsg) tea.Cmd {
	m.loaded = true
	if msg.err != nil {
		m.loadErr = msg.err
		m.logger.Warn("cannot load tasks", "path", m.path, "err", msg.err)
		return nil
	}

	m.loadErr = nil
	m.tasks = msg.tasks
	m.refreshView()
	m.logger.Debug("tasks loaded", "path", m.path, "count", len(m.tasks))
	return nil
}

func (m *Model) clampSelection() {
	if m.selected >= len(m.visible) {
		m.selected = len(m.visible) - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}

	rows := m.listHeight()
	if m.selected < m.top {
		m.top = m.selected
	}
	if m.selected >= m.top+rows {
		m.top = m.selected - rows + 1
	}
	if m.top < 0 {
		m.top = 0
	}
}

// listHeight is the number of task rows that fit between the header and
// the status bar.
func (m *Model) listHeight() int {
	rows := m.height - 2
	if m.mode == ViewFilter {
		rows--
	}
	if rows < 1 {
		rows = 1
	}
	return rows
}

func (m *Model) showMessage(msg string) tea.Cmd {
	m.message = msg
	m.msgID++
	id := m.msgID
	return tea.Tick(messageTimeout, func(time.Time) tea.Msg {
		return messageTimeoutMsg{id: id}
	})
}

func (m *Model) loadCmd() tea.Cmd {
	path := m.path
	return func() tea.Msg {
		tasks, err := LoadFile(path)
		return tasksLoadedMsg{tasks: tasks, err: err}
	}
}

func (m *Model) waitForChange() tea.Cmd {
	changes := m.changes
	return func() tea.Msg {
		path, ok := <-changes
		if !ok {
			return nil
		}
		return fileChangedMsg{path: path}
	}
}

func (m *Model) editCmd() tea.Cmd {
	c := exec.Command(m.config.Editor, m.path)
	return tea.ExecProcess(c, func(err error) tea.Msg {
		return editorFinishedMsg{err: err}
	})
}

// LoadFile reads and parses the task file at path.
func LoadFile(path string) ([]todo.Task, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return todo.ParseFile(string(content))
}

// Message types
type tasksLoadedMsg struct {
	tasks []todo.Task
	err   error
}
type fileChangedMsg struct {
	path string
}
type editorFinishedMsg struct {
	err error
}
type messageTimeoutMsg struct {
	id int
}
