package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/cavern/internal/core"
	"github.com/vovakirdan/cavern/internal/registry"
)

// holdSeconds is how long a movement key stays held after its last press.
// Terminals repeat held keys but never report releases.
const holdSeconds = 0.25

// ReloadMsg asks the running scene to rebuild. Apply runs on the program's
// goroutine, so it may touch the scene directly.
type ReloadMsg struct {
	Apply func(registry.Scene) error
}

// Model is the Bubble Tea model for running a scene.
type Model struct {
	scene    registry.Scene
	screen   *core.Screen
	config   core.RuntimeConfig
	held     *core.HeldInput
	keys     KeyMap
	help     help.Model
	state    core.SceneState
	notice   string
	canBack  bool
	quitting bool
	back     bool
}

// NewModel creates a model for a scene that has already been Reset.
func NewModel(scene registry.Scene, cfg core.RuntimeConfig) Model {
	h := help.New()
	h.Width = cfg.ScreenW

	return Model{
		scene:  scene,
		screen: core.NewScreen(cfg.ScreenW, cfg.ScreenH-1),
		config: cfg,
		held:   core.NewHeldInput(int(holdSeconds * float64(cfg.TickRate))),
		keys:   DefaultKeyMap(),
		help:   h,
		state:  scene.State(),
	}
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height-1)
		m.help.Width = msg.Width
		return m, nil

	case ReloadMsg:
		m.notice = ""
		if err := msg.Apply(m.scene); err != nil {
			m.notice = err.Error()
		}
		m.state = m.scene.State()
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	switch action := m.keys.MapKey(msg); action {
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case core.ActionBack:
		if m.canBack {
			m.back = true
		}
	case core.ActionLeft:
		m.held.Release(core.ActionRight)
		m.held.Press(action)
	case core.ActionRight:
		m.held.Release(core.ActionLeft)
		m.held.Press(action)
	case core.ActionNone:
	default:
		m.held.Tap(action)
	}
	return m, nil
}

// handleTick runs one simulation step.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.back || m.quitting {
		return m, nil
	}
	frame := m.held.Frame()
	if frame.Has(core.ActionRegenerate) || frame.Has(core.ActionRestart) {
		m.notice = ""
	}
	m.state = m.scene.Step(frame).State
	return m, tickCmd(m.config.TickRate)
}

// saveScreenshot writes the current frame as plain text.
func (m *Model) saveScreenshot() {
	m.screen.Clear()
	m.scene.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".cavern", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%d_%s.txt", m.scene.ID(), m.state.Seed, timestamp))

	//nolint:errcheck // Best-effort save
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

var noticeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))

// View renders the scene followed by the help line.
func (m Model) View() string {
	if m.quitting || m.back {
		return ""
	}

	m.screen.Clear()
	m.scene.Render(m.screen)

	footer := m.help.View(m.keys)
	if m.notice != "" {
		footer = noticeStyle.Render("reload failed: " + m.notice)
	}
	return RenderScreen(m.screen) + "\n" + footer
}

// State returns the scene state after the last tick.
func (m Model) State() core.SceneState {
	return m.state
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to the menu.
func (m Model) BackToMenu() bool {
	return m.back
}

// Run resets the scene and runs it until the user quits. attach, when set,
// receives the program before it starts so the caller can send it messages
// such as ReloadMsg.
func Run(scene registry.Scene, cfg core.RuntimeConfig, attach func(*tea.Program)) error {
	if err := scene.Reset(cfg); err != nil {
		return err
	}

	p := tea.NewProgram(NewModel(scene, cfg), tea.WithAltScreen())
	if attach != nil {
		attach(p)
	}
	_, err := p.Run()
	return err
}
