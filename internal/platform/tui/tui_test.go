package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/cavern/internal/collision"
	"github.com/vovakirdan/cavern/internal/core"
	"github.com/vovakirdan/cavern/internal/registry"
	"github.com/vovakirdan/cavern/internal/sandbox"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// recordingScene remembers the frames it was stepped with.
type recordingScene struct {
	frames []core.InputFrame
	resets int
}

func (s *recordingScene) ID() string    { return "rec" }
func (s *recordingScene) Title() string { return "Recorder" }
func (s *recordingScene) Reset(core.RuntimeConfig) error {
	s.resets++
	return nil
}
func (s *recordingScene) Step(in core.InputFrame) core.StepResult {
	s.frames = append(s.frames, in.Clone())
	return core.StepResult{State: core.SceneState{Tick: len(s.frames)}}
}
func (s *recordingScene) Render(dst *core.Screen) { dst.DrawText(0, 0, "scene") }
func (s *recordingScene) State() core.SceneState  { return core.SceneState{Tick: len(s.frames)} }

func testConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	cfg.ScreenW, cfg.ScreenH = 40, 10
	return cfg
}

func TestKeyMapMapKey(t *testing.T) {
	keys := DefaultKeyMap()

	tests := []struct {
		name     string
		msg      tea.KeyMsg
		expected core.Action
	}{
		{"left arrow", tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft},
		{"right vim", runes("l"), core.ActionRight},
		{"space jumps", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, core.ActionJump},
		{"up jumps", tea.KeyMsg{Type: tea.KeyUp}, core.ActionJump},
		{"rays", runes("d"), core.ActionDebug},
		{"new level", runes("n"), core.ActionRegenerate},
		{"respawn", runes("r"), core.ActionRestart},
		{"pause", runes("p"), core.ActionPause},
		{"back", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionBack},
		{"quit", runes("q"), core.ActionQuit},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit},
		{"unbound", runes("z"), core.ActionNone},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := keys.MapKey(tc.msg); got != tc.expected {
				t.Errorf("MapKey(%q) = %v, expected %v", tc.msg.String(), got, tc.expected)
			}
		})
	}
}

func TestMenuKeyMapMapKey(t *testing.T) {
	keys := DefaultMenuKeyMap()
	if got := keys.MapKey(tea.KeyMsg{Type: tea.KeyDown}); got != core.ActionDown {
		t.Errorf("down = %v, expected Down", got)
	}
	if got := keys.MapKey(tea.KeyMsg{Type: tea.KeyEnter}); got != core.ActionConfirm {
		t.Errorf("enter = %v, expected Confirm", got)
	}
	if got := keys.MapKey(tea.KeyMsg{Type: tea.KeyEsc}); got != core.ActionQuit {
		t.Errorf("esc = %v, expected Quit", got)
	}
}

func TestModelHoldsMovement(t *testing.T) {
	scene := &recordingScene{}
	var m tea.Model = NewModel(scene, testConfig())

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	for i := 0; i < 5; i++ {
		m, _ = m.Update(TickMsg{})
	}
	for i, f := range scene.frames {
		if !f.Has(core.ActionRight) {
			t.Errorf("frame %d should still hold right", i)
		}
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	m, _ = m.Update(TickMsg{})
	last := scene.frames[len(scene.frames)-1]
	if !last.Has(core.ActionLeft) || last.Has(core.ActionRight) {
		t.Errorf("pressing left should release right, frame = %v", last.Actions)
	}
	_ = m
}

func TestModelTapsToggles(t *testing.T) {
	scene := &recordingScene{}
	var m tea.Model = NewModel(scene, testConfig())

	m, _ = m.Update(runes("d"))
	m, _ = m.Update(TickMsg{})
	m, _ = m.Update(TickMsg{})

	if !scene.frames[0].Has(core.ActionDebug) {
		t.Error("first tick should carry the debug toggle")
	}
	if scene.frames[1].Has(core.ActionDebug) {
		t.Error("a toggle should only fire once")
	}
	_ = m
}

func TestModelQuitAndBack(t *testing.T) {
	scene := &recordingScene{}
	m := NewModel(scene, testConfig())

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if next.(Model).BackToMenu() {
		t.Error("back should be ignored outside a session")
	}

	m.canBack = true
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if !next.(Model).BackToMenu() {
		t.Error("back should leave the scene inside a session")
	}
	if _, cmd := next.Update(TickMsg{}); cmd != nil {
		t.Error("the tick loop should stop after leaving the scene")
	}

	next, cmd := m.Update(runes("q"))
	if !next.(Model).IsQuitting() || cmd == nil {
		t.Error("q should quit")
	}
}

func TestModelReload(t *testing.T) {
	scene := &recordingScene{}
	var m tea.Model = NewModel(scene, testConfig())

	m, _ = m.Update(ReloadMsg{Apply: func(registry.Scene) error { return errors.New("bad yaml") }})
	if view := m.View(); !strings.Contains(view, "reload failed: bad yaml") {
		t.Errorf("View() should show the reload error, got %q", view)
	}

	m, _ = m.Update(ReloadMsg{Apply: func(s registry.Scene) error { return s.Reset(core.RuntimeConfig{}) }})
	if strings.Contains(m.View(), "reload failed") {
		t.Error("a successful reload should clear the notice")
	}
	if scene.resets != 1 {
		t.Errorf("resets = %d, expected 1", scene.resets)
	}
}

func TestModelResize(t *testing.T) {
	m := NewModel(&recordingScene{}, testConfig())
	next, _ := m.Update(tea.WindowSizeMsg{Width: 30, Height: 8})
	got := next.(Model)
	if got.screen.Width() != 30 || got.screen.Height() != 7 {
		t.Errorf("screen = %dx%d, expected 30x7 leaving a help line", got.screen.Width(), got.screen.Height())
	}
}

func TestRenderScreenPlain(t *testing.T) {
	s := core.NewScreen(4, 2)
	s.DrawTextColored(0, 0, "ab", core.ColorRock)
	s.DrawText(2, 0, "cd")
	s.DrawTextColored(0, 1, "efgh", core.ColorBody)

	// Without a color profile lipgloss emits the text unchanged.
	if got := RenderScreen(s); got != s.String() {
		t.Errorf("RenderScreen() = %q, expected %q", got, s.String())
	}
}

func TestMenuSelectsScene(t *testing.T) {
	var m tea.Model = NewMenuModel(testConfig())

	list := registry.List()
	if len(list) < 2 {
		t.Fatalf("expected the sandbox scenes to be registered, got %v", list)
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	menu := m.(MenuModel)
	if menu.Selected() == nil || menu.Selected().ID != list[1].ID {
		t.Fatalf("Selected() = %v, expected %q", menu.Selected(), list[1].ID)
	}
	if cmd == nil {
		t.Error("selection should end the menu program")
	}
}

func TestMenuCursorClamped(t *testing.T) {
	var m tea.Model = NewMenuModel(testConfig())
	for i := 0; i < 10; i++ {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if sel := m.(MenuModel).Selected(); sel == nil || sel.ID != registry.List()[0].ID {
		t.Errorf("Selected() = %v, expected the first scene", sel)
	}
}

func TestSessionFlow(t *testing.T) {
	var warnings []string
	var m tea.Model = NewSessionModel(testConfig(), func(msg string, _ ...any) {
		warnings = append(warnings, msg)
	})

	for i, info := range registry.List() {
		if info.ID == "ramps" {
			for j := 0; j < i; j++ {
				m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
			}
		}
	}
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	session := m.(SessionModel)
	if session.play == nil {
		t.Fatalf("selecting a scene should start it, warnings: %v", warnings)
	}
	if cmd == nil {
		t.Error("starting a scene should start the tick loop")
	}

	m, _ = m.Update(TickMsg{})
	if !strings.Contains(m.View(), "Slope Course") {
		t.Error("the running scene should be rendered")
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.(SessionModel).play != nil {
		t.Error("esc should return to the menu")
	}
	if !strings.Contains(m.View(), "C A V E R N") {
		t.Error("the menu should be shown again")
	}
}

func TestTraceViewerEvents(t *testing.T) {
	rows := []sandbox.TraceRow{
		{Tick: 1},
		{Tick: 2},
		{Tick: 3, State: collision.State{Below: true}},
		{Tick: 4, State: collision.State{Below: true}},
		{Tick: 5, State: collision.State{Below: true, Right: true}},
	}
	rows[4].Position = mgl64.Vec2{2, 1}

	var m tea.Model = NewTraceModel("ramps", rows, 120, 30)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if got := m.(TraceModel).Cursor(); got != 2 {
		t.Errorf("Cursor() = %d, expected 2 at the first contact change", got)
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if got := m.(TraceModel).Cursor(); got != 4 {
		t.Errorf("Cursor() = %d, expected 4", got)
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if got := m.(TraceModel).Cursor(); got != 4 {
		t.Errorf("Cursor() = %d, expected to stay on the last change", got)
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	if got := m.(TraceModel).Cursor(); got != 2 {
		t.Errorf("Cursor() = %d, expected 2 going back", got)
	}

	view := m.View()
	for _, want := range []string{"TRACE - ramps", "Summary", "ground right"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}

	m, cmd := m.Update(runes("q"))
	if cmd == nil || m.View() != "" {
		t.Error("q should close the viewer")
	}
}

func TestTraceViewerEmpty(t *testing.T) {
	m := NewTraceModel("cave", nil, 60, 20)
	if !strings.Contains(m.View(), "No ticks recorded.") {
		t.Error("an empty trace should say so")
	}
}
