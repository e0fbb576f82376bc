package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/session"
)

// hostEventMsg carries a lifecycle event from the host into the update loop.
type hostEventMsg struct {
	event session.Event
}

// waitForEvent blocks until the host publishes an event or closes.
func waitForEvent(h *session.Host) tea.Cmd {
	return func() tea.Msg {
		select {
		case evt := <-h.Events():
			return hostEventMsg{event: evt}
		case <-h.Done():
			return nil
		}
	}
}

// Model is the Bubble Tea model for a snake session.
// The model is the scheduler: it ticks the host at a fixed interval and only
// while the game is Running.
type Model struct {
	host     *session.Host
	screen   *core.Screen
	keys     KeyMap
	help     help.Model
	interval time.Duration
	ticking  bool   // A TickMsg is in flight
	gen      uint64 // Bumped on restart; stale ticks are dropped
	notice   string // Game-over notification, cleared on restart
	width    int
	height   int
	quitting bool
}

// NewModel creates a model driving host at the given tick interval.
func NewModel(host *session.Host, interval time.Duration) Model {
	if interval <= 0 {
		interval = core.DefaultConfig().TickInterval
	}

	w, h := host.Snapshot().ScreenSize()
	return Model{
		host:     host,
		screen:   core.NewScreen(w, h),
		keys:     DefaultKeyMap(),
		help:     help.New(),
		interval: interval,
	}
}

// Init starts listening for host events. Ticks begin once the game starts.
func (m Model) Init() tea.Cmd {
	return waitForEvent(m.host)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		if msg.Gen != m.gen {
			return m, nil
		}
		return m.handleTick()

	case hostEventMsg:
		m.handleEvent(msg.event)
		return m, waitForEvent(m.host)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Help) {
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	action := m.keys.Action(msg)
	if action == core.ActionQuit {
		m.quitting = true
		return m, tea.Quit
	}

	if m.host.Dispatch(action) && action == core.ActionRestart {
		m.gen++
		m.ticking = false
	}
	return m.ensureTicking()
}

// ensureTicking starts the tick loop if the game is Running and no tick is pending.
func (m Model) ensureTicking() (Model, tea.Cmd) {
	if m.ticking || m.host.State() != snake.StateRunning {
		return m, nil
	}
	m.ticking = true
	return m, tickCmd(m.interval, m.gen)
}

func (m Model) handleTick() (tea.Model, tea.Cmd) {
	// Paused or finished since the tick was scheduled: let the loop stop.
	if m.host.State() != snake.StateRunning {
		m.ticking = false
		return m, nil
	}

	m.host.Tick()

	if m.host.State() != snake.StateRunning {
		m.ticking = false
		return m, nil
	}
	return m, tickCmd(m.interval, m.gen)
}

func (m *Model) handleEvent(evt session.Event) {
	switch evt := evt.(type) {
	case session.GameOverEvent:
		m.notice = gameOverText(evt)
	case session.StateChangedEvent:
		if evt.To == snake.StateReady {
			m.notice = ""
		}
	}
}

func gameOverText(evt session.GameOverEvent) string {
	text := fmt.Sprintf("Game Over! Your score: %d", evt.Score)
	if evt.Won {
		text = fmt.Sprintf("Board cleared! Your score: %d", evt.Score)
	}
	if evt.NewHigh {
		text += "\nNew high score!"
	}
	return text
}

// Quitting reports whether the user asked to quit.
func (m Model) Quitting() bool {
	return m.quitting
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	snap := m.host.Snapshot()
	m.screen.Clear()
	snap.Render(m.screen)

	hud := hudStyle.Render(fmt.Sprintf("Score: %-5d  High: %-5d  Length: %d", snap.Score, snap.HighScore, snap.Len()))

	parts := []string{
		titleStyle.Render("S N A K E"),
		hud,
		RenderScreen(m.screen),
		m.statusLine(snap),
		helpStyle.Render(m.help.View(m.keys)),
	}
	content := lipgloss.JoinVertical(lipgloss.Center, parts...)

	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	return content
}

func (m Model) statusLine(snap snake.Snapshot) string {
	switch snap.Lifecycle {
	case snake.StateReady:
		return statusStyle.Render("Press Enter to start")
	case snake.StatePaused:
		return statusStyle.Render("Paused - press P to resume")
	case snake.StateGameOver:
		if m.notice != "" {
			return noticeStyle.Render(m.notice + "\nPress R to play again")
		}
		return statusStyle.Render("Game over - press R to play again")
	}
	return ""
}

// Run starts the Bubble Tea program for host.
func Run(host *session.Host, interval time.Duration) error {
	p := tea.NewProgram(
		NewModel(host, interval),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
