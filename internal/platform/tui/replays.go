package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/replay"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

// maxRecordings is how many recordings the browser loads.
const maxRecordings = 100

// ReplaysKeyMap defines the key bindings for the replay browser and viewer.
type ReplaysKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Pause  key.Binding
	Faster key.Binding
	Slower key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ReplaysKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ReplaysKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select},
		{k.Pause, k.Faster, k.Slower, k.Quit},
	}
}

// DefaultReplaysKeyMap returns default key bindings.
func DefaultReplaysKeyMap() ReplaysKeyMap {
	return ReplaysKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "watch"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p", " "),
			key.WithHelp("p", "pause"),
		),
		Faster: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "faster"),
		),
		Slower: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "slower"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c", "esc"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ReplaysModel is the Bubble Tea model for browsing stored recordings.
type ReplaysModel struct {
	recordings []storage.RecordingInfo
	table      table.Model
	help       help.Model
	keys       ReplaysKeyMap
	width      int
	height     int
	selected   int64
	quitting   bool
}

// NewReplaysModel creates a browser over the given recordings.
func NewReplaysModel(recordings []storage.RecordingInfo, width, height int) ReplaysModel {
	m := ReplaysModel{
		recordings: recordings,
		keys:       DefaultReplaysKeyMap(),
		help:       help.New(),
		width:      width,
		height:     height,
	}
	m.table = m.createTable()
	m.updateTableRows()
	return m
}

func (m *ReplaysModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "ID", Width: 6},
		{Title: "Score", Width: 8},
		{Title: "Board", Width: 8},
		{Title: "Ticks", Width: 8},
		{Title: "Date", Width: 14},
	}

	height := m.height - 8 // Leave room for header, help, and margins
	if height < 3 {
		height = 3
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

func (m *ReplaysModel) updateTableRows() {
	rows := make([]table.Row, len(m.recordings))
	for i, r := range m.recordings {
		rows[i] = table.Row{
			fmt.Sprintf("%d", r.ID),
			fmt.Sprintf("%d", r.FinalScore),
			fmt.Sprintf("%dx%d", r.Width, r.Height),
			fmt.Sprintf("%d", r.Ticks),
			r.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the browser.
func (m ReplaysModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the browser.
func (m ReplaysModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Select):
			if len(m.recordings) > 0 {
				m.selected = m.recordings[m.table.Cursor()].ID
				return m, tea.Quit
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		cursor := m.table.Cursor()
		m.table = m.createTable()
		m.updateTableRows()
		m.table.SetCursor(cursor)
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the browser.
func (m ReplaysModel) View() string {
	if m.quitting || m.selected != 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(centerText(titleStyle.Render("REPLAYS"), m.width))
	b.WriteString("\n\n")

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	if len(m.recordings) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		b.WriteString(centerText(boxStyle.Render(emptyStyle.Render("No recordings yet.\nPlay a game to record one!")), m.width))
	} else {
		b.WriteString(centerText(boxStyle.Render(m.table.View()), m.width))
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// Selected returns the chosen recording ID, or false if none was chosen.
func (m ReplaysModel) Selected() (int64, bool) {
	return m.selected, m.selected != 0
}

// RunReplayBrowser shows the stored recordings and returns the chosen ID.
func RunReplayBrowser(store *storage.Store, width, height int) (int64, bool, error) {
	recordings, err := store.ListRecordings(maxRecordings)
	if err != nil {
		return 0, false, err
	}

	p := tea.NewProgram(
		NewReplaysModel(recordings, width, height),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return 0, false, err
	}

	m, ok := finalModel.(ReplaysModel)
	if !ok {
		return 0, false, nil
	}
	id, chosen := m.Selected()
	return id, chosen, nil
}

// WatchModel plays a recording back at the original tick interval.
type WatchModel struct {
	rec      replay.Recording
	player   *replay.Player
	screen   *core.Screen
	keys     ReplaysKeyMap
	help     help.Model
	interval time.Duration
	ticking  bool
	paused   bool
	finished bool
	width    int
	height   int
}

// Minimum and maximum playback intervals.
const (
	minWatchInterval = 15 * time.Millisecond
	maxWatchInterval = time.Second
)

// NewWatchModel creates a viewer for rec.
func NewWatchModel(rec replay.Recording, interval time.Duration) (WatchModel, error) {
	player, err := replay.NewPlayer(rec)
	if err != nil {
		return WatchModel{}, err
	}
	if interval <= 0 {
		interval = core.DefaultConfig().TickInterval
	}

	w, h := player.Snapshot().ScreenSize()
	return WatchModel{
		rec:      rec,
		player:   player,
		screen:   core.NewScreen(w, h),
		keys:     DefaultReplaysKeyMap(),
		help:     help.New(),
		interval: interval,
		ticking:  true,
	}, nil
}

// Init starts playback.
func (m WatchModel) Init() tea.Cmd {
	return tickCmd(m.interval, 0)
}

// Update handles messages for the viewer.
func (m WatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Pause):
			m.paused = !m.paused
			if !m.paused && !m.finished && !m.ticking {
				m.ticking = true
				return m, tickCmd(m.interval, 0)
			}
		case key.Matches(msg, m.keys.Faster):
			m.interval = max(m.interval/2, minWatchInterval)
		case key.Matches(msg, m.keys.Slower):
			m.interval = min(m.interval*2, maxWatchInterval)
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		if m.paused || m.finished {
			m.ticking = false
			return m, nil
		}
		if !m.player.Step() {
			m.finished = true
			m.ticking = false
			return m, nil
		}
		return m, tickCmd(m.interval, 0)
	}

	return m, nil
}

// View renders the replay frame.
func (m WatchModel) View() string {
	snap := m.player.Snapshot()
	m.screen.Clear()
	snap.Render(m.screen)

	status := fmt.Sprintf("Replay #%d  tick %d/%d  %s", m.rec.ID, m.player.Ticks(), m.rec.TotalTicks(), m.interval)
	switch {
	case m.finished:
		status = fmt.Sprintf("Replay #%d finished. Score: %d  High: %d", m.rec.ID, snap.Score, snap.HighScore)
	case m.paused:
		status += "  (paused)"
	}

	content := lipgloss.JoinVertical(lipgloss.Center,
		titleStyle.Render("R E P L A Y"),
		hudStyle.Render(fmt.Sprintf("Score: %-5d  High: %-5d  Length: %d", snap.Score, snap.HighScore, snap.Len())),
		RenderScreen(m.screen),
		statusStyle.Render(status),
		helpStyle.Render(m.help.View(m.keys)),
	)

	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	return content
}

// Finished reports whether playback reached the end of the recording.
func (m WatchModel) Finished() bool {
	return m.finished
}

// RunWatch plays rec back in the terminal.
func RunWatch(rec replay.Recording, interval time.Duration) error {
	model, err := NewWatchModel(rec, interval)
	if err != nil {
		return err
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
