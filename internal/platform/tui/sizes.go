package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-snake/internal/config"
)

// SizeModel lets users choose a board size preset before playing.
type SizeModel struct {
	cursor   int
	width    int
	height   int
	keys     KeyMap
	selected config.SizePreset
	choosing bool
	quitting bool
}

// NewSizeModel creates a size picker with the cursor on the classic board.
func NewSizeModel(width, height int) SizeModel {
	m := SizeModel{
		width:    width,
		height:   height,
		keys:     DefaultKeyMap(),
		choosing: true,
	}
	for i, p := range config.SizePresets {
		if p == config.SizeClassic {
			m.cursor = i
		}
	}
	return m
}

// Init initializes the model.
func (m SizeModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m SizeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(config.SizePresets)-1 {
				m.cursor++
			}
		case key.Matches(msg, m.keys.Start), key.Matches(msg, m.keys.Pause):
			m.choosing = false
			m.selected = config.SizePresets[m.cursor]
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

// View renders the preset list.
func (m SizeModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("S N A K E"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select board size:", m.width))
	b.WriteString("\n\n")

	for i, p := range config.SizePresets {
		grid, _ := config.GridForPreset(p)
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		b.WriteString(centerText(fmt.Sprintf("%s%-8s %dx%d", cursor, p, grid.Width, grid.Height), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(helpStyle.Render("Enter: Select  |  Q: Quit"), m.width))

	return b.String()
}

// Selected returns the chosen preset, or false if the user quit.
func (m SizeModel) Selected() (config.SizePreset, bool) {
	if m.choosing || m.quitting {
		return "", false
	}
	return m.selected, true
}

// RunSizeSelector runs the size picker and returns the chosen preset.
func RunSizeSelector(width, height int) (config.SizePreset, bool, error) {
	p := tea.NewProgram(
		NewSizeModel(width, height),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return "", false, err
	}

	m, ok := finalModel.(SizeModel)
	if !ok {
		return "", false, nil
	}

	preset, chosen := m.Selected()
	return preset, chosen, nil
}
