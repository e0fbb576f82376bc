package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/replay"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

func sampleInfos() []storage.RecordingInfo {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return []storage.RecordingInfo{
		{Recording: replay.Recording{ID: 9, Width: 20, Height: 20, FinalScore: 70, CreatedAt: now}, Ticks: 300},
		{Recording: replay.Recording{ID: 4, Width: 12, Height: 12, FinalScore: 20, CreatedAt: now}, Ticks: 80},
	}
}

func TestReplaysModelSelect(t *testing.T) {
	m := NewReplaysModel(sampleInfos(), 80, 24)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	next, cmd := next.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("enter should close the browser")
	}

	id, ok := next.(ReplaysModel).Selected()
	if !ok || id != 4 {
		t.Errorf("Selected() = (%d, %v), expected (4, true)", id, ok)
	}
}

func TestReplaysModelEmpty(t *testing.T) {
	m := NewReplaysModel(nil, 80, 24)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if _, ok := next.(ReplaysModel).Selected(); ok {
		t.Error("nothing to select in an empty list")
	}
	if !strings.Contains(next.View(), "No recordings yet.") {
		t.Error("empty browser should say so")
	}
}

func TestReplaysModelQuit(t *testing.T) {
	next, cmd := NewReplaysModel(sampleInfos(), 80, 24).Update(runeKey('q'))
	if cmd == nil {
		t.Fatal("q should quit")
	}
	if _, ok := next.(ReplaysModel).Selected(); ok {
		t.Error("quitting should not select")
	}
}

func watchRecording() replay.Recording {
	return replay.Recording{
		ID:     3,
		Seed:   11,
		Width:  10,
		Height: 10,
		Events: []replay.Event{
			{Action: core.ActionStart},
			{Ticks: 3},
			{Action: core.ActionDown},
			{Ticks: 2},
		},
	}
}

func TestWatchModelPlaysToEnd(t *testing.T) {
	m, err := NewWatchModel(watchRecording(), 10*time.Millisecond)
	if err != nil {
		t.Fatalf("NewWatchModel() failed: %v", err)
	}
	if m.Init() == nil {
		t.Fatal("Init() should start playback")
	}

	var model tea.Model = m
	for i := range 10 {
		next, cmd := model.Update(TickMsg{Time: time.Now()})
		model = next
		if cmd == nil {
			if i != 5 {
				t.Errorf("playback stopped after %d ticks, expected 5", i)
			}
			break
		}
	}

	wm := model.(WatchModel)
	if !wm.Finished() {
		t.Fatal("playback should be finished")
	}
	if !strings.Contains(wm.View(), "Replay #3 finished.") {
		t.Errorf("view should report the end:\n%s", wm.View())
	}
}

func TestWatchModelPauseAndSpeed(t *testing.T) {
	m, err := NewWatchModel(watchRecording(), 100*time.Millisecond)
	if err != nil {
		t.Fatalf("NewWatchModel() failed: %v", err)
	}

	next, _ := m.Update(runeKey('+'))
	if got := next.(WatchModel).interval; got != 50*time.Millisecond {
		t.Errorf("interval after + = %v, expected 50ms", got)
	}
	next, _ = next.Update(runeKey('-'))
	next, _ = next.Update(runeKey('-'))
	if got := next.(WatchModel).interval; got != 200*time.Millisecond {
		t.Errorf("interval after - - = %v, expected 200ms", got)
	}

	// Pause while the first tick is in flight, then let it arrive
	next, cmd := next.Update(runeKey('p'))
	if cmd != nil {
		t.Error("pausing should not schedule")
	}
	next, cmd = next.Update(TickMsg{Time: time.Now()})
	if cmd != nil {
		t.Error("tick while paused must stop the loop")
	}
	if next.(WatchModel).player.Ticks() != 0 {
		t.Error("paused playback advanced")
	}

	_, cmd = next.Update(runeKey('p'))
	if cmd == nil {
		t.Error("resume should restart playback")
	}
}

func TestNewWatchModelRejectsBadRecording(t *testing.T) {
	if _, err := NewWatchModel(replay.Recording{Width: 1, Height: 1}, time.Millisecond); err == nil {
		t.Error("NewWatchModel() should reject an unplayable recording")
	}
}
