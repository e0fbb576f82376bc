package session

import "github.com/vovakirdan/tui-snake/internal/games/snake"

// Event is a lifecycle notification published by a Host.
type Event interface {
	hostEvent()
}

// StateChangedEvent is sent after every lifecycle transition.
type StateChangedEvent struct {
	From snake.State
	To   snake.State
}

func (StateChangedEvent) hostEvent() {}

// FoodEatenEvent is sent when a tick ends with the snake eating.
type FoodEatenEvent struct {
	Score  int
	Length int
}

func (FoodEatenEvent) hostEvent() {}

// GameOverEvent is sent once per game, when it enters GameOver.
type GameOverEvent struct {
	Score     int
	HighScore int
	Won       bool // Board filled rather than a collision
	NewHigh   bool // Score beat the previous session best
}

func (GameOverEvent) hostEvent() {}
