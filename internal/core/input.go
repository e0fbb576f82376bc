package core

import "strings"

// Action represents a semantic command, abstracted from physical key presses.
// The input layer produces actions; the session host turns them into engine
// calls. The engine itself has no notion of keys.
type Action int

const (
	ActionNone    Action = iota
	ActionUp             // W, Up arrow, K
	ActionDown           // S, Down arrow, J
	ActionLeft           // A, Left arrow, H
	ActionRight          // D, Right arrow, L
	ActionStart          // Enter - start a game from Ready
	ActionPause          // P, Space - pause/resume
	ActionRestart        // R - rebuild the game
	ActionQuit           // Q, Ctrl+C - exit
)

var actionNames = map[Action]string{
	ActionNone:    "None",
	ActionUp:      "Up",
	ActionDown:    "Down",
	ActionLeft:    "Left",
	ActionRight:   "Right",
	ActionStart:   "Start",
	ActionPause:   "Pause",
	ActionRestart: "Restart",
	ActionQuit:    "Quit",
}

// String returns a human-readable name for the action.
func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "Unknown"
}

// ParseAction is the inverse of Action.String. Matching is case-insensitive.
func ParseAction(s string) (Action, bool) {
	for a, name := range actionNames {
		if strings.EqualFold(name, s) {
			return a, true
		}
	}
	return ActionNone, false
}

// IsDirectional reports whether the action requests a movement direction.
func (a Action) IsDirectional() bool {
	switch a {
	case ActionUp, ActionDown, ActionLeft, ActionRight:
		return true
	}
	return false
}
