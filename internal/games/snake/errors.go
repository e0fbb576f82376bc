package snake

import "fmt"

// ConfigError is returned by Initialize when the board cannot host a game.
type ConfigError struct {
	Width  int
	Height int
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("snake: invalid grid %dx%d: %s", e.Width, e.Height, e.Reason)
}
