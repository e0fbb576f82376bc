package snake

// FoodPoints is the score awarded for each food eaten.
const FoodPoints = 10

// Session holds state that outlives individual games, owned by whatever hosts
// the engine. HighScore is in-memory only.
type Session struct {
	HighScore int
}

// ScoreTracker accumulates the current game's score and reports the final
// score to its Session.
type ScoreTracker struct {
	score   int
	session *Session
}

// NewScoreTracker creates a tracker bound to session.
func NewScoreTracker(session *Session) ScoreTracker {
	return ScoreTracker{session: session}
}

// Score returns the current score.
func (t *ScoreTracker) Score() int {
	return t.score
}

// HighScore returns the session best.
func (t *ScoreTracker) HighScore() int {
	if t.session == nil {
		return 0
	}
	return t.session.HighScore
}

// OnFoodEaten adds FoodPoints to the score.
func (t *ScoreTracker) OnFoodEaten() {
	t.score += FoodPoints
}

// OnGameOver raises the session high score if finalScore beats it and
// reports whether it did. A tie is not a new high score.
func (t *ScoreTracker) OnGameOver(finalScore int) bool {
	if t.session == nil || finalScore <= t.session.HighScore {
		return false
	}
	t.session.HighScore = finalScore
	return true
}
