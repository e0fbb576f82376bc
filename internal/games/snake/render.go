package snake

import "github.com/vovakirdan/tui-snake/internal/core"

// Glyphs used by Render.
const (
	GlyphHead = '@'
	GlyphBody = 'o'
	GlyphFood = '*'
	GlyphDead = 'X'
)

// ScreenSize returns the screen dimensions needed to render the board with
// its border.
func (s Snapshot) ScreenSize() (w, h int) {
	return s.Width + 2, s.Height + 2
}

// Render draws the board, snake and food into dst with a one-cell border at
// the top-left corner.
func (s Snapshot) Render(dst *core.Screen) {
	w, h := s.ScreenSize()
	dst.DrawBox(0, 0, w, h, core.ColorGray)

	if s.HasFood {
		dst.SetColored(s.Food.X+1, s.Food.Y+1, GlyphFood, core.ColorRed)
	}

	// Draw tail first so the head wins on any overlap.
	for i := len(s.Segments) - 1; i >= 0; i-- {
		seg := s.Segments[i]
		switch {
		case i == 0 && s.Lifecycle == StateGameOver && !s.Won:
			dst.SetColored(seg.X+1, seg.Y+1, GlyphDead, core.ColorYellow)
		case i == 0:
			dst.SetColored(seg.X+1, seg.Y+1, GlyphHead, core.ColorBrightGreen)
		default:
			dst.SetColored(seg.X+1, seg.Y+1, GlyphBody, core.ColorGreen)
		}
	}
}

// Render draws the current game state into dst.
func (g *Game) Render(dst *core.Screen) {
	g.Snapshot().Render(dst)
}
