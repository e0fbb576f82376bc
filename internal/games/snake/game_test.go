package snake

import (
	"errors"
	"math/rand"
	"slices"
	"testing"

	"github.com/vovakirdan/tui-snake/internal/core"
)

func newTestGame(t *testing.T, seed int64) *Game {
	t.Helper()
	g, err := Initialize(20, 20, rand.New(rand.NewSource(seed)))
	if err != nil {
		t.Fatalf("Initialize() failed: %v", err)
	}
	return g
}

// placeFood moves the food somewhere harmless for scripted scenarios.
func placeFood(g *Game, p core.Point) {
	g.food = p
	g.hasFood = true
}

func TestInitialState(t *testing.T) {
	g := newTestGame(t, 1)

	want := []core.Point{core.Pt(10, 10), core.Pt(9, 10), core.Pt(8, 10)}
	if !slices.Equal(g.snake, want) {
		t.Fatalf("initial snake = %v, expected %v", g.snake, want)
	}
	if g.State() != StateReady {
		t.Errorf("initial state = %v, expected ready", g.State())
	}
	if g.Direction() != DirRight {
		t.Errorf("initial direction = %v, expected right", g.Direction())
	}
	if !g.hasFood || OccupancyOf(g.snake).Has(g.food) {
		t.Errorf("initial food %v must exist and be off the snake", g.food)
	}
	if g.Score() != 0 || g.HighScore() != 0 {
		t.Errorf("scores should start at 0, got %d/%d", g.Score(), g.HighScore())
	}
}

func TestTickMovesRight(t *testing.T) {
	g := newTestGame(t, 2)
	placeFood(g, core.Pt(0, 0))
	g.Start()

	if res := g.Tick(); res != Continue {
		t.Fatalf("Tick() = %v, expected continue", res)
	}

	want := []core.Point{core.Pt(11, 10), core.Pt(10, 10), core.Pt(9, 10)}
	if !slices.Equal(g.snake, want) {
		t.Errorf("snake after tick = %v, expected %v", g.snake, want)
	}
}

func TestTickOutsideRunningIsNoop(t *testing.T) {
	g := newTestGame(t, 3)
	before := g.Snapshot()

	if res := g.Tick(); res != Continue {
		t.Errorf("Tick() in ready = %v, expected continue", res)
	}
	if after := g.Snapshot(); after.Hash() != before.Hash() {
		t.Error("Tick() in ready must not change the game")
	}

	g.Start()
	g.Pause()
	before = g.Snapshot()
	g.Tick()
	if after := g.Snapshot(); after.Hash() != before.Hash() {
		t.Error("Tick() while paused must not change the game")
	}
}

func TestEatFood(t *testing.T) {
	g := newTestGame(t, 4)
	g.Start()
	placeFood(g, core.Pt(11, 10))

	if res := g.Tick(); res != Ate {
		t.Fatalf("Tick() = %v, expected ate", res)
	}

	want := []core.Point{core.Pt(11, 10), core.Pt(10, 10), core.Pt(9, 10), core.Pt(8, 10)}
	if !slices.Equal(g.snake, want) {
		t.Errorf("snake after eating = %v, expected %v", g.snake, want)
	}
	if g.Score() != FoodPoints {
		t.Errorf("score = %d, expected %d", g.Score(), FoodPoints)
	}
	if !g.hasFood {
		t.Fatal("new food should be placed")
	}
	if OccupancyOf(g.snake).Has(g.food) {
		t.Errorf("new food %v placed on the snake", g.food)
	}
	if g.State() != StateRunning {
		t.Errorf("state = %v, expected running", g.State())
	}
}

func TestWallCollision(t *testing.T) {
	g := newTestGame(t, 5)
	g.Start()
	g.snake = []core.Point{core.Pt(0, 5), core.Pt(1, 5), core.Pt(2, 5)}
	g.direction = DirLeft
	g.queue.Reset(DirLeft)
	g.scores.score = 30
	g.session.HighScore = 10
	placeFood(g, core.Pt(15, 15))

	before := slices.Clone(g.snake)
	if res := g.Tick(); res != Collided {
		t.Fatalf("Tick() = %v, expected collided", res)
	}
	if g.State() != StateGameOver {
		t.Errorf("state = %v, expected game_over", g.State())
	}
	if !slices.Equal(g.snake, before) {
		t.Errorf("body after collision = %v, expected unchanged %v", g.snake, before)
	}
	if g.HighScore() != 30 {
		t.Errorf("high score = %d, expected 30", g.HighScore())
	}
}

func TestWallCollisionKeepsHigherHighScore(t *testing.T) {
	g := newTestGame(t, 6)
	g.Start()
	g.session.HighScore = 100
	g.scores.score = 20
	g.snake = []core.Point{core.Pt(19, 3), core.Pt(18, 3), core.Pt(17, 3)}

	if res := g.Tick(); res != Collided {
		t.Fatalf("Tick() = %v, expected collided", res)
	}
	if g.HighScore() != 100 {
		t.Errorf("high score = %d, expected 100 to be kept", g.HighScore())
	}
}

func TestSelfCollision(t *testing.T) {
	g := newTestGame(t, 7)
	g.Start()
	placeFood(g, core.Pt(0, 0))

	// A loop whose head moves right into (6,5).
	g.snake = []core.Point{
		core.Pt(5, 5), core.Pt(5, 6), core.Pt(5, 7),
		core.Pt(6, 7), core.Pt(6, 6), core.Pt(6, 5),
	}
	g.direction = DirUp
	g.queue.Reset(DirUp)
	g.SetDirection(DirRight)

	before := slices.Clone(g.snake)
	if res := g.Tick(); res != Collided {
		t.Fatalf("Tick() = %v, expected collided", res)
	}
	if g.State() != StateGameOver {
		t.Errorf("state = %v, expected game_over", g.State())
	}
	if !slices.Equal(g.snake, before) {
		t.Error("body must be left as it was before the fatal move")
	}
}

func TestMoveIntoTailCellCollides(t *testing.T) {
	g := newTestGame(t, 8)
	g.Start()
	placeFood(g, core.Pt(0, 0))

	// Head at (5,5) moving right reaches the tail cell (6,5), which would be
	// vacated this tick. The full body including the tail is checked.
	g.snake = []core.Point{core.Pt(5, 5), core.Pt(5, 6), core.Pt(6, 6), core.Pt(6, 5)}
	g.direction = DirUp
	g.queue.Reset(DirRight)

	if res := g.Tick(); res != Collided {
		t.Errorf("Tick() = %v, expected collided when entering the tail cell", res)
	}
}

func TestNoImmediateReversal(t *testing.T) {
	g := newTestGame(t, 9)
	placeFood(g, core.Pt(0, 0))
	g.Start()

	g.SetDirection(DirLeft)
	if res := g.Tick(); res != Continue {
		t.Fatalf("Tick() = %v, expected continue", res)
	}

	if g.Direction() != DirRight {
		t.Errorf("direction = %v, expected right (reversal ignored)", g.Direction())
	}
	if g.snake[0] != core.Pt(11, 10) {
		t.Errorf("head = %v, expected (11,10)", g.snake[0])
	}

	// A valid turn still works afterwards
	g.SetDirection(DirDown)
	g.Tick()
	if g.Direction() != DirDown || g.snake[0] != core.Pt(11, 11) {
		t.Errorf("after turning down: dir=%v head=%v", g.Direction(), g.snake[0])
	}
}

func TestSetDirectionIgnoredWhenNotRunning(t *testing.T) {
	g := newTestGame(t, 10)
	placeFood(g, core.Pt(0, 0))

	g.SetDirection(DirDown) // Ready
	g.Start()
	g.Tick()
	if g.Direction() != DirRight {
		t.Errorf("direction set in ready leaked: %v", g.Direction())
	}

	g.Pause()
	g.SetDirection(DirUp) // Paused
	g.Pause()
	g.Tick()
	if g.Direction() != DirRight {
		t.Errorf("direction set while paused leaked: %v", g.Direction())
	}
}

func TestLastDirectionWins(t *testing.T) {
	g := newTestGame(t, 11)
	placeFood(g, core.Pt(0, 0))
	g.Start()

	g.SetDirection(DirUp)
	g.SetDirection(DirDown)
	g.Tick()

	if g.Direction() != DirDown {
		t.Errorf("direction = %v, expected down", g.Direction())
	}
}

func TestInitializeValidation(t *testing.T) {
	tests := []struct {
		name    string
		w, h    int
		wantErr bool
	}{
		{"zero width", 0, 20, true},
		{"zero height", 20, 0, true},
		{"negative width", -1, 5, true},
		{"too few cells", 1, 3, true},
		{"two cells", 2, 1, true},
		{"square 2x2", 2, 2, false},
		{"single column", 1, 4, false},
		{"single row", 4, 1, false},
		{"3x3", 3, 3, false},
		{"classic", 20, 20, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g, err := Initialize(tc.w, tc.h, rand.New(rand.NewSource(1)))
			if tc.wantErr {
				var cfgErr *ConfigError
				if !errors.As(err, &cfgErr) {
					t.Fatalf("Initialize(%d, %d) error = %v, expected *ConfigError", tc.w, tc.h, err)
				}
				if cfgErr.Width != tc.w || cfgErr.Height != tc.h {
					t.Errorf("ConfigError dims = %dx%d, expected %dx%d", cfgErr.Width, cfgErr.Height, tc.w, tc.h)
				}
				return
			}
			if err != nil {
				t.Fatalf("Initialize(%d, %d) failed: %v", tc.w, tc.h, err)
			}

			snap := g.Snapshot()
			if snap.Len() != InitialLength {
				t.Errorf("initial length = %d, expected %d", snap.Len(), InitialLength)
			}
			occ := OccupancyOf(snap.Segments)
			if len(occ) != InitialLength {
				t.Errorf("initial body overlaps itself: %v", snap.Segments)
			}
			for _, p := range snap.Segments {
				if IsOutOfBounds(p, tc.w, tc.h) {
					t.Errorf("segment %v out of bounds", p)
				}
			}
			if !snap.HasFood || occ.Has(snap.Food) || IsOutOfBounds(snap.Food, tc.w, tc.h) {
				t.Errorf("bad initial food %v", snap.Food)
			}
		})
	}
}

func TestNilRandFallsBack(t *testing.T) {
	g, err := Initialize(20, 20, nil)
	if err != nil {
		t.Fatalf("Initialize() failed: %v", err)
	}
	if !g.Snapshot().HasFood {
		t.Error("food should be placed with the fallback source")
	}
}

func TestLifecycleTransitions(t *testing.T) {
	type step struct {
		cmd  func(g *Game)
		want State
	}
	start := func(g *Game) { g.Start() }
	pause := func(g *Game) { g.Pause() }
	restart := func(g *Game) { g.Restart() }
	crash := func(g *Game) {
		g.snake = []core.Point{core.Pt(19, 0), core.Pt(18, 0), core.Pt(17, 0)}
		g.direction = DirRight
		g.queue.Reset(DirRight)
		g.Tick()
	}

	tests := []struct {
		name  string
		steps []step
	}{
		{"pause in ready ignored", []step{{pause, StateReady}}},
		{"start then pause toggles", []step{{start, StateRunning}, {pause, StatePaused}, {pause, StateRunning}}},
		{"start twice", []step{{start, StateRunning}, {start, StateRunning}}},
		{"restart from paused", []step{{start, StateRunning}, {pause, StatePaused}, {restart, StateReady}}},
		{"restart from running", []step{{start, StateRunning}, {restart, StateReady}}},
		{"restart from ready", []step{{restart, StateReady}}},
		{"collision ends game", []step{{start, StateRunning}, {crash, StateGameOver}}},
		{"game over ignores start and pause", []step{{start, StateRunning}, {crash, StateGameOver}, {start, StateGameOver}, {pause, StateGameOver}}},
		{"restart after game over", []step{{start, StateRunning}, {crash, StateGameOver}, {restart, StateReady}, {start, StateRunning}}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := newTestGame(t, 12)
			placeFood(g, core.Pt(0, 19))
			for i, s := range tc.steps {
				s.cmd(g)
				if g.State() != s.want {
					t.Fatalf("step %d: state = %v, expected %v", i, g.State(), s.want)
				}
			}
		})
	}
}

func TestRestartRebuildsGame(t *testing.T) {
	g := newTestGame(t, 13)
	g.Start()
	placeFood(g, core.Pt(11, 10))
	g.Tick()
	g.SetDirection(DirDown)
	g.Tick()

	g.Restart()
	snap := g.Snapshot()

	want := []core.Point{core.Pt(10, 10), core.Pt(9, 10), core.Pt(8, 10)}
	if !slices.Equal(snap.Segments, want) {
		t.Errorf("segments after restart = %v, expected %v", snap.Segments, want)
	}
	if snap.Score != 0 || snap.Tick != 0 || snap.Direction != DirRight || snap.Lifecycle != StateReady {
		t.Errorf("restart did not reset state: %+v", snap)
	}
	if g.queue.Pending() != DirNone {
		t.Errorf("pending direction = %v, expected none after restart", g.queue.Pending())
	}
}

func TestHighScorePersistsAcrossRestart(t *testing.T) {
	g := newTestGame(t, 14)
	g.Start()

	// Eat five times in a straight line
	for i := 1; i <= 5; i++ {
		placeFood(g, core.Pt(10+i, 10))
		if res := g.Tick(); res != Ate {
			t.Fatalf("tick %d = %v, expected ate", i, res)
		}
	}
	if g.Score() != 50 {
		t.Fatalf("score = %d, expected 50", g.Score())
	}

	// Run into the right wall
	placeFood(g, core.Pt(0, 0))
	for g.State() == StateRunning {
		g.Tick()
	}

	g.Restart()
	snap := g.Snapshot()
	if snap.HighScore != 50 {
		t.Errorf("high score after restart = %d, expected 50", snap.HighScore)
	}
	if snap.Score != 0 {
		t.Errorf("score after restart = %d, expected 0", snap.Score)
	}
}

func TestSharedSession(t *testing.T) {
	session := &Session{HighScore: 70}

	g, err := Initialize(20, 20, rand.New(rand.NewSource(1)), WithSession(session))
	if err != nil {
		t.Fatalf("Initialize() failed: %v", err)
	}
	if g.HighScore() != 70 || g.Session() != session {
		t.Errorf("game should report the shared session high score, got %d", g.HighScore())
	}
}

func TestBoardFullWins(t *testing.T) {
	g, err := Initialize(2, 2, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("Initialize() failed: %v", err)
	}

	snap := g.Snapshot()
	if snap.Food != core.Pt(1, 0) {
		t.Fatalf("only free cell is (1,0), food at %v", snap.Food)
	}

	g.Start()
	g.SetDirection(DirUp)
	if res := g.Tick(); res != Ate {
		t.Fatalf("Tick() = %v, expected ate", res)
	}

	snap = g.Snapshot()
	if snap.Lifecycle != StateGameOver || !snap.Won {
		t.Errorf("full board should end the game as a win, got %v won=%v", snap.Lifecycle, snap.Won)
	}
	if snap.HasFood {
		t.Error("no food can exist on a full board")
	}
	if snap.Len() != 4 || snap.Score != FoodPoints || snap.HighScore != FoodPoints {
		t.Errorf("unexpected final snapshot: %+v", snap)
	}
}

func TestNarrowBoardHeadAtRightWall(t *testing.T) {
	for _, w := range []int{1, 2} {
		g, err := Initialize(w, 4, rand.New(rand.NewSource(1)))
		if err != nil {
			t.Fatalf("Initialize(%d, 4) failed: %v", w, err)
		}
		if head := g.Snapshot().Head(); head.X != w-1 {
			t.Errorf("width %d: head at %v, expected the right column", w, head)
		}

		g.Start()
		if res := g.Tick(); res != Collided {
			t.Errorf("width %d: first tick = %v, expected collided", w, res)
		}

		g.Restart()
		g.Start()
		g.SetDirection(DirDown)
		if res := g.Tick(); res == Collided {
			t.Errorf("width %d: turning down before the first tick should survive", w)
		}
	}
}

func TestNewHighOnlyWhenBeaten(t *testing.T) {
	// 4x1: every start eats the single free cell and wins with 10 points
	g, err := Initialize(4, 1, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("Initialize() failed: %v", err)
	}

	g.Start()
	g.Tick()
	if snap := g.Snapshot(); !snap.NewHigh || snap.HighScore != FoodPoints {
		t.Fatalf("first win: NewHigh=%v HighScore=%d, expected true and %d", snap.NewHigh, snap.HighScore, FoodPoints)
	}

	g.Restart()
	if g.Snapshot().NewHigh {
		t.Error("restart should clear NewHigh")
	}

	g.Start()
	g.Tick()
	snap := g.Snapshot()
	if snap.Lifecycle != StateGameOver || snap.Score != FoodPoints {
		t.Fatalf("second game: %v score %d, expected game over with %d", snap.Lifecycle, snap.Score, FoodPoints)
	}
	if snap.NewHigh {
		t.Error("tying the session best is not a new high score")
	}
}

func TestObserverSeesTransitions(t *testing.T) {
	type transition struct{ from, to State }
	var got []transition

	g, err := Initialize(20, 20, rand.New(rand.NewSource(1)), WithObserver(func(from, to State) {
		got = append(got, transition{from, to})
	}))
	if err != nil {
		t.Fatalf("Initialize() failed: %v", err)
	}

	g.Pause() // ignored, no event
	g.Start()
	g.Pause()
	g.Pause()
	g.Restart()
	g.Restart() // already ready, no event

	want := []transition{
		{StateReady, StateRunning},
		{StateRunning, StatePaused},
		{StatePaused, StateRunning},
		{StateRunning, StateReady},
	}
	if !slices.Equal(got, want) {
		t.Errorf("transitions = %v, expected %v", got, want)
	}
}

func TestSnapshotIsCopy(t *testing.T) {
	g := newTestGame(t, 15)
	snap := g.Snapshot()
	snap.Segments[0] = core.Pt(0, 0)

	if g.snake[0] == core.Pt(0, 0) {
		t.Error("mutating a snapshot must not affect the game")
	}
}

func TestDeterminism(t *testing.T) {
	run := func() Snapshot {
		g, err := Initialize(20, 20, rand.New(rand.NewSource(12345)))
		if err != nil {
			t.Fatalf("Initialize() failed: %v", err)
		}
		g.Start()
		for i := range 200 {
			switch i % 17 {
			case 3:
				g.SetDirection(DirDown)
			case 7:
				g.SetDirection(DirLeft)
			case 11:
				g.SetDirection(DirUp)
			case 15:
				g.SetDirection(DirRight)
			}
			if g.Tick() == Collided {
				g.Restart()
				g.Start()
			}
		}
		return g.Snapshot()
	}

	snap1, snap2 := run(), run()
	if snap1.Hash() != snap2.Hash() {
		t.Errorf("Determinism failed: hashes differ. Run1=%d, Run2=%d", snap1.Hash(), snap2.Hash())
	}
	if snap1.Food != snap2.Food {
		t.Errorf("Food position mismatch: %v vs %v", snap1.Food, snap2.Food)
	}
}

// TestInvariantsRandomPlay drives many games with random input and checks the
// invariants after every tick.
func TestInvariantsRandomPlay(t *testing.T) {
	input := rand.New(rand.NewSource(99))
	dirs := []Direction{DirUp, DirDown, DirLeft, DirRight}

	for _, size := range []core.Grid{{W: 20, H: 20}, {W: 5, H: 4}, {W: 3, H: 3}, {W: 2, H: 3}} {
		g, err := Initialize(size.W, size.H, rand.New(rand.NewSource(int64(size.W*100+size.H))))
		if err != nil {
			t.Fatalf("Initialize(%v) failed: %v", size, err)
		}
		g.Start()

		for range 5000 {
			if input.Intn(3) == 0 {
				g.SetDirection(dirs[input.Intn(len(dirs))])
			}

			before := g.Snapshot()
			res := g.Tick()
			after := g.Snapshot()

			switch res {
			case Continue:
				if after.Len() != before.Len() {
					t.Fatalf("%v: continue changed length %d -> %d", size, before.Len(), after.Len())
				}
				if after.Score != before.Score {
					t.Fatalf("%v: continue changed score", size)
				}
			case Ate:
				if after.Len() != before.Len()+1 {
					t.Fatalf("%v: ate changed length %d -> %d", size, before.Len(), after.Len())
				}
				if after.Score != before.Score+FoodPoints {
					t.Fatalf("%v: ate changed score %d -> %d", size, before.Score, after.Score)
				}
			case Collided:
				if !slices.Equal(after.Segments, before.Segments) || after.Score != before.Score {
					t.Fatalf("%v: collision mutated the body or score", size)
				}
			}

			occ := OccupancyOf(after.Segments)
			if len(occ) != after.Len() {
				t.Fatalf("%v: self-overlap in %v", size, after.Segments)
			}
			if after.HasFood && occ.Has(after.Food) {
				t.Fatalf("%v: food %v on the snake", size, after.Food)
			}
			if after.Score%FoodPoints != 0 || after.Score < before.Score && res != Collided {
				t.Fatalf("%v: bad score %d", size, after.Score)
			}

			if g.State() == StateGameOver {
				if g.HighScore() < after.Score {
					t.Fatalf("%v: high score %d below final score %d", size, g.HighScore(), after.Score)
				}
				g.Restart()
				g.Start()
			}
		}
	}
}

func TestRender(t *testing.T) {
	g := newTestGame(t, 16)
	placeFood(g, core.Pt(3, 4))

	snap := g.Snapshot()
	w, h := snap.ScreenSize()
	if w != 22 || h != 22 {
		t.Fatalf("ScreenSize() = %dx%d, expected 22x22", w, h)
	}

	screen := core.NewScreen(w, h)
	g.Render(screen)

	if screen.Get(0, 0) != '┌' || screen.Get(21, 21) != '┘' {
		t.Error("border should surround the board")
	}
	if screen.Get(11, 11) != GlyphHead {
		t.Errorf("head glyph missing, got %q", screen.Get(11, 11))
	}
	if screen.Get(10, 11) != GlyphBody || screen.Get(9, 11) != GlyphBody {
		t.Error("body glyphs missing")
	}
	if screen.Get(4, 5) != GlyphFood {
		t.Errorf("food glyph missing, got %q", screen.Get(4, 5))
	}

	// Dead snake marks its head
	g.Start()
	g.snake = []core.Point{core.Pt(19, 0), core.Pt(18, 0), core.Pt(17, 0)}
	g.Tick()
	screen = core.NewScreen(w, h)
	g.Render(screen)
	if screen.Get(20, 1) != GlyphDead {
		t.Errorf("dead head glyph missing, got %q", screen.Get(20, 1))
	}
}

func TestResultStrings(t *testing.T) {
	if Continue.String() != "continue" || Ate.String() != "ate" || Collided.String() != "collided" {
		t.Error("unexpected TickResult strings")
	}
	if StateGameOver.String() != "game_over" || State(42).String() != "unknown" {
		t.Error("unexpected State strings")
	}
}

func TestApplyDispatch(t *testing.T) {
	g := newTestGame(t, 17)
	placeFood(g, core.Pt(0, 0))

	if g.Apply(core.ActionQuit) || g.Apply(core.ActionNone) {
		t.Error("quit and none have no engine meaning")
	}

	steps := []struct {
		a    core.Action
		want State
	}{
		{core.ActionPause, StateReady},
		{core.ActionStart, StateRunning},
		{core.ActionDown, StateRunning},
		{core.ActionPause, StatePaused},
		{core.ActionPause, StateRunning},
	}
	for _, s := range steps {
		if !g.Apply(s.a) {
			t.Errorf("Apply(%v) not recognised", s.a)
		}
		if g.State() != s.want {
			t.Fatalf("after %v: state = %v, expected %v", s.a, g.State(), s.want)
		}
	}

	g.Tick()
	if g.Direction() != DirDown {
		t.Errorf("direction = %v, expected down", g.Direction())
	}

	g.Apply(core.ActionRestart)
	if g.State() != StateReady {
		t.Errorf("state after restart = %v, expected ready", g.State())
	}
}
