package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/platform/tui"
	"github.com/vovakirdan/tui-snake/internal/replay"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

var (
	flagWatch         bool
	flagWatchInterval int
)

var replayCmd = &cobra.Command{
	Use:   "replay <id>",
	Short: "Re-simulate or watch a recorded game",
	Long: `Re-run a recorded game from its seed and inputs.

Without flags the game is re-simulated instantly and the final board and
scores are printed; the run is checked against the state saved with the
recording. With --watch the game is played back in the terminal.

Playback controls (--watch):
  P/Space  - Pause/resume
  +/-      - Faster/slower
  Q/Esc    - Quit

Examples:
  snake replay 3
  snake replay 3 --watch
  snake replay 3 --watch --interval 60`,
	Args: cobra.ExactArgs(1),
	Run:  runReplay,
}

func init() {
	replayCmd.Flags().BoolVar(&flagWatch, "watch", false, "Play the recording back in the terminal")
	replayCmd.Flags().IntVar(&flagWatchInterval, "interval", 0, "Playback tick interval in milliseconds (default: config)")
}

func runReplay(cmd *cobra.Command, args []string) {
	id, err := strconv.ParseInt(args[0], 10, 64)
	exitOnError("invalid recording id", err)

	cfg, err := loadSettings(cmd)
	exitOnError("loading config", err)

	store, logger := openStore(cmd)
	rec, err := store.Recording(id)
	store.Close()
	if errors.Is(err, storage.ErrNotFound) {
		fmt.Fprintf(os.Stderr, "Error: no recording with id %d\n", id)
		os.Exit(1)
	}
	exitOnError("loading recording", err)

	if flagWatch {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			fmt.Fprintln(os.Stderr, "Error: --watch needs an interactive terminal")
			os.Exit(1)
		}
		interval := cfg.TickInterval()
		if flagWatchInterval > 0 {
			interval = time.Duration(flagWatchInterval) * time.Millisecond
		}
		exitOnError("watching replay", tui.RunWatch(rec, interval))
		return
	}

	snap, err := replay.Play(rec)
	if err != nil && !errors.Is(err, replay.ErrMismatch) {
		exitOnError("replaying", err)
	}

	w, h := snap.ScreenSize()
	screen := core.NewScreen(w, h)
	snap.Render(screen)

	fmt.Printf("Replay #%d  seed %d  board %dx%d  %d ticks\n", rec.ID, rec.Seed, rec.Width, rec.Height, rec.TotalTicks())
	fmt.Println()
	fmt.Println(screen.String())
	fmt.Println()
	fmt.Printf("Final state: %s\n", snap.Lifecycle)
	fmt.Printf("Score: %d\n", snap.Score)
	fmt.Printf("High score: %d\n", snap.HighScore)

	if errors.Is(err, replay.ErrMismatch) {
		logger.Error("replay diverged from recording", "id", rec.ID, "expected", rec.FinalHash, "got", snap.Hash())
		os.Exit(1)
	}
	logger.Debug("replay verified", "id", rec.ID, "hash", snap.Hash())
}
