package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-snake/internal/platform/tui"
	"github.com/vovakirdan/tui-snake/internal/replay"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

var (
	flagLimit  int
	flagBrowse bool
)

var replaysCmd = &cobra.Command{
	Use:   "replays",
	Short: "List recorded games",
	Long: `Display the most recent recorded games, newest first.

With --browse, pick a recording from an interactive table and watch it.

Examples:
  snake replays
  snake replays --limit 50
  snake replays --browse
  snake replays rm 3`,
	Args: cobra.NoArgs,
	Run:  runReplays,
}

var replaysRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a recorded game",
	Args:  cobra.ExactArgs(1),
	Run:   runReplaysRm,
}

func init() {
	replaysCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of recordings to show")
	replaysCmd.Flags().BoolVar(&flagBrowse, "browse", false, "Browse and watch recordings interactively")
	replaysCmd.AddCommand(replaysRmCmd)
}

// openStore loads the configuration and opens the replay database.
func openStore(cmd *cobra.Command) (*storage.Store, *log.Logger) {
	cfg, err := loadSettings(cmd)
	exitOnError("loading config", err)
	exitOnError("invalid config", cfg.Validate())

	logger, err := newLogger(cfg, os.Stderr)
	exitOnError("creating logger", err)

	store, err := storage.Open(cfg.Replay.DBPath)
	exitOnError("opening replay database", err)

	logger.Debug("opened replay database", "path", cfg.Replay.DBPath)
	return store, logger
}

func runReplays(cmd *cobra.Command, _ []string) {
	store, _ := openStore(cmd)
	defer store.Close()

	if flagBrowse {
		browseReplays(store)
		return
	}

	recordings, err := store.ListRecordings(flagLimit)
	if err != nil {
		store.Close()
		exitOnError("listing recordings", err)
	}

	fmt.Println("Recorded games")
	fmt.Println()

	if len(recordings) == 0 {
		fmt.Println("No recordings yet.")
		fmt.Println()
		fmt.Println("Play 'snake play' to record your first game!")
		return
	}

	fmt.Printf("  %-5s  %-7s  %-7s  %-7s  %s\n", "ID", "Score", "Board", "Ticks", "Date")
	fmt.Printf("  %-5s  %-7s  %-7s  %-7s  %s\n", "--", "-----", "-----", "-----", "----")

	for _, r := range recordings {
		board := fmt.Sprintf("%dx%d", r.Width, r.Height)
		fmt.Printf("  %-5d  %-7d  %-7s  %-7d  %s\n", r.ID, r.FinalScore, board, r.Ticks, r.CreatedAt.Format("2006-01-02 15:04"))
	}
}

// browseReplays loops between the recording table and the replay viewer.
func browseReplays(store *storage.Store) {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "Error: --browse needs an interactive terminal")
		os.Exit(1)
	}

	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}

	for {
		id, chosen, err := tui.RunReplayBrowser(store, width, height)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}
		if !chosen {
			return
		}

		rec, err := store.Recording(id)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading recording %d: %v\n", id, err)
			return
		}
		if err := tui.RunWatch(rec, 0); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}
	}
}

func runReplaysRm(cmd *cobra.Command, args []string) {
	id, err := strconv.ParseInt(args[0], 10, 64)
	exitOnError("invalid recording id", err)

	store, logger := openStore(cmd)
	defer store.Close()

	if err := store.DeleteRecording(id); err != nil {
		store.Close()
		if errors.Is(err, storage.ErrNotFound) {
			fmt.Fprintf(os.Stderr, "Error: no recording with id %d\n", id)
			os.Exit(1)
		}
		exitOnError("deleting recording", err)
	}

	logger.Info("recording deleted", "id", id)
}

// saveRecording stores rec, reporting but not failing on errors.
func saveRecording(dbPath string, rec replay.Recording, logger *log.Logger) {
	store, err := storage.Open(dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open replay database: %v\n", err)
		return
	}
	defer store.Close()

	id, err := store.SaveRecording(rec)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not save replay: %v\n", err)
		return
	}

	logger.Info("replay saved", "id", id, "ticks", rec.TotalTicks(), "score", rec.FinalScore)
	fmt.Printf("Saved replay #%d. Watch it with 'snake replay %d --watch'.\n", id, id)
}
