package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/platform/tui"
	"github.com/vovakirdan/tui-snake/internal/session"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

var (
	flagWidth    int
	flagHeight   int
	flagInterval int
	flagSize     string
	flagPick     bool
	flagNoRecord bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a game",
	Long: `Start a game of snake.

Controls:
  Arrows/WASD/HJKL - Steer
  Enter            - Start
  P/Space          - Pause/resume
  R                - Restart
  ?                - Toggle help
  Q/Esc/Ctrl+C     - Quit

Board size presets:
  small    12x12
  classic  20x20
  large    32x24

Examples:
  snake play
  snake play --size small
  snake play --width 30 --height 15 --interval 80
  snake play --pick
  snake play --seed 42 --no-record`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagWidth, "width", 0, "Board width in cells (overrides config)")
	playCmd.Flags().IntVar(&flagHeight, "height", 0, "Board height in cells (overrides config)")
	playCmd.Flags().IntVar(&flagInterval, "interval", 0, "Tick interval in milliseconds (overrides config)")
	playCmd.Flags().StringVar(&flagSize, "size", "", "Board size preset: small, classic, large")
	playCmd.Flags().BoolVar(&flagPick, "pick", false, "Choose the board size from a menu")
	playCmd.Flags().BoolVar(&flagNoRecord, "no-record", false, "Do not record this session")
}

func runPlay(cmd *cobra.Command, _ []string) {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "Error: play needs an interactive terminal")
		os.Exit(1)
	}

	cfg, err := loadSettings(cmd)
	exitOnError("loading config", err)
	exitOnError("applying flags", applyPlayFlags(cmd, &cfg))

	if flagPick {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		preset, chosen, selErr := tui.RunSizeSelector(width, height)
		exitOnError("size selector", selErr)
		if !chosen {
			return
		}
		exitOnError("applying size", config.ApplySizePreset(&cfg, preset))
	}

	exitOnError("invalid config", cfg.Validate())

	// The alt screen owns the terminal, so logs only go to a file if one is set
	logOut, closeLog, err := openLogOutput(cfg.Log.File)
	exitOnError("opening log file", err)
	defer closeLog()

	logger, err := newLogger(cfg, logOut)
	exitOnError("creating logger", err)

	opts := []session.Option{session.WithLogger(logger)}
	if !cfg.Replay.Enabled {
		opts = append(opts, session.WithoutRecording())
	}

	host, err := session.New(cfg.ToRuntime(), opts...)
	exitOnError("starting game", err)

	runErr := tui.Run(host, cfg.TickInterval())
	host.Close()

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}

	snap := host.Snapshot()
	fmt.Printf("High score this session: %d\n", snap.HighScore)

	if rec, ok := host.Recording(); ok && rec.TotalTicks() > 0 {
		saveRecording(cfg.Replay.DBPath, rec, logger)
	}
}

// applyPlayFlags applies play-specific flag overrides to cfg.
func applyPlayFlags(cmd *cobra.Command, cfg *config.SnakeConfig) error {
	if flagSize != "" {
		if err := config.ApplySizePreset(cfg, config.SizePreset(flagSize)); err != nil {
			return err
		}
	}
	if cmd.Flags().Changed("width") {
		cfg.Grid.Width = flagWidth
	}
	if cmd.Flags().Changed("height") {
		cfg.Grid.Height = flagHeight
	}
	if cmd.Flags().Changed("interval") {
		cfg.Timing.TickIntervalMS = flagInterval
	}
	if flagNoRecord {
		cfg.Replay.Enabled = false
	}
	return nil
}

// openLogOutput opens path for appending, or discards output when path is empty.
func openLogOutput(path string) (io.Writer, func(), error) {
	if path == "" {
		return io.Discard, func() {}, nil
	}

	path, err := storage.ExpandPath(path)
	if err != nil {
		return nil, nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, err
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600) //#nosec G304 -- user-chosen log path
	if err != nil {
		return nil, nil, err
	}
	return f, func() { f.Close() }, nil
}
