package main

import (
	"fmt"
	"math"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/stackgrid/internal/config"
	"github.com/alexisbeaulieu97/stackgrid/internal/grid"
	"github.com/alexisbeaulieu97/stackgrid/internal/logger"
	"github.com/alexisbeaulieu97/stackgrid/internal/scheduler"
	"github.com/alexisbeaulieu97/stackgrid/internal/tui"
)

// rowsPerLine converts document heights into terminal rows of filler.
const rowsPerLine = 40.0

type demoOptions struct {
	configPath   string
	cards        int
	columnWidth  float64
	gutterWidth  float64
	gutterHeight float64
	seed         uint64
	logFile      string
}

func newDemoCmd(root *rootFlags) *cobra.Command {
	opts := &demoOptions{}

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Animate a grid of cards in the terminal",
		Long: `Demo runs the grid in the terminal. Cards come from a grid document
(--config) or are generated. Press a to add a card, x to remove one and s to
shuffle them.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo(cmd, root, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "Grid document providing cards and transition settings")
	cmd.Flags().IntVarP(&opts.cards, "cards", "n", 12, "Number of generated cards when no document is given")
	cmd.Flags().Float64Var(&opts.columnWidth, "column-width", 24, "Column width in terminal cells")
	cmd.Flags().Float64Var(&opts.gutterWidth, "gutter-width", 2, "Cells between columns")
	cmd.Flags().Float64Var(&opts.gutterHeight, "gutter-height", 1, "Rows between cards")
	cmd.Flags().Uint64Var(&opts.seed, "seed", uint64(time.Now().UnixNano()), "Seed for generated cards and shuffles")
	cmd.Flags().StringVar(&opts.logFile, "log-file", "", "Write logs to this file; the screen is owned by the demo")

	return cmd
}

func runDemo(cmd *cobra.Command, root *rootFlags, opts *demoOptions) error {
	if !isTerminal(cmd.OutOrStdout()) {
		return newCommandError("run demo", "checking output", fmt.Errorf("stdout is not a terminal"), "Run the demo from an interactive shell.")
	}

	log := logger.Nop()
	if opts.logFile != "" {
		file, err := os.OpenFile(opts.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return newCommandError("run demo", "opening "+opts.logFile, err, "")
		}
		defer file.Close()
		log, err = root.logger(file)
		if err != nil {
			return newCommandError("run demo", "creating logger", err, "")
		}
	}

	boardCfg, title, err := demoBoardConfig(opts)
	if err != nil {
		return err
	}
	boardCfg.Logger = log
	boardCfg.Loop = scheduler.NewLoop(time.Now())
	boardCfg.Scheduler = scheduler.Init(tui.LoopSurface(boardCfg.Loop))

	board, err := tui.NewBoard(boardCfg)
	if err != nil {
		return newCommandError("run demo", "creating the grid", err, "")
	}

	log.WithField("cards", len(board.Keys())).Info("demo started")
	p := tea.NewProgram(tui.NewModel(board, title), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run demo: %w", err)
	}
	log.Info("demo closed")
	return nil
}

// demoBoardConfig builds the board from the document or generated cards.
// Sizes are always taken from the flags since documents are in pixels.
func demoBoardConfig(opts *demoOptions) (tui.BoardConfig, string, error) {
	cfg := tui.BoardConfig{Options: grid.DefaultOptions(), Seed: opts.seed}
	title := "stackgrid demo"

	if opts.configPath != "" {
		doc, err := config.ParseConfig(opts.configPath)
		if err != nil {
			return cfg, "", newCommandError("run demo", "parsing "+opts.configPath, err, "Fix the reported field and try again.")
		}
		cfg.Options, err = doc.Options()
		if err != nil {
			return cfg, "", newCommandError("run demo", "reading grid settings", err, "")
		}
		for _, item := range doc.Items {
			lines := int(math.Round(item.Height / rowsPerLine))
			body := ""
			if lines > 0 {
				body = tui.Filler(lines)
			}
			cfg.Cards = append(cfg.Cards, tui.Card{Key: item.Key, Title: item.Label(), Body: body, Color: item.Color})
		}
		title = doc.Name
	} else {
		for i := 0; i < opts.cards; i++ {
			cfg.Cards = append(cfg.Cards, tui.Card{Body: tui.Filler(1 + int((opts.seed+uint64(i)*7)%4))})
		}
	}

	cfg.Options.ColumnWidth = opts.columnWidth
	cfg.Options.GutterWidth = opts.gutterWidth
	cfg.Options.GutterHeight = opts.gutterHeight
	return cfg, title, nil
}
