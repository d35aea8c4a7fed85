package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"

	"github.com/alexisbeaulieu97/stackgrid/internal/config"
	"github.com/alexisbeaulieu97/stackgrid/internal/grid"
	"github.com/alexisbeaulieu97/stackgrid/internal/logger"
	"github.com/alexisbeaulieu97/stackgrid/internal/scheduler"
	"github.com/alexisbeaulieu97/stackgrid/internal/snapshot"
	"github.com/alexisbeaulieu97/stackgrid/pkg/diff"
)

const defaultContainerWidth = 960.0

// settleLimit bounds how long a layout run may keep animating.
const settleLimit = 120

type layoutOptions struct {
	configPath   string
	width        float64
	heights      string
	columnWidth  string
	gutterWidth  float64
	gutterHeight float64
	horizontal   bool
	rtl          bool
	server       bool
	format       string
	pngPath      string
	scale        float64
	expect       string
}

func newLayoutCmd(root *rootFlags) *cobra.Command {
	opts := &layoutOptions{}

	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Compute a grid layout and print the placement of every item",
		Long: `Layout reads items from a grid document (--config) or a list of heights
(--heights), runs the grid until every transition has finished and prints
the final layout. Output is a table on a terminal and JSON otherwise.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLayout(cmd, root, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "Grid document to lay out")
	cmd.Flags().Float64VarP(&opts.width, "width", "w", defaultContainerWidth, "Container width")
	cmd.Flags().StringVar(&opts.heights, "heights", "", "Comma separated item heights, used instead of --config")
	cmd.Flags().StringVar(&opts.columnWidth, "column-width", "", "Column width as a number or a percentage such as 25%")
	cmd.Flags().Float64Var(&opts.gutterWidth, "gutter-width", grid.DefaultGutter, "Horizontal space between columns")
	cmd.Flags().Float64Var(&opts.gutterHeight, "gutter-height", grid.DefaultGutter, "Vertical space between items")
	cmd.Flags().BoolVar(&opts.horizontal, "horizontal", false, "Fill columns in order instead of shortest first")
	cmd.Flags().BoolVar(&opts.rtl, "rtl", false, "Lay out right to left")
	cmd.Flags().BoolVar(&opts.server, "server", false, "Lay out without measuring, as on a server")
	cmd.Flags().StringVarP(&opts.format, "format", "o", "", "Output format: table, json, yaml or msgpack")
	cmd.Flags().StringVar(&opts.pngPath, "png", "", "Also draw the layout to this PNG file")
	cmd.Flags().Float64Var(&opts.scale, "scale", 1, "Scale factor for --png")
	cmd.Flags().StringVar(&opts.expect, "expect", "", "Fail with a diff unless the output matches this file")

	return cmd
}

// layoutInput is everything a layout run needs.
type layoutInput struct {
	options  grid.Options
	children []grid.Child
	measurer grid.Measurer
	width    float64
}

func runLayout(cmd *cobra.Command, root *rootFlags, opts *layoutOptions) error {
	log, err := root.logger(cmd.ErrOrStderr())
	if err != nil {
		return newCommandError("lay out", "creating logger", err, "Use one of debug, info, warn or error for --log-level.")
	}

	in, err := loadLayoutInput(cmd, opts)
	if err != nil {
		return err
	}

	format := opts.format
	if format == "" {
		format = "json"
		if isTerminal(cmd.OutOrStdout()) {
			format = "table"
		}
	}
	write, ok := layoutWriters[format]
	if !ok {
		return newCommandError("lay out", "choosing output", fmt.Errorf("unknown format %q", format), "Use table, json, yaml or msgpack.")
	}

	g, err := settleGrid(in, log)
	if err != nil {
		return newCommandError("lay out", "running the grid", err, "")
	}
	state := g.Layout()

	log.WithFields(map[string]any{
		"items":   len(state.Keys),
		"columns": state.Result.ColumnCount,
		"height":  state.Result.ContentHeight,
		"server":  state.Server,
	}).Info("layout complete")

	if opts.pngPath != "" {
		frame := snapshot.FromView(g.Render(), state, in.options.RTL, describeItem)
		sopts := snapshot.DefaultOptions()
		sopts.Scale = opts.scale
		if err := snapshot.SavePNG(opts.pngPath, frame, sopts); err != nil {
			return newCommandError("lay out", "writing "+opts.pngPath, err, "Check that the directory exists and is writable.")
		}
		log.WithField("path", opts.pngPath).Info("snapshot written")
	}

	var out bytes.Buffer
	if err := write(&out, state); err != nil {
		return err
	}
	if opts.expect != "" {
		expected, err := os.ReadFile(opts.expect)
		if err != nil {
			return newCommandError("check layout", "reading "+opts.expect, err, "")
		}
		if d := diff.Lines(expected, out.Bytes(), opts.expect, "layout"); d != "" {
			fmt.Fprint(cmd.ErrOrStderr(), d)
			return newCommandError("check layout", "comparing with "+opts.expect, fmt.Errorf("layout differs"), "Review the diff above and update the file if the change is intended.")
		}
	}
	_, err = cmd.OutOrStdout().Write(out.Bytes())
	return err
}

func loadLayoutInput(cmd *cobra.Command, opts *layoutOptions) (layoutInput, error) {
	in := layoutInput{options: grid.DefaultOptions(), width: defaultContainerWidth}

	switch {
	case opts.configPath != "" && opts.heights != "":
		return in, newCommandError("lay out", "reading items", fmt.Errorf("--config and --heights are exclusive"), "Pass one of them.")
	case opts.configPath != "":
		cfg, err := config.ParseConfig(opts.configPath)
		if err != nil {
			return in, newCommandError("lay out", "parsing "+opts.configPath, err, "Fix the reported field and try again.")
		}
		in.options, err = cfg.Options()
		if err != nil {
			return in, newCommandError("lay out", "reading grid settings", err, "")
		}
		in.children = cfg.Children()
		in.measurer = cfg.Measurer()
		if cfg.Container.Width > 0 {
			in.width = cfg.Container.Width
		}
	case opts.heights != "":
		heights, err := parseHeights(opts.heights)
		if err != nil {
			return in, newCommandError("lay out", "reading --heights", err, "Pass numbers separated by commas, for example 120,80,200.")
		}
		keyed := make(map[string]float64, len(heights))
		for i, h := range heights {
			key := strconv.Itoa(i)
			keyed[key] = h
			in.children = append(in.children, grid.Child{Key: key, Content: key})
		}
		in.measurer = grid.MeasureFunc(func(it *grid.Item) (grid.Metrics, bool) {
			h, ok := keyed[it.Key()]
			return grid.Metrics{OffsetHeight: h}, ok
		})
	default:
		return in, newCommandError("lay out", "reading items", fmt.Errorf("no items"), "Pass --config or --heights.")
	}

	flags := cmd.Flags()
	if flags.Changed("width") {
		in.width = opts.width
	}
	if flags.Changed("column-width") {
		in.options.ColumnWidth = columnWidthValue(opts.columnWidth)
	}
	if flags.Changed("gutter-width") {
		in.options.GutterWidth = opts.gutterWidth
	}
	if flags.Changed("gutter-height") {
		in.options.GutterHeight = opts.gutterHeight
	}
	if flags.Changed("horizontal") {
		in.options.Horizontal = opts.horizontal
	}
	if flags.Changed("rtl") {
		in.options.RTL = opts.rtl
	}
	if opts.server {
		in.measurer = nil
	}
	if err := in.options.Validate(); err != nil {
		return in, newCommandError("lay out", "checking grid settings", err, "")
	}
	return in, nil
}

// settleGrid mounts a grid on a private loop and runs it until nothing is
// pending.
func settleGrid(in layoutInput, log *logger.Logger) (*grid.Grid, error) {
	loop := scheduler.NewLoop(time.Unix(0, 0))
	g, err := grid.New(in.options,
		grid.WithScheduler(scheduler.Detect(scheduler.LoopSurface{Loop: loop, Name: "native"})),
		grid.WithMeasurer(in.measurer),
		grid.WithLogger(log),
	)
	if err != nil {
		return nil, err
	}
	g.Resize(in.width, 0)
	if err := g.SetChildren(in.children); err != nil {
		return nil, err
	}
	if err := g.Mount(); err != nil {
		return nil, err
	}
	for i := 0; i < settleLimit && loop.Pending() > 0; i++ {
		loop.Advance(time.Second)
	}
	return g, nil
}

func parseHeights(raw string) ([]float64, error) {
	parts := strings.Split(raw, ",")
	heights := make([]float64, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		h, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return nil, err
		}
		if h < 0 {
			return nil, fmt.Errorf("height %s is negative", p)
		}
		heights = append(heights, h)
	}
	return heights, nil
}

// columnWidthValue keeps percentages as strings and turns numbers into
// float64 so either reaches the grid in the shape it expects.
func columnWidthValue(raw string) any {
	raw = strings.TrimSpace(raw)
	if v, err := strconv.ParseFloat(raw, 64); err == nil {
		return v
	}
	return raw
}

func describeItem(view grid.ItemView) (string, string) {
	if item, ok := view.Content.(config.Item); ok {
		return item.Label(), item.Color
	}
	return view.Key, ""
}

var layoutWriters = map[string]func(io.Writer, grid.State) error{
	"json":    writeJSON,
	"yaml":    writeYAML,
	"msgpack": writeMsgpack,
	"table":   writeTable,
}

func writeJSON(w io.Writer, state grid.State) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(state)
}

func writeYAML(w io.Writer, state grid.State) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(state); err != nil {
		return err
	}
	return encoder.Close()
}

func writeMsgpack(w io.Writer, state grid.State) error {
	return msgpack.NewEncoder(w).Encode(state)
}

func writeTable(w io.Writer, state grid.State) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "KEY\tCOLUMN\tLEFT\tTOP\tWIDTH\tHEIGHT")
	for i, key := range state.Keys {
		r, _ := state.Rect(key)
		column := "-"
		if i < len(state.Result.Columns) {
			column = strconv.Itoa(state.Result.Columns[i])
		}
		fmt.Fprintf(tw, "%s\t%s\t%g\t%g\t%g\t%g\n", key, column, r.Left, r.Top, r.Width, r.Height)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "\n%d columns of %g, content %gx%g\n",
		state.Result.ColumnCount, state.Result.ColumnWidth, state.Result.ContentWidth, state.Result.ContentHeight)
	return err
}
