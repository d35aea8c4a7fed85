package tui

import (
	"fmt"
	"math"
	"math/rand/v2"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/alexisbeaulieu97/stackgrid/internal/grid"
	"github.com/alexisbeaulieu97/stackgrid/internal/layout"
	"github.com/alexisbeaulieu97/stackgrid/internal/logger"
	"github.com/alexisbeaulieu97/stackgrid/internal/scheduler"
	"github.com/alexisbeaulieu97/stackgrid/internal/transition"
)

// Card is the content of one grid item in the terminal.
type Card struct {
	Key   string
	Title string
	Body  string
	Color string // lipgloss color; empty picks from the palette
}

var palette = []string{"99", "212", "42", "39", "214", "203", "141", "81"}

const minCardWidth = 6

// Board hosts a grid in terminal cells. Layout units are cells: one unit of
// width is one column of the terminal and one unit of height is one row.
type Board struct {
	grid   *grid.Grid
	loop   *scheduler.Loop
	sched  scheduler.Scheduler
	log    *logger.Logger
	easing transition.Easing
	spring harmonica.Spring
	rng    *rand.Rand

	cards   map[string]Card
	order   []string
	motions map[string]*motion
	added   int

	width, height float64
	passes        int
}

// BoardConfig configures a Board. Without a Loop the board starts its own
// at Start. Without a Scheduler the board detects one over its loop; a
// given Scheduler must be driven by Loop.
type BoardConfig struct {
	Options   grid.Options
	Cards     []Card
	Start     time.Time
	Loop      *scheduler.Loop
	Scheduler scheduler.Scheduler
	Logger    *logger.Logger
	Seed      uint64
}

// motion is what the terminal currently shows for one item. Positions
// follow their targets on a spring; opacity follows the grid's easing.
type motion struct {
	x, xv   float64
	y, yv   float64
	opacity tween
}

type tween struct {
	from, to float64
	start    time.Time
}

// NewBoard creates an unmounted board. Cards without a key get one.
func NewBoard(cfg BoardConfig) (*Board, error) {
	if cfg.Start.IsZero() {
		cfg.Start = time.Now()
	}
	log := cfg.Logger
	if log == nil {
		log = logger.Nop()
	}

	loop := cfg.Loop
	if loop == nil {
		loop = scheduler.NewLoop(cfg.Start)
	}
	sched := cfg.Scheduler
	if sched == nil {
		sched = scheduler.Detect(LoopSurface(loop))
	}

	b := &Board{
		loop:    loop,
		sched:   sched,
		log:     log.For("tui"),
		rng:     rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15)),
		cards:   make(map[string]Card),
		motions: make(map[string]*motion),
	}
	if err := b.configure(&cfg.Options); err != nil {
		return nil, err
	}

	g, err := grid.New(cfg.Options,
		grid.WithScheduler(b.sched),
		grid.WithMeasurer(grid.MeasureFunc(b.measure)),
		grid.WithLogger(log),
	)
	if err != nil {
		return nil, err
	}
	b.grid = g

	for _, c := range cfg.Cards {
		b.insert(c)
	}
	if err := b.grid.SetChildren(b.children()); err != nil {
		return nil, err
	}
	return b, nil
}

// configure wraps OnLayout and derives the animation parameters.
func (b *Board) configure(opts *grid.Options) error {
	if err := opts.Validate(); err != nil {
		return err
	}
	onLayout := opts.OnLayout
	opts.OnLayout = func() {
		b.passes++
		if onLayout != nil {
			onLayout()
		}
	}

	easing, err := transition.ParseEasing(opts.Easing)
	if err != nil {
		return err
	}
	b.easing = easing

	seconds := opts.Duration.Seconds()
	if seconds <= 0 {
		seconds = grid.DefaultDuration.Seconds()
	}
	b.spring = harmonica.NewSpring(harmonica.FPS(int(time.Second/scheduler.FrameInterval)), 4/seconds, 1)
	return nil
}

// Grid returns the hosted grid.
func (b *Board) Grid() *grid.Grid {
	return b.grid
}

// Loop returns the loop driving the board's scheduler.
func (b *Board) Loop() *scheduler.Loop {
	return b.loop
}

// Scheduler returns the scheduler the grid runs on.
func (b *Board) Scheduler() scheduler.Scheduler {
	return b.sched
}

// LoopSurface presents loop to scheduler detection as the terminal's
// native frame source.
func LoopSurface(loop *scheduler.Loop) scheduler.Surface {
	return scheduler.LoopSurface{Loop: loop, Name: "native"}
}

// Keys returns the current card keys in order.
func (b *Board) Keys() []string {
	return append([]string(nil), b.order...)
}

// Card returns the card for key.
func (b *Board) Card(key string) (Card, bool) {
	c, ok := b.cards[key]
	return c, ok
}

// Passes returns how many client layout passes completed.
func (b *Board) Passes() int {
	return b.passes
}

// Mount mounts the grid.
func (b *Board) Mount() error {
	return b.grid.Mount()
}

// Resize changes the container to width by height cells.
func (b *Board) Resize(width, height int) {
	b.width, b.height = float64(width), float64(height)
	b.grid.Resize(b.width, b.height)
}

// Step advances the scheduler to now and moves every item one frame
// toward its target.
func (b *Board) Step(now time.Time) int {
	ran := b.loop.Tick(now)
	b.follow(b.loop.Now())
	return ran
}

// Add appends a card and returns its key.
func (b *Board) Add(c Card) (string, error) {
	key := b.insert(c)
	if err := b.grid.SetChildren(b.children()); err != nil {
		b.drop(key)
		return "", err
	}
	b.log.WithField("key", key).Debug("card added")
	return key, nil
}

// AddRandom appends a card with a generated key and a body of one to
// four lines.
func (b *Board) AddRandom() (string, error) {
	return b.Add(Card{Body: Filler(1 + b.rng.IntN(4))})
}

// Remove takes the card with key off the board. Its item leaves.
func (b *Board) Remove(key string) error {
	if _, ok := b.cards[key]; !ok {
		return fmt.Errorf("unknown card %q", key)
	}
	b.drop(key)
	if err := b.grid.SetChildren(b.children()); err != nil {
		return err
	}
	b.log.WithField("key", key).Debug("card removed")
	return nil
}

// RemoveLast removes the most recent card. It reports false on an empty board.
func (b *Board) RemoveLast() (bool, error) {
	if len(b.order) == 0 {
		return false, nil
	}
	return true, b.Remove(b.order[len(b.order)-1])
}

// Shuffle reorders the cards. Items move to their new places.
func (b *Board) Shuffle() error {
	b.rng.Shuffle(len(b.order), func(i, j int) {
		b.order[i], b.order[j] = b.order[j], b.order[i]
	})
	return b.grid.SetChildren(b.children())
}

// ToggleRTL flips the horizontal direction.
func (b *Board) ToggleRTL() error {
	opts := b.grid.Options()
	opts.RTL = !opts.RTL
	return b.setOptions(opts)
}

// ToggleOrientation switches between vertical and horizontal placement.
func (b *Board) ToggleOrientation() error {
	opts := b.grid.Options()
	opts.Horizontal = !opts.Horizontal
	return b.setOptions(opts)
}

func (b *Board) setOptions(opts grid.Options) error {
	return b.grid.SetOptions(opts)
}

func (b *Board) insert(c Card) string {
	if c.Key == "" {
		c.Key = uuid.NewString()
	}
	if c.Title == "" {
		c.Title = shortKey(c.Key)
	}
	if c.Color == "" {
		c.Color = palette[b.added%len(palette)]
	}
	b.added++
	if _, exists := b.cards[c.Key]; !exists {
		b.order = append(b.order, c.Key)
	}
	b.cards[c.Key] = c
	return c.Key
}

func (b *Board) drop(key string) {
	delete(b.cards, key)
	for i, k := range b.order {
		if k == key {
			b.order = append(b.order[:i], b.order[i+1:]...)
			break
		}
	}
}

func (b *Board) children() []grid.Child {
	children := make([]grid.Child, len(b.order))
	for i, key := range b.order {
		children[i] = grid.Child{Key: key, Content: b.cards[key]}
	}
	return children
}

// measure renders the card at the width it will get and reports its rows.
func (b *Board) measure(it *grid.Item) (grid.Metrics, bool) {
	c, ok := it.Content().(Card)
	if !ok {
		return grid.Metrics{}, false
	}
	h := lipgloss.Height(renderCard(c, b.columnWidth()))
	return grid.Metrics{OffsetHeight: float64(h)}, true
}

// columnWidth resolves the column width for the current container.
func (b *Board) columnWidth() int {
	if b.grid == nil {
		return minCardWidth
	}
	opts := b.grid.Options()
	raw := opts.ColumnWidth
	if raw == nil {
		raw = grid.DefaultColumnWidth
	}
	spec, err := layout.ParseColumnSpec(raw)
	if err != nil {
		return minCardWidth
	}
	_, w, err := spec.Resolve(b.width, opts.GutterWidth)
	if err != nil || w < minCardWidth {
		return minCardWidth
	}
	return int(math.Floor(w))
}

func (b *Board) follow(now time.Time) {
	duration := b.grid.Options().Duration
	seen := make(map[string]bool)

	for _, view := range b.grid.Render().Items {
		it, ok := b.grid.Item(view.Key)
		if !ok {
			continue
		}
		seen[view.Key] = true

		raw := it.Style()
		tx, _ := raw.Float("translateX")
		ty, _ := raw.Float("translateY")
		op, ok := raw.Float("opacity")
		if !ok {
			op = 1
		}

		m, ok := b.motions[view.Key]
		if !ok {
			b.motions[view.Key] = &motion{x: tx, y: ty, opacity: tween{from: op, to: op, start: now}}
			continue
		}

		m.x, m.xv = b.spring.Update(m.x, m.xv, tx)
		m.y, m.yv = b.spring.Update(m.y, m.yv, ty)
		if op != m.opacity.to {
			m.opacity = tween{from: m.opacity.value(now, duration, b.easing), to: op, start: now}
		}
	}

	for key := range b.motions {
		if !seen[key] {
			delete(b.motions, key)
		}
	}
}

func (t tween) value(now time.Time, d time.Duration, e transition.Easing) float64 {
	if d <= 0 || t.from == t.to {
		return t.to
	}
	p := float64(now.Sub(t.start)) / float64(d)
	if p >= 1 {
		return t.to
	}
	if p < 0 {
		p = 0
	}
	return t.from + (t.to-t.from)*e.At(p)
}

type cell struct {
	r     rune
	style int
}

type sprite struct {
	key     string
	x, y    int
	z       int
	index   int
	lines   []string
	opacity float64
	color   string
}

// Draw paints the board as it currently appears.
func (b *Board) Draw() string {
	now := b.loop.Now()
	opts := b.grid.Options()
	state := b.grid.Layout()
	width := int(b.width)
	if width <= 0 {
		return ""
	}

	var sprites []sprite
	rows := int(math.Ceil(state.Result.ContentHeight))
	for _, view := range b.grid.Render().Items {
		it, ok := b.grid.Item(view.Key)
		if !ok {
			continue
		}
		c, ok := view.Content.(Card)
		if !ok {
			continue
		}
		s := sprite{key: view.Key, index: view.Index, color: c.Color, z: 1, opacity: 1}
		if z, ok := it.Style().Float("zIndex"); ok {
			s.z = int(z)
		}
		if m, ok := b.motions[view.Key]; ok {
			s.x = int(layout.Round(m.x))
			s.y = int(layout.Round(m.y))
			s.opacity = m.opacity.value(now, opts.Duration, b.easing)
		} else {
			raw := it.Style()
			tx, _ := raw.Float("translateX")
			ty, _ := raw.Float("translateY")
			s.x, s.y = int(layout.Round(tx)), int(layout.Round(ty))
			if op, ok := raw.Float("opacity"); ok {
				s.opacity = op
			}
		}

		cw := int(math.Floor(view.Rect.Width))
		if cw < minCardWidth {
			cw = b.columnWidth()
		}
		if opts.RTL {
			s.x = width - cw + s.x
		}
		s.lines = strings.Split(renderCard(c, cw), "\n")
		if bottom := s.y + len(s.lines); bottom > rows {
			rows = bottom
		}
		sprites = append(sprites, s)
	}

	sort.SliceStable(sprites, func(i, j int) bool {
		if sprites[i].z != sprites[j].z {
			return sprites[i].z < sprites[j].z
		}
		return sprites[i].index < sprites[j].index
	})

	canvas := make([][]cell, rows)
	for y := range canvas {
		canvas[y] = make([]cell, width)
	}
	styles := []lipgloss.Style{lipgloss.NewStyle()}

	for _, s := range sprites {
		if s.opacity < 0.15 {
			continue
		}
		st := lipgloss.NewStyle().Foreground(lipgloss.Color(s.color))
		if s.opacity < 0.6 {
			st = st.Faint(true)
		}
		styles = append(styles, st)
		idx := len(styles) - 1

		for dy, line := range s.lines {
			y := s.y + dy
			if y < 0 || y >= rows {
				continue
			}
			x := s.x
			for _, r := range line {
				if x >= 0 && x < width {
					canvas[y][x] = cell{r: r, style: idx}
				}
				x++
			}
		}
	}

	out := make([]string, rows)
	for y, row := range canvas {
		out[y] = paintRow(row, styles)
	}
	return strings.Join(out, "\n")
}

func paintRow(row []cell, styles []lipgloss.Style) string {
	var sb strings.Builder
	var run []rune
	current := 0
	flush := func() {
		if len(run) == 0 {
			return
		}
		if current == 0 {
			sb.WriteString(string(run))
		} else {
			sb.WriteString(styles[current].Render(string(run)))
		}
		run = run[:0]
	}
	for _, c := range row {
		r := c.r
		if r == 0 {
			r = ' '
		}
		if c.style != current {
			flush()
			current = c.style
		}
		run = append(run, r)
	}
	flush()
	return strings.TrimRight(sb.String(), " ")
}

func renderCard(c Card, width int) string {
	if width < minCardWidth {
		width = minCardWidth
	}
	content := c.Title
	if c.Body != "" {
		content += "\n" + c.Body
	}
	return cardStyle.Width(width - 2).Render(content)
}

// Filler returns n lines of placeholder text.
func Filler(n int) string {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = strings.Repeat("~", 3+(i*5)%7)
	}
	return strings.Join(lines, "\n")
}

func shortKey(key string) string {
	if len(key) > 8 {
		return key[:8]
	}
	return key
}
