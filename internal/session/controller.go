package session

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"

	"lifepanel/internal/core"
	"lifepanel/internal/logging"
	"lifepanel/pkg/life"
)

var (
	// ErrRunning is returned when a board mutation is attempted while running.
	ErrRunning = errors.New("session: board is running")
	// ErrSizeMismatch is returned when a loaded grid does not match the board.
	ErrSizeMismatch = errors.New("session: grid size does not match board")
	// ErrClosed is returned after Close.
	ErrClosed = errors.New("session: controller closed")
)

// State is the run flag of a board.
type State int

const (
	// Paused boards accept edits and do not step.
	Paused State = iota
	// Running boards step on every tick and reject edits.
	Running
)

func (s State) String() string {
	if s == Running {
		return "running"
	}
	return "paused"
}

// Snapshot is one published view of the board.
type Snapshot struct {
	Grid       *life.Grid
	Generation uint64
	State      State
}

// Controller owns the current generation of a board and the Running/Paused
// state machine. While running, a ticker owned by the running period drives
// Step; Pause and Close release it.
type Controller struct {
	engine    *life.Engine
	interval  time.Duration
	newTicker core.TickerFactory
	log       *slog.Logger
	metrics   *Metrics

	grid atomic.Pointer[life.Grid]

	mu         sync.Mutex
	state      State
	generation uint64
	epoch      uint64
	cancel     context.CancelFunc
	done       chan struct{}
	closed     bool
	subs       map[int]chan Snapshot
	nextSub    int
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger used for state transitions.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.log = l
		}
	}
}

// WithInterval sets the stepping cadence.
func WithInterval(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.interval = d
		}
	}
}

// WithTicker replaces the ticker factory.
func WithTicker(f core.TickerFactory) Option {
	return func(c *Controller) {
		if f != nil {
			c.newTicker = f
		}
	}
}

// WithMetrics records step and state metrics.
func WithMetrics(m *Metrics) Option {
	return func(c *Controller) { c.metrics = m }
}

// WithGrid installs an initial grid instead of a randomized one. Grids of the
// wrong size are ignored.
func WithGrid(g *life.Grid) Option {
	return func(c *Controller) {
		if g != nil && g.Size() == c.engine.Size() {
			c.grid.Store(g)
		}
	}
}

// New creates a paused controller. Unless WithGrid is given the board starts
// from engine.Randomize().
func New(engine *life.Engine, opts ...Option) *Controller {
	c := &Controller{
		engine:    engine,
		interval:  core.DefaultInterval,
		newTicker: core.NewTicker,
		log:       logging.NewNop(),
		subs:      map[int]chan Snapshot{},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.grid.Load() == nil {
		c.grid.Store(engine.Randomize())
	}
	c.metrics.observeGrid(c.grid.Load())
	return c
}

// Grid returns the current generation. The returned grid is never modified.
func (c *Controller) Grid() *life.Grid { return c.grid.Load() }

// Alive reports whether the cell at (x, y) is alive in the current generation.
func (c *Controller) Alive(x, y int) bool { return c.grid.Load().Alive(x, y) }

// Interval returns the stepping cadence.
func (c *Controller) Interval() time.Duration { return c.interval }

// Engine returns the engine used for stepping and randomizing.
func (c *Controller) Engine() *life.Engine { return c.engine }

// State returns the current run state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Generation returns the number of steps since the board was last replaced.
func (c *Controller) Generation() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generation
}

// Snapshot returns a consistent view of grid, generation and state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Controller) snapshotLocked() Snapshot {
	return Snapshot{Grid: c.grid.Load(), Generation: c.generation, State: c.state}
}

// Start switches the board to Running and begins stepping on every tick.
// Starting a running board is a no-op. Cancelling ctx stops stepping and
// returns the board to Paused.
func (c *Controller) Start(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	if c.state == Running {
		return nil
	}

	c.epoch++
	runCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	ticker := c.newTicker(c.interval)

	c.state = Running
	c.cancel = cancel
	c.done = done
	c.metrics.setRunning(true)
	c.log.Info("board started", "interval", c.interval, "generation", c.generation)
	c.publishLocked()

	go c.run(runCtx, ticker, c.epoch, done)
	return nil
}

func (c *Controller) run(ctx context.Context, ticker core.Ticker, epoch uint64, done chan struct{}) {
	defer close(done)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			c.release(epoch)
			return
		case <-ticker.C():
			c.tick(epoch)
		}
	}
}

// release returns the board to Paused when the running period ended because
// its context was cancelled rather than through Pause.
func (c *Controller) release(epoch uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.epoch != epoch || c.state != Running {
		return
	}
	c.state = Paused
	c.cancel = nil
	c.done = nil
	c.metrics.setRunning(false)
	c.log.Info("board released", "generation", c.generation)
	c.publishLocked()
}

func (c *Controller) tick(epoch uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != Running || c.epoch != epoch {
		return
	}
	c.stepLocked()
}

func (c *Controller) stepLocked() {
	start := time.Now()
	next := c.engine.Step(c.grid.Load())
	c.grid.Store(next)
	c.generation++
	c.metrics.observeStep(next, time.Since(start))
	c.log.Debug("board stepped", "generation", c.generation, "population", next.Population())
	c.publishLocked()
}

// Pause switches the board to Paused. Once Pause returns no further step is
// applied and the ticker has been released. Pausing a paused board is a no-op.
func (c *Controller) Pause() {
	c.mu.Lock()
	stop := c.stopLocked()
	c.mu.Unlock()
	stop()
}

// stopLocked flips a running board to Paused and returns a func that cancels
// the running period and waits for its goroutine to exit.
func (c *Controller) stopLocked() func() {
	if c.state != Running {
		return func() {}
	}
	c.state = Paused
	cancel, done := c.cancel, c.done
	c.cancel, c.done = nil, nil
	c.metrics.setRunning(false)
	c.log.Info("board paused", "generation", c.generation)
	c.publishLocked()
	return func() {
		cancel()
		<-done
	}
}

// Toggle flips the cell at (x, y). It is only allowed while paused.
func (c *Controller) Toggle(x, y int) error {
	return c.mutate(func(cur *life.Grid) (*life.Grid, bool, error) {
		next, err := life.Toggle(cur, x, y)
		return next, false, err
	})
}

// Generate replaces the board with a freshly randomized grid and resets the
// generation counter. It is only allowed while paused.
func (c *Controller) Generate() error {
	return c.mutate(func(*life.Grid) (*life.Grid, bool, error) {
		return c.engine.Randomize(), true, nil
	})
}

// Clear replaces the board with an empty grid. It is only allowed while paused.
func (c *Controller) Clear() error {
	return c.mutate(func(*life.Grid) (*life.Grid, bool, error) {
		return c.engine.Empty(), true, nil
	})
}

// Load installs g as the current generation. It is only allowed while paused.
func (c *Controller) Load(g *life.Grid) error {
	if g == nil {
		return errors.New("session: nil grid")
	}
	return c.mutate(func(cur *life.Grid) (*life.Grid, bool, error) {
		if g.Size() != cur.Size() {
			return nil, false, errors.Wrapf(ErrSizeMismatch, "got %dx%d, board is %dx%d",
				g.Size().W, g.Size().H, cur.Size().W, cur.Size().H)
		}
		return g, true, nil
	})
}

// StepOnce advances a paused board by one generation.
func (c *Controller) StepOnce() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.editableLocked(); err != nil {
		return err
	}
	c.stepLocked()
	return nil
}

func (c *Controller) editableLocked() error {
	if c.closed {
		return ErrClosed
	}
	if c.state == Running {
		return ErrRunning
	}
	return nil
}

func (c *Controller) mutate(fn func(cur *life.Grid) (next *life.Grid, reset bool, err error)) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.editableLocked(); err != nil {
		return err
	}
	next, reset, err := fn(c.grid.Load())
	if err != nil {
		return err
	}
	c.grid.Store(next)
	if reset {
		c.generation = 0
	}
	c.metrics.observeGrid(next)
	c.publishLocked()
	return nil
}

// Subscribe returns a channel that receives the current snapshot and every
// later change. Only the latest snapshot is buffered. The returned func
// unsubscribes and closes the channel.
func (c *Controller) Subscribe() (<-chan Snapshot, func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	ch := make(chan Snapshot, 1)
	if c.closed {
		close(ch)
		return ch, func() {}
	}
	id := c.nextSub
	c.nextSub++
	c.subs[id] = ch
	ch <- c.snapshotLocked()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			c.mu.Lock()
			defer c.mu.Unlock()
			if _, ok := c.subs[id]; ok {
				delete(c.subs, id)
				close(ch)
			}
		})
	}
}

func (c *Controller) publishLocked() {
	snap := c.snapshotLocked()
	for _, ch := range c.subs {
		// Drop a stale snapshot so the newest one always fits.
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- snap:
		default:
		}
	}
}

// Close pauses the board and closes all subscriptions. Later mutations
// return ErrClosed.
func (c *Controller) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	stop := c.stopLocked()
	c.closed = true
	for id, ch := range c.subs {
		delete(c.subs, id)
		close(ch)
	}
	c.log.Info("board closed", "generation", c.generation)
	c.mu.Unlock()
	stop()
	return nil
}

// Parameters reports the board configuration and run status.
func (c *Controller) Parameters() core.ParameterSnapshot {
	snap := c.Snapshot()
	cfg := c.engine.Config()
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "Board",
			Params: []core.Parameter{
				core.IntParam("w", "Width", cfg.Width),
				core.IntParam("h", "Height", cfg.Height),
				core.FloatParam("live_chance", "Live chance", cfg.LiveChance),
				core.IntParam("workers", "Workers", cfg.Workers),
			},
		},
		{
			Name: "Run",
			Params: []core.Parameter{
				core.BoolParam("running", "Running", snap.State == Running),
				core.Int64Param("interval_ms", "Interval (ms)", c.interval.Milliseconds()),
				core.Int64Param("generation", "Generation", int64(snap.Generation)),
				core.IntParam("population", "Population", snap.Grid.Population()),
			},
		},
	}}
}
