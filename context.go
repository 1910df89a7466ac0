package sprig

import (
	"os"
	"runtime/debug"
	"time"

	"github.com/charmbracelet/log"
)

// Config tunes a Context. Zero fields take the DefaultConfig values.
type Config struct {
	// Logger receives collision warnings, gather panics and, in debug mode,
	// per-frame stats. Defaults to a stderr logger at warn level.
	Logger *log.Logger
	// Debug lowers the default logger to debug level and logs frame stats.
	Debug bool
	// Clock supplies frame timestamps; the delta between two frames is the
	// frame time. Defaults to time.Now.
	Clock func() time.Time
	// DoubleClickTime is the maximum delay between two clicks, in seconds.
	DoubleClickTime float64
	// DoubleClickDistSq is the squared distance, in layout units, two clicks
	// must stay under to count as a double click.
	DoubleClickDistSq float64
	// RetainFrames is how many frames animation and storage entries survive
	// without being queried. Negative disables pruning.
	RetainFrames int
	// DragZIndex is the z-index of the floating drag preview.
	DragZIndex int
	// DragDeadZone is the pointer travel, in layout units, needed before a
	// drag starts.
	DragDeadZone float64
}

const (
	defaultRetainFrames = 120
	defaultDragZIndex   = 1 << 20
)

// DefaultConfig returns the configuration New uses for zero fields.
func DefaultConfig() Config {
	return Config{
		Clock:             time.Now,
		DoubleClickTime:   defaultDoubleClickTime,
		DoubleClickDistSq: defaultDoubleClickDistSq,
		RetainFrames:      defaultRetainFrames,
		DragZIndex:        defaultDragZIndex,
	}
}

// Context is one independent UI instance. It owns every piece of cross-frame
// state: the layout cache, hash tables, interaction tables, drag state,
// animations and per-identity storage. A Context is not safe for concurrent
// use; separate Contexts share nothing.
type Context struct {
	cfg Config
	log *log.Logger

	input *Input
	draw  *DrawList
	data  DrawData

	// Gather state
	arena   nodeArena
	root    *Node
	scopes  []*Node
	idStack []ID

	// Cross-frame geometry and dirty detection
	cache       map[ID]*nodeCache
	curHashes   map[ID]uint64
	prevHashes  map[ID]uint64
	screen      Rect
	prevScreen  Rect
	uiScale     float64
	prevUIScale float64

	// Interaction
	cur         *interactTable
	prev        *interactTable
	hovered     ID
	prevHovered ID
	active      ID
	focused     ID
	lastItem    ID
	lastHovered bool
	drag        dragState

	anims   map[ID]*boolAnim
	tweens  map[ID]*valueAnim
	storage map[ID]*storageEntry

	handlers      handlerRegistry
	sink          EventSink
	cursorVisible bool

	injectQueue []syntheticEvent
	runner      *TestRunner

	frame    uint64
	lastTime time.Time
	stats    FrameStats
	last     FrameStats
}

// New creates a Context. Zero fields of cfg take their DefaultConfig values.
func New(cfg Config) *Context {
	def := DefaultConfig()
	if cfg.Clock == nil {
		cfg.Clock = def.Clock
	}
	if cfg.DoubleClickTime <= 0 {
		cfg.DoubleClickTime = def.DoubleClickTime
	}
	if cfg.DoubleClickDistSq <= 0 {
		cfg.DoubleClickDistSq = def.DoubleClickDistSq
	}
	if cfg.RetainFrames == 0 {
		cfg.RetainFrames = def.RetainFrames
	}
	if cfg.DragZIndex == 0 {
		cfg.DragZIndex = def.DragZIndex
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "sprig", Level: log.WarnLevel})
		if cfg.Debug {
			logger.SetLevel(log.DebugLevel)
		}
	}

	return &Context{
		cfg:           cfg,
		log:           logger,
		input:         newInput(cfg.DoubleClickTime, cfg.DoubleClickDistSq),
		draw:          newDrawList(),
		cache:         make(map[ID]*nodeCache),
		curHashes:     make(map[ID]uint64),
		prevHashes:    make(map[ID]uint64),
		cur:           newInteractTable(),
		prev:          newInteractTable(),
		anims:         make(map[ID]*boolAnim),
		tweens:        make(map[ID]*valueAnim),
		storage:       make(map[ID]*storageEntry),
		cursorVisible: true,
	}
}

// rootKey identifies the implicit root node of every frame.
var rootKey = Named("##root")

// ProcessFrame runs one frame: it latches input, runs build inside the root
// node (gather), re-resolves layout when the structural hashes changed,
// commits the frame, and hands the draw data to sink.
//
// screen is the logical screen rect in framebuffer pixels; it is divided by
// uiScale to get layout units. fbScale maps host pointer units to
// framebuffer pixels. A panic in build is recovered and logged: the draw
// commands recorded so far are still flushed, but nothing from the frame is
// committed.
func (c *Context) ProcessFrame(sink CommandSink, screen Rect, uiScale float64, fbScale Vec2, antiAliasing bool, build func(c *Context)) {
	c.beginFrame(screen, uiScale, fbScale)

	t0 := time.Now()
	ok := c.gather(build)
	c.stats.GatherTime = time.Since(t0)

	if ok {
		if dirty, reason := c.validate(); dirty {
			c.resolve()
			c.refreshInteractables()
			c.stats.Resolved = true
			c.stats.DirtyReason = reason
		}
		c.stats.Interactables = len(c.cur.items)
		c.commit()
	} else {
		c.stats.Abandoned = true
		clear(c.curHashes)
		c.cur.reset()
	}

	t1 := time.Now()
	c.flush(sink, antiAliasing)
	c.stats.FlushTime = time.Since(t1)

	c.settleInteraction()
	c.settleDrag()

	c.last = c.stats
	c.debugLog(c.last)
}

func (c *Context) beginFrame(screen Rect, uiScale float64, fbScale Vec2) {
	now := c.cfg.Clock()
	var dt float64
	if !c.lastTime.IsZero() {
		dt = max(now.Sub(c.lastTime).Seconds(), 0)
	}
	c.lastTime = now

	if uiScale <= 0 {
		uiScale = 1
	}
	c.frame++
	c.uiScale = uiScale
	c.screen = Rect{
		X:      screen.X / uiScale,
		Y:      screen.Y / uiScale,
		Width:  screen.Width / uiScale,
		Height: screen.Height / uiScale,
	}

	if c.runner != nil {
		c.runner.step(c)
	}
	c.processInjectedInput()
	c.input.begin(dt, fbScale, uiScale)

	c.arena.reset()
	c.root = nil
	c.scopes = c.scopes[:0]
	c.idStack = c.idStack[:0]
	c.draw.reset(c.screen)
	clear(c.curHashes)
	c.cur.reset()

	c.prevHovered = c.hovered
	c.hovered = 0
	c.lastItem = 0
	c.lastHovered = false
	c.stats = FrameStats{Frame: c.frame}
}

// gather runs build inside the root scope and reports whether it completed.
func (c *Context) gather(build func(c *Context)) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			c.log.Error("gather panicked, frame abandoned",
				"frame", c.frame, "panic", r, "stack", string(debug.Stack()))
			c.unwindScopes()
			ok = false
		}
	}()

	id := c.claimID(deriveID(0, 0, rootKey), rootKey)
	c.root = c.open(nil, id, rootKey, Layout{
		Width:  Px(c.screen.Width),
		Height: Px(c.screen.Height),
	})
	if build != nil {
		build(c)
	}
	c.root.End()
	return true
}

// commit makes this frame's tables the reference for the next frame.
func (c *Context) commit() {
	c.commitHashes()
	c.commitInteraction()
	for id, e := range c.cache {
		if e.lastSeen != c.frame {
			delete(c.cache, id)
		}
	}
	c.pruneAnimations()
	c.pruneStorage()
}

func (c *Context) flush(sink CommandSink, antiAliasing bool) {
	c.data.Frame = c.frame
	c.data.Screen = c.screen
	c.data.UIScale = c.uiScale
	c.data.FramebufferScale = c.input.fbScale
	c.data.AntiAliasing = antiAliasing
	c.draw.collect(&c.data)
	c.stats.Commands = c.data.CommandCount()
	if sink != nil {
		sink.Submit(&c.data)
	}
}

// --- Boundary inputs ---

// SetKeyState reports a key transition. Edges reported between two frames
// are all observed by the next frame.
func (c *Context) SetKeyState(k KeyCode, down bool) { c.input.setKey(k, down) }

// SetPointerState reports the pointer position in host window units and the
// state of button b. When move is set only the position is updated.
func (c *Context) SetPointerState(b MouseButton, x, y float64, down, move bool) {
	c.input.setPointer(b, x, y, down, move)
}

// SetPointerWheel reports the wheel delta accumulated since the last frame.
func (c *Context) SetPointerWheel(v float64) { c.input.setWheel(v) }

// SetPointerPos asks the host to warp the pointer to p, given in layout
// units. Registered OnPointerPosSet callbacks receive host window units.
func (c *Context) SetPointerPos(p Vec2) {
	host := c.input.fromLayout(p)
	c.input.rawPos = host
	for _, h := range c.handlers.pointerPos {
		h.fn(host)
	}
}

// SetCursorVisible asks the host to show or hide the cursor.
func (c *Context) SetCursorVisible(visible bool) {
	if c.cursorVisible == visible {
		return
	}
	c.cursorVisible = visible
	for _, h := range c.handlers.cursor {
		h.fn(visible)
	}
}

// CursorVisible reports the last requested cursor visibility.
func (c *Context) CursorVisible() bool { return c.cursorVisible }

// --- Accessors ---

// Input returns the input state latched for the current frame.
func (c *Context) Input() *Input { return c.input }

// Draw returns the draw list of the current frame.
func (c *Context) Draw() *DrawList { return c.draw }

// Root returns the root node of the current frame, or nil outside a frame.
func (c *Context) Root() *Node { return c.root }

// Screen returns the screen rect in layout units.
func (c *Context) Screen() Rect { return c.screen }

// UIScale returns the UI scale of the current frame.
func (c *Context) UIScale() float64 { return c.uiScale }

// Frame returns the current frame number, starting at 1.
func (c *Context) Frame() uint64 { return c.frame }

// Logger returns the context logger.
func (c *Context) Logger() *log.Logger { return c.log }
