package ebitenhost

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/phanxgames/sprig"
)

// mouseButtons maps the ebiten buttons sprig tracks.
var mouseButtons = [...]struct {
	eb ebiten.MouseButton
	sb sprig.MouseButton
}{
	{ebiten.MouseButtonLeft, sprig.MouseButtonLeft},
	{ebiten.MouseButtonRight, sprig.MouseButtonRight},
	{ebiten.MouseButtonMiddle, sprig.MouseButtonMiddle},
}

// Host runs a sprig.Context as an ebiten.Game.
type Host struct {
	cfg      Config
	ctx      *sprig.Context
	build    func(c *sprig.Context)
	renderer *Renderer
	log      *log.Logger
	runner   *sprig.TestRunner

	data  *sprig.DrawData
	clear sprig.Color
	fps   fpsOverlay
	shots []string
	quit  bool

	width, height int

	// pointer polling state
	lastX, lastY int
	havePos      bool
	touch        ebiten.TouchID
	touching     bool
	keys         []ebiten.Key
	touches      []ebiten.TouchID
}

// New creates a host that calls build inside every frame. When
// cfg.TestScript is set the script is loaded and attached to the context.
func New(cfg Config, build func(c *sprig.Context)) (*Host, error) {
	level := log.WarnLevel
	if cfg.Debug {
		level = log.DebugLevel
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "sprig", Level: level})

	font, err := DefaultFont()
	if err != nil {
		return nil, err
	}

	h := &Host{
		cfg:      cfg,
		build:    build,
		renderer: NewRenderer(font, logger),
		log:      logger,
		clear:    sprig.Color{R: 0.08, G: 0.08, B: 0.1, A: 1},
		width:    cfg.Width,
		height:   cfg.Height,
	}
	h.ctx = sprig.New(sprig.Config{Logger: logger, Debug: cfg.Debug})
	h.ctx.OnScreenshot(h.queueScreenshot)
	h.ctx.OnCursorVisibilitySet(h.setCursorVisible)
	h.ctx.OnPointerPosSet(h.warpPointer)

	if cfg.TestScript != "" {
		data, err := os.ReadFile(cfg.TestScript)
		if err != nil {
			return nil, fmt.Errorf("ebitenhost: read test script: %w", err)
		}
		runner, err := sprig.LoadTestScript(data)
		if err != nil {
			return nil, fmt.Errorf("ebitenhost: %s: %w", cfg.TestScript, err)
		}
		h.runner = runner
		h.ctx.SetTestRunner(runner)
	}
	return h, nil
}

// Context returns the UI context driven by the host.
func (h *Host) Context() *sprig.Context { return h.ctx }

// Renderer returns the renderer, for registering textures and canvases.
func (h *Host) Renderer() *Renderer { return h.renderer }

// SetClearColor sets the color the screen is filled with before drawing.
func (h *Host) SetClearColor(c sprig.Color) { h.clear = c }

// MeasureText returns the size of s at size in layout units.
func (h *Host) MeasureText(s string, size float64) sprig.Vec2 {
	w, ht := h.renderer.Font().Measure(s, size)
	return sprig.Vec2{X: w, Y: ht}
}

// Run opens the window and blocks until it is closed.
func (h *Host) Run() error {
	ebiten.SetWindowTitle(h.cfg.Title)
	ebiten.SetWindowSize(h.cfg.Width, h.cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(h); err != nil {
		return fmt.Errorf("ebitenhost: %w", err)
	}
	return nil
}

// Update polls input and runs one sprig frame.
func (h *Host) Update() error {
	if h.quit {
		return ebiten.Termination
	}
	h.pollInput()
	h.ctx.ProcessFrame(sprig.CommandSinkFunc(h.submit),
		sprig.Rect{Width: float64(h.width), Height: float64(h.height)},
		h.cfg.UIScale, sprig.Vec2{X: 1, Y: 1}, h.cfg.AntiAliasing, h.build)

	if h.cfg.ShowFPS {
		st := h.ctx.LastFrame()
		h.fps.update(h.ctx.Input().DeltaTime(), st.Nodes, st.Commands)
	}
	return nil
}

func (h *Host) submit(data *sprig.DrawData) { h.data = data }

// Draw renders the last frame's draw data and writes queued screenshots.
func (h *Host) Draw(screen *ebiten.Image) {
	screen.Fill(toRGBA(h.clear))
	h.renderer.Render(screen, h.data)
	h.flushScreenshots(screen)
	if h.cfg.ShowFPS {
		h.fps.draw(screen)
	}
	if h.runner != nil && h.cfg.ExitAfterScript && h.runner.Done() {
		h.quit = true
	}
}

// Layout uses the window size as the framebuffer size, so cursor
// coordinates and framebuffer pixels coincide.
func (h *Host) Layout(outsideWidth, outsideHeight int) (int, int) {
	h.width, h.height = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}

// pollInput forwards this tick's keyboard, wheel, mouse and touch changes.
func (h *Host) pollInput() {
	h.keys = inpututil.AppendJustPressedKeys(h.keys[:0])
	for _, k := range h.keys {
		h.ctx.SetKeyState(sprig.KeyCode(k), true)
	}
	h.keys = inpututil.AppendJustReleasedKeys(h.keys[:0])
	for _, k := range h.keys {
		h.ctx.SetKeyState(sprig.KeyCode(k), false)
	}

	// Injected input owns the pointer until the queue drains.
	if h.ctx.PendingInjections() > 0 {
		return
	}

	if _, wy := ebiten.Wheel(); wy != 0 {
		h.ctx.SetPointerWheel(wy)
	}
	if h.pollTouch() {
		return
	}

	x, y := ebiten.CursorPosition()
	fx, fy := float64(x), float64(y)
	if !h.havePos || x != h.lastX || y != h.lastY {
		h.ctx.SetPointerState(sprig.MouseButtonLeft, fx, fy, false, true)
		h.lastX, h.lastY, h.havePos = x, y, true
	}
	for _, b := range mouseButtons {
		if inpututil.IsMouseButtonJustPressed(b.eb) {
			h.ctx.SetPointerState(b.sb, fx, fy, true, false)
		}
		if inpututil.IsMouseButtonJustReleased(b.eb) {
			h.ctx.SetPointerState(b.sb, fx, fy, false, false)
		}
	}
}

// pollTouch maps the first active touch to the primary button. Reports
// whether a touch owned the pointer this tick.
func (h *Host) pollTouch() bool {
	if h.touching {
		if inpututil.IsTouchJustReleased(h.touch) {
			x, y := inpututil.TouchPositionInPreviousTick(h.touch)
			h.ctx.SetPointerState(sprig.MouseButtonLeft, float64(x), float64(y), false, false)
			h.touching = false
			return true
		}
		x, y := ebiten.TouchPosition(h.touch)
		h.ctx.SetPointerState(sprig.MouseButtonLeft, float64(x), float64(y), false, true)
		return true
	}
	h.touches = inpututil.AppendJustPressedTouchIDs(h.touches[:0])
	if len(h.touches) == 0 {
		return false
	}
	h.touch, h.touching = h.touches[0], true
	x, y := ebiten.TouchPosition(h.touch)
	h.ctx.SetPointerState(sprig.MouseButtonLeft, float64(x), float64(y), true, false)
	return true
}

func (h *Host) setCursorVisible(visible bool) {
	if visible {
		ebiten.SetCursorMode(ebiten.CursorModeVisible)
		return
	}
	ebiten.SetCursorMode(ebiten.CursorModeHidden)
}

// warpPointer is called by Context.SetPointerPos. Ebitengine cannot move
// the OS cursor, so the request is only logged.
func (h *Host) warpPointer(p sprig.Vec2) {
	h.log.Debug("pointer warp requested", "x", p.X, "y", p.Y)
}
