package sprig

import (
	"bytes"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

// fakeClock advances by step on every reading.
type fakeClock struct {
	now  time.Time
	step time.Duration
}

func (f *fakeClock) Now() time.Time {
	t := f.now
	f.now = f.now.Add(f.step)
	return t
}

// harness drives a Context frame by frame with a fixed 0.1s frame time.
type harness struct {
	t      *testing.T
	ctx    *Context
	screen Rect
	data   *DrawData
	logs   *bytes.Buffer
}

func newHarness(t *testing.T) *harness {
	return newHarnessConfig(t, DefaultConfig())
}

func newHarnessConfig(t *testing.T, cfg Config) *harness {
	t.Helper()
	var buf bytes.Buffer
	clock := &fakeClock{now: time.Unix(1000, 0), step: 100 * time.Millisecond}
	cfg.Clock = clock.Now
	if cfg.Logger == nil {
		cfg.Logger = log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})
	}
	return &harness{
		t:      t,
		ctx:    New(cfg),
		screen: Rect{Width: 400, Height: 300},
		logs:   &buf,
	}
}

// frame runs one frame and keeps the submitted draw data.
func (h *harness) frame(build func(c *Context)) {
	h.ctx.ProcessFrame(CommandSinkFunc(func(d *DrawData) { h.data = d }),
		h.screen, 1, Vec2{X: 1, Y: 1}, false, build)
}

// press reports a primary button press at (x, y).
func (h *harness) press(x, y float64) {
	h.ctx.SetPointerState(MouseButtonLeft, x, y, true, false)
}

// release reports a primary button release at (x, y).
func (h *harness) release(x, y float64) {
	h.ctx.SetPointerState(MouseButtonLeft, x, y, false, false)
}

// move reports a pointer move to (x, y).
func (h *harness) move(x, y float64) {
	h.ctx.SetPointerState(MouseButtonLeft, x, y, false, true)
}

// box declares a fixed-size node and returns its interaction.
func box(c *Context, k Key, l Layout) (ID, Interaction) {
	var id ID
	var res Interaction
	c.Node(k, l, func(n *Node) {
		id = n.ID()
		res = n.Interact(0)
	})
	return id, res
}

func approx(a, b float64) bool {
	d := a - b
	return d < 1e-6 && d > -1e-6
}

func rectApprox(a, b Rect) bool {
	return approx(a.X, b.X) && approx(a.Y, b.Y) && approx(a.Width, b.Width) && approx(a.Height, b.Height)
}
