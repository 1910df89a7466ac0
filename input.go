package sprig

import "math"

// --- Constants ---

const (
	defaultDoubleClickTime   = 0.25 // seconds
	defaultDoubleClickDistSq = 5.0  // squared layout pixels
)

// --- Per-button / per-key state ---

// transition accumulates host-side edges between two frames so that a press
// and release arriving before the next frame are both observed.
type transition struct {
	down       bool
	downEvents int
	upEvents   int
}

type buttonState struct {
	transition

	pressed       bool
	released      bool
	duration      float64 // seconds held, 0 on the press frame
	pressPos      Vec2
	clickTime     float64 // kernel time of the last single click
	clickPos      Vec2
	doubleClicked bool
}

type keyState struct {
	transition

	pressed  bool
	released bool
	duration float64
}

// Input is the per-Context input state. Hosts feed it through the Context
// setters between frames; the kernel latches edges once per frame in begin.
// All positions exposed by Input are in layout units.
type Input struct {
	keys    map[KeyCode]*keyState
	buttons [mouseButtonCount]buttonState

	rawPos     Vec2 // host window units, as last reported
	pos        Vec2
	prevPos    Vec2
	delta      Vec2
	havePos    bool
	wheel      float64
	wheelAccum float64
	time       float64
	dt         float64
	fbScale    Vec2
	uiScale    float64
	dblTime    float64
	dblDistSq  float64
}

func newInput(dblTime, dblDistSq float64) *Input {
	in := &Input{
		keys:      make(map[KeyCode]*keyState),
		fbScale:   Vec2{1, 1},
		uiScale:   1,
		dblTime:   dblTime,
		dblDistSq: dblDistSq,
	}
	for i := range in.buttons {
		in.buttons[i].clickTime = math.Inf(-1)
	}
	return in
}

// --- Host side ---

func (in *Input) setKey(k KeyCode, down bool) {
	ks := in.keys[k]
	if ks == nil {
		ks = &keyState{}
		in.keys[k] = ks
	}
	ks.record(down)
}

func (in *Input) setPointer(b MouseButton, x, y float64, down, move bool) {
	in.rawPos = Vec2{x, y}
	if move || b >= mouseButtonCount {
		return
	}
	in.buttons[b].record(down)
}

func (in *Input) setWheel(v float64) {
	in.wheelAccum = v
}

func (t *transition) record(down bool) {
	if down == t.down {
		return
	}
	if down {
		t.downEvents++
	} else {
		t.upEvents++
	}
	t.down = down
}

// toLayout maps host window units to layout units.
func (in *Input) toLayout(p Vec2) Vec2 {
	return Vec2{p.X * in.fbScale.X / in.uiScale, p.Y * in.fbScale.Y / in.uiScale}
}

// fromLayout maps layout units back to host window units.
func (in *Input) fromLayout(p Vec2) Vec2 {
	fx, fy := in.fbScale.X, in.fbScale.Y
	if fx == 0 {
		fx = 1
	}
	if fy == 0 {
		fy = 1
	}
	return Vec2{p.X * in.uiScale / fx, p.Y * in.uiScale / fy}
}

// --- Frame side ---

// begin latches all edges accumulated since the previous frame.
func (in *Input) begin(dt float64, fbScale Vec2, uiScale float64) {
	if fbScale.X == 0 {
		fbScale.X = 1
	}
	if fbScale.Y == 0 {
		fbScale.Y = 1
	}
	if uiScale <= 0 {
		uiScale = 1
	}
	in.dt = dt
	in.time += dt
	in.fbScale = fbScale
	in.uiScale = uiScale

	pos := in.toLayout(in.rawPos)
	if in.havePos {
		in.prevPos = in.pos
	} else {
		in.prevPos = pos
		in.havePos = true
	}
	in.pos = pos
	in.delta = pos.Sub(in.prevPos)

	in.wheel = in.wheelAccum
	in.wheelAccum = 0

	for i := range in.buttons {
		b := &in.buttons[i]
		b.pressed = b.downEvents > 0
		b.released = b.upEvents > 0
		b.downEvents, b.upEvents = 0, 0
		b.doubleClicked = false

		switch {
		case b.pressed:
			b.duration = 0
			b.pressPos = pos
			if in.time-b.clickTime <= in.dblTime && pos.Sub(b.clickPos).LenSq() < in.dblDistSq {
				b.doubleClicked = true
				b.clickTime = math.Inf(-1)
			} else {
				b.clickTime = in.time
				b.clickPos = pos
			}
		case b.down:
			b.duration += dt
		default:
			b.duration = 0
		}
	}

	for k, ks := range in.keys {
		ks.pressed = ks.downEvents > 0
		ks.released = ks.upEvents > 0
		ks.downEvents, ks.upEvents = 0, 0
		switch {
		case ks.pressed:
			ks.duration = 0
		case ks.down:
			ks.duration += dt
		default:
			ks.duration = 0
			if !ks.released {
				delete(in.keys, k)
			}
		}
	}
}

// --- Queries ---

// KeyDown reports whether k is held.
func (in *Input) KeyDown(k KeyCode) bool {
	ks := in.keys[k]
	return ks != nil && ks.down
}

// KeyPressed reports whether k went down since the previous frame.
func (in *Input) KeyPressed(k KeyCode) bool {
	ks := in.keys[k]
	return ks != nil && ks.pressed
}

// KeyReleased reports whether k went up since the previous frame.
func (in *Input) KeyReleased(k KeyCode) bool {
	ks := in.keys[k]
	return ks != nil && ks.released
}

// KeyDuration returns how long k has been held, in seconds.
func (in *Input) KeyDuration(k KeyCode) float64 {
	if ks := in.keys[k]; ks != nil && ks.down {
		return ks.duration
	}
	return 0
}

// PointerDown reports whether button b is held.
func (in *Input) PointerDown(b MouseButton) bool {
	return b < mouseButtonCount && in.buttons[b].down
}

// IsPointerClick reports whether button b went down since the previous frame.
func (in *Input) IsPointerClick(b MouseButton) bool {
	return b < mouseButtonCount && in.buttons[b].pressed
}

// PointerReleased reports whether button b went up since the previous frame.
func (in *Input) PointerReleased(b MouseButton) bool {
	return b < mouseButtonCount && in.buttons[b].released
}

// IsPointerDoubleClick reports whether this frame's click on b completed a
// double click: the previous click was within the double-click time and
// squared distance.
func (in *Input) IsPointerDoubleClick(b MouseButton) bool {
	return b < mouseButtonCount && in.buttons[b].doubleClicked
}

// PressDuration returns how long b has been held, in seconds.
func (in *Input) PressDuration(b MouseButton) float64 {
	if b >= mouseButtonCount || !in.buttons[b].down {
		return 0
	}
	return in.buttons[b].duration
}

// PressPos returns where b last went down, in layout units.
func (in *Input) PressPos(b MouseButton) Vec2 {
	if b >= mouseButtonCount {
		return Vec2{}
	}
	return in.buttons[b].pressPos
}

// PointerPos returns the pointer position in layout units.
func (in *Input) PointerPos() Vec2 { return in.pos }

// PointerDelta returns the pointer movement since the previous frame.
func (in *Input) PointerDelta() Vec2 { return in.delta }

// PointerMoved reports whether the pointer moved since the previous frame.
func (in *Input) PointerMoved() bool { return in.delta.X != 0 || in.delta.Y != 0 }

// Wheel returns the wheel delta reported for this frame.
func (in *Input) Wheel() float64 { return in.wheel }

// Time returns the kernel clock in seconds since the first frame.
func (in *Input) Time() float64 { return in.time }

// DeltaTime returns the duration of the current frame in seconds.
func (in *Input) DeltaTime() float64 { return in.dt }
