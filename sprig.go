package sprig

import "math"

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is opaque white.
var ColorWhite = Color{1, 1, 1, 1}

// Vec2 is a 2D vector used for positions, offsets, sizes, and directions
// throughout the API.
type Vec2 struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// LenSq returns the squared length of v.
func (v Vec2) LenSq() float64 { return v.X*v.X + v.Y*v.Y }

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// ContainsPoint is Contains for a Vec2.
func (r Rect) ContainsPoint(p Vec2) bool {
	return r.Contains(p.X, p.Y)
}

// Intersects reports whether r and other overlap.
// Adjacent rectangles (sharing only an edge) are considered intersecting.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.Width &&
		r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height &&
		r.Y+r.Height >= other.Y
}

// Intersect returns the overlap of r and other. Disjoint rectangles produce
// a zero-size rect positioned at the clamped corner.
func (r Rect) Intersect(other Rect) Rect {
	x0 := math.Max(r.X, other.X)
	y0 := math.Max(r.Y, other.Y)
	x1 := math.Min(r.X+r.Width, other.X+other.Width)
	y1 := math.Min(r.Y+r.Height, other.Y+other.Height)
	if x1 < x0 {
		x1 = x0
	}
	if y1 < y0 {
		y1 = y0
	}
	return Rect{x0, y0, x1 - x0, y1 - y0}
}

// Union returns the smallest rect containing both r and other.
func (r Rect) Union(other Rect) Rect {
	x0 := math.Min(r.X, other.X)
	y0 := math.Min(r.Y, other.Y)
	x1 := math.Max(r.X+r.Width, other.X+other.Width)
	y1 := math.Max(r.Y+r.Height, other.Y+other.Height)
	return Rect{x0, y0, x1 - x0, y1 - y0}
}

// Inset shrinks r by the given insets. Width and height never go negative.
func (r Rect) Inset(in Insets) Rect {
	out := Rect{
		X:      r.X + in.Left,
		Y:      r.Y + in.Top,
		Width:  r.Width - in.Left - in.Right,
		Height: r.Height - in.Top - in.Bottom,
	}
	if out.Width < 0 {
		out.Width = 0
	}
	if out.Height < 0 {
		out.Height = 0
	}
	return out
}

// Min returns the top-left corner.
func (r Rect) Min() Vec2 { return Vec2{r.X, r.Y} }

// Size returns the width and height as a Vec2.
func (r Rect) Size() Vec2 { return Vec2{r.Width, r.Height} }

// Insets are per-edge distances: left, top, right, bottom.
type Insets struct {
	Left, Top, Right, Bottom float64
}

// Uniform returns insets with the same value on every edge.
func Uniform(v float64) Insets { return Insets{v, v, v, v} }

// MouseButton identifies a pointer button.
type MouseButton uint8

const (
	MouseButtonLeft   MouseButton = iota // primary (left) mouse button
	MouseButtonRight                     // secondary (right) mouse button
	MouseButtonMiddle                    // middle mouse button (scroll wheel click)

	mouseButtonCount
)

// KeyCode is an opaque host key code. The kernel only tracks transitions;
// hosts decide what the codes mean (ebitenhost passes ebiten.Key values
// through).
type KeyCode uint32

// EventType identifies a kind of interaction event.
type EventType uint8

const (
	EventHoverEnter EventType = iota // pointer started hovering an interactable
	EventHoverLeave                  // pointer stopped hovering an interactable
	EventActivate                    // interactable became active (pointer down)
	EventClick                       // press then release over the same interactable
	EventFocus                       // interactable took focus
	EventBlur                        // interactable lost focus
	EventDragStart                   // drag latched on a source
	EventDrop                        // drag accepted by a target
	EventDragCancel                  // drag released with no target or cancelled
)

// String returns the event name used in logs and scripts.
func (e EventType) String() string {
	switch e {
	case EventHoverEnter:
		return "hover_enter"
	case EventHoverLeave:
		return "hover_leave"
	case EventActivate:
		return "activate"
	case EventClick:
		return "click"
	case EventFocus:
		return "focus"
	case EventBlur:
		return "blur"
	case EventDragStart:
		return "drag_start"
	case EventDrop:
		return "drop"
	case EventDragCancel:
		return "drag_cancel"
	default:
		return "unknown"
	}
}
