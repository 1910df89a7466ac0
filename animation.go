package sprig

import "github.com/tanema/gween"

// settleEpsilon snaps progress that is within float noise of an end point.
const settleEpsilon = 1e-9

// boolAnim is a boolean-driven transition keyed by identity.
type boolAnim struct {
	target  bool
	t       float64 // progress toward true, in [0, 1]
	stepped uint64  // frame the progress last advanced
	touched uint64
}

// valueAnim tweens a float toward a target that may change at any time.
type valueAnim struct {
	target  float64
	value   float64
	tween   *gween.Tween
	stepped uint64
	touched uint64
}

// AnimateBool returns the eased progress of a transition driven by target.
// The first call for id starts settled at target, so nothing animates on
// first appearance. Afterwards progress moves toward 1 (target true) or 0
// (target false) at 1/duration per second of frame time, once per frame no
// matter how often it is queried. easeIn shapes the rise and easeOut the
// fall. A duration <= 0 jumps straight to the end point.
func (c *Context) AnimateBool(id ID, target bool, duration float64, easeIn, easeOut Ease) float64 {
	a := c.anims[id]
	if a == nil {
		a = &boolAnim{target: target, stepped: c.frame}
		if target {
			a.t = 1
		}
		c.anims[id] = a
	}
	a.touched = c.frame
	a.target = target

	if a.stepped != c.frame {
		a.stepped = c.frame
		step := 1.0
		if duration > 0 {
			step = c.input.DeltaTime() / duration
		}
		if target {
			a.t += step
		} else {
			a.t -= step
		}
		switch {
		case a.t >= 1-settleEpsilon:
			a.t = 1
		case a.t <= settleEpsilon:
			a.t = 0
		}
	}

	if target {
		return easeIn.Apply(a.t)
	}
	return easeOut.Apply(a.t)
}

// AnimateValue returns a value tweening toward target over duration seconds.
// The first call for id starts settled at target; when target changes, a new
// tween starts from the current value.
func (c *Context) AnimateValue(id ID, target, duration float64, e Ease) float64 {
	a := c.tweens[id]
	if a == nil {
		a = &valueAnim{target: target, value: target, stepped: c.frame}
		c.tweens[id] = a
	}
	a.touched = c.frame

	if target != a.target {
		a.target = target
		if duration <= 0 {
			a.tween = nil
			a.value = target
		} else {
			a.tween = gween.New(float32(a.value), float32(target), float32(duration), e.Func())
		}
	}

	if a.stepped != c.frame {
		a.stepped = c.frame
		if a.tween != nil {
			v, done := a.tween.Update(float32(c.input.DeltaTime()))
			a.value = float64(v)
			if done {
				a.value = a.target
				a.tween = nil
			}
		}
	}
	return a.value
}

// pruneAnimations drops entries not queried within the retention window.
func (c *Context) pruneAnimations() {
	keep := c.cfg.RetainFrames
	if keep < 0 || c.frame < uint64(keep) {
		return
	}
	limit := c.frame - uint64(keep)
	for id, a := range c.anims {
		if a.touched < limit {
			delete(c.anims, id)
		}
	}
	for id, a := range c.tweens {
		if a.touched < limit {
			delete(c.tweens, id)
		}
	}
}
