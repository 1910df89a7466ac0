package sprig

import "github.com/tanema/gween/ease"

// Ease selects an easing curve. The curves are the standard Penner easing
// families provided by gween.
type Ease uint8

const (
	EaseLinear Ease = iota
	EaseInSine
	EaseOutSine
	EaseInOutSine
	EaseInQuad
	EaseOutQuad
	EaseInOutQuad
	EaseInCubic
	EaseOutCubic
	EaseInOutCubic
	EaseInQuart
	EaseOutQuart
	EaseInOutQuart
	EaseInQuint
	EaseOutQuint
	EaseInOutQuint
	EaseInExpo
	EaseOutExpo
	EaseInOutExpo
	EaseInCirc
	EaseOutCirc
	EaseInOutCirc
	EaseInBack
	EaseOutBack
	EaseInOutBack
	EaseInElastic
	EaseOutElastic
	EaseInOutElastic
	EaseInBounce
	EaseOutBounce
	EaseInOutBounce

	easeCount
)

var easeFuncs = [easeCount]ease.TweenFunc{
	EaseLinear:       ease.Linear,
	EaseInSine:       ease.InSine,
	EaseOutSine:      ease.OutSine,
	EaseInOutSine:    ease.InOutSine,
	EaseInQuad:       ease.InQuad,
	EaseOutQuad:      ease.OutQuad,
	EaseInOutQuad:    ease.InOutQuad,
	EaseInCubic:      ease.InCubic,
	EaseOutCubic:     ease.OutCubic,
	EaseInOutCubic:   ease.InOutCubic,
	EaseInQuart:      ease.InQuart,
	EaseOutQuart:     ease.OutQuart,
	EaseInOutQuart:   ease.InOutQuart,
	EaseInQuint:      ease.InQuint,
	EaseOutQuint:     ease.OutQuint,
	EaseInOutQuint:   ease.InOutQuint,
	EaseInExpo:       ease.InExpo,
	EaseOutExpo:      ease.OutExpo,
	EaseInOutExpo:    ease.InOutExpo,
	EaseInCirc:       ease.InCirc,
	EaseOutCirc:      ease.OutCirc,
	EaseInOutCirc:    ease.InOutCirc,
	EaseInBack:       ease.InBack,
	EaseOutBack:      ease.OutBack,
	EaseInOutBack:    ease.InOutBack,
	EaseInElastic:    ease.InElastic,
	EaseOutElastic:   ease.OutElastic,
	EaseInOutElastic: ease.InOutElastic,
	EaseInBounce:     ease.InBounce,
	EaseOutBounce:    ease.OutBounce,
	EaseInOutBounce:  ease.InOutBounce,
}

// Func returns the gween tween function for e. Unknown values map to linear.
func (e Ease) Func() ease.TweenFunc {
	if e >= easeCount {
		return ease.Linear
	}
	return easeFuncs[e]
}

// Apply maps a progress fraction t in [0, 1] through the curve. The result
// is 0 at t=0 and 1 at t=1; Back and Elastic overshoot in between.
func (e Ease) Apply(t float64) float64 {
	switch {
	case t <= 0:
		return 0
	case t >= 1:
		return 1
	}
	return float64(e.Func()(float32(t), 0, 1, 1))
}
