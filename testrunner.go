package sprig

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// stepAction names what a script step does.
type stepAction string

const (
	actionClick      stepAction = "click"
	actionDrag       stepAction = "drag"
	actionKey        stepAction = "key"
	actionWait       stepAction = "wait"
	actionScreenshot stepAction = "screenshot"
)

func (a stepAction) valid() bool {
	switch a {
	case actionClick, actionDrag, actionKey, actionWait, actionScreenshot:
		return true
	}
	return false
}

// testStep is a single action in a test script. Coordinates are host window
// units, the same as SetPointerState.
type testStep struct {
	Action stepAction `yaml:"action"`
	Label  string     `yaml:"label,omitempty"`
	X      float64    `yaml:"x,omitempty"`
	Y      float64    `yaml:"y,omitempty"`
	FromX  float64    `yaml:"fromX,omitempty"`
	FromY  float64    `yaml:"fromY,omitempty"`
	ToX    float64    `yaml:"toX,omitempty"`
	ToY    float64    `yaml:"toY,omitempty"`
	Frames int        `yaml:"frames,omitempty"`
	Key    KeyCode    `yaml:"key,omitempty"`
}

// testScript is the document layout of a test script.
type testScript struct {
	Steps []testStep `yaml:"steps"`
}

// TestRunner sequences injected input and screenshots across frames for
// scripted interaction tests. Attach it with Context.SetTestRunner.
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	done      bool
}

// LoadTestScript parses a test script. Scripts are YAML; JSON documents are
// accepted as-is. Supported actions: click, drag, key, wait, screenshot.
func LoadTestScript(data []byte) (*TestRunner, error) {
	var script testScript
	if err := yaml.Unmarshal(data, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: no steps")
	}
	for i, st := range script.Steps {
		if !st.Action.valid() {
			return nil, fmt.Errorf("parse test script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

// SetTestRunner attaches runner to the context. The runner advances at the
// start of every frame, before injected input is applied. Pass nil to
// detach.
func (c *Context) SetTestRunner(runner *TestRunner) {
	c.runner = runner
}

// Done reports whether every step of the script has run.
func (r *TestRunner) Done() bool {
	return r.done
}

// step advances the runner by one frame. At most one step starts per
// frame, and none while injected input is still queued.
func (r *TestRunner) step(c *Context) {
	if r.done || c.PendingInjections() > 0 {
		return
	}
	switch {
	case r.waitCount > 0:
		r.waitCount--
	case r.cursor < len(r.steps):
		r.run(c, r.steps[r.cursor])
		r.cursor++
	}
	r.done = r.cursor == len(r.steps) && r.waitCount == 0 && c.PendingInjections() == 0
}

func (r *TestRunner) run(c *Context, st testStep) {
	switch st.Action {
	case actionScreenshot:
		c.Screenshot(st.Label)
	case actionClick:
		c.InjectClick(st.X, st.Y)
	case actionDrag:
		c.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
	case actionKey:
		c.InjectKey(st.Key)
	case actionWait:
		// The current frame counts as the first one waited.
		r.waitCount = max(st.Frames-1, 0)
	}
}
