// Package sprig is an immediate-mode GUI kernel with a retained layout cache.
//
// The caller re-declares the whole UI every frame. Sprig keeps the geometry
// of every node between frames, detects structural changes with per-node
// hashes, and only recomputes layout when something changed. Interaction
// state (hover, active, focus, drag-and-drop) and animations are keyed by
// node identity and survive the per-frame rebuild without any bookkeeping by
// the caller.
//
// Rendering, window management and input polling are external. The kernel
// consumes input through [Context.SetPointerState], [Context.SetKeyState]
// and [Context.SetPointerWheel], and produces z-ordered draw command lists
// through a [CommandSink]. The sprig/ebitenhost package wires all of this to
// [Ebitengine].
//
// # Quick start
//
//	ui := sprig.New(sprig.DefaultConfig())
//	ui.ProcessFrame(sink, screen, 1, sprig.Vec2{X: 1, Y: 1}, true, func(c *sprig.Context) {
//		c.Node(sprig.Named("panel"), sprig.Layout{
//			Width:   sprig.Px(200),
//			Height:  sprig.Fit(),
//			Padding: sprig.Uniform(8),
//			Gap:     4,
//		}, func(n *sprig.Node) {
//			n.Draw().FillRect(n.Rect(), sprig.Color{R: 0.2, G: 0.2, B: 0.25, A: 1})
//			for i, label := range items {
//				c.Node(sprig.Idx(i), sprig.Layout{Width: sprig.Fill(1), Height: sprig.Px(24)}, func(row *sprig.Node) {
//					if row.Interact(sprig.InteractFocusable).Clicked {
//						selected = i
//					}
//					row.Draw().Text(row.Rect().Min(), label, 14, sprig.ColorWhite)
//				})
//			}
//		})
//	})
//
// # Frames
//
// [Context.ProcessFrame] runs three phases. Gather runs the build callback;
// nodes created there see the rects resolved for their identity in an
// earlier frame. Resolve runs only when the structural hashes, the screen or
// the UI scale changed. Commit swaps the current and previous hash and
// interactable tables. Interaction always tests against the previous
// frame's committed table.
//
// # Identity
//
// A node's [ID] is derived from its parent, the ID-stack scope and its
// [Key]. Use [Idx] for loop children and [Named] for named ones; scope
// reused subtrees with [Context.PushID] or [Context.WithID].
//
// [Ebitengine]: https://ebitengine.org
package sprig
