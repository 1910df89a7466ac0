// Package ecs bridges sprig interaction events into a [Donburi] world.
//
// [NewDonburiSink] republishes every hover, click, focus and drag event as a
// typed Donburi event. Subscribe to [InteractionEventType] in your ECS
// systems to receive them, and tag entities with [UIIdentity] to map an
// event back to the entity that owns the widget.
//
// Usage:
//
//	ui.SetEventSink(ecs.NewDonburiSink(world))
//
//	ecs.InteractionEventType.Subscribe(world, func(w donburi.World, ev sprig.InteractionEvent) {
//		if entry, ok := ecs.Lookup(w, ev.ID); ok && ev.Type == sprig.EventClick {
//			// ...
//		}
//	})
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
