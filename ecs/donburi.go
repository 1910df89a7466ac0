package ecs

import (
	"github.com/phanxgames/sprig"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
	"github.com/yohamta/donburi/filter"
)

// InteractionEventType is the Donburi event type for sprig interaction
// events.
var InteractionEventType = events.NewEventType[sprig.InteractionEvent]()

// UIIdentity ties an entity to the sprig node identity it is drawn as.
var UIIdentity = donburi.NewComponentType[sprig.ID]()

var identityQuery = donburi.NewQuery(filter.Contains(UIIdentity))

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world. Events are
// queued on InteractionEventType and delivered by ProcessEvents.
func NewDonburiSink(world donburi.World) sprig.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitEvent(event sprig.InteractionEvent) {
	InteractionEventType.Publish(s.world, event)
}

// Bind tags the entity with a UI identity, adding the component if needed.
func Bind(world donburi.World, e donburi.Entity, id sprig.ID) {
	entry := world.Entry(e)
	if !entry.HasComponent(UIIdentity) {
		entry.AddComponent(UIIdentity)
	}
	UIIdentity.SetValue(entry, id)
}

// Lookup returns the first entity tagged with id.
func Lookup(world donburi.World, id sprig.ID) (*donburi.Entry, bool) {
	var found *donburi.Entry
	identityQuery.Each(world, func(entry *donburi.Entry) {
		if found == nil && UIIdentity.GetValue(entry) == id {
			found = entry
		}
	})
	return found, found != nil
}
