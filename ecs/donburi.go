// Package ecs provides ECS adapters for oilshape.
package ecs

import (
	"github.com/phanxgames/oilshape"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// EngineEventType is the Donburi event type for oilshape engine events.
// Subscribe to this in your ECS systems to receive morph and scene events.
var EngineEventType = events.NewEventType[oilshape.Event]()

type donburiStore struct {
	world donburi.World
}

// NewDonburiStore creates an EventSink backed by a Donburi world.
// Engine events are published to EngineEventType and can be consumed with
// events.Subscribe and ProcessEvents.
func NewDonburiStore(world donburi.World) oilshape.EventSink {
	return &donburiStore{world: world}
}

func (s *donburiStore) EmitEvent(event oilshape.Event) {
	EngineEventType.Publish(s.world, event)
}
