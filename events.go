package oilshape

// EventSink is the interface for optional event forwarding. When set on a
// Scheduler, morph and randomization events are delivered to it.
type EventSink interface {
	EmitEvent(event Event)
}

// EventType identifies a kind of engine event.
type EventType uint8

const (
	EventLegStarted      EventType = iota // a morph leg began blending
	EventLegFinished                      // a morph leg reached t=1 and snapped
	EventLegSkipped                       // a morph leg referenced a missing preset
	EventMorphStopped                     // the morph engine returned to idle
	EventSceneRandomized                  // a randomization replaced the scene
	EventLayerAdded                       // a variation appended a layer
)

// Event carries engine event data.
type Event struct {
	Type EventType
	// Leg is the "{fromId}->{toId}" key for morph events.
	Leg    string
	From   string
	To     string
	Layers int
}

// EventSinkFunc adapts a function to EventSink.
type EventSinkFunc func(Event)

// EmitEvent calls f(event).
func (f EventSinkFunc) EmitEvent(event Event) {
	f(event)
}
