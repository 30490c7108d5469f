package ecs

import (
	"slices"
	"testing"
	"time"

	"github.com/phanxgames/oilshape"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

func collect(world donburi.World) *[]oilshape.Event {
	var received []oilshape.Event
	EngineEventType.Subscribe(world, func(w donburi.World, e oilshape.Event) {
		received = append(received, e)
	})
	return &received
}

func TestDonburiStore_EmitEventIsQueued(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)
	received := collect(world)

	store.EmitEvent(oilshape.Event{Type: oilshape.EventLegFinished, Leg: "a->b", From: "a", To: "b"})
	if len(*received) != 0 {
		t.Fatalf("event delivered before ProcessEvents: %v", *received)
	}
	EngineEventType.ProcessEvents(world)

	if len(*received) != 1 {
		t.Fatalf("expected 1 event, got %d", len(*received))
	}
	if e := (*received)[0]; e.Leg != "a->b" || e.From != "a" || e.To != "b" {
		t.Errorf("event = %+v", e)
	}
}

func TestDonburiStore_SchedulerEventMix(t *testing.T) {
	world := donburi.NewWorld()
	received := collect(world)

	a := oilshape.CapturePreset("a", oilshape.NewScene())
	b := oilshape.CapturePreset("b", oilshape.NewScene())
	sched := oilshape.NewScheduler(oilshape.NewScene(), oilshape.NewMemoryPresets(a, b),
		oilshape.MorphConfig{LegDuration: time.Second})
	sched.SetEventSink(NewDonburiStore(world))
	sched.Start()

	sched.AddVariation(oilshape.NewVariationBuilder(1, nil), oilshape.UniformWeights(1))
	sched.Randomize(oilshape.NewRandomizer(1, nil), oilshape.RandomizeOptions{Include: oilshape.IncludeAll()})
	if err := sched.StartMorph([]string{a.ID, "gone", b.ID}); err != nil {
		t.Fatalf("StartMorph: %v", err)
	}
	sched.Tick(100 * time.Millisecond)
	sched.Tick(time.Second)
	sched.StopMorph()
	events.ProcessAllEvents(world)

	var got []oilshape.EventType
	for _, e := range *received {
		got = append(got, e.Type)
	}
	want := []oilshape.EventType{
		oilshape.EventLayerAdded,
		oilshape.EventSceneRandomized,
		oilshape.EventLegSkipped,
		oilshape.EventLegSkipped,
		oilshape.EventLegStarted,
		oilshape.EventLegFinished,
		oilshape.EventMorphStopped,
	}
	if !slices.Equal(got, want) {
		t.Fatalf("event types = %v, want %v", got, want)
	}

	leg := b.ID + "->" + a.ID
	if e := (*received)[4]; e.Leg != leg || e.From != b.ID || e.To != a.ID {
		t.Errorf("started = %+v, want leg %s", e, leg)
	}
	if e := (*received)[5]; e.Leg != leg {
		t.Errorf("finished leg = %q, want %s", e.Leg, leg)
	}
	if (*received)[0].Layers != 2 {
		t.Errorf("LayerAdded.Layers = %d, want 2", (*received)[0].Layers)
	}
}

func TestDonburiStore_MultipleSubscribers(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)

	var count1, count2 int
	EngineEventType.Subscribe(world, func(w donburi.World, e oilshape.Event) {
		count1++
	})
	EngineEventType.Subscribe(world, func(w donburi.World, e oilshape.Event) {
		count2++
	})

	store.EmitEvent(oilshape.Event{Type: oilshape.EventLayerAdded})
	events.ProcessAllEvents(world)

	if count1 != 1 || count2 != 1 {
		t.Errorf("expected both subscribers called once, got %d and %d", count1, count2)
	}
}
