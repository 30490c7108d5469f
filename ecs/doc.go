// Package ecs provides ECS adapters for oilshape's engine event system.
//
// The primary adapter is [NewDonburiStore], which bridges oilshape engine
// events (morph legs started, finished or skipped, scene randomized, layer
// added) into a [Donburi] world as typed events. Subscribe to
// [EngineEventType] in your ECS systems to receive them.
//
// Usage:
//
//	store := ecs.NewDonburiStore(world)
//	scheduler.SetEventSink(store)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
