// Package oilshape generates, animates and varies stacks of organic,
// noise-deformed shapes and composites them with [Ebitengine].
//
// A [Scene] is an ordered list of [Layer] values plus a few scene-wide
// globals. Every operation returns a new Scene; nothing mutates a scene
// that another goroutine may be reading.
//
// # Quick start
//
// [Scheduler] implements [ebiten.Game], so the smallest program is:
//
//	scene := oilshape.NewScene()
//	sched := oilshape.NewScheduler(scene, oilshape.NewMemoryPresets(), oilshape.MorphConfig{})
//	sched.Start()
//	if err := ebiten.RunGame(sched); err != nil {
//		log.Fatal(err)
//	}
//
// # Determinism
//
// All randomness flows through [SeededRandom], a Park-Miller generator.
// The same seed and the same inputs always produce the same layers, the
// same shapes and the same motion, so scenes can be replayed exactly.
//
// # Geometry
//
// [ShapeGenerator] turns a layer into canvas-space points. Procedural
// layers sample a three-frequency trigonometric noise field around the
// circle; layers with custom nodes are rotated, scaled and perturbed by
// per-vertex simplex noise. [ResampleNodes] grows or shrinks a node list
// to a new side count without distorting its outline.
//
// # Motion
//
// [Integrate] advances one layer by one tick according to its
// [MovementStyle]: still, bounce, drift, orbit or spin. Every style also
// oscillates the layer's z-scale between its bounds.
//
// # Variation and randomization
//
// [VariationBuilder] derives a new layer from an existing one. Five
// independent weights in [VariationWeights] control how far the shape,
// animation, colors, offsets and scale depart from the source. A zero
// shape weight copies the geometry exactly. [Randomizer] applies the same
// machinery to a whole scene.
//
// # Morphing
//
// [Morph] blends between saved [PresetSlot] values along a route, either
// tweening every numeric field ([MorphTween]) or cross-fading two layer
// stacks ([MorphFade]). Routes loop or ping-pong; each leg ends by snapping
// exactly onto its target preset.
//
// # Rendering
//
// [Compositor] converts a scene into [DrawInstruction] values and paints
// them with radial gradients and per-layer [BlendMode]s. Index 0 is always
// painted with [BlendNormal].
//
// # Collaborators
//
// [EncodeBundle] and [DecodeBundle] exchange scenes with storage,
// [ApplyImport] consumes imported contours, [Scene.SetParam] maps
// normalized controller values onto layer fields, and [EventSink]
// forwards engine events (see the ecs submodule for a [Donburi] bridge).
// The presetdir package keeps presets as YAML files and reloads them on
// change.
//
// [Ebitengine]: https://ebitengine.org
// [Donburi]: https://github.com/yohamta/donburi
package oilshape
