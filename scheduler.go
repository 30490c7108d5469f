package oilshape

import (
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog"
)

// defaultTPS is the nominal tick rate motion speeds are authored against.
const defaultTPS = 60

// Scheduler owns the live Scene and advances it once per tick: the morph
// engine runs first, then the motion integrator. It implements ebiten.Game
// so it can be handed straight to ebiten.RunGame.
//
// All methods are safe for concurrent use. Discrete triggers (variation,
// randomization, control input) go through Apply so they never interleave
// with a tick.
type Scheduler struct {
	mu sync.Mutex

	scene   Scene
	morph   *Morph
	comp    *Compositor
	running bool

	elapsed  time.Duration
	animTime float64
	tps      int
	overscan float64

	// Width and Height fix the logical screen size returned by Layout. Zero
	// uses the outside size.
	Width  int
	Height int

	script *Script
	sink   EventSink
	log    zerolog.Logger
}

// NewScheduler returns a stopped scheduler for scene. presets resolves the
// ids of morph routes.
func NewScheduler(scene Scene, presets PresetSource, cfg MorphConfig) *Scheduler {
	scene = scene.Clone()
	scene.Normalize()
	return &Scheduler{
		scene: scene,
		morph: NewMorph(presets, cfg),
		comp:  NewCompositor(),
		tps:   defaultTPS,
		log:   zerolog.Nop(),
	}
}

// SetLogger sets the logger for the scheduler and everything it owns.
func (s *Scheduler) SetLogger(l zerolog.Logger) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.log = l
	s.morph.SetLogger(l)
	s.comp.SetLogger(l)
}

// SetEventSink sets the optional event sink for morph and scene events.
func (s *Scheduler) SetEventSink(sink EventSink) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sink = sink
	s.morph.SetEventSink(sink)
}

// SetTPS sets the nominal tick rate that one motion frame corresponds to.
func (s *Scheduler) SetTPS(tps int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if tps > 0 {
		s.tps = tps
	}
}

// SetOverscan sets the drift wrap band.
func (s *Scheduler) SetOverscan(band float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.overscan = band
}

// Compositor returns the compositor used by Draw.
func (s *Scheduler) Compositor() *Compositor { return s.comp }

// Start resumes ticking. Calling Start on a running scheduler does nothing.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}
	s.running = true
	s.log.Debug().Int("layers", len(s.scene.Layers)).Msg("scheduler started")
}

// Stop pauses ticking and leaves the scene at its current state. Calling
// Stop on a stopped scheduler does nothing.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return
	}
	s.running = false
	s.log.Debug().Msg("scheduler stopped")
}

// Running reports whether the scheduler is ticking.
func (s *Scheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// Elapsed returns the scheduler clock: the sum of every tick's dt.
func (s *Scheduler) Elapsed() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.elapsed
}

// Scene returns a deep copy of the current scene.
func (s *Scheduler) Scene() Scene {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scene.Clone()
}

// SetScene replaces the current scene.
func (s *Scheduler) SetScene(scene Scene) {
	scene = scene.Clone()
	scene.Normalize()
	s.mu.Lock()
	s.scene = scene
	s.mu.Unlock()
}

// Apply replaces the scene with fn(scene) between ticks.
func (s *Scheduler) Apply(fn func(Scene) Scene) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scene = fn(s.scene.Clone())
}

// Randomize replaces the scene with a randomized one.
func (s *Scheduler) Randomize(r *Randomizer, opts RandomizeOptions) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scene = r.Randomize(s.scene, opts)
	s.log.Debug().Int("layers", len(s.scene.Layers)).Msg("scene randomized")
	s.emit(Event{Type: EventSceneRandomized, Layers: len(s.scene.Layers)})
}

// AddVariation appends a layer derived from the last layer with weights w
// and selects it.
func (s *Scheduler) AddVariation(b *VariationBuilder, w VariationWeights) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(s.scene.Layers)
	s.scene = s.scene.Resize(n+1, func(prev Layer, index int) Layer {
		return b.Build(prev, index, w)
	})
	s.scene.Selected = n
	s.emit(Event{Type: EventLayerAdded, Layers: n + 1})
}

// StartMorph begins morphing along route from the current clock.
func (s *Scheduler) StartMorph(route []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.morph.Start(route, s.elapsed)
}

// StopMorph halts any running morph, leaving the scene where it is.
func (s *Scheduler) StopMorph() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.morph.Stop()
}

// Morphing reports whether a morph route is running.
func (s *Scheduler) Morphing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.morph.Running()
}

// Tick advances the scene by dt. In tween mode the morph owns the whole
// scene and motion is skipped; in fade mode the morph writes opacities
// and motion runs afterwards. A stopped scheduler ignores ticks.
func (s *Scheduler) Tick(dt time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running || dt < 0 {
		return
	}
	s.elapsed += dt
	s.animTime += dt.Seconds() * s.scene.GlobalSpeed

	owns := s.morph.OwnsMotion()
	scene, morphed := s.morph.Step(s.elapsed, s.scene)
	if !(morphed && owns) {
		scene = IntegrateScene(scene, MotionEnv{
			Frames:   dt.Seconds() * float64(s.tps),
			Overscan: s.overscan,
		})
	}
	s.scene = scene
}

// Update implements ebiten.Game.
func (s *Scheduler) Update() error {
	s.mu.Lock()
	script := s.script
	s.mu.Unlock()
	if script != nil {
		script.step(s)
	}

	s.mu.Lock()
	fallback := s.tps
	s.mu.Unlock()
	dt := tickDuration(ebiten.TPS(), fallback)
	s.Tick(dt)
	s.mu.Lock()
	layers := len(s.scene.Layers)
	s.mu.Unlock()
	s.comp.UpdateStats(dt.Seconds(), layers)
	return nil
}

// Draw implements ebiten.Game.
func (s *Scheduler) Draw(screen *ebiten.Image) {
	s.mu.Lock()
	scene := s.scene
	t := s.animTime
	s.mu.Unlock()
	s.comp.Draw(screen, scene, t)
}

// Layout implements ebiten.Game.
func (s *Scheduler) Layout(outsideWidth, outsideHeight int) (int, int) {
	if s.Width > 0 && s.Height > 0 {
		return s.Width, s.Height
	}
	return outsideWidth, outsideHeight
}

// tickDuration is the time one Update covers at tps. ebiten reports
// SyncWithFPS as a negative TPS; the nominal rate is used then.
func tickDuration(tps, fallback int) time.Duration {
	if tps <= 0 {
		tps = fallback
	}
	if tps <= 0 {
		tps = defaultTPS
	}
	return time.Second / time.Duration(tps)
}

func (s *Scheduler) emit(e Event) {
	if s.sink != nil {
		s.sink.EmitEvent(e)
	}
}
