package oilshape

import (
	"errors"
	"math"
	"time"

	"github.com/rs/zerolog"
	"github.com/tanema/gween/ease"
)

// ErrRouteTooShort is returned by Morph.Start when the route names fewer
// than two presets.
var ErrRouteTooShort = errors.New("oilshape: morph route needs at least two presets")

// MorphMode selects how two presets are blended.
type MorphMode uint8

const (
	// MorphTween interpolates numeric fields and colors layer by layer.
	MorphTween MorphMode = iota
	// MorphFade cross-fades the FROM stack out beneath the TO stack.
	MorphFade
)

// String returns "tween" or "fade".
func (m MorphMode) String() string {
	if m == MorphFade {
		return "fade"
	}
	return "tween"
}

// MarshalText implements encoding.TextMarshaler.
func (m MorphMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler for config parsing.
func (m *MorphMode) UnmarshalText(text []byte) error {
	switch string(text) {
	case "fade":
		*m = MorphFade
	case "tween", "":
		*m = MorphTween
	default:
		return errors.New("oilshape: unknown morph mode " + string(text))
	}
	return nil
}

// LoopMode selects what happens at the end of a morph route.
type LoopMode uint8

const (
	// LoopCircular wraps from the last preset back to the first.
	LoopCircular LoopMode = iota
	// LoopPingPong reverses direction at either end of the route.
	LoopPingPong
)

// String returns "loop" or "pingpong".
func (l LoopMode) String() string {
	if l == LoopPingPong {
		return "pingpong"
	}
	return "loop"
}

// MarshalText implements encoding.TextMarshaler.
func (l LoopMode) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler for config parsing.
func (l *LoopMode) UnmarshalText(text []byte) error {
	switch string(text) {
	case "pingpong":
		*l = LoopPingPong
	case "loop", "":
		*l = LoopCircular
	default:
		return errors.New("oilshape: unknown loop mode " + string(text))
	}
	return nil
}

// MorphConfig configures a Morph.
type MorphConfig struct {
	Mode        MorphMode
	Loop        LoopMode
	LegDuration time.Duration
	// Ease shapes each leg's progress. Nil means ease.Linear.
	Ease ease.TweenFunc
}

// Morph advances a scheduled interpolation between saved presets. It is idle
// until Start and returns to idle on Stop; stopping leaves the scene at its
// last computed value. Not safe for concurrent use; the Scheduler guards it.
type Morph struct {
	cfg     MorphConfig
	presets PresetSource
	sink    EventSink
	log     zerolog.Logger

	route   []string
	running bool
	from    int
	to      int
	forward bool
	start   time.Duration
	begun   bool // EventLegStarted sent for the current leg

	// Fade stack state, rebuilt once per leg.
	fadeKey   string
	fadeBaseA []float64
	fadeBaseB []float64
}

// NewMorph returns an idle morph engine reading presets from src.
func NewMorph(src PresetSource, cfg MorphConfig) *Morph {
	if cfg.Ease == nil {
		cfg.Ease = ease.Linear
	}
	return &Morph{cfg: cfg, presets: src, log: zerolog.Nop()}
}

// SetEventSink sets the optional event sink.
func (m *Morph) SetEventSink(sink EventSink) { m.sink = sink }

// SetLogger sets the logger used for leg transitions.
func (m *Morph) SetLogger(l zerolog.Logger) { m.log = l }

// Config returns a pointer to the morph configuration for live tuning.
func (m *Morph) Config() *MorphConfig { return &m.cfg }

// Start begins blending along route at time now. The first leg runs from
// route[0] to route[1].
func (m *Morph) Start(route []string, now time.Duration) error {
	if len(route) < 2 {
		return ErrRouteTooShort
	}
	m.route = append([]string(nil), route...)
	m.running = true
	m.from, m.to = 0, 1
	m.forward = true
	m.start = now
	m.begun = false
	m.fadeKey = ""
	return nil
}

// Stop halts the morph. Safe to call when already stopped.
func (m *Morph) Stop() {
	if !m.running {
		return
	}
	m.running = false
	m.fadeKey = ""
	m.emit(EventMorphStopped)
}

// Running reports whether a route is being blended.
func (m *Morph) Running() bool { return m.running }

// OwnsMotion reports whether the current mode writes positions, in which
// case motion integration must not run on the same tick.
func (m *Morph) OwnsMotion() bool {
	return m.running && m.cfg.Mode == MorphTween
}

// Leg returns the current FROM and TO preset ids.
func (m *Morph) Leg() (from, to string) {
	if len(m.route) < 2 {
		return "", ""
	}
	return m.route[m.from], m.route[m.to]
}

// LegKey returns "{fromId}->{toId}" for the current leg.
func (m *Morph) LegKey() string {
	from, to := m.Leg()
	return from + "->" + to
}

// Progress returns the linear leg progress at now, clamped to [0, 1].
func (m *Morph) Progress(now time.Duration) float64 {
	if m.cfg.LegDuration <= 0 {
		return 1
	}
	return clamp01(float64(now-m.start) / float64(m.cfg.LegDuration))
}

// Step computes the blended scene at time now. It returns s unchanged and
// false when idle. At t >= 1 the scene is snapped exactly to the TO preset
// before the next leg starts. Legs whose presets are missing are skipped.
// EventLegStarted is sent on the first Step that blends a leg, so skipped
// legs report only EventLegSkipped.
func (m *Morph) Step(now time.Duration, s Scene) (Scene, bool) {
	if !m.running {
		return s, false
	}
	for range m.route {
		fromID, toID := m.Leg()
		from, okFrom := m.presets.Lookup(fromID)
		to, okTo := m.presets.Lookup(toID)
		if !okFrom || !okTo {
			m.log.Debug().Str("leg", m.LegKey()).Msg("morph leg skipped: missing preset")
			m.emit(EventLegSkipped)
			m.advance(now)
			continue
		}

		if !m.begun {
			m.begun = true
			m.emit(EventLegStarted)
		}
		t := m.Progress(now)
		if t >= 1 {
			out := snapScene(s, to.Payload)
			m.log.Debug().Str("leg", m.LegKey()).Msg("morph leg finished")
			m.emit(EventLegFinished)
			m.advance(now)
			return out, true
		}

		e := m.eased(t)
		switch m.cfg.Mode {
		case MorphFade:
			return m.fadeScene(s, from.Payload, to.Payload, e), true
		default:
			return tweenScene(s, from.Payload, to.Payload, e), true
		}
	}
	return s, false
}

func (m *Morph) eased(t float64) float64 {
	return float64(m.cfg.Ease(float32(t), 0, 1, 1))
}

// advance moves to the next leg according to the loop mode.
func (m *Morph) advance(now time.Duration) {
	n := len(m.route)
	m.from = m.to
	switch m.cfg.Loop {
	case LoopPingPong:
		if m.forward && m.from == n-1 {
			m.forward = false
		} else if !m.forward && m.from == 0 {
			m.forward = true
		}
		if m.forward {
			m.to = m.from + 1
		} else {
			m.to = m.from - 1
		}
	default:
		m.to = (m.from + 1) % n
	}
	m.start = now
	m.begun = false
	m.fadeKey = ""
}

func (m *Morph) emit(t EventType) {
	if m.sink == nil {
		return
	}
	from, to := m.Leg()
	m.sink.EmitEvent(Event{Type: t, Leg: m.LegKey(), From: from, To: to})
}

// snapScene replaces the scene's layers and globals with exact copies of
// the target payload.
func snapScene(s Scene, to PresetPayload) Scene {
	out := s
	out.Layers = cloneLayers(to.Layers)
	out.BackgroundColor = to.BackgroundColor
	out.GlobalSpeed = to.GlobalSpeed
	if out.Selected >= len(out.Layers) {
		out.Selected = 0
	}
	return out
}

// tweenScene interpolates every layer and the scene globals. Layer lists of
// different lengths are reconciled with zero-opacity placeholders cloned
// from the layer on the other side.
func tweenScene(s Scene, from, to PresetPayload, t float64) Scene {
	out := s
	out.BackgroundColor = LerpHex(from.BackgroundColor, to.BackgroundColor, t)
	out.GlobalSpeed = lerp(from.GlobalSpeed, to.GlobalSpeed, t)

	n := max(len(from.Layers), len(to.Layers))
	out.Layers = make([]Layer, n)
	for i := range out.Layers {
		var a, b Layer
		switch {
		case i >= len(from.Layers):
			b = to.Layers[i]
			a = b.Clone()
			a.Opacity = 0
		case i >= len(to.Layers):
			a = from.Layers[i]
			b = a.Clone()
			b.Opacity = 0
		default:
			a, b = from.Layers[i], to.Layers[i]
		}
		out.Layers[i] = tweenLayer(a, b, t)
	}
	if out.Selected >= n {
		out.Selected = 0
	}
	return out
}

// tweenLayer blends numeric fields and matched colors. Discrete fields come
// from a until the halfway point and from b afterwards.
func tweenLayer(a, b Layer, t float64) Layer {
	base := a
	if t >= 0.5 {
		base = b
	}
	out := base.Clone()
	out.Opacity = lerp(a.Opacity, b.Opacity, t)
	out.Rotation = lerpDegrees(a.Rotation, b.Rotation, t)
	out.RadiusFactor = lerp(a.RadiusFactor, b.RadiusFactor, t)
	arx, ary := a.Radii()
	brx, bry := b.Radii()
	out.RadiusFactorX = lerp(arx, brx, t)
	out.RadiusFactorY = lerp(ary, bry, t)
	out.MovementSpeed = lerp(a.MovementSpeed, b.MovementSpeed, t)
	out.Position.X = lerp(a.Position.X, b.Position.X, t)
	out.Position.Y = lerp(a.Position.Y, b.Position.Y, t)
	out.Position.Scale = lerp(a.Position.Scale, b.Position.Scale, t)

	n := min(len(a.Colors), len(b.Colors), len(out.Colors))
	for i := 0; i < n; i++ {
		out.Colors[i] = LerpHex(a.Colors[i], b.Colors[i], t)
	}
	out.NumColors = len(out.Colors)
	out.RecomputeVelocity(1)
	return out
}

// lerpDegrees interpolates along the shorter arc.
func lerpDegrees(a, b, t float64) float64 {
	d := math.Mod(b-a, 360)
	if d > 180 {
		d -= 360
	} else if d < -180 {
		d += 360
	}
	return normalizeDegrees(a + d*t)
}

// fadeScene stacks the FROM layers (fading out) beneath the TO layers
// (fading in). The stack is built once per leg; later ticks only rewrite
// opacities so motion applied between ticks is preserved.
func (m *Morph) fadeScene(s Scene, from, to PresetPayload, t float64) Scene {
	key := m.LegKey()
	total := len(from.Layers) + len(to.Layers)
	out := s
	if key != m.fadeKey || len(s.Layers) != total {
		out.Layers = make([]Layer, 0, total)
		out.Layers = append(out.Layers, cloneLayers(from.Layers)...)
		out.Layers = append(out.Layers, cloneLayers(to.Layers)...)
		m.fadeBaseA = layerOpacities(from.Layers)
		m.fadeBaseB = layerOpacities(to.Layers)
		m.fadeKey = key
	} else {
		out.Layers = append([]Layer(nil), s.Layers...)
	}

	nA := len(m.fadeBaseA)
	for i, base := range m.fadeBaseA {
		out.Layers[i].Opacity = base * (1 - t)
	}
	for j, base := range m.fadeBaseB {
		out.Layers[nA+j].Opacity = base * t
	}
	out.BackgroundColor = LerpHex(from.BackgroundColor, to.BackgroundColor, t)
	out.GlobalSpeed = lerp(from.GlobalSpeed, to.GlobalSpeed, t)
	if out.Selected >= len(out.Layers) {
		out.Selected = 0
	}
	return out
}

func layerOpacities(layers []Layer) []float64 {
	out := make([]float64, len(layers))
	for i := range layers {
		out[i] = layers[i].Opacity
	}
	return out
}
