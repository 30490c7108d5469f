package oilshape

import (
	"encoding/json"
	"fmt"
)

// scriptStep represents a single action in a scene script.
type scriptStep struct {
	Action string   `json:"action"`
	Label  string   `json:"label,omitempty"`
	Path   string   `json:"path,omitempty"`
	Value  float64  `json:"value,omitempty"`
	Weight float64  `json:"weight,omitempty"`
	Route  []string `json:"route,omitempty"`
	Frames int      `json:"frames,omitempty"`
}

// scriptFile is the top-level JSON structure for a scene script.
type scriptFile struct {
	Seed  int64        `json:"seed"`
	Steps []scriptStep `json:"steps"`
}

// Script sequences control changes, randomizations, variations, morphs and
// screenshots across frames for automated visual checks and recorded
// performances. Attach to a Scheduler via SetScript.
//
// Supported actions: "screenshot" (label), "wait" (frames), "param" (path,
// value), "randomize" (label "classic" selects classic mode), "vary"
// (weight), "morph" (route) and "stopMorph".
type Script struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool

	randomizer *Randomizer
	builder    *VariationBuilder
}

// LoadScript parses a JSON scene script and returns a Script ready to be
// attached to a Scheduler via SetScript. Randomization and variation steps
// draw from the script's seed.
func LoadScript(jsonData []byte, palettes []Palette) (*Script, error) {
	var f scriptFile
	if err := json.Unmarshal(jsonData, &f); err != nil {
		return nil, fmt.Errorf("oilshape: parse script: %w", err)
	}
	if len(f.Steps) == 0 {
		return nil, fmt.Errorf("oilshape: parse script: no steps")
	}
	return &Script{
		steps:      f.Steps,
		randomizer: NewRandomizer(f.Seed, palettes),
		builder:    NewVariationBuilder(f.Seed+1, palettes),
	}, nil
}

// SetScript attaches a Script to the scheduler. The script's step method
// is called from Scheduler.Update before each tick.
func (s *Scheduler) SetScript(sc *Script) {
	s.mu.Lock()
	s.script = sc
	s.mu.Unlock()
}

// Done reports whether all steps in the script have been executed.
func (r *Script) Done() bool {
	return r.done
}

// step advances the script by one frame.
func (r *Script) step(s *Scheduler) {
	if r.done {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "screenshot":
		s.comp.Screenshot(st.Label)
	case "param":
		var err error
		s.Apply(func(scene Scene) Scene {
			next, perr := scene.SetParam(st.Path, st.Value)
			err = perr
			return next
		})
		if err != nil {
			s.log.Warn().Err(err).Str("path", st.Path).Msg("script param")
		}
	case "randomize":
		mode := RandomizeWeighted
		if st.Label == "classic" {
			mode = RandomizeClassic
		}
		s.Randomize(r.randomizer, RandomizeOptions{Mode: mode, Include: IncludeAll()})
	case "vary":
		s.AddVariation(r.builder, UniformWeights(st.Weight))
	case "morph":
		if err := s.StartMorph(st.Route); err != nil {
			s.log.Warn().Err(err).Msg("script morph")
		}
	case "stopMorph":
		s.StopMorph()
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	default:
		s.log.Warn().Str("action", st.Action).Msg("script: unknown action")
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 {
		r.done = true
	}
}
