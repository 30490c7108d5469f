package oilshape

import "fmt"

// Scene is an ordered layer set plus the scene-wide globals. Layer order is
// paint order: index 0 is painted first and supplies global defaults.
//
// Scene operations return a new Scene instead of mutating the receiver's
// layers in place.
type Scene struct {
	Layers          []Layer `json:"layers" yaml:"layers"`
	BackgroundColor string  `json:"backgroundColor" yaml:"backgroundColor"`
	GlobalSpeed     float64 `json:"globalSpeedMultiplier" yaml:"globalSpeedMultiplier"`
	GlobalOpacity   float64 `json:"globalOpacity" yaml:"globalOpacity"`
	Selected        int     `json:"selectedLayer" yaml:"selectedLayer"`
}

// NewScene returns a scene holding a single default layer on a black
// background.
func NewScene() Scene {
	return Scene{
		Layers:          []Layer{DefaultLayer("Layer 1")},
		BackgroundColor: "#000000",
		GlobalSpeed:     1,
		GlobalOpacity:   1,
	}
}

// Clone returns a deep copy of the scene.
func (s Scene) Clone() Scene {
	out := s
	out.Layers = cloneLayers(s.Layers)
	return out
}

// Normalize corrects scene globals and every layer in place.
func (s *Scene) Normalize() {
	s.BackgroundColor = NormalizeHex(s.BackgroundColor)
	if !(s.GlobalSpeed >= 0) || !finite(s.GlobalSpeed) {
		s.GlobalSpeed = 1
	}
	if !(s.GlobalOpacity > 0) || !finite(s.GlobalOpacity) {
		s.GlobalOpacity = 1
	}
	s.GlobalOpacity = clamp01(s.GlobalOpacity)
	if len(s.Layers) == 0 {
		s.Layers = []Layer{DefaultLayer("Layer 1")}
	}
	for i := range s.Layers {
		s.Layers[i].Normalize()
	}
	if s.Selected < 0 || s.Selected >= len(s.Layers) {
		s.Selected = 0
	}
}

// LayerIndex returns the index of the first layer with the given name, or -1.
func (s Scene) LayerIndex(name string) int {
	for i := range s.Layers {
		if s.Layers[i].Name == name {
			return i
		}
	}
	return -1
}

// Resize returns a scene with exactly n layers (minimum 1). Shrinking drops
// layers from the end so index 0 keeps its identity. Growing calls grow with
// the previous last layer and the new index; a nil grow clones the last
// layer under a new name.
func (s Scene) Resize(n int, grow func(prev Layer, index int) Layer) Scene {
	if n < 1 {
		n = 1
	}
	out := s.Clone()
	if len(out.Layers) == 0 {
		out.Layers = []Layer{DefaultLayer("Layer 1")}
	}
	if n <= len(out.Layers) {
		out.Layers = out.Layers[:n]
	} else {
		for i := len(out.Layers); i < n; i++ {
			prev := out.Layers[i-1]
			var next Layer
			if grow != nil {
				next = grow(prev, i)
			} else {
				next = prev.Clone()
				next.Name = layerName(i)
			}
			out.Layers = append(out.Layers, next)
		}
	}
	if out.Selected >= len(out.Layers) {
		out.Selected = len(out.Layers) - 1
	}
	return out
}

func cloneLayers(layers []Layer) []Layer {
	if layers == nil {
		return nil
	}
	out := make([]Layer, len(layers))
	for i := range layers {
		out[i] = layers[i].Clone()
	}
	return out
}

func layerName(index int) string {
	return fmt.Sprintf("Layer %d", index+1)
}
