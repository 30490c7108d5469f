package oilshape

import (
	"slices"
	"sync"

	"github.com/google/uuid"
)

// PresetPayload is the saved portion of a scene.
type PresetPayload struct {
	Layers          []Layer `json:"layers" yaml:"layers"`
	BackgroundColor string  `json:"backgroundColor" yaml:"backgroundColor"`
	GlobalSpeed     float64 `json:"globalSpeedMultiplier" yaml:"globalSpeedMultiplier"`
}

// PresetSlot is an immutable snapshot captured at save time. The morph
// engine only ever reads cloned copies of its layers.
type PresetSlot struct {
	ID      string        `json:"id" yaml:"id"`
	Name    string        `json:"name" yaml:"name"`
	Payload PresetPayload `json:"payload" yaml:"payload"`
}

// PresetSource resolves preset ids for the morph engine.
type PresetSource interface {
	Lookup(id string) (PresetSlot, bool)
}

// CapturePreset snapshots s under a fresh random id.
func CapturePreset(name string, s Scene) PresetSlot {
	s = s.Clone()
	s.Normalize()
	return PresetSlot{
		ID:   uuid.NewString(),
		Name: name,
		Payload: PresetPayload{
			Layers:          s.Layers,
			BackgroundColor: s.BackgroundColor,
			GlobalSpeed:     s.GlobalSpeed,
		},
	}
}

// Normalize corrects the payload in place so it can be snapped to exactly.
func (p *PresetSlot) Normalize() {
	s := p.Scene()
	s.Normalize()
	p.Payload.Layers = s.Layers
	p.Payload.BackgroundColor = s.BackgroundColor
	p.Payload.GlobalSpeed = s.GlobalSpeed
}

// Scene returns a deep copy of the preset as a scene.
func (p PresetSlot) Scene() Scene {
	return Scene{
		Layers:          cloneLayers(p.Payload.Layers),
		BackgroundColor: p.Payload.BackgroundColor,
		GlobalSpeed:     p.Payload.GlobalSpeed,
		GlobalOpacity:   1,
	}
}

// MemoryPresets is an in-memory PresetSource safe for concurrent use.
type MemoryPresets struct {
	mu    sync.RWMutex
	slots map[string]PresetSlot
}

// NewMemoryPresets returns a store holding the given slots.
func NewMemoryPresets(slots ...PresetSlot) *MemoryPresets {
	m := &MemoryPresets{slots: make(map[string]PresetSlot, len(slots))}
	for _, s := range slots {
		m.Put(s)
	}
	return m
}

// Put stores a deep copy of slot, replacing any slot with the same id.
func (m *MemoryPresets) Put(slot PresetSlot) {
	slot.Payload.Layers = cloneLayers(slot.Payload.Layers)
	m.mu.Lock()
	m.slots[slot.ID] = slot
	m.mu.Unlock()
}

// Delete removes the slot with the given id.
func (m *MemoryPresets) Delete(id string) {
	m.mu.Lock()
	delete(m.slots, id)
	m.mu.Unlock()
}

// Lookup returns a deep copy of the slot with the given id.
func (m *MemoryPresets) Lookup(id string) (PresetSlot, bool) {
	m.mu.RLock()
	slot, ok := m.slots[id]
	m.mu.RUnlock()
	if ok {
		slot.Payload.Layers = cloneLayers(slot.Payload.Layers)
	}
	return slot, ok
}

// IDs returns every stored id in sorted order.
func (m *MemoryPresets) IDs() []string {
	m.mu.RLock()
	ids := make([]string, 0, len(m.slots))
	for id := range m.slots {
		ids = append(ids, id)
	}
	m.mu.RUnlock()
	slices.Sort(ids)
	return ids
}
