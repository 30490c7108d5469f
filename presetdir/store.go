// Package presetdir keeps oilshape presets as YAML files in a directory and
// reloads them when the files change.
package presetdir

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/phanxgames/oilshape"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// Store is a directory of preset files. It satisfies oilshape.PresetSource
// and is safe for concurrent use.
type Store struct {
	dir string
	log zerolog.Logger

	mu    sync.RWMutex
	slots map[string]oilshape.PresetSlot
	paths map[string]string
}

// Open creates dir if needed and loads every preset in it.
func Open(dir string, log zerolog.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("presetdir: open %s: %w", dir, err)
	}
	s := &Store{
		dir:   dir,
		log:   log,
		slots: make(map[string]oilshape.PresetSlot),
		paths: make(map[string]string),
	}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Dir returns the directory backing the store.
func (s *Store) Dir() string { return s.dir }

// Reload replaces the in-memory presets with the directory contents. Files
// that fail to parse are logged and skipped. A preset without an id gets
// one derived from its file name so it stays stable across reloads.
func (s *Store) Reload() error {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return fmt.Errorf("presetdir: reload: %w", err)
	}
	slots := make(map[string]oilshape.PresetSlot)
	paths := make(map[string]string)
	for _, e := range entries {
		if e.IsDir() || !isPresetFile(e.Name()) {
			continue
		}
		path := filepath.Join(s.dir, e.Name())
		slot, err := readSlot(path)
		if err != nil {
			s.log.Warn().Err(err).Str("path", path).Msg("presetdir: skipping preset")
			continue
		}
		if _, dup := slots[slot.ID]; dup {
			s.log.Warn().Str("path", path).Str("id", slot.ID).Msg("presetdir: duplicate preset id")
			continue
		}
		slots[slot.ID] = slot
		paths[slot.ID] = path
	}

	s.mu.Lock()
	s.slots, s.paths = slots, paths
	s.mu.Unlock()
	s.log.Debug().Int("presets", len(slots)).Str("dir", s.dir).Msg("presetdir: reloaded")
	return nil
}

func readSlot(path string) (oilshape.PresetSlot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return oilshape.PresetSlot{}, err
	}
	var slot oilshape.PresetSlot
	if err := yaml.Unmarshal(data, &slot); err != nil {
		return oilshape.PresetSlot{}, err
	}
	if len(slot.Payload.Layers) == 0 {
		return oilshape.PresetSlot{}, errors.New("preset has no layers")
	}
	if slot.ID == "" {
		slot.ID = uuid.NewSHA1(uuid.NameSpaceURL, []byte(filepath.Base(path))).String()
	}
	if slot.Name == "" {
		slot.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	slot.Normalize()
	return slot, nil
}

// Lookup returns a deep copy of the preset with the given id.
func (s *Store) Lookup(id string) (oilshape.PresetSlot, bool) {
	s.mu.RLock()
	slot, ok := s.slots[id]
	s.mu.RUnlock()
	if !ok {
		return oilshape.PresetSlot{}, false
	}
	return oilshape.PresetSlot{ID: slot.ID, Name: slot.Name, Payload: oilshape.PresetPayload{
		Layers:          slot.Scene().Layers,
		BackgroundColor: slot.Payload.BackgroundColor,
		GlobalSpeed:     slot.Payload.GlobalSpeed,
	}}, true
}

// Slots returns every preset ordered by name, then id.
func (s *Store) Slots() []oilshape.PresetSlot {
	s.mu.RLock()
	out := make([]oilshape.PresetSlot, 0, len(s.slots))
	for _, slot := range s.slots {
		out = append(out, slot)
	}
	s.mu.RUnlock()
	slices.SortFunc(out, func(a, b oilshape.PresetSlot) int {
		if c := strings.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	return out
}

// IDs returns the ids of Slots in the same order.
func (s *Store) IDs() []string {
	slots := s.Slots()
	ids := make([]string, len(slots))
	for i, slot := range slots {
		ids[i] = slot.ID
	}
	return ids
}

// Save writes slot to "<id>.yaml" (or the file it was loaded from) and
// adds it to the store. A slot without an id gets a new random one.
func (s *Store) Save(slot oilshape.PresetSlot) (oilshape.PresetSlot, error) {
	if slot.ID == "" {
		slot.ID = uuid.NewString()
	}
	slot.Normalize()
	data, err := yaml.Marshal(slot)
	if err != nil {
		return oilshape.PresetSlot{}, fmt.Errorf("presetdir: save %s: %w", slot.ID, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	path, ok := s.paths[slot.ID]
	if !ok {
		path = filepath.Join(s.dir, slot.ID+".yaml")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return oilshape.PresetSlot{}, fmt.Errorf("presetdir: save %s: %w", slot.ID, err)
	}
	s.slots[slot.ID] = slot
	s.paths[slot.ID] = path
	return slot, nil
}

// Delete removes the preset and its file. Deleting an unknown id is not an
// error.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	path, ok := s.paths[id]
	if !ok {
		return nil
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("presetdir: delete %s: %w", id, err)
	}
	delete(s.slots, id)
	delete(s.paths, id)
	return nil
}

// Watch reloads the store whenever a preset file changes, until ctx is
// done. onReload, when non-nil, is called after each successful reload.
func (s *Store) Watch(ctx context.Context, onReload func()) error {
	w, err := NewWatcher(s.dir)
	if err != nil {
		return fmt.Errorf("presetdir: watch %s: %w", s.dir, err)
	}
	defer w.Close()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case name, ok := <-w.Events:
			if !ok {
				return nil
			}
			s.log.Debug().Str("file", name).Msg("presetdir: change")
			if err := s.Reload(); err != nil {
				s.log.Error().Err(err).Msg("presetdir: reload failed")
				continue
			}
			if onReload != nil {
				onReload()
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			s.log.Warn().Err(err).Msg("presetdir: watcher error")
		}
	}
}
