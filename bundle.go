package oilshape

import (
	"encoding/json"
	"fmt"
)

// BundleVersion is written into every encoded bundle.
const BundleVersion = 1

// AppState is the non-scene session state saved alongside the parameters.
type AppState struct {
	Version    int       `json:"version"`
	Selected   int       `json:"selectedLayer"`
	MorphRoute []string  `json:"morphRoute,omitempty"`
	MorphMode  MorphMode `json:"morphMode"`
	LoopMode   LoopMode  `json:"loopMode"`
}

// Bundle is the serializable {parameters, appState} pair exchanged with
// persistence. The engine never touches storage itself.
type Bundle struct {
	Parameters Scene    `json:"parameters"`
	AppState   AppState `json:"appState"`
}

// NewBundle captures s with the given morph settings.
func NewBundle(s Scene, route []string, cfg MorphConfig) Bundle {
	return Bundle{
		Parameters: s.Clone(),
		AppState: AppState{
			Version:    BundleVersion,
			Selected:   s.Selected,
			MorphRoute: append([]string(nil), route...),
			MorphMode:  cfg.Mode,
			LoopMode:   cfg.Loop,
		},
	}
}

// EncodeBundle serializes b as indented JSON.
func EncodeBundle(b Bundle) ([]byte, error) {
	if b.AppState.Version == 0 {
		b.AppState.Version = BundleVersion
	}
	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("oilshape: encode bundle: %w", err)
	}
	return data, nil
}

// DecodeBundle parses a bundle and normalizes the scene it carries, so
// hand-edited or older files always yield a drawable scene.
func DecodeBundle(data []byte) (Bundle, error) {
	var b Bundle
	if err := json.Unmarshal(data, &b); err != nil {
		return Bundle{}, fmt.Errorf("oilshape: decode bundle: %w", err)
	}
	if b.AppState.Version > BundleVersion {
		return Bundle{}, fmt.Errorf("oilshape: decode bundle: unsupported version %d", b.AppState.Version)
	}
	b.Parameters.Selected = b.AppState.Selected
	b.Parameters.Normalize()
	b.AppState.Selected = b.Parameters.Selected
	return b, nil
}
