package oilshape

import (
	_ "embed"
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"
)

//go:embed palettes.yaml
var defaultPaletteData []byte

// Palette is a named list of colors. Entries may be hex strings or CSS
// color names; LoadPalettes normalizes them to "#rrggbb".
type Palette struct {
	Name   string   `yaml:"name"`
	Colors []string `yaml:"colors"`
}

type paletteFile struct {
	Palettes []Palette `yaml:"palettes"`
}

// LoadPalettes parses a YAML palette table of the form
//
//	palettes:
//	  - name: ember
//	    colors: ["#ff4d00", "gold", ...]
//
// Palettes without any valid color are dropped.
func LoadPalettes(data []byte) ([]Palette, error) {
	var f paletteFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("oilshape: parse palettes: %w", err)
	}
	out := make([]Palette, 0, len(f.Palettes))
	for _, p := range f.Palettes {
		colors := make([]string, 0, len(p.Colors))
		for _, c := range p.Colors {
			if _, ok := ParseColor(c); ok {
				colors = append(colors, NormalizeHex(c))
			}
		}
		if len(colors) == 0 {
			continue
		}
		out = append(out, Palette{Name: p.Name, Colors: colors})
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("oilshape: parse palettes: no usable palettes")
	}
	return out, nil
}

// DefaultPalettes returns the built-in palette table.
func DefaultPalettes() []Palette {
	p, err := LoadPalettes(defaultPaletteData)
	if err != nil {
		panic(err) // embedded data is validated by tests
	}
	return p
}

// pickPalette chooses a palette at random, avoiding one whose colors equal
// current when another palette exists.
func pickPalette(rng *SeededRandom, palettes []Palette, current []string) Palette {
	if len(palettes) == 0 {
		return Palette{Name: "default", Colors: []string{DefaultColor}}
	}
	i := rng.Intn(len(palettes))
	if len(palettes) > 1 && slices.Equal(palettes[i].Colors, current) {
		i = (i + 1 + rng.Intn(len(palettes)-1)) % len(palettes)
	}
	return palettes[i]
}

// sampleColors draws n colors from p, cycling through a random rotation so
// small palettes still yield distinct neighbours.
func sampleColors(rng *SeededRandom, p Palette, n int) []string {
	if n < 1 {
		n = 1
	}
	if len(p.Colors) == 0 {
		return []string{DefaultColor}
	}
	start := rng.Intn(len(p.Colors))
	out := make([]string, n)
	for i := range out {
		out[i] = p.Colors[(start+i)%len(p.Colors)]
	}
	return out
}
