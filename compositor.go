package oilshape

import (
	"fmt"
	"image/color"
	"math"
	"strings"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/rs/zerolog"
)

// ColorStop is one stop of a layer's radial gradient. Offset is the
// normalized distance from the shape center (0) to its rim (1).
type ColorStop struct {
	Offset float64
	Color  Color
}

// DrawInstruction is everything needed to paint one layer. It is produced
// by Compositor.Instructions and consumed by Compositor.Draw; other render
// backends may consume it directly.
type DrawInstruction struct {
	Layer      string
	Points     []Vec2
	Controls   []Vec2
	Subpaths   [][]Vec2
	IsEllipse  bool
	Center     Vec2
	Radii      Vec2
	ColorStops []ColorStop
	BlendMode  BlendMode
	Opacity    float64
	ImageKey   string
}

// Compositor turns a Scene into draw instructions and paints them with
// ebiten. Gradient stops are cached per color list; the cache and the
// shape generator are invalidated whenever the canvas size changes.
// Only Screenshot is safe to call from other goroutines; everything else
// belongs to the game loop.
type Compositor struct {
	// ScreenshotDir is the directory where screenshots are saved.
	// Defaults to "screenshots".
	ScreenshotDir string
	// ShowStats draws an FPS/TPS/layer overlay in the top-left corner.
	ShowStats bool

	gen    *ShapeGenerator
	stops  map[string][]ColorStop
	width  int
	height int
	images map[string]*ebiten.Image
	white  *ebiten.Image
	log    zerolog.Logger

	verts []ebiten.Vertex
	inds  []uint16

	statsImg   *ebiten.Image
	statsTimer float64
	statsText  string

	shotMu          sync.Mutex
	screenshotQueue []string
}

// NewCompositor returns a compositor with empty caches.
func NewCompositor() *Compositor {
	return &Compositor{
		ScreenshotDir: "screenshots",
		gen:           NewShapeGenerator(),
		stops:         make(map[string][]ColorStop),
		images:        make(map[string]*ebiten.Image),
		log:           zerolog.Nop(),
	}
}

// SetLogger sets the logger used for draw and screenshot failures.
func (c *Compositor) SetLogger(l zerolog.Logger) { c.log = l }

// RegisterImage makes img available to image layers with the given key.
// A nil img removes the key.
func (c *Compositor) RegisterImage(key string, img *ebiten.Image) {
	if img == nil {
		delete(c.images, key)
		return
	}
	c.images[key] = img
}

// Resize records the canvas size. A change drops every cached gradient and
// all cached noise.
func (c *Compositor) Resize(w, h int) {
	if w == c.width && h == c.height {
		return
	}
	c.width, c.height = w, h
	clear(c.stops)
	c.gen.Reset()
}

// Instructions returns one instruction per drawable layer of s at time t on
// a w×h canvas, in paint order. Layers with an empty shape or zero opacity
// are skipped. The bottom layer is always composited with BlendNormal.
func (c *Compositor) Instructions(s Scene, t float64, w, h int) []DrawInstruction {
	c.Resize(w, h)
	globalOpacity := clamp01(orZero(s.GlobalOpacity))
	out := make([]DrawInstruction, 0, len(s.Layers))
	for i := range s.Layers {
		l := &s.Layers[i]
		opacity := clamp01(orZero(l.Opacity)) * globalOpacity
		if opacity <= 0 {
			continue
		}
		shape := c.gen.Generate(*l, t, float64(w), float64(h))
		if shape.Empty() {
			continue
		}
		blend := l.BlendMode
		if i == 0 {
			blend = BlendNormal
		}
		ins := DrawInstruction{
			Layer:      l.Name,
			Points:     shape.Points,
			Controls:   shape.Controls,
			Subpaths:   shape.Subpaths,
			IsEllipse:  shape.IsEllipse,
			Center:     shape.Center,
			Radii:      shape.Radii,
			ColorStops: c.colorStops(l.Colors),
			BlendMode:  blend,
			Opacity:    opacity,
		}
		if l.Type == LayerImage {
			ins.ImageKey = l.ImageKey
		}
		out = append(out, ins)
	}
	return out
}

// colorStops returns evenly spaced gradient stops for colors. A single
// color yields a flat two-stop gradient.
func (c *Compositor) colorStops(colors []string) []ColorStop {
	colors = ensureColors(colors)
	key := strings.Join(colors, ",")
	if stops, ok := c.stops[key]; ok {
		return stops
	}
	var stops []ColorStop
	if len(colors) == 1 {
		col := ColorFromHex(colors[0], 1)
		stops = []ColorStop{{Offset: 0, Color: col}, {Offset: 1, Color: col}}
	} else {
		stops = make([]ColorStop, len(colors))
		for i, hex := range colors {
			stops[i] = ColorStop{
				Offset: float64(i) / float64(len(colors)-1),
				Color:  ColorFromHex(hex, 1),
			}
		}
	}
	c.stops[key] = stops
	return stops
}

// sampleStops returns the gradient color at offset d.
func sampleStops(stops []ColorStop, d float64) Color {
	if len(stops) == 0 {
		return ColorWhite
	}
	d = clamp01(d)
	if d <= stops[0].Offset {
		return stops[0].Color
	}
	for i := 1; i < len(stops); i++ {
		a, b := stops[i-1], stops[i]
		if d <= b.Offset {
			span := b.Offset - a.Offset
			if span <= 0 {
				return b.Color
			}
			return lerpColor(a.Color, b.Color, (d-a.Offset)/span)
		}
	}
	return stops[len(stops)-1].Color
}

// Draw paints s onto screen: background, every layer instruction, the
// optional stats overlay and then any queued screenshots.
func (c *Compositor) Draw(screen *ebiten.Image, s Scene, t float64) {
	b := screen.Bounds()
	screen.Fill(nrgba(ColorFromHex(s.BackgroundColor, 1)))
	for _, ins := range c.Instructions(s, t, b.Dx(), b.Dy()) {
		if ins.ImageKey != "" {
			c.drawImage(screen, ins)
			continue
		}
		c.drawShape(screen, ins)
	}
	if c.ShowStats {
		c.drawStats(screen, len(s.Layers))
	}
	c.flushScreenshots(screen)
}

// drawShape fills the instruction's outline and tints each tessellated
// vertex by its radial distance through the gradient stops.
func (c *Compositor) drawShape(screen *ebiten.Image, ins DrawInstruction) {
	var path vector.Path
	appendContour(&path, ins.Points, ins.Controls)
	for _, sp := range ins.Subpaths {
		appendContour(&path, sp, nil)
	}

	c.verts, c.inds = path.AppendVerticesAndIndicesForFilling(c.verts[:0], c.inds[:0])
	if len(c.inds) == 0 {
		return
	}
	rim := math.Max(ins.Radii.X, ins.Radii.Y)
	alpha := float32(ins.Opacity)
	for i := range c.verts {
		v := &c.verts[i]
		d := 0.0
		if rim > 0 {
			d = math.Hypot(float64(v.DstX)-ins.Center.X, float64(v.DstY)-ins.Center.Y) / rim
		}
		col := sampleStops(ins.ColorStops, d)
		v.SrcX, v.SrcY = 0.5, 0.5
		v.ColorR = float32(col.R) * alpha
		v.ColorG = float32(col.G) * alpha
		v.ColorB = float32(col.B) * alpha
		v.ColorA = alpha
	}

	op := &ebiten.DrawTrianglesOptions{
		Blend:     ins.BlendMode.EbitenBlend(),
		AntiAlias: true,
	}
	if len(ins.Subpaths) > 0 {
		op.FillRule = ebiten.FillRuleEvenOdd
	} else {
		op.FillRule = ebiten.FillRuleNonZero
	}
	screen.DrawTriangles(c.verts, c.inds, c.whitePixel(), op)
}

// appendContour adds one closed contour. A nil controls slice draws
// straight edges; otherwise controls[i] bends the edge pts[i]→pts[i+1].
func appendContour(path *vector.Path, pts, controls []Vec2) {
	if len(pts) < 3 {
		return
	}
	path.MoveTo(float32(pts[0].X), float32(pts[0].Y))
	for i := range pts {
		next := pts[(i+1)%len(pts)]
		if controls != nil && i < len(controls) {
			path.QuadTo(float32(controls[i].X), float32(controls[i].Y), float32(next.X), float32(next.Y))
		} else {
			path.LineTo(float32(next.X), float32(next.Y))
		}
	}
	path.Close()
}

// drawImage paints a registered image over the instruction's quad as a
// textured triangle fan.
func (c *Compositor) drawImage(screen *ebiten.Image, ins DrawInstruction) {
	img, ok := c.images[ins.ImageKey]
	if !ok {
		return
	}
	verts, inds := polygonFan(ins.Points, img)
	if verts == nil {
		return
	}
	alpha := float32(ins.Opacity)
	for i := range verts {
		verts[i].ColorR = alpha
		verts[i].ColorG = alpha
		verts[i].ColorB = alpha
		verts[i].ColorA = alpha
	}
	screen.DrawTriangles(verts, inds, img, &ebiten.DrawTrianglesOptions{
		Blend:  ins.BlendMode.EbitenBlend(),
		Filter: ebiten.FilterLinear,
	})
}

// polygonFan generates vertices and indices for a fan-triangulated polygon
// with UVs mapped to the polygon's bounding box. N vertices, 3*(N-2) indices.
func polygonFan(points []Vec2, img *ebiten.Image) ([]ebiten.Vertex, []uint16) {
	n := len(points)
	if n < 3 {
		return nil, nil
	}
	verts := make([]ebiten.Vertex, n)
	inds := make([]uint16, (n-2)*3)

	minX, minY := points[0].X, points[0].Y
	maxX, maxY := minX, minY
	for _, p := range points[1:] {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}
	b := img.Bounds()
	imgW, imgH := float64(b.Dx()), float64(b.Dy())
	bbW, bbH := maxX-minX, maxY-minY

	for i, p := range points {
		v := &verts[i]
		v.DstX = float32(p.X)
		v.DstY = float32(p.Y)
		if bbW > 0 {
			v.SrcX = float32((p.X - minX) / bbW * imgW)
		}
		if bbH > 0 {
			v.SrcY = float32((p.Y - minY) / bbH * imgH)
		}
	}

	// Vertex 0 is the hub.
	for i := 0; i < n-2; i++ {
		inds[i*3+0] = 0
		inds[i*3+1] = uint16(i + 1)
		inds[i*3+2] = uint16(i + 2)
	}
	return verts, inds
}

// whitePixel returns a lazily created 1x1 white image for untextured fills.
func (c *Compositor) whitePixel() *ebiten.Image {
	if c.white == nil {
		c.white = ebiten.NewImage(1, 1)
		c.white.Fill(color.White)
	}
	return c.white
}

// UpdateStats advances the stats overlay clock. The overlay text is
// refreshed every ~0.5 seconds.
func (c *Compositor) UpdateStats(dt float64, layers int) {
	if !c.ShowStats {
		return
	}
	c.statsTimer += dt
	if c.statsText != "" && c.statsTimer < 0.5 {
		return
	}
	c.statsTimer = 0
	c.statsText = fmt.Sprintf("FPS: %.1f\nTPS: %.1f\nLayers: %d", ebiten.ActualFPS(), ebiten.ActualTPS(), layers)
}

func (c *Compositor) drawStats(screen *ebiten.Image, layers int) {
	if c.statsText == "" {
		c.UpdateStats(0, layers)
	}
	if c.statsImg == nil {
		// 100x48 fits three DebugPrint lines.
		c.statsImg = ebiten.NewImage(100, 48)
	}
	c.statsImg.Fill(color.RGBA{0, 0, 0, 128})
	ebitenutil.DebugPrint(c.statsImg, c.statsText)
	screen.DrawImage(c.statsImg, nil)
}

func nrgba(c Color) color.NRGBA {
	return color.NRGBA{
		R: uint8(clamp01(c.R)*255 + 0.5),
		G: uint8(clamp01(c.G)*255 + 0.5),
		B: uint8(clamp01(c.B)*255 + 0.5),
		A: uint8(clamp01(c.A)*255 + 0.5),
	}
}
