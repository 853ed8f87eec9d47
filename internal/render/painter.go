// Package render draws arena snapshots onto an ebiten image.
package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/Skirmish/internal/game"
)

const (
	auraStrokeWidth = 2.0
	healthBarH      = 3
)

var (
	outlineCol    = color.NRGBA{A: 255}
	healthBackCol = color.NRGBA{R: 60, G: 20, B: 20, A: 200}
	healthFillCol = color.NRGBA{R: 90, G: 200, B: 90, A: 230}
)

// Painter implements game.Renderer for one frame at a time: call Begin with
// the target image, then Arena.Render.
type Painter struct {
	sprites    SpriteSource
	dst        *ebiten.Image
	offX, offY float32
	ShowLabels bool
	ShowHealth bool
}

// NewPainter returns a painter drawing sprites from src, with shapes for
// anything src lacks.
func NewPainter(src SpriteSource) *Painter {
	if src == nil {
		src = NoSprites{}
	}
	return &Painter{sprites: src, ShowLabels: true, ShowHealth: true}
}

// Begin targets dst with the field origin at (offX, offY).
func (p *Painter) Begin(dst *ebiten.Image, offX, offY int) {
	p.dst = dst
	p.offX = float32(offX)
	p.offY = float32(offY)
}

// DrawResource draws the resource sprite, or a filled circle with a black
// outline in the resource colour.
func (p *Painter) DrawResource(v game.ResourceView) {
	if p.dst == nil {
		return
	}
	x, y := p.offX+float32(v.X), p.offY+float32(v.Y)
	if img, ok := p.sprites.Sprite(ResourceSpriteName(v.Kind)); ok {
		p.dst.DrawImage(img, spriteOptions(img, x, y, v.W, v.H, 1))
		return
	}
	r := float32(v.W) / 2
	cx, cy := x+r, y+float32(v.H)/2
	c := v.Kind.Color()
	vector.FillCircle(p.dst, cx, cy, r, color.NRGBA{R: c.R, G: c.G, B: c.B, A: 255}, true)
	vector.StrokeCircle(p.dst, cx, cy, r, 1, outlineCol, true)
}

// DrawUnit draws the attack aura when active, then the sprite at the unit's
// current opacity.
func (p *Painter) DrawUnit(v game.UnitView) {
	if p.dst == nil {
		return
	}
	x, y := p.offX+float32(v.X), p.offY+float32(v.Y)

	if v.ShowAura() {
		cx, cy := v.Center()
		ax, ay := p.offX+float32(cx), p.offY+float32(cy)
		rng := float32(v.Range)
		fill, ring := AuraColors(v)
		vector.FillCircle(p.dst, ax, ay, rng, fill, true)
		vector.StrokeCircle(p.dst, ax, ay, rng, auraStrokeWidth, ring, true)
	}

	if img, ok := p.sprites.Sprite(SpriteName(v)); ok {
		p.dst.DrawImage(img, spriteOptions(img, x, y, v.W, v.H, v.Opacity))
	} else {
		p.drawShape(v, x, y)
	}

	if p.ShowHealth && v.Life == game.Alive {
		frac := HealthFraction(v)
		w := float32(v.W)
		vector.FillRect(p.dst, x, y-healthBarH-1, w, healthBarH, healthBackCol, false)
		vector.FillRect(p.dst, x, y-healthBarH-1, w*frac, healthBarH, healthFillCol, false)
	}
	if p.ShowLabels && v.Opacity > 0.5 {
		ebitenutil.DebugPrintAt(p.dst, v.Label, int(x)+2, int(y)+2)
	}
}

// drawShape is the sprite fallback: a body square tinted by kind, a saddle
// bar for mounted knights, and a black outline.
func (p *Painter) drawShape(v game.UnitView, x, y float32) {
	w, h := float32(v.W), float32(v.H)
	body := Fade(KindColor(v), v.Opacity)
	vector.FillRect(p.dst, x, y, w, h, body, false)
	if v.Kind == game.Knight && v.Mounted {
		vector.FillRect(p.dst, x, y+h*2/3, w, h/6, Fade(color.RGBA{R: 120, G: 80, B: 40, A: 255}, v.Opacity), false)
	}
	vector.StrokeRect(p.dst, x, y, w, h, 1, Fade(color.RGBA{A: 255}, v.Opacity), false)
}

func spriteOptions(img *ebiten.Image, x, y float32, w, h int, opacity float64) *ebiten.DrawImageOptions {
	b := img.Bounds()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(w)/float64(b.Dx()), float64(h)/float64(b.Dy()))
	op.GeoM.Translate(float64(x), float64(y))
	op.ColorScale.ScaleAlpha(float32(opacity))
	return op
}

// Fade returns c as straight alpha with its alpha scaled by opacity.
// Arena colours are stored unpremultiplied.
func Fade(c color.RGBA, opacity float64) color.NRGBA {
	if opacity < 0 {
		opacity = 0
	}
	if opacity > 1 {
		opacity = 1
	}
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(float64(c.A)*opacity + 0.5)}
}

// AuraColors returns the range indicator fill and border ring, faded with
// the unit.
func AuraColors(v game.UnitView) (fill, ring color.NRGBA) {
	return Fade(v.Aura, v.Opacity), Fade(v.AuraBorder(), v.Opacity)
}

// KindColor is the opaque body colour of a unit: its aura hue.
func KindColor(v game.UnitView) color.RGBA {
	if !v.Kind.Valid() {
		return color.RGBA{R: 128, G: 128, B: 128, A: 255}
	}
	c := v.Aura
	c.A = 255
	return c
}

// HealthFraction is health over max health, in [0, 1].
func HealthFraction(v game.UnitView) float32 {
	if v.MaxHealth <= 0 {
		return 0
	}
	f := float32(v.Health) / float32(v.MaxHealth)
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
