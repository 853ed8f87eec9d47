package tui

import (
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/Garsondee/Skirmish/internal/game"
)

const auraGlyph = '·'

// Canvas implements game.Renderer on a rectangle of terminal cells. Field
// pixels are scaled down to cells independently on each axis.
type Canvas struct {
	screen         tcell.Screen
	fieldW, fieldH int
	ox, oy         int // top-left cell of the field
	cols, rows     int
}

// NewCanvas returns a canvas for a fieldW × fieldH pixel arena.
func NewCanvas(screen tcell.Screen, fieldW, fieldH int) *Canvas {
	return &Canvas{screen: screen, fieldW: fieldW, fieldH: fieldH, cols: 1, rows: 1}
}

// Fit places the field at cell (ox, oy) spanning cols × rows cells.
func (c *Canvas) Fit(ox, oy, cols, rows int) {
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	c.ox, c.oy, c.cols, c.rows = ox, oy, cols, rows
}

// Cell maps a field pixel to a screen cell. Points outside the field are
// clamped to its edge cells.
func (c *Canvas) Cell(px, py float64) (int, int) {
	cx := int(px * float64(c.cols) / float64(c.fieldW))
	cy := int(py * float64(c.rows) / float64(c.fieldH))
	cx = min(max(cx, 0), c.cols-1)
	cy = min(max(cy, 0), c.rows-1)
	return c.ox + cx, c.oy + cy
}

// inField reports whether a field pixel lies on the canvas.
func (c *Canvas) inField(px, py float64) bool {
	return px >= 0 && py >= 0 && px < float64(c.fieldW) && py < float64(c.fieldH)
}

// Frame draws the field border one cell outside the canvas.
func (c *Canvas) Frame(style tcell.Style) {
	x0, y0 := c.ox-1, c.oy-1
	x1, y1 := c.ox+c.cols, c.oy+c.rows
	for x := x0 + 1; x < x1; x++ {
		c.screen.SetContent(x, y0, tcell.RuneHLine, nil, style)
		c.screen.SetContent(x, y1, tcell.RuneHLine, nil, style)
	}
	for y := y0 + 1; y < y1; y++ {
		c.screen.SetContent(x0, y, tcell.RuneVLine, nil, style)
		c.screen.SetContent(x1, y, tcell.RuneVLine, nil, style)
	}
	c.screen.SetContent(x0, y0, tcell.RuneULCorner, nil, style)
	c.screen.SetContent(x1, y0, tcell.RuneURCorner, nil, style)
	c.screen.SetContent(x0, y1, tcell.RuneLLCorner, nil, style)
	c.screen.SetContent(x1, y1, tcell.RuneLRCorner, nil, style)
}

func (c *Canvas) DrawResource(v game.ResourceView) {
	px := float64(v.X) + float64(v.W)/2
	py := float64(v.Y) + float64(v.H)/2
	x, y := c.Cell(px, py)
	col := v.Kind.Color()
	c.screen.SetContent(x, y, '*', nil, tcell.StyleDefault.Foreground(rgb(col, 1)))
}

// DrawUnit draws the aura ring on empty cells while attacking, then the
// unit glyph in its kind colour dimmed by opacity.
func (c *Canvas) DrawUnit(v game.UnitView) {
	cx, cy := v.Center()
	if v.ShowAura() {
		c.ring(cx, cy, float64(v.Range), tcell.StyleDefault.Foreground(rgb(v.AuraBorder(), v.Opacity)))
	}
	x, y := c.Cell(cx, cy)
	style := tcell.StyleDefault.Foreground(rgb(kindColor(v), v.Opacity))
	if v.State == game.Attacking {
		style = style.Bold(true)
	}
	if v.Life == game.Dying {
		style = style.Dim(true)
	}
	c.screen.SetContent(x, y, Glyph(v), nil, style)
}

func (c *Canvas) ring(cx, cy, r float64, style tcell.Style) {
	steps := max(16, int(r/4))
	for i := 0; i < steps; i++ {
		a := 2 * math.Pi * float64(i) / float64(steps)
		px, py := cx+r*math.Cos(a), cy+r*math.Sin(a)
		if !c.inField(px, py) {
			continue
		}
		x, y := c.Cell(px, py)
		if ch, _, _, _ := c.screen.GetContent(x, y); ch != ' ' && ch != auraGlyph && ch != 0 {
			continue
		}
		c.screen.SetContent(x, y, auraGlyph, nil, style)
	}
}

// Glyph is the kind initial, lower case for a dismounted knight.
func Glyph(v game.UnitView) rune {
	switch v.Kind {
	case game.Villager:
		return 'V'
	case game.Archer:
		return 'A'
	case game.Knight:
		if v.Mounted {
			return 'K'
		}
		return 'k'
	default:
		return '?'
	}
}

func kindColor(v game.UnitView) color.RGBA {
	c := v.Aura
	c.A = 255
	return c
}

// rgb scales c toward black by opacity.
func rgb(c color.RGBA, opacity float64) tcell.Color {
	o := min(max(opacity, 0), 1)
	return tcell.NewRGBColor(int32(float64(c.R)*o), int32(float64(c.G)*o), int32(float64(c.B)*o))
}
