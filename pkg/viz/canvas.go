package viz

import (
	"image"
	"image/color"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Canvas is any surface the raster renderer can paint filled rectangles on.
// Coordinates are in output pixels (or terminal cells); implementations clip
// out-of-bounds rectangles instead of erroring.
type Canvas interface {
	Size() (width, height int)
	Clear()
	FillRect(x, y, w, h float64, c color.RGBA)
}

// ImageCanvas paints into an RGBA image, one pixel per unit.
type ImageCanvas struct {
	img *image.RGBA
}

func NewImageCanvas(width, height int) *ImageCanvas {
	return &ImageCanvas{img: image.NewRGBA(image.Rect(0, 0, width, height))}
}

func (c *ImageCanvas) Size() (int, int) {
	b := c.img.Bounds()
	return b.Dx(), b.Dy()
}

func (c *ImageCanvas) Clear() {
	for i := range c.img.Pix {
		c.img.Pix[i] = 0
	}
}

func (c *ImageCanvas) FillRect(x, y, w, h float64, col color.RGBA) {
	if w <= 0 || h <= 0 {
		return
	}
	b := c.img.Bounds()
	x0 := clamp(int(math.Floor(x)), b.Min.X, b.Max.X)
	y0 := clamp(int(math.Floor(y)), b.Min.Y, b.Max.Y)
	x1 := clamp(int(math.Ceil(x+w)), b.Min.X, b.Max.X)
	y1 := clamp(int(math.Ceil(y+h)), b.Min.Y, b.Max.Y)
	for py := y0; py < y1; py++ {
		for px := x0; px < x1; px++ {
			c.img.SetRGBA(px, py, col)
		}
	}
}

// Image exposes the backing image for encoding or pixel assertions.
func (c *ImageCanvas) Image() *image.RGBA { return c.img }

// At returns the pixel at (x, y).
func (c *ImageCanvas) At(x, y int) color.RGBA { return c.img.RGBAAt(x, y) }

// CellCanvas paints into a grid of terminal cells. Each painted cell becomes
// a colored block rune; String renders the whole grid with lipgloss.
type CellCanvas struct {
	width  int
	height int
	cells  []color.RGBA
	set    []bool
}

func NewCellCanvas(width, height int) *CellCanvas {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &CellCanvas{
		width:  width,
		height: height,
		cells:  make([]color.RGBA, width*height),
		set:    make([]bool, width*height),
	}
}

func (c *CellCanvas) Size() (int, int) { return c.width, c.height }

func (c *CellCanvas) Clear() {
	for i := range c.set {
		c.set[i] = false
		c.cells[i] = color.RGBA{}
	}
}

func (c *CellCanvas) FillRect(x, y, w, h float64, col color.RGBA) {
	if w <= 0 || h <= 0 {
		return
	}
	x0 := clamp(int(math.Floor(x)), 0, c.width)
	y0 := clamp(int(math.Floor(y)), 0, c.height)
	x1 := clamp(int(math.Ceil(x+w)), 0, c.width)
	y1 := clamp(int(math.Ceil(y+h)), 0, c.height)
	for py := y0; py < y1; py++ {
		for px := x0; px < x1; px++ {
			i := py*c.width + px
			c.cells[i] = col
			c.set[i] = true
		}
	}
}

// Painted reports whether anything was drawn at the cell.
func (c *CellCanvas) Painted(x, y int) bool {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return false
	}
	return c.set[y*c.width+x]
}

// Cell returns the color drawn at the cell, if any.
func (c *CellCanvas) Cell(x, y int) (color.RGBA, bool) {
	if !c.Painted(x, y) {
		return color.RGBA{}, false
	}
	return c.cells[y*c.width+x], true
}

// String renders the canvas as colored block characters, one line per row.
// Unpainted cells come out as plain spaces.
func (c *CellCanvas) String() string {
	var sb strings.Builder
	for y := 0; y < c.height; y++ {
		for x := 0; x < c.width; x++ {
			col, ok := c.Cell(x, y)
			if !ok {
				sb.WriteByte(' ')
				continue
			}
			hex := rgbaToHex(col)
			style := lipgloss.NewStyle().
				Background(lipgloss.Color(hex)).
				Foreground(lipgloss.Color(hex))
			sb.WriteString(style.Render("█"))
		}
		if y < c.height-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
