package draw

import (
	"image"
	imagedraw "image/draw"
	"io"

	"github.com/fogleman/gg"
)

type rasterStyle struct {
	lineWidth   float64
	strokeStyle string
	fillStyle   string
}

// Raster draws into an in-memory RGBA image. Colours must be hex strings
// ("#rgb", "#rrggbb" or "#rrggbbaa"). Text uses the default gg face; the font
// setting is not applied.
type Raster struct {
	dc    *gg.Context
	style rasterStyle
	stack []rasterStyle
}

func NewRaster(width, height int) *Raster {
	return &Raster{
		dc:    gg.NewContext(width, height),
		style: defaultRasterStyle(),
	}
}

func defaultRasterStyle() rasterStyle {
	return rasterStyle{
		lineWidth:   1,
		strokeStyle: "#000",
		fillStyle:   "#000",
	}
}

func (r *Raster) Image() image.Image {
	return r.dc.Image()
}

func (r *Raster) EncodePNG(w io.Writer) error {
	return r.dc.EncodePNG(w)
}

func (r *Raster) Resize(_, _, width, height int) {
	r.dc = gg.NewContext(width, height)
	r.style = defaultRasterStyle()
	r.stack = nil
}

func (r *Raster) ClearRect(x, y, width, height float64) {
	img, ok := r.dc.Image().(imagedraw.Image)
	if !ok {
		return
	}
	rect := image.Rect(int(x), int(y), int(x+width), int(y+height))
	imagedraw.Draw(img, rect, image.Transparent, image.Point{}, imagedraw.Src)
}

func (r *Raster) BeginPath() {
	r.dc.ClearPath()
}

func (r *Raster) ClosePath() {
	r.dc.ClosePath()
}

func (r *Raster) MoveTo(x, y float64) {
	r.dc.MoveTo(x, y)
}

func (r *Raster) LineTo(x, y float64) {
	r.dc.LineTo(x, y)
}

func (r *Raster) Arc(x, y, radius, startAngle, endAngle float64) {
	r.dc.DrawArc(x, y, radius, startAngle, endAngle)
}

func (r *Raster) Stroke() {
	r.dc.SetLineWidth(r.style.lineWidth)
	r.dc.SetHexColor(r.style.strokeStyle)
	r.dc.StrokePreserve()
}

func (r *Raster) Fill() {
	r.dc.SetHexColor(r.style.fillStyle)
	r.dc.FillPreserve()
}

func (r *Raster) FillText(text string, x, y float64) {
	r.dc.SetHexColor(r.style.fillStyle)
	r.dc.DrawString(text, x, y)
}

func (r *Raster) Save() {
	r.stack = append(r.stack, r.style)
	r.dc.Push()
}

func (r *Raster) Restore() {
	if len(r.stack) == 0 {
		return
	}
	r.style = r.stack[len(r.stack)-1]
	r.stack = r.stack[:len(r.stack)-1]
	r.dc.Pop()
}

func (r *Raster) SetLineWidth(width float64) {
	r.style.lineWidth = width
}

func (r *Raster) SetStrokeStyle(style string) {
	r.style.strokeStyle = style
}

func (r *Raster) SetFillStyle(style string) {
	r.style.fillStyle = style
}

func (r *Raster) SetFont(string) {}
