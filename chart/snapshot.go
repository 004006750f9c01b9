package chart

import (
	"io"

	"tgchart/dom"
	"tgchart/draw"
	"tgchart/frame"
	"tgchart/models"
)

// Snapshot paints one frame of the window into an offscreen raster and writes it as PNG.
func Snapshot(w io.Writer, data *models.Dataset, cfg Config, window [2]float64) error {
	if cfg.PixelRatio <= 0 {
		cfg.PixelRatio = 1
	}
	raster := draw.NewRaster(cfg.Width*cfg.PixelRatio, cfg.Height*cfg.PixelRatio)
	c, err := New(dom.NewCanvas("snapshot", raster), data, cfg, frame.NewLoop())
	if err != nil {
		return err
	}
	defer c.Destroy()

	c.SetWindow(window[0], window[1])
	c.Paint()
	return raster.EncodePNG(w)
}
