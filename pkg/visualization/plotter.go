package visualization

import (
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/gonum/floats"

	"voreencurves/internal/models"
)

// Plotter rasterizes sampled curves and transfer function lookup tables
type Plotter struct {
	// dimensions of the plot area
	width  int
	height int

	// Background and Foreground are the gray levels of empty and drawn pixels
	Background color.Gray
	Foreground color.Gray
}

// NewPlotter creates a plotter drawing white curves on black
func NewPlotter(width, height int) *Plotter {
	return &Plotter{
		width:      width,
		height:     height,
		Background: color.Gray{Y: 0},
		Foreground: color.Gray{Y: 255},
	}
}

// PlotSamples draws coordinate coord of the samples against their
// parameter. Both axes are scaled to the range of the data.
func (p *Plotter) PlotSamples(samples []models.Sample, coord int) (*image.Gray, error) {
	if err := p.check(samples); err != nil {
		return nil, err
	}

	xs := make([]float64, len(samples))
	ys := make([]float64, len(samples))
	for i, s := range samples {
		if coord < 0 || coord >= len(s.Value) {
			return nil, fmt.Errorf("sample %d has no coordinate %d", i, coord)
		}
		xs[i] = s.T
		ys[i] = s.Value[coord]
	}
	return p.plot(xs, ys), nil
}

// PlotPath draws the planar trace of coordinates xCoord and yCoord, as seen
// looking down the remaining axis.
func (p *Plotter) PlotPath(samples []models.Sample, xCoord, yCoord int) (*image.Gray, error) {
	if err := p.check(samples); err != nil {
		return nil, err
	}

	xs := make([]float64, len(samples))
	ys := make([]float64, len(samples))
	for i, s := range samples {
		if xCoord < 0 || xCoord >= len(s.Value) || yCoord < 0 || yCoord >= len(s.Value) {
			return nil, fmt.Errorf("sample %d has no coordinates %d and %d", i, xCoord, yCoord)
		}
		xs[i] = s.Value[xCoord]
		ys[i] = s.Value[yCoord]
	}
	return p.plot(xs, ys), nil
}

func (p *Plotter) check(samples []models.Sample) error {
	if p.width < 2 || p.height < 2 {
		return fmt.Errorf("plot size %dx%d must be at least 2x2", p.width, p.height)
	}
	if len(samples) == 0 {
		return fmt.Errorf("no samples to plot")
	}
	return nil
}

// plot connects consecutive points with line segments. The y axis points up.
func (p *Plotter) plot(xs, ys []float64) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, p.width, p.height))
	for i := range img.Pix {
		img.Pix[i] = p.Background.Y
	}

	column := scaler(xs, p.width)
	row := scaler(ys, p.height)

	px, py := column(xs[0]), p.height-1-row(ys[0])
	img.SetGray(px, py, p.Foreground)
	for i := 1; i < len(xs); i++ {
		qx, qy := column(xs[i]), p.height-1-row(ys[i])
		p.line(img, px, py, qx, qy)
		px, py = qx, qy
	}
	return img
}

// scaler maps the range of values onto pixel indices [0, size-1]. A
// constant series maps to the middle.
func scaler(values []float64, size int) func(float64) int {
	lo, hi := floats.Min(values), floats.Max(values)
	if hi == lo {
		return func(float64) int { return (size - 1) / 2 }
	}
	scale := float64(size-1) / (hi - lo)
	return func(v float64) int {
		return int(math.Round((v - lo) * scale))
	}
}

func (p *Plotter) line(img *image.Gray, x0, y0, x1, y1 int) {
	dx, dy := x1-x0, y1-y0
	steps := max(abs(dx), abs(dy))
	if steps == 0 {
		img.SetGray(x0, y0, p.Foreground)
		return
	}
	for i := 0; i <= steps; i++ {
		f := float64(i) / float64(steps)
		x := x0 + int(math.Round(f*float64(dx)))
		y := y0 + int(math.Round(f*float64(dy)))
		img.SetGray(x, y, p.Foreground)
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// LookupTableStrip renders a transfer function lookup table as an image
// with one column per texel, repeated over height rows.
func LookupTableStrip(lut []color.RGBA, height int) (*image.RGBA, error) {
	if len(lut) == 0 {
		return nil, fmt.Errorf("lookup table is empty")
	}
	if height <= 0 {
		return nil, fmt.Errorf("strip height must be positive")
	}

	img := image.NewRGBA(image.Rect(0, 0, len(lut), height))
	for y := 0; y < height; y++ {
		for x, c := range lut {
			img.SetRGBA(x, y, c)
		}
	}
	return img, nil
}

// Save writes the image, creating parent directories as needed. Files
// ending in .jpg or .jpeg are JPEG encoded, everything else PNG.
func Save(img image.Image, filename string) error {
	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		return err
	}

	file, err := os.Create(filename)
	if err != nil {
		return err
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".jpg", ".jpeg":
		err = jpeg.Encode(file, img, &jpeg.Options{Quality: 90})
	default:
		err = png.Encode(file, img)
	}
	if err != nil {
		file.Close()
		return fmt.Errorf("error encoding %s: %w", filename, err)
	}
	return file.Close()
}
