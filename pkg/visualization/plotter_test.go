package visualization

import (
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"voreencurves/internal/models"
)

func lineSamples(n int) []models.Sample {
	samples := make([]models.Sample, n)
	for i := range samples {
		t := float64(i) / float64(n-1)
		samples[i] = models.Sample{T: t, Value: []float64{t, 5, -t}}
	}
	return samples
}

// TestNewPlotter verifies that a new plotter is created with the correct parameters
func TestNewPlotter(t *testing.T) {
	p := NewPlotter(64, 32)

	if p.width != 64 {
		t.Errorf("Expected width %d, got %d", 64, p.width)
	}
	if p.height != 32 {
		t.Errorf("Expected height %d, got %d", 32, p.height)
	}
	if p.Background.Y != 0 || p.Foreground.Y != 255 {
		t.Errorf("Expected white on black, got %d on %d", p.Foreground.Y, p.Background.Y)
	}
}

// TestPlotSamples verifies that a rising line is drawn along the diagonal
func TestPlotSamples(t *testing.T) {
	p := NewPlotter(11, 11)
	img, err := p.PlotSamples(lineSamples(11), 0)
	if err != nil {
		t.Fatalf("Failed to plot samples: %v", err)
	}

	if img.Bounds() != image.Rect(0, 0, 11, 11) {
		t.Fatalf("Expected 11x11 image, got %v", img.Bounds())
	}

	for x := 0; x < 11; x++ {
		y := 10 - x
		if got := img.GrayAt(x, y).Y; got != 255 {
			t.Errorf("Expected curve pixel at (%d, %d), got %d", x, y, got)
		}
	}
	if got := img.GrayAt(0, 0).Y; got != 0 {
		t.Errorf("Expected background at (0, 0), got %d", got)
	}
}

// TestPlotConstant verifies that a flat series lands on the middle row
func TestPlotConstant(t *testing.T) {
	p := NewPlotter(9, 9)
	img, err := p.PlotSamples(lineSamples(5), 1)
	if err != nil {
		t.Fatalf("Failed to plot samples: %v", err)
	}

	for x := 0; x < 9; x++ {
		if got := img.GrayAt(x, 4).Y; got != 255 {
			t.Errorf("Expected curve pixel at (%d, 4), got %d", x, got)
		}
	}
}

// TestPlotSparseSamples verifies that gaps between samples are filled
func TestPlotSparseSamples(t *testing.T) {
	p := NewPlotter(21, 21)
	img, err := p.PlotSamples(lineSamples(2), 0)
	if err != nil {
		t.Fatalf("Failed to plot samples: %v", err)
	}

	count := 0
	for _, v := range img.Pix {
		if v == 255 {
			count++
		}
	}
	if count != 21 {
		t.Errorf("Expected 21 curve pixels, got %d", count)
	}
}

func TestPlotPath(t *testing.T) {
	p := NewPlotter(11, 11)
	img, err := p.PlotPath(lineSamples(11), 0, 2)
	if err != nil {
		t.Fatalf("Failed to plot path: %v", err)
	}

	// y = -x falls from the top left to the bottom right
	if got := img.GrayAt(0, 0).Y; got != 255 {
		t.Errorf("Expected curve pixel at (0, 0), got %d", got)
	}
	if got := img.GrayAt(10, 10).Y; got != 255 {
		t.Errorf("Expected curve pixel at (10, 10), got %d", got)
	}
}

// TestPlotErrors verifies that invalid inputs are rejected
func TestPlotErrors(t *testing.T) {
	p := NewPlotter(10, 10)

	if _, err := p.PlotSamples(nil, 0); err == nil {
		t.Error("Expected error for empty samples")
	}
	if _, err := p.PlotSamples(lineSamples(3), 3); err == nil {
		t.Error("Expected error for missing coordinate")
	}
	if _, err := p.PlotPath(lineSamples(3), 0, -1); err == nil {
		t.Error("Expected error for negative coordinate")
	}
	if _, err := NewPlotter(1, 10).PlotSamples(lineSamples(3), 0); err == nil {
		t.Error("Expected error for degenerate plot size")
	}
}

func TestLookupTableStrip(t *testing.T) {
	lut := []color.RGBA{{255, 0, 0, 255}, {0, 255, 0, 128}, {0, 0, 0, 0}}
	img, err := LookupTableStrip(lut, 4)
	if err != nil {
		t.Fatalf("Failed to render strip: %v", err)
	}

	if img.Bounds() != image.Rect(0, 0, 3, 4) {
		t.Fatalf("Expected 3x4 strip, got %v", img.Bounds())
	}
	for y := 0; y < 4; y++ {
		for x, want := range lut {
			if got := img.RGBAAt(x, y); got != want {
				t.Errorf("Expected %v at (%d, %d), got %v", want, x, y, got)
			}
		}
	}

	if _, err := LookupTableStrip(nil, 4); err == nil {
		t.Error("Expected error for empty lookup table")
	}
	if _, err := LookupTableStrip(lut, 0); err == nil {
		t.Error("Expected error for zero height")
	}
}

// TestSave verifies that the encoder follows the file extension
func TestSave(t *testing.T) {
	tempDir := t.TempDir()
	img, err := NewPlotter(16, 8).PlotSamples(lineSamples(8), 0)
	if err != nil {
		t.Fatalf("Failed to plot samples: %v", err)
	}

	pngPath := filepath.Join(tempDir, "plots", "curve.png")
	if err := Save(img, pngPath); err != nil {
		t.Fatalf("Failed to save PNG: %v", err)
	}
	f, err := os.Open(pngPath)
	if err != nil {
		t.Fatalf("Failed to open PNG: %v", err)
	}
	decoded, err := png.Decode(f)
	f.Close()
	if err != nil {
		t.Fatalf("Failed to decode PNG: %v", err)
	}
	if decoded.Bounds() != img.Bounds() {
		t.Errorf("Expected bounds %v, got %v", img.Bounds(), decoded.Bounds())
	}

	jpgPath := filepath.Join(tempDir, "curve.JPG")
	if err := Save(img, jpgPath); err != nil {
		t.Fatalf("Failed to save JPEG: %v", err)
	}
	f, err = os.Open(jpgPath)
	if err != nil {
		t.Fatalf("Failed to open JPEG: %v", err)
	}
	defer f.Close()
	if _, err := jpeg.DecodeConfig(f); err != nil {
		t.Errorf("Expected a JPEG file: %v", err)
	}
}

// TestSaveEncodeError verifies that encoder failures are reported and the
// partial file can be removed
func TestSaveEncodeError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.png")
	empty := image.NewGray(image.Rect(0, 0, 0, 0))

	if err := Save(empty, path); err == nil {
		t.Fatal("Expected error encoding an empty image")
	}
	if err := os.Remove(path); err != nil {
		t.Errorf("Failed to remove partial file: %v", err)
	}

	// the same path is writable again afterwards
	img := image.NewGray(image.Rect(0, 0, 2, 2))
	if err := Save(img, path); err != nil {
		t.Errorf("Failed to save after encode error: %v", err)
	}
}
