package imaging

import (
	"image"
	"image/color"
	"testing"
)

func createColorImage(width, height int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestPreprocess_OversizedImageIsDownscaled(t *testing.T) {
	img := createColorImage(4000, 3000, color.White)

	out := Preprocess(img, DefaultMaxDimension)

	bounds := out.Bounds()
	if bounds.Dx() != 1920 {
		t.Errorf("width = %d, want 1920", bounds.Dx())
	}
	// Aspect ratio 4:3 preserved within rounding
	if bounds.Dy() != 1440 {
		t.Errorf("height = %d, want 1440", bounds.Dy())
	}
}

func TestPreprocess_TallImageScalesByHeight(t *testing.T) {
	img := createColorImage(1000, 2400, color.White)

	out := Preprocess(img, DefaultMaxDimension)

	bounds := out.Bounds()
	if bounds.Dy() != 1920 {
		t.Errorf("height = %d, want 1920", bounds.Dy())
	}
	if bounds.Dx() != 800 {
		t.Errorf("width = %d, want 800", bounds.Dx())
	}
}

func TestPreprocess_SmallImagePassesThrough(t *testing.T) {
	img := createColorImage(800, 600, color.White)

	out := Preprocess(img, DefaultMaxDimension)

	bounds := out.Bounds()
	if bounds.Dx() != 800 || bounds.Dy() != 600 {
		t.Errorf("dimensions = %dx%d, want 800x600 unscaled", bounds.Dx(), bounds.Dy())
	}
}

func TestPreprocess_ExactBoundPassesThrough(t *testing.T) {
	img := createColorImage(1920, 1080, color.White)

	out := Preprocess(img, DefaultMaxDimension)

	bounds := out.Bounds()
	if bounds.Dx() != 1920 || bounds.Dy() != 1080 {
		t.Errorf("dimensions = %dx%d, want 1920x1080 unscaled", bounds.Dx(), bounds.Dy())
	}
}

func TestPreprocess_ProducesLuminance(t *testing.T) {
	// A saturated red image must land on its BT.601 luminance, not 0 or 255
	img := createColorImage(100, 100, color.RGBA{R: 255, A: 255})

	out := Preprocess(img, DefaultMaxDimension)

	y := out.GrayAt(50, 50).Y
	if y < 50 || y > 100 {
		t.Errorf("red luminance = %d, want roughly 76 (0.299*255)", y)
	}
}

func TestPreprocess_SmoothingPreservesUniformRegions(t *testing.T) {
	img := createColorImage(100, 100, color.White)

	out := Preprocess(img, DefaultMaxDimension)

	if y := out.GrayAt(50, 50).Y; y < 250 {
		t.Errorf("uniform white center = %d, want ~255 after smoothing", y)
	}
}

func TestPreprocess_DefaultForNonPositiveBound(t *testing.T) {
	img := createColorImage(2000, 1000, color.White)

	out := Preprocess(img, 0)

	if got := out.Bounds().Dx(); got != 1920 {
		t.Errorf("width = %d, want 1920 via default bound", got)
	}
}
