package imaging

import (
	"image"
	"image/color"

	"github.com/anthonynsimon/bild/blur"
	"github.com/disintegration/imaging"
)

// DefaultMaxDimension bounds the longer image side before line detection.
// Purely a latency/memory control, not a property of the domain.
const DefaultMaxDimension = 1920

// gaussianRadius produces bild's 5x5 smoothing kernel (length 2r+1).
const gaussianRadius = 2.0

// Preprocess prepares an image for line detection.
//
// Oversized images are scaled down uniformly so the longer side equals
// maxDimension, using box (area-averaging) resampling to avoid aliasing;
// smaller images pass through unscaled. The result is converted to
// single-channel luminance and smoothed with a 5x5 Gaussian pass to
// suppress sensor noise ahead of edge detection.
//
// maxDimension <= 0 selects DefaultMaxDimension.
func Preprocess(img image.Image, maxDimension int) *image.Gray {
	if maxDimension <= 0 {
		maxDimension = DefaultMaxDimension
	}

	bounds := img.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()

	if longest := max(w, h); longest > maxDimension {
		scale := float64(maxDimension) / float64(longest)
		newW := int(float64(w) * scale)
		newH := int(float64(h) * scale)
		img = imaging.Resize(img, newW, newH, imaging.Box)
	}

	grayscale := imaging.Grayscale(img)
	smoothed := blur.Gaussian(grayscale, gaussianRadius)

	// Collapse to a single channel. All three channels are equal after
	// Grayscale, so sampling red is enough.
	out := image.NewGray(image.Rect(0, 0, smoothed.Bounds().Dx(), smoothed.Bounds().Dy()))
	sb := smoothed.Bounds()
	for y := 0; y < sb.Dy(); y++ {
		for x := 0; x < sb.Dx(); x++ {
			r, _, _, _ := smoothed.At(x+sb.Min.X, y+sb.Min.Y).RGBA()
			out.SetGray(x, y, color.Gray{Y: uint8(r >> 8)})
		}
	}

	return out
}
