package validate

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/realenhance/structural-validator/internal/fetch"
)

// drawBarsImage builds a white image with black vertical bars at the given
// columns and horizontal bars at the given rows, each 3px thick.
func drawBarsImage(width, height int, columns, rows []int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.White)
		}
	}
	for _, c := range columns {
		for t := 0; t < 3; t++ {
			for y := 40; y < height-40; y++ {
				img.Set(c+t, y, color.Black)
			}
		}
	}
	for _, r := range rows {
		for t := 0; t < 3; t++ {
			for x := 40; x < width-40; x++ {
				img.Set(x, r+t, color.Black)
			}
		}
	}
	return img
}

func serveImage(t *testing.T, img image.Image) *httptest.Server {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	payload := buf.Bytes()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(payload)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestValidator() *Validator {
	fetcher := fetch.New(10*time.Second, zerolog.Nop())
	return New(fetcher, DefaultOptions(), zerolog.Nop())
}

func TestValidate_IdenticalImages(t *testing.T) {
	img := drawBarsImage(400, 400, []int{100, 200, 300}, []int{120, 280})
	srv := serveImage(t, img)

	v := newTestValidator()
	result, err := v.Validate(context.Background(), Request{
		OriginalURL: srv.URL + "/original.png",
		EnhancedURL: srv.URL + "/enhanced.png",
		Sensitivity: DefaultSensitivity,
	})

	require.NoError(t, err)
	assert.Greater(t, result.Original.VerticalCount, 0, "vertical bars should be detected")
	assert.Greater(t, result.Original.HorizontalCount, 0, "horizontal bars should be detected")
	assert.Equal(t, result.Original.Count, result.Enhanced.Count)

	// Identical inputs diverge by exactly nothing
	assert.Equal(t, 0.0, result.VerticalShift)
	assert.Equal(t, 0.0, result.HorizontalShift)
	assert.Equal(t, 0.0, result.DeviationScore)
	assert.False(t, result.IsSuspicious)
	assert.Equal(t, "Structural validation passed: 0.00° deviation", result.Message)
}

func TestValidate_BlankImagesAreNotAnError(t *testing.T) {
	img := drawBarsImage(300, 300, nil, nil)
	srv := serveImage(t, img)

	v := newTestValidator()
	result, err := v.Validate(context.Background(), Request{
		OriginalURL: srv.URL + "/a.png",
		EnhancedURL: srv.URL + "/b.png",
		Sensitivity: DefaultSensitivity,
	})

	require.NoError(t, err)
	assert.Equal(t, 0, result.Original.Count)
	assert.Equal(t, 0, result.Enhanced.Count)
	assert.Equal(t, 0.0, result.DeviationScore)
	assert.False(t, result.IsSuspicious)
}

func TestValidate_FetchFailureAbortsRequest(t *testing.T) {
	img := drawBarsImage(400, 400, []int{200}, nil)
	srv := serveImage(t, img)

	v := newTestValidator()
	_, err := v.Validate(context.Background(), Request{
		OriginalURL: srv.URL + "/original.png",
		EnhancedURL: "http://127.0.0.1:1/enhanced.png",
		Sensitivity: DefaultSensitivity,
	})

	var fetchErr *fetch.FetchError
	require.ErrorAs(t, err, &fetchErr)
}

func TestValidate_DecodeFailureAbortsRequest(t *testing.T) {
	garbage := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not an image"))
	}))
	defer garbage.Close()

	img := drawBarsImage(400, 400, []int{200}, nil)
	srv := serveImage(t, img)

	v := newTestValidator()
	_, err := v.Validate(context.Background(), Request{
		OriginalURL: garbage.URL + "/original.png",
		EnhancedURL: srv.URL + "/enhanced.png",
		Sensitivity: DefaultSensitivity,
	})

	var decodeErr *fetch.DecodeError
	require.ErrorAs(t, err, &decodeErr)
}

func TestProcessingError_WrapsCause(t *testing.T) {
	cause := assert.AnError
	err := &ProcessingError{Stage: "preprocessing", Err: cause}

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "preprocessing failed")
}
