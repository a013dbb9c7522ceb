package fetch

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// DefaultTimeout bounds a single image retrieval end to end.
const DefaultTimeout = 30 * time.Second

// maxLoggedURL keeps log lines readable; signed URLs run long.
const maxLoggedURL = 80

// FetchError reports a failed network retrieval: timeout, connection error
// or a non-2xx response. The underlying transport reason is wrapped.
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetching %s: %v", truncateURL(e.URL), e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// DecodeError reports bytes that were retrieved successfully but could not
// be decoded as a supported raster image format.
type DecodeError struct {
	URL string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding image from %s: %v", truncateURL(e.URL), e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Fetcher downloads images over HTTP and decodes them in memory.
//
// Each Fetch is a single attempt; retry policy, if any, belongs to the
// caller. Fetcher holds no per-request state and is safe for concurrent use.
type Fetcher struct {
	client *http.Client
	log    zerolog.Logger
}

// New creates a Fetcher with the given retrieval timeout.
// timeout <= 0 selects DefaultTimeout.
func New(timeout time.Duration, log zerolog.Logger) *Fetcher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Fetcher{
		client: &http.Client{Timeout: timeout},
		log:    log,
	}
}

// Fetch retrieves the bytes at url and decodes them into an image.
//
// Failures are typed: *FetchError for transport problems or non-2xx
// statuses, *DecodeError when the payload is not a decodable JPEG, PNG or
// GIF.
func (f *Fetcher) Fetch(ctx context.Context, url string) (image.Image, error) {
	f.log.Info().Str("url", truncateURL(url)).Msg("downloading image")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{URL: url, Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, &DecodeError{URL: url, Err: err}
	}

	bounds := img.Bounds()
	f.log.Info().
		Str("url", truncateURL(url)).
		Str("format", format).
		Int("width", bounds.Dx()).
		Int("height", bounds.Dy()).
		Int("bytes", len(data)).
		Msg("image downloaded")

	return img, nil
}

func truncateURL(url string) string {
	if len(url) > maxLoggedURL {
		return url[:maxLoggedURL] + "..."
	}
	return url
}
