package validate

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/realenhance/structural-validator/internal/detection"
	"github.com/realenhance/structural-validator/internal/fetch"
	"github.com/realenhance/structural-validator/internal/imaging"
)

// Request carries the two image URLs to compare and the sensitivity
// threshold in degrees.
type Request struct {
	OriginalURL string
	EnhancedURL string
	Sensitivity float64
}

// Result is the outcome of one structural comparison. It is assembled once
// per request and never mutated.
type Result struct {
	Original        detection.LineSummary `json:"original"`
	Enhanced        detection.LineSummary `json:"enhanced"`
	VerticalShift   float64               `json:"verticalShift"`
	HorizontalShift float64               `json:"horizontalShift"`
	DeviationScore  float64               `json:"deviationScore"`
	IsSuspicious    bool                  `json:"isSuspicious"`
	Message         string                `json:"message"`
}

// ProcessingError wraps an unexpected failure in a pipeline stage past
// fetching; transport failures keep their own types from the fetch package.
type ProcessingError struct {
	Stage string
	Err   error
}

func (e *ProcessingError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Stage, e.Err)
}

func (e *ProcessingError) Unwrap() error { return e.Err }

// Options are the pipeline tunables. The defaults reproduce the reference
// thresholds; none of them are part of the service contract.
type Options struct {
	MaxDimension int
	CannyLow     int
	CannyHigh    int
	Hough        detection.HoughParams
}

// DefaultOptions returns the reference pipeline tuning.
func DefaultOptions() Options {
	return Options{
		MaxDimension: imaging.DefaultMaxDimension,
		CannyLow:     60,
		CannyHigh:    150,
		Hough:        detection.DefaultHoughParams,
	}
}

// Validator runs the structural comparison pipeline. It holds no state
// across requests and is safe for concurrent use.
type Validator struct {
	fetcher *fetch.Fetcher
	opts    Options
	log     zerolog.Logger
}

// New creates a Validator around the given fetcher and pipeline tuning.
func New(fetcher *fetch.Fetcher, opts Options, log zerolog.Logger) *Validator {
	return &Validator{
		fetcher: fetcher,
		opts:    opts,
		log:     log,
	}
}

// Validate runs fetch, preprocessing, detection and classification for both
// images, then scores the divergence between their line statistics.
//
// The two image pipelines are independent and run concurrently; the scorer
// only consumes the two finished summaries. Any failure on either side
// aborts the whole request - no partial result is returned.
func (v *Validator) Validate(ctx context.Context, req Request) (*Result, error) {
	v.log.Info().
		Str("original", req.OriginalURL).
		Str("enhanced", req.EnhancedURL).
		Float64("sensitivity", req.Sensitivity).
		Msg("starting structural validation")

	var original, enhanced detection.LineSummary

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		summary, err := v.analyze(gctx, req.OriginalURL, "original")
		if err != nil {
			return err
		}
		original = summary
		return nil
	})
	g.Go(func() error {
		summary, err := v.analyze(gctx, req.EnhancedURL, "enhanced")
		if err != nil {
			return err
		}
		enhanced = summary
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	dev := Score(original, enhanced, req.Sensitivity)

	var message string
	if dev.Suspicious {
		message = fmt.Sprintf("Structural consistency check failed (score: %.2f°)", dev.Score)
	} else {
		message = fmt.Sprintf("Structural validation passed: %.2f° deviation", dev.Score)
	}

	v.log.Info().
		Float64("deviation", dev.Score).
		Bool("suspicious", dev.Suspicious).
		Msg("validation complete")

	return &Result{
		Original:        original,
		Enhanced:        enhanced,
		VerticalShift:   round3(dev.VerticalShift),
		HorizontalShift: round3(dev.HorizontalShift),
		DeviationScore:  round3(dev.Score),
		IsSuspicious:    dev.Suspicious,
		Message:         message,
	}, nil
}

// analyze runs the single-image pipeline: fetch, preprocess, detect edges,
// extract segments, classify.
func (v *Validator) analyze(ctx context.Context, url, label string) (detection.LineSummary, error) {
	img, err := v.fetcher.Fetch(ctx, url)
	if err != nil {
		return detection.LineSummary{}, err
	}

	bounds := img.Bounds()
	if bounds.Dx() <= 0 || bounds.Dy() <= 0 {
		return detection.LineSummary{}, &ProcessingError{
			Stage: "preprocessing",
			Err:   fmt.Errorf("%s image has empty bounds", label),
		}
	}

	preprocessed := imaging.Preprocess(img, v.opts.MaxDimension)
	edges := detection.DetectEdges(preprocessed, v.opts.CannyLow, v.opts.CannyHigh)
	segments := detection.DetectSegments(edges, v.opts.Hough)
	if len(segments) == 0 {
		v.log.Warn().Str("image", label).Msg("no lines detected")
	}

	summary := detection.Classify(segments)
	v.log.Info().
		Str("image", label).
		Int("width", preprocessed.Bounds().Dx()).
		Int("height", preprocessed.Bounds().Dy()).
		Int("lines", summary.Count).
		Int("vertical", summary.VerticalCount).
		Int("horizontal", summary.HorizontalCount).
		Msg("image analyzed")

	return summary, nil
}
