// Package imaging provides the preprocessing stage of the structural
// validation pipeline.
//
// Preprocessing normalizes a freshly decoded photograph for line detection:
// oversized images are scaled down with area-averaging resampling, color is
// collapsed to single-channel luminance, and a 5x5 Gaussian pass suppresses
// sensor noise that would otherwise fragment edges.
//
// All operations are stateless and work with standard Go image.Image types;
// the output is always an *image.Gray with its origin at (0, 0).
package imaging
