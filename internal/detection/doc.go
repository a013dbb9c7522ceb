// Package detection implements the line detection stages of the structural
// validation pipeline: edge extraction, Hough segment detection and angle
// classification.
//
// # Pipeline
//
// The stages compose in a fixed order on a preprocessed grayscale image:
//
//  1. DetectEdges: Canny-style edge extraction (Sobel gradients, non-maximum
//     suppression, hysteresis thresholding) producing a binary edge map
//  2. DetectSegments: Hough transform with 1° angular and 1px distance
//     resolution, extracting straight segments with gap bridging
//  3. Classify: bucketing segments into vertical and horizontal lines and
//     computing per-bucket angle statistics
//
// # Coordinate System
//
// All coordinates use the standard image convention: origin (0, 0) at the
// top-left corner, X increasing rightward, Y increasing downward. Segment
// angles come from atan2 in this coordinate system, so positive angles point
// below the horizontal axis.
//
// # Performance Considerations
//
// The Hough accumulator iterates over every edge pixel for each of 180
// angles; callers should downscale large images first. The preprocessor
// bounds inputs to 1920px on the longer side for exactly this reason.
//
// Detection works best on clean, high-contrast photographs with straight
// architectural features. An image where no line clears the thresholds is a
// valid zero-count result, not an error.
package detection
