// Package geom provides the coordinate-space math shared by the springboard
// engine.
//
// All types are plain values. Two coordinate systems are in play:
//
//   - Content space: the unscaled surface that holds every item. Item centers
//     and the grid geometry live here.
//   - Viewport space: on-screen coordinates after the zoom scale (and, for
//     positions, the scroll offset) has been applied.
//
// [ToContentSpace] and [ToViewportSpace] convert between the two for a given
// zoom scale. [SquaredDistance] is used for threshold comparisons and
// [Distance] for ranking candidates.
package geom
