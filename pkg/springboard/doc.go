// Package springboard implements a zoomable, scrollable grid of circular items
// in the style of a watch-face launcher.
//
// A [Springboard] owns the item collection and coordinates three engines
// against a host-provided [Viewport]:
//
//   - [layout] places items on a staggered grid and sizes the content.
//   - [distort] shrinks and nudges items as they approach a viewport edge.
//   - [snap] settles the viewport on the nearest item after a gesture.
//
// # Layout Pass
//
// Mutations (new items, diameter, padding, viewport size) only set dirty
// flags. The host calls [Springboard.Layout] once per frame; the pass runs, in
// order:
//
//  1. grid recompute and item placement, if the layout is dirty
//  2. minimum zoom update and refocus, if the zoom bounds are dirty
//  3. the edge distortion of every item, always
//
// Each flag is cleared before its step runs, so an invalidation raised while a
// pass is in progress is picked up by the next pass instead of recursing.
//
// # Events
//
// The viewport reports gestures through [EventHandler], which Springboard
// implements. Handlers only record intent or start animated viewport moves;
// they never recompute geometry.
//
// # Usage
//
//	vp := viewport.New(geom.Sz(320, 320))
//	sb := springboard.New(vp, springboard.WithAnimator(timeline))
//	vp.SetHandler(sb)
//	sb.SetItems(items)
//	sb.Layout()
//	sb.PlayIntroAnimation()
package springboard
