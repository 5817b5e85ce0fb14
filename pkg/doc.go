// Package pkg holds the libraries behind the springboard command.
//
// # Overview
//
// A springboard is a zoomable, pannable grid of circular app icons on a small
// round or square screen. Items near the viewport edge shrink and slide
// inward, gestures come to rest centered on an item, and a double tap
// toggles between the overview and a single item.
//
// The pkg directory is organized into three areas:
//
//  1. Engine: [geom], [springboard] and its layout, distort and snap
//     subpackages, [anim]
//  2. Simulation: [viewport] (a scroll view with momentum and springs) and
//     [script] (scenes and TOML gesture scripts)
//  3. Output: [render] and render/sink (SVG, PNG, JSON, terminal), [cache],
//     [config], [errors], [observability], [buildinfo]
//
// # Architecture
//
//	config.Config
//	     ↓
//	script.Scene ── viewport.Scroller ⇄ springboard.Springboard
//	     ↓                                  ↓ layout · distort · snap
//	render.Capture → render.Frame
//	     ↓
//	sink.RenderSVG / RenderPNG / RenderJSON / RenderTerminal
//	     ↓
//	cache.Cache (file or redis)
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/springboard/pkg/config"
//	    "github.com/matzehuels/springboard/pkg/render/sink"
//	    "github.com/matzehuels/springboard/pkg/script"
//	)
//
//	sc := script.NewScene(config.Default(), nil)
//	_ = sc.Board.FocusOn(12, 0.8, true)
//	sc.Settle(script.DefaultSettleLimit)
//	svg := sink.RenderSVG(sc.Capture())
package pkg
