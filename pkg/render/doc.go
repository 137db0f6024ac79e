// Package render provides visualization of synthesized networks.
//
// # Overview
//
// Three outputs are supported:
//
//   - Plain text: one row per level, used by the CLI ([Text])
//   - Graphviz DOT: wires flow left to right through the switches ([ToDOT])
//   - SVG and PNG: DOT rendered with Graphviz ([RenderSVG], [RenderPNG])
//
// Rendering SVG or PNG goes through github.com/goccy/go-graphviz, which
// embeds Graphviz; no external binaries are required.
//
//	dot := render.ToDOT(net, render.Options{Labels: []string{"a", "b", "c"}})
//	svg, err := render.RenderSVG(ctx, dot)
package render
