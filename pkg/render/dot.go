package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/permnet/pkg/benes"
)

// Options configures DOT rendering.
type Options struct {
	// Labels names the input values. Missing labels fall back to the index.
	Labels []string

	// Sentinels draws unset and placeholder cells as faded boxes.
	Sentinels bool
}

func (o Options) label(i int) string {
	if i < len(o.Labels) {
		return o.Labels[i]
	}
	return strconv.Itoa(i)
}

// ToDOT converts a network to Graphviz DOT. Inputs enter on the left, each
// level is one rank of switch boxes, and outputs leave on the right carrying
// the label of the input routed there.
//
// Crossed switches are filled; straight switches are outlined.
func ToDOT(net *benes.Network, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph Benes {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  splines=line;\n")
	buf.WriteString("  node [fontname=\"SF Mono, Menlo, monospace\", fontsize=12];\n")
	buf.WriteString("  edge [arrowhead=none];\n\n")

	holder := make([]string, net.N)
	buf.WriteString("  { rank=same;")
	for i := range net.N {
		holder[i] = fmt.Sprintf("in%d", i)
		fmt.Fprintf(&buf, " %s;", holder[i])
	}
	buf.WriteString(" }\n")
	for i := range net.N {
		fmt.Fprintf(&buf, "  in%d [label=%q, shape=plaintext];\n", i, opts.label(i))
	}

	routed := make([]int, net.N)
	for i := range routed {
		routed[i] = i
	}
	for l, gates := range benes.Topology(net.N) {
		fmt.Fprintf(&buf, "\n  // level %d\n", l)
		wired := make(map[int]bool, len(gates))
		for _, g := range gates {
			wired[g.Column] = true
			s := net.Matrix.At(l, g.Column)
			id := fmt.Sprintf("s%d_%d", l, g.Column)
			style := "rounded"
			if s == benes.Cross {
				style = "rounded,filled"
			}
			fmt.Fprintf(&buf, "  %s [label=%q, shape=box, style=%q, fillcolor=\"#cfe3ff\"];\n", id, s.String(), style)
			fmt.Fprintf(&buf, "  %s -> %s [headlabel=\"%d\"];\n", holder[g.A], id, g.A)
			fmt.Fprintf(&buf, "  %s -> %s [headlabel=\"%d\"];\n", holder[g.B], id, g.B)
			holder[g.A], holder[g.B] = id, id
			if s == benes.Cross {
				routed[g.A], routed[g.B] = routed[g.B], routed[g.A]
			}
		}
		if opts.Sentinels {
			for c := range net.Columns() {
				if wired[c] {
					continue
				}
				fmt.Fprintf(&buf, "  s%d_%d [label=%q, shape=box, style=dashed, color=grey, fontcolor=grey];\n",
					l, c, net.Matrix.At(l, c).String())
			}
		}
	}

	buf.WriteString("\n  { rank=same;")
	for o := range net.N {
		fmt.Fprintf(&buf, " out%d;", o)
	}
	buf.WriteString(" }\n")
	for o := range net.N {
		fmt.Fprintf(&buf, "  out%d [label=%q, shape=plaintext];\n", o, opts.label(routed[o]))
		fmt.Fprintf(&buf, "  %s -> out%d;\n", holder[o], o)
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	out, err := renderDOT(ctx, dot, graphviz.SVG)
	if err != nil {
		return nil, err
	}
	return normalizeViewBox(out), nil
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(ctx context.Context, dot string) ([]byte, error) {
	return renderDOT(ctx, dot, graphviz.PNG)
}

func renderDOT(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render %s: %w", format, err)
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root tag so the SVG scales to its container.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}
