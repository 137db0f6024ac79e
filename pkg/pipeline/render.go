package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/permnet/pkg/benes"
	"github.com/matzehuels/permnet/pkg/errors"
	"github.com/matzehuels/permnet/pkg/io"
	"github.com/matzehuels/permnet/pkg/render"
)

// Render generates output artifacts in the requested formats.
func Render(ctx context.Context, net *benes.Network, dest []int, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}
	if opts.NeedsGraphviz() && net.N > MaxRenderSize {
		return nil, errors.New(errors.ErrCodeUnsupported,
			"graph formats are limited to %d inputs, network has %d", MaxRenderSize, net.N)
	}

	var dot string
	if opts.NeedsGraphviz() {
		dot = render.ToDOT(net, render.Options{Labels: opts.Labels, Sentinels: opts.Sentinels})
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatJSON:
			data, err = io.MarshalNetwork(net, dest)
		case FormatText:
			data = []byte(render.Text(net))
		case FormatDOT:
			data = []byte(dot)
		case FormatSVG:
			data, err = render.RenderSVG(ctx, dot)
		case FormatPNG:
			data, err = render.RenderPNG(ctx, dot)
		default:
			return nil, ValidateFormat(format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}
