package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/permnet/pkg/io"
	"github.com/matzehuels/permnet/pkg/pipeline"
)

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var flags renderFlags

	cmd := &cobra.Command{
		Use:   "render [network.json]",
		Short: "Render a saved network",
		Long: `Render a network saved with 'synth -f json' as text, DOT, SVG or PNG.

The document is checked before rendering: its matrix must have the right
shape and, when it records a permutation, must realize it.

  permnet render rotate.json -f svg,png`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var opts pipeline.Options
			if err := flags.apply(&opts); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], opts, flags)
		},
	}

	flags.register(cmd)
	return cmd
}

func (c *CLI) runRender(ctx context.Context, input string, opts pipeline.Options, flags renderFlags) error {
	net, dest, err := io.ImportNetwork(input)
	if err != nil {
		return fmt.Errorf("load network %s: %w", input, err)
	}

	runner, err := c.newRunner(ctx, flags.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger
	elapsed := startTimer(c.Logger)
	artifacts, cacheHit, err := runner.RenderWithCacheInfo(ctx, net, dest, opts)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	elapsed.done("Rendered", "formats", strings.Join(opts.Formats, ","), "cached", cacheHit)

	return writeArtifacts(artifactWriteParams{
		artifacts: artifacts,
		formats:   opts.Formats,
		input:     input,
		output:    flags.output,
	})
}
