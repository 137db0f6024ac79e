package cli

import (
	"context"
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/matzehuels/permnet/pkg/io"
	"github.com/matzehuels/permnet/pkg/pipeline"
)

// renderFlags are shared by synth and render.
type renderFlags struct {
	formats   string
	output    string
	labels    string
	sentinels bool
	noCache   bool
	refresh   bool
}

func (f *renderFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.formats, "format", "f", "", "output format(s): text (default), json, dot, svg, png (comma-separated)")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVar(&f.labels, "labels", "", "comma-separated input labels for graph formats")
	cmd.Flags().BoolVar(&f.sentinels, "sentinels", false, "draw placeholder and unset cells in graph formats")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "ignore cached results")
}

func (f *renderFlags) apply(opts *pipeline.Options) error {
	opts.Formats = parseFormats(f.formats)
	opts.Labels = parseLabels(f.labels)
	opts.Sentinels = f.sentinels
	opts.Refresh = f.refresh
	return pipeline.ValidateFormats(opts.Formats)
}

// synthCommand creates the synth command.
func (c *CLI) synthCommand() *cobra.Command {
	var (
		src    sourceFlags
		render renderFlags
	)

	cmd := &cobra.Command{
		Use:   "synth [permutation]",
		Short: "Synthesize the network realizing a permutation",
		Long: `Synthesize the switching network that realizes a permutation.

Output slot i of the network receives input dest[i]. The permutation can be
given as arguments, read from a file, or drawn at random from a key:

  permnet synth 3 2 1 0
  permnet synth "[4, 0, 3, 1, 2]" -f json -o rotate.json
  permnet synth --file perm.txt -f svg
  permnet synth --random 64 --seed demo -f text,png -o demo

Results are cached, so repeated runs for the same permutation are instant.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := src.options(args)
			if err != nil {
				return err
			}
			if err := render.apply(&opts); err != nil {
				return err
			}
			return c.runSynth(cmd.Context(), opts, render, src.file)
		},
	}

	src.register(cmd)
	render.register(cmd)
	return cmd
}

func (c *CLI) runSynth(ctx context.Context, opts pipeline.Options, flags renderFlags, input string) error {
	runner, err := c.newRunner(ctx, flags.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger
	result, err := runner.Execute(ctx, opts)
	if err != nil {
		return err
	}

	params := artifactWriteParams{
		artifacts: result.Artifacts,
		formats:   opts.Formats,
		input:     input,
		output:    flags.output,
	}
	if err := writeArtifacts(params); err != nil {
		return err
	}

	c.Logger.Debug("network ready",
		"permutation", io.FormatPermutation(result.Permutation),
		"hash", result.NetworkHash,
		"cached", result.CacheInfo.SynthesizeHit)
	if flags.output != "" {
		printStats(result.Stats, result.CacheInfo.SynthesizeHit)
	}
	if !params.toStdout() && slices.Contains(opts.Formats, pipeline.FormatJSON) {
		printNextStep("Route values through it", "permnet route "+params.path(pipeline.FormatJSON)+" --values ...")
	}
	return nil
}
