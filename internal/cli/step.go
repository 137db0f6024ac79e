package cli

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/permnet/pkg/pipeline"
)

// stepCommand creates the step command, an interactive routing walkthrough.
func (c *CLI) stepCommand() *cobra.Command {
	var (
		src     sourceFlags
		labels  string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "step [permutation]",
		Short: "Step values through a synthesized network level by level",
		Example: `  permnet step 1 2 3 4 0
  permnet step --random 32 --labels a,b,c,...`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := src.options(args)
			if err != nil {
				return err
			}
			return c.runStep(cmd.Context(), opts, parseLabels(labels), noCache)
		},
	}

	src.register(cmd)
	cmd.Flags().StringVar(&labels, "labels", "", "comma-separated values to route (default wire indices)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	return cmd
}

func (c *CLI) runStep(ctx context.Context, opts pipeline.Options, labels []string, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	dest, err := pipeline.Parse(opts)
	if err != nil {
		return err
	}
	net, _, err := runner.SynthesizeWithCacheInfo(ctx, dest, opts)
	if err != nil {
		return err
	}

	model, err := NewStepModel(net, labels)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(model, tea.WithContext(ctx), tea.WithAltScreen()).Run()
	return err
}
