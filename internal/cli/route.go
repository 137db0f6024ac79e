package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/permnet/pkg/benes"
	"github.com/matzehuels/permnet/pkg/io"
)

// routeCommand creates the route command.
func (c *CLI) routeCommand() *cobra.Command {
	var values string

	cmd := &cobra.Command{
		Use:   "route [network.json]",
		Short: "Route values through a saved network",
		Long: `Route values through a network saved with 'synth -f json'.

Without --values, prints the permutation the network realizes.

  permnet route rotate.json --values a,b,c,d,e`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			net, _, err := io.ImportNetwork(args[0])
			if err != nil {
				return err
			}
			c.Logger.Debug("loaded network", "n", net.N, "levels", net.Levels())

			if values == "" {
				p, err := net.Permutation()
				if err != nil {
					return err
				}
				fmt.Fprintln(stdout, io.FormatPermutation(p))
				return nil
			}
			out, err := benes.Apply(net, strings.Split(values, ","))
			if err != nil {
				return err
			}
			fmt.Fprintln(stdout, strings.Join(out, ","))
			return nil
		},
	}

	cmd.Flags().StringVar(&values, "values", "", "comma-separated values to route, one per input")
	return cmd
}
