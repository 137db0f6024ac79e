package cli

import (
	"context"
	"fmt"
	"runtime"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/permnet/pkg/benes"
	"github.com/matzehuels/permnet/pkg/errors"
	"github.com/matzehuels/permnet/pkg/io"
	"github.com/matzehuels/permnet/pkg/perm"
)

const (
	maxExhaustive = 10
	verifyChunk   = 4096
)

type verifyOpts struct {
	maxN      int
	maxRandom int
	samples   int
	seed      string
	workers   int
}

// verifyCommand creates the verify command.
func (c *CLI) verifyCommand() *cobra.Command {
	opts := verifyOpts{maxN: 7, maxRandom: 1024, samples: 64, seed: "verify", workers: runtime.GOMAXPROCS(0)}

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Check synthesis against every permutation up to a size",
		Long: `Synthesize and route every permutation of size 1..--max-n, then a keyed
sample of random permutations up to --max-random, and check that each
network realizes its permutation.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.maxN < 1 || opts.maxN > maxExhaustive {
				return errors.New(errors.ErrCodeInvalidInput, "--max-n must be between 1 and %d", maxExhaustive)
			}
			if opts.workers < 1 {
				opts.workers = 1
			}
			return c.runVerify(cmd.Context(), opts)
		},
	}

	cmd.Flags().IntVar(&opts.maxN, "max-n", opts.maxN, "verify all permutations up to this size")
	cmd.Flags().IntVar(&opts.maxRandom, "max-random", opts.maxRandom, "largest size for random samples (0 disables)")
	cmd.Flags().IntVar(&opts.samples, "samples", opts.samples, "random permutations per sampled size")
	cmd.Flags().StringVar(&opts.seed, "seed", opts.seed, "key for random samples")
	cmd.Flags().IntVar(&opts.workers, "workers", opts.workers, "concurrent synthesis workers")
	return cmd
}

func (c *CLI) runVerify(ctx context.Context, opts verifyOpts) error {
	spinner := newSpinner(ctx, "Verifying...")
	spinner.Start()
	defer spinner.Stop()
	logger := loggerFromContext(ctx)
	elapsed := startTimer(logger)
	fail := func(n int, err error) error {
		if spinner.Cancelled() {
			spinner.Stop()
			return ctx.Err()
		}
		spinner.StopWithError("Verification failed at n=%d", n)
		return err
	}

	total := 0
	for n := 1; n <= opts.maxN; n++ {
		all := perm.Generate(n, 0)
		for start := 0; start < len(all); start += verifyChunk {
			spinner.Update("n=%d: %d/%d", n, start, len(all))
			if err := verifyBatch(ctx, all[start:min(start+verifyChunk, len(all))], opts.workers); err != nil {
				return fail(n, err)
			}
		}
		total += len(all)
		logger.Debug("exhaustive size verified", "n", n, "count", len(all))
	}

	sampled, largest := 0, opts.maxN
	for n := opts.maxN + 1; n <= opts.maxRandom && opts.samples > 0; n = nextSampleSize(n) {
		spinner.Update("random n=%d", n)
		batch := make([][]int, opts.samples)
		for i := range batch {
			batch[i] = perm.FromKey([]byte(opts.seed+"/"+strconv.Itoa(n)+"/"+strconv.Itoa(i)), n)
		}
		if err := verifyBatch(ctx, batch, opts.workers); err != nil {
			return fail(n, err)
		}
		sampled += len(batch)
		largest = n
	}

	spinner.StopWithSuccess("All networks realize their permutations")
	printKeyValue("exhaustive", fmt.Sprintf("%d (n ≤ %d)", total, opts.maxN))
	printKeyValue("random", fmt.Sprintf("%d (seed %q)", sampled, opts.seed))
	printKeyValue("largest n", strconv.Itoa(largest))
	elapsed.done("Verification complete", "permutations", total+sampled)
	return nil
}

// nextSampleSize walks sizes densely while small, then geometrically.
func nextSampleSize(n int) int {
	if n < 64 {
		return n + 1
	}
	return n + n/4 + 1
}

func verifyBatch(ctx context.Context, dests [][]int, workers int) error {
	nets, err := benes.SynthesizeAll(ctx, dests, workers)
	if err != nil {
		return err
	}
	for i, net := range nets {
		if err := benes.Verify(net, dests[i]); err != nil {
			return fmt.Errorf("permutation %s: %w", io.FormatPermutation(dests[i]), err)
		}
	}
	return nil
}
