package cli

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/permnet/pkg/errors"
	"github.com/matzehuels/permnet/pkg/io"
	"github.com/matzehuels/permnet/pkg/pipeline"
)

// sourceFlags selects the permutation a command works on: positional
// arguments, --file, or --random.
type sourceFlags struct {
	file    string
	random  int
	seed    string
	maxSize int
}

func (f *sourceFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.file, "file", "", `read the permutation from a file ("-" for stdin)`)
	cmd.Flags().IntVar(&f.random, "random", 0, "use a keyed random permutation of this size")
	cmd.Flags().StringVar(&f.seed, "seed", pipeline.DefaultSeed, "key for --random")
	cmd.Flags().IntVar(&f.maxSize, "max-size", pipeline.DefaultMaxSize, "largest accepted permutation")
}

// options builds pipeline options for args and the flags. Arguments may be
// one JSON array, one comma separated list, or separate integers.
func (f *sourceFlags) options(args []string) (pipeline.Options, error) {
	opts := pipeline.Options{
		Random:  f.random,
		Seed:    f.seed,
		MaxSize: f.maxSize,
	}
	sources := 0
	if len(args) > 0 {
		opts.Input = strings.Join(args, " ")
		sources++
	}
	if f.file != "" {
		p, err := readPermutationFile(f.file)
		if err != nil {
			return opts, err
		}
		opts.Permutation = p
		sources++
	}
	if f.random != 0 {
		sources++
	}
	if sources > 1 {
		return opts, errors.New(errors.ErrCodeInvalidInput, "give the permutation as arguments, --file or --random, not several")
	}
	if sources == 0 {
		return opts, errors.New(errors.ErrCodeInvalidInput, "no permutation given (pass values, --file or --random)")
	}
	return opts, nil
}

func readPermutationFile(path string) ([]int, error) {
	if path == "-" {
		return io.ReadPermutation(os.Stdin)
	}
	return io.ImportPermutation(path)
}
