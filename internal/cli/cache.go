package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/permnet/internal/config"
	"github.com/matzehuels/permnet/pkg/cache"
	"github.com/matzehuels/permnet/pkg/errors"
)

// cacheCommand groups the cache maintenance subcommands.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or clear the network cache",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "clear",
			Short: "Remove all cached networks and artifacts",
			Args:  cobra.NoArgs,
			RunE:  func(cmd *cobra.Command, args []string) error { return c.clearCache() },
		},
		&cobra.Command{
			Use:   "path",
			Short: "Print the file cache directory",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				dir, err := c.config.CacheDir()
				if err != nil {
					return fmt.Errorf("get cache dir: %w", err)
				}
				fmt.Fprintln(stdout, dir)
				return nil
			},
		},
	)
	return cmd
}

// clearCache empties the file cache. Redis entries expire on their own and
// are shared with other instances, so they are left alone.
func (c *CLI) clearCache() error {
	switch c.config.Cache.Backend {
	case config.BackendMemory, config.BackendNone:
		printInfo("The %s backend keeps nothing between runs", c.config.Cache.Backend)
		return nil
	case config.BackendRedis:
		return errors.New(errors.ErrCodeUnsupported, "cache clear only handles the file backend; use FLUSHDB or key expiry for redis")
	}

	dir, err := c.config.CacheDir()
	if err != nil {
		return fmt.Errorf("get cache dir: %w", err)
	}
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		printInfo("Cache is empty")
		return nil
	}

	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return err
	}
	n, err := fc.Clear()
	if err != nil {
		return err
	}
	printSuccess("Cleared %d cached entries", n)
	printDetail("Directory: %s", dir)
	return nil
}
