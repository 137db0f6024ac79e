package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/matzehuels/permnet/internal/config"
	"github.com/matzehuels/permnet/internal/server"
	"github.com/matzehuels/permnet/pkg/pipeline"
)

// serveCommand creates the serve command, which runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Serve synthesis, routing and stored networks over HTTP. Cache and store
backends come from the config file; Prometheus metrics are exposed on /metrics.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = c.config.Server.Addr
			}
			return c.runServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr string) error {
	cfg := c.config

	backend, err := cfg.OpenCache(ctx)
	if err != nil {
		return err
	}
	runner := pipeline.NewRunner(backend, cfg.Keyer(), c.Logger)
	defer runner.Close()

	st, err := cfg.OpenStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close()
	if cfg.Store.Backend != config.BackendMongo {
		printWarning("Stored networks are kept in memory and lost on exit")
	}

	srv, err := server.New(server.Config{
		Runner:       runner,
		Store:        st,
		Logger:       c.Logger,
		MaxSize:      cfg.Server.MaxSize,
		BatchWorkers: cfg.Server.BatchWorkers,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	})
	if err != nil {
		return err
	}
	srv.Metrics().Install()

	c.Logger.Info("listening", "addr", addr, "cache", cfg.Cache.Backend, "store", cfg.Store.Backend)
	return srv.ListenAndServe(ctx, addr)
}
