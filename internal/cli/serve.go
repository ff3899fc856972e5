package cli

import (
	"context"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/wordsphere/pkg/cache"
	"github.com/matzehuels/wordsphere/pkg/config"
	"github.com/matzehuels/wordsphere/pkg/extract"
	"github.com/matzehuels/wordsphere/pkg/httputil"
	"github.com/matzehuels/wordsphere/pkg/pipeline"
	"github.com/matzehuels/wordsphere/pkg/server"
	"github.com/matzehuels/wordsphere/pkg/store"
)

// shutdownTimeout bounds graceful shutdown after SIGINT/SIGTERM.
const shutdownTimeout = 10 * time.Second

// serveOpts holds flags for the serve command. Empty values keep the config.
type serveOpts struct {
	addr    string
	redis   string
	mongo   string
	noCache bool
}

// serveCommand creates the backend server command.
func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the article analysis service",
		Long: `Serve runs the HTTP service behind POST /analyze.

Results are cached in Redis when --redis is set, otherwise in the local file
cache. History goes to MongoDB when --mongo is set, otherwise it is kept in
memory.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.config()
			if err != nil {
				return err
			}
			applyServeOpts(cfg, opts)
			return runServe(cmd.Context(), cfg, loggerFromContext(cmd.Context()))
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", "", "listen address (default from config, :8000)")
	cmd.Flags().StringVar(&opts.redis, "redis", "", "Redis address for the result cache")
	cmd.Flags().StringVar(&opts.mongo, "mongo", "", "MongoDB URI for analysis history")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable result caching")

	return cmd
}

func applyServeOpts(cfg *config.Config, opts serveOpts) {
	if opts.addr != "" {
		cfg.Server.Addr = opts.addr
	}
	if opts.redis != "" {
		cfg.Redis.Addr = opts.redis
	}
	if opts.mongo != "" {
		cfg.Mongo.URI = opts.mongo
	}
	if opts.noCache {
		cfg.Server.NoCache = true
	}
}

// newRunner wires the cache, history store and extractor from cfg.
func newRunner(ctx context.Context, cfg *config.Config, logger *log.Logger) (*pipeline.Runner, error) {
	c, err := newCache(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	var st store.Store = store.NewMemoryStore(store.WithMaxRecords(cfg.Server.HistoryLimit))
	if cfg.Mongo.URI != "" {
		st, err = store.NewMongoStore(ctx, store.MongoConfig{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			c.Close()
			return nil, err
		}
	}

	fetcher := httputil.NewFetcher(
		httputil.WithTimeout(cfg.Server.FetchTimeout),
		httputil.WithRetry(cfg.Server.FetchRetries, httputil.DefaultDelay),
	)
	var keyer cache.Keyer
	if cfg.Server.CachePrefix != "" {
		keyer = cache.NewScopedKeyer(nil, cfg.Server.CachePrefix)
	}
	return pipeline.NewRunner(c, keyer, st, extract.New(fetcher, cfg.Server.MaxFeatures), logger), nil
}

func runServe(ctx context.Context, cfg *config.Config, logger *log.Logger) error {
	runner, err := newRunner(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer runner.Close()

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           server.New(runner, runner.Store, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("listening", "addr", cfg.Server.Addr, "redis", cfg.Redis.Addr != "", "mongo", cfg.Mongo.URI != "")
		if err := srv.ListenAndServe(); !stderrors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
