package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/blueprintmrk/graphy/pkg/cache"
	"github.com/blueprintmrk/graphy/pkg/httpapi"
	"github.com/blueprintmrk/graphy/pkg/pipeline"
	"github.com/blueprintmrk/graphy/pkg/store"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr     string // listen address
	mongoURI string // MongoDB connection URI ("" uses the in-memory store)
	mongoDB  string // MongoDB database name
	redisURL string // Redis URL ("" uses the file cache)
	noCache  bool   // disable artifact caching entirely
}

// serveCommand creates the serve command for running the HTTP API.
//
// Storage and caching are selected by flags:
//   - --mongo-uri switches chart storage from in-memory to MongoDB
//   - --redis-url switches the artifact cache from the file cache to Redis
//   - --no-cache disables artifact caching
func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), &opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&opts.mongoURI, "mongo-uri", "", "MongoDB URI for chart storage (in-memory when unset)")
	cmd.Flags().StringVar(&opts.mongoDB, "mongo-db", appName, "MongoDB database name")
	cmd.Flags().StringVar(&opts.redisURL, "redis-url", "", "Redis URL for the artifact cache (file cache when unset)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, opts *serveOpts) error {
	st, err := c.newStore(ctx, opts)
	if err != nil {
		return err
	}
	defer st.Close(context.Background())

	artifactCache, err := c.newServeCache(ctx, opts)
	if err != nil {
		return err
	}

	runner := pipeline.NewRunner(artifactCache, nil, c.Logger)
	defer runner.Close()

	server := httpapi.NewServer(st, runner, c.Logger)
	httpServer := &http.Server{
		Addr:              opts.addr,
		Handler:           server.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		c.Logger.Info("listening", "addr", opts.addr)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		c.Logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	}
}

// newStore picks the chart store backend from the serve flags.
func (c *CLI) newStore(ctx context.Context, opts *serveOpts) (store.Store, error) {
	if opts.mongoURI == "" {
		printWarning("Using the in-memory chart store; stored charts are lost on shutdown")
		return store.NewMemoryStore(), nil
	}
	c.Logger.Debug("using MongoDB chart store", "db", opts.mongoDB)
	ms, err := store.NewMongoStore(ctx, opts.mongoURI, opts.mongoDB)
	if err != nil {
		return nil, err
	}
	return ms, nil
}

// newServeCache picks the artifact cache backend from the serve flags.
func (c *CLI) newServeCache(ctx context.Context, opts *serveOpts) (cache.Cache, error) {
	if opts.noCache {
		return cache.NewNullCache(), nil
	}
	if opts.redisURL != "" {
		c.Logger.Debug("using Redis artifact cache")
		rc, err := cache.NewRedisCache(ctx, opts.redisURL)
		if err != nil {
			return nil, err
		}
		return rc, nil
	}
	return newCache(false)
}
