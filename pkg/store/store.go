// Package store persists chart definitions for the HTTP API.
//
// Two implementations are provided: [MemoryStore] for tests and
// single-process deployments, and [MongoStore] for durable storage. Both
// assign server-generated IDs and manage the created/updated timestamps;
// callers never set storage metadata themselves.
package store

import (
	"context"

	"github.com/blueprintmrk/graphy/pkg/chartio"
	"github.com/blueprintmrk/graphy/pkg/errors"
)

// Store is the chart definition repository interface.
//
// Create and Update return the stored definition with metadata filled in.
// Get and Delete report a CHART_NOT_FOUND coded error for unknown IDs.
type Store interface {
	Create(ctx context.Context, def *chartio.Definition) (*chartio.Definition, error)
	Get(ctx context.Context, id string) (*chartio.Definition, error)
	List(ctx context.Context) ([]*chartio.Definition, error)
	Update(ctx context.Context, def *chartio.Definition) (*chartio.Definition, error)
	Delete(ctx context.Context, id string) error
	Close(ctx context.Context) error
}

func notFound(id string) error {
	return errors.New(errors.ErrCodeChartNotFound, "chart %s not found", id)
}
