// Package store persists named networks for the HTTP service.
//
// Two backends are provided:
//   - [MemoryStore]: in-process, for development and tests
//   - [MongoStore]: MongoDB, for deployments with several API instances
//
// Records are keyed by a random UUID assigned on [Store.Put]. The stored
// document is the same [io.NetworkDoc] the CLI reads and writes, so a record
// fetched from the API can be fed straight back into `permnet route`.
package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/permnet/pkg/benes"
	"github.com/matzehuels/permnet/pkg/errors"
	"github.com/matzehuels/permnet/pkg/io"
)

// Record is a stored network.
type Record struct {
	ID        string        `json:"id" bson:"_id"`
	Name      string        `json:"name,omitempty" bson:"name,omitempty"`
	CreatedAt time.Time     `json:"created_at" bson:"created_at"`
	Network   io.NetworkDoc `json:"network" bson:"network"`
}

// Store is the interface for network storage backends.
type Store interface {
	// Put stores rec, assigning ID and CreatedAt when they are empty.
	Put(ctx context.Context, rec *Record) error

	// Get returns the record with the given ID.
	// Returns a NOT_FOUND error if no such record exists.
	Get(ctx context.Context, id string) (*Record, error)

	// Delete removes a record. Returns NOT_FOUND if it did not exist.
	Delete(ctx context.Context, id string) error

	// Close releases backend resources.
	Close() error
}

// NewRecord builds a record for net. dest is the permutation net realizes and
// is stored alongside the matrix so readers can verify it.
func NewRecord(name string, net *benes.Network, dest []int) (*Record, error) {
	if name != "" {
		if err := errors.ValidateName(name); err != nil {
			return nil, err
		}
	}
	return &Record{Name: name, Network: io.NewNetworkDoc(net, dest)}, nil
}

// prepare fills ID and CreatedAt and checks the record before it is written.
func prepare(rec *Record) error {
	if rec == nil {
		return errors.New(errors.ErrCodeInvalidInput, "record is nil")
	}
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	} else if err := errors.ValidateNetworkID(rec.ID); err != nil {
		return err
	}
	if rec.Name != "" {
		if err := errors.ValidateName(rec.Name); err != nil {
			return err
		}
	}
	if _, err := rec.Network.Network(); err != nil {
		return err
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	}
	return nil
}

func notFound(id string) error {
	return errors.New(errors.ErrCodeNotFound, "network %s not found", id)
}
