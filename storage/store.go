// Package storage persists serialised networks by name, so trained models survive the
// process that produced them.
package storage

import (
	"context"

	ng "github.com/sharnoff/neurograph"
)

// Store is a named collection of serialised networks. Plain topologies and feed-forward
// wrappers are kept apart: a name saved as one kind cannot be loaded back as the other.
type Store interface {
	Init(ctx context.Context) error

	SaveNetwork(ctx context.Context, name string, net *ng.Network) error
	GetNetwork(ctx context.Context, name string) (*ng.Network, bool, error)

	SaveFeedForward(ctx context.Context, name string, ff *ng.FeedForward) error
	GetFeedForward(ctx context.Context, name string) (*ng.FeedForward, bool, error)

	ListNetworks(ctx context.Context) ([]string, error)
	DeleteNetwork(ctx context.Context, name string) error

	Close() error
}
