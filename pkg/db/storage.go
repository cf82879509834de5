package db

import (
	"context"

	"github.com/launchpod/launchpod/pkg/model"
)

const (
	CurrentVersion = 1
)

// Storage abstracts the durable key-value store that keeps feed
// records. Records are write-once: there is no update path, only
// create, point lookup, owner-scoped listing and delete.
type Storage interface {
	Close() error
	Version() (int, error)

	// CreateFeed assigns a new globally unique identifier to the record,
	// persists it and returns the identifier. Every call creates a new
	// record, even for identical content.
	CreateFeed(ctx context.Context, record *model.FeedRecord) (string, error)

	// GetFeed performs a point lookup. It fails with ErrInvalidID when
	// the identifier can't be parsed as a store key at all, and with
	// ErrNotFound when no record exists under it.
	GetFeed(ctx context.Context, id string) (*model.FeedRecord, error)

	// ListFeeds returns the owner's records ordered by creation time,
	// most recent first. Owners with no records get an empty slice.
	ListFeeds(ctx context.Context, ownerEmail string) ([]*model.FeedRecord, error)

	// DeleteFeed removes the record. Irreversible, identifiers are
	// never reused.
	DeleteFeed(ctx context.Context, id string) error
}

// Config is the database section of the configuration file.
type Config struct {
	// Dir is a directory to keep database files
	Dir    string        `toml:"dir"`
	Badger *BadgerConfig `toml:"badger"`
}
