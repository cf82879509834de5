package db

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/dgraph-io/badger"
	"github.com/dgraph-io/badger/options"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/launchpod/launchpod/pkg/model"
)

const (
	versionPath = "launchpod/version"
	feedPrefix  = "feed/"
	feedPath    = "feed/%s"
)

// BadgerConfig represents BadgerDB configuration parameters
type BadgerConfig struct {
	Truncate bool `toml:"truncate"`
	FileIO   bool `toml:"file_io"`
}

type Badger struct {
	db  *badger.DB
	ids *idCodec
}

var _ Storage = (*Badger)(nil)

func NewBadger(config *Config) (*Badger, error) {
	var (
		dir = config.Dir
	)

	log.Infof("opening database %q", dir)

	// Make sure database directory exists
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.Wrap(err, "could not mkdir database dir")
	}

	opts := badger.DefaultOptions(dir).
		WithLogger(log.StandardLogger()).
		WithTruncate(true)

	if config.Badger != nil {
		opts.Truncate = config.Badger.Truncate
		if config.Badger.FileIO {
			opts.ValueLogLoadingMode = options.FileIO
		}
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open database")
	}

	ids, err := newIDCodec()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create id codec")
	}

	storage := &Badger{db: db, ids: ids}

	if err := db.Update(func(txn *badger.Txn) error {
		if err := storage.setObj(txn, []byte(versionPath), CurrentVersion, false); err != nil && err != model.ErrAlreadyExists {
			return err
		}
		return nil
	}); err != nil {
		return nil, errors.Wrap(err, "failed to read database version")
	}

	return storage, nil
}

func (b *Badger) Close() error {
	log.Debug("closing database")
	return b.db.Close()
}

func (b *Badger) Version() (int, error) {
	var (
		version = -1
	)

	err := b.db.View(func(txn *badger.Txn) error {
		return b.getObj(txn, []byte(versionPath), &version)
	})

	return version, err
}

func (b *Badger) CreateFeed(_ context.Context, record *model.FeedRecord) (string, error) {
	if record.CreatedAt == 0 {
		record.CreatedAt = time.Now().UnixMilli()
	}

	// Sequence-based ids collide only if two stores share a directory,
	// but a fresh id is cheap, so retry a few times anyway.
	for attempt := 0; attempt < 3; attempt++ {
		id, err := b.ids.Generate()
		if err != nil {
			return "", errors.Wrap(err, "failed to generate feed id")
		}

		record.ID = id

		err = b.db.Update(func(txn *badger.Txn) error {
			return b.setObj(txn, b.getKey(feedPath, id), record, false)
		})
		if err == model.ErrAlreadyExists {
			continue
		}
		if err != nil {
			return "", errors.Wrap(err, "failed to save feed")
		}

		return id, nil
	}

	return "", errors.New("failed to allocate unique feed id")
}

func (b *Badger) GetFeed(_ context.Context, id string) (*model.FeedRecord, error) {
	if err := b.ids.Validate(id); err != nil {
		return nil, err
	}

	var (
		record  = model.FeedRecord{}
		feedKey = b.getKey(feedPath, id)
	)

	if err := b.db.View(func(txn *badger.Txn) error {
		return b.getObj(txn, feedKey, &record)
	}); err != nil {
		return nil, err
	}

	return &record, nil
}

func (b *Badger) ListFeeds(_ context.Context, ownerEmail string) ([]*model.FeedRecord, error) {
	records := []*model.FeedRecord{}

	if err := b.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = b.getKey(feedPrefix)
		opts.PrefetchValues = true
		return b.iterator(txn, opts, func(item *badger.Item) error {
			record := &model.FeedRecord{}
			if err := b.unmarshalObj(item, record); err != nil {
				return err
			}

			if record.OwnerEmail == ownerEmail {
				records = append(records, record)
			}

			return nil
		})
	}); err != nil {
		return nil, err
	}

	// Most recent first
	sort.Slice(records, func(i, j int) bool {
		if records[i].CreatedAt != records[j].CreatedAt {
			return records[i].CreatedAt > records[j].CreatedAt
		}
		return records[i].ID > records[j].ID
	})

	return records, nil
}

func (b *Badger) DeleteFeed(_ context.Context, id string) error {
	if err := b.ids.Validate(id); err != nil {
		return err
	}

	feedKey := b.getKey(feedPath, id)

	return b.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(feedKey); err != nil {
			if err == badger.ErrKeyNotFound {
				return model.ErrNotFound
			}
			return errors.Wrapf(err, "failed to query feed %q", id)
		}

		if err := txn.Delete(feedKey); err != nil {
			return errors.Wrapf(err, "failed to delete feed %q", id)
		}

		return nil
	})
}

func (b *Badger) iterator(txn *badger.Txn, opts badger.IteratorOptions, callback func(item *badger.Item) error) error {
	iter := txn.NewIterator(opts)
	defer iter.Close()

	for iter.Rewind(); iter.Valid(); iter.Next() {
		item := iter.Item()

		if err := callback(item); err != nil {
			return err
		}
	}

	return nil
}

func (b *Badger) getKey(format string, a ...interface{}) []byte {
	resourcePath := fmt.Sprintf(format, a...)
	fullPath := fmt.Sprintf("launchpod/v%d/%s", CurrentVersion, resourcePath)

	return []byte(fullPath)
}

func (b *Badger) setObj(txn *badger.Txn, key []byte, obj interface{}, overwrite bool) error {
	if !overwrite {
		// Overwrites are not allowed, make sure there is no object with the given key
		_, err := txn.Get(key)
		if err == nil {
			return model.ErrAlreadyExists
		} else if err != badger.ErrKeyNotFound {
			return errors.Wrap(err, "failed to check whether key exists")
		}
	}

	data, err := b.marshalObj(obj)
	if err != nil {
		return errors.Wrapf(err, "failed to serialize object for key %q", key)
	}

	return txn.Set(key, data)
}

func (b *Badger) getObj(txn *badger.Txn, key []byte, out interface{}) error {
	item, err := txn.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return model.ErrNotFound
		}

		return err
	}

	return b.unmarshalObj(item, out)
}

func (b *Badger) marshalObj(obj interface{}) ([]byte, error) {
	return json.Marshal(obj)
}

func (b *Badger) unmarshalObj(item *badger.Item, out interface{}) error {
	return item.Value(func(val []byte) error {
		return json.Unmarshal(val, out)
	})
}
