package feeds

import (
	"context"

	"github.com/launchpod/launchpod/pkg/model"
)

type storage interface {
	CreateFeed(ctx context.Context, record *model.FeedRecord) (string, error)
	GetFeed(ctx context.Context, id string) (*model.FeedRecord, error)
	ListFeeds(ctx context.Context, ownerEmail string) ([]*model.FeedRecord, error)
	DeleteFeed(ctx context.Context, id string) error
}
