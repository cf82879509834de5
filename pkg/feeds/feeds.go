package feeds

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/launchpod/launchpod/pkg/feed"
	"github.com/launchpod/launchpod/pkg/model"
)

// CreateFeedRequest carries the submitted podcast fields. AudioLink may
// be empty when the audio blob is uploaded after creation.
type CreateFeedRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Language    string `json:"language"`
	AudioLink   string `json:"audio_link"`
}

// FeedInfo is the display projection returned by listings.
type FeedInfo struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Language    string `json:"language"`
	PostTime    string `json:"post_time"`
	RSSLink     string `json:"rss_link"`
}

type Service struct {
	storage  storage
	defaults feed.Defaults
	baseURL  string
}

type Option func(*Service)

func WithStorage(storage storage) Option {
	return func(s *Service) {
		s.storage = storage
	}
}

func WithDefaults(defaults feed.Defaults) Option {
	return func(s *Service) {
		s.defaults = defaults
	}
}

func WithBaseURL(baseURL string) Option {
	return func(s *Service) {
		s.baseURL = strings.TrimSuffix(baseURL, "/")
	}
}

func NewFeedService(opts ...Option) *Service {
	svc := &Service{}

	for _, fn := range opts {
		fn(svc)
	}

	if svc.defaults.Link == "" {
		svc.defaults.Link = svc.baseURL
	}

	return svc
}

// CreateFeed validates the submission, renders the feed document and
// persists it. The rendered XML is computed exactly once, here, and is
// what every subsequent lookup serves.
func (s *Service) CreateFeed(ctx context.Context, req *CreateFeedRequest) (string, error) {
	channel, err := feed.NewChannel(s.defaults, req.Name, req.Email, req.Title, req.Description, req.Category, req.Language)
	if err != nil {
		return "", err
	}

	// channel.Language carries the fallback when the submission had none
	feed.AddItem(channel, req.Title, req.Description, channel.Language, req.Email, req.AudioLink)

	rendered, err := feed.Render(channel)
	if err != nil {
		return "", errors.Wrap(err, "failed to render feed")
	}

	record := &model.FeedRecord{
		OwnerEmail:  req.Email,
		Title:       req.Title,
		Description: req.Description,
		Language:    channel.Language,
		Category:    req.Category,
		XML:         rendered,
		CreatedAt:   time.Now().UnixMilli(),
	}

	id, err := s.storage.CreateFeed(ctx, record)
	if err != nil {
		return "", errors.Wrap(err, "failed to save feed")
	}

	return id, nil
}

// GetFeedXML returns the stored XML verbatim, never re-rendered.
func (s *Service) GetFeedXML(ctx context.Context, id string) (string, error) {
	record, err := s.storage.GetFeed(ctx, id)
	if err != nil {
		return "", err
	}

	return record.XML, nil
}

// ListFeeds returns the owner's feeds, most recent first.
func (s *Service) ListFeeds(ctx context.Context, ownerEmail string) ([]*FeedInfo, error) {
	records, err := s.storage.ListFeeds(ctx, ownerEmail)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list feeds for %s", ownerEmail)
	}

	infos := make([]*FeedInfo, 0, len(records))
	for _, record := range records {
		infos = append(infos, &FeedInfo{
			ID:          record.ID,
			Title:       record.Title,
			Description: record.Description,
			Language:    record.Language,
			PostTime:    model.FormatPostTime(record.CreatedAt),
			RSSLink:     s.RSSLink(record.ID),
		})
	}

	return infos, nil
}

// DeleteFeed removes the feed. The identifier is never reused.
func (s *Service) DeleteFeed(ctx context.Context, id string) error {
	return s.storage.DeleteFeed(ctx, id)
}

// RSSLink is the public lookup URL for a feed id.
func (s *Service) RSSLink(id string) string {
	return s.baseURL + "/rss/" + id
}
