package feed

import (
	"time"

	"github.com/launchpod/launchpod/pkg/model"
)

const (
	// DefaultTitle is used as the channel title when no override is
	// configured.
	DefaultTitle = "Launchpod"
)

// Defaults carries process wide channel defaults, supplied once at
// service construction.
type Defaults struct {
	// Title to use for the channel element.
	Title string
	// Link is the feed service base URL, used as the channel link.
	Link string
	// Language is an optional fallback when the submission has none.
	Language string
}

// NewChannel builds a channel with a single owner and a single category.
// An empty language falls back to the configured default before
// validation. All six fields must be non empty after that, the first
// empty one is reported via InvalidFieldError. Validation order is
// fixed so that error messages are deterministic.
func NewChannel(defaults Defaults, name, email, title, description, category, language string) (*model.Channel, error) {
	if language == "" {
		language = defaults.Language
	}

	if err := validate(name, email, title, description, category, language); err != nil {
		return nil, err
	}

	channelTitle := defaults.Title
	if channelTitle == "" {
		channelTitle = DefaultTitle
	}

	return &model.Channel{
		Title:       channelTitle,
		Link:        defaults.Link,
		Language:    language,
		Description: description,
		Author:      name,
		Owners:      []model.Owner{{Name: name, Email: email}},
		Categories:  []model.Category{{Name: category}},
	}, nil
}

// AddItem appends a new episode to the channel. The publication
// timestamp is captured once, here, and is immutable afterwards.
// Field validation is the caller's responsibility.
func AddItem(channel *model.Channel, title, description, language, email, audioLink string) {
	channel.Items = append(channel.Items, &model.Item{
		Title:       title,
		Link:        audioLink,
		Description: description,
		Language:    language,
		Email:       email,
		PubDate:     time.Now(),
	})
}

func validate(name, email, title, description, category, language string) error {
	checks := []struct {
		field string
		value string
	}{
		{model.FieldTitle, title},
		{model.FieldDescription, description},
		{model.FieldLanguage, language},
		{model.FieldEmail, email},
		{model.FieldName, name},
		{model.FieldCategory, category},
	}

	for _, c := range checks {
		if c.value == "" {
			return &model.InvalidFieldError{Field: c.field}
		}
	}

	return nil
}
