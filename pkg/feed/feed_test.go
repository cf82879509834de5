package feed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/launchpod/launchpod/pkg/model"
)

func TestNewChannel(t *testing.T) {
	defaults := Defaults{Title: "Launchpod", Link: "http://localhost:8080"}

	ch, err := NewChannel(defaults, "Jane", "jane@example.com", "Test Cast", "Desc", "Technology", "en")
	require.NoError(t, err)

	assert.Equal(t, "Launchpod", ch.Title)
	assert.Equal(t, "http://localhost:8080", ch.Link)
	assert.Equal(t, "en", ch.Language)
	assert.Equal(t, "Desc", ch.Description)
	assert.Equal(t, "Jane", ch.Author)

	require.Len(t, ch.Owners, 1)
	assert.Equal(t, model.Owner{Name: "Jane", Email: "jane@example.com"}, ch.Owners[0])

	require.Len(t, ch.Categories, 1)
	assert.Equal(t, "Technology", ch.Categories[0].Name)

	assert.Empty(t, ch.Items)
}

func TestNewChannelDefaultTitle(t *testing.T) {
	ch, err := NewChannel(Defaults{}, "Jane", "jane@example.com", "Test Cast", "Desc", "Technology", "en")
	require.NoError(t, err)

	assert.Equal(t, DefaultTitle, ch.Title)
}

func TestNewChannelLanguageFallback(t *testing.T) {
	defaults := Defaults{Language: "en"}

	ch, err := NewChannel(defaults, "Jane", "jane@example.com", "Test Cast", "Desc", "Technology", "")
	require.NoError(t, err)
	assert.Equal(t, "en", ch.Language)

	// Submitted language wins over the fallback
	ch, err = NewChannel(defaults, "Jane", "jane@example.com", "Test Cast", "Desc", "Technology", "fr")
	require.NoError(t, err)
	assert.Equal(t, "fr", ch.Language)

	// No fallback configured, empty language is still rejected
	_, err = NewChannel(Defaults{}, "Jane", "jane@example.com", "Test Cast", "Desc", "Technology", "")

	var fieldErr *model.InvalidFieldError
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, model.FieldLanguage, fieldErr.Field)
}

func TestNewChannelEmptyFields(t *testing.T) {
	cases := []struct {
		field string
		name  string
		email string
		title string
		desc  string
		cat   string
		lang  string
	}{
		{model.FieldTitle, "Jane", "jane@example.com", "", "Desc", "Technology", "en"},
		{model.FieldDescription, "Jane", "jane@example.com", "Title", "", "Technology", "en"},
		{model.FieldLanguage, "Jane", "jane@example.com", "Title", "Desc", "Technology", ""},
		{model.FieldEmail, "Jane", "", "Title", "Desc", "Technology", "en"},
		{model.FieldName, "", "jane@example.com", "Title", "Desc", "Technology", "en"},
		{model.FieldCategory, "Jane", "jane@example.com", "Title", "Desc", "", "en"},
	}

	for _, c := range cases {
		ch, err := NewChannel(Defaults{}, c.name, c.email, c.title, c.desc, c.cat, c.lang)
		assert.Nil(t, ch)

		var fieldErr *model.InvalidFieldError
		require.ErrorAs(t, err, &fieldErr, c.field)
		assert.Equal(t, c.field, fieldErr.Field)
	}
}

func TestNewChannelFieldOrder(t *testing.T) {
	// Everything empty, the first checked field wins
	_, err := NewChannel(Defaults{}, "", "", "", "", "", "")

	var fieldErr *model.InvalidFieldError
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, model.FieldTitle, fieldErr.Field)
}

func TestAddItem(t *testing.T) {
	ch, err := NewChannel(Defaults{}, "Jane", "jane@example.com", "Test Cast", "Desc", "Technology", "en")
	require.NoError(t, err)

	AddItem(ch, "Episode 1", "First", "en", "jane@example.com", "https://x/1.mp3")
	AddItem(ch, "Episode 2", "Second", "en", "jane@example.com", "https://x/2.mp3")

	require.Len(t, ch.Items, 2)

	// Insertion order is preserved, newest last
	assert.Equal(t, "Episode 1", ch.Items[0].Title)
	assert.Equal(t, "Episode 2", ch.Items[1].Title)

	assert.Equal(t, "https://x/1.mp3", ch.Items[0].Link)
	assert.False(t, ch.Items[0].PubDate.IsZero())
	assert.False(t, ch.Items[1].PubDate.Before(ch.Items[0].PubDate))
}
