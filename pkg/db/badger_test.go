package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/launchpod/launchpod/pkg/model"
)

var testCtx = context.TODO()

func openTestDB(t *testing.T) *Badger {
	t.Helper()

	db, err := NewBadger(&Config{Dir: t.TempDir()})
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = db.Close()
	})

	return db
}

func getRecord() *model.FeedRecord {
	return &model.FeedRecord{
		OwnerEmail:  "jane@example.com",
		Title:       "Test Cast",
		Description: "Desc",
		Language:    "en",
		Category:    "Technology",
		XML:         "<channel></channel>",
	}
}

func TestNewBadger(t *testing.T) {
	db, err := NewBadger(&Config{Dir: t.TempDir()})
	require.NoError(t, err)

	err = db.Close()
	assert.NoError(t, err)
}

func TestBadger_Version(t *testing.T) {
	db := openTestDB(t)

	ver, err := db.Version()
	assert.NoError(t, err)
	assert.Equal(t, CurrentVersion, ver)
}

func TestBadger_CreateFeed(t *testing.T) {
	db := openTestDB(t)

	record := getRecord()
	id, err := db.CreateFeed(testCtx, record)
	require.NoError(t, err)

	assert.NotEmpty(t, id)
	assert.Equal(t, id, record.ID)
	assert.NotZero(t, record.CreatedAt)
}

func TestBadger_CreateFeedAssignsUniqueIDs(t *testing.T) {
	db := openTestDB(t)

	// No content addressing: identical submissions create new records
	first, err := db.CreateFeed(testCtx, getRecord())
	require.NoError(t, err)

	second, err := db.CreateFeed(testCtx, getRecord())
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestBadger_GetFeed(t *testing.T) {
	db := openTestDB(t)

	record := getRecord()
	id, err := db.CreateFeed(testCtx, record)
	require.NoError(t, err)

	actual, err := db.GetFeed(testCtx, id)
	assert.NoError(t, err)
	assert.Equal(t, record, actual)
}

func TestBadger_GetFeedNotFound(t *testing.T) {
	db := openTestDB(t)

	record := getRecord()
	id, err := db.CreateFeed(testCtx, record)
	require.NoError(t, err)

	err = db.DeleteFeed(testCtx, id)
	require.NoError(t, err)

	_, err = db.GetFeed(testCtx, id)
	assert.Equal(t, model.ErrNotFound, err)
}

func TestBadger_GetFeedInvalidID(t *testing.T) {
	db := openTestDB(t)

	_, err := db.GetFeed(testCtx, "not a key")
	assert.Equal(t, model.ErrInvalidID, err)

	_, err = db.GetFeed(testCtx, "")
	assert.Equal(t, model.ErrInvalidID, err)
}

func TestBadger_ListFeeds(t *testing.T) {
	db := openTestDB(t)

	base := int64(1594809000000)
	for i, email := range []string{"jane@example.com", "john@example.com", "jane@example.com", "jane@example.com"} {
		record := getRecord()
		record.OwnerEmail = email
		record.Title = email
		record.CreatedAt = base + int64(i)*1000

		_, err := db.CreateFeed(testCtx, record)
		require.NoError(t, err)
	}

	records, err := db.ListFeeds(testCtx, "jane@example.com")
	require.NoError(t, err)
	require.Len(t, records, 3)

	// Most recent first, other owners excluded
	for i := 0; i < len(records)-1; i++ {
		assert.True(t, records[i].CreatedAt > records[i+1].CreatedAt)
	}

	for _, record := range records {
		assert.Equal(t, "jane@example.com", record.OwnerEmail)
	}
}

func TestBadger_ListFeedsEmpty(t *testing.T) {
	db := openTestDB(t)

	records, err := db.ListFeeds(testCtx, "nobody@example.com")
	assert.NoError(t, err)
	assert.Empty(t, records)
	assert.NotNil(t, records)
}

func TestBadger_DeleteFeed(t *testing.T) {
	db := openTestDB(t)

	id, err := db.CreateFeed(testCtx, getRecord())
	require.NoError(t, err)

	err = db.DeleteFeed(testCtx, id)
	assert.NoError(t, err)

	err = db.DeleteFeed(testCtx, id)
	assert.Equal(t, model.ErrNotFound, err)
}

func TestBadger_DeleteFeedInvalidID(t *testing.T) {
	db := openTestDB(t)

	err := db.DeleteFeed(testCtx, "!!!")
	assert.Equal(t, model.ErrInvalidID, err)
}
