package model

import (
	"time"
)

// Owner is the person a podcast is attributed to. Feeds are scoped to
// the owner's email when listing.
type Owner struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Category is a single iTunes category label.
type Category struct {
	Name string `json:"name"`
}

// Item is one episode of a podcast. PubDate is captured once when the
// episode is added and never changes afterwards.
type Item struct {
	Title       string    `json:"title"`
	Link        string    `json:"link"` // audio URL
	Description string    `json:"description"`
	Language    string    `json:"language"`
	Email       string    `json:"email"`
	PubDate     time.Time `json:"pub_date"`
}

// Channel is the in-memory representation of one podcast feed.
// A channel always has at least one owner and one category. Both lists
// only ever grow, items keep insertion order.
type Channel struct {
	Title       string     `json:"title"`
	Link        string     `json:"link"`
	Language    string     `json:"language"`
	Description string     `json:"description"`
	Author      string     `json:"author"`
	Owners      []Owner    `json:"owners"`
	Categories  []Category `json:"categories"`
	Items       []*Item    `json:"items"`
}

// FeedRecord is the persisted unit. XML is rendered once at creation
// time and served verbatim afterwards, CreatedAt is epoch milliseconds.
type FeedRecord struct {
	ID          string `json:"id"`
	OwnerEmail  string `json:"owner_email"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Language    string `json:"language"`
	Category    string `json:"category"`
	XML         string `json:"xml"`
	CreatedAt   int64  `json:"created_at"`
}
