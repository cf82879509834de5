package feed

import (
	"encoding/xml"

	"github.com/pkg/errors"

	"github.com/launchpod/launchpod/pkg/model"
)

// ItunesNamespace is the iTunes podcast DTD, declared on the channel
// root element.
const ItunesNamespace = "http://www.itunes.com/dtds/podcast-1.0.dtd"

// Serialization shapes. Kept separate from the model so that storage
// and transport never depend on element order.
//
// Legacy Launchpod feeds use a bare channel root (no rss envelope) and
// a flat, unwrapped item sequence. Feed readers consuming these feeds
// depend on that shape, so it must not change.
type xmlChannel struct {
	XMLName     xml.Name      `xml:"channel"`
	Xmlns       string        `xml:"xmlns:itunes,attr"`
	Title       string        `xml:"title,omitempty"`
	Link        string        `xml:"link,omitempty"`
	Language    string        `xml:"language,omitempty"`
	Description string        `xml:"description,omitempty"`
	Owners      []xmlOwner    `xml:"itunes:owner"`
	Author      string        `xml:"itunes:author,omitempty"`
	Categories  []xmlCategory `xml:"itunes:category"`
	Items       []xmlItem     `xml:"item"`
}

type xmlOwner struct {
	Name  string `xml:"name,omitempty"`
	Email string `xml:"email,omitempty"`
}

type xmlCategory struct {
	Name string `xml:"name,omitempty"`
}

type xmlItem struct {
	Title       string `xml:"title,omitempty"`
	Link        string `xml:"link,omitempty"`
	Description string `xml:"description,omitempty"`
	Language    string `xml:"language,omitempty"`
	Email       string `xml:"email,omitempty"`
	PubDate     string `xml:"pubDate,omitempty"`
}

// Render serializes a channel to its canonical XML form. Rendering is
// deterministic: element order is fixed and only the stored publication
// timestamps are used for pubDate, so the same channel value always
// yields byte identical output.
func Render(channel *model.Channel) (string, error) {
	out := xmlChannel{
		Xmlns:       ItunesNamespace,
		Title:       channel.Title,
		Link:        channel.Link,
		Language:    channel.Language,
		Description: channel.Description,
		Author:      channel.Author,
	}

	for _, owner := range channel.Owners {
		out.Owners = append(out.Owners, xmlOwner{Name: owner.Name, Email: owner.Email})
	}

	for _, category := range channel.Categories {
		out.Categories = append(out.Categories, xmlCategory{Name: category.Name})
	}

	for _, item := range channel.Items {
		pubDate := ""
		if !item.PubDate.IsZero() {
			pubDate = model.FormatPubDate(item.PubDate)
		}

		out.Items = append(out.Items, xmlItem{
			Title:       item.Title,
			Link:        item.Link,
			Description: item.Description,
			Language:    item.Language,
			Email:       item.Email,
			PubDate:     pubDate,
		})
	}

	data, err := xml.Marshal(&out)
	if err != nil {
		return "", errors.Wrap(err, "failed to serialize channel")
	}

	return string(data), nil
}
