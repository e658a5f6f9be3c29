package content

import (
	"strings"

	"github.com/kbukum/paygate/api"
	"github.com/kbukum/paygate/entitlement"
	"github.com/kbukum/paygate/errors"
	"github.com/kbukum/paygate/token"
	"github.com/kbukum/paygate/validation"
)

// elementPrefix prefixes the DOM id of a post's pay button.
const elementPrefix = "blendle-button-item-"

// Post is a host content item.
type Post struct {
	// ID is the host's post id. It is the item id in tokens.
	ID string `json:"id" mapstructure:"id" validate:"notblank"`
	// Title is the post title.
	Title string `json:"title" mapstructure:"title"`
	// Excerpt is the short summary, possibly HTML.
	Excerpt string `json:"excerpt" mapstructure:"excerpt"`
	// Body is the full HTML content.
	Body string `json:"body" mapstructure:"body"`
	// Permalink is the canonical URL of the post.
	Permalink string `json:"permalink" mapstructure:"permalink"`
	// Gated enables the paywall for the post.
	Gated bool `json:"gated" mapstructure:"gated"`
}

// Validate checks that the post can be turned into an item.
func (p Post) Validate() error {
	if fields := validation.Struct(p); len(fields) > 0 {
		return errors.InvalidInput("post " + fields[0].Field + " " + fields[0].Message)
	}
	return nil
}

// Metadata returns the item metadata of the post: title, tag-stripped
// excerpt, word count of the body and canonical URL.
func (p Post) Metadata() token.Metadata {
	return token.Metadata{
		Title:       strings.TrimSpace(p.Title),
		Description: StripTags(p.Excerpt),
		Words:       WordCount(p.Body),
		URL:         p.Permalink,
	}
}

// Attributes returns the metadata in the shape the API accepts for
// registrations and updates. The url is sent separately on registration.
func (p Post) Attributes() api.Attributes {
	md := p.Metadata()
	attrs := api.Attributes{}
	if md.Title != "" {
		attrs[token.KeyTitle] = md.Title
	}
	if md.Description != "" {
		attrs[token.KeyDescription] = md.Description
	}
	if md.Words > 0 {
		attrs[token.KeyWords] = md.Words
	}
	return attrs
}

// Item returns the gating view of the post.
func (p Post) Item() entitlement.Item {
	return entitlement.Item{ID: p.ID, Gated: p.Gated}
}

// ElementID returns the DOM id of the post's pay button.
func (p Post) ElementID() string { return ElementID(p.ID) }

// ElementID returns the DOM id of the pay button for postID.
func ElementID(postID string) string {
	return elementPrefix + postID
}
