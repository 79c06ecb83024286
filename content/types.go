package content

import "time"

// Document is a single post as returned by the content repository.
// First/last publication timestamps are nullable: unpublished preview
// revisions carry no publication date.
type Document struct {
	ID                   string       `json:"id"`
	UID                  string       `json:"uid"`
	FirstPublicationDate *time.Time   `json:"first_publication_date"`
	LastPublicationDate  *time.Time   `json:"last_publication_date"`
	Data                 DocumentData `json:"data"`
}

// DocumentData is the editorial payload of a post.
type DocumentData struct {
	Title    string         `json:"title"`
	Subtitle string         `json:"subtitle"`
	Author   string         `json:"author"`
	Banner   Image          `json:"banner"`
	Content  []ContentGroup `json:"content"`
}

// Image is a media reference served from the content platform's CDN.
type Image struct {
	URL string `json:"url"`
	Alt string `json:"alt"`
}

// ContentGroup is one titled section of a post. The slice order of both
// groups and body fragments is display order and must never be reordered.
type ContentGroup struct {
	Heading string     `json:"heading"`
	Body    []Fragment `json:"body"`
}

// Fragment is one opaque rich-text block. Text holds Markdown source that
// downstream conversion turns into sanitized HTML.
type Fragment struct {
	Text string `json:"text"`
}

// NeighborRef is the minimal projection of a chronologically adjacent post,
// used only to build navigation links.
type NeighborRef struct {
	UID   string `json:"uid"`
	Title string `json:"title"`
}
