package views

import "github.com/eringen/waypost/content"

// SiteConfig holds the site-wide settings templates read. The application
// builds one from its own configuration and passes it to every component so
// nothing is hardcoded.
type SiteConfig struct {
	Name           string // site name
	URL            string // canonical URL
	Description    string // site description for meta tags
	Author         string // fallback author name
	Locale         string // locale for date formatting, e.g. "en_US"
	CommentsScript string // external comments widget script URL; empty disables
}

// PageMeta carries per-page OpenGraph and SEO metadata into the <head>.
type PageMeta struct {
	Title       string
	Description string
	URL         string // canonical + og:url
	OGType      string // "website" or "article"
}

// PostView is the fully derived, immutable display model for one post page.
// It is rebuilt from scratch on every page build and never mutated after.
type PostView struct {
	Slug        string
	Title       string
	Subtitle    string
	Author      string
	BannerURL   string
	BannerAlt   string
	PublishedOn string // localized, or the unavailable placeholder
	EditedOn    string // localized with time, empty when never edited
	ReadingTime int    // estimated minutes
	Sections    []Section
	Prev        *NeighborLink
	Next        *NeighborLink
}

// Section is one titled group of body fragments, in display order.
type Section struct {
	Heading string
	Body    []content.Fragment
}

// NeighborLink points at a chronologically adjacent post.
type NeighborLink struct {
	Slug  string
	Title string
}

// PostSummary is the home-page projection of a post.
type PostSummary struct {
	Slug        string
	Title       string
	Subtitle    string
	Author      string
	PublishedOn string
}
