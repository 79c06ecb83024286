package views

import (
	"strings"
	"time"

	"github.com/goodsign/monday"

	"github.com/eringen/waypost/content"
	"github.com/eringen/waypost/richtext"
)

// wordsPerMinute is the assumed reading speed behind the estimate.
const wordsPerMinute = 180

// DateUnavailable is shown whenever a post carries no publication timestamp.
// Absent timestamps never reach the formatter.
const DateUnavailable = "date unavailable"

const (
	dateLayout     = "2 Jan 2006"
	dateTimeLayout = "2 Jan 2006, 15:04"
)

// ReadingTime estimates minutes to read a content-group sequence: the count
// of whitespace-delimited tokens across every heading and every body
// fragment's text, divided by the reading speed and rounded up. Empty
// content yields 0.
func ReadingTime(groups []content.ContentGroup) int {
	words := 0
	for _, g := range groups {
		words += len(strings.Fields(g.Heading))
		for _, f := range g.Body {
			words += len(strings.Fields(richtext.PlainText(f)))
		}
	}
	return (words + wordsPerMinute - 1) / wordsPerMinute
}

// FormatDate renders a timestamp in the configured locale, or the
// DateUnavailable placeholder when the timestamp is absent.
func FormatDate(t *time.Time, locale string) string {
	return format(t, dateLayout, locale)
}

// FormatDateTime is FormatDate with the time of day included.
func FormatDateTime(t *time.Time, locale string) string {
	return format(t, dateTimeLayout, locale)
}

func format(t *time.Time, layout, locale string) string {
	if t == nil {
		return DateUnavailable
	}
	loc := monday.Locale(locale)
	if loc == "" {
		loc = monday.LocaleEnUS
	}
	return monday.Format(*t, layout, loc)
}

// BuildPost derives the complete display model for a post page from the raw
// document and its two neighbor lookups. Pure transformation: content order
// is preserved and the result is never mutated afterwards.
func BuildPost(cfg SiteConfig, doc content.Document, prev, next *content.NeighborRef) PostView {
	v := PostView{
		Slug:        doc.UID,
		Title:       doc.Data.Title,
		Subtitle:    doc.Data.Subtitle,
		Author:      doc.Data.Author,
		BannerURL:   doc.Data.Banner.URL,
		BannerAlt:   doc.Data.Banner.Alt,
		PublishedOn: FormatDate(doc.FirstPublicationDate, cfg.Locale),
		ReadingTime: ReadingTime(doc.Data.Content),
	}
	if v.Author == "" {
		v.Author = cfg.Author
	}
	if doc.LastPublicationDate != nil && !sameInstant(doc.FirstPublicationDate, doc.LastPublicationDate) {
		v.EditedOn = FormatDateTime(doc.LastPublicationDate, cfg.Locale)
	}
	for _, g := range doc.Data.Content {
		v.Sections = append(v.Sections, Section{Heading: g.Heading, Body: g.Body})
	}
	if prev != nil {
		v.Prev = &NeighborLink{Slug: prev.UID, Title: prev.Title}
	}
	if next != nil {
		v.Next = &NeighborLink{Slug: next.UID, Title: next.Title}
	}
	return v
}

func sameInstant(a, b *time.Time) bool {
	return a != nil && b != nil && a.Equal(*b)
}

// BuildSummaries derives home-page projections from a document listing,
// preserving the listing order.
func BuildSummaries(cfg SiteConfig, docs []content.Document) []PostSummary {
	summaries := make([]PostSummary, 0, len(docs))
	for _, d := range docs {
		author := d.Data.Author
		if author == "" {
			author = cfg.Author
		}
		summaries = append(summaries, PostSummary{
			Slug:        d.UID,
			Title:       d.Data.Title,
			Subtitle:    d.Data.Subtitle,
			Author:      author,
			PublishedOn: FormatDate(d.FirstPublicationDate, cfg.Locale),
		})
	}
	return summaries
}
