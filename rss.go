package waypost

import (
	"encoding/xml"
	"io"
	"time"

	"github.com/eringen/waypost/content"
)

type rssXML struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title       string    `xml:"title"`
	Link        string    `xml:"link"`
	Description string    `xml:"description"`
	Items       []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	Description string `xml:"description"`
	PubDate     string `xml:"pubDate"`
	GUID        string `xml:"guid"`
}

func writeRSS(w io.Writer, cfg SiteConfig, docs []content.Document) error {
	base := cfg.URL
	items := make([]rssItem, 0, len(docs))
	for _, d := range docs {
		pubDate := ""
		if d.FirstPublicationDate != nil {
			pubDate = d.FirstPublicationDate.Format(time.RFC1123Z)
		}
		postURL := buildURL(base, "blog", d.UID)
		items = append(items, rssItem{
			Title:       d.Data.Title,
			Link:        postURL,
			Description: d.Data.Subtitle,
			PubDate:     pubDate,
			GUID:        postURL,
		})
	}
	feed := rssXML{
		Version: "2.0",
		Channel: rssChannel{
			Title:       cfg.Name,
			Link:        base,
			Description: cfg.Description,
			Items:       items,
		},
	}
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	return xml.NewEncoder(w).Encode(feed)
}
