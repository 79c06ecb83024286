package waypost

import (
	"encoding/xml"
	"io"

	"github.com/eringen/waypost/content"
)

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

func writeSitemap(w io.Writer, cfg SiteConfig, docs []content.Document) error {
	base := cfg.URL
	urls := []sitemapURL{
		{Loc: buildURL(base)},
	}
	for _, d := range docs {
		u := sitemapURL{Loc: buildURL(base, "blog", d.UID)}
		if d.LastPublicationDate != nil {
			u.LastMod = d.LastPublicationDate.Format("2006-01-02")
		}
		urls = append(urls, u)
	}
	sitemap := sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	}
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	return xml.NewEncoder(w).Encode(sitemap)
}
