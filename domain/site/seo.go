package site

import (
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"github.com/akeren/commit-waitlist/pkg/constants"
)

const sitemapNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod"`
	ChangeFreq string `xml:"changefreq"`
	Priority   string `xml:"priority"`
}

// RobotsText allows every crawler everywhere and points at the sitemap.
func RobotsText(baseURL string) string {
	var b strings.Builder
	b.WriteString("User-agent: *\n")
	b.WriteString("Allow: /\n")
	b.WriteString("\n")
	fmt.Fprintf(&b, "Sitemap: %s/sitemap.xml\n", baseURL)
	return b.String()
}

// SitemapXML lists the landing page as the only URL of the site.
func SitemapXML(baseURL string, lastModified time.Time) ([]byte, error) {
	set := sitemapURLSet{
		Xmlns: sitemapNamespace,
		URLs: []sitemapURL{{
			Loc:        baseURL,
			LastMod:    lastModified.UTC().Format(constants.W3CDateFormat),
			ChangeFreq: "weekly",
			Priority:   "1",
		}},
	}

	body, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("site: encode sitemap: %w", err)
	}

	return append([]byte(xml.Header), body...), nil
}
