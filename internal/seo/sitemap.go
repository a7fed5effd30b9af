package seo

import (
	"encoding/xml"
	"time"

	"github.com/KAMASDM/naishad/internal/models"

	"gorm.io/gorm"
)

const sitemapNS = "http://www.sitemaps.org/schemas/sitemap/0.9"

type SitemapURL struct {
	Loc        string  `xml:"loc"`
	LastMod    string  `xml:"lastmod,omitempty"`
	ChangeFreq string  `xml:"changefreq,omitempty"`
	Priority   float64 `xml:"priority"`
}

type URLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []SitemapURL `xml:"url"`
}

var staticPages = []struct {
	path     string
	freq     string
	priority float64
}{
	{"/", "daily", 1.0},
	{"/about", "monthly", 0.8},
	{"/services", "monthly", 0.8},
	{"/properties", "daily", 0.9},
	{"/blogs", "weekly", 0.7},
	{"/contact", "monthly", 0.6},
}

// Sitemap lists the static pages, every active property and every published blog.
func (s Site) Sitemap(db *gorm.DB, now time.Time) (*URLSet, error) {
	set := &URLSet{XMLNS: sitemapNS}
	day := now.Format("2006-01-02")

	for _, p := range staticPages {
		loc := s.URL
		if p.path != "/" {
			loc += p.path
		}
		set.URLs = append(set.URLs, SitemapURL{Loc: loc, LastMod: day, ChangeFreq: p.freq, Priority: p.priority})
	}

	var props []models.Property
	if err := db.Select("slug", "updated_at").Where("is_active = ?", true).
		Order("updated_at DESC").Find(&props).Error; err != nil {
		return nil, err
	}
	for _, p := range props {
		set.URLs = append(set.URLs, SitemapURL{
			Loc:        s.Abs("/properties/" + p.Slug),
			LastMod:    p.UpdatedAt.Format("2006-01-02"),
			ChangeFreq: "weekly",
			Priority:   0.7,
		})
	}

	var blogs []models.Blog
	if err := db.Select("slug", "updated_at").Where("is_published = ?", true).
		Order("published_date DESC").Find(&blogs).Error; err != nil {
		return nil, err
	}
	for _, b := range blogs {
		set.URLs = append(set.URLs, SitemapURL{
			Loc:        s.Abs("/blogs/" + b.Slug),
			LastMod:    b.UpdatedAt.Format("2006-01-02"),
			ChangeFreq: "monthly",
			Priority:   0.6,
		})
	}
	return set, nil
}

// Marshal encodes the set with the XML declaration.
func (u *URLSet) Marshal() ([]byte, error) {
	body, err := xml.MarshalIndent(u, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), body...), nil
}
