package seo

import (
	"github.com/KAMASDM/naishad/internal/format"
)

const (
	maxDescription = 160
	defaultImage   = "/og-image.jpg"
)

// Meta is what a page puts in <head>.
type Meta struct {
	Title       string
	Description string
	Canonical   string
	Image       string
	Type        string // website | article
	SiteName    string
	Locale      string
}

// NewMeta builds page metadata. An empty title gives the site's default title.
func (s Site) NewMeta(title, description, path, image string) Meta {
	if title == "" {
		title = s.ShortName + " - " + s.Tagline
	} else {
		title = title + " | " + s.Name
	}
	if description == "" {
		description = s.Description
	}
	if image == "" {
		image = defaultImage
	}
	return Meta{
		Title:       title,
		Description: format.Truncate(format.PlainText(description), maxDescription),
		Canonical:   s.Abs(path),
		Image:       s.Abs(image),
		Type:        "website",
		SiteName:    s.Name,
		Locale:      "en_IN",
	}
}

// Article marks the page as an article for OpenGraph.
func (m Meta) Article() Meta {
	m.Type = "article"
	return m
}
