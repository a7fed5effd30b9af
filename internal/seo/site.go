// Package seo builds the sitemap, robots.txt, web manifest, page metadata and
// schema.org JSON-LD for the public site.
package seo

import (
	"strings"

	"github.com/KAMASDM/naishad/internal/config"
)

// Site carries the business details used across metadata and structured data.
type Site struct {
	URL         string
	Name        string
	ShortName   string
	Tagline     string
	Description string
	Phone       string
	Email       string
	Street      string
	Locality    string
	Region      string
	PostalCode  string
	Latitude    string
	Longitude   string
	ThemeColor  string
	SameAs      []string
}

// NewSite returns the agency profile for the configured site URL and name.
func NewSite(cfg *config.Config) Site {
	return Site{
		URL:         cfg.SiteURL,
		Name:        cfg.SiteName,
		ShortName:   "RealEstate",
		Tagline:     "Premium Properties in Mumbai",
		Description: "Find your dream property in Mumbai. Browse verified luxury apartments, villas, and penthouses in prime locations like Bandra, Andheri, Juhu, Worli.",
		Phone:       "+91 98765 43210",
		Email:       "info@realestate.com",
		Street:      "123 Linking Road",
		Locality:    "Bandra West",
		Region:      "Mumbai",
		PostalCode:  "400050",
		Latitude:    "19.0596",
		Longitude:   "72.8295",
		ThemeColor:  "#2563eb",
		SameAs: []string{
			"https://www.facebook.com/realestate",
			"https://www.instagram.com/realestate",
			"https://twitter.com/realestate",
			"https://www.linkedin.com/company/realestate",
		},
	}
}

// Abs turns a site path into an absolute URL. Absolute URLs pass through.
func (s Site) Abs(path string) string {
	if path == "" {
		return s.URL
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return s.URL + path
}
