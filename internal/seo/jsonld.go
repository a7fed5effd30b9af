package seo

import (
	"encoding/json"
	"html/template"
	"strconv"
	"time"

	"github.com/KAMASDM/naishad/internal/models"
)

const schemaContext = "https://schema.org"

type Schema map[string]any

func (s Site) postalAddress() Schema {
	return Schema{
		"@type":           "PostalAddress",
		"streetAddress":   s.Street,
		"addressLocality": s.Locality,
		"addressRegion":   s.Region,
		"postalCode":      s.PostalCode,
		"addressCountry":  "IN",
	}
}

func (s Site) geo() Schema {
	return Schema{"@type": "GeoCoordinates", "latitude": s.Latitude, "longitude": s.Longitude}
}

func (s Site) Organization() Schema {
	return Schema{
		"@context":     schemaContext,
		"@type":        "RealEstateAgent",
		"name":         s.Name,
		"description":  s.Description,
		"url":          s.URL,
		"logo":         s.Abs("/logo.png"),
		"image":        s.Abs(defaultImage),
		"telephone":    s.Phone,
		"email":        s.Email,
		"address":      s.postalAddress(),
		"geo":          s.geo(),
		"areaServed":   Schema{"@type": "City", "name": s.Region},
		"openingHours": "Mo-Sa 09:00-20:00",
		"priceRange":   "₹₹₹",
		"sameAs":       s.SameAs,
	}
}

func (s Site) LocalBusiness() Schema {
	return Schema{
		"@context":   schemaContext,
		"@type":      "LocalBusiness",
		"@id":        s.URL + "/#localbusiness",
		"name":       s.Name,
		"image":      s.Abs(defaultImage),
		"telephone":  s.Phone,
		"email":      s.Email,
		"address":    s.postalAddress(),
		"geo":        s.geo(),
		"url":        s.URL,
		"priceRange": "₹₹₹",
		"openingHoursSpecification": []Schema{{
			"@type":     "OpeningHoursSpecification",
			"dayOfWeek": []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"},
			"opens":     "09:00",
			"closes":    "20:00",
		}},
	}
}

// Property describes a listing as a Product with an INR Offer.
func (s Site) Property(p models.Property) Schema {
	images := make([]string, 0, len(p.Gallery)+1)
	if p.PrimaryImage != "" {
		images = append(images, s.Abs(p.PrimaryImage))
	}
	for _, g := range p.Gallery {
		images = append(images, s.Abs(g.Image))
	}

	value := func(name string, v any) Schema {
		return Schema{"@type": "PropertyValue", "name": name, "value": v}
	}
	return Schema{
		"@context":    schemaContext,
		"@type":       "Product",
		"name":        p.Title,
		"description": p.Description,
		"image":       images,
		"offers": Schema{
			"@type":         "Offer",
			"price":         p.Price,
			"priceCurrency": "INR",
			"availability":  "https://schema.org/InStock",
			"url":           s.Abs("/properties/" + p.Slug),
		},
		"brand": Schema{"@type": "Brand", "name": s.Name},
		"additionalProperty": []Schema{
			value("Bedrooms", p.Bedrooms),
			value("Bathrooms", p.Bathrooms),
			value("Floor Area", formatSqft(p.AreaSqft)),
			value("Property Type", p.PropertyType),
		},
		"address": Schema{
			"@type":           "PostalAddress",
			"addressLocality": p.AreaName,
			"addressRegion":   p.CityName,
			"addressCountry":  "IN",
		},
	}
}

func formatSqft(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + " sq ft"
}

func (s Site) BlogPosting(b models.Blog) Schema {
	description := b.Excerpt
	if description == "" {
		description = b.Title
	}
	modified := b.UpdatedDate
	if modified.IsZero() {
		modified = b.PublishedDate
	}
	schema := Schema{
		"@context":      schemaContext,
		"@type":         "BlogPosting",
		"headline":      b.Title,
		"description":   description,
		"datePublished": b.PublishedDate.Format(time.RFC3339),
		"dateModified":  modified.Format(time.RFC3339),
		"author":        Schema{"@type": "Person", "name": b.Author},
		"publisher": Schema{
			"@type": "Organization",
			"name":  s.Name,
			"logo":  Schema{"@type": "ImageObject", "url": s.Abs("/logo.png")},
		},
		"mainEntityOfPage": Schema{"@type": "WebPage", "@id": s.Abs("/blogs/" + b.Slug)},
	}
	if b.FeaturedImage != "" {
		schema["image"] = s.Abs(b.FeaturedImage)
	}
	return schema
}

type Crumb struct {
	Name string
	Path string
}

func (s Site) Breadcrumbs(items ...Crumb) Schema {
	list := make([]Schema, 0, len(items))
	for i, c := range items {
		list = append(list, Schema{
			"@type":    "ListItem",
			"position": i + 1,
			"name":     c.Name,
			"item":     s.Abs(c.Path),
		})
	}
	return Schema{
		"@context":        schemaContext,
		"@type":           "BreadcrumbList",
		"itemListElement": list,
	}
}

// Script renders schemas as JSON-LD <script> tags. encoding/json escapes
// <, > and & so the payload cannot close the tag.
func Script(schemas ...Schema) template.HTML {
	var out []byte
	for _, s := range schemas {
		b, err := json.Marshal(s)
		if err != nil {
			continue
		}
		out = append(out, `<script type="application/ld+json">`...)
		out = append(out, b...)
		out = append(out, "</script>\n"...)
	}
	return template.HTML(out)
}
