// Package seed loads reference data (cities, areas, services, testimonials)
// from a YAML file. Applying the same file twice does not create duplicates.
package seed

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/KAMASDM/naishad/internal/database"
	"github.com/KAMASDM/naishad/internal/format"
	"github.com/KAMASDM/naishad/internal/models"

	"gopkg.in/yaml.v2"
	"gorm.io/gorm"
)

type File struct {
	Cities       []City        `yaml:"cities"`
	Services     []Service     `yaml:"services"`
	Testimonials []Testimonial `yaml:"testimonials"`
}

type City struct {
	Name  string   `yaml:"name"`
	Areas []string `yaml:"areas"`
}

type Service struct {
	Title         string   `yaml:"title"`
	Slug          string   `yaml:"slug"`
	Description   string   `yaml:"description"`
	ServiceType   string   `yaml:"service_type"`
	Features      []string `yaml:"features"`
	StartingPrice *float64 `yaml:"starting_price"`
	DisplayOrder  int      `yaml:"display_order"`
	Featured      bool     `yaml:"featured"`
}

type Testimonial struct {
	Name         string `yaml:"name"`
	Role         string `yaml:"role"`
	Location     string `yaml:"location"`
	Text         string `yaml:"text"`
	Rating       int    `yaml:"rating"`
	DisplayOrder int    `yaml:"display_order"`
}

// Result counts rows that were inserted; existing rows are left untouched.
type Result struct {
	Cities       int
	Areas        int
	Services     int
	Testimonials int
}

func (r Result) String() string {
	return fmt.Sprintf("%d cities, %d areas, %d services, %d testimonials",
		r.Cities, r.Areas, r.Services, r.Testimonials)
}

func Parse(r io.Reader) (*File, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var f File
	if err := yaml.UnmarshalStrict(raw, &f); err != nil {
		return nil, fmt.Errorf("seed: %w", err)
	}
	return &f, nil
}

// Apply inserts everything in f that is not already present, in one transaction.
func Apply(db *gorm.DB, f *File) (*Result, error) {
	var res Result
	err := db.Transaction(func(tx *gorm.DB) error {
		for _, c := range f.Cities {
			if err := seedCity(tx, c, &res); err != nil {
				return err
			}
		}
		for _, s := range f.Services {
			if err := seedService(tx, s, &res); err != nil {
				return err
			}
		}
		for _, t := range f.Testimonials {
			if err := seedTestimonial(tx, t, &res); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func seedCity(tx *gorm.DB, c City, res *Result) error {
	name := strings.TrimSpace(c.Name)
	if name == "" {
		return fmt.Errorf("seed: city without a name")
	}

	var city models.City
	err := tx.Where("LOWER(name) = LOWER(?)", name).First(&city).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		city = models.City{Name: name}
		if err := tx.Create(&city).Error; err != nil {
			return fmt.Errorf("seed: city %q: %w", name, err)
		}
		res.Cities++
	case err != nil:
		return err
	}

	for _, a := range c.Areas {
		a = strings.TrimSpace(a)
		if a == "" {
			continue
		}
		var count int64
		tx.Model(&models.Area{}).
			Where("LOWER(name) = LOWER(?) AND city_id = ?", a, city.ID).
			Count(&count)
		if count > 0 {
			continue
		}
		cityID := city.ID
		if err := tx.Create(&models.Area{Name: a, CityID: &cityID}).Error; err != nil {
			return fmt.Errorf("seed: area %q: %w", a, err)
		}
		res.Areas++
	}
	return nil
}

func seedService(tx *gorm.DB, s Service, res *Result) error {
	title := strings.TrimSpace(s.Title)
	if title == "" {
		return fmt.Errorf("seed: service without a title")
	}
	slug := format.Slugify(s.Slug)
	if slug == "" {
		slug = format.Slugify(title)
	}

	taken, err := database.SlugTaken(tx, &models.Service{}, slug, 0)
	if err != nil {
		return err
	}
	if taken {
		return nil
	}

	svc := models.Service{
		Title:         title,
		Slug:          slug,
		Description:   s.Description,
		ServiceType:   s.ServiceType,
		Features:      format.JoinList(s.Features),
		StartingPrice: s.StartingPrice,
		DisplayOrder:  s.DisplayOrder,
		Featured:      s.Featured,
		IsActive:      true,
	}
	if err := tx.Create(&svc).Error; err != nil {
		return fmt.Errorf("seed: service %q: %w", title, err)
	}
	res.Services++
	return nil
}

func seedTestimonial(tx *gorm.DB, t Testimonial, res *Result) error {
	name := strings.TrimSpace(t.Name)
	if name == "" || strings.TrimSpace(t.Text) == "" {
		return fmt.Errorf("seed: testimonial needs a name and text")
	}

	var count int64
	tx.Model(&models.Testimonial{}).Where("name = ? AND text = ?", name, t.Text).Count(&count)
	if count > 0 {
		return nil
	}

	rating := t.Rating
	if rating < 1 || rating > 5 {
		rating = 5
	}
	row := models.Testimonial{
		Name:         name,
		Role:         t.Role,
		Location:     t.Location,
		Text:         t.Text,
		Rating:       rating,
		DisplayOrder: t.DisplayOrder,
		IsActive:     true,
	}
	if err := tx.Create(&row).Error; err != nil {
		return fmt.Errorf("seed: testimonial %q: %w", name, err)
	}
	res.Testimonials++
	return nil
}
