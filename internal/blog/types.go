package blog

import (
	"strings"
	"time"

	"github.com/KAMASDM/naishad/internal/format"
	"github.com/KAMASDM/naishad/internal/media"
	"github.com/KAMASDM/naishad/internal/models"

	"github.com/gofiber/fiber/v2"
)

const (
	DefaultAuthor   = "Admin"
	DefaultCategory = "Real Estate"
	ExcerptLength   = 160
)

type BlogResponse struct {
	models.Blog
	TagsList    []string `json:"tags_list"`
	ReadingTime int      `json:"reading_time"`
}

func NewBlogResponse(b models.Blog) BlogResponse {
	return BlogResponse{
		Blog:        b,
		TagsList:    format.SplitList(b.Tags),
		ReadingTime: format.ReadingTime(b.Content),
	}
}

func NewBlogResponses(blogs []models.Blog) []BlogResponse {
	res := make([]BlogResponse, 0, len(blogs))
	for _, b := range blogs {
		res = append(res, NewBlogResponse(b))
	}
	return res
}

type BlogRequest struct {
	Title         *string    `json:"title"`
	Slug          *string    `json:"slug"`
	Content       *string    `json:"content"`
	Excerpt       *string    `json:"excerpt"`
	Category      *string    `json:"category"`
	FeaturedImage *string    `json:"featured_image"`
	Author        *string    `json:"author"`
	Tags          *string    `json:"tags"`
	Featured      *bool      `json:"featured"`
	IsPublished   *bool      `json:"is_published"`
	PublishedDate *time.Time `json:"published_date"`
}

func (r *BlogRequest) apply(b *models.Blog) error {
	if r.Title != nil {
		title := strings.TrimSpace(*r.Title)
		if title == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Title cannot be empty")
		}
		b.Title = title
	}
	if r.Slug != nil {
		b.Slug = format.Slugify(*r.Slug)
	}
	if r.Content != nil {
		if strings.TrimSpace(*r.Content) == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Content cannot be empty")
		}
		b.Content = *r.Content
	}
	if r.Excerpt != nil {
		b.Excerpt = strings.TrimSpace(*r.Excerpt)
	}
	if b.Excerpt == "" {
		b.Excerpt = format.Excerpt(b.Content, ExcerptLength)
	}
	if r.Category != nil {
		b.Category = strings.TrimSpace(*r.Category)
	}
	if b.Category == "" {
		b.Category = DefaultCategory
	}
	if r.Author != nil {
		b.Author = strings.TrimSpace(*r.Author)
	}
	if b.Author == "" {
		b.Author = DefaultAuthor
	}
	if r.Tags != nil {
		b.Tags = format.JoinList(format.SplitList(*r.Tags))
	}
	if r.Featured != nil {
		b.Featured = *r.Featured
	}
	if r.IsPublished != nil {
		b.IsPublished = *r.IsPublished
	}
	if r.PublishedDate != nil {
		b.PublishedDate = *r.PublishedDate
	}
	return nil
}

// storeImages runs after validation and the slug check so rejected posts
// leave no files in the store.
func (r *BlogRequest) storeImages(b *models.Blog, store *media.Store) error {
	if r.FeaturedImage != nil {
		url, err := store.Resolve(*r.FeaturedImage, media.ContentImage)
		if err != nil {
			return media.HTTPError(err)
		}
		b.FeaturedImage = url
	}
	if b.FeaturedImage == "" {
		b.FeaturedImage = format.FirstImage(b.Content)
	}
	return nil
}
