package listing

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/KAMASDM/naishad/internal/audit"
	"github.com/KAMASDM/naishad/internal/database"
	"github.com/KAMASDM/naishad/internal/format"
	"github.com/KAMASDM/naishad/internal/media"
	"github.com/KAMASDM/naishad/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

const (
	sheetName       = "Properties"
	XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// Columns shared by the import template and the export.
var columns = []string{
	"Title", "Slug", "Property Type", "Price", "Area (sqft)", "Bedrooms", "Bathrooms",
	"City", "Area", "Address", "Amenities", "Featured", "Active", "Primary Image", "Description",
}

type RowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

type ImportResult struct {
	Created int        `json:"created"`
	Updated int        `json:"updated"`
	Skipped int        `json:"skipped"`
	Errors  []RowError `json:"errors"`
}

func cell(row []string, idx map[string]int, name string) string {
	i, ok := idx[strings.ToLower(name)]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func parseBool(v string, def bool) bool {
	switch strings.ToLower(v) {
	case "yes", "y", "true", "1":
		return true
	case "no", "n", "false", "0":
		return false
	}
	return def
}

// parseNumber accepts "1,25,00,000" as well as plain numbers.
func parseNumber(v string) (float64, error) {
	v = strings.ReplaceAll(v, ",", "")
	if v == "" {
		return 0, nil
	}
	return strconv.ParseFloat(v, 64)
}

// RecordFunc is told about every property an import creates or updates.
// before is nil for created rows.
type RecordFunc func(p models.Property, before *models.Property)

// Import reads the first sheet of an xlsx workbook. Rows whose slug matches an
// existing property update it, and only the non-empty cells are applied; other
// rows create new properties and must carry title, description, property type
// and price. Remote image URLs are downloaded into the store when possible and
// kept as-is otherwise. record may be nil.
func Import(ctx context.Context, db *gorm.DB, store *media.Store, r io.Reader, record RecordFunc) (*ImportResult, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("could not read workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("could not read sheet: %w", err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("workbook is empty")
	}

	idx := make(map[string]int, len(rows[0]))
	for i, h := range rows[0] {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	if _, ok := idx["title"]; !ok {
		return nil, fmt.Errorf("header row must contain a Title column")
	}

	res := &ImportResult{Errors: []RowError{}}
	for i, row := range rows[1:] {
		rowNum := i + 2
		if cell(row, idx, "Title") == "" {
			res.Skipped++
			continue
		}
		p, before, err := importRow(ctx, db, store, row, idx)
		if err != nil {
			res.Errors = append(res.Errors, RowError{Row: rowNum, Message: err.Error()})
			continue
		}
		if before == nil {
			res.Created++
		} else {
			res.Updated++
		}
		if record != nil {
			record(*p, before)
		}
	}
	return res, nil
}

// importRow returns the saved property and, for updates, its previous state.
func importRow(ctx context.Context, db *gorm.DB, store *media.Store, row []string, idx map[string]int) (*models.Property, *models.Property, error) {
	var (
		p      models.Property
		before *models.Property
	)

	if slug := format.Slugify(cell(row, idx, "Slug")); slug != "" {
		err := db.Where("slug = ?", slug).First(&p).Error
		switch {
		case err == nil:
			prev := p
			before = &prev
		case errors.Is(err, gorm.ErrRecordNotFound):
			p = models.Property{Slug: slug, IsActive: true}
		default:
			return nil, nil, err
		}
	} else {
		p.IsActive = true
	}
	created := before == nil

	p.Title = cell(row, idx, "Title")
	if v := cell(row, idx, "Description"); v != "" {
		p.Description = v
	} else if created {
		return nil, nil, fmt.Errorf("description is required")
	}

	if v := cell(row, idx, "Property Type"); v != "" {
		t, ok := CanonicalType(v)
		if !ok {
			return nil, nil, fmt.Errorf("unknown property type %q", v)
		}
		p.PropertyType = t
	} else if created {
		return nil, nil, fmt.Errorf("property type is required")
	}

	// "0" is an explicit price on request; a blank cell is not.
	if cell(row, idx, "Price") == "" && created {
		return nil, nil, fmt.Errorf("price is required (use 0 for price on request)")
	}

	for _, f := range []struct {
		name string
		dst  *float64
	}{{"Price", &p.Price}, {"Area (sqft)", &p.AreaSqft}} {
		v := cell(row, idx, f.name)
		if v == "" {
			continue
		}
		n, err := parseNumber(v)
		if err != nil || n < 0 {
			return nil, nil, fmt.Errorf("invalid %s %q", strings.ToLower(f.name), v)
		}
		*f.dst = n
	}

	for _, f := range []struct {
		name string
		dst  *int
	}{{"Bedrooms", &p.Bedrooms}, {"Bathrooms", &p.Bathrooms}} {
		v := cell(row, idx, f.name)
		if v == "" {
			continue
		}
		n, err := parseNumber(v)
		if err != nil || n < 0 {
			return nil, nil, fmt.Errorf("invalid %s %q", strings.ToLower(f.name), v)
		}
		*f.dst = int(n)
	}

	for _, f := range []struct {
		name string
		dst  *string
	}{{"City", &p.CityName}, {"Area", &p.AreaName}, {"Address", &p.Address}} {
		if v := cell(row, idx, f.name); v != "" {
			*f.dst = v
		}
	}
	if v := cell(row, idx, "Amenities"); v != "" {
		p.Amenities = format.JoinList(format.SplitList(v))
	}
	p.Featured = parseBool(cell(row, idx, "Featured"), p.Featured)
	p.IsActive = parseBool(cell(row, idx, "Active"), p.IsActive)

	if v := cell(row, idx, "Primary Image"); v != "" && v != p.PrimaryImage {
		url, err := store.Fetch(ctx, v, media.PrimaryImage)
		if err != nil {
			log.Printf("[WARN] import: keeping remote image %s: %v", v, err)
			url = v
		}
		p.PrimaryImage = url
	}

	if created {
		if p.Slug == "" {
			slug, err := database.UniqueSlug(db, &models.Property{}, format.Slugify(p.Title), 0)
			if err != nil {
				return nil, nil, err
			}
			p.Slug = slug
		}
		if err := db.Create(&p).Error; err != nil {
			return nil, nil, err
		}
		return &p, nil, nil
	}
	if err := db.Save(&p).Error; err != nil {
		return nil, nil, err
	}
	return &p, before, nil
}

// Export writes every property, active or not, as an xlsx workbook.
func Export(db *gorm.DB, w io.Writer) error {
	var props []models.Property
	if err := db.Order("created_at DESC, id DESC").Find(&props).Error; err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return err
	}
	sw, err := f.NewStreamWriter(sheetName)
	if err != nil {
		return err
	}

	header := make([]any, len(columns))
	for i, c := range columns {
		header[i] = c
	}
	if err := sw.SetRow("A1", header); err != nil {
		return err
	}

	yesNo := func(b bool) string {
		if b {
			return "Yes"
		}
		return "No"
	}
	for i, p := range props {
		axis, _ := excelize.CoordinatesToCellName(1, i+2)
		row := []any{
			p.Title, p.Slug, p.PropertyType, p.Price, p.AreaSqft, p.Bedrooms, p.Bathrooms,
			p.CityName, p.AreaName, p.Address, p.Amenities, yesNo(p.Featured), yesNo(p.IsActive),
			p.PrimaryImage, p.Description,
		}
		if err := sw.SetRow(axis, row); err != nil {
			return err
		}
	}
	if err := sw.Flush(); err != nil {
		return err
	}
	return f.Write(w)
}

// POST /api/admin/properties/import (multipart, field "file")
func ImportHandler(store *media.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fh, err := c.FormFile("file")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Excel file is required")
		}
		file, err := fh.Open()
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Could not open uploaded file")
		}
		defer file.Close()

		ctx, cancel := context.WithTimeout(c.UserContext(), 5*time.Minute)
		defer cancel()

		res, err := Import(ctx, database.DB, store, file, func(p models.Property, before *models.Property) {
			if before == nil {
				audit.Record(c, audit.EntityProperty, p.ID, models.AuditActionCreate,
					fmt.Sprintf("Property imported: %s", p.Title), nil, p)
				return
			}
			audit.Record(c, audit.EntityProperty, p.ID, models.AuditActionUpdate,
				fmt.Sprintf("Property updated by import: %s", p.Title), *before, p)
		})
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		log.Printf("property import: %d created, %d updated, %d failed", res.Created, res.Updated, len(res.Errors))

		return c.JSON(res)
	}
}

// GET /api/admin/properties/export
func ExportHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var buf bytes.Buffer
		if err := Export(database.DB, &buf); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not export properties")
		}
		c.Set(fiber.HeaderContentType, XLSXContentType)
		c.Attachment("properties.xlsx")
		return c.Send(buf.Bytes())
	}
}
