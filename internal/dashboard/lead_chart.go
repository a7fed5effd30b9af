package dashboard

import (
	"strconv"
	"time"

	"github.com/KAMASDM/naishad/internal/database"
	"github.com/KAMASDM/naishad/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

const maxChartPoints = 366

type LeadChartPoint struct {
	Label     string `json:"label"` // bucket start date
	Enquiries int    `json:"enquiries"`
	Contacts  int    `json:"contacts"`
	Total     int    `json:"total"`
}

type LeadChartResponse struct {
	Period string           `json:"period"` // daily | weekly | monthly
	From   string           `json:"from"`
	To     string           `json:"to"`
	Points []LeadChartPoint `json:"points"`
	Totals LeadChartPoint   `json:"totals"`
}

func defaultCount(period string) int {
	switch period {
	case "weekly":
		return 8
	case "monthly":
		return 12
	}
	return 7
}

// bucketStart truncates t to the start of its day, ISO week or month.
func bucketStart(t time.Time, period string) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	switch period {
	case "weekly":
		offset := (int(day.Weekday()) + 6) % 7 // Monday = 0
		return day.AddDate(0, 0, -offset)
	case "monthly":
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	}
	return day
}

func nextBucket(t time.Time, period string) time.Time {
	switch period {
	case "weekly":
		return t.AddDate(0, 0, 7)
	case "monthly":
		return t.AddDate(0, 1, 0)
	}
	return t.AddDate(0, 0, 1)
}

// LeadChart counts enquiries and contact messages per bucket for the last
// count buckets up to now. Empty buckets are included.
func LeadChart(db *gorm.DB, period string, count int, now time.Time) (*LeadChartResponse, error) {
	if period != "weekly" && period != "monthly" {
		period = "daily"
	}
	if count <= 0 {
		count = defaultCount(period)
	}

	last := bucketStart(now, period)
	start := last
	for i := 1; i < count; i++ {
		switch period {
		case "weekly":
			start = start.AddDate(0, 0, -7)
		case "monthly":
			start = start.AddDate(0, -1, 0)
		default:
			start = start.AddDate(0, 0, -1)
		}
	}
	end := nextBucket(last, period)

	points := make([]LeadChartPoint, 0, count)
	index := make(map[time.Time]int, count)
	for b := start; b.Before(end); b = nextBucket(b, period) {
		index[b] = len(points)
		points = append(points, LeadChartPoint{Label: b.Format("2006-01-02")})
	}

	tally := func(model any, add func(p *LeadChartPoint)) error {
		var stamps []time.Time
		err := db.Model(model).
			Where("created_at >= ? AND created_at < ?", start, end).
			Pluck("created_at", &stamps).Error
		if err != nil {
			return err
		}
		for _, ts := range stamps {
			if i, ok := index[bucketStart(ts.In(now.Location()), period)]; ok {
				add(&points[i])
			}
		}
		return nil
	}
	if err := tally(&models.Enquiry{}, func(p *LeadChartPoint) { p.Enquiries++ }); err != nil {
		return nil, err
	}
	if err := tally(&models.ContactMessage{}, func(p *LeadChartPoint) { p.Contacts++ }); err != nil {
		return nil, err
	}

	res := &LeadChartResponse{
		Period: period,
		From:   start.Format("2006-01-02"),
		To:     end.AddDate(0, 0, -1).Format("2006-01-02"),
		Points: points,
	}
	for i := range points {
		points[i].Total = points[i].Enquiries + points[i].Contacts
		res.Totals.Enquiries += points[i].Enquiries
		res.Totals.Contacts += points[i].Contacts
	}
	res.Totals.Total = res.Totals.Enquiries + res.Totals.Contacts
	res.Totals.Label = "total"
	return res, nil
}

// GET /api/admin/dashboard/leads-chart?period=daily&count=7
func LeadChartHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		count := 0
		if raw := c.Query("count"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n <= 0 || n > maxChartPoints {
				return fiber.NewError(fiber.StatusBadRequest, "Invalid count")
			}
			count = n
		}

		res, err := LeadChart(database.DB, c.Query("period", "daily"), count, time.Now())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not build leads chart")
		}
		return c.JSON(res)
	}
}
