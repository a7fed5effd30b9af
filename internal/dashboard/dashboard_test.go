package dashboard

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/KAMASDM/naishad/internal/models"
	"github.com/KAMASDM/naishad/internal/testutil"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStats(t *testing.T) {
	db := testutil.SetupDB(t)

	require.NoError(t, db.Create(&[]models.Property{
		{Title: "A", Slug: "a", IsActive: true, Featured: true},
		{Title: "B", Slug: "b", IsActive: true},
		{Title: "C", Slug: "c", Featured: true},
	}).Error)
	require.NoError(t, db.Create(&[]models.Blog{
		{Title: "A", Slug: "a", IsPublished: true},
		{Title: "B", Slug: "b"},
	}).Error)
	require.NoError(t, db.Create(&models.Service{Title: "S", Slug: "s", IsActive: true}).Error)
	for i := 0; i < 7; i++ {
		require.NoError(t, db.Create(&models.Enquiry{Name: "E", Email: "e@x.com", Message: "m", IsRead: i < 2}).Error)
	}
	require.NoError(t, db.Create(&models.ContactMessage{Name: "C", Email: "c@x.com", Message: "m"}).Error)

	app := fiber.New()
	app.Get("/stats", StatsHandler())
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/stats", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var s Stats
	testutil.DecodeJSON(t, resp, &s)
	assert.Equal(t, PropertyStats{Total: 3, Active: 2, Featured: 1}, s.Properties)
	assert.Equal(t, BlogStats{Total: 2, Published: 1}, s.Blogs)
	assert.EqualValues(t, 1, s.Services)
	assert.EqualValues(t, 0, s.Testimonials)
	assert.Equal(t, InboxStats{Total: 7, Unread: 5}, s.Enquiries)
	assert.Equal(t, InboxStats{Total: 1, Unread: 1}, s.Contacts)
	assert.Len(t, s.RecentEnquiries, 5)
}

func TestBucketStart(t *testing.T) {
	wed := time.Date(2024, 5, 15, 18, 30, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 5, 15, 0, 0, 0, 0, time.UTC), bucketStart(wed, "daily"))
	assert.Equal(t, time.Date(2024, 5, 13, 0, 0, 0, 0, time.UTC), bucketStart(wed, "weekly"))
	assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), bucketStart(wed, "monthly"))

	sun := time.Date(2024, 5, 19, 1, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 5, 13, 0, 0, 0, 0, time.UTC), bucketStart(sun, "weekly"))
}

func TestLeadChartDaily(t *testing.T) {
	db := testutil.SetupDB(t)
	now := time.Date(2024, 5, 15, 12, 0, 0, 0, time.UTC)
	at := func(day, hour int) time.Time { return time.Date(2024, 5, day, hour, 0, 0, 0, time.UTC) }

	for _, ts := range []time.Time{at(14, 10), at(15, 9), at(15, 11), at(10, 8)} {
		require.NoError(t, db.Create(&models.Enquiry{Name: "E", Email: "e@x.com", Message: "m", CreatedAt: ts}).Error)
	}
	require.NoError(t, db.Create(&models.ContactMessage{Name: "C", Email: "c@x.com", Message: "m", CreatedAt: at(13, 20)}).Error)

	res, err := LeadChart(db, "daily", 3, now)
	require.NoError(t, err)

	assert.Equal(t, "2024-05-13", res.From)
	assert.Equal(t, "2024-05-15", res.To)
	require.Len(t, res.Points, 3)
	assert.Equal(t, LeadChartPoint{Label: "2024-05-13", Contacts: 1, Total: 1}, res.Points[0])
	assert.Equal(t, LeadChartPoint{Label: "2024-05-14", Enquiries: 1, Total: 1}, res.Points[1])
	assert.Equal(t, LeadChartPoint{Label: "2024-05-15", Enquiries: 2, Total: 2}, res.Points[2])
	assert.Equal(t, 4, res.Totals.Total)
}

func TestLeadChartMonthlyDefaults(t *testing.T) {
	db := testutil.SetupDB(t)
	now := time.Date(2024, 5, 15, 12, 0, 0, 0, time.UTC)

	res, err := LeadChart(db, "monthly", 0, now)
	require.NoError(t, err)
	require.Len(t, res.Points, 12)
	assert.Equal(t, "2023-06-01", res.From)
	assert.Equal(t, "2024-05-31", res.To)
	assert.Equal(t, "2024-05-01", res.Points[11].Label)
}
