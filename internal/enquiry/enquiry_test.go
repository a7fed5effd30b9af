package enquiry

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/KAMASDM/naishad/internal/mocks"
	"github.com/KAMASDM/naishad/internal/models"
	"github.com/KAMASDM/naishad/internal/notify"
	"github.com/KAMASDM/naishad/internal/testutil"

	"github.com/gofiber/fiber/v2"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func newApp(n notify.Notifier) *fiber.App {
	app := fiber.New()
	app.Post("/api/enquiries", CreateEnquiryHandler(n))
	app.Post("/api/contact", CreateContactHandler(n))
	app.Get("/api/admin/enquiries", ListEnquiriesHandler())
	app.Get("/api/admin/enquiries/export", ExportEnquiriesHandler())
	app.Patch("/api/admin/enquiries/:id/read", MarkEnquiryHandler(false))
	app.Patch("/api/admin/enquiries/:id/responded", MarkEnquiryHandler(true))
	app.Delete("/api/admin/enquiries/:id", DeleteEnquiryHandler())
	app.Get("/api/admin/contacts", ListContactsHandler())
	app.Patch("/api/admin/contacts/:id/read", MarkContactReadHandler())
	app.Delete("/api/admin/contacts/:id", DeleteContactHandler())
	return app
}

func validEnquiry() map[string]any {
	return map[string]any{
		"name":    "Rahul Mehta",
		"email":   "Rahul@Example.com",
		"phone":   "+91 98765 43210",
		"message": "Is the flat still available?",
	}
}

func TestCreateEnquiryPublishesLead(t *testing.T) {
	db := testutil.SetupDB(t)
	prop := models.Property{Title: "Sea View Flat", Slug: "sea-view-flat", IsActive: true}
	require.NoError(t, db.Create(&prop).Error)

	ctrl := gomock.NewController(t)
	n := mocks.NewMockNotifier(ctrl)

	var got notify.LeadEvent
	n.EXPECT().LeadCreated(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, e notify.LeadEvent) error {
		got = e
		return nil
	})

	body := validEnquiry()
	body["property_id"] = prop.ID
	resp, err := newApp(n).Test(testutil.JSONRequest(t, http.MethodPost, "/api/enquiries", body))
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var res struct {
		Message string         `json:"message"`
		Data    models.Enquiry `json:"data"`
	}
	testutil.DecodeJSON(t, resp, &res)
	assert.Equal(t, "rahul@example.com", res.Data.Email)
	assert.Equal(t, "Sea View Flat", res.Data.PropertyInterest)
	require.NotNil(t, res.Data.PropertyID)

	assert.Equal(t, notify.KindEnquiry, got.Kind)
	assert.Equal(t, res.Data.ID, got.ID)
	assert.Equal(t, "lead.enquiry", got.RoutingKey())
}

func TestNotifierFailureDoesNotBlockLead(t *testing.T) {
	db := testutil.SetupDB(t)

	ctrl := gomock.NewController(t)
	n := mocks.NewMockNotifier(ctrl)
	n.EXPECT().LeadCreated(gomock.Any(), gomock.Any()).Return(errors.New("broker down")).Times(2)

	app := newApp(n)
	resp, err := app.Test(testutil.JSONRequest(t, http.MethodPost, "/api/enquiries", validEnquiry()))
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	contact := validEnquiry()
	contact["subject"] = "Selling my flat"
	resp, err = app.Test(testutil.JSONRequest(t, http.MethodPost, "/api/contact", contact))
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var enquiries, contacts int64
	db.Model(&models.Enquiry{}).Count(&enquiries)
	db.Model(&models.ContactMessage{}).Count(&contacts)
	assert.EqualValues(t, 1, enquiries)
	assert.EqualValues(t, 1, contacts)
}

func TestCreateEnquiryValidation(t *testing.T) {
	testutil.SetupDB(t)
	app := newApp(notify.Nop{})

	cases := map[string]func(map[string]any){
		"missing name":  func(b map[string]any) { delete(b, "name") },
		"bad email":     func(b map[string]any) { b["email"] = "not-an-email" },
		"bad phone":     func(b map[string]any) { b["phone"] = "12345" },
		"landline":      func(b map[string]any) { b["phone"] = "2212345678" },
		"empty message": func(b map[string]any) { b["message"] = "   " },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			body := validEnquiry()
			mutate(body)
			resp, err := app.Test(testutil.JSONRequest(t, http.MethodPost, "/api/enquiries", body))
			require.NoError(t, err)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}

	resp, err := app.Test(testutil.JSONRequest(t, http.MethodPost, "/api/contact", validEnquiry()))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "subject is required")
}

func TestAdminEnquiryWorkflow(t *testing.T) {
	db := testutil.SetupDB(t)
	app := newApp(notify.Nop{})

	first := models.Enquiry{Name: "A", Email: "a@x.com", Phone: "9876543210", Message: "hi"}
	second := models.Enquiry{Name: "B", Email: "b@x.com", Phone: "9876543211", Message: "hello"}
	require.NoError(t, db.Create(&first).Error)
	require.NoError(t, db.Create(&second).Error)

	target := "/api/admin/enquiries/" + strconv.FormatUint(uint64(first.ID), 10)
	resp, err := app.Test(httptest.NewRequest(http.MethodPatch, target+"/responded", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var updated models.Enquiry
	testutil.DecodeJSON(t, resp, &updated)
	assert.True(t, updated.IsRead)
	assert.True(t, updated.IsResponded)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/admin/enquiries?unread=true", nil))
	require.NoError(t, err)
	var unread []models.Enquiry
	testutil.DecodeJSON(t, resp, &unread)
	require.Len(t, unread, 1)
	assert.Equal(t, "B", unread[0].Name)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/admin/enquiries/export", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	f, err := excelize.OpenReader(resp.Body)
	require.NoError(t, err)
	rows, err := f.GetRows("Enquiries")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Name", rows[0][1])

	resp, err = app.Test(httptest.NewRequest(http.MethodDelete, target, nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodPatch, target+"/read", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAdminContactWorkflow(t *testing.T) {
	db := testutil.SetupDB(t)
	app := newApp(notify.Nop{})

	m := models.ContactMessage{Name: "C", Email: "c@x.com", Phone: "9876543210", Subject: "Hi", Message: "hello"}
	require.NoError(t, db.Create(&m).Error)
	target := "/api/admin/contacts/" + strconv.FormatUint(uint64(m.ID), 10)

	resp, err := app.Test(httptest.NewRequest(http.MethodPatch, target+"/read", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/admin/contacts?unread=true", nil))
	require.NoError(t, err)
	var unread []models.ContactMessage
	testutil.DecodeJSON(t, resp, &unread)
	assert.Empty(t, unread)

	resp, err = app.Test(httptest.NewRequest(http.MethodDelete, target, nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	var count int64
	db.Model(&models.AuditLog{}).Where("entity_type = ?", "contact").Count(&count)
	assert.EqualValues(t, 2, count)
}
