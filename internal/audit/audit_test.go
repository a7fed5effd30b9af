package audit

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/KAMASDM/naishad/internal/auth"
	"github.com/KAMASDM/naishad/internal/models"
	"github.com/KAMASDM/naishad/internal/testutil"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newApp(userID uint) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(auth.CtxUserIDKey, userID)
		c.Locals(auth.CtxUserRoleKey, models.RoleSuperAdmin)
		return c.Next()
	})
	app.Get("/audit-logs", ListAuditLogsHandler())
	app.Post("/audit-logs/:id/undo", UndoAuditLogHandler())
	return app
}

func lastLogID(t *testing.T, db *gorm.DB) uint {
	t.Helper()
	var entry models.AuditLog
	require.NoError(t, db.Order("id DESC").First(&entry).Error)
	return entry.ID
}

func TestUndoCreateUpdateDelete(t *testing.T) {
	db := testutil.SetupDB(t)

	admin := models.User{Name: "Root", Email: "root@example.com", PasswordHash: "x", Role: models.RoleSuperAdmin}
	require.NoError(t, db.Create(&admin).Error)
	app := newApp(admin.ID)

	undo := func(id uint) *http.Response {
		resp, err := app.Test(testutil.JSONRequest(t, http.MethodPost, fmt.Sprintf("/audit-logs/%d/undo", id), nil))
		require.NoError(t, err)
		return resp
	}

	// create, then undo removes the row
	tm := models.Testimonial{Name: "Asha", Text: "Great help", Rating: 5, IsActive: true}
	require.NoError(t, db.Create(&tm).Error)
	require.NoError(t, WriteLog(LogOptions{EntityType: EntityTestimonial, EntityID: tm.ID, Action: models.AuditActionCreate, After: tm}))

	resp := undo(lastLogID(t, db))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.ErrorIs(t, db.First(&models.Testimonial{}, tm.ID).Error, gorm.ErrRecordNotFound)

	// update, then undo restores the old text
	tm = models.Testimonial{Name: "Ravi", Text: "Before", Rating: 4, IsActive: true}
	require.NoError(t, db.Create(&tm).Error)
	before := tm
	tm.Text = "After"
	require.NoError(t, db.Save(&tm).Error)
	require.NoError(t, WriteLog(LogOptions{EntityType: EntityTestimonial, EntityID: tm.ID, Action: models.AuditActionUpdate, Before: before, After: tm}))

	updateLog := lastLogID(t, db)
	resp = undo(updateLog)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var restored models.Testimonial
	require.NoError(t, db.First(&restored, tm.ID).Error)
	assert.Equal(t, "Before", restored.Text)

	// a log can only be undone once
	resp = undo(updateLog)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// delete, then undo recreates the row under the same ID
	require.NoError(t, db.Delete(&restored).Error)
	require.NoError(t, WriteLog(LogOptions{EntityType: EntityTestimonial, EntityID: restored.ID, Action: models.AuditActionDelete, Before: restored}))

	resp = undo(lastLogID(t, db))
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var recreated models.Testimonial
	require.NoError(t, db.First(&recreated, restored.ID).Error)
	assert.Equal(t, "Ravi", recreated.Name)

	var undoLogs []models.AuditLog
	require.NoError(t, db.Where("action = ?", models.AuditActionUndo).Find(&undoLogs).Error)
	assert.Len(t, undoLogs, 3)
	for _, l := range undoLogs {
		assert.False(t, l.IsUndone)
		assert.ErrorIs(t, UndoLog(l.ID, admin.ID, admin.Name), ErrNotUndoable)
	}

	var undone int64
	db.Model(&models.AuditLog{}).Where("is_undone = ?", true).Count(&undone)
	assert.EqualValues(t, 3, undone)
}

func TestUndoRejectsUndoLogs(t *testing.T) {
	db := testutil.SetupDB(t)

	require.NoError(t, WriteLog(LogOptions{EntityType: EntityCity, EntityID: 1, Action: models.AuditActionUndo}))
	assert.ErrorIs(t, UndoLog(lastLogID(t, db), 1, "Root"), ErrNotUndoable)
}

func TestListAuditLogsFilters(t *testing.T) {
	db := testutil.SetupDB(t)

	admin := models.User{Name: "Root", Email: "root@example.com", PasswordHash: "x", Role: models.RoleSuperAdmin}
	require.NoError(t, db.Create(&admin).Error)

	require.NoError(t, WriteLog(LogOptions{UserID: admin.ID, EntityType: EntityCity, EntityID: 1, Action: models.AuditActionCreate, Description: "City Pune created"}))
	require.NoError(t, WriteLog(LogOptions{UserID: admin.ID, EntityType: EntityArea, EntityID: 2, Action: models.AuditActionCreate, Description: "Area Baner created"}))

	resp, err := newApp(admin.ID).Test(testutil.JSONRequest(t, http.MethodGet, "/audit-logs?entity_type=area", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var logs []AuditLogResponse
	testutil.DecodeJSON(t, resp, &logs)
	require.Len(t, logs, 1)
	assert.Equal(t, "Area Baner created", logs[0].Description)
	assert.EqualValues(t, 2, logs[0].EntityID)
}
