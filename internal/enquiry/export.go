package enquiry

import (
	"bytes"
	"io"

	"github.com/KAMASDM/naishad/internal/database"
	"github.com/KAMASDM/naishad/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

const timeLayout = "2006-01-02 15:04"

// ExportEnquiries writes all enquiries, newest first, as an xlsx workbook.
func ExportEnquiries(db *gorm.DB, w io.Writer) error {
	var list []models.Enquiry
	if err := db.Order("created_at DESC, id DESC").Find(&list).Error; err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Enquiries"
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return err
	}

	header := []any{"Date", "Name", "Email", "Phone", "Property", "Message", "Read", "Responded"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	if err := f.SetRowStyle(sheet, 1, 1, style); err != nil {
		return err
	}

	yesNo := func(b bool) string {
		if b {
			return "Yes"
		}
		return "No"
	}
	for i, e := range list {
		row := []any{
			e.CreatedAt.Format(timeLayout), e.Name, e.Email, e.Phone, e.PropertyInterest,
			e.Message, yesNo(e.IsRead), yesNo(e.IsResponded),
		}
		axis, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sheet, axis, &row); err != nil {
			return err
		}
	}
	if err := f.SetColWidth(sheet, "B", "E", 24); err != nil {
		return err
	}
	if err := f.SetColWidth(sheet, "F", "F", 60); err != nil {
		return err
	}
	return f.Write(w)
}

// GET /api/admin/enquiries/export
func ExportEnquiriesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var buf bytes.Buffer
		if err := ExportEnquiries(database.DB, &buf); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not export enquiries")
		}
		c.Attachment("enquiries.xlsx")
		return c.Send(buf.Bytes())
	}
}
