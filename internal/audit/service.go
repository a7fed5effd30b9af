package audit

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/KAMASDM/naishad/internal/auth"
	"github.com/KAMASDM/naishad/internal/database"
	"github.com/KAMASDM/naishad/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	EntityProperty    = "property"
	EntityBlog        = "blog"
	EntityService     = "service"
	EntityTestimonial = "testimonial"
	EntityEnquiry     = "enquiry"
	EntityContact     = "contact"
	EntityCity        = "city"
	EntityArea        = "area"
)

var (
	ErrAlreadyUndone     = errors.New("this change has already been undone")
	ErrNotUndoable       = errors.New("this action cannot be undone")
	ErrUnknownEntityType = errors.New("unknown entity type")
)

// entities maps an entity type to a constructor of its model.
var entities = map[string]func() any{
	EntityProperty:    func() any { return &models.Property{} },
	EntityBlog:        func() any { return &models.Blog{} },
	EntityService:     func() any { return &models.Service{} },
	EntityTestimonial: func() any { return &models.Testimonial{} },
	EntityEnquiry:     func() any { return &models.Enquiry{} },
	EntityContact:     func() any { return &models.ContactMessage{} },
	EntityCity:        func() any { return &models.City{} },
	EntityArea:        func() any { return &models.Area{} },
}

type LogOptions struct {
	UserID      uint
	UserName    string
	EntityType  string
	EntityID    uint
	Action      models.AuditAction
	Description string
	Before      any
	After       any
}

func WriteLog(opts LogOptions) error {
	entry := models.AuditLog{
		UserID:      opts.UserID,
		UserName:    opts.UserName,
		EntityType:  opts.EntityType,
		EntityID:    opts.EntityID,
		Action:      opts.Action,
		Description: opts.Description,
		BeforeData:  snapshot(opts.Before),
		AfterData:   snapshot(opts.After),
	}

	if err := database.DB.Create(&entry).Error; err != nil {
		return fmt.Errorf("audit log could not be saved: %w", err)
	}
	return nil
}

// Record writes a log for the admin behind the request. Failures are only
// logged; the mutation itself already succeeded.
func Record(c *fiber.Ctx, entityType string, entityID uint, action models.AuditAction, description string, before, after any) {
	opts := LogOptions{
		EntityType:  entityType,
		EntityID:    entityID,
		Action:      action,
		Description: description,
		Before:      before,
		After:       after,
	}
	if user, err := auth.CurrentUser(c); err == nil {
		opts.UserID = user.ID
		opts.UserName = user.Name
	}
	if err := WriteLog(opts); err != nil {
		log.Printf("audit: %v", err)
	}
}

func snapshot(v any) datatypes.JSON {
	if v == nil {
		return datatypes.JSON("null")
	}
	b, err := json.Marshal(v)
	if err != nil {
		return datatypes.JSON("null")
	}
	return datatypes.JSON(b)
}

// UndoLog reverts the change recorded by a log entry and records the undo.
func UndoLog(logID uint, userID uint, userName string) error {
	return database.DB.Transaction(func(tx *gorm.DB) error {
		var entry models.AuditLog
		if err := tx.First(&entry, "id = ?", logID).Error; err != nil {
			return fmt.Errorf("log not found: %w", err)
		}
		if entry.IsUndone {
			return ErrAlreadyUndone
		}

		switch entry.Action {
		case models.AuditActionCreate:
			if err := deleteEntity(tx, entry.EntityType, entry.EntityID); err != nil {
				return fmt.Errorf("entity could not be deleted: %w", err)
			}
		case models.AuditActionUpdate:
			if err := saveEntity(tx, entry.EntityType, entry.BeforeData); err != nil {
				return fmt.Errorf("entity could not be restored: %w", err)
			}
		case models.AuditActionDelete:
			if err := saveEntity(tx, entry.EntityType, entry.BeforeData); err != nil {
				return fmt.Errorf("entity could not be recreated: %w", err)
			}
		default:
			return ErrNotUndoable
		}

		now := time.Now()
		entry.IsUndone = true
		entry.UndoneBy = &userID
		entry.UndoneAt = &now
		if err := tx.Save(&entry).Error; err != nil {
			return fmt.Errorf("log could not be updated: %w", err)
		}

		undo := models.AuditLog{
			UserID:      userID,
			UserName:    userName,
			EntityType:  entry.EntityType,
			EntityID:    entry.EntityID,
			Action:      models.AuditActionUndo,
			Description: "Undone: " + entry.Description,
			BeforeData:  entry.AfterData,
			AfterData:   entry.BeforeData,
		}
		if err := tx.Create(&undo).Error; err != nil {
			return fmt.Errorf("undo log could not be saved: %w", err)
		}
		return nil
	})
}

func deleteEntity(tx *gorm.DB, entityType string, entityID uint) error {
	newModel, ok := entities[entityType]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownEntityType, entityType)
	}
	return tx.Delete(newModel(), "id = ?", entityID).Error
}

// saveEntity writes a snapshot back under its original ID, inserting the row
// again if it was deleted.
func saveEntity(tx *gorm.DB, entityType string, data datatypes.JSON) error {
	newModel, ok := entities[entityType]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownEntityType, entityType)
	}
	if len(data) == 0 || string(data) == "null" {
		return fmt.Errorf("no snapshot to restore")
	}

	m := newModel()
	if err := json.Unmarshal(data, m); err != nil {
		return err
	}
	return tx.Save(m).Error
}
