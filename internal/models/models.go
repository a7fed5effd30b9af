package models

// All lists every model handled by AutoMigrate.
func All() []any {
	return []any{
		&User{},
		&City{},
		&Area{},
		&Property{},
		&Blog{},
		&Service{},
		&Testimonial{},
		&Enquiry{},
		&ContactMessage{},
		&AuditLog{},
	}
}
