// Package notify publishes new leads to downstream consumers (CRM sync,
// e-mail alerts) without blocking the visitor's request.
package notify

import (
	"context"
	"time"
)

//go:generate mockgen -destination=../mocks/notifier_mock.go -package=mocks github.com/KAMASDM/naishad/internal/notify Notifier

const (
	KindEnquiry = "enquiry"
	KindContact = "contact"
)

// LeadEvent is the JSON payload published for every enquiry and contact message.
type LeadEvent struct {
	Kind       string    `json:"kind"`
	ID         uint      `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	Subject    string    `json:"subject,omitempty"`
	PropertyID *uint     `json:"property_id,omitempty"`
	Interest   string    `json:"property_interest,omitempty"`
	Message    string    `json:"message"`
	CreatedAt  time.Time `json:"created_at"`
}

// RoutingKey is "lead.<kind>".
func (e LeadEvent) RoutingKey() string {
	return "lead." + e.Kind
}

type Notifier interface {
	LeadCreated(ctx context.Context, event LeadEvent) error
	Close() error
}

// Nop drops every event. Used when no broker is configured.
type Nop struct{}

func (Nop) LeadCreated(context.Context, LeadEvent) error { return nil }
func (Nop) Close() error                                 { return nil }
