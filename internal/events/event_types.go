package events

import (
	"time"

	"github.com/muynuddinr/dahua-dubai.com-sub001/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventEnquiryReceived      EventType = "enquiry_received"
	EventEnquiryStatusChanged EventType = "enquiry_status_changed"
	EventCatalogChanged       EventType = "catalog_changed"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// EnquiryReceivedPayload payload.
type EnquiryReceivedPayload struct {
	EnquiryID string  `json:"enquiry_id"`
	Reference string  `json:"reference"`
	Email     string  `json:"email"`
	Subject   string  `json:"subject"`
	ProductID *string `json:"product_id,omitempty"`
}

// EnquiryStatusChangedPayload payload.
type EnquiryStatusChangedPayload struct {
	EnquiryID string               `json:"enquiry_id"`
	Reference string               `json:"reference"`
	OldStatus domain.EnquiryStatus `json:"old_status"`
	NewStatus domain.EnquiryStatus `json:"new_status"`
}

// CatalogChangedPayload payload.
type CatalogChangedPayload struct {
	Entity string `json:"entity"`
	Action string `json:"action"`
	ID     string `json:"id"`
	Slug   string `json:"slug,omitempty"`
}
