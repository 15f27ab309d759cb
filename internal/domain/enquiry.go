package domain

import "time"

// EnquiryStatus represents lifecycle states for a customer enquiry.
type EnquiryStatus string

const (
	EnquiryStatusNew      EnquiryStatus = "new"
	EnquiryStatusRead     EnquiryStatus = "read"
	EnquiryStatusResolved EnquiryStatus = "resolved"
)

// ValidEnquiryStatus reports whether s is a known status value.
func ValidEnquiryStatus(s EnquiryStatus) bool {
	switch s {
	case EnquiryStatusNew, EnquiryStatusRead, EnquiryStatusResolved:
		return true
	}
	return false
}

// Enquiry is a customer contact submission, optionally tied to a product.
type Enquiry struct {
	ID        string
	Reference string
	Name      string
	Email     string
	Phone     string
	Subject   string
	Message   string
	ProductID *string
	Status    EnquiryStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}
