package dto

import (
	"time"

	"github.com/muynuddinr/dahua-dubai.com-sub001/internal/domain"
)

// EnquiryRequest payload for the public contact form.
type EnquiryRequest struct {
	Name      string  `json:"name" validate:"required,max=120"`
	Email     string  `json:"email" validate:"required,email"`
	Phone     string  `json:"phone" validate:"max=40"`
	Subject   string  `json:"subject" validate:"max=200"`
	Message   string  `json:"message" validate:"required,max=5000"`
	ProductID *string `json:"productId" validate:"omitempty,uuid4"`
}

// EnquiryStatusRequest payload for the admin status update.
type EnquiryStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=new read resolved"`
}

// EnquiryResponse is the admin inbox shape.
type EnquiryResponse struct {
	ID        string    `json:"id"`
	Reference string    `json:"reference"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	ProductID *string   `json:"productId,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// EnquiryFromDomain maps a stored enquiry to its API shape.
func EnquiryFromDomain(e *domain.Enquiry) EnquiryResponse {
	return EnquiryResponse{
		ID:        e.ID,
		Reference: e.Reference,
		Name:      e.Name,
		Email:     e.Email,
		Phone:     e.Phone,
		Subject:   e.Subject,
		Message:   e.Message,
		ProductID: e.ProductID,
		Status:    string(e.Status),
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

// EnquiriesFromDomain maps a stored enquiry list.
func EnquiriesFromDomain(list []domain.Enquiry) []EnquiryResponse {
	out := make([]EnquiryResponse, 0, len(list))
	for i := range list {
		out = append(out, EnquiryFromDomain(&list[i]))
	}
	return out
}
