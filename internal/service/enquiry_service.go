package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/muynuddinr/dahua-dubai.com-sub001/internal/domain"
	"github.com/muynuddinr/dahua-dubai.com-sub001/internal/events"
	"github.com/muynuddinr/dahua-dubai.com-sub001/internal/repository"
	apperrors "github.com/muynuddinr/dahua-dubai.com-sub001/pkg/util"
)

// EnquiryService handles customer enquiry intake and the admin inbox flow.
type EnquiryService struct {
	enquiries  repository.EnquiryRepository
	products   repository.ProductRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// EnquiryDependencies encapsulates requirements for the enquiry service.
type EnquiryDependencies struct {
	EnquiryRepo repository.EnquiryRepository
	ProductRepo repository.ProductRepository
	Dispatcher  events.Dispatcher
	Logger      *zap.Logger
}

// NewEnquiryService builds the service.
func NewEnquiryService(deps EnquiryDependencies) *EnquiryService {
	return &EnquiryService{
		enquiries:  deps.EnquiryRepo,
		products:   deps.ProductRepo,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
	}
}

// EnquiryInput carries a public contact-form submission.
type EnquiryInput struct {
	Name      string
	Email     string
	Phone     string
	Subject   string
	Message   string
	ProductID *string
}

// Submit records a new enquiry and emits enquiry_received.
func (s *EnquiryService) Submit(ctx context.Context, input EnquiryInput) (*domain.Enquiry, error) {
	if input.ProductID != nil {
		if _, err := s.products.GetByID(ctx, *input.ProductID); err != nil {
			if err == pgx.ErrNoRows {
				return nil, apperrors.NewValidationError("productId does not reference an existing product")
			}
			return nil, apperrors.MapError(err)
		}
	}

	enquiry := &domain.Enquiry{
		Reference: newReference(),
		Name:      input.Name,
		Email:     input.Email,
		Phone:     input.Phone,
		Subject:   input.Subject,
		Message:   input.Message,
		ProductID: input.ProductID,
		Status:    domain.EnquiryStatusNew,
	}
	if err := s.enquiries.Create(ctx, enquiry); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publish(ctx, events.EventEnquiryReceived, events.EnquiryReceivedPayload{
		EnquiryID: enquiry.ID,
		Reference: enquiry.Reference,
		Email:     enquiry.Email,
		Subject:   enquiry.Subject,
		ProductID: enquiry.ProductID,
	})
	return enquiry, nil
}

// List returns enquiries for the admin inbox.
func (s *EnquiryService) List(ctx context.Context, filter repository.EnquiryFilter) ([]domain.Enquiry, error) {
	list, err := s.enquiries.List(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return list, nil
}

// Get fetches one enquiry. The first admin read of a new enquiry marks it read.
func (s *EnquiryService) Get(ctx context.Context, id string) (*domain.Enquiry, error) {
	enquiry, err := s.enquiries.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("enquiry")
		}
		return nil, apperrors.MapError(err)
	}

	if enquiry.Status == domain.EnquiryStatusNew {
		if err := s.enquiries.UpdateStatus(ctx, enquiry.ID, domain.EnquiryStatusRead); err != nil {
			s.logger.Warn("failed to mark enquiry read", zap.Error(err))
		} else {
			old := enquiry.Status
			enquiry.Status = domain.EnquiryStatusRead
			s.publish(ctx, events.EventEnquiryStatusChanged, events.EnquiryStatusChangedPayload{
				EnquiryID: enquiry.ID,
				Reference: enquiry.Reference,
				OldStatus: old,
				NewStatus: enquiry.Status,
			})
		}
	}
	return enquiry, nil
}

// UpdateStatus moves an enquiry forward in its lifecycle. Status only advances
// (new -> read -> resolved); a resolved enquiry cannot be reopened.
func (s *EnquiryService) UpdateStatus(ctx context.Context, id string, status domain.EnquiryStatus) (*domain.Enquiry, error) {
	if !domain.ValidEnquiryStatus(status) {
		return nil, apperrors.NewValidationError("status must be one of new, read, resolved")
	}

	enquiry, err := s.enquiries.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("enquiry")
		}
		return nil, apperrors.MapError(err)
	}

	if statusRank(status) < statusRank(enquiry.Status) {
		return nil, apperrors.NewValidationError(
			fmt.Sprintf("cannot move enquiry from %s back to %s", enquiry.Status, status))
	}
	if status == enquiry.Status {
		return enquiry, nil
	}

	old := enquiry.Status
	if err := s.enquiries.UpdateStatus(ctx, id, status); err != nil {
		return nil, apperrors.MapError(err)
	}
	enquiry.Status = status

	s.publish(ctx, events.EventEnquiryStatusChanged, events.EnquiryStatusChangedPayload{
		EnquiryID: enquiry.ID,
		Reference: enquiry.Reference,
		OldStatus: old,
		NewStatus: status,
	})
	return enquiry, nil
}

// Delete removes an enquiry permanently.
func (s *EnquiryService) Delete(ctx context.Context, id string) error {
	if err := s.enquiries.Delete(ctx, id); err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("enquiry")
		}
		return apperrors.MapError(err)
	}
	return nil
}

func (s *EnquiryService) publish(ctx context.Context, eventType events.EventType, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	event := events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now(),
		Payload:   payload,
	}
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("failed to publish enquiry event", zap.Error(err))
	}
}

func statusRank(status domain.EnquiryStatus) int {
	switch status {
	case domain.EnquiryStatusNew:
		return 0
	case domain.EnquiryStatusRead:
		return 1
	case domain.EnquiryStatusResolved:
		return 2
	}
	return -1
}

func newReference() string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "ENQ-" + strings.ToUpper(id[:8])
}
