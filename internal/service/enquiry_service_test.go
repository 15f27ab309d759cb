package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/muynuddinr/dahua-dubai.com-sub001/internal/domain"
	"github.com/muynuddinr/dahua-dubai.com-sub001/internal/events"
	"github.com/muynuddinr/dahua-dubai.com-sub001/internal/repository"
	apperrors "github.com/muynuddinr/dahua-dubai.com-sub001/pkg/util"
)

type enquiryRepoMock struct {
	byID   map[string]*domain.Enquiry
	nextID int
}

func newEnquiryRepoMock() *enquiryRepoMock {
	return &enquiryRepoMock{byID: map[string]*domain.Enquiry{}}
}

func (m *enquiryRepoMock) Create(_ context.Context, enquiry *domain.Enquiry) error {
	m.nextID++
	enquiry.ID = fmt.Sprintf("enq-%d", m.nextID)
	stored := *enquiry
	m.byID[enquiry.ID] = &stored
	return nil
}

func (m *enquiryRepoMock) UpdateStatus(_ context.Context, id string, status domain.EnquiryStatus) error {
	enquiry, ok := m.byID[id]
	if !ok {
		return pgx.ErrNoRows
	}
	enquiry.Status = status
	return nil
}

func (m *enquiryRepoMock) Delete(_ context.Context, id string) error {
	if _, ok := m.byID[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(m.byID, id)
	return nil
}

func (m *enquiryRepoMock) GetByID(_ context.Context, id string) (*domain.Enquiry, error) {
	enquiry, ok := m.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	found := *enquiry
	return &found, nil
}

func (m *enquiryRepoMock) List(_ context.Context, filter repository.EnquiryFilter) ([]domain.Enquiry, error) {
	var out []domain.Enquiry
	for _, enquiry := range m.byID {
		if filter.Status != nil && enquiry.Status != *filter.Status {
			continue
		}
		out = append(out, *enquiry)
	}
	return out, nil
}

type enquiryFixture struct {
	svc       *EnquiryService
	enquiries *enquiryRepoMock
	products  *productRepoMock
	events    *[]events.Event
}

func newEnquiryFixture(t *testing.T) enquiryFixture {
	t.Helper()
	enquiries := newEnquiryRepoMock()
	products := newProductRepoMock()

	var published []events.Event
	dispatcher := events.NewInMemoryDispatcher()
	record := func(_ context.Context, e events.Event) error {
		published = append(published, e)
		return nil
	}
	dispatcher.Subscribe(events.EventEnquiryReceived, record)
	dispatcher.Subscribe(events.EventEnquiryStatusChanged, record)

	svc := NewEnquiryService(EnquiryDependencies{
		EnquiryRepo: enquiries,
		ProductRepo: products,
		Dispatcher:  dispatcher,
		Logger:      zap.NewNop(),
	})
	return enquiryFixture{svc: svc, enquiries: enquiries, products: products, events: &published}
}

var referencePattern = regexp.MustCompile(`^ENQ-[0-9A-F]{8}$`)

func TestSubmitEnquiry(t *testing.T) {
	f := newEnquiryFixture(t)
	ctx := context.Background()

	enquiry, err := f.svc.Submit(ctx, EnquiryInput{
		Name:    "Jordan Blake",
		Email:   "jordan@example.com",
		Phone:   "+971500000000",
		Subject: "Bulk pricing",
		Message: "Looking for a quote on 40 dome cameras.",
	})
	require.NoError(t, err)
	require.Regexp(t, referencePattern, enquiry.Reference)
	require.Equal(t, domain.EnquiryStatusNew, enquiry.Status)

	require.Len(t, *f.events, 1)
	require.Equal(t, events.EventEnquiryReceived, (*f.events)[0].Type)
	payload, ok := (*f.events)[0].Payload.(events.EnquiryReceivedPayload)
	require.True(t, ok)
	require.Equal(t, enquiry.Reference, payload.Reference)
	require.Equal(t, "jordan@example.com", payload.Email)
}

func TestSubmitEnquiryValidatesProduct(t *testing.T) {
	f := newEnquiryFixture(t)
	ctx := context.Background()

	missing := "missing"
	_, err := f.svc.Submit(ctx, EnquiryInput{Name: "Jordan", Email: "jordan@example.com", Message: "hi", ProductID: &missing})
	var domainErr *apperrors.DomainError
	require.True(t, errors.As(err, &domainErr))
	require.Equal(t, "VALIDATION_FAILED", domainErr.Code)

	product := &domain.Product{Name: "Dome Cam", Slug: "dome-cam"}
	require.NoError(t, f.products.Create(ctx, product))

	enquiry, err := f.svc.Submit(ctx, EnquiryInput{Name: "Jordan", Email: "jordan@example.com", Message: "hi", ProductID: &product.ID})
	require.NoError(t, err)
	require.NotNil(t, enquiry.ProductID)
	require.Equal(t, product.ID, *enquiry.ProductID)
}

func TestGetMarksNewEnquiryRead(t *testing.T) {
	f := newEnquiryFixture(t)
	ctx := context.Background()

	submitted, err := f.svc.Submit(ctx, EnquiryInput{Name: "Jordan", Email: "jordan@example.com", Message: "hi"})
	require.NoError(t, err)

	got, err := f.svc.Get(ctx, submitted.ID)
	require.NoError(t, err)
	require.Equal(t, domain.EnquiryStatusRead, got.Status)

	stored, err := f.enquiries.GetByID(ctx, submitted.ID)
	require.NoError(t, err)
	require.Equal(t, domain.EnquiryStatusRead, stored.Status)

	// second read does not change status or emit again
	before := len(*f.events)
	got, err = f.svc.Get(ctx, submitted.ID)
	require.NoError(t, err)
	require.Equal(t, domain.EnquiryStatusRead, got.Status)
	require.Len(t, *f.events, before)
}

func TestUpdateStatusForwardOnly(t *testing.T) {
	f := newEnquiryFixture(t)
	ctx := context.Background()

	submitted, err := f.svc.Submit(ctx, EnquiryInput{Name: "Jordan", Email: "jordan@example.com", Message: "hi"})
	require.NoError(t, err)

	resolved, err := f.svc.UpdateStatus(ctx, submitted.ID, domain.EnquiryStatusResolved)
	require.NoError(t, err)
	require.Equal(t, domain.EnquiryStatusResolved, resolved.Status)

	_, err = f.svc.UpdateStatus(ctx, submitted.ID, domain.EnquiryStatusNew)
	var domainErr *apperrors.DomainError
	require.True(t, errors.As(err, &domainErr))
	require.Equal(t, "VALIDATION_FAILED", domainErr.Code)

	_, err = f.svc.UpdateStatus(ctx, submitted.ID, domain.EnquiryStatus("bogus"))
	require.True(t, errors.As(err, &domainErr))
	require.Equal(t, "VALIDATION_FAILED", domainErr.Code)

	// same status is a no-op, not an error
	again, err := f.svc.UpdateStatus(ctx, submitted.ID, domain.EnquiryStatusResolved)
	require.NoError(t, err)
	require.Equal(t, domain.EnquiryStatusResolved, again.Status)
}

func TestUpdateStatusEmitsEvent(t *testing.T) {
	f := newEnquiryFixture(t)
	ctx := context.Background()

	submitted, err := f.svc.Submit(ctx, EnquiryInput{Name: "Jordan", Email: "jordan@example.com", Message: "hi"})
	require.NoError(t, err)

	_, err = f.svc.UpdateStatus(ctx, submitted.ID, domain.EnquiryStatusRead)
	require.NoError(t, err)

	require.Len(t, *f.events, 2)
	payload, ok := (*f.events)[1].Payload.(events.EnquiryStatusChangedPayload)
	require.True(t, ok)
	require.Equal(t, domain.EnquiryStatusNew, payload.OldStatus)
	require.Equal(t, domain.EnquiryStatusRead, payload.NewStatus)
}

func TestDeleteEnquiry(t *testing.T) {
	f := newEnquiryFixture(t)
	ctx := context.Background()

	submitted, err := f.svc.Submit(ctx, EnquiryInput{Name: "Jordan", Email: "jordan@example.com", Message: "hi"})
	require.NoError(t, err)
	require.NoError(t, f.svc.Delete(ctx, submitted.ID))

	err = f.svc.Delete(ctx, submitted.ID)
	var domainErr *apperrors.DomainError
	require.True(t, errors.As(err, &domainErr))
	require.Equal(t, "NOT_FOUND", domainErr.Code)
}
