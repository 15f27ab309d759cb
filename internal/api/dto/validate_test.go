package dto

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	apperrors "github.com/muynuddinr/dahua-dubai.com-sub001/pkg/util"
)

func TestValidateEnquiryRequest(t *testing.T) {
	valid := EnquiryRequest{
		Name:    "Jordan Blake",
		Email:   "jordan@example.com",
		Message: "Looking for a quote.",
	}
	require.NoError(t, Validate(valid))
}

func TestValidateReportsFailedFields(t *testing.T) {
	invalid := EnquiryRequest{Email: "not-an-email"}

	err := Validate(invalid)
	require.Error(t, err)
	var domainErr *apperrors.DomainError
	require.True(t, errors.As(err, &domainErr))
	require.Equal(t, "VALIDATION_FAILED", domainErr.Code)
	require.Contains(t, domainErr.Message, "Name (required)")
	require.Contains(t, domainErr.Message, "Email (email)")
	require.Contains(t, domainErr.Message, "Message (required)")
}

func TestValidateEnquiryStatusRequest(t *testing.T) {
	require.NoError(t, Validate(EnquiryStatusRequest{Status: "read"}))

	err := Validate(EnquiryStatusRequest{Status: "archived"})
	require.Error(t, err)
	var domainErr *apperrors.DomainError
	require.True(t, errors.As(err, &domainErr))
	require.Contains(t, domainErr.Message, "Status (oneof)")
}

func TestValidateLoginRequest(t *testing.T) {
	require.NoError(t, Validate(LoginRequest{Email: "admin@example.com", Password: "s3cret"}))
	require.Error(t, Validate(LoginRequest{Email: "admin@example.com"}))
	require.Error(t, Validate(LoginRequest{Email: "nope", Password: "s3cret"}))
}
