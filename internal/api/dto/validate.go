package dto

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/muynuddinr/dahua-dubai.com-sub001/pkg/util"
)

var validate = validator.New()

// Validate runs struct-tag validation and converts failures into a single
// client-facing validation error message.
func Validate(payload any) error {
	err := validate.Struct(payload)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fields := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag()))
		}
		return apperrors.NewValidationError("invalid fields: " + strings.Join(fields, ", "))
	}
	return apperrors.NewValidationError("invalid payload")
}
