package serverutils

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

type ErrorDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ValidationError struct {
	details []ErrorDetail
}

func (v *ValidationError) Error() string {
	msgs := make([]string, 0, len(v.details))
	for _, d := range v.details {
		msgs = append(msgs, fmt.Sprintf("%s: %s", d.Field, d.Message))
	}
	return strings.Join(msgs, "; ")
}

func (v *ValidationError) ToErrorDetails() []ErrorDetail {
	return v.details
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// required alone accepts strings made of spaces
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	return v
}

func ValidateRequest(req any) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	details := make([]ErrorDetail, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		var msg string
		switch fe.Tag() {
		case "required":
			msg = "is required"
		case "notblank":
			msg = "must not be empty or whitespace"
		default:
			msg = fmt.Sprintf("failed on the %q rule", fe.Tag())
		}
		details = append(details, ErrorDetail{
			Field:   strings.ToLower(fe.Field()),
			Message: msg,
		})
	}

	return &ValidationError{details: details}
}
