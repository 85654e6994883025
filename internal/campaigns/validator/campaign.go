package validator

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"utmforge/pkg/model"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	return fmt.Sprintf("validation failed: %d error(s)", len(v))
}

type CampaignValidator struct {
	validate *validator.Validate
}

func NewCampaignValidator() *CampaignValidator {
	return &CampaignValidator{
		validate: validator.New(),
	}
}

// Validate enforces the record's required-field contract: website_url,
// source, and medium must be present. Optional fields are never rejected.
func (v *CampaignValidator) Validate(rec *model.CampaignRecord) error {
	if err := v.validate.Struct(rec); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}
	return nil
}

// Advisories returns the soft findings that never block a build. A record
// lacking both a campaign name and a campaign id is still buildable but
// usually useless for analytics attribution.
func (v *CampaignValidator) Advisories(rec *model.CampaignRecord) []string {
	var notices []string
	if rec.Name == "" && rec.ID == "" {
		notices = append(notices, "either campaign name or campaign id is usually required for analytics tracking")
	}
	return notices
}

func (v *CampaignValidator) translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	var validationErrors ValidationErrors

	for _, err := range errs {
		message := err.Error()
		if err.Tag() == "required" {
			message = "is required"
		}
		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: message,
		})
	}

	return validationErrors
}
