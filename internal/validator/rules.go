package validator

import (
	"log"

	"github.com/adam-ctrlc/gotrabahu/internal/models"
	"github.com/go-playground/validator/v10"
)

// registerCustomRules installs the enum validations backed by the model
// status tables.
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	mustRegister("user-role", validateUserRole)
	mustRegister("application-status", validateApplicationStatus)
	mustRegister("subscription-status", validateSubscriptionStatus)
	mustRegister("job-type", validateJobType)
}

func validateUserRole(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true // emptiness is the 'required' tag's business
	}
	return models.ValidUserRole(models.UserRole(value))
}

func validateApplicationStatus(fl validator.FieldLevel) bool {
	switch models.ApplicationStatus(fl.Field().String()) {
	case models.ApplicationStatusApplied,
		models.ApplicationStatusAccepted,
		models.ApplicationStatusRejected,
		models.ApplicationStatusDone:
		return true
	case "":
		return true
	}
	return false
}

func validateSubscriptionStatus(fl validator.FieldLevel) bool {
	switch models.SubscriptionStatus(fl.Field().String()) {
	case models.SubscriptionStatusPending,
		models.SubscriptionStatusActive,
		models.SubscriptionStatusInactive:
		return true
	case "":
		return true
	}
	return false
}

func validateJobType(fl validator.FieldLevel) bool {
	switch models.JobType(fl.Field().String()) {
	case models.JobTypeFullTime, models.JobTypePartTime, models.JobTypeOrder:
		return true
	case "":
		return true
	}
	return false
}
