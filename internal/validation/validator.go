package validation

import (
	"regexp"

	validatorv10 "github.com/go-playground/validator/v10"
)

// msisdnPattern matches an international subscriber number without prefix,
// the only payer format the collection gateway accepts.
var msisdnPattern = regexp.MustCompile(`^[0-9]{8,15}$`)

// New returns a configured validator with custom validations registered.
func New() *validatorv10.Validate {
	v := validatorv10.New()

	// "msisdn" validates payer phone numbers at the API boundary. The
	// payment service re-checks this; the tag exists to reject early with a
	// field-level message.
	_ = v.RegisterValidation("msisdn", func(fl validatorv10.FieldLevel) bool {
		return msisdnPattern.MatchString(fl.Field().String())
	})

	return v
}
