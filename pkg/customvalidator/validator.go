package customvalidator

import (
	"reflect"
	"regexp"
	"strings"

	"gearguard/pkg/constants"

	"github.com/aarondl/null/v8"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// RegisterCustomValidations installs the project rules on v: enum tags for
// role/request_type/request_stage, notblank for required text, a stricter email
// check, JSON field names in errors, and unwrapping of aarondl/null types.
func RegisterCustomValidations(v *validator.Validate) error {
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	v.RegisterCustomTypeFunc(nullValuer, null.String{}, null.Float64{})

	if err := v.RegisterValidation("email", isGoodEmailFormat); err != nil {
		return err
	}
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		return err
	}
	if err := v.RegisterValidation("role", isRole); err != nil {
		return err
	}
	if err := v.RegisterValidation("request_type", isRequestType); err != nil {
		return err
	}
	if err := v.RegisterValidation("request_stage", isRequestStage); err != nil {
		return err
	}
	return nil
}

func nullValuer(field reflect.Value) interface{} {
	switch v := field.Interface().(type) {
	case null.String:
		if v.Valid {
			return v.String
		}
	case null.Float64:
		if v.Valid {
			return v.Float64
		}
	}
	return nil
}

func isGoodEmailFormat(fl validator.FieldLevel) bool {
	return emailRegex.MatchString(fl.Field().String())
}

func isRole(fl validator.FieldLevel) bool {
	return constants.Role(fl.Field().String()).IsValid()
}

func isRequestType(fl validator.FieldLevel) bool {
	return constants.RequestType(fl.Field().String()).IsValid()
}

func isRequestStage(fl validator.FieldLevel) bool {
	return constants.RequestStage(fl.Field().String()).IsValid()
}
