package handler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/banque/registration-system/internal/core/domain"
)

// echoValidator wraps go-playground/validator so Echo can call c.Validate(req).
type echoValidator struct {
	v *validator.Validate
}

// NewValidator returns an echoValidator ready to be assigned to echo.Echo.Validator.
// It registers the client_name, phone, national_id and pin tags, which apply
// the same rules as client verification.
func NewValidator() *echoValidator {
	v := validator.New()
	_ = v.RegisterValidation("client_name", func(fl validator.FieldLevel) bool {
		return domain.ValidName(fl.Field().String())
	})
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return domain.ValidPhone(fl.Field().String())
	})
	_ = v.RegisterValidation("national_id", func(fl validator.FieldLevel) bool {
		return domain.ValidNationalID(fl.Field().String())
	})
	_ = v.RegisterValidation("pin", func(fl validator.FieldLevel) bool {
		return domain.ValidPIN(fl.Field().String())
	})
	return &echoValidator{v: v}
}

// Validate satisfies the echo.Validator interface. Only the first failing
// field is reported, in struct declaration order.
func (ev *echoValidator) Validate(i any) error {
	if err := ev.v.Struct(i); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) && len(ve) > 0 {
			return errors.New(fieldError(ve[0]))
		}
		return err
	}
	return nil
}

// fieldError converts a single ValidationError into a human-readable message.
func fieldError(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " est requis"
	case "client_name":
		return domain.MsgInvalidName
	case "phone":
		return domain.MsgInvalidPhone
	case "national_id":
		return domain.MsgInvalidNatID
	case "pin":
		return domain.MsgPINInvalid
	case "min":
		return fmt.Sprintf("%s doit contenir au moins %s caractères", field, fe.Param())
	default:
		return fmt.Sprintf("%s invalide (%s)", field, fe.Tag())
	}
}
