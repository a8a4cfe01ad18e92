package dto

import (
	"errors"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// RegisterValidations installs custom binding rules on gin's validator engine.
// "dgt0" requires a decimal.Decimal field to be strictly positive; "dgte0"
// allows zero. The builtin gt/gte tags don't understand decimal.Decimal.
func RegisterValidations() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("unexpected binding validator engine")
	}
	if err := v.RegisterValidation("dgt0", decimalGreaterThanZero); err != nil {
		return err
	}
	return v.RegisterValidation("dgte0", decimalNonNegative)
}

func decimalGreaterThanZero(fl validator.FieldLevel) bool {
	d, ok := fl.Field().Interface().(decimal.Decimal)
	return ok && d.GreaterThan(decimal.Zero)
}

func decimalNonNegative(fl validator.FieldLevel) bool {
	d, ok := fl.Field().Interface().(decimal.Decimal)
	return ok && !d.IsNegative()
}
