package handler

import (
	"reflect"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// newValidator returns a validator that understands decimal and uuid fields.
// Decimals are validated as their string form with the decimal_gt, decimal_gte
// and decimal_lt tags; a nil uuid counts as missing for required.
func newValidator() *validator.Validate {
	v := validator.New()

	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.String()
		}
		return nil
	}, decimal.Decimal{})

	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if id, ok := field.Interface().(uuid.UUID); ok && id != uuid.Nil {
			return id.String()
		}
		return ""
	}, uuid.UUID{})

	_ = v.RegisterValidation("decimal_gt", decimalCompare(func(cmp int) bool { return cmp > 0 }))
	_ = v.RegisterValidation("decimal_gte", decimalCompare(func(cmp int) bool { return cmp >= 0 }))
	_ = v.RegisterValidation("decimal_lt", decimalCompare(func(cmp int) bool { return cmp < 0 }))

	return v
}

func decimalCompare(ok func(cmp int) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		value, err := decimal.NewFromString(fl.Field().String())
		if err != nil {
			return false
		}
		bound, err := decimal.NewFromString(fl.Param())
		if err != nil {
			return false
		}
		return ok(value.Cmp(bound))
	}
}
