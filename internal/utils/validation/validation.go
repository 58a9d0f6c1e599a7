// Package validation configures go-playground/validator for request DTOs and
// spreadsheet imports.
package validation

import (
	"reflect"
	"sync"

	"github.com/SscSPs/fintrack/internal/core/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var (
	once     sync.Once
	instance *validator.Validate
)

// Register installs the custom rules on v:
//
//	monthkey  a YYYY-MM month
//	isodate   a YYYY-MM-DD calendar date
//
// decimal.Decimal fields are validated as float64, so gte/gt/lte work on amounts.
func Register(v *validator.Validate) error {
	v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})
	if err := v.RegisterValidation("monthkey", isMonthKey); err != nil {
		return err
	}
	return v.RegisterValidation("isodate", isISODate)
}

// RegisterWithGin installs the custom rules on gin's default validator.
func RegisterWithGin() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return Register(v)
}

// Validator returns a shared, fully registered validator for non-HTTP callers.
func Validator() *validator.Validate {
	once.Do(func() {
		instance = validator.New(validator.WithRequiredStructEnabled())
		if err := Register(instance); err != nil {
			panic(err)
		}
	})
	return instance
}

func decimalValue(field reflect.Value) interface{} {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		f, _ := d.Float64()
		return f
	}
	return nil
}

func isMonthKey(fl validator.FieldLevel) bool {
	return domain.MonthKey(fl.Field().String()).Valid()
}

func isISODate(fl validator.FieldLevel) bool {
	_, err := domain.ParseDate(fl.Field().String())
	return err == nil
}
