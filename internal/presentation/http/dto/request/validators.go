package request

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/sangkips/milk-ledger/internal/domain/entity"
)

var (
	registerOnce sync.Once
	registerErr  error
)

// RegisterValidators adds the yearmonth and isodate tags to gin's validator
// and makes errors report JSON field names. It is safe to call more than once.
func RegisterValidators() error {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			registerErr = fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
			return
		}
		v.RegisterTagNameFunc(jsonFieldName)
		if registerErr = v.RegisterValidation("yearmonth", validYearMonth); registerErr != nil {
			return
		}
		registerErr = v.RegisterValidation("isodate", validISODate)
	})
	return registerErr
}

func validYearMonth(fl validator.FieldLevel) bool {
	_, err := entity.ParseYearMonth(fl.Field().String())
	return err == nil
}

// validISODate accepts real calendar dates in YYYY-MM-DD form.
func validISODate(fl validator.FieldLevel) bool {
	_, err := entity.YearMonthOf(fl.Field().String())
	return err == nil
}

func jsonFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	return name
}
