package service

import (
	"regexp"
	"strings"

	"pet_constitution/internal/model"

	"github.com/go-playground/validator/v10"
)

var (
	phonePattern   = regexp.MustCompile(`^[0-9-+\s()]+$`)
	isoDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

const isoDateLayout = "2006-01-02"

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	mustRegister(v, "phone", phonePattern)
	mustRegister(v, "isodate", isoDatePattern)
	return v
}

func mustRegister(v *validator.Validate, tag string, pattern *regexp.Regexp) {
	err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
		return pattern.MatchString(fl.Field().String())
	})
	if err != nil {
		panic("service: register validation " + tag + ": " + err.Error())
	}
}

var statusRule = "required,oneof=" + strings.Join(model.ConsultationStatuses, " ")

func validPhone(phone string) bool {
	return validate.Var(phone, "phone") == nil
}

// validDate accepts YYYY-MM-DD strings that name a real calendar day.
func validDate(date string) bool {
	return validate.Var(date, "isodate,datetime="+isoDateLayout) == nil
}

func validStatus(status string) bool {
	return validate.Var(status, statusRule) == nil
}
