package validator

import (
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var hhmmPattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d(:[0-5]\d)?$`)

// Validator checks request structs against their `validate` tags. Field names
// in errors come from the form or json tag.
type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	v := validator.New()
	v.SetTagName("validate")

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"form", "json"} {
			name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
			if name != "" && name != "-" {
				return name
			}
		}
		return fld.Name
	})

	// Registration only fails for empty tags or nil funcs.
	_ = v.RegisterValidation("hhmm", isHHMM)
	_ = v.RegisterValidation("isodate", isISODate)

	return &Validator{validate: v}
}

func (v *Validator) Validate(obj interface{}) error {
	return v.validate.Struct(obj)
}

// isHHMM accepts "HH:MM" and "HH:MM:SS".
func isHHMM(fl validator.FieldLevel) bool {
	return hhmmPattern.MatchString(fl.Field().String())
}

// isISODate accepts a calendar date as "YYYY-MM-DD".
func isISODate(fl validator.FieldLevel) bool {
	_, err := time.Parse("2006-01-02", fl.Field().String())
	return err == nil
}
