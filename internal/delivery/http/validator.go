package http

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// newValidator reports field names by their json tag so validation errors
// match what the page actually submitted.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}
