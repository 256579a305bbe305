package validation

import (
	"errors"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Validator checks form drafts with the same rules the browser enforces on the
// form inputs: required, min, email, url and yyyy-mm-dd dates.
type Validator struct {
	v *validator.Validate
}

func New() *Validator {
	v := validator.New()

	// Report problems under the json field name, which is also the form input name.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("date", func(fl validator.FieldLevel) bool {
		value, ok := fl.Field().Interface().(string)
		if !ok {
			return false
		}
		_, err := time.Parse("2006-01-02", value)
		return err == nil
	})

	return &Validator{v: v}
}

func (v *Validator) Struct(s interface{}) error {
	return v.v.Struct(s)
}

// Problems maps each failing field to a Spanish message. Returns nil when err is
// not a validation error.
func (v *Validator) Problems(err error) map[string]string {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return nil
	}
	out := make(map[string]string, len(ve))
	for _, fe := range ve {
		out[fe.Field()] = message(fe)
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "Este campo es obligatorio"
	case "email":
		return "Introduce un email válido"
	case "url":
		return "Introduce una URL válida"
	case "date":
		return "Introduce una fecha válida (AAAA-MM-DD)"
	case "min":
		return "El valor mínimo es " + fe.Param()
	case "oneof":
		return "Selecciona una opción válida"
	}
	return "Valor no válido"
}
