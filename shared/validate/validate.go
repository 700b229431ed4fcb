package validate

import (
	"errors"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	entranslations "github.com/go-playground/validator/v10/translations/en"
)

// Validator checks request payloads against their `validate` tags and renders
// failures as English messages keyed by the JSON field name.
type Validator struct {
	validate   *validator.Validate
	translator ut.Translator
}

// FieldErrors maps a JSON field name to its human readable message.
type FieldErrors map[string]string

func (f FieldErrors) Error() string {
	fields := make([]string, 0, len(f))
	for field := range f {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	msgs := make([]string, 0, len(fields))
	for _, field := range fields {
		msgs = append(msgs, f[field])
	}

	return strings.Join(msgs, "; ")
}

// New creates a Validator with the English translations registered.
func New() (*Validator, error) {
	english := en.New()
	uni := ut.New(english, english)
	translator, _ := uni.GetTranslator("en")

	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if err := entranslations.RegisterDefaultTranslations(v, translator); err != nil {
		return nil, err
	}

	return &Validator{validate: v, translator: translator}, nil
}

// Struct validates s. It returns FieldErrors when any rule fails.
func (v *Validator) Struct(s any) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	fields := make(FieldErrors, len(validationErrs))
	for _, fe := range validationErrs {
		fields[fe.Field()] = fe.Translate(v.translator)
	}

	return fields
}

// Var validates a single value against tag, e.g. "required,email".
func (v *Validator) Var(value any, tag string) error {
	return v.validate.Var(value, tag)
}
