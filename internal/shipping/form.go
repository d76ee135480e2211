package shipping

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" {
			return f.Name
		}
		return tag
	})
	return v
}

// formFields mirrors Info with the constraints the form enforces:
// every field must be non-empty after trimming.
type formFields struct {
	Country string `json:"country" validate:"required"`
	State   string `json:"state" validate:"required"`
	ZipCode string `json:"zipCode" validate:"required"`
}

var fieldLabels = map[string]string{
	"country": "Country",
	"state":   "State",
	"zipCode": "ZIP code",
}

// Form tracks an editable shipping address together with its validation
// errors, keyed by json field name.
type Form struct {
	initial Info
	Info    Info
	errors  map[string]string
}

func NewForm(initial Info) *Form {
	return &Form{
		initial: initial,
		Info:    initial,
		errors:  map[string]string{},
	}
}

// Validate checks the current address and returns true when it is usable.
// Field errors are replaced on every call.
func (f *Form) Validate() bool {
	f.errors = map[string]string{}

	trimmed := f.Info.trimmed()
	err := validate.Struct(formFields(trimmed))
	if err == nil {
		return true
	}

	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		f.errors["form"] = "is invalid"
		return false
	}
	for _, fieldErr := range errs {
		f.errors[fieldErr.Field()] = fieldMessage(fieldErr)
	}
	return false
}

// Errors returns the field errors recorded by the last Validate call.
func (f *Form) Errors() map[string]string {
	return f.errors
}

// Reset restores the initial address, applies the optional overrides, and
// clears all field errors.
func (f *Form) Reset(overrides ...Update) {
	f.Info = f.initial
	for _, u := range overrides {
		f.Info = f.Info.Merge(u)
	}
	f.errors = map[string]string{}
}

func fieldMessage(fe validator.FieldError) string {
	label := fieldLabels[fe.Field()]
	if label == "" {
		label = fe.Field()
	}
	if fe.Tag() == "required" {
		return label + " is required"
	}
	return label + " is invalid"
}
