package form

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var ErrValidation = errors.New("invalid form")

// FieldError names one rejected input by its wire name.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError lists every rejected input. It matches ErrValidation.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.Message
	}
	return strings.Join(msgs, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// Has reports whether field was rejected.
func (e *ValidationError) Has(field string) bool {
	for _, f := range e.Fields {
		if f.Field == field {
			return true
		}
	}
	return false
}

// Validator wraps go-playground/validator for the user forms.
type Validator struct {
	validate  *validator.Validate
	strictAHV bool
}

// NewValidator builds the form validator. With strictAHV the AHV number must
// also be a well-formed 756.xxxx.xxxx.xx number with a valid check digit.
func NewValidator(strictAHV bool) *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	// registration only fails for an empty tag or nil func
	_ = v.RegisterValidation("ahv", func(fl validator.FieldLevel) bool {
		return ValidAHV(fl.Field().String())
	})
	return &Validator{validate: v, strictAHV: strictAHV}
}

// Validate checks i against its struct tags and, if enabled, the AHV rule
// on ahvNr. A nil result means the input is acceptable.
func (v *Validator) Validate(i any, ahvNr string) error {
	var fields []FieldError
	if err := v.validate.Struct(i); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return err
		}
		for _, fe := range verrs {
			fields = append(fields, FieldError{Field: fe.Field(), Message: message(fe)})
		}
	}
	if v.strictAHV && ahvNr != "" {
		if err := v.validate.Var(ahvNr, "ahv"); err != nil {
			fields = append(fields, FieldError{Field: "ahv_nr", Message: "ahv_nr is not a valid AHV number"})
		}
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "number":
		return fmt.Sprintf("%s must be a whole number", fe.Field())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}

var ahvPattern = regexp.MustCompile(`^756\.\d{4}\.\d{4}\.\d{2}$`)

// ValidAHV checks the format and the EAN-13 check digit of a Swiss AHV
// number, e.g. 756.9217.0769.85.
func ValidAHV(s string) bool {
	if !ahvPattern.MatchString(s) {
		return false
	}
	digits := strings.ReplaceAll(s, ".", "")
	check := int(digits[len(digits)-1] - '0')
	body := digits[:len(digits)-1]

	sum := 0
	// weights alternate 3,1 starting from the rightmost body digit
	for i := 0; i < len(body); i++ {
		d := int(body[len(body)-1-i] - '0')
		if i%2 == 0 {
			d *= 3
		}
		sum += d
	}
	return (10-sum%10)%10 == check
}
