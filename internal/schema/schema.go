// Package schema defines the accepted shapes of incoming payloads and validates them.
package schema

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/jon4hz/whispernet/internal/category"
)

// DefaultMaxContentLength is used when no explicit message length limit is configured.
const DefaultMaxContentLength = 2000

// FieldError describes a single rejected field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError is returned when a payload does not match its schema.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		parts[i] = fe.Field + ": " + fe.Message
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

type normalizer interface {
	normalize()
}

// Validator validates payloads against their schema tags.
type Validator struct {
	validate         *validator.Validate
	maxContentLength int
}

// New creates a validator. maxContentLength limits message content in runes;
// values <= 0 select DefaultMaxContentLength.
func New(maxContentLength int) *Validator {
	if maxContentLength <= 0 {
		maxContentLength = DefaultMaxContentLength
	}
	v := &Validator{
		validate:         validator.New(validator.WithRequiredStructEnabled()),
		maxContentLength: maxContentLength,
	}

	// report json field names instead of go field names
	v.validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	v.validate.RegisterValidation("category", func(fl validator.FieldLevel) bool { //nolint:errcheck
		return category.IsValid(fl.Field().String())
	})
	v.validate.RegisterValidation("notblank", func(fl validator.FieldLevel) bool { //nolint:errcheck
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	v.validate.RegisterStructValidation(v.messageLength, CreateMessage{})

	return v
}

// MaxContentLength returns the configured message content limit.
func (v *Validator) MaxContentLength() int {
	return v.maxContentLength
}

func (v *Validator) messageLength(sl validator.StructLevel) {
	msg := sl.Current().Interface().(CreateMessage)
	if utf8.RuneCountInString(msg.Content) > v.maxContentLength {
		sl.ReportError(msg.Content, "content", "Content", "max", fmt.Sprintf("%d", v.maxContentLength))
	}
}

// Struct normalizes the payload in place and validates it.
// It returns a *ValidationError if the payload is rejected.
func (v *Validator) Struct(payload any) error {
	if n, ok := payload.(normalizer); ok {
		n.normalize()
	}

	err := v.validate.Struct(payload)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	out := &ValidationError{Errors: make([]FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		out.Errors = append(out.Errors, FieldError{
			Field:   fe.Field(),
			Message: describe(fe),
		})
	}
	return out
}

func describe(fe validator.FieldError) string {
	isString := fe.Kind() == reflect.String
	switch fe.Tag() {
	case "required":
		return "is required"
	case "notblank":
		return "must not be blank"
	case "min":
		if isString {
			return fmt.Sprintf("must be at least %s characters long", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		if isString {
			return fmt.Sprintf("must be at most %s characters long", fe.Param())
		}
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "category":
		return "must be one of: " + strings.Join(category.Names(), ", ")
	case "http_url":
		return "must be a valid http(s) URL"
	}
	return fmt.Sprintf("failed on the '%s' rule", fe.Tag())
}

func trim(s *string) {
	*s = strings.TrimSpace(*s)
}

// trimOptional trims an optional string and drops it when empty.
func trimOptional(s **string) {
	if *s == nil {
		return
	}
	v := strings.TrimSpace(**s)
	if v == "" {
		*s = nil
		return
	}
	*s = &v
}
