// Package validation wraps go-playground/validator with the project's rules and
// turns failures into field-level INVALID_ARGUMENT errors.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/yoockh/folio/internal/models"
	"github.com/yoockh/folio/internal/utils"
)

type Validator struct {
	validate *validator.Validate
}

var (
	labelRe     = regexp.MustCompile(`^[a-z0-9]([a-z0-9-]{1,61}[a-z0-9])$`)
	hostLabelRe = regexp.MustCompile(`^[a-z0-9]([a-z0-9-]{0,61}[a-z0-9])?$`)
	tldRe       = regexp.MustCompile(`^[a-z][a-z0-9-]*[a-z0-9]$`)
)

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	// report JSON names so the client can map errors onto form fields
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	mustRegister(v, "template_name", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return s == "" || slices.Contains(models.Templates, s)
	})
	mustRegister(v, "hostname_label", func(fl validator.FieldLevel) bool {
		return IsLabel(fl.Field().String())
	})

	return &Validator{validate: v}
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register validation %q: %v", tag, err))
	}
}

// IsLabel reports whether s is a lower-case DNS label of 3..63 characters.
func IsLabel(s string) bool {
	return labelRe.MatchString(s)
}

// IsHostname reports whether s is a lower-case, fully qualified host name
// with at least two labels and an alphabetic top-level label.
func IsHostname(s string) bool {
	if len(s) == 0 || len(s) > 253 {
		return false
	}
	labels := strings.Split(s, ".")
	if len(labels) < 2 {
		return false
	}
	for _, l := range labels {
		if !hostLabelRe.MatchString(l) {
			return false
		}
	}
	return tldRe.MatchString(labels[len(labels)-1])
}

// Struct validates i and returns an *utils.AppError with per-field messages.
func (v *Validator) Struct(op string, i any) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return utils.E(utils.CodeInvalidArgument, op, "invalid payload", err)
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fieldPath(fe)] = message(fe)
	}
	return utils.Invalid(op, fields)
}

// fieldPath drops the top-level struct name from the namespace
// ("Experience.highlights[2]" -> "highlights[2]").
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Must be a valid email address"
	case "url":
		return "Must be a valid URL"
	case "min":
		if isLengthKind(fe.Kind()) {
			return fmt.Sprintf("Must be at least %s characters/items long", fe.Param())
		}
		return fmt.Sprintf("Must be at least %s", fe.Param())
	case "max":
		if isLengthKind(fe.Kind()) {
			return fmt.Sprintf("Must be at most %s characters/items long", fe.Param())
		}
		return fmt.Sprintf("Must be at most %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("Must be one of: %s", strings.ReplaceAll(fe.Param(), " ", ", "))
	case "template_name":
		return fmt.Sprintf("Must be one of: %s", strings.Join(models.Templates, ", "))
	case "hostname_label":
		return "Must be 3-63 lowercase letters, digits or hyphens, not starting or ending with a hyphen"
	default:
		return fmt.Sprintf("Invalid value (failed on '%s')", fe.Tag())
	}
}

func isLengthKind(k reflect.Kind) bool {
	return k == reflect.String || k == reflect.Slice || k == reflect.Map
}
