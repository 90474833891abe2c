// Package intake turns raw signup payloads into typed, sanitized submissions.
//
// Validation is pure: the same input always yields the same record or the
// same ordered list of errors, and nothing outside the package is touched.
package intake

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"github.com/stylematch/waitlist/internal/core/domain"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type customerInput struct {
	Name   string `json:"name"   validate:"required"`
	Email  string `json:"email"  validate:"required,contact_email"`
	Style  string `json:"style"  validate:"required,style"`
	Budget string `json:"budget" validate:"required,budget"`
}

type merchantInput struct {
	BusinessName string `json:"businessName" validate:"required"`
	ContactName  string `json:"contactName"  validate:"required"`
	Email        string `json:"email"        validate:"required,contact_email"`
	Category     string `json:"category"     validate:"required,category"`
}

// Validator checks submissions against the fixed field rules of each kind.
type Validator struct {
	v       *validator.Validate
	choices map[string]string
}

// New returns a Validator with the submission rules registered.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	must(v.RegisterValidation("contact_email", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return utf8.RuneCountInString(s) <= MaxFieldLength && emailPattern.MatchString(s)
	}))
	must(v.RegisterValidation("style", memberOf(domain.Styles)))
	must(v.RegisterValidation("budget", memberOf(domain.Budgets)))
	must(v.RegisterValidation("category", memberOf(domain.Categories)))

	return &Validator{
		v: v,
		choices: map[string]string{
			"style":    joinChoices(domain.Styles),
			"budget":   joinChoices(domain.Budgets),
			"category": joinChoices(domain.Categories),
		},
	}
}

// Validate reads the kind from input["type"] and returns either a sanitized
// submission with no ID or timestamp yet, or the list of broken rules.
// Fields not defined for the kind are ignored.
func (val *Validator) Validate(input map[string]any) (domain.Submission, []string) {
	kind, ok := domain.ParseKind(stringField(input, "type"))
	if !ok {
		return nil, []string{"type must be one of: " + joinChoices(domain.Kinds)}
	}

	switch kind {
	case domain.KindMerchant:
		in := merchantInput{
			BusinessName: Sanitize(stringField(input, "businessName")),
			ContactName:  Sanitize(stringField(input, "contactName")),
			Email:        NormalizeEmail(stringField(input, "email")),
			Category:     Sanitize(stringField(input, "category")),
		}
		if errs := val.check(in); len(errs) > 0 {
			return nil, errs
		}
		return &domain.Merchant{
			BusinessName: in.BusinessName,
			ContactName:  in.ContactName,
			Email:        in.Email,
			Category:     domain.Category(in.Category),
		}, nil
	default:
		in := customerInput{
			Name:   Sanitize(stringField(input, "name")),
			Email:  NormalizeEmail(stringField(input, "email")),
			Style:  Sanitize(stringField(input, "style")),
			Budget: Sanitize(stringField(input, "budget")),
		}
		if errs := val.check(in); len(errs) > 0 {
			return nil, errs
		}
		return &domain.Customer{
			Name:   in.Name,
			Email:  in.Email,
			Style:  domain.Style(in.Style),
			Budget: domain.Budget(in.Budget),
		}, nil
	}
}

func (val *Validator) check(in any) []string {
	err := val.v.Struct(in)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return []string{err.Error()}
	}
	msgs := make([]string, 0, len(ve))
	for _, fe := range ve {
		msgs = append(msgs, val.fieldError(fe))
	}
	return msgs
}

// fieldError converts a single FieldError into a human-readable message.
func (val *Validator) fieldError(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "contact_email":
		return field + " must be a valid email address"
	case "style", "budget", "category":
		return fmt.Sprintf("%s must be one of: %s", field, val.choices[fe.Tag()])
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}

func memberOf[T ~string](set []T) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return slices.Contains(set, T(fl.Field().String()))
	}
}

func joinChoices[T ~string](set []T) string {
	parts := make([]string, len(set))
	for i, s := range set {
		parts[i] = string(s)
	}
	return strings.Join(parts, ", ")
}

func must(err error) {
	if err != nil {
		panic(fmt.Sprintf("intake: register validation: %v", err))
	}
}
