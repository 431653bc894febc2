package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/ukaji3/surveyplot-go/pkg/surveyplot/models"
)

// NamePlaceholder is replaced by the split category in output paths.
const NamePlaceholder = "{name}"

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// report problems under their YAML keys
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// FieldError is one problem found in a report definition.
type FieldError struct {
	Report  string
	Field   string
	Message string
}

func (e FieldError) String() string {
	if e.Report == "" && e.Field == "" {
		return e.Message
	}
	if e.Field == "" {
		return fmt.Sprintf("report %q: %s", e.Report, e.Message)
	}
	return fmt.Sprintf("report %q: %s %s", e.Report, e.Field, e.Message)
}

// ValidationError lists every problem found in a set of reports.
type ValidationError struct {
	Problems []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Problems))
	for i, p := range e.Problems {
		parts[i] = p.String()
	}
	return "invalid configuration: " + strings.Join(parts, "; ")
}

// Validate checks struct constraints and cross-report rules: names and output
// paths are unique, and split reports carry the {name} placeholder.
func Validate(reports []models.Report) error {
	if len(reports) == 0 {
		return &ValidationError{Problems: []FieldError{{Message: "no reports defined"}}}
	}

	var problems []FieldError
	names := make(map[string]bool)
	outputs := make(map[string]string)
	for _, r := range reports {
		if err := validate.Struct(r); err != nil {
			var verrs validator.ValidationErrors
			if !errors.As(err, &verrs) {
				return err
			}
			for _, fe := range verrs {
				problems = append(problems, FieldError{Report: r.Name, Field: fieldPath(fe), Message: message(fe)})
			}
		}

		if r.Name != "" {
			if names[r.Name] {
				problems = append(problems, FieldError{Report: r.Name, Message: "duplicate report name"})
			}
			names[r.Name] = true
		}
		if r.Output != "" {
			if other, ok := outputs[r.Output]; ok {
				problems = append(problems, FieldError{Report: r.Name, Field: "output", Message: fmt.Sprintf("is also written by report %q", other)})
			}
			outputs[r.Output] = r.Name
		}
		if r.Split != models.FieldNone && !strings.Contains(r.Output, NamePlaceholder) {
			problems = append(problems, FieldError{Report: r.Name, Field: "output", Message: "must contain " + NamePlaceholder + " when split is set"})
		}
	}

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}

// fieldPath drops the struct name from the validator namespace.
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "required_without":
		return "is required unless derive is set"
	case "oneof":
		return "must be one of: " + fe.Param()
	case "hexcolor":
		return "must be a hex colour such as #1f77b4"
	case "gt":
		return "must be greater than " + fe.Param()
	case "gte":
		return "must be at least " + fe.Param()
	case "lte":
		return "must be at most " + fe.Param()
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
