// Package validation checks and normalizes incoming account payloads.
//
// Each field owns an ordered list of rules. Run evaluates every field,
// stops at the first failing rule within a field and collects one error per
// failing field. A field is written back normalized only when all of its rules
// pass.
package validation

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// Kind classifies a validation failure.
type Kind string

const (
	KindLength   Kind = "LENGTH"
	KindFormat   Kind = "FORMAT"
	KindRequired Kind = "REQUIRED"
)

// FieldError describes a failed rule for a single field.
type FieldError struct {
	Field   string
	Message string
	Kind    Kind
}

// Errors is the ordered list of field failures of one payload.
type Errors []FieldError

func (e Errors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, fe := range e {
		msgs = append(msgs, fe.Field+": "+fe.Message)
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// Rule is a pure predicate over a prepared field value.
type Rule struct {
	Kind    Kind
	Message string
	Check   func(string) bool
}

// Field binds a payload value to its rules.
// A nil Value means the field was not supplied and is skipped.
type Field struct {
	Name      string
	Value     *string
	Prepare   func(string) string
	Rules     []Rule
	Normalize func(string) string
}

// Run evaluates all fields in order and returns the collected failures.
func Run(fields ...Field) Errors {
	var errs Errors
	for _, f := range fields {
		if f.Value == nil {
			continue
		}

		v := *f.Value
		if f.Prepare != nil {
			v = f.Prepare(v)
		}

		if fe, ok := f.check(v); !ok {
			errs = append(errs, fe)
			continue
		}

		if f.Normalize != nil {
			v = f.Normalize(v)
		}
		*f.Value = v
	}
	return errs
}

func (f Field) check(v string) (FieldError, bool) {
	for _, r := range f.Rules {
		if !r.Check(v) {
			return FieldError{Field: f.Name, Message: r.Message, Kind: r.Kind}, false
		}
	}
	return FieldError{}, true
}

// Length requires the rune count of the value to lie in [lo, hi].
// A hi of zero means unbounded.
func Length(lo, hi int, msg string) Rule {
	return Rule{
		Kind:    KindLength,
		Message: msg,
		Check: func(s string) bool {
			n := utf8.RuneCountInString(s)
			return n >= lo && (hi == 0 || n <= hi)
		},
	}
}

// Matches requires the value to match re.
func Matches(re *regexp.Regexp, msg string) Rule {
	return Rule{Kind: KindFormat, Message: msg, Check: re.MatchString}
}

// Required rejects empty values.
func Required(msg string) Rule {
	return Rule{
		Kind:    KindRequired,
		Message: msg,
		Check:   func(s string) bool { return s != "" },
	}
}

var validate = validator.New()

// Email requires a syntactically valid email address.
func Email(msg string) Rule {
	return Rule{
		Kind:    KindFormat,
		Message: msg,
		Check: func(s string) bool {
			return validate.Var(s, "required,email") == nil
		},
	}
}
