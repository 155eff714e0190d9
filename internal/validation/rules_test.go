package validation

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRun_StopsAtFirstFailingRuleOfField(t *testing.T) {
	calls := 0
	counting := Rule{Kind: KindFormat, Message: "second", Check: func(string) bool {
		calls++
		return false
	}}

	v := "x"
	errs := Run(Field{
		Name:  "f",
		Value: &v,
		Rules: []Rule{Length(2, 0, "first"), counting},
	})

	assert.Equal(t, Errors{{Field: "f", Message: "first", Kind: KindLength}}, errs)
	assert.Zero(t, calls)
}

func TestRun_SkipsAbsentFields(t *testing.T) {
	errs := Run(Field{Name: "f", Value: nil, Rules: []Rule{Required("required")}})
	assert.Empty(t, errs)
}

func TestRun_NormalizesOnlyPassingFields(t *testing.T) {
	good, bad := "  Good ", "  b "
	errs := Run(
		Field{Name: "good", Value: &good, Prepare: strings.TrimSpace, Normalize: strings.ToLower},
		Field{Name: "bad", Value: &bad, Prepare: strings.TrimSpace, Rules: []Rule{Length(2, 0, "short")}},
	)

	assert.Len(t, errs, 1)
	assert.Equal(t, "good", good)
	assert.Equal(t, "  b ", bad)
}

func TestRules(t *testing.T) {
	assert.True(t, Length(2, 3, "").Check("ab"))
	assert.True(t, Length(2, 3, "").Check("äöü"))
	assert.False(t, Length(2, 3, "").Check("abcd"))
	assert.False(t, Length(2, 3, "").Check("a"))
	assert.True(t, Length(1, 0, "").Check(strings.Repeat("a", 1000)))

	assert.True(t, Matches(regexp.MustCompile(`^\d+$`), "").Check("123"))
	assert.False(t, Matches(regexp.MustCompile(`^\d+$`), "").Check("12a"))

	assert.False(t, Required("").Check(""))
	assert.True(t, Required("").Check(" "))

	assert.True(t, Email("").Check("user@example.com"))
	assert.False(t, Email("").Check("user@"))
	assert.False(t, Email("").Check(""))
}

func TestErrors_Error(t *testing.T) {
	errs := Errors{
		{Field: "a", Message: "bad a"},
		{Field: "b", Message: "bad b"},
	}
	assert.Equal(t, "validation failed: a: bad a; b: bad b", errs.Error())
}
