package importer

import (
	"testing"

	"github.com/arthur-debert/viur/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTranslation(t *testing.T) {
	tr, err := ParseTranslation("country:Deutschland:de")
	require.NoError(t, err)
	assert.Equal(t, Translation{Column: "country", Value: "Deutschland", Replacement: "de"}, tr)

	tr, err = ParseTranslation("url:x:http://a:b")
	require.NoError(t, err)
	assert.Equal(t, "http://a:b", tr.Replacement)

	_, err = ParseTranslation("country:de")
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestTranslation_Apply(t *testing.T) {
	row := map[string]string{"country": "Deutschland", "city": "Deutschland"}
	Translation{Column: "country", Value: "Deutschland", Replacement: "de"}.Apply(row)
	Translation{Column: "city", Value: "Berlin", Replacement: "B"}.Apply(row)
	Translation{Column: "missing", Value: "", Replacement: "x"}.Apply(row)

	assert.Equal(t, map[string]string{"country": "de", "city": "Deutschland"}, row)
}

func TestRule_Eval(t *testing.T) {
	row := map[string]string{
		"lastname":  "",
		"company":   "ACME",
		"vip":       "0",
		"country":   " DE ",
		"full name": "Ann Lee",
		"age":       "42",
	}

	tests := []struct {
		name string
		rule string
		want string
	}{
		{"conditional", `lastname = lastname == "" ? company : lastname`, "ACME"},
		{"toggle", `vip = vip == "0" ? "1" : "0"`, "1"},
		{"functions", `country = lower(trimspace(country))`, "de"},
		{"row_object", `last = element(split(" ", row["full name"]), 1)`, "Lee"},
		{"number_result", `age = age + 1`, "43"},
		{"format", `label = format("%s (%s)", company, vip)`, "ACME (0)"},
		{"null_is_empty", `x = null`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule, err := ParseRule(tt.rule)
			require.NoError(t, err)
			got, err := rule.Eval(row)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRule_Errors(t *testing.T) {
	t.Run("missing_equals", func(t *testing.T) {
		_, err := ParseRule("lower(x)")
		assert.True(t, errors.IsErrorCode(err, errors.ErrRuleInvalid))
	})

	t.Run("syntax_error", func(t *testing.T) {
		_, err := ParseRule("x = lower(")
		assert.True(t, errors.IsErrorCode(err, errors.ErrRuleInvalid))
	})

	t.Run("unknown_column", func(t *testing.T) {
		rule, err := ParseRule("x = lower(nope)")
		require.NoError(t, err)
		err = rule.Check([]string{"x", "y"})
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrRuleInvalid))
		assert.Equal(t, "x", errors.GetErrorDetails(err)["column"])
	})

	t.Run("row_is_always_known", func(t *testing.T) {
		rule, err := ParseRule(`x = row["a b"]`)
		require.NoError(t, err)
		assert.NoError(t, rule.Check([]string{"a b"}))
	})

	t.Run("non_string_result", func(t *testing.T) {
		rule, err := ParseRule(`x = split(",", "a,b")`)
		require.NoError(t, err)
		_, err = rule.Eval(map[string]string{})
		assert.True(t, errors.IsErrorCode(err, errors.ErrRuleInvalid))
	})
}
