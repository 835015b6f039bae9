package importer

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/viur/pkg/errors"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
)

// rowVariable exposes the whole row to rule expressions
const rowVariable = "row"

// functions available to rule expressions
var functions = map[string]function.Function{
	"lower":         stdlib.LowerFunc,
	"upper":         stdlib.UpperFunc,
	"title":         stdlib.TitleFunc,
	"trimspace":     stdlib.TrimSpaceFunc,
	"trim":          stdlib.TrimFunc,
	"trimprefix":    stdlib.TrimPrefixFunc,
	"trimsuffix":    stdlib.TrimSuffixFunc,
	"split":         stdlib.SplitFunc,
	"join":          stdlib.JoinFunc,
	"replace":       stdlib.ReplaceFunc,
	"regex_replace": stdlib.RegexReplaceFunc,
	"element":       stdlib.ElementFunc,
	"length":        stdlib.LengthFunc,
	"strlen":        stdlib.StrlenFunc,
	"substr":        stdlib.SubstrFunc,
	"format":        stdlib.FormatFunc,
	"coalesce":      stdlib.CoalesceFunc,
}

// Translation replaces a cell of Column holding exactly Value
type Translation struct {
	Column      string
	Value       string
	Replacement string
}

// ParseTranslation parses "column:value:replacement"
func ParseTranslation(s string) (Translation, error) {
	parts := strings.SplitN(s, ":", 3)
	if len(parts) != 3 || parts[0] == "" {
		return Translation{}, errors.Newf(errors.ErrInvalidInput, "translation %q is not column:value:replacement", s)
	}
	return Translation{Column: parts[0], Value: parts[1], Replacement: parts[2]}, nil
}

// Apply translates row in place
func (t Translation) Apply(row map[string]string) {
	if v, ok := row[t.Column]; ok && v == t.Value {
		row[t.Column] = t.Replacement
	}
}

// Rule recomputes Column from an expression
type Rule struct {
	Column string
	Source string
	expr   hclsyntax.Expression
}

// ParseRule parses "column=expression"
func ParseRule(s string) (Rule, error) {
	column, source, ok := strings.Cut(s, "=")
	if !ok {
		return Rule{}, errors.Newf(errors.ErrRuleInvalid, "rule %q is not column=expression", s)
	}
	return CompileRule(strings.TrimSpace(column), strings.TrimSpace(source))
}

// CompileRule compiles source as the rule for column
func CompileRule(column, source string) (Rule, error) {
	if column == "" {
		return Rule{}, errors.New(errors.ErrRuleInvalid, "rule has no column")
	}
	expr, diags := hclsyntax.ParseExpression([]byte(source), "rule:"+column, hcl.Pos{Line: 1, Column: 1})
	if diags.HasErrors() {
		return Rule{}, errors.Wrap(diags, errors.ErrRuleInvalid, "cannot parse rule").
			WithDetail("column", column).
			WithDetail("rule", source)
	}
	return Rule{Column: column, Source: source, expr: expr}, nil
}

// Check reports references to columns missing from header
func (r Rule) Check(header []string) error {
	known := make(map[string]bool, len(header)+1)
	for _, h := range header {
		known[h] = true
	}
	known[rowVariable] = true

	for _, traversal := range r.expr.Variables() {
		if name := traversal.RootName(); !known[name] {
			return errors.Newf(errors.ErrRuleInvalid, "rule refers to unknown column %q", name).
				WithDetail("column", r.Column).
				WithDetail("rule", r.Source)
		}
	}
	return nil
}

// Eval evaluates the rule against row
func (r Rule) Eval(row map[string]string) (string, error) {
	val, diags := r.expr.Value(evalContext(row))
	if diags.HasErrors() {
		return "", errors.Wrap(diags, errors.ErrRuleInvalid, "cannot evaluate rule").
			WithDetail("column", r.Column).
			WithDetail("rule", r.Source)
	}
	if val.IsNull() {
		return "", nil
	}

	str, err := convert.Convert(val, cty.String)
	if err != nil || !str.IsKnown() {
		return "", errors.Newf(errors.ErrRuleInvalid, "rule result of type %s is not a string", val.Type().FriendlyName()).
			WithDetail("column", r.Column).
			WithDetail("rule", r.Source)
	}
	return str.AsString(), nil
}

func (r Rule) String() string {
	return fmt.Sprintf("%s = %s", r.Column, r.Source)
}

func evalContext(row map[string]string) *hcl.EvalContext {
	vars := make(map[string]cty.Value, len(row)+1)
	all := make(map[string]cty.Value, len(row))
	for k, v := range row {
		val := cty.StringVal(v)
		all[k] = val
		if hclsyntax.ValidIdentifier(k) && k != rowVariable {
			vars[k] = val
		}
	}
	vars[rowVariable] = cty.ObjectVal(all)
	return &hcl.EvalContext{Variables: vars, Functions: functions}
}
