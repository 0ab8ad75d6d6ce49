package hcl_adapter

import (
	"context"

	"github.com/hashicorp/hcl/v2"
	"github.com/vk/jade/internal/config"
	"github.com/vk/jade/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
	"github.com/zclconf/go-cty/cty/gocty"
)

// evalContext exposes the run's variables and a handful of string functions
// to build file expressions, e.g. `output = "dist/${env}/client"`.
func evalContext(vars config.Vars) *hcl.EvalContext {
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"env": cty.StringVal(vars.Env),
			"resource": cty.ObjectVal(map[string]cty.Value{
				"name": cty.StringVal(vars.ResourceName),
				"path": cty.StringVal(vars.ResourcePath),
			}),
		},
		Functions: map[string]function.Function{
			"upper":  stdlib.UpperFunc,
			"lower":  stdlib.LowerFunc,
			"format": stdlib.FormatFunc,
			"join":   stdlib.JoinFunc,
			"concat": stdlib.ConcatFunc,
		},
	}
}

// isExprDefined checks if an HCL expression was actually present in the source
// code. The decoder fills omitted optional expression fields with zero-width
// placeholder expressions, so a nil check is not enough.
func isExprDefined(ctx context.Context, expr hcl.Expression, attrName string) bool {
	logger := ctxlog.FromContext(ctx)

	if expr == nil {
		return false
	}

	// A real attribute occupies bytes in the file. A placeholder has a
	// zero-width range.
	exprRange := expr.Range()
	isDefined := exprRange.End.Byte > exprRange.Start.Byte

	logger.Debug("Checking if HCL attribute was explicitly defined.",
		"attribute", attrName,
		"hcl_range", exprRange.String(),
		"is_defined", isDefined,
	)
	return isDefined
}

// optionalBool evaluates an optional boolean attribute. It returns nil when
// the attribute is absent or null.
func optionalBool(ctx context.Context, expr hcl.Expression, attrName string, evalCtx *hcl.EvalContext) (*bool, hcl.Diagnostics) {
	if !isExprDefined(ctx, expr, attrName) {
		return nil, nil
	}

	val, diags := expr.Value(evalCtx)
	if diags.HasErrors() {
		return nil, diags
	}
	if val.IsNull() {
		return nil, nil
	}

	val, err := convert.Convert(val, cty.Bool)
	if err != nil {
		return nil, hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Incorrect attribute value type",
			Detail:   "Inappropriate value for attribute \"" + attrName + "\": " + err.Error() + ".",
			Subject:  expr.Range().Ptr(),
		}}
	}

	var b bool
	if err := gocty.FromCtyValue(val, &b); err != nil {
		return nil, hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Incorrect attribute value type",
			Detail:   err.Error(),
			Subject:  expr.Range().Ptr(),
		}}
	}
	return &b, nil
}
