package config

import (
	"math/big"

	"github.com/cockroachdb/errors"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/gocty"
)

// newEvalContext returns the expression context available to config files.
func newEvalContext() *hcl.EvalContext {
	return &hcl.EvalContext{
		Functions: map[string]function.Function{
			"env": envFunc,
		},
	}
}

// decodeFile parses a single HCL file into a nested map. Attributes become keys,
// blocks become nested maps keyed by type and then by each label.
func decodeFile(parser *hclparse.Parser, path string) (map[string]any, error) {
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, errors.Wrapf(diags, "failed to parse %s", path)
	}

	body, ok := file.Body.(*hclsyntax.Body)
	if !ok {
		return nil, errors.Newf("%s: unsupported HCL body type %T", path, file.Body)
	}

	values, diags := decodeBody(body, newEvalContext())
	if diags.HasErrors() {
		return nil, errors.Wrapf(diags, "failed to evaluate %s", path)
	}
	return values, nil
}

func decodeBody(body *hclsyntax.Body, evalCtx *hcl.EvalContext) (map[string]any, hcl.Diagnostics) {
	out := make(map[string]any, len(body.Attributes)+len(body.Blocks))
	var diags hcl.Diagnostics

	for name, attr := range body.Attributes {
		val, valDiags := attr.Expr.Value(evalCtx)
		diags = append(diags, valDiags...)
		if valDiags.HasErrors() {
			continue
		}
		native, err := ctyToNative(val)
		if err != nil {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Unsupported configuration value",
				Detail:   err.Error(),
				Subject:  &attr.SrcRange,
			})
			continue
		}
		out[name] = native
	}

	for _, block := range body.Blocks {
		inner, blockDiags := decodeBody(block.Body, evalCtx)
		diags = append(diags, blockDiags...)

		path := append([]string{block.Type}, block.Labels...)
		target := out
		for _, key := range path[:len(path)-1] {
			child, ok := target[key].(map[string]any)
			if !ok {
				child = make(map[string]any)
				target[key] = child
			}
			target = child
		}

		last := path[len(path)-1]
		if existing, ok := target[last].(map[string]any); ok {
			mergeInto(existing, inner)
		} else {
			target[last] = inner
		}
	}

	return out, diags
}

// mergeInto deep-merges src into dst; src wins on scalar conflicts.
func mergeInto(dst, src map[string]any) {
	for k, v := range src {
		if srcMap, ok := v.(map[string]any); ok {
			if dstMap, ok := dst[k].(map[string]any); ok {
				mergeInto(dstMap, srcMap)
				continue
			}
		}
		dst[k] = v
	}
}

// ctyToNative recursively converts a cty.Value to its most natural Go
// counterpart. Whole numbers become int, other numbers float64.
func ctyToNative(v cty.Value) (any, error) {
	if v.IsNull() || !v.IsKnown() {
		return nil, nil
	}

	ty := v.Type()

	switch {
	case ty == cty.String:
		return v.AsString(), nil

	case ty == cty.Number:
		bf := v.AsBigFloat()
		if bf.IsInt() {
			if i, acc := bf.Int64(); acc == big.Exact {
				return int(i), nil
			}
		}
		f, _ := bf.Float64()
		return f, nil

	case ty == cty.Bool:
		var b bool
		if err := gocty.FromCtyValue(v, &b); err != nil {
			return nil, errors.Wrap(err, "convert bool")
		}
		return b, nil

	case ty.IsListType() || ty.IsTupleType() || ty.IsSetType():
		slice := make([]any, 0, v.LengthInt())
		it := v.ElementIterator()
		for it.Next() {
			_, val := it.Element()
			nativeVal, err := ctyToNative(val)
			if err != nil {
				return nil, err
			}
			slice = append(slice, nativeVal)
		}
		return slice, nil

	case ty.IsObjectType() || ty.IsMapType():
		goMap := make(map[string]any)
		it := v.ElementIterator()
		for it.Next() {
			key, val := it.Element()
			keyStr := key.AsString()
			nativeVal, err := ctyToNative(val)
			if err != nil {
				return nil, errors.Wrapf(err, "in attribute '%s'", keyStr)
			}
			goMap[keyStr] = nativeVal
		}
		return goMap, nil

	default:
		return nil, errors.Newf("unsupported value type %s", ty.FriendlyName())
	}
}
