package bggohcl

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// ToNative recursively converts a cty.Value to its most natural Go
// counterpart. Numbers become float64, lists and tuples become []any, and
// maps and objects become map[string]any. Null and unknown values become nil.
func ToNative(v cty.Value) (any, error) {
	if v.IsNull() || !v.IsKnown() {
		return nil, nil
	}

	ty := v.Type()
	switch {
	case ty == cty.String:
		return v.AsString(), nil

	case ty == cty.Number:
		var f float64
		if err := gocty.FromCtyValue(v, &f); err != nil {
			return nil, fmt.Errorf("could not convert number to float64: %w", err)
		}
		return f, nil

	case ty == cty.Bool:
		return v.True(), nil

	case ty.IsListType() || ty.IsTupleType() || ty.IsSetType():
		slice := make([]any, 0, v.LengthInt())
		it := v.ElementIterator()
		for it.Next() {
			_, val := it.Element()
			native, err := ToNative(val)
			if err != nil {
				return nil, err
			}
			slice = append(slice, native)
		}
		return slice, nil

	case ty.IsObjectType() || ty.IsMapType():
		m := make(map[string]any, v.LengthInt())
		it := v.ElementIterator()
		for it.Next() {
			key, val := it.Element()
			native, err := ToNative(val)
			if err != nil {
				return nil, fmt.Errorf("in attribute '%s': %w", key.AsString(), err)
			}
			m[key.AsString()] = native
		}
		return m, nil

	default:
		return nil, fmt.Errorf("unsupported type %s", ty.FriendlyName())
	}
}

// DecodeExpression evaluates expr without variables and decodes the value
// into target after converting it to ty. A null value leaves target
// untouched.
func DecodeExpression(expr hcl.Expression, ty cty.Type, target any) hcl.Diagnostics {
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return diags
	}
	if val.IsNull() {
		return diags
	}
	converted, err := convert.Convert(val, ty)
	if err == nil {
		err = gocty.FromCtyValue(converted, target)
	}
	if err != nil {
		r := expr.Range()
		return append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Incorrect attribute value type",
			Detail:   fmt.Sprintf("Expected %s: %s.", ty.FriendlyName(), err),
			Subject:  &r,
		})
	}
	return diags
}

// DecodeAttribute decodes the named attribute, if present, into target.
func DecodeAttribute(attrs hcl.Attributes, name string, ty cty.Type, target any) hcl.Diagnostics {
	attr, ok := attrs[name]
	if !ok {
		return nil
	}
	return DecodeExpression(attr.Expr, ty, target)
}

// SingleBlock returns the block of the given type, or nil when there is none.
// Every further block of that type is reported against the first one, with
// detail explaining the restriction.
func SingleBlock(blocks hcl.Blocks, blockType, detail string) (*hcl.Block, hcl.Diagnostics) {
	var (
		first *hcl.Block
		diags hcl.Diagnostics
	)
	for _, b := range blocks.OfType(blockType) {
		if first == nil {
			first = b
			continue
		}
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  fmt.Sprintf("Duplicate %q block", blockType),
			Detail:   fmt.Sprintf("%s The first one is defined at %s.", detail, first.DefRange),
			Subject:  b.DefRange.Ptr(),
		})
	}
	return first, diags
}
