// Package workflow assembles the benchmark test matrix into GitHub workflow
// files or a standalone local runner script. Generation is a pure,
// sequential pass over the literal configuration tables; every derived name
// and body is deterministic so regenerated output is byte-identical.
package workflow

import "strings"

const (
	subvariantNegatedPrefixConstant        = "no_"
	subvariantExpandMacrosFragmentConstant = "expand_macros_"
	subvariantAllTypesFragmentConstant     = "alltypes"
	allTypesConvertArgumentConstant        = "--extra-3c-arg=-alltypes \\\n"
	expandMacrosConvertArgumentConstant    = "--expand_macros_before_conversion \\\n"
	extraConvertArgumentPrefixConstant     = "--extra-3c-arg="
	convertArgumentContinuationConstant    = " \\\n"
	labelNotExpandedPrefixConstant         = "not "
	labelExpandedFragmentConstant          = "macro-expanded, "
	labelNoAllTypesPrefixConstant          = "no "
	labelAllTypesFragmentConstant          = "-alltypes"
)

// Variant is one axis of the build matrix. Extra flags applied in Cartesian
// product with variants (currently only macro expansion) are intentionally
// not part of the type so workflow configurations stay concise.
type Variant struct {
	AllTypes           bool
	Extra3CArguments   []string
	FriendlyNameSuffix string
	IsComparative      bool
}

// Subvariant is the concrete combination of a Variant with the
// macro-expansion flag: a canonical identifier, the conversion-tool argument
// fragment, and a human-friendly label. Subvariants may be grouped by extra
// flag value before variant, hence the name.
type Subvariant struct {
	Name         string
	ConvertExtra string
	Label        string
	// AllTypes mirrors the variant's flag; downstream step assembly keys
	// the bounds-inference error filter off it.
	AllTypes bool
}

// ResolveSubvariant derives the canonical subvariant for a variant and the
// macro-expansion flag. The identifier is unique for distinct
// (AllTypes, expandMacros, Extra3CArguments) inputs, and the argument
// fragment preserves declaration order because the conversion tool's parser
// is positional-sensitive for some flags.
func ResolveSubvariant(variant Variant, expandMacros bool) Subvariant {
	subvariantName := negatedFragment(expandMacros) + subvariantExpandMacrosFragmentConstant +
		negatedFragment(variant.AllTypes) + subvariantAllTypesFragmentConstant

	convertExtra := ""
	if variant.AllTypes {
		// `--extra-3c-arg -alltypes` would be misread as two options by
		// the conversion tool, so the `=` form is mandatory here.
		convertExtra += allTypesConvertArgumentConstant
	}
	// The -alltypes flag stays ahead of the macro-expansion flag even
	// though the subvariant name orders them the other way; reordering
	// would churn every generated workflow.
	if expandMacros {
		convertExtra += expandMacrosConvertArgumentConstant
	}

	for _, extraArgument := range variant.Extra3CArguments {
		convertExtra += extraConvertArgumentPrefixConstant + extraArgument + convertArgumentContinuationConstant
		subvariantName += "_" + argumentNameFragment(extraArgument)
	}

	label := labelPrefix(expandMacros, labelNotExpandedPrefixConstant) + labelExpandedFragmentConstant +
		labelPrefix(variant.AllTypes, labelNoAllTypesPrefixConstant) + labelAllTypesFragmentConstant +
		variant.FriendlyNameSuffix

	return Subvariant{Name: subvariantName, ConvertExtra: convertExtra, Label: label, AllTypes: variant.AllTypes}
}

// argumentNameFragment maps a conversion-tool argument to its identifier
// fragment: leading dashes stripped, remaining dashes replaced with
// underscores. The mapping must stay stable across runs.
func argumentNameFragment(argument string) string {
	return strings.ReplaceAll(strings.TrimLeft(argument, "-"), "-", "_")
}

func negatedFragment(enabled bool) string {
	if enabled {
		return ""
	}
	return subvariantNegatedPrefixConstant
}

func labelPrefix(enabled bool, negatedPrefix string) string {
	if enabled {
		return ""
	}
	return negatedPrefix
}
