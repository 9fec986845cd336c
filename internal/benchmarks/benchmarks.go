// Package benchmarks describes the third-party C programs exercised by the
// 3C conversion test matrix. The catalog is literal configuration: it is
// constructed once, never mutated, and every derived value is a pure
// function of it so that regenerated output stays byte-identical.
package benchmarks

// Component identifies one independently buildable and convertible unit
// within a benchmark. Zero values defer to the owning benchmark: an empty
// FriendlyName falls back to the benchmark's friendly name and an empty
// Subdirectory means the benchmark's main directory.
type Component struct {
	FriendlyName string
	Subdirectory string
	// BuildDirectory is relative to Subdirectory. Empty means the same
	// directory.
	BuildDirectory string
}

// Info describes one benchmark program under test.
type Info struct {
	Name         string
	FriendlyName string
	// DirName is the directory the benchmark archive extracts to; the
	// archive itself is named DirName.tar.gz.
	DirName string
	// BuildCommands is the opaque shell text that performs the initial
	// (unconverted) build.
	BuildCommands string
	// BuildConvertedCommand rebuilds after conversion. Benchmarks should
	// pass `-k` to make or its analogue so one run surfaces as many
	// errors as possible.
	BuildConvertedCommand string
	// ConvertExtra carries additional arguments for the conversion tool,
	// formatted as shell continuation lines.
	ConvertExtra string
	// Components lists the benchmark's units. Empty means one implicit
	// component with all default properties.
	Components []Component
	// PatchDirectory names a directory of patches applied after
	// extraction, in lexical order.
	PatchDirectory string
	// DisallowForComparativeVariants excludes the benchmark from variants
	// that compare alternative solver solutions.
	DisallowForComparativeVariants bool
}

// IsAllowed reports whether the benchmark participates in a variant with the
// provided comparative marker.
func (information Info) IsAllowed(variantIsComparative bool) bool {
	return !information.DisallowForComparativeVariants || !variantIsComparative
}

// EffectiveComponents returns the declared components or, when none are
// declared, a single implicit component mirroring the benchmark itself. The
// implicit component is synthesized on every call and never stored.
func (information Info) EffectiveComponents() []Component {
	if len(information.Components) > 0 {
		return information.Components
	}
	return []Component{{FriendlyName: information.FriendlyName}}
}
