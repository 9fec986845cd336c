package workflow

import (
	"strconv"

	"github.com/mwhicks1/3c-actions/internal/benchmarks"
)

// SubvariantNames returns the subvariant identifiers a configuration
// iterates, in emission order (macro-expansion flag outermost, matching job
// generation).
func SubvariantNames(configuration Configuration) []string {
	names := make([]string, 0, 2*len(configuration.Variants))
	for _, expandMacros := range []bool{false, true} {
		for _, variant := range configuration.Variants {
			names = append(names, ResolveSubvariant(variant, expandMacros).Name)
		}
	}
	return names
}

// BenchmarkRows returns one display row per benchmark: internal name,
// friendly name, archive directory, and component count.
func BenchmarkRows() [][]string {
	rows := make([][]string, 0, len(benchmarks.Catalog()))
	for _, benchmark := range benchmarks.Catalog() {
		rows = append(rows, []string{
			benchmark.Name,
			benchmark.FriendlyName,
			benchmark.DirName,
			strconv.Itoa(len(benchmark.EffectiveComponents())),
		})
	}
	return rows
}

// SubvariantRows returns one display row per (configuration, subvariant)
// pair: configuration name, subvariant identifier, and human label.
func SubvariantRows() [][]string {
	rows := [][]string{}
	for _, configuration := range Configurations() {
		for _, expandMacros := range []bool{false, true} {
			for _, variant := range configuration.Variants {
				subvariant := ResolveSubvariant(variant, expandMacros)
				rows = append(rows, []string{configuration.FileName, subvariant.Name, subvariant.Label})
			}
		}
	}
	return rows
}
