package benchmarks_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mwhicks1/3c-actions/internal/benchmarks"
)

const (
	catalogOldenNameConstant     = "Olden"
	catalogPtrdistNameConstant   = "ptrdist"
	catalogVsftpdNameConstant    = "vsftpd"
	catalogOldenComponentCount   = 10
	catalogPtrdistComponentCount = 5
)

func TestCatalogNamesAreUnique(testInstance *testing.T) {
	seenNames := map[string]struct{}{}
	for _, benchmark := range benchmarks.Catalog() {
		_, alreadySeen := seenNames[benchmark.Name]
		require.False(testInstance, alreadySeen, benchmark.Name)
		seenNames[benchmark.Name] = struct{}{}
	}
}

func TestCatalogEntriesAreComplete(testInstance *testing.T) {
	for _, benchmark := range benchmarks.Catalog() {
		require.NotEmpty(testInstance, benchmark.Name)
		require.NotEmpty(testInstance, benchmark.FriendlyName, benchmark.Name)
		require.NotEmpty(testInstance, benchmark.DirName, benchmark.Name)
		require.NotEmpty(testInstance, benchmark.BuildCommands, benchmark.Name)
		require.NotEmpty(testInstance, benchmark.BuildConvertedCommand, benchmark.Name)
		if benchmark.ConvertExtra != "" {
			// Continuation lines feed into a longer flag list.
			require.True(testInstance, strings.HasSuffix(strings.TrimRight(benchmark.ConvertExtra, "\n"), `\`), benchmark.Name)
		}
	}
}

func TestCatalogMultiComponentBenchmarks(testInstance *testing.T) {
	olden, oldenFound := benchmarks.Lookup(catalogOldenNameConstant)
	require.True(testInstance, oldenFound)
	require.Len(testInstance, olden.EffectiveComponents(), catalogOldenComponentCount)

	ptrdist, ptrdistFound := benchmarks.Lookup(catalogPtrdistNameConstant)
	require.True(testInstance, ptrdistFound)
	require.Len(testInstance, ptrdist.EffectiveComponents(), catalogPtrdistComponentCount)

	for _, component := range ptrdist.EffectiveComponents() {
		require.NotEmpty(testInstance, component.FriendlyName)
		require.NotEmpty(testInstance, component.Subdirectory)
	}
}

func TestLookupUnknownName(testInstance *testing.T) {
	_, found := benchmarks.Lookup("nonexistent")
	require.False(testInstance, found)
}

func TestEffectiveComponentsImplicitDefault(testInstance *testing.T) {
	vsftpd, vsftpdFound := benchmarks.Lookup(catalogVsftpdNameConstant)
	require.True(testInstance, vsftpdFound)

	components := vsftpd.EffectiveComponents()
	require.Len(testInstance, components, 1)
	require.Equal(testInstance, vsftpd.FriendlyName, components[0].FriendlyName)
	require.Empty(testInstance, components[0].Subdirectory)
}

func TestIsAllowed(testInstance *testing.T) {
	unrestricted := benchmarks.Info{Name: "unrestricted"}
	require.True(testInstance, unrestricted.IsAllowed(false))
	require.True(testInstance, unrestricted.IsAllowed(true))

	restricted := benchmarks.Info{Name: "restricted", DisallowForComparativeVariants: true}
	require.True(testInstance, restricted.IsAllowed(false))
	require.False(testInstance, restricted.IsAllowed(true))
}
