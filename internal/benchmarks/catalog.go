package benchmarks

import (
	"fmt"
	"strings"
)

// Standard options for ninja and parallel make.
//
// `-j` and `--output-sync` make `make` behave more like `ninja`. For both
// tools `-l` is a crude attempt to avoid bogging down the machine when other
// jobs run concurrently: multiple ninja instances each trying to run
// $(nproc) parallel jobs can make a machine unresponsive, and `nice` alone
// is insufficient because it only controls CPU priority.
const (
	ninjaStandardCommandConstant = "ninja -l $(nproc)"
	makeStandardCommandConstant  = "make -j $(nproc) -l $(nproc) --output-sync"
)

// NinjaStandardCommand is the shared ninja invocation; the workflow
// preamble splices it into the conversion-tool build and test jobs.
const NinjaStandardCommand = ninjaStandardCommandConstant

// Standard option to use the Checked C compiler for either a CMake project
// or a make project that uses the traditional CC variable.
const (
	makeCheckedCCommandConstant  = makeStandardCommandConstant + ` CC="${{env.builddir}}/bin/clang"`
	cmakeCheckedCCommandConstant = `cmake -DCMAKE_C_COMPILER=${{env.builddir}}/bin/clang`
)

// `-w`: turn off all compiler warnings; the benchmarks have many and they
// distract from the errors that need fixing. `-ferror-limit=0`: Clang stops
// after 20 errors per translation unit by default, which introduces an
// arbitrary distortion in the conversion statistics.
const commonCFlagsConstant = "-w -ferror-limit=0"

// StatsFileNames lists the statistics files the conversion tool leaves in
// the component directory. Their presence is not validated by the
// generator; a generated step that cannot find them simply fails.
var StatsFileNames = []string{
	"PerWildPtrStats.json", "TotalConstraintStats.json.aggregate.json",
	"TotalConstraintStats.json", "WildPtrStats.json",
}

// vsftpd triggers a -Wenum-conversion warning that becomes an error with
// -Werror (see https://bugs.freebsd.org/bugzilla/show_bug.cgi?id=170101).
// The vsftpd makefile offers no way to add one flag to its CFLAGS list, so
// the flag is stuffed into CC instead. -Wno-enum-conversion is redundant
// with -w but kept in case -w is ever turned off.
const vsftpdMakeCommandConstant = makeStandardCommandConstant +
	` CC="${{env.builddir}}/bin/clang ` + commonCFlagsConstant + ` -Wno-enum-conversion"`

// thttpd cannot be built in parallel: the main and cgi-src Makefiles may
// both build match.o, producing a duplicate compilation database entry that
// breaks the macro expander. thttpd's configure also discards CFLAGS, so
// flags ride along in CC.
const thttpdMakeCommandConstant = `make CC="${{env.builddir}}/bin/clang ` + commonCFlagsConstant + `"`

var (
	ptrdistComponentNames = []string{"anagram", "bc", "ft", "ks", "yacr2"}

	oldenComponentNames = []string{
		"bh", "bisort", "em3d", "health", "mst", "perimeter", "power", "treeadd",
		"tsp", "voronoi",
	}
)

func namedSubdirectoryComponents(componentNames []string) []Component {
	components := make([]Component, 0, len(componentNames))
	for _, componentName := range componentNames {
		components = append(components, Component{FriendlyName: componentName, Subdirectory: componentName})
	}
	return components
}

var catalog = []Info{

	// Vsftpd
	{
		Name:                  "vsftpd",
		FriendlyName:          "Vsftpd",
		DirName:               "vsftpd-3.0.3",
		BuildCommands:         "bear " + vsftpdMakeCommandConstant,
		BuildConvertedCommand: vsftpdMakeCommandConstant + " -k",
	},

	// Parson
	{
		Name:                  "Parson",
		FriendlyName:          "Parson",
		DirName:               "parson",
		BuildCommands:         "bear " + makeCheckedCCommandConstant,
		BuildConvertedCommand: makeCheckedCCommandConstant + " -k",
	},

	// Olden
	{
		Name:         "Olden",
		FriendlyName: "Olden",
		DirName:      "Olden",
		ConvertExtra: `--extra-3c-arg=-allow-unwritable-changes \`,
		BuildCommands: fmt.Sprintf(
			"for i in %s ; do \\\n"+
				"  (cd $i ; bear %s LOCAL_CFLAGS=\"%s -D_ISOC99_SOURCE\") \\\n"+
				"done\n",
			strings.Join(oldenComponentNames, " "), makeCheckedCCommandConstant, commonCFlagsConstant),
		BuildConvertedCommand: makeCheckedCCommandConstant +
			` -k LOCAL_CFLAGS="` + commonCFlagsConstant + ` -D_ISOC99_SOURCE"`,
		Components: namedSubdirectoryComponents(oldenComponentNames),
	},

	// PtrDist
	{
		Name:         "ptrdist",
		FriendlyName: "PtrDist",
		DirName:      "ptrdist-1.1",
		// yacr2: for certain headers foo.h, foo.c defines a macro
		// FOO_CODE that activates an #if branch in foo.h defining global
		// variables instead of declaring them. The fixup below simulates
		// the normal declare-in-header, define-in-source practice by
		// copying the FOO_CODE-conditional parts into foo_code.h. It also
		// fixes a type conflict between the costMatrix declaration and
		// definition, exposed when both land in one translation unit.
		//
		// bc: global.h produces a definition when included by global.c
		// and a declaration with the same source location everywhere
		// else, which confuses the conversion tool's rewriter. Inlining
		// the include into global.c gives the definitions distinct
		// locations.
		BuildCommands: fmt.Sprintf(
			"( cd yacr2\n"+
				"  sed -Ei 's/^long (.*costMatrix)/ulong \\1/' assign.h\n"+
				"  for header in *.h  ; do\n"+
				"    src=\"$(basename \"$header\" .h).c\"\n"+
				"    new_header=\"$(basename \"$header\" .h)_code.h\"\n"+
				"    test -e \"$src\" || continue\n"+
				"    sed -ne '/^#ifdef.*CODE/,/#else.*CODE/{ /^#/!p; }' \"$header\" >\"$new_header\"\n"+
				"    sed -i \"/#define.*_CODE/d; /#include \\\"$header\\\"/a#include \\\"$new_header\\\"\" \"$src\"\n"+
				"  done )\n"+
				"( cd bc\n"+
				"  sed -i '/^#include \"global.h\"$/d' global.c\n"+
				"  cat global.h >>global.c )\n"+
				"for i in %s ; do \\\n"+
				"  (cd $i ; bear %s LOCAL_CFLAGS=\"%s -D_ISOC99_SOURCE\") \\\n"+
				"done\n",
			strings.Join(ptrdistComponentNames, " "), makeCheckedCCommandConstant, commonCFlagsConstant),
		BuildConvertedCommand: makeCheckedCCommandConstant +
			` -k LOCAL_CFLAGS="` + commonCFlagsConstant + ` -D_ISOC99_SOURCE"`,
		Components: namedSubdirectoryComponents(ptrdistComponentNames),
	},

	// LibArchive
	{
		Name:         "libarchive",
		FriendlyName: "LibArchive",
		DirName:      "libarchive-3.4.3",
		BuildCommands: "cd build\n" +
			cmakeCheckedCCommandConstant + ` -G Ninja -DCMAKE_C_FLAGS="` + commonCFlagsConstant + ` -D_GNU_SOURCE" ..` + "\n" +
			"bear " + ninjaStandardCommandConstant + " archive\n",
		BuildConvertedCommand: ninjaStandardCommandConstant + " -k 0 archive",
		ConvertExtra:          `--skip '/.*/(test|test_utils|tar|cat|cpio|examples|contrib|libarchive_fe)/.*' \` + "\n",
		Components:            []Component{{BuildDirectory: "build"}},
	},

	// Lua
	{
		Name:         "lua",
		FriendlyName: "Lua",
		DirName:      "lua-5.4.1",
		BuildCommands: "bear " + makeCheckedCCommandConstant + ` CFLAGS="` + commonCFlagsConstant + `" linux` + "\n" +
			"( cd src ; \\\n" +
			"  ${{env.clang_rename}} -pl -i \\\n" +
			"    --qualified-name=main \\\n" +
			"    --new-name=luac_main \\\n" +
			"    luac.c )\n",
		// Undo the rename using sed because the system install of
		// clang-rename can't handle checked pointers. This works since
		// "luac_main" only appears where the original rename added it.
		BuildConvertedCommand: `sed -i "s/luac_main/main/" src/luac.c` + "\n" +
			makeCheckedCCommandConstant + ` -k CFLAGS="` + commonCFlagsConstant + `" linux` + "\n",
	},

	// LibTiff
	{
		Name:         "libtiff",
		FriendlyName: "LibTiff",
		DirName:      "tiff-4.1.0",
		BuildCommands: cmakeCheckedCCommandConstant + ` -G Ninja -DCMAKE_C_FLAGS="` + commonCFlagsConstant + `" .` + "\n" +
			"bear " + ninjaStandardCommandConstant + " tiff\n" +
			"( cd tools ; \\\n" +
			"  for i in *.c ; do \\\n" +
			"    ${{env.clang_rename}} -pl -i \\\n" +
			"      --qualified-name=main \\\n" +
			"      --new-name=$(basename -s .c $i)_main $i ; \\\n" +
			"  done)\n",
		BuildConvertedCommand: ninjaStandardCommandConstant + " -k 0 tiff",
		ConvertExtra: `--skip '/.*/tif_stream.cxx' \` + "\n" +
			`--skip '.*/test/.*\.c' \` + "\n" +
			`--skip '.*/contrib/.*\.c' \` + "\n",
		PatchDirectory: "tiff-4.1.0_patches",
	},

	// Zlib
	{
		Name:         "zlib",
		FriendlyName: "ZLib",
		DirName:      "zlib-1.2.11",
		BuildCommands: "mkdir build\n" +
			"cd build\n" +
			cmakeCheckedCCommandConstant + ` -G Ninja -DCMAKE_C_FLAGS="` + commonCFlagsConstant + `" ..` + "\n" +
			"bear " + ninjaStandardCommandConstant + " zlib\n",
		BuildConvertedCommand: ninjaStandardCommandConstant + " -k 0 zlib",
		ConvertExtra:          `--skip '/.*/test/.*' \` + "\n",
		Components:            []Component{{BuildDirectory: "build"}},
	},

	// Icecast
	{
		Name:         "icecast",
		FriendlyName: "Icecast",
		DirName:      "icecast-2.4.4",
		// Turn off _GNU_SOURCE to work around the problem with
		// transparent unions for `struct sockaddr *`
		// (https://github.com/microsoft/checkedc/issues/441). configure
		// was generated by autoconf; patching the generated file avoids
		// re-running autoconf here.
		BuildCommands: "sed -i '/_GNU_SOURCE/d' configure\n" +
			`CC="${{env.builddir}}/bin/clang" CFLAGS="` + commonCFlagsConstant + `" ./configure` + "\n" +
			"bear " + makeStandardCommandConstant + "\n",
		BuildConvertedCommand: makeStandardCommandConstant + " -k",
	},

	// thttpd
	{
		Name:         "thttpd",
		FriendlyName: "Thttpd",
		DirName:      "thttpd-2.29",
		BuildCommands: `CC="${{env.builddir}}/bin/clang" ./configure` + "\n" +
			"chmod -R 777 *\n" +
			"bear " + thttpdMakeCommandConstant + "\n",
		BuildConvertedCommand: thttpdMakeCommandConstant + " -k",
		PatchDirectory:        "thttpd-2.29_patches",
	},
}

// Catalog returns the ordered benchmark table.
func Catalog() []Info {
	return catalog
}

// Lookup returns the benchmark with the provided internal name.
func Lookup(benchmarkName string) (Info, bool) {
	for _, information := range catalog {
		if information.Name == benchmarkName {
			return information, true
		}
	}
	return Info{}, false
}
