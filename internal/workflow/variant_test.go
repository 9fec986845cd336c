package workflow_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mwhicks1/3c-actions/internal/workflow"
)

const (
	variantCaseDefaultConstant           = "no_expand_no_alltypes"
	variantCaseExpandOnlyConstant        = "expand_no_alltypes"
	variantCaseAllTypesOnlyConstant      = "no_expand_alltypes"
	variantCaseGreatestSolutionConstant  = "greatest_solution"
	variantCaseMultipleArgumentsConstant = "multiple_extra_arguments"
	variantSubtestTemplateConstant       = "%d_%s"
)

func TestResolveSubvariant(testInstance *testing.T) {
	testCases := []struct {
		name                 string
		variant              workflow.Variant
		expandMacros         bool
		expectedName         string
		expectedConvertExtra string
		expectedLabel        string
	}{
		{
			name:                 variantCaseDefaultConstant,
			variant:              workflow.Variant{AllTypes: false},
			expandMacros:         false,
			expectedName:         "no_expand_macros_no_alltypes",
			expectedConvertExtra: "",
			expectedLabel:        "not macro-expanded, no -alltypes",
		},
		{
			name:                 variantCaseExpandOnlyConstant,
			variant:              workflow.Variant{AllTypes: false},
			expandMacros:         true,
			expectedName:         "expand_macros_no_alltypes",
			expectedConvertExtra: "--expand_macros_before_conversion \\\n",
			expectedLabel:        "macro-expanded, no -alltypes",
		},
		{
			name:                 variantCaseAllTypesOnlyConstant,
			variant:              workflow.Variant{AllTypes: true},
			expandMacros:         false,
			expectedName:         "no_expand_macros_alltypes",
			expectedConvertExtra: "--extra-3c-arg=-alltypes \\\n",
			expectedLabel:        "not macro-expanded, -alltypes",
		},
		{
			name: variantCaseGreatestSolutionConstant,
			variant: workflow.Variant{
				AllTypes:           true,
				Extra3CArguments:   []string{"-only-g-sol"},
				FriendlyNameSuffix: ", greatest solution",
				IsComparative:      true,
			},
			expandMacros:         false,
			expectedName:         "no_expand_macros_alltypes_only_g_sol",
			expectedConvertExtra: "--extra-3c-arg=-alltypes \\\n--extra-3c-arg=-only-g-sol \\\n",
			expectedLabel:        "not macro-expanded, -alltypes, greatest solution",
		},
		{
			name: variantCaseMultipleArgumentsConstant,
			variant: workflow.Variant{
				AllTypes:         true,
				Extra3CArguments: []string{"-disable-rds", "-disable-fnedgs"},
			},
			expandMacros: true,
			expectedName: "expand_macros_alltypes_disable_rds_disable_fnedgs",
			expectedConvertExtra: "--extra-3c-arg=-alltypes \\\n" +
				"--expand_macros_before_conversion \\\n" +
				"--extra-3c-arg=-disable-rds \\\n" +
				"--extra-3c-arg=-disable-fnedgs \\\n",
			expectedLabel: "macro-expanded, -alltypes",
		},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf(variantSubtestTemplateConstant, testCaseIndex, testCase.name), func(testInstance *testing.T) {
			subvariant := workflow.ResolveSubvariant(testCase.variant, testCase.expandMacros)
			require.Equal(testInstance, testCase.expectedName, subvariant.Name)
			require.Equal(testInstance, testCase.expectedConvertExtra, subvariant.ConvertExtra)
			require.Equal(testInstance, testCase.expectedLabel, subvariant.Label)
			require.Equal(testInstance, testCase.variant.AllTypes, subvariant.AllTypes)
		})
	}
}

func TestResolveSubvariantNamesAreUnique(testInstance *testing.T) {
	variants := []workflow.Variant{
		{AllTypes: false},
		{AllTypes: true},
		{AllTypes: true, Extra3CArguments: []string{"-only-g-sol"}},
		{AllTypes: true, Extra3CArguments: []string{"-only-l-sol"}},
		{AllTypes: true, Extra3CArguments: []string{"-disable-rds"}},
		{AllTypes: true, Extra3CArguments: []string{"-disable-fnedgs"}},
	}

	seenNames := map[string]struct{}{}
	for _, variant := range variants {
		for _, expandMacros := range []bool{false, true} {
			subvariantName := workflow.ResolveSubvariant(variant, expandMacros).Name
			_, alreadySeen := seenNames[subvariantName]
			require.False(testInstance, alreadySeen, subvariantName)
			seenNames[subvariantName] = struct{}{}
		}
	}
}

func TestSubvariantNamesFollowEmissionOrder(testInstance *testing.T) {
	configuration, configurationFound := workflow.LookupConfiguration("main")
	require.True(testInstance, configurationFound)

	require.Equal(testInstance, []string{
		"no_expand_macros_no_alltypes",
		"no_expand_macros_alltypes",
		"expand_macros_no_alltypes",
		"expand_macros_alltypes",
	}, workflow.SubvariantNames(configuration))
}
