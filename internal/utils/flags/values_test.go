package flags_test

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/mwhicks1/3c-actions/internal/utils/flags"
)

const (
	flagsTestStringFlagNameConstant = "name"
	flagsTestBoolFlagNameConstant   = "enabled"
	flagsTestArrayFlagNameConstant  = "item"
	flagsTestPersistentFlagConstant = "config"
)

func newFlagsTestCommand() (*cobra.Command, *cobra.Command) {
	rootCommand := &cobra.Command{Use: "root", RunE: func(*cobra.Command, []string) error { return nil }}
	rootCommand.PersistentFlags().String(flagsTestPersistentFlagConstant, "", "")

	childCommand := &cobra.Command{Use: "child", RunE: func(*cobra.Command, []string) error { return nil }}
	childCommand.Flags().String(flagsTestStringFlagNameConstant, "fallback", "")
	childCommand.Flags().Bool(flagsTestBoolFlagNameConstant, false, "")
	childCommand.Flags().StringArray(flagsTestArrayFlagNameConstant, nil, "")
	rootCommand.AddCommand(childCommand)

	return rootCommand, childCommand
}

func TestStringFlagReportsChanged(testInstance *testing.T) {
	rootCommand, childCommand := newFlagsTestCommand()
	rootCommand.SetArgs([]string{"child", "--name", "explicit"})
	require.NoError(testInstance, rootCommand.Execute())

	value, changed, flagError := flags.StringFlag(childCommand, flagsTestStringFlagNameConstant)
	require.NoError(testInstance, flagError)
	require.True(testInstance, changed)
	require.Equal(testInstance, "explicit", value)
}

func TestStringFlagDefaultIsUnchanged(testInstance *testing.T) {
	rootCommand, childCommand := newFlagsTestCommand()
	rootCommand.SetArgs([]string{"child"})
	require.NoError(testInstance, rootCommand.Execute())

	value, changed, flagError := flags.StringFlag(childCommand, flagsTestStringFlagNameConstant)
	require.NoError(testInstance, flagError)
	require.False(testInstance, changed)
	require.Equal(testInstance, "fallback", value)
}

func TestStringFlagFindsInheritedPersistentFlag(testInstance *testing.T) {
	rootCommand, childCommand := newFlagsTestCommand()
	rootCommand.SetArgs([]string{"child", "--config", "settings.yaml"})
	require.NoError(testInstance, rootCommand.Execute())

	value, changed, flagError := flags.StringFlag(childCommand, flagsTestPersistentFlagConstant)
	require.NoError(testInstance, flagError)
	require.True(testInstance, changed)
	require.Equal(testInstance, "settings.yaml", value)
}

func TestBoolAndStringArrayFlags(testInstance *testing.T) {
	rootCommand, childCommand := newFlagsTestCommand()
	rootCommand.SetArgs([]string{"child", "--enabled", "--item", "first", "--item", "second"})
	require.NoError(testInstance, rootCommand.Execute())

	enabled, enabledChanged, boolError := flags.BoolFlag(childCommand, flagsTestBoolFlagNameConstant)
	require.NoError(testInstance, boolError)
	require.True(testInstance, enabledChanged)
	require.True(testInstance, enabled)

	items, itemsChanged, arrayError := flags.StringArrayFlag(childCommand, flagsTestArrayFlagNameConstant)
	require.NoError(testInstance, arrayError)
	require.True(testInstance, itemsChanged)
	require.Equal(testInstance, []string{"first", "second"}, items)
}

func TestFlagNotDefined(testInstance *testing.T) {
	_, childCommand := newFlagsTestCommand()

	_, _, flagError := flags.StringFlag(childCommand, "missing")
	require.ErrorIs(testInstance, flagError, flags.ErrFlagNotDefined)
}
