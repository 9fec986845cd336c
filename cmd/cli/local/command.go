// Package local builds the subcommand that generates a script to run
// benchmark(s) locally instead of generating the GitHub workflows.
package local

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mwhicks1/3c-actions/internal/utils/flags"
	"github.com/mwhicks1/3c-actions/internal/workflow"
)

const (
	commandUseConstant              = "local"
	commandShortDescriptionConstant = "Generate a script to run benchmark(s) locally"
	commandLongDescriptionConstant  = "local writes one executable shell script combining the selected workflow configuration's benchmark jobs, with workflow environment placeholders resolved to literal paths."

	outputFlagNameConstant               = "output"
	outputFlagUsageConstant              = "Filename of the script to be written."
	sourceDirectoryFlagNameConstant      = "3c-source-dir"
	sourceDirectoryFlagUsageConstant     = "Path to the 3C source directory containing clang/tools/3c/utils/port_tools."
	buildDirectoryFlagNameConstant       = "3c-build-dir"
	buildDirectoryFlagUsageConstant      = "Path to the 3C build or install directory containing bin/3c, bin/clang, etc."
	benchmarksDirectoryFlagNameConstant  = "checkedc-benchmarks-dir"
	benchmarksDirectoryFlagUsageConstant = "Path to the checkedc-benchmarks directory."
	workDirectoryFlagNameConstant        = "work-dir"
	workDirectoryFlagUsageConstant       = "Work directory under which the benchmark code is extracted, converted, and built."
	useBuiltExtraToolsFlagNameConstant   = "use-built-extra-tools"
	useBuiltExtraToolsFlagUsageConstant  = "For certain auxiliary tools (currently: clang-rename), look in the specified 3C build directory instead of on $PATH."
	configurationFlagNameConstant        = "workflow-config"
	configurationFlagUsageConstant       = "Workflow configuration (e.g., \"main\") to use."
	benchmarkFlagNameConstant            = "benchmark"
	benchmarkFlagUsageConstant           = "Run only the specified benchmark (e.g., \"vsftpd\") instead of all of them. Repeatable."
	subvariantFlagNameConstant           = "subvariant"
	subvariantFlagUsageConstant          = "Run only the specified subvariant (e.g., \"no_expand_macros_no_alltypes\") instead of all of them. Repeatable."

	missingPathFlagErrorTemplateConstant = "required flag --%s was not provided and no configured default exists"
)

// Defaults carries configured fallback values for the path flags.
type Defaults struct {
	SourceDirectory     string
	BuildDirectory      string
	BenchmarksDirectory string
	WorkDirectory       string
}

// CommandBuilder assembles the local command.
type CommandBuilder struct {
	LoggerProvider   func() *zap.Logger
	DefaultsProvider func() Defaults
}

// Build constructs the local command.
func (builder *CommandBuilder) Build() *cobra.Command {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		RunE:  builder.run,
	}

	command.Flags().String(outputFlagNameConstant, "", outputFlagUsageConstant)
	command.Flags().String(sourceDirectoryFlagNameConstant, "", sourceDirectoryFlagUsageConstant)
	command.Flags().String(buildDirectoryFlagNameConstant, "", buildDirectoryFlagUsageConstant)
	command.Flags().String(benchmarksDirectoryFlagNameConstant, "", benchmarksDirectoryFlagUsageConstant)
	command.Flags().String(workDirectoryFlagNameConstant, "", workDirectoryFlagUsageConstant)
	command.Flags().Bool(useBuiltExtraToolsFlagNameConstant, false, useBuiltExtraToolsFlagUsageConstant)
	command.Flags().String(configurationFlagNameConstant, "", configurationFlagUsageConstant)
	command.Flags().StringArray(benchmarkFlagNameConstant, nil, benchmarkFlagUsageConstant)
	command.Flags().StringArray(subvariantFlagNameConstant, nil, subvariantFlagUsageConstant)

	_ = command.MarkFlagRequired(outputFlagNameConstant)
	_ = command.MarkFlagRequired(configurationFlagNameConstant)

	return command
}

func (builder *CommandBuilder) run(command *cobra.Command, _ []string) error {
	defaults := Defaults{}
	if builder.DefaultsProvider != nil {
		defaults = builder.DefaultsProvider()
	}

	outputPath, _, _ := flags.StringFlag(command, outputFlagNameConstant)
	configurationName, _, _ := flags.StringFlag(command, configurationFlagNameConstant)
	useBuiltExtraTools, _, _ := flags.BoolFlag(command, useBuiltExtraToolsFlagNameConstant)
	benchmarkFilters, _, _ := flags.StringArrayFlag(command, benchmarkFlagNameConstant)
	subvariantFilters, _, _ := flags.StringArrayFlag(command, subvariantFlagNameConstant)

	sourceDirectory, sourceError := resolvePathFlag(command, sourceDirectoryFlagNameConstant, defaults.SourceDirectory)
	if sourceError != nil {
		return sourceError
	}
	buildDirectory, buildError := resolvePathFlag(command, buildDirectoryFlagNameConstant, defaults.BuildDirectory)
	if buildError != nil {
		return buildError
	}
	benchmarksDirectory, benchmarksError := resolvePathFlag(command, benchmarksDirectoryFlagNameConstant, defaults.BenchmarksDirectory)
	if benchmarksError != nil {
		return benchmarksError
	}
	workDirectory, workError := resolvePathFlag(command, workDirectoryFlagNameConstant, defaults.WorkDirectory)
	if workError != nil {
		return workError
	}

	// The generated steps reference auxiliary filter scripts that live in
	// this repository's checkout.
	actionsRepoDirectory, workingDirectoryError := os.Getwd()
	if workingDirectoryError != nil {
		return workingDirectoryError
	}

	options := workflow.LocalScriptOptions{
		OutputPath:           outputPath,
		SourceDirectory:      sourceDirectory,
		BuildDirectory:       buildDirectory,
		BenchmarksDirectory:  benchmarksDirectory,
		WorkDirectory:        workDirectory,
		ActionsRepoDirectory: actionsRepoDirectory,
		ConfigurationName:    configurationName,
		UseBuiltExtraTools:   useBuiltExtraTools,
		Benchmarks:           benchmarkFilters,
		Subvariants:          subvariantFilters,
	}

	var logger *zap.Logger
	if builder.LoggerProvider != nil {
		logger = builder.LoggerProvider()
	}
	return workflow.GenerateLocalScript(options, logger)
}

func resolvePathFlag(command *cobra.Command, flagName string, defaultValue string) (string, error) {
	flagValue, flagChanged, flagError := flags.StringFlag(command, flagName)
	if flagError != nil {
		return "", flagError
	}
	if flagChanged && flagValue != "" {
		return flagValue, nil
	}
	if defaultValue != "" {
		return defaultValue, nil
	}
	return "", fmt.Errorf(missingPathFlagErrorTemplateConstant, flagName)
}
