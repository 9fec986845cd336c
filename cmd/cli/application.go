// Package cli wires the 3c-actions command tree: the default invocation
// regenerates every GitHub workflow file, the local subcommand emits a
// standalone benchmark-runner script, and the list subcommand prints the
// benchmark and subvariant matrix.
package cli

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	listcmd "github.com/mwhicks1/3c-actions/cmd/cli/list"
	localcmd "github.com/mwhicks1/3c-actions/cmd/cli/local"
	"github.com/mwhicks1/3c-actions/internal/utils"
	"github.com/mwhicks1/3c-actions/internal/utils/flags"
	"github.com/mwhicks1/3c-actions/internal/workflow"
)

const (
	applicationNameConstant             = "3c-actions"
	applicationShortDescriptionConstant = "Generate GitHub workflows or local scripts to run the 3C benchmark tests"
	applicationLongDescriptionConstant  = "3c-actions regenerates the benchmark workflow files from the literal benchmark and variant tables. The workflow language has essentially no support for code reuse, so the many near-identical jobs are generated instead of hand-maintained."

	configFileFlagNameConstant  = "config"
	configFileFlagUsageConstant = "Optional path to a configuration file (YAML)."
	logLevelFlagNameConstant    = "log-level"
	logLevelFlagUsageConstant   = "Override the configured log level (debug, info, warn, error)."
	logFormatFlagNameConstant   = "log-format"
	logFormatFlagUsageConstant  = "Override the configured log format (structured or console)."

	commonConfigurationKeyConstant   = "common"
	commonLogLevelConfigKeyConstant  = commonConfigurationKeyConstant + ".log_level"
	commonLogFormatConfigKeyConstant = commonConfigurationKeyConstant + ".log_format"
	defaultLogLevelConstant          = "info"
	defaultLogFormatConstant         = "console"

	environmentPrefixConstant              = "THREEC"
	configurationNameConstant              = "config"
	configurationTypeConstant              = "yaml"
	defaultConfigurationSearchPathConstant = "."

	workflowsRootDirectoryConstant = "."
)

// Application owns the root command and the shared state its subcommands
// draw on.
type Application struct {
	rootCommand   *cobra.Command
	configuration ApplicationConfiguration
	logger        *zap.Logger
}

// Execute runs the 3c-actions CLI.
func Execute() error {
	return NewApplication().Execute()
}

// NewApplication assembles the command tree.
func NewApplication() *Application {
	application := &Application{}

	rootCommand := &cobra.Command{
		Use:               applicationNameConstant,
		Short:             applicationShortDescriptionConstant,
		Long:              applicationLongDescriptionConstant,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: application.initialize,
		RunE:              application.runGenerateWorkflows,
	}
	rootCommand.PersistentFlags().String(configFileFlagNameConstant, "", configFileFlagUsageConstant)
	rootCommand.PersistentFlags().String(logLevelFlagNameConstant, "", logLevelFlagUsageConstant)
	rootCommand.PersistentFlags().String(logFormatFlagNameConstant, "", logFormatFlagUsageConstant)

	localCommandBuilder := &localcmd.CommandBuilder{
		LoggerProvider:   application.loggerProvider,
		DefaultsProvider: application.localDefaultsProvider,
	}
	rootCommand.AddCommand(localCommandBuilder.Build())

	listCommandBuilder := &listcmd.CommandBuilder{}
	rootCommand.AddCommand(listCommandBuilder.Build())

	application.rootCommand = rootCommand
	return application
}

// Execute runs the assembled command tree.
func (application *Application) Execute() error {
	defer application.flushLogger()
	return application.rootCommand.Execute()
}

// initialize loads the layered configuration and creates the logger before
// any subcommand runs.
func (application *Application) initialize(command *cobra.Command, _ []string) error {
	explicitConfigurationPath, _, _ := flags.StringFlag(command, configFileFlagNameConstant)

	configurationLoader := utils.NewConfigurationLoader(
		environmentPrefixConstant,
		configurationNameConstant,
		configurationTypeConstant,
		configurationSearchPaths(),
	)
	if _, loadError := configurationLoader.LoadConfiguration(
		explicitConfigurationPath, defaultConfigurationValues(), &application.configuration); loadError != nil {
		return loadError
	}

	logLevel := application.configuration.Common.LogLevel
	if flagLogLevel, logLevelChanged, _ := flags.StringFlag(command, logLevelFlagNameConstant); logLevelChanged && flagLogLevel != "" {
		logLevel = flagLogLevel
	}
	logFormat := application.configuration.Common.LogFormat
	if flagLogFormat, logFormatChanged, _ := flags.StringFlag(command, logFormatFlagNameConstant); logFormatChanged && flagLogFormat != "" {
		logFormat = flagLogFormat
	}

	logger, loggerError := utils.NewLoggerFactory().CreateLogger(utils.LogLevel(logLevel), utils.LogFormat(logFormat))
	if loggerError != nil {
		return loggerError
	}
	application.logger = logger
	return nil
}

// runGenerateWorkflows is the default invocation: regenerate every workflow
// file in place.
func (application *Application) runGenerateWorkflows(_ *cobra.Command, _ []string) error {
	return workflow.GenerateWorkflowFiles(workflowsRootDirectoryConstant, application.logger)
}

func (application *Application) loggerProvider() *zap.Logger {
	return application.logger
}

func (application *Application) localDefaultsProvider() localcmd.Defaults {
	return localcmd.Defaults{
		SourceDirectory:     application.configuration.Local.SourceDirectory,
		BuildDirectory:      application.configuration.Local.BuildDirectory,
		BenchmarksDirectory: application.configuration.Local.BenchmarksDirectory,
		WorkDirectory:       application.configuration.Local.WorkDirectory,
	}
}

func (application *Application) flushLogger() {
	if application.logger != nil {
		// Sync errors on stderr sinks are expected on some platforms.
		_ = application.logger.Sync()
	}
}

func configurationSearchPaths() []string {
	searchPaths := []string{defaultConfigurationSearchPathConstant}
	if homeDirectory, homeError := os.UserHomeDir(); homeError == nil && homeDirectory != "" {
		searchPaths = append(searchPaths, homeDirectory)
	}
	return searchPaths
}
