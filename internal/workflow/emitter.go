package workflow

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/mwhicks1/3c-actions/internal/benchmarks"
)

const (
	workflowsDirectoryConstant           = ".github/workflows"
	workflowFileNameTemplateConstant     = "%s.yml"
	workflowsDirectoryPermissionConstant = 0o755
	workflowFilePermissionConstant       = 0o644
	// Creating the script with the execute bits already set avoids a
	// window where the file exists without execute permission.
	localScriptPermissionConstant = 0o777

	portToolsRelativePathConstant      = "clang/tools/3c/utils/port_tools"
	conversionToolRelativePathConstant = "bin/3c"
	clangRenameToolNameConstant        = "clang-rename"

	environmentPlaceholderTemplateConstant = "${{env.%s}}"

	localScriptHeaderTemplateConstant = "#!/bin/bash\n" +
		"# This script was generated by `3c-actions local` but may be manually\n" +
		"# edited by a user for customization.\n" +
		"#\n" +
		"# Workflow configuration name: %s\n"

	missingPathErrorTemplateConstant          = "%s does not exist"
	unknownConfigurationErrorTemplateConstant = "no such workflow configuration %q"
	workflowWriteErrorTemplateConstant        = "unable to write workflow file %s: %w"
	localScriptWriteErrorTemplateConstant     = "unable to write local script %s: %w"

	workflowGeneratedMessageConstant         = "workflow file generated"
	localScriptGeneratedMessageConstant      = "local script generated"
	unmatchedBenchmarkFilterMessageConstant  = "benchmark filter matched no benchmark"
	unmatchedSubvariantFilterMessageConstant = "subvariant filter matched no subvariant"

	logFieldPathConstant          = "path"
	logFieldConfigurationConstant = "configuration"
	logFieldFilterConstant        = "filter"
)

// writeConfigurationJobs emits every benchmark job selected by the
// configuration and options: all benchmarks passing the name filter, times
// the macro-expansion flag, times the configuration's variants.
func writeConfigurationJobs(writer *bytes.Buffer, configuration Configuration, options GenerationOptions) error {
	for _, benchmark := range benchmarks.Catalog() {
		if len(options.BenchmarkFilters) > 0 && !containsName(options.BenchmarkFilters, benchmark.Name) {
			continue
		}
		for _, expandMacros := range []bool{false, true} {
			for _, variant := range configuration.Variants {
				if jobError := WriteBenchmarkJob(writer, benchmark, expandMacros, variant, options); jobError != nil {
					return jobError
				}
			}
		}
	}
	return nil
}

// GenerateWorkflowFiles regenerates every configured workflow file under
// rootDirectory/.github/workflows.
func GenerateWorkflowFiles(rootDirectory string, logger *zap.Logger) error {
	workflowsDirectory := filepath.Join(rootDirectory, workflowsDirectoryConstant)
	if directoryError := os.MkdirAll(workflowsDirectory, workflowsDirectoryPermissionConstant); directoryError != nil {
		return directoryError
	}

	for _, configuration := range Configurations() {
		outputBuffer := &bytes.Buffer{}
		outputBuffer.WriteString(renderWorkflowHeader(configuration))
		options := GenerationOptions{GenerateStats: configuration.GenerateStats}
		if jobsError := writeConfigurationJobs(outputBuffer, configuration, options); jobsError != nil {
			return jobsError
		}

		workflowPath := filepath.Join(workflowsDirectory, fmt.Sprintf(workflowFileNameTemplateConstant, configuration.FileName))
		if writeError := os.WriteFile(workflowPath, outputBuffer.Bytes(), workflowFilePermissionConstant); writeError != nil {
			return fmt.Errorf(workflowWriteErrorTemplateConstant, workflowPath, writeError)
		}
		if logger != nil {
			logger.Info(workflowGeneratedMessageConstant,
				zap.String(logFieldConfigurationConstant, configuration.FileName),
				zap.String(logFieldPathConstant, workflowPath))
		}
	}
	return nil
}

// LocalScriptOptions carries everything local generation needs: where to
// write the script, the paths the script will reference, and the
// configuration plus optional filters selecting what it runs.
type LocalScriptOptions struct {
	OutputPath string
	// SourceDirectory is the conversion-tool source tree containing
	// clang/tools/3c/utils/port_tools.
	SourceDirectory string
	// BuildDirectory is the conversion-tool build or install directory
	// containing bin/3c, bin/clang, and friends.
	BuildDirectory string
	// BenchmarksDirectory holds the benchmark archives and patch
	// directories.
	BenchmarksDirectory string
	// WorkDirectory is where benchmark code is extracted, converted, and
	// built.
	WorkDirectory string
	// ActionsRepoDirectory is the checkout containing the auxiliary
	// filter scripts referenced by generated steps.
	ActionsRepoDirectory string
	ConfigurationName    string
	// UseBuiltExtraTools resolves auxiliary tools (currently
	// clang-rename) in the build directory instead of on $PATH.
	UseBuiltExtraTools bool
	Benchmarks         []string
	Subvariants        []string
}

// GenerateLocalScript writes one executable script combining every selected
// step sequence, with the workflow environment placeholders substituted by
// literal paths. All required paths are validated before anything is
// written: it is much nicer to get these errors right away than to have
// something go wrong in the middle of executing the generated script.
func GenerateLocalScript(options LocalScriptOptions, logger *zap.Logger) error {
	buildDirectory, buildDirectoryError := filepath.Abs(options.BuildDirectory)
	if buildDirectoryError != nil {
		return buildDirectoryError
	}
	conversionToolPath := filepath.Join(buildDirectory, conversionToolRelativePathConstant)
	if !pathExists(conversionToolPath) {
		return fmt.Errorf(missingPathErrorTemplateConstant, conversionToolPath)
	}

	sourceDirectory, sourceDirectoryError := filepath.Abs(options.SourceDirectory)
	if sourceDirectoryError != nil {
		return sourceDirectoryError
	}
	portToolsPath := filepath.Join(sourceDirectory, portToolsRelativePathConstant)
	if !pathExists(portToolsPath) {
		return fmt.Errorf(missingPathErrorTemplateConstant, portToolsPath)
	}

	if !pathExists(options.BenchmarksDirectory) {
		return fmt.Errorf(missingPathErrorTemplateConstant, options.BenchmarksDirectory)
	}

	configuration, configurationFound := LookupConfiguration(options.ConfigurationName)
	if !configurationFound {
		return fmt.Errorf(unknownConfigurationErrorTemplateConstant, options.ConfigurationName)
	}

	warnUnmatchedFilters(configuration, options, logger)

	workDirectory, workDirectoryError := filepath.Abs(options.WorkDirectory)
	if workDirectoryError != nil {
		return workDirectoryError
	}

	scriptBuffer := &bytes.Buffer{}
	fmt.Fprintf(scriptBuffer, localScriptHeaderTemplateConstant, configuration.FileName)
	generationOptions := GenerationOptions{
		GenerateStats:     configuration.GenerateStats,
		RunLocally:        true,
		BenchmarkFilters:  options.Benchmarks,
		SubvariantFilters: options.Subvariants,
	}
	if jobsError := writeConfigurationJobs(scriptBuffer, configuration, generationOptions); jobsError != nil {
		return jobsError
	}

	environmentReplacements := map[string]string{
		"actions_repo":      options.ActionsRepoDirectory,
		"benchmark_tar_dir": options.BenchmarksDirectory,
		"benchmark_conv_dir": workDirectory,
		"builddir":           buildDirectory,
		"port_tools":         portToolsPath,
		// Unlike the workflow, the default here is plain clang-rename
		// rather than a versioned name.
		"clang_rename": extraToolPath(buildDirectory, clangRenameToolNameConstant, options.UseBuiltExtraTools),
	}
	script := scriptBuffer.String()
	for placeholderName, replacementValue := range environmentReplacements {
		placeholder := fmt.Sprintf(environmentPlaceholderTemplateConstant, placeholderName)
		script = strings.ReplaceAll(script, placeholder, replacementValue)
	}

	if writeError := writeExecutableFile(options.OutputPath, script); writeError != nil {
		return fmt.Errorf(localScriptWriteErrorTemplateConstant, options.OutputPath, writeError)
	}
	if logger != nil {
		logger.Info(localScriptGeneratedMessageConstant,
			zap.String(logFieldConfigurationConstant, configuration.FileName),
			zap.String(logFieldPathConstant, options.OutputPath))
	}
	return nil
}

// extraToolPath resolves an auxiliary tool either inside the build
// directory or by bare name on $PATH.
func extraToolPath(buildDirectory string, toolName string, useBuiltExtraTools bool) string {
	if useBuiltExtraTools {
		return filepath.Join(buildDirectory, "bin", toolName)
	}
	return toolName
}

// warnUnmatchedFilters logs filter values that select nothing. The script
// is still generated; the list subcommand exists to discover valid names.
func warnUnmatchedFilters(configuration Configuration, options LocalScriptOptions, logger *zap.Logger) {
	if logger == nil {
		return
	}
	for _, benchmarkFilter := range options.Benchmarks {
		if _, found := benchmarks.Lookup(benchmarkFilter); !found {
			logger.Warn(unmatchedBenchmarkFilterMessageConstant, zap.String(logFieldFilterConstant, benchmarkFilter))
		}
	}
	subvariantNames := SubvariantNames(configuration)
	for _, subvariantFilter := range options.Subvariants {
		if !containsName(subvariantNames, subvariantFilter) {
			logger.Warn(unmatchedSubvariantFilterMessageConstant, zap.String(logFieldFilterConstant, subvariantFilter))
		}
	}
}

func writeExecutableFile(path string, content string) error {
	fileHandle, openError := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, localScriptPermissionConstant)
	if openError != nil {
		return openError
	}
	if _, writeError := fileHandle.WriteString(content); writeError != nil {
		fileHandle.Close()
		return writeError
	}
	return fileHandle.Close()
}

func pathExists(path string) bool {
	_, statError := os.Stat(path)
	return statError == nil
}
