package workflow

import (
	"fmt"
	"io"
	"strings"

	"github.com/mwhicks1/3c-actions/internal/benchmarks"
)

const (
	subvariantDirectoryTemplateConstant = "${{env.benchmark_conv_dir}}/%s"
	failedComponentsFileNameConstant    = "failed-components-list.txt"
	statsDirectoryConstant              = "${{env.benchmark_conv_dir}}/stats"
	performanceStatsDirectoryConstant   = "3c_performance_stats/"
	uploadArtifactActionNameConstant    = "actions/upload-artifact@v2"
	artifactRetentionDaysConstant       = "5"

	buildStepNamePrefixConstant          = "Build "
	convertStepNamePrefixConstant        = "Convert "
	saveStatsStepNameTemplateConstant    = "Save 3c stats of %s"
	copyStatsStepNameTemplateConstant    = "Copy 3c stats of %s"
	uploadStatsStepNameTemplateConstant  = "Upload 3c stats of %s"
	buildConvertedStepNamePrefixConstant = "Build converted "
	filterStepNameSuffixConstant         = " (filter bounds inference errors)"
	deferFailureStepNameSuffixConstant   = " (defer failure)"
	deferredFailuresStepNameConstant     = "Check for deferred post-conversion build failures"

	// The generated shell runs with `pipefail` off, so the filter's own
	// exit status never masks the build command's result.
	filterPipeCodeConstant = " 2>&1 | ${{env.actions_repo}}/filter-bounds-inference-errors.py"

	workflowJobHeaderTemplateConstant = "\n  test_%s_%s:\n    name: Test %s (%s)\n    needs: build_3c\n    runs-on: self-hosted\n    steps:\n"
	localJobHeaderTemplateConstant    = "\n# Test %s (%s)\n"
)

// GenerationOptions carries the caller's selections through the generation
// pass; generation functions never read ambient argument state.
type GenerationOptions struct {
	GenerateStats bool
	RunLocally    bool
	// BenchmarkFilters and SubvariantFilters restrict the emitted jobs by
	// internal benchmark name and subvariant identifier. Empty means all.
	BenchmarkFilters  []string
	SubvariantFilters []string
}

// BuildJobSteps assembles the ordered step sequence for one benchmark under
// one subvariant: build, then per component convert, optional stats capture,
// and build-converted, then an aggregate deferred-failure check when the
// benchmark has more than one component. Step count and order are a pure
// function of the inputs.
func BuildJobSteps(benchmark benchmarks.Info, subvariant Subvariant, generateStats bool, runLocally bool) []Step {
	subvariantDirectory := fmt.Sprintf(subvariantDirectoryTemplateConstant, subvariant.Name)
	benchmarkDirectory := subvariantDirectory + "/" + benchmark.DirName
	failedComponentsPath := benchmarkDirectory + "/" + failedComponentsFileNameConstant

	steps := []Step{RunStep{
		StepName: buildStepNamePrefixConstant + benchmark.FriendlyName,
		Run:      fullBuildCommands(benchmark, subvariantDirectory),
	}}

	components := benchmark.EffectiveComponents()
	deferFailure := len(components) > 1

	for _, component := range components {
		componentDirectory := benchmarkDirectory
		if component.Subdirectory != "" {
			componentDirectory += "/" + component.Subdirectory
		}
		componentFriendlyName := component.FriendlyName
		if componentFriendlyName == "" {
			componentFriendlyName = benchmark.FriendlyName
		}

		steps = append(steps, convertStep(benchmark, subvariant, component, componentDirectory, componentFriendlyName))

		if generateStats {
			steps = append(steps, statsSteps(subvariant, componentDirectory, componentFriendlyName, runLocally)...)
		}

		steps = append(steps, buildConvertedStep(
			benchmark, subvariant, component, componentDirectory, componentFriendlyName,
			deferFailure, failedComponentsPath))
	}

	if deferFailure {
		steps = append(steps, deferredFailuresStep(failedComponentsPath))
	}

	return steps
}

// fullBuildCommands extracts the benchmark archive into the per-subvariant
// working directory, applies patches when declared, and runs the
// benchmark's raw build command text. `rm -rf` matters when running
// locally; in the workflow the Clean job takes care of leftovers.
func fullBuildCommands(benchmark benchmarks.Info, subvariantDirectory string) string {
	commands := fmt.Sprintf(
		"mkdir -p %s\ncd %s\nrm -rf %s\ntar -xvzf ${{env.benchmark_tar_dir}}/%s.tar.gz\n",
		subvariantDirectory, subvariantDirectory, benchmark.DirName, benchmark.DirName)
	if benchmark.PatchDirectory != "" {
		commands += fmt.Sprintf(
			"for i in ${{env.benchmark_tar_dir}}/%s/*; do patch -s -p0 < $i; done\n",
			benchmark.PatchDirectory)
	}
	commands += fmt.Sprintf("cd %s\n", benchmark.DirName)
	return commands + ensureTrailingNewline(benchmark.BuildCommands)
}

func convertStep(benchmark benchmarks.Info, subvariant Subvariant, component benchmarks.Component, componentDirectory string, componentFriendlyName string) Step {
	benchmarkConvertExtra := ""
	if benchmark.ConvertExtra != "" {
		benchmarkConvertExtra = ensureTrailingNewline(benchmark.ConvertExtra)
	}
	convertFlags := benchmarkConvertExtra +
		"--prog_name ${{env.builddir}}/bin/3c \\\n" +
		subvariant.ConvertExtra +
		"--project_path ."
	if component.BuildDirectory != "" {
		convertFlags += " \\\n--build_dir " + component.BuildDirectory
	}
	convertFlags += "\n"

	return RunStep{
		StepName: convertStepNamePrefixConstant + componentFriendlyName,
		Run: fmt.Sprintf("cd %s\n${{env.port_tools}}/convert_project.py \\\n", componentDirectory) +
			indentLines(convertFlags, workflowStepBodyIndentConstant),
	}
}

// statsSteps relocates the conversion statistics files. Locally the files
// are zipped into a shared stats directory shaped like a folder of
// downloaded workflow artifacts, so the existing stats-processing scripts
// consume both the same way; in the workflow they are copied aside and
// uploaded as an artifact named after the component and subvariant.
func statsSteps(subvariant Subvariant, componentDirectory string, componentFriendlyName string, runLocally bool) []Step {
	artifactName := componentFriendlyName + "_" + subvariant.Name

	if runLocally {
		statsZipPath := statsDirectoryConstant + "/" + artifactName + ".zip"
		return []Step{RunStep{
			StepName: fmt.Sprintf(saveStatsStepNameTemplateConstant, componentFriendlyName),
			Run: fmt.Sprintf("cd %s\nmkdir -p %s\nrm -f %s\nzip %s %s\n",
				componentDirectory, statsDirectoryConstant, statsZipPath, statsZipPath,
				strings.Join(benchmarks.StatsFileNames, " ")),
		}}
	}

	return []Step{
		RunStep{
			StepName: fmt.Sprintf(copyStatsStepNameTemplateConstant, componentFriendlyName),
			Run: fmt.Sprintf("cd %s\nmkdir %s\ncp %s %s\n",
				componentDirectory, performanceStatsDirectoryConstant,
				strings.Join(benchmarks.StatsFileNames, " "), performanceStatsDirectoryConstant),
		},
		ActionStep{
			StepName:   fmt.Sprintf(uploadStatsStepNameTemplateConstant, componentFriendlyName),
			ActionName: uploadArtifactActionNameConstant,
			Arguments: []ActionArgument{
				{Key: "name", Value: artifactName},
				{Key: "path", Value: componentDirectory + "/" + performanceStatsDirectoryConstant},
				{Key: "retention-days", Value: artifactRetentionDaysConstant},
			},
		},
	}
}

func buildConvertedStep(benchmark benchmarks.Info, subvariant Subvariant, component benchmarks.Component, componentDirectory string, componentFriendlyName string, deferFailure bool, failedComponentsPath string) Step {
	stepName := buildConvertedStepNamePrefixConstant + componentFriendlyName
	filterPipeCode := ""
	if subvariant.AllTypes {
		stepName += filterStepNameSuffixConstant
		filterPipeCode = filterPipeCodeConstant
	}
	deferFailureCode := ""
	if deferFailure {
		stepName += deferFailureStepNameSuffixConstant
		deferFailureCode = fmt.Sprintf(" || echo %s >>%s", componentFriendlyName, failedComponentsPath)
	}

	// convert_project.py sets -output-dir=out.checked as standard.
	run := fmt.Sprintf(
		"cd %s\nif [ -e \"out.checked\" ]; then cp -r out.checked/* . && rm -r out.checked; fi\n",
		componentDirectory)
	if component.BuildDirectory != "" {
		run += fmt.Sprintf("cd %s\n", component.BuildDirectory)
	}
	run += strings.TrimRight(benchmark.BuildConvertedCommand, "\n") + filterPipeCode + deferFailureCode + "\n"

	return RunStep{StepName: stepName, Run: run}
}

func deferredFailuresStep(failedComponentsPath string) Step {
	return RunStep{
		StepName: deferredFailuresStepNameConstant,
		Run: fmt.Sprintf(
			"if [ -e %s ]; then\n    echo 'Failed components (see previous post-conversion build steps):'\n    cat %s\n    exit 1\nfi\n",
			failedComponentsPath, failedComponentsPath),
	}
}

// WriteBenchmarkJob emits one benchmark job for the provided subvariant
// combination, or nothing when the benchmark opts out of a comparative
// variant or a supplied filter excludes the subvariant. The filter check
// runs before anything is written so local mode emits no orphaned headers.
func WriteBenchmarkJob(writer io.Writer, benchmark benchmarks.Info, expandMacros bool, variant Variant, options GenerationOptions) error {
	if !benchmark.IsAllowed(variant.IsComparative) {
		return nil
	}

	subvariant := ResolveSubvariant(variant, expandMacros)
	if len(options.SubvariantFilters) > 0 && !containsName(options.SubvariantFilters, subvariant.Name) {
		return nil
	}

	steps := BuildJobSteps(benchmark, subvariant, options.GenerateStats, options.RunLocally)

	if options.RunLocally {
		// A blank line precedes each job, whether the previous text is
		// another job or the file header.
		if _, writeError := fmt.Fprintf(writer, localJobHeaderTemplateConstant, benchmark.FriendlyName, subvariant.Label); writeError != nil {
			return writeError
		}
		for _, step := range steps {
			fragment, formatError := step.FormatLocal()
			if formatError != nil {
				return formatError
			}
			if _, writeError := io.WriteString(writer, fragment); writeError != nil {
				return writeError
			}
		}
		return nil
	}

	// The leading blank line in the job header yields blank lines between
	// jobs without one at the very end of the workflow file.
	if _, writeError := fmt.Fprintf(writer, workflowJobHeaderTemplateConstant,
		benchmark.Name, subvariant.Name, benchmark.FriendlyName, subvariant.Label); writeError != nil {
		return writeError
	}
	renderedSteps := make([]string, 0, len(steps))
	for _, step := range steps {
		renderedSteps = append(renderedSteps, step.FormatWorkflow())
	}
	// Blank lines separate steps but never follow the last step of the
	// last job.
	_, writeError := io.WriteString(writer, strings.Join(renderedSteps, "\n"))
	return writeError
}

func ensureTrailingNewline(text string) string {
	if text != "" && !strings.HasSuffix(text, "\n") {
		return text + "\n"
	}
	return text
}

func containsName(names []string, candidate string) bool {
	for _, name := range names {
		if name == candidate {
			return true
		}
	}
	return false
}
