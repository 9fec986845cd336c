package workflow_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/mwhicks1/3c-actions/internal/workflow"
)

const (
	emitterMainWorkflowFileNameConstant = "main.yml"
	emitterExpectedJobCountConstant     = 43
)

var emitterExpectedWorkflowFileNames = []string{
	"main.yml",
	"exhaustivestats.yml",
	"exhaustiveleastgreatest.yml",
	"exhaustiveccured.yml",
}

type workflowFileDocument struct {
	Name string               `yaml:"name"`
	Jobs map[string]yaml.Node `yaml:"jobs"`
}

func generateWorkflowsInTemporaryDirectory(testInstance *testing.T) string {
	rootDirectory := testInstance.TempDir()
	require.NoError(testInstance, workflow.GenerateWorkflowFiles(rootDirectory, zap.NewNop()))
	return rootDirectory
}

func readWorkflowFile(testInstance *testing.T, rootDirectory string, fileName string) string {
	content, readError := os.ReadFile(filepath.Join(rootDirectory, ".github", "workflows", fileName))
	require.NoError(testInstance, readError)
	return string(content)
}

func TestGenerateWorkflowFilesWritesEveryConfiguration(testInstance *testing.T) {
	rootDirectory := generateWorkflowsInTemporaryDirectory(testInstance)

	for _, fileName := range emitterExpectedWorkflowFileNames {
		workflowPath := filepath.Join(rootDirectory, ".github", "workflows", fileName)
		_, statError := os.Stat(workflowPath)
		require.NoError(testInstance, statError, fileName)
	}
}

func TestGenerateWorkflowFilesEmitsValidYAML(testInstance *testing.T) {
	rootDirectory := generateWorkflowsInTemporaryDirectory(testInstance)

	for _, fileName := range emitterExpectedWorkflowFileNames {
		content := readWorkflowFile(testInstance, rootDirectory, fileName)
		document := workflowFileDocument{}
		require.NoError(testInstance, yaml.Unmarshal([]byte(content), &document), fileName)
		require.NotEmpty(testInstance, document.Name, fileName)
		require.Contains(testInstance, document.Jobs, "clean", fileName)
		require.Contains(testInstance, document.Jobs, "build_3c", fileName)
		require.Contains(testInstance, document.Jobs, "test_3c", fileName)
	}
}

func TestGenerateWorkflowFilesMainJobSet(testInstance *testing.T) {
	rootDirectory := generateWorkflowsInTemporaryDirectory(testInstance)

	document := workflowFileDocument{}
	content := readWorkflowFile(testInstance, rootDirectory, emitterMainWorkflowFileNameConstant)
	require.NoError(testInstance, yaml.Unmarshal([]byte(content), &document))

	// 3 fixed jobs plus one test job per benchmark and subvariant.
	require.Len(testInstance, document.Jobs, emitterExpectedJobCountConstant)
	require.Contains(testInstance, document.Jobs, "test_vsftpd_no_expand_macros_no_alltypes")
	require.Contains(testInstance, document.Jobs, "test_Olden_expand_macros_alltypes")
}

func TestGenerateWorkflowFilesScheduleTrigger(testInstance *testing.T) {
	rootDirectory := generateWorkflowsInTemporaryDirectory(testInstance)

	mainContent := readWorkflowFile(testInstance, rootDirectory, emitterMainWorkflowFileNameConstant)
	require.Contains(testInstance, mainContent, "  schedule:\n    - cron: \"0 5 * * *\"\n")

	for _, fileName := range emitterExpectedWorkflowFileNames[1:] {
		content := readWorkflowFile(testInstance, rootDirectory, fileName)
		require.NotContains(testInstance, content, "cron:", fileName)
	}
}

func TestGenerateWorkflowFilesStatsUploads(testInstance *testing.T) {
	rootDirectory := generateWorkflowsInTemporaryDirectory(testInstance)

	mainContent := readWorkflowFile(testInstance, rootDirectory, emitterMainWorkflowFileNameConstant)
	require.NotContains(testInstance, mainContent, "actions/upload-artifact@v2")

	for _, fileName := range emitterExpectedWorkflowFileNames[1:] {
		content := readWorkflowFile(testInstance, rootDirectory, fileName)
		require.Contains(testInstance, content, "actions/upload-artifact@v2", fileName)
	}
}

func TestGenerateWorkflowFilesIsIdempotent(testInstance *testing.T) {
	rootDirectory := generateWorkflowsInTemporaryDirectory(testInstance)
	firstContent := readWorkflowFile(testInstance, rootDirectory, emitterMainWorkflowFileNameConstant)

	require.NoError(testInstance, workflow.GenerateWorkflowFiles(rootDirectory, zap.NewNop()))
	secondContent := readWorkflowFile(testInstance, rootDirectory, emitterMainWorkflowFileNameConstant)

	require.Equal(testInstance, firstContent, secondContent)
}

func localScriptFixture(testInstance *testing.T) workflow.LocalScriptOptions {
	fixtureRoot := testInstance.TempDir()

	buildDirectory := filepath.Join(fixtureRoot, "build")
	require.NoError(testInstance, os.MkdirAll(filepath.Join(buildDirectory, "bin"), 0o755))
	require.NoError(testInstance, os.WriteFile(filepath.Join(buildDirectory, "bin", "3c"), []byte{}, 0o755))

	sourceDirectory := filepath.Join(fixtureRoot, "checkedc-clang")
	require.NoError(testInstance, os.MkdirAll(
		filepath.Join(sourceDirectory, "clang", "tools", "3c", "utils", "port_tools"), 0o755))

	benchmarksDirectory := filepath.Join(fixtureRoot, "benchmarks")
	require.NoError(testInstance, os.MkdirAll(benchmarksDirectory, 0o755))

	return workflow.LocalScriptOptions{
		OutputPath:           filepath.Join(fixtureRoot, "run-benchmarks.sh"),
		SourceDirectory:      sourceDirectory,
		BuildDirectory:       buildDirectory,
		BenchmarksDirectory:  benchmarksDirectory,
		WorkDirectory:        filepath.Join(fixtureRoot, "work"),
		ActionsRepoDirectory: filepath.Join(fixtureRoot, "actions"),
		ConfigurationName:    "main",
	}
}

func TestGenerateLocalScript(testInstance *testing.T) {
	options := localScriptFixture(testInstance)

	require.NoError(testInstance, workflow.GenerateLocalScript(options, zap.NewNop()))

	scriptInfo, statError := os.Stat(options.OutputPath)
	require.NoError(testInstance, statError)
	require.NotZero(testInstance, scriptInfo.Mode()&0o100)

	scriptBytes, readError := os.ReadFile(options.OutputPath)
	require.NoError(testInstance, readError)
	script := string(scriptBytes)

	require.True(testInstance, strings.HasPrefix(script, "#!/bin/bash\n"))
	require.Contains(testInstance, script, "# Workflow configuration name: main\n")
	require.Contains(testInstance, script, "\n# Test Vsftpd (not macro-expanded, no -alltypes)\n")
	require.Contains(testInstance, script, options.BenchmarksDirectory)
	require.Contains(testInstance, script, filepath.Join(options.BuildDirectory, "bin", "3c"))

	// Every workflow environment placeholder must have been substituted.
	require.NotContains(testInstance, script, "${{")
}

func TestGenerateLocalScriptExtraToolResolution(testInstance *testing.T) {
	options := localScriptFixture(testInstance)
	options.Benchmarks = []string{"lua"}

	require.NoError(testInstance, workflow.GenerateLocalScript(options, zap.NewNop()))
	defaultScriptBytes, readError := os.ReadFile(options.OutputPath)
	require.NoError(testInstance, readError)
	require.Contains(testInstance, string(defaultScriptBytes), "clang-rename")
	require.NotContains(testInstance, string(defaultScriptBytes),
		filepath.Join(options.BuildDirectory, "bin", "clang-rename"))

	options.UseBuiltExtraTools = true
	require.NoError(testInstance, workflow.GenerateLocalScript(options, zap.NewNop()))
	builtScriptBytes, readError := os.ReadFile(options.OutputPath)
	require.NoError(testInstance, readError)
	require.Contains(testInstance, string(builtScriptBytes),
		filepath.Join(options.BuildDirectory, "bin", "clang-rename"))
}

func TestGenerateLocalScriptBenchmarkFilter(testInstance *testing.T) {
	options := localScriptFixture(testInstance)
	options.Benchmarks = []string{"vsftpd"}
	options.Subvariants = []string{"no_expand_macros_no_alltypes"}

	require.NoError(testInstance, workflow.GenerateLocalScript(options, zap.NewNop()))

	scriptBytes, readError := os.ReadFile(options.OutputPath)
	require.NoError(testInstance, readError)
	script := string(scriptBytes)

	require.Contains(testInstance, script, "# Test Vsftpd (not macro-expanded, no -alltypes)")
	require.NotContains(testInstance, script, "# Test Vsftpd (macro-expanded")
	require.NotContains(testInstance, script, "Parson")
}

func TestGenerateLocalScriptValidatesPathsBeforeWriting(testInstance *testing.T) {
	options := localScriptFixture(testInstance)
	missingDirectory := filepath.Join(testInstance.TempDir(), "missing")
	options.BenchmarksDirectory = missingDirectory

	generationError := workflow.GenerateLocalScript(options, zap.NewNop())
	require.EqualError(testInstance, generationError, missingDirectory+" does not exist")

	_, statError := os.Stat(options.OutputPath)
	require.True(testInstance, os.IsNotExist(statError))
}

func TestGenerateLocalScriptUnknownConfiguration(testInstance *testing.T) {
	options := localScriptFixture(testInstance)
	options.ConfigurationName = "nonexistent"

	generationError := workflow.GenerateLocalScript(options, zap.NewNop())
	require.EqualError(testInstance, generationError, `no such workflow configuration "nonexistent"`)
}
