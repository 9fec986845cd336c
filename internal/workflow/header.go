package workflow

import (
	"fmt"
	"strings"

	"github.com/mwhicks1/3c-actions/internal/benchmarks"
)

const (
	workflowNamePlaceholderConstant    = "{workflow.name}"
	scheduleTriggerPlaceholderConstant = "{optional_schedule_trigger}"
	ninjaCommandPlaceholderConstant    = "{ninja_std}"

	scheduleTriggerTemplateConstant = "  # Run every day at the following time.\n  schedule:\n    - cron: \"%s\"\n"
)

// workflowHeaderTemplateConstant is the fixed preamble of every generated
// workflow file: triggers, shared environment variables, and the three
// leading jobs (cleanup, conversion-tool build with the up-to-date
// self-check, regression tests). The curly-brace placeholders above are
// substituted per configuration; ${{...}} expressions are left for the
// workflow engine.
const workflowHeaderTemplateConstant = `# This file is generated by 3c-actions. To update this file, update the
# generator instead and re-run it. Some things in this file are explained by
# comments in the generator source.

name: {workflow.name}

on:
{optional_schedule_trigger}  workflow_dispatch:
    inputs:
      branch:
        description: "Branch or commit ID of correctcomputation/checkedc-clang to run workflow on"
        required: true
        default: "main"

env:
  benchmark_tar_dir: "/home/github/checkedc-benchmarks"
  builddir: "${{github.workspace}}/b/ninja"
  benchmark_conv_dir: "${{github.workspace}}/benchmark_conv"
  branch_for_scheduled_run: "main"
  port_tools: "${{github.workspace}}/depsfolder/checkedc-clang/clang/tools/3c/utils/port_tools"
  clang_rename: "clang-rename-10"
  actions_repo: "${{github.workspace}}/depsfolder/actions"

jobs:

  # Cleanup files left behind by prior runs
  clean:
    name: Clean
    runs-on: self-hosted
    steps:
      - name: Clean
        run: |
          rm -rf ${{env.benchmark_conv_dir}}
          mkdir -p ${{env.benchmark_conv_dir}}
          rm -rf ${{env.builddir}}
          mkdir -p ${{env.builddir}}
          rm -rf ${{github.workspace}}/depsfolder
          mkdir -p ${{github.workspace}}/depsfolder

  # Clone and build 3c and clang
  # (clang is needed to test compilation of converted benchmarks.)
  build_3c:
    name: Build 3c and clang
    needs: clean
    runs-on: self-hosted
    steps:
      - name: Check out the actions repository
        uses: actions/checkout@v2
        with:
          path: depsfolder/actions
      - name: Check that the workflow file is up to date with the generator before running it
        run: |
          cd ${{github.workspace}}/depsfolder/actions
          go run .
          git diff --exit-code

      - name: Branch or commit ID
        run: echo "${{ github.event.inputs.branch || env.branch_for_scheduled_run }}"
      - name: Check out the 3C repository and the Checked C system headers
        run: |
          git init ${{github.workspace}}/depsfolder/checkedc-clang
          cd ${{github.workspace}}/depsfolder/checkedc-clang
          git remote add origin https://github.com/correctcomputation/checkedc-clang
          git fetch --depth 1 origin "${{ github.event.inputs.branch || env.branch_for_scheduled_run }}"
          git checkout FETCH_HEAD
          # As of 2021-04-12, we're using CCI's checkedc repository because it
          # has a checked declaration for syslog that we want to use for our
          # experiments but have not yet submitted to Microsoft.
          git clone --depth 1 https://github.com/correctcomputation/checkedc ${{github.workspace}}/depsfolder/checkedc-clang/llvm/projects/checkedc-wrapper/checkedc

      - name: Build 3c and clang
        run: |
          cd ${{env.builddir}}
          # We'll be running the tools enough that it's worth spending the extra
          # time for an optimized build, and the easiest way to do that is to
          # use a "release" build. But we do want assertions and we do want
          # debug info in order to get symbols in assertion stack traces, so we
          # use -DLLVM_ENABLE_ASSERTIONS=ON and the RelWithDebInfo build type,
          # respectively. Furthermore, the tools rely on the llvm-symbolizer
          # helper program to actually read the debug info and generate the
          # symbolized stack trace when an assertion failure occurs. We could
          # build it here, but as of 2021-03-15, we just use Ubuntu's version
          # installed systemwide; it seems that llvm-symbolizer is a generic
          # tool and the difference in versions does not matter.
          cmake -G Ninja \
            -DLLVM_TARGETS_TO_BUILD=X86 \
            -DCMAKE_BUILD_TYPE="RelWithDebInfo" \
            -DLLVM_ENABLE_ASSERTIONS=ON \
            -DLLVM_OPTIMIZED_TABLEGEN=ON \
            -DLLVM_USE_SPLIT_DWARF=ON \
            -DLLVM_ENABLE_PROJECTS="clang" \
            ${{github.workspace}}/depsfolder/checkedc-clang/llvm
          {ninja_std} 3c clang
          chmod -R 777 ${{github.workspace}}/depsfolder
          chmod -R 777 ${{env.builddir}}

  # Run Test for 3C
  test_3c:
    name: 3C regression tests
    needs: build_3c
    runs-on: self-hosted
    steps:
      - name: 3C regression tests
        run: |
          cd ${{env.builddir}}
          {ninja_std} check-3c

  # Convert our benchmark programs
`

// renderWorkflowHeader substitutes the per-configuration placeholders into
// the workflow preamble.
func renderWorkflowHeader(configuration Configuration) string {
	scheduleTrigger := ""
	if configuration.CronSchedule != "" {
		scheduleTrigger = fmt.Sprintf(scheduleTriggerTemplateConstant, configuration.CronSchedule)
	}
	replacer := strings.NewReplacer(
		workflowNamePlaceholderConstant, configuration.FriendlyName,
		scheduleTriggerPlaceholderConstant, scheduleTrigger,
		ninjaCommandPlaceholderConstant, benchmarks.NinjaStandardCommand,
	)
	return replacer.Replace(workflowHeaderTemplateConstant)
}
