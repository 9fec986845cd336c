package workflow

import (
	"errors"
	"fmt"
	"strings"
)

const (
	workflowStepIndentConstant       = "      "
	workflowStepBodyIndentConstant   = "  "
	workflowStepNameTemplateConstant = "- name: %s\n"
	runStepBodyPrefixConstant        = "run: |\n"
	actionStepBodyTemplateConstant   = "uses: %s\nwith:\n"
	actionArgumentTemplateConstant   = "%s: %s\n"
	localStepTemplateConstant        = "\n## %s\n%s"
)

// ErrActionStepNotLocal reports an attempt to render an action step into a
// local script. There is no local equivalent of the CI artifact-upload
// mechanism, so the renderer refuses rather than silently dropping the step.
var ErrActionStepNotLocal = errors.New("action steps are not representable in a local script")

// Step is one abstract unit of execution inside a benchmark job. The set of
// implementations is closed: RunStep and ActionStep. Steps are assembled in
// order and never reordered or mutated afterwards.
type Step interface {
	Name() string
	// FormatWorkflow renders the step as a workflow job entry, indented
	// for inclusion under a job's `steps:` key, ending with a newline.
	FormatWorkflow() string
	// FormatLocal renders the step as a local script fragment.
	FormatLocal() (string, error)
}

// RunStep executes a multi-line shell fragment.
type RunStep struct {
	StepName string
	// Run carries a trailing newline but no trailing blank line.
	Run string
}

// Name returns the step's display name.
func (step RunStep) Name() string { return step.StepName }

// FormatWorkflow renders the step as a named `run:` block.
func (step RunStep) FormatWorkflow() string {
	body := runStepBodyPrefixConstant + indentLines(step.Run, workflowStepBodyIndentConstant)
	return formatWorkflowStep(step.StepName, body)
}

// FormatLocal renders the step as a commented section header followed by
// its raw shell body.
func (step RunStep) FormatLocal() (string, error) {
	return fmt.Sprintf(localStepTemplateConstant, step.StepName, step.Run), nil
}

// ActionArgument is one key/value parameter of an external action
// invocation. Arguments are an ordered sequence so rendered output is
// deterministic.
type ActionArgument struct {
	Key   string
	Value string
}

// ActionStep invokes a named external action with key/value arguments.
type ActionStep struct {
	StepName   string
	ActionName string
	Arguments  []ActionArgument
}

// Name returns the step's display name.
func (step ActionStep) Name() string { return step.StepName }

// FormatWorkflow renders the step as a `uses:`/`with:` block.
func (step ActionStep) FormatWorkflow() string {
	formattedArguments := strings.Builder{}
	for _, argument := range step.Arguments {
		formattedArguments.WriteString(fmt.Sprintf(actionArgumentTemplateConstant, argument.Key, argument.Value))
	}
	body := fmt.Sprintf(actionStepBodyTemplateConstant, step.ActionName) +
		indentLines(formattedArguments.String(), workflowStepBodyIndentConstant)
	return formatWorkflowStep(step.StepName, body)
}

// FormatLocal always fails: uploads have no local analogue.
func (step ActionStep) FormatLocal() (string, error) {
	return "", ErrActionStepNotLocal
}

func formatWorkflowStep(stepName string, body string) string {
	entry := fmt.Sprintf(workflowStepNameTemplateConstant, stepName) +
		indentLines(body, workflowStepBodyIndentConstant)
	return indentLines(entry, workflowStepIndentConstant)
}

// indentLines prefixes every line containing non-whitespace characters,
// leaving blank lines untouched.
func indentLines(text string, prefix string) string {
	if len(text) == 0 {
		return text
	}
	lines := strings.SplitAfter(text, "\n")
	builder := strings.Builder{}
	for _, line := range lines {
		if strings.TrimSpace(line) != "" {
			builder.WriteString(prefix)
		}
		builder.WriteString(line)
	}
	return builder.String()
}
