// Package list builds the subcommand that prints the benchmark table and
// the subvariant identifiers accepted by the local command's filters.
package list

import (
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/mwhicks1/3c-actions/internal/utils/flags"
)

const (
	commandUseConstant              = "list"
	commandShortDescriptionConstant = "List benchmarks and subvariant names"
	commandLongDescriptionConstant  = "list prints the benchmark catalog and, per workflow configuration, the subvariant identifiers usable with the local command's --benchmark and --subvariant filters."

	configurationFlagNameConstant  = "workflow-config"
	configurationFlagUsageConstant = "Limit the subvariant listing to one workflow configuration."
)

var (
	benchmarkTableHeaders  = []string{"Name", "Friendly Name", "Directory", "Components"}
	subvariantTableHeaders = []string{"Configuration", "Subvariant", "Label"}
)

// CommandBuilder assembles the list command.
type CommandBuilder struct{}

// Build constructs the list command.
func (builder *CommandBuilder) Build() *cobra.Command {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		RunE:  builder.run,
	}
	command.Flags().String(configurationFlagNameConstant, "", configurationFlagUsageConstant)
	return command
}

func (builder *CommandBuilder) run(command *cobra.Command, _ []string) error {
	configurationName, _, _ := flags.StringFlag(command, configurationFlagNameConstant)

	benchmarkTable := tablewriter.NewWriter(command.OutOrStdout())
	benchmarkTable.SetAutoFormatHeaders(false)
	benchmarkTable.SetHeader(benchmarkTableHeaders)
	benchmarkTable.AppendBulk(benchmarkRows())
	benchmarkTable.Render()

	subvariantTable := tablewriter.NewWriter(command.OutOrStdout())
	subvariantTable.SetAutoFormatHeaders(false)
	subvariantTable.SetHeader(subvariantTableHeaders)
	subvariantTable.SetAutoMergeCells(true)
	subvariantTable.SetRowLine(true)
	subvariantTable.AppendBulk(subvariantRows(configurationName))
	subvariantTable.Render()

	return nil
}
