package list

import (
	"github.com/mwhicks1/3c-actions/internal/workflow"
)

func benchmarkRows() [][]string {
	return workflow.BenchmarkRows()
}

// subvariantRows returns the subvariant listing, optionally limited to one
// configuration name. An unknown name simply yields no rows.
func subvariantRows(configurationName string) [][]string {
	allRows := workflow.SubvariantRows()
	if configurationName == "" {
		return allRows
	}
	filteredRows := make([][]string, 0, len(allRows))
	for _, row := range allRows {
		if row[0] == configurationName {
			filteredRows = append(filteredRows, row)
		}
	}
	return filteredRows
}
