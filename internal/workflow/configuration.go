package workflow

// Configuration names one generated workflow artifact: its output file,
// display title, the variants it iterates, and its trigger/stats options.
type Configuration struct {
	FileName     string
	FriendlyName string
	Variants     []Variant
	// CronSchedule, when set, adds a scheduled trigger. If multiple
	// workflows are scheduled their times need to be well-separated so
	// runs on the self-hosted machine do not overlap.
	CronSchedule  string
	GenerateStats bool
}

var configurations = []Configuration{
	{
		FileName:     "main",
		FriendlyName: "3C benchmark tests",
		Variants: []Variant{
			{AllTypes: false},
			{AllTypes: true},
		},
		CronSchedule: "0 5 * * *",
	},
	{
		FileName:     "exhaustivestats",
		FriendlyName: "Exhaustive testing and Performance Stats",
		Variants: []Variant{
			{AllTypes: false},
			{AllTypes: true},
		},
		GenerateStats: true,
	},
	{
		FileName:     "exhaustiveleastgreatest",
		FriendlyName: "Exhaustive testing and Performance Stats (Least and Greatest)",
		Variants: []Variant{
			{
				AllTypes:           true,
				Extra3CArguments:   []string{"-only-g-sol"},
				FriendlyNameSuffix: ", greatest solution",
				IsComparative:      true,
			},
			{
				AllTypes:           true,
				Extra3CArguments:   []string{"-only-l-sol"},
				FriendlyNameSuffix: ", least solution",
				IsComparative:      true,
			},
		},
		GenerateStats: true,
	},
	{
		FileName:     "exhaustiveccured",
		FriendlyName: "Exhaustive testing and Performance Stats (CCured)",
		Variants: []Variant{
			{
				AllTypes:           true,
				Extra3CArguments:   []string{"-disable-rds"},
				FriendlyNameSuffix: ", CCured solution",
				IsComparative:      true,
			},
			{
				AllTypes:           true,
				Extra3CArguments:   []string{"-disable-fnedgs"},
				FriendlyNameSuffix: ", FuncRevEdges solution",
				IsComparative:      true,
			},
		},
		GenerateStats: true,
	},
}

// Configurations returns the ordered workflow configuration table.
func Configurations() []Configuration {
	return configurations
}

// LookupConfiguration returns the configuration with the provided output
// identifier.
func LookupConfiguration(configurationName string) (Configuration, bool) {
	for _, configuration := range configurations {
		if configuration.FileName == configurationName {
			return configuration, true
		}
	}
	return Configuration{}, false
}
