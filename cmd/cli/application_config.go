package cli

// ApplicationConfiguration describes the persisted configuration for the
// CLI entrypoint. Everything here is optional: the generator runs with
// built-in defaults when no configuration file exists.
type ApplicationConfiguration struct {
	Common ApplicationCommonConfiguration `mapstructure:"common"`
	Local  ApplicationLocalConfiguration  `mapstructure:"local"`
}

// ApplicationCommonConfiguration stores logging defaults shared across
// commands.
type ApplicationCommonConfiguration struct {
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
}

// ApplicationLocalConfiguration stores default paths for the local
// subcommand so frequent users do not have to repeat them as flags.
type ApplicationLocalConfiguration struct {
	SourceDirectory     string `mapstructure:"source_dir"`
	BuildDirectory      string `mapstructure:"build_dir"`
	BenchmarksDirectory string `mapstructure:"benchmarks_dir"`
	WorkDirectory       string `mapstructure:"work_dir"`
}

func defaultConfigurationValues() map[string]any {
	return map[string]any{
		commonLogLevelConfigKeyConstant:  defaultLogLevelConstant,
		commonLogFormatConfigKeyConstant: defaultLogFormatConstant,
	}
}
