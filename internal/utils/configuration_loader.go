package utils

import (
	"errors"
	"strings"

	mapstructure "github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

const (
	configurationTagNameConstant = "mapstructure"
)

// ConfigurationLoader reads layered application configuration: defaults,
// then an optional configuration file found on the search paths, then
// environment variables carrying the configured prefix.
type ConfigurationLoader struct {
	EnvironmentPrefix string
	ConfigurationName string
	ConfigurationType string
	SearchPaths       []string
}

// NewConfigurationLoader returns a loader for the provided environment
// prefix, file name, file type, and ordered search paths.
func NewConfigurationLoader(environmentPrefix string, configurationName string, configurationType string, searchPaths []string) *ConfigurationLoader {
	return &ConfigurationLoader{
		EnvironmentPrefix: environmentPrefix,
		ConfigurationName: configurationName,
		ConfigurationType: configurationType,
		SearchPaths:       searchPaths,
	}
}

// LoadConfiguration merges defaults, the first configuration file found on
// the search paths (or the explicit file path when provided), and
// environment overrides into target. It returns the configuration file used,
// empty when none was found.
func (loader *ConfigurationLoader) LoadConfiguration(explicitFilePath string, defaults map[string]any, target any) (string, error) {
	viperInstance := viper.New()
	viperInstance.SetEnvPrefix(loader.EnvironmentPrefix)
	viperInstance.SetEnvKeyReplacer(environmentKeyReplacer())
	viperInstance.AutomaticEnv()

	for defaultKey, defaultValue := range defaults {
		viperInstance.SetDefault(defaultKey, defaultValue)
	}

	if explicitFilePath != "" {
		viperInstance.SetConfigFile(explicitFilePath)
		if readError := viperInstance.ReadInConfig(); readError != nil {
			return "", readError
		}
	} else {
		viperInstance.SetConfigName(loader.ConfigurationName)
		viperInstance.SetConfigType(loader.ConfigurationType)
		for _, searchPath := range loader.SearchPaths {
			viperInstance.AddConfigPath(searchPath)
		}
		if readError := viperInstance.ReadInConfig(); readError != nil {
			var configFileNotFound viper.ConfigFileNotFoundError
			if !errors.As(readError, &configFileNotFound) {
				return "", readError
			}
		}
	}

	if decodeError := decodeSettings(viperInstance.AllSettings(), target); decodeError != nil {
		return "", decodeError
	}
	return viperInstance.ConfigFileUsed(), nil
}

func environmentKeyReplacer() *strings.Replacer {
	return strings.NewReplacer(".", "_")
}

func decodeSettings(settings map[string]any, target any) error {
	decoder, decoderError := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          configurationTagNameConstant,
		Result:           target,
		WeaklyTypedInput: true,
	})
	if decoderError != nil {
		return decoderError
	}
	return decoder.Decode(settings)
}
