package scrub

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultConfigPath is used when no configuration path is given.
const DefaultConfigPath = ".tscrub.yaml"

// Config mirrors the on-disk configuration file. Patterns are ordered;
// declaration order breaks ties between overlapping matches. Unrecognized
// keys are ignored.
type Config struct {
	Matches     []string `yaml:"matches"`
	ReplaceWith string   `yaml:"replace_with"`
}

// ParseConfigurationFile loads a Config from the given yaml file.
func ParseConfigurationFile(configurationPath string) (Config, error) {
	if configurationPath == "" {
		configurationPath = DefaultConfigPath
	}

	var config Config
	f, err := os.Open(configurationPath)
	if err != nil {
		return config, fmt.Errorf("failed to open configuration file: %w", err)
	}
	defer f.Close()

	if err := yaml.NewDecoder(f).Decode(&config); err != nil {
		return config, fmt.Errorf("failed to parse configuration file: %w", err)
	}
	return config, nil
}
