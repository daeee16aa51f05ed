package cmd

import (
	"fmt"

	"os"

	"github.com/scrublabs/tscrub/scrub"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// initCmd: tscrub init
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new scrubber configuration file",
	Run: func(cmd *cobra.Command, args []string) {
		if err := initConfigurationFile(cfgFile); err != nil {
			logger.Error("Error initializing config file", zap.Error(err))
			return
		}
		fmt.Printf("Configuration file created/updated: %s\n", cfgFile)
	},
}

func initConfigurationFile(configurationPath string) error {
	if configurationPath == "" {
		configurationPath = scrub.DefaultConfigPath
	}

	// Create a yaml file with an empty pattern set
	config := scrub.Config{
		Matches:     []string{},
		ReplaceWith: "",
	}
	d, err := yaml.Marshal(config)
	if err != nil {
		return err
	}

	f, err := os.Create(configurationPath)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.Write(d)
	if err != nil {
		return err
	}

	return nil
}
