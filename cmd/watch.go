package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/scrublabs/tscrub/internal"
	"github.com/scrublabs/tscrub/scrub"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var watchWrite bool

var watchCmd = &cobra.Command{
	Use:   "watch [dirs...]",
	Short: "Watch directories and scrub files as they change",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Println("error: Please provide directory paths")
			os.Exit(1)
		}

		config, err := scrub.ParseConfigurationFile(cfgFile)
		if err != nil {
			logger.Fatal("Failed to load configuration", zap.Error(err))
		}
		engine, err := internal.NewEngine(config.Matches, config.ReplaceWith)
		if err != nil {
			logger.Fatal("Failed to initialize scrub engine", zap.Error(err))
		}

		watcher, err := internal.NewWatcher(engine, logger, args, watchWrite)
		if err != nil {
			logger.Fatal("Failed to create watcher", zap.Error(err))
		}
		if err := watcher.StartWatching(); err != nil {
			logger.Fatal("Failed to start watching", zap.Error(err))
		}
		defer watcher.StopWatching()

		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig
	},
}

func init() {
	watchCmd.Flags().BoolVarP(&watchWrite, "write", "w", false, "Rewrite changed files in place")
}
