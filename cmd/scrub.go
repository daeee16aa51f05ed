package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/scrublabs/tscrub/formatter"
	"github.com/scrublabs/tscrub/internal"
	tt "github.com/scrublabs/tscrub/internal/types"
	"github.com/scrublabs/tscrub/scrub"
)

var (
	writeFiles      bool
	scrubJsonOutput bool
	outPath         string
)

var scrubCmd = &cobra.Command{
	Use:   "scrub [paths...]",
	Short: "Rewrite matching string literals",
	Long: `Scans every string literal in the given files or directories for the
configured patterns and reports each rewrite. Without --write this is a dry
run; with --write the files are rewritten in place.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Println("error: Please provide file or directory paths")
			os.Exit(1)
		}

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		engine, err := scrub.New(cfgFile)
		if err != nil {
			logger.Fatal("Failed to initialize scrub engine", zap.Error(err))
		}

		runScrubProcess(ctx, logger, engine, args, writeFiles, scrubJsonOutput, outPath)
	},
}

func init() {
	scrubCmd.Flags().BoolVarP(&writeFiles, "write", "w", false, "Rewrite files in place instead of dry-run reporting")
	scrubCmd.Flags().BoolVar(&scrubJsonOutput, "json", false, "Output changes in JSON format")
	scrubCmd.Flags().StringVarP(&outPath, "output", "o", "", "Output path (when using JSON)")
}

func runScrubProcess(ctx context.Context, logger *zap.Logger, engine scrub.ScrubEngine, paths []string, write, isJson bool, jsonOutput string) {
	results, err := scrub.ProcessFiles(ctx, logger, engine, paths)
	if err != nil {
		logger.Error("Error processing files", zap.Error(err))
		os.Exit(1)
	}

	// report against the on-disk content before rewriting anything
	printChanges(logger, results, isJson, jsonOutput)

	changed := 0
	for _, result := range results {
		if len(result.Changes) == 0 {
			continue
		}
		changed++
		if write {
			if err := os.WriteFile(result.Filename, result.Output, 0o644); err != nil {
				logger.Error("Error writing file", zap.String("file", result.Filename), zap.Error(err))
				os.Exit(1)
			}
		}
	}

	if write && changed > 0 {
		fmt.Printf("Rewrote %d file(s)\n", changed)
	}
}

func printChanges(logger *zap.Logger, results []scrub.FileResult, isJson bool, jsonOutput string) {
	changesByFile := make(map[string][]tt.Change)
	for _, result := range results {
		if len(result.Changes) > 0 {
			changesByFile[result.Filename] = append(changesByFile[result.Filename], result.Changes...)
		}
	}

	sortedFiles := make([]string, 0, len(changesByFile))
	for filename := range changesByFile {
		sortedFiles = append(sortedFiles, filename)
	}
	sort.Strings(sortedFiles)

	if !isJson {
		// text output
		for _, filename := range sortedFiles {
			fileChanges := changesByFile[filename]
			sourceCode, err := internal.ReadSourceCode(filename)
			if err != nil {
				logger.Error("Error reading source file", zap.String("file", filename), zap.Error(err))
				continue
			}
			output := formatter.GenerateFormattedChanges(fileChanges, sourceCode)
			fmt.Println(output)
		}
		return
	}

	// JSON output
	d, err := json.Marshal(changesByFile)
	if err != nil {
		logger.Error("Error marshalling changes to JSON", zap.Error(err))
		return
	}
	if jsonOutput == "" {
		fmt.Println(string(d))
		return
	}
	f, err := os.Create(jsonOutput)
	if err != nil {
		logger.Error("Error creating JSON output file", zap.Error(err))
		return
	}
	defer f.Close()
	if _, err := f.Write(d); err != nil {
		logger.Error("Error writing JSON output file", zap.Error(err))
	}
}
