package scrub

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/schollz/progressbar/v3"
	"github.com/scrublabs/tscrub/internal"
	tt "github.com/scrublabs/tscrub/internal/types"
	"go.uber.org/zap"
)

// ScrubEngine abstracts the rewrite engine for processing helpers and tests.
type ScrubEngine interface {
	Run(filePath string) ([]byte, []tt.Change, error)
	RunSource(source []byte) ([]byte, []tt.Change, error)
}

// New builds an engine from the configuration file at the given path.
// Pattern compilation happens here, once; an invalid pattern aborts the
// whole transform before any file is touched.
func New(configurationPath string) (*internal.Engine, error) {
	config, err := ParseConfigurationFile(configurationPath)
	if err != nil {
		return nil, err
	}
	return NewFromConfig(config)
}

// NewFromConfig builds an engine directly from an in-memory Config.
func NewFromConfig(config Config) (*internal.Engine, error) {
	return internal.NewEngine(config.Matches, config.ReplaceWith)
}

// FileResult holds the outcome of processing one file.
type FileResult struct {
	Filename string
	Output   []byte
	Changes  []tt.Change
}

// ProcessFile runs the engine over a single file.
func ProcessFile(engine ScrubEngine, filePath string) (FileResult, error) {
	output, changes, err := engine.Run(filePath)
	if err != nil {
		return FileResult{}, fmt.Errorf("error scrubbing %s: %w", filePath, err)
	}
	return FileResult{Filename: filePath, Output: output, Changes: changes}, nil
}

// ProcessFiles runs the engine over every given path, recursing into
// directories, and returns the per-file results in no particular order.
func ProcessFiles(
	ctx context.Context,
	logger *zap.Logger,
	engine ScrubEngine,
	paths []string,
) ([]FileResult, error) {
	var allResults []FileResult
	for _, path := range paths {
		results, err := ProcessPath(ctx, logger, engine, path)
		if err != nil {
			if logger != nil {
				logger.Error("Error processing path", zap.String("path", path), zap.Error(err))
			}
			return nil, err
		}
		allResults = append(allResults, results...)
	}
	return allResults, nil
}

// ProcessPath processes one file or directory. Directories are fanned out
// across a bounded worker pool; the compiled pattern set is shared
// read-only, so the rewrites are independent.
func ProcessPath(
	ctx context.Context,
	logger *zap.Logger,
	engine ScrubEngine,
	path string,
) ([]FileResult, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("error accessing %s: %w", path, err)
	}

	if !info.IsDir() {
		result, err := ProcessFile(engine, path)
		if err != nil {
			return nil, err
		}
		return []FileResult{result}, nil
	}

	var files []string
	err = filepath.Walk(path, func(filePath string, fileInfo os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !fileInfo.IsDir() && hasDesiredExtension(filePath) {
			files = append(files, filePath)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error walking directory %s: %w", path, err)
	}

	resultChan := make(chan FileResult, len(files))
	errorChan := make(chan error, len(files))

	// limit the number of workers
	maxWorkers := runtime.NumCPU()
	sem := make(chan struct{}, maxWorkers)

	bar := progressbar.NewOptions(len(files),
		progressbar.OptionSetDescription(path),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))

	var wg sync.WaitGroup
	for _, file := range files {
		select {
		case <-ctx.Done():
			wg.Wait()
			return nil, ctx.Err()
		default:
		}

		wg.Add(1)
		sem <- struct{}{}
		go func(file string) {
			defer wg.Done()
			defer func() { <-sem }()

			result, err := ProcessFile(engine, file)
			if err != nil {
				errorChan <- err
			} else {
				resultChan <- result
			}
			_ = bar.Add(1)
		}(file)
	}

	wg.Wait()
	close(resultChan)
	close(errorChan)

	for err := range errorChan {
		if logger != nil {
			logger.Error("Error processing file", zap.Error(err))
		}
		return nil, err
	}

	var results []FileResult
	for result := range resultChan {
		results = append(results, result)
	}
	return results, nil
}

func hasDesiredExtension(path string) bool {
	return filepath.Ext(path) == ".go"
}
