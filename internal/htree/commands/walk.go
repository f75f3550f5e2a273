package commands

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/gingerrexayers/htree-go/internal/htree/lib"
	"github.com/gingerrexayers/htree-go/internal/htree/types"
	"github.com/hashicorp/go-multierror"
)

// WalkOptions tunes a directory walk.
type WalkOptions struct {
	HashOptions
	// Threads is the number of tree tasks used for each file.
	Threads int
	// Workers is the number of files fingerprinted at the same time.
	Workers int
}

// fileResult holds the outcome of fingerprinting one file in a worker.
type fileResult struct {
	FilePath string
	Result   types.Result
	Err      error
}

// findAllFiles walks rootDir and returns every regular file that is not
// excluded by the ignore rules.
func findAllFiles(rootDir string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(rootDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == rootDir {
			return nil
		}

		if lib.IsPathIgnored(rootDir, path) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.Type().IsRegular() {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// fingerprintConcurrently runs a pool of workers, each fingerprinting one
// file at a time. All failures are collected.
func fingerprintConcurrently(ctx context.Context, files []string, opts WalkOptions) ([]types.FileFingerprint, error) {
	jobs := make(chan string, len(files))
	results := make(chan fileResult, len(files))

	numWorkers := opts.Workers
	if numWorkers <= 0 {
		numWorkers = 1
	}

	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for filePath := range jobs {
				res, err := FingerprintFile(ctx, filePath, opts.Threads, opts.HashOptions)
				results <- fileResult{FilePath: filePath, Result: res, Err: err}
			}
		}()
	}

	for _, file := range files {
		jobs <- file
	}
	close(jobs)

	wg.Wait()
	close(results)

	var errs *multierror.Error
	fingerprints := make([]types.FileFingerprint, 0, len(files))
	for res := range results {
		if res.Err != nil {
			errs = multierror.Append(errs, res.Err)
			continue
		}
		fingerprints = append(fingerprints, types.FileFingerprint{
			Path:        res.FilePath,
			Size:        res.Result.Plan.FileSize,
			Fingerprint: res.Result.Fingerprint,
		})
	}

	sort.Slice(fingerprints, func(i, j int) bool {
		return fingerprints[i].Path < fingerprints[j].Path
	})
	return fingerprints, errs.ErrorOrNil()
}

// Walk is the main function for the 'walk' command. It fingerprints every
// non-ignored file below targetDirectory and prints one line per file.
func Walk(ctx context.Context, targetDirectory string, opts WalkOptions) ([]types.FileFingerprint, error) {
	absTargetPath, err := filepath.Abs(targetDirectory)
	if err != nil {
		return nil, fmt.Errorf("could not resolve absolute path for %s: %w", targetDirectory, err)
	}
	if _, err := os.Stat(absTargetPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("target directory does not exist: %s", absTargetPath)
	}
	if opts.Threads <= 0 {
		return nil, fmt.Errorf("%w: got %d", lib.ErrInvalidThreadCount, opts.Threads)
	}

	files, err := findAllFiles(absTargetPath)
	if err != nil {
		return nil, fmt.Errorf("error finding files: %w", err)
	}
	if opts.Logger != nil {
		opts.Logger.WithField("files", len(files)).Debug("walk found files")
	}

	fingerprints, err := fingerprintConcurrently(ctx, files, opts)
	if err != nil {
		return fingerprints, fmt.Errorf("error fingerprinting files: %w", err)
	}

	if len(fingerprints) == 0 {
		fmt.Printf("No files found in \"%s\".\n", absTargetPath)
		return fingerprints, nil
	}

	var total int64
	fmt.Printf("Fingerprints for \"%s\" (%d threads per file):\n", absTargetPath, opts.Threads)
	fmt.Printf("%-12s %-12s %s\n", "FINGERPRINT", "SIZE", "PATH")
	fmt.Printf("%-12s %-12s %s\n", "==========", "==========", "====")
	for _, f := range fingerprints {
		rel, err := filepath.Rel(absTargetPath, f.Path)
		if err != nil {
			rel = f.Path
		}
		fmt.Printf("%-12d %-12s %s\n", f.Fingerprint, formatBytes(f.Size, 2), filepath.ToSlash(rel))
		total += f.Size
	}
	fmt.Printf("\nTotal size of all files: %s\n", formatBytes(total, 2))

	return fingerprints, nil
}
