package commands

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/gingerrexayers/htree-go/internal/htree/lib"
	"github.com/gingerrexayers/htree-go/internal/htree/types"
	"github.com/sirupsen/logrus"
)

// HashOptions tunes a single-file fingerprint run.
type HashOptions struct {
	BlockSize      int64
	CoverRemainder bool
	MaxTasks       int
	Logger         logrus.FieldLogger
	Metrics        *lib.Metrics
}

func (o HashOptions) engineOptions() lib.Options {
	return lib.Options{
		BlockSize:      o.BlockSize,
		CoverRemainder: o.CoverRemainder,
		MaxTasks:       o.MaxTasks,
		Logger:         o.Logger,
		Metrics:        o.Metrics,
	}
}

// FingerprintFile maps filePath and fingerprints it with numThread tasks.
func FingerprintFile(ctx context.Context, filePath string, numThread int, opts HashOptions) (types.Result, error) {
	if numThread <= 0 {
		return types.Result{}, fmt.Errorf("%w: got %d", lib.ErrInvalidThreadCount, numThread)
	}

	m, err := lib.OpenMapping(filePath)
	if err != nil {
		return types.Result{}, fmt.Errorf("open %s: %w", filePath, err)
	}
	defer m.Close()

	res, err := lib.FingerprintBuffer(ctx, m.Bytes(), numThread, opts.engineOptions())
	if err != nil {
		return types.Result{}, fmt.Errorf("hash %s: %w", filePath, err)
	}
	return res, nil
}

// Hash is the main function for the 'hash' command. It fingerprints one
// file and prints the block split, the fingerprint and the time taken.
func Hash(ctx context.Context, filePath string, numThread int, opts HashOptions) error {
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return fmt.Errorf("could not resolve absolute path for %s: %w", filePath, err)
	}

	res, err := FingerprintFile(ctx, absPath, numThread, opts)
	if err != nil {
		return err
	}

	if opts.Logger != nil {
		opts.Logger.WithFields(logrus.Fields{
			"file":       absPath,
			"size":       formatBytes(res.Plan.FileSize, 2),
			"chunk_size": res.Plan.ChunkSize,
			"covered":    res.Plan.Covered(),
		}).Debug("fingerprint computed")
		if !opts.CoverRemainder && res.Plan.Covered() < res.Plan.FileSize {
			opts.Logger.WithField("bytes", res.Plan.FileSize-res.Plan.Covered()).
				Debug("trailing bytes not assigned to any task")
		}
	}

	fmt.Printf(" no. of blocks = %d \n", res.Plan.NumBlocks)
	fmt.Printf("Blocks per thread: %d \n", res.Plan.BlocksPerThread)
	fmt.Printf("hash value = %d \n", res.Fingerprint)
	fmt.Printf("time taken = %f \n", res.Elapsed.Seconds())
	return nil
}
