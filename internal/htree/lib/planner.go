package lib

import (
	"fmt"

	"github.com/gingerrexayers/htree-go/internal/htree/types"
)

// DefaultBlockSize is the block granularity used to split a file between
// threads.
const DefaultBlockSize = 4096

// PlanChunks computes how fileSize bytes are divided between numThread
// tasks. The file is measured in blocks of blockSize bytes (rounded up) and
// every task receives the same whole number of blocks. Blocks left over by
// the integer division are not assigned to any task. A blockSize of 0 or
// less selects DefaultBlockSize.
//
// The returned ChunkSize is 0 when numThread exceeds the number of blocks.
func PlanChunks(fileSize, blockSize int64, numThread int) (types.Plan, error) {
	if numThread <= 0 {
		return types.Plan{}, fmt.Errorf("%w: got %d", ErrInvalidThreadCount, numThread)
	}
	if fileSize < 0 {
		return types.Plan{}, fmt.Errorf("negative file size %d", fileSize)
	}
	if blockSize <= 0 {
		blockSize = DefaultBlockSize
	}

	numBlocks := fileSize / blockSize
	if fileSize%blockSize != 0 {
		numBlocks++
	}
	blocksPerThread := numBlocks / int64(numThread)

	return types.Plan{
		FileSize:        fileSize,
		BlockSize:       blockSize,
		NumBlocks:       numBlocks,
		BlocksPerThread: blocksPerThread,
		ChunkSize:       blocksPerThread * blockSize,
		NumThread:       numThread,
	}, nil
}
