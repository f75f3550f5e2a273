package lib

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/gingerrexayers/htree-go/internal/htree/logging"
	"github.com/gingerrexayers/htree-go/internal/htree/types"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Engine folds the chunk hashes of a Region along an implicit binary tree
// over task indices. Task tid has children 2*tid+1 and 2*tid+2; a child
// exists only when its index is below the region's thread count.
//
// An internal task hashes the decimal text of its own chunk hash followed by
// the decimal text of its left and then right child results. A leaf returns
// its chunk hash unchanged.
type Engine struct {
	region  *Region
	spawner Spawner
	logger  logrus.FieldLogger
	metrics *Metrics
}

type EngineOption func(*Engine)

// WithSpawner replaces the default spawner, which admits exactly one task
// per thread index. A spawner admitting fewer tasks than the region has
// threads does not make the run use fewer tasks at once: the first task
// it refuses fails the whole fingerprint with ErrResourceExhausted.
func WithSpawner(s Spawner) EngineOption {
	return func(e *Engine) { e.spawner = s }
}

func WithLogger(l logrus.FieldLogger) EngineOption {
	return func(e *Engine) { e.logger = l }
}

func WithMetrics(m *Metrics) EngineOption {
	return func(e *Engine) { e.metrics = m }
}

func NewEngine(region *Region, opts ...EngineOption) *Engine {
	e := &Engine{region: region}
	for _, o := range opts {
		o(e)
	}
	if e.spawner == nil {
		e.spawner = NewBoundedSpawner(region.NumThread())
	}
	if e.logger == nil {
		e.logger = logging.Discard()
	}
	if e.metrics == nil {
		e.metrics = NewMetrics()
	}
	return e
}

// Fingerprint runs the whole tree starting at task 0 and returns the root
// result. If any task cannot be spawned the computation fails as a whole
// and no fingerprint is returned.
func (e *Engine) Fingerprint(ctx context.Context) (uint32, error) {
	start := time.Now()

	release, err := e.spawn(0)
	if err != nil {
		return 0, fmt.Errorf("fingerprint: %w", err)
	}
	sum, err := e.run(ctx, 0)
	release()
	if err != nil {
		return 0, fmt.Errorf("fingerprint: %w", err)
	}

	e.metrics.FingerprintSeconds.Observe(time.Since(start).Seconds())
	return sum, nil
}

func (e *Engine) spawn(tid int) (func(), error) {
	release, err := e.spawner.Spawn(tid)
	if err != nil {
		e.metrics.SpawnFailures.Inc()
		e.logger.WithField("tid", tid).WithError(err).Debug("spawn failed")
		return nil, err
	}
	e.metrics.TasksSpawned.Inc()
	return release, nil
}

// run computes the result of the subtree rooted at tid. Both children are
// started before either is joined; their results are combined in
// left-then-right order whichever finishes first.
func (e *Engine) run(ctx context.Context, tid int) (uint32, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	chunk, pad := e.region.Chunk(tid)
	local := sumPadded(chunk, pad)
	e.metrics.BytesHashed.Add(float64(len(chunk) + pad))

	n := e.region.NumThread()
	left := 2*tid + 1
	if left >= n {
		e.logger.WithFields(logrus.Fields{"tid": tid, "bytes": len(chunk), "pad": pad}).Trace("leaf done")
		return local, nil
	}
	children := []int{left}
	if right := left + 1; right < n {
		children = append(children, right)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)

	results := make([]uint32, len(children))
	var spawnErr error
	for i, child := range children {
		i, child := i, child
		release, err := e.spawn(child)
		if err != nil {
			spawnErr = err
			cancel()
			break
		}
		g.Go(func() error {
			defer release()
			sum, err := e.run(gctx, child)
			results[i] = sum
			return err
		})
	}

	// Children already started are always joined, even after a failure.
	waitErr := g.Wait()
	if spawnErr != nil {
		return 0, spawnErr
	}
	if waitErr != nil {
		return 0, waitErr
	}

	sum := e.combine(local, results)
	e.logger.WithFields(logrus.Fields{"tid": tid, "children": len(children)}).Trace("node combined")
	return sum, nil
}

func (e *Engine) combine(local uint32, children []uint32) uint32 {
	buf := make([]byte, 0, 3*10)
	buf = strconv.AppendUint(buf, uint64(local), 10)
	for _, c := range children {
		buf = strconv.AppendUint(buf, uint64(c), 10)
	}
	e.metrics.Combines.Inc()
	return Sum32(buf)
}

// Options configures FingerprintBuffer.
type Options struct {
	// BlockSize is the planning granularity; 0 means DefaultBlockSize.
	BlockSize int64
	// CoverRemainder assigns bytes left over by the planner to the last
	// task instead of leaving them out of the fingerprint.
	CoverRemainder bool
	// MaxTasks bounds the number of live tasks. 0 means one per thread.
	// A limit below the thread count makes the run fail with
	// ErrResourceExhausted rather than run with fewer tasks at once.
	MaxTasks int
	Logger   logrus.FieldLogger
	Metrics  *Metrics
}

// FingerprintBuffer plans, builds a Region over data and runs an Engine on
// it with numThread tasks.
func FingerprintBuffer(ctx context.Context, data []byte, numThread int, opts Options) (types.Result, error) {
	plan, err := PlanChunks(int64(len(data)), opts.BlockSize, numThread)
	if err != nil {
		return types.Result{}, err
	}
	region, err := NewRegion(data, plan.ChunkSize, plan.NumThread, opts.CoverRemainder)
	if err != nil {
		return types.Result{}, err
	}

	engineOpts := []EngineOption{}
	if opts.MaxTasks > 0 {
		engineOpts = append(engineOpts, WithSpawner(NewBoundedSpawner(opts.MaxTasks)))
	}
	if opts.Logger != nil {
		engineOpts = append(engineOpts, WithLogger(opts.Logger))
	}
	if opts.Metrics != nil {
		engineOpts = append(engineOpts, WithMetrics(opts.Metrics))
	}

	start := time.Now()
	sum, err := NewEngine(region, engineOpts...).Fingerprint(ctx)
	if err != nil {
		return types.Result{}, err
	}
	return types.Result{Plan: plan, Fingerprint: sum, Elapsed: time.Since(start)}, nil
}
