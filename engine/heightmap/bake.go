package heightmap

import (
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"

	"terrainview/engine/noise"
)

type bakeConfig struct {
	resolution float32
	seed       uint32
	workers    int
}

// BakeOption configures a Bake call.
type BakeOption func(*bakeConfig)

// WithResolution sets the distance in source space between adjacent texels.
//
// Parameters:
//   - resolution: source-space step per texel
//
// Returns:
//   - BakeOption: functional option to set the resolution
func WithResolution(resolution float32) BakeOption {
	return func(c *bakeConfig) {
		c.resolution = resolution
	}
}

// WithSeed sets the seed passed to the source on every sample.
//
// Parameters:
//   - seed: the sample seed
//
// Returns:
//   - BakeOption: functional option to set the seed
func WithSeed(seed uint32) BakeOption {
	return func(c *bakeConfig) {
		c.seed = seed
	}
}

// WithWorkers sets the number of pool workers used for the bake.
//
// Parameters:
//   - workers: worker count (values < 1 are ignored)
//
// Returns:
//   - BakeOption: functional option to set the worker count
func WithWorkers(workers int) BakeOption {
	return func(c *bakeConfig) {
		if workers >= 1 {
			c.workers = workers
		}
	}
}

// Bake fills a new Field by sampling src once per texel at the configured
// resolution, normalizing the source's [-1, 1] output into [0, 1] texel space
// with 0.5*s + 0.5. Rows are sampled in parallel on a worker pool; the result
// is deterministic regardless of worker count.
//
// Parameters:
//   - src: the height source to sample
//   - texSize: side length of the field in texels
//   - options: functional options (resolution defaults to 0.1, workers to NumCPU-1)
//
// Returns:
//   - *Field: the baked field
func Bake(src noise.Source, texSize uint32, options ...BakeOption) *Field {
	cfg := &bakeConfig{
		resolution: 0.1,
		workers:    max(runtime.NumCPU()-1, 1),
	}
	for _, option := range options {
		option(cfg)
	}

	texels := make([]float32, texSize*texSize)

	// Queue sized to hold every row task so submission never blocks mid-bake.
	pool := worker.NewDynamicWorkerPool(cfg.workers, int(texSize), 1*time.Second)
	var wg sync.WaitGroup
	for y := uint32(0); y < texSize; y++ {
		wg.Add(1)
		yCap := y
		pool.SubmitTask(worker.Task{
			ID: int(y),
			Do: func() (any, error) {
				defer wg.Done()
				row := texels[yCap*texSize : (yCap+1)*texSize]
				sy := float32(yCap) * cfg.resolution
				for x := range row {
					s := src.Sample(float32(x)*cfg.resolution, sy, cfg.seed)
					row[x] = s*0.5 + 0.5
				}
				return nil, nil
			},
		})
	}
	wg.Wait()

	return NewField(texSize, texels)
}
