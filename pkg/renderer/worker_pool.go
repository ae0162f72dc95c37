package renderer

import (
	"runtime"
	"sync"

	"github.com/horenderer/pathtracer/pkg/integrator"
	"github.com/horenderer/pathtracer/pkg/sampler"
	"github.com/horenderer/pathtracer/pkg/scene"
)

// TileTask represents a tile rendering task for the worker pool
type TileTask struct {
	Tile          *Tile
	PassNumber    int
	TargetSamples int
	TaskID        int            // Index of the tile, used to match results
	PixelStats    [][]PixelStats // Shared pixel stats array to write to
}

// TileResult contains the result from rendering a tile
type TileResult struct {
	TaskID int
	Stats  RenderStats
	Error  error
}

// WorkerPool manages parallel tile rendering
type WorkerPool struct {
	taskQueue   chan TileTask
	resultQueue chan TileResult
	workers     []*Worker
	numWorkers  int
	wg          sync.WaitGroup
	startOnce   sync.Once
	stopOnce    sync.Once
}

// Worker renders tiles with its own TileRenderer and sampler
type Worker struct {
	ID           int
	tileRenderer *TileRenderer
	taskQueue    chan TileTask
	resultQueue  chan TileResult
}

// NewWorkerPool creates a worker pool with the specified number of workers.
// Each worker receives a clone of base; queueSize bounds the task and result buffers.
func NewWorkerPool(sc *scene.Scene, integ integrator.Integrator, base *sampler.Sampler, numWorkers, queueSize int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	wp := &WorkerPool{
		taskQueue:   make(chan TileTask, queueSize),
		resultQueue: make(chan TileResult, queueSize),
		numWorkers:  numWorkers,
	}

	for i := 0; i < numWorkers; i++ {
		worker := &Worker{
			ID:           i,
			tileRenderer: NewTileRenderer(sc, integ, base.Clone()),
			taskQueue:    wp.taskQueue,
			resultQueue:  wp.resultQueue,
		}
		wp.workers = append(wp.workers, worker)
	}

	return wp
}

// Start begins all workers. Calling it again has no effect.
func (wp *WorkerPool) Start() {
	wp.startOnce.Do(func() {
		for _, worker := range wp.workers {
			wp.wg.Add(1)
			go worker.run(&wp.wg)
		}
	})
}

// Stop gracefully shuts down all workers
func (wp *WorkerPool) Stop() {
	wp.stopOnce.Do(func() {
		close(wp.taskQueue)
		wp.wg.Wait()
		close(wp.resultQueue)
	})
}

// SubmitTask submits a tile task to the worker pool
func (wp *WorkerPool) SubmitTask(task TileTask) {
	wp.taskQueue <- task
}

// GetResult retrieves a completed tile result
func (wp *WorkerPool) GetResult() (TileResult, bool) {
	result, ok := <-wp.resultQueue
	return result, ok
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// run is the main worker loop. Tiles never overlap, so writes to the shared
// pixel stats need no locking.
func (w *Worker) run(wg *sync.WaitGroup) {
	defer wg.Done()

	for task := range w.taskQueue {
		stats := w.tileRenderer.RenderTileBounds(task.Tile.Bounds, task.PixelStats, task.TargetSamples)
		w.resultQueue <- TileResult{
			TaskID: task.TaskID,
			Stats:  stats,
		}
	}
}
