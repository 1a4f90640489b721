package renderer

import (
	"math/rand"
	"sync"
)

// pixelFunc shades one pixel using the calling worker's generator and
// reports whether the primary ray hit geometry.
type pixelFunc func(x, y int, random *rand.Rand) bool

// ColumnTask is one worker's share of a pixel column
type ColumnTask struct {
	X      int
	Y0, Y1 int // Half-open row range [Y0, Y1)
}

// ColumnResult contains the counters from one column task
type ColumnResult struct {
	WorkerID int
	Pixels   int
	Hits     int
}

// WorkerPool shades pixel columns in parallel. Every column is split into one
// contiguous row range per worker and worker i always receives range i, so a
// frame is deterministic for a fixed worker count even with jitter enabled.
type WorkerPool struct {
	workers     []*Worker
	resultQueue chan ColumnResult
	wg          sync.WaitGroup
}

// Worker owns the mutable per-worker state: its task queue and generator
type Worker struct {
	ID          int
	random      *rand.Rand
	shade       pixelFunc
	taskQueue   chan ColumnTask
	resultQueue chan ColumnResult
}

// NewWorkerPool creates a pool of numWorkers workers. Worker i seeds its
// generator with seed+i.
func NewWorkerPool(numWorkers int, seed int64, shade pixelFunc) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = 1
	}

	wp := &WorkerPool{
		resultQueue: make(chan ColumnResult, numWorkers),
	}

	for i := 0; i < numWorkers; i++ {
		wp.workers = append(wp.workers, &Worker{
			ID:          i,
			random:      rand.New(rand.NewSource(seed + int64(i))),
			shade:       shade,
			taskQueue:   make(chan ColumnTask, 1),
			resultQueue: wp.resultQueue,
		})
	}

	return wp
}

// Start begins all workers
func (wp *WorkerPool) Start() {
	for _, worker := range wp.workers {
		wp.wg.Add(1)
		go worker.run(&wp.wg)
	}
}

// Stop shuts down all workers and waits for them to exit
func (wp *WorkerPool) Stop() {
	for _, worker := range wp.workers {
		close(worker.taskQueue)
	}
	wp.wg.Wait()
	close(wp.resultQueue)
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return len(wp.workers)
}

// RenderColumn shades column x over rows [0, height) and blocks until every
// worker has finished its share.
func (wp *WorkerPool) RenderColumn(x, height int) ColumnResult {
	tasks := SplitRows(height, len(wp.workers))
	for i, task := range tasks {
		task.X = x
		wp.workers[i].taskQueue <- task
	}

	total := ColumnResult{WorkerID: -1}
	for range tasks {
		result := <-wp.resultQueue
		total.Pixels += result.Pixels
		total.Hits += result.Hits
	}
	return total
}

// SplitRows divides [0, height) into at most parts contiguous ranges whose
// sizes differ by at most one. Empty ranges are not produced.
func SplitRows(height, parts int) []ColumnTask {
	if parts > height {
		parts = height
	}
	if parts <= 0 {
		return nil
	}

	tasks := make([]ColumnTask, 0, parts)
	base, extra := height/parts, height%parts
	y := 0
	for i := 0; i < parts; i++ {
		size := base
		if i < extra {
			size++
		}
		tasks = append(tasks, ColumnTask{Y0: y, Y1: y + size})
		y += size
	}
	return tasks
}

// run is the main worker loop
func (w *Worker) run(wg *sync.WaitGroup) {
	defer wg.Done()

	for task := range w.taskQueue {
		result := ColumnResult{WorkerID: w.ID}
		for y := task.Y0; y < task.Y1; y++ {
			// Each (x, y) cell is written by exactly one worker
			if w.shade(task.X, y, w.random) {
				result.Hits++
			}
			result.Pixels++
		}
		w.resultQueue <- result
	}
}
