// Package orchestrator runs independent pipeline tasks under per-resource
// concurrency limits.
package orchestrator

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// ResourceType represents different kinds of capacity a task consumes.
type ResourceType string

const (
	ResourceCPU     ResourceType = "cpu"     // Local processing (frame extraction, probing)
	ResourceNetwork ResourceType = "network" // Remote API calls (transition generation)
	ResourceIO      ResourceType = "io"      // File writes
)

// Runner is a unit of work executed by the pool. Implementations close
// over their own inputs and outputs; the pool only observes the error.
type Runner interface {
	Run() error
}

// RunnerFunc adapts a plain function to the Runner interface.
type RunnerFunc func() error

// Run calls the wrapped function.
func (f RunnerFunc) Run() error { return f() }

// Task pairs a Runner with an identity and a resource requirement.
type Task struct {
	ID       string
	Resource ResourceType
	Runner   Runner
}

// Result reports the outcome of one task.
type Result struct {
	TaskID   string
	Err      error
	Duration time.Duration
}

// ResourceConstraint limits how many tasks of a resource type run at once.
type ResourceConstraint struct {
	Type     ResourceType
	MaxSlots int
}

// Pool executes a flat set of independent tasks, bounding concurrency per
// resource type. Unlike a dependency-ordered scheduler, every queued task
// is immediately runnable; the pool only arbitrates capacity.
type Pool struct {
	tasks []Task
	slots map[ResourceType]chan struct{}

	// Progress tracking
	onProgress func(completed, total int, result Result)
}

// NewPool creates a pool with the given resource constraints. Tasks whose
// resource type has no constraint run without a concurrency limit.
func NewPool(constraints []ResourceConstraint) *Pool {
	slots := make(map[ResourceType]chan struct{}, len(constraints))
	for _, c := range constraints {
		if c.MaxSlots > 0 {
			slots[c.Type] = make(chan struct{}, c.MaxSlots)
		}
	}

	return &Pool{
		slots: slots,
	}
}

// AddTask queues a task for execution.
//
// Returns an error if the task has no id, a duplicate id, or no runner.
func (p *Pool) AddTask(task Task) error {
	if task.ID == "" {
		return fmt.Errorf("task id cannot be empty")
	}

	if task.Runner == nil {
		return fmt.Errorf("task %s has no runner", task.ID)
	}

	for _, existing := range p.tasks {
		if existing.ID == task.ID {
			return fmt.Errorf("task %s already exists", task.ID)
		}
	}

	p.tasks = append(p.tasks, task)
	return nil
}

// SetProgressCallback registers a callback invoked after each task
// completes. The callback runs on the collecting goroutine, so it must not
// block for long.
func (p *Pool) SetProgressCallback(callback func(completed, total int, result Result)) {
	p.onProgress = callback
}

// Execute runs every queued task and returns one result per task, in
// completion order.
//
// Task failures are collected, not propagated: a failed task never aborts
// its siblings. Cancelling the context stops unstarted tasks; their
// results carry the context error. Already-running tasks finish.
func (p *Pool) Execute(ctx context.Context) []Result {
	total := len(p.tasks)
	resultCh := make(chan Result, total)

	var wg sync.WaitGroup
	for _, task := range p.tasks {
		wg.Add(1)
		go func(task Task) {
			defer wg.Done()
			resultCh <- p.executeTask(ctx, task)
		}(task)
	}

	go func() {
		wg.Wait()
		close(resultCh)
	}()

	results := make([]Result, 0, total)
	for result := range resultCh {
		results = append(results, result)
		if p.onProgress != nil {
			p.onProgress(len(results), total, result)
		}
	}

	return results
}

// executeTask acquires the task's resource slot, runs it, and releases the
// slot.
func (p *Pool) executeTask(ctx context.Context, task Task) Result {
	start := time.Now()

	if slot, ok := p.slots[task.Resource]; ok {
		select {
		case slot <- struct{}{}:
			defer func() { <-slot }()
		case <-ctx.Done():
			return Result{TaskID: task.ID, Err: ctx.Err(), Duration: time.Since(start)}
		}
	} else if err := ctx.Err(); err != nil {
		return Result{TaskID: task.ID, Err: err, Duration: time.Since(start)}
	}

	err := task.Runner.Run()
	return Result{TaskID: task.ID, Err: err, Duration: time.Since(start)}
}

// FailedResults filters a result set down to the failures.
func FailedResults(results []Result) []Result {
	var failed []Result
	for _, r := range results {
		if r.Err != nil {
			failed = append(failed, r)
		}
	}
	return failed
}
