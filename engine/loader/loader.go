package loader

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-frame/common"
)

// ErrLoaderClosed is returned by handles whose load was submitted after the Loader was closed.
var ErrLoaderClosed = errors.New("loader is closed")

// LoadFunc produces a resource off the tick thread.
type LoadFunc func() (any, error)

// completion is a finished load waiting to be applied on the tick thread.
type completion struct {
	h     *handle
	value any
	err   error
}

type handle struct {
	name   string
	ready  bool
	value  any
	err    error
	onLoad func(Handle)
}

// Handle is the tick-thread view of an asynchronous load.
// Its state changes only inside Loader.Apply.
type Handle interface {
	// Name returns the name the load was submitted with.
	Name() string

	// Ready reports whether the load has completed and been applied.
	Ready() bool

	// Value returns the loaded resource, or nil until Ready or on failure.
	Value() any

	// Err returns the load error, if any.
	Err() error
}

var _ Handle = &handle{}

func (h *handle) Name() string { return h.name }
func (h *handle) Ready() bool  { return h.ready }
func (h *handle) Value() any   { return h.value }
func (h *handle) Err() error   { return h.err }

type loader struct {
	workers     int
	queueSize   int
	idleTimeout time.Duration
	logErrors   bool

	pool   worker.DynamicWorkerPool
	taskID atomic.Int64
	alive  atomic.Bool

	inflight sync.WaitGroup

	mu      sync.Mutex
	pending []completion

	// tick-thread only
	errs    []error
	applied []completion
}

// Loader runs resource loads on a worker pool and hands their results back to the tick thread.
//
// Loads complete at any time, but their results become visible only when the owner calls Apply,
// which the canvas does once at the start of each tick. After Close every completion is dropped
// without touching the handle.
type Loader interface {
	// Load submits fn to the worker pool.
	//
	// Parameters:
	//   - name: a label for logs and errors
	//   - fn: the load function, run off the tick thread
	//   - onLoad: optional callback invoked by Apply once the result is visible
	//
	// Returns:
	//   - Handle: the handle that receives the result
	Load(name string, fn LoadFunc, onLoad func(Handle)) Handle

	// LoadTexture decodes a PNG or JPEG texture into RGBA staging data.
	// The handle's Value is a common.TextureStagingData.
	//
	// Parameters:
	//   - src: the texture source
	//   - onLoad: optional callback invoked by Apply once the result is visible
	//
	// Returns:
	//   - Handle: the handle that receives the result
	LoadTexture(src common.TextureSource, onLoad func(Handle)) Handle

	// Apply publishes every completion received since the last call. Must be called on the tick thread.
	//
	// Returns:
	//   - int: the number of completions applied
	Apply() int

	// Wait blocks until every submitted load has finished running. Results still need Apply.
	Wait()

	// Errors returns the load failures applied so far, oldest first.
	//
	// Returns:
	//   - []error: the recorded failures
	Errors() []error

	// Alive reports whether the loader still accepts completions.
	Alive() bool

	// Close stops accepting completions. In-flight loads keep running but their results are dropped.
	Close()
}

var _ Loader = &loader{}

// NewLoader creates a new Loader backed by a dynamic worker pool.
//
// Parameters:
//   - options: variadic list of LoaderBuilderOption functions to configure the loader
//
// Returns:
//   - Loader: the newly created loader
func NewLoader(options ...LoaderBuilderOption) Loader {
	l := &loader{
		workers:     2,
		queueSize:   64,
		idleTimeout: time.Second,
		logErrors:   true,
	}
	for _, opt := range options {
		opt(l)
	}
	l.pool = worker.NewDynamicWorkerPool(l.workers, l.queueSize, l.idleTimeout)
	l.alive.Store(true)
	return l
}

func (l *loader) Load(name string, fn LoadFunc, onLoad func(Handle)) Handle {
	h := &handle{name: name, onLoad: onLoad}
	if !l.alive.Load() {
		h.ready = true
		h.err = fmt.Errorf("load %q: %w", name, ErrLoaderClosed)
		return h
	}

	l.inflight.Add(1)
	l.pool.SubmitTask(worker.Task{
		ID: int(l.taskID.Add(1)),
		Do: func() (any, error) {
			defer l.inflight.Done()
			value, err := run(fn)
			if err != nil {
				err = fmt.Errorf("load %q: %w", name, err)
			}
			l.complete(completion{h: h, value: value, err: err})
			return value, err
		},
	})
	return h
}

func (l *loader) LoadTexture(src common.TextureSource, onLoad func(Handle)) Handle {
	name := src.Name
	if name == "" {
		name = src.Path
	}
	return l.Load(name, func() (any, error) {
		return src.Decode()
	}, onLoad)
}

func (l *loader) Apply() int {
	l.mu.Lock()
	l.applied, l.pending = l.pending, l.applied[:0]
	l.mu.Unlock()

	if !l.alive.Load() {
		clear(l.applied)
		return 0
	}

	for _, c := range l.applied {
		c.h.ready = true
		c.h.value = c.value
		c.h.err = c.err
		if c.err != nil {
			l.fail(c.err)
		}
		if err := notify(c.h); err != nil {
			if c.h.err == nil {
				c.h.err = err
			}
			l.fail(err)
		}
	}
	n := len(l.applied)
	clear(l.applied)
	return n
}

func (l *loader) Wait() {
	l.inflight.Wait()
}

func (l *loader) Errors() []error {
	return l.errs
}

func (l *loader) Alive() bool {
	return l.alive.Load()
}

func (l *loader) Close() {
	if !l.alive.Swap(false) {
		return
	}
	l.mu.Lock()
	clear(l.pending)
	l.pending = l.pending[:0]
	l.mu.Unlock()
}

// complete queues c for the next Apply unless the loader has been closed.
func (l *loader) complete(c completion) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.alive.Load() {
		if l.logErrors {
			log.Printf("[Loader] dropping %q: loader closed", c.h.name)
		}
		return
	}
	l.pending = append(l.pending, c)
}

// fail records err in the error slot and logs it.
func (l *loader) fail(err error) {
	l.errs = append(l.errs, err)
	if l.logErrors {
		log.Printf("[Loader] %v", err)
	}
}

// notify runs the handle's onLoad callback, converting a panic into an error.
func notify(h *handle) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("onLoad %q: panic: %v", h.name, r)
		}
	}()
	if h.onLoad != nil {
		h.onLoad(h)
	}
	return nil
}

// run calls fn, converting a panic into an error.
func run(fn LoadFunc) (value any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return fn()
}
