package scheduler

import (
	"errors"
	"fmt"
	"slices"

	"github.com/Carmen-Shannon/oxy-frame/engine/frame"
)

// ErrCallbackPanic wraps a panic recovered from a scheduled callback.
var ErrCallbackPanic = errors.New("scheduler: callback panicked")

// Callback is a render callback invoked once per tick with the frame snapshot.
type Callback func(ctx frame.Context) error

// Token identifies a registered callback. The zero Token is never issued.
// Tokens are generation-indexed, so a token kept after Unregister never matches a later registration.
type Token struct {
	index      uint32
	generation uint32
}

// Valid reports whether t was issued by a scheduler.
//
// Returns:
//   - bool: false for the zero Token
func (t Token) Valid() bool {
	return t.generation != 0
}

type slot struct {
	generation uint32
	live       bool
	priority   int
	seq        uint64
	fn         Callback
}

type entry struct {
	token    Token
	priority int
	seq      uint64
	fn       Callback
}

type scheduler struct {
	slots []slot
	free  []uint32
	count int

	nextSeq uint64

	// generation is bumped by every mutation; sortedGen records the generation the sorted view was built at.
	generation uint64
	sortedGen  uint64
	sorted     []entry
}

// Scheduler is a registry of (callback, priority) pairs executed once per tick.
//
// Callbacks run in ascending priority; equal priorities run in registration order. The sorted
// order is rebuilt lazily, only when a registration changed since the previous ExecuteAll.
// Registering or unregistering from inside a callback is allowed and takes effect from the next
// ExecuteAll; the order captured for the running pass is not altered.
//
// A failing callback (error return or panic) does not stop the rest of the pass. All faults are
// joined and returned from ExecuteAll.
type Scheduler interface {
	// Register adds a callback at the given priority.
	//
	// Parameters:
	//   - fn: the callback
	//   - priority: lower values run first
	//
	// Returns:
	//   - Token: handle for Unregister
	Register(fn Callback, priority int) Token

	// Unregister removes a callback. Unknown or already removed tokens are ignored.
	//
	// Parameters:
	//   - token: the handle returned by Register
	Unregister(token Token)

	// Priority returns the priority a live token was registered with.
	//
	// Parameters:
	//   - token: the handle returned by Register
	//
	// Returns:
	//   - int: the priority
	//   - bool: false if the token is not live
	Priority(token Token) (int, bool)

	// ExecuteAll invokes every registered callback in priority order.
	//
	// Parameters:
	//   - ctx: the frame snapshot passed to each callback
	//
	// Returns:
	//   - error: the joined faults of failing callbacks, or nil
	ExecuteAll(ctx frame.Context) error

	// Len returns the number of registered callbacks.
	//
	// Returns:
	//   - int: callback count
	Len() int

	// Clear removes every callback. Outstanding tokens become stale.
	Clear()
}

var _ Scheduler = &scheduler{}

// NewScheduler creates an empty Scheduler.
//
// Parameters:
//   - options: functional options to configure the scheduler
//
// Returns:
//   - Scheduler: the newly created scheduler
func NewScheduler(options ...SchedulerBuilderOption) Scheduler {
	s := &scheduler{}
	for _, option := range options {
		option(s)
	}
	return s
}

func (s *scheduler) Register(fn Callback, priority int) Token {
	var index uint32
	if n := len(s.free); n > 0 {
		index = s.free[n-1]
		s.free = s.free[:n-1]
	} else {
		s.slots = append(s.slots, slot{})
		index = uint32(len(s.slots) - 1)
	}

	sl := &s.slots[index]
	sl.generation++
	if sl.generation == 0 {
		sl.generation = 1
	}
	sl.live = true
	sl.priority = priority
	sl.seq = s.nextSeq
	sl.fn = fn
	s.nextSeq++
	s.count++
	s.generation++

	return Token{index: index, generation: sl.generation}
}

func (s *scheduler) Unregister(token Token) {
	sl := s.lookup(token)
	if sl == nil {
		return
	}
	sl.live = false
	sl.fn = nil
	s.free = append(s.free, token.index)
	s.count--
	s.generation++
}

func (s *scheduler) Priority(token Token) (int, bool) {
	sl := s.lookup(token)
	if sl == nil {
		return 0, false
	}
	return sl.priority, true
}

func (s *scheduler) ExecuteAll(ctx frame.Context) error {
	if s.sortedGen != s.generation {
		s.resort()
	}

	// Local copy of the slice header: a resort triggered from inside a callback builds a new
	// slice and leaves this pass's order untouched.
	order := s.sorted
	var errs []error
	for i := range order {
		if err := invoke(order[i], ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (s *scheduler) Len() int {
	return s.count
}

func (s *scheduler) Clear() {
	for i := range s.slots {
		sl := &s.slots[i]
		if sl.live {
			sl.live = false
			sl.fn = nil
			s.free = append(s.free, uint32(i))
		}
	}
	s.count = 0
	s.generation++
}

// lookup returns the live slot for token, or nil.
func (s *scheduler) lookup(token Token) *slot {
	if !token.Valid() || int(token.index) >= len(s.slots) {
		return nil
	}
	sl := &s.slots[token.index]
	if !sl.live || sl.generation != token.generation {
		return nil
	}
	return sl
}

// resort rebuilds the sorted view into a fresh slice.
func (s *scheduler) resort() {
	sorted := make([]entry, 0, s.count)
	for i := range s.slots {
		sl := &s.slots[i]
		if !sl.live {
			continue
		}
		sorted = append(sorted, entry{
			token:    Token{index: uint32(i), generation: sl.generation},
			priority: sl.priority,
			seq:      sl.seq,
			fn:       sl.fn,
		})
	}
	// Slot order is not registration order once slots are recycled, so ties break on seq.
	slices.SortStableFunc(sorted, func(a, b entry) int {
		if a.priority != b.priority {
			if a.priority < b.priority {
				return -1
			}
			return 1
		}
		switch {
		case a.seq < b.seq:
			return -1
		case a.seq > b.seq:
			return 1
		}
		return 0
	})
	s.sorted = sorted
	s.sortedGen = s.generation
}

// invoke runs one callback, converting a panic into an error.
func invoke(e entry, ctx frame.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w (priority %d): %v", ErrCallbackPanic, e.priority, r)
		}
	}()
	if e.fn == nil {
		return nil
	}
	if err := e.fn(ctx); err != nil {
		return fmt.Errorf("callback (priority %d): %w", e.priority, err)
	}
	return nil
}
