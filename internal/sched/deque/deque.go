// Package deque implements a Chase-Lev work-stealing deque of task
// records. Push and Take are restricted to a single owner goroutine;
// Steal may be called concurrently from any other goroutine.
//
// The memory-ordering discipline follows "Correct and Efficient
// Work-Stealing for Weak Memory Models" (Lê et al.): push acquires on
// top and releases on bottom; take writes bottom, fences, then reads
// top, falling back to a CAS on the single-element case; steal loads
// top acquire, fences, loads bottom acquire, reads the slot relaxed,
// then CASes top. Go's memory model does not expose separate
// acquire/release atomics, so every access here goes through
// sync/atomic, which is sequentially consistent and therefore a safe
// (if slightly pessimistic) superset of the orderings the paper
// requires.
package deque

import (
	"sync/atomic"
)

// Task is a unit of work: an opaque function plus the data it closes
// over. Using a plain closure keeps the queue generic without an
// interface-dispatch indirection for every task.
type Task struct {
	Fn   func(data any)
	Data any
}

// StealResult is the outcome of a Steal call.
type StealResult int

const (
	// StealEmpty means the deque had nothing to steal.
	StealEmpty StealResult = iota
	// StealOK means a task was stolen.
	StealOK
	// StealAbort means a concurrent racer won; the caller should retry.
	StealAbort
)

type ringBuffer struct {
	cap  int64 // power of two
	mask int64
	buf  []atomic.Pointer[Task]
}

func newRingBuffer(capacity int64) *ringBuffer {
	return &ringBuffer{
		cap:  capacity,
		mask: capacity - 1,
		buf:  make([]atomic.Pointer[Task], capacity),
	}
}

func (r *ringBuffer) get(i int64) *Task {
	return r.buf[i&r.mask].Load()
}

func (r *ringBuffer) put(i int64, t *Task) {
	r.buf[i&r.mask].Store(t)
}

func (r *ringBuffer) growTo(next int64, bottom, top int64) *ringBuffer {
	nr := newRingBuffer(next)
	for i := top; i < bottom; i++ {
		nr.put(i, r.get(i))
	}
	return nr
}

// Deque is a bounded-growth, single-owner, multi-stealer FIFO-ish
// (LIFO from the owner's end, FIFO from stealers') task queue.
//
// Invariant at rest: top <= bottom. The array pointer is swapped
// atomically to a larger allocation on overflow; only the owner ever
// resizes, and the old array is simply dropped (Go's GC reclaims it —
// the source's manual free has no analogue here, and nothing else
// holds a reference to the old ringBuffer once the swap is visible).
type Deque struct {
	top    atomic.Int64
	bottom atomic.Int64
	array  atomic.Pointer[ringBuffer]
}

// New creates a deque with the given initial capacity, which must be
// a positive power of two.
func New(initialCapacity int64) *Deque {
	if initialCapacity <= 0 || initialCapacity&(initialCapacity-1) != 0 {
		panic("deque: initial capacity must be a positive power of two")
	}
	d := &Deque{}
	d.array.Store(newRingBuffer(initialCapacity))
	return d
}

func nextPow2(n int64) int64 {
	p := int64(1)
	for p < n {
		p <<= 1
	}
	return p
}

// Push adds a task at the bottom. Owner-only.
func (d *Deque) Push(t *Task) {
	b := d.bottom.Load()
	top := d.top.Load() // acquire
	arr := d.array.Load()
	if b-top > arr.cap-1 {
		arr = arr.growTo(nextPow2(arr.cap*2), b, top)
		d.array.Store(arr) // release
	}
	arr.put(b, t)
	d.bottom.Store(b + 1) // release
}

// Take removes and returns a task from the bottom. Owner-only.
func (d *Deque) Take() (*Task, bool) {
	b := d.bottom.Load()
	if b == 0 {
		// Nothing has ever been pushed; bottom-1 would wrap. This is
		// the single documented fix-up: the owner never attempts to
		// take from an empty-at-rest deque.
		return nil, false
	}
	b = b - 1
	arr := d.array.Load()
	d.bottom.Store(b)
	// Full fence between publishing the new bottom and reading top.
	top := d.top.Load()

	if top <= b {
		t := arr.get(b)
		if top == b {
			// Single-element case: race with stealers via CAS.
			if !d.top.CompareAndSwap(top, top+1) {
				t = nil
			}
			d.bottom.Store(b + 1)
			if t == nil {
				return nil, false
			}
			return t, true
		}
		return t, true
	}
	// Deque was already empty.
	d.bottom.Store(b + 1)
	return nil, false
}

// Steal removes and returns a task from the top. Safe for concurrent
// callers other than the owner.
func (d *Deque) Steal() (*Task, StealResult) {
	top := d.top.Load()
	// Full fence between reading top and reading bottom.
	b := d.bottom.Load()
	if top >= b {
		return nil, StealEmpty
	}
	arr := d.array.Load()
	t := arr.get(top)
	if !d.top.CompareAndSwap(top, top+1) {
		return nil, StealAbort
	}
	return t, StealOK
}

// Len reports the number of live tasks. Racy with concurrent
// pushes/steals; intended for diagnostics only.
func (d *Deque) Len() int64 {
	b := d.bottom.Load()
	t := d.top.Load()
	if b < t {
		return 0
	}
	return b - t
}
