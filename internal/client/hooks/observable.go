// Package hooks holds the stateful owners of the client-side mirrors of server
// data. Each hook exposes an immutable state snapshot, a subscription for
// change notifications and action methods that drive the domain services.
//
// Actions follow one protocol: mark the hook pending and clear the error, call
// the service without holding any lock, then commit either the confirmed
// result or the failure message. Failures are both recorded in state and
// returned to the caller.
package hooks

import (
	"sort"
	"sync"
)

// observable guards a state value and fans committed snapshots out to
// subscribers in commit order.
type observable[S any] struct {
	mu    sync.Mutex
	state S
	clone func(S) S

	// notifyMu is taken before mu is released so deliveries never reorder.
	notifyMu sync.Mutex
	subs     map[int]func(S)
	nextID   int
}

func newObservable[S any](initial S, clone func(S) S) *observable[S] {
	return &observable[S]{state: initial, clone: clone, subs: map[int]func(S){}}
}

func (o *observable[S]) get() S {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.clone(o.state)
}

// read runs fn against the current state under the lock.
func (o *observable[S]) read(fn func(S)) {
	o.mu.Lock()
	defer o.mu.Unlock()
	fn(o.state)
}

// commit applies fn to the state and notifies subscribers. Subscribers must
// not invoke hook actions synchronously.
func (o *observable[S]) commit(fn func(*S)) {
	o.mu.Lock()
	fn(&o.state)
	snap := o.clone(o.state)

	ids := make([]int, 0, len(o.subs))
	for id := range o.subs {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	subs := make([]func(S), 0, len(ids))
	for _, id := range ids {
		subs = append(subs, o.subs[id])
	}

	o.notifyMu.Lock()
	o.mu.Unlock()
	defer o.notifyMu.Unlock()

	for _, f := range subs {
		f(o.clone(snap))
	}
}

func (o *observable[S]) subscribe(f func(S)) (cancel func()) {
	o.mu.Lock()
	id := o.nextID
	o.nextID++
	o.subs[id] = f
	o.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			o.mu.Lock()
			delete(o.subs, id)
			o.mu.Unlock()
		})
	}
}
