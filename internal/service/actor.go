package service

import (
	"context"
	"fmt"
)

// Actor owns a CommerceStore in a single goroutine. Every call submitted
// through Do runs to completion before the next one starts.
type Actor struct {
	store CommerceStore
	ops   chan actorOp
}

type actorOp struct {
	fn     func(CommerceStore) error
	result chan error
}

// NewActor wraps store. The store must not be used directly afterwards.
func NewActor(store CommerceStore) *Actor {
	return &Actor{
		store: store,
		ops:   make(chan actorOp),
	}
}

// Run executes submitted operations until ctx is done. A panicking
// operation is reported to its caller as ErrOperationPanicked and the loop
// keeps serving.
func (a *Actor) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case op := <-a.ops:
			op.result <- a.apply(op.fn)
		}
	}
}

func (a *Actor) apply(fn func(CommerceStore) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrOperationPanicked, r)
		}
	}()
	return fn(a.store)
}

// Do runs fn against the store and returns its error. It gives up with
// ctx.Err() only while waiting for its turn; once started, fn completes.
func (a *Actor) Do(ctx context.Context, fn func(CommerceStore) error) error {
	op := actorOp{fn: fn, result: make(chan error, 1)}

	select {
	case a.ops <- op:
	case <-ctx.Done():
		return ctx.Err()
	}

	return <-op.result
}
