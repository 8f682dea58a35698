package orchestrator

import "context"

// enter queues the caller behind the user's running turn. With
// CancelSuperseded the running turn is cancelled unless it is writing.
func (o *Orchestrator) enter(ctx context.Context, userID string) (*lane, error) {
	o.mu.Lock()
	ln := o.lanes[userID]
	if ln == nil {
		ln = &lane{sem: make(chan struct{}, 1), state: StateIdle}
		o.lanes[userID] = ln
	}
	ln.refs++
	if o.opts.CancelSuperseded && ln.cancel != nil && !ln.writing {
		ln.cancel(ErrSuperseded)
		o.deps.Metrics.ObserveSuperseded()
	}
	o.mu.Unlock()

	select {
	case ln.sem <- struct{}{}:
		return ln, nil
	case <-ctx.Done():
		o.leave(userID, ln, false)
		return nil, ctx.Err()
	}
}

func (o *Orchestrator) leave(userID string, ln *lane, held bool) {
	o.mu.Lock()
	ln.refs--
	if held {
		ln.cancel = nil
		ln.writing = false
		ln.state = StateIdle
	}
	if ln.refs == 0 {
		delete(o.lanes, userID)
	}
	o.mu.Unlock()
	if held {
		<-ln.sem
	}
}

func (o *Orchestrator) started(ln *lane, cancel context.CancelCauseFunc) {
	o.mu.Lock()
	ln.cancel = cancel
	o.mu.Unlock()
}

// transition moves the running turn to state. writing marks that the turn
// may persist data and can no longer be superseded.
func (o *Orchestrator) transition(ctx context.Context, ln *lane, state State, writing bool) {
	o.mu.Lock()
	from := ln.state
	ln.state = state
	if writing {
		ln.writing = true
	}
	o.mu.Unlock()
	o.l.Debugf(ctx, "%s: state %s -> %s", LogPrefixHandleTurn, from, state)
}

// laneCount is the number of users with queued or running turns.
func (o *Orchestrator) laneCount() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.lanes)
}
