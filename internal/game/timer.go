package game

import (
	"context"
	"errors"
	"time"
)

// =============================================================================
// TIMER MANAGEMENT
// =============================================================================

type cleanupTimer struct {
	ctx    context.Context
	cancel context.CancelFunc
}

// scheduleCleanup arms the room's deletion timer, replacing any pending one.
// onExpire runs on its own goroutine once delay elapses without a cancel.
func (r *Room) scheduleCleanup(delay time.Duration, onExpire func()) {
	r.mu.Lock()
	r.cancelCleanupLocked()

	ctx, cancel := context.WithTimeout(context.Background(), delay)
	r.cleanup = &cleanupTimer{ctx: ctx, cancel: cancel}
	r.log.Infof("[ScheduleCleanup] room empty, deleting in %v unless someone reconnects", delay)
	r.mu.Unlock()

	go func() {
		defer cancel()
		<-ctx.Done()

		r.mu.Lock()
		active := r.cleanup != nil && r.cleanup.ctx == ctx
		if active {
			r.cleanup = nil
		}
		r.mu.Unlock()

		if !active || !errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return
		}
		onExpire()
	}()
}

// CancelCleanup stops a pending deletion timer, if any.
func (r *Room) CancelCleanup() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cancelCleanupLocked()
}

func (r *Room) cancelCleanupLocked() {
	if r.cleanup == nil {
		return
	}
	r.cleanup.cancel()
	r.cleanup = nil
	r.log.Debug("[CancelCleanup] pending deletion cancelled")
}

// CleanupPending reports whether a deletion timer is armed.
func (r *Room) CleanupPending() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cleanup != nil
}

// closeIfEmpty marks the room closed when nobody is connected. A closed room
// rejects joins so a reconnect cannot land in a room the registry dropped.
func (r *Room) closeIfEmpty() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.connectedCountLocked() > 0 {
		return false
	}
	r.closed = true
	r.cancelCleanupLocked()
	return true
}
