package boq

// extract_limiter.go implements concurrency control for extraction requests.
//
// Decoding a workbook holds the whole file plus the decoded grid in memory,
// so the limiter restricts parallel extractions to a configurable maximum
// using a semaphore. When all slots are occupied, new requests wait up to
// maxWait before failing with ErrTooManyExtractions. WaitForDrain supports
// graceful shutdown by blocking until active extractions finish.

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrTooManyExtractions is returned when all extraction slots are occupied
// and the wait timeout expires. Clients should retry after a short delay.
var ErrTooManyExtractions = errors.New("too many concurrent extractions, please try again later")

// DefaultMaxConcurrentExtractions is the default parallel extraction limit.
const DefaultMaxConcurrentExtractions = 5

// DefaultMaxWaitTime is how long to wait for a slot before rejecting.
const DefaultMaxWaitTime = 30 * time.Second

// ExtractLimiter controls concurrent extraction processing.
type ExtractLimiter struct {
	semaphore chan struct{}
	maxWait   time.Duration

	mu     sync.RWMutex
	active int
}

// NewExtractLimiter creates a limiter allowing at most maxConcurrent
// simultaneous extractions. Requests that cannot acquire a slot within
// maxWait receive ErrTooManyExtractions.
func NewExtractLimiter(maxConcurrent int, maxWait time.Duration) *ExtractLimiter {
	if maxConcurrent <= 0 {
		maxConcurrent = DefaultMaxConcurrentExtractions
	}
	if maxWait <= 0 {
		maxWait = DefaultMaxWaitTime
	}

	return &ExtractLimiter{
		semaphore: make(chan struct{}, maxConcurrent),
		maxWait:   maxWait,
	}
}

// Acquire attempts to acquire an extraction slot.
// Returns nil on success, ErrTooManyExtractions if the timeout expires.
// The caller MUST call Release() when the extraction completes (use defer).
func (l *ExtractLimiter) Acquire(ctx context.Context) error {
	waitCtx, cancel := context.WithTimeout(ctx, l.maxWait)
	defer cancel()

	select {
	case l.semaphore <- struct{}{}:
		l.mu.Lock()
		l.active++
		l.mu.Unlock()
		return nil

	case <-waitCtx.Done():
		// Distinguish caller cancellation from slot timeout.
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return ErrTooManyExtractions

	case <-ctx.Done():
		return ctx.Err()
	}
}

// Release releases a previously acquired slot.
// Must be called exactly once per successful Acquire.
func (l *ExtractLimiter) Release() {
	l.mu.Lock()
	l.active--
	l.mu.Unlock()

	<-l.semaphore
}

// ActiveCount returns the number of currently active extractions.
func (l *ExtractLimiter) ActiveCount() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.active
}

// Available returns the number of free slots.
func (l *ExtractLimiter) Available() int {
	return cap(l.semaphore) - len(l.semaphore)
}

// WaitForDrain blocks until all active extractions complete or the context
// is cancelled. Used for graceful shutdown.
func (l *ExtractLimiter) WaitForDrain(ctx context.Context) error {
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if l.ActiveCount() == 0 {
				return nil
			}
		}
	}
}

// LimiterStatus is a snapshot of the limiter's state for monitoring.
type LimiterStatus struct {
	Active        int `json:"active"`
	Available     int `json:"available"`
	MaxConcurrent int `json:"max_concurrent"`
}

// Status returns the current limiter state.
func (l *ExtractLimiter) Status() LimiterStatus {
	l.mu.RLock()
	active := l.active
	l.mu.RUnlock()

	return LimiterStatus{
		Active:        active,
		Available:     cap(l.semaphore) - len(l.semaphore),
		MaxConcurrent: cap(l.semaphore),
	}
}
