// Package safe_close coordinates the graceful shutdown of multiple
// long-running goroutines through a shared close signal.
package safe_close

import "sync"

// SafeClose tracks attached goroutines and fans out a single close signal.
// The first error passed to SendCloseSignal is kept and returned by
// WaitClosed.
type SafeClose struct {
	mu          sync.Mutex
	wg          sync.WaitGroup
	closeSignal chan struct{}
	closed      bool
	err         error
}

func NewSafeClose() *SafeClose {
	return &SafeClose{
		closeSignal: make(chan struct{}),
	}
}

// Attach starts f in its own goroutine. f must call done exactly once when
// it finishes and should return promptly after closeSignal fires.
func (s *SafeClose) Attach(f func(done func(), closeSignal <-chan struct{})) {
	s.wg.Add(1)
	var once sync.Once
	done := func() {
		once.Do(s.wg.Done)
	}
	go f(done, s.closeSignal)
}

// SendCloseSignal asks all attached goroutines to stop. Only the first call
// has an effect; err may be nil for a normal shutdown.
func (s *SafeClose) SendCloseSignal(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.closed = true
	s.err = err
	close(s.closeSignal)
}

// WaitClosed blocks until every attached goroutine has called done, then
// returns the error passed to the first SendCloseSignal, if any.
func (s *SafeClose) WaitClosed() error {
	s.wg.Wait()

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// CloseSignal exposes the close channel for callers that select on it
// outside of Attach.
func (s *SafeClose) CloseSignal() <-chan struct{} {
	return s.closeSignal
}
