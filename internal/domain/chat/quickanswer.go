package chat

import (
	"context"
	"sync"
)

// QuickAnswerSlot serializes quick-answer requests for one input box.
// Starting a new request cancels the one in flight, and a stale result that
// arrives after a newer request started is discarded.
type QuickAnswerSlot struct {
	mu     sync.Mutex
	gen    uint64
	cancel context.CancelFunc
}

func NewQuickAnswerSlot() *QuickAnswerSlot {
	return &QuickAnswerSlot{}
}

// Start begins a new request, cancelling any previous one. The returned
// generation must be presented to Accept with the result.
func (s *QuickAnswerSlot) Start(ctx context.Context) (context.Context, uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
	}
	ctx, s.cancel = context.WithCancel(ctx)
	s.gen++
	return ctx, s.gen
}

// Cancel aborts the request in flight, if any.
func (s *QuickAnswerSlot) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

// Accept reports whether the result of generation gen is still wanted.
// Results of superseded requests return false and must be dropped.
func (s *QuickAnswerSlot) Accept(gen uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		return false
	}
	s.cancel = nil
	return true
}
