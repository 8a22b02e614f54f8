// Package autosave decorates an estimate repository with write-behind
// semantics: rapid successive saves of the same estimate are coalesced into
// one eventual write, the way the editor auto-saves after a pause in typing
// rather than on every keystroke.
package autosave

import (
	"context"
	"sync"
	"time"

	"evergreen_estimator/internal/domain/entities"
	"evergreen_estimator/internal/usecase/interfaces"

	"github.com/rs/zerolog/log"
)

// Saver implements IEstimateRepository. Save stores the snapshot as pending
// and (re)arms a per-estimate timer; the inner write happens once the window
// elapses without another save. Reads see pending snapshots immediately, so
// the decorator is transparent to the editing session.
type Saver struct {
	inner interfaces.IEstimateRepository
	delay time.Duration

	mu      sync.Mutex
	pending map[string]entities.Estimate
	timers  map[string]*time.Timer
}

var _ interfaces.IEstimateRepository = (*Saver)(nil)

func New(inner interfaces.IEstimateRepository, delay time.Duration) *Saver {
	return &Saver{
		inner:   inner,
		delay:   delay,
		pending: map[string]entities.Estimate{},
		timers:  map[string]*time.Timer{},
	}
}

func (s *Saver) Save(_ context.Context, e entities.Estimate) (entities.Estimate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pending[e.ID] = e
	if t, ok := s.timers[e.ID]; ok {
		t.Reset(s.delay)
		return e, nil
	}
	id := e.ID
	s.timers[id] = time.AfterFunc(s.delay, func() { s.flushOne(id) })
	return e, nil
}

func (s *Saver) GetByID(ctx context.Context, id string) (entities.Estimate, error) {
	s.mu.Lock()
	if e, ok := s.pending[id]; ok {
		s.mu.Unlock()
		return e, nil
	}
	s.mu.Unlock()
	return s.inner.GetByID(ctx, id)
}

func (s *Saver) List(ctx context.Context) ([]entities.Estimate, error) {
	stored, err := s.inner.List(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.pending) == 0 {
		return stored, nil
	}

	seen := make(map[string]struct{}, len(stored))
	out := make([]entities.Estimate, 0, len(stored)+len(s.pending))
	for _, e := range stored {
		if p, ok := s.pending[e.ID]; ok {
			e = p
		}
		seen[e.ID] = struct{}{}
		out = append(out, e)
	}
	for id, p := range s.pending {
		if _, ok := seen[id]; !ok {
			out = append(out, p)
		}
	}
	return out, nil
}

// Delete drops any pending write for id before deleting, so a scheduled
// save cannot resurrect a deleted estimate.
func (s *Saver) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	delete(s.pending, id)
	if t, ok := s.timers[id]; ok {
		t.Stop()
		delete(s.timers, id)
	}
	s.mu.Unlock()
	return s.inner.Delete(ctx, id)
}

// Flush writes every pending snapshot immediately. Call on shutdown.
func (s *Saver) Flush(ctx context.Context) error {
	s.mu.Lock()
	snapshots := make([]entities.Estimate, 0, len(s.pending))
	for id, e := range s.pending {
		snapshots = append(snapshots, e)
		if t, ok := s.timers[id]; ok {
			t.Stop()
			delete(s.timers, id)
		}
		delete(s.pending, id)
	}
	s.mu.Unlock()

	var firstErr error
	for _, e := range snapshots {
		if _, err := s.inner.Save(ctx, e); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (s *Saver) flushOne(id string) {
	s.mu.Lock()
	e, ok := s.pending[id]
	if ok {
		delete(s.pending, id)
	}
	delete(s.timers, id)
	s.mu.Unlock()
	if !ok {
		return
	}

	if _, err := s.inner.Save(context.Background(), e); err != nil {
		// The snapshot is gone from pending; put it back so the next save
		// or Flush retries rather than losing the write.
		log.Error().Err(err).Str("estimate_id", id).Msg("debounced save failed")
		s.mu.Lock()
		if _, overwritten := s.pending[id]; !overwritten {
			s.pending[id] = e
		}
		s.mu.Unlock()
	}
}
