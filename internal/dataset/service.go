package dataset

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/inference-directory/infdir/internal/logging"
	"github.com/inference-directory/infdir/internal/models"
	"github.com/inference-directory/infdir/internal/pubsub"
	"golang.org/x/sync/singleflight"
)

// Snapshot is one complete, immutable fetch of the dataset. ID changes on
// every fetch and identifies the snapshot for derived indices.
type Snapshot struct {
	ID        string
	FetchedAt time.Time
	Records   []models.Record
}

// Empty reports whether no fetch has completed yet.
func (s Snapshot) Empty() bool { return s.ID == "" }

// Service owns the current snapshot of a session.
type Service interface {
	pubsub.Suscriber[Snapshot]
	// Current returns the latest snapshot, or an empty one before the
	// first refresh.
	Current() Snapshot
	// Refresh fetches a new snapshot and makes it current. Concurrent
	// calls share a single fetch.
	Refresh(ctx context.Context) (Snapshot, error)
}

type service struct {
	*pubsub.Broker[Snapshot]
	fetcher *Fetcher
	group   singleflight.Group

	mu      sync.RWMutex
	current Snapshot
}

func NewService(fetcher *Fetcher) Service {
	return &service{
		Broker:  pubsub.NewBroker[Snapshot](),
		fetcher: fetcher,
	}
}

func (s *service) Current() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

func (s *service) Refresh(ctx context.Context) (Snapshot, error) {
	v, err, shared := s.group.Do("refresh", func() (any, error) {
		records, err := s.fetcher.FetchAll(ctx)
		if err != nil {
			return Snapshot{}, err
		}
		snap := Snapshot{
			ID:        uuid.New().String(),
			FetchedAt: time.Now(),
			Records:   records,
		}

		s.mu.Lock()
		first := s.current.Empty()
		s.current = snap
		s.mu.Unlock()

		if first {
			s.Publish(pubsub.CreatedEvent, snap)
		} else {
			s.Publish(pubsub.UpdatedEvent, snap)
		}
		return snap, nil
	})
	if shared {
		logging.Debug("Joined in-flight dataset refresh")
	}
	if err != nil {
		return s.Current(), err
	}
	return v.(Snapshot), nil
}
