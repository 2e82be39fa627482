package notifications

import (
	"sync"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/monbridgedex/bridge-lib/common/types"
)

// Persistence stores the full notification collection. Every mutation writes
// the whole list so a restart restores exactly what was last observed.
type Persistence interface {
	SaveNotifications(list []types.BridgeNotification, unviewed int) error
	LoadNotifications() ([]types.BridgeNotification, error)
}

// Store is the in-memory notification collection backed by a Persistence.
// Entries are ordered newest first. Status transitions are forward-only:
// a terminal status is never replaced and an open status never moves
// backwards in rank.
type Store struct {
	logger      *logrus.Logger
	persistence Persistence

	mutex sync.RWMutex
	items []types.BridgeNotification // newest first

	subMutex  sync.RWMutex
	listeners []func()
}

// NewStore loads the persisted collection and returns a ready store.
func NewStore(persistence Persistence, logger *logrus.Logger) (*Store, error) {
	store := &Store{
		logger:      logger,
		persistence: persistence,
	}

	if persistence != nil {
		items, err := persistence.LoadNotifications()
		if err != nil {
			return nil, errors.Wrap(err, "failed to load persisted notifications")
		}
		store.items = items
	}

	return store, nil
}

// Subscribe registers a callback invoked after every mutation. Callbacks run
// outside the store lock.
func (s *Store) Subscribe(fn func()) {
	s.subMutex.Lock()
	defer s.subMutex.Unlock()

	s.listeners = append(s.listeners, fn)
}

// Add prepends a notification to the collection.
func (s *Store) Add(notification types.BridgeNotification) {
	s.mutex.Lock()
	s.items = append([]types.BridgeNotification{notification}, s.items...)
	s.persistLocked()
	s.mutex.Unlock()

	s.notify()
}

// UpdateStatus applies a status to every entry carrying the transaction hash.
// Rank rules apply: terminal entries are untouched and an open entry only
// advances. Placeholder hashes are skipped since they are not unique.
// Returns true when at least one entry changed.
func (s *Store) UpdateStatus(txHash string, status types.MessageStatus) bool {
	if types.IsPlaceholderHash(txHash) {
		return false
	}

	s.mutex.Lock()
	changed := false
	for i := range s.items {
		if s.items[i].TxHash != txHash {
			continue
		}
		current := s.items[i].Status
		if current.Terminal() {
			continue
		}
		if !status.Terminal() && status.Rank() <= current.Rank() {
			continue
		}
		s.items[i].Status = status
		changed = true
	}
	if changed {
		s.persistLocked()
	}
	s.mutex.Unlock()

	if changed {
		s.notify()
	}

	return changed
}

// UpdateError marks every open entry with the transaction hash as FAILED and
// records the user-facing message.
func (s *Store) UpdateError(txHash, message string) bool {
	s.mutex.Lock()
	changed := false
	for i := range s.items {
		if s.items[i].TxHash != txHash {
			continue
		}
		if s.items[i].Status.Terminal() {
			continue
		}
		s.items[i].Status = types.StatusFailed
		s.items[i].ErrorMessage = message
		changed = true
	}
	if changed {
		s.persistLocked()
	}
	s.mutex.Unlock()

	if changed {
		s.notify()
	}

	return changed
}

// MarkAllViewed marks every entry as viewed, zeroing the unviewed count.
func (s *Store) MarkAllViewed() {
	s.mutex.Lock()
	changed := false
	for i := range s.items {
		if !s.items[i].Viewed {
			s.items[i].Viewed = true
			changed = true
		}
	}
	if changed {
		s.persistLocked()
	}
	s.mutex.Unlock()

	if changed {
		s.notify()
	}
}

// Clear removes every notification.
func (s *Store) Clear() {
	s.mutex.Lock()
	if len(s.items) == 0 {
		s.mutex.Unlock()
		return
	}
	s.items = nil
	s.persistLocked()
	s.mutex.Unlock()

	s.notify()
}

// All returns a copy of the collection, newest first.
func (s *Store) All() []types.BridgeNotification {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	items := make([]types.BridgeNotification, len(s.items))
	copy(items, s.items)

	return items
}

// Open returns the entries whose status is still being tracked.
func (s *Store) Open() []types.BridgeNotification {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	var open []types.BridgeNotification
	for _, item := range s.items {
		if item.Status.Open() {
			open = append(open, item)
		}
	}

	return open
}

// OpenCount returns the number of entries still being tracked.
func (s *Store) OpenCount() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	count := 0
	for _, item := range s.items {
		if item.Status.Open() {
			count++
		}
	}

	return count
}

// UnviewedCount returns the number of entries not yet viewed.
func (s *Store) UnviewedCount() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	count := 0
	for _, item := range s.items {
		if !item.Viewed {
			count++
		}
	}

	return count
}

// persistLocked writes the collection through the persistence layer.
// Callers must hold the write lock.
func (s *Store) persistLocked() {
	if s.persistence == nil {
		return
	}

	items := make([]types.BridgeNotification, len(s.items))
	copy(items, s.items)

	unviewed := 0
	for _, item := range items {
		if !item.Viewed {
			unviewed++
		}
	}

	if err := s.persistence.SaveNotifications(items, unviewed); err != nil {
		s.logger.WithError(err).Error("failed to persist notifications")
	}
}

// notify invokes change listeners outside the store lock.
func (s *Store) notify() {
	s.subMutex.RLock()
	listeners := make([]func(), len(s.listeners))
	copy(listeners, s.listeners)
	s.subMutex.RUnlock()

	for _, fn := range listeners {
		fn()
	}
}
