package tracker

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/monbridgedex/bridge-lib/common/types"
	"github.com/monbridgedex/bridge-lib/notifications"
)

const (
	defaultPollInterval = 2 * time.Second
	defaultRefreshDelay = 3 * time.Second
)

// StatusClient fetches the delivery status of a tracked transaction.
type StatusClient interface {
	MessageStatus(ctx context.Context, txHash string) (types.MessageStatus, error)
}

// Tracker polls the scan API for every open notification and writes status
// advances back to the store. The polling loop exists only while at least one
// notification is open; it tears down when the last one settles and comes
// back when a new attempt is recorded.
type Tracker struct {
	logger   *logrus.Logger
	store    *notifications.Store
	client   StatusClient
	interval time.Duration

	// refreshDelay and onDelivered fire the destination balance re-read
	// shortly after a delivery lands.
	refreshDelay time.Duration
	onDelivered  func(notification types.BridgeNotification)

	mutex   sync.Mutex // protects the fields below
	baseCtx context.Context
	cancel  context.CancelFunc
	running bool
	closed  bool
}

// TrackerOption configures a Tracker.
type TrackerOption func(*Tracker)

// WithPollInterval overrides the poll cadence.
func WithPollInterval(d time.Duration) TrackerOption {
	return func(t *Tracker) { t.interval = d }
}

// WithDeliveredHook registers a callback invoked after the refresh delay once
// a tracked message reaches DELIVERED.
func WithDeliveredHook(fn func(notification types.BridgeNotification)) TrackerOption {
	return func(t *Tracker) { t.onDelivered = fn }
}

// WithDeliveredRefreshDelay overrides the pause before the delivered hook
// fires.
func WithDeliveredRefreshDelay(d time.Duration) TrackerOption {
	return func(t *Tracker) { t.refreshDelay = d }
}

// New returns a tracker over the given store and status client.
func New(store *notifications.Store, client StatusClient, logger *logrus.Logger, opts ...TrackerOption) *Tracker {
	t := &Tracker{
		logger:       logger,
		store:        store,
		client:       client,
		interval:     defaultPollInterval,
		refreshDelay: defaultRefreshDelay,
	}

	for _, opt := range opts {
		opt(t)
	}

	return t
}

// Start binds the tracker lifecycle to the store: the polling loop starts
// whenever an open notification exists and stops when none remain.
func (t *Tracker) Start(ctx context.Context) {
	t.mutex.Lock()
	t.baseCtx = ctx
	t.mutex.Unlock()

	t.store.Subscribe(t.sync)
	t.sync()
}

// sync reconciles the polling loop with the store's open notification count.
func (t *Tracker) sync() {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	if t.closed || t.baseCtx == nil {
		return
	}

	open := t.store.OpenCount() > 0

	switch {
	case open && !t.running:
		loopCtx, cancel := context.WithCancel(t.baseCtx)
		t.cancel = cancel
		t.running = true
		go t.loop(loopCtx)
		t.logger.Debug("delivery tracking started")
	case !open && t.running:
		t.cancel()
		t.cancel = nil
		t.running = false
		t.logger.Debug("delivery tracking stopped")
	}
}

// loop polls every open notification on the tick until cancelled. Stopping is
// owned by sync alone: every open count change comes from a store mutation,
// which fires the subscriber, so the loop never decides its own shutdown. A
// loop that cancelled itself could race a concurrent Add whose sync already
// started a replacement loop sharing the cancel field.
func (t *Tracker) loop(ctx context.Context) {
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			t.poll(ctx)
		}
	}
}

// poll fetches the status of every open notification and applies advances.
// A failed fetch leaves the entry unchanged for the next tick.
func (t *Tracker) poll(ctx context.Context) {
	for _, notification := range t.store.Open() {
		if types.IsPlaceholderHash(notification.TxHash) {
			continue
		}

		status, err := t.client.MessageStatus(ctx, notification.TxHash)
		if err != nil {
			t.logger.WithError(err).WithField("txHash", notification.TxHash).
				Debug("status poll failed, keeping current status")
			continue
		}

		if status == notification.Status {
			continue
		}

		if !t.store.UpdateStatus(notification.TxHash, status) {
			continue
		}

		t.logger.WithFields(logrus.Fields{
			"txHash": notification.TxHash,
			"status": status,
		}).Info("message status advanced")

		if status == types.StatusDelivered && t.onDelivered != nil {
			// Destination balance needs a moment to reflect the delivery.
			delivered := notification
			delivered.Status = status
			time.AfterFunc(t.refreshDelay, func() { t.onDelivered(delivered) })
		}
	}
}

// Close tears the tracker down unconditionally. Subsequent store changes no
// longer restart the loop.
func (t *Tracker) Close() {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	t.closed = true
	if t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}
	t.running = false
}
