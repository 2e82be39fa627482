package notifications

import (
	"encoding/json"
	"strconv"

	"github.com/pkg/errors"
	bolt "go.etcd.io/bbolt"

	"github.com/monbridgedex/bridge-lib/common/types"
)

const (
	stateBucket = "state"

	notificationsKey     = "bridgeNotifications"
	notificationCountKey = "bridgeNotificationCount"
	walletConnectedKey   = "walletConnected"
	walletAddressKey     = "walletAddress"
)

// BoltStorage persists bridge state in a single bbolt file: the notification
// collection, the unviewed count, and the wallet connection.
type BoltStorage struct {
	db *bolt.DB
}

// NewBoltStorage opens (or creates) the database file at path.
func NewBoltStorage(path string) (*BoltStorage, error) {
	db, err := bolt.Open(path, 0600, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open bolt database %s", path)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(stateBucket))
		return err
	})
	if err != nil {
		db.Close()
		return nil, errors.Wrap(err, "failed to create state bucket")
	}

	return &BoltStorage{db: db}, nil
}

// Close releases the underlying database.
func (s *BoltStorage) Close() error {
	return s.db.Close()
}

// SaveNotifications writes the full collection and the unviewed count.
func (s *BoltStorage) SaveNotifications(list []types.BridgeNotification, unviewed int) error {
	payload, err := json.Marshal(list)
	if err != nil {
		return errors.Wrap(err, "failed to marshal notifications")
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(stateBucket))
		if err := bucket.Put([]byte(notificationsKey), payload); err != nil {
			return err
		}
		return bucket.Put([]byte(notificationCountKey), []byte(strconv.Itoa(unviewed)))
	})
}

// LoadNotifications reads the persisted collection. A missing key yields an
// empty collection, not an error.
func (s *BoltStorage) LoadNotifications() ([]types.BridgeNotification, error) {
	var payload []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		value := tx.Bucket([]byte(stateBucket)).Get([]byte(notificationsKey))
		if value != nil {
			payload = append([]byte(nil), value...)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to read notifications")
	}
	if payload == nil {
		return nil, nil
	}

	var list []types.BridgeNotification
	if err = json.Unmarshal(payload, &list); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal notifications")
	}

	return list, nil
}

// SaveWalletConnection records an established wallet session.
func (s *BoltStorage) SaveWalletConnection(address string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(stateBucket))
		if err := bucket.Put([]byte(walletConnectedKey), []byte("true")); err != nil {
			return err
		}
		return bucket.Put([]byte(walletAddressKey), []byte(address))
	})
}

// LoadWalletConnection returns the persisted session, if any.
func (s *BoltStorage) LoadWalletConnection() (string, bool, error) {
	var (
		address   string
		connected bool
	)
	err := s.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(stateBucket))
		connected = string(bucket.Get([]byte(walletConnectedKey))) == "true"
		address = string(bucket.Get([]byte(walletAddressKey)))
		return nil
	})
	if err != nil {
		return "", false, errors.Wrap(err, "failed to read wallet connection")
	}

	return address, connected, nil
}

// ClearWalletConnection removes the persisted session.
func (s *BoltStorage) ClearWalletConnection() error {
	return s.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(stateBucket))
		if err := bucket.Delete([]byte(walletConnectedKey)); err != nil {
			return err
		}
		return bucket.Delete([]byte(walletAddressKey))
	})
}
