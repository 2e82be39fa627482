package types

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const (
	// PlaceholderNoTxPrefix marks notifications recorded for attempts that
	// failed before any transaction was submitted.
	PlaceholderNoTxPrefix = "no-tx-"
	// PlaceholderChainAddFailedPrefix marks notifications recorded for failed
	// add-network requests.
	PlaceholderChainAddFailedPrefix = "chain-add-failed-"

	// ScanURLTemplate is the LayerZero scanner link for a tracked transaction.
	ScanURLTemplate = "https://testnet.layerzeroscan.com/tx/%s"

	// timestampLayout matches the ISO-8601 millisecond form the persisted
	// notification list uses.
	timestampLayout = "2006-01-02T15:04:05.000Z07:00"
)

// BridgeNotification is one recorded bridge attempt. Owned exclusively by the
// notification store; other components request mutations through it.
//
// Fields:
// - ID: unique identifier of the attempt. The only key guaranteed unique;
//   placeholder transaction hashes are not.
// - FromChain, ToChain: registry keys of the route.
// - FromName, ToName, FromLogo, ToLogo: display metadata captured at creation.
// - Status: current lifecycle status.
// - TxHash: the transaction hash, or a synthetic placeholder when no
//   transaction was ever submitted.
// - Amount: transferred amount as a decimal string at source display precision.
// - Timestamp: creation time.
// - Viewed: whether the user has seen the entry.
// - ErrorMessage: optional human-readable failure description.
type BridgeNotification struct {
	ID           string        `json:"id"`
	FromChain    ChainKey      `json:"fromChain"`
	ToChain      ChainKey      `json:"toChain"`
	FromLogo     string        `json:"fromLogo"`
	ToLogo       string        `json:"toLogo"`
	FromName     string        `json:"fromName"`
	ToName       string        `json:"toName"`
	Status       MessageStatus `json:"status"`
	TxHash       string        `json:"txHash"`
	Amount       string        `json:"amount"`
	Timestamp    time.Time     `json:"-"`
	Viewed       bool          `json:"viewed"`
	ErrorMessage string        `json:"errorMessage,omitempty"`
}

// notificationJSON carries the wire form with the timestamp as an ISO-8601 string.
type notificationJSON struct {
	ID           string        `json:"id"`
	FromChain    ChainKey      `json:"fromChain"`
	ToChain      ChainKey      `json:"toChain"`
	FromLogo     string        `json:"fromLogo"`
	ToLogo       string        `json:"toLogo"`
	FromName     string        `json:"fromName"`
	ToName       string        `json:"toName"`
	Status       MessageStatus `json:"status"`
	TxHash       string        `json:"txHash"`
	Amount       string        `json:"amount"`
	Timestamp    string        `json:"timestamp"`
	Viewed       bool          `json:"viewed"`
	ErrorMessage string        `json:"errorMessage,omitempty"`
}

// MarshalJSON serializes the notification with the timestamp formatted as an
// ISO-8601 millisecond string in UTC.
func (n BridgeNotification) MarshalJSON() ([]byte, error) {
	return json.Marshal(notificationJSON{
		ID:           n.ID,
		FromChain:    n.FromChain,
		ToChain:      n.ToChain,
		FromLogo:     n.FromLogo,
		ToLogo:       n.ToLogo,
		FromName:     n.FromName,
		ToName:       n.ToName,
		Status:       n.Status,
		TxHash:       n.TxHash,
		Amount:       n.Amount,
		Timestamp:    n.Timestamp.UTC().Format(timestampLayout),
		Viewed:       n.Viewed,
		ErrorMessage: n.ErrorMessage,
	})
}

// UnmarshalJSON deserializes the wire form produced by MarshalJSON.
func (n *BridgeNotification) UnmarshalJSON(data []byte) error {
	var raw notificationJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	ts, err := time.Parse(timestampLayout, raw.Timestamp)
	if err != nil {
		// Older entries may carry second precision.
		ts, err = time.Parse(time.RFC3339, raw.Timestamp)
		if err != nil {
			return err
		}
	}

	*n = BridgeNotification{
		ID:           raw.ID,
		FromChain:    raw.FromChain,
		ToChain:      raw.ToChain,
		FromLogo:     raw.FromLogo,
		ToLogo:       raw.ToLogo,
		FromName:     raw.FromName,
		ToName:       raw.ToName,
		Status:       raw.Status,
		TxHash:       raw.TxHash,
		Amount:       raw.Amount,
		Timestamp:    ts,
		Viewed:       raw.Viewed,
		ErrorMessage: raw.ErrorMessage,
	}
	return nil
}

// IsPlaceholderHash reports whether the hash is a synthetic placeholder rather
// than a real transaction hash.
func IsPlaceholderHash(hash string) bool {
	return strings.HasPrefix(hash, PlaceholderNoTxPrefix) ||
		strings.HasPrefix(hash, PlaceholderChainAddFailedPrefix)
}

// ScanURL returns the scanner link for the notification's transaction. The
// second return is false for placeholder hashes, which have nothing to view.
func (n *BridgeNotification) ScanURL() (string, bool) {
	if n.TxHash == "" || IsPlaceholderHash(n.TxHash) {
		return "", false
	}
	return fmt.Sprintf(ScanURLTemplate, n.TxHash), true
}

// TimeAgo renders the notification age relative to now.
func (n *BridgeNotification) TimeAgo(now time.Time) string {
	diff := now.Sub(n.Timestamp)
	minutes := int(diff.Minutes())
	hours := minutes / 60
	days := hours / 24

	switch {
	case days > 0:
		return fmt.Sprintf("%dd ago", days)
	case hours > 0:
		return fmt.Sprintf("%dh ago", hours)
	case minutes > 0:
		return fmt.Sprintf("%dm ago", minutes)
	default:
		return "Just now"
	}
}
