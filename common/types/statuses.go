package types

import "strings"

// MessageStatus is the lifecycle status of a cross-chain message as reported
// by the LayerZero scan API, uppercased.
type MessageStatus string

const (
	// StatusConfirming indicates the source transaction is waiting for
	// blockchain confirmation. First status of every bridge attempt.
	StatusConfirming MessageStatus = "CONFIRMING"

	// StatusInflight indicates the message has been handed to the messaging
	// layer and is being delivered.
	StatusInflight MessageStatus = "INFLIGHT"

	// StatusPayloadStored indicates the message payload is stored on the
	// destination, awaiting execution.
	StatusPayloadStored MessageStatus = "PAYLOAD_STORED"

	// StatusDelivered indicates the message was executed on the destination.
	StatusDelivered MessageStatus = "DELIVERED"

	// StatusFailed indicates the attempt failed.
	StatusFailed MessageStatus = "FAILED"

	// StatusBlocked indicates the message was blocked by the network.
	StatusBlocked MessageStatus = "BLOCKED"

	// StatusApplicationBurned indicates the destination application reverted
	// and burned the message.
	StatusApplicationBurned MessageStatus = "APPLICATION_BURNED"

	// StatusApplicationSkipped indicates the destination application skipped
	// the message.
	StatusApplicationSkipped MessageStatus = "APPLICATION_SKIPPED"

	// StatusUnresolvableCommand indicates the message command cannot be resolved.
	StatusUnresolvableCommand MessageStatus = "UNRESOLVABLE_COMMAND"

	// StatusMalformedCommand indicates the message command is malformed.
	StatusMalformedCommand MessageStatus = "MALFORMED_COMMAND"
)

// ParseMessageStatus normalizes a raw scan API status value. An empty value
// defaults to INFLIGHT.
func ParseMessageStatus(s string) MessageStatus {
	if s == "" {
		return StatusInflight
	}
	return MessageStatus(strings.ToUpper(s))
}

// Terminal reports whether the status is final. The delivery tracker never
// moves a notification out of a terminal status.
func (s MessageStatus) Terminal() bool {
	switch s {
	case StatusDelivered, StatusFailed, StatusBlocked, StatusApplicationBurned,
		StatusApplicationSkipped, StatusUnresolvableCommand, StatusMalformedCommand:
		return true
	}
	return false
}

// Open reports whether the status still requires delivery tracking.
func (s MessageStatus) Open() bool {
	switch s {
	case StatusInflight, StatusConfirming, StatusPayloadStored:
		return true
	}
	return false
}

// Rank orders statuses by lifecycle progression. Updates that would move a
// notification backwards are discarded regardless of arrival order.
func (s MessageStatus) Rank() int {
	switch s {
	case StatusConfirming:
		return 1
	case StatusInflight:
		return 2
	case StatusPayloadStored:
		return 3
	default:
		if s.Terminal() {
			return 4
		}
		return 0
	}
}

// Label returns the short display label for the status.
func (s MessageStatus) Label() string {
	switch s {
	case StatusDelivered:
		return "View Scan"
	case StatusFailed:
		return "Failed"
	case StatusBlocked:
		return "Blocked"
	case StatusInflight:
		return "In Flight"
	case StatusConfirming:
		return "Confirming"
	case StatusPayloadStored:
		return "Stored"
	case StatusApplicationBurned:
		return "Burned"
	case StatusApplicationSkipped:
		return "Skipped"
	case StatusUnresolvableCommand:
		return "Unresolvable"
	case StatusMalformedCommand:
		return "Malformed"
	default:
		return "Processing"
	}
}

// Detail returns the long display description for the status.
func (s MessageStatus) Detail() string {
	switch s {
	case StatusDelivered:
		return "Transaction completed successfully"
	case StatusFailed:
		return "Transaction failed"
	case StatusBlocked:
		return "Transaction blocked by network"
	case StatusInflight:
		return "Processing cross-chain transfer"
	case StatusConfirming:
		return "Waiting for blockchain confirmation"
	case StatusPayloadStored:
		return "Message stored, awaiting execution"
	case StatusApplicationBurned:
		return "Transaction reverted and burned"
	case StatusApplicationSkipped:
		return "Transaction skipped due to conditions"
	case StatusUnresolvableCommand:
		return "Command cannot be resolved"
	case StatusMalformedCommand:
		return "Invalid transaction format"
	default:
		return "Transaction processing"
	}
}
