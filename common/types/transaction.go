package types

// Transaction represents a submitted blockchain transaction.
//
// Fields:
// - Hash: the hash of the transaction.
// - From: the address from which the transaction is sent.
// - To: the contract address the transaction targets.
// - Value: the native value attached, as a decimal string in wei.
// - Nonce: the nonce of the transaction.
// - ChainID: the unique identifier for the chain where the transaction occurred.
type Transaction struct {
	Hash    string
	From    string
	To      string
	Value   string
	Nonce   uint64
	ChainID uint64
}

// TransactionStatus represents the outcome of a confirmation wait.
type TransactionStatus int

const (
	// TxDone indicates the transaction was mined successfully.
	TxDone TransactionStatus = iota
	// TxFailed indicates the transaction reverted.
	TxFailed
	// TxNeedsRetry indicates the confirmation wait failed before a receipt
	// could be observed and may be retried.
	TxNeedsRetry
)
