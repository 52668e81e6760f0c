package vodsync

import (
	"vodsync/retry"
	"vodsync/storage"
	"vodsync/youtube"
)

// Error handling types exported for library users.
//
// Using errors.Is() for sentinel errors:
//
//	if errors.Is(err, vodsync.ErrChannelNotFound) {
//		fmt.Println("channel not found")
//	}
//
// Using errors.As() for wrapped errors:
//
//	var apiErr *vodsync.APIError
//	if errors.As(err, &apiErr) {
//		fmt.Printf("%s on %s failed: %v\n", apiErr.Op, apiErr.ID, apiErr.Err)
//	}

// Type aliases for convenient error handling.
type (
	// APIError wraps errors from the source platform API.
	APIError = youtube.APIError
	// StoreError wraps errors from the ledger store.
	StoreError = storage.StoreError
	// RetryableError wraps errors that remained after retries were exhausted.
	RetryableError = retry.RetryableError
)

// Sentinel errors exported from sub-packages.
var (
	// ErrChannelNotFound indicates the source channel does not exist.
	ErrChannelNotFound = youtube.ErrChannelNotFound
	// ErrRateLimited indicates the operation was rate limited.
	ErrRateLimited = youtube.ErrRateLimited
	// ErrNetworkTimeout indicates a network timeout occurred.
	ErrNetworkTimeout = youtube.ErrNetworkTimeout

	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = storage.ErrNotFound
	// ErrSectionMissing indicates a creator's ledger section does not exist.
	ErrSectionMissing = storage.ErrSectionMissing
	// ErrStoreCorrupt indicates the ledger's layout does not match the
	// fixed column contract.
	ErrStoreCorrupt = storage.ErrStoreCorrupt
)

// IsRetryable reports whether an error is worth retrying. Context
// cancellation is always permanent.
func IsRetryable(err error) bool {
	return retry.IsRetryable(err)
}
