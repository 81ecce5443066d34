package repositories

import "context"

// KVStore is the persistence collaborator: a key-value medium keyed by
// "<collection>_<schemaVersion>". Get reports absence through the boolean
// rather than an error so callers can fall back to defaults.
type KVStore interface {
	// Get returns the stored value for key, or found=false when absent.
	Get(ctx context.Context, key string) (value []byte, found bool, err error)

	// Set overwrites the value for key. Last write wins.
	Set(ctx context.Context, key string, value []byte) error
}
