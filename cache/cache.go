package cache

//go:generate mockgen -destination=mocks/cache.go -package=mocks . Cache

// Cache is the shared response cache keyed by request fingerprints.
// Implementations must be safe for concurrent use: a Get racing a Set on
// the same key sees either the old or the new entry, never a torn one.
type Cache interface {
	// Get returns the stored value for key if it is still fresh.
	// A stale entry behaves as if the key were never stored
	Get(key string) ([]byte, bool)

	// Set stores value under key with the current timestamp, replacing
	// any previous entry wholesale
	Set(key string, value []byte)
}
