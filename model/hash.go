package model

import (
	"encoding/hex"

	"github.com/minio/highwayhash"
)

// componentIDKey is a fixed 32-byte key so ComponentID is stable across
// processes and runs. It is not a secret; it only seeds the digest.
// highwayhash.New64 requires a key whose length equals highwayhash.Size (32).
var componentIDKey = []byte("archlens-component-id-key-v1!!!!")

// ComponentID computes a deterministic 16-hex-char id for a component name.
// Equal names always hash to equal ids; collisions between distinct names
// are treated as statistically impossible (highwayhash's 64-bit output).
func ComponentID(name string) string {
	hash, err := highwayhash.New64(componentIDKey)
	if err != nil {
		// Only a malformed componentIDKey triggers this, never the name
		// being hashed, so a scan still gets a stable (if degraded) id
		// instead of crashing the analyzer that called NewComponent.
		return hex.EncodeToString([]byte(name))
	}
	_, _ = hash.Write([]byte(name))
	sum := hash.Sum(nil)
	return hex.EncodeToString(sum)[:16]
}
