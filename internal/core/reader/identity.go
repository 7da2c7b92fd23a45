package reader

import "sync/atomic"

var ephemeralSeq atomic.Uint64

// Identity distinguishes the same logical popup across renders from a new
// popup that happens to render in the same place. Identities are comparable
// with ==.
type Identity struct {
	key string
	seq uint64
}

// StableIdentity returns an identity that is equal for equal keys.
func StableIdentity(key string) Identity {
	return Identity{key: key}
}

// EphemeralIdentity returns an identity equal to no other identity.
func EphemeralIdentity() Identity {
	return Identity{seq: ephemeralSeq.Add(1)}
}

// IsZero reports whether the identity was never assigned.
func (i Identity) IsZero() bool { return i == Identity{} }

// Ephemeral reports whether the identity was minted by EphemeralIdentity.
func (i Identity) Ephemeral() bool { return i.seq != 0 }

func (i Identity) String() string {
	if i.Ephemeral() {
		return "ephemeral"
	}
	return i.key
}
