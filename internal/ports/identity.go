package ports

import "monorel/internal/types"

// IdentityPort mints build identifiers for prerelease channel bumps.
// Values have a fixed shape but are unique across calls; the resolver
// caches one value per channel for the duration of a run.
type IdentityPort interface {
	Next(channel types.Channel) (string, error)
}
