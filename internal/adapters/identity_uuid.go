package adapters

import (
	"encoding/hex"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/google/uuid"

	"monorel/internal/ports"
	"monorel/internal/types"
)

// identityLength is the fixed length of a build identifier: 12 chars of
// lowercase hex. Long enough that identifiers minted across separate
// runs do not collide, short enough to stay readable inside a semver
// prerelease tag.
const identityLength = 12

// UUIDIdentityAdapter mints build identifiers from random UUIDs. Values
// have a stable shape but are never reproducible from inputs, so two
// runs over identical change sets always produce distinct identifiers.
type UUIDIdentityAdapter struct{}

func NewUUIDIdentityAdapter() UUIDIdentityAdapter {
	return UUIDIdentityAdapter{}
}

func (a UUIDIdentityAdapter) Next(channel types.Channel) (string, error) {
	if channel == "" {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("identity requires a prerelease channel")
	}
	id := uuid.New()
	return hex.EncodeToString(id[:])[:identityLength], nil
}

var _ ports.IdentityPort = UUIDIdentityAdapter{}
