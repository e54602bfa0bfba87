package policies

import "monorel/internal/types"

// MergeBumpKind merges an incoming bump request into an existing one
// and returns the winner. The rules, applied in order:
//
//   - no existing entry: incoming wins
//   - channel beats severity: a prerelease request is the narrower,
//     explicit intent and takes precedence over any ordered bump
//   - two differing channels: the first-declared (existing) one wins;
//     ledger insertion order is the recorded tie-break
//   - two severities: the higher rank wins, ties keep existing
func MergeBumpKind(existing *types.BumpKind, incoming types.BumpKind) types.BumpKind {
	if existing == nil || existing.IsZero() {
		return incoming
	}
	if existing.IsChannel() {
		return *existing
	}
	if incoming.IsChannel() {
		return incoming
	}
	if incoming.Severity().Rank() > existing.Severity().Rank() {
		return incoming
	}
	return *existing
}
