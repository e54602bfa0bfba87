package types

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Severity is an ordered bump kind. Higher rank means a bigger version step.
type Severity string

const (
	SeverityPatch Severity = "patch"
	SeverityMinor Severity = "minor"
	SeverityMajor Severity = "major"
)

// Rank orders severities for merge decisions. Unknown values rank lowest.
func (s Severity) Rank() int {
	switch s {
	case SeverityMajor:
		return 3
	case SeverityMinor:
		return 2
	case SeverityPatch:
		return 1
	default:
		return 0
	}
}

// Channel is a prerelease bump kind. Channels are mutually exclusive and
// carry no ordering among each other.
type Channel string

const (
	ChannelSnapshot Channel = "snapshot"
	ChannelAlpha    Channel = "alpha"
	ChannelBeta     Channel = "beta"
	ChannelRC       Channel = "rc"
)

// BumpKind is a tagged variant: a bump is either a severity step or a
// channel prerelease, never both. The zero value is invalid.
type BumpKind struct {
	severity Severity
	channel  Channel
}

func SeverityBump(s Severity) BumpKind {
	return BumpKind{severity: s}
}

func ChannelBump(c Channel) BumpKind {
	return BumpKind{channel: c}
}

func (k BumpKind) IsZero() bool {
	return k.severity == "" && k.channel == ""
}

func (k BumpKind) IsChannel() bool {
	return k.channel != ""
}

// Severity returns the ordered kind, or "" for channel bumps.
func (k BumpKind) Severity() Severity {
	return k.severity
}

// Channel returns the prerelease channel, or "" for severity bumps.
func (k BumpKind) Channel() Channel {
	return k.channel
}

func (k BumpKind) String() string {
	if k.IsChannel() {
		return string(k.channel)
	}
	return string(k.severity)
}

// ParseBumpKind maps a ledger value ("major", "snapshot", ...) onto the
// variant. Unknown values are rejected so a stale ledger entry surfaces
// as a parse error instead of a silent no-op bump.
func ParseBumpKind(value string) (BumpKind, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	switch Severity(normalized) {
	case SeverityMajor, SeverityMinor, SeverityPatch:
		return SeverityBump(Severity(normalized)), nil
	}
	switch Channel(normalized) {
	case ChannelSnapshot, ChannelAlpha, ChannelBeta, ChannelRC:
		return ChannelBump(Channel(normalized)), nil
	}
	return BumpKind{}, fmt.Errorf("unknown bump kind: %q", value)
}

func (k BumpKind) MarshalJSON() ([]byte, error) {
	if k.IsZero() {
		return nil, fmt.Errorf("cannot serialize empty bump kind")
	}
	return json.Marshal(k.String())
}

func (k *BumpKind) UnmarshalJSON(data []byte) error {
	var value string
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}
	parsed, err := ParseBumpKind(value)
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

func (k BumpKind) MarshalYAML() (interface{}, error) {
	if k.IsZero() {
		return nil, fmt.Errorf("cannot serialize empty bump kind")
	}
	return k.String(), nil
}

func (k *BumpKind) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var value string
	if err := unmarshal(&value); err != nil {
		return err
	}
	parsed, err := ParseBumpKind(value)
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// PlanOrigin records whether a plan entry was requested directly or
// inherited through the dependency cascade.
type PlanOrigin string

const (
	PlanOriginDirect    PlanOrigin = "direct"
	PlanOriginInherited PlanOrigin = "inherited"
)
